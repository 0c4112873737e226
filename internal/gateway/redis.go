package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"blinkchat/backend/internal/model"
)

type redisGateway struct {
	rdb *redis.Client
}

// NewRedisGateway wraps a Redis client as a Gateway. Reaction sets map
// directly onto Redis sets, so toggles are per-member operations rather than
// whole-map rewrites. Subscription pushes ride on pub/sub channels keyed by
// conversation and by owner.
func NewRedisGateway(rdb *redis.Client) Gateway {
	return &redisGateway{rdb: rdb}
}

// Key generation helpers.
func (g *redisGateway) convKey(id string) string          { return fmt.Sprintf("conv:%s", id) }
func (g *redisGateway) ownerConvsKey(owner string) string { return fmt.Sprintf("owner:%s:convs", owner) }
func (g *redisGateway) messagesKey(convID string) string  { return fmt.Sprintf("conv:%s:messages", convID) }
func (g *redisGateway) messageKey(id string) string       { return fmt.Sprintf("msg:%s", id) }
func (g *redisGateway) reactionSetKey(msgID, kind string) string {
	return fmt.Sprintf("msg:%s:reactions:%s", msgID, kind)
}
func (g *redisGateway) reactionKindsKey(msgID string) string {
	return fmt.Sprintf("msg:%s:reaction-kinds", msgID)
}
func (g *redisGateway) messagesChannel(convID string) string {
	return fmt.Sprintf("blinkchat.messages.%s", convID)
}
func (g *redisGateway) ownerChannel(owner string) string {
	return fmt.Sprintf("blinkchat.conversations.%s", owner)
}

// --- Conversation Operations ---

func (g *redisGateway) CreateConversation(ctx context.Context, conv *model.Conversation) error {
	pipe := g.rdb.TxPipeline()
	pipe.HSet(ctx, g.convKey(conv.ID), map[string]any{
		"id":           conv.ID,
		"owner_id":     conv.OwnerID,
		"title":        conv.Title,
		"archived":     strconv.FormatBool(conv.Archived),
		"last_updated": conv.LastUpdated.UTC().Format(time.RFC3339Nano),
	})
	pipe.ZAdd(ctx, g.ownerConvsKey(conv.OwnerID), redis.Z{Score: float64(-conv.LastUpdated.UnixNano()), Member: conv.ID})
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}
	g.rdb.Publish(ctx, g.ownerChannel(conv.OwnerID), conv.ID)
	return nil
}

func (g *redisGateway) GetConversation(ctx context.Context, id string) (*model.Conversation, error) {
	fields, err := g.rdb.HGetAll(ctx, g.convKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}
	return parseConversation(fields)
}

func (g *redisGateway) ListConversations(ctx context.Context, ownerID string, archived bool) ([]*model.Conversation, error) {
	ids, err := g.rdb.ZRange(ctx, g.ownerConvsKey(ownerID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	convs := make([]*model.Conversation, 0, len(ids))
	for _, id := range ids {
		conv, err := g.GetConversation(ctx, id)
		if err != nil {
			continue // Index entry without a record; skip.
		}
		if conv.Archived == archived {
			convs = append(convs, conv)
		}
	}
	return convs, nil
}

func (g *redisGateway) ListOwnerConversationIDs(ctx context.Context, ownerID string) ([]string, error) {
	return g.rdb.ZRange(ctx, g.ownerConvsKey(ownerID), 0, -1).Result()
}

func (g *redisGateway) UpdateConversation(ctx context.Context, id string, fields ConversationFields) error {
	conv, err := g.GetConversation(ctx, id)
	if err != nil {
		return err
	}

	pipe := g.rdb.TxPipeline()
	key := g.convKey(id)
	if fields.Title != nil {
		pipe.HSet(ctx, key, "title", *fields.Title)
	}
	if fields.Archived != nil {
		pipe.HSet(ctx, key, "archived", strconv.FormatBool(*fields.Archived))
	}
	if fields.Touch {
		now := time.Now().UTC()
		pipe.HSet(ctx, key, "last_updated", now.Format(time.RFC3339Nano))
		pipe.ZAdd(ctx, g.ownerConvsKey(conv.OwnerID), redis.Z{Score: float64(-now.UnixNano()), Member: id})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}
	g.rdb.Publish(ctx, g.ownerChannel(conv.OwnerID), id)
	return nil
}

func (g *redisGateway) DeleteConversation(ctx context.Context, id string) error {
	conv, err := g.GetConversation(ctx, id)
	if err != nil {
		return err
	}

	msgIDs, err := g.rdb.ZRange(ctx, g.messagesKey(id), 0, -1).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("could not get message ids for deletion: %w", err)
	}

	var keys []string
	for _, msgID := range msgIDs {
		kinds, err := g.rdb.SMembers(ctx, g.reactionKindsKey(msgID)).Result()
		if err != nil && err != redis.Nil {
			return fmt.Errorf("could not get reaction kinds for deletion: %w", err)
		}
		for _, kind := range kinds {
			keys = append(keys, g.reactionSetKey(msgID, kind))
		}
		keys = append(keys, g.reactionKindsKey(msgID), g.messageKey(msgID))
	}
	keys = append(keys, g.convKey(id), g.messagesKey(id))

	pipe := g.rdb.TxPipeline()
	pipe.Del(ctx, keys...)
	pipe.ZRem(ctx, g.ownerConvsKey(conv.OwnerID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to execute conversation deletion pipeline: %w", err)
	}

	g.rdb.Publish(ctx, g.messagesChannel(id), id)
	g.rdb.Publish(ctx, g.ownerChannel(conv.OwnerID), id)
	return nil
}

// --- Message Operations ---

func (g *redisGateway) AddMessage(ctx context.Context, msg *model.Message) error {
	conv, err := g.GetConversation(ctx, msg.ConversationID)
	if err != nil {
		return err
	}

	fields := map[string]any{
		"id":              msg.ID,
		"conversation_id": msg.ConversationID,
		"role":            msg.Role,
		"content":         msg.Content,
		"created_at":      msg.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	if msg.ReplyTo != nil {
		fields["reply_to"] = *msg.ReplyTo
	}

	now := time.Now().UTC()
	pipe := g.rdb.TxPipeline()
	pipe.HSet(ctx, g.messageKey(msg.ID), fields)
	pipe.ZAdd(ctx, g.messagesKey(msg.ConversationID), redis.Z{Score: float64(msg.CreatedAt.UnixNano()), Member: msg.ID})
	pipe.HSet(ctx, g.convKey(msg.ConversationID), "last_updated", now.Format(time.RFC3339Nano))
	pipe.ZAdd(ctx, g.ownerConvsKey(conv.OwnerID), redis.Z{Score: float64(-now.UnixNano()), Member: msg.ConversationID})
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	g.rdb.Publish(ctx, g.messagesChannel(msg.ConversationID), msg.ID)
	g.rdb.Publish(ctx, g.ownerChannel(conv.OwnerID), msg.ConversationID)
	return nil
}

func (g *redisGateway) ListMessages(ctx context.Context, conversationID string) ([]model.Message, error) {
	msgIDs, err := g.rdb.ZRange(ctx, g.messagesKey(conversationID), 0, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return []model.Message{}, nil
		}
		return nil, err
	}

	messages := make([]model.Message, 0, len(msgIDs))
	for _, msgID := range msgIDs {
		fields, err := g.rdb.HGetAll(ctx, g.messageKey(msgID)).Result()
		if err != nil || len(fields) == 0 {
			continue
		}
		msg, err := parseMessage(fields)
		if err != nil {
			continue
		}
		reactions, err := g.loadReactions(ctx, msgID)
		if err != nil {
			return nil, err
		}
		msg.Reactions = reactions
		messages = append(messages, *msg)
	}

	// The zset orders by timestamp with lexicographic member tiebreak; keep
	// the result deterministic even when scores were written out of band.
	sort.SliceStable(messages, func(i, j int) bool {
		if messages[i].CreatedAt.Equal(messages[j].CreatedAt) {
			return messages[i].ID < messages[j].ID
		}
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	return messages, nil
}

func (g *redisGateway) ToggleReaction(ctx context.Context, conversationID, messageID, kind, userID string) error {
	if err := g.rdb.ZScore(ctx, g.messagesKey(conversationID), messageID).Err(); err != nil {
		if err == redis.Nil {
			return ErrNotFound
		}
		return err
	}

	setKey := g.reactionSetKey(messageID, kind)
	removed, err := g.rdb.SRem(ctx, setKey, userID).Result()
	if err != nil {
		return err
	}
	if removed == 0 {
		pipe := g.rdb.TxPipeline()
		pipe.SAdd(ctx, setKey, userID)
		pipe.SAdd(ctx, g.reactionKindsKey(messageID), kind)
		if _, err := pipe.Exec(ctx); err != nil {
			return err
		}
	}

	g.rdb.Publish(ctx, g.messagesChannel(conversationID), messageID)
	return nil
}

// --- Subscriptions ---

func (g *redisGateway) SubscribeMessages(ctx context.Context, conversationID string) (*MessageSubscription, error) {
	out := make(chan []model.Message, 1)
	subCtx, cancel := context.WithCancel(ctx)
	pubsub := g.rdb.Subscribe(subCtx, g.messagesChannel(conversationID))
	sub := &MessageSubscription{C: out, stop: func() {
		cancel()
		_ = pubsub.Close()
	}}

	go func() {
		defer close(out)
		for {
			msgs, err := g.ListMessages(subCtx, conversationID)
			if err != nil {
				if subCtx.Err() == nil {
					slog.Warn("Message subscription query failed, dropping stream", "conversation_id", conversationID, "error", err)
				}
				return
			}
			select {
			case out <- msgs:
			case <-subCtx.Done():
				return
			}
			select {
			case _, ok := <-pubsub.Channel():
				if !ok {
					return
				}
			case <-subCtx.Done():
				return
			}
		}
	}()
	return sub, nil
}

func (g *redisGateway) SubscribeConversations(ctx context.Context, ownerID string) (*ConversationSubscription, error) {
	out := make(chan []*model.Conversation, 1)
	subCtx, cancel := context.WithCancel(ctx)
	pubsub := g.rdb.Subscribe(subCtx, g.ownerChannel(ownerID))
	sub := &ConversationSubscription{C: out, stop: func() {
		cancel()
		_ = pubsub.Close()
	}}

	go func() {
		defer close(out)
		for {
			convs, err := g.ListConversations(subCtx, ownerID, false)
			if err != nil {
				if subCtx.Err() == nil {
					slog.Warn("Conversation subscription query failed, dropping stream", "owner_id", ownerID, "error", err)
				}
				return
			}
			select {
			case out <- convs:
			case <-subCtx.Done():
				return
			}
			select {
			case _, ok := <-pubsub.Channel():
				if !ok {
					return
				}
			case <-subCtx.Done():
				return
			}
		}
	}()
	return sub, nil
}

// --- Helper Functions ---

func (g *redisGateway) loadReactions(ctx context.Context, msgID string) (model.Reactions, error) {
	kinds, err := g.rdb.SMembers(ctx, g.reactionKindsKey(msgID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var reactions model.Reactions
	for _, kind := range kinds {
		users, err := g.rdb.SMembers(ctx, g.reactionSetKey(msgID, kind)).Result()
		if err != nil && err != redis.Nil {
			return nil, err
		}
		if len(users) == 0 {
			continue
		}
		if reactions == nil {
			reactions = model.Reactions{}
		}
		sort.Strings(users)
		reactions[kind] = users
	}
	return reactions, nil
}

func parseConversation(fields map[string]string) (*model.Conversation, error) {
	archived, err := strconv.ParseBool(fields["archived"])
	if err != nil {
		return nil, fmt.Errorf("could not parse archived flag: %w", err)
	}
	updated, err := time.Parse(time.RFC3339Nano, fields["last_updated"])
	if err != nil {
		return nil, fmt.Errorf("could not parse last_updated: %w", err)
	}
	return &model.Conversation{
		ID:          fields["id"],
		OwnerID:     fields["owner_id"],
		Title:       fields["title"],
		Archived:    archived,
		LastUpdated: updated,
	}, nil
}

func parseMessage(fields map[string]string) (*model.Message, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, fields["created_at"])
	if err != nil {
		return nil, fmt.Errorf("could not parse created_at: %w", err)
	}
	msg := &model.Message{
		ID:             fields["id"],
		ConversationID: fields["conversation_id"],
		Role:           fields["role"],
		Content:        fields["content"],
		CreatedAt:      createdAt,
	}
	if replyTo, ok := fields["reply_to"]; ok && replyTo != "" {
		msg.ReplyTo = &replyTo
	}
	return msg, nil
}
