package gateway

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"blinkchat/backend/internal/model"
)

type sqliteGateway struct {
	db     *sql.DB
	notify *notifier
}

// NewSQLiteGateway wraps an initialized SQLite database as a Gateway.
// Subscriptions are served by an in-process notifier: every mutation wakes
// the subscribers of the affected conversation or owner, which then re-query
// and push a fresh snapshot.
func NewSQLiteGateway(db *sql.DB) Gateway {
	return &sqliteGateway{db: db, notify: newNotifier()}
}

func (g *sqliteGateway) CreateConversation(ctx context.Context, conv *model.Conversation) error {
	query := "INSERT INTO conversations (id, owner_id, title, archived, last_updated) VALUES (?, ?, ?, ?, ?)"
	_, err := g.db.ExecContext(ctx, query, conv.ID, conv.OwnerID, conv.Title, conv.Archived, conv.LastUpdated)
	if err != nil {
		return err
	}
	g.notify.notify(ownerKey(conv.OwnerID))
	return nil
}

func (g *sqliteGateway) GetConversation(ctx context.Context, id string) (*model.Conversation, error) {
	query := "SELECT id, owner_id, title, archived, last_updated FROM conversations WHERE id = ?"
	row := g.db.QueryRowContext(ctx, query, id)
	var conv model.Conversation
	err := row.Scan(&conv.ID, &conv.OwnerID, &conv.Title, &conv.Archived, &conv.LastUpdated)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &conv, nil
}

func (g *sqliteGateway) ListConversations(ctx context.Context, ownerID string, archived bool) ([]*model.Conversation, error) {
	query := "SELECT id, owner_id, title, archived, last_updated FROM conversations WHERE owner_id = ? AND archived = ? ORDER BY last_updated DESC"
	rows, err := g.db.QueryContext(ctx, query, ownerID, archived)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []*model.Conversation
	for rows.Next() {
		var conv model.Conversation
		if err := rows.Scan(&conv.ID, &conv.OwnerID, &conv.Title, &conv.Archived, &conv.LastUpdated); err != nil {
			return nil, err
		}
		convs = append(convs, &conv)
	}
	return convs, rows.Err()
}

func (g *sqliteGateway) ListOwnerConversationIDs(ctx context.Context, ownerID string) ([]string, error) {
	rows, err := g.db.QueryContext(ctx, "SELECT id FROM conversations WHERE owner_id = ?", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (g *sqliteGateway) UpdateConversation(ctx context.Context, id string, fields ConversationFields) error {
	ownerID, err := g.conversationOwner(ctx, id)
	if err != nil {
		return err
	}

	var sets []string
	var args []any
	if fields.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *fields.Title)
	}
	if fields.Archived != nil {
		sets = append(sets, "archived = ?")
		args = append(args, *fields.Archived)
	}
	if fields.Touch {
		sets = append(sets, "last_updated = ?")
		args = append(args, time.Now().UTC())
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE conversations SET %s WHERE id = ?", strings.Join(sets, ", "))
	if _, err := g.db.ExecContext(ctx, query, args...); err != nil {
		return err
	}
	g.notify.notify(ownerKey(ownerID))
	return nil
}

func (g *sqliteGateway) DeleteConversation(ctx context.Context, id string) error {
	ownerID, err := g.conversationOwner(ctx, id)
	if err != nil {
		return err
	}

	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM reactions WHERE message_id IN (SELECT id FROM messages WHERE conversation_id = ?)", id); err != nil {
		return fmt.Errorf("could not delete reactions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM messages WHERE conversation_id = ?", id); err != nil {
		return fmt.Errorf("could not delete messages: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM conversations WHERE id = ?", id); err != nil {
		return fmt.Errorf("could not delete conversation: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	g.notify.notify(messagesKey(id))
	g.notify.notify(ownerKey(ownerID))
	return nil
}

func (g *sqliteGateway) AddMessage(ctx context.Context, msg *model.Message) error {
	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	var ownerID string
	err = tx.QueryRowContext(ctx, "SELECT owner_id FROM conversations WHERE id = ?", msg.ConversationID).Scan(&ownerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return err
	}

	insertQuery := "INSERT INTO messages (id, conversation_id, role, content, reply_to, created_at) VALUES (?, ?, ?, ?, ?, ?)"
	if _, err := tx.ExecContext(ctx, insertQuery, msg.ID, msg.ConversationID, msg.Role, msg.Content, msg.ReplyTo, msg.CreatedAt); err != nil {
		return fmt.Errorf("could not insert message: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "UPDATE conversations SET last_updated = ? WHERE id = ?", time.Now().UTC(), msg.ConversationID); err != nil {
		return fmt.Errorf("could not update conversation timestamp: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	g.notify.notify(messagesKey(msg.ConversationID))
	g.notify.notify(ownerKey(ownerID))
	return nil
}

func (g *sqliteGateway) ListMessages(ctx context.Context, conversationID string) ([]model.Message, error) {
	query := `
		SELECT id, conversation_id, role, content, reply_to, created_at
		FROM messages
		WHERE conversation_id = ?
		ORDER BY created_at ASC, id ASC
	`
	rows, err := g.db.QueryContext(ctx, query, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []model.Message{}
	index := make(map[string]int)
	for rows.Next() {
		var msg model.Message
		var replyTo sql.NullString
		if err := rows.Scan(&msg.ID, &msg.ConversationID, &msg.Role, &msg.Content, &replyTo, &msg.CreatedAt); err != nil {
			return nil, err
		}
		if replyTo.Valid {
			msg.ReplyTo = &replyTo.String
		}
		index[msg.ID] = len(messages)
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	reactionQuery := `
		SELECT r.message_id, r.kind, r.user_id
		FROM reactions r
		JOIN messages m ON m.id = r.message_id
		WHERE m.conversation_id = ?
	`
	rrows, err := g.db.QueryContext(ctx, reactionQuery, conversationID)
	if err != nil {
		return nil, err
	}
	defer rrows.Close()

	for rrows.Next() {
		var messageID, kind, userID string
		if err := rrows.Scan(&messageID, &kind, &userID); err != nil {
			return nil, err
		}
		i, ok := index[messageID]
		if !ok {
			continue
		}
		if messages[i].Reactions == nil {
			messages[i].Reactions = model.Reactions{}
		}
		messages[i].Reactions[kind] = append(messages[i].Reactions[kind], userID)
	}
	return messages, rrows.Err()
}

func (g *sqliteGateway) ToggleReaction(ctx context.Context, conversationID, messageID, kind, userID string) error {
	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM messages WHERE id = ? AND conversation_id = ?", messageID, conversationID).Scan(&exists)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return err
	}

	// Membership is one row per (message, kind, user), so the toggle never
	// rewrites another user's entry.
	res, err := tx.ExecContext(ctx, "DELETE FROM reactions WHERE message_id = ? AND kind = ? AND user_id = ?", messageID, kind, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := tx.ExecContext(ctx, "INSERT INTO reactions (message_id, kind, user_id) VALUES (?, ?, ?)", messageID, kind, userID); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	g.notify.notify(messagesKey(conversationID))
	return nil
}

func (g *sqliteGateway) SubscribeMessages(ctx context.Context, conversationID string) (*MessageSubscription, error) {
	out := make(chan []model.Message, 1)
	key := messagesKey(conversationID)
	id, wake := g.notify.subscribe(key)
	subCtx, cancel := context.WithCancel(ctx)
	sub := &MessageSubscription{C: out, stop: cancel}

	go func() {
		defer close(out)
		defer g.notify.unsubscribe(key, id)
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
			case <-wake:
			case <-subCtx.Done():
				return
			}
		}
	}()
	return sub, nil
}

func (g *sqliteGateway) SubscribeConversations(ctx context.Context, ownerID string) (*ConversationSubscription, error) {
	out := make(chan []*model.Conversation, 1)
	key := ownerKey(ownerID)
	id, wake := g.notify.subscribe(key)
	subCtx, cancel := context.WithCancel(ctx)
	sub := &ConversationSubscription{C: out, stop: cancel}

	go func() {
		defer close(out)
		defer g.notify.unsubscribe(key, id)
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
			case <-wake:
			case <-subCtx.Done():
				return
			}
		}
	}()
	return sub, nil
}

func (g *sqliteGateway) conversationOwner(ctx context.Context, id string) (string, error) {
	var ownerID string
	err := g.db.QueryRowContext(ctx, "SELECT owner_id FROM conversations WHERE id = ?", id).Scan(&ownerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrNotFound
		}
		return "", err
	}
	return ownerID, nil
}
