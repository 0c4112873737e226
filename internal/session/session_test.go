package session_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app_errors "blinkchat/backend/internal/errors"
	"blinkchat/backend/internal/gateway"
	"blinkchat/backend/internal/genai"
	"blinkchat/backend/internal/model"
	"blinkchat/backend/internal/service"
	"blinkchat/backend/internal/session"
)

// fakeGateway is an in-memory Gateway with hand-driven pushes, so tests can
// control exactly when an authoritative snapshot reaches the session.
type fakeGateway struct {
	mu       sync.Mutex
	convs    map[string]*model.Conversation
	msgs     map[string][]model.Message
	subs     map[string][]chan []model.Message
	addCalls []string // roles, in write order

	onAdd     func(msg *model.Message) error
	pushOnAdd bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		convs: make(map[string]*model.Conversation),
		msgs:  make(map[string][]model.Message),
		subs:  make(map[string][]chan []model.Message),
	}
}

func (f *fakeGateway) CreateConversation(_ context.Context, conv *model.Conversation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *conv
	f.convs[conv.ID] = &cp
	return nil
}

func (f *fakeGateway) GetConversation(_ context.Context, id string) (*model.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	conv, ok := f.convs[id]
	if !ok {
		return nil, gateway.ErrNotFound
	}
	cp := *conv
	return &cp, nil
}

func (f *fakeGateway) ListConversations(_ context.Context, ownerID string, archived bool) ([]*model.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Conversation
	for _, conv := range f.convs {
		if conv.OwnerID == ownerID && conv.Archived == archived {
			cp := *conv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeGateway) ListOwnerConversationIDs(_ context.Context, ownerID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []string
	for id, conv := range f.convs {
		if conv.OwnerID == ownerID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f *fakeGateway) UpdateConversation(_ context.Context, id string, fields gateway.ConversationFields) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	conv, ok := f.convs[id]
	if !ok {
		return gateway.ErrNotFound
	}
	if fields.Title != nil {
		conv.Title = *fields.Title
	}
	if fields.Archived != nil {
		conv.Archived = *fields.Archived
	}
	return nil
}

func (f *fakeGateway) DeleteConversation(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.convs, id)
	delete(f.msgs, id)
	return nil
}

func (f *fakeGateway) AddMessage(_ context.Context, msg *model.Message) error {
	if f.onAdd != nil {
		if err := f.onAdd(msg); err != nil {
			return err
		}
	}
	f.mu.Lock()
	f.msgs[msg.ConversationID] = append(f.msgs[msg.ConversationID], *msg)
	f.addCalls = append(f.addCalls, msg.Role)
	f.mu.Unlock()
	if f.pushOnAdd {
		f.push(msg.ConversationID)
	}
	return nil
}

func (f *fakeGateway) ListMessages(_ context.Context, conversationID string) ([]model.Message, error) {
	return f.snapshot(conversationID), nil
}

func (f *fakeGateway) ToggleReaction(context.Context, string, string, string, string) error {
	return errors.New("not implemented")
}

func (f *fakeGateway) SubscribeMessages(_ context.Context, conversationID string) (*gateway.MessageSubscription, error) {
	ch := make(chan []model.Message, 1)
	f.mu.Lock()
	f.subs[conversationID] = append(f.subs[conversationID], ch)
	f.mu.Unlock()

	return gateway.NewMessageSubscription(ch, func() {
		f.mu.Lock()
		found := false
		for i, c := range f.subs[conversationID] {
			if c == ch {
				f.subs[conversationID] = append(f.subs[conversationID][:i], f.subs[conversationID][i+1:]...)
				found = true
				break
			}
		}
		f.mu.Unlock()
		if found {
			close(ch)
		}
	}), nil
}

func (f *fakeGateway) SubscribeConversations(context.Context, string) (*gateway.ConversationSubscription, error) {
	return nil, errors.New("not implemented")
}

// push delivers the current ordered snapshot to every live subscriber.
func (f *fakeGateway) push(conversationID string) {
	snap := f.snapshot(conversationID)
	f.mu.Lock()
	subs := append([]chan []model.Message(nil), f.subs[conversationID]...)
	f.mu.Unlock()
	for _, ch := range subs {
		ch <- snap
	}
}

// dropSubscriptions ends every live stream without an Unsubscribe, simulating
// a broken push channel.
func (f *fakeGateway) dropSubscriptions(conversationID string) {
	f.mu.Lock()
	subs := f.subs[conversationID]
	f.subs[conversationID] = nil
	f.mu.Unlock()
	for _, ch := range subs {
		close(ch)
	}
}

func (f *fakeGateway) snapshot(conversationID string) []model.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]model.Message(nil), f.msgs[conversationID]...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

type fakeCompleter struct {
	fn func(ctx context.Context, req *genai.CompletionRequest) (*genai.CompletionResponse, error)
}

func (f *fakeCompleter) Complete(ctx context.Context, req *genai.CompletionRequest) (*genai.CompletionResponse, error) {
	return f.fn(ctx, req)
}

type fakeSummarizer struct {
	title  string
	err    error
	called chan string
}

func (f *fakeSummarizer) Summarize(_ context.Context, text string) (string, error) {
	if f.called != nil {
		f.called <- text
	}
	return f.title, f.err
}

func echoCompleter() *fakeCompleter {
	return &fakeCompleter{fn: func(_ context.Context, req *genai.CompletionRequest) (*genai.CompletionResponse, error) {
		return &genai.CompletionResponse{Text: "echo: " + req.UserInput}, nil
	}}
}

func newSession(t *testing.T, gw *fakeGateway, completer genai.Completer, summarizer genai.Summarizer, conversationID string, onChange func([]model.Message), onDrop func(error)) *session.Session {
	t.Helper()
	conversations := service.NewConversationService(gw, summarizer, "New Chat")
	sess, err := session.New(context.Background(), session.Config{
		Gateway:            gw,
		Completer:          completer,
		Conversations:      conversations,
		Owner:              model.UserContext{ID: "user1", DisplayName: "Ada"},
		ConversationID:     conversationID,
		OnMessagesChanged:  onChange,
		OnSubscriptionDrop: onDrop,
	})
	require.NoError(t, err)
	t.Cleanup(sess.Close)
	return sess
}

func TestSession_SendMessage_EmptyInput(t *testing.T) {
	gw := newFakeGateway()
	sess := newSession(t, gw, echoCompleter(), &fakeSummarizer{}, "", nil, nil)

	_, err := sess.SendMessage(context.Background(), "   \n\t ")
	assert.ErrorIs(t, err, app_errors.ErrEmptyInput)
	assert.Empty(t, sess.Messages())
}

func TestSession_SendMessage_RejectsReentrantSend(t *testing.T) {
	gw := newFakeGateway()
	release := make(chan struct{})
	started := make(chan struct{})
	var startedOnce sync.Once
	completer := &fakeCompleter{fn: func(_ context.Context, req *genai.CompletionRequest) (*genai.CompletionResponse, error) {
		startedOnce.Do(func() { close(started) })
		<-release
		return &genai.CompletionResponse{Text: "done"}, nil
	}}
	sess := newSession(t, gw, completer, &fakeSummarizer{title: "T"}, "", nil, nil)

	errCh := make(chan error, 1)
	go func() {
		_, err := sess.SendMessage(context.Background(), "first")
		errCh <- err
	}()
	<-started

	// A second submission while the first is in flight is rejected without
	// disturbing the in-flight exchange.
	_, err := sess.SendMessage(context.Background(), "second")
	assert.ErrorIs(t, err, app_errors.ErrExchangeInFlight)

	close(release)
	require.NoError(t, <-errCh)

	// Once the exchange completes, sending works again.
	_, err = sess.SendMessage(context.Background(), "third")
	assert.NoError(t, err)
}

func TestSession_SendMessage_PromotesEphemeralSession(t *testing.T) {
	gw := newFakeGateway()
	summarizer := &fakeSummarizer{title: "Weather Chat", called: make(chan string, 1)}
	sess := newSession(t, gw, echoCompleter(), summarizer, "", nil, nil)

	require.True(t, sess.Ephemeral())

	result, err := sess.SendMessage(context.Background(), "what's the weather?")
	require.NoError(t, err)
	assert.True(t, result.Promoted)
	assert.NotEmpty(t, result.ConversationID)
	assert.False(t, sess.Ephemeral())
	assert.Equal(t, result.ConversationID, sess.ConversationID())

	// The conversation record exists with the default title first.
	conv, err := gw.GetConversation(context.Background(), result.ConversationID)
	require.NoError(t, err)
	assert.Equal(t, "user1", conv.OwnerID)

	// User message is written before the assistant message.
	assert.Equal(t, []string{model.RoleUser, model.RoleAssistant}, gw.addCalls)

	// Summarization runs in the background, seeded with the first input.
	select {
	case seed := <-summarizer.called:
		assert.Equal(t, "what's the weather?", seed)
	case <-time.After(2 * time.Second):
		t.Fatal("summarizer was never invoked after promotion")
	}
	require.Eventually(t, func() bool {
		conv, err := gw.GetConversation(context.Background(), result.ConversationID)
		return err == nil && conv.Title == "Weather Chat"
	}, 2*time.Second, 10*time.Millisecond)

	// A second send on the same session does not promote again.
	result2, err := sess.SendMessage(context.Background(), "and tomorrow?")
	require.NoError(t, err)
	assert.False(t, result2.Promoted)
	assert.Equal(t, result.ConversationID, result2.ConversationID)
}

func TestSession_SendMessage_CompletionFailureRollsBack(t *testing.T) {
	gw := newFakeGateway()
	completer := &fakeCompleter{fn: func(context.Context, *genai.CompletionRequest) (*genai.CompletionResponse, error) {
		return nil, fmt.Errorf("%w: model offline", app_errors.ErrCompletion)
	}}
	sess := newSession(t, gw, completer, &fakeSummarizer{}, "", nil, nil)

	_, err := sess.SendMessage(context.Background(), "hello")
	assert.ErrorIs(t, err, app_errors.ErrCompletion)

	// The optimistic user message is unwound; nothing was persisted.
	assert.Empty(t, sess.Messages())
	assert.Equal(t, []string(nil), gw.addCalls)

	// The session stays usable for a retry.
	_, err = sess.SendMessage(context.Background(), "hello again")
	assert.ErrorIs(t, err, app_errors.ErrCompletion)
}

func TestSession_SendMessage_AssistantWriteFailureKeepsDurableUserWrite(t *testing.T) {
	gw := newFakeGateway()
	gw.onAdd = func(msg *model.Message) error {
		if msg.Role == model.RoleAssistant {
			return errors.New("disk full")
		}
		return nil
	}
	sess := newSession(t, gw, echoCompleter(), &fakeSummarizer{title: "T"}, "", nil, nil)

	_, err := sess.SendMessage(context.Background(), "hello")
	assert.ErrorIs(t, err, app_errors.ErrPersistence)

	// Both optimistic entries are unwound from the visible sequence, but the
	// user write that became durable before the failure is not deleted.
	assert.Empty(t, sess.Messages())
	assert.Equal(t, []string{model.RoleUser}, gw.addCalls)
}

func TestSession_ReplyTarget(t *testing.T) {
	gw := newFakeGateway()
	var captured []*model.Message
	gw.onAdd = func(msg *model.Message) error {
		cp := *msg
		captured = append(captured, &cp)
		return nil
	}
	sess := newSession(t, gw, echoCompleter(), &fakeSummarizer{title: "T"}, "", nil, nil)

	sess.SetReplyTarget("some-message-id")
	_, err := sess.SendMessage(context.Background(), "replying")
	require.NoError(t, err)

	require.NotEmpty(t, captured)
	require.NotNil(t, captured[0].ReplyTo)
	assert.Equal(t, "some-message-id", *captured[0].ReplyTo)

	// The target is consumed by the send; the next message is not a reply.
	captured = nil
	_, err = sess.SendMessage(context.Background(), "not a reply")
	require.NoError(t, err)
	require.NotEmpty(t, captured)
	assert.Nil(t, captured[0].ReplyTo)
}

func TestSession_ReconciliationConfirmsByID(t *testing.T) {
	gw := newFakeGateway()
	gw.pushOnAdd = true

	conv := &model.Conversation{ID: "conv1", OwnerID: "user1", Title: "New Chat"}
	require.NoError(t, gw.CreateConversation(context.Background(), conv))

	var mu sync.Mutex
	var lastVisible []model.Message
	sess := newSession(t, gw, echoCompleter(), &fakeSummarizer{}, "conv1", func(msgs []model.Message) {
		mu.Lock()
		lastVisible = msgs
		mu.Unlock()
	}, nil)

	result, err := sess.SendMessage(context.Background(), "hello")
	require.NoError(t, err)

	// Once pushes confirming both writes have been applied, the visible
	// sequence holds exactly one copy of each message: confirmation is by
	// correlation id, so identical content cannot cause duplicates.
	require.Eventually(t, func() bool {
		msgs := sess.Messages()
		return len(msgs) == 2
	}, 2*time.Second, 10*time.Millisecond)

	msgs := sess.Messages()
	assert.Equal(t, result.UserMessage.ID, msgs[0].ID)
	assert.Equal(t, result.AssistantMessage.ID, msgs[1].ID)

	mu.Lock()
	defer mu.Unlock()
	assert.NotEmpty(t, lastVisible)
}

func TestSession_ReconciliationWithIdenticalContent(t *testing.T) {
	gw := newFakeGateway()
	gw.pushOnAdd = true

	conv := &model.Conversation{ID: "conv1", OwnerID: "user1"}
	require.NoError(t, gw.CreateConversation(context.Background(), conv))

	completer := &fakeCompleter{fn: func(context.Context, *genai.CompletionRequest) (*genai.CompletionResponse, error) {
		return &genai.CompletionResponse{Text: "same text"}, nil
	}}
	sess := newSession(t, gw, completer, &fakeSummarizer{}, "conv1", nil, nil)

	// Two exchanges where every message body is the same string.
	_, err := sess.SendMessage(context.Background(), "same text")
	require.NoError(t, err)
	_, err = sess.SendMessage(context.Background(), "same text")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(sess.Messages()) == 4
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSession_SubscriptionDropNotifies(t *testing.T) {
	gw := newFakeGateway()
	conv := &model.Conversation{ID: "conv1", OwnerID: "user1"}
	require.NoError(t, gw.CreateConversation(context.Background(), conv))

	dropped := make(chan error, 1)
	newSession(t, gw, echoCompleter(), &fakeSummarizer{}, "conv1", nil, func(err error) {
		dropped <- err
	})

	gw.dropSubscriptions("conv1")

	select {
	case err := <-dropped:
		assert.ErrorIs(t, err, app_errors.ErrSubscription)
	case <-time.After(2 * time.Second):
		t.Fatal("drop callback was never invoked")
	}
}

func TestMessageChannel_SwitchTearsDownPreviousSubscription(t *testing.T) {
	gw := newFakeGateway()
	for _, id := range []string{"conv1", "conv2"} {
		require.NoError(t, gw.CreateConversation(context.Background(), &model.Conversation{ID: id, OwnerID: "user1"}))
	}

	ch := session.NewMessageChannel(gw)
	var mu sync.Mutex
	var applied [][]model.Message
	apply := func(msgs []model.Message) {
		mu.Lock()
		applied = append(applied, msgs)
		mu.Unlock()
	}

	require.NoError(t, ch.Switch(context.Background(), "conv1", apply, nil))
	assert.Equal(t, "conv1", ch.ConversationID())

	// Switching must not fire the drop callback for the replaced stream.
	require.NoError(t, ch.Switch(context.Background(), "conv2", apply, func(error) {
		t.Error("drop callback fired during a deliberate switch")
	}))
	assert.Equal(t, "conv2", ch.ConversationID())

	gw.mu.Lock()
	remaining := len(gw.subs["conv1"])
	gw.mu.Unlock()
	assert.Zero(t, remaining, "old subscription should have been torn down")

	ch.Close()
	assert.Equal(t, "", ch.ConversationID())
}
