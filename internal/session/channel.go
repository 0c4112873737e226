package session

import (
	"context"
	"fmt"
	"sync"

	app_errors "blinkchat/backend/internal/errors"
	"blinkchat/backend/internal/gateway"
	"blinkchat/backend/internal/model"
)

// MessageChannel maintains the authoritative, push-driven view of a single
// conversation's messages. It holds at most one live subscription at a time:
// switching conversations tears down the old subscription before opening the
// new one. The channel is the durable source of truth; any optimistic buffer
// layered on top is provisional until confirmed or discarded.
type MessageChannel struct {
	gw gateway.Gateway

	mu             sync.Mutex
	conversationID string
	sub            *gateway.MessageSubscription
	done           chan struct{}
	closing        bool
}

func NewMessageChannel(gw gateway.Gateway) *MessageChannel {
	return &MessageChannel{gw: gw}
}

// Switch subscribes to conversationID, invoking apply for every pushed
// snapshot. If the stream ends without Close or a subsequent Switch, onDrop
// is invoked with ErrSubscription; the consumer may retry by switching again.
func (c *MessageChannel) Switch(ctx context.Context, conversationID string, apply func([]model.Message), onDrop func(error)) error {
	c.teardown()

	sub, err := c.gw.SubscribeMessages(ctx, conversationID)
	if err != nil {
		return fmt.Errorf("%w: %v", app_errors.ErrSubscription, err)
	}

	done := make(chan struct{})
	c.mu.Lock()
	c.conversationID = conversationID
	c.sub = sub
	c.done = done
	c.closing = false
	c.mu.Unlock()

	go func() {
		defer close(done)
		for snapshot := range sub.C {
			apply(snapshot)
		}
		c.mu.Lock()
		dropped := !c.closing
		c.mu.Unlock()
		if dropped && onDrop != nil {
			onDrop(app_errors.ErrSubscription)
		}
	}()
	return nil
}

// ConversationID returns the currently subscribed conversation, or "" when
// no subscription is live.
func (c *MessageChannel) ConversationID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conversationID
}

// Close unsubscribes and waits for the delivery goroutine to finish. Safe to
// call on a channel that never subscribed.
func (c *MessageChannel) Close() {
	c.teardown()
}

func (c *MessageChannel) teardown() {
	c.mu.Lock()
	sub, done := c.sub, c.done
	c.closing = true
	c.sub = nil
	c.done = nil
	c.conversationID = ""
	c.mu.Unlock()

	if sub != nil {
		sub.Unsubscribe()
		<-done
	}
}
