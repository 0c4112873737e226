package gateway

import "sync"

// notifier fans change events out to in-process subscribers. Each subscriber
// holds a one-slot wake channel, so bursts of changes while a subscriber is
// busy coalesce into a single re-query.
type notifier struct {
	mu   sync.Mutex
	subs map[string]map[int]chan struct{}
	next int
}

func newNotifier() *notifier {
	return &notifier{subs: make(map[string]map[int]chan struct{})}
}

func (n *notifier) subscribe(key string) (int, <-chan struct{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.next++
	id := n.next
	if n.subs[key] == nil {
		n.subs[key] = make(map[int]chan struct{})
	}
	ch := make(chan struct{}, 1)
	n.subs[key][id] = ch
	return id, ch
}

func (n *notifier) unsubscribe(key string, id int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if m := n.subs[key]; m != nil {
		delete(m, id)
		if len(m) == 0 {
			delete(n.subs, key)
		}
	}
}

func (n *notifier) notify(key string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs[key] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Notification keys, shared by the sqlite gateway.
func messagesKey(conversationID string) string { return "messages:" + conversationID }
func ownerKey(ownerID string) string           { return "conversations:" + ownerID }
