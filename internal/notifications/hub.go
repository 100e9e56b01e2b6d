package notifications

import (
	"sync"

	"minisocial/internal/middleware"
)

// EventType names a change in view state.
type EventType string

const (
	EventFeedChanged      EventType = "feed.changed"
	EventFeedbackSet      EventType = "feedback.set"
	EventFeedbackCleared  EventType = "feedback.cleared"
	EventHighlightPost    EventType = "highlight.post"
	EventHighlightComment EventType = "highlight.comment"
	EventHighlightCleared EventType = "highlight.cleared"
)

// Event is pushed to stream subscribers.
type Event struct {
	Type      EventType `json:"type"`
	Action    string    `json:"action,omitempty"`
	PostID    int64     `json:"post_id,omitempty"`
	CommentID int64     `json:"comment_id,omitempty"`
	Message   string    `json:"message,omitempty"`
	Target    string    `json:"target,omitempty"`
}

// Hub fans events out to subscribers. Publishing never blocks: a subscriber
// whose buffer is full misses the event.
type Hub struct {
	mu     sync.RWMutex
	subs   map[*Subscription]struct{}
	closed bool
}

// Subscription receives events on C until Close or hub shutdown.
type Subscription struct {
	C   <-chan Event
	ch  chan Event
	hub *Hub
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[*Subscription]struct{})}
}

// Subscribe registers a subscriber with the given buffer size. On a shut
// down hub the returned subscription's channel is already closed.
func (h *Hub) Subscribe(buffer int) *Subscription {
	ch := make(chan Event, buffer)
	sub := &Subscription{C: ch, ch: ch, hub: h}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return sub
	}
	h.subs[sub] = struct{}{}
	return sub
}

// Publish delivers e to every subscriber. A nil hub discards events.
func (h *Hub) Publish(e Event) {
	if h == nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs {
		select {
		case sub.ch <- e:
		default:
			middleware.EventDrops.Inc()
		}
	}
}

// Subscribers returns the number of live subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Shutdown closes every subscription; later subscriptions start closed.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs {
		close(sub.ch)
		delete(h.subs, sub)
	}
	h.closed = true
}

// Close unsubscribes. Safe to call more than once and after hub shutdown.
func (s *Subscription) Close() {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()

	if _, ok := s.hub.subs[s]; ok {
		delete(s.hub.subs, s)
		close(s.ch)
	}
}
