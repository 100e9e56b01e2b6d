package notifications

import (
	"time"

	"minisocial/internal/models"
)

// DefaultFeedbackTTL is how long a feedback message stays visible.
const DefaultFeedbackTTL = 3 * time.Second

// Feedback holds the single active status message shown after a mutation.
type Feedback struct {
	slot *slot[string]
}

// NewFeedback creates a notifier whose messages expire after ttl. Changes
// are published to hub when it is non-nil.
func NewFeedback(ttl time.Duration, hub *Hub) *Feedback {
	return &Feedback{
		slot: newSlot(ttl, func(msg string, set bool) {
			if set {
				hub.Publish(Event{Type: EventFeedbackSet, Message: msg})
				return
			}
			hub.Publish(Event{Type: EventFeedbackCleared})
		}),
	}
}

// Show replaces the active message with the one for action and restarts the
// expiry timer. Actions without a message are ignored.
func (f *Feedback) Show(action models.FeedbackAction) bool {
	msg := action.Message()
	if msg == "" {
		return false
	}
	f.slot.Set(msg)
	return true
}

// Current returns the active message.
func (f *Feedback) Current() (string, bool) {
	return f.slot.Get()
}

// Stop cancels the pending expiry.
func (f *Feedback) Stop() {
	f.slot.Stop()
}
