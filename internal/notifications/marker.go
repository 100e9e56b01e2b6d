package notifications

import "time"

// DefaultHighlightTTL is how long a newly added item stays marked.
const DefaultHighlightTTL = 500 * time.Millisecond

// Markers tracks the most recently added post and comment for one-shot
// emphasis. The two markers expire independently.
type Markers struct {
	post    *slot[int64]
	comment *slot[int64]
}

// NewMarkers creates markers that clear after ttl.
func NewMarkers(ttl time.Duration, hub *Hub) *Markers {
	return &Markers{
		post: newSlot(ttl, func(id int64, set bool) {
			if set {
				hub.Publish(Event{Type: EventHighlightPost, PostID: id})
				return
			}
			hub.Publish(Event{Type: EventHighlightCleared, Target: "post"})
		}),
		comment: newSlot(ttl, func(id int64, set bool) {
			if set {
				hub.Publish(Event{Type: EventHighlightComment, CommentID: id})
				return
			}
			hub.Publish(Event{Type: EventHighlightCleared, Target: "comment"})
		}),
	}
}

func (m *Markers) MarkPost(id int64)    { m.post.Set(id) }
func (m *Markers) MarkComment(id int64) { m.comment.Set(id) }

// Post returns the id of the post currently marked as new.
func (m *Markers) Post() (int64, bool) { return m.post.Get() }

// Comment returns the id of the comment currently marked as new.
func (m *Markers) Comment() (int64, bool) { return m.comment.Get() }

// Stop cancels both pending expiries.
func (m *Markers) Stop() {
	m.post.Stop()
	m.comment.Stop()
}
