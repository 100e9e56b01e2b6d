// Package models contains data structures for the feed's domain models.
package models

const (
	// CurrentUser is the label attached to every post created locally.
	CurrentUser = "Guest User (You)"
	// Commenter is the label attached to every comment created locally.
	Commenter = "Commenter"
)

// Post represents a text post in the feed. Posts own their comments.
type Post struct {
	ID        int64     `json:"id" yaml:"id"`
	Text      string    `json:"text" yaml:"text"`
	Likes     int       `json:"likes" yaml:"likes"`
	User      string    `json:"user" yaml:"user"`
	Timestamp string    `json:"timestamp" yaml:"timestamp"`
	Comments  []Comment `json:"comments" yaml:"comments"`
}

// Comment represents a comment attached to a post.
type Comment struct {
	ID        int64  `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	User      string `json:"user" yaml:"user"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
}

// Clone returns a deep copy of the post, including its comments.
func (p Post) Clone() Post {
	out := p
	out.Comments = make([]Comment, len(p.Comments))
	copy(out.Comments, p.Comments)
	return out
}
