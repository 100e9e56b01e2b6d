// Package feed holds the in-memory post store and the sorted views derived
// from it.
package feed

import (
	"strings"
	"sync"
	"time"

	"minisocial/internal/models"
)

const (
	postTimestampLayout    = "1/2/2006, 3:04:05 PM"
	commentTimestampLayout = "3:04:05 PM"
)

// Store is the ordered collection of posts. New posts are prepended; each
// post exclusively owns its comments. Values handed out are deep copies.
type Store struct {
	mu    sync.RWMutex
	posts []models.Post
	ids   *IDGenerator
	now   func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used for ids and display timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.ids = NewIDGenerator(s.now)
	return s
}

// AddPost creates a post from text and prepends it. It reports false and
// leaves the store untouched when text is blank.
func (s *Store) AddPost(text string) (models.Post, bool) {
	if strings.TrimSpace(text) == "" {
		return models.Post{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	post := models.Post{
		ID:        s.ids.Next(),
		Text:      text,
		Likes:     0,
		User:      models.CurrentUser,
		Timestamp: s.now().Format(postTimestampLayout),
		Comments:  []models.Comment{},
	}
	s.posts = append([]models.Post{post}, s.posts...)
	return post.Clone(), true
}

// LikePost increments the like count of the post with id.
func (s *Store) LikePost(id int64) (models.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Post{}, false
	}
	s.posts[i].Likes++
	return s.posts[i].Clone(), true
}

// DeletePost removes the post with id together with its comments.
func (s *Store) DeletePost(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.posts = append(s.posts[:i:i], s.posts[i+1:]...)
	return true
}

// AddComment appends a comment to the post with postID. Blank text or an
// unknown post leave the store untouched.
func (s *Store) AddComment(postID int64, text string) (models.Comment, bool) {
	if strings.TrimSpace(text) == "" {
		return models.Comment{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(postID)
	if i < 0 {
		return models.Comment{}, false
	}
	comment := models.Comment{
		ID:        s.ids.Next(),
		Text:      text,
		User:      models.Commenter,
		Timestamp: s.now().Format(commentTimestampLayout),
	}
	s.posts[i].Comments = append(s.posts[i].Comments, comment)
	return comment, true
}

// Post returns a copy of the post with id.
func (s *Store) Post(id int64) (models.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Post{}, false
	}
	return s.posts[i].Clone(), true
}

// Posts returns a deep copy of every post in store order.
func (s *Store) Posts() []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Post, len(s.posts))
	for i, p := range s.posts {
		out[i] = p.Clone()
	}
	return out
}

// Len returns the number of posts.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posts)
}

// Replace swaps the whole collection, e.g. with a rehydrated snapshot. The
// id generator is advanced past every id in posts.
func (s *Store) Replace(posts []models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.posts = make([]models.Post, len(posts))
	for i, p := range posts {
		s.posts[i] = p.Clone()
		s.ids.Observe(p.ID)
		for _, c := range p.Comments {
			s.ids.Observe(c.ID)
		}
	}
}

func (s *Store) indexOf(id int64) int {
	for i := range s.posts {
		if s.posts[i].ID == id {
			return i
		}
	}
	return -1
}
