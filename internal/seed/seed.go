// Package seed fills the feed with demo content, either generated with
// gofakeit or read from a YAML fixture. It is intended for development only.
package seed

import (
	"context"
	"fmt"
	"time"

	"minisocial/internal/feed"
	"minisocial/internal/storage"

	"github.com/brianvoe/gofakeit/v6"
)

// Options controls generated content.
type Options struct {
	Posts       int
	MaxLikes    int
	MaxComments int
	// Seed makes generation reproducible; zero seeds from the clock.
	Seed int64
}

// Seeder applies demo content to a store and persists it.
type Seeder struct {
	store  *feed.Store
	bridge *storage.Bridge
}

func NewSeeder(store *feed.Store, bridge *storage.Bridge) *Seeder {
	return &Seeder{store: store, bridge: bridge}
}

// Load starts from whatever is already persisted.
func (s *Seeder) Load(ctx context.Context) int {
	posts := s.bridge.Rehydrate(ctx)
	s.store.Replace(posts)
	return len(posts)
}

// Clear empties the store.
func (s *Seeder) Clear() {
	s.store.Replace(nil)
}

// Generate adds opts.Posts random posts with random likes and comments and
// returns the number of posts added.
func (s *Seeder) Generate(opts Options) int {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	faker := gofakeit.New(seed)

	added := 0
	for i := 0; i < opts.Posts; i++ {
		post, ok := s.store.AddPost(faker.Sentence(faker.Number(4, 16)))
		if !ok {
			continue
		}
		added++

		if opts.MaxLikes > 0 {
			for n := faker.Number(0, opts.MaxLikes); n > 0; n-- {
				s.store.LikePost(post.ID)
			}
		}
		if opts.MaxComments > 0 {
			for n := faker.Number(0, opts.MaxComments); n > 0; n-- {
				s.store.AddComment(post.ID, commentText(faker))
			}
		}
	}
	return added
}

func commentText(faker *gofakeit.Faker) string {
	switch faker.Number(0, 2) {
	case 0:
		return faker.Question()
	case 1:
		return fmt.Sprintf("%s %s", faker.Interjection(), faker.Sentence(faker.Number(3, 8)))
	default:
		return faker.Sentence(faker.Number(3, 10))
	}
}

// Save writes the store to the bridge as one snapshot.
func (s *Seeder) Save(ctx context.Context) error {
	if err := s.bridge.Sync(ctx, s.store.Posts()); err != nil {
		return fmt.Errorf("save seeded feed: %w", err)
	}
	return nil
}
