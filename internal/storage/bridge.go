package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"minisocial/internal/middleware"
	"minisocial/internal/models"
	"minisocial/internal/observability"

	"go.opentelemetry.io/otel/attribute"
)

// Bridge mirrors the whole feed to a single backend key.
type Bridge struct {
	backend Backend
	key     string
	logger  *slog.Logger
}

// NewBridge binds backend and key.
func NewBridge(backend Backend, key string) *Bridge {
	return &Bridge{backend: backend, key: key, logger: middleware.Logger}
}

// Key returns the storage key the snapshot lives under.
func (b *Bridge) Key() string { return b.key }

// Rehydrate reads the stored snapshot. A missing key, an unreadable backend
// or malformed data all yield an empty feed; none of them is fatal.
func (b *Bridge) Rehydrate(ctx context.Context) []models.Post {
	data, err := b.backend.Load(ctx, b.key)
	switch {
	case errors.Is(err, ErrNotFound):
		b.logger.InfoContext(ctx, "no stored feed, starting empty",
			slog.String("backend", b.backend.Name()),
			slog.String("key", b.key),
		)
		return []models.Post{}
	case err != nil:
		middleware.SnapshotErrors.WithLabelValues(b.backend.Name(), "load").Inc()
		b.logger.WarnContext(ctx, "failed to read stored feed, starting empty",
			slog.String("backend", b.backend.Name()),
			slog.String("error", err.Error()),
		)
		return []models.Post{}
	}

	posts, err := Decode(data)
	if err != nil {
		middleware.SnapshotErrors.WithLabelValues(b.backend.Name(), "decode").Inc()
		b.logger.WarnContext(ctx, "stored feed is malformed, starting empty",
			slog.String("backend", b.backend.Name()),
			slog.String("error", err.Error()),
		)
		return []models.Post{}
	}

	b.logger.InfoContext(ctx, "feed rehydrated",
		slog.String("backend", b.backend.Name()),
		slog.Int("posts", len(posts)),
	)
	return posts
}

// Sync overwrites the stored snapshot with posts.
func (b *Bridge) Sync(ctx context.Context, posts []models.Post) error {
	span, ctx := observability.StartSpan(ctx, "storage.Sync",
		attribute.String("storage.backend", b.backend.Name()),
		attribute.Int("feed.posts", len(posts)),
	)
	defer span.End()

	data, err := Encode(posts)
	if err != nil {
		span.SetError(err)
		return err
	}

	start := time.Now()
	err = b.backend.Save(ctx, b.key, data)
	middleware.SnapshotWriteLatency.WithLabelValues(b.backend.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		middleware.SnapshotErrors.WithLabelValues(b.backend.Name(), "save").Inc()
		span.SetError(err)
		return fmt.Errorf("sync feed snapshot: %w", err)
	}
	return nil
}

// Close releases the backend.
func (b *Bridge) Close() error {
	return b.backend.Close()
}

// Encode serializes posts as the persisted JSON array.
func Encode(posts []models.Post) ([]byte, error) {
	out := make([]models.Post, len(posts))
	copy(out, posts)
	for i := range out {
		if out[i].Comments == nil {
			out[i].Comments = []models.Comment{}
		}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode feed snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a persisted JSON array and drops entries that break the feed
// invariants: blank text, duplicate ids, negative likes are clamped to zero.
func Decode(data []byte) ([]models.Post, error) {
	var raw []models.Post
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode feed snapshot: %w", err)
	}

	posts := make([]models.Post, 0, len(raw))
	seen := make(map[int64]struct{}, len(raw))
	for _, p := range raw {
		if strings.TrimSpace(p.Text) == "" {
			continue
		}
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}

		if p.Likes < 0 {
			p.Likes = 0
		}
		comments := make([]models.Comment, 0, len(p.Comments))
		seenComments := make(map[int64]struct{}, len(p.Comments))
		for _, c := range p.Comments {
			if strings.TrimSpace(c.Text) == "" {
				continue
			}
			if _, dup := seenComments[c.ID]; dup {
				continue
			}
			seenComments[c.ID] = struct{}{}
			comments = append(comments, c)
		}
		p.Comments = comments
		posts = append(posts, p)
	}
	return posts, nil
}
