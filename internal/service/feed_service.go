package service

import (
	"context"
	"log/slog"
	"sync"

	"minisocial/internal/feed"
	"minisocial/internal/middleware"
	"minisocial/internal/models"
	"minisocial/internal/notifications"
	"minisocial/internal/observability"
	"minisocial/internal/storage"

	"go.opentelemetry.io/otel/attribute"
)

const (
	actionCreatePost    = "create_post"
	actionLikePost      = "like_post"
	actionDeletePost    = "delete_post"
	actionCreateComment = "create_comment"
)

// FeedService applies user actions to the feed. Each applied mutation is
// persisted as a full snapshot, then reported through feedback, markers and
// a feed.changed event. Rejected actions touch none of those.
type FeedService struct {
	store    *feed.Store
	bridge   *storage.Bridge
	feedback *notifications.Feedback
	markers  *notifications.Markers
	hub      *notifications.Hub
	logger   *slog.Logger

	// writeMu keeps mutate+sync pairs ordered so snapshots never go backwards.
	writeMu sync.Mutex

	modeMu   sync.RWMutex
	sortMode models.SortMode
}

// CommentView is a comment as rendered in the feed.
type CommentView struct {
	models.Comment
	IsNew bool `json:"is_new"`
}

// PostView is a post as rendered in the feed.
type PostView struct {
	ID           int64         `json:"id"`
	Text         string        `json:"text"`
	Likes        int           `json:"likes"`
	User         string        `json:"user"`
	Timestamp    string        `json:"timestamp"`
	Comments     []CommentView `json:"comments"`
	CommentCount int           `json:"comment_count"`
	IsNew        bool          `json:"is_new"`
}

// FeedView is everything needed to render the feed once.
type FeedView struct {
	Posts       []PostView      `json:"posts"`
	SortMode    models.SortMode `json:"sort_mode"`
	Feedback    string          `json:"feedback,omitempty"`
	Empty       bool            `json:"empty"`
	CurrentUser string          `json:"current_user"`
}

func NewFeedService(
	store *feed.Store,
	bridge *storage.Bridge,
	feedback *notifications.Feedback,
	markers *notifications.Markers,
	hub *notifications.Hub,
) *FeedService {
	return &FeedService{
		store:    store,
		bridge:   bridge,
		feedback: feedback,
		markers:  markers,
		hub:      hub,
		logger:   middleware.Logger,
		sortMode: models.SortRecent,
	}
}

// Load replaces the store contents with the persisted snapshot.
func (s *FeedService) Load(ctx context.Context) int {
	span, ctx := observability.StartSpan(ctx, "FeedService.Load")
	defer span.End()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	posts := s.bridge.Rehydrate(ctx)
	s.store.Replace(posts)
	span.AddAttributes(attribute.Int("feed.posts", len(posts)))
	return len(posts)
}

// CreatePost adds a post. It returns a nil post when text is blank.
func (s *FeedService) CreatePost(ctx context.Context, text string) (*models.Post, error) {
	span, ctx := observability.StartSpan(ctx, "FeedService.CreatePost")
	defer span.End()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	post, ok := s.store.AddPost(text)
	if !ok {
		s.noop(ctx, actionCreatePost)
		return nil, nil
	}
	span.AddAttributes(attribute.Int64("post.id", post.ID))

	err := s.persist(ctx, span, actionCreatePost)
	s.feedback.Show(models.FeedbackPostCreated)
	s.markers.MarkPost(post.ID)
	s.changed(actionCreatePost, post.ID, 0)
	return &post, err
}

// LikePost increments a post's likes. It returns a nil post for an unknown id.
func (s *FeedService) LikePost(ctx context.Context, id int64) (*models.Post, error) {
	span, ctx := observability.StartSpan(ctx, "FeedService.LikePost",
		attribute.Int64("post.id", id),
	)
	defer span.End()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	post, ok := s.store.LikePost(id)
	if !ok {
		s.noop(ctx, actionLikePost)
		return nil, nil
	}

	err := s.persist(ctx, span, actionLikePost)
	s.feedback.Show(models.FeedbackPostLiked)
	s.changed(actionLikePost, post.ID, 0)
	return &post, err
}

// DeletePost removes a post with its comments. It reports whether a post
// was removed.
func (s *FeedService) DeletePost(ctx context.Context, id int64) (bool, error) {
	span, ctx := observability.StartSpan(ctx, "FeedService.DeletePost",
		attribute.Int64("post.id", id),
	)
	defer span.End()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if !s.store.DeletePost(id) {
		s.noop(ctx, actionDeletePost)
		return false, nil
	}

	err := s.persist(ctx, span, actionDeletePost)
	s.feedback.Show(models.FeedbackPostDeleted)
	s.changed(actionDeletePost, id, 0)
	return true, err
}

// CreateComment appends a comment to a post. It returns a nil comment when
// text is blank or the post does not exist.
func (s *FeedService) CreateComment(ctx context.Context, postID int64, text string) (*models.Comment, error) {
	span, ctx := observability.StartSpan(ctx, "FeedService.CreateComment",
		attribute.Int64("post.id", postID),
	)
	defer span.End()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	comment, ok := s.store.AddComment(postID, text)
	if !ok {
		s.noop(ctx, actionCreateComment)
		return nil, nil
	}
	span.AddAttributes(attribute.Int64("comment.id", comment.ID))

	err := s.persist(ctx, span, actionCreateComment)
	s.feedback.Show(models.FeedbackCommentAdded)
	s.markers.MarkComment(comment.ID)
	s.changed(actionCreateComment, postID, comment.ID)
	return &comment, err
}

// SetSortMode changes the session sort mode. Unknown modes are rejected.
func (s *FeedService) SetSortMode(mode models.SortMode) error {
	parsed, err := models.ParseSortMode(string(mode))
	if err != nil {
		return err
	}
	s.modeMu.Lock()
	s.sortMode = parsed
	s.modeMu.Unlock()
	return nil
}

func (s *FeedService) SortMode() models.SortMode {
	s.modeMu.RLock()
	defer s.modeMu.RUnlock()
	return s.sortMode
}

// Feedback returns the active feedback message.
func (s *FeedService) Feedback() (string, bool) {
	return s.feedback.Current()
}

// Hub returns the hub view-state changes are published on.
func (s *FeedService) Hub() *notifications.Hub {
	return s.hub
}

// View renders the feed in the session sort mode.
func (s *FeedService) View() FeedView {
	return s.ViewSorted(s.SortMode())
}

// ViewSorted renders the feed in mode without changing the session mode.
func (s *FeedService) ViewSorted(mode models.SortMode) FeedView {
	posts := feed.Sorted(s.store.Posts(), mode)
	newPost, hasNewPost := s.markers.Post()
	newComment, hasNewComment := s.markers.Comment()
	msg, _ := s.feedback.Current()

	if mode != models.SortLiked {
		mode = models.SortRecent
	}
	view := FeedView{
		Posts:       make([]PostView, 0, len(posts)),
		SortMode:    mode,
		Feedback:    msg,
		Empty:       len(posts) == 0,
		CurrentUser: models.CurrentUser,
	}
	for _, p := range posts {
		pv := PostView{
			ID:           p.ID,
			Text:         p.Text,
			Likes:        p.Likes,
			User:         p.User,
			Timestamp:    p.Timestamp,
			Comments:     make([]CommentView, 0, len(p.Comments)),
			CommentCount: len(p.Comments),
			IsNew:        hasNewPost && p.ID == newPost,
		}
		for _, c := range p.Comments {
			pv.Comments = append(pv.Comments, CommentView{
				Comment: c,
				IsNew:   hasNewComment && c.ID == newComment,
			})
		}
		view.Posts = append(view.Posts, pv)
	}
	return view
}

// Shutdown stops pending timers and closes event subscriptions.
func (s *FeedService) Shutdown() {
	s.feedback.Stop()
	s.markers.Stop()
	s.hub.Shutdown()
}

func (s *FeedService) persist(ctx context.Context, span *observability.Span, action string) error {
	middleware.FeedMutations.WithLabelValues(action).Inc()
	if err := s.bridge.Sync(ctx, s.store.Posts()); err != nil {
		span.SetError(err)
		s.logger.ErrorContext(ctx, "failed to persist feed",
			slog.String("action", action),
			slog.String("error", err.Error()),
		)
		return models.NewInternalError(err)
	}
	return nil
}

func (s *FeedService) noop(ctx context.Context, action string) {
	middleware.FeedNoops.WithLabelValues(action).Inc()
	s.logger.DebugContext(ctx, "feed action had no effect", slog.String("action", action))
}

func (s *FeedService) changed(action string, postID, commentID int64) {
	s.hub.Publish(notifications.Event{
		Type:      notifications.EventFeedChanged,
		Action:    action,
		PostID:    postID,
		CommentID: commentID,
	})
}
