package models

// FeedbackAction identifies the mutation a feedback message reports.
type FeedbackAction string

const (
	FeedbackPostCreated  FeedbackAction = "post_created"
	FeedbackPostLiked    FeedbackAction = "post_liked"
	FeedbackPostDeleted  FeedbackAction = "post_deleted"
	FeedbackCommentAdded FeedbackAction = "comment_added"
)

var feedbackMessages = map[FeedbackAction]string{
	FeedbackPostCreated:  "✅ Post created successfully!",
	FeedbackPostLiked:    "👍 Post liked.",
	FeedbackPostDeleted:  "🗑️ Post deleted.",
	FeedbackCommentAdded: "💬 Comment added successfully!",
}

// Message returns the user-facing text for the action, or "" when unknown.
func (a FeedbackAction) Message() string {
	return feedbackMessages[a]
}
