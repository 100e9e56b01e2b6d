package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSortMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    SortMode
		wantErr bool
	}{
		{"recent", SortRecent, false},
		{"liked", SortLiked, false},
		{" Liked ", SortLiked, false},
		{"", "", true},
		{"oldest", "", true},
	}

	for _, tt := range tests {
		got, err := ParseSortMode(tt.in)
		if tt.wantErr {
			require.Error(t, err, tt.in)
			var appErr *AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, CodeValidation, appErr.Code)
			assert.True(t, HasCode(err, CodeValidation))
			assert.False(t, HasCode(err, CodeInternal))
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestPost_CloneDoesNotShareComments(t *testing.T) {
	t.Parallel()

	p := Post{ID: 1, Text: "hi", Comments: []Comment{{ID: 2, Text: "a"}}}
	c := p.Clone()
	c.Comments[0].Text = "changed"
	c.Comments = append(c.Comments, Comment{ID: 3})

	assert.Equal(t, "a", p.Comments[0].Text)
	assert.Len(t, p.Comments, 1)
}

func TestFeedbackAction_Message(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "✅ Post created successfully!", FeedbackPostCreated.Message())
	assert.Equal(t, "🗑️ Post deleted.", FeedbackPostDeleted.Message())
	assert.Equal(t, "💬 Comment added successfully!", FeedbackCommentAdded.Message())
	assert.Empty(t, FeedbackAction("unknown").Message())
}

func TestAppError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk full")
	err := NewInternalError(cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Internal server error: disk full", err.Error())
	assert.Equal(t, "post with ID 7 not found", NewNotFoundError("post", 7).Error())
}
