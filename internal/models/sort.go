package models

import "strings"

// SortMode selects the display ordering of the feed.
type SortMode string

const (
	// SortRecent orders posts newest first.
	SortRecent SortMode = "recent"
	// SortLiked orders posts by like count, most liked first.
	SortLiked SortMode = "liked"
)

// ParseSortMode validates a user-supplied sort mode.
func ParseSortMode(raw string) (SortMode, error) {
	switch SortMode(strings.ToLower(strings.TrimSpace(raw))) {
	case SortRecent:
		return SortRecent, nil
	case SortLiked:
		return SortLiked, nil
	default:
		return "", NewValidationError("sort mode must be one of: recent, liked")
	}
}
