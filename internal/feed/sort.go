package feed

import (
	"cmp"
	"slices"

	"minisocial/internal/models"
)

// Sorted returns posts reordered for display. The input is never modified.
// Liked mode breaks ties by recency so the order is deterministic. Unknown
// modes fall back to recent.
func Sorted(posts []models.Post, mode models.SortMode) []models.Post {
	out := slices.Clone(posts)
	switch mode {
	case models.SortLiked:
		slices.SortStableFunc(out, func(a, b models.Post) int {
			if c := cmp.Compare(b.Likes, a.Likes); c != 0 {
				return c
			}
			return cmp.Compare(b.ID, a.ID)
		})
	default:
		slices.SortStableFunc(out, func(a, b models.Post) int {
			return cmp.Compare(b.ID, a.ID)
		})
	}
	return out
}
