// Package marketplace holds the public-ideas browsing model: idea records as
// the server renders them, plus the filtering and ordering applied before
// display.
package marketplace

import (
	"sort"
	"strings"
	"time"
)

// Idea is one card in the public marketplace.
type Idea struct {
	ID           string
	Title        string
	Description  string
	Status       string
	Submitted    time.Time
	ViewCount    int
	CommentCount int
}

// Comment is a reader's note on a submitted idea.
type Comment struct {
	Author string
	Text   string
}

// IdeaDetail is the full view of one idea, as shown after submission or when
// opening a card.
type IdeaDetail struct {
	Idea
	Comments []Comment
}

// SortOrder selects how filtered ideas are arranged.
type SortOrder string

const (
	SortNewest        SortOrder = "newest"
	SortOldest        SortOrder = "oldest"
	SortMostViewed    SortOrder = "most_viewed"
	SortMostCommented SortOrder = "most_commented"
)

// StatusAll disables status filtering.
const StatusAll = "all"

// Filter narrows and orders the idea list. Query matches case-insensitively
// against title and description; Status matches exactly unless it is
// StatusAll or empty.
type Filter struct {
	Query  string
	Status string
	Sort   SortOrder
}

// Apply returns the ideas passing the filter, ordered per f.Sort. The input
// slice is left untouched.
func Apply(ideas []Idea, f Filter) []Idea {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]Idea, 0, len(ideas))
	for _, idea := range ideas {
		if query != "" &&
			!strings.Contains(strings.ToLower(idea.Title), query) &&
			!strings.Contains(strings.ToLower(idea.Description), query) {
			continue
		}
		if f.Status != "" && f.Status != StatusAll && idea.Status != f.Status {
			continue
		}
		out = append(out, idea)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch f.Sort {
		case SortOldest:
			return a.Submitted.Before(b.Submitted)
		case SortMostViewed:
			return a.ViewCount > b.ViewCount
		case SortMostCommented:
			return a.CommentCount > b.CommentCount
		default: // SortNewest
			return a.Submitted.After(b.Submitted)
		}
	})
	return out
}
