package state

import (
	"sort"
	"strings"

	"github.com/glabrego/frontpage/internal/hnsearch"
)

// SortField selects the story field the list is ordered by.
type SortField string

const (
	SortByAuthor SortField = "author"
	SortByTitle  SortField = "title"
)

// SortStories returns a sorted copy of stories. The input slice is never
// mutated; the projection is recomputed from scratch on each call.
func SortStories(stories []hnsearch.Story, field SortField, asc bool) []hnsearch.Story {
	out := append([]hnsearch.Story(nil), stories...)
	sort.SliceStable(out, func(i, j int) bool {
		a := sortKey(out[i], field)
		b := sortKey(out[j], field)
		if asc {
			return a < b
		}
		return a > b
	})
	return out
}

func sortKey(s hnsearch.Story, field SortField) string {
	if field == SortByTitle {
		return strings.ToLower(s.Title)
	}
	return strings.ToLower(s.Author)
}

// ToggleSort flips direction when the same field is chosen again and resets
// to ascending when the field changes.
func ToggleSort(field SortField, asc bool, next SortField) (SortField, bool) {
	if field == next {
		return field, !asc
	}
	return next, true
}

// ToggleExpand keeps at most one story expanded. Re-selecting the expanded
// story collapses it.
func ToggleExpand(expandedID, id string) string {
	if expandedID == id {
		return ""
	}
	return id
}

// RemoveStory deletes the story matching id from the current page's list and
// clears the expansion when the removed story owned it. Absent ids are a
// no-op.
func RemoveStory(stories []hnsearch.Story, id, expandedID string) ([]hnsearch.Story, string) {
	out := make([]hnsearch.Story, 0, len(stories))
	removed := false
	for _, s := range stories {
		if !removed && s.ID == id {
			removed = true
			continue
		}
		out = append(out, s)
	}
	if !removed {
		return stories, expandedID
	}
	if expandedID == id {
		expandedID = ""
	}
	return out, expandedID
}

// ContainsStory reports whether id identifies a story in the list.
func ContainsStory(stories []hnsearch.Story, id string) bool {
	if id == "" {
		return false
	}
	for _, s := range stories {
		if s.ID == id {
			return true
		}
	}
	return false
}

func ClampCursor(cursor, size int) int {
	if size <= 0 {
		return 0
	}
	if cursor >= size {
		return size - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}

// InPageRange reports whether n is a reachable page index.
func InPageRange(n, totalPages int) bool {
	return n >= 0 && n < totalPages
}
