package domain

import (
	"cmp"
	"slices"
	"strings"
)

// SortField selects the ordering of a tag list
type SortField string

const (
	SortByName       SortField = "name"
	SortByID         SortField = "id"
	SortByDifficulty SortField = "difficulty"
)

// SortFields lists the supported orderings, default first
var SortFields = []SortField{SortByName, SortByID, SortByDifficulty}

// FilterAll is the wildcard value accepted by the difficulty and language filters
const FilterAll = "all"

// Searcher ranks tags against a free-text query
type Searcher interface {
	// Search returns the tags matching query, best match first.
	// A blank query returns tags unchanged.
	Search(query string, tags []Tag) []Tag
}

// Filter describes a derived view over the tag collection
type Filter struct {
	Category   Category // empty means every category
	Query      string
	Difficulty string // empty or "all" disables
	Language   string // empty or "all" disables
	SortBy     SortField
}

// Apply narrows and orders tags: category, then search, then difficulty,
// then language, then sort. The input slice is not modified.
func Apply(tags []Tag, f Filter, searcher Searcher) []Tag {
	out := make([]Tag, 0, len(tags))
	for _, t := range tags {
		if f.Category == "" || t.Category == f.Category {
			out = append(out, t)
		}
	}

	if strings.TrimSpace(f.Query) != "" && searcher != nil {
		out = searcher.Search(f.Query, out)
	}

	if f.Difficulty != "" && f.Difficulty != FilterAll {
		out = slices.DeleteFunc(out, func(t Tag) bool {
			return string(t.Difficulty) != f.Difficulty
		})
	}

	if f.Language != "" && f.Language != FilterAll {
		out = slices.DeleteFunc(out, func(t Tag) bool {
			return !slices.Contains(t.LanguageScope, f.Language)
		})
	}

	return Sort(out, f.SortBy)
}

// Sort returns a stably sorted copy of tags. Unknown fields sort by name.
func Sort(tags []Tag, by SortField) []Tag {
	sorted := slices.Clone(tags)
	switch by {
	case SortByID:
		slices.SortStableFunc(sorted, func(a, b Tag) int {
			return cmp.Compare(a.ID, b.ID)
		})
	case SortByDifficulty:
		slices.SortStableFunc(sorted, func(a, b Tag) int {
			return cmp.Compare(a.Difficulty.Rank(), b.Difficulty.Rank())
		})
	default:
		slices.SortStableFunc(sorted, func(a, b Tag) int {
			return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		})
	}
	return sorted
}

// GroupByCategory buckets tags by category, keeping collection order
func GroupByCategory(tags []Tag) map[Category][]Tag {
	groups := make(map[Category][]Tag, len(Categories))
	for _, c := range Categories {
		groups[c] = []Tag{}
	}
	for _, t := range tags {
		groups[t.Category] = append(groups[t.Category], t)
	}
	return groups
}

// CountByCategory returns how many tags each category holds.
// Every fixed category is present, with zero when empty.
func CountByCategory(tags []Tag) map[Category]int {
	counts := make(map[Category]int, len(Categories))
	for _, c := range Categories {
		counts[c] = 0
	}
	for _, t := range tags {
		counts[t.Category]++
	}
	return counts
}

// IDs returns the set of ids present in tags
func IDs(tags []Tag) map[string]struct{} {
	ids := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if t.ID != "" {
			ids[t.ID] = struct{}{}
		}
	}
	return ids
}

// Find returns the first tag with the given key
func Find(tags []Tag, key Key) (Tag, bool) {
	i := slices.IndexFunc(tags, func(t Tag) bool { return t.Key() == key })
	if i < 0 {
		return Tag{}, false
	}
	return tags[i], true
}
