package domain

import "time"

// ExportStats summarizes an export bundle
type ExportStats struct {
	Total      int              `json:"total"`
	ByCategory map[Category]int `json:"by_category"`
}

// ExportBundle is the combined, read-only snapshot of the taxonomy
// consumed by downstream tooling
type ExportBundle struct {
	GeneratedAt    time.Time          `json:"generated_at"`
	Stats          ExportStats        `json:"stats"`
	TagsByCategory map[Category][]Tag `json:"tags_by_category"`
}

// NewExportBundle groups tags by category, each group sorted by id
func NewExportBundle(tags []Tag, now time.Time) ExportBundle {
	groups := GroupByCategory(tags)
	for c, group := range groups {
		groups[c] = Sort(group, SortByID)
	}
	return ExportBundle{
		GeneratedAt: now.UTC(),
		Stats: ExportStats{
			Total:      len(tags),
			ByCategory: CountByCategory(tags),
		},
		TagsByCategory: groups,
	}
}
