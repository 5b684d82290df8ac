package search

import (
	"cmp"
	"math"
	"slices"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"github.com/sahilm/fuzzy"

	"tagmanager/internal/domain"
)

// key is one searchable field of a tag and its weight in the ranking.
// typos enables the edit distance fallback for the field.
type key struct {
	weight float64
	typos  bool
	values func(domain.Tag) []string
}

var keys = []key{
	{weight: 2, typos: true, values: func(t domain.Tag) []string { return []string{t.Name} }},
	{weight: 1.5, typos: true, values: func(t domain.Tag) []string { return []string{t.ID} }},
	{weight: 1, typos: true, values: func(t domain.Tag) []string { return t.Aliases }},
	{weight: 0.5, values: func(t domain.Tag) []string { return []string{t.Description} }},
}

const (
	// typoThreshold is the share of the query length that may be edited
	typoThreshold = 0.3
	// minTypoQuery is the shortest query tolerating typos
	minTypoQuery = 4
)

// Fuzzy implements domain.Searcher with weighted fuzzy matching over
// name, id, aliases and description
type Fuzzy struct{}

var _ domain.Searcher = Fuzzy{}

// NewFuzzy creates a new weighted fuzzy searcher
func NewFuzzy() Fuzzy {
	return Fuzzy{}
}

type hit struct {
	index  int
	weight float64
	typo   bool
	score  int
}

// Search returns the tags matching query, best first. A tag ranks by its
// heaviest matching field, then by match quality, then by input order.
func (Fuzzy) Search(query string, tags []domain.Tag) []domain.Tag {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return tags
	}

	best := make(map[int]hit)
	for _, k := range keys {
		var data []string
		var owners []int
		for i, t := range tags {
			for _, v := range k.values(t) {
				if v == "" {
					continue
				}
				data = append(data, strings.ToLower(v))
				owners = append(owners, i)
			}
		}

		matched := make(map[int]bool)
		for _, m := range fuzzy.Find(query, data) {
			matched[m.Index] = true
			record(best, hit{index: owners[m.Index], weight: k.weight, score: m.Score})
		}

		if !k.typos {
			continue
		}
		for i, v := range data {
			if matched[i] {
				continue
			}
			if d, ok := typoDistance(query, v); ok {
				record(best, hit{index: owners[i], weight: k.weight, typo: true, score: -d})
			}
		}
	}

	hits := make([]hit, 0, len(best))
	for _, h := range best {
		hits = append(hits, h)
	}
	slices.SortFunc(hits, func(a, b hit) int {
		if better(a, b) {
			return -1
		}
		if better(b, a) {
			return 1
		}
		return cmp.Compare(a.index, b.index)
	})

	out := make([]domain.Tag, 0, len(hits))
	for _, h := range hits {
		out = append(out, tags[h.index])
	}
	return out
}

func record(best map[int]hit, h hit) {
	if prev, ok := best[h.index]; !ok || better(h, prev) {
		best[h.index] = h
	}
}

// typoDistance compares query with value and with each word of value. It
// reports the smallest edit distance when it is within the tolerance.
func typoDistance(query, value string) (int, bool) {
	n := len([]rune(query))
	if n < minTypoQuery {
		return 0, false
	}
	limit := int(math.Ceil(typoThreshold * float64(n)))

	words := strings.FieldsFunc(value, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	best := levenshtein.ComputeDistance(query, value)
	for _, w := range words {
		best = min(best, levenshtein.ComputeDistance(query, w))
	}
	return best, best <= limit
}

// better ranks by field weight, then subsequence matches before typo
// matches, then match quality
func better(a, b hit) bool {
	if a.weight != b.weight {
		return a.weight > b.weight
	}
	if a.typo != b.typo {
		return !a.typo
	}
	return a.score > b.score
}
