package search

import (
	"testing"

	"tagmanager/internal/domain"
)

func TestFuzzy_Search(t *testing.T) {
	tags := []domain.Tag{
		{ID: "web-frameworks", Name: "Web Frameworks", Description: "Server side routing"},
		{ID: "django", Name: "Django", Aliases: []string{"dj"}, Description: "Batteries-included web framework"},
		{ID: "routing", Name: "Routing"},
		{ID: "pandas", Name: "Pandas", Aliases: []string{"pd"}},
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "name beats description", query: "web", want: []string{"web-frameworks", "django"}},
		{name: "alias", query: "pd", want: []string{"pandas"}},
		{name: "case insensitive", query: "DJANGO", want: []string{"django"}},
		{name: "name before description", query: "routing", want: []string{"routing", "web-frameworks"}},
		{name: "no match", query: "zzz", want: []string{}},
		{name: "transposed letters", query: "dajngo", want: []string{"django"}},
		{name: "typo in one word of the name", query: "framewrok", want: []string{"web-frameworks"}},
		{name: "swapped letters", query: "pnadas", want: []string{"pandas"}},
		{name: "too many edits", query: "dgnajo", want: []string{}},
		{name: "short queries need a subsequence", query: "dx", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewFuzzy().Search(tt.query, tags)
			if len(got) != len(tt.want) {
				t.Fatalf("Search(%q) returned %d tags, want %v", tt.query, len(got), tt.want)
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("Search(%q)[%d] = %s, want %s", tt.query, i, got[i].ID, id)
				}
			}
		})
	}
}

func TestFuzzy_BlankQuery(t *testing.T) {
	tags := []domain.Tag{{ID: "b"}, {ID: "a"}}
	got := NewFuzzy().Search("  ", tags)
	if len(got) != 2 || got[0].ID != "b" {
		t.Errorf("blank query should return input unchanged, got %+v", got)
	}
}

func TestFuzzy_SubsequenceBeforeTypo(t *testing.T) {
	tags := []domain.Tag{
		{ID: "pyhton-typo", Name: "Pyhton"},
		{ID: "python", Name: "Python"},
	}
	got := NewFuzzy().Search("python", tags)
	if len(got) != 2 || got[0].ID != "python" || got[1].ID != "pyhton-typo" {
		t.Errorf("Search(python) = %+v", got)
	}
}
