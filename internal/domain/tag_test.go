package domain

import (
	"encoding/json"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

const sampleYAML = `- id: flask
  name: Flask
  category: Library
  subcategory: Web
  source: GitHub
  granularity: framework
  language_scope:
    - python
  weighted_score: 0.8
  popularity: 12
`

func TestTag_YAMLPreservesUnknownFields(t *testing.T) {
	var tags []Tag
	if err := yaml.Unmarshal([]byte(sampleYAML), &tags); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if len(tags) != 1 {
		t.Fatalf("got %d tags, want 1", len(tags))
	}
	tag := tags[0]
	if tag.Extra["popularity"] != 12 {
		t.Errorf("Extra = %v, want popularity 12", tag.Extra)
	}

	out, err := yaml.Marshal(tags)
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	var back []Tag
	if err := yaml.Unmarshal(out, &back); err != nil {
		t.Fatalf("yaml.Unmarshal() round trip error = %v", err)
	}
	if !back[0].Equal(tag) {
		t.Errorf("round trip changed tag:\n%+v\n%+v", back[0], tag)
	}
}

func TestTag_JSONExtra(t *testing.T) {
	data := []byte(`{"id":"go","name":"Go","category":"Language","source":"TIOBE","aliases":["golang"],"paradigm":"imperative"}`)
	var tag Tag
	if err := json.Unmarshal(data, &tag); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if tag.Extra["paradigm"] != "imperative" {
		t.Errorf("Extra = %v", tag.Extra)
	}
	if _, ok := tag.Extra["id"]; ok {
		t.Errorf("known field leaked into Extra")
	}

	out, err := json.Marshal(tag)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	var fields map[string]any
	_ = json.Unmarshal(out, &fields)
	if fields["paradigm"] != "imperative" || fields["id"] != "go" {
		t.Errorf("marshalled fields = %v", fields)
	}
}

func TestTag_Merge(t *testing.T) {
	base := Tag{
		ID:          "loops",
		Name:        "Loops",
		Category:    CategoryConcept,
		Subcategory: "Fundamentals",
		Difficulty:  DifficultyBasic,
		Source:      SourceManual,
		Aliases:     []string{"iteration"},
	}

	merged, err := base.Merge(Patch{
		"name":        "Loops and iteration",
		"aliases":     []string{"for", "while"},
		"subcategory": nil,
	})
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if merged.Name != "Loops and iteration" {
		t.Errorf("Name = %q", merged.Name)
	}
	if !reflect.DeepEqual(merged.Aliases, []string{"for", "while"}) {
		t.Errorf("Aliases = %v", merged.Aliases)
	}
	if merged.Subcategory != "" {
		t.Errorf("Subcategory should be cleared, got %q", merged.Subcategory)
	}
	if merged.Difficulty != DifficultyBasic || merged.ID != "loops" {
		t.Errorf("untouched fields changed: %+v", merged)
	}
	if base.Name != "Loops" || len(base.Aliases) != 1 {
		t.Errorf("Merge() mutated receiver: %+v", base)
	}

	if _, err := base.Merge(Patch{"aliases": 5}); err == nil {
		t.Errorf("Merge() with wrong type should fail")
	}
}

func TestTag_EqualNumbers(t *testing.T) {
	a := Tag{ID: "x", WeightedScore: 1}
	b := Tag{ID: "x", WeightedScore: 1.0}
	if !a.Equal(b) {
		t.Errorf("1 and 1.0 should compare equal")
	}
	b.WeightedScore = 0.5
	if a.Equal(b) {
		t.Errorf("different scores compare equal")
	}
}

func TestTag_Clone(t *testing.T) {
	a := Tag{ID: "x", Aliases: []string{"y"}, Extra: map[string]any{"k": "v"}}
	c := a.Clone()
	c.Aliases[0] = "z"
	c.Extra["k"] = "w"
	if a.Aliases[0] != "y" || a.Extra["k"] != "v" {
		t.Errorf("Clone() shares memory with original: %+v", a)
	}
}

func TestDiff(t *testing.T) {
	old := Tag{ID: "x", Name: "X", Category: CategoryTask, Source: SourceManual, Description: "old"}
	updated := old.Clone()
	updated.Name = "Y"
	updated.Description = ""
	updated.Aliases = []string{"why"}

	got := Diff(old, updated)
	want := Patch{"name": "Y", "description": nil, "aliases": []any{"why"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Diff() = %v, want %v", got, want)
	}

	merged, err := old.Merge(got)
	if err != nil {
		t.Fatalf("Merge(Diff()) error = %v", err)
	}
	if !merged.Equal(updated) {
		t.Errorf("Merge(Diff()) = %+v, want %+v", merged, updated)
	}
}

func TestTag_HasField(t *testing.T) {
	tag := Tag{ID: "x", Aliases: []string{}, WeightedScore: 0, Extra: map[string]any{"sources": []any{"a"}}}
	tests := []struct {
		field string
		want  bool
	}{
		{FieldID, true},
		{FieldName, false},
		{FieldAliases, false},
		{FieldWeightedScore, true},
		{"sources", true},
		{"missing", false},
	}
	for _, tt := range tests {
		if got := tag.HasField(tt.field); got != tt.want {
			t.Errorf("HasField(%q) = %v, want %v", tt.field, got, tt.want)
		}
	}
}
