package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// Field names as they appear in the YAML files and on the wire
const (
	FieldID            = "id"
	FieldName          = "name"
	FieldCategory      = "category"
	FieldSubcategory   = "subcategory"
	FieldDifficulty    = "difficulty"
	FieldSource        = "source"
	FieldDescription   = "description"
	FieldGranularity   = "granularity"
	FieldLanguageScope = "language_scope"
	FieldAliases       = "aliases"
	FieldPrerequisites = "prerequisites"
	FieldRelated       = "related"
	FieldWeightedScore = "weighted_score"
)

var knownFields = []string{
	FieldID, FieldName, FieldCategory, FieldSubcategory, FieldDifficulty,
	FieldSource, FieldDescription, FieldGranularity, FieldLanguageScope,
	FieldAliases, FieldPrerequisites, FieldRelated, FieldWeightedScore,
}

// Tag is a single taxonomy record.
// Fields not modelled here are kept in Extra and written back unchanged.
type Tag struct {
	ID            string     `json:"id" yaml:"id"`
	Name          string     `json:"name" yaml:"name"`
	Category      Category   `json:"category" yaml:"category"`
	Subcategory   string     `json:"subcategory,omitempty" yaml:"subcategory,omitempty"`
	Difficulty    Difficulty `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	Source        Source     `json:"source" yaml:"source"`
	Description   string     `json:"description,omitempty" yaml:"description,omitempty"`
	Granularity   string     `json:"granularity,omitempty" yaml:"granularity,omitempty"`
	LanguageScope []string   `json:"language_scope,omitempty" yaml:"language_scope,omitempty"`
	Aliases       []string   `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Prerequisites []string   `json:"prerequisites,omitempty" yaml:"prerequisites,omitempty"`
	Related       []string   `json:"related,omitempty" yaml:"related,omitempty"`
	// WeightedScore is kept as decoded (number or string) so validation can
	// report non-numeric values instead of failing to parse the file.
	WeightedScore any `json:"weighted_score,omitempty" yaml:"weighted_score,omitempty"`

	Extra map[string]any `json:"-" yaml:",inline"`
}

// Key identifies a tag within the taxonomy
type Key struct {
	Category Category `json:"category"`
	ID       string   `json:"id"`
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s", k.Category, k.ID)
}

// Key returns the (category, id) pair of the tag
func (t Tag) Key() Key {
	return Key{Category: t.Category, ID: t.ID}
}

// plain drops the methods of Tag so encoding/json does not recurse
type plain Tag

func (t Tag) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(plain(t))
	if err != nil {
		return nil, err
	}
	if len(t.Extra) == 0 {
		return base, nil
	}

	merged := make(map[string]any, len(t.Extra)+len(knownFields))
	for k, v := range t.Extra {
		if !slices.Contains(knownFields, k) {
			merged[k] = v
		}
	}
	var fields map[string]any
	if err := json.Unmarshal(base, &fields); err != nil {
		return nil, err
	}
	for k, v := range fields {
		merged[k] = v
	}
	return json.Marshal(merged)
}

func (t *Tag) UnmarshalJSON(data []byte) error {
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, k := range knownFields {
		delete(raw, k)
	}
	p.Extra = nil
	if len(raw) > 0 {
		p.Extra = raw
	}
	*t = Tag(p)
	return nil
}

// Fields returns the tag as a generic field map, the shape used for patches
func (t Tag) Fields() map[string]any {
	data, err := json.Marshal(t)
	if err != nil {
		return map[string]any{}
	}
	fields := map[string]any{}
	_ = json.Unmarshal(data, &fields)
	return fields
}

// TagFromFields builds a tag from a generic field map
func TagFromFields(fields map[string]any) (Tag, error) {
	data, err := json.Marshal(fields)
	if err != nil {
		return Tag{}, fmt.Errorf("encode fields: %w", err)
	}
	var t Tag
	if err := json.Unmarshal(data, &t); err != nil {
		return Tag{}, fmt.Errorf("decode fields: %w", err)
	}
	return t, nil
}

// Clone returns a deep copy of the tag
func (t Tag) Clone() Tag {
	c := t
	c.LanguageScope = slices.Clone(t.LanguageScope)
	c.Aliases = slices.Clone(t.Aliases)
	c.Prerequisites = slices.Clone(t.Prerequisites)
	c.Related = slices.Clone(t.Related)
	if t.Extra != nil {
		c.Extra = make(map[string]any, len(t.Extra))
		for k, v := range t.Extra {
			c.Extra[k] = v
		}
	}
	return c
}

// Equal reports whether two tags carry the same field values.
// Numbers compare by value, so 1 read from YAML equals 1.0 read from JSON.
func (t Tag) Equal(other Tag) bool {
	a, errA := json.Marshal(t)
	b, errB := json.Marshal(other)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(a, b)
}

// HasField reports whether the named field is set. Empty strings and
// empty lists count as missing.
func (t Tag) HasField(name string) bool {
	switch name {
	case FieldID:
		return t.ID != ""
	case FieldName:
		return t.Name != ""
	case FieldCategory:
		return t.Category != ""
	case FieldSubcategory:
		return t.Subcategory != ""
	case FieldDifficulty:
		return t.Difficulty != ""
	case FieldSource:
		return t.Source != ""
	case FieldDescription:
		return t.Description != ""
	case FieldGranularity:
		return t.Granularity != ""
	case FieldLanguageScope:
		return len(t.LanguageScope) > 0
	case FieldAliases:
		return len(t.Aliases) > 0
	case FieldPrerequisites:
		return len(t.Prerequisites) > 0
	case FieldRelated:
		return len(t.Related) > 0
	case FieldWeightedScore:
		return t.WeightedScore != nil && t.WeightedScore != ""
	default:
		v, ok := t.Extra[name]
		return ok && v != nil
	}
}

// Patch is a partial record: field name to new value. A nil value clears
// the field.
type Patch map[string]any

// Merge applies a shallow patch on top of the tag and returns the result.
// The receiver is not modified.
func (t Tag) Merge(p Patch) (Tag, error) {
	fields := t.Fields()
	for k, v := range p {
		if v == nil {
			delete(fields, k)
			continue
		}
		fields[k] = v
	}
	return TagFromFields(fields)
}

// Diff returns the patch that turns old into updated
func Diff(old, updated Tag) Patch {
	before := old.Fields()
	after := updated.Fields()
	p := Patch{}
	for k, v := range after {
		prev, ok := before[k]
		if !ok || !jsonEqual(prev, v) {
			p[k] = v
		}
	}
	for k := range before {
		if _, ok := after[k]; !ok {
			p[k] = nil
		}
	}
	return p
}

func jsonEqual(a, b any) bool {
	ja, errA := json.Marshal(a)
	jb, errB := json.Marshal(b)
	return errA == nil && errB == nil && bytes.Equal(ja, jb)
}
