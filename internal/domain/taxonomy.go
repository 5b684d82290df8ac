package domain

import (
	"path/filepath"
	"slices"
	"strings"
)

// Category is one of the fixed top-level classifications of the taxonomy
type Category string

const (
	CategoryConcept    Category = "Concept"
	CategoryLibrary    Category = "Library"
	CategoryLanguage   Category = "Language"
	CategoryDomain     Category = "Domain"
	CategoryConstraint Category = "Constraint"
	CategoryTask       Category = "Task"
	CategoryAgentic    Category = "Agentic"
	CategoryContext    Category = "Context"
)

// Categories lists every category in display order
var Categories = []Category{
	CategoryConcept,
	CategoryLibrary,
	CategoryLanguage,
	CategoryDomain,
	CategoryConstraint,
	CategoryTask,
	CategoryAgentic,
	CategoryContext,
}

// Valid reports whether c is one of the fixed categories
func (c Category) Valid() bool {
	return slices.Contains(Categories, c)
}

func (c Category) String() string {
	return string(c)
}

// FileName returns the YAML file holding the category's tags (e.g. "concept.yaml")
func (c Category) FileName() string {
	return strings.ToLower(string(c)) + ".yaml"
}

// ParseCategory resolves a category name case-insensitively.
// "concept", "Concept" and "CONCEPT" all map to CategoryConcept.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, true
		}
	}
	return "", false
}

// CategoryFromFile maps a file name like "library.yaml" back to its category.
// Unknown names are returned as-is so stray files still load.
func CategoryFromFile(fileName string) Category {
	base := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	if c, ok := ParseCategory(base); ok {
		return c
	}
	return Category(base)
}

// CategoryRule holds the extra constraints a category places on its tags
type CategoryRule struct {
	// Subcategories is the closed list of allowed subcategories; nil means unconstrained
	Subcategories []string
	// Required lists fields that must be present (and non-empty for lists)
	Required []string
}

// Rule returns the constraint set for a category. The second result is
// false for values outside the enumeration.
func (c Category) Rule() (CategoryRule, bool) {
	switch c {
	case CategoryConcept:
		return CategoryRule{
			Subcategories: []string{"Fundamentals", "Advanced", "Engineering"},
			Required:      []string{FieldSubcategory, FieldDifficulty},
		}, true
	case CategoryLibrary:
		return CategoryRule{
			Subcategories: []string{"Web", "Database", "Data", "Testing", "Other"},
			Required:      []string{FieldSubcategory, FieldLanguageScope, FieldGranularity},
		}, true
	case CategoryLanguage:
		return CategoryRule{Required: []string{FieldAliases}}, true
	case CategoryDomain:
		return CategoryRule{Required: []string{FieldDescription, FieldAliases}}, true
	case CategoryConstraint, CategoryTask, CategoryAgentic, CategoryContext:
		return CategoryRule{}, true
	default:
		return CategoryRule{}, false
	}
}

// Difficulty is the learning level of a tag
type Difficulty string

const (
	DifficultyBasic        Difficulty = "basic"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Difficulties lists the difficulty levels from easiest to hardest
var Difficulties = []Difficulty{DifficultyBasic, DifficultyIntermediate, DifficultyAdvanced}

// Valid reports whether d is a known difficulty
func (d Difficulty) Valid() bool {
	return slices.Contains(Difficulties, d)
}

// Rank orders difficulties for sorting; unknown or empty values rank 0
func (d Difficulty) Rank() int {
	return slices.Index(Difficulties, d) + 1
}

// Source records where a tag was collected from
type Source string

const (
	SourceCuratedList        Source = "curated-list"
	SourceEducationalSources Source = "educational-sources"
	SourceTIOBE              Source = "TIOBE"
	SourceGitHub             Source = "GitHub"
	SourceManual             Source = "manual"
)

// Sources lists the accepted provenance values
var Sources = []Source{
	SourceCuratedList,
	SourceEducationalSources,
	SourceTIOBE,
	SourceGitHub,
	SourceManual,
}

// Valid reports whether s is a known source
func (s Source) Valid() bool {
	return slices.Contains(Sources, s)
}
