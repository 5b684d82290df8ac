package application

import (
	"errors"
	"reflect"
	"testing"

	"tagmanager/internal/domain"
)

func languages(ids ...string) []domain.Tag {
	var tags []domain.Tag
	for _, id := range ids {
		tags = append(tags, domain.Tag{
			ID:       id,
			Name:     id,
			Category: domain.CategoryLanguage,
			Source:   domain.SourceTIOBE,
			Aliases:  []string{id + "-lang"},
		})
	}
	return tags
}

func validConcept() domain.Tag {
	return domain.Tag{
		ID:          "recursion",
		Name:        "Recursion",
		Category:    domain.CategoryConcept,
		Subcategory: "Fundamentals",
		Difficulty:  domain.DifficultyIntermediate,
		Source:      domain.SourceManual,
	}
}

func TestValidate(t *testing.T) {
	all := append(languages("python", "go"), domain.Tag{
		ID:          "loops",
		Name:        "Loops",
		Category:    domain.CategoryConcept,
		Subcategory: "Fundamentals",
		Difficulty:  domain.DifficultyBasic,
		Source:      domain.SourceManual,
	})

	tests := []struct {
		name   string
		tag    func() domain.Tag
		all    []domain.Tag
		errors []string
	}{
		{
			name:   "valid concept",
			tag:    validConcept,
			all:    all,
			errors: []string{},
		},
		{
			name: "missing every required field",
			tag:  func() domain.Tag { return domain.Tag{} },
			errors: []string{
				"Missing required field: id",
				"Missing required field: name",
				"Missing required field: category",
				"Missing required field: source",
			},
		},
		{
			name: "missing name and source",
			tag: func() domain.Tag {
				return domain.Tag{ID: "x", Category: domain.CategoryTask}
			},
			errors: []string{
				"Missing required field: name",
				"Missing required field: source",
			},
		},
		{
			name: "bad id format",
			tag: func() domain.Tag {
				t := validConcept()
				t.ID = "Has Spaces"
				return t
			},
			errors: []string{"ID must contain only lowercase letters, numbers, and hyphens"},
		},
		{
			name: "duplicate id in another category",
			tag: func() domain.Tag {
				return domain.Tag{ID: "python", Name: "Python", Category: domain.CategoryTask, Source: domain.SourceManual}
			},
			all:    all,
			errors: []string{"Duplicate ID: python already exists in Language"},
		},
		{
			name: "invalid category",
			tag: func() domain.Tag {
				t := validConcept()
				t.Category = "Widget"
				t.Subcategory = ""
				return t
			},
			errors: []string{"Invalid category: Widget"},
		},
		{
			name: "concept missing category fields",
			tag: func() domain.Tag {
				t := validConcept()
				t.Subcategory = ""
				t.Difficulty = ""
				return t
			},
			errors: []string{
				"Concept requires field: subcategory",
				"Concept requires field: difficulty",
			},
		},
		{
			name: "library empty language scope counts as missing",
			tag: func() domain.Tag {
				return domain.Tag{
					ID: "flask", Name: "Flask", Category: domain.CategoryLibrary, Source: domain.SourceGitHub,
					Subcategory: "Web", Granularity: "framework", LanguageScope: []string{},
				}
			},
			errors: []string{"Library requires field: language_scope"},
		},
		{
			name: "domain needs description and aliases",
			tag: func() domain.Tag {
				return domain.Tag{ID: "fintech", Name: "Fintech", Category: domain.CategoryDomain, Source: domain.SourceManual}
			},
			errors: []string{
				"Domain requires field: description",
				"Domain requires field: aliases",
			},
		},
		{
			name: "invalid subcategory",
			tag: func() domain.Tag {
				t := validConcept()
				t.Subcategory = "Web"
				return t
			},
			errors: []string{"Invalid subcategory for Concept: Web"},
		},
		{
			name: "unconstrained subcategory",
			tag: func() domain.Tag {
				return domain.Tag{ID: "refactor", Name: "Refactor", Category: domain.CategoryTask, Source: domain.SourceManual, Subcategory: "Anything"}
			},
			errors: []string{},
		},
		{
			name: "invalid difficulty and source",
			tag: func() domain.Tag {
				t := validConcept()
				t.Difficulty = "expert"
				t.Source = "blog"
				return t
			},
			errors: []string{"Invalid difficulty: expert", "Invalid source: blog"},
		},
		{
			name: "unknown language scope",
			tag: func() domain.Tag {
				return domain.Tag{
					ID: "flask", Name: "Flask", Category: domain.CategoryLibrary, Source: domain.SourceGitHub,
					Subcategory: "Web", Granularity: "framework", LanguageScope: []string{"python", "cobol"},
				}
			},
			all:    all,
			errors: []string{"Invalid language_scope: cobol is not a valid Language tag"},
		},
		{
			name: "language scope skipped without languages",
			tag: func() domain.Tag {
				return domain.Tag{
					ID: "flask", Name: "Flask", Category: domain.CategoryLibrary, Source: domain.SourceGitHub,
					Subcategory: "Web", Granularity: "framework", LanguageScope: []string{"cobol"},
				}
			},
			errors: []string{},
		},
		{
			name: "duplicate aliases",
			tag: func() domain.Tag {
				t := validConcept()
				t.Aliases = []string{"rec", "rec"}
				return t
			},
			errors: []string{"Aliases must be unique"},
		},
		{
			name: "self prerequisite with empty collection",
			tag: func() domain.Tag {
				t := validConcept()
				t.Prerequisites = []string{"recursion"}
				return t
			},
			errors: []string{"Tag cannot be a prerequisite of itself"},
		},
		{
			name: "self prerequisite also reported missing",
			tag: func() domain.Tag {
				t := validConcept()
				t.Prerequisites = []string{"recursion", "loops"}
				return t
			},
			all: all,
			errors: []string{
				"Tag cannot be a prerequisite of itself",
				"Invalid prerequisite: recursion does not exist",
			},
		},
		{
			name: "unknown related",
			tag: func() domain.Tag {
				t := validConcept()
				t.Related = []string{"loops", "iteration"}
				return t
			},
			all:    all,
			errors: []string{"Invalid related tag: iteration does not exist"},
		},
		{
			name: "self related",
			tag: func() domain.Tag {
				t := validConcept()
				t.Related = []string{"recursion"}
				return t
			},
			errors: []string{"Tag cannot be related to itself"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.tag(), tt.all)
			if !reflect.DeepEqual(got.Errors, tt.errors) {
				t.Errorf("Validate() errors = %q, want %q", got.Errors, tt.errors)
			}
			if got.Valid != (len(tt.errors) == 0) {
				t.Errorf("Validate() valid = %v with %d errors", got.Valid, len(got.Errors))
			}
		})
	}
}

func TestValidate_Order(t *testing.T) {
	tag := domain.Tag{
		ID:            "Bad ID",
		Category:      domain.CategoryConcept,
		Subcategory:   "Web",
		Difficulty:    "hard",
		Source:        "blog",
		WeightedScore: 2,
		Aliases:       []string{"a", "a"},
		Prerequisites: []string{"Bad ID"},
		Related:       []string{"Bad ID"},
	}
	want := []string{
		"Missing required field: name",
		"ID must contain only lowercase letters, numbers, and hyphens",
		"Invalid subcategory for Concept: Web",
		"Invalid difficulty: hard",
		"Invalid source: blog",
		"weighted_score must be a number between 0 and 1",
		"Aliases must be unique",
		"Tag cannot be a prerequisite of itself",
		"Tag cannot be related to itself",
	}
	got := Validate(tag, nil)
	if !reflect.DeepEqual(got.Errors, want) {
		t.Errorf("Validate() errors =\n%q\nwant\n%q", got.Errors, want)
	}
}

func TestValidate_WeightedScore(t *testing.T) {
	tests := []struct {
		name  string
		score any
		valid bool
	}{
		{name: "zero", score: 0, valid: true},
		{name: "one", score: 1, valid: true},
		{name: "float", score: 0.75, valid: true},
		{name: "numeric string", score: "0.5", valid: true},
		{name: "above range", score: 1.5, valid: false},
		{name: "negative", score: -0.1, valid: false},
		{name: "non numeric", score: "abc", valid: false},
		{name: "absent", score: nil, valid: true},
		{name: "whitespace only", score: "  ", valid: true},
		{name: "padded number", score: " 0.25 ", valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag := validConcept()
			tag.WeightedScore = tt.score
			got := Validate(tag, nil)
			if got.Valid != tt.valid {
				t.Errorf("Validate(weighted_score=%v) valid = %v, want %v (errors %q)", tt.score, got.Valid, tt.valid, got.Errors)
			}
		})
	}
}

func TestValidate_DuplicatePair(t *testing.T) {
	a := domain.Tag{ID: "shared", Name: "A", Category: domain.CategoryTask, Source: domain.SourceManual}
	b := domain.Tag{ID: "shared", Name: "B", Category: domain.CategoryContext, Source: domain.SourceManual}
	all := []domain.Tag{a, b}

	if got := Validate(a, all); got.Valid {
		t.Errorf("Validate(a) should report duplicate, got valid")
	} else if got.Errors[0] != "Duplicate ID: shared already exists in Context" {
		t.Errorf("Validate(a) errors = %q", got.Errors)
	}
	if got := Validate(b, all); got.Valid {
		t.Errorf("Validate(b) should report duplicate, got valid")
	} else if got.Errors[0] != "Duplicate ID: shared already exists in Task" {
		t.Errorf("Validate(b) errors = %q", got.Errors)
	}
}

func TestValidate_IdenticalTwins(t *testing.T) {
	a := domain.Tag{ID: "twin", Name: "Twin", Category: domain.CategoryTask, Source: domain.SourceManual}
	all := []domain.Tag{a, a.Clone()}

	got := Validate(a, all)
	if got.Valid {
		t.Errorf("two stored copies of the same record must collide")
	}
	if got := Validate(a, all[:1]); !got.Valid {
		t.Errorf("re-validating a stored record should pass, got %q", got.Errors)
	}
}

func TestValidate_Idempotent(t *testing.T) {
	tag := validConcept()
	tag.Related = []string{"missing"}
	all := languages("go")

	first := Validate(tag, all)
	second := Validate(tag, all)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Validate() not deterministic: %v vs %v", first, second)
	}
}

func TestValidateUpdate(t *testing.T) {
	stored := validConcept()
	other := domain.Tag{ID: "loops", Name: "Loops", Category: domain.CategoryConcept, Subcategory: "Fundamentals", Difficulty: domain.DifficultyBasic, Source: domain.SourceManual}
	all := []domain.Tag{stored, other}

	updated, err := stored.Merge(domain.Patch{"name": "Recursion (advanced)", "difficulty": "advanced"})
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if got := ValidateUpdate(stored.Key(), updated, all); !got.Valid {
		t.Errorf("ValidateUpdate() errors = %q, want none", got.Errors)
	}

	renamed, _ := stored.Merge(domain.Patch{"id": "loops"})
	got := ValidateUpdate(stored.Key(), renamed, all)
	if got.Valid || got.Errors[0] != "Duplicate ID: loops already exists in Concept" {
		t.Errorf("ValidateUpdate() errors = %q, want duplicate", got.Errors)
	}
}

func TestValidateEndToEnd(t *testing.T) {
	all := languages("python")
	tags := []domain.Tag{
		validConcept(),
		{
			ID: "django", Name: "Django", Category: domain.CategoryLibrary, Source: domain.SourceGitHub,
			Subcategory: "Web", Granularity: "framework", LanguageScope: []string{"python"},
		},
		{ID: "rust", Name: "Rust", Category: domain.CategoryLanguage, Source: domain.SourceTIOBE, Aliases: []string{"rs"}},
		{ID: "healthcare", Name: "Healthcare", Category: domain.CategoryDomain, Source: domain.SourceManual, Description: "Medical software", Aliases: []string{"health"}},
		{ID: "offline", Name: "Offline", Category: domain.CategoryConstraint, Source: domain.SourceManual, WeightedScore: 0.3},
	}

	for _, tag := range tags {
		got := Validate(tag, all)
		if !got.Valid || len(got.Errors) != 0 {
			t.Errorf("Validate(%s) = %+v, want valid", tag.ID, got)
		}
	}
}

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		wantErr   bool
	}{
		{name: "valid value", fieldName: "message", value: "Add tags", wantErr: false},
		{name: "empty string", fieldName: "message", value: "", wantErr: true},
		{name: "whitespace only", fieldName: "message", value: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.fieldName, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequired() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Errorf("expected ValidationError, got %T", err)
				}
				if valErr.Field != tt.fieldName {
					t.Errorf("expected field %s, got %s", tt.fieldName, valErr.Field)
				}
				if !errors.Is(err, ErrInvalidInput) {
					t.Errorf("expected ErrInvalidInput, got %v", err)
				}
			}
		})
	}
}

func TestValidateCategory(t *testing.T) {
	if c, err := ValidateCategory("library"); err != nil || c != domain.CategoryLibrary {
		t.Errorf("ValidateCategory(library) = %v, %v", c, err)
	}
	_, err := ValidateCategory("widgets")
	if !errors.Is(err, ErrInvalidCategory) {
		t.Errorf("ValidateCategory(widgets) error = %v, want ErrInvalidCategory", err)
	}
}
