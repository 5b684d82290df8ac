package application

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strings"

	"github.com/spf13/cast"

	"tagmanager/internal/domain"
)

var idPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// requiredFields must be set on every tag, in reporting order
var requiredFields = []string{domain.FieldID, domain.FieldName, domain.FieldCategory, domain.FieldSource}

// Validate checks candidate against the taxonomy rules and the rest of the
// collection. It never fails; violations are returned in a fixed order:
// required fields, id format, id uniqueness, category, category-specific
// fields, subcategory, difficulty, source, language scope, score, aliases,
// prerequisites, related.
//
// A record in all counts as the candidate itself only when it is value-equal
// to it, and only the first such record is skipped. Any other record with
// the same id, in any category, is a duplicate.
func Validate(candidate domain.Tag, all []domain.Tag) domain.ValidationResult {
	errs := []string{}

	for _, field := range requiredFields {
		if !candidate.HasField(field) {
			errs = append(errs, fmt.Sprintf("Missing required field: %s", field))
		}
	}

	if candidate.ID != "" && !idPattern.MatchString(candidate.ID) {
		errs = append(errs, "ID must contain only lowercase letters, numbers, and hyphens")
	}

	if candidate.ID != "" {
		if dup, ok := findDuplicate(candidate, all); ok {
			errs = append(errs, fmt.Sprintf("Duplicate ID: %s already exists in %s", candidate.ID, dup.Category))
		}
	}

	if candidate.Category != "" && !candidate.Category.Valid() {
		errs = append(errs, fmt.Sprintf("Invalid category: %s", candidate.Category))
	}

	rule, known := candidate.Category.Rule()
	if candidate.Category != "" && known {
		for _, field := range rule.Required {
			if !candidate.HasField(field) {
				errs = append(errs, fmt.Sprintf("%s requires field: %s", candidate.Category, field))
			}
		}
	}

	if candidate.Subcategory != "" && known && rule.Subcategories != nil {
		if !slices.Contains(rule.Subcategories, candidate.Subcategory) {
			errs = append(errs, fmt.Sprintf("Invalid subcategory for %s: %s", candidate.Category, candidate.Subcategory))
		}
	}

	if candidate.Difficulty != "" && !candidate.Difficulty.Valid() {
		errs = append(errs, fmt.Sprintf("Invalid difficulty: %s", candidate.Difficulty))
	}

	if candidate.Source != "" && !candidate.Source.Valid() {
		errs = append(errs, fmt.Sprintf("Invalid source: %s", candidate.Source))
	}

	if len(candidate.LanguageScope) > 0 {
		languages := languageIDs(all)
		if len(languages) > 0 {
			for _, lang := range candidate.LanguageScope {
				if _, ok := languages[lang]; !ok {
					errs = append(errs, fmt.Sprintf("Invalid language_scope: %s is not a valid Language tag", lang))
				}
			}
		}
	}

	if candidate.HasField(domain.FieldWeightedScore) && !validScore(candidate.WeightedScore) {
		errs = append(errs, "weighted_score must be a number between 0 and 1")
	}

	if len(candidate.Aliases) > 0 && hasDuplicates(candidate.Aliases) {
		errs = append(errs, "Aliases must be unique")
	}

	knownIDs := domain.IDs(all)
	errs = append(errs, checkRelations(candidate, candidate.Prerequisites, knownIDs,
		"Tag cannot be a prerequisite of itself", "Invalid prerequisite: %s does not exist")...)
	errs = append(errs, checkRelations(candidate, candidate.Related, knownIDs,
		"Tag cannot be related to itself", "Invalid related tag: %s does not exist")...)

	return domain.ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// ValidateUpdate validates the merged result of an update. The stored
// record being replaced (the first one matching key) is left out of all so
// it neither collides with the candidate nor vouches for its own id.
func ValidateUpdate(key domain.Key, candidate domain.Tag, all []domain.Tag) domain.ValidationResult {
	return Validate(candidate, WithoutKey(all, key))
}

// WithoutKey returns a copy of tags with the first record matching key removed
func WithoutKey(tags []domain.Tag, key domain.Key) []domain.Tag {
	out := make([]domain.Tag, 0, len(tags))
	removed := false
	for _, t := range tags {
		if !removed && t.Key() == key {
			removed = true
			continue
		}
		out = append(out, t)
	}
	return out
}

func findDuplicate(candidate domain.Tag, all []domain.Tag) (domain.Tag, bool) {
	skippedSelf := false
	for _, t := range all {
		if t.ID != candidate.ID {
			continue
		}
		if !skippedSelf && t.Equal(candidate) {
			skippedSelf = true
			continue
		}
		return t, true
	}
	return domain.Tag{}, false
}

func languageIDs(all []domain.Tag) map[string]struct{} {
	ids := map[string]struct{}{}
	for _, t := range all {
		if t.Category == domain.CategoryLanguage {
			ids[t.ID] = struct{}{}
		}
	}
	return ids
}

func validScore(v any) bool {
	if s, ok := v.(string); ok {
		// blank means unset
		if s = strings.TrimSpace(s); s == "" {
			return true
		}
		v = s
	}
	score, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(score) {
		return false
	}
	return score >= 0 && score <= 1
}

func hasDuplicates(values []string) bool {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			return true
		}
		seen[v] = struct{}{}
	}
	return false
}

func checkRelations(candidate domain.Tag, ids []string, known map[string]struct{}, selfMsg, missingFmt string) []string {
	if len(ids) == 0 {
		return nil
	}
	var errs []string
	if slices.Contains(ids, candidate.ID) {
		errs = append(errs, selfMsg)
	}
	if len(known) == 0 {
		return errs
	}
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			errs = append(errs, fmt.Sprintf(missingFmt, id))
		}
	}
	return errs
}

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts field names to space-separated words
// for more readable error messages (e.g., "language_scope" -> "language scope")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"id":      "ID",
		"tagID":   "tag ID",
		"message": "commit message",
	}
	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return strings.ReplaceAll(fieldName, "_", " ")
}

// ValidateCategory resolves a category name, accepting any letter case.
// Returns a ValidationError wrapping ErrInvalidCategory for unknown names.
func ValidateCategory(name string) (domain.Category, error) {
	c, ok := domain.ParseCategory(name)
	if !ok {
		return "", &ValidationError{
			Field:   "category",
			Message: fmt.Sprintf("invalid category: %s", name),
			Err:     ErrInvalidCategory,
		}
	}
	return c, nil
}
