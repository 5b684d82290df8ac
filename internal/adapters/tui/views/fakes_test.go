package views

import (
	"context"
	"slices"
	"testing"

	"tagmanager/internal/adapters/search"
	"tagmanager/internal/application"
	"tagmanager/internal/application/clientstate"
	"tagmanager/internal/domain"
)

// memAPI is an in-memory TagAPI
type memAPI struct {
	tags []domain.Tag
}

func (m *memAPI) ListTags(ctx context.Context) ([]domain.Tag, error) {
	return slices.Clone(m.tags), nil
}

func (m *memAPI) ListCategory(ctx context.Context, category domain.Category) ([]domain.Tag, error) {
	return domain.GroupByCategory(m.tags)[category], nil
}

func (m *memAPI) CreateTag(ctx context.Context, category domain.Category, tag domain.Tag) (*domain.Tag, error) {
	tag.Category = category
	m.tags = append(m.tags, tag)
	return &tag, nil
}

func (m *memAPI) UpdateTag(ctx context.Context, category domain.Category, id string, patch domain.Patch) (*domain.Tag, error) {
	key := domain.Key{Category: category, ID: id}
	for i, t := range m.tags {
		if t.Key() == key {
			merged, err := t.Merge(patch)
			if err != nil {
				return nil, err
			}
			m.tags[i] = merged
			return &merged, nil
		}
	}
	return nil, &application.NotFoundError{Category: category, ID: id}
}

func (m *memAPI) DeleteTag(ctx context.Context, category domain.Category, id string) error {
	key := domain.Key{Category: category, ID: id}
	m.tags = slices.DeleteFunc(m.tags, func(t domain.Tag) bool { return t.Key() == key })
	return nil
}

func (m *memAPI) Validate(ctx context.Context, tag domain.Tag) (*domain.ValidationResult, error) {
	res := application.Validate(tag, m.tags)
	return &res, nil
}

func (m *memAPI) References(ctx context.Context, category domain.Category, id string) ([]domain.Reference, error) {
	return domain.FindReferences(m.tags, id), nil
}

func (m *memAPI) GitStatus(ctx context.Context) (*domain.GitStatus, error) {
	return &domain.GitStatus{Changes: []domain.FileChange{}}, nil
}

func (m *memAPI) Commit(ctx context.Context, message string) (*domain.GitStatus, error) {
	return &domain.GitStatus{Changes: []domain.FileChange{}}, nil
}

func testTags() []domain.Tag {
	return []domain.Tag{
		{ID: "python", Name: "Python", Category: domain.CategoryLanguage, Source: domain.SourceTIOBE, Aliases: []string{"py"}},
		{ID: "django", Name: "Django", Category: domain.CategoryLibrary, Subcategory: "Web", Source: domain.SourceGitHub,
			Granularity: "framework", LanguageScope: []string{"python"}},
		{ID: "recursion", Name: "Recursion", Category: domain.CategoryConcept, Subcategory: "Fundamentals",
			Difficulty: domain.DifficultyIntermediate, Source: domain.SourceManual},
		{ID: "closures", Name: "Closures", Category: domain.CategoryConcept, Subcategory: "Advanced",
			Difficulty: domain.DifficultyAdvanced, Source: domain.SourceManual, Prerequisites: []string{"recursion"}},
	}
}

func loadedStore(t *testing.T) *clientstate.Store {
	t.Helper()
	store := clientstate.New(&memAPI{tags: testTags()}, clientstate.WithSearcher(search.NewFuzzy()))
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return store
}
