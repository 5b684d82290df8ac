package commands

import (
	"context"
	"errors"
	"slices"

	"tagmanager/internal/application"
	"tagmanager/internal/domain"
	"tagmanager/internal/ports"
)

// memRepository is an in-memory ports.TagRepository
type memRepository struct {
	tags    []domain.Tag
	listErr error
}

var _ ports.TagRepository = (*memRepository)(nil)

func newMemRepository(tags ...domain.Tag) *memRepository {
	return &memRepository{tags: slices.Clone(tags)}
}

func (r *memRepository) ListAll() ([]domain.Tag, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return slices.Clone(r.tags), nil
}

func (r *memRepository) ListCategory(category domain.Category) ([]domain.Tag, error) {
	out := []domain.Tag{}
	for _, t := range r.tags {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memRepository) Create(category domain.Category, tag domain.Tag) (*domain.Tag, error) {
	if _, ok := domain.Find(r.tags, domain.Key{Category: category, ID: tag.ID}); ok {
		return nil, &application.AlreadyExistsError{Category: category, ID: tag.ID}
	}
	tag.Category = category
	r.tags = append(r.tags, tag)
	return &tag, nil
}

func (r *memRepository) Update(category domain.Category, id string, patch domain.Patch) (*domain.Tag, error) {
	i := r.index(category, id)
	if i < 0 {
		return nil, &application.NotFoundError{Category: category, ID: id}
	}
	updated, err := r.tags[i].Merge(patch)
	if err != nil {
		return nil, err
	}
	updated.Category = category
	r.tags[i] = updated
	return &updated, nil
}

func (r *memRepository) Delete(category domain.Category, id string) error {
	i := r.index(category, id)
	if i < 0 {
		return &application.NotFoundError{Category: category, ID: id}
	}
	r.tags = slices.Delete(r.tags, i, i+1)
	return nil
}

func (r *memRepository) CategoryPath(category domain.Category) string {
	return category.FileName()
}

func (r *memRepository) index(category domain.Category, id string) int {
	return slices.IndexFunc(r.tags, func(t domain.Tag) bool {
		return t.Category == category && t.ID == id
	})
}

// fakeVCS records commits
type fakeVCS struct {
	commits []string
	err     error
}

var _ ports.VersionControl = (*fakeVCS)(nil)

func (v *fakeVCS) Status(ctx context.Context) *domain.GitStatus {
	return &domain.GitStatus{Changes: []domain.FileChange{}}
}

func (v *fakeVCS) Commit(ctx context.Context, message string) (*domain.GitStatus, error) {
	if v.err != nil {
		return nil, v.err
	}
	v.commits = append(v.commits, message)
	return v.Status(ctx), nil
}

func (v *fakeVCS) Log(ctx context.Context, limit int) ([]domain.Commit, error) {
	var out []domain.Commit
	for i := len(v.commits) - 1; i >= 0; i-- {
		out = append(out, domain.Commit{Subject: v.commits[i]})
	}
	return out, nil
}

// memSink keeps written exports in memory
type memSink struct {
	written map[string][]byte
}

func (s *memSink) Write(ctx context.Context, name string, data []byte) (string, error) {
	if s.written == nil {
		s.written = map[string][]byte{}
	}
	s.written[name] = data
	return "mem://" + name, nil
}

func python() domain.Tag {
	return domain.Tag{
		ID:       "python",
		Name:     "Python",
		Category: domain.CategoryLanguage,
		Source:   domain.SourceTIOBE,
		Aliases:  []string{"py"},
	}
}

func django() domain.Tag {
	return domain.Tag{
		ID:            "django",
		Name:          "Django",
		Category:      domain.CategoryLibrary,
		Subcategory:   "Web",
		Source:        domain.SourceGitHub,
		Granularity:   "framework",
		LanguageScope: []string{"python"},
	}
}

func recursion() domain.Tag {
	return domain.Tag{
		ID:          "recursion",
		Name:        "Recursion",
		Category:    domain.CategoryConcept,
		Subcategory: "Fundamentals",
		Difficulty:  domain.DifficultyIntermediate,
		Source:      domain.SourceManual,
	}
}

// fakeIndex serves canned references and records rebuilds
type fakeIndex struct {
	stale    bool
	refs     []domain.Reference
	rebuilds int
}

var _ ports.ReferenceIndex = (*fakeIndex)(nil)

func (f *fakeIndex) Open(tagsDir string) error { return nil }
func (f *fakeIndex) Close() error              { return nil }
func (f *fakeIndex) NeedsRebuild() bool        { return f.stale }

func (f *fakeIndex) Rebuild(tags []domain.Tag) (*domain.IndexStats, error) {
	f.rebuilds++
	f.stale = false
	f.refs = nil
	for _, t := range tags {
		f.refs = append(f.refs, domain.ReferencesOf(t)...)
	}
	return &domain.IndexStats{Tags: len(tags), References: len(f.refs)}, nil
}

func (f *fakeIndex) ReferencesTo(targetID string) ([]domain.Reference, error) {
	out := []domain.Reference{}
	for _, r := range f.refs {
		if r.TargetID == targetID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeIndex) ReferencesFrom(source domain.Key) ([]domain.Reference, error) {
	return nil, nil
}

func (f *fakeIndex) Stats() (*domain.IndexStats, error) {
	return &domain.IndexStats{References: len(f.refs)}, nil
}

func (f *fakeIndex) BeginTx() (ports.IndexTx, error) {
	return nil, errors.New("transactions not supported")
}
