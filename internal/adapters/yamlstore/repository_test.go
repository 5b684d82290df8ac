package yamlstore

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tagmanager/internal/application"
	"tagmanager/internal/domain"
)

const conceptYAML = `- id: recursion
  name: Recursion
  category: Concept
  subcategory: Fundamentals
  difficulty: intermediate
  source: manual
  sources:
    - sicp
- id: arrays
  name: Arrays
  subcategory: Fundamentals
  difficulty: basic
  source: manual
`

const languageYAML = `- id: go
  name: Go
  category: Language
  source: TIOBE
  aliases:
    - golang
`

func setupTestTags(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		"concept.yaml":  conceptYAML,
		"language.yaml": languageYAML,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return dir
}

func TestListAll(t *testing.T) {
	repo := NewRepository(setupTestTags(t))

	tags, err := repo.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(tags) != 3 {
		t.Fatalf("expected 3 tags, got %d", len(tags))
	}

	// concept.yaml sorts before language.yaml, file order is kept
	wantIDs := []string{"recursion", "arrays", "go"}
	for i, id := range wantIDs {
		if tags[i].ID != id {
			t.Errorf("tags[%d].ID = %s, want %s", i, tags[i].ID, id)
		}
	}

	if tags[1].Category != domain.CategoryConcept {
		t.Errorf("category not inferred from file name: %q", tags[1].Category)
	}
	if _, ok := tags[0].Extra["sources"]; !ok {
		t.Errorf("unknown field not preserved: %+v", tags[0].Extra)
	}
}

func TestListCategory_MissingFile(t *testing.T) {
	repo := NewRepository(t.TempDir())

	tags, err := repo.ListCategory(domain.CategoryAgentic)
	if err != nil {
		t.Fatalf("ListCategory failed: %v", err)
	}
	if tags == nil || len(tags) != 0 {
		t.Errorf("expected empty list, got %#v", tags)
	}
}

func TestListCategory_Malformed(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "task.yaml"), []byte("id: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	repo := NewRepository(dir)

	if _, err := repo.ListCategory(domain.CategoryTask); err == nil {
		t.Errorf("expected parse error")
	}
}

func TestCreate_SortsAndPreserves(t *testing.T) {
	dir := setupTestTags(t)
	repo := NewRepository(dir)

	created, err := repo.Create(domain.CategoryConcept, domain.Tag{
		ID:          "closures",
		Name:        "Closures",
		Subcategory: "Advanced",
		Difficulty:  domain.DifficultyAdvanced,
		Source:      domain.SourceManual,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Category != domain.CategoryConcept {
		t.Errorf("created category = %q", created.Category)
	}

	tags, err := repo.ListCategory(domain.CategoryConcept)
	if err != nil {
		t.Fatalf("ListCategory failed: %v", err)
	}
	var got []string
	for _, tag := range tags {
		got = append(got, tag.ID)
	}
	if strings.Join(got, ",") != "arrays,closures,recursion" {
		t.Errorf("file not sorted by id: %v", got)
	}

	content, err := os.ReadFile(filepath.Join(dir, "concept.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "sources:") || !strings.Contains(string(content), "- sicp") {
		t.Errorf("unknown field lost on rewrite:\n%s", content)
	}
	if !strings.HasPrefix(string(content), "- id: arrays\n  name: Arrays\n") {
		t.Errorf("unexpected layout:\n%s", content)
	}

	leftovers, _ := filepath.Glob(filepath.Join(dir, ".tmp-*"))
	if len(leftovers) != 0 {
		t.Errorf("temp files left behind: %v", leftovers)
	}
}

func TestCreate_Duplicate(t *testing.T) {
	repo := NewRepository(setupTestTags(t))

	_, err := repo.Create(domain.CategoryConcept, domain.Tag{ID: "arrays", Name: "Arrays again"})
	if !errors.Is(err, application.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestCreate_NewFile(t *testing.T) {
	dir := t.TempDir()
	repo := NewRepository(filepath.Join(dir, "nested", "tags"))

	if _, err := repo.Create(domain.CategoryTask, domain.Tag{ID: "refactor", Name: "Refactor", Source: domain.SourceManual}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "nested", "tags", "task.yaml")); err != nil {
		t.Errorf("task.yaml not created: %v", err)
	}
}

func TestUpdate(t *testing.T) {
	repo := NewRepository(setupTestTags(t))

	updated, err := repo.Update(domain.CategoryConcept, "arrays", domain.Patch{
		"name":     "Arrays and slices",
		"category": "Library",
		"aliases":  []any{"slices"},
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Name != "Arrays and slices" || updated.Category != domain.CategoryConcept {
		t.Errorf("unexpected update result: %+v", updated)
	}
	if updated.Difficulty != domain.DifficultyBasic {
		t.Errorf("unpatched field lost: %+v", updated)
	}

	tags, _ := repo.ListCategory(domain.CategoryConcept)
	stored, ok := domain.Find(tags, domain.Key{Category: domain.CategoryConcept, ID: "arrays"})
	if !ok || !stored.Equal(*updated) {
		t.Errorf("stored tag = %+v, want %+v", stored, updated)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo := NewRepository(setupTestTags(t))

	_, err := repo.Update(domain.CategoryConcept, "missing", domain.Patch{"name": "x"})
	if !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo := NewRepository(setupTestTags(t))

	if err := repo.Delete(domain.CategoryConcept, "recursion"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	tags, _ := repo.ListCategory(domain.CategoryConcept)
	if len(tags) != 1 || tags[0].ID != "arrays" {
		t.Errorf("unexpected tags after delete: %+v", tags)
	}

	if err := repo.Delete(domain.CategoryConcept, "recursion"); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestLocate(t *testing.T) {
	repo := NewRepository(setupTestTags(t))

	line, err := repo.Locate(domain.CategoryConcept, "arrays")
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if line != 9 {
		t.Errorf("Locate(arrays) = %d, want 9", line)
	}

	if _, err := repo.Locate(domain.CategoryConcept, "missing"); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
