package yamlstore

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"tagmanager/internal/application"
	"tagmanager/internal/domain"
	"tagmanager/internal/ports"
)

// Repository implements ports.TagRepository with one YAML file per category
type Repository struct {
	tagsDir string

	// mu serializes read-modify-write cycles; the files themselves have no locking
	mu sync.Mutex
}

var _ ports.TagRepository = (*Repository)(nil)

// NewRepository creates a new YAML repository rooted at tagsDir
func NewRepository(tagsDir string) *Repository {
	// Expand ~ to home directory
	if strings.HasPrefix(tagsDir, "~") {
		home, _ := os.UserHomeDir()
		tagsDir = filepath.Join(home, tagsDir[1:])
	}
	return &Repository{tagsDir: tagsDir}
}

// Dir returns the directory holding the category files
func (r *Repository) Dir() string {
	return r.tagsDir
}

// CategoryPath returns the YAML file backing a category
func (r *Repository) CategoryPath(category domain.Category) string {
	return filepath.Join(r.tagsDir, category.FileName())
}

// ListAll reads every category file. Tags come back in file-name order,
// then in file order.
func (r *Repository) ListAll() ([]domain.Tag, error) {
	files, err := filepath.Glob(filepath.Join(r.tagsDir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list tag files: %w", err)
	}
	slices.Sort(files)

	results := make([][]domain.Tag, len(files))
	var g errgroup.Group
	for i, file := range files {
		g.Go(func() error {
			tags, err := readFile(file, domain.CategoryFromFile(file))
			if err != nil {
				return err
			}
			results[i] = tags
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := []domain.Tag{}
	for _, tags := range results {
		all = append(all, tags...)
	}
	return all, nil
}

// ListCategory reads one category file. A missing file is an empty category.
func (r *Repository) ListCategory(category domain.Category) ([]domain.Tag, error) {
	return readFile(r.CategoryPath(category), category)
}

// Create appends tag to its category file. The id must be new to that file.
func (r *Repository) Create(category domain.Category, tag domain.Tag) (*domain.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tags, err := r.ListCategory(category)
	if err != nil {
		return nil, err
	}
	if slices.ContainsFunc(tags, func(t domain.Tag) bool { return t.ID == tag.ID }) {
		return nil, &application.AlreadyExistsError{Category: category, ID: tag.ID}
	}

	created := tag.Clone()
	created.Category = category
	tags = append(tags, created)
	if err := r.writeCategory(category, tags); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update merges patch into the stored tag. The category cannot change.
func (r *Repository) Update(category domain.Category, id string, patch domain.Patch) (*domain.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tags, err := r.ListCategory(category)
	if err != nil {
		return nil, err
	}
	i := slices.IndexFunc(tags, func(t domain.Tag) bool { return t.ID == id })
	if i < 0 {
		return nil, &application.NotFoundError{Category: category, ID: id}
	}

	updated, err := tags[i].Merge(patch)
	if err != nil {
		return nil, fmt.Errorf("failed to apply update: %w", err)
	}
	updated.Category = category
	tags[i] = updated

	if err := r.writeCategory(category, tags); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a tag from its category file
func (r *Repository) Delete(category domain.Category, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tags, err := r.ListCategory(category)
	if err != nil {
		return err
	}
	i := slices.IndexFunc(tags, func(t domain.Tag) bool { return t.ID == id })
	if i < 0 {
		return &application.NotFoundError{Category: category, ID: id}
	}
	return r.writeCategory(category, slices.Delete(tags, i, i+1))
}

// Locate returns the 1-based line where the tag's entry starts in its file
func (r *Repository) Locate(category domain.Category, id string) (int, error) {
	data, err := os.ReadFile(r.CategoryPath(category))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, &application.NotFoundError{Category: category, ID: id}
		}
		return 0, fmt.Errorf("failed to read %s: %w", category.FileName(), err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", category.FileName(), err)
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.SequenceNode {
		return 0, &application.NotFoundError{Category: category, ID: id}
	}

	for _, item := range doc.Content[0].Content {
		if item.Kind != yaml.MappingNode {
			continue
		}
		for j := 0; j+1 < len(item.Content); j += 2 {
			if item.Content[j].Value == domain.FieldID && item.Content[j+1].Value == id {
				return item.Line, nil
			}
		}
	}
	return 0, &application.NotFoundError{Category: category, ID: id}
}

func readFile(path string, category domain.Category) ([]domain.Tag, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []domain.Tag{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	var tags []domain.Tag
	if err := yaml.Unmarshal(data, &tags); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	if tags == nil {
		tags = []domain.Tag{}
	}

	// Files written by hand may omit the category; it is implied by the file
	for i := range tags {
		if tags[i].Category == "" {
			tags[i].Category = category
		}
	}
	return tags, nil
}

// writeCategory rewrites a category file, sorted by id. The file is
// replaced atomically so readers never see a partial write.
func (r *Repository) writeCategory(category domain.Category, tags []domain.Tag) error {
	sorted := slices.Clone(tags)
	slices.SortStableFunc(sorted, func(a, b domain.Tag) int {
		return cmp.Compare(a.ID, b.ID)
	})

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(sorted); err != nil {
		return fmt.Errorf("failed to encode %s: %w", category.FileName(), err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode %s: %w", category.FileName(), err)
	}

	if err := os.MkdirAll(r.tagsDir, 0755); err != nil {
		return fmt.Errorf("failed to create tags directory: %w", err)
	}

	tmp, err := os.CreateTemp(r.tagsDir, ".tmp-"+category.FileName()+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", category.FileName(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", category.FileName(), err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", category.FileName(), err)
	}
	if err := os.Rename(tmp.Name(), r.CategoryPath(category)); err != nil {
		return fmt.Errorf("failed to replace %s: %w", category.FileName(), err)
	}
	return nil
}
