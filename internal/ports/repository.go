package ports

import "tagmanager/internal/domain"

// TagRepository defines the interface for tag storage operations.
// Implementations persist one collection per category.
type TagRepository interface {
	// List operations
	ListAll() ([]domain.Tag, error)
	ListCategory(category domain.Category) ([]domain.Tag, error)

	// Mutations rewrite the whole category collection
	Create(category domain.Category, tag domain.Tag) (*domain.Tag, error)
	Update(category domain.Category, id string, patch domain.Patch) (*domain.Tag, error)
	Delete(category domain.Category, id string) error

	// Path resolution
	CategoryPath(category domain.Category) string
}
