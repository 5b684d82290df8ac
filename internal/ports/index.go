package ports

import "tagmanager/internal/domain"

// ReferenceIndex provides cached lookups over the references between tags.
// It is derived from the TagRepository and can always be rebuilt from it.
type ReferenceIndex interface {
	// Lifecycle
	Open(tagsDir string) error
	Close() error

	// Sync operations
	NeedsRebuild() bool
	Rebuild(tags []domain.Tag) (*domain.IndexStats, error)

	// Reference queries
	ReferencesTo(targetID string) ([]domain.Reference, error)
	ReferencesFrom(source domain.Key) ([]domain.Reference, error)
	Stats() (*domain.IndexStats, error)

	// Batch updates (for single-tag mutations)
	BeginTx() (IndexTx, error)
}

// IndexTx represents a transaction for atomic cache updates
type IndexTx interface {
	// UpsertTag replaces the cached row and outgoing references of tag
	UpsertTag(tag domain.Tag) error
	DeleteTag(key domain.Key) error

	// Transaction control
	Commit() error
	Rollback() error
}
