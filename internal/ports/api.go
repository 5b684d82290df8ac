package ports

import (
	"context"

	"tagmanager/internal/domain"
)

// TagAPI is the remote surface the client state layer talks to.
// Every call may fail with a transport error.
type TagAPI interface {
	ListTags(ctx context.Context) ([]domain.Tag, error)
	ListCategory(ctx context.Context, category domain.Category) ([]domain.Tag, error)
	CreateTag(ctx context.Context, category domain.Category, tag domain.Tag) (*domain.Tag, error)
	UpdateTag(ctx context.Context, category domain.Category, id string, patch domain.Patch) (*domain.Tag, error)
	DeleteTag(ctx context.Context, category domain.Category, id string) error
	Validate(ctx context.Context, tag domain.Tag) (*domain.ValidationResult, error)
	References(ctx context.Context, category domain.Category, id string) ([]domain.Reference, error)

	GitStatus(ctx context.Context) (*domain.GitStatus, error)
	Commit(ctx context.Context, message string) (*domain.GitStatus, error)
}
