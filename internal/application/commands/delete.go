package commands

import (
	"context"
	"fmt"
	"slices"

	"tagmanager/internal/application"
	"tagmanager/internal/domain"
	"tagmanager/internal/ports"
)

// DeleteResult contains the result of a delete operation
type DeleteResult struct {
	Deleted domain.Key
	// Dangling lists references from other tags that now point nowhere
	Dangling []domain.Reference
	Message  string
}

// DeleteTagCommand deletes a tag by key
type DeleteTagCommand struct {
	repo     ports.TagRepository
	index    ports.ReferenceIndex
	Category string
	ID       string
}

// NewDeleteTagCommand creates a new DeleteTagCommand. index may be nil.
func NewDeleteTagCommand(repo ports.TagRepository, index ports.ReferenceIndex, category, id string) *DeleteTagCommand {
	return &DeleteTagCommand{
		repo:     repo,
		index:    index,
		Category: category,
		ID:       id,
	}
}

// Validate checks if the delete operation is valid
func (c *DeleteTagCommand) Validate() error {
	if err := application.ValidateRequired("id", c.ID); err != nil {
		return err
	}
	_, err := application.ValidateCategory(c.Category)
	return err
}

// Execute runs the delete command
func (c *DeleteTagCommand) Execute(ctx context.Context) (*DeleteResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	category, _ := application.ValidateCategory(c.Category)
	key := domain.Key{Category: category, ID: c.ID}

	if err := c.repo.Delete(category, c.ID); err != nil {
		return nil, fmt.Errorf("failed to delete %s: %w", key, err)
	}
	indexDelete(c.index, key)

	refs, err := NewReferencesCommand(c.repo, c.index, c.ID).Execute(ctx)
	if err != nil {
		refs = nil
	}
	// Another tag in a different category may still carry this id
	refs = slices.DeleteFunc(refs, func(r domain.Reference) bool { return r.Source == key })

	msg := fmt.Sprintf("Deleted %s", key)
	if len(refs) > 0 {
		msg = fmt.Sprintf("%s (%d dangling references)", msg, len(refs))
	}
	return &DeleteResult{
		Deleted:  key,
		Dangling: refs,
		Message:  msg,
	}, nil
}
