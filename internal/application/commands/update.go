package commands

import (
	"context"
	"fmt"

	"tagmanager/internal/application"
	"tagmanager/internal/domain"
	"tagmanager/internal/ports"
)

// UpdateTagResult contains the result of updating a tag
type UpdateTagResult struct {
	Tag     *domain.Tag
	Message string
}

// UpdateTagCommand merges a patch into a stored tag after validating the result
type UpdateTagCommand struct {
	repo     ports.TagRepository
	index    ports.ReferenceIndex
	Category string
	ID       string
	Patch    domain.Patch
}

// NewUpdateTagCommand creates a new UpdateTagCommand. index may be nil.
func NewUpdateTagCommand(repo ports.TagRepository, index ports.ReferenceIndex, category, id string, patch domain.Patch) *UpdateTagCommand {
	return &UpdateTagCommand{
		repo:     repo,
		index:    index,
		Category: category,
		ID:       id,
		Patch:    patch,
	}
}

// Validate checks if the update operation is valid
func (c *UpdateTagCommand) Validate() error {
	if err := application.ValidateRequired("id", c.ID); err != nil {
		return err
	}
	_, err := application.ValidateCategory(c.Category)
	return err
}

// Execute runs the update command. The category is pinned: a "category"
// key in the patch is ignored.
func (c *UpdateTagCommand) Execute(ctx context.Context) (*UpdateTagResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	category, _ := application.ValidateCategory(c.Category)
	key := domain.Key{Category: category, ID: c.ID}

	all, err := c.repo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}
	stored, ok := domain.Find(all, key)
	if !ok {
		return nil, &application.NotFoundError{Category: category, ID: c.ID}
	}

	merged, err := stored.Merge(c.Patch)
	if err != nil {
		return nil, &application.ValidationError{Field: "patch", Message: err.Error(), Err: err}
	}
	merged.Category = category

	if result := application.ValidateUpdate(key, merged, all); !result.Valid {
		return nil, &application.ValidationFailedError{Errors: result.Errors}
	}

	updated, err := c.repo.Update(category, c.ID, c.Patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", key, err)
	}
	if updated.ID != c.ID {
		indexDelete(c.index, key)
	}
	indexUpsert(c.index, *updated)

	return &UpdateTagResult{
		Tag:     updated,
		Message: fmt.Sprintf("Updated tag: %s", updated.Key()),
	}, nil
}
