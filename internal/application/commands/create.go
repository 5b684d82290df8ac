package commands

import (
	"context"
	"fmt"

	"tagmanager/internal/application"
	"tagmanager/internal/domain"
	"tagmanager/internal/ports"
)

// CreateTagResult contains the result of creating a tag
type CreateTagResult struct {
	Tag     *domain.Tag
	Message string
}

// CreateTagCommand validates a new tag against the taxonomy and persists it
type CreateTagCommand struct {
	repo     ports.TagRepository
	index    ports.ReferenceIndex
	Category string
	Tag      domain.Tag
}

// NewCreateTagCommand creates a new CreateTagCommand. index may be nil.
func NewCreateTagCommand(repo ports.TagRepository, index ports.ReferenceIndex, category string, tag domain.Tag) *CreateTagCommand {
	return &CreateTagCommand{
		repo:     repo,
		index:    index,
		Category: category,
		Tag:      tag,
	}
}

// Validate checks the request shape. Taxonomy rules are checked in Execute.
func (c *CreateTagCommand) Validate() error {
	if err := application.ValidateRequired("category", c.Category); err != nil {
		return err
	}
	category, err := application.ValidateCategory(c.Category)
	if err != nil {
		return err
	}

	if c.Tag.Category != "" && c.Tag.Category != category {
		return &application.ValidationError{
			Field:   "category",
			Message: fmt.Sprintf("tag category %s does not match %s", c.Tag.Category, category),
		}
	}
	return nil
}

// Execute runs the create command
func (c *CreateTagCommand) Execute(ctx context.Context) (*CreateTagResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	category, _ := application.ValidateCategory(c.Category)

	candidate := c.Tag.Clone()
	candidate.Category = category

	all, err := c.repo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}
	if result := application.Validate(candidate, all); !result.Valid {
		return nil, &application.ValidationFailedError{Errors: result.Errors}
	}

	created, err := c.repo.Create(category, candidate)
	if err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	indexUpsert(c.index, *created)

	return &CreateTagResult{
		Tag:     created,
		Message: fmt.Sprintf("Created tag: %s", created.Key()),
	}, nil
}
