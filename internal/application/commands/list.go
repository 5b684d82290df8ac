package commands

import (
	"context"

	"tagmanager/internal/application"
	"tagmanager/internal/domain"
	"tagmanager/internal/ports"
)

// ListTagsCommand lists every tag, or the tags of one category
type ListTagsCommand struct {
	repo     ports.TagRepository
	Category string
}

// NewListTagsCommand creates a new ListTagsCommand. An empty category
// lists the whole taxonomy.
func NewListTagsCommand(repo ports.TagRepository, category string) *ListTagsCommand {
	return &ListTagsCommand{
		repo:     repo,
		Category: category,
	}
}

// Execute runs the list command
func (c *ListTagsCommand) Execute(ctx context.Context) ([]domain.Tag, error) {
	if c.Category == "" {
		return c.repo.ListAll()
	}

	category, err := application.ValidateCategory(c.Category)
	if err != nil {
		return nil, err
	}
	return c.repo.ListCategory(category)
}

// GetTagCommand fetches a single tag by key
type GetTagCommand struct {
	repo     ports.TagRepository
	Category string
	ID       string
}

// NewGetTagCommand creates a new GetTagCommand
func NewGetTagCommand(repo ports.TagRepository, category, id string) *GetTagCommand {
	return &GetTagCommand{
		repo:     repo,
		Category: category,
		ID:       id,
	}
}

// Validate checks if the get operation is valid
func (c *GetTagCommand) Validate() error {
	if err := application.ValidateRequired("id", c.ID); err != nil {
		return err
	}
	_, err := application.ValidateCategory(c.Category)
	return err
}

// Execute runs the get command
func (c *GetTagCommand) Execute(ctx context.Context) (*domain.Tag, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	category, _ := application.ValidateCategory(c.Category)

	tags, err := c.repo.ListCategory(category)
	if err != nil {
		return nil, err
	}
	tag, ok := domain.Find(tags, domain.Key{Category: category, ID: c.ID})
	if !ok {
		return nil, &application.NotFoundError{Category: category, ID: c.ID}
	}
	return &tag, nil
}
