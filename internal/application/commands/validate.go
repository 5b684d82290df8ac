package commands

import (
	"context"
	"fmt"

	"tagmanager/internal/application"
	"tagmanager/internal/domain"
	"tagmanager/internal/ports"
)

// ValidateTagCommand checks a candidate tag without persisting it
type ValidateTagCommand struct {
	repo ports.TagRepository
	Tag  domain.Tag
}

// NewValidateTagCommand creates a new ValidateTagCommand
func NewValidateTagCommand(repo ports.TagRepository, tag domain.Tag) *ValidateTagCommand {
	return &ValidateTagCommand{
		repo: repo,
		Tag:  tag,
	}
}

// Execute validates the tag against the stored taxonomy. Rule violations
// are part of the result, not an error.
func (c *ValidateTagCommand) Execute(ctx context.Context) (*domain.ValidationResult, error) {
	all, err := c.repo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}
	result := application.Validate(c.Tag, all)
	return &result, nil
}
