package commands

import (
	"context"
	"log/slog"

	"tagmanager/internal/application"
	"tagmanager/internal/domain"
	"tagmanager/internal/ports"
)

// ReferencesCommand lists the tags that point at an id through
// prerequisites, related or language_scope
type ReferencesCommand struct {
	repo     ports.TagRepository
	index    ports.ReferenceIndex
	TargetID string
}

// NewReferencesCommand creates a new ReferencesCommand. With a nil index
// the references are computed from the repository.
func NewReferencesCommand(repo ports.TagRepository, index ports.ReferenceIndex, targetID string) *ReferencesCommand {
	return &ReferencesCommand{
		repo:     repo,
		index:    index,
		TargetID: targetID,
	}
}

// Validate checks if the references operation is valid
func (c *ReferencesCommand) Validate() error {
	return application.ValidateRequired("tagID", c.TargetID)
}

// Execute runs the references command
func (c *ReferencesCommand) Execute(ctx context.Context) ([]domain.Reference, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	// Files edited outside this process make the index stale
	stale := c.index != nil && c.index.NeedsRebuild()
	if c.index != nil && !stale {
		refs, err := c.index.ReferencesTo(c.TargetID)
		if err == nil {
			return refs, nil
		}
		slog.Warn("reference index query failed, scanning tags", "target", c.TargetID, "error", err)
	}

	all, err := c.repo.ListAll()
	if err != nil {
		return nil, err
	}
	if stale {
		if _, err := c.index.Rebuild(all); err != nil {
			slog.Warn("reference index rebuild failed", "error", err)
		} else {
			slog.Info("reference index was stale, rebuilt", "tags", len(all))
		}
	}
	return domain.FindReferences(all, c.TargetID), nil
}
