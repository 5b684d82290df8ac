package commands

import (
	"context"
	"fmt"
	"log/slog"

	"tagmanager/internal/domain"
	"tagmanager/internal/ports"
)

// SyncIndexCommand rebuilds the reference index from the repository
type SyncIndexCommand struct {
	repo  ports.TagRepository
	index ports.ReferenceIndex
	Force bool
}

// NewSyncIndexCommand creates a new SyncIndexCommand
func NewSyncIndexCommand(repo ports.TagRepository, index ports.ReferenceIndex, force bool) *SyncIndexCommand {
	return &SyncIndexCommand{
		repo:  repo,
		index: index,
		Force: force,
	}
}

// Execute rebuilds the index when forced or stale. It returns nil stats
// when the index was already current.
func (c *SyncIndexCommand) Execute(ctx context.Context) (*domain.IndexStats, error) {
	if !c.Force && !c.index.NeedsRebuild() {
		return nil, nil
	}

	tags, err := c.repo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}
	stats, err := c.index.Rebuild(tags)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild index: %w", err)
	}
	slog.Info("reference index rebuilt",
		"tags", stats.Tags,
		"references", stats.References,
		"duration", stats.Duration,
	)
	return stats, nil
}

// indexUpsert refreshes one tag in the index. Failures leave the index
// stale but never fail the mutation: the YAML files are the source of truth.
func indexUpsert(index ports.ReferenceIndex, tag domain.Tag) {
	updateIndex(index, tag.Key(), func(tx ports.IndexTx) error { return tx.UpsertTag(tag) })
}

func indexDelete(index ports.ReferenceIndex, key domain.Key) {
	updateIndex(index, key, func(tx ports.IndexTx) error { return tx.DeleteTag(key) })
}

func updateIndex(index ports.ReferenceIndex, key domain.Key, apply func(ports.IndexTx) error) {
	if index == nil {
		return
	}
	tx, err := index.BeginTx()
	if err != nil {
		slog.Warn("reference index update skipped", "tag", key.String(), "error", err)
		return
	}
	if err := apply(tx); err != nil {
		_ = tx.Rollback()
		slog.Warn("reference index update failed", "tag", key.String(), "error", err)
		return
	}
	if err := tx.Commit(); err != nil {
		slog.Warn("reference index commit failed", "tag", key.String(), "error", err)
	}
}
