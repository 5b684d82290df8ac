package sqlite

import (
	"fmt"
	"time"

	"tagmanager/internal/domain"
)

// Rebuild replaces the whole index with the given tags in one transaction
func (idx *Index) Rebuild(tags []domain.Tag) (*domain.IndexStats, error) {
	start := time.Now()

	tx, err := idx.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Clear existing data
	if _, err := tx.Exec(`DELETE FROM tags`); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(`DELETE FROM refs`); err != nil {
		return nil, err
	}

	itx := &indexTx{tx: tx}
	for _, tag := range tags {
		if tag.ID == "" {
			continue
		}
		if err := itx.UpsertTag(tag); err != nil {
			return nil, fmt.Errorf("failed to index %s: %w", tag.Key(), err)
		}
	}

	files, err := hashTagFiles(idx.tagsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to hash tag files: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM meta WHERE key LIKE 'file:%'`); err != nil {
		return nil, err
	}
	for name, sum := range files {
		if _, err := tx.Exec(`INSERT INTO meta (key, value) VALUES (?, ?)`, fileKeyPrefix+name, sum); err != nil {
			return nil, fmt.Errorf("failed to update metadata: %w", err)
		}
	}

	meta := map[string]string{
		"schema_version": schemaVersion,
		"tags_dir_hash":  hashTagsDir(idx.tagsDir),
		"built_at":       time.Now().UTC().Format(time.RFC3339),
	}
	for key, value := range meta {
		if _, err := tx.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)`, key, value); err != nil {
			return nil, fmt.Errorf("failed to update metadata: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	// Count after commit: repeated ids in a list collapse into one row
	stats, err := idx.Stats()
	if err != nil {
		return nil, err
	}
	stats.Duration = time.Since(start)
	return stats, nil
}
