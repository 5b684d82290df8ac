package sqlite

import (
	"database/sql"
	"fmt"
	"slices"

	"tagmanager/internal/domain"
	"tagmanager/internal/ports"
)

// indexTx implements ports.IndexTx. On commit the category files it
// touched are stamped as indexed.
type indexTx struct {
	tx      *sql.Tx
	tagsDir string
	touched []domain.Category
}

// Ensure indexTx implements IndexTx
var _ ports.IndexTx = (*indexTx)(nil)

// UpsertTag inserts or updates a tag and replaces its outgoing references
func (t *indexTx) UpsertTag(tag domain.Tag) error {
	t.touch(tag.Category)
	if _, err := t.tx.Exec(`
		INSERT OR REPLACE INTO tags (category, tag_id, name)
		VALUES (?, ?, ?)
	`, string(tag.Category), tag.ID, tag.Name); err != nil {
		return err
	}
	if err := t.deleteRefsFrom(tag.Key()); err != nil {
		return err
	}
	for _, ref := range domain.ReferencesOf(tag) {
		if err := t.insertRef(ref); err != nil {
			return err
		}
	}
	return nil
}

// DeleteTag removes a tag and its outgoing references.
// References pointing at it stay, so dangling links remain visible.
func (t *indexTx) DeleteTag(key domain.Key) error {
	t.touch(key.Category)
	if _, err := t.tx.Exec(`DELETE FROM tags WHERE category = ? AND tag_id = ?`, string(key.Category), key.ID); err != nil {
		return err
	}
	return t.deleteRefsFrom(key)
}

func (t *indexTx) deleteRefsFrom(key domain.Key) error {
	_, err := t.tx.Exec(`DELETE FROM refs WHERE source_category = ? AND source_id = ?`, string(key.Category), key.ID)
	return err
}

func (t *indexTx) insertRef(ref domain.Reference) error {
	_, err := t.tx.Exec(`
		INSERT OR REPLACE INTO refs (source_category, source_id, target_id, kind)
		VALUES (?, ?, ?, ?)
	`, string(ref.Source.Category), ref.Source.ID, ref.TargetID, string(ref.Kind))
	return err
}

func (t *indexTx) touch(category domain.Category) {
	if !slices.Contains(t.touched, category) {
		t.touched = append(t.touched, category)
	}
}

// Commit stamps the touched files and commits the transaction
func (t *indexTx) Commit() error {
	for _, category := range t.touched {
		if err := stampFile(t.tx, t.tagsDir, category.FileName()); err != nil {
			_ = t.tx.Rollback()
			return fmt.Errorf("failed to stamp %s: %w", category.FileName(), err)
		}
	}
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *indexTx) Rollback() error {
	return t.tx.Rollback()
}
