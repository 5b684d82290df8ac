package sqlite

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"tagmanager/internal/domain"
	"tagmanager/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// Index implements ports.ReferenceIndex using SQLite
type Index struct {
	db      *sql.DB
	tagsDir string
	dbPath  string
}

// Ensure Index implements ReferenceIndex
var _ ports.ReferenceIndex = (*Index)(nil)

// Option configures an Index
type Option func(*Index)

// WithDatabasePath stores the index at path instead of the XDG data directory
func WithDatabasePath(path string) Option {
	return func(idx *Index) {
		idx.dbPath = path
	}
}

// NewIndex creates a new SQLite index
func NewIndex(opts ...Option) *Index {
	idx := &Index{}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// Open initializes the index for the given tags directory
func (idx *Index) Open(tagsDir string) error {
	if abs, err := filepath.Abs(tagsDir); err == nil {
		tagsDir = abs
	}
	idx.tagsDir = tagsDir
	if idx.dbPath == "" {
		idx.dbPath = databasePath(tagsDir)
	}

	if err := os.MkdirAll(filepath.Dir(idx.dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	db, err := sql.Open("sqlite", idx.dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	idx.db = db

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;

		CREATE TABLE IF NOT EXISTS tags (
			category TEXT NOT NULL,
			tag_id TEXT NOT NULL,
			name TEXT NOT NULL,
			PRIMARY KEY (category, tag_id)
		);
		CREATE TABLE IF NOT EXISTS refs (
			source_category TEXT NOT NULL,
			source_id TEXT NOT NULL,
			target_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			PRIMARY KEY (source_category, source_id, target_id, kind)
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_tags_id ON tags(tag_id);
		CREATE INDEX IF NOT EXISTS idx_refs_target ON refs(target_id);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	return nil
}

// Close closes the database connection
func (idx *Index) Close() error {
	if idx.db != nil {
		return idx.db.Close()
	}
	return nil
}

// Path returns the database file location
func (idx *Index) Path() string {
	return idx.dbPath
}

// NeedsRebuild returns true if the index was built by another schema
// version, for another tags directory, or never built at all, and when a
// category file was added, removed or edited since it was last indexed
func (idx *Index) NeedsRebuild() bool {
	var version, dirHash, builtAt string

	idx.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&version)
	idx.db.QueryRow("SELECT value FROM meta WHERE key = 'tags_dir_hash'").Scan(&dirHash)
	idx.db.QueryRow("SELECT value FROM meta WHERE key = 'built_at'").Scan(&builtAt)

	if version != schemaVersion || dirHash != hashTagsDir(idx.tagsDir) || builtAt == "" {
		return true
	}

	stored, err := idx.indexedFiles()
	if err != nil {
		return true
	}
	current, err := hashTagFiles(idx.tagsDir)
	if err != nil {
		return true
	}
	return !maps.Equal(stored, current)
}

// fileKeyPrefix marks the meta rows holding a content hash per category file
const fileKeyPrefix = "file:"

// indexedFiles returns the file hashes recorded when the index was written
func (idx *Index) indexedFiles() (map[string]string, error) {
	rows, err := idx.db.Query(`SELECT key, value FROM meta WHERE key LIKE 'file:%'`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	files := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		files[strings.TrimPrefix(key, fileKeyPrefix)] = value
	}
	return files, rows.Err()
}

// hashTagFiles hashes the content of every category file in dir. A missing
// directory has no files.
func hashTagFiles(dir string) (map[string]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	files := make(map[string]string, len(matches))
	for _, path := range matches {
		sum, err := hashFile(path)
		if err != nil {
			return nil, err
		}
		files[filepath.Base(path)] = sum
	}
	return files, nil
}

func hashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:]), nil
}

// stampFile records the current hash of one category file, or forgets it
// when the file no longer exists
func stampFile(tx *sql.Tx, dir, name string) error {
	sum, err := hashFile(filepath.Join(dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		_, err = tx.Exec(`DELETE FROM meta WHERE key = ?`, fileKeyPrefix+name)
		return err
	}
	if err != nil {
		return err
	}
	_, err = tx.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)`, fileKeyPrefix+name, sum)
	return err
}

// databasePath returns the path for the SQLite database
func databasePath(tagsDir string) string {
	// XDG data directory
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "tagmanager", hashTagsDir(tagsDir)+".db")
}

// hashTagsDir returns a short hash of the tags directory
func hashTagsDir(tagsDir string) string {
	h := sha256.Sum256([]byte(tagsDir))
	return hex.EncodeToString(h[:8]) // First 8 bytes = 16 hex chars
}

// ReferencesTo returns every reference naming targetID
func (idx *Index) ReferencesTo(targetID string) ([]domain.Reference, error) {
	return idx.queryRefs(`
		SELECT source_category, source_id, target_id, kind
		FROM refs WHERE target_id = ?
		ORDER BY source_category, source_id, kind
	`, targetID)
}

// ReferencesFrom returns the outgoing references of one tag
func (idx *Index) ReferencesFrom(source domain.Key) ([]domain.Reference, error) {
	return idx.queryRefs(`
		SELECT source_category, source_id, target_id, kind
		FROM refs WHERE source_category = ? AND source_id = ?
		ORDER BY kind, target_id
	`, string(source.Category), source.ID)
}

func (idx *Index) queryRefs(query string, args ...any) ([]domain.Reference, error) {
	rows, err := idx.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	refs := []domain.Reference{}
	for rows.Next() {
		var r domain.Reference
		var category, kind string
		if err := rows.Scan(&category, &r.Source.ID, &r.TargetID, &kind); err != nil {
			return nil, err
		}
		r.Source.Category = domain.Category(category)
		r.Kind = domain.ReferenceKind(kind)
		refs = append(refs, r)
	}

	return refs, rows.Err()
}

// Stats counts the cached tags and references
func (idx *Index) Stats() (*domain.IndexStats, error) {
	stats := &domain.IndexStats{}
	if err := idx.db.QueryRow(`SELECT COUNT(*) FROM tags`).Scan(&stats.Tags); err != nil {
		return nil, err
	}
	if err := idx.db.QueryRow(`SELECT COUNT(*) FROM refs`).Scan(&stats.References); err != nil {
		return nil, err
	}
	return stats, nil
}

// BeginTx starts a new transaction
func (idx *Index) BeginTx() (ports.IndexTx, error) {
	tx, err := idx.db.Begin()
	if err != nil {
		return nil, err
	}
	return &indexTx{tx: tx, tagsDir: idx.tagsDir}, nil
}
