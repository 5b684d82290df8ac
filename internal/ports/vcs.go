package ports

import (
	"context"

	"tagmanager/internal/domain"
)

// VersionControl tracks changes to the tag files
type VersionControl interface {
	// Status reports uncommitted changes. Failures of the underlying tool are
	// reported in GitStatus.Error rather than as an error.
	Status(ctx context.Context) *domain.GitStatus
	// Commit stages every change under the tags directory and commits it
	Commit(ctx context.Context, message string) (*domain.GitStatus, error)
	// Log returns up to limit recent commits touching the tags directory
	Log(ctx context.Context, limit int) ([]domain.Commit, error)
}

// ExportSink stores a rendered export bundle
type ExportSink interface {
	// Write stores data under name and returns where it ended up
	Write(ctx context.Context, name string, data []byte) (string, error)
}
