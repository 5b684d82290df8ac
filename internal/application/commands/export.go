package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tagmanager/internal/domain"
	"tagmanager/internal/ports"
)

// DefaultExportName is the object name used when none is given
const DefaultExportName = "tags-data.json"

// ExportResult contains the result of an export
type ExportResult struct {
	Location string
	Stats    domain.ExportStats
	Message  string
}

// ExportCommand writes the whole taxonomy as one JSON bundle
type ExportCommand struct {
	repo ports.TagRepository
	sink ports.ExportSink
	Name string
	now  func() time.Time
}

// NewExportCommand creates a new ExportCommand
func NewExportCommand(repo ports.TagRepository, sink ports.ExportSink, name string) *ExportCommand {
	if name == "" {
		name = DefaultExportName
	}
	return &ExportCommand{
		repo: repo,
		sink: sink,
		Name: name,
		now:  time.Now,
	}
}

// Execute runs the export command
func (c *ExportCommand) Execute(ctx context.Context) (*ExportResult, error) {
	tags, err := c.repo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}

	bundle := domain.NewExportBundle(tags, c.now())
	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}

	location, err := c.sink.Write(ctx, c.Name, append(data, '\n'))
	if err != nil {
		return nil, fmt.Errorf("failed to write export: %w", err)
	}
	return &ExportResult{
		Location: location,
		Stats:    bundle.Stats,
		Message:  fmt.Sprintf("Exported %d tags to %s", bundle.Stats.Total, location),
	}, nil
}
