package commands

import (
	"context"
	"fmt"

	"tagmanager/internal/application"
	"tagmanager/internal/domain"
	"tagmanager/internal/ports"
)

// GitStatusCommand reports uncommitted changes under the tags directory
type GitStatusCommand struct {
	vcs ports.VersionControl
}

// NewGitStatusCommand creates a new GitStatusCommand
func NewGitStatusCommand(vcs ports.VersionControl) *GitStatusCommand {
	return &GitStatusCommand{vcs: vcs}
}

// Execute runs the status command. Git failures are reported in the
// status itself, never as an error.
func (c *GitStatusCommand) Execute(ctx context.Context) *domain.GitStatus {
	return c.vcs.Status(ctx)
}

// GitCommitResult contains the result of a commit
type GitCommitResult struct {
	Status  *domain.GitStatus
	Message string
}

// GitCommitCommand stages and commits every change under the tags directory
type GitCommitCommand struct {
	vcs     ports.VersionControl
	Message string
}

// NewGitCommitCommand creates a new GitCommitCommand
func NewGitCommitCommand(vcs ports.VersionControl, message string) *GitCommitCommand {
	return &GitCommitCommand{
		vcs:     vcs,
		Message: message,
	}
}

// Validate checks if the commit operation is valid
func (c *GitCommitCommand) Validate() error {
	return application.ValidateRequired("message", c.Message)
}

// Execute runs the commit command
func (c *GitCommitCommand) Execute(ctx context.Context) (*GitCommitResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	status, err := c.vcs.Commit(ctx, c.Message)
	if err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return &GitCommitResult{
		Status:  status,
		Message: fmt.Sprintf("Committed: %s", c.Message),
	}, nil
}

// GitLogCommand lists recent commits touching the tags directory
type GitLogCommand struct {
	vcs   ports.VersionControl
	Limit int
}

// NewGitLogCommand creates a new GitLogCommand
func NewGitLogCommand(vcs ports.VersionControl, limit int) *GitLogCommand {
	return &GitLogCommand{
		vcs:   vcs,
		Limit: limit,
	}
}

// Execute runs the log command
func (c *GitLogCommand) Execute(ctx context.Context) ([]domain.Commit, error) {
	if c.Limit < 0 {
		return nil, &application.ValidationError{Field: "limit", Message: "limit must not be negative"}
	}
	return c.vcs.Log(ctx, c.Limit)
}
