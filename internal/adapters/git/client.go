package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"tagmanager/internal/application"
	"tagmanager/internal/domain"
	"tagmanager/internal/ports"
)

const defaultLogLimit = 10

// Client implements ports.VersionControl by running the git CLI inside the
// tags directory
type Client struct {
	dir    string
	binary string
}

var _ ports.VersionControl = (*Client)(nil)

// Option configures the Client
type Option func(*Client)

// WithBinary sets the git executable to run
func WithBinary(path string) Option {
	return func(c *Client) {
		c.binary = path
	}
}

// NewClient creates a git client scoped to dir
func NewClient(dir string, opts ...Option) *Client {
	c := &Client{
		dir:    dir,
		binary: "git",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsAvailable returns true if the git executable can be found
func (c *Client) IsAvailable() bool {
	_, err := exec.LookPath(c.binary)
	return err == nil
}

// Status reports uncommitted changes under the tags directory. Paths are
// relative to the tags directory. A failing git is reported in the Error
// field with no changes.
func (c *Client) Status(ctx context.Context) *domain.GitStatus {
	prefix, err := c.run(ctx, "rev-parse", "--show-prefix")
	if err != nil {
		return &domain.GitStatus{Changes: []domain.FileChange{}, Error: err.Error()}
	}

	out, err := c.run(ctx, "status", "--porcelain", "--untracked-files=all", "--", ".")
	if err != nil {
		return &domain.GitStatus{Changes: []domain.FileChange{}, Error: err.Error()}
	}

	changes := parsePorcelain(out, strings.TrimSpace(prefix))
	return &domain.GitStatus{
		HasChanges: len(changes) > 0,
		Changes:    changes,
	}
}

// Commit stages everything under the tags directory and commits it.
// The message goes to git as a single argument, so no quoting is needed.
func (c *Client) Commit(ctx context.Context, message string) (*domain.GitStatus, error) {
	if err := application.ValidateRequired("message", message); err != nil {
		return nil, err
	}

	if _, err := c.run(ctx, "add", "--", "."); err != nil {
		return nil, err
	}
	if _, err := c.run(ctx, "commit", "-m", message); err != nil {
		return nil, err
	}

	return c.Status(ctx), nil
}

// Log returns recent commits touching the tags directory, newest first
func (c *Client) Log(ctx context.Context, limit int) ([]domain.Commit, error) {
	if limit <= 0 {
		limit = defaultLogLimit
	}

	out, err := c.run(ctx, "log", "--oneline", "-n", strconv.Itoa(limit), "--", ".")
	if err != nil {
		return nil, err
	}
	return parseLog(out), nil
}

// run executes git in the tags directory and returns stdout
func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, c.binary, args...)
	cmd.Dir = c.dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			msg := strings.TrimSpace(stderr.String())
			if msg == "" {
				// git commit reports "nothing to commit" on stdout
				msg = strings.TrimSpace(string(output))
			}
			return "", fmt.Errorf("git %s: %s", args[0], msg)
		}
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return string(output), nil
}

// statusCodes maps porcelain XY codes to file states
var statusCodes = map[string]domain.FileStatus{
	"M ": domain.StatusModified,
	" M": domain.StatusModified,
	"A ": domain.StatusAdded,
	"D ": domain.StatusDeleted,
	"??": domain.StatusUntracked,
}

// parsePorcelain parses `git status --porcelain` output, stripping prefix
// (the tags directory relative to the repository root) from each path
func parsePorcelain(out, prefix string) []domain.FileChange {
	changes := []domain.FileChange{}
	for _, line := range strings.Split(out, "\n") {
		if len(strings.TrimSpace(line)) == 0 || len(line) < 4 {
			continue
		}

		status, ok := statusCodes[line[:2]]
		if !ok {
			status = domain.StatusUnknown
		}
		changes = append(changes, domain.FileChange{
			Status: status,
			File:   strings.TrimPrefix(line[3:], prefix),
		})
	}
	return changes
}

// parseLog parses `git log --oneline` output
func parseLog(out string) []domain.Commit {
	commits := []domain.Commit{}
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		hash, subject, _ := strings.Cut(line, " ")
		commits = append(commits, domain.Commit{Hash: hash, Subject: subject})
	}
	return commits
}
