// Package apiclient implements ports.TagAPI over the tag REST API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tagmanager/internal/application"
	"tagmanager/internal/domain"
	"tagmanager/internal/ports"
)

const defaultTimeout = 30 * time.Second

// APIError is a non-2xx answer from the server
type APIError struct {
	Status  int
	Message string
	Errors  []string
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Errors, "; "))
	}
	return e.Message
}

// Is maps HTTP statuses onto the application sentinels
func (e *APIError) Is(target error) bool {
	switch target {
	case application.ErrNotFound:
		return e.Status == http.StatusNotFound
	case application.ErrValidation:
		return len(e.Errors) > 0
	}
	return false
}

// Client talks to a tag server
type Client struct {
	baseURL string
	http    *http.Client
}

var _ ports.TagAPI = (*Client)(nil)

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// New creates a client for the server at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type tagsBody struct {
	Tags []domain.Tag `json:"tags"`
}

type tagBody struct {
	Tag *domain.Tag `json:"tag"`
}

// ListTags fetches the whole taxonomy
func (c *Client) ListTags(ctx context.Context) ([]domain.Tag, error) {
	var out tagsBody
	if err := c.do(ctx, http.MethodGet, "/api/tags", nil, &out); err != nil {
		return nil, err
	}
	return nonNil(out.Tags), nil
}

// ListCategory fetches one category
func (c *Client) ListCategory(ctx context.Context, category domain.Category) ([]domain.Tag, error) {
	var out tagsBody
	if err := c.do(ctx, http.MethodGet, "/api/tags/"+url.PathEscape(string(category)), nil, &out); err != nil {
		return nil, err
	}
	return nonNil(out.Tags), nil
}

// CreateTag creates a tag and returns the stored record
func (c *Client) CreateTag(ctx context.Context, category domain.Category, tag domain.Tag) (*domain.Tag, error) {
	body := struct {
		Category domain.Category `json:"category"`
		Tag      domain.Tag      `json:"tag"`
	}{category, tag}

	var out tagBody
	if err := c.do(ctx, http.MethodPost, "/api/tags", body, &out); err != nil {
		return nil, err
	}
	return out.Tag, nil
}

// UpdateTag sends a partial update and returns the stored record
func (c *Client) UpdateTag(ctx context.Context, category domain.Category, id string, patch domain.Patch) (*domain.Tag, error) {
	var out tagBody
	if err := c.do(ctx, http.MethodPut, tagPath(category, id), patch, &out); err != nil {
		return nil, err
	}
	return out.Tag, nil
}

// DeleteTag deletes a tag
func (c *Client) DeleteTag(ctx context.Context, category domain.Category, id string) error {
	return c.do(ctx, http.MethodDelete, tagPath(category, id), nil, nil)
}

// Validate checks a tag on the server without storing it
func (c *Client) Validate(ctx context.Context, tag domain.Tag) (*domain.ValidationResult, error) {
	var out domain.ValidationResult
	if err := c.do(ctx, http.MethodPost, "/api/validate", tagBody{Tag: &tag}, &out); err != nil {
		return nil, err
	}
	if out.Errors == nil {
		out.Errors = []string{}
	}
	return &out, nil
}

// References lists the tags that point at the given tag
func (c *Client) References(ctx context.Context, category domain.Category, id string) ([]domain.Reference, error) {
	var out struct {
		References []domain.Reference `json:"references"`
	}
	if err := c.do(ctx, http.MethodGet, tagPath(category, id)+"/references", nil, &out); err != nil {
		return nil, err
	}
	return out.References, nil
}

// GitStatus fetches the working tree status of the tag files
func (c *Client) GitStatus(ctx context.Context) (*domain.GitStatus, error) {
	var out domain.GitStatus
	if err := c.do(ctx, http.MethodGet, "/api/git/status", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Commit commits the tag files and returns the new status
func (c *Client) Commit(ctx context.Context, message string) (*domain.GitStatus, error) {
	var out struct {
		Success bool              `json:"success"`
		Status  *domain.GitStatus `json:"status"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/git/commit", map[string]string{"message": message}, &out); err != nil {
		return nil, err
	}
	return out.Status, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: failed to read response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, data)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s %s: failed to decode response: %w", method, path, err)
	}
	return nil
}

func decodeError(status int, data []byte) error {
	var body struct {
		Error  string   `json:"error"`
		Errors []string `json:"errors"`
	}
	if err := json.Unmarshal(data, &body); err != nil || body.Error == "" {
		body.Error = strings.TrimSpace(string(data))
		if body.Error == "" {
			body.Error = http.StatusText(status)
		}
	}
	return &APIError{Status: status, Message: body.Error, Errors: body.Errors}
}

func tagPath(category domain.Category, id string) string {
	return "/api/tags/" + url.PathEscape(string(category)) + "/" + url.PathEscape(id)
}

func nonNil(tags []domain.Tag) []domain.Tag {
	if tags == nil {
		return []domain.Tag{}
	}
	return tags
}

// IsValidationError reports whether err carries rule violations and
// returns them
func IsValidationError(err error) ([]string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && len(apiErr.Errors) > 0 {
		return apiErr.Errors, true
	}
	return nil, false
}
