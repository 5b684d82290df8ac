package mcp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tagmanager/internal/adapters/search"
	"tagmanager/internal/adapters/yamlstore"
	"tagmanager/internal/domain"
)

const languageYAML = `- id: python
  name: Python
  source: TIOBE
  aliases:
    - py
`

const libraryYAML = `- id: django
  name: Django
  subcategory: Web
  source: GitHub
  granularity: framework
  language_scope:
    - python
`

type stubVCS struct {
	committed string
}

func (v *stubVCS) Status(ctx context.Context) *domain.GitStatus {
	if v.committed != "" {
		return &domain.GitStatus{Changes: []domain.FileChange{}}
	}
	return &domain.GitStatus{
		HasChanges: true,
		Changes:    []domain.FileChange{{Status: domain.StatusModified, File: "library.yaml"}},
	}
}

func (v *stubVCS) Commit(ctx context.Context, message string) (*domain.GitStatus, error) {
	v.committed = message
	return v.Status(ctx), nil
}

func (v *stubVCS) Log(ctx context.Context, limit int) ([]domain.Commit, error) {
	return nil, nil
}

func setupServices(t *testing.T) (Services, *stubVCS) {
	t.Helper()

	dir := t.TempDir()
	for name, content := range map[string]string{
		"language.yaml": languageYAML,
		"library.yaml":  libraryYAML,
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	vcs := &stubVCS{}
	return Services{
		Repo:     yamlstore.NewRepository(dir),
		VCS:      vcs,
		Searcher: search.NewFuzzy(),
	}, vcs
}

func call(t *testing.T, h server.ToolHandlerFunc, args map[string]any) (string, bool) {
	t.Helper()

	var req mcp.CallToolRequest
	req.Params.Arguments = args
	result, err := h(context.Background(), req)
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	var sb strings.Builder
	for _, c := range result.Content {
		switch tc := c.(type) {
		case mcp.TextContent:
			sb.WriteString(tc.Text)
		case *mcp.TextContent:
			sb.WriteString(tc.Text)
		}
	}
	return sb.String(), result.IsError
}

func TestReadTools(t *testing.T) {
	svc, _ := setupServices(t)

	tests := []struct {
		name    string
		handler server.ToolHandlerFunc
		args    map[string]any
		want    string
		isError bool
	}{
		{"list all", listHandler(svc), nil, "Library  django  Django", false},
		{"list category", listHandler(svc), map[string]any{"category": "language"}, "Language  python  Python", false},
		{"list bad category", listHandler(svc), map[string]any{"category": "Nope"}, "invalid category", true},
		{"get", getHandler(svc), map[string]any{"category": "Library", "id": "django"}, "granularity: framework", false},
		{"get missing", getHandler(svc), map[string]any{"category": "Library", "id": "flask"}, "not found", true},
		{"search typo", searchHandler(svc), map[string]any{"query": "djngo"}, "django", false},
		{"search filter", searchHandler(svc), map[string]any{"category": "Library", "language": "go"}, "No results.", false},
		{"references", referencesHandler(svc), map[string]any{"id": "python"}, "Library/django", false},
		{"references none", referencesHandler(svc), map[string]any{"id": "django"}, "No references.", false},
		{"git status", gitStatusHandler(svc), nil, "library.yaml", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, isError := call(t, tt.handler, tt.args)
			if isError != tt.isError {
				t.Errorf("isError = %v, want %v (%s)", isError, tt.isError, text)
			}
			if !strings.Contains(text, tt.want) {
				t.Errorf("output %q does not contain %q", text, tt.want)
			}
		})
	}
}

func TestValidateTool(t *testing.T) {
	svc, _ := setupServices(t)
	h := validateHandler(svc)

	text, _ := call(t, h, map[string]any{
		"tag": `{"id": "flask", "name": "Flask", "category": "Library", "source": "GitHub", "subcategory": "Web", "granularity": "framework", "language_scope": ["python"]}`,
	})
	if text != "valid" {
		t.Errorf("expected valid, got %q", text)
	}

	text, _ = call(t, h, map[string]any{
		"tag": "id: django\nname: Django 2\ncategory: Library\nsource: GitHub\n",
	})
	for _, want := range []string{"invalid:", "Duplicate ID: django already exists in Library", "Library requires field: granularity"} {
		if !strings.Contains(text, want) {
			t.Errorf("output %q does not contain %q", text, want)
		}
	}

	if _, isError := call(t, h, map[string]any{"tag": "  "}); !isError {
		t.Errorf("empty tag should be a tool error")
	}
}

func TestWriteTools(t *testing.T) {
	svc, vcs := setupServices(t)

	text, isError := call(t, createHandler(svc), map[string]any{
		"category": "Library",
		"tag":      `{"id": "flask", "name": "Flask", "source": "GitHub", "subcategory": "Web", "granularity": "framework", "language_scope": ["python"]}`,
	})
	if isError || !strings.Contains(text, "Created tag: Library/flask") {
		t.Fatalf("create: %q", text)
	}

	text, isError = call(t, createHandler(svc), map[string]any{
		"category": "Library",
		"tag":      `{"id": "flask", "name": "Flask", "source": "GitHub"}`,
	})
	if !isError || !strings.Contains(text, "- Duplicate ID: flask already exists in Library") {
		t.Errorf("duplicate create: isError=%v %q", isError, text)
	}

	text, isError = call(t, updateHandler(svc), map[string]any{
		"category": "Library",
		"id":       "flask",
		"fields":   `{"description": "Micro framework"}`,
	})
	if isError || !strings.Contains(text, "Micro framework") {
		t.Errorf("update: isError=%v %q", isError, text)
	}

	text, isError = call(t, deleteHandler(svc), map[string]any{"category": "Language", "id": "python"})
	if isError || !strings.Contains(text, "Library/django still lists it in language_scope") {
		t.Errorf("delete: isError=%v %q", isError, text)
	}

	if _, isError := call(t, commitHandler(svc), map[string]any{"message": ""}); !isError {
		t.Errorf("commit without message should fail")
	}
	text, isError = call(t, commitHandler(svc), map[string]any{"message": "Add flask"})
	if isError || vcs.committed != "Add flask" {
		t.Errorf("commit: isError=%v %q committed=%q", isError, text, vcs.committed)
	}
}
