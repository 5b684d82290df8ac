package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"

	"tagmanager/internal/application/commands"
	"tagmanager/internal/domain"
	"tagmanager/internal/ports"
)

// Services are the collaborators the tools run commands against.
// Index may be nil.
type Services struct {
	Repo     ports.TagRepository
	Index    ports.ReferenceIndex
	VCS      ports.VersionControl
	Searcher domain.Searcher
}

// RegisterReadTools adds all read-only tag tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, svc Services) {
	s.AddTool(listTool(), listHandler(svc))
	s.AddTool(getTool(), getHandler(svc))
	s.AddTool(searchTool(), searchHandler(svc))
	s.AddTool(validateTool(), validateHandler(svc))
	s.AddTool(referencesTool(), referencesHandler(svc))
	s.AddTool(gitStatusTool(), gitStatusHandler(svc))
}

func categoryNames() []string {
	names := make([]string, len(domain.Categories))
	for i, c := range domain.Categories {
		names[i] = string(c)
	}
	return names
}

// --- list_tags ---

func listTool() mcp.Tool {
	return mcp.NewTool("list_tags",
		mcp.WithDescription("List tags. Without a category lists the whole taxonomy."),
		mcp.WithString("category",
			mcp.Description("Category to list. Omit to list every tag."),
			mcp.Enum(categoryNames()...),
		),
	)
}

func listHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tags, err := commands.NewListTagsCommand(svc.Repo, req.GetString("category", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatTags(tags)
	}
}

// --- get_tag ---

func getTool() mcp.Tool {
	return mcp.NewTool("get_tag",
		mcp.WithDescription("Read one tag as YAML."),
		mcp.WithString("category",
			mcp.Description("Category of the tag"),
			mcp.Required(),
			mcp.Enum(categoryNames()...),
		),
		mcp.WithString("id",
			mcp.Description("Tag id (e.g. python)"),
			mcp.Required(),
		),
	)
}

func getHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tag, err := commands.NewGetTagCommand(svc.Repo, req.GetString("category", ""), req.GetString("id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		out, err := yaml.Marshal(tag)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(string(out)), nil
	}
}

// --- search_tags ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search_tags",
		mcp.WithDescription("Fuzzy search tags by name, id, aliases and description, with optional filters."),
		mcp.WithString("query",
			mcp.Description("Search query. May be empty when filtering only."),
		),
		mcp.WithString("category",
			mcp.Description("Only this category"),
			mcp.Enum(categoryNames()...),
		),
		mcp.WithString("difficulty",
			mcp.Description("Only this difficulty"),
			mcp.Enum("basic", "intermediate", "advanced", "all"),
		),
		mcp.WithString("language",
			mcp.Description("Only tags whose language_scope contains this Language id"),
		),
		mcp.WithString("sort",
			mcp.Description("Sort order"),
			mcp.Enum("name", "id", "difficulty"),
		),
	)
}

func searchHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filter := domain.Filter{
			Category:   domain.Category(req.GetString("category", "")),
			Query:      req.GetString("query", ""),
			Difficulty: req.GetString("difficulty", ""),
			Language:   req.GetString("language", ""),
			SortBy:     domain.SortField(req.GetString("sort", "")),
		}

		tags, err := commands.NewSearchTagsCommand(svc.Repo, svc.Searcher, filter).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatTags(tags)
	}
}

// --- validate_tag ---

func validateTool() mcp.Tool {
	return mcp.NewTool("validate_tag",
		mcp.WithDescription("Check a tag against the taxonomy rules without saving it. Lists every violated rule."),
		mcp.WithString("tag",
			mcp.Description("The tag as JSON or YAML, including its category"),
			mcp.Required(),
		),
	)
}

func validateHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tag, err := decodeTag(req.GetString("tag", ""))
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewValidateTagCommand(svc.Repo, tag).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if result.Valid {
			return mcp.NewToolResultText("valid"), nil
		}
		return mcp.NewToolResultText("invalid:\n- " + strings.Join(result.Errors, "\n- ")), nil
	}
}

// --- tag_references ---

func referencesTool() mcp.Tool {
	return mcp.NewTool("tag_references",
		mcp.WithDescription("List the tags that reference an id through prerequisites, related or language_scope."),
		mcp.WithString("id",
			mcp.Description("Tag id"),
			mcp.Required(),
		),
	)
}

func referencesHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		refs, err := commands.NewReferencesCommand(svc.Repo, svc.Index, req.GetString("id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(refs) == 0 {
			return mcp.NewToolResultText("No references."), nil
		}

		var sb strings.Builder
		for _, ref := range refs {
			fmt.Fprintf(&sb, "%s  %s\n", ref.Source, ref.Kind)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- git_status ---

func gitStatusTool() mcp.Tool {
	return mcp.NewTool("git_status",
		mcp.WithDescription("Show uncommitted changes to the tag files."),
	)
}

func gitStatusHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		status := commands.NewGitStatusCommand(svc.VCS).Execute(ctx)
		if status.Error != "" {
			return toolError(fmt.Errorf("git: %s", status.Error))
		}
		if !status.HasChanges {
			return mcp.NewToolResultText("No uncommitted changes."), nil
		}

		var sb strings.Builder
		for _, c := range status.Changes {
			fmt.Fprintf(&sb, "%s  %s\n", c.Status, c.File)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatTags(tags []domain.Tag) (*mcp.CallToolResult, error) {
	if len(tags) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, t := range tags {
		fmt.Fprintf(&sb, "%s  %s  %s\n", t.Category, t.ID, t.Name)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// decodeTag parses a tag given as JSON or YAML
func decodeTag(raw string) (domain.Tag, error) {
	var tag domain.Tag
	if strings.TrimSpace(raw) == "" {
		return tag, fmt.Errorf("tag is required")
	}
	if err := yaml.Unmarshal([]byte(raw), &tag); err != nil {
		return tag, fmt.Errorf("parsing tag: %w", err)
	}
	return tag, nil
}

func decodePatch(raw string) (domain.Patch, error) {
	var patch domain.Patch
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("fields are required")
	}
	if err := yaml.Unmarshal([]byte(raw), &patch); err != nil {
		return nil, fmt.Errorf("parsing fields: %w", err)
	}
	return patch, nil
}

func formatJSON(v any) string {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(out)
}
