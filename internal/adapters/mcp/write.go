package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tagmanager/internal/application"
	"tagmanager/internal/application/commands"
)

// RegisterWriteTools adds all write tag tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, svc Services) {
	s.AddTool(createTool(), createHandler(svc))
	s.AddTool(updateTool(), updateHandler(svc))
	s.AddTool(deleteTool(), deleteHandler(svc))
	s.AddTool(commitTool(), commitHandler(svc))
}

// --- create_tag ---

func createTool() mcp.Tool {
	return mcp.NewTool("create_tag",
		mcp.WithDescription("Create a new tag. The tag is validated against the whole taxonomy first; every violated rule is reported."),
		mcp.WithString("category",
			mcp.Description("Category of the new tag"),
			mcp.Required(),
			mcp.Enum(categoryNames()...),
		),
		mcp.WithString("tag",
			mcp.Description("The tag as JSON or YAML (id, name, source and the fields the category requires)"),
			mcp.Required(),
		),
	)
}

func createHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tag, err := decodeTag(req.GetString("tag", ""))
		if err != nil {
			return toolError(err)
		}

		cmd := commands.NewCreateTagCommand(svc.Repo, svc.Index, req.GetString("category", ""), tag)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return validationError(err)
		}
		return mcp.NewToolResultText(result.Message + "\n" + formatJSON(result.Tag)), nil
	}
}

// --- update_tag ---

func updateTool() mcp.Tool {
	return mcp.NewTool("update_tag",
		mcp.WithDescription("Merge fields into an existing tag. Fields set to null are removed. The category cannot change."),
		mcp.WithString("category",
			mcp.Description("Category of the tag"),
			mcp.Required(),
			mcp.Enum(categoryNames()...),
		),
		mcp.WithString("id",
			mcp.Description("Tag id"),
			mcp.Required(),
		),
		mcp.WithString("fields",
			mcp.Description(`Fields to set, as JSON or YAML (e.g. {"difficulty": "advanced"})`),
			mcp.Required(),
		),
	)
}

func updateHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		patch, err := decodePatch(req.GetString("fields", ""))
		if err != nil {
			return toolError(err)
		}

		cmd := commands.NewUpdateTagCommand(svc.Repo, svc.Index, req.GetString("category", ""), req.GetString("id", ""), patch)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return validationError(err)
		}
		return mcp.NewToolResultText(result.Message + "\n" + formatJSON(result.Tag)), nil
	}
}

// --- delete_tag ---

func deleteTool() mcp.Tool {
	return mcp.NewTool("delete_tag",
		mcp.WithDescription("Delete a tag. Tags still referencing it are listed."),
		mcp.WithString("category",
			mcp.Description("Category of the tag"),
			mcp.Required(),
			mcp.Enum(categoryNames()...),
		),
		mcp.WithString("id",
			mcp.Description("Tag id"),
			mcp.Required(),
		),
	)
}

func deleteHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewDeleteTagCommand(svc.Repo, svc.Index, req.GetString("category", ""), req.GetString("id", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		sb.WriteString(result.Message)
		for _, ref := range result.Dangling {
			fmt.Fprintf(&sb, "\n%s still lists it in %s", ref.Source, ref.Kind)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- git_commit ---

func commitTool() mcp.Tool {
	return mcp.NewTool("git_commit",
		mcp.WithDescription("Stage and commit every change to the tag files."),
		mcp.WithString("message",
			mcp.Description("Commit message"),
			mcp.Required(),
		),
	)
}

func commitHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewGitCommitCommand(svc.VCS, req.GetString("message", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// validationError lists every violated rule instead of the joined message
func validationError(err error) (*mcp.CallToolResult, error) {
	var failed *application.ValidationFailedError
	if errors.As(err, &failed) {
		return mcp.NewToolResultError("validation failed:\n- " + strings.Join(failed.Errors, "\n- ")), nil
	}
	return toolError(err)
}
