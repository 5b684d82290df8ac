package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tagmanager/internal/adapters/git"
	mcpadapter "tagmanager/internal/adapters/mcp"
	"tagmanager/internal/adapters/search"
	"tagmanager/internal/adapters/sqlite"
	"tagmanager/internal/adapters/yamlstore"
	"tagmanager/internal/application/commands"
	"tagmanager/internal/config"
	"tagmanager/internal/logging"
	"tagmanager/internal/ports"
)

func main() {
	tagsDir := flag.String("tags-dir", config.TagsDir(), "directory holding the category YAML files")
	indexPath := flag.String("index", config.IndexPath(), "reference index database (default: inside the tags directory)")
	noIndex := flag.Bool("no-index", false, "scan the YAML files for references instead of using the index")
	flag.Parse()

	// stdout carries the protocol, logs go to stderr
	logger, err := logging.New(config.LogLevel(), config.LogFormat(), os.Stderr)
	if err != nil {
		log.Fatalf("tagmanager-mcp: %v", err)
	}
	slog.SetDefault(logger)

	repo := yamlstore.NewRepository(*tagsDir)

	var index ports.ReferenceIndex
	if !*noIndex {
		var opts []sqlite.Option
		if *indexPath != "" {
			opts = append(opts, sqlite.WithDatabasePath(*indexPath))
		}
		idx := sqlite.NewIndex(opts...)
		if err := idx.Open(repo.Dir()); err != nil {
			slog.Warn("reference index unavailable", "error", err)
		} else {
			defer idx.Close()
			if _, err := commands.NewSyncIndexCommand(repo, idx, false).Execute(context.Background()); err != nil {
				slog.Warn("failed to sync reference index", "error", err)
			}
			index = idx
		}
	}

	svc := mcpadapter.Services{
		Repo:     repo,
		Index:    index,
		VCS:      git.NewClient(repo.Dir()),
		Searcher: search.NewFuzzy(),
	}

	mcpServer := server.NewMCPServer(
		"tagmanager-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, svc)
	mcpadapter.RegisterWriteTools(mcpServer, svc)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("tagmanager-mcp: %v", err)
	}
}
