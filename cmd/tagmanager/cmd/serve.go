package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tagmanager/internal/adapters/git"
	"tagmanager/internal/adapters/httpapi"
	"tagmanager/internal/config"
)

var (
	serveAddr string
	noIndex   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tag REST API",
	Long: `Serve the REST API over the tags directory. The terminal client
(tagmanager-tui) and any other HTTP client talk to this server.

Examples:
  tagmanager serve --addr :8080 --tags-dir taxonomy/tags`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		vcs := git.NewClient(GetRepo().Dir())
		if !vcs.IsAvailable() {
			slog.Warn("git not found, status and commit will report errors")
		}

		opts := []httpapi.Option{
			httpapi.WithAddr(serveAddr),
			httpapi.WithLogger(slog.Default()),
		}
		if !noIndex {
			if idx := openIndexQuietly(); idx != nil {
				opts = append(opts, httpapi.WithIndex(idx))
			}
		}

		slog.Info("serving tags", "dir", GetRepo().Dir())
		return httpapi.New(GetRepo(), vcs, opts...).Run(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", config.Addr(), "listen address")
	serveCmd.Flags().BoolVar(&noIndex, "no-index", false, "compute references by scanning instead of using the sqlite index")
	rootCmd.AddCommand(serveCmd)
}
