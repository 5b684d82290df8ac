package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"tagmanager/internal/adapters/editor"
	"tagmanager/internal/adapters/sqlite"
	"tagmanager/internal/application/commands"
	"tagmanager/internal/config"
	"tagmanager/internal/ports"
)

var (
	indexPath  string
	openedIdx  *sqlite.Index
	forceIndex bool
)

// openIndex opens the reference index and brings it up to date
func openIndex() (*sqlite.Index, error) {
	if openedIdx != nil {
		return openedIdx, nil
	}

	var opts []sqlite.Option
	if indexPath != "" {
		opts = append(opts, sqlite.WithDatabasePath(indexPath))
	}
	idx := sqlite.NewIndex(opts...)
	if err := idx.Open(GetRepo().Dir()); err != nil {
		return nil, err
	}
	if _, err := commands.NewSyncIndexCommand(GetRepo(), idx, false).Execute(context.Background()); err != nil {
		idx.Close()
		return nil, err
	}
	openedIdx = idx
	return idx, nil
}

// openIndexQuietly is openIndex for commands that work without an index
func openIndexQuietly() ports.ReferenceIndex {
	idx, err := openIndex()
	if err != nil {
		slog.Warn("reference index unavailable", "error", err)
		return nil
	}
	return idx
}

func closeIndex() {
	if openedIdx == nil {
		return
	}
	if err := openedIdx.Close(); err != nil {
		slog.Warn("failed to close reference index", "error", err)
	}
	openedIdx = nil
}

func editorOpener() ports.EditorOpener {
	return editor.NewOpener()
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the reference index",
	Long: `Rebuild the sqlite cache of references between tags. The index is
rebuilt automatically when stale; --force rebuilds it regardless.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts []sqlite.Option
		if indexPath != "" {
			opts = append(opts, sqlite.WithDatabasePath(indexPath))
		}
		idx := sqlite.NewIndex(opts...)
		if err := idx.Open(GetRepo().Dir()); err != nil {
			return err
		}
		defer idx.Close()

		stats, err := commands.NewSyncIndexCommand(GetRepo(), idx, forceIndex).Execute(context.Background())
		if err != nil {
			return err
		}
		if stats == nil {
			if stats, err = idx.Stats(); err != nil {
				return err
			}
			fmt.Printf("Index is up to date: %d tags, %d references (%s)\n", stats.Tags, stats.References, idx.Path())
			return nil
		}
		fmt.Printf("Indexed %d tags, %d references in %s (%s)\n", stats.Tags, stats.References, stats.Duration, idx.Path())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&indexPath, "index-path", config.IndexPath(), "reference index database (default: XDG data dir)")
	indexCmd.Flags().BoolVar(&forceIndex, "force", false, "rebuild even when the index is current")
	rootCmd.AddCommand(indexCmd)
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		closeIndex()
	}
}
