package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"tagmanager/internal/adapters/yamlstore"
	"tagmanager/internal/config"
	"tagmanager/internal/logging"
)

var (
	tagsDir   string
	logLevel  string
	logFormat string
	repo      *yamlstore.Repository
)

var rootCmd = &cobra.Command{
	Use:   "tagmanager",
	Short: "Manage a YAML tag taxonomy",
	Long: `tagmanager edits a taxonomy of tags stored as one YAML file per
category, validating every change against the taxonomy rules.

It can serve the REST API used by the terminal client, or work on the
tags directory directly.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		logger, err := logging.New(logLevel, logFormat, os.Stderr)
		if err != nil {
			return err
		}
		slog.SetDefault(logger)
		repo = yamlstore.NewRepository(tagsDir)
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&tagsDir, "tags-dir", "d", config.TagsDir(), "directory holding the category YAML files")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.LogLevel(), "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", config.LogFormat(), "log format (text, json)")
}

// GetRepo returns the initialized repository
func GetRepo() *yamlstore.Repository {
	return repo
}
