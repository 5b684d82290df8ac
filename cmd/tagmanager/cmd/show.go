package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"tagmanager/internal/application/commands"
	"tagmanager/internal/domain"
)

var showCmd = &cobra.Command{
	Use:   "show <category> <id>",
	Short: "Show one tag as YAML",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tag, err := commands.NewGetTagCommand(GetRepo(), args[0], args[1]).Execute(context.Background())
		if err != nil {
			return err
		}

		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(tag); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}

		line, err := GetRepo().Locate(tag.Category, tag.ID)
		if err == nil {
			fmt.Printf("# %s:%d\n", GetRepo().CategoryPath(tag.Category), line)
		}
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <category> [id]",
	Short: "Open a category file in $EDITOR",
	Long: `Open a category file in $EDITOR, positioned at the tag when an id is given.

Hand edits skip validation: run "tagmanager check" afterwards.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		category, ok := domain.ParseCategory(args[0])
		if !ok {
			return fmt.Errorf("invalid category: %s", args[0])
		}
		line := 0
		if len(args) == 2 {
			l, err := GetRepo().Locate(category, args[1])
			if err != nil {
				return err
			}
			line = l
		}
		return editorOpener().OpenFile(GetRepo().CategoryPath(category), line)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(editCmd)
}
