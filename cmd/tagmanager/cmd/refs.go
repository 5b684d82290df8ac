package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tagmanager/internal/application/commands"
)

var refsCmd = &cobra.Command{
	Use:   "refs <id>",
	Short: "List the tags that reference an id",
	Long: `List the tags that name an id in their prerequisites, related or
language_scope fields.

Examples:
  tagmanager refs python`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		refs, err := commands.NewReferencesCommand(GetRepo(), openIndexQuietly(), args[0]).Execute(context.Background())
		if err != nil {
			return err
		}

		if len(refs) == 0 {
			fmt.Println("No references found")
			return nil
		}
		for _, ref := range refs {
			fmt.Printf("%-40s %s\n", ref.Source, ref.Kind)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(refsCmd)
}
