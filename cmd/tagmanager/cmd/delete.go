package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tagmanager/internal/application/commands"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <category> <id>",
	Short: "Delete a tag",
	Long: `Delete a tag from its category file.

Tags that still reference the deleted id are listed; they fail
validation until they are updated.

Examples:
  tagmanager delete Task refactor`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		deleteCmd := commands.NewDeleteTagCommand(GetRepo(), openIndexQuietly(), args[0], args[1])
		result, err := deleteCmd.Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		for _, ref := range result.Dangling {
			fmt.Printf("  %s still lists %s in %s\n", ref.Source, ref.TargetID, ref.Kind)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
