package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tagmanager/internal/application/commands"
)

var (
	updateFile string
	updateData string
)

var updateCmd = &cobra.Command{
	Use:   "update <category> <id>",
	Short: "Update fields of a tag",
	Long: `Merge fields into an existing tag. Fields set to null are removed.
The category of a tag cannot be changed.

Examples:
  tagmanager update Concept recursion --data '{difficulty: advanced}'
  tagmanager update Library django --data '{"aliases": ["dj"], "description": null}'`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readInput(updateFile, updateData)
		if err != nil {
			return err
		}
		patch, err := decodePatch(raw)
		if err != nil {
			return err
		}

		updateCmd := commands.NewUpdateTagCommand(GetRepo(), openIndexQuietly(), args[0], args[1], patch)
		result, err := updateCmd.Execute(context.Background())
		if err != nil {
			return explain(err)
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVarP(&updateFile, "file", "f", "", "read the update from a file (- for stdin)")
	updateCmd.Flags().StringVar(&updateData, "data", "", "inline update as YAML or JSON")
	rootCmd.AddCommand(updateCmd)
}
