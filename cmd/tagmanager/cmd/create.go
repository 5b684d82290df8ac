package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tagmanager/internal/application/commands"
)

var (
	createFile string
	createData string
)

var createCmd = &cobra.Command{
	Use:   "create <category>",
	Short: "Create a new tag",
	Long: `Create a new tag in a category. The tag is read as YAML or JSON and
validated against the whole taxonomy before it is written.

Examples:
  tagmanager create Task --data '{id: refactor, name: Refactor, source: manual}'
  tagmanager create Library --file django.yaml
  cat tag.json | tagmanager create Concept --file -`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readInput(createFile, createData)
		if err != nil {
			return err
		}
		tag, err := decodeTag(raw)
		if err != nil {
			return err
		}

		createCmd := commands.NewCreateTagCommand(GetRepo(), openIndexQuietly(), args[0], tag)
		result, err := createCmd.Execute(context.Background())
		if err != nil {
			return explain(err)
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVarP(&createFile, "file", "f", "", "read the tag from a file (- for stdin)")
	createCmd.Flags().StringVar(&createData, "data", "", "inline tag as YAML or JSON")
	rootCmd.AddCommand(createCmd)
}
