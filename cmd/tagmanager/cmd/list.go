package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tagmanager/internal/application/commands"
	"tagmanager/internal/domain"
)

var listCmd = &cobra.Command{
	Use:   "list [category]",
	Short: "List tags",
	Long: `List every tag, or the tags of one category.

Examples:
  tagmanager list
  tagmanager list Library
  tagmanager list concept`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		category := ""
		if len(args) == 1 {
			category = args[0]
		}

		listCmd := commands.NewListTagsCommand(GetRepo(), category)
		tags, err := listCmd.Execute(context.Background())
		if err != nil {
			return err
		}

		printTags(tags)
		return nil
	},
}

var countsCmd = &cobra.Command{
	Use:   "counts",
	Short: "Count tags per category",
	RunE: func(cmd *cobra.Command, args []string) error {
		tags, err := commands.NewListTagsCommand(GetRepo(), "").Execute(context.Background())
		if err != nil {
			return err
		}

		counts := domain.CountByCategory(tags)
		for _, c := range domain.Categories {
			fmt.Printf("%-11s %d\n", c, counts[c])
		}
		fmt.Printf("%-11s %d\n", "Total", len(tags))
		return nil
	},
}

func printTags(tags []domain.Tag) {
	if len(tags) == 0 {
		fmt.Println("No tags found")
		return
	}
	for _, t := range tags {
		fmt.Printf("%-11s %-32s %s\n", t.Category, t.ID, t.Name)
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(countsCmd)
}
