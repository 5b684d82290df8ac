package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"tagmanager/internal/adapters/search"
	"tagmanager/internal/application/commands"
	"tagmanager/internal/domain"
)

var searchFilter domain.Filter

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search and filter tags",
	Long: `Search tags by name, id, aliases and description.

Results are ranked by relevance using fuzzy matching, then narrowed by
the filters and sorted.

Examples:
  tagmanager search recursion
  tagmanager search --category Concept --difficulty basic --sort id
  tagmanager search web --language python`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := searchFilter
		if len(args) == 1 {
			filter.Query = args[0]
		}

		searchCmd := commands.NewSearchTagsCommand(GetRepo(), search.NewFuzzy(), filter)
		tags, err := searchCmd.Execute(context.Background())
		if err != nil {
			return err
		}

		printTags(tags)
		return nil
	},
}

func init() {
	flags := searchCmd.Flags()
	flags.StringVarP((*string)(&searchFilter.Category), "category", "c", "", "only this category")
	flags.StringVar(&searchFilter.Difficulty, "difficulty", domain.FilterAll, "basic, intermediate, advanced or all")
	flags.StringVar(&searchFilter.Language, "language", domain.FilterAll, "only tags scoped to this language id")
	flags.StringVarP((*string)(&searchFilter.SortBy), "sort", "s", string(domain.SortByName), "name, id or difficulty")
	rootCmd.AddCommand(searchCmd)
}
