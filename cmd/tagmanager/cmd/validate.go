package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tagmanager/internal/application"
	"tagmanager/internal/application/commands"
)

var (
	validateFile string
	validateData string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a tag without saving it",
	Long: `Validate a tag against the taxonomy rules and the stored tags.

Examples:
  tagmanager validate --data '{id: go, name: Go, category: Language, source: TIOBE, aliases: [golang]}'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readInput(validateFile, validateData)
		if err != nil {
			return err
		}
		tag, err := decodeTag(raw)
		if err != nil {
			return err
		}

		result, err := commands.NewValidateTagCommand(GetRepo(), tag).Execute(context.Background())
		if err != nil {
			return err
		}
		if !result.Valid {
			return explain(&application.ValidationFailedError{Errors: result.Errors})
		}
		fmt.Println("valid")
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate every stored tag",
	Long: `Validate every stored tag against the rest of the taxonomy. Useful
after editing the YAML files by hand.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tags, err := commands.NewListTagsCommand(GetRepo(), "").Execute(context.Background())
		if err != nil {
			return err
		}

		invalid := 0
		for _, tag := range tags {
			result := application.ValidateUpdate(tag.Key(), tag, tags)
			if result.Valid {
				continue
			}
			invalid++
			fmt.Printf("%s\n", tag.Key())
			for _, msg := range result.Errors {
				fmt.Printf("  - %s\n", msg)
			}
		}
		if invalid > 0 {
			return fmt.Errorf("%d of %d tags are invalid", invalid, len(tags))
		}
		fmt.Printf("All %d tags are valid\n", len(tags))
		return nil
	},
}

// explain expands validation failures into one line per violation
func explain(err error) error {
	var failed *application.ValidationFailedError
	if !errors.As(err, &failed) {
		return err
	}
	return fmt.Errorf("validation failed:\n  - %s", strings.Join(failed.Errors, "\n  - "))
}

func init() {
	validateCmd.Flags().StringVarP(&validateFile, "file", "f", "", "read the tag from a file (- for stdin)")
	validateCmd.Flags().StringVar(&validateData, "data", "", "inline tag as YAML or JSON")
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(checkCmd)
}
