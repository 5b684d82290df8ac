package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tagmanager/internal/adapters/git"
	"tagmanager/internal/application/commands"
	"tagmanager/internal/domain"
)

var (
	commitMessage string
	logLimit      int
)

var gitCmd = &cobra.Command{
	Use:   "git",
	Short: "Track tag changes with git",
}

var gitStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show uncommitted changes to the tag files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		status := commands.NewGitStatusCommand(git.NewClient(GetRepo().Dir())).Execute(context.Background())
		printStatus(status)
		if status.Error != "" {
			return fmt.Errorf("git: %s", status.Error)
		}
		return nil
	},
}

var gitCommitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Commit every change to the tag files",
	Long: `Stage and commit every change under the tags directory.

Examples:
  tagmanager git commit -m "Add web frameworks"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		commitCmd := commands.NewGitCommitCommand(git.NewClient(GetRepo().Dir()), commitMessage)
		result, err := commitCmd.Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var gitLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recent commits touching the tag files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		commits, err := commands.NewGitLogCommand(git.NewClient(GetRepo().Dir()), logLimit).Execute(context.Background())
		if err != nil {
			return err
		}
		for _, c := range commits {
			fmt.Printf("%s %s\n", c.Hash, c.Subject)
		}
		return nil
	},
}

func printStatus(status *domain.GitStatus) {
	if !status.HasChanges {
		fmt.Println("No uncommitted changes")
		return
	}
	for _, c := range status.Changes {
		fmt.Printf("%-10s %s\n", c.Status, c.File)
	}
}

func init() {
	gitCommitCmd.Flags().StringVarP(&commitMessage, "message", "m", "", "commit message")
	gitLogCmd.Flags().IntVarP(&logLimit, "limit", "n", 10, "number of commits")
	gitCmd.AddCommand(gitStatusCmd, gitCommitCmd, gitLogCmd)
	rootCmd.AddCommand(gitCmd)
}
