/*
Copyright © 2024 paul <paul@denknerd.org>
*/

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/toothbrush/junction/publish"
)

var publishUsage = strings.TrimSpace(`
Replay the commits on --branch since --after, oldest first, and mirror every Markdown file they
touched under --docs-dir into the Confluence space.  Pages are matched by title: the 'title' field
of a file's front matter, or else its name.

Added and modified files create or update pages, renamed files rename them, deleted files delete
them.  Use --dry-run to see the plan without touching Confluence.
`)

var (
	publishDocsDir  string
	publishParentID string
	publishType     string
	publishDryRun   bool
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish Markdown changes on a branch to Confluence",
	Long:  publishUsage,
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		commits, err := branchCommits(historyRepo, historyBranch, historyAfter)
		if err != nil {
			return err
		}

		publisher := &publish.Publisher{
			DocsDir:     publishDocsDir,
			ContentType: publishType,
			ParentID:    publishParentID,
			DryRun:      publishDryRun,
			Logger:      logger,
		}
		if isTerminal(os.Stderr) && !Debug {
			publisher.Progress = os.Stderr
		}

		ops, err := publisher.Plan(commits)
		if err != nil {
			return err
		}
		logger.Info().Msgf("Planned %d operations from %d commits", len(ops), len(commits))
		if len(ops) == 0 {
			return nil
		}

		// a dry run never talks to Confluence, so doesn't need credentials either.
		if !publishDryRun {
			_, content, err := newContentAPI(cmd)
			if err != nil {
				return err
			}
			publisher.Content = content
		}

		summary, err := publisher.Apply(cmd.Context(), ops)
		logger.Info().Msgf("Publish summary: %s", summary)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), summary)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(publishCmd)

	addRangeFlags(publishCmd)
	publishCmd.Flags().StringVar(&publishDocsDir, "docs-dir", "docs", "only publish Markdown files below this directory of the repository")
	publishCmd.Flags().StringVar(&publishParentID, "parent-id", "", "ID of the page new pages are created under")
	publishCmd.Flags().StringVar(&publishType, "type", publish.DefaultContentType, "content type of published pages")
	publishCmd.Flags().BoolVar(&publishDryRun, "dry-run", false, "log what would change without touching Confluence")
}
