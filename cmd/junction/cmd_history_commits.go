/*
Copyright © 2024 paul <paul@denknerd.org>
*/

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/toothbrush/junction/githistory"
	"github.com/toothbrush/junction/internal/cliopts"
	"github.com/toothbrush/junction/internal/termfmt"
	"gopkg.in/yaml.v3"
)

var (
	historyRepo          string
	historyBranch        string
	historyAfter         string
	historyModifications bool
	historyFormat        string
)

var historyCommitsCmd = &cobra.Command{
	Use:   "commits",
	Short: "List commits on a branch after a given commit",
	Long: `
List the commits reachable from --branch but not from --after, following first parents only, oldest
first.  This is exactly what publish replays.
`,
	Args: cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		commits, err := branchCommits(historyRepo, historyBranch, historyAfter)
		if err != nil {
			return err
		}

		records, err := commitRecords(commits, historyModifications)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		return writeCommits(out, records, historyFormat, isTerminal(out))
	},
}

func branchCommits(repoPath, branch, after string) ([]*object.Commit, error) {
	if branch == "" || after == "" {
		return nil, &cliopts.UsageError{Msg: "both --branch and --after are required"}
	}

	repo, err := githistory.Open(repoPath)
	if err != nil {
		return nil, err
	}

	commits, err := githistory.FindCommitsOnBranchAfter(repo, branch, after)
	if err != nil {
		return nil, err
	}
	logger.Debug().Msgf("Found %d commits on %s after %s", len(commits), branch, after)
	return commits, nil
}

type modificationRecord struct {
	Type         string `json:"type" yaml:"type"`
	Path         string `json:"path" yaml:"path"`
	PreviousPath string `json:"previous_path,omitempty" yaml:"previous_path,omitempty"`
}

type commitRecord struct {
	SHA           string               `json:"sha" yaml:"sha"`
	Author        string               `json:"author" yaml:"author"`
	When          time.Time            `json:"when" yaml:"when"`
	Summary       string               `json:"summary" yaml:"summary"`
	Modifications []modificationRecord `json:"modifications,omitempty" yaml:"modifications,omitempty"`
}

func commitRecords(commits []*object.Commit, withModifications bool) ([]commitRecord, error) {
	records := make([]commitRecord, 0, len(commits))
	for _, c := range commits {
		record := commitRecord{
			SHA:     c.Hash.String(),
			Author:  fmt.Sprintf("%s <%s>", c.Author.Name, c.Author.Email),
			When:    c.Author.When,
			Summary: strings.SplitN(strings.TrimSpace(c.Message), "\n", 2)[0],
		}

		if withModifications {
			mods, err := githistory.GetModifications(c)
			if err != nil {
				return nil, err
			}
			for _, m := range mods {
				prev, _ := m.PreviousPath()
				record.Modifications = append(record.Modifications, modificationRecord{
					Type:         m.ChangeType.String(),
					Path:         m.Path(),
					PreviousPath: prev,
				})
			}
		}
		records = append(records, record)
	}
	return records, nil
}

var changeColors = map[string]termfmt.C16Name{
	githistory.ModificationAdd.String():    termfmt.Green,
	githistory.ModificationModify.String(): termfmt.Blue,
	githistory.ModificationRename.String(): termfmt.Yellow,
	githistory.ModificationDelete.String(): termfmt.Red,
}

func writeCommits(w io.Writer, records []commitRecord, format string, color bool) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)

	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("history: couldn't write YAML: %w", err)
		}
		return enc.Close()

	case "text":
		for _, r := range records {
			fmt.Fprintf(w, "%s %s\n", termfmt.Bold().Enabled(color).V(r.SHA[:7]), r.Summary)
			for _, m := range r.Modifications {
				path := m.Path
				if m.PreviousPath != "" {
					path = m.PreviousPath + " -> " + m.Path
				}
				style := termfmt.Fg(changeColors[m.Type]).Enabled(color)
				fmt.Fprintf(w, "    %-7s %s\n", style.V(m.Type), path)
			}
		}
		return nil
	}

	return &cliopts.UsageError{Msg: fmt.Sprintf("unknown --format %q, expected text, yaml or json", format)}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func addRangeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&historyRepo, "repo", ".", "path inside the git repository")
	cmd.Flags().StringVar(&historyBranch, "branch", "", "branch (or any revision) to replay up to")
	cmd.Flags().StringVar(&historyAfter, "after", "", "commit to start after; it is not itself included")
}

func init() {
	historyCmd.AddCommand(historyCommitsCmd)

	addRangeFlags(historyCommitsCmd)
	historyCommitsCmd.Flags().BoolVar(&historyModifications, "modifications", false, "also list the files each commit touched")
	historyCommitsCmd.Flags().StringVar(&historyFormat, "format", "text", "output format: text, yaml or json")
}
