/*
Copyright © 2024 paul <paul@denknerd.org>
*/

package main

import (
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/spf13/cobra"
	"github.com/toothbrush/junction/githistory"
)

var historyRootCmd = &cobra.Command{
	Use:   "root [PATH]",
	Short: "Print the root of the git repository containing PATH",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "."
		if len(args) > 0 {
			path = args[0]
		}

		root, ok, err := githistory.FindRepositoryRoot(path)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("history: %s: %w", path, git.ErrRepositoryNotExists)
		}

		fmt.Fprintln(cmd.OutOrStdout(), root)
		return nil
	},
}

func init() {
	historyCmd.AddCommand(historyRootCmd)
}
