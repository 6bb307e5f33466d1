/*
Copyright © 2024 paul <paul@denknerd.org>
*/

package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var historyUsage = strings.TrimSpace(`
Commands in this namespace look at the git side: where the repository is, and which commits and
file changes publish would replay.
`)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Commands to inspect git history",
	Long:  historyUsage,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
