/*
Copyright © 2024 paul <paul@denknerd.org>
*/

package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var contentUsage = strings.TrimSpace(`
Commands in this namespace work directly on content in the configured Confluence space, one item at
a time.  Handy for checking what publish will see.
`)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Commands to list and edit Confluence content",
	Long:  contentUsage,
}

func init() {
	rootCmd.AddCommand(contentCmd)
}
