/*
Copyright © 2024 paul <paul@denknerd.org>
*/

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configWhichCmd = &cobra.Command{
	Use:   "which",
	Short: "Tell me the resolved config path",
	Long: `
Output the filename that's being used to store your config.  The file doesn't have to exist.
`,
	Args: cobra.ExactArgs(0),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Config path: %s\n", ConfigActual)
	},
}

func init() {
	configCmd.AddCommand(configWhichCmd)
}
