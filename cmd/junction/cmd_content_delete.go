/*
Copyright © 2024 paul <paul@denknerd.org>
*/

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var contentDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Move a content item to the trash",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, content, err := newContentAPI(cmd)
		if err != nil {
			return err
		}

		if err := content.DeleteContent(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("content: couldn't delete %s: %w", args[0], err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	},
}

func init() {
	contentCmd.AddCommand(contentDeleteCmd)
}
