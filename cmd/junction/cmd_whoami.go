/*
Copyright © 2024 paul <paul@denknerd.org>
*/

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Check your token by asking Confluence who you are",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, _, err := newContentAPI(cmd)
		if err != nil {
			return err
		}

		currentUser, err := api.CurrentUser(cmd.Context())
		if err != nil {
			return fmt.Errorf("whoami: couldn't query current user: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Logged in to %s as '%s (%s)'\n", api.BaseURI.Host, currentUser.DisplayName, currentUser.AccountID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
