/*
Copyright © 2024 paul <paul@denknerd.org>
*/

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/toothbrush/junction/confluence"
)

var updateVersion int

var contentUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Replace a page with the contents of a file",
	Long: `
Replace a content item.  --version is the new version number, which Confluence insists is the
current one plus one; leave it out to have it looked up.
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		title, body, err := readBody(writeBodyFile, writeTitle)
		if err != nil {
			return err
		}

		_, content, err := newContentAPI(cmd)
		if err != nil {
			return err
		}

		version := updateVersion
		if version == 0 {
			current, err := content.GetContentByID(cmd.Context(), id,
				confluence.WithQueryParams(map[string]string{"expand": "version"}))
			if err != nil {
				return fmt.Errorf("content: couldn't look up version of %s: %w", id, err)
			}
			if current.Version == nil {
				return fmt.Errorf("content: %s came back without a version, pass --version", id)
			}
			version = current.Version.Number + 1
		}

		payload := confluence.UpdateContent{
			ID:      id,
			Type:    writeType,
			Title:   title,
			Space:   &confluence.SpaceRef{Key: content.SpaceKey()},
			Version: confluence.VersionUpdate{Number: version},
		}
		storage := confluence.StorageBody(body)
		payload.Body = &storage
		if writeParentID != "" {
			payload.Ancestors = []confluence.Ancestor{{ID: writeParentID}}
		}

		updated, err := content.UpdateContent(cmd.Context(), id, payload)
		if err != nil {
			return fmt.Errorf("content: couldn't update %s: %w", id, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %q to v%d\n", updated.ID, updated.Title, version)
		return nil
	},
}

func init() {
	contentCmd.AddCommand(contentUpdateCmd)
	addWriteFlags(contentUpdateCmd)
	contentUpdateCmd.Flags().IntVar(&updateVersion, "version", 0, "new version number (default: current plus one)")
}
