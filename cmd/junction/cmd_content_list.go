/*
Copyright © 2024 paul <paul@denknerd.org>
*/

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/toothbrush/junction/confluence"
)

var (
	listQuery       confluence.GetContentQuery
	listExtraParams map[string]string
)

var contentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List content in the space",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, content, err := newContentAPI(cmd)
		if err != nil {
			return err
		}

		opts := []confluence.RequestOption{}
		if len(listExtraParams) > 0 {
			opts = append(opts, confluence.WithQueryParams(listExtraParams))
		}

		result, err := content.GetContent(cmd.Context(), listQuery, opts...)
		if err != nil {
			return fmt.Errorf("content: couldn't list content: %w", err)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTYPE\tSTATUS\tVERSION\tTITLE")
		for _, c := range result.Results {
			version := "-"
			if c.Version != nil {
				version = fmt.Sprintf("v%d", c.Version.Number)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Type, c.Status, version, c.Title)
		}
		if err := w.Flush(); err != nil {
			return fmt.Errorf("content: couldn't write listing: %w", err)
		}

		if result.HasMore() {
			logger.Info().Msgf("More results available, try --start %d", result.Start+result.Size)
		}
		return nil
	},
}

func init() {
	contentCmd.AddCommand(contentListCmd)

	contentListCmd.Flags().StringVar(&listQuery.Type, "type", "", "only content of this type: page, blogpost")
	contentListCmd.Flags().StringVar(&listQuery.Title, "title", "", "only content with this exact title")
	contentListCmd.Flags().StringVar(&listQuery.Status, "status", "", "only content with this status: current, trashed, draft, any")
	contentListCmd.Flags().StringVar(&listQuery.PostingDay, "posting-day", "", "only blogposts posted on this day, yyyy-mm-dd")
	contentListCmd.Flags().StringVar(&listQuery.Expand, "expand", "version", "properties to expand, comma separated")
	contentListCmd.Flags().StringVar(&listQuery.Trigger, "trigger", "", "e.g. 'viewed' to record a page view")
	contentListCmd.Flags().IntVar(&listQuery.Start, "start", 0, "offset of the first result")
	contentListCmd.Flags().IntVar(&listQuery.Limit, "limit", confluence.DefaultLimit, "maximum number of results")
	contentListCmd.Flags().StringToStringVar(&listExtraParams, "query", nil, "extra query parameters, k=v; these win over the flags above")
}
