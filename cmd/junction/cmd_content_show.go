/*
Copyright © 2024 paul <paul@denknerd.org>
*/

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/toothbrush/junction/confluence"
	"github.com/toothbrush/junction/internal/dotdict"
	"github.com/toothbrush/junction/publish"
)

var (
	showField    string
	showMarkdown bool
	showExpand   string
)

var contentShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Print one content item",
	Long: `
Print a content item as JSON.  Use --field to pick out one value by dotted path, e.g.
--field version.number, or --markdown to convert the body to Markdown.
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if showField != "" && showMarkdown {
			return fmt.Errorf("content: --field and --markdown don't mix")
		}

		api, content, err := newContentAPI(cmd)
		if err != nil {
			return err
		}

		item, err := content.GetContentByID(cmd.Context(), args[0], expandOptions(showExpand)...)
		if err != nil {
			return fmt.Errorf("content: couldn't fetch %s: %w", args[0], err)
		}

		out := cmd.OutOrStdout()
		if showMarkdown {
			if item.Body == nil || item.Body.Storage == nil {
				return fmt.Errorf("content: %s came back without body.storage, check --expand", item.ID)
			}
			markdown, err := publish.StorageToMarkdown(item.Body.Storage.Value, api.BaseURI)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, markdown)
			return nil
		}

		return printField(out, item, showField)
	},
}

// printField writes the value at dotted path field of item, or all of item if field is empty.
func printField(out io.Writer, item any, field string) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("content: couldn't encode content: %w", err)
	}
	doc, err := dotdict.Parse(raw)
	if err != nil {
		return err
	}

	var value any = doc
	if field != "" {
		value, err = doc.Path(field)
		if err != nil {
			return err
		}
	}

	switch value.(type) {
	case *dotdict.DotDict, []any:
		pretty, err := json.MarshalIndent(dotdict.Normalize(value), "", "  ")
		if err != nil {
			return fmt.Errorf("content: couldn't encode %s: %w", field, err)
		}
		fmt.Fprintln(out, string(pretty))
	default:
		fmt.Fprintln(out, value)
	}
	return nil
}

// An empty --expand sends no expand parameter at all.
func expandOptions(expand string) []confluence.RequestOption {
	if expand == "" {
		return nil
	}
	return []confluence.RequestOption{confluence.WithQueryParams(map[string]string{"expand": expand})}
}

func init() {
	contentCmd.AddCommand(contentShowCmd)

	contentShowCmd.Flags().StringVar(&showField, "field", "", "dotted path of a single value to print, e.g. version.number")
	contentShowCmd.Flags().BoolVar(&showMarkdown, "markdown", false, "print the body as Markdown")
	contentShowCmd.Flags().StringVar(&showExpand, "expand", "body.storage,version,space,ancestors", "properties to expand, comma separated")
}
