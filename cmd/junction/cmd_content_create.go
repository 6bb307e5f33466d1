/*
Copyright © 2024 paul <paul@denknerd.org>
*/

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/toothbrush/junction/confluence"
	"github.com/toothbrush/junction/publish"
)

var (
	writeTitle    string
	writeType     string
	writeBodyFile string
	writeParentID string
)

var contentCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a page from a file",
	Long: `
Create a content item.  A --body-file ending in .md is rendered from Markdown (and may set the
title in its front matter), anything else is sent as storage format XHTML.
`,
	Args: cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		title, body, err := readBody(writeBodyFile, writeTitle)
		if err != nil {
			return err
		}

		_, content, err := newContentAPI(cmd)
		if err != nil {
			return err
		}

		payload := confluence.CreateContent{
			Type:  writeType,
			Title: title,
			Space: confluence.SpaceRef{Key: content.SpaceKey()},
			Body:  confluence.StorageBody(body),
		}
		if writeParentID != "" {
			payload.Ancestors = []confluence.Ancestor{{ID: writeParentID}}
		}

		created, err := content.CreateContent(cmd.Context(), payload)
		if err != nil {
			return fmt.Errorf("content: couldn't create %q: %w", title, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s %q\n", created.ID, created.Title)
		return nil
	},
}

// readBody loads a body file, rendering Markdown.  An explicit title wins over the file's own.
func readBody(path string, title string) (string, string, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("content: couldn't read file %s: %w", path, err)
	}

	body := string(source)
	if filepath.Ext(path) == ".md" {
		doc, err := publish.RenderDocument(filepath.ToSlash(path), source)
		if err != nil {
			return "", "", err
		}
		body = doc.Storage
		if title == "" {
			title = doc.Title
		}
	}

	if title == "" {
		return "", "", fmt.Errorf("content: no title, use --title")
	}
	return title, body, nil
}

func addWriteFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&writeTitle, "title", "", "title of the content")
	cmd.Flags().StringVar(&writeType, "type", publish.DefaultContentType, "content type: page, blogpost")
	cmd.Flags().StringVar(&writeBodyFile, "body-file", "", "file holding the body, Markdown if it ends in .md")
	cmd.Flags().StringVar(&writeParentID, "parent-id", "", "ID of the parent page")
	if err := cmd.MarkFlagRequired("body-file"); err != nil {
		panic(err)
	}
}

func init() {
	contentCmd.AddCommand(contentCreateCmd)
	addWriteFlags(contentCreateCmd)
}
