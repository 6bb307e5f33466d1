package publish

import (
	"bytes"
	"fmt"
	"net/url"
	"path"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	mdplugin "github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Document is a markdown file rendered for Confluence.
type Document struct {
	Title   string
	Storage string
}

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			meta.Meta,
		),
		// Confluence storage format is XHTML, so void elements need closing.
		goldmark.WithRendererOptions(html.WithXHTML()),
	)
}

// RenderDocument converts the markdown in source to storage format.  The title comes from a
// `title` front matter field, falling back to the file name of filePath without its extension.
func RenderDocument(filePath string, source []byte) (Document, error) {
	context := parser.NewContext()
	var buf bytes.Buffer
	if err := newMarkdown().Convert(source, &buf, parser.WithContext(context)); err != nil {
		return Document{}, fmt.Errorf("publish: couldn't parse Markdown from %s: %w", filePath, err)
	}

	metaData, err := meta.TryGet(context)
	if err != nil {
		return Document{}, fmt.Errorf("publish: invalid front matter in %s: %w", filePath, err)
	}

	title, err := titleFromMeta(metaData)
	if err != nil {
		return Document{}, fmt.Errorf("publish: %s: %w", filePath, err)
	}
	if title == "" {
		title = TitleFromPath(filePath)
	}

	return Document{
		Title:   title,
		Storage: buf.String(),
	}, nil
}

// MarkdownToStorage renders markdown to XHTML, dropping any front matter.
func MarkdownToStorage(source []byte) (string, error) {
	var buf bytes.Buffer
	if err := newMarkdown().Convert(source, &buf); err != nil {
		return "", fmt.Errorf("publish: couldn't render Markdown: %w", err)
	}
	return buf.String(), nil
}

// TitleFromPath is the page title used for files without a `title` field.
func TitleFromPath(filePath string) string {
	base := path.Base(filePath)
	return strings.TrimSuffix(base, path.Ext(base))
}

func titleFromMeta(metaData map[string]interface{}) (string, error) {
	raw, ok := metaData["title"]
	if !ok {
		return "", nil
	}
	title, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("field 'title' is not 'string'")
	}
	return strings.TrimSpace(title), nil
}

// StorageToMarkdown converts Confluence HTML back into GitHub flavoured Markdown.  Relative links
// are made absolute against base, when base is set.
func StorageToMarkdown(content string, base *url.URL) (string, error) {
	domain := ""
	opt := &md.Options{}
	if base != nil {
		domain = base.Host
		// md.NewConverter only takes a hostname, so the scheme has to be patched in here:
		// https://github.com/JohannesKaufmann/html-to-markdown/issues/44
		opt.GetAbsoluteURL = func(selec *goquery.Selection, rawURL string, domain string) string {
			u, err := url.Parse(rawURL)
			if err != nil || u.Scheme == "data" {
				return rawURL
			}
			if u.Scheme == "" {
				u.Scheme = base.Scheme
			}
			if u.Host == "" {
				u.Host = domain
			}
			return u.String()
		}
	}

	converter := md.NewConverter(domain, true, opt)
	converter.Use(mdplugin.GitHubFlavored())

	markdown, err := converter.ConvertString(content)
	if err != nil {
		return "", fmt.Errorf("publish: failed to convert to Markdown: %w", err)
	}
	return markdown, nil
}
