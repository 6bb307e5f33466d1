package publish

import (
	"bytes"
	"context"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toothbrush/junction/confluence"
)

const intro = `---
title: Introduction
---
# Hello

Some *text*.
`

func TestRenderDocument(t *testing.T) {
	doc, err := RenderDocument("docs/intro.md", []byte(intro))
	require.NoError(t, err)

	assert.Equal(t, "Introduction", doc.Title)
	assert.Contains(t, doc.Storage, "<h1>Hello</h1>")
	assert.Contains(t, doc.Storage, "<em>text</em>")
	assert.NotContains(t, doc.Storage, "title:")
}

func TestRenderDocument_TitleFromPath(t *testing.T) {
	doc, err := RenderDocument("docs/how-to/deploy.md", []byte("plain body\n"))
	require.NoError(t, err)
	assert.Equal(t, "deploy", doc.Title)
}

func TestRenderDocument_BadTitle(t *testing.T) {
	_, err := RenderDocument("x.md", []byte("---\ntitle: [1, 2]\n---\nbody\n"))
	assert.Error(t, err)
}

func TestMarkdownToStorage_XHTML(t *testing.T) {
	out, err := MarkdownToStorage([]byte("a  \nb\n\n---\n"))
	require.NoError(t, err)
	assert.Contains(t, out, "<br />")
	assert.Contains(t, out, "<hr />")
}

func TestStorageToMarkdown(t *testing.T) {
	base, err := url.Parse("https://example.atlassian.net/wiki/rest/api/")
	require.NoError(t, err)

	out, err := StorageToMarkdown(`<h1>Title</h1><p>see <a href="/wiki/spaces/X/pages/1">this</a></p>`, base)
	require.NoError(t, err)
	assert.Contains(t, out, "# Title")
	assert.Contains(t, out, "[this](https://example.atlassian.net/wiki/spaces/X/pages/1)")

	out, err = StorageToMarkdown("<p><strong>bold</strong></p>", nil)
	require.NoError(t, err)
	assert.Contains(t, out, "**bold**")
}

func TestTracked(t *testing.T) {
	p := &Publisher{DocsDir: "docs/"}
	assert.True(t, p.tracked("docs/a.md"))
	assert.True(t, p.tracked("docs/sub/a.md"))
	assert.False(t, p.tracked("docs/a.txt"))
	assert.False(t, p.tracked("docsx/a.md"))
	assert.False(t, p.tracked("README.md"))

	p.DocsDir = ""
	assert.True(t, p.tracked("README.md"))
}

type gitFixture struct {
	t    *testing.T
	dir  string
	repo *git.Repository
	wt   *git.Worktree
	tick int
}

func newGitFixture(t *testing.T) *gitFixture {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	return &gitFixture{t: t, dir: dir, repo: repo, wt: wt}
}

func (g *gitFixture) write(path, contents string) {
	full := filepath.Join(g.dir, path)
	require.NoError(g.t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(g.t, os.WriteFile(full, []byte(contents), 0o644))
	_, err := g.wt.Add(path)
	require.NoError(g.t, err)
}

func (g *gitFixture) commit(msg string) *object.Commit {
	g.tick++
	h, err := g.wt.Commit(msg, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Paul",
			Email: "paul@example.com",
			When:  time.Date(2024, 1, 1, 0, g.tick, 0, 0, time.UTC),
		},
	})
	require.NoError(g.t, err)
	c, err := g.repo.CommitObject(h)
	require.NoError(g.t, err)
	return c
}

func TestPlan(t *testing.T) {
	g := newGitFixture(t)
	g.write("README.md", "not published\n")
	g.write("docs/intro.md", intro)
	g.write("docs/guide.md", "# Guide\n")
	g.write("docs/old-name.md", "moving soon\n")
	g.write("docs/logo.txt", "not markdown\n")
	c1 := g.commit("first")

	g.write("docs/intro.md", intro+"\nMore.\n")
	_, err := g.wt.Remove("docs/guide.md")
	require.NoError(t, err)
	_, err = g.wt.Move("docs/old-name.md", "docs/new-name.md")
	require.NoError(t, err)
	c2 := g.commit("second")

	p := &Publisher{DocsDir: "docs"}
	ops, err := p.Plan([]*object.Commit{c1, c2})
	require.NoError(t, err)
	require.Len(t, ops, 6)

	// the root commit only adds
	for _, op := range ops[:3] {
		assert.Equal(t, OpUpsert, op.Kind)
		assert.Equal(t, c1.Hash, op.Commit)
	}
	assert.Equal(t, []string{"guide", "Introduction", "old-name"},
		[]string{ops[0].Title, ops[1].Title, ops[2].Title})

	byKind := map[OpKind]Operation{}
	for _, op := range ops[3:] {
		assert.Equal(t, c2.Hash, op.Commit)
		byKind[op.Kind] = op
	}
	require.Len(t, byKind, 3)

	assert.Equal(t, "Introduction", byKind[OpUpsert].Title)
	assert.Contains(t, byKind[OpUpsert].Body, "More.")

	assert.Equal(t, "guide", byKind[OpDelete].PreviousTitle)
	assert.Equal(t, "docs/guide.md", byKind[OpDelete].PreviousPath)
	assert.Empty(t, byKind[OpDelete].Body)

	assert.Equal(t, "old-name", byKind[OpRename].PreviousTitle)
	assert.Equal(t, "new-name", byKind[OpRename].Title)
	assert.Equal(t, "docs/old-name.md", byKind[OpRename].PreviousPath)
	assert.Equal(t, "docs/new-name.md", byKind[OpRename].Path)
	assert.Contains(t, byKind[OpRename].Body, "moving soon")
}

func TestPlan_RenameOutOfDocs(t *testing.T) {
	g := newGitFixture(t)
	g.write("docs/a.md", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa\n")
	g.commit("first")
	_, err := g.wt.Move("docs/a.md", "archive/a.md")
	require.NoError(t, err)
	c2 := g.commit("archive it")

	p := &Publisher{DocsDir: "docs"}
	ops, err := p.Plan([]*object.Commit{c2})
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, OpDelete, ops[0].Kind)
	assert.Equal(t, "a", ops[0].PreviousTitle)
}

func TestPlan_RetitleRenames(t *testing.T) {
	g := newGitFixture(t)
	g.write("docs/a.md", "---\ntitle: Old\n---\nbody\n")
	g.commit("first")
	g.write("docs/a.md", "---\ntitle: New\n---\nbody\n")
	c2 := g.commit("retitle")

	p := &Publisher{DocsDir: "docs"}
	ops, err := p.Plan([]*object.Commit{c2})
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, OpRename, ops[0].Kind)
	assert.Equal(t, "Old", ops[0].PreviousTitle)
	assert.Equal(t, "New", ops[0].Title)
	assert.Equal(t, "docs/a.md", ops[0].PreviousPath)

	content := newFakeContent(confluence.Content{ID: "7", Title: "Old", Version: &confluence.Version{Number: 3}})
	p.Content = content
	summary, err := p.Apply(context.Background(), ops)
	require.NoError(t, err)
	assert.Equal(t, Summary{Renamed: 1}, summary)
	assert.Empty(t, content.created)
	require.Len(t, content.pages, 1)
	assert.Equal(t, 4, content.pages["New"].Version.Number)
}

// fakeContent is an in-memory space, keyed by title.
type fakeContent struct {
	pages   map[string]*confluence.Content
	nextID  int
	created []confluence.CreateContent
	updated []confluence.UpdateContent
	deleted []string
	fail    error
}

func newFakeContent(existing ...confluence.Content) *fakeContent {
	f := &fakeContent{pages: map[string]*confluence.Content{}, nextID: 100}
	for i := range existing {
		f.pages[existing[i].Title] = &existing[i]
	}
	return f
}

func (f *fakeContent) SpaceKey() string { return "DOCS" }

func (f *fakeContent) GetContent(ctx context.Context, query confluence.GetContentQuery, opts ...confluence.RequestOption) (*confluence.ContentArray, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	out := &confluence.ContentArray{}
	if page, ok := f.pages[query.Title]; ok {
		out.Results = append(out.Results, *page)
	}
	out.Size = len(out.Results)
	return out, nil
}

func (f *fakeContent) CreateContent(ctx context.Context, content confluence.CreateContent, opts ...confluence.RequestOption) (*confluence.Content, error) {
	f.created = append(f.created, content)
	f.nextID++
	page := &confluence.Content{
		ID:      strconv.Itoa(f.nextID),
		Title:   content.Title,
		Version: &confluence.Version{Number: 1},
	}
	f.pages[content.Title] = page
	return page, nil
}

func (f *fakeContent) UpdateContent(ctx context.Context, id string, content confluence.UpdateContent, opts ...confluence.RequestOption) (*confluence.Content, error) {
	f.updated = append(f.updated, content)
	for title, page := range f.pages {
		if page.ID == id {
			delete(f.pages, title)
			page.Title = content.Title
			page.Version = &confluence.Version{Number: content.Version.Number}
			f.pages[content.Title] = page
			return page, nil
		}
	}
	return nil, errors.New("no such page")
}

func (f *fakeContent) DeleteContent(ctx context.Context, id string, opts ...confluence.RequestOption) error {
	f.deleted = append(f.deleted, id)
	for title, page := range f.pages {
		if page.ID == id {
			delete(f.pages, title)
		}
	}
	return nil
}

func TestApply(t *testing.T) {
	content := newFakeContent(
		confluence.Content{ID: "1", Title: "Introduction", Version: &confluence.Version{Number: 4}},
		confluence.Content{ID: "2", Title: "guide", Version: &confluence.Version{Number: 1}},
		confluence.Content{ID: "3", Title: "old-name", Version: &confluence.Version{Number: 2}},
	)
	p := &Publisher{Content: content, ParentID: "42"}

	summary, err := p.Apply(context.Background(), []Operation{
		{Kind: OpUpsert, Title: "Introduction", Body: "<p>v5</p>"},
		{Kind: OpUpsert, Title: "Brand new", Body: "<p>new</p>"},
		{Kind: OpDelete, PreviousTitle: "guide"},
		{Kind: OpRename, PreviousTitle: "old-name", Title: "new-name", Body: "<p>moved</p>"},
		{Kind: OpDelete, PreviousTitle: "never existed"},
	})
	require.NoError(t, err)
	assert.Equal(t, Summary{Created: 1, Updated: 1, Renamed: 1, Deleted: 1, Skipped: 1}, summary)

	require.Len(t, content.created, 1)
	created := content.created[0]
	assert.Equal(t, "page", created.Type)
	assert.Equal(t, "Brand new", created.Title)
	assert.Equal(t, "DOCS", created.Space.Key)
	assert.Equal(t, []confluence.Ancestor{{ID: "42"}}, created.Ancestors)
	assert.Equal(t, "<p>new</p>", created.Body.Storage.Value)
	assert.Equal(t, "storage", created.Body.Storage.Representation)

	require.Len(t, content.updated, 2)
	assert.Equal(t, 5, content.updated[0].Version.Number)
	assert.Equal(t, "1", content.updated[0].ID)
	assert.Equal(t, "new-name", content.updated[1].Title)
	assert.Equal(t, 3, content.updated[1].Version.Number)

	assert.Equal(t, []string{"2"}, content.deleted)
	assert.Contains(t, content.pages, "new-name")
	assert.NotContains(t, content.pages, "old-name")
}

func TestApply_RenameMissingCreates(t *testing.T) {
	content := newFakeContent()
	p := &Publisher{Content: content}

	summary, err := p.Apply(context.Background(), []Operation{
		{Kind: OpRename, PreviousTitle: "gone", Title: "fresh", Body: "<p/>"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Created)
	require.Len(t, content.created, 1)
	assert.Equal(t, "fresh", content.created[0].Title)
	assert.Nil(t, content.created[0].Ancestors)
}

func TestApply_DryRun(t *testing.T) {
	content := newFakeContent()
	content.fail = errors.New("should not be called")
	p := &Publisher{Content: content, DryRun: true}

	summary, err := p.Apply(context.Background(), []Operation{
		{Kind: OpUpsert, Title: "a"},
		{Kind: OpDelete, PreviousTitle: "b"},
	})
	require.NoError(t, err)
	assert.Equal(t, Summary{Skipped: 2}, summary)
	assert.Empty(t, content.created)
	assert.Empty(t, content.deleted)
}

func TestApply_StopsOnError(t *testing.T) {
	boom := errors.New("boom")
	content := newFakeContent()
	content.fail = boom
	var progress bytes.Buffer
	p := &Publisher{Content: content, Progress: &progress}

	summary, err := p.Apply(context.Background(), []Operation{
		{Kind: OpUpsert, Title: "a"},
		{Kind: OpUpsert, Title: "b"},
	})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `UPSERT "a"`)
	assert.Equal(t, Summary{}, summary)
}

func TestApply_Progress(t *testing.T) {
	var progress bytes.Buffer
	p := &Publisher{Content: newFakeContent(), Progress: &progress}

	summary, err := p.Apply(context.Background(), []Operation{
		{Kind: OpUpsert, Title: "a"},
		{Kind: OpUpsert, Title: "b"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Created)
}
