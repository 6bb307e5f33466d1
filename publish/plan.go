package publish

import (
	"fmt"
	"path"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/toothbrush/junction/githistory"
)

type OpKind int

const (
	OpUpsert OpKind = iota + 1
	OpDelete
	OpRename
)

func (k OpKind) String() string {
	switch k {
	case OpUpsert:
		return "UPSERT"
	case OpDelete:
		return "DELETE"
	case OpRename:
		return "RENAME"
	}
	return fmt.Sprintf("OpKind(%d)", int(k))
}

// Operation is one change to make in Confluence.  Body is storage format and empty for deletes.
// PreviousTitle is only set for renames and deletes.
type Operation struct {
	Kind          OpKind
	Commit        plumbing.Hash
	Path          string
	PreviousPath  string
	Title         string
	PreviousTitle string
	Body          string
}

func (o Operation) String() string {
	switch o.Kind {
	case OpDelete:
		return fmt.Sprintf("%s %q (%s)", o.Kind, o.PreviousTitle, o.PreviousPath)
	case OpRename:
		return fmt.Sprintf("%s %q -> %q (%s)", o.Kind, o.PreviousTitle, o.Title, o.Path)
	}
	return fmt.Sprintf("%s %q (%s)", o.Kind, o.Title, o.Path)
}

// Plan turns the modifications of commits, oldest first, into Confluence operations.  Only
// markdown files under DocsDir are considered.
func (p *Publisher) Plan(commits []*object.Commit) ([]Operation, error) {
	var ops []Operation
	for _, commit := range commits {
		mods, err := githistory.GetModifications(commit)
		if err != nil {
			return nil, fmt.Errorf("publish: couldn't list modifications of %s: %w", commit.Hash, err)
		}

		for _, mod := range mods {
			op, ok, err := p.planModification(commit, mod)
			if err != nil {
				return nil, fmt.Errorf("publish: %s in %s: %w", mod, commit.Hash, err)
			}
			if !ok {
				continue
			}
			p.Logger.Debug().Str("commit", commit.Hash.String()).Msgf("planned %s", op)
			ops = append(ops, op)
		}
	}
	return ops, nil
}

func (p *Publisher) planModification(commit *object.Commit, mod githistory.Modification) (Operation, bool, error) {
	switch mod.ChangeType {
	case githistory.ModificationAdd:
		if !p.tracked(mod.Path()) {
			return Operation{}, false, nil
		}
		return p.upsert(commit, mod.Path())

	case githistory.ModificationModify:
		if !p.tracked(mod.Path()) {
			return Operation{}, false, nil
		}
		return p.modify(commit, mod.Path())

	case githistory.ModificationDelete:
		if !p.tracked(mod.Path()) {
			return Operation{}, false, nil
		}
		return p.delete(commit, mod.Path())

	case githistory.ModificationRename:
		oldPath, _ := mod.PreviousPath()
		newPath := mod.Path()
		switch oldTracked, newTracked := p.tracked(oldPath), p.tracked(newPath); {
		case oldTracked && newTracked:
			return p.rename(commit, oldPath, newPath)
		case oldTracked:
			// moved out of the docs tree
			return p.delete(commit, oldPath)
		case newTracked:
			return p.upsert(commit, newPath)
		}
	}

	return Operation{}, false, nil
}

func (p *Publisher) upsert(commit *object.Commit, filePath string) (Operation, bool, error) {
	doc, err := readDocument(commit, filePath)
	if err != nil {
		return Operation{}, false, err
	}
	return Operation{
		Kind:   OpUpsert,
		Commit: commit.Hash,
		Path:   filePath,
		Title:  doc.Title,
		Body:   doc.Storage,
	}, true, nil
}

// modify is an upsert, unless the edit changed the title, in which case the page is renamed.
func (p *Publisher) modify(commit *object.Commit, filePath string) (Operation, bool, error) {
	op, ok, err := p.upsert(commit, filePath)
	if err != nil || !ok {
		return op, ok, err
	}
	old, err := readParentDocument(commit, filePath)
	if err != nil {
		return Operation{}, false, err
	}
	if old.Title != op.Title {
		op.Kind = OpRename
		op.PreviousPath = filePath
		op.PreviousTitle = old.Title
	}
	return op, true, nil
}

func (p *Publisher) delete(commit *object.Commit, filePath string) (Operation, bool, error) {
	old, err := readParentDocument(commit, filePath)
	if err != nil {
		return Operation{}, false, err
	}
	return Operation{
		Kind:          OpDelete,
		Commit:        commit.Hash,
		PreviousPath:  filePath,
		PreviousTitle: old.Title,
	}, true, nil
}

func (p *Publisher) rename(commit *object.Commit, oldPath, newPath string) (Operation, bool, error) {
	old, err := readParentDocument(commit, oldPath)
	if err != nil {
		return Operation{}, false, err
	}
	doc, err := readDocument(commit, newPath)
	if err != nil {
		return Operation{}, false, err
	}
	return Operation{
		Kind:          OpRename,
		Commit:        commit.Hash,
		Path:          newPath,
		PreviousPath:  oldPath,
		Title:         doc.Title,
		PreviousTitle: old.Title,
		Body:          doc.Storage,
	}, true, nil
}

func (p *Publisher) tracked(filePath string) bool {
	if path.Ext(filePath) != ".md" {
		return false
	}
	dir := strings.Trim(path.Clean("/"+p.DocsDir), "/")
	if dir == "" {
		return true
	}
	return strings.HasPrefix(filePath, dir+"/")
}

func readDocument(commit *object.Commit, filePath string) (Document, error) {
	f, err := commit.File(filePath)
	if err != nil {
		return Document{}, fmt.Errorf("couldn't find %s: %w", filePath, err)
	}
	contents, err := f.Contents()
	if err != nil {
		return Document{}, fmt.Errorf("couldn't read %s: %w", filePath, err)
	}
	return RenderDocument(filePath, []byte(contents))
}

func readParentDocument(commit *object.Commit, filePath string) (Document, error) {
	parent, err := commit.Parent(0)
	if err != nil {
		return Document{}, fmt.Errorf("couldn't load parent commit: %w", err)
	}
	return readDocument(parent, filePath)
}
