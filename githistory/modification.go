package githistory

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

type ModificationType int

const (
	ModificationAdd ModificationType = iota + 1
	ModificationRename
	ModificationDelete
	ModificationModify
	ModificationUnknown
)

func (m ModificationType) String() string {
	switch m {
	case ModificationAdd:
		return "ADD"
	case ModificationRename:
		return "RENAME"
	case ModificationDelete:
		return "DELETE"
	case ModificationModify:
		return "MODIFY"
	default:
		return "UNKNOWN"
	}
}

// MarshalText lets the type show up by name in JSON and YAML output.
func (m ModificationType) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// DiffEntry is a single file-level change between two trees, in the shape classification needs.
// Paths are empty and blobs are zero on the side where the file doesn't exist.
type DiffEntry struct {
	APath, BPath string
	ABlob, BBlob plumbing.Hash

	NewFile     bool
	DeletedFile bool
	RenamedFile bool
}

// Classify decides the kind of change.  The checks are ordered; a change which matches none of
// them, e.g. a mode-only change where both blobs are equal, is ModificationUnknown.
func (d DiffEntry) Classify() ModificationType {
	switch {
	case d.NewFile:
		return ModificationAdd
	case d.DeletedFile:
		return ModificationDelete
	case d.RenamedFile:
		return ModificationRename
	case !d.ABlob.IsZero() && !d.BBlob.IsZero() && d.ABlob != d.BBlob:
		return ModificationModify
	}
	return ModificationUnknown
}

func diffEntryFromChange(c *object.Change) DiffEntry {
	from, to := c.From.Name, c.To.Name
	return DiffEntry{
		APath:       from,
		BPath:       to,
		ABlob:       c.From.TreeEntry.Hash,
		BBlob:       c.To.TreeEntry.Hash,
		NewFile:     from == "",
		DeletedFile: to == "",
		RenamedFile: from != "" && to != "" && from != to,
	}
}

// Modification is one file touched by a commit.
type Modification struct {
	oldPath    string
	newPath    string
	ChangeType ModificationType
}

func NewModification(oldPath, newPath string, changeType ModificationType) Modification {
	return Modification{
		oldPath:    oldPath,
		newPath:    newPath,
		ChangeType: changeType,
	}
}

// ModificationFromDiff classifies d.
func ModificationFromDiff(d DiffEntry) Modification {
	return NewModification(d.APath, d.BPath, d.Classify())
}

// Path is where the file lives after the change, or where it lived if it was deleted.
func (m Modification) Path() string {
	if m.newPath != "" {
		return m.newPath
	}
	return m.oldPath
}

// PreviousPath returns the path before a rename.  ok is false for every other kind of change.
func (m Modification) PreviousPath() (path string, ok bool) {
	if m.ChangeType != ModificationRename {
		return "", false
	}
	return m.oldPath, true
}

func (m Modification) String() string {
	return fmt.Sprintf("%s %s", m.ChangeType, m.Path())
}

// GetModifications lists the files changed by commit relative to its first parent.  A root
// commit is compared to the empty tree, so all of its files are additions.  The order is the
// order of the tree diff.
func GetModifications(commit *object.Commit) ([]Modification, error) {
	return GetModificationsContext(context.Background(), commit)
}

func GetModificationsContext(ctx context.Context, commit *object.Commit) ([]Modification, error) {
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("githistory: couldn't load tree of %s: %w", commit.Hash, err)
	}

	parentTree := &object.Tree{}
	if commit.NumParents() > 0 {
		parent, err := commit.Parent(0)
		if err != nil {
			return nil, fmt.Errorf("githistory: couldn't load first parent of %s: %w", commit.Hash, err)
		}
		parentTree, err = parent.Tree()
		if err != nil {
			return nil, fmt.Errorf("githistory: couldn't load tree of %s: %w", parent.Hash, err)
		}
	}

	changes, err := object.DiffTreeWithOptions(ctx, parentTree, tree, object.DefaultDiffTreeOptions)
	if err != nil {
		return nil, fmt.Errorf("githistory: couldn't diff %s: %w", commit.Hash, err)
	}

	modifications := make([]Modification, 0, len(changes))
	for _, c := range changes {
		modifications = append(modifications, ModificationFromDiff(diffEntryFromChange(c)))
	}

	return modifications, nil
}
