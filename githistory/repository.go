// Package githistory answers the two questions publishing needs from git: which commits landed
// on a branch since a known commit, and which files each of them touched.
package githistory

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// FindRepositoryRoot walks up from path (inclusive) until it finds a directory containing .git.
// ok is false if the filesystem root is reached without finding one.
func FindRepositoryRoot(path string) (root string, ok bool, err error) {
	cur, err := filepath.Abs(path)
	if err != nil {
		return "", false, fmt.Errorf("githistory: couldn't resolve %s: %w", path, err)
	}

	for {
		if _, err := os.Stat(filepath.Join(cur, git.GitDirName)); err == nil {
			return cur, true, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			// bottomed out at the filesystem root
			return "", false, nil
		}
		cur = parent
	}
}

// Open opens the repository containing path.
func Open(path string) (*git.Repository, error) {
	root, ok, err := FindRepositoryRoot(path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("githistory: no repository above %s: %w", path, git.ErrRepositoryNotExists)
	}

	repo, err := git.PlainOpen(root)
	if err != nil {
		return nil, fmt.Errorf("githistory: couldn't open repository at %s: %w", root, err)
	}

	return repo, nil
}
