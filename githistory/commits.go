package githistory

import (
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"golang.org/x/exp/slices"
)

// FindCommitsOnBranchAfter returns the commits in startSHA..branchName, following first parents
// only, oldest first.  This is the order in which to replay them.
func FindCommitsOnBranchAfter(repo *git.Repository, branchName string, startSHA string) ([]*object.Commit, error) {
	tip, err := repo.ResolveRevision(plumbing.Revision(branchName))
	if err != nil {
		return nil, fmt.Errorf("githistory: couldn't resolve branch %s: %w", branchName, err)
	}

	start, err := repo.ResolveRevision(plumbing.Revision(startSHA))
	if err != nil {
		return nil, fmt.Errorf("githistory: couldn't resolve commit %s: %w", startSHA, err)
	}

	excluded, err := ancestors(repo, *start)
	if err != nil {
		return nil, err
	}

	commit, err := repo.CommitObject(*tip)
	if err != nil {
		return nil, fmt.Errorf("githistory: couldn't load commit %s: %w", tip, err)
	}

	commits := []*object.Commit{}
	for {
		if _, ok := excluded[commit.Hash]; ok {
			break
		}
		commits = append(commits, commit)

		if commit.NumParents() == 0 {
			break
		}
		commit, err = commit.Parent(0)
		if err != nil {
			return nil, fmt.Errorf("githistory: couldn't load first parent of %s: %w", commits[len(commits)-1].Hash, err)
		}
	}

	slices.Reverse(commits)
	return commits, nil
}

// ancestors returns from and everything reachable from it, through all parents.
func ancestors(repo *git.Repository, from plumbing.Hash) (map[plumbing.Hash]struct{}, error) {
	commit, err := repo.CommitObject(from)
	if err != nil {
		return nil, fmt.Errorf("githistory: couldn't load commit %s: %w", from, err)
	}

	seen := map[plumbing.Hash]struct{}{}
	iter := object.NewCommitPreorderIter(commit, nil, nil)
	defer iter.Close()

	err = iter.ForEach(func(c *object.Commit) error {
		seen[c.Hash] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("githistory: couldn't walk history of %s: %w", from, err)
	}

	return seen, nil
}
