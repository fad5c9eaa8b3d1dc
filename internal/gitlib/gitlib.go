package gitlib

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// DeployDir holds build output and never counts toward a dirty tree.
const DeployDir = ".deploy"

var ErrNotGitRepo = errors.New("this does not appear to be a git repository")

type DotGit struct {
	Branch string
	Sha    string
	Root   string
	Dirty  bool
}

// FromDir reads the revision of the repository enclosing dir. A repository
// without commits has no revision and comes back with only its Root set.
func FromDir(dir string) (found DotGit, err error) {
	thisRepoPath, thisRepo, err := FindDotGit(dir)
	if err != nil {
		return DotGit{}, err
	}

	found.Root = thisRepoPath

	found.Branch, err = Branch(thisRepo)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return found, nil
	}

	if err != nil {
		return DotGit{}, err
	}

	if found.Sha, err = Sha(thisRepo); err != nil {
		return DotGit{}, err
	}

	if found.Dirty, err = Dirty(thisRepo); err != nil {
		return DotGit{}, err
	}

	return found, nil
}

func FindDotGit(dir string) (root string, repo *git.Repository, err error) {
	cwd, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, err
	}

	for {
		if _, err := os.Stat(filepath.Join(cwd, ".git")); err == nil {
			repo, err := git.PlainOpen(cwd)
			if err != nil {
				return "", nil, err
			}

			return cwd, repo, nil
		}

		parentDir := filepath.Dir(cwd)
		if parentDir == cwd {
			return cwd, nil, ErrNotGitRepo
		}
		cwd = parentDir
	}
}

func Head(repo *git.Repository) (plumbing.Reference, error) {
	head, err := repo.Head()
	if err != nil {
		return plumbing.Reference{}, err
	}

	return *head, nil
}

func Branch(repo *git.Repository) (string, error) {
	head, err := Head(repo)
	if err != nil {
		return "", err
	}

	return head.Name().Short(), nil
}

func Sha(repo *git.Repository) (string, error) {
	head, err := Head(repo)
	if err != nil {
		return "", err
	}

	return head.Hash().String(), nil
}

// Dirty reports uncommitted changes to tracked files. Untracked files, build
// output under .deploy included, do not count.
func Dirty(repo *git.Repository) (bool, error) {
	wt, err := repo.Worktree()
	if err != nil {
		return false, err
	}

	wt.Excludes = append(wt.Excludes, gitignore.ParsePattern(DeployDir, nil))

	status, err := wt.Status()
	if err != nil {
		return false, err
	}

	for _, file := range status {
		if file.Worktree == git.Untracked && file.Staging == git.Untracked {
			continue
		}

		if file.Worktree != git.Unmodified || file.Staging != git.Unmodified {
			return true, nil
		}
	}

	return false, nil
}
