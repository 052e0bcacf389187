package git

import (
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
)

// Client reads repository state through go-git, without shelling out.
type Client struct{}

// NewClient creates a new Git client.
func NewClient() *Client {
	return &Client{}
}

func open(dir string) (*gogit.Repository, error) {
	return gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
}

// Dirty reports whether the working tree has staged or unstaged changes to
// tracked files. Untracked files are ignored. A directory outside any
// repository, or a bare repository, is never dirty.
func (c *Client) Dirty(dir string) (bool, error) {
	repo, err := open(dir)
	if errors.Is(err, gogit.ErrRepositoryNotExists) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to open repository at %s: %w", dir, err)
	}

	wt, err := repo.Worktree()
	if errors.Is(err, gogit.ErrIsBareRepository) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to open worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("failed to read git status: %w", err)
	}
	for _, fs := range status {
		if changed(fs.Staging) || changed(fs.Worktree) {
			return true, nil
		}
	}
	return false, nil
}

func changed(code gogit.StatusCode) bool {
	return code != gogit.Unmodified && code != gogit.Untracked
}

// CurrentCommitSHA returns the HEAD commit hash.
func (c *Client) CurrentCommitSHA(dir string) (string, error) {
	repo, err := open(dir)
	if err != nil {
		return "", err
	}
	head, err := repo.Head()
	if err != nil {
		return "", err
	}
	return head.Hash().String(), nil
}
