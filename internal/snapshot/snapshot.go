// Package snapshot keeps a local git history of a location's documents.
// Each snapshot commits the full working tree; there is no remote.
package snapshot

import (
	"errors"
	"fmt"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"inkpad/internal/debug"
)

// ErrNoChanges is returned by Take when the working tree is clean.
var ErrNoChanges = errors.New("snapshot: no changes since last snapshot")

const (
	authorName  = "inkpad"
	authorEmail = "inkpad@localhost"
)

// Repo wraps the git repository backing a location's snapshot history.
type Repo struct {
	root string
	repo *git.Repository
}

// Open opens the snapshot repository at root, initializing one on first
// use.
func Open(root string) (*Repo, error) {
	repo, err := git.PlainOpen(root)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		repo, err = git.PlainInit(root, false)
		if err == nil {
			debug.Log(debug.APP, "initialized snapshot repo at %s", root)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("snapshot: open %s: %w", root, err)
	}
	return &Repo{root: root, repo: repo}, nil
}

// Take stages every change under the location root and commits it,
// returning the commit hash. A clean tree returns ErrNoChanges.
func (r *Repo) Take(message string) (string, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("snapshot: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return "", fmt.Errorf("snapshot: %w", err)
	}
	if status.IsClean() {
		return "", ErrNoChanges
	}

	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return "", fmt.Errorf("snapshot: %w", err)
	}

	if message == "" {
		message = "snapshot"
	}
	hash, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  authorName,
			Email: authorEmail,
			When:  time.Now(),
		},
	})
	if err != nil {
		return "", fmt.Errorf("snapshot: %w", err)
	}
	debug.Log(debug.APP, "snapshot %s: %s", hash.String()[:8], message)
	return hash.String(), nil
}

// Entry describes one snapshot in the history.
type Entry struct {
	Hash    string
	Message string
	Taken   time.Time
}

// History returns the most recent snapshots, newest first. limit <= 0
// returns the full history.
func (r *Repo) History(limit int) ([]Entry, error) {
	head, err := r.repo.Head()
	if err != nil {
		// No commits yet.
		return nil, nil
	}
	iter, err := r.repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	defer iter.Close()

	var entries []Entry
	err = iter.ForEach(func(c *object.Commit) error {
		if limit > 0 && len(entries) >= limit {
			return storer.ErrStop
		}
		entries = append(entries, Entry{
			Hash:    c.Hash.String(),
			Message: c.Message,
			Taken:   c.Author.When,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return entries, nil
}
