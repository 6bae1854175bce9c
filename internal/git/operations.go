package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ai-commit/internal/logger"
	"ai-commit/internal/runner"

	gogit "github.com/go-git/go-git/v5"
)

// ErrNotRepository is returned when no repository contains the directory.
var ErrNotRepository = errors.New("not a git repository")

// Repo reads staged changes and commits them.
type Repo struct {
	root   string
	repo   *gogit.Repository
	runner runner.Runner
}

// Open finds the repository containing dir, walking up to the .git directory.
// Commands that go-git cannot perform run through r in the repository root.
func Open(dir string, r runner.Runner) (*Repo, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, ErrNotRepository
		}
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("repository has no worktree: %w", err)
	}

	if r == nil {
		r = &runner.Exec{Dir: wt.Filesystem.Root()}
	}
	return &Repo{root: wt.Filesystem.Root(), repo: repo, runner: r}, nil
}

func (r *Repo) Root() string {
	return r.root
}

// StagedFiles returns `git diff --cached --name-only`, trimmed. It reads the
// same index as StagedDiff, so an empty list means an empty diff.
func (r *Repo) StagedFiles(ctx context.Context) (string, error) {
	out, err := r.runner.Output(ctx, "git", "diff", "--cached", "--name-only")
	if err != nil {
		return "", fmt.Errorf("failed to list staged files: %w", err)
	}
	files := strings.TrimSpace(string(out))
	if files != "" {
		logger.Debugf("%d staged files", strings.Count(files, "\n")+1)
	}
	return files, nil
}

// StagedDiff returns `git diff --cached`, trimmed.
func (r *Repo) StagedDiff(ctx context.Context) (string, error) {
	out, err := r.runner.Output(ctx, "git", "diff", "--cached")
	if err != nil {
		return "", fmt.Errorf("failed to get staged diff: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// StageAllChanges stages everything in the worktree, like `git add -A`.
func (r *Repo) StageAllChanges() error {
	wt, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree: %w", err)
	}
	if err := wt.AddWithOptions(&gogit.AddOptions{All: true}); err != nil {
		return fmt.Errorf("git add failed: %w", err)
	}
	return nil
}

// Commit runs `git commit -m message` attached to the terminal so hooks and
// signing prompts behave as usual.
func (r *Repo) Commit(ctx context.Context, message string) error {
	if err := r.runner.Run(ctx, "git", "commit", "-m", message); err != nil {
		return fmt.Errorf("git commit failed: %w", err)
	}
	return nil
}
