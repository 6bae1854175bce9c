package cli

import (
	"context"
	"fmt"
	"os"

	"ai-commit/internal/color"
	"ai-commit/internal/config"
	"ai-commit/internal/console"
	"ai-commit/internal/editor"
	"ai-commit/internal/git"
	"ai-commit/internal/llm"
	"ai-commit/internal/logger"
	"ai-commit/internal/provider"
	"ai-commit/internal/runner"

	"github.com/spf13/cobra"
)

type repository interface {
	StagedFiles(ctx context.Context) (string, error)
	StagedDiff(ctx context.Context) (string, error)
	StageAllChanges() error
	Commit(ctx context.Context, message string) error
}

type generator interface {
	GenerateCommitMessage(ctx context.Context, changes llm.ChangeSet, backend config.Backend) (string, error)
}

type generateOptions struct {
	all      bool
	edit     bool
	yes      bool
	showDiff bool
}

type generateFlow struct {
	repo    repository
	cfg     *config.Config
	gen     generator
	console *console.Console
	runner  runner.Runner
	opts    generateOptions
}

func runGenerate(cmd *cobra.Command, args []string) error {
	var opts generateOptions
	opts.all, _ = cmd.Flags().GetBool("all")
	opts.edit, _ = cmd.Flags().GetBool("edit")
	opts.yes, _ = cmd.Flags().GetBool("yes")
	opts.showDiff, _ = cmd.Flags().GetBool("show-diff")

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	repo, err := git.Open(cwd, nil)
	if err != nil {
		return err
	}
	logger.Debugf("repository root: %s", repo.Root())

	cfg := config.Load(configPath)
	con := console.New()
	r := &runner.Exec{Dir: repo.Root()}

	gen := provider.NewOrchestrator(cfg,
		provider.NewOpenAIProvider(cfg, nil),
		provider.NewOllamaProvider(cfg, &runner.Exec{Dir: repo.Root(), Env: cfg.OllamaEnv()}, con.Notice),
		con.Notice,
	)

	flow := &generateFlow{repo: repo, cfg: cfg, gen: gen, console: con, runner: r, opts: opts}
	return flow.run(cmd.Context())
}

func (f *generateFlow) run(ctx context.Context) error {
	if f.opts.all {
		if err := f.repo.StageAllChanges(); err != nil {
			return fmt.Errorf("failed to stage changes: %w", err)
		}
	}

	files, err := f.console.Spin("Fetching staged changes...", func() (string, error) {
		return f.repo.StagedFiles(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to list staged files: %w", err)
	}
	if files == "" {
		f.console.Failuref("No staged changes found.")
		return nil
	}

	diff, err := f.repo.StagedDiff(ctx)
	if err != nil {
		return fmt.Errorf("failed to get staged changes: %w", err)
	}
	if stats, err := git.Stats(diff); err == nil {
		f.console.Faintf("%s", stats)
	} else {
		logger.Debugf("skipping diff stats: %v", err)
	}
	if f.opts.showDiff {
		if err := color.Diff(f.console.Out(), diff); err != nil {
			logger.Warnf("%v", err)
		}
	}

	backend := f.cfg.Backend()
	f.console.Faintf("Generating commit message (%s)...", backend)

	message, err := f.gen.GenerateCommitMessage(ctx, llm.ChangeSet{Files: files, Diff: diff}, backend)
	if err != nil {
		f.console.Failuref("Error generating commit message: %v", err)
		return errReported
	}

	f.console.Suggestion(message)

	if f.opts.edit {
		message, err = editor.Edit(ctx, f.runner, message)
		if err != nil {
			return fmt.Errorf("failed to edit commit message: %w", err)
		}
	} else if !f.opts.yes && !f.console.Confirm("Do you want to use this message?") {
		f.console.Warningf("Commit message not applied. You can enter your own.")
		return nil
	}

	if err := f.repo.Commit(ctx, message); err != nil {
		logger.Debugf("%v", err)
		f.console.Failuref("Commit failed!")
		return errReported
	}
	f.console.Successf("Commit successful!")
	return nil
}
