package provider

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"ai-commit/internal/config"
	"ai-commit/internal/llm"
	"ai-commit/internal/logger"
	"ai-commit/internal/runner"
)

// OllamaExecutable is the offline model binary looked up on PATH.
const OllamaExecutable = "ollama"

// InstallCommand is a shell invocation that installs the offline backend.
type InstallCommand struct {
	Name string
	Args []string
}

func (c InstallCommand) String() string {
	return c.Name + " " + strings.Join(c.Args, " ")
}

// DefaultInstallCommand returns the upstream install script for goos.
func DefaultInstallCommand(goos string) InstallCommand {
	if goos == "windows" {
		return InstallCommand{
			Name: "powershell",
			Args: []string{"-NoProfile", "-Command", "irm https://ollama.com/install.ps1 | iex"},
		}
	}
	return InstallCommand{
		Name: "sh",
		Args: []string{"-c", "curl -fsSL https://ollama.com/install.sh | sh"},
	}
}

// OllamaProvider runs a locally installed model through the ollama CLI.
type OllamaProvider struct {
	runner  runner.Runner
	model   string
	install InstallCommand
	notify  Notifier
}

func NewOllamaProvider(cfg *config.Config, r runner.Runner, notify Notifier) *OllamaProvider {
	if notify == nil {
		notify = discard
	}
	return &OllamaProvider{
		runner:  r,
		model:   cfg.OllamaModel(),
		install: DefaultInstallCommand(runtime.GOOS),
		notify:  notify,
	}
}

func (p *OllamaProvider) Name() string {
	return "ollama (" + p.model + ")"
}

// GenerateCommitMessage runs `ollama run <model> <prompt>`. When ollama is not
// on PATH it runs the installer once and fails; the caller has to retry.
func (p *OllamaProvider) GenerateCommitMessage(ctx context.Context, changes llm.ChangeSet) (string, error) {
	prompt := llm.BuildCommitPrompt(changes)

	path, err := p.runner.LookPath(OllamaExecutable)
	if err != nil {
		logger.Debugf("%s not found on PATH: %v", OllamaExecutable, err)
		return "", p.bootstrap(ctx)
	}
	logger.Debugf("using %s at %s with model %s", OllamaExecutable, path, p.model)

	out, runErr := p.runner.Output(ctx, OllamaExecutable, "run", p.model, prompt)
	message := strings.TrimSpace(strings.ToValidUTF8(string(out), "\uFFFD"))
	if message == "" {
		if runErr != nil {
			return "", fmt.Errorf("%w: %v", ErrEmptyMessage, runErr)
		}
		return "", ErrEmptyMessage
	}
	if runErr != nil {
		logger.Warnf("%s exited with an error but produced output: %v", OllamaExecutable, runErr)
	}

	return message, nil
}

// bootstrap always returns ErrExecutableMissing, whether or not the installer
// succeeded.
func (p *OllamaProvider) bootstrap(ctx context.Context) error {
	p.notify("Installing Ollama for offline commit message generation...")
	logger.Infof("running installer: %s", p.install)

	if err := p.runner.Run(ctx, p.install.Name, p.install.Args...); err != nil {
		logger.Warnf("ollama installer failed: %v", err)
	}
	return ErrExecutableMissing
}
