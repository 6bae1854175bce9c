package provider

import (
	"context"
	"errors"
	"fmt"

	"ai-commit/internal/config"
	"ai-commit/internal/llm"
	"ai-commit/internal/logger"
)

var (
	// ErrRemoteUnavailable means the hosted backend could not be used: no
	// credential, or the request never got a response. The orchestrator
	// recovers from it by falling back to the local backend.
	ErrRemoteUnavailable = errors.New("remote backend unavailable")

	// ErrExecutableMissing is returned after an install attempt for the
	// offline backend.
	ErrExecutableMissing = errors.New("ollama was not installed; please run the command again once the installation completes")

	// ErrEmptyMessage means the offline backend ran but printed nothing usable.
	ErrEmptyMessage = errors.New("ollama failed to generate a commit message")
)

// Notifier receives informational notices meant for the user.
type Notifier func(message string)

func discard(string) {}

// RemoteGenerator produces a message through a hosted API.
type RemoteGenerator interface {
	Name() string
	GenerateCommitMessage(ctx context.Context, changes llm.ChangeSet, apiKey string) (string, error)
}

// LocalGenerator produces a message offline.
type LocalGenerator interface {
	Name() string
	GenerateCommitMessage(ctx context.Context, changes llm.ChangeSet) (string, error)
}

// Orchestrator tries the remote backend at most once when selected, then the
// local backend, whose result is final.
type Orchestrator struct {
	config *config.Config
	remote RemoteGenerator
	local  LocalGenerator
	notify Notifier
}

func NewOrchestrator(cfg *config.Config, remote RemoteGenerator, local LocalGenerator, notify Notifier) *Orchestrator {
	if notify == nil {
		notify = discard
	}
	return &Orchestrator{
		config: cfg,
		remote: remote,
		local:  local,
		notify: notify,
	}
}

// attempt is the outcome of one tier. skipped carries the reason the tier
// produced nothing.
type attempt struct {
	message string
	skipped error
}

// GenerateCommitMessage returns the first message produced by the fallback
// chain. Remote errors are reported through the notifier, never returned.
func (o *Orchestrator) GenerateCommitMessage(ctx context.Context, changes llm.ChangeSet, backend config.Backend) (string, error) {
	if backend == config.Remote {
		res := o.tryRemote(ctx, changes)
		if res.skipped == nil {
			return res.message, nil
		}
		logger.Infof("falling back to local backend: %v", res.skipped)
		o.notify(fmt.Sprintf("OpenAI is unavailable (%v). Falling back to %s...", res.skipped, o.local.Name()))
	}

	logger.Debugf("generating with %s", o.local.Name())
	return o.local.GenerateCommitMessage(ctx, changes)
}

func (o *Orchestrator) tryRemote(ctx context.Context, changes llm.ChangeSet) attempt {
	apiKey, ok := o.config.RemoteAPIKey()
	if !ok {
		return attempt{skipped: fmt.Errorf("%w: %s is not set", ErrRemoteUnavailable, config.KeyOpenAIAPIKey)}
	}

	logger.Debugf("generating with %s", o.remote.Name())
	message, err := o.remote.GenerateCommitMessage(ctx, changes, apiKey)
	if err != nil {
		return attempt{skipped: err}
	}
	return attempt{message: message}
}
