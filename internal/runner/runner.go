// Package runner wraps process execution so callers can be tested with fakes.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"ai-commit/internal/logger"
)

// Runner starts external programs.
type Runner interface {
	// LookPath reports where name resolves on PATH without running it.
	LookPath(name string) (string, error)

	// Output runs name and returns its captured standard output. The output
	// is returned even when the process exits non-zero.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)

	// Run runs name attached to the terminal and waits for it.
	Run(ctx context.Context, name string, args ...string) error
}

var _ Runner = (*Exec)(nil)

// Exec implements Runner with os/exec.
type Exec struct {
	// Dir is the working directory; empty means the current one.
	Dir string

	// Env holds extra KEY=value pairs added to the inherited environment.
	Env []string
}

func (e *Exec) command(ctx context.Context, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = e.Dir
	if len(e.Env) > 0 {
		cmd.Env = append(os.Environ(), e.Env...)
	}
	return cmd
}

func (e *Exec) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (e *Exec) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	logger.Debugf("exec %s %s", name, summarizeArgs(args))

	cmd := e.command(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.Bytes(), fmt.Errorf("%s failed: %w\nstderr: %s", name, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

func (e *Exec) Run(ctx context.Context, name string, args ...string) error {
	logger.Debugf("exec (attached) %s %s", name, summarizeArgs(args))

	cmd := e.command(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w", name, err)
	}
	return nil
}

// summarizeArgs keeps debug lines short; prompts can be whole diffs.
func summarizeArgs(args []string) string {
	parts := make([]string, len(args))
	for i, a := range args {
		if len(a) > 60 || strings.Contains(a, "\n") {
			parts[i] = fmt.Sprintf("<%d bytes>", len(a))
			continue
		}
		parts[i] = a
	}
	return strings.Join(parts, " ")
}
