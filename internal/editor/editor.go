package editor

import (
	"context"
	"fmt"
	"os"
	"strings"

	"ai-commit/internal/runner"
)

// fallbackEditors are tried in order when neither $EDITOR nor $VISUAL is set.
var fallbackEditors = []string{"nano", "vim", "vi"}

// Edit opens message in the user's editor and returns the saved text.
func Edit(ctx context.Context, r runner.Runner, message string) (string, error) {
	editor := findEditor(r)
	if editor == "" {
		return "", fmt.Errorf("no editor found - set $EDITOR environment variable")
	}

	tmpFile, err := os.CreateTemp("", "ai-commit-msg-*.txt")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer func() {
		_ = os.Remove(tmpFile.Name())
	}()

	if _, err := tmpFile.WriteString(message + "\n"); err != nil {
		_ = tmpFile.Close()
		return "", fmt.Errorf("failed to write commit message: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close temporary file: %w", err)
	}

	// $EDITOR may carry arguments, e.g. "code --wait".
	parts := strings.Fields(editor)
	args := append(parts[1:], tmpFile.Name())
	if err := r.Run(ctx, parts[0], args...); err != nil {
		return "", fmt.Errorf("editor failed: %w", err)
	}

	edited, err := os.ReadFile(tmpFile.Name())
	if err != nil {
		return "", fmt.Errorf("failed to read edited message: %w", err)
	}

	result := strings.TrimSpace(string(edited))
	if result == "" {
		return "", fmt.Errorf("commit message cannot be empty")
	}
	return result, nil
}

func findEditor(r runner.Runner) string {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v
		}
	}
	for _, name := range fallbackEditors {
		if _, err := r.LookPath(name); err == nil {
			return name
		}
	}
	return ""
}
