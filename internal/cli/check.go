package cli

import (
	"fmt"
	"io"

	"ai-commit/internal/color"
	"ai-commit/internal/config"
	"ai-commit/internal/ollama"
	"ai-commit/internal/provider"
	"ai-commit/internal/runner"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report whether the configured backends are ready",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load(configPath)
		client, err := ollama.NewClient(cfg.OllamaHost())
		if err != nil {
			return err
		}
		status, err := client.Check(cmd.Context(), cfg.OllamaModel())
		if err != nil {
			return err
		}
		if !reportReadiness(cmd.OutOrStdout(), cfg, &runner.Exec{}, status) {
			return errReported
		}
		return nil
	},
}

// reportReadiness prints one line per check and returns whether the
// configured backend can generate a message.
func reportReadiness(w io.Writer, cfg *config.Config, r runner.Runner, status *ollama.Status) bool {
	line := func(ok bool, format string, args ...interface{}) {
		msg := fmt.Sprintf(format, args...)
		if ok {
			fmt.Fprintln(w, color.Success("✓ "+msg))
		} else {
			fmt.Fprintln(w, color.Failure("✗ "+msg))
		}
	}

	fmt.Fprintln(w, color.Heading(fmt.Sprintf("Backend: %s", cfg.Backend())))

	remoteReady := false
	if cfg.Backend() == config.Remote {
		_, hasKey := cfg.RemoteAPIKey()
		line(hasKey, "OPENAI_API_KEY present (%s, %s)", cfg.OpenAIModel(), cfg.OpenAIEndpoint())
		remoteReady = hasKey
	}

	path, err := r.LookPath(provider.OllamaExecutable)
	installed := err == nil
	if installed {
		line(true, "ollama executable found at %s", path)
	} else {
		line(false, "ollama executable not found on PATH (it will be installed on first use)")
	}

	line(status.Reachable, "ollama server reachable")
	if status.Reachable {
		line(status.ModelPresent, "model %s pulled", cfg.OllamaModel())
		if !status.ModelPresent && len(status.Models) > 0 {
			fmt.Fprintln(w, color.Faint(fmt.Sprintf("  available: %v", status.Models)))
		}
	}

	return remoteReady || installed
}
