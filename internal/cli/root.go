package cli

import (
	"errors"
	"fmt"
	"os"

	"ai-commit/internal/color"
	"ai-commit/internal/config"
	"ai-commit/internal/logger"

	"github.com/spf13/cobra"
)

// errReported marks failures already shown to the user.
var errReported = errors.New("reported")

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "ai-commit",
	Short: "Suggest a commit message for the staged changes",
	Long: `ai-commit summarizes the staged changes with a language model and offers
the result as the commit message.

By default the message is generated offline with Ollama (model "mistral").
Set MODEL=openai and OPENAI_API_KEY in ~/.ai_commit_config to use the OpenAI
API first; Ollama remains the fallback.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logLevel)
		logger.Debugf("log level set to %s, config %s", logLevel, configPath)
	},
	RunE: runGenerate,
}

// Execute runs the command tree and prints any unreported error.
func Execute() error {
	defer logger.Sync()

	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintln(os.Stderr, color.Failure("Error: "+err.Error()))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "path to the settings file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	rootCmd.Flags().BoolP("all", "a", false, "stage all changes before generating the message")
	rootCmd.Flags().BoolP("edit", "e", false, "edit the suggested message in $EDITOR before committing")
	rootCmd.Flags().BoolP("yes", "y", false, "commit without asking for confirmation")
	rootCmd.Flags().Bool("show-diff", false, "print the staged diff before generating")

	rootCmd.AddCommand(configCmd, checkCmd, versionCmd)
}
