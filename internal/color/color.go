package color

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	colorRed    = lipgloss.Color("#ff5555")
	colorGreen  = lipgloss.Color("#50fa7b")
	colorYellow = lipgloss.Color("#f1fa8c")
	colorCyan   = lipgloss.Color("#8be9fd")
	colorDim    = lipgloss.Color("#6272a4")
)

var (
	successStyle = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	failureStyle = lipgloss.NewStyle().Foreground(colorRed)
	warningStyle = lipgloss.NewStyle().Foreground(colorYellow)
	headingStyle = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	faintStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Enabled reports whether stdout should get ANSI styling.
func Enabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return IsTerminal(os.Stdout)
}

func render(style lipgloss.Style, text string) string {
	if !Enabled() {
		return text
	}
	return style.Render(text)
}

func Success(text string) string { return render(successStyle, text) }
func Failure(text string) string { return render(failureStyle, text) }
func Warning(text string) string { return render(warningStyle, text) }
func Heading(text string) string { return render(headingStyle, text) }
func Faint(text string) string   { return render(faintStyle, text) }

// Diff writes a unified diff to w, syntax highlighted when colors are on.
func Diff(w io.Writer, diff string) error {
	if !Enabled() {
		_, err := fmt.Fprintln(w, diff)
		return err
	}
	if err := quick.Highlight(w, diff+"\n", "diff", "terminal256", "dracula"); err != nil {
		return fmt.Errorf("failed to highlight diff: %w", err)
	}
	return nil
}
