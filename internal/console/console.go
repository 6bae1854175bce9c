// Package console handles the interactive parts of the commit flow.
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"ai-commit/internal/color"
)

type Console struct {
	in  *bufio.Reader
	out io.Writer
	err io.Writer

	// spin is false when stderr is not a terminal.
	spin bool
}

func New() *Console {
	return &Console{
		in:   bufio.NewReader(os.Stdin),
		out:  os.Stdout,
		err:  os.Stderr,
		spin: color.IsTerminal(os.Stderr),
	}
}

// NewWithIO is used by tests and non-interactive callers. It never animates.
func NewWithIO(in io.Reader, out, errOut io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out, err: errOut}
}

// Confirm asks a yes/no question. Only "n" or "no" declines; an empty answer
// or end of input accepts.
func (c *Console) Confirm(prompt string) bool {
	fmt.Fprintf(c.out, "%s (Y/n): ", prompt)

	answer, err := c.in.ReadString('\n')
	if err != nil && answer == "" {
		fmt.Fprintln(c.out)
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "n", "no":
		return false
	}
	return true
}

// Notice prints an informational line on stderr.
func (c *Console) Notice(message string) {
	fmt.Fprintln(c.err, color.Warning(message))
}

func (c *Console) Successf(format string, args ...interface{}) {
	fmt.Fprintln(c.out, color.Success(fmt.Sprintf(format, args...)))
}

func (c *Console) Failuref(format string, args ...interface{}) {
	fmt.Fprintln(c.out, color.Failure(fmt.Sprintf(format, args...)))
}

func (c *Console) Warningf(format string, args ...interface{}) {
	fmt.Fprintln(c.out, color.Warning(fmt.Sprintf(format, args...)))
}

func (c *Console) Faintf(format string, args ...interface{}) {
	fmt.Fprintln(c.err, color.Faint(fmt.Sprintf(format, args...)))
}

// Suggestion prints the proposed message under a heading.
func (c *Console) Suggestion(message string) {
	fmt.Fprintf(c.out, "\n%s: %s\n\n", color.Heading("Suggested Commit Message"), message)
}

func (c *Console) Out() io.Writer {
	return c.out
}
