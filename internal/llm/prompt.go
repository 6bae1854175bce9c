package llm

import "fmt"

// SystemPrompt fixes the assistant role for chat-style backends.
const SystemPrompt = "You are an AI that generates concise, professional Git commit messages."

const commitTemplate = "Generate a concise Git commit message based on these changed files:\n%s\nAnd their changes:\n%s"

// ChangeSet is the staged change description handed to a backend. Both
// fields are forwarded as-is.
type ChangeSet struct {
	Files string // newline-separated staged paths
	Diff  string // unified diff of the staged changes
}

// BuildCommitPrompt renders the prompt shared by every backend.
func BuildCommitPrompt(changes ChangeSet) string {
	return fmt.Sprintf(commitTemplate, changes.Files, changes.Diff)
}
