package git

import (
	"fmt"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
)

// DiffStats summarizes a unified diff.
type DiffStats struct {
	Files   int
	Added   int64
	Deleted int64
	Binary  int
}

func (s DiffStats) String() string {
	noun := "files"
	if s.Files == 1 {
		noun = "file"
	}
	out := fmt.Sprintf("%d %s changed, +%d -%d", s.Files, noun, s.Added, s.Deleted)
	if s.Binary > 0 {
		out += fmt.Sprintf(" (%d binary)", s.Binary)
	}
	return out
}

// Stats parses diff and counts changed files and lines.
func Stats(diff string) (DiffStats, error) {
	if diff != "" && !strings.HasSuffix(diff, "\n") {
		diff += "\n"
	}
	files, _, err := gitdiff.Parse(strings.NewReader(diff))
	if err != nil {
		return DiffStats{}, fmt.Errorf("failed to parse diff: %w", err)
	}

	var stats DiffStats
	for _, f := range files {
		stats.Files++
		if f.IsBinary {
			stats.Binary++
			continue
		}
		for _, frag := range f.TextFragments {
			stats.Added += frag.LinesAdded
			stats.Deleted += frag.LinesDeleted
		}
	}
	return stats, nil
}
