package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Faizan711/git-gandalf/internal/model"
)

// SystemPrompt is the instruction framing the model as a commit reviewer.
const SystemPrompt = `You are a pre-commit code reviewer. You are given a unified diff of
pending changes together with summary metadata. Judge how risky it would
be to commit these changes.

Look for: hardcoded secrets or credentials, destructive operations,
security vulnerabilities, obviously broken logic, and accidental
inclusion of files that do not belong in the commit.

Respond with ONLY a JSON object in this exact shape, no prose before or
after it:

{"risk": "LOW" | "MEDIUM" | "HIGH", "issues": ["..."], "summary": "..."}

risk reflects the overall danger of the change set. issues lists concrete
problems you found, empty if none. summary is one sentence.`

// BuildUserPrompt assembles the user message: metadata, an optional
// per-file status block, and the raw diff.
func BuildUserPrompt(stats model.DiffStats, fileContext []string, rawDiff string) string {
	meta, _ := json.Marshal(stats)

	var b strings.Builder
	fmt.Fprintf(&b, "Change metadata:\n%s\n\n", meta)

	if len(fileContext) > 0 {
		b.WriteString("Files:\n")
		for _, fc := range fileContext {
			fmt.Fprintf(&b, "  %s\n", fc)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Diff:\n%s\n", rawDiff)
	return b.String()
}
