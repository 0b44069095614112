// Package guard sequences the judgment pipeline: bounded collection of
// the diff stream, metadata extraction, the model exchange, reply
// normalization, and the final enforcement decision.
package guard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Faizan711/git-gandalf/internal/diff"
	"github.com/Faizan711/git-gandalf/internal/llm"
	"github.com/Faizan711/git-gandalf/internal/model"
)

// ErrDiffTooLarge indicates the input stream exceeded the configured
// maximum. This aborts before any model call: fail closed.
var ErrDiffTooLarge = errors.New("diff exceeds maximum size")

// Judge is the model exchange the pipeline depends on.
type Judge interface {
	Judge(ctx context.Context, instruction, payload string) (string, error)
}

// JudgeFunc adapts a function to the Judge interface.
type JudgeFunc func(ctx context.Context, instruction, payload string) (string, error)

func (f JudgeFunc) Judge(ctx context.Context, instruction, payload string) (string, error) {
	return f(ctx, instruction, payload)
}

// Outcome is the single terminal result of one gatekeeper run.
type Outcome struct {
	Action   model.Action
	Decision *model.Decision // nil when Empty or Skipped
	Stats    model.DiffStats

	Empty      bool   // nothing to review
	Skipped    bool   // reviewer unreachable, degraded to allow
	SkipReason string // set when Skipped
}

// ExitCode maps the outcome to the process exit contract: only BLOCK
// fails the commit. Validation failures never produce an Outcome; they
// surface as errors from Run.
func (o Outcome) ExitCode() int {
	if o.Action == model.ActionBlock {
		return 1
	}
	return 0
}

// Collect accumulates the diff byte stream, enforcing the size cap after
// every chunk so oversized input aborts mid-stream instead of after
// buffering it all.
func Collect(r io.Reader, maxBytes int) (string, error) {
	var b strings.Builder
	buf := make([]byte, 32*1024)

	for {
		n, err := r.Read(buf)
		if n > 0 {
			if b.Len()+n > maxBytes {
				return "", fmt.Errorf("%w (limit %d bytes)", ErrDiffTooLarge, maxBytes)
			}
			b.Write(buf[:n])
		}
		if err == io.EOF {
			return b.String(), nil
		}
		if err != nil {
			return "", fmt.Errorf("reading diff stream: %w", err)
		}
	}
}

// Run executes the pipeline over an already-collected diff. Metadata
// extraction always completes before the model is invoked. Infrastructure
// failures degrade to a skipped allow; validation failures return an
// error and the caller fails the commit.
func Run(ctx context.Context, rawDiff string, judge Judge) (Outcome, error) {
	rawDiff = diff.NormalizeLineEndings(rawDiff)

	if strings.TrimSpace(rawDiff) == "" {
		return Outcome{Action: model.ActionAllow, Empty: true}, nil
	}

	stats := diff.Summarize(rawDiff)

	// Structured per-file context is best effort; the judgment only
	// requires the scanner metadata.
	var fileContext []string
	if ds, err := diff.Parse(rawDiff); err == nil {
		for _, f := range ds.Files {
			fileContext = append(fileContext, fmt.Sprintf("%s %s (+%d -%d)", f.Status(), f.Name(), f.AddedLines, f.DeletedLines))
		}
	}

	payload := llm.BuildUserPrompt(stats, fileContext, rawDiff)

	reply, err := judge.Judge(ctx, llm.SystemPrompt, payload)
	if err != nil {
		if llm.IsInfrastructure(err) {
			return Outcome{
				Action:     model.ActionAllow,
				Stats:      stats,
				Skipped:    true,
				SkipReason: err.Error(),
			}, nil
		}
		return Outcome{}, fmt.Errorf("model exchange: %w", err)
	}

	decision, err := llm.Normalize(reply)
	if err != nil {
		return Outcome{}, err
	}

	return Outcome{
		Action:   decision.Action(),
		Decision: &decision,
		Stats:    stats,
	}, nil
}
