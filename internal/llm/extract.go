package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/Faizan711/git-gandalf/internal/model"
)

// NoSummary is substituted when the reply carries no usable summary.
const NoSummary = "No summary provided."

var reasoningRe = regexp.MustCompile(`(?is)<think>.*?</think>`)

// StripReasoning removes reasoning-model spans (<think>...</think>) from a
// reply. Matching is case-insensitive, spans may cross lines, and every
// occurrence is removed.
func StripReasoning(s string) string {
	return reasoningRe.ReplaceAllString(s, "")
}

// StripFences removes markdown code-fence tokens anywhere in the text:
// the language-tagged opening fence and the bare closing fence.
func StripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	return strings.ReplaceAll(s, "```", "")
}

// SliceObject cuts the text down to the span from the first '{' to the
// last '}', recovering a JSON object wrapped in conversational filler.
// If either bracket is absent the text passes through untouched.
func SliceObject(s string) string {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start == -1 || end == -1 || end < start {
		return s
	}
	return s[start : end+1]
}

// Normalize converts an untrusted model reply into a validated Decision.
// The text transforms are total; the single JSON parse and the risk gate
// are the only failure points. A missing explanation never blocks a
// commit the model otherwise judged safe, so issues and summary default
// leniently.
func Normalize(raw string) (model.Decision, error) {
	text := StripReasoning(raw)
	text = StripFences(text)
	text = strings.TrimSpace(text)
	text = SliceObject(text)

	var parsed any
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return model.Decision{}, fmt.Errorf("%w: reply is not valid JSON: %v", ErrInvalidReply, err)
	}

	obj, ok := parsed.(map[string]any)
	if !ok {
		return model.Decision{}, fmt.Errorf("%w: reply is not a JSON object", ErrInvalidReply)
	}

	riskVal, ok := obj["risk"].(string)
	if !ok {
		return model.Decision{}, fmt.Errorf("%w: risk field missing or not a string (got %v)", ErrInvalidReply, obj["risk"])
	}
	risk, ok := model.ParseRisk(riskVal)
	if !ok {
		return model.Decision{}, fmt.Errorf("%w: unknown risk level %q", ErrInvalidReply, riskVal)
	}

	return model.Decision{
		Risk:    risk,
		Issues:  normalizeIssues(obj["issues"]),
		Summary: normalizeSummary(obj["summary"]),
	}, nil
}

func normalizeIssues(v any) []string {
	switch issues := v.(type) {
	case []any:
		out := make([]string, 0, len(issues))
		for _, it := range issues {
			if s, ok := it.(string); ok {
				out = append(out, s)
			} else {
				out = append(out, fmt.Sprintf("%v", it))
			}
		}
		return out
	case string:
		return []string{issues}
	default:
		return []string{}
	}
}

func normalizeSummary(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return NoSummary
}
