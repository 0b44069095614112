package llm

import (
	"errors"
	"reflect"
	"testing"

	"github.com/Faizan711/git-gandalf/internal/model"
)

const canonicalReply = `{"risk":"HIGH","issues":["hardcoded API key"],"summary":"secret detected"}`

var canonicalDecision = model.Decision{
	Risk:    model.RiskHigh,
	Issues:  []string{"hardcoded API key"},
	Summary: "secret detected",
}

func TestNormalizeCanonical(t *testing.T) {
	d, err := Normalize(canonicalReply)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if !reflect.DeepEqual(d, canonicalDecision) {
		t.Errorf("got %+v, want %+v", d, canonicalDecision)
	}
}

func TestNormalizeWrappedReplies(t *testing.T) {
	// every wrapping combination must yield the same decision as the
	// bare JSON
	tests := []struct {
		name string
		raw  string
	}{
		{"code fence", "```json\n" + canonicalReply + "\n```"},
		{"bare fence", "```\n" + canonicalReply + "\n```"},
		{"reasoning block", "<think>\nThe diff adds a key.\nLet me check.\n</think>\n" + canonicalReply},
		{"uppercase reasoning block", "<THINK>hmm</THINK>" + canonicalReply},
		{"two reasoning blocks", "<think>a</think>x<think>b</think>\n" + canonicalReply},
		{"leading prose", "Here is my assessment:\n\n" + canonicalReply},
		{"trailing prose", canonicalReply + "\n\nLet me know if you need more detail."},
		{"everything at once", "<think>reasoning{with braces? no}</think>Sure!\n```json\n" + canonicalReply + "\n```\nHope that helps."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Normalize(tt.raw)
			if err != nil {
				t.Fatalf("Normalize failed: %v", err)
			}
			if !reflect.DeepEqual(d, canonicalDecision) {
				t.Errorf("got %+v, want %+v", d, canonicalDecision)
			}
		})
	}
}

func TestNormalizeRiskCaseFolding(t *testing.T) {
	for _, raw := range []string{
		`{"risk":"high"}`, `{"risk":"High"}`, `{"risk":"HIGH"}`,
	} {
		d, err := Normalize(raw)
		if err != nil {
			t.Fatalf("Normalize(%s) failed: %v", raw, err)
		}
		if d.Risk != model.RiskHigh {
			t.Errorf("Normalize(%s) risk = %q, want HIGH", raw, d.Risk)
		}
	}
}

func TestNormalizeRejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not JSON", "the change looks fine to me"},
		{"empty", ""},
		{"unknown risk", `{"risk":"CRITICAL"}`},
		{"missing risk", `{"issues":[],"summary":"ok"}`},
		{"numeric risk", `{"risk":3}`},
		{"null risk", `{"risk":null}`},
		{"empty risk", `{"risk":""}`},
		{"array not object", `["LOW","MEDIUM"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.raw)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrInvalidReply) {
				t.Errorf("error not tagged ErrInvalidReply: %v", err)
			}
			if IsInfrastructure(err) {
				t.Error("validation error misclassified as infrastructure")
			}
		})
	}
}

func TestNormalizeLenientFields(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantIssues  []string
		wantSummary string
	}{
		{"all defaults", `{"risk":"LOW"}`, []string{}, NoSummary},
		{"string issue wraps", `{"risk":"LOW","issues":"single problem"}`, []string{"single problem"}, NoSummary},
		{"numeric issues coerce", `{"risk":"LOW","issues":[1,"two"]}`, []string{"1", "two"}, NoSummary},
		{"object issues default", `{"risk":"LOW","issues":{"a":1}}`, []string{}, NoSummary},
		{"null summary defaults", `{"risk":"LOW","summary":null}`, []string{}, NoSummary},
		{"numeric summary defaults", `{"risk":"LOW","summary":7}`, []string{}, NoSummary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Normalize(tt.raw)
			if err != nil {
				t.Fatalf("Normalize failed: %v", err)
			}
			if !reflect.DeepEqual(d.Issues, tt.wantIssues) {
				t.Errorf("issues = %#v, want %#v", d.Issues, tt.wantIssues)
			}
			if d.Summary != tt.wantSummary {
				t.Errorf("summary = %q, want %q", d.Summary, tt.wantSummary)
			}
		})
	}
}

func TestStripReasoningOnly(t *testing.T) {
	in := "<think>everything here\ngoes away</think>kept"
	if got := StripReasoning(in); got != "kept" {
		t.Errorf("StripReasoning = %q", got)
	}
}

func TestSliceObjectNoBraces(t *testing.T) {
	if got := SliceObject("no braces here"); got != "no braces here" {
		t.Errorf("expected passthrough, got %q", got)
	}
}
