package guard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/Faizan711/git-gandalf/internal/llm"
	"github.com/Faizan711/git-gandalf/internal/model"
)

const smallDiff = `diff --git a/main.go b/main.go
--- a/main.go
+++ b/main.go
@@ -1,1 +1,4 @@
 package main
+func a() {}
+func b() {}
+func c() {}
`

func staticJudge(reply string) Judge {
	return JudgeFunc(func(ctx context.Context, instruction, payload string) (string, error) {
		return reply, nil
	})
}

func failingJudge(err error) Judge {
	return JudgeFunc(func(ctx context.Context, instruction, payload string) (string, error) {
		return "", err
	})
}

func TestRunAllows(t *testing.T) {
	out, err := Run(context.Background(), smallDiff, staticJudge(`{"risk":"low","issues":[],"summary":"ok"}`))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if out.Action != model.ActionAllow {
		t.Errorf("expected ALLOW, got %v", out.Action)
	}
	if out.ExitCode() != 0 {
		t.Errorf("expected exit 0, got %d", out.ExitCode())
	}
	if out.Stats.LinesAdded != 3 || out.Stats.LinesRemoved != 0 {
		t.Errorf("unexpected stats %+v", out.Stats)
	}
	if out.Decision == nil || out.Decision.Summary != "ok" {
		t.Errorf("decision not carried through: %+v", out.Decision)
	}
}

func TestRunBlocksFencedHighRisk(t *testing.T) {
	reply := "```json\n{\"risk\":\"HIGH\",\"issues\":[\"hardcoded API key\"],\"summary\":\"secret detected\"}\n```"
	out, err := Run(context.Background(), smallDiff, staticJudge(reply))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if out.Action != model.ActionBlock {
		t.Errorf("expected BLOCK, got %v", out.Action)
	}
	if out.ExitCode() != 1 {
		t.Errorf("expected exit 1, got %d", out.ExitCode())
	}
	if out.Decision.Risk != model.RiskHigh {
		t.Errorf("expected HIGH risk, got %q", out.Decision.Risk)
	}
}

func TestRunWarns(t *testing.T) {
	out, err := Run(context.Background(), smallDiff, staticJudge(`{"risk":"medium","summary":"meh"}`))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if out.Action != model.ActionWarn {
		t.Errorf("expected WARN, got %v", out.Action)
	}
	if out.ExitCode() != 0 {
		t.Errorf("WARN must not fail the commit, got exit %d", out.ExitCode())
	}
}

func TestRunEmptyDiffAllowsWithoutJudging(t *testing.T) {
	called := false
	judge := JudgeFunc(func(ctx context.Context, instruction, payload string) (string, error) {
		called = true
		return "", nil
	})

	for _, raw := range []string{"", "   \n\t\n", "\r\n\r\n"} {
		out, err := Run(context.Background(), raw, judge)
		if err != nil {
			t.Fatalf("Run(%q) failed: %v", raw, err)
		}
		if !out.Empty || out.Action != model.ActionAllow {
			t.Errorf("Run(%q): expected empty allow, got %+v", raw, out)
		}
	}
	if called {
		t.Error("model invoked for empty diff")
	}
}

func TestRunInfrastructureFailureSkips(t *testing.T) {
	for _, cause := range []error{llm.ErrUnavailable, llm.ErrTimeout} {
		out, err := Run(context.Background(), smallDiff, failingJudge(fmt.Errorf("%w: boom", cause)))
		if err != nil {
			t.Fatalf("infrastructure failure must not be fatal: %v", err)
		}
		if !out.Skipped {
			t.Errorf("expected skipped outcome for %v", cause)
		}
		if out.Action != model.ActionAllow || out.ExitCode() != 0 {
			t.Errorf("skip must allow: %+v", out)
		}
		if out.SkipReason == "" {
			t.Error("skip reason missing")
		}
	}
}

func TestRunValidationFailureIsFatal(t *testing.T) {
	_, err := Run(context.Background(), smallDiff, staticJudge(`{"risk":"CRITICAL"}`))
	if err == nil {
		t.Fatal("expected fatal validation error")
	}
	if !errors.Is(err, llm.ErrInvalidReply) {
		t.Errorf("expected ErrInvalidReply, got %v", err)
	}
}

func TestRunUnparseableReplyIsFatal(t *testing.T) {
	_, err := Run(context.Background(), smallDiff, staticJudge("I think this change is fine."))
	if err == nil {
		t.Fatal("expected fatal validation error")
	}
}

func TestCollect(t *testing.T) {
	got, err := Collect(strings.NewReader(smallDiff), 1<<20)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if got != smallDiff {
		t.Error("collected stream differs from input")
	}
}

func TestCollectEnforcesCapMidStream(t *testing.T) {
	// an endless reader: the cap must fire without waiting for EOF
	endless := &repeatReader{chunk: []byte(strings.Repeat("x", 1024))}

	_, err := Collect(endless, 10*1024)
	if !errors.Is(err, ErrDiffTooLarge) {
		t.Fatalf("expected ErrDiffTooLarge, got %v", err)
	}
	if endless.reads > 20 {
		t.Errorf("cap fired too late, after %d reads", endless.reads)
	}
}

func TestCollectStreamError(t *testing.T) {
	_, err := Collect(&brokenReader{}, 1<<20)
	if err == nil {
		t.Fatal("expected stream error")
	}
	if errors.Is(err, ErrDiffTooLarge) {
		t.Error("stream error misreported as size violation")
	}
}

type repeatReader struct {
	chunk []byte
	reads int
}

func (r *repeatReader) Read(p []byte) (int, error) {
	r.reads++
	n := copy(p, r.chunk)
	return n, nil
}

type brokenReader struct{}

func (brokenReader) Read(p []byte) (int, error) {
	return 0, errors.New("pipe closed")
}
