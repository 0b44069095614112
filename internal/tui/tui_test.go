package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Faizan711/git-gandalf/internal/diff"
	"github.com/Faizan711/git-gandalf/internal/guard"
	"github.com/Faizan711/git-gandalf/internal/model"
)

const testDiff = `diff --git a/main.go b/main.go
index abc1234..def5678 100644
--- a/main.go
+++ b/main.go
@@ -1,5 +1,6 @@
 package main

 func main() {
-	println("hello")
+	println("hello world")
+	println("goodbye")
 }
diff --git a/util.go b/util.go
new file mode 100644
--- /dev/null
+++ b/util.go
@@ -0,0 +1,5 @@
+package main
+
+func add(a, b int) int {
+	return a + b
+}
`

func testOutcome() guard.Outcome {
	return guard.Outcome{
		Action: model.ActionWarn,
		Decision: &model.Decision{
			Risk:    model.RiskMedium,
			Issues:  []string{"println used for output"},
			Summary: "cosmetic changes with a debug print",
		},
		Stats: diff.Summarize(testDiff),
	}
}

func setupModel(t *testing.T) Model {
	t.Helper()
	ds, err := diff.Parse(testDiff)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	m := New(testOutcome(), ds)
	newM, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return newM.(Model)
}

func TestModelInit(t *testing.T) {
	m := setupModel(t)

	if m.fileIndex != 0 {
		t.Errorf("expected fileIndex 0, got %d", m.fileIndex)
	}
	if len(m.lines) == 0 {
		t.Error("expected lines to be rendered")
	}
}

func TestNavigation(t *testing.T) {
	m := setupModel(t)

	newM, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	m = newM.(Model)
	if m.fileIndex != 1 {
		t.Errorf("expected fileIndex 1 after next, got %d", m.fileIndex)
	}

	// past the end, stays put
	newM, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	m = newM.(Model)
	if m.fileIndex != 1 {
		t.Errorf("expected fileIndex 1 at end, got %d", m.fileIndex)
	}

	newM, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'N'}})
	m = newM.(Model)
	if m.fileIndex != 0 {
		t.Errorf("expected fileIndex 0 after prev, got %d", m.fileIndex)
	}
}

func TestScrolling(t *testing.T) {
	m := setupModel(t)

	newM, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m = newM.(Model)
	if m.scrollOffset != 1 {
		t.Errorf("expected scrollOffset 1, got %d", m.scrollOffset)
	}

	newM, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	m = newM.(Model)
	if m.scrollOffset != 0 {
		t.Errorf("expected scrollOffset 0, got %d", m.scrollOffset)
	}

	newM, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	m = newM.(Model)
	if m.scrollOffset != 0 {
		t.Errorf("expected scrollOffset 0 at top, got %d", m.scrollOffset)
	}
}

func TestViewShowsVerdictAndIssues(t *testing.T) {
	m := setupModel(t)
	view := m.View()

	if !strings.Contains(view, "WARN") {
		t.Error("view missing verdict")
	}
	if !strings.Contains(view, "println used for output") {
		t.Error("view missing issue text")
	}
	if !strings.Contains(view, "cosmetic changes with a debug print") {
		t.Error("view missing summary")
	}
}

func TestQuit(t *testing.T) {
	m := setupModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestRenderFileLineNumbers(t *testing.T) {
	ds, err := diff.Parse(testDiff)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	lines := renderFile(ds.Files[0])
	if len(lines) == 0 {
		t.Fatal("no rendered lines")
	}
	if !lines[0].IsHunk {
		t.Error("expected hunk header first")
	}

	var sawAdd, sawDelete bool
	for _, rl := range lines {
		if rl.NewNum > 0 && rl.OldNum == 0 {
			sawAdd = true
		}
		if rl.OldNum > 0 && rl.NewNum == 0 {
			sawDelete = true
		}
	}
	if !sawAdd || !sawDelete {
		t.Errorf("expected add and delete lines, sawAdd=%v sawDelete=%v", sawAdd, sawDelete)
	}
}
