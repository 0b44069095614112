package diff

import (
	"testing"
)

func TestParse(t *testing.T) {
	ds, err := Parse(sampleDiff)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(ds.Files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(ds.Files))
	}

	f0 := ds.Files[0]
	if !f0.IsNew {
		t.Error("expected hello.go to be new")
	}
	if f0.Name() != "hello.go" {
		t.Errorf("expected name 'hello.go', got %q", f0.Name())
	}
	if f0.Status() != "A" {
		t.Errorf("expected status A, got %q", f0.Status())
	}
	if f0.AddedLines != 5 {
		t.Errorf("expected 5 added lines, got %d", f0.AddedLines)
	}

	f1 := ds.Files[1]
	if f1.Name() != "readme.md" {
		t.Errorf("expected name 'readme.md', got %q", f1.Name())
	}
	if f1.Status() != "M" {
		t.Errorf("expected status M, got %q", f1.Status())
	}
	if f1.AddedLines != 2 || f1.DeletedLines != 1 {
		t.Errorf("expected +2 -1, got +%d -%d", f1.AddedLines, f1.DeletedLines)
	}

	files, added, deleted := ds.Stats()
	if files != 2 || added != 7 || deleted != 1 {
		t.Errorf("stats: got %d files +%d -%d", files, added, deleted)
	}
}

func TestParseEmpty(t *testing.T) {
	ds, err := Parse("")
	if err != nil {
		t.Fatalf("Parse empty failed: %v", err)
	}
	if len(ds.Files) != 0 {
		t.Errorf("expected 0 files, got %d", len(ds.Files))
	}
}

func TestParseAgreesWithSummarize(t *testing.T) {
	ds, err := Parse(sampleDiff)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	stats := Summarize(sampleDiff)

	files, added, deleted := ds.Stats()
	if files != stats.FilesChanged {
		t.Errorf("file counts disagree: parse %d, scan %d", files, stats.FilesChanged)
	}
	if added != stats.LinesAdded || deleted != stats.LinesRemoved {
		t.Errorf("line counts disagree: parse +%d -%d, scan +%d -%d",
			added, deleted, stats.LinesAdded, stats.LinesRemoved)
	}
}
