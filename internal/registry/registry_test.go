package registry

import (
	"errors"
	"strings"
	"testing"
)

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestStateFor(t *testing.T) {
	tests := []struct {
		name  string
		words int
		want  FillState
	}{
		{"zero words is empty", 0, Empty},
		{"one word is in progress", 1, InProgress},
		{"just below threshold", CompletedWords - 1, InProgress},
		{"exactly at threshold", CompletedWords, Completed},
		{"above threshold", CompletedWords + 50, Completed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StateFor(tt.words); got != tt.want {
				t.Errorf("StateFor(%d) = %v, want %v", tt.words, got, tt.want)
			}
		})
	}
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty", "", 0},
		{"whitespace only", "   \n\t ", 0},
		{"single word", "hello", 1},
		{"runs of whitespace collapse", "a  b\n\nc\td", 4},
		{"punctuation attaches to words", "done. next, please!", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WordCount(tt.content); got != tt.want {
				t.Errorf("WordCount(%q) = %d, want %d", tt.content, got, tt.want)
			}
		})
	}
}

func TestKindsClosedSet(t *testing.T) {
	kinds := Kinds()
	if len(kinds) != 8 {
		t.Fatalf("expected 8 kinds, got %d", len(kinds))
	}
	for _, k := range kinds {
		if !Valid(k) {
			t.Errorf("kind %q should be valid", k)
		}
	}
	if Valid("marketing_plan") {
		t.Error("unknown kind should not be valid")
	}
}

func TestSetContentDerivesState(t *testing.T) {
	r := New()

	c, err := r.SetContent(ProblemDefinition, words(CompletedWords))
	if err != nil {
		t.Fatalf("SetContent: %v", err)
	}
	if c.State != Completed {
		t.Errorf("state = %v, want Completed", c.State)
	}
	if c.WordCount != CompletedWords {
		t.Errorf("word count = %d, want %d", c.WordCount, CompletedWords)
	}

	c, err = r.SetContent(ProblemDefinition, "")
	if err != nil {
		t.Fatalf("SetContent: %v", err)
	}
	if c.State != Empty {
		t.Errorf("state after clearing = %v, want Empty", c.State)
	}
}

func TestSetContentRejectsUnknownID(t *testing.T) {
	r := New()
	if _, err := r.SetContent("bogus", "text"); !errors.Is(err, ErrInvalidID) {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}
}

func TestMarkUpdating(t *testing.T) {
	r := New()

	marked, err := r.MarkUpdating(TargetMarket)
	if err != nil || !marked {
		t.Fatalf("first mark = (%v, %v), want (true, nil)", marked, err)
	}

	// Flagging twice is a no-op, not an error.
	marked, err = r.MarkUpdating(TargetMarket)
	if err != nil || marked {
		t.Fatalf("second mark = (%v, %v), want (false, nil)", marked, err)
	}

	c, _ := r.Get(TargetMarket)
	if !c.Updating {
		t.Error("consideration should report Updating")
	}
}

func TestMarkUpdatingSkipsCompleted(t *testing.T) {
	r := New()
	if _, err := r.SetContent(BusinessModel, words(CompletedWords)); err != nil {
		t.Fatalf("SetContent: %v", err)
	}
	marked, err := r.MarkUpdating(BusinessModel)
	if err != nil || marked {
		t.Fatalf("marking completed = (%v, %v), want (false, nil)", marked, err)
	}
}

func TestSetContentClearsUpdating(t *testing.T) {
	r := New()
	if _, err := r.MarkUpdating(GrowthStrategy); err != nil {
		t.Fatalf("MarkUpdating: %v", err)
	}
	c, err := r.SetContent(GrowthStrategy, "a concrete plan")
	if err != nil {
		t.Fatalf("SetContent: %v", err)
	}
	if c.Updating {
		t.Error("SetContent should clear the Updating flag")
	}
}

func TestClearUpdating(t *testing.T) {
	r := New()
	if _, err := r.MarkUpdating(TeamStructure); err != nil {
		t.Fatalf("MarkUpdating: %v", err)
	}
	r.ClearUpdating(TeamStructure)
	c, _ := r.Get(TeamStructure)
	if c.Updating {
		t.Error("flag should be cleared")
	}
	if c.Content != "" {
		t.Errorf("content should be untouched, got %q", c.Content)
	}
}

func TestSnapshotOrderAndCounts(t *testing.T) {
	r := New()
	r.SetContent(ProblemDefinition, words(CompletedWords))
	r.SetContent(SolutionApproach, words(CompletedWords+10))
	r.SetContent(TargetMarket, "short")

	snap := r.Snapshot()
	if len(snap) != r.TotalCount() {
		t.Fatalf("snapshot has %d entries, want %d", len(snap), r.TotalCount())
	}
	for i, k := range Kinds() {
		if snap[i].ID != k {
			t.Errorf("snapshot[%d] = %s, want %s", i, snap[i].ID, k)
		}
	}
	if got := r.CompletedCount(); got != 2 {
		t.Errorf("CompletedCount = %d, want 2", got)
	}
}
