package planning

import (
	"errors"
	"slices"
	"testing"
)

func mustTracker(t *testing.T, p AgentPlan) *Tracker {
	t.Helper()
	tr, err := NewTracker(p)
	if err != nil {
		t.Fatalf("NewTracker: %v", err)
	}
	return tr
}

func TestTracker_ProgressBounds(t *testing.T) {
	tests := []struct {
		name  string
		tasks []string
	}{
		{"five tasks", []string{"a", "b", "c", "d", "e"}},
		{"one task", []string{"a"}},
		{"no tasks", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := mustTracker(t, AgentPlan{Objective: "x", Tasks: tt.tasks})
			if got := tr.Progress(); got != 0 {
				t.Fatalf("empty set progress = %v, want 0", got)
			}
			for i := range tt.tasks {
				if _, err := tr.ToggleTask(i); err != nil {
					t.Fatalf("toggle %d: %v", i, err)
				}
			}
			want := 1.0
			if len(tt.tasks) == 0 {
				want = 0
			}
			if got := tr.Progress(); got != want {
				t.Fatalf("all-complete progress = %v, want %v", got, want)
			}
		})
	}
}

func TestTracker_ToggleRoundTrip(t *testing.T) {
	tr := mustTracker(t, samplePlan())
	if _, err := tr.ToggleTask(0); err != nil {
		t.Fatal(err)
	}
	before := tr.Completed()

	done, err := tr.ToggleTask(2)
	if err != nil || !done {
		t.Fatalf("first toggle: done=%v err=%v", done, err)
	}
	done, err = tr.ToggleTask(2)
	if err != nil || done {
		t.Fatalf("second toggle: done=%v err=%v", done, err)
	}

	if after := tr.Completed(); !slices.Equal(before, after) {
		t.Fatalf("completed set changed: before=%v after=%v", before, after)
	}
}

func TestTracker_ToggleOutOfRange(t *testing.T) {
	tr := mustTracker(t, samplePlan())
	for _, idx := range []int{-1, 5, 100} {
		_, err := tr.ToggleTask(idx)
		if !errors.Is(err, ErrInvalidTaskIndex) {
			t.Fatalf("index %d: expected ErrInvalidTaskIndex, got %v", idx, err)
		}
		var idxErr *TaskIndexError
		if !errors.As(err, &idxErr) || idxErr.Index != idx || idxErr.Count != 5 {
			t.Fatalf("index %d: unexpected error detail %#v", idx, err)
		}
	}
	if tr.CompletedCount() != 0 {
		t.Fatalf("failed toggles must not change state")
	}

	empty := mustTracker(t, AgentPlan{})
	if _, err := empty.ToggleTask(0); !errors.Is(err, ErrInvalidTaskIndex) {
		t.Fatalf("expected ErrInvalidTaskIndex on empty plan, got %v", err)
	}
}

func TestTracker_Percent(t *testing.T) {
	tr := mustTracker(t, samplePlan())
	_, _ = tr.ToggleTask(1)
	_, _ = tr.ToggleTask(3)
	if got := tr.Percent(); got != 40 {
		t.Fatalf("Percent = %d, want 40", got)
	}
}

func TestTracker_EditDraftDoesNotLeak(t *testing.T) {
	p := samplePlan()
	tr := mustTracker(t, p)

	if err := tr.SetDraft("nope"); !errors.Is(err, ErrNotEditing) {
		t.Fatalf("expected ErrNotEditing, got %v", err)
	}
	if err := tr.BeginEdit(); err != nil {
		t.Fatal(err)
	}
	if tr.Draft() != p.Objective {
		t.Fatalf("draft should start from objective, got %q", tr.Draft())
	}
	if err := tr.SetDraft("Novo objetivo"); err != nil {
		t.Fatal(err)
	}
	if tr.Objective() != p.Objective {
		t.Fatalf("draft leaked into displayed objective: %q", tr.Objective())
	}
	if _, err := tr.Save(); !errors.Is(err, ErrAlreadyEditing) {
		t.Fatalf("expected save to refuse while editing, got %v", err)
	}

	if err := tr.CommitDraft(); err != nil {
		t.Fatal(err)
	}
	if tr.Objective() != "Novo objetivo" || tr.Editing() {
		t.Fatalf("commit did not apply: objective=%q editing=%v", tr.Objective(), tr.Editing())
	}
	if tr.Plan().Objective != p.Objective {
		t.Fatalf("mounted plan mutated: %q", tr.Plan().Objective)
	}
	if !tr.Dirty() {
		t.Fatal("expected dirty after commit")
	}

	saved, err := tr.Save()
	if err != nil {
		t.Fatal(err)
	}
	if saved.Objective != "Novo objetivo" || !slices.Equal(saved.Tasks, p.Tasks) {
		t.Fatalf("unexpected saved plan: %#v", saved)
	}
}

func TestTracker_CancelAndEmptyCommit(t *testing.T) {
	tr := mustTracker(t, samplePlan())
	if err := tr.CancelEdit(); !errors.Is(err, ErrNotEditing) {
		t.Fatalf("expected ErrNotEditing, got %v", err)
	}

	_ = tr.BeginEdit()
	_ = tr.SetDraft("   ")
	if err := tr.CommitDraft(); !errors.Is(err, ErrEmptyObjective) {
		t.Fatalf("expected ErrEmptyObjective, got %v", err)
	}
	if !tr.Editing() {
		t.Fatal("failed commit should stay in edit mode")
	}
	if err := tr.CancelEdit(); err != nil {
		t.Fatal(err)
	}
	if tr.Objective() != "Criar agente" || tr.Draft() != "" {
		t.Fatalf("cancel should discard the draft: %q / %q", tr.Objective(), tr.Draft())
	}
}
