package planning

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Tracker is the presentation state of one mounted plan: which tasks were
// checked off and the objective draft being edited. None of it is written
// back into the plan; Save hands the caller a new plan value instead.
type Tracker struct {
	mu        sync.Mutex
	plan      AgentPlan
	completed map[int]struct{}
	objective string
	draft     string
	editor    *EditStateMachine
}

// NewTracker mounts a tracker for the given plan with nothing completed.
func NewTracker(plan AgentPlan) (*Tracker, error) {
	editor, err := NewEditStateMachine()
	if err != nil {
		return nil, err
	}
	plan = plan.Clone()
	return &Tracker{
		plan:      plan,
		completed: make(map[int]struct{}),
		objective: plan.Objective,
		editor:    editor,
	}, nil
}

// Plan returns a copy of the plan the tracker was mounted with.
func (t *Tracker) Plan() AgentPlan {
	return t.plan.Clone()
}

// Progress returns completed/total in [0, 1]. A plan without tasks reports 0.
func (t *Tracker) Progress() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return progress(len(t.completed), len(t.plan.Tasks))
}

// Percent returns Progress scaled to 0..100 and rounded down.
func (t *Tracker) Percent() int {
	return int(t.Progress() * 100)
}

func progress(done, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(done) / float64(total)
}

// ToggleTask flips the completion of the task at index and returns the new value.
func (t *Tracker) ToggleTask(index int) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if index < 0 || index >= len(t.plan.Tasks) {
		return false, &TaskIndexError{Index: index, Count: len(t.plan.Tasks)}
	}
	if _, ok := t.completed[index]; ok {
		delete(t.completed, index)
		return false, nil
	}
	t.completed[index] = struct{}{}
	return true, nil
}

// IsCompleted reports whether the task at index is checked off.
func (t *Tracker) IsCompleted(index int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.completed[index]
	return ok
}

// Completed returns the completed indices in ascending order.
func (t *Tracker) Completed() []int {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]int, 0, len(t.completed))
	for i := range t.completed {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

// CompletedCount returns the number of checked tasks.
func (t *Tracker) CompletedCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.completed)
}

// Objective returns the displayed objective, which may differ from the
// mounted plan after CommitDraft.
func (t *Tracker) Objective() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.objective
}

// Editing reports whether a draft is staged.
func (t *Tracker) Editing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.editor.IsEditing()
}

// Draft returns the staged objective text.
func (t *Tracker) Draft() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.draft
}

// BeginEdit stages a draft seeded with the displayed objective.
func (t *Tracker) BeginEdit() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.editor.Transition(EventEdit); err != nil {
		return err
	}
	t.draft = t.objective
	return nil
}

// SetDraft replaces the staged objective text.
func (t *Tracker) SetDraft(text string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.editor.IsEditing() {
		return ErrNotEditing
	}
	t.draft = text
	return nil
}

// CommitDraft makes the draft the displayed objective and leaves edit mode.
func (t *Tracker) CommitDraft() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.editor.IsEditing() {
		return ErrNotEditing
	}
	draft := strings.TrimSpace(t.draft)
	if draft == "" {
		return ErrEmptyObjective
	}
	if err := t.editor.Transition(EventCommit); err != nil {
		return err
	}
	t.objective = draft
	t.draft = ""
	return nil
}

// CancelEdit drops the draft and leaves edit mode.
func (t *Tracker) CancelEdit() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.editor.Transition(EventCancel); err != nil {
		return err
	}
	t.draft = ""
	return nil
}

// Save returns the plan to install in the store: the mounted plan with the
// displayed objective. A staged, uncommitted draft is not included.
func (t *Tracker) Save() (AgentPlan, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.editor.IsEditing() {
		return AgentPlan{}, fmt.Errorf("commit or cancel the draft before saving: %w", ErrAlreadyEditing)
	}
	return t.plan.WithObjective(t.objective), nil
}

// Dirty reports whether the displayed objective differs from the mounted plan.
func (t *Tracker) Dirty() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.objective != t.plan.Objective
}
