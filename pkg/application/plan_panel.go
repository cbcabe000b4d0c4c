package application

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/agenthub/pkg/domain/events"
	"github.com/felixgeelhaar/agenthub/pkg/domain/planning"
)

// PlanView is what the plan panel shows.
type PlanView struct {
	Plan      planning.AgentPlan `json:"plan"`
	Objective string             `json:"objective"`
	Completed []int              `json:"completed"`
	Progress  float64            `json:"progress"`
	Percent   int                `json:"percent"`
	Editing   bool               `json:"editing"`
	Draft     string             `json:"draft,omitempty"`
	// Dirty is set while a committed objective awaits SavePlan.
	Dirty bool `json:"dirty"`
	// Hash identifies the mounted plan.
	Hash string `json:"hash"`
}

// IsCompleted reports whether the task at index is checked off.
func (v PlanView) IsCompleted(index int) bool {
	for _, i := range v.Completed {
		if i == index {
			return true
		}
	}
	return false
}

// PlanView returns the panel state, or false when no plan is mounted.
func (s *Session) PlanView() (PlanView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tracker == nil {
		return PlanView{}, false
	}
	t := s.tracker
	return PlanView{
		Plan:      t.Plan(),
		Objective: t.Objective(),
		Completed: t.Completed(),
		Progress:  t.Progress(),
		Percent:   t.Percent(),
		Editing:   t.Editing(),
		Draft:     t.Draft(),
		Dirty:     t.Dirty(),
		Hash:      t.Plan().Hash(),
	}, true
}

// Progress returns the completed share of the current plan's tasks.
func (s *Session) Progress() (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tracker == nil {
		return 0, ErrNoPlan
	}
	return s.tracker.Progress(), nil
}

// TaskToggle is the outcome of one toggle, read from the same tracker.
type TaskToggle struct {
	Index     int     `json:"index"`
	Completed bool    `json:"completed"`
	Progress  float64 `json:"progress"`
}

// ToggleTask flips the completion of a task in the current plan.
func (s *Session) ToggleTask(ctx context.Context, index int) (TaskToggle, error) {
	s.mu.Lock()
	if s.tracker == nil {
		s.mu.Unlock()
		return TaskToggle{}, ErrNoPlan
	}
	done, err := s.tracker.ToggleTask(index)
	res := TaskToggle{Index: index, Completed: done, Progress: s.tracker.Progress()}
	s.mu.Unlock()
	if err != nil {
		return TaskToggle{}, err
	}

	s.publish(ctx, events.TypeTaskToggled, map[string]any{"index": index, "completed": done, "progress": res.Progress})
	return res, nil
}

// BeginEdit stages an objective draft.
func (s *Session) BeginEdit() error {
	return s.withTracker(func(t *planning.Tracker) error { return t.BeginEdit() })
}

// SetDraft replaces the staged objective text.
func (s *Session) SetDraft(text string) error {
	return s.withTracker(func(t *planning.Tracker) error { return t.SetDraft(text) })
}

// CommitDraft shows the draft as the objective without touching the plan.
func (s *Session) CommitDraft() error {
	return s.withTracker(func(t *planning.Tracker) error { return t.CommitDraft() })
}

// CancelEdit drops the draft.
func (s *Session) CancelEdit() error {
	return s.withTracker(func(t *planning.Tracker) error { return t.CancelEdit() })
}

// SavePlan installs the displayed objective into the conversation's plan.
// Installing a plan remounts the panel, so task completion starts over.
func (s *Session) SavePlan(ctx context.Context) (planning.AgentPlan, error) {
	s.mu.Lock()
	plan, err := s.savePlanLocked()
	s.mu.Unlock()
	if err != nil {
		return planning.AgentPlan{}, err
	}
	s.planSaved(ctx, plan)
	return plan, nil
}

// UpdateObjective edits, commits and saves a new objective in one step. The
// whole edit holds the session lock, so a reply landing meanwhile either
// precedes it or replaces the saved plan afterwards.
func (s *Session) UpdateObjective(ctx context.Context, objective string) (planning.AgentPlan, error) {
	s.mu.Lock()
	if s.tracker == nil {
		s.mu.Unlock()
		return planning.AgentPlan{}, fmt.Errorf("update objective: %w", ErrNoPlan)
	}
	if err := stageObjective(s.tracker, objective); err != nil {
		s.mu.Unlock()
		return planning.AgentPlan{}, fmt.Errorf("update objective: %w", err)
	}
	plan, err := s.savePlanLocked()
	s.mu.Unlock()
	if err != nil {
		return planning.AgentPlan{}, fmt.Errorf("update objective: %w", err)
	}
	s.planSaved(ctx, plan)
	return plan, nil
}

func stageObjective(t *planning.Tracker, objective string) error {
	if !t.Editing() {
		if err := t.BeginEdit(); err != nil {
			return err
		}
	}
	if err := t.SetDraft(objective); err != nil {
		return err
	}
	if err := t.CommitDraft(); err != nil {
		_ = t.CancelEdit()
		return err
	}
	return nil
}

func (s *Session) savePlanLocked() (planning.AgentPlan, error) {
	if s.tracker == nil {
		return planning.AgentPlan{}, ErrNoPlan
	}
	plan, err := s.tracker.Save()
	if err != nil {
		return planning.AgentPlan{}, err
	}
	s.store.SetPlan(plan)
	s.mountLocked(plan)
	return plan, nil
}

func (s *Session) planSaved(ctx context.Context, plan planning.AgentPlan) {
	s.logger.Info("plan saved", "objective", plan.Objective)
	s.publish(ctx, events.TypePlanReplaced, planData(plan))
}

func (s *Session) withTracker(fn func(*planning.Tracker) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tracker == nil {
		return ErrNoPlan
	}
	return fn(s.tracker)
}
