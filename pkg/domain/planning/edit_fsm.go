package planning

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// State constants for statekit integration.
// These must remain untyped string constants for statekit.StateID compatibility.
const (
	StateViewing = "viewing"
	StateEditing = "editing"
)

// Events accepted by the edit machine.
const (
	EventEdit   = "edit"
	EventCommit = "commit"
	EventCancel = "cancel"
)

// EditTransitionError is returned when an edit event is not valid in the current mode.
type EditTransitionError struct {
	Event string
	State string
}

func (e *EditTransitionError) Error() string {
	return fmt.Sprintf("the action '%s' is not allowed while the plan panel is '%s'", e.Event, e.State)
}

func (e *EditTransitionError) Unwrap() error {
	if e.State == StateViewing {
		return ErrNotEditing
	}
	return ErrAlreadyEditing
}

// EditStateMachine tracks whether a plan panel is showing the committed plan
// or staging a draft.
type EditStateMachine struct {
	interpreter *statekit.Interpreter[struct{}]
}

func NewEditStateMachine() (*EditStateMachine, error) {
	builder := statekit.NewMachine[struct{}]("plan-edit").
		WithInitial(statekit.StateID(StateViewing))

	builder.State(StateViewing).
		On(EventEdit).Target(StateEditing).
		Done()

	builder.State(StateEditing).
		On(EventCommit).Target(StateViewing).
		On(EventCancel).Target(StateViewing).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build edit state machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	return &EditStateMachine{interpreter: interpreter}, nil
}

// Transition sends the event and reports an error if the mode did not change.
// Every valid edit event changes the mode, so an unchanged mode means the
// event was rejected.
func (sm *EditStateMachine) Transition(event string) error {
	before := sm.Current()
	sm.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	if sm.Current() != before {
		return nil
	}
	return &EditTransitionError{Event: event, State: before}
}

func (sm *EditStateMachine) Current() string {
	return string(sm.interpreter.State().Value)
}

// IsEditing returns true while a draft is staged.
func (sm *EditStateMachine) IsEditing() bool {
	return sm.Current() == StateEditing
}
