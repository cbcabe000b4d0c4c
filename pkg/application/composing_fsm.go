package application

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// Composing states. Untyped so they convert to statekit.StateID.
const (
	StateIdle      = "idle"
	StateComposing = "composing"
)

const (
	eventSend  = "send"
	eventReply = "reply"
)

// composingMachine allows one classify/compose cycle at a time.
type composingMachine struct {
	interpreter *statekit.Interpreter[struct{}]
}

func newComposingMachine() (*composingMachine, error) {
	builder := statekit.NewMachine[struct{}]("chat-composing").
		WithInitial(statekit.StateID(StateIdle))

	builder.State(StateIdle).
		On(eventSend).Target(StateComposing).
		Done()

	builder.State(StateComposing).
		On(eventReply).Target(StateIdle).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build composing state machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()
	return &composingMachine{interpreter: interpreter}, nil
}

// fire sends event and reports whether the machine moved.
func (m *composingMachine) fire(event string) bool {
	before := m.current()
	m.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	return m.current() != before
}

func (m *composingMachine) current() string {
	return string(m.interpreter.State().Value)
}
