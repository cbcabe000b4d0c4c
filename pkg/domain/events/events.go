// Package events defines the notifications a chat session emits when its
// state changes, and the in-process bus that fans them out.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Event types emitted by a chat session.
const (
	TypeMessageAppended = "chat.message_appended"
	TypePlanReplaced    = "chat.plan_replaced"
	TypeChatCleared     = "chat.cleared"
	TypeComposing       = "chat.composing_changed"
	TypeTaskToggled     = "plan.task_toggled"
	TypeActionExecuted  = "platform.action_executed"
)

// Wildcard subscribes a handler to every event type.
const Wildcard = "*"

// Event is a single state change notification. Data carries a small
// JSON-friendly payload; consumers re-read the session for full state.
type Event struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	SessionID string         `json:"session_id"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data,omitempty"`
}

// New stamps an event with a fresh ID and the current time.
func New(eventType, sessionID string, data map[string]any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SessionID: sessionID,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}
