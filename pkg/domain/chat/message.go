// Package chat holds the conversation model: messages and the store that
// orders them.
package chat

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/felixgeelhaar/agenthub/pkg/domain/planning"
)

// MessageID increases monotonically in creation order within a store.
type MessageID uint64

func (id MessageID) String() string {
	return fmt.Sprintf("msg-%d", uint64(id))
}

// MarshalText implements encoding.TextMarshaler so IDs serialize as "msg-<n>".
func (id MessageID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *MessageID) UnmarshalText(data []byte) error {
	parsed, err := ParseMessageID(string(data))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ParseMessageID accepts both "msg-7" and "7".
func ParseMessageID(s string) (MessageID, error) {
	n, err := strconv.ParseUint(strings.TrimPrefix(s, "msg-"), 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid message id: %s", s)
	}
	return MessageID(n), nil
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// IsValid returns true if the role is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	default:
		return false
	}
}

type ActionType string

const (
	ActionCreateAgent ActionType = "create_agent"
	ActionAddTool     ActionType = "add_tool"
	ActionSetupRAG    ActionType = "setup_rag"
	ActionSetupMemory ActionType = "setup_memory"
	ActionDeploy      ActionType = "deploy"
	ActionTest        ActionType = "test"
)

// Action is a one-click operation offered alongside an assistant reply.
type Action struct {
	ID      string            `json:"id"`
	Label   string            `json:"label"`
	Type    ActionType        `json:"type"`
	Payload map[string]string `json:"payload,omitempty"`
}

// Metadata is the optional structured part of a message.
type Metadata struct {
	Suggestions []string            `json:"suggestions,omitempty"`
	Plan        *planning.AgentPlan `json:"agent_plan,omitempty"`
	Actions     []Action            `json:"actions,omitempty"`
}

// IsZero reports whether the metadata carries nothing.
func (m Metadata) IsZero() bool {
	return len(m.Suggestions) == 0 && m.Plan == nil && len(m.Actions) == 0
}

func (m Metadata) clone() Metadata {
	out := Metadata{Suggestions: slices.Clone(m.Suggestions)}
	if m.Plan != nil {
		p := m.Plan.Clone()
		out.Plan = &p
	}
	if m.Actions != nil {
		out.Actions = make([]Action, len(m.Actions))
		for i, a := range m.Actions {
			out.Actions[i] = a
			if a.Payload != nil {
				payload := make(map[string]string, len(a.Payload))
				for k, v := range a.Payload {
					payload[k] = v
				}
				out.Actions[i].Payload = payload
			}
		}
	}
	return out
}

// Message is a single chat entry. Once appended it is never changed; the
// store hands out copies.
type Message struct {
	ID        MessageID `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Metadata  Metadata  `json:"metadata,omitzero"`
	CreatedAt time.Time `json:"timestamp"`
}

// NewMessage builds an unsaved message; the store assigns ID and CreatedAt.
func NewMessage(role Role, content string) Message {
	return Message{Role: role, Content: content}
}

// HasPlan reports whether the message carries an agent plan.
func (m Message) HasPlan() bool {
	return m.Metadata.Plan != nil
}

// Action returns the action with the given ID, if the message offers it.
func (m Message) Action(id string) (Action, bool) {
	for _, a := range m.Metadata.Actions {
		if a.ID == id {
			return a, true
		}
	}
	return Action{}, false
}

// Clone returns a deep copy of the message.
func (m Message) Clone() Message {
	out := m
	out.Metadata = m.Metadata.clone()
	return out
}
