package sdk

import (
	"github.com/felixgeelhaar/agenthub/pkg/application"
	"github.com/felixgeelhaar/agenthub/pkg/domain/chat"
	"github.com/felixgeelhaar/agenthub/pkg/domain/commands"
	"github.com/felixgeelhaar/agenthub/pkg/domain/planning"
	"github.com/felixgeelhaar/agenthub/pkg/platform"
)

// Re-exported so callers need only this package.
type (
	Message   = chat.Message
	AgentPlan = planning.AgentPlan
	PlanView  = application.PlanView
	Command   = commands.Command
	Agent     = platform.Agent
	Tool      = platform.GatewayTool
)

// SendResult is the user message and, when waited for, the reply.
type SendResult struct {
	Message Message  `json:"message"`
	Reply   *Message `json:"reply,omitempty"`
}

// Conversation is the chat_messages result.
type Conversation struct {
	SessionID string    `json:"session_id"`
	Messages  []Message `json:"messages"`
	Composing bool      `json:"composing"`
}

// ToggleResult reports a task's new state.
type ToggleResult struct {
	Index     int     `json:"index"`
	Completed bool    `json:"completed"`
	Progress  float64 `json:"progress"`
}

// Progress is the plan_progress result.
type Progress struct {
	Progress float64 `json:"progress"`
	Percent  int     `json:"percent"`
	Done     int     `json:"done"`
	Total    int     `json:"total"`
}

// SchemaInfo describes the server's tool schema.
type SchemaInfo struct {
	SchemaVersion string   `json:"schema_version"`
	ServerVersion string   `json:"server_version"`
	Tools         []string `json:"tools"`
}
