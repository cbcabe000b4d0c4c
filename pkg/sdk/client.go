package sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/felixgeelhaar/mcp-go/client"
)

// Client is a typed Go client for the Agent Hub MCP server.
type Client struct {
	mcp      *client.Client
	retryCfg retry.Config
	timeout  time.Duration
}

// NewClient creates a new SDK client wrapping the given MCP transport.
func NewClient(transport client.Transport, opts ...Option) *Client {
	c := &Client{timeout: defaultTimeout, retryCfg: defaultRetry()}
	for _, opt := range opts {
		opt(c)
	}
	c.mcp = client.New(transport, client.WithTimeout(c.timeout))
	return c
}

// Initialize performs the MCP initialize handshake.
func (c *Client) Initialize(ctx context.Context) (*client.ServerInfo, error) {
	return c.mcp.Initialize(ctx)
}

// Close closes the underlying transport.
func (c *Client) Close() error {
	return c.mcp.Close()
}

// call invokes a tool, retrying transport failures. A tool error result
// is final and not retried.
func (c *Client) call(ctx context.Context, tool string, args map[string]any) (*client.ToolResult, error) {
	r := retry.New[*client.ToolResult](c.retryCfg)
	result, err := r.Do(ctx, func(ctx context.Context) (*client.ToolResult, error) {
		return c.mcp.CallTool(ctx, tool, args)
	})
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", tool, err)
	}
	if result.IsError {
		msg := ""
		if len(result.Content) > 0 {
			msg = result.Content[0].Text
		}
		return nil, &ToolError{Tool: tool, Message: msg}
	}
	return result, nil
}

// callJSON invokes a tool and decodes its text content as JSON into T.
func callJSON[T any](ctx context.Context, c *Client, tool string, args map[string]any) (*T, error) {
	res, err := c.call(ctx, tool, args)
	if err != nil {
		return nil, err
	}
	return unmarshalText[T](res)
}

func unmarshalText[T any](result *client.ToolResult) (*T, error) {
	text, err := textResult(result)
	if err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	return &v, nil
}

func textResult(result *client.ToolResult) (string, error) {
	if len(result.Content) == 0 {
		return "", ErrNoContent
	}
	return result.Content[0].Text, nil
}

// GetSchema reads the agenthub://schema resource from the server.
func (c *Client) GetSchema(ctx context.Context) (*SchemaInfo, error) {
	rc, err := c.mcp.ReadResource(ctx, "agenthub://schema")
	if err != nil {
		return nil, fmt.Errorf("read schema resource: %w", err)
	}
	var info SchemaInfo
	if err := json.Unmarshal([]byte(rc.Text), &info); err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}
	return &info, nil
}

// --- Chat ---

// Send posts a user message. With wait the call returns once the reply
// is committed, or with a nil Reply if the server stopped waiting first.
func (c *Client) Send(ctx context.Context, content string, wait bool) (*SendResult, error) {
	return callJSON[SendResult](ctx, c, "chat_send", map[string]any{"content": content, "wait": wait})
}

// SendSuggestion sends one of the suggestions offered by the last reply.
func (c *Client) SendSuggestion(ctx context.Context, suggestion string, wait bool) (*SendResult, error) {
	return callJSON[SendResult](ctx, c, "chat_suggestion", map[string]any{"suggestion": suggestion, "wait": wait})
}

// Messages returns the conversation in order.
func (c *Client) Messages(ctx context.Context) (*Conversation, error) {
	return callJSON[Conversation](ctx, c, "chat_messages", nil)
}

// Clear empties the conversation and the plan.
func (c *Client) Clear(ctx context.Context) (string, error) {
	res, err := c.call(ctx, "chat_clear", nil)
	if err != nil {
		return "", err
	}
	return textResult(res)
}

// ExecuteAction runs a one-click action and returns the system message
// that records its outcome.
func (c *Client) ExecuteAction(ctx context.Context, actionID string) (*Message, error) {
	return callJSON[Message](ctx, c, "chat_execute_action", map[string]any{"action_id": actionID})
}

// Commands lists slash commands, filtered by prefix when it is not empty.
func (c *Client) Commands(ctx context.Context, prefix string) ([]Command, error) {
	var args map[string]any
	if prefix != "" {
		args = map[string]any{"prefix": prefix}
	}
	v, err := callJSON[[]Command](ctx, c, "list_commands", args)
	if err != nil {
		return nil, err
	}
	return *v, nil
}

// --- Plan ---

// Plan returns the plan panel state.
func (c *Client) Plan(ctx context.Context) (*PlanView, error) {
	return callJSON[PlanView](ctx, c, "chat_plan", nil)
}

// ToggleTask flips the task at the zero-based index.
func (c *Client) ToggleTask(ctx context.Context, index int) (*ToggleResult, error) {
	return callJSON[ToggleResult](ctx, c, "plan_toggle_task", map[string]any{"index": index})
}

// Progress returns the completed share of the plan.
func (c *Client) Progress(ctx context.Context) (*Progress, error) {
	return callJSON[Progress](ctx, c, "plan_progress", nil)
}

// UpdateObjective replaces the plan objective.
func (c *Client) UpdateObjective(ctx context.Context, objective string) (*AgentPlan, error) {
	return callJSON[AgentPlan](ctx, c, "plan_update_objective", map[string]any{"objective": objective})
}

// --- Platform ---

// Agents lists agents registered on the platform.
func (c *Client) Agents(ctx context.Context) ([]Agent, error) {
	v, err := callJSON[[]Agent](ctx, c, "platform_list_agents", nil)
	if err != nil {
		return nil, err
	}
	return *v, nil
}

// Tools lists tools published on the gateway.
func (c *Client) Tools(ctx context.Context) ([]Tool, error) {
	v, err := callJSON[[]Tool](ctx, c, "platform_list_tools", nil)
	if err != nil {
		return nil, err
	}
	return *v, nil
}
