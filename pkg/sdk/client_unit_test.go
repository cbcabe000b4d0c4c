package sdk

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/mcp-go/protocol"
)

// mockTransport implements client.Transport and returns canned responses
// based on the method name in the request.
type mockTransport struct {
	closed    bool
	responses map[string]any
	methods   []string
}

func newMockTransport() *mockTransport {
	return &mockTransport{responses: make(map[string]any)}
}

// setToolResponse configures the result of every tools/call request.
func (m *mockTransport) setToolResponse(text string, isError bool) {
	result := map[string]any{
		"content": []any{map[string]any{"type": "text", "text": text}},
	}
	if isError {
		result["isError"] = true
	}
	m.responses["tools/call"] = result
}

func (m *mockTransport) setResourceResponse(text string) {
	m.responses["resources/read"] = map[string]any{
		"contents": []any{
			map[string]any{"uri": "agenthub://schema", "text": text},
		},
	}
}

func (m *mockTransport) Send(_ context.Context, req *protocol.Request) (*protocol.Response, error) {
	m.methods = append(m.methods, req.Method)
	result, ok := m.responses[req.Method]
	if !ok {
		if req.Method == "initialize" {
			return protocol.NewResponse(req.ID, map[string]any{
				"serverInfo":      map[string]any{"name": "mock", "version": "1.0.0"},
				"protocolVersion": "2024-11-05",
				"capabilities":    map[string]any{"tools": map[string]any{}},
			}), nil
		}
		if req.IsNotification() {
			return nil, nil
		}
		return protocol.NewResponse(req.ID, map[string]any{
			"content": []any{map[string]any{"type": "text", "text": "ok"}},
		}), nil
	}
	return protocol.NewResponse(req.ID, result), nil
}

func (m *mockTransport) Close() error {
	m.closed = true
	return nil
}

func newTestClient(t *testing.T, mt *mockTransport) *Client {
	t.Helper()
	c := NewClient(mt, WithRetry(1, time.Millisecond))
	if _, err := c.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return c
}

const billingReply = `{
  "message": {"id": "msg-1", "role": "user", "content": "Quero criar um agente de cobrança", "timestamp": "2026-01-01T10:00:00Z"},
  "reply": {
    "id": "msg-2", "role": "assistant", "content": "Perfeito!", "timestamp": "2026-01-01T10:00:01Z",
    "metadata": {
      "suggestions": ["Adicionar Slack"],
      "agent_plan": {"objective": "Criar agente de cobrança", "tasks": ["a", "b"], "suggested_tools": ["CRM API"]},
      "actions": [{"id": "act-create-agent", "label": "Criar", "type": "create_agent"}]
    }
  }
}`

func TestClient_Send(t *testing.T) {
	mt := newMockTransport()
	mt.setToolResponse(billingReply, false)
	c := newTestClient(t, mt)

	res, err := c.Send(context.Background(), "Quero criar um agente de cobrança", true)
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if res.Message.ID != 1 || res.Message.Role != "user" {
		t.Errorf("unexpected user message: %+v", res.Message)
	}
	if res.Reply == nil || !res.Reply.HasPlan() {
		t.Fatalf("expected reply with plan, got %+v", res.Reply)
	}
	if res.Reply.Metadata.Plan.TaskCount() != 2 {
		t.Errorf("tasks = %d", res.Reply.Metadata.Plan.TaskCount())
	}
	if _, ok := res.Reply.Action("act-create-agent"); !ok {
		t.Error("expected the create agent action")
	}
}

func TestClient_SendWithoutReply(t *testing.T) {
	mt := newMockTransport()
	mt.setToolResponse(`{"message": {"id": "msg-3", "role": "user", "content": "oi", "timestamp": "2026-01-01T10:00:00Z"}}`, false)
	c := newTestClient(t, mt)

	res, err := c.SendSuggestion(context.Background(), "oi", false)
	if err != nil {
		t.Fatalf("SendSuggestion: %v", err)
	}
	if res.Reply != nil {
		t.Errorf("expected no reply, got %+v", res.Reply)
	}
}

func TestClient_Messages(t *testing.T) {
	mt := newMockTransport()
	mt.setToolResponse(`{"session_id": "s-1", "composing": true, "messages": [{"id": "msg-1", "role": "user", "content": "oi", "timestamp": "2026-01-01T10:00:00Z"}]}`, false)
	c := newTestClient(t, mt)

	conv, err := c.Messages(context.Background())
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if conv.SessionID != "s-1" || !conv.Composing || len(conv.Messages) != 1 {
		t.Errorf("unexpected conversation: %+v", conv)
	}
}

func TestClient_Clear(t *testing.T) {
	mt := newMockTransport()
	mt.setToolResponse("Conversation cleared.", false)
	c := newTestClient(t, mt)

	msg, err := c.Clear(context.Background())
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if msg != "Conversation cleared." {
		t.Errorf("got %q", msg)
	}
}

func TestClient_Plan(t *testing.T) {
	mt := newMockTransport()
	mt.setToolResponse(`{"plan": {"objective": "X", "tasks": ["a", "b", "c", "d"], "suggested_tools": []}, "objective": "X", "completed": [1], "progress": 0.25, "percent": 25, "editing": false}`, false)
	c := newTestClient(t, mt)

	view, err := c.Plan(context.Background())
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if view.Percent != 25 || !view.IsCompleted(1) || view.IsCompleted(0) {
		t.Errorf("unexpected view: %+v", view)
	}
}

func TestClient_ToggleTask(t *testing.T) {
	mt := newMockTransport()
	mt.setToolResponse(`{"index": 2, "completed": true, "progress": 0.2}`, false)
	c := newTestClient(t, mt)

	res, err := c.ToggleTask(context.Background(), 2)
	if err != nil {
		t.Fatalf("ToggleTask: %v", err)
	}
	if res.Index != 2 || !res.Completed || res.Progress != 0.2 {
		t.Errorf("unexpected toggle: %+v", res)
	}
}

func TestClient_Progress(t *testing.T) {
	mt := newMockTransport()
	mt.setToolResponse(`{"progress": 0.6, "percent": 60, "done": 3, "total": 5}`, false)
	c := newTestClient(t, mt)

	p, err := c.Progress(context.Background())
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if p.Done != 3 || p.Total != 5 || p.Percent != 60 {
		t.Errorf("unexpected progress: %+v", p)
	}
}

func TestClient_UpdateObjective(t *testing.T) {
	mt := newMockTransport()
	mt.setToolResponse(`{"objective": "Novo", "tasks": ["a"], "suggested_tools": []}`, false)
	c := newTestClient(t, mt)

	plan, err := c.UpdateObjective(context.Background(), "Novo")
	if err != nil {
		t.Fatalf("UpdateObjective: %v", err)
	}
	if plan.Objective != "Novo" {
		t.Errorf("objective = %q", plan.Objective)
	}
}

func TestClient_ExecuteAction(t *testing.T) {
	mt := newMockTransport()
	mt.setToolResponse(`{"id": "msg-4", "role": "system", "content": "✅ Agente criado", "timestamp": "2026-01-01T10:00:00Z"}`, false)
	c := newTestClient(t, mt)

	msg, err := c.ExecuteAction(context.Background(), "act-create-agent")
	if err != nil {
		t.Fatalf("ExecuteAction: %v", err)
	}
	if msg.Role != "system" {
		t.Errorf("role = %s", msg.Role)
	}
}

func TestClient_Commands(t *testing.T) {
	mt := newMockTransport()
	mt.setToolResponse(`[{"command": "/deploy", "description": "Fazer deploy", "category": "Deploy"}]`, false)
	c := newTestClient(t, mt)

	list, err := c.Commands(context.Background(), "/dep")
	if err != nil {
		t.Fatalf("Commands: %v", err)
	}
	if len(list) != 1 || list[0].Name != "/deploy" {
		t.Errorf("unexpected commands: %+v", list)
	}
}

func TestClient_PlatformListings(t *testing.T) {
	mt := newMockTransport()
	mt.setToolResponse(`[{"id": "agent-001", "name": "Atendimento", "framework": "langgraph"}]`, false)
	c := newTestClient(t, mt)

	agents, err := c.Agents(context.Background())
	if err != nil {
		t.Fatalf("Agents: %v", err)
	}
	if len(agents) != 1 || agents[0].ID != "agent-001" {
		t.Errorf("unexpected agents: %+v", agents)
	}

	mt.setToolResponse(`[{"id": "tool-001", "name": "CRM API", "type": "openapi"}]`, false)
	tools, err := c.Tools(context.Background())
	if err != nil {
		t.Fatalf("Tools: %v", err)
	}
	if len(tools) != 1 || tools[0].Type != "openapi" {
		t.Errorf("unexpected tools: %+v", tools)
	}
}

func TestClient_ToolError(t *testing.T) {
	mt := newMockTransport()
	mt.setToolResponse("The assistant is still composing a reply. Try again in a moment.", true)
	c := newTestClient(t, mt)

	_, err := c.Send(context.Background(), "oi", false)
	var toolErr *ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("expected ToolError, got %T: %v", err, err)
	}
	if toolErr.Tool != "chat_send" {
		t.Errorf("tool = %s", toolErr.Tool)
	}

	calls := 0
	for _, m := range mt.methods {
		if m == "tools/call" {
			calls++
		}
	}
	if calls != 1 {
		t.Errorf("tool errors must not be retried, saw %d calls", calls)
	}
}

func TestClient_MalformedResult(t *testing.T) {
	mt := newMockTransport()
	mt.setToolResponse("not json", false)
	c := newTestClient(t, mt)

	if _, err := c.Progress(context.Background()); err == nil {
		t.Fatal("expected unmarshal error")
	}
}

func TestClient_GetSchema(t *testing.T) {
	mt := newMockTransport()
	mt.setResourceResponse(`{"schema_version":"1.2.0","server_version":"0.9.0","tools":["chat_send"]}`)
	c := newTestClient(t, mt)

	schema, err := c.GetSchema(context.Background())
	if err != nil {
		t.Fatalf("GetSchema: %v", err)
	}
	if schema.SchemaVersion != "1.2.0" || len(schema.Tools) != 1 {
		t.Errorf("unexpected schema: %+v", schema)
	}
	if err := c.Compatible(context.Background()); err != nil {
		t.Fatalf("Compatible: %v", err)
	}
}

func TestClient_Compatible_Incompatible(t *testing.T) {
	mt := newMockTransport()
	mt.setResourceResponse(`{"schema_version":"2.0.0","server_version":"2.0.0"}`)
	c := newTestClient(t, mt)

	err := c.Compatible(context.Background())
	if !errors.Is(err, ErrIncompatible) {
		t.Fatalf("Compatible = %v, want ErrIncompatible", err)
	}
}

func TestClient_Close(t *testing.T) {
	mt := newMockTransport()
	c := NewClient(mt)
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !mt.closed {
		t.Error("expected transport to be closed")
	}
}

func TestNewClient_Options(t *testing.T) {
	mt := newMockTransport()
	c := NewClient(mt)
	if c.timeout != 30*time.Second || c.retryCfg.MaxAttempts != 3 {
		t.Errorf("unexpected defaults: timeout=%v attempts=%d", c.timeout, c.retryCfg.MaxAttempts)
	}

	c = NewClient(mt, WithTimeout(time.Minute), WithRetry(5, 100*time.Millisecond))
	if c.timeout != time.Minute {
		t.Errorf("timeout = %v", c.timeout)
	}
	if c.retryCfg.MaxAttempts != 5 || c.retryCfg.InitialDelay != 100*time.Millisecond {
		t.Errorf("unexpected retry config: %+v", c.retryCfg)
	}

	c = NewClient(mt, WithoutRetry(), WithTimeout(-time.Second))
	if c.retryCfg.MaxAttempts != 1 {
		t.Errorf("attempts = %d, want 1", c.retryCfg.MaxAttempts)
	}
	if c.timeout != 30*time.Second {
		t.Errorf("negative timeout should keep the default, got %v", c.timeout)
	}
}
