package mcp

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/felixgeelhaar/mcp-go/schema"
)

func TestServer_OpenAPI(t *testing.T) {
	server := newTestServer(t)

	data, err := server.OpenAPI("")
	if err != nil {
		t.Fatalf("OpenAPI: %v", err)
	}
	var doc OpenAPISpec
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.OpenAPI != "3.0.3" {
		t.Errorf("openapi = %s", doc.OpenAPI)
	}
	if doc.Info.Title != "Agent Hub MCP API" {
		t.Errorf("title = %s", doc.Info.Title)
	}

	send, ok := doc.Paths["/tools/chat_send"]
	if !ok || send.Post == nil {
		t.Fatalf("missing POST /tools/chat_send in %v", doc.Paths)
	}
	if send.Post.RequestBody == nil {
		t.Error("chat_send should declare a request body")
	}
	if len(send.Post.Tags) != 1 || send.Post.Tags[0] != "chat" {
		t.Errorf("tags = %v", send.Post.Tags)
	}
	if _, ok := send.Post.Responses["409"]; !ok {
		t.Error("chat_send should document the composing conflict")
	}
	if _, ok := doc.Components.Schemas["ToolError"]; !ok {
		t.Error("missing ToolError component")
	}
	if len(doc.Servers) != 0 {
		t.Errorf("no servers expected without a base URL: %v", doc.Servers)
	}

	msgs, ok := doc.Paths["/tools/chat_messages"]
	if !ok || msgs.Post == nil {
		t.Fatal("missing POST /tools/chat_messages")
	}
	if msgs.Post.RequestBody != nil {
		t.Error("chat_messages takes no arguments")
	}

	toggle := doc.Paths["/tools/plan_toggle_task"]
	if toggle.Post == nil || toggle.Post.RequestBody == nil {
		t.Fatal("plan_toggle_task should declare a request body")
	}
	body, _ := json.Marshal(toggle.Post.RequestBody.Content["application/json"].Schema)
	if !strings.Contains(string(body), `"index"`) {
		t.Errorf("toggle schema lacks index: %s", body)
	}
}

func TestTagFor(t *testing.T) {
	cases := map[string]string{
		"chat_send":            "chat",
		"plan_toggle_task":     "plan",
		"platform_list_agents": "platform",
		"list_commands":        "commands",
	}
	for tool, want := range cases {
		if got := tagFor(tool); got != want {
			t.Errorf("tagFor(%s) = %s, want %s", tool, got, want)
		}
	}
}

func TestGenerateOpenAPI_Servers(t *testing.T) {
	server := newTestServer(t)
	data, err := GenerateOpenAPI(server.mcpServer, "http://localhost:8090")
	if err != nil {
		t.Fatalf("GenerateOpenAPI: %v", err)
	}
	var doc OpenAPISpec
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(doc.Servers) != 1 || doc.Servers[0].URL != "http://localhost:8090" {
		t.Errorf("servers = %v", doc.Servers)
	}
}

func TestHasProperties(t *testing.T) {
	cases := []struct {
		name   string
		schema any
		want   bool
	}{
		{"nil", nil, false},
		{"no properties", map[string]any{"type": "object"}, false},
		{"empty properties", map[string]any{"properties": map[string]any{}}, false},
		{"one property", map[string]any{"properties": map[string]any{"content": map[string]any{}}}, true},
		{"nil generated schema", (*schema.Schema)(nil), false},
		{"generated without fields", &schema.Schema{Type: "object"}, false},
		{"generated with field", &schema.Schema{Type: "object", Properties: map[string]*schema.Schema{"content": {Type: "string"}}}, true},
	}
	for _, tc := range cases {
		if got := hasProperties(tc.schema); got != tc.want {
			t.Errorf("%s: hasProperties = %v, want %v", tc.name, got, tc.want)
		}
	}
}
