package sdk

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/felixgeelhaar/mcp-go/client"
)

func TestTextResult(t *testing.T) {
	got, err := textResult(&client.ToolResult{
		Content: []client.ContentItem{{Type: "text", Text: "hello"}},
	})
	if err != nil || got != "hello" {
		t.Fatalf("textResult = %q, %v", got, err)
	}

	if _, err := textResult(&client.ToolResult{}); err != ErrNoContent {
		t.Fatalf("got %v, want ErrNoContent", err)
	}
}

func TestUnmarshalText(t *testing.T) {
	r := &client.ToolResult{
		Content: []client.ContentItem{{Type: "text", Text: `{"progress":0.5,"percent":50,"done":1,"total":2}`}},
	}
	p, err := unmarshalText[Progress](r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Percent != 50 || p.Total != 2 {
		t.Fatalf("unexpected progress: %+v", p)
	}

	if _, err := unmarshalText[Progress](&client.ToolResult{}); err != ErrNoContent {
		t.Fatalf("got %v, want ErrNoContent", err)
	}
}

func TestMajorVersion(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1.0.0", "1"},
		{"2.3.4", "2"},
		{"10.0.1", "10"},
		{"3", "3"},
		{"v1.4.0", "1"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := majorVersion(tt.input); got != tt.want {
			t.Errorf("majorVersion(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestToolError(t *testing.T) {
	e := &ToolError{Tool: "chat_send", Message: "bad"}
	if !strings.Contains(e.Error(), "chat_send") || !strings.Contains(e.Error(), "bad") {
		t.Fatalf("unexpected error text: %s", e.Error())
	}
}

func findRepoRoot(t *testing.T) string {
	t.Helper()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	dir := cwd
	for i := 0; i < 10; i++ {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return cwd
}

func TestIntegrationStdioConversation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	root := findRepoRoot(t)
	tempDir := t.TempDir()

	binPath := filepath.Join(tempDir, "agenthub")
	build := exec.Command("go", "build", "-o", binPath, "./cmd/agenthub")
	build.Dir = root
	if out, err := build.CombinedOutput(); err != nil {
		t.Fatalf("build agenthub: %v\n%s", err, out)
	}

	cmd := fmt.Sprintf("cd '%s' && AGENTHUB_RESPONSE_DELAY=0s AGENTHUB_PLATFORM_DELAY=0s '%s' mcp --transport stdio", tempDir, binPath)
	transport, err := client.NewStdioTransport("bash", "-lc", cmd)
	if err != nil {
		t.Fatalf("stdio transport: %v", err)
	}
	defer transport.Close()

	c := NewClient(transport, WithTimeout(60*time.Second))
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	info, err := c.Initialize(ctx)
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if !info.Capabilities.Tools {
		t.Fatalf("expected tools capability")
	}

	res, err := c.Send(ctx, "Quero criar um agente de cobrança", true)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if res.Reply == nil || !strings.Contains(res.Reply.Content, "LangGraph") {
		t.Fatalf("unexpected reply: %+v", res.Reply)
	}

	toggled, err := c.ToggleTask(ctx, 2)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !toggled.Completed {
		t.Fatal("expected task 2 to be completed")
	}

	progress, err := c.Progress(ctx)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if progress.Done != 1 || progress.Total != 5 {
		t.Fatalf("unexpected progress: %+v", progress)
	}

	if err := c.Compatible(ctx); err != nil {
		t.Fatalf("compatible: %v", err)
	}
}
