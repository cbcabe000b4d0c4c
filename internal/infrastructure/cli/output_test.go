package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/felixgeelhaar/agenthub/pkg/domain/chat"
	"github.com/felixgeelhaar/agenthub/pkg/domain/planning"
)

func TestRenderMessage(t *testing.T) {
	m := chat.Message{
		ID:        3,
		Role:      chat.RoleAssistant,
		Content:   "Posso ajudar com isso.",
		CreatedAt: time.Date(2026, 1, 1, 9, 30, 0, 0, time.UTC),
		Metadata: chat.Metadata{
			Suggestions: []string{"Adicionar Slack", "Configurar RAG"},
			Actions:     []chat.Action{{ID: "act-deploy", Label: "Fazer deploy", Type: chat.ActionDeploy}},
		},
	}
	out := renderMessage(m)
	for _, want := range []string{"Assistente", "09:30", "Posso ajudar", "1 Adicionar Slack", "2 Configurar RAG", "act-deploy", "Fazer deploy"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderPlan(t *testing.T) {
	plan := planning.AgentPlan{
		Objective:      "Criar agente de cobrança",
		Tasks:          []string{"Conectar CRM", "Definir régua"},
		SuggestedTools: []string{"CRM API", "WhatsApp"},
		Memory:         &planning.MemoryConfig{Strategies: []planning.MemoryStrategy{"semantic"}, RetentionDays: 30},
		RAG:            &planning.RAGConfig{DataSources: []string{"faq.pdf"}, EmbeddingModel: "titan"},
	}
	out := renderPlan(plan, func(i int) bool { return i == 0 }, 50)
	for _, want := range []string{"Criar agente de cobrança", "Progresso: 50%", "1. ", "[ ] 2. Definir régua", "CRM API, WhatsApp", "semantic (30 dias)", "faq.pdf via titan"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}

	if got := renderPlan(plan, nil, 0); strings.Count(got, "[ ]") != 2 {
		t.Errorf("nil completion should leave every task open:\n%s", got)
	}
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := printJSON(&buf, map[string]int{"a": 1}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "{\n  \"a\": 1\n}\n" {
		t.Errorf("unexpected JSON: %q", buf.String())
	}
}

func TestRenderMarkdown(t *testing.T) {
	out := renderMarkdown("- **Framework**: LangGraph")
	if strings.HasPrefix(out, "\n") || strings.HasSuffix(out, "\n") {
		t.Errorf("surrounding blank lines should be trimmed: %q", out)
	}
	if !strings.Contains(out, "Framework") || !strings.Contains(out, "LangGraph") {
		t.Errorf("text lost in rendering: %q", out)
	}
}
