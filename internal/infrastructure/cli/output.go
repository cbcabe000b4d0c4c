package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/agenthub/pkg/domain/chat"
	"github.com/felixgeelhaar/agenthub/pkg/domain/planning"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	userStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	assistantStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	systemStyle    = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	doneStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	chipStyle      = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var (
	mdOnce     sync.Once
	mdRenderer *glamour.TermRenderer
)

// renderMarkdown renders assistant text for the terminal. Wrapping is left
// to the caller; on any renderer failure the raw text is returned.
func renderMarkdown(text string) string {
	mdOnce.Do(func() {
		mdRenderer, _ = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(0),
		)
	})
	if mdRenderer == nil {
		return text
	}
	out, err := mdRenderer.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}

func roleLabel(r chat.Role) string {
	switch r {
	case chat.RoleUser:
		return userStyle.Render("Você")
	case chat.RoleAssistant:
		return assistantStyle.Render("Assistente")
	default:
		return systemStyle.Render("Sistema")
	}
}

// renderMessage formats one message with its suggestions and actions.
func renderMessage(m chat.Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", roleLabel(m.Role), mutedStyle.Render(m.CreatedAt.Format("15:04")))
	switch m.Role {
	case chat.RoleSystem:
		b.WriteString(systemStyle.Render(m.Content))
	case chat.RoleAssistant:
		b.WriteString(renderMarkdown(m.Content))
	default:
		b.WriteString(m.Content)
	}
	b.WriteString("\n")
	if len(m.Metadata.Suggestions) > 0 {
		chips := make([]string, len(m.Metadata.Suggestions))
		for i, s := range m.Metadata.Suggestions {
			chips[i] = chipStyle.Render(fmt.Sprintf("%d %s", i+1, s))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(chips, " ")))
		b.WriteString("\n")
	}
	for _, a := range m.Metadata.Actions {
		fmt.Fprintf(&b, "%s %s\n", mutedStyle.Render("▶ "+a.ID), a.Label)
	}
	return b.String()
}

// renderPlan formats a plan with its checklist. completed may be nil.
func renderPlan(plan planning.AgentPlan, completed func(int) bool, percent int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Plano do Agente"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s\n", plan.Objective)
	fmt.Fprintf(&b, "%s\n\n", mutedStyle.Render(fmt.Sprintf("Progresso: %d%%", percent)))
	for i, task := range plan.Tasks {
		if completed != nil && completed(i) {
			fmt.Fprintf(&b, "%s %d. %s\n", doneStyle.Render("[x]"), i+1, mutedStyle.Render(task))
		} else {
			fmt.Fprintf(&b, "[ ] %d. %s\n", i+1, task)
		}
	}
	if len(plan.SuggestedTools) > 0 {
		fmt.Fprintf(&b, "\nFerramentas: %s\n", strings.Join(plan.SuggestedTools, ", "))
	}
	if m := plan.Memory; m != nil {
		strategies := make([]string, len(m.Strategies))
		for i, s := range m.Strategies {
			strategies[i] = string(s)
		}
		fmt.Fprintf(&b, "Memória: %s (%d dias)\n", strings.Join(strategies, ", "), m.RetentionDays)
	}
	if r := plan.RAG; r != nil {
		fmt.Fprintf(&b, "RAG: %s via %s\n", strings.Join(r.DataSources, ", "), r.EmbeddingModel)
	}
	return b.String()
}
