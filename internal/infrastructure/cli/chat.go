package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/agenthub/pkg/application"
	"github.com/felixgeelhaar/agenthub/pkg/domain/chat"
	"github.com/felixgeelhaar/agenthub/pkg/domain/commands"
	"github.com/felixgeelhaar/agenthub/pkg/domain/events"
)

var chatLogFile string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the interactive chat with the plan panel",
	Long: `Open the interactive chat.

Type a message and press Enter. Start with / to browse slash commands and
Tab to complete. With an empty input, 1-9 send the suggestions of the last
reply. !<action-id> runs a one-click action. Ctrl+P focuses the plan panel,
where Space toggles a task and e edits the objective. Ctrl+L clears the chat.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if os.Getenv("AGENTHUB_SKIP_TUI") == "true" {
			return nil
		}
		logOut, closeLog, err := openChatLog(chatLogFile)
		if err != nil {
			return err
		}
		defer closeLog()

		app, err := loadApp(cmd, logOut)
		if err != nil {
			return err
		}

		ch := make(chan events.Event, 64)
		unsubscribe := app.Bus.Subscribe("tui", func(_ context.Context, ev events.Event) error {
			select {
			case ch <- ev:
			default:
			}
			return nil
		})
		defer unsubscribe()

		p := tea.NewProgram(newChatModel(cmd.Context(), app.Session, ch), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("chat run failed: %w", err)
		}
		return nil
	},
}

func init() {
	chatCmd.Flags().StringVar(&chatLogFile, "log-file", "", "Write logs to this file instead of discarding them")
	RootCmd.AddCommand(chatCmd)
}

func openChatLog(path string) (*os.File, func(), error) {
	if path == "" {
		f, err := os.Open(os.DevNull)
		if err != nil {
			return nil, nil, err
		}
		return f, func() { _ = f.Close() }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

type chatFocus int

const (
	focusInput chatFocus = iota
	focusPlan
)

type (
	sessionEventMsg events.Event
	chatErrMsg      struct{ err error }
	actionDoneMsg   struct {
		msg chat.Message
		err error
	}
)

const planPanelWidth = 44

var (
	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	focusedPanelStyle = panelStyle.BorderForeground(lipgloss.Color("205"))
	cursorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	menuStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

type chatModel struct {
	ctx       context.Context
	session   *application.Session
	events    <-chan events.Event
	input     textinput.Model
	objective textinput.Model
	spinner   spinner.Model
	viewport  viewport.Model

	focus  chatFocus
	cursor int
	width  int
	height int
	status string
	err    error
}

func newChatModel(ctx context.Context, session *application.Session, ch <-chan events.Event) chatModel {
	in := textinput.New()
	in.Placeholder = "Descreva o agente que você quer criar..."
	in.CharLimit = 2000
	in.Width = 60
	in.Focus()

	obj := textinput.New()
	obj.CharLimit = 300
	obj.Width = planPanelWidth - 4

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = assistantStyle

	vp := viewport.New(80, 20)

	m := chatModel{
		ctx:       ctx,
		session:   session,
		events:    ch,
		input:     in,
		objective: obj,
		spinner:   sp,
		viewport:  vp,
		width:     120,
		height:    30,
	}
	m.refresh()
	return m
}

func waitForEvent(ch <-chan events.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return sessionEventMsg(ev)
	}
}

func (m chatModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, waitForEvent(m.events))
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		m.refresh()
		return m, nil

	case sessionEventMsg:
		if msg.Type == events.TypeChatCleared {
			m.cursor = 0
		}
		m.refresh()
		return m, waitForEvent(m.events)

	case chatErrMsg:
		m.err = msg.err
		return m, nil

	case actionDoneMsg:
		m.err = msg.err
		m.status = ""
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.focus == focusPlan {
			return m.updatePlan(msg)
		}
		return m.updateInput(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m chatModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.input.Value() == "" {
			return m, tea.Quit
		}
		m.input.Reset()
		return m, nil
	case "ctrl+l":
		m.session.Clear(m.ctx)
		m.err = nil
		m.refresh()
		return m, nil
	case "ctrl+p":
		if _, ok := m.session.PlanView(); ok {
			m.focus = focusPlan
			m.input.Blur()
		}
		return m, nil
	case "tab":
		if matches := m.menu(); len(matches) > 0 {
			m.input.SetValue(matches[0].Name + " ")
			m.input.CursorEnd()
		}
		return m, nil
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case "enter":
		return m.submit(m.input.Value())
	}

	if m.input.Value() == "" && msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		if n, err := strconv.Atoi(string(msg.Runes)); err == nil && n > 0 {
			if s, ok := m.suggestion(n); ok {
				return m.submit(s)
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit sends text, or runs an action when text is !<action-id>.
func (m chatModel) submit(text string) (tea.Model, tea.Cmd) {
	text = strings.TrimSpace(text)
	if text == "" {
		return m, nil
	}
	m.err = nil

	if id, ok := strings.CutPrefix(text, "!"); ok {
		m.input.Reset()
		m.status = "Executando " + id + "..."
		session, ctx := m.session, m.ctx
		return m, func() tea.Msg {
			msg, err := session.ExecuteAction(ctx, id)
			return actionDoneMsg{msg: msg, err: err}
		}
	}

	if _, err := m.session.Send(m.ctx, text); err != nil {
		// Keep the text so it can be resent once the reply lands.
		m.err = err
		return m, nil
	}
	m.input.Reset()
	m.refresh()
	return m, m.spinner.Tick
}

func (m chatModel) updatePlan(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	view, ok := m.session.PlanView()
	if !ok {
		m.focus = focusInput
		return m, m.input.Focus()
	}

	if view.Editing {
		switch msg.String() {
		case "esc":
			m.err = m.session.CancelEdit()
			m.objective.Blur()
			return m, nil
		case "enter":
			if err := m.session.SetDraft(m.objective.Value()); err != nil {
				m.err = err
				return m, nil
			}
			if err := m.session.CommitDraft(); err != nil {
				m.err = err
				return m, nil
			}
			m.objective.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.objective, cmd = m.objective.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "esc", "ctrl+p":
		m.focus = focusInput
		return m, m.input.Focus()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < view.Plan.TaskCount()-1 {
			m.cursor++
		}
	case " ", "x":
		if _, err := m.session.ToggleTask(m.ctx, m.cursor); err != nil {
			m.err = err
		}
	case "e":
		if err := m.session.BeginEdit(); err != nil {
			m.err = err
			return m, nil
		}
		m.objective.SetValue(view.Objective)
		m.objective.CursorEnd()
		return m, m.objective.Focus()
	case "s":
		if _, err := m.session.SavePlan(m.ctx); err != nil {
			m.err = err
		} else {
			m.cursor = 0
		}
	}
	return m, nil
}

// menu returns the slash commands matching the input, or nil when the
// input is not a bare slash command prefix.
func (m chatModel) menu() []commands.Command {
	v := m.input.Value()
	if !commands.IsSlash(v) || strings.ContainsAny(v, " \t") {
		return nil
	}
	return commands.Filter(v)
}

// suggestion returns the nth (1-based) suggestion of the last message.
func (m chatModel) suggestion(n int) (string, bool) {
	msgs := m.session.Messages()
	if len(msgs) == 0 {
		return "", false
	}
	s := msgs[len(msgs)-1].Metadata.Suggestions
	if n > len(s) {
		return "", false
	}
	return s[n-1], true
}

func (m *chatModel) layout() {
	w := m.width
	if _, ok := m.session.PlanView(); ok {
		w -= planPanelWidth + 4
	}
	if w < 20 {
		w = 20
	}
	h := m.height - 8
	if h < 5 {
		h = 5
	}
	m.viewport.Width = w
	m.viewport.Height = h
	m.input.Width = w - 4
}

// refresh re-renders the transcript from the session.
func (m *chatModel) refresh() {
	m.layout()
	msgs := m.session.Messages()
	if len(msgs) == 0 {
		m.viewport.SetContent(mutedStyle.Render("Olá! Descreva o agente que você quer criar ou digite / para ver os comandos."))
		return
	}
	parts := make([]string, len(msgs))
	for i, msg := range msgs {
		parts[i] = lipgloss.NewStyle().Width(m.viewport.Width).Render(renderMessage(msg))
	}
	m.viewport.SetContent(strings.Join(parts, "\n"))
	m.viewport.GotoBottom()
}

func (m chatModel) View() string {
	left := []string{titleStyle.Render("Agent Hub"), m.viewport.View()}

	if m.session.Composing() {
		left = append(left, m.spinner.View()+" "+mutedStyle.Render("Assistente está digitando..."))
	} else if m.status != "" {
		left = append(left, m.spinner.View()+" "+mutedStyle.Render(m.status))
	}
	if m.err != nil {
		left = append(left, errorStyle.Render("Erro: "+m.err.Error()))
	}
	left = append(left, m.input.View())
	for _, c := range m.menu() {
		left = append(left, menuStyle.Render(fmt.Sprintf("  %-22s %s", c.Name, c.Description)))
	}
	left = append(left, mutedStyle.Render("[Enter] Enviar  [Tab] Completar  [Ctrl+P] Plano  [Ctrl+L] Limpar  [Esc] Sair"))

	chatView := lipgloss.JoinVertical(lipgloss.Left, left...)
	panel := m.planPanel()
	if panel == "" {
		return chatView + "\n"
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, chatView, " ", panel) + "\n"
}

func (m chatModel) planPanel() string {
	view, ok := m.session.PlanView()
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Plano do Agente"))
	b.WriteString("\n\n")
	if view.Editing {
		b.WriteString(m.objective.View())
	} else {
		b.WriteString(view.Objective)
		if view.Dirty {
			b.WriteString(" " + mutedStyle.Render("(não salvo, [s] salvar)"))
		}
	}
	fmt.Fprintf(&b, "\n%s\n\n", mutedStyle.Render(fmt.Sprintf("Progresso: %d%% (%d/%d)", view.Percent, len(view.Completed), view.Plan.TaskCount())))

	for i, task := range view.Plan.Tasks {
		box := "[ ]"
		text := task
		if view.IsCompleted(i) {
			box = doneStyle.Render("[x]")
			text = mutedStyle.Render(task)
		}
		prefix := "  "
		if m.focus == focusPlan && i == m.cursor {
			prefix = cursorStyle.Render("› ")
		}
		fmt.Fprintf(&b, "%s%s %s\n", prefix, box, text)
	}
	if len(view.Plan.SuggestedTools) > 0 {
		fmt.Fprintf(&b, "\nFerramentas: %s\n", strings.Join(view.Plan.SuggestedTools, ", "))
	}
	if m.focus == focusPlan {
		b.WriteString(mutedStyle.Render("\n[Espaço] Marcar  [e] Editar  [s] Salvar  [Esc] Voltar"))
	}

	style := panelStyle
	if m.focus == focusPlan {
		style = focusedPanelStyle
	}
	return style.Width(planPanelWidth).Render(b.String())
}
