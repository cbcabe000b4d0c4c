package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/agenthub/pkg/platform"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive TUI over agents, tools, memory and sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		if os.Getenv("AGENTHUB_SKIP_TUI") == "true" {
			return nil
		}
		logOut, closeLog, err := openChatLog("")
		if err != nil {
			return err
		}
		defer closeLog()
		app, err := loadApp(cmd, logOut)
		if err != nil {
			return err
		}
		p := tea.NewProgram(newDashboardModel(cmd.Context(), app.Platform))
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("dashboard run failed: %w", err)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(dashboardCmd)
}

var baseStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("240"))

var (
	activeTabStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#7D56F4")).Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
)

type dashboardTab int

const (
	tabAgents dashboardTab = iota
	tabTools
	tabMemory
	tabSessions
)

var tabNames = []string{"Agentes", "Ferramentas", "Memória", "Sessões"}

// dashboardData is one load of everything the tabs show.
type dashboardData struct {
	agents   []platform.Agent
	tools    []platform.GatewayTool
	memories []platform.MemoryResource
	sessions []platform.Observation
}

type dashboardLoadedMsg struct {
	data dashboardData
	err  error
}

type dashboardModel struct {
	ctx     context.Context
	client  *platform.Client
	table   table.Model
	spinner spinner.Model
	tab     dashboardTab
	data    dashboardData
	loading bool
	err     error
}

func newDashboardModel(ctx context.Context, client *platform.Client) dashboardModel {
	t := table.New(table.WithFocused(true), table.WithHeight(10))
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229"))
	t.SetStyles(s)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return dashboardModel{ctx: ctx, client: client, table: t, spinner: sp, loading: true}
}

// loadDashboard fetches every tab. The platform calls run one after the
// other, each paying the configured latency.
func loadDashboard(ctx context.Context, c *platform.Client) tea.Cmd {
	return func() tea.Msg {
		var d dashboardData
		agents, err := c.Agents.List(ctx)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		d.agents = agents.Data
		tools, err := c.Gateway.ListTools(ctx)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		d.tools = tools.Data
		mems, err := c.Memory.List(ctx)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		d.memories = mems.Data
		sessions, err := c.Observability.ListSessions(ctx, "")
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		d.sessions = sessions.Data
		return dashboardLoadedMsg{data: d}
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadDashboard(m.ctx, m.client))
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.data = msg.data
		m.showTab()
		return m, nil
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab", "right", "l":
			m.tab = (m.tab + 1) % dashboardTab(len(tabNames))
			m.showTab()
			return m, nil
		case "shift+tab", "left", "h":
			m.tab = (m.tab + dashboardTab(len(tabNames)) - 1) % dashboardTab(len(tabNames))
			m.showTab()
			return m, nil
		case "r":
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, loadDashboard(m.ctx, m.client))
		}
	}
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// showTab swaps the table columns and rows for the current tab.
func (m *dashboardModel) showTab() {
	var cols []table.Column
	var rows []table.Row
	switch m.tab {
	case tabAgents:
		cols = []table.Column{{Title: "ID", Width: 14}, {Title: "Nome", Width: 24}, {Title: "Framework", Width: 10}, {Title: "Modelo", Width: 28}, {Title: "Status", Width: 10}}
		for _, a := range m.data.agents {
			rows = append(rows, table.Row{a.ID, a.Name, string(a.Framework), a.Model, a.Status})
		}
	case tabTools:
		cols = []table.Column{{Title: "ID", Width: 14}, {Title: "Nome", Width: 24}, {Title: "Tipo", Width: 8}, {Title: "Scopes", Width: 30}, {Title: "Status", Width: 10}}
		for _, t := range m.data.tools {
			rows = append(rows, table.Row{t.ID, t.Name, string(t.Type), strings.Join(t.Scopes, " "), t.Status})
		}
	case tabMemory:
		cols = []table.Column{{Title: "ID", Width: 14}, {Title: "Nome", Width: 24}, {Title: "Estratégias", Width: 30}, {Title: "Dias", Width: 6}, {Title: "Status", Width: 10}}
		for _, r := range m.data.memories {
			rows = append(rows, table.Row{r.ID, r.Name, strings.Join(r.Strategies, ", "), strconv.Itoa(r.Retention.Days), r.Status})
		}
	case tabSessions:
		cols = []table.Column{{Title: "ID", Width: 14}, {Title: "Sessão", Width: 16}, {Title: "Passos", Width: 7}, {Title: "Tokens", Width: 8}, {Title: "Custo", Width: 10}, {Title: "Latência", Width: 10}}
		for _, o := range m.data.sessions {
			rows = append(rows, table.Row{
				o.ID, o.SessionID, strconv.Itoa(len(o.Steps)), strconv.Itoa(o.Metrics.TotalTokens),
				fmt.Sprintf("$%.4f", o.Metrics.Cost), fmt.Sprintf("%dms", o.Metrics.LatencyMS),
			})
		}
	}
	// Rows must shrink before columns or the table indexes past the new width.
	m.table.SetRows(nil)
	m.table.SetColumns(cols)
	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

func (m dashboardModel) View() string {
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		if dashboardTab(i) == m.tab {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = inactiveTabStyle.Render(name)
		}
	}

	var body string
	switch {
	case m.loading:
		body = m.spinner.View() + " Carregando dados da plataforma..."
	case m.err != nil:
		body = errorStyle.Render(fmt.Sprintf("Error loading dashboard: %v", m.err))
	default:
		body = m.table.View()
	}

	return baseStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("AgentCore"),
			lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
			"",
			body,
			mutedStyle.Render("\n[Tab] Próxima aba  [r] Recarregar  [q] Sair"),
		),
	) + "\n"
}
