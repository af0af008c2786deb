// Package tui provides a Bubble Tea TUI for browsing interception logs.
package tui

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fakeyudi/cladetrace/internal/cmds"
)

// ── Styles ────────────

var (
	// Title bar at the very top
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	// Active tab: bright, underlined
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	// Inactive tab: muted
	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Background(lipgloss.Color("235")).
				Padding(0, 1)

	// Separator between tabs
	tabSepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")).
			Background(lipgloss.Color("235"))

	// Section heading inside a tab
	sectionHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	// Key=value label
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	idStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("178"))

	toolStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)

	// Selected row in the Commands list
	selectedRowStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("237"))
)

// ── Tab definitions ─────────────────

type tabID int

const (
	tabSummary tabID = iota
	tabCommands
	tabTools
	tabCount
)

var tabNames = [tabCount]string{"Summary", "Commands", "Tools"}

// ── Model ────────────────────

// Model is the root Bubble Tea model for the TUI.
type Model struct {
	commands  []cmds.Command
	filename  string
	activeTab tabID
	viewports [tabCount]viewport.Model
	width     int
	height    int
	ready     bool
	// Commands tab: cursor position and expanded set
	cmdCursor   int
	expandedCmd map[int]bool
}

// New creates a new TUI model for the given records and source filename.
func New(commands []cmds.Command, filename string) Model {
	return Model{
		commands:    commands,
		filename:    filepath.Base(filename),
		expandedCmd: make(map[int]bool),
	}
}

// Run starts the TUI in the alternate screen and blocks until the user quits.
func Run(commands []cmds.Command, filename string) error {
	p := tea.NewProgram(New(commands, filename), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// ── Bubble Tea interface ───────────────

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab", "l", "right":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab", "h", "left":
			m.activeTab = (m.activeTab - 1 + tabCount) % tabCount
		case "1", "2", "3":
			m.activeTab = tabID(msg.String()[0] - '1')
		case "up", "k":
			if m.activeTab == tabCommands && m.cmdCursor > 0 {
				m.cmdCursor--
				m.rebuildCommandsViewport()
				return m, nil
			}
		case "down", "j":
			if m.activeTab == tabCommands && m.cmdCursor < len(m.commands)-1 {
				m.cmdCursor++
				m.rebuildCommandsViewport()
				return m, nil
			}
		case "enter", " ":
			if m.activeTab == tabCommands && len(m.commands) > 0 {
				if m.expandedCmd[m.cmdCursor] {
					delete(m.expandedCmd, m.cmdCursor)
				} else {
					m.expandedCmd[m.cmdCursor] = true
				}
				m.rebuildCommandsViewport()
				return m, nil
			}
		}
		var cmd tea.Cmd
		m.viewports[m.activeTab], cmd = m.viewports[m.activeTab].Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.initViewports()
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	if !m.ready {
		return "Loading…"
	}

	title := titleStyle.Width(m.width).Render("  cladetrace  " + m.filename)

	var tabParts []string
	for i := tabID(0); i < tabCount; i++ {
		label := fmt.Sprintf(" %d %s ", i+1, tabNames[i])
		if i == m.activeTab {
			tabParts = append(tabParts, activeTabStyle.Render(label))
		} else {
			tabParts = append(tabParts, inactiveTabStyle.Render(label))
		}
		if i < tabCount-1 {
			tabParts = append(tabParts, tabSepStyle.Render("│"))
		}
	}
	tabRow := lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Width(m.width).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, tabParts...))

	content := m.viewports[m.activeTab].View()

	hint := "  ←/→ tab  ↑/↓ scroll  1-3 jump  q quit"
	if m.activeTab == tabCommands {
		hint = "  ←/→ tab  ↑/↓ select  enter expand/collapse  q quit"
	}
	pct := fmt.Sprintf("%3.0f%%", m.viewports[m.activeTab].ScrollPercent()*100)
	pad := m.width - lipgloss.Width(hint) - len(pct) - 2
	if pad < 1 {
		pad = 1
	}
	statusBar := statusBarStyle.Width(m.width).Render(
		hint + strings.Repeat(" ", pad) + pct,
	)

	return lipgloss.JoinVertical(lipgloss.Left, title, tabRow, content, statusBar)
}

// ── Viewport management ───────────────────────────────────────────────────────

func (m *Model) initViewports() {
	// title(1) + tabRow(1) + statusBar(1) = 3 fixed rows
	vpHeight := m.height - 3
	if vpHeight < 1 {
		vpHeight = 1
	}
	for i := tabID(0); i < tabCount; i++ {
		vp := viewport.New(m.width, vpHeight)
		vp.SetContent(m.renderTab(i))
		m.viewports[i] = vp
	}
}

func (m *Model) rebuildCommandsViewport() {
	m.viewports[tabCommands].SetContent(m.renderTab(tabCommands))
}

// ── Tab renderers ─────────────────────────────────────────────────────────────

func (m *Model) renderTab(t tabID) string {
	switch t {
	case tabSummary:
		return m.renderSummary()
	case tabCommands:
		return m.renderCommands()
	case tabTools:
		return m.renderTools()
	}
	return ""
}

func heading(s string) string {
	return "\n" + sectionHeader.Render("  "+s) + "\n\n"
}

func (m *Model) renderSummary() string {
	var sb strings.Builder
	sb.WriteString(heading("Log Summary"))

	row := func(label, value string) {
		sb.WriteString(labelStyle.Render(fmt.Sprintf("  %-12s", label)) + "  " + value + "\n")
	}
	row("Log:", m.filename)
	row("Records:", fmt.Sprintf("%d", len(m.commands)))
	row("Tools:", fmt.Sprintf("%d distinct", len(m.toolCounts())))

	dirs := map[string]struct{}{}
	for _, c := range m.commands {
		dirs[c.CWD] = struct{}{}
	}
	row("Work dirs:", fmt.Sprintf("%d distinct", len(dirs)))
	return sb.String()
}

func (m *Model) renderCommands() string {
	var sb strings.Builder
	sb.WriteString(heading(fmt.Sprintf("Commands (%d)", len(m.commands))))
	if len(m.commands) == 0 {
		sb.WriteString(dimStyle.Render("  (none)") + "\n")
		return sb.String()
	}
	for i, c := range m.commands {
		toggle := dimStyle.Render("  ▶ ")
		if m.expandedCmd[i] {
			toggle = dimStyle.Render("  ▼ ")
		}
		line := toggle + idStyle.Render(fmt.Sprintf("%4d", c.ID)) + "  " +
			toolStyle.Render(filepath.Base(c.Path)) + "  " +
			dimStyle.Render(shorten(strings.Join(c.Args, " "), m.width-20))
		if i == m.cmdCursor {
			line = selectedRowStyle.Render(line)
		}
		sb.WriteString(line + "\n")

		if m.expandedCmd[i] {
			sb.WriteString(labelStyle.Render("        path:") + " " + c.Path + "\n")
			sb.WriteString(labelStyle.Render("        cwd: ") + " " + c.CWD + "\n")
			for j, arg := range c.Args {
				sb.WriteString(dimStyle.Render(fmt.Sprintf("        argv[%d]:", j)) + " " + arg + "\n")
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (m *Model) renderTools() string {
	counts := m.toolCounts()
	var sb strings.Builder
	sb.WriteString(heading(fmt.Sprintf("Tools (%d)", len(counts))))
	if len(counts) == 0 {
		sb.WriteString(dimStyle.Render("  (none)") + "\n")
		return sb.String()
	}

	tools := make([]string, 0, len(counts))
	for tool := range counts {
		tools = append(tools, tool)
	}
	sort.Slice(tools, func(i, j int) bool {
		if counts[tools[i]] != counts[tools[j]] {
			return counts[tools[i]] > counts[tools[j]]
		}
		return tools[i] < tools[j]
	})

	for _, tool := range tools {
		sb.WriteString(fmt.Sprintf("  %s %s\n",
			idStyle.Render(fmt.Sprintf("%5d×", counts[tool])),
			toolStyle.Render(tool)))
	}
	return sb.String()
}

// toolCounts groups records by executable basename.
func (m *Model) toolCounts() map[string]int {
	counts := make(map[string]int)
	for _, c := range m.commands {
		counts[filepath.Base(c.Path)]++
	}
	return counts
}

func shorten(s string, max int) string {
	if max < 8 {
		max = 8
	}
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
