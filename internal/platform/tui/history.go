package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/math-snake/internal/question"
	"github.com/vovakirdan/math-snake/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 90 // Minimum width to show the totals sidebar
	sidebarWidth       = 34 // Width of the totals sidebar
	defaultHistorySize = 100
)

// RoundSource provides the rounds shown by the history browser.
// *storage.Store implements it.
type RoundSource interface {
	RecentRounds(difficulty string, limit int) ([]storage.Round, error)
	AllStats() (map[string]storage.DifficultyStats, error)
}

// historyFilter is one tab of the browser. An empty difficulty shows every round.
type historyFilter struct {
	difficulty string
	title      string
}

func historyFilters() []historyFilter {
	filters := []historyFilter{{difficulty: "", title: "All"}}
	for _, d := range question.Difficulties {
		filters = append(filters, historyFilter{difficulty: d.String(), title: d.Title()})
	}
	return filters
}

// HistoryKeyMap defines the key bindings for the history browser.
type HistoryKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextFilter key.Binding
	PrevFilter key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextFilter, k.PrevFilter, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextFilter, k.PrevFilter},
		{k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextFilter: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next difficulty"),
		),
		PrevFilter: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev difficulty"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for the round history browser.
type HistoryModel struct {
	source      RoundSource
	filters     []historyFilter
	cursor      int
	limit       int
	rounds      []storage.Round
	stats       map[string]storage.DifficultyStats
	loadErr     error
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewHistoryModel creates a history browser starting at the given
// difficulty filter ("" for all rounds). source may be nil.
func NewHistoryModel(source RoundSource, difficulty string, limit, width, height int) HistoryModel {
	if limit <= 0 {
		limit = defaultHistorySize
	}

	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		source:      source,
		filters:     historyFilters(),
		limit:       limit,
		keys:        DefaultHistoryKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	for i, f := range m.filters {
		if f.difficulty == difficulty {
			m.cursor = i
		}
	}

	m.table = m.createTable()
	m.loadStats()
	m.loadRounds()

	return m
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Level", Width: 6},
		{Title: "Expression", Width: 12},
		{Title: "Answer", Width: 7},
		{Title: "Eaten", Width: 7},
		{Title: "Result", Width: 18},
		{Title: "Moves", Width: 5},
	}

	// Give leftover width to the expression column
	tableWidth := m.width - 8
	if m.showSidebar {
		tableWidth -= sidebarWidth + 4
	}
	fixed := 0
	for i, c := range columns {
		if i != 2 {
			fixed += c.Width + 2
		}
	}
	if w := tableWidth - fixed - 2; w > columns[2].Width {
		columns[2].Width = min(w, 40)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *HistoryModel) loadStats() {
	if m.source == nil {
		return
	}
	stats, err := m.source.AllStats()
	if err != nil {
		m.loadErr = err
		return
	}
	m.stats = stats
}

// loadRounds loads the rounds for the selected filter.
func (m *HistoryModel) loadRounds() {
	m.rounds = nil
	if m.source != nil {
		rounds, err := m.source.RecentRounds(m.filters[m.cursor].difficulty, m.limit)
		if err != nil {
			m.loadErr = err
		} else {
			m.rounds = rounds
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded rounds.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.rounds))
	for i, r := range m.rounds {
		rows[i] = table.Row{
			r.CreatedAt.Local().Format("Jan 02 15:04"),
			r.Difficulty,
			r.Expression,
			fmt.Sprintf("%d", r.Answer),
			dashIfEmpty(r.Collected),
			resultLabel(r),
			fmt.Sprintf("%d", r.Ticks),
		}
	}
	m.table.SetRows(rows)

	m.table.GotoTop()
}

func resultLabel(r storage.Round) string {
	if r.Won() {
		return "won"
	}
	if r.Cause == "" {
		return "lost"
	}
	return "lost: " + strings.ReplaceAll(r.Cause, "_", " ")
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history browser.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextFilter):
			m.cursor = (m.cursor + 1) % len(m.filters)
			m.loadRounds()
			return m, nil

		case key.Matches(msg, m.keys.PrevFilter):
			m.cursor = (m.cursor + len(m.filters) - 1) % len(m.filters)
			m.loadRounds()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Filter returns the difficulty of the selected tab, "" for all.
func (m HistoryModel) Filter() string {
	return m.filters[m.cursor].difficulty
}

// Rounds returns the rounds currently listed.
func (m HistoryModel) Rounds() []storage.Round {
	return m.rounds
}

// View renders the history browser.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := fmt.Sprintf("ROUND HISTORY - %s", m.filters[m.cursor].title)
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the table with a totals sidebar.
func (m HistoryModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Totals\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, f := range m.filters {
		if f.difficulty == "" {
			continue
		}
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + f.title))
		sidebar.WriteString("\n")
		sidebar.WriteString(m.statsLine(f.difficulty))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders difficulty tabs above the table.
func (m HistoryModel) renderNarrowLayout() string {
	var b strings.Builder

	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.filters))
	for i, f := range m.filters {
		if i == m.cursor {
			tabs[i] = activeTabStyle.Render(f.title)
		} else {
			tabs[i] = tabStyle.Render(" " + f.title + " ")
		}
	}

	tabLine := strings.Join(tabs, " ")
	if lipgloss.Width(tabLine) > m.width-4 {
		tabLine = fmt.Sprintf("< %s >", m.filters[m.cursor].title)
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n")
	if d := m.filters[m.cursor].difficulty; d != "" {
		b.WriteString(centerText(m.statsLine(d), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(tableStyle.Render(m.renderTableContent()))

	return b.String()
}

// statsLine summarizes one difficulty.
func (m HistoryModel) statsLine(difficulty string) string {
	st, ok := m.stats[difficulty]
	if !ok || st.Played == 0 {
		return "  no rounds"
	}
	return fmt.Sprintf("  %d played, %.0f%% won, %.0f moves", st.Played, st.WinRate()*100, st.AvgTicks)
}

// renderTableContent renders the table or an empty message.
func (m HistoryModel) renderTableContent() string {
	if len(m.rounds) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		msg := "No rounds recorded yet.\nPlay a round to start your history!"
		if m.loadErr != nil {
			msg = "Could not load history:\n" + m.loadErr.Error()
		}
		return emptyStyle.Render(msg)
	}

	return m.table.View()
}

// centerText centers s within width columns.
func centerText(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", (width-w)/2) + s
}

// RunHistory runs the history browser until the player leaves.
func RunHistory(source RoundSource, difficulty string, limit, width, height int) error {
	model := NewHistoryModel(source, difficulty, limit, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
