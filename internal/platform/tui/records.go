package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

// Records layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show pack list sidebar
	sidebarWidth       = 20 // Width of pack list sidebar
	recentRuns         = 3  // Runs listed under the table
)

// RecordsKeyMap defines the key bindings for the records screen.
type RecordsKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Back     key.Binding
	Quit     key.Binding
	NextPack key.Binding
	PrevPack key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RecordsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextPack, k.PrevPack, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k RecordsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPack, k.PrevPack},
		{k.Back, k.Quit},
	}
}

// DefaultRecordsKeyMap returns default key bindings.
func DefaultRecordsKeyMap() RecordsKeyMap {
	return RecordsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev pack"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next pack"),
		),
		NextPack: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next pack"),
		),
		PrevPack: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev pack"),
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

// RecordsModel is the Bubble Tea model for the personal records screen.
// It lists every level of a pack with its best result.
type RecordsModel struct {
	packs       []*levels.Pack
	packCursor  int
	store       *storage.Store
	bests       map[string]storage.BestEntry
	stats       *storage.Stats
	recent      []storage.Result
	table       table.Model
	help        help.Model
	keys        RecordsKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewRecordsModel creates a records screen for the given packs.
func NewRecordsModel(packs []*levels.Pack, store *storage.Store, width, height int) RecordsModel {
	h := help.New()
	h.ShowAll = false

	m := RecordsModel{
		packs:       packs,
		store:       store,
		bests:       map[string]storage.BestEntry{},
		keys:        DefaultRecordsKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.loadRecords()
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *RecordsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Level", Width: 18},
		{Title: "Moves", Width: 6},
		{Title: "Time", Width: 7},
		{Title: "Date", Width: 12},
	}

	tableWidth := m.width - 4
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}
	if extra := tableWidth - 57; extra > 0 {
		columns[1].Width += min(extra, 14)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-12, 3)),
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

// loadRecords reads every personal best and the overall statistics.
func (m *RecordsModel) loadRecords() {
	if m.store == nil {
		return
	}

	if entries, err := m.store.BestAll(); err == nil {
		for _, b := range entries {
			m.bests[b.LevelID] = b
		}
	}
	if stats, err := m.store.Stats(); err == nil {
		m.stats = stats
	}
}

// currentPack returns the selected pack, or nil when there are none.
func (m RecordsModel) currentPack() *levels.Pack {
	if len(m.packs) == 0 {
		return nil
	}
	return m.packs[m.packCursor]
}

// updateTableRows fills the table with the levels of the current pack.
func (m *RecordsModel) updateTableRows() {
	pack := m.currentPack()
	if pack == nil {
		m.table.SetRows(nil)
		return
	}

	rows := make([]table.Row, len(pack.Levels))
	for i := range pack.Levels {
		lvl := &pack.Levels[i]
		row := table.Row{fmt.Sprintf("%d", lvl.Index), lvl.Title(), "-", "-", "-"}
		if b, ok := m.bests[lvl.ID]; ok {
			row[2] = fmt.Sprintf("%d", b.Moves)
			row[3] = formatDuration(b.Elapsed)
			row[4] = b.UpdatedAt.Format("Jan 02 15:04")
		}
		rows[i] = row
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
	m.loadRecent()
}

// loadRecent loads the latest runs of the highlighted level.
func (m *RecordsModel) loadRecent() {
	m.recent = nil
	pack := m.currentPack()
	if m.store == nil || pack == nil || len(pack.Levels) == 0 {
		return
	}

	i := m.table.Cursor()
	if i < 0 || i >= len(pack.Levels) {
		return
	}
	if results, err := m.store.RecentResults(pack.Levels[i].ID, recentRuns); err == nil {
		m.recent = results
	}
}

func (m *RecordsModel) switchPack(delta int) {
	if len(m.packs) == 0 {
		return
	}
	m.packCursor = (m.packCursor + delta + len(m.packs)) % len(m.packs)
	m.updateTableRows()
}

// Init initializes the records model.
func (m RecordsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the records screen.
func (m RecordsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextPack), key.Matches(msg, m.keys.Right):
			m.switchPack(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevPack), key.Matches(msg, m.keys.Left):
			m.switchPack(-1)
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			m.loadRecent()
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.updateTableRows()
		m.table.SetCursor(cursor)
		m.loadRecent()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the records screen.
func (m RecordsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "RECORDS"
	if pack := m.currentPack(); pack != nil {
		title = fmt.Sprintf("RECORDS - %s", packTitle(pack))
	}

	b.WriteString(titleStyle.Render(centerText(title, len(title), m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	if line := m.recentLine(); line != "" {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(line))
	}
	if m.stats != nil && m.stats.Runs > 0 {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(fmt.Sprintf("%d runs, %d levels solved, %d moves, %s played",
			m.stats.Runs, m.stats.LevelsSolved, m.stats.TotalMoves, formatDuration(m.stats.TotalTime))))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// recentLine summarizes the latest runs of the highlighted level.
func (m RecordsModel) recentLine() string {
	if len(m.recent) == 0 {
		return ""
	}
	parts := make([]string, len(m.recent))
	for i, r := range m.recent {
		parts[i] = fmt.Sprintf("%d moves/%s", r.Moves, formatDuration(r.Elapsed))
	}
	return "Recent: " + strings.Join(parts, ", ")
}

// renderWideLayout renders the records with a sidebar for pack selection.
func (m RecordsModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Packs\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, p := range m.packs {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.packCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		name := packTitle(p)
		maxLen := sidebarWidth - 6
		if len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders the records with pack tabs above the table.
func (m RecordsModel) renderNarrowLayout() string {
	var b strings.Builder

	if pack := m.currentPack(); pack != nil {
		tabLine := fmt.Sprintf("< %s >", packTitle(pack))
		b.WriteString(centerText(tabLine, len(tabLine), m.width))
		b.WriteString("\n\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(tableStyle.Render(m.renderTableContent()))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m RecordsModel) renderTableContent() string {
	if len(m.table.Rows()) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No levels loaded.")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m RecordsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RecordsModel) IsQuitting() bool {
	return m.quitting
}

func packTitle(p *levels.Pack) string {
	if p.Title != "" {
		return p.Title
	}
	return p.Name
}

// formatDuration renders d as m:ss.
func formatDuration(d time.Duration) string {
	secs := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// RunRecords runs the records screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunRecords(packs []*levels.Pack, store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewRecordsModel(packs, store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(RecordsModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
