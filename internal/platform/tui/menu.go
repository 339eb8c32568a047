package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

// Menu styles.
var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	menuCursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	menuDoneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	menuDimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	menuErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	menuPackHeadStyle = lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("6"))
)

// menuChrome is the number of lines around the level list.
const menuChrome = 8

// MenuItem is one selectable level in the picker.
type MenuItem struct {
	Level levels.Level
	Done  bool
	Best  *storage.BestEntry
}

// MenuModel is the Bubble Tea model for the level picker.
type MenuModel struct {
	items       []MenuItem
	cursor      int
	offset      int
	width       int
	height      int
	store       *storage.Store
	player      string
	config      core.RuntimeConfig
	keyMapper   *KeyMapper
	loadErr     error
	quitting    bool
	selected    *MenuItem
	openRecords bool
}

// NewMenuModel creates a level picker. Completion marks and personal
// bests come from store when it is not nil.
func NewMenuModel(all []levels.Level, store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		items:     make([]MenuItem, 0, len(all)),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}

	bests := map[string]storage.BestEntry{}
	if store != nil {
		entries, err := store.BestAll()
		if err != nil {
			m.loadErr = err
		}
		for _, b := range entries {
			bests[b.LevelID] = b
		}
	}

	for _, lvl := range all {
		item := MenuItem{Level: lvl}
		if b, ok := bests[lvl.ID]; ok {
			item.Done = true
			item.Best = &b
		}
		m.items = append(m.items, item)
	}

	m.cursor = m.firstUnsolved()
	m.scrollToCursor()
	return m
}

// WithPlayer returns a copy of the menu greeting player.
func (m MenuModel) WithPlayer(player string) MenuModel {
	m.player = player
	return m
}

// firstUnsolved returns the index of the first level without a record.
func (m MenuModel) firstUnsolved() int {
	for i, item := range m.items {
		if !item.Done {
			return i
		}
	}
	return 0
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.scrollToCursor()
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		m.moveCursor(-1)

	case MenuActionDown:
		m.moveCursor(1)

	case MenuActionPageUp:
		m.moveCursor(-m.pageSize())

	case MenuActionPageDown:
		m.moveCursor(m.pageSize())

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionRecords:
		m.openRecords = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *MenuModel) moveCursor(delta int) {
	if len(m.items) == 0 {
		return
	}
	m.cursor = core.Clamp(m.cursor+delta, 0, len(m.items)-1)
	m.scrollToCursor()
}

// pageSize returns how many levels fit on screen.
func (m MenuModel) pageSize() int {
	return max(m.height-menuChrome, 3)
}

// scrollToCursor keeps the cursor inside the visible window.
func (m *MenuModel) scrollToCursor() {
	page := m.pageSize()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+page {
		m.offset = m.cursor - page + 1
	}
	m.offset = core.Clamp(m.offset, 0, max(len(m.items)-page, 0))
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("S O K O B A N"), 13, m.width))
	b.WriteString("\n\n")

	solved := 0
	for _, item := range m.items {
		if item.Done {
			solved++
		}
	}
	subtitle := fmt.Sprintf("Select a level  (%d/%d solved)", solved, len(m.items))
	if m.player != "" {
		subtitle = fmt.Sprintf("%s: %d/%d solved", m.player, solved, len(m.items))
	}
	b.WriteString(centerText(subtitle, len(subtitle), m.width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText(menuErrorStyle.Render("No levels found"), 15, m.width))
		b.WriteString("\n")
	}

	end := min(m.offset+m.pageSize(), len(m.items))
	pack := ""
	for i := m.offset; i < end; i++ {
		item := m.items[i]
		if item.Level.Pack != pack {
			pack = item.Level.Pack
			b.WriteString("  ")
			b.WriteString(menuPackHeadStyle.Render(pack))
			b.WriteString("\n")
		}
		b.WriteString(m.renderItem(i, item))
		b.WriteString("\n")
	}

	if m.loadErr != nil {
		b.WriteString(menuErrorStyle.Render("  records unavailable: " + m.loadErr.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  PgUp/PgDn: Page  |  Enter: Play  |  Tab: Records  |  Q: Quit"
	b.WriteString(menuDimStyle.Render(centerText(controls, len(controls), m.width)))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) renderItem(i int, item MenuItem) string {
	cursor := "    "
	if i == m.cursor {
		cursor = menuCursorStyle.Render("  > ")
	}

	mark := menuDimStyle.Render("[ ]")
	if item.Done {
		mark = menuDoneStyle.Render("[x]")
	}

	line := fmt.Sprintf("%s%s %3d. %-24s", cursor, mark, item.Level.Index, item.Level.Title())
	if item.Best != nil {
		line += menuDimStyle.Render(fmt.Sprintf(" best %d moves, %s", item.Best.Moves, formatDuration(item.Best.Elapsed)))
	}
	return line
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsRecords returns true if user requested the records table.
func (m MenuModel) WantsRecords() bool {
	return m.openRecords
}

// Cursor returns the index of the highlighted level.
func (m MenuModel) Cursor() int {
	return m.cursor
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text whose visible width is textW within width.
func centerText(text string, textW, width int) string {
	if textW >= width {
		return text
	}
	padding := (width - textW) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	LevelID      string
	Config       core.RuntimeConfig
	WantsRecords bool
	Quit         bool
}

// RunMenu runs the level picker and returns the selection result.
func RunMenu(all []levels.Level, store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(all, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
	}

	if m.WantsRecords() {
		result.WantsRecords = true
		return result, nil
	}

	if m.IsQuitting() {
		result.Quit = true
		return result, nil
	}

	if m.Selected() != nil {
		result.LevelID = m.Selected().Level.ID
	} else {
		result.Quit = true
	}

	return result, nil
}
