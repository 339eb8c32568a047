package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

// sessionView is the screen a session currently shows.
type sessionView int

const (
	viewMenu sessionView = iota
	viewGame
	viewRecords
)

// SessionOptions configures a SessionModel.
type SessionOptions struct {
	Packs    []*levels.Pack
	Store    *storage.Store
	Player   string // shown in the menu when set
	Config   core.RuntimeConfig
	Velocity float64
	Logger   *log.Logger
}

// SessionModel manages the full session flow: menu -> game or records -> menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	opts      SessionOptions
	all       []levels.Level
	config    core.RuntimeConfig
	view      sessionView
	menu      MenuModel
	gameModel *GameModel
	records   *RecordsModel
	quitting  bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts SessionOptions) SessionModel {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	var all []levels.Level
	for _, p := range opts.Packs {
		all = append(all, p.Levels...)
	}

	return SessionModel{
		opts:   opts,
		all:    all,
		config: opts.Config,
		menu:   NewMenuModel(all, opts.Store, opts.Config).WithPlayer(opts.Player),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewRecords:
		return m.updateRecords(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.WantsRecords() {
		records := NewRecordsModel(m.opts.Packs, m.opts.Store, m.config.ScreenW, m.config.ScreenH)
		m.records = &records
		m.view = viewRecords
		return m, m.records.Init()
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if selected := m.menu.Selected(); selected != nil {
		game := sokoban.New(m.all, m.opts.Velocity)
		if err := game.SelectLevel(selected.Level.ID); err != nil {
			m.opts.Logger.Error("cannot select level", "level", selected.Level.ID, "error", err)
			m.menu = NewMenuModel(m.all, m.opts.Store, m.config).WithPlayer(m.opts.Player)
			return m, nil
		}

		m.config = m.menu.Config()
		gameModel := NewGameModel(game, m.opts.Store, m.config, m.opts.Logger)
		m.gameModel = &gameModel
		m.view = viewGame

		return m, m.gameModel.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.BackToMenu() {
		m.backToMenu()
		return m, m.menu.Init()
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateRecords handles updates when the records table is shown.
func (m SessionModel) updateRecords(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.records.Update(msg)
	if records, ok := newModel.(RecordsModel); ok {
		m.records = &records
	}

	if m.records.IsGoingBack() {
		m.backToMenu()
		return m, m.menu.Init()
	}

	if m.records.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// backToMenu rebuilds the menu so completion marks are current.
func (m *SessionModel) backToMenu() {
	m.view = viewMenu
	m.gameModel = nil
	m.records = nil
	m.menu = NewMenuModel(m.all, m.opts.Store, m.config).WithPlayer(m.opts.Player)
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewGame:
		if m.gameModel != nil {
			return m.gameModel.View()
		}
	case viewRecords:
		if m.records != nil {
			return m.records.View()
		}
	}

	return m.menu.View()
}
