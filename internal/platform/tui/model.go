package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
	sokocore "github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

// statusTicks is how long a status message stays in the footer.
const statusTicks = 90

// GameModel is the Bubble Tea model for playing Sokoban.
// It persists every level completion and can hand control back to a menu.
type GameModel struct {
	game       *sokoban.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	shotDir    string

	status    string
	statusTTL int

	standalone bool // Back ends the program
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game model. store and logger may be nil.
func NewGameModel(game *sokoban.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) GameModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		shotDir:    defaultScreenshotDir(),
	}
}

// WithScreenshotDir returns a copy of the model saving screenshots to dir.
func (m GameModel) WithScreenshotDir(dir string) GameModel {
	m.shotDir = dir
	return m
}

// Init starts the level and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.game.Resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		path, err := m.saveScreenshot()
		if err != nil {
			m.logger.Warn("screenshot failed", "error", err)
			m.setStatus("Screenshot failed")
		} else {
			m.setStatus("Saved " + path)
		}
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
		return m, nil
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleTick runs one simulation step.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if result.Completed != nil {
		m.recordCompletion(*result.Completed)
	}

	if m.statusTTL > 0 {
		m.statusTTL--
		if m.statusTTL == 0 {
			m.status = ""
		}
	}

	return m, tickCmd(m.config.TickRate)
}

// recordCompletion stores a solved level and reports a new personal best.
func (m *GameModel) recordCompletion(c core.Completion) {
	m.logger.Info("level solved", "level", c.LevelID, "moves", c.Moves, "elapsed", c.Elapsed)

	if m.store == nil {
		return
	}

	res, improved, err := m.store.Complete(c.LevelID, c.Moves, c.Elapsed)
	if err != nil {
		m.logger.Error("could not save result", "level", c.LevelID, "error", err)
		m.setStatus("Could not save result")
		return
	}

	m.logger.Debug("result saved", "run", res.RunID, "best", improved, "board", fmt.Sprintf("%016x", m.game.Snapshot().Hash()))
	if improved {
		m.setStatus(fmt.Sprintf("New personal best: %d moves", c.Moves))
	}
}

func (m *GameModel) setStatus(text string) {
	m.status = text
	m.statusTTL = statusTicks
}

// saveScreenshot writes the board in level notation followed by the
// rendered screen. Returns the file path.
func (m *GameModel) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	if err := os.MkdirAll(m.shotDir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create screenshot directory: %w", err)
	}

	var b strings.Builder
	if lv := m.game.Level(); lv != nil {
		cur := m.game.Current()
		fmt.Fprintf(&b, "; %s (%s)\n", cur.Title(), cur.ID)
		b.WriteString(sokocore.RenderASCII(lv))
		b.WriteString("\n\n")
	}
	b.WriteString(m.screen.String())

	timestamp := time.Now().Format("20060102_150405")
	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	if id := m.gameState.LevelID; id != "" {
		name = fmt.Sprintf("%s_%s_%s.txt", m.game.ID(), id, timestamp)
	}
	path := filepath.Join(m.shotDir, name)

	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		return "", fmt.Errorf("cannot write screenshot: %w", err)
	}
	return path, nil
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.status != "" && m.screen.Height() > 0 {
		y := m.screen.Height() - 1
		m.screen.DrawHLine(0, y, m.screen.Width(), ' ', core.ColorDefault)
		m.screen.DrawTextWithColor(0, y, " "+m.status, core.ColorBrightYellow)
	}
	return RenderScreen(m.screen)
}

// Status returns the footer message currently shown, if any.
func (m GameModel) Status() string {
	return m.status
}

// State returns the game state after the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

func defaultScreenshotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".sokoban", "screenshots")
	}
	return filepath.Join(home, ".sokoban", "screenshots")
}

// Run plays the game in the current terminal until the user quits or
// goes back. Returns true if the user asked for the menu.
func Run(game *sokoban.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (bool, error) {
	model := NewGameModel(game, store, cfg, logger)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(GameModel)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
