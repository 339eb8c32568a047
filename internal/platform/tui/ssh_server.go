package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.sokoban/host_key.
	HostKeyPath string

	// DBPath is the path to the records database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// MaxSessionsPerUser caps concurrent sessions of one user. 0 means no cap.
	MaxSessionsPerUser int

	// TickRate and Velocity drive every session's game.
	TickRate int
	Velocity float64

	// Packs are the level packs offered to every session.
	Packs []*levels.Pack
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:            ":23235",
		DBPath:             "~/.sokoban/records.db",
		IdleTimeout:        30 * time.Minute,
		MaxSessionsPerUser: 3,
		TickRate:           30,
		Velocity:           0.25,
	}
}

// SSHServer wraps a Wish SSH server serving Sokoban sessions.
// Every SSH user plays with their own records.
type SSHServer struct {
	config   SSHServerConfig
	server   *ssh.Server
	store    *storage.Store
	logger   *log.Logger
	sessions *sessionLimiter
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "sokoban-ssh",
	})

	if len(cfg.Packs) == 0 {
		return nil, fmt.Errorf("cannot create SSH server: %w", levels.ErrNoLevels)
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open records database", "error", err)
		// Continue without storage
	}

	srv := &SSHServer{
		config:   cfg,
		store:    store,
		logger:   logger,
		sessions: newSessionLimiter(cfg.MaxSessionsPerUser),
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".sokoban", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.limitMiddleware,
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	model := s.sessionModel(sshSession.User(), pty.Window.Width, pty.Window.Height)
	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// sessionModel builds the session of one user on a w x h terminal.
func (s *SSHServer) sessionModel(user string, w, h int) SessionModel {
	player := playerName(user)
	logger := s.logger.With("player", player)

	var store *storage.Store
	if s.store != nil {
		store = s.store.ForPlayer(player)
		solved, total, err := playerProgress(store, s.config.Packs)
		if err != nil {
			logger.Warn("could not read progress", "error", err)
		} else {
			logger.Info("player progress", "solved", solved, "levels", total)
		}
	}

	return NewSessionModel(SessionOptions{
		Packs:  s.config.Packs,
		Store:  store,
		Player: player,
		Config: core.RuntimeConfig{
			ScreenW:  w,
			ScreenH:  h,
			TickRate: s.config.TickRate,
		},
		Velocity: s.config.Velocity,
		Logger:   logger,
	})
}

// playerName maps an SSH user name to the name records are kept under.
// Names are case-insensitive; an empty name plays as "guest".
func playerName(user string) string {
	name := strings.ToLower(strings.TrimSpace(user))
	if name == "" {
		return "guest"
	}
	return name
}

// playerProgress counts the offered levels the store has a record for.
func playerProgress(store *storage.Store, packs []*levels.Pack) (solved, total int, err error) {
	done, err := store.CompletedLevels()
	if err != nil {
		return 0, 0, err
	}
	for _, p := range packs {
		for _, lvl := range p.Levels {
			total++
			if done[lvl.ID] {
				solved++
			}
		}
	}
	return solved, total, nil
}

// limitMiddleware refuses sessions beyond the per-user cap.
func (s *SSHServer) limitMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		player := playerName(sshSession.User())
		if !s.sessions.acquire(player) {
			s.logger.Warn("session refused", "player", player, "limit", s.config.MaxSessionsPerUser)
			wish.Fatalf(sshSession, "%s already has %d open sessions\r\n", player, s.config.MaxSessionsPerUser)
			return
		}
		defer s.sessions.release(player)
		next(sshSession)
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
			"open", s.sessions.total(),
		)
	}
}

// sessionLimiter counts open sessions per player.
type sessionLimiter struct {
	mu    sync.Mutex
	limit int
	open  map[string]int
}

func newSessionLimiter(limit int) *sessionLimiter {
	return &sessionLimiter{limit: limit, open: make(map[string]int)}
}

// acquire registers a session of player. Returns false when the player
// is at the cap.
func (l *sessionLimiter) acquire(player string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.limit > 0 && l.open[player] >= l.limit {
		return false
	}
	l.open[player]++
	return true
}

func (l *sessionLimiter) release(player string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.open[player] <= 1 {
		delete(l.open, player)
		return
	}
	l.open[player]--
}

// total returns the number of open sessions.
func (l *sessionLimiter) total() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, c := range l.open {
		n += c
	}
	return n
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "packs", len(s.config.Packs))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
