package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
	flagMaxSessions int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Sokoban SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the level picker.
Records are kept per SSH user name in the server's database, so every
player sees their own progress. --max-sessions caps concurrent sessions
of one user (0 disables the cap).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.sokoban/host_key

Examples:
  sokoban serve                           # Listen on the configured address
  sokoban serve --ssh :2222               # Listen on port 2222
  sokoban serve --host-key ./my_host_key  # Use specific host key
  sokoban serve --levels ./packs          # Serve a custom level directory

Users can connect with:
  ssh localhost -p 23235`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (default from config)")
	serveCmd.Flags().IntVar(&flagMaxSessions, "max-sessions", -1, "Concurrent sessions per user (default from config)")
}

func runServe(_ *cobra.Command, _ []string) error {
	loader := levelLoader()
	packs, err := loader.LoadAll()
	if err != nil {
		return err
	}
	warnSkipped(loader)

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = appConfig.Server.Address
	cfg.HostKeyPath = appConfig.Server.HostKeyPath
	cfg.DBPath = appConfig.Storage.DBPath
	cfg.IdleTimeout = appConfig.Server.IdleTimeout
	cfg.MaxSessionsPerUser = appConfig.Server.MaxSessionsPerUser
	cfg.TickRate = appConfig.Play.TickRate
	cfg.Velocity = appConfig.EffectiveVelocity()
	cfg.Packs = packs

	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.IdleTimeout = flagIdleTimeout
	}
	if flagMaxSessions >= 0 {
		cfg.MaxSessionsPerUser = flagMaxSessions
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting Sokoban SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
