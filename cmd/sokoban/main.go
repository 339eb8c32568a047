// sokoban is a terminal Sokoban with level packs, personal records and
// remote play over SSH.
//
// Usage:
//
//	sokoban list              - List levels of every pack
//	sokoban play [level]      - Play a level (ID or number), then continue
//	sokoban menu              - Pick levels interactively
//	sokoban solve [level]     - Verify the known solutions headlessly
//	sokoban records           - Show personal bests
//	sokoban serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default from config: 30)
//	--db <path>         - Set database path (default: ~/.sokoban/records.db)
//	--config <path>     - Use a custom config file
//	--levels <dir>      - Load level packs from a directory
//	--speed <preset>    - Motion speed: slow, normal, fast, instant
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/config"
)

var (
	// Global flags
	flagFPS      int
	flagDBPath   string
	flagConfig   string
	flagLevels   string
	flagSpeed    string
	flagLogLevel string
	flagDebug    bool

	// Set by the root command before any subcommand runs.
	appConfig config.SokobanConfig
	logger    *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sokoban",
	Short: "Sokoban - push blocks onto goals in your terminal",
	Long: `Sokoban is a terminal puzzle game: walk the warehouse keeper around
and push every block onto a goal square.

Available commands:
  list     - Show all levels
  play     - Play a level directly
  menu     - Interactive level picker
  solve    - Verify known solutions without a terminal UI
  records  - View personal bests
  serve    - Start SSH server for remote play

Examples:
  sokoban list
  sokoban play basics-002
  sokoban menu --speed fast
  sokoban solve --levels ./packs
  sokoban serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to records database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Directory with .txt/.sok level packs")
	rootCmd.PersistentFlags().StringVar(&flagSpeed, "speed", "", "Motion speed: slow, normal, fast, instant")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Use the debug velocity")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads the configuration, applies flag overrides and creates the
// logger.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "sokoban",
		Level:           level,
	})

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	if flagFPS > 0 {
		cfg.Play.TickRate = flagFPS
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLevels != "" {
		cfg.Play.LevelsDir = flagLevels
	}
	if flagDebug {
		cfg.Play.Debug = true
	}
	if err := config.ApplySpeedPreset(&cfg, config.SpeedPreset(flagSpeed)); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	appConfig = cfg
	logger.Debug("configuration loaded",
		"tick_rate", cfg.Play.TickRate,
		"velocity", cfg.EffectiveVelocity(),
		"levels", cfg.Play.LevelsDir,
		"db", cfg.Storage.DBPath,
	)
	return nil
}
