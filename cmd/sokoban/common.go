package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-sokoban/internal/config"
	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

// levelLoader returns the loader for the configured level directory.
func levelLoader() *levels.Loader {
	return levels.NewLoader(appConfig.Play.LevelsDir)
}

// warnSkipped logs the files and levels the last load left out.
func warnSkipped(loader *levels.Loader) {
	for _, err := range loader.Skipped() {
		logger.Warn("skipped", "error", err)
	}
}

// completeLevelIDs offers level IDs for the optional level argument.
func completeLevelIDs(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	// Completion bypasses the persistent pre-run hook.
	if logger == nil {
		if err := setup(cmd, args); err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
	}
	ids, err := levelLoader().ListIDs()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}

// openStore opens the records database. Failures are logged and the
// commands carry on without records.
func openStore() *storage.Store {
	store, err := storage.Open(appConfig.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open records database", "error", err)
		return nil
	}
	return store
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.TickRate = appConfig.Play.TickRate
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	return cfg
}

// tuiLogger returns a logger writing to ~/.sokoban/sokoban.log while the
// terminal UI owns the screen. The returned closer must be called.
func tuiLogger() (*log.Logger, io.Closer) {
	path := filepath.Join(config.DataDir(), "sokoban.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return log.New(io.Discard), io.NopCloser(nil)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return log.New(io.Discard), io.NopCloser(nil)
	}
	l := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "sokoban",
		Level:           logger.GetLevel(),
	})
	return l, f
}
