package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing at the given level (ID or number from 'sokoban list').
Without an argument play starts at the first level.
Solving a level and pressing Enter continues with the next one.

Controls:
  Arrows/WASD/HJKL - Move
  U/Backspace      - Undo the last move
  R                - Restart the level
  N / [            - Next / previous level
  P                - Pause
  Ctrl+S           - Save a screenshot
  Esc/B, Q         - Quit

Examples:
  sokoban play
  sokoban play 3
  sokoban play basics-004 --speed instant`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeLevelIDs,
	RunE:              runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	loader := levelLoader()
	all, err := loader.Levels()
	if err != nil {
		return err
	}
	warnSkipped(loader)

	game := sokoban.New(all, appConfig.EffectiveVelocity())
	if len(args) == 1 {
		lvl, err := loader.Find(args[0])
		if err != nil {
			return fmt.Errorf("%w (run 'sokoban list' to see available levels)", err)
		}
		if err := game.SelectLevel(lvl.ID); err != nil {
			return err
		}
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	tuiLog, closer := tuiLogger()
	defer closer.Close()

	if _, err := tui.Run(game, store, runtimeConfig(), tuiLog); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
