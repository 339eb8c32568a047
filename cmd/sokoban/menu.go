package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick levels from an interactive menu",
	Long: `Start Sokoban in interactive menu mode.

Solved levels are marked with their personal best.
Leaving a level with Esc or B returns to the menu.

Controls:
  Up/Down/j/k   - Navigate
  PgUp/PgDn     - Page
  Enter/Space   - Play level
  Tab           - Records
  Q             - Quit

Examples:
  sokoban menu
  sokoban menu --fps 60 --speed fast
  sokoban menu --db ./records.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	loader := levelLoader()
	packs, err := loader.LoadAll()
	if err != nil {
		return err
	}
	warnSkipped(loader)
	all, err := loader.Levels()
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	tuiLog, closer := tuiLogger()
	defer closer.Close()

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(all, store, cfg)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsRecords {
			goBack, err := tui.RunRecords(packs, store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue
			}
			return nil
		}

		game := sokoban.New(all, appConfig.EffectiveVelocity())
		if err := game.SelectLevel(menuResult.LevelID); err != nil {
			logger.Error("cannot select level", "level", menuResult.LevelID, "error", err)
			continue
		}

		goBack, err := tui.Run(game, store, cfg, tuiLog)
		if err != nil {
			return err
		}
		if !goBack {
			return nil
		}
	}
}
