package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
)

var (
	flagSolution string
	flagMaxTicks int
	flagShow     bool
)

var errUnsolved = errors.New("some solutions do not solve their level")

var solveCmd = &cobra.Command{
	Use:   "solve [level]",
	Short: "Verify level solutions headlessly",
	Long: `Replay the known U/D/L/R solution of each level (or of one level)
without a terminal UI and check that it solves the level.
Levels without a known solution are listed and skipped.
Exits with a non-zero status if any replay fails.

Examples:
  sokoban solve
  sokoban solve basics-003
  sokoban solve 2 --solution UULD --show`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeLevelIDs,
	RunE:              runSolve,
}

func init() {
	solveCmd.Flags().StringVar(&flagSolution, "solution", "", "Script to replay instead of the known solution (needs a level)")
	solveCmd.Flags().IntVar(&flagMaxTicks, "max-ticks", 100000, "Tick budget per level")
	solveCmd.Flags().BoolVar(&flagShow, "show", false, "Print the final board of each replay")
}

func runSolve(_ *cobra.Command, args []string) error {
	loader := levelLoader()

	var targets []levels.Level
	if len(args) == 1 {
		lvl, err := loader.Find(args[0])
		if err != nil {
			return err
		}
		targets = []levels.Level{lvl}
	} else {
		if flagSolution != "" {
			return errors.New("--solution needs a level argument")
		}
		all, err := loader.Levels()
		if err != nil {
			return err
		}
		warnSkipped(loader)
		targets = all
	}

	velocity := appConfig.EffectiveVelocity()
	failed, skipped := 0, 0
	for i := range targets {
		lvl := &targets[i]
		script := lvl.Solution
		if flagSolution != "" {
			script = flagSolution
		}

		if err := lvl.Validate(); err != nil {
			fmt.Printf("FAIL  %-12s  %v\n", lvl.ID, err)
			failed++
			continue
		}
		if script == "" {
			fmt.Printf("SKIP  %-12s  no known solution\n", lvl.ID)
			skipped++
			continue
		}

		board := lvl.NewLevel()
		walker := core.NewWalker(script)
		res := walker.Run(board, velocity, flagMaxTicks)
		logger.Debug("replay finished", "level", lvl.ID, "ticks", res.Ticks, "skipped_codes", walker.Skipped())

		status := "OK  "
		if !res.Solved {
			status = "FAIL"
			failed++
		}
		fmt.Printf("%s  %-12s  %d moves, %d rejected, %d ticks", status, lvl.ID, res.Moves, res.Rejected, res.Ticks)
		if res.Exhausted {
			fmt.Print(", tick budget exhausted")
		}
		fmt.Println()

		if flagShow {
			fmt.Println(core.RenderASCII(board))
			fmt.Println()
		}
	}

	fmt.Printf("\n%d levels, %d failed, %d skipped\n", len(targets), failed, skipped)
	if failed > 0 {
		return errUnsolved
	}
	return nil
}
