package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
)

var (
	flagInteractive bool
	flagClear       string
	flagRecent      int
)

var recordsCmd = &cobra.Command{
	Use:   "records [level]",
	Short: "Show personal bests",
	Long: `Display the personal best of every solved level, or the latest runs
of one level.

A run becomes the personal best when it uses no more moves and strictly
less time than the current best.

Examples:
  sokoban records
  sokoban records basics-001
  sokoban records -i
  sokoban records --clear basics-001`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeLevelIDs,
	RunE:              runRecords,
}

func init() {
	recordsCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse records in a table")
	recordsCmd.Flags().StringVar(&flagClear, "clear", "", "Delete every record of a level")
	recordsCmd.Flags().IntVar(&flagRecent, "recent", 10, "Number of runs shown for a level")
}

func runRecords(_ *cobra.Command, args []string) error {
	store := openStore()
	if store == nil {
		return errors.New("records database is unavailable")
	}
	defer store.Close()

	loader := levelLoader()

	if flagClear != "" {
		lvl, err := loader.Find(flagClear)
		if err != nil {
			return err
		}
		if err := store.ClearLevel(lvl.ID); err != nil {
			return err
		}
		fmt.Printf("Cleared records of %s\n", lvl.ID)
		return nil
	}

	if flagInteractive {
		packs, err := loader.LoadAll()
		if err != nil {
			return err
		}
		cfg := runtimeConfig()
		_, err = tui.RunRecords(packs, store, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	if len(args) == 1 {
		lvl, err := loader.Find(args[0])
		if err != nil {
			return err
		}
		results, err := store.RecentResults(lvl.ID, flagRecent)
		if err != nil {
			return err
		}

		fmt.Printf("Runs - %s (%s)\n\n", lvl.Title(), lvl.ID)
		if len(results) == 0 {
			fmt.Println("No runs recorded yet.")
			return nil
		}
		fmt.Printf("  %-6s  %-8s  %s\n", "Moves", "Time", "Date")
		fmt.Printf("  %-6s  %-8s  %s\n", "-----", "----", "----")
		for _, r := range results {
			fmt.Printf("  %-6d  %-8s  %s\n", r.Moves, formatElapsed(r.Elapsed), r.CreatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	}

	bests, err := store.BestAll()
	if err != nil {
		return err
	}

	fmt.Println("Personal bests")
	fmt.Println()
	if len(bests) == 0 {
		fmt.Println("No levels solved yet.")
		fmt.Println()
		fmt.Println("Play 'sokoban play' to set your first record!")
		return nil
	}

	fmt.Printf("  %-12s  %-6s  %-8s  %s\n", "Level", "Moves", "Time", "Date")
	fmt.Printf("  %-12s  %-6s  %-8s  %s\n", "-----", "-----", "----", "----")
	for _, b := range bests {
		fmt.Printf("  %-12s  %-6d  %-8s  %s\n", b.LevelID, b.Moves, formatElapsed(b.Elapsed), b.UpdatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats()
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("%d runs over %d levels, %d moves, %s played", stats.Runs, stats.LevelsSolved, stats.TotalMoves, formatElapsed(stats.TotalTime))
	if !stats.LastPlayed.IsZero() {
		fmt.Printf(", last on %s", stats.LastPlayed.Format("2006-01-02"))
	}
	fmt.Println()
	return nil
}

func formatElapsed(d time.Duration) string {
	return d.Round(100 * time.Millisecond).String()
}
