package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all levels",
	Long:  `Shows every level of every pack in play order, with your solved levels marked.`,
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	loader := levelLoader()
	packs, err := loader.LoadAll()
	if err != nil {
		return err
	}
	warnSkipped(loader)

	done := map[string]bool{}
	if store := openStore(); store != nil {
		defer store.Close()
		if done, err = store.CompletedLevels(); err != nil {
			logger.Warn("could not read records", "error", err)
			done = map[string]bool{}
		}
	}

	n := 0
	for _, p := range packs {
		fmt.Printf("%s (%d levels)\n", p.Title, p.Len())
		for i := range p.Levels {
			lvl := &p.Levels[i]
			n++
			mark := " "
			if done[lvl.ID] {
				mark = "x"
			}
			solution := ""
			if lvl.Solution != "" {
				solution = "  [solution]"
			}
			fmt.Printf("  [%s] %3d  %-12s  %s%s\n", mark, n, lvl.ID, lvl.Title(), solution)
		}
		fmt.Println()
	}

	fmt.Println("Run 'sokoban play <id|number>' to play a level.")
	return nil
}
