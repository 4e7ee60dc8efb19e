package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"coral/internal/storage"
)

var historyFlags struct {
	limit int
	stats bool
	clear bool
}

var historyCmd = &cobra.Command{
	Use:   "history [preset]",
	Short: "Show recorded runs",
	Long: `List the most recent runs from the history database, optionally
filtered by preset. --stats aggregates step counts per preset.

Examples:
  coral history
  coral history seaweed --limit 5
  coral history --stats`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	fs := historyCmd.Flags()
	fs.IntVarP(&historyFlags.limit, "limit", "n", 20, "Number of runs to show")
	fs.BoolVar(&historyFlags.stats, "stats", false, "Show per-preset step statistics")
	fs.BoolVar(&historyFlags.clear, "clear", false, "Delete all recorded runs")
}

func runHistory(_ *cobra.Command, args []string) error {
	if flagDBPath == "" {
		return errors.New("history is disabled (--db is empty)")
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	switch {
	case historyFlags.clear:
		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Println("History cleared.")
		return nil
	case historyFlags.stats:
		return printHistoryStats(store)
	}

	var runs []storage.Run
	if len(args) == 1 {
		runs, err = store.RunsForPreset(args[0], historyFlags.limit)
	} else {
		runs, err = store.Runs(historyFlags.limit)
	}
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'coral render' to grow the first board.")
		return nil
	}

	fmt.Printf("  %-5s  %-16s  %-14s  %-10s  %20s  %9s  %9s  %s\n", "ID", "Date", "Preset", "Size", "Seed", "Steps", "Time", "Output")
	fmt.Printf("  %-5s  %-16s  %-14s  %-10s  %20s  %9s  %9s  %s\n", "--", "----", "------", "----", "----", "-----", "----", "------")
	for _, r := range runs {
		fmt.Printf("  %-5d  %-16s  %-14s  %-10s  %20d  %9d  %8.1fs  %s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Preset,
			fmt.Sprintf("%dx%d", r.Rows, r.Cols), r.Seed, r.Steps,
			float64(r.DurationMS)/1000, r.Output)
	}
	return nil
}

func printHistoryStats(store *storage.Store) error {
	stats, err := store.Stats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}
	fmt.Printf("  %-14s  %5s  %9s  %9s  %11s\n", "Preset", "Runs", "Min", "Max", "Mean")
	fmt.Printf("  %-14s  %5s  %9s  %9s  %11s\n", "------", "----", "---", "---", "----")
	for _, s := range stats {
		fmt.Printf("  %-14s  %5d  %9d  %9d  %11.1f\n", s.Preset, s.Runs, s.MinSteps, s.MaxSteps, s.AvgSteps)
	}
	return nil
}
