package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"coral/internal/config"
	"coral/internal/sims/coral"
)

var sweepFlags struct {
	seeds   int
	workers int
	rows    int
	cols    int
	record  bool
}

var sweepCmd = &cobra.Command{
	Use:   "sweep [preset...]",
	Short: "Grow many seeds per preset in parallel and compare step counts",
	Long: `Run --seeds boards for every preset (default: all presets) on a pool
of workers and report how many steps each preset needs to finish.

Examples:
  coral sweep
  coral sweep sparse dense --seeds 32
  coral sweep --rows 60 --cols 120 --workers 4`,
	RunE: runSweep,
}

func init() {
	fs := sweepCmd.Flags()
	fs.IntVar(&sweepFlags.seeds, "seeds", 8, "Seeds per preset")
	fs.IntVar(&sweepFlags.workers, "workers", runtime.NumCPU(), "Number of worker goroutines")
	fs.IntVar(&sweepFlags.rows, "rows", 0, "Override rows for every preset (0 = preset size)")
	fs.IntVar(&sweepFlags.cols, "cols", 0, "Override cols for every preset (0 = preset size)")
	fs.BoolVar(&sweepFlags.record, "record", true, "Record each run in the history database")
}

type sweepJob struct {
	preset string
	cfg    coral.Config
}

type sweepResult struct {
	job   sweepJob
	stats coral.Stats
	err   error
}

// sweepSummary aggregates the step counts of one preset.
type sweepSummary struct {
	Preset string
	Runs   int
	Min    int
	Max    int
	Mean   float64
	StdDev float64
}

func runSweep(cmd *cobra.Command, args []string) error {
	selected, err := presetsOrAll(args)
	if err != nil {
		return err
	}
	jobs := sweepJobs(selected, resolveSeed(), sweepFlags.seeds, sweepFlags.rows, sweepFlags.cols)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := openHistory()
	if store != nil {
		defer store.Close()
	}

	logger.Info("sweeping", "boards", len(jobs), "presets", len(selected), "workers", sweepFlags.workers)
	start := time.Now()
	var done []sweepResult
	for res := range runPool(ctx, jobs, sweepFlags.workers) {
		if res.err != nil {
			logger.Warn("board interrupted", "preset", res.job.preset, "seed", res.job.cfg.Seed, "error", res.err)
			continue
		}
		logger.Debug("board done", "preset", res.job.preset, "seed", res.job.cfg.Seed, "steps", res.stats.Steps)
		done = append(done, res)
		if sweepFlags.record {
			recordRun(store, newRunRecord(res.job.preset, res.job.cfg, res.stats, ""))
		}
	}

	summaries := summarize(done)
	fmt.Printf("\nSweep results (%d boards, elapsed %s):\n\n", len(done), time.Since(start).Round(time.Millisecond))
	fmt.Printf("  %-14s  %5s  %9s  %9s  %11s  %9s\n", "Preset", "Runs", "Min", "Max", "Mean", "StdDev")
	fmt.Printf("  %-14s  %5s  %9s  %9s  %11s  %9s\n", "------", "----", "---", "---", "----", "------")
	for _, s := range summaries {
		fmt.Printf("  %-14s  %5d  %9d  %9d  %11.1f  %9.1f\n", s.Preset, s.Runs, s.Min, s.Max, s.Mean, s.StdDev)
	}
	return ctx.Err()
}

func sweepJobs(selected []config.Preset, baseSeed int64, seeds, rows, cols int) []sweepJob {
	var jobs []sweepJob
	for _, p := range selected {
		for i := 0; i < seeds; i++ {
			cfg := coral.FromPreset(p)
			if rows > 0 {
				cfg.Rows = rows
			}
			if cols > 0 {
				cfg.Cols = cols
			}
			cfg.Seed = baseSeed + int64(i)
			jobs = append(jobs, sweepJob{preset: p.Name, cfg: cfg})
		}
	}
	return jobs
}

// runPool grows every job on its own board. Results arrive in completion
// order and the channel closes once all workers exit.
func runPool(ctx context.Context, jobs []sweepJob, workers int) <-chan sweepResult {
	if workers <= 0 {
		workers = 1
	}
	queue := make(chan sweepJob)
	results := make(chan sweepResult)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range queue {
				b, err := coral.NewBoard(job.cfg, nil)
				if err != nil {
					results <- sweepResult{job: job, err: err}
					continue
				}
				st, err := b.RunContext(ctx)
				results <- sweepResult{job: job, stats: st, err: err}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(queue)
		for _, job := range jobs {
			select {
			case queue <- job:
			case <-ctx.Done():
				return
			}
		}
	}()

	return results
}

func summarize(results []sweepResult) []sweepSummary {
	steps := map[string][]int{}
	for _, r := range results {
		steps[r.job.preset] = append(steps[r.job.preset], r.stats.Steps)
	}

	summaries := make([]sweepSummary, 0, len(steps))
	for preset, values := range steps {
		s := sweepSummary{Preset: preset, Runs: len(values), Min: values[0], Max: values[0]}
		var sum float64
		for _, v := range values {
			s.Min = min(s.Min, v)
			s.Max = max(s.Max, v)
			sum += float64(v)
		}
		s.Mean = sum / float64(len(values))
		var sq float64
		for _, v := range values {
			d := float64(v) - s.Mean
			sq += d * d
		}
		s.StdDev = math.Sqrt(sq / float64(len(values)))
		summaries = append(summaries, s)
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Preset < summaries[j].Preset })
	return summaries
}
