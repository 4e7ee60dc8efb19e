package main

import (
	"github.com/spf13/cobra"

	"coral/internal/config"
	"coral/internal/sims/coral"
	"coral/internal/storage"
)

// boardFlags selects a preset and optional per-parameter overrides.
type boardFlags struct {
	preset      string
	rows        int
	cols        int
	hueDiff     int
	pBrightness float64
	downBias    float64
	rightBias   float64
}

func (f *boardFlags) bind(cmd *cobra.Command, defaultPreset string) {
	fs := cmd.Flags()
	fs.StringVarP(&f.preset, "preset", "p", defaultPreset, "Preset name (see 'coral presets')")
	fs.IntVar(&f.rows, "rows", 0, "Override number of rows")
	fs.IntVar(&f.cols, "cols", 0, "Override number of columns")
	fs.IntVar(&f.hueDiff, "hue-diff", 0, "Override max hue shift between parent and child")
	fs.Float64Var(&f.pBrightness, "p-brightness", 0, "Override brightness rate")
	fs.Float64Var(&f.downBias, "down-bias", 0, "Override downward drift bias in [0,1]")
	fs.Float64Var(&f.rightBias, "right-bias", 0, "Override sideways drift bias in [-1,1]")
}

// config resolves the preset, applies the flags the user actually set and
// fills in the seed.
func (f *boardFlags) config(cmd *cobra.Command) (coral.Config, error) {
	p, err := presets.Find(f.preset)
	if err != nil {
		return coral.Config{}, err
	}
	return f.apply(cmd, coral.FromPreset(p), resolveSeed()), nil
}

func (f *boardFlags) apply(cmd *cobra.Command, cfg coral.Config, seed int64) coral.Config {
	fs := cmd.Flags()
	if fs.Changed("rows") {
		cfg.Rows = f.rows
	}
	if fs.Changed("cols") {
		cfg.Cols = f.cols
	}
	if fs.Changed("hue-diff") {
		cfg.HueDiff = f.hueDiff
	}
	if fs.Changed("p-brightness") {
		cfg.PBrightness = f.pBrightness
	}
	if fs.Changed("down-bias") {
		cfg.DownBias = f.downBias
	}
	if fs.Changed("right-bias") {
		cfg.RightBias = f.rightBias
	}
	cfg.Seed = seed
	return cfg
}

// openHistory opens the run history, or returns nil when recording is
// disabled or the database is unusable.
func openHistory() *storage.Store {
	if flagDBPath == "" {
		return nil
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run history", "error", err)
		return nil
	}
	return store
}

func newRunRecord(preset string, cfg coral.Config, st coral.Stats, output string) storage.Run {
	return storage.Run{
		Preset:      preset,
		Seed:        cfg.Seed,
		Rows:        cfg.Rows,
		Cols:        cfg.Cols,
		HueDiff:     cfg.HueDiff,
		PBrightness: cfg.PBrightness,
		DownBias:    cfg.DownBias,
		RightBias:   cfg.RightBias,
		Steps:       st.Steps,
		Settled:     st.Settled,
		Seeded:      st.Seeded,
		DurationMS:  st.Elapsed.Milliseconds(),
		Output:      output,
	}
}

// recordRun saves one run. A nil store is a no-op.
func recordRun(store *storage.Store, run storage.Run) {
	if store == nil {
		return
	}
	id, err := store.SaveRun(run)
	if err != nil {
		logger.Warn("could not record run", "error", err)
		return
	}
	logger.Debug("run recorded", "id", id, "preset", run.Preset, "seed", run.Seed)
}

// presetsOrAll resolves names to presets, defaulting to every loaded preset.
func presetsOrAll(names []string) ([]config.Preset, error) {
	if len(names) == 0 {
		return presets.Presets, nil
	}
	out := make([]config.Preset, 0, len(names))
	for _, name := range names {
		p, err := presets.Find(name)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
