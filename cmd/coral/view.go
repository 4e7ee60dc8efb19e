package main

import (
	"github.com/spf13/cobra"

	"coral/internal/app"
	"coral/internal/core"
	"coral/internal/sims/coral"
)

var viewFlags struct {
	board         boardFlags
	scale         int
	tps           int
	stepsPerFrame int
	hudWidth      int
}

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Open the interactive viewer (requires the ebiten build tag)",
	Long: `Open a window showing the board as it grows. Build with
'-tags ebiten' to enable it.

Keys:
  space pause, n single step, r reset, s new seed, d toggle drifters,
  f growth front, b brightness heat map, up/down change speed, q quit`,
	Args: cobra.NoArgs,
	RunE: runView,
}

func init() {
	viewFlags.board.bind(viewCmd, "coral")
	fs := viewCmd.Flags()
	fs.IntVar(&viewFlags.scale, "scale", 1, "Pixel scale")
	fs.IntVar(&viewFlags.tps, "tps", 60, "Updates per second")
	fs.IntVar(&viewFlags.stepsPerFrame, "steps-per-frame", 32, "Board steps per update")
	fs.IntVar(&viewFlags.hudWidth, "hud-width", 220, "Width of the side panel (0 hides it)")
}

func runView(cmd *cobra.Command, _ []string) error {
	cfg, err := viewFlags.board.config(cmd)
	if err != nil {
		return err
	}
	b, err := coral.NewBoard(cfg, nil)
	if err != nil {
		return err
	}

	store := openHistory()
	if store != nil {
		defer store.Close()
	}
	opts := app.Options{
		Scale:         viewFlags.scale,
		HUDWidth:      viewFlags.hudWidth,
		Seed:          cfg.Seed,
		StepsPerFrame: viewFlags.stepsPerFrame,
		OnFinish: func(sim core.Sim) {
			board := sim.(*coral.Board)
			st := coral.Stats{Steps: board.Steps(), Settled: board.Settled(), Seeded: board.Seeded()}
			logger.Info("coral finished", "steps", st.Steps, "settled", st.Settled)
			recordRun(store, newRunRecord(viewFlags.board.preset, board.Config(), st, ""))
		},
	}

	return launchViewer("coral - "+viewFlags.board.preset, b, opts)
}
