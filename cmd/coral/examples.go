package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"coral/internal/render"
	"coral/internal/sims/coral"
)

const (
	printExampleRows  = 200
	printExampleCols  = 400
	printExampleSteps = 20000
	animationRows     = 200
	animationCols     = 800
)

var examplesFlags struct {
	only       string
	frameStep  int
	pngFrames  bool
	skipOption bool
}

var examplesCmd = &cobra.Command{
	Use:   "examples [dir]",
	Short: "Regenerate the example gallery",
	Long: `Regenerate the example images into dir (default "examples"):

  option examples   one image per small and large preset
  print examples    a 200x400 board after 20000 steps, with and without drifters
  animation         a 200x800 board grown to completion as frames.avi

Examples:
  coral examples
  coral examples out --only print
  coral examples --png-frames --frame-step 1`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExamples,
}

func init() {
	fs := examplesCmd.Flags()
	fs.StringVar(&examplesFlags.only, "only", "", "Generate one set only: options, print or animation")
	fs.IntVar(&examplesFlags.frameStep, "frame-step", 20, "Steps between animation frames")
	fs.BoolVar(&examplesFlags.pngFrames, "png-frames", false, "Also write each animation frame as PNG under frames/")
}

func runExamples(cmd *cobra.Command, args []string) error {
	dir := "examples"
	if len(args) > 0 {
		dir = args[0]
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed := resolveSeed()
	store := openHistory()
	if store != nil {
		defer store.Close()
	}

	sets := []struct {
		name string
		fn   func(context.Context, string, int64, func(string, coral.Config, coral.Stats, string)) error
	}{
		{"options", optionExamples},
		{"print", printExamples},
		{"animation", animationExample},
	}
	record := func(preset string, cfg coral.Config, st coral.Stats, out string) {
		recordRun(store, newRunRecord(preset, cfg, st, out))
	}

	ran := false
	for _, set := range sets {
		if examplesFlags.only != "" && examplesFlags.only != set.name {
			continue
		}
		ran = true
		logger.Info("generating examples", "set", set.name, "dir", dir)
		if err := set.fn(ctx, dir, seed, record); err != nil {
			return err
		}
	}
	if !ran {
		return fmt.Errorf("unknown example set %q (want options, print or animation)", examplesFlags.only)
	}
	return nil
}

func optionExamples(ctx context.Context, dir string, seed int64, record func(string, coral.Config, coral.Stats, string)) error {
	for _, group := range []string{"small", "large"} {
		for _, p := range presets.Group(group) {
			cfg := coral.FromPreset(p)
			cfg.Seed = seed
			b, err := coral.NewBoard(cfg, nil)
			if err != nil {
				return fmt.Errorf("preset %s: %w", p.Name, err)
			}
			st, err := b.RunContext(ctx)
			if err != nil {
				return err
			}
			path := filepath.Join(dir, p.Name+".png")
			if err := render.SavePNG(path, b.Pixels(false), 1); err != nil {
				return err
			}
			logger.Info("example saved", "path", path, "steps", st.Steps)
			record(p.Name, cfg, st, path)
		}
	}
	return nil
}

func printExamples(ctx context.Context, dir string, seed int64, _ func(string, coral.Config, coral.Stats, string)) error {
	cfg := coral.DefaultConfig()
	cfg.Rows, cfg.Cols, cfg.Seed = printExampleRows, printExampleCols, seed
	b, err := coral.NewBoard(cfg, nil)
	if err != nil {
		return err
	}
	for i := 0; i < printExampleSteps; i++ {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		b.Advance()
	}
	for _, v := range []struct {
		name     string
		drifters bool
	}{
		{"without_drifters.png", false},
		{"with_drifters.png", true},
	} {
		path := filepath.Join(dir, v.name)
		if err := render.SavePNG(path, b.Pixels(v.drifters), 1); err != nil {
			return err
		}
		logger.Info("example saved", "path", path)
	}
	return nil
}

func animationExample(ctx context.Context, dir string, seed int64, record func(string, coral.Config, coral.Stats, string)) error {
	cfg := coral.DefaultConfig()
	cfg.Rows, cfg.Cols, cfg.Seed = animationRows, animationCols, seed
	b, err := coral.NewBoard(cfg, nil)
	if err != nil {
		return err
	}

	path := filepath.Join(dir, "frames.avi")
	video, err := render.NewVideo(path, cfg.Cols, cfg.Rows, 1, 30, 90)
	if err != nil {
		return err
	}
	rec := recorder{video: video, videoPath: path, frameStep: examplesFlags.frameStep}
	framesDir := filepath.Join(dir, "frames")

	st, runErr := b.RunContext(ctx, coral.WithStepHook(func(b *coral.Board) {
		rec.capture(b)
		if examplesFlags.pngFrames && rec.err == nil && (b.Steps()%max(rec.frameStep, 1) == 0 || b.Done()) {
			frame := filepath.Join(framesDir, fmt.Sprintf("frame-%010d.png", b.Steps()))
			rec.err = render.SavePNG(frame, b.Pixels(true), 1)
		}
	}))
	if err := rec.finish("", ""); err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}
	record("animation", cfg, st, path)
	return nil
}
