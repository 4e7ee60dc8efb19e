package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"coral/internal/core"
	"coral/internal/render"
	"coral/internal/sims/coral"
)

var renderFlags struct {
	board      boardFlags
	scale      int
	printStep  int
	imageStep  int
	savePrefix string
	video      string
	frameStep  int
	fps        int
	chart      string
	sampleStep int
}

var renderCmd = &cobra.Command{
	Use:   "render [out.png]",
	Short: "Grow one board to completion and save it as PNG",
	Long: `Grow a board until the coral reaches the top row, then save the final
image (without drifters). Defaults to the "main" preset and coral.png.

Examples:
  coral render
  coral render seaweed.png --preset seaweed --seed 42
  coral render --print-step 1000 --image-step 30000 --save-prefix snaps/main-
  coral render --preset dense --video dense.avi --frame-step 50 --chart dense-growth.png`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderFlags.board.bind(renderCmd, "main")
	fs := renderCmd.Flags()
	fs.IntVar(&renderFlags.scale, "scale", 1, "Pixel scale of saved images")
	fs.IntVar(&renderFlags.printStep, "print-step", 0, "Log progress every N steps (0 = never)")
	fs.IntVar(&renderFlags.imageStep, "image-step", 0, "Save a snapshot with drifters every N steps (0 = never)")
	fs.StringVar(&renderFlags.savePrefix, "save-prefix", "", "Snapshot path prefix (default: output name without extension plus '-')")
	fs.StringVar(&renderFlags.video, "video", "", "Write an MJPEG AVI of the growth to this path")
	fs.IntVar(&renderFlags.frameStep, "frame-step", 100, "Steps between video frames")
	fs.IntVar(&renderFlags.fps, "fps", 30, "Video frame rate")
	fs.StringVar(&renderFlags.chart, "chart", "", "Write a growth chart PNG to this path")
	fs.IntVar(&renderFlags.sampleStep, "sample-step", 100, "Steps between chart samples")
}

func runRender(cmd *cobra.Command, args []string) error {
	out := "coral.png"
	if len(args) > 0 {
		out = args[0]
	}
	cfg, err := renderFlags.board.config(cmd)
	if err != nil {
		return err
	}
	b, err := coral.NewBoard(cfg, nil)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var opts []coral.RunOption
	if renderFlags.printStep > 0 {
		opts = append(opts, coral.WithProgress(renderFlags.printStep, func(step int) {
			logger.Info("growing", "step", step, "settled", b.Settled(), "front", b.Front())
		}))
	}

	var snapErr error
	if renderFlags.imageStep > 0 {
		prefix := renderFlags.savePrefix
		if prefix == "" {
			prefix = strings.TrimSuffix(out, ".png") + "-"
		}
		opts = append(opts, coral.WithSnapshots(renderFlags.imageStep, func(step, frame int, px *core.PixelGrid) {
			if snapErr != nil {
				return
			}
			path := fmt.Sprintf("%s%d.png", prefix, frame)
			if snapErr = render.SavePNG(path, px, renderFlags.scale); snapErr == nil {
				logger.Info("snapshot saved", "path", path, "step", step)
			}
		}))
	}

	var rec recorder
	if renderFlags.video != "" {
		v, err := render.NewVideo(renderFlags.video, cfg.Cols, cfg.Rows, renderFlags.scale, renderFlags.fps, 90)
		if err != nil {
			return err
		}
		rec.video, rec.videoPath, rec.frameStep = v, renderFlags.video, renderFlags.frameStep
	}
	if renderFlags.chart != "" {
		rec.growth, rec.sampleStep = &render.Growth{}, renderFlags.sampleStep
	}
	if rec.active() {
		opts = append(opts, coral.WithStepHook(rec.capture))
	}

	logger.Info("growing coral", "preset", renderFlags.board.preset, "rows", cfg.Rows, "cols", cfg.Cols, "seed", cfg.Seed)
	st, runErr := b.RunContext(ctx, opts...)
	if runErr != nil {
		logger.Warn("interrupted, saving partial board", "step", st.Steps)
	}

	if err := render.SavePNG(out, b.Pixels(false), renderFlags.scale); err != nil {
		return err
	}
	logger.Info("image saved", "path", out, "steps", st.Steps, "settled", st.Settled, "elapsed", st.Elapsed.Round(time.Millisecond))

	if err := rec.finish(renderFlags.chart, renderFlags.board.preset); err != nil {
		return err
	}
	if snapErr != nil {
		return snapErr
	}
	if runErr != nil {
		return runErr
	}

	store := openHistory()
	if store != nil {
		defer store.Close()
	}
	recordRun(store, newRunRecord(renderFlags.board.preset, cfg, st, out))
	return nil
}

// recorder captures video frames and chart samples from a step hook.
type recorder struct {
	video      *render.Video
	videoPath  string
	frameStep  int
	growth     *render.Growth
	sampleStep int
	err        error
}

func (r *recorder) active() bool { return r.video != nil || r.growth != nil }

func (r *recorder) capture(b *coral.Board) {
	if r.err != nil {
		return
	}
	step := b.Steps()
	if r.video != nil && (step%max(r.frameStep, 1) == 0 || b.Done()) {
		r.err = r.video.AddFrame(b.Pixels(true))
	}
	if r.growth != nil && (step%max(r.sampleStep, 1) == 0 || b.Done()) {
		r.growth.Record(step, b.Settled(), b.Rows()-b.Front())
	}
}

func (r *recorder) finish(chartPath, title string) error {
	var errs []error
	errs = append(errs, r.err)
	if r.video != nil {
		errs = append(errs, r.video.Close())
		logger.Info("video saved", "path", r.videoPath, "frames", r.video.Frames())
	}
	if r.growth != nil {
		if err := r.growth.WriteChart(chartPath, title); err != nil {
			errs = append(errs, err)
		} else {
			logger.Info("chart saved", "path", chartPath, "samples", r.growth.Len())
		}
	}
	return errors.Join(errs...)
}
