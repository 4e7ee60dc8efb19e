package coral

import (
	"context"
	"time"

	"coral/internal/core"
)

// Stats summarises a completed or interrupted run.
type Stats struct {
	Steps   int
	Settled int
	Seeded  int
	Elapsed time.Duration
}

// RunOption configures Run.
type RunOption func(*runOptions)

type runOptions struct {
	progressEvery int
	onProgress    func(step int)

	snapshotEvery int
	onSnapshot    func(step, frame int, px *core.PixelGrid)

	onStep func(b *Board)
}

// WithProgress calls fn every `every` steps.
func WithProgress(every int, fn func(step int)) RunOption {
	return func(o *runOptions) {
		o.progressEvery = every
		o.onProgress = fn
	}
}

// WithSnapshots renders the board with drifters every `every` steps and
// passes it to fn along with the frame number step/every.
func WithSnapshots(every int, fn func(step, frame int, px *core.PixelGrid)) RunOption {
	return func(o *runOptions) {
		o.snapshotEvery = every
		o.onSnapshot = fn
	}
}

// WithStepHook calls fn after every step.
func WithStepHook(fn func(b *Board)) RunOption {
	return func(o *runOptions) {
		o.onStep = fn
	}
}

// Run advances the board until it is done. The step counter restarts from
// zero; the grid keeps its state. There is no step limit.
func (b *Board) Run(opts ...RunOption) Stats {
	stats, _ := b.RunContext(context.Background(), opts...)
	return stats
}

// RunContext is Run with cancellation checked between steps. It returns
// ctx.Err() together with the partial stats when interrupted.
func (b *Board) RunContext(ctx context.Context, opts ...RunOption) (Stats, error) {
	var o runOptions
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()
	b.stepNb = 0
	for !b.done {
		if err := ctx.Err(); err != nil {
			return b.stats(start), err
		}
		b.Advance()
		if o.onStep != nil {
			o.onStep(b)
		}
		if o.progressEvery > 0 && o.onProgress != nil && b.stepNb%o.progressEvery == 0 {
			o.onProgress(b.stepNb)
		}
		if o.snapshotEvery > 0 && o.onSnapshot != nil && b.stepNb%o.snapshotEvery == 0 {
			o.onSnapshot(b.stepNb, b.stepNb/o.snapshotEvery, b.Pixels(true))
		}
	}
	return b.stats(start), nil
}

func (b *Board) stats(start time.Time) Stats {
	return Stats{
		Steps:   b.stepNb,
		Settled: b.settled,
		Seeded:  b.seeded,
		Elapsed: time.Since(start),
	}
}
