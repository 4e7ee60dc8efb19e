package app

import "coral/internal/core"

// Options configures the viewer.
type Options struct {
	Scale         int
	HUDWidth      int
	Seed          int64
	StepsPerFrame int
	// OnFinish runs once when a sim implementing core.Finisher reports done.
	OnFinish func(core.Sim)
}

func (o Options) normalized() Options {
	if o.Scale <= 0 {
		o.Scale = 1
	}
	if o.HUDWidth < 0 {
		o.HUDWidth = 0
	}
	if o.StepsPerFrame <= 0 {
		o.StepsPerFrame = 1
	}
	return o
}
