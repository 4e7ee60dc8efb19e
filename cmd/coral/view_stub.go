//go:build !ebiten

package main

import (
	"coral/internal/app"
	"coral/internal/core"
)

func launchViewer(title string, sim core.Sim, opts app.Options) error {
	return app.Run(title, sim, opts)
}
