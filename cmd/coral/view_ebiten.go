//go:build ebiten

package main

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"

	"coral/internal/app"
	"coral/internal/core"
)

func launchViewer(title string, sim core.Sim, opts app.Options) error {
	ebiten.SetTPS(viewFlags.tps)
	err := app.Run(title, sim, opts)
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
