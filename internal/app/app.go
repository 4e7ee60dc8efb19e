//go:build ebiten

package app

import (
	"time"

	"coral/internal/core"
	"coral/internal/render"
	"coral/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const maxStepsPerFrame = 4096

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD

	opts         Options
	paused       bool
	tickOnce     bool
	showDrifters bool
	finished     bool
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, opts Options) *Game {
	opts = opts.normalized()
	s := sim.Size()
	return &Game{
		sim:          sim,
		painter:      render.NewGridPainter(s.W, s.H),
		overlay:      ui.NewOverlay(sim, opts.Scale),
		hud:          ui.NewHUD(sim, opts.HUDWidth),
		opts:         opts,
		showDrifters: true,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.opts.Seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
	g.finished = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.opts.Seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.showDrifters = !g.showDrifters
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) && g.opts.StepsPerFrame < maxStepsPerFrame {
		g.opts.StepsPerFrame *= 2
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) && g.opts.StepsPerFrame > 1 {
		g.opts.StepsPerFrame /= 2
	}

	g.overlay.Update()
	g.hud.Update(g.boardWidth())

	switch {
	case g.tickOnce:
		g.advance(1)
		g.tickOnce = false
	case !g.paused:
		g.advance(g.opts.StepsPerFrame)
	}
	return nil
}

func (g *Game) advance(n int) {
	f, finishes := g.sim.(core.Finisher)
	for i := 0; i < n; i++ {
		if finishes && f.Done() {
			break
		}
		g.sim.Step()
	}
	if finishes && f.Done() && !g.finished {
		g.finished = true
		if g.opts.OnFinish != nil {
			g.opts.OnFinish(g.sim)
		}
	}
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.pixels(), g.opts.Scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.boardWidth(), g.opts.Scale)
}

func (g *Game) pixels() *core.PixelGrid {
	if ps, ok := g.sim.(core.PixelSource); ok {
		return ps.Pixels(g.showDrifters)
	}
	s := g.sim.Size()
	px := core.NewPixelGrid(s.W, s.H, core.RGB{})
	for i, c := range g.sim.Cells() {
		if c != 0 && i < len(px.Pix) {
			px.Pix[i] = core.RGB{R: 0xff, G: 0xff, B: 0xff}
		}
	}
	return px
}

func (g *Game) boardWidth() int { return g.sim.Size().W * g.opts.Scale }

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.opts.Scale + g.opts.HUDWidth, s.H * g.opts.Scale
}

// Run opens a window titled title and blocks until it closes.
func Run(title string, sim core.Sim, opts Options) error {
	g := New(sim, opts)
	w, h := g.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}
