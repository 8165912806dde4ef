package main

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/olivierh59500/particle-life-quadtree/life"
	"github.com/olivierh59500/particle-life-quadtree/palette"
	"github.com/olivierh59500/particle-life-quadtree/quadtree"
)

// MinZoom limits zoom out
const MinZoom = 0.1

var overlayColor = color.RGBA{60, 60, 90, 255}

// Game adapts a Simulation to Ebitengine: it supplies frame time and the
// viewport size, and draws what the simulation returns
type Game struct {
	sim    *life.Simulation
	log    *log.Logger
	colors palette.Palette

	Paused  bool
	Overlay bool // quadtree cells

	Zoom           float64
	CamX, CamY     float64 // Camera pan
	PrevMX, PrevMY float64 // Previous mouse position for drag

	now     func() time.Time
	last    time.Time
	sprites []life.Sprite
	nodes   []quadtree.Boundary
}

// NewGame wraps sim for ebiten.RunGame
func NewGame(sim *life.Simulation, logger *log.Logger) *Game {
	return &Game{
		sim:    sim,
		log:    logger,
		colors: palette.New(sim.Config().Colors),
		Zoom:   1.0,
		now:    time.Now,
	}
}

// elapsed is the frame provider: wall-clock seconds since the last call
func (g *Game) elapsed() float64 {
	t := g.now()
	if g.last.IsZero() {
		g.last = t
		return 0
	}
	dt := t.Sub(g.last).Seconds()
	g.last = t
	return dt
}

// Update is called each tick by Ebitengine
func (g *Game) Update() error {
	g.handleInput()

	dt := g.elapsed()
	if g.Paused {
		return nil
	}

	g.sprites = g.sim.Step(dt)
	if g.Overlay {
		g.nodes = g.sim.Nodes(g.nodes[:0])
	}
	return nil
}

// Draw is called each frame by Ebitengine
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	if g.Overlay {
		for _, b := range g.nodes {
			vector.StrokeRect(screen,
				float32(g.worldToScreenX(b.X)), float32(g.worldToScreenY(b.Y)),
				float32(b.Width*g.Zoom), float32(b.Height*g.Zoom),
				1, overlayColor, false)
		}
	}

	for _, s := range g.sprites {
		r := s.Radius
		if r < 1 {
			r = 1
		}
		vector.DrawFilledCircle(screen,
			float32(g.worldToScreenX(s.X)), float32(g.worldToScreenY(s.Y)),
			float32(r*g.Zoom), g.colors.Of(s.Color), true)
	}

	ebitenutil.DebugPrint(screen, g.status())
}

func (g *Game) status() string {
	cfg := g.sim.Config()
	c := g.sim.Clock()
	state := "running"
	if g.Paused {
		state = "paused"
	}
	return fmt.Sprintf("TPS %.0f  frame %d  t=%.1fs  %s\nupdate=%s schedule=%v index=%s\n[space] pause [r] new matrix [e] schedule [q] tree [u] update",
		ebiten.ActualTPS(), c.Frame, c.Time, state, cfg.Update, g.sim.ScheduleOn(), cfg.Index)
}

// Layout reports the viewport size to the simulation
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	d := g.sim.Domain()
	w, h := float64(outsideWidth), float64(outsideHeight)
	if w > 0 && h > 0 && (w != d.Width || h != d.Height) {
		if err := g.sim.Resize(w, h); err != nil {
			// Too small for the configured reach: keep the old domain
			g.log.Printf("resize to %gx%g ignored: %v", w, h, err)
			return int(d.Width), int(d.Height)
		}
	}
	return outsideWidth, outsideHeight
}

// handleInput processes keyboard and mouse input
func (g *Game) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.Paused = !g.Paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.sim.RandomizeMatrix()
		g.sim.Restart()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		g.sim.ToggleSchedule()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.Overlay = !g.Overlay
		g.nodes = g.sim.Nodes(g.nodes[:0])
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyU) {
		g.toggleUpdate()
	}

	// Zoom
	_, wheelY := ebiten.Wheel()
	g.Zoom += wheelY * 0.1
	if g.Zoom < MinZoom {
		g.Zoom = MinZoom
	}

	// Pan (drag)
	mx, my := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.CamX -= (float64(mx) - g.PrevMX) / g.Zoom
		g.CamY -= (float64(my) - g.PrevMY) / g.Zoom
	}
	g.PrevMX = float64(mx)
	g.PrevMY = float64(my)
}

func (g *Game) toggleUpdate() {
	next := life.UpdateSequential
	if g.sim.Config().Update == life.UpdateSequential {
		next = life.UpdateSimultaneous
	}
	if err := g.sim.SetUpdate(next); err != nil {
		g.log.Print(err)
	}
}

// worldToScreenX/Y for camera
func (g *Game) worldToScreenX(wx float64) float64 {
	return (wx - g.CamX) * g.Zoom
}
func (g *Game) worldToScreenY(wy float64) float64 {
	return (wy - g.CamY) * g.Zoom
}
