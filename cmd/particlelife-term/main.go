// Command particlelife-term runs the simulation in a terminal. Each cell
// shows the last particle drawn into it; the world keeps its configured size
// and is scaled to the terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/olivierh59500/particle-life-quadtree/life"
	"github.com/olivierh59500/particle-life-quadtree/palette"
	"github.com/olivierh59500/particle-life-quadtree/preset"
)

func main() {
	mode := flag.String("mode", "life", "built-in defaults: life or bounce")
	configPath := flag.String("config", "", "TOML file overriding the mode defaults")
	particles := flag.Int("particles", -1, "particle count (overrides config)")
	fps := flag.Int("fps", 30, "frames per second")
	logPath := flag.String("log", "", "write diagnostics to this file")
	flag.Parse()

	logger := log.New(io.Discard, "", 0)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		logger = log.New(f, "particlelife-term: ", log.LstdFlags)
	}

	p, err := preset.Load(*mode, *configPath)
	if err != nil {
		log.Fatal(err)
	}
	p.Override(*particles, 0)
	cfg := p.Config
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	sim, err := life.New(cfg, rand.New(rand.NewSource(cfg.Seed)), append(p.Options, life.WithLogger(logger))...)
	if err != nil {
		log.Fatal(err)
	}

	if err := run(sim, time.Second/time.Duration(max(*fps, 1))); err != nil {
		log.Fatal(err)
	}
}

func run(sim *life.Simulation, frame time.Duration) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	// PollEvent blocks, so input arrives on its own goroutine
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	styles := make([]tcell.Style, sim.Config().Colors)
	for i, c := range palette.New(len(styles)) {
		styles[i] = tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	}

	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	paused := false
	last := time.Now()
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q':
					return nil
				case ev.Rune() == ' ':
					paused = !paused
				case ev.Rune() == 'r':
					sim.RandomizeMatrix()
					sim.Restart()
				case ev.Rune() == 'e':
					sim.ToggleSchedule()
				}
			}

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if paused {
				continue
			}
			draw(screen, sim, sim.Step(dt), styles)
		}
	}
}

func draw(screen tcell.Screen, sim *life.Simulation, sprites []life.Sprite, styles []tcell.Style) {
	screen.Clear()
	cols, rows := screen.Size()
	if cols <= 0 || rows <= 1 {
		return
	}
	d := sim.Domain()
	// Last row is the status line
	sx := float64(cols) / d.Width
	sy := float64(rows-1) / d.Height

	for _, s := range sprites {
		x := int((s.X - d.X) * sx)
		y := int((s.Y - d.Y) * sy)
		if x < 0 || x >= cols || y < 0 || y >= rows-1 {
			continue
		}
		st := tcell.StyleDefault
		if int(s.Color) < len(styles) {
			st = styles[s.Color]
		}
		screen.SetContent(x, y, '•', nil, st)
	}

	c := sim.Clock()
	status := fmt.Sprintf("frame %d  t=%.1fs  schedule=%v  [space] pause [r] new matrix [e] schedule [q] quit",
		c.Frame, c.Time, sim.ScheduleOn())
	for i, r := range []rune(status) {
		if i >= cols {
			break
		}
		screen.SetContent(i, rows-1, r, nil, tcell.StyleDefault.Reverse(true))
	}
	screen.Show()
}
