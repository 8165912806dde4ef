package main

import (
	"flag"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/olivierh59500/particle-life-quadtree/life"
	"github.com/olivierh59500/particle-life-quadtree/preset"
)

func main() {
	mode := flag.String("mode", "life", "built-in defaults: life or bounce")
	configPath := flag.String("config", "", "TOML file overriding the mode defaults")
	particles := flag.Int("particles", -1, "particle count (overrides config)")
	seed := flag.Int64("seed", 0, "random seed, 0 for time-based")
	flag.Parse()

	logger := log.New(os.Stderr, "particle-life: ", log.LstdFlags)

	p, err := preset.Load(*mode, *configPath)
	if err != nil {
		log.Fatal(err)
	}
	p.Override(*particles, *seed)
	cfg := p.Config
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	opts := append(p.Options, life.WithLogger(logger))
	sim, err := life.New(cfg, rand.New(rand.NewSource(cfg.Seed)), opts...)
	if err != nil {
		log.Fatal(err)
	}

	// Set up Ebitengine game
	ebiten.SetWindowSize(int(cfg.Width), int(cfg.Height))
	ebiten.SetWindowTitle("Particle Life Simulation")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)

	if err := ebiten.RunGame(NewGame(sim, logger)); err != nil {
		log.Fatal(err)
	}
}
