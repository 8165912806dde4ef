package life

import (
	"fmt"
	"io"
	"log"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/particle-life-quadtree/quadtree"
)

// Option customises a Simulation at construction
type Option func(*Simulation)

// WithLogger routes data-anomaly reports to l
func WithLogger(l *log.Logger) Option {
	return func(s *Simulation) { s.log = l }
}

// WithMatrix starts the run from m instead of a random matrix
func WithMatrix(m Matrix) Option {
	return func(s *Simulation) { s.initial = m.Clone() }
}

// WithPlacement overrides the configured placement strategy
func WithPlacement(p Placement) Option {
	return func(s *Simulation) { s.place = p }
}

// Simulation drives one run: it owns the particles, the index and the
// attraction matrix. It is not safe for concurrent use.
type Simulation struct {
	cfg    Config
	domain quadtree.Boundary

	store       *Store
	index       NeighborIndex
	interaction Interaction
	kinematics  Kinematics

	initial    Matrix
	matrix     Matrix
	scheduleOn bool
	clock      Clock

	src   Source
	place Placement
	log   *log.Logger

	// per-frame scratch
	neighbors []Particle
	pending   []Particle
	sprites   []Sprite
}

// New validates cfg and seeds a run from src
func New(cfg Config, src Source, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidConfig)
	}

	s := &Simulation{
		cfg:        cfg,
		domain:     quadtree.Boundary{Width: cfg.Width, Height: cfg.Height},
		src:        src,
		scheduleOn: cfg.Schedule.Enabled(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		s.log = log.New(io.Discard, "", 0)
	}
	if s.initial.Size() == 0 {
		s.initial = RandomMatrix(cfg.Colors, src)
	} else if s.initial.Size() != cfg.Colors {
		return nil, fmt.Errorf("%w: matrix is %dx%[2]d for %d colors", ErrInvalidConfig, s.initial.Size(), cfg.Colors)
	}
	if s.place == nil {
		s.place = placementFor(cfg, src)
	}

	switch cfg.Index {
	case IndexBrute:
		s.index = NewBruteIndex(cfg.Periodic)
	default:
		qi, err := NewQuadIndex(s.domain, cfg.Capacity, cfg.Periodic)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		s.index = qi
	}

	switch cfg.Interaction {
	case InteractionCollision:
		s.interaction = CollisionInteraction{Restitution: cfg.Restitution, MaxRadius: cfg.Radius}
	default:
		s.interaction = ForceInteraction{Threshold: cfg.Threshold, Gain: cfg.ForceGain}
	}

	switch cfg.Kinematics {
	case KinematicsGravity:
		s.kinematics = GravityKinematics{
			Gravity:     r2.Vec{Y: cfg.Gravity},
			Restitution: cfg.Restitution,
			RestSpeed:   cfg.RestSpeed,
		}
	default:
		s.kinematics = WrapKinematics{HalfLife: cfg.HalfLife}
	}

	s.Restart()
	return s, nil
}

func placementFor(cfg Config, src Source) Placement {
	if cfg.Placement == PlacementPerlin {
		return NewPerlinPlacement(cfg.Seed+int64(src.Intn(math.MaxInt32)), cfg.NoiseScale)
	}
	return UniformPlacement{}
}

// Restart re-seeds the particles, resets the clock and restores the initial
// matrix
func (s *Simulation) Restart() {
	s.store = NewStore(s.cfg.Particles, s.cfg.Colors, s.cfg.Radius, s.cfg.MaxSpeed, s.domain, s.src, s.place)
	s.matrix = s.initial.Clone()
	s.clock = Clock{}
}

// RandomizeMatrix draws a new matrix and makes it the restart matrix
func (s *Simulation) RandomizeMatrix() {
	s.initial = RandomMatrix(s.cfg.Colors, s.src)
	s.matrix = s.initial.Clone()
}

// SetMatrix replaces the live matrix
func (s *Simulation) SetMatrix(m Matrix) error {
	if m.Size() != s.cfg.Colors {
		return fmt.Errorf("%w: matrix is %dx%[2]d for %d colors", ErrInvalidConfig, m.Size(), s.cfg.Colors)
	}
	s.matrix = m.Clone()
	return nil
}

// ToggleSchedule switches matrix evolution on or off; it stays off when the
// config has no schedule
func (s *Simulation) ToggleSchedule() bool {
	s.scheduleOn = !s.scheduleOn && s.cfg.Schedule.Enabled()
	return s.scheduleOn
}

// SetUpdate switches between sequential and simultaneous updates
func (s *Simulation) SetUpdate(policy string) error {
	if err := oneOf("update", policy, UpdateSequential, UpdateSimultaneous); err != nil {
		return err
	}
	s.cfg.Update = policy
	return nil
}

// Resize moves the domain to a new viewport size, wrapping particles that
// now lie outside it
func (s *Simulation) Resize(width, height float64) error {
	cfg := s.cfg
	cfg.Width, cfg.Height = width, height
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.cfg = cfg
	s.domain = quadtree.Boundary{Width: width, Height: height}
	ps := s.store.Particles()
	for i := range ps {
		ps[i].Pos = torus(ps[i].Pos, s.domain)
	}
	return nil
}

// Step advances the run by one frame of elapsed wall-clock seconds and
// returns the particles to draw. The returned slice is reused by the next
// call.
func (s *Simulation) Step(elapsed float64) []Sprite {
	dt := elapsed * s.cfg.Speed
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	if dt > s.cfg.MaxDt {
		dt = s.cfg.MaxDt
	}

	s.clock = s.clock.Tick(dt)
	if s.scheduleOn {
		s.matrix = s.cfg.Schedule.Apply(s.matrix, s.clock.Frame)
	}

	ps := s.store.Particles()
	s.index.Rebuild(ps, s.domain)
	if n := s.index.Dropped(); n > 0 {
		s.log.Printf("frame %d: %d particles outside %v left out of the index", s.clock.Frame, n, s.domain)
	}

	if s.cfg.Update == UpdateSimultaneous {
		// Everyone reads the frame-start index; commit at the end
		s.pending = append(s.pending[:0], ps...)
		for i := range s.pending {
			s.advance(&s.pending[i], dt)
		}
		copy(ps, s.pending)
	} else {
		// Gauss-Seidel order: later particles see earlier ones already moved
		for i := range ps {
			old := ps[i]
			s.advance(&ps[i], dt)
			s.index.Update(old, ps[i])
		}
	}

	s.sprites = s.store.Sprites(s.sprites[:0])
	return s.sprites
}

func (s *Simulation) advance(p *Particle, dt float64) {
	s.neighbors = s.index.Neighbors(*p, s.interaction.Reach(*p), s.neighbors[:0])
	acc := s.interaction.Apply(p, s.neighbors, s.matrix)
	s.kinematics.Step(p, acc, dt, s.domain)
}

func (s *Simulation) Config() Config             { return s.cfg }
func (s *Simulation) Domain() quadtree.Boundary { return s.domain }
func (s *Simulation) Clock() Clock               { return s.clock }
func (s *Simulation) Matrix() Matrix             { return s.matrix }
func (s *Simulation) ScheduleOn() bool           { return s.scheduleOn }

// Particles exposes the live particle slice
func (s *Simulation) Particles() []Particle { return s.store.Particles() }

// Nodes returns the index cells from the last step, for a debug overlay
func (s *Simulation) Nodes(dst []quadtree.Boundary) []quadtree.Boundary {
	return s.index.Nodes(dst)
}
