// Package life is a particle-life simulator: particles of a few colours
// attract or repel each other through a colour-pair matrix, with neighbours
// found through a quadtree rebuilt every frame.
package life

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/particle-life-quadtree/quadtree"
)

// Color tags a particle's species; it indexes the attraction matrix
type Color int

// Particle is a single simulated body. Index is its slot in the store and
// is how neighbour lookups recognise the particle itself.
type Particle struct {
	Index  int
	Pos    r2.Vec
	Vel    r2.Vec
	Color  Color
	Radius float64
}

// Coord2 satisfies quadtree.Point
func (p Particle) Coord2() r2.Vec { return p.Pos }

// Sprite is what a renderer needs to draw one particle
type Sprite struct {
	X, Y   float64
	Radius float64
	Color  Color
}

// Store owns the particle state. The slice is fixed-size for a run.
type Store struct {
	particles []Particle
}

// NewStore seeds n particles inside domain using place for positions and src
// for velocities and colours
func NewStore(n, colors int, radius, speed float64, domain quadtree.Boundary, src Source, place Placement) *Store {
	s := &Store{particles: make([]Particle, n)}
	for i := range s.particles {
		s.particles[i] = Particle{
			Index: i,
			Pos:   place.Place(src, domain),
			Vel: r2.Vec{
				X: Uniform(src, -speed, speed),
				Y: Uniform(src, -speed, speed),
			},
			Color:  Color(src.Intn(colors)),
			Radius: radius,
		}
	}
	return s
}

func (s *Store) Len() int { return len(s.particles) }

// Particles exposes the backing slice; callers mutate in place
func (s *Store) Particles() []Particle { return s.particles }

// Sprites appends draw data for every particle to dst
func (s *Store) Sprites(dst []Sprite) []Sprite {
	for _, p := range s.particles {
		dst = append(dst, Sprite{X: p.Pos.X, Y: p.Pos.Y, Radius: p.Radius, Color: p.Color})
	}
	return dst
}
