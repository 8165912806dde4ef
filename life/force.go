package life

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// Beta is the normalised radius of the universal repulsive core
	Beta = 0.3

	// MinDistance guards direction normalisation; closer pairs contribute nothing
	MinDistance = 1e-9
)

// Force is the particle-life kernel at normalised distance r with attraction
// factor a. Inside Beta every pair repels; between Beta and 1 a triangular
// kernel peaking at (1+Beta)/2 is scaled by a; beyond 1 nothing.
func Force(r, a float64) float64 {
	switch {
	case r < Beta:
		return r/Beta - 1
	case r < 1:
		return a * (1 - math.Abs(2*r-1-Beta)/(1-Beta))
	default:
		return 0
	}
}

// ForceAt looks the attraction factor up in m
func ForceAt(r float64, a, b Color, m Matrix) float64 {
	return Force(r, m.At(a, b))
}

// Accumulate sums the kernel over neighbours along the self→neighbour unit
// vectors. Positive values pull self towards the neighbour.
func Accumulate(self Particle, neighbors []Particle, threshold float64, m Matrix) r2.Vec {
	var sum r2.Vec
	for _, n := range neighbors {
		if n.Index == self.Index {
			continue
		}
		d := r2.Sub(n.Pos, self.Pos)
		dist := r2.Norm(d)
		if dist < MinDistance || dist >= threshold {
			continue
		}
		f := ForceAt(dist/threshold, self.Color, n.Color, m)
		sum = r2.Add(sum, r2.Scale(f/dist, d))
	}
	return sum
}

// Interaction turns a particle's neighbourhood into an acceleration. It may
// also correct the particle's position or velocity directly.
type Interaction interface {
	// Reach is the half-extent of the neighbourhood window around p
	Reach(p Particle) float64
	Apply(p *Particle, neighbors []Particle, m Matrix) r2.Vec
}

// ForceInteraction is the particle-life force law
type ForceInteraction struct {
	Threshold float64
	Gain      float64 // acceleration = sum · Gain · Threshold
}

func (f ForceInteraction) Reach(Particle) float64 { return f.Threshold }

func (f ForceInteraction) Apply(p *Particle, neighbors []Particle, m Matrix) r2.Vec {
	return r2.Scale(f.Gain*f.Threshold, Accumulate(*p, neighbors, f.Threshold, m))
}
