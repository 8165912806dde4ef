package life

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// CollisionInteraction resolves overlapping circles of equal mass. Each
// particle only corrects itself, so a pair is pushed apart by half the
// overlap on each side once both have been visited.
type CollisionInteraction struct {
	Restitution float64
	MaxRadius   float64 // largest radius in the store, sizes the search window
}

func (c CollisionInteraction) Reach(p Particle) float64 { return p.Radius + c.MaxRadius }

func (c CollisionInteraction) Apply(p *Particle, neighbors []Particle, _ Matrix) r2.Vec {
	for _, n := range neighbors {
		if n.Index == p.Index {
			continue
		}
		d := r2.Sub(p.Pos, n.Pos)
		dist := r2.Norm(d)
		minDist := p.Radius + n.Radius
		if dist >= minDist {
			continue
		}

		var normal r2.Vec
		if dist < MinDistance {
			// Coincident: split along x, direction decided by store order
			normal = r2.Vec{X: 1}
			if p.Index < n.Index {
				normal.X = -1
			}
		} else {
			normal = r2.Scale(1/dist, d)
		}

		p.Pos = r2.Add(p.Pos, r2.Scale((minDist-dist)/2, normal))

		// Only approaching pairs exchange momentum
		if rel := r2.Dot(r2.Sub(p.Vel, n.Vel), normal); rel < 0 {
			p.Vel = r2.Sub(p.Vel, r2.Scale((1+c.Restitution)/2*rel, normal))
		}
	}
	return r2.Vec{}
}
