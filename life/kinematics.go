package life

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/particle-life-quadtree/quadtree"
)

// Kinematics advances one particle by dt under acceleration acc and keeps it
// inside domain
type Kinematics interface {
	Step(p *Particle, acc r2.Vec, dt float64, domain quadtree.Boundary)
}

// Decay is the velocity factor after dt for the given half-life
func Decay(dt, halfLife float64) float64 {
	return math.Pow(0.5, dt/halfLife)
}

// WrapKinematics damps velocity exponentially and wraps particles around the
// domain edges
type WrapKinematics struct {
	HalfLife float64
}

func (w WrapKinematics) Step(p *Particle, acc r2.Vec, dt float64, domain quadtree.Boundary) {
	// Wrap is decided on the current position and velocity, so a particle
	// heading over an edge reappears on the other side this step
	next := r2.Add(p.Pos, r2.Scale(dt, p.Vel))
	r := p.Radius
	if next.X > domain.MaxX()-r {
		p.Pos.X = domain.X + r
	} else if next.X < domain.X+r {
		p.Pos.X = domain.MaxX() - r
	}
	if next.Y > domain.MaxY()-r {
		p.Pos.Y = domain.Y + r
	} else if next.Y < domain.Y+r {
		p.Pos.Y = domain.MaxY() - r
	}

	p.Vel = r2.Add(r2.Scale(Decay(dt, w.HalfLife), p.Vel), r2.Scale(dt, acc))
	p.Pos = r2.Add(p.Pos, r2.Scale(dt, p.Vel))

	// Velocity changed after the edge test; fold any overshoot back in
	p.Pos = torus(p.Pos, domain)
}

func torus(p r2.Vec, domain quadtree.Boundary) r2.Vec {
	if domain.Width > 0 && (p.X < domain.X || p.X > domain.MaxX()) {
		p.X = domain.X + math.Mod(math.Mod(p.X-domain.X, domain.Width)+domain.Width, domain.Width)
	}
	if domain.Height > 0 && (p.Y < domain.Y || p.Y > domain.MaxY()) {
		p.Y = domain.Y + math.Mod(math.Mod(p.Y-domain.Y, domain.Height)+domain.Height, domain.Height)
	}
	return p
}

// GravityKinematics integrates constant gravity in closed form and bounces
// off the domain walls
type GravityKinematics struct {
	Gravity     r2.Vec
	Restitution float64
	RestSpeed   float64 // floor bounces slower than this, net of one frame of gravity, stop dead
}

func (g GravityKinematics) Step(p *Particle, acc r2.Vec, dt float64, domain quadtree.Boundary) {
	a := r2.Add(g.Gravity, acc)
	p.Pos = r2.Add(r2.Add(p.Pos, r2.Scale(dt, p.Vel)), r2.Scale(0.5*dt*dt, a))
	p.Vel = r2.Add(p.Vel, r2.Scale(dt, a))

	r := p.Radius
	// Floor; y grows downwards
	if floor := domain.MaxY() - r; p.Pos.Y > floor {
		// Clamping lifts the particle by its overshoot; take the matching
		// energy out of the impact speed so repeated bounces cannot pump
		if over := p.Pos.Y - floor; a.Y > 0 && p.Vel.Y > 0 {
			p.Vel.Y = math.Sqrt(math.Max(0, p.Vel.Y*p.Vel.Y-2*a.Y*over))
		}
		p.Pos.Y = floor
		if p.Vel.Y > 0 {
			p.Vel.Y = -p.Vel.Y * g.Restitution
		}
		// A particle lying on the floor picks up |g|·dt every frame before it
		// is clamped back, so that much rebound is not a real bounce
		if math.Abs(p.Vel.Y) < g.RestSpeed+math.Abs(g.Gravity.Y)*dt {
			p.Vel.Y = 0
		}
	} else if p.Pos.Y < domain.Y+r {
		p.Pos.Y = domain.Y + r
		if p.Vel.Y < 0 {
			p.Vel.Y = -p.Vel.Y * g.Restitution
		}
	}

	if p.Pos.X > domain.MaxX()-r {
		p.Pos.X = domain.MaxX() - r
		if p.Vel.X > 0 {
			p.Vel.X = -p.Vel.X * g.Restitution
		}
	} else if p.Pos.X < domain.X+r {
		p.Pos.X = domain.X + r
		if p.Vel.X < 0 {
			p.Vel.X = -p.Vel.X * g.Restitution
		}
	}
}
