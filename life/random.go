package life

import (
	"github.com/aquilax/go-perlin"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/particle-life-quadtree/quadtree"
)

// Source supplies randomness. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
	Intn(n int) int
}

// Uniform draws from [lo, hi)
func Uniform(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}

// Placement picks initial positions inside a domain
type Placement interface {
	Place(src Source, domain quadtree.Boundary) r2.Vec
}

// UniformPlacement spreads particles evenly over the domain
type UniformPlacement struct{}

func (UniformPlacement) Place(src Source, domain quadtree.Boundary) r2.Vec {
	return r2.Vec{
		X: Uniform(src, domain.X, domain.MaxX()),
		Y: Uniform(src, domain.Y, domain.MaxY()),
	}
}

const perlinTries = 32

// PerlinPlacement clusters particles where a Perlin noise field is high, by
// rejection sampling against the noise value
type PerlinPlacement struct {
	noise *perlin.Perlin
	scale float64
}

// NewPerlinPlacement builds a noise field; scale is the feature size in
// domain units
func NewPerlinPlacement(seed int64, scale float64) *PerlinPlacement {
	if scale <= 0 {
		scale = 100
	}
	return &PerlinPlacement{
		noise: perlin.NewPerlin(2, 2, 3, seed),
		scale: scale,
	}
}

// Density maps the noise at p to [0,1]
func (pp *PerlinPlacement) Density(p r2.Vec) float64 {
	d := (pp.noise.Noise2D(p.X/pp.scale, p.Y/pp.scale) + 1) / 2
	if d < 0 {
		return 0
	}
	if d > 1 {
		return 1
	}
	return d * d
}

func (pp *PerlinPlacement) Place(src Source, domain quadtree.Boundary) r2.Vec {
	var p r2.Vec
	for i := 0; i < perlinTries; i++ {
		p = UniformPlacement{}.Place(src, domain)
		if src.Float64() < pp.Density(p) {
			return p
		}
	}
	return p
}
