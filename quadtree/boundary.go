package quadtree

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// ErrNegativeSize is returned when a boundary is built with a negative extent
var ErrNegativeSize = errors.New("quadtree: negative boundary size")

// Boundary is an axis-aligned rectangle: a node's territory or a query window
type Boundary struct {
	X, Y          float64
	Width, Height float64
}

// NewBoundary validates the extent before returning the rectangle
func NewBoundary(x, y, width, height float64) (Boundary, error) {
	if width < 0 || height < 0 {
		return Boundary{}, fmt.Errorf("%w: %gx%g", ErrNegativeSize, width, height)
	}
	return Boundary{X: x, Y: y, Width: width, Height: height}, nil
}

// Around returns the square window of half-extent h centred on c
func Around(c r2.Vec, h float64) Boundary {
	return Boundary{X: c.X - h, Y: c.Y - h, Width: 2 * h, Height: 2 * h}
}

func (b Boundary) MaxX() float64 { return b.X + b.Width }
func (b Boundary) MaxY() float64 { return b.Y + b.Height }

// Center of the rectangle
func (b Boundary) Center() r2.Vec {
	return r2.Vec{X: b.X + b.Width/2, Y: b.Y + b.Height/2}
}

// Contains is inclusive on all four edges
func (b Boundary) Contains(p r2.Vec) bool {
	return p.X >= b.X && p.X <= b.MaxX() &&
		p.Y >= b.Y && p.Y <= b.MaxY()
}

// Intersects is an inclusive AABB overlap test
func (b Boundary) Intersects(o Boundary) bool {
	return !(o.X > b.MaxX() || o.MaxX() < b.X ||
		o.Y > b.MaxY() || o.MaxY() < b.Y)
}

// Translate shifts the rectangle by d
func (b Boundary) Translate(d r2.Vec) Boundary {
	b.X += d.X
	b.Y += d.Y
	return b
}

// Quadrants splits b into NW, NE, SW, SE. With y growing downwards (screen
// space) "north" is the low-y half.
func (b Boundary) Quadrants() [4]Boundary {
	w := b.Width / 2
	h := b.Height / 2
	// Far edges are derived from the parent so rounding never opens a gap
	mx := b.X + w
	my := b.Y + h
	return [4]Boundary{
		{X: b.X, Y: b.Y, Width: w, Height: h},
		{X: mx, Y: b.Y, Width: b.MaxX() - mx, Height: h},
		{X: b.X, Y: my, Width: w, Height: b.MaxY() - my},
		{X: mx, Y: my, Width: b.MaxX() - mx, Height: b.MaxY() - my},
	}
}

func (b Boundary) String() string {
	return fmt.Sprintf("[%g,%g %gx%g]", b.X, b.Y, b.Width, b.Height)
}
