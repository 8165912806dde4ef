// Package quadtree is a region quadtree over point-like values. The tree
// stores copies and is meant to be rebuilt from scratch whenever the points
// move; it never holds references into the caller's storage.
package quadtree

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// ErrBadCapacity is returned for node capacities below one
var ErrBadCapacity = errors.New("quadtree: capacity must be at least 1")

// DefaultMaxDepth bounds subdivision so coincident points cannot recurse forever
const DefaultMaxDepth = 24

// Point is anything with a 2-D coordinate
type Point interface {
	Coord2() r2.Vec
}

// Result reports what Insert did with a value
type Result int

const (
	Placed   Result = iota // stored in this node or a descendant
	Outside                // outside the node boundary, tree untouched
	Unplaced               // inside the boundary but no child accepted it
)

func (r Result) String() string {
	switch r {
	case Placed:
		return "placed"
	case Outside:
		return "outside"
	case Unplaced:
		return "unplaced"
	}
	return fmt.Sprintf("Result(%d)", int(r))
}

// CapacityPolicy derives a child's capacity from its parent's
type CapacityPolicy func(parent int) int

// InheritCapacity gives every child the parent's capacity
func InheritCapacity(parent int) int { return parent }

// ScaledCapacity multiplies the capacity by f at each level, never below 1
func ScaledCapacity(f float64) CapacityPolicy {
	return func(parent int) int {
		c := int(float64(parent) * f)
		if c < 1 {
			c = 1
		}
		return c
	}
}

type settings struct {
	maxDepth int
	policy   CapacityPolicy
}

// Option configures a tree at construction
type Option func(*settings)

// WithMaxDepth overrides DefaultMaxDepth
func WithMaxDepth(d int) Option {
	return func(s *settings) { s.maxDepth = d }
}

// WithCapacityPolicy overrides InheritCapacity
func WithCapacityPolicy(p CapacityPolicy) Option {
	return func(s *settings) { s.policy = p }
}

// Tree is one quadtree node; the root is the handle callers keep
type Tree[T Point] struct {
	boundary Boundary
	capacity int
	depth    int
	cfg      *settings

	points   []T
	children [4]*Tree[T] // NW, NE, SW, SE
	divided  bool
}

// New creates an empty root node covering b
func New[T Point](b Boundary, capacity int, opts ...Option) (*Tree[T], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBadCapacity, capacity)
	}
	if b.Width < 0 || b.Height < 0 {
		return nil, fmt.Errorf("%w: %v", ErrNegativeSize, b)
	}
	cfg := &settings{maxDepth: DefaultMaxDepth, policy: InheritCapacity}
	for _, o := range opts {
		o(cfg)
	}
	return newNode[T](b, capacity, 0, cfg), nil
}

func newNode[T Point](b Boundary, capacity, depth int, cfg *settings) *Tree[T] {
	return &Tree[T]{
		boundary: b,
		capacity: capacity,
		depth:    depth,
		cfg:      cfg,
		points:   make([]T, 0, capacity),
	}
}

func (t *Tree[T]) Boundary() Boundary { return t.boundary }
func (t *Tree[T]) Capacity() int      { return t.capacity }
func (t *Tree[T]) Divided() bool      { return t.divided }

// Points returns the values held directly by this node
func (t *Tree[T]) Points() []T { return t.points }

// Children returns NW, NE, SW, SE; all nil until the node divides
func (t *Tree[T]) Children() [4]*Tree[T] { return t.children }

// Insert places p in this node or one of its descendants
func (t *Tree[T]) Insert(p T) Result {
	if !t.boundary.Contains(p.Coord2()) {
		return Outside
	}

	if !t.divided {
		if len(t.points) < t.capacity || t.depth >= t.cfg.maxDepth {
			t.points = append(t.points, p)
			return Placed
		}
		t.subdivide()
	}

	return t.insertIntoChild(p)
}

func (t *Tree[T]) insertIntoChild(p T) Result {
	for _, c := range t.children {
		if c.Insert(p) == Placed {
			return Placed
		}
	}
	return Unplaced
}

// subdivide quarters the node and moves its points into the children.
// Callers check t.divided first.
func (t *Tree[T]) subdivide() {
	capacity := t.cfg.policy(t.capacity)
	if capacity < 1 {
		capacity = 1
	}
	for i, q := range t.boundary.Quadrants() {
		t.children[i] = newNode[T](q, capacity, t.depth+1, t.cfg)
	}
	t.divided = true

	// Quadrants tile the parent exactly, so every point finds a child
	for _, p := range t.points {
		t.insertIntoChild(p)
	}
	t.points = nil
}

// Query appends to found every value whose position lies inside rng
func (t *Tree[T]) Query(rng Boundary, found []T) []T {
	if !t.boundary.Intersects(rng) {
		return found
	}

	for _, p := range t.points {
		if rng.Contains(p.Coord2()) {
			found = append(found, p)
		}
	}

	if t.divided {
		for _, c := range t.children {
			found = c.Query(rng, found)
		}
	}

	return found
}

// Remove deletes the first value at p's position for which same reports
// true. Only nodes containing that position are visited.
func (t *Tree[T]) Remove(p T, same func(T) bool) bool {
	pos := p.Coord2()
	if !t.boundary.Contains(pos) {
		return false
	}

	if !t.divided {
		for i, q := range t.points {
			if same(q) {
				t.points = append(t.points[:i], t.points[i+1:]...)
				return true
			}
		}
		return false
	}

	for _, c := range t.children {
		if c.Remove(p, same) {
			return true
		}
	}
	return false
}

// Clear resets the node to undivided and empty, dropping all subtrees
func (t *Tree[T]) Clear() {
	t.points = t.points[:0]
	t.children = [4]*Tree[T]{}
	t.divided = false
}

// Reset clears the tree and moves the root to a new boundary
func (t *Tree[T]) Reset(b Boundary) error {
	if b.Width < 0 || b.Height < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeSize, b)
	}
	t.Clear()
	t.boundary = b
	return nil
}

// Len counts the values stored in the subtree
func (t *Tree[T]) Len() int {
	n := len(t.points)
	if t.divided {
		for _, c := range t.children {
			n += c.Len()
		}
	}
	return n
}

// Boundaries appends the boundary of every node in the subtree, parents first
func (t *Tree[T]) Boundaries(dst []Boundary) []Boundary {
	dst = append(dst, t.boundary)
	if t.divided {
		for _, c := range t.children {
			dst = c.Boundaries(dst)
		}
	}
	return dst
}
