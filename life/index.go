package life

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/particle-life-quadtree/quadtree"
)

// NeighborIndex answers "who is near p" for one frame. Returned particles are
// copies; with periodic search their positions are shifted to the image
// nearest the query, so callers can subtract positions directly.
type NeighborIndex interface {
	// Rebuild discards the previous frame and indexes ps inside domain
	Rebuild(ps []Particle, domain quadtree.Boundary)
	// Neighbors appends to dst every other particle in the square window of
	// half-extent reach around p
	Neighbors(p Particle, reach float64, dst []Particle) []Particle
	// Update replaces old's entry with its new state
	Update(old, updated Particle)
	// Dropped counts distinct particles currently missing from the index
	Dropped() int
	// Nodes appends the index's cell boundaries for debug drawing
	Nodes(dst []quadtree.Boundary) []quadtree.Boundary
}

// QuadIndex is the quadtree-backed index
type QuadIndex struct {
	tree     *quadtree.Tree[Particle]
	domain   quadtree.Boundary
	periodic bool
	dropped  dropSet
}

// NewQuadIndex builds an empty index with the given node capacity
func NewQuadIndex(domain quadtree.Boundary, capacity int, periodic bool) (*QuadIndex, error) {
	tree, err := quadtree.New[Particle](domain, capacity)
	if err != nil {
		return nil, err
	}
	return &QuadIndex{tree: tree, domain: domain, periodic: periodic, dropped: dropSet{}}, nil
}

func (q *QuadIndex) Rebuild(ps []Particle, domain quadtree.Boundary) {
	// domain was validated when the simulation accepted it
	_ = q.tree.Reset(domain)
	q.domain = domain
	clear(q.dropped)
	for _, p := range ps {
		q.dropped.mark(p.Index, q.tree.Insert(p) == quadtree.Placed)
	}
}

func (q *QuadIndex) Neighbors(p Particle, reach float64, dst []Particle) []Particle {
	window := quadtree.Around(p.Pos, reach)
	for _, shift := range images(q.domain, q.periodic) {
		// A neighbour at n is seen at n+shift; look for it at window-shift
		w := window.Translate(r2.Scale(-1, shift))
		if !q.domain.Intersects(w) {
			continue
		}
		start := len(dst)
		dst = q.tree.Query(w, dst)

		// Drop self and move images next to p, compacting in place
		kept := start
		for _, n := range dst[start:] {
			if n.Index == p.Index {
				continue
			}
			n.Pos = r2.Add(n.Pos, shift)
			dst[kept] = n
			kept++
		}
		dst = dst[:kept]
	}
	return dst
}

func (q *QuadIndex) Update(old, updated Particle) {
	q.tree.Remove(old, func(n Particle) bool { return n.Index == old.Index })
	q.dropped.mark(updated.Index, q.tree.Insert(updated) == quadtree.Placed)
}

func (q *QuadIndex) Dropped() int { return len(q.dropped) }

func (q *QuadIndex) Nodes(dst []quadtree.Boundary) []quadtree.Boundary {
	return q.tree.Boundaries(dst)
}

// Tree exposes the underlying quadtree
func (q *QuadIndex) Tree() *quadtree.Tree[Particle] { return q.tree }

func images(domain quadtree.Boundary, periodic bool) []r2.Vec {
	if !periodic {
		return []r2.Vec{{}}
	}
	w, h := domain.Width, domain.Height
	return []r2.Vec{
		{}, {X: -w}, {X: w}, {Y: -h}, {Y: h},
		{X: -w, Y: -h}, {X: w, Y: -h}, {X: -w, Y: h}, {X: w, Y: h},
	}
}

// BruteIndex scans every particle for every query: O(n²) per frame. It is
// the reference the quadtree is measured against.
type BruteIndex struct {
	ps       []Particle
	domain   quadtree.Boundary
	periodic bool
	dropped  dropSet
}

func NewBruteIndex(periodic bool) *BruteIndex {
	return &BruteIndex{periodic: periodic, dropped: dropSet{}}
}

func (b *BruteIndex) Rebuild(ps []Particle, domain quadtree.Boundary) {
	b.ps = append(b.ps[:0], ps...)
	b.domain = domain
	clear(b.dropped)
	for _, p := range ps {
		b.dropped.mark(p.Index, domain.Contains(p.Pos))
	}
}

func (b *BruteIndex) Neighbors(p Particle, reach float64, dst []Particle) []Particle {
	for _, n := range b.ps {
		if n.Index == p.Index || !b.domain.Contains(n.Pos) {
			continue
		}
		d := r2.Sub(n.Pos, p.Pos)
		if b.periodic {
			d = shortestDelta(d, b.domain)
		}
		if math.Abs(d.X) > reach || math.Abs(d.Y) > reach {
			continue
		}
		n.Pos = r2.Add(p.Pos, d)
		dst = append(dst, n)
	}
	return dst
}

func (b *BruteIndex) Update(old, updated Particle) {
	for i := range b.ps {
		if b.ps[i].Index == old.Index {
			b.ps[i] = updated
			break
		}
	}
	b.dropped.mark(updated.Index, b.domain.Contains(updated.Pos))
}

func (b *BruteIndex) Dropped() int { return len(b.dropped) }

func (b *BruteIndex) Nodes(dst []quadtree.Boundary) []quadtree.Boundary {
	return append(dst, b.domain)
}

// dropSet holds the store indices of particles left out of an index
type dropSet map[int]struct{}

func (d dropSet) mark(index int, placed bool) {
	if placed {
		delete(d, index)
	} else {
		d[index] = struct{}{}
	}
}

// shortestDelta picks the nearest periodic image of d on a torus the size of domain
func shortestDelta(d r2.Vec, domain quadtree.Boundary) r2.Vec {
	if d.X > domain.Width/2 {
		d.X -= domain.Width
	} else if d.X < -domain.Width/2 {
		d.X += domain.Width
	}
	if d.Y > domain.Height/2 {
		d.Y -= domain.Height
	} else if d.Y < -domain.Height/2 {
		d.Y += domain.Height
	}
	return d
}
