package life

import (
	"fmt"
	"strings"
)

// Matrix is the square attraction table indexed by (from, to) colour.
// Values live in [-1, 1]: positive attracts, negative repels.
type Matrix struct {
	n int
	v []float64
}

// NewMatrix returns an n×n matrix of zeros
func NewMatrix(n int) Matrix {
	return Matrix{n: n, v: make([]float64, n*n)}
}

// RandomMatrix fills an n×n matrix uniformly in [-1, 1]
func RandomMatrix(n int, src Source) Matrix {
	m := NewMatrix(n)
	for i := range m.v {
		m.v[i] = src.Float64()*2 - 1
	}
	return m
}

// MatrixFromRows copies a square table
func MatrixFromRows(rows [][]float64) (Matrix, error) {
	m := NewMatrix(len(rows))
	for i, row := range rows {
		if len(row) != m.n {
			return Matrix{}, fmt.Errorf("%w: matrix row %d has %d entries, want %d", ErrInvalidConfig, i, len(row), m.n)
		}
		copy(m.v[i*m.n:], row)
	}
	return m, nil
}

func (m Matrix) Size() int { return m.n }

// At returns the factor applied to the force colour a feels from colour b
func (m Matrix) At(a, b Color) float64 {
	return m.v[int(a)*m.n+int(b)]
}

// Set writes in place; matrices sharing storage see the change
func (m Matrix) Set(a, b Color, f float64) {
	m.v[int(a)*m.n+int(b)] = f
}

func (m Matrix) Clone() Matrix {
	c := Matrix{n: m.n, v: make([]float64, len(m.v))}
	copy(c.v, m.v)
	return c
}

// Rows copies the table out as nested slices
func (m Matrix) Rows() [][]float64 {
	rows := make([][]float64, m.n)
	for i := range rows {
		rows[i] = append([]float64(nil), m.v[i*m.n:(i+1)*m.n]...)
	}
	return rows
}

func (m Matrix) String() string {
	var sb strings.Builder
	for i := 0; i < m.n; i++ {
		for j := 0; j < m.n; j++ {
			if j > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%+.2f", m.v[i*m.n+j])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Schedule evolves the matrix while a run is in progress. Every N frames one
// entry, walking the table in row-major order, moves by Step. Every <= 0
// turns the schedule off.
type Schedule struct {
	Every int     `toml:"every"`
	Step  float64 `toml:"step"`
}

func (s Schedule) Enabled() bool { return s.Every > 0 }

// Apply returns the matrix for the given frame. It never mutates m: frames
// that change an entry get a fresh copy.
func (s Schedule) Apply(m Matrix, frame uint64) Matrix {
	if !s.Enabled() || m.n == 0 || frame == 0 || frame%uint64(s.Every) != 0 {
		return m
	}
	k := int((frame/uint64(s.Every) - 1) % uint64(m.n*m.n))

	next := m.Clone()
	f := next.v[k] + s.Step
	// Leaving [-1, 1] wraps to the opposite end
	for f > 1 {
		f -= 2
	}
	for f < -1 {
		f += 2
	}
	next.v[k] = f
	return next
}
