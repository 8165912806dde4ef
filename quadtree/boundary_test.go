package quadtree

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestNewBoundary(t *testing.T) {
	if _, err := NewBoundary(0, 0, -1, 5); !errors.Is(err, ErrNegativeSize) {
		t.Errorf("expected ErrNegativeSize, got %v", err)
	}
	b, err := NewBoundary(1, 2, 0, 0)
	if err != nil {
		t.Fatalf("zero-size boundary rejected: %v", err)
	}
	if !b.Contains(r2.Vec{X: 1, Y: 2}) {
		t.Error("degenerate boundary should contain its own corner")
	}
}

func TestBoundaryIntersects(t *testing.T) {
	b := Boundary{X: 0, Y: 0, Width: 10, Height: 10}

	tests := []struct {
		name string
		o    Boundary
		want bool
	}{
		{"inside", Boundary{X: 2, Y: 2, Width: 1, Height: 1}, true},
		{"enclosing", Boundary{X: -5, Y: -5, Width: 30, Height: 30}, true},
		{"touching edge", Boundary{X: 10, Y: 3, Width: 5, Height: 1}, true},
		{"touching corner", Boundary{X: -4, Y: -4, Width: 4, Height: 4}, true},
		{"left", Boundary{X: -5, Y: 0, Width: 4.9, Height: 10}, false},
		{"below", Boundary{X: 0, Y: 10.01, Width: 10, Height: 10}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Intersects(tt.o); got != tt.want {
				t.Errorf("Intersects(%v) = %v, want %v", tt.o, got, tt.want)
			}
			if got := tt.o.Intersects(b); got != tt.want {
				t.Errorf("symmetric Intersects(%v) = %v, want %v", tt.o, got, tt.want)
			}
		})
	}
}

func TestAroundAndTranslate(t *testing.T) {
	b := Around(r2.Vec{X: 5, Y: 5}, 2)
	if b != (Boundary{X: 3, Y: 3, Width: 4, Height: 4}) {
		t.Errorf("unexpected window %v", b)
	}
	if c := b.Center(); c != (r2.Vec{X: 5, Y: 5}) {
		t.Errorf("expected centre (5,5), got %v", c)
	}
	moved := b.Translate(r2.Vec{X: -10, Y: 1})
	if moved.X != -7 || moved.Y != 4 || moved.Width != 4 {
		t.Errorf("unexpected translation %v", moved)
	}
}
