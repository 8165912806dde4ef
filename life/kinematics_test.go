package life

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/particle-life-quadtree/quadtree"
)

var box100 = quadtree.Boundary{Width: 100, Height: 100}

func TestDecay(t *testing.T) {
	const tau = 0.02
	if d := Decay(tau, tau); d != 0.5 {
		t.Errorf("Decay(tau) = %g, want 0.5", d)
	}
	if d := Decay(2*tau, tau); math.Abs(d-0.25) > tol {
		t.Errorf("Decay(2tau) = %g, want 0.25", d)
	}
	if d := Decay(1e-12, tau); math.Abs(d-1) > 1e-9 {
		t.Errorf("Decay(dt->0) = %g, want ~1", d)
	}
	if d := Decay(0, tau); d != 1 {
		t.Errorf("Decay(0) = %g, want 1", d)
	}
}

func TestWrapCrossesRightEdgeSameStep(t *testing.T) {
	k := WrapKinematics{HalfLife: 0.02}
	p := Particle{Pos: r2.Vec{X: 99, Y: 50}, Vel: r2.Vec{X: 200}}

	k.Step(&p, r2.Vec{}, 0.01, box100)

	want := 200 * Decay(0.01, 0.02) * 0.01
	if math.Abs(p.Pos.X-want) > 1e-9 {
		t.Errorf("expected x=%g near the left edge, got %g", want, p.Pos.X)
	}
	if p.Pos.Y != 50 {
		t.Errorf("y drifted to %g", p.Pos.Y)
	}
}

func TestWrapAccountsForRadius(t *testing.T) {
	k := WrapKinematics{HalfLife: 0.02}
	p := Particle{Pos: r2.Vec{X: 50, Y: 3}, Vel: r2.Vec{Y: -200}, Radius: 2}

	k.Step(&p, r2.Vec{}, 0.01, box100)

	// Heading below y=2 (edge + radius): teleported to 98 then moved up
	if p.Pos.Y < 90 || p.Pos.Y > 98 {
		t.Errorf("expected particle near the bottom edge, got y=%g", p.Pos.Y)
	}
}

func TestWrapRestingParticle(t *testing.T) {
	k := WrapKinematics{HalfLife: 0.02}
	p := Particle{Pos: r2.Vec{X: 50, Y: 50}}
	k.Step(&p, r2.Vec{}, 1.0/60, box100)
	if p.Pos != (r2.Vec{X: 50, Y: 50}) || p.Vel != (r2.Vec{}) {
		t.Errorf("resting particle moved: %+v", p)
	}
}

func TestWrapFoldsOvershoot(t *testing.T) {
	k := WrapKinematics{HalfLife: 1}
	// Moving left slowly, then a huge push right after the edge test
	p := Particle{Pos: r2.Vec{X: 99.5, Y: 50}, Vel: r2.Vec{X: -1}}
	k.Step(&p, r2.Vec{X: 10000}, 0.01, box100)
	if !box100.Contains(p.Pos) {
		t.Errorf("particle left the domain: %v", p.Pos)
	}
}

func TestGravityClosedForm(t *testing.T) {
	k := GravityKinematics{Gravity: r2.Vec{Y: 10}, Restitution: 0.8}
	p := Particle{Pos: r2.Vec{X: 50, Y: 10}}

	k.Step(&p, r2.Vec{}, 1, quadtree.Boundary{Width: 100, Height: 1000})

	if p.Pos.Y != 15 || p.Vel.Y != 10 {
		t.Errorf("expected y=15 v=10, got y=%g v=%g", p.Pos.Y, p.Vel.Y)
	}
}

func TestGravityFloorBounce(t *testing.T) {
	k := GravityKinematics{Restitution: 0.8, RestSpeed: 5}

	p := Particle{Pos: r2.Vec{X: 50, Y: 95}, Vel: r2.Vec{Y: 100}, Radius: 5}
	k.Step(&p, r2.Vec{}, 0.01, box100)
	if p.Pos.Y != 95 {
		t.Errorf("expected y clamped to 95, got %g", p.Pos.Y)
	}
	if math.Abs(p.Vel.Y+80) > tol {
		t.Errorf("expected reflected velocity -80, got %g", p.Vel.Y)
	}

	// Slow bounce settles
	p = Particle{Pos: r2.Vec{X: 50, Y: 95}, Vel: r2.Vec{Y: 3}, Radius: 5}
	k.Step(&p, r2.Vec{}, 0.01, box100)
	if p.Vel.Y != 0 {
		t.Errorf("expected micro-bounce to stop, got %g", p.Vel.Y)
	}
}

func TestGravitySettlesOnFloor(t *testing.T) {
	cfg := BounceConfig()
	k := GravityKinematics{Gravity: r2.Vec{Y: cfg.Gravity}, Restitution: cfg.Restitution, RestSpeed: cfg.RestSpeed}
	domain := quadtree.Boundary{Width: 100, Height: 200}
	const dt = 1.0 / 60
	floor := domain.MaxY() - 6

	// Lying on the floor: no jitter from the frame's worth of gravity
	p := Particle{Pos: r2.Vec{X: 50, Y: floor}, Radius: 6}
	for i := 0; i < 120; i++ {
		k.Step(&p, r2.Vec{}, dt, domain)
		if p.Vel.Y != 0 || p.Pos.Y != floor {
			t.Fatalf("frame %d: resting particle moved to y=%g vy=%g", i, p.Pos.Y, p.Vel.Y)
		}
	}

	// Dropped: bounces die out and it comes to rest
	p = Particle{Pos: r2.Vec{X: 50, Y: 150}, Radius: 6}
	settled := -1
	for i := 0; i < 600; i++ {
		k.Step(&p, r2.Vec{}, dt, domain)
		if p.Vel.Y == 0 && p.Pos.Y == floor {
			if settled < 0 {
				settled = i
			}
		} else {
			settled = -1
		}
	}
	if settled < 0 {
		t.Fatalf("dropped particle still bouncing after 600 frames: y=%g vy=%g", p.Pos.Y, p.Vel.Y)
	}
	if settled > 540 {
		t.Errorf("expected particle to settle well before the end, settled at frame %d", settled)
	}
}

func TestGravityWalls(t *testing.T) {
	k := GravityKinematics{Restitution: 0.5}
	p := Particle{Pos: r2.Vec{X: 1, Y: 50}, Vel: r2.Vec{X: -100}}
	k.Step(&p, r2.Vec{}, 0.1, box100)
	if p.Pos.X != 0 || p.Vel.X != 50 {
		t.Errorf("expected x=0 v=50, got x=%g v=%g", p.Pos.X, p.Vel.X)
	}
}

func TestClockTick(t *testing.T) {
	c := Clock{}.Tick(0.5).Tick(0.25)
	if c.Frame != 2 || c.Time != 0.75 {
		t.Errorf("unexpected clock %+v", c)
	}
}
