package life

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig wraps every construction-time validation failure
var ErrInvalidConfig = errors.New("life: invalid config")

// MaxColors bounds the number of species
const MaxColors = 16

// Policy names accepted in Config
const (
	InteractionForce     = "force"
	InteractionCollision = "collision"

	KinematicsWrap    = "wrap"
	KinematicsGravity = "gravity"

	UpdateSequential   = "sequential"
	UpdateSimultaneous = "simultaneous"

	IndexQuadtree = "quadtree"
	IndexBrute    = "brute"

	PlacementUniform = "uniform"
	PlacementPerlin  = "perlin"
)

// Config holds every parameter of a run
type Config struct {
	Width  float64 `toml:"width"`  // domain size, normally the viewport
	Height float64 `toml:"height"`

	Particles int     `toml:"particles"`
	Colors    int     `toml:"colors"`
	Radius    float64 `toml:"radius"`
	MaxSpeed  float64 `toml:"max_speed"` // initial velocity components are drawn in ±MaxSpeed

	Capacity int `toml:"capacity"` // quadtree node capacity

	// Force model
	Threshold float64 `toml:"threshold"` // interaction radius
	ForceGain float64 `toml:"force_gain"`
	HalfLife  float64 `toml:"half_life"` // velocity half-life, simulated seconds

	// Time
	Speed float64 `toml:"speed"`  // multiplier on wall-clock frame time
	MaxDt float64 `toml:"max_dt"` // cap on a single step after scaling

	Interaction string `toml:"interaction"`
	Kinematics  string `toml:"kinematics"`
	Update      string `toml:"update"`
	Index       string `toml:"index"`
	Periodic    bool   `toml:"periodic"` // neighbour search across wrapped edges

	Placement  string  `toml:"placement"`
	NoiseScale float64 `toml:"noise_scale"`

	Schedule Schedule `toml:"schedule"`

	// Gravity kinematics
	Gravity     float64 `toml:"gravity"`
	Restitution float64 `toml:"restitution"`
	RestSpeed   float64 `toml:"rest_speed"`

	Seed int64 `toml:"seed"`
}

// DefaultConfig is a particle-life run on an 800×600 viewport
func DefaultConfig() Config {
	return Config{
		Width:       800,
		Height:      600,
		Particles:   1500,
		Colors:      4,
		Radius:      2,
		MaxSpeed:    0,
		Capacity:    8,
		Threshold:   50,
		ForceGain:   2,
		HalfLife:    0.02,
		Speed:       1,
		MaxDt:       0.05,
		Interaction: InteractionForce,
		Kinematics:  KinematicsWrap,
		Update:      UpdateSequential,
		Index:       IndexQuadtree,
		Periodic:    true,
		Placement:   PlacementUniform,
		NoiseScale:  150,
		Schedule:    Schedule{Every: 1000, Step: 0.1},
		Gravity:     500,
		Restitution: 0.8,
		RestSpeed:   5,
	}
}

// BounceConfig is the bouncing-balls variant: gravity, walls and collisions
func BounceConfig() Config {
	c := DefaultConfig()
	c.Particles = 300
	c.Radius = 6
	c.MaxSpeed = 150
	c.Interaction = InteractionCollision
	c.Kinematics = KinematicsGravity
	c.Periodic = false
	c.Schedule = Schedule{}
	return c
}

// Reach is the neighbourhood half-extent the configured interaction needs
func (c Config) Reach() float64 {
	if c.Interaction == InteractionCollision {
		return 2 * c.Radius
	}
	return c.Threshold
}

// Validate reports the first problem found
func (c Config) Validate() error {
	bad := func(format string, args ...any) error {
		return fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...)
	}
	finite := func(vs ...float64) bool {
		for _, v := range vs {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
		return true
	}

	switch {
	case !finite(c.Width, c.Height, c.Radius, c.MaxSpeed, c.Threshold, c.ForceGain,
		c.HalfLife, c.Speed, c.MaxDt, c.Gravity, c.Restitution, c.RestSpeed, c.Schedule.Step):
		return bad("non-finite parameter")
	case c.Width <= 0 || c.Height <= 0:
		return bad("domain %gx%g must be positive", c.Width, c.Height)
	case c.Particles < 0:
		return bad("particles %d is negative", c.Particles)
	case c.Colors < 1 || c.Colors > MaxColors:
		return bad("colors %d outside [1, %d]", c.Colors, MaxColors)
	case c.Radius < 0:
		return bad("radius %g is negative", c.Radius)
	case c.MaxSpeed < 0:
		return bad("max speed %g is negative", c.MaxSpeed)
	case c.Capacity < 1:
		return bad("capacity %d must be at least 1", c.Capacity)
	case c.Threshold <= 0:
		return bad("threshold %g must be positive", c.Threshold)
	case c.HalfLife <= 0:
		return bad("half-life %g must be positive", c.HalfLife)
	case c.Speed < 0:
		return bad("speed %g is negative", c.Speed)
	case c.MaxDt <= 0:
		return bad("max dt %g must be positive", c.MaxDt)
	case c.Schedule.Every < 0:
		return bad("schedule interval %d is negative", c.Schedule.Every)
	case c.Restitution < 0 || c.Restitution > 1:
		return bad("restitution %g outside [0, 1]", c.Restitution)
	case c.RestSpeed < 0:
		return bad("rest speed %g is negative", c.RestSpeed)
	}

	if err := oneOf("interaction", c.Interaction, InteractionForce, InteractionCollision); err != nil {
		return err
	}
	if err := oneOf("kinematics", c.Kinematics, KinematicsWrap, KinematicsGravity); err != nil {
		return err
	}
	if err := oneOf("update", c.Update, UpdateSequential, UpdateSimultaneous); err != nil {
		return err
	}
	if err := oneOf("index", c.Index, IndexQuadtree, IndexBrute); err != nil {
		return err
	}
	if err := oneOf("placement", c.Placement, PlacementUniform, PlacementPerlin); err != nil {
		return err
	}

	if c.Periodic {
		if c.Kinematics != KinematicsWrap {
			return bad("periodic neighbour search needs %q kinematics", KinematicsWrap)
		}
		if 2*c.Reach() > math.Min(c.Width, c.Height) {
			return bad("periodic reach %g exceeds half the domain", c.Reach())
		}
	}
	return nil
}

func oneOf(field, v string, allowed ...string) error {
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return fmt.Errorf("%w: %s %q not one of %v", ErrInvalidConfig, field, v, allowed)
}
