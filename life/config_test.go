package life

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultConfigsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig invalid: %v", err)
	}
	if err := BounceConfig().Validate(); err != nil {
		t.Errorf("BounceConfig invalid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative capacity", func(c *Config) { c.Capacity = -1 }},
		{"zero capacity", func(c *Config) { c.Capacity = 0 }},
		{"negative width", func(c *Config) { c.Width = -800 }},
		{"zero height", func(c *Config) { c.Height = 0 }},
		{"nan threshold", func(c *Config) { c.Threshold = math.NaN() }},
		{"too many colors", func(c *Config) { c.Colors = MaxColors + 1 }},
		{"no colors", func(c *Config) { c.Colors = 0 }},
		{"negative particles", func(c *Config) { c.Particles = -5 }},
		{"zero half-life", func(c *Config) { c.HalfLife = 0 }},
		{"unknown update", func(c *Config) { c.Update = "jacobi" }},
		{"unknown kinematics", func(c *Config) { c.Kinematics = "verlet" }},
		{"periodic with gravity", func(c *Config) { c.Kinematics = KinematicsGravity }},
		{"periodic reach too large", func(c *Config) { c.Threshold = 400 }},
		{"restitution above one", func(c *Config) { c.Restitution = 1.5 }},
		{"negative schedule", func(c *Config) { c.Schedule.Every = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mutate(&c)
			if err := c.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestConfigReach(t *testing.T) {
	c := DefaultConfig()
	if c.Reach() != c.Threshold {
		t.Errorf("force reach = %g, want %g", c.Reach(), c.Threshold)
	}
	b := BounceConfig()
	if b.Reach() != 2*b.Radius {
		t.Errorf("collision reach = %g, want %g", b.Reach(), 2*b.Radius)
	}
}
