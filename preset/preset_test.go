package preset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/olivierh59500/particle-life-quadtree/life"
)

func TestLoadDefaults(t *testing.T) {
	p, err := Load("life", "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p.Config != life.DefaultConfig() {
		t.Errorf("expected defaults, got %+v", p.Config)
	}
	if len(p.Options) != 0 {
		t.Errorf("expected no options, got %d", len(p.Options))
	}

	b, err := Load("bounce", "")
	if err != nil {
		t.Fatalf("Load bounce failed: %v", err)
	}
	if b.Config.Kinematics != life.KinematicsGravity {
		t.Errorf("expected gravity kinematics, got %q", b.Config.Kinematics)
	}

	if _, err := Load("nbody", ""); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("expected ErrUnknownMode, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.toml")
	data := `
particles = 250
colors = 2
update = "simultaneous"
matrix = [[0.5, -1.0], [1.0, 0.0]]

[schedule]
every = 300
step = 0.05
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := Load("life", path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p.Config.Particles != 250 || p.Config.Colors != 2 {
		t.Errorf("overrides not applied: %+v", p.Config)
	}
	if p.Config.Update != life.UpdateSimultaneous {
		t.Errorf("expected simultaneous update, got %q", p.Config.Update)
	}
	if p.Config.Schedule != (life.Schedule{Every: 300, Step: 0.05}) {
		t.Errorf("unexpected schedule %+v", p.Config.Schedule)
	}
	if p.Config.Threshold != life.DefaultConfig().Threshold {
		t.Errorf("untouched field changed: threshold %g", p.Config.Threshold)
	}
	if len(p.Options) != 1 {
		t.Errorf("expected a matrix option, got %d options", len(p.Options))
	}
}

func TestLoadRejects(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		data string
	}{
		{"unknown key", "particle = 10\n"},
		{"negative capacity", "capacity = -2\n"},
		{"matrix size", "colors = 3\nmatrix = [[1.0, 0.0], [0.0, 1.0]]\n"},
		{"syntax", "width = \n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".toml")
			if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load("life", path); err == nil {
				t.Error("expected an error")
			}
		})
	}

	if _, err := Load("life", filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestDecode(t *testing.T) {
	p, err := Decode("bounce", "restitution = 0.5\n")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if p.Config.Restitution != 0.5 {
		t.Errorf("expected restitution 0.5, got %g", p.Config.Restitution)
	}
	if _, err := Decode("bounce", "restitution = 2.0\n"); !errors.Is(err, life.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	if _, err := Decode("life", "particle = 10\n"); err == nil {
		t.Error("expected an error for an unknown key")
	}
	if _, err := Decode("life", "[schedule]\nevry = 3\n"); err == nil {
		t.Error("expected an error for an unknown nested key")
	}
}

func TestOverrideKeepsPresetByDefault(t *testing.T) {
	p, err := Decode("life", "particles = 123\nseed = 7\n")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	p.Override(-1, 0)
	if p.Config.Particles != 123 || p.Config.Seed != 7 {
		t.Errorf("unset flags overwrote the preset: particles %d seed %d", p.Config.Particles, p.Config.Seed)
	}

	p.Override(50, 9)
	if p.Config.Particles != 50 || p.Config.Seed != 9 {
		t.Errorf("flags not applied: particles %d seed %d", p.Config.Particles, p.Config.Seed)
	}
	p.Override(0, 0)
	if p.Config.Particles != 0 {
		t.Errorf("explicit zero particles ignored: %d", p.Config.Particles)
	}
}
