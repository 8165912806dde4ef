// Package preset turns a named mode plus an optional TOML file into a
// simulation config. Only the front-ends read files; the core never does.
package preset

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/olivierh59500/particle-life-quadtree/life"
)

// ErrUnknownMode is returned for a mode name with no built-in defaults
var ErrUnknownMode = errors.New("preset: unknown mode")

// Modes lists the built-in starting points
var Modes = map[string]func() life.Config{
	"life":   life.DefaultConfig,
	"bounce": life.BounceConfig,
}

// file is the TOML layout: every Config field at top level, plus an
// optional attraction matrix
type file struct {
	life.Config
	Matrix [][]float64 `toml:"matrix"`
}

// Preset is a validated config and the simulation options it implies
type Preset struct {
	Config  life.Config
	Options []life.Option
}

// Load starts from the named mode's defaults and, when path is not empty,
// lets the file override them
func Load(mode, path string) (*Preset, error) {
	defaults, ok := Modes[mode]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	f := file{Config: defaults()}
	if path != "" {
		md, err := toml.DecodeFile(path, &f)
		if err != nil {
			return nil, fmt.Errorf("preset: decode %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("preset: %s: unknown keys %v", path, undecoded)
		}
	}
	return build(f)
}

// Decode is Load for TOML already in memory
func Decode(mode, data string) (*Preset, error) {
	defaults, ok := Modes[mode]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	f := file{Config: defaults()}
	md, err := toml.Decode(data, &f)
	if err != nil {
		return nil, fmt.Errorf("preset: decode: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("preset: unknown keys %v", undecoded)
	}
	return build(f)
}

// Override applies command-line values on top of the preset. A negative
// particle count or a zero seed keeps what the preset says.
func (p *Preset) Override(particles int, seed int64) {
	if particles >= 0 {
		p.Config.Particles = particles
	}
	if seed != 0 {
		p.Config.Seed = seed
	}
}

func build(f file) (*Preset, error) {
	if err := f.Config.Validate(); err != nil {
		return nil, err
	}
	p := &Preset{Config: f.Config}
	if len(f.Matrix) > 0 {
		m, err := life.MatrixFromRows(f.Matrix)
		if err != nil {
			return nil, err
		}
		if m.Size() != f.Config.Colors {
			return nil, fmt.Errorf("%w: matrix is %dx%[2]d for %d colors", life.ErrInvalidConfig, m.Size(), f.Config.Colors)
		}
		p.Options = append(p.Options, life.WithMatrix(m))
	}
	return p, nil
}
