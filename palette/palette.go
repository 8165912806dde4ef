// Package palette maps particle colours to display colours
package palette

import (
	"image/color"
	"math"

	"github.com/olivierh59500/particle-life-quadtree/life"
)

// Palette holds one display colour per species, spread evenly around the hue wheel
type Palette []color.RGBA

// New builds a palette for n species
func New(n int) Palette {
	p := make(Palette, n)
	for i := range p {
		h := float64(i) / float64(n) * 360
		r, g, b := HSVToRGB(h, 1, 1)
		p[i] = color.RGBA{uint8(r * 255), uint8(g * 255), uint8(b * 255), 255}
	}
	return p
}

// Of returns the colour for c, grey for tags outside the palette
func (p Palette) Of(c life.Color) color.RGBA {
	if int(c) < 0 || int(c) >= len(p) {
		return color.RGBA{128, 128, 128, 255}
	}
	return p[c]
}

// HSVToRGB converts hue in degrees, saturation and value in [0,1]
func HSVToRGB(h, s, v float64) (float64, float64, float64) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return r + m, g + m, b + m
}
