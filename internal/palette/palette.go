// Package palette turns configured colors into the values the pipeline
// consumes: clear colors and per-vertex RGBA streams.
package palette

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette is an ordered list of colors, cycled over the vertices of a mesh.
type Palette []colorful.Color

// Color is a color with its alpha kept separately, since go-colorful
// models opaque colors only.
type Color struct {
	colorful.Color
	A float64
}

// RGBA returns the color as normalized float32 components.
func (c Color) RGBA() [4]float32 {
	return [4]float32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
}

var named = map[string]string{
	"black": "#000000",
	"white": "#ffffff",
	"red":   "#ff0000",
	"green": "#00ff00",
	"blue":  "#0000ff",
}

// ParseColor parses "#rrggbb", "#rrggbbaa" or one of a few color names.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if hex, ok := named[s]; ok {
		s = hex
	}
	alpha := 1.0
	if len(s) == 9 && strings.HasPrefix(s, "#") {
		var a uint8
		if _, err := fmt.Sscanf(s[7:], "%02x", &a); err != nil {
			return Color{}, fmt.Errorf("invalid alpha in color %q: %v", s, err)
		}
		alpha = float64(a) / 255.0
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %v", s, err)
	}
	return Color{Color: c, A: alpha}, nil
}

// Parse parses each entry with ParseColor, dropping alpha.
func Parse(entries []string) (Palette, error) {
	p := make(Palette, 0, len(entries))
	for _, e := range entries {
		c, err := ParseColor(e)
		if err != nil {
			return nil, err
		}
		p = append(p, c.Color)
	}
	return p, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Random returns n colors using HSV generation, with saturation and value
// kept away from the extremes so vertices stay distinguishable.
func Random(r *rand.Rand, n int) Palette {
	p := make(Palette, n)
	for i := range p {
		hue := r.Float64() * 360
		sat := clamp(r.Float64()*0.5+0.25, 0, 1)
		bright := clamp(r.Float64()*0.5+0.5, 0, 1)
		p[i] = colorful.Hsv(hue, sat, bright)
	}
	return p
}

// VertexStream returns an opaque RGBA stream with one color per vertex,
// cycling through the palette.
func (p Palette) VertexStream(vertexCount int) []float32 {
	if len(p) == 0 || vertexCount <= 0 {
		return nil
	}
	out := make([]float32, 0, vertexCount*4)
	for i := 0; i < vertexCount; i++ {
		c := p[i%len(p)].Clamped()
		out = append(out, float32(c.R), float32(c.G), float32(c.B), 1.0)
	}
	return out
}
