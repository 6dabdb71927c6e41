package config

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/irfansharif/quadgl/internal/geom"
	"github.com/irfansharif/quadgl/internal/gfx"
	"github.com/irfansharif/quadgl/internal/mesh"
	"github.com/irfansharif/quadgl/internal/palette"
	"github.com/irfansharif/quadgl/internal/render"
	"github.com/irfansharif/quadgl/internal/shaders"
)

// Source returns the shader source cfg selects for dialect d.
func (c Config) Source(d gfx.Dialect) (shaders.Source, error) {
	if c.Shaders.Vertex != "" {
		return shaders.Load(c.Shaders.Vertex, c.Shaders.Fragment)
	}
	preset := shaders.Preset(c.Shaders.Preset)
	if preset == "" {
		preset = shaders.Plain
		if len(c.Colors) > 0 {
			preset = shaders.Colored
		}
	}
	return shaders.Default(d, preset)
}

// Options resolves cfg into the inputs of render.NewPipeline for a backend
// speaking dialect d.
func (c Config) Options(d gfx.Dialect) (render.Options, error) {
	if err := c.Validate(); err != nil {
		return render.Options{}, err
	}
	src, err := c.Source(d)
	if err != nil {
		return render.Options{}, err
	}

	points := make([]geom.Point, len(c.Mesh.Points))
	for i, p := range c.Mesh.Points {
		points[i] = geom.MakePoint(p[0], p[1])
	}
	m, err := mesh.Build(mesh.Kind(c.Mesh.Kind), points)
	if err != nil {
		return render.Options{}, err
	}

	draw := render.DrawSpec{Topology: m.Topology, First: c.Draw.First, Count: c.Draw.Count}
	if c.Draw.Topology != "" {
		t, ok := gfx.ParseTopology(c.Draw.Topology)
		if !ok {
			return render.Options{}, fmt.Errorf("unknown topology %q", c.Draw.Topology)
		}
		draw.Topology = t
	}
	if draw.Count == 0 {
		draw.Count = m.VertexCount() - draw.First
	}

	var colors []float32
	if len(c.Colors) > 0 {
		pal, err := palette.Parse(c.Colors)
		if err != nil {
			return render.Options{}, err
		}
		colors = pal.VertexStream(m.VertexCount())
	}
	clearColor, err := palette.ParseColor(c.ClearColor)
	if err != nil {
		return render.Options{}, fmt.Errorf("clear color: %w", err)
	}

	return render.Options{
		Source:            src,
		Mesh:              m,
		Colors:            colors,
		PositionAttribute: c.Attributes.Position,
		ColorAttribute:    c.Attributes.Color,
		Uniforms: render.Uniforms{
			Projection: c.Uniforms.Projection,
			ModelView:  c.Uniforms.ModelView,
		},
		ClearColor:   clearColor.RGBA(),
		ClearDepth:   c.ClearDepth,
		FieldOfView:  geom.DegToRad(c.FieldOfView),
		ZNear:        c.ZNear,
		ZFar:         c.ZFar,
		CameraOffset: mgl32.Vec3(c.CameraOffset),
		Draw:         draw,
	}, nil
}
