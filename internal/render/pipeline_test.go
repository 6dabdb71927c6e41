package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irfansharif/quadgl/internal/geom"
	"github.com/irfansharif/quadgl/internal/gfx"
	"github.com/irfansharif/quadgl/internal/gfx/gfxtest"
	"github.com/irfansharif/quadgl/internal/mesh"
	"github.com/irfansharif/quadgl/internal/shaders"
)

func testOptions(t *testing.T, withColor bool) Options {
	preset := shaders.Plain
	if withColor {
		preset = shaders.Colored
	}
	src, err := shaders.Default(gfx.GLSL410Core, preset)
	require.NoError(t, err)

	opts := Options{
		Source:            src,
		Mesh:              mesh.Quad(),
		PositionAttribute: "aVertexPosition",
		ColorAttribute:    "aVertexColor",
		Uniforms:          testUniforms,
		ClearColor:        [4]float32{0, 0, 0, 1},
		ClearDepth:        1.0,
		FieldOfView:       geom.DegToRad(45),
		ZNear:             0.1,
		ZFar:              100,
		CameraOffset:      mgl32.Vec3{0, 0, -6},
		Draw:              DrawSpec{Topology: gfx.TriangleStrip, Count: 4},
	}
	if withColor {
		opts.Colors = []float32{
			1, 1, 1, 1,
			1, 0, 0, 1,
			0, 1, 0, 1,
			0, 0, 1, 1,
		}
	}
	return opts
}

func TestPipelineFrame(t *testing.T) {
	for _, withColor := range []bool{false, true} {
		ctx := gfxtest.New()
		p, err := NewPipeline(ctx, testOptions(t, withColor))
		require.NoError(t, err)

		require.NoError(t, p.Frame(800, 400))
		require.NoError(t, p.Frame(800, 400))

		require.Len(t, ctx.Draws, 2)
		assert.Equal(t, gfxtest.Draw{Topology: gfx.TriangleStrip, Count: 4}, ctx.Draws[1])
		assert.Equal(t, [4]int{0, 0, 800, 400}, ctx.ViewportValue)
		assert.Equal(t, 2, p.Stats().Frames)

		u, err := p.Program().ResolveUniform("uProjectionMatrix")
		require.NoError(t, err)
		proj := ctx.Uniforms[u]
		assert.InDelta(t, geom.FocalLength(geom.DegToRad(45))/2, proj[0], 1e-6, "aspect 2:1")

		if withColor {
			assert.Len(t, ctx.Enabled, 2)
		} else {
			assert.Len(t, ctx.Enabled, 1)
		}
		p.Release()
		assert.Zero(t, ctx.LivePrograms())
	}
}

func TestPipelineInputs(t *testing.T) {
	ctx := gfxtest.New()
	p, err := NewPipeline(ctx, testOptions(t, false))
	require.NoError(t, err)

	assert.Equal(t, float32(1.5), p.Inputs(300, 200).Aspect)
	assert.Equal(t, float32(1), p.Inputs(0, 0).Aspect, "minimized windows keep a square aspect")
	assert.Equal(t, mgl32.Vec3{0, 0, -6}, p.Inputs(1, 1).CameraOffset)
}

func TestPipelineMissingColorAttribute(t *testing.T) {
	ctx := gfxtest.New()
	opts := testOptions(t, true)
	plain, err := shaders.Default(gfx.GLSL410Core, shaders.Plain)
	require.NoError(t, err)
	opts.Source = plain

	_, err = NewPipeline(ctx, opts)
	assert.ErrorIs(t, err, gfx.ErrAttributeNotFound)
	assert.Zero(t, ctx.LivePrograms())
	assert.Zero(t, ctx.LiveShaders())
	assert.Equal(t, 2, ctx.Count("DeleteBuffer"))
	assert.Empty(t, ctx.Draws)
}

func TestPipelineDrawOutOfRange(t *testing.T) {
	ctx := gfxtest.New()
	opts := testOptions(t, false)
	opts.Draw.Count = 6
	_, err := NewPipeline(ctx, opts)
	assert.ErrorIs(t, err, gfx.ErrInvalidInput)
}

func TestPipelineReload(t *testing.T) {
	ctx := gfxtest.New()
	p, err := NewPipeline(ctx, testOptions(t, true))
	require.NoError(t, err)
	original := p.Program()

	// A source that does not compile leaves the running program alone.
	err = p.Reload(shaders.Source{Vertex: "void main() {", Fragment: fragmentWhite})
	assert.ErrorIs(t, err, gfx.ErrCompile)
	assert.Same(t, original, p.Program())

	// So does one that links but drops an attribute the frame feeds.
	src := coloredSource(t)
	err = p.Reload(shaders.Source{Vertex: src.Vertex, Fragment: fragmentWhite})
	assert.ErrorIs(t, err, gfx.ErrAttributeNotFound)
	assert.Same(t, original, p.Program())
	assert.Equal(t, 1, ctx.LivePrograms())
	require.NoError(t, p.Frame(10, 10))

	// A good source replaces the program and releases the old one.
	require.NoError(t, p.Reload(src))
	assert.NotSame(t, original, p.Program())
	assert.False(t, original.Usable())
	assert.Equal(t, 1, ctx.LivePrograms())
	require.NoError(t, p.Frame(10, 10))
	assert.Equal(t, p.Program().handle, ctx.Current)
}
