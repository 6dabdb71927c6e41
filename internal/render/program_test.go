package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irfansharif/quadgl/internal/gfx"
	"github.com/irfansharif/quadgl/internal/gfx/gfxtest"
	"github.com/irfansharif/quadgl/internal/shaders"
)

func TestCompileAndLink(t *testing.T) {
	for _, d := range []gfx.Dialect{gfx.GLSL410Core, gfx.GLSL300ES} {
		for _, preset := range []shaders.Preset{shaders.Plain, shaders.Colored} {
			t.Run(d.String()+"/"+string(preset), func(t *testing.T) {
				ctx := gfxtest.New().WithDialect(d)
				src, err := shaders.Default(d, preset)
				require.NoError(t, err)

				vs, err := Compile(ctx, gfx.VertexStage, src.Vertex)
				require.NoError(t, err)
				assert.Equal(t, gfx.StatusSuccess, vs.Status)
				assert.Empty(t, vs.Log)
				fs, err := Compile(ctx, gfx.FragmentStage, src.Fragment)
				require.NoError(t, err)

				program, err := Link(ctx, vs, fs)
				require.NoError(t, err)
				assert.Equal(t, gfx.StatusSuccess, program.Status)
				assert.True(t, program.Usable())
				assert.Empty(t, program.attributes, "locations are resolved lazily")
				assert.Empty(t, program.uniforms)

				// Stages are not reused once linked.
				assert.Zero(t, ctx.LiveShaders())
				assert.Equal(t, 1, ctx.LivePrograms())
			})
		}
	}
}

func TestCompileError(t *testing.T) {
	ctx := gfxtest.New()
	stage, err := Compile(ctx, gfx.VertexStage, "void main() { gl_Position = vec4(0.0; }")
	assert.Nil(t, stage)
	require.ErrorIs(t, err, gfx.ErrCompile)

	var compileErr *gfx.CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, gfx.VertexStage, compileErr.Stage)
	assert.NotEmpty(t, compileErr.Log)
	assert.Zero(t, ctx.LiveShaders(), "failed shader objects are deleted")

	// Nothing can be linked from a source that does not compile.
	program, err := BuildProgram(ctx, "void main() { gl_Position = vec4(0.0; }", fragmentWhite)
	assert.Nil(t, program)
	assert.ErrorIs(t, err, gfx.ErrCompile)
	assert.Zero(t, ctx.Count("CreateProgram"))
	assert.Zero(t, ctx.LiveShaders())
}

func TestCompileFragmentErrorReleasesVertex(t *testing.T) {
	ctx := gfxtest.New()
	src := coloredSource(t)
	_, err := BuildProgram(ctx, src.Vertex, "out vec4 FragColor;")

	var compileErr *gfx.CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, gfx.FragmentStage, compileErr.Stage)
	assert.Contains(t, compileErr.Log, "main")
	assert.Zero(t, ctx.LiveShaders())
}

func TestCompileInvalidInput(t *testing.T) {
	ctx := gfxtest.New()
	_, err := Compile(ctx, gfx.VertexStage, "")
	assert.ErrorIs(t, err, gfx.ErrInvalidInput)
	_, err = Compile(ctx, gfx.StageKind(7), "void main() {}")
	assert.ErrorIs(t, err, gfx.ErrInvalidInput)
	assert.Zero(t, ctx.Count("CreateShader"))
}

func TestResourceExhausted(t *testing.T) {
	ctx := gfxtest.New()
	ctx.ExhaustShaders = true
	_, err := Compile(ctx, gfx.VertexStage, "void main() {}")
	assert.ErrorIs(t, err, gfx.ErrResourceExhausted)

	ctx = gfxtest.New()
	ctx.ExhaustPrograms = true
	src := coloredSource(t)
	_, err = BuildProgram(ctx, src.Vertex, src.Fragment)
	assert.ErrorIs(t, err, gfx.ErrResourceExhausted)
	assert.Zero(t, ctx.LiveShaders(), "stages are released when linking cannot start")
}

func TestLinkError(t *testing.T) {
	ctx := gfxtest.New()
	const vertex = `#version 410 core
in vec4 aVertexPosition;
void main() {
    gl_Position = aVertexPosition;
}
`
	const fragment = `#version 410 core
in vec4 vColor;
out vec4 FragColor;
void main() {
    FragColor = vColor;
}
`
	program, err := BuildProgram(ctx, vertex, fragment)
	assert.Nil(t, program)
	require.ErrorIs(t, err, gfx.ErrLink)

	var linkErr *gfx.LinkError
	require.ErrorAs(t, err, &linkErr)
	assert.Contains(t, linkErr.Log, "vColor")
	assert.Zero(t, ctx.LivePrograms(), "unusable programs are deleted")
	assert.Zero(t, ctx.LiveShaders())
}

func TestLinkRejectsBadStages(t *testing.T) {
	ctx := gfxtest.New()
	src := coloredSource(t)

	vs, err := Compile(ctx, gfx.VertexStage, src.Vertex)
	require.NoError(t, err)
	fs, err := Compile(ctx, gfx.FragmentStage, src.Fragment)
	require.NoError(t, err)

	_, err = Link(ctx, fs, vs)
	assert.ErrorIs(t, err, gfx.ErrInvalidInput, "stages swapped")
	_, err = Link(ctx, vs, nil)
	assert.ErrorIs(t, err, gfx.ErrInvalidInput)

	vs.Release()
	_, err = Link(ctx, vs, fs)
	assert.ErrorIs(t, err, gfx.ErrInvalidInput, "released stage")
	assert.Zero(t, ctx.Count("CreateProgram"))
}

func TestResolveDeterministic(t *testing.T) {
	ctx := gfxtest.New()
	src := coloredSource(t)
	program, err := BuildProgram(ctx, src.Vertex, src.Fragment)
	require.NoError(t, err)

	for _, name := range []string{"aVertexPosition", "aVertexColor"} {
		first, err := program.ResolveAttribute(name)
		require.NoError(t, err)
		for i := 0; i < 3; i++ {
			again, err := program.ResolveAttribute(name)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	}
	for _, name := range []string{"uProjectionMatrix", "uModelViewMatrix"} {
		first, err := program.ResolveUniform(name)
		require.NoError(t, err)
		again, err := program.ResolveUniform(name)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	position, _ := program.ResolveAttribute("aVertexPosition")
	color, _ := program.ResolveAttribute("aVertexColor")
	assert.NotEqual(t, position, color)
	assert.Equal(t, 2, ctx.Count("AttribLocation"), "lookups are cached")
	assert.Equal(t, 2, ctx.Count("UniformLocation"))
}

func TestResolveEliminatedAttribute(t *testing.T) {
	ctx := gfxtest.New()
	src := coloredSource(t)

	// The fragment stage never reads vColor, so aVertexColor is dead.
	program, err := BuildProgram(ctx, src.Vertex, fragmentWhite)
	require.NoError(t, err)

	_, err = program.ResolveAttribute("aVertexPosition")
	require.NoError(t, err)

	slot, err := program.ResolveAttribute("aVertexColor")
	assert.ErrorIs(t, err, gfx.ErrAttributeNotFound)
	assert.Equal(t, -1, slot)

	// Failures are not cached as a default slot.
	_, err = program.ResolveAttribute("aVertexColor")
	assert.ErrorIs(t, err, gfx.ErrAttributeNotFound)
	assert.Equal(t, 3, ctx.Count("AttribLocation"))
}

func TestResolveUniformNotFound(t *testing.T) {
	ctx := gfxtest.New()
	src := coloredSource(t)
	program, err := BuildProgram(ctx, src.Vertex, src.Fragment)
	require.NoError(t, err)

	_, err = program.ResolveUniform("uNormalMatrix")
	assert.ErrorIs(t, err, gfx.ErrUniformNotFound)
	assert.Contains(t, err.Error(), "uNormalMatrix")
}

func TestResolveAfterRelease(t *testing.T) {
	ctx := gfxtest.New()
	src := coloredSource(t)
	program, err := BuildProgram(ctx, src.Vertex, src.Fragment)
	require.NoError(t, err)
	program.Release()
	program.Release()

	assert.False(t, program.Usable())
	_, err = program.ResolveAttribute("aVertexPosition")
	assert.ErrorIs(t, err, gfx.ErrProgramNotLinked)
	_, err = program.ResolveUniform("uProjectionMatrix")
	assert.ErrorIs(t, err, gfx.ErrProgramNotLinked)
	assert.Equal(t, 1, ctx.Count("DeleteProgram"))
}
