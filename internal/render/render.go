// Package render implements the shader-program lifecycle and the per-frame
// draw pipeline on top of a gfx.Context:
//  1. Compile each shader stage and link them into a Program.
//  2. Upload vertex streams into static VertexBuffers.
//  3. Resolve attribute and uniform locations by name.
//  4. Per frame: clear, configure depth testing, compute the transforms,
//     bind attributes, activate the program, upload uniforms and draw.
//
// Nothing here logs or exits; failures are returned to the caller.
package render

import (
	"fmt"
	"time"

	"github.com/irfansharif/quadgl/internal/geom"
	"github.com/irfansharif/quadgl/internal/gfx"
)

// DrawSpec is the single draw call issued per frame.
type DrawSpec struct {
	Topology gfx.Topology
	First    int
	Count    int
}

// Validate checks the draw call against the number of vertices available.
func (d DrawSpec) Validate(vertexCount int) error {
	if d.Topology != gfx.TriangleStrip && d.Topology != gfx.Triangles {
		return fmt.Errorf("%w: unknown topology %d", gfx.ErrInvalidInput, d.Topology)
	}
	if d.First < 0 || d.Count <= 0 {
		return fmt.Errorf("%w: invalid draw range first=%d count=%d", gfx.ErrInvalidInput, d.First, d.Count)
	}
	if d.First+d.Count > vertexCount {
		return fmt.Errorf("%w: draw range [%d, %d) exceeds %d vertices", gfx.ErrInvalidInput, d.First, d.First+d.Count, vertexCount)
	}
	return nil
}

// Uniforms names the transform uniforms of a program.
type Uniforms struct {
	Projection string
	ModelView  string
}

// Renderer issues frames. It holds no GPU objects of its own and may be
// invoked repeatedly, but never concurrently on the same context.
type Renderer struct {
	ClearColor [4]float32
	ClearDepth float32
	Uniforms   Uniforms

	w, h  int
	stats Stats
}

// Stats tracks rendering performance metrics.
type Stats struct {
	Frames         int     // frames rendered successfully
	DrawCalls      int     // draw calls issued
	LastRenderTime float64 // time spent in the last Render call in microseconds
}

// NewRenderer returns a renderer clearing to opaque black with depth 1.
func NewRenderer(uniforms Uniforms) *Renderer {
	return &Renderer{
		ClearColor: [4]float32{0, 0, 0, 1},
		ClearDepth: 1.0,
		Uniforms:   uniforms,
	}
}

// SetViewport records the framebuffer size applied at the start of each
// frame. A zero size leaves the viewport untouched.
func (r *Renderer) SetViewport(w, h int) {
	r.w, r.h = w, h
}

// Stats returns the current performance statistics.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// vertexCount is the number of whole vertices every attribute can supply.
func vertexCount(attrs []Attribute) int {
	n := -1
	for _, a := range attrs {
		stride := a.Binding.StrideBytes
		if stride == 0 {
			stride = a.Binding.Components * a.Binding.Type.Size()
		}
		if stride == 0 || a.Buffer == nil {
			return 0
		}
		c := (a.Buffer.ElementCount*4 - a.Binding.OffsetBytes) / stride
		if n < 0 || c < n {
			n = c
		}
	}
	if n < 0 {
		return 0
	}
	return n
}

// Render draws one frame. All names are resolved and all inputs validated
// before any state is touched, so a failed call leaves the frame buffer as
// it was. The GPU calls themselves happen in a fixed order:
//  1. clear color and clear depth value
//  2. clear color and depth buffers
//  3. depth testing with a less-or-equal comparison
//  4. projection and model-view matrices from inputs
//  5. attribute buffers bound and slots enabled
//  6. program activated
//  7. matrices uploaded, column-major
//  8. a single draw call
func (r *Renderer) Render(ctx gfx.Context, program *Program, attrs []Attribute, inputs geom.TransformInputs, draw DrawSpec) error {
	startTime := time.Now()

	if !program.Usable() {
		return gfx.ErrProgramNotLinked
	}
	if err := inputs.Validate(); err != nil {
		return fmt.Errorf("%w: %v", gfx.ErrInvalidInput, err)
	}
	if len(attrs) == 0 {
		return fmt.Errorf("%w: no vertex attributes", gfx.ErrInvalidInput)
	}
	slots := make([]int, len(attrs))
	for i, a := range attrs {
		if err := a.Binding.Validate(); err != nil {
			return fmt.Errorf("attribute %q: %w", a.Name, err)
		}
		if a.Buffer == nil || a.Buffer.handle == 0 {
			return fmt.Errorf("%w: attribute %q has no buffer", gfx.ErrInvalidInput, a.Name)
		}
		slot, err := program.ResolveAttribute(a.Name)
		if err != nil {
			return err
		}
		slots[i] = slot
	}
	if err := draw.Validate(vertexCount(attrs)); err != nil {
		return err
	}
	uProjection, err := program.ResolveUniform(r.Uniforms.Projection)
	if err != nil {
		return err
	}
	uModelView, err := program.ResolveUniform(r.Uniforms.ModelView)
	if err != nil {
		return err
	}

	if r.w > 0 && r.h > 0 {
		ctx.Viewport(0, 0, r.w, r.h)
	}
	ctx.ClearColor(r.ClearColor[0], r.ClearColor[1], r.ClearColor[2], r.ClearColor[3])
	ctx.ClearDepth(r.ClearDepth)
	ctx.Clear(gfx.ColorBufferBit | gfx.DepthBufferBit)
	ctx.Enable(gfx.DepthTest)
	ctx.DepthFunc(gfx.LessOrEqual)

	projection := geom.Projection(inputs)
	modelView := geom.ModelView(inputs)

	for i, a := range attrs {
		if err := Bind(ctx, slots[i], a.Buffer, a.Binding); err != nil {
			return fmt.Errorf("attribute %q: %w", a.Name, err)
		}
	}

	ctx.UseProgram(program.handle)
	ctx.UniformMatrix4(uProjection, projection)
	ctx.UniformMatrix4(uModelView, modelView)
	ctx.DrawArrays(draw.Topology, draw.First, draw.Count)

	r.stats.Frames++
	r.stats.DrawCalls++
	r.stats.LastRenderTime = float64(time.Since(startTime).Microseconds())
	return nil
}
