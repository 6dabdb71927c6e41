package render

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/irfansharif/quadgl/internal/geom"
	"github.com/irfansharif/quadgl/internal/gfx"
	"github.com/irfansharif/quadgl/internal/mesh"
	"github.com/irfansharif/quadgl/internal/shaders"
)

// Options fully describe a pipeline. Nothing is read from package state.
type Options struct {
	Source shaders.Source
	Mesh   mesh.Mesh
	// Colors is an optional RGBA stream, one color per vertex. When set it
	// feeds ColorAttribute.
	Colors []float32

	PositionAttribute string
	ColorAttribute    string
	Uniforms          Uniforms

	ClearColor [4]float32
	ClearDepth float32

	FieldOfView  float32 // radians
	ZNear, ZFar  float32
	CameraOffset mgl32.Vec3

	Draw DrawSpec
}

// Pipeline owns the program and buffers for one surface and renders frames
// with them.
type Pipeline struct {
	opts     Options
	ctx      gfx.Context
	program  *Program
	buffers  []*VertexBuffer
	attrs    []Attribute
	renderer *Renderer
}

// NewPipeline compiles and links the program, uploads the vertex streams
// and checks that every name the frame needs resolves.
func NewPipeline(ctx gfx.Context, opts Options) (*Pipeline, error) {
	p := &Pipeline{
		opts:     opts,
		ctx:      ctx,
		renderer: NewRenderer(opts.Uniforms),
	}
	p.renderer.ClearColor = opts.ClearColor
	p.renderer.ClearDepth = opts.ClearDepth

	program, err := BuildProgram(ctx, opts.Source.Vertex, opts.Source.Fragment)
	if err != nil {
		return nil, err
	}
	p.program = program

	if err := p.upload(); err != nil {
		p.Release()
		return nil, err
	}
	if err := p.resolve(p.program); err != nil {
		p.Release()
		return nil, err
	}
	return p, nil
}

func (p *Pipeline) upload() error {
	m := p.opts.Mesh
	positions, err := Upload(p.ctx, m.Positions)
	if err != nil {
		return fmt.Errorf("uploading positions: %w", err)
	}
	p.buffers = append(p.buffers, positions)
	p.attrs = append(p.attrs, Attribute{
		Name:    p.opts.PositionAttribute,
		Buffer:  positions,
		Binding: Floats(m.Components),
	})

	if len(p.opts.Colors) == 0 {
		return nil
	}
	colors, err := Upload(p.ctx, p.opts.Colors)
	if err != nil {
		return fmt.Errorf("uploading colors: %w", err)
	}
	p.buffers = append(p.buffers, colors)
	p.attrs = append(p.attrs, Attribute{
		Name:    p.opts.ColorAttribute,
		Buffer:  colors,
		Binding: Floats(4),
	})
	return nil
}

// resolve looks up every name the frame uses on program.
func (p *Pipeline) resolve(program *Program) error {
	for _, a := range p.attrs {
		if _, err := program.ResolveAttribute(a.Name); err != nil {
			return err
		}
	}
	if _, err := program.ResolveUniform(p.opts.Uniforms.Projection); err != nil {
		return err
	}
	if _, err := program.ResolveUniform(p.opts.Uniforms.ModelView); err != nil {
		return err
	}
	return p.opts.Draw.Validate(vertexCount(p.attrs))
}

// Inputs returns the transform inputs for a framebuffer of the given size.
func (p *Pipeline) Inputs(width, height int) geom.TransformInputs {
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	return geom.TransformInputs{
		FieldOfView:  p.opts.FieldOfView,
		Aspect:       aspect,
		ZNear:        p.opts.ZNear,
		ZFar:         p.opts.ZFar,
		CameraOffset: p.opts.CameraOffset,
	}
}

// Frame renders one frame into a framebuffer of the given size.
func (p *Pipeline) Frame(width, height int) error {
	p.renderer.SetViewport(width, height)
	return p.renderer.Render(p.ctx, p.program, p.attrs, p.Inputs(width, height), p.opts.Draw)
}

// Reload builds a program from src and swaps it in. If src fails to compile
// or link, or lacks a name the frame needs, the current program is kept and
// the error returned.
func (p *Pipeline) Reload(src shaders.Source) error {
	program, err := BuildProgram(p.ctx, src.Vertex, src.Fragment)
	if err != nil {
		return err
	}
	if err := p.resolve(program); err != nil {
		program.Release()
		return err
	}
	p.program.Release()
	p.program = program
	p.opts.Source = src
	return nil
}

// Program returns the program currently drawn with.
func (p *Pipeline) Program() *Program { return p.program }

// Stats returns the renderer's statistics.
func (p *Pipeline) Stats() Stats { return p.renderer.Stats() }

// Release deletes the program and buffers.
func (p *Pipeline) Release() {
	p.program.Release()
	for _, b := range p.buffers {
		b.Release()
	}
	p.buffers = nil
	p.attrs = nil
}
