package render

import (
	"fmt"

	"github.com/irfansharif/quadgl/internal/gfx"
)

// Program is a linked vertex/fragment pair. Attribute and uniform locations
// are looked up lazily by name and cached for the program's lifetime.
type Program struct {
	Status gfx.Status
	Log    string

	ctx        gfx.Context
	handle     gfx.Program
	attributes map[string]int
	uniforms   map[string]gfx.Uniform
}

// Link attaches vs and fs to a new program object and links it. Both stages
// are released whether or not linking succeeds; a program that fails to link
// is deleted and never returned.
func Link(ctx gfx.Context, vs, fs *Stage) (*Program, error) {
	if err := checkStage(vs, gfx.VertexStage); err != nil {
		return nil, err
	}
	if err := checkStage(fs, gfx.FragmentStage); err != nil {
		return nil, err
	}
	defer vs.Release()
	defer fs.Release()

	program := ctx.CreateProgram()
	if program == 0 {
		return nil, fmt.Errorf("%w: unable to create program object", gfx.ErrResourceExhausted)
	}
	ctx.AttachShader(program, vs.handle)
	ctx.AttachShader(program, fs.handle)
	ctx.LinkProgram(program)

	// Check linking status.
	if !ctx.ProgramLinked(program) {
		logText := ctx.ProgramInfoLog(program)
		if logText == "" {
			logText = "unknown error creating program object"
		}
		ctx.DeleteProgram(program)
		return nil, &gfx.LinkError{Log: logText}
	}

	return &Program{
		Status:     gfx.StatusSuccess,
		ctx:        ctx,
		handle:     program,
		attributes: make(map[string]int),
		uniforms:   make(map[string]gfx.Uniform),
	}, nil
}

func checkStage(s *Stage, want gfx.StageKind) error {
	switch {
	case s == nil:
		return fmt.Errorf("%w: missing %s stage", gfx.ErrInvalidInput, want)
	case s.Kind != want:
		return fmt.Errorf("%w: expected %s stage, got %s", gfx.ErrInvalidInput, want, s.Kind)
	case s.Status != gfx.StatusSuccess || s.handle == 0:
		return fmt.Errorf("%w: %s stage is not compiled", gfx.ErrInvalidInput, want)
	}
	return nil
}

// Usable reports whether the program can be drawn with.
func (p *Program) Usable() bool {
	return p != nil && p.Status == gfx.StatusSuccess && p.handle != 0
}

// ResolveAttribute returns the slot of the named vertex attribute. Names
// the compiler eliminated are reported as gfx.ErrAttributeNotFound.
func (p *Program) ResolveAttribute(name string) (int, error) {
	if !p.Usable() {
		return -1, gfx.ErrProgramNotLinked
	}
	if slot, ok := p.attributes[name]; ok {
		return slot, nil
	}
	slot := p.ctx.AttribLocation(p.handle, name)
	if slot < 0 {
		return -1, fmt.Errorf("%w: %q", gfx.ErrAttributeNotFound, name)
	}
	p.attributes[name] = slot
	return slot, nil
}

// ResolveUniform returns the location of the named uniform.
func (p *Program) ResolveUniform(name string) (gfx.Uniform, error) {
	if !p.Usable() {
		return -1, gfx.ErrProgramNotLinked
	}
	if u, ok := p.uniforms[name]; ok {
		return u, nil
	}
	u, ok := p.ctx.UniformLocation(p.handle, name)
	if !ok {
		return -1, fmt.Errorf("%w: %q", gfx.ErrUniformNotFound, name)
	}
	p.uniforms[name] = u
	return u, nil
}

// Release deletes the program object.
func (p *Program) Release() {
	if p == nil || p.handle == 0 {
		return
	}
	p.ctx.DeleteProgram(p.handle)
	p.handle = 0
	p.Status = gfx.StatusPending
}

// BuildProgram compiles both stages and links them.
func BuildProgram(ctx gfx.Context, vertexSource, fragmentSource string) (*Program, error) {
	vs, err := Compile(ctx, gfx.VertexStage, vertexSource)
	if err != nil {
		return nil, err
	}
	fs, err := Compile(ctx, gfx.FragmentStage, fragmentSource)
	if err != nil {
		vs.Release()
		return nil, err
	}
	return Link(ctx, vs, fs)
}
