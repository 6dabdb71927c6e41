package render

import (
	"fmt"

	"github.com/irfansharif/quadgl/internal/gfx"
)

// Stage is a compiled shader unit. It is owned by the caller until Link
// consumes it.
type Stage struct {
	Kind   gfx.StageKind
	Source string
	Status gfx.Status
	Log    string // compiler diagnostics, set iff Status is failed

	ctx    gfx.Context
	handle gfx.Shader
}

// Compile compiles source as a shader of the given kind. On failure the
// shader object is deleted and the compiler log is returned as a
// *gfx.CompileError.
func Compile(ctx gfx.Context, kind gfx.StageKind, source string) (*Stage, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown shader stage %d", gfx.ErrInvalidInput, kind)
	}
	if source == "" {
		return nil, fmt.Errorf("%w: empty %s shader source", gfx.ErrInvalidInput, kind)
	}

	shader := ctx.CreateShader(kind)
	if shader == 0 {
		return nil, fmt.Errorf("%w: unable to create %s shader object", gfx.ErrResourceExhausted, kind)
	}
	ctx.ShaderSource(shader, source)
	ctx.CompileShader(shader)

	// Check compilation status.
	if !ctx.ShaderCompiled(shader) {
		logText := ctx.ShaderInfoLog(shader)
		if logText == "" {
			logText = "unknown error creating shader"
		}
		ctx.DeleteShader(shader)
		return nil, &gfx.CompileError{Stage: kind, Log: logText}
	}

	return &Stage{
		Kind:   kind,
		Source: source,
		Status: gfx.StatusSuccess,
		ctx:    ctx,
		handle: shader,
	}, nil
}

// Release deletes the shader object. It is safe to call more than once.
func (s *Stage) Release() {
	if s == nil || s.handle == 0 {
		return
	}
	s.ctx.DeleteShader(s.handle)
	s.handle = 0
}
