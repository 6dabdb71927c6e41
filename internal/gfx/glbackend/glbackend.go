//go:build !js

// Package glbackend implements gfx.Context on top of desktop OpenGL 4.1 core
// profile. The GL context must be current on the calling OS thread.
package glbackend

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/irfansharif/quadgl/internal/gfx"
)

// Context is a gfx.Context backed by the current OpenGL context.
type Context struct {
	version string
	vao     uint32 // default vertex array; core profiles reject attribute setup without one
}

var _ gfx.Context = (*Context)(nil)

// New loads GL function pointers for the context current on this thread and
// prepares the state the pipeline relies on.
func New() (*Context, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", gfx.ErrContextUnavailable, err)
	}

	c := &Context{version: gl.GoStr(gl.GetString(gl.VERSION))}
	gl.GenVertexArrays(1, &c.vao)
	if c.vao == 0 {
		return nil, fmt.Errorf("%w: default vertex array", gfx.ErrResourceExhausted)
	}
	gl.BindVertexArray(c.vao)
	return c, nil
}

// Version returns the GL_VERSION string reported by the driver.
func (c *Context) Version() string { return c.version }

// Release deletes the objects owned by the context itself.
func (c *Context) Release() {
	if c.vao != 0 {
		gl.BindVertexArray(0)
		gl.DeleteVertexArrays(1, &c.vao)
		c.vao = 0
	}
}

func (c *Context) Dialect() gfx.Dialect { return gfx.GLSL410Core }

func (c *Context) CreateShader(kind gfx.StageKind) gfx.Shader {
	switch kind {
	case gfx.VertexStage:
		return gfx.Shader(gl.CreateShader(gl.VERTEX_SHADER))
	case gfx.FragmentStage:
		return gfx.Shader(gl.CreateShader(gl.FRAGMENT_SHADER))
	default:
		return 0
	}
}

func (c *Context) ShaderSource(s gfx.Shader, source string) {
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(uint32(s), 1, csource, nil)
	free()
}

func (c *Context) CompileShader(s gfx.Shader) { gl.CompileShader(uint32(s)) }

func (c *Context) ShaderCompiled(s gfx.Shader) bool {
	var status int32
	gl.GetShaderiv(uint32(s), gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (c *Context) ShaderInfoLog(s gfx.Shader) string {
	var logLength int32
	gl.GetShaderiv(uint32(s), gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(uint32(s), logLength, nil, gl.Str(logText))
	return strings.TrimRight(logText, "\x00")
}

func (c *Context) DeleteShader(s gfx.Shader) { gl.DeleteShader(uint32(s)) }

func (c *Context) CreateProgram() gfx.Program { return gfx.Program(gl.CreateProgram()) }

func (c *Context) AttachShader(p gfx.Program, s gfx.Shader) {
	gl.AttachShader(uint32(p), uint32(s))
}

func (c *Context) LinkProgram(p gfx.Program) { gl.LinkProgram(uint32(p)) }

func (c *Context) ProgramLinked(p gfx.Program) bool {
	var status int32
	gl.GetProgramiv(uint32(p), gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (c *Context) ProgramInfoLog(p gfx.Program) string {
	var logLength int32
	gl.GetProgramiv(uint32(p), gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(uint32(p), logLength, nil, gl.Str(logText))
	return strings.TrimRight(logText, "\x00")
}

func (c *Context) DeleteProgram(p gfx.Program) { gl.DeleteProgram(uint32(p)) }

func (c *Context) UseProgram(p gfx.Program) { gl.UseProgram(uint32(p)) }

func (c *Context) AttribLocation(p gfx.Program, name string) int {
	return int(gl.GetAttribLocation(uint32(p), gl.Str(name+"\x00")))
}

func (c *Context) UniformLocation(p gfx.Program, name string) (gfx.Uniform, bool) {
	loc := gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00"))
	return gfx.Uniform(loc), loc >= 0
}

func (c *Context) UniformMatrix4(u gfx.Uniform, m [16]float32) {
	gl.UniformMatrix4fv(int32(u), 1, false, &m[0])
}

func (c *Context) CreateBuffer() gfx.Buffer {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	return gfx.Buffer(vbo)
}

func (c *Context) BindArrayBuffer(b gfx.Buffer) { gl.BindBuffer(gl.ARRAY_BUFFER, uint32(b)) }

func (c *Context) ArrayBufferData(data []float32, usage gfx.Usage) {
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, usageEnum(usage))
		return
	}
	// gl.Ptr only borrows data for the duration of the call; the driver copies
	// it into the buffer's data store before BufferData returns.
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), usageEnum(usage))
}

func (c *Context) ArrayBufferSize() int {
	var size int32
	gl.GetBufferParameteriv(gl.ARRAY_BUFFER, gl.BUFFER_SIZE, &size)
	return int(size)
}

func (c *Context) DeleteBuffer(b gfx.Buffer) {
	vbo := uint32(b)
	gl.DeleteBuffers(1, &vbo)
}

func (c *Context) VertexAttribPointer(slot, components int, typ gfx.ComponentType, normalized bool, stride, offset int) {
	gl.VertexAttribPointer(uint32(slot), int32(components), componentEnum(typ), normalized, int32(stride), gl.PtrOffset(offset))
}

func (c *Context) EnableVertexAttribArray(slot int) { gl.EnableVertexAttribArray(uint32(slot)) }

func (c *Context) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (c *Context) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

func (c *Context) ClearDepth(d float32) { gl.ClearDepth(float64(d)) }

func (c *Context) Clear(mask gfx.ClearMask) {
	var bits uint32
	if mask&gfx.ColorBufferBit != 0 {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&gfx.DepthBufferBit != 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(bits)
}

func (c *Context) Enable(capability gfx.Capability) {
	switch capability {
	case gfx.DepthTest:
		gl.Enable(gl.DEPTH_TEST)
	}
}

func (c *Context) DepthFunc(f gfx.DepthFunc) {
	switch f {
	case gfx.Less:
		gl.DepthFunc(gl.LESS)
	case gfx.LessOrEqual:
		gl.DepthFunc(gl.LEQUAL)
	}
}

func (c *Context) DrawArrays(t gfx.Topology, first, count int) {
	gl.DrawArrays(topologyEnum(t), int32(first), int32(count))
}

func usageEnum(u gfx.Usage) uint32 {
	if u == gfx.DynamicDraw {
		return gl.DYNAMIC_DRAW
	}
	return gl.STATIC_DRAW
}

// componentEnum maps t onto its GL type; Float is the only component type.
func componentEnum(gfx.ComponentType) uint32 { return gl.FLOAT }

func topologyEnum(t gfx.Topology) uint32 {
	switch t {
	case gfx.TriangleStrip:
		return gl.TRIANGLE_STRIP
	default:
		return gl.TRIANGLES
	}
}
