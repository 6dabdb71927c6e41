// Package gfx defines the capability set the render pipeline needs from a
// graphics backend. Concrete backends (desktop OpenGL, browser WebGL2) are
// selected when a surface is acquired; nothing outside of them issues raw
// graphics API calls.
//
// A Context is not safe for concurrent use. Every call must be made from the
// thread (or event loop) that owns the surface it was acquired from.
package gfx

// Handles are opaque backend object names. Zero is never a valid handle.
type (
	Shader  uint32
	Program uint32
	Buffer  uint32
)

// Uniform is a resolved uniform location.
type Uniform int32

// StageKind identifies the pipeline step a shader stage belongs to.
type StageKind int

const (
	VertexStage StageKind = iota + 1
	FragmentStage
)

func (k StageKind) String() string {
	switch k {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	default:
		return "unknown"
	}
}

// Valid reports whether k names a supported stage.
func (k StageKind) Valid() bool { return k == VertexStage || k == FragmentStage }

// Status is the outcome of a compile or link step.
type Status int

const (
	StatusPending Status = iota
	StatusSuccess
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Topology is how a draw call assembles vertices into primitives.
type Topology int

const (
	TriangleStrip Topology = iota + 1
	Triangles
)

func (t Topology) String() string {
	switch t {
	case TriangleStrip:
		return "triangle-strip"
	case Triangles:
		return "triangles"
	default:
		return "unknown"
	}
}

// ParseTopology maps a configuration name onto a Topology.
func ParseTopology(s string) (Topology, bool) {
	switch s {
	case "triangle-strip", "strip":
		return TriangleStrip, true
	case "triangles", "triangle-list", "list":
		return Triangles, true
	}
	return 0, false
}

// Usage is the buffer data store usage hint.
type Usage int

const (
	StaticDraw Usage = iota + 1
	DynamicDraw
)

// ComponentType is the scalar type of a vertex attribute component.
type ComponentType int

const (
	Float ComponentType = iota + 1
)

// Size returns the size in bytes of one component.
func (c ComponentType) Size() int {
	switch c {
	case Float:
		return 4
	default:
		return 0
	}
}

// ClearMask selects the buffers cleared by Context.Clear.
type ClearMask uint32

const (
	ColorBufferBit ClearMask = 1 << iota
	DepthBufferBit
)

// Capability is server-side state toggled with Context.Enable.
type Capability int

const (
	DepthTest Capability = iota + 1
)

// DepthFunc is the depth comparison function.
type DepthFunc int

const (
	Less DepthFunc = iota + 1
	LessOrEqual
)

// Dialect is the shading language a backend compiles.
type Dialect int

const (
	GLSL410Core Dialect = iota + 1 // desktop OpenGL 4.1 core profile
	GLSL300ES                      // WebGL2
)

func (d Dialect) String() string {
	switch d {
	case GLSL410Core:
		return "glsl-410-core"
	case GLSL300ES:
		return "glsl-300-es"
	default:
		return "unknown"
	}
}

// Context is the set of graphics operations the pipeline is built from. It
// mirrors the GL object model: failures of Create* calls are reported as a
// zero handle, and compile/link outcomes are queried after the fact.
type Context interface {
	// Dialect reports the shading language accepted by CompileShader.
	Dialect() Dialect

	CreateShader(kind StageKind) Shader
	ShaderSource(s Shader, source string)
	CompileShader(s Shader)
	ShaderCompiled(s Shader) bool
	ShaderInfoLog(s Shader) string
	DeleteShader(s Shader)

	CreateProgram() Program
	AttachShader(p Program, s Shader)
	LinkProgram(p Program)
	ProgramLinked(p Program) bool
	ProgramInfoLog(p Program) string
	DeleteProgram(p Program)
	UseProgram(p Program)

	// AttribLocation returns -1 if name is not an active attribute of p.
	AttribLocation(p Program, name string) int
	// UniformLocation returns false if name is not an active uniform of p.
	UniformLocation(p Program, name string) (Uniform, bool)
	// UniformMatrix4 uploads a column-major 4x4 matrix.
	UniformMatrix4(u Uniform, m [16]float32)

	CreateBuffer() Buffer
	// BindArrayBuffer binds b as the ARRAY_BUFFER target; zero unbinds.
	BindArrayBuffer(b Buffer)
	// ArrayBufferData copies data into the bound ARRAY_BUFFER.
	ArrayBufferData(data []float32, usage Usage)
	// ArrayBufferSize re-reads the byte size of the bound ARRAY_BUFFER.
	ArrayBufferSize() int
	DeleteBuffer(b Buffer)

	VertexAttribPointer(slot, components int, typ ComponentType, normalized bool, stride, offset int)
	EnableVertexAttribArray(slot int)

	Viewport(x, y, width, height int)
	ClearColor(r, g, b, a float32)
	ClearDepth(d float32)
	Clear(mask ClearMask)
	Enable(c Capability)
	DepthFunc(f DepthFunc)
	DrawArrays(t Topology, first, count int)
}
