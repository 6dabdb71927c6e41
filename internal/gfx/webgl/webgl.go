//go:build js && wasm

// Package webgl implements gfx.Context on top of a browser WebGL2 rendering
// context. Calls must be made from the goroutine driving the JS event loop.
package webgl

import (
	"fmt"
	"syscall/js"
	"unsafe"

	"github.com/irfansharif/quadgl/internal/gfx"
)

// Context is a gfx.Context backed by a WebGL2RenderingContext. JS objects are
// kept in tables keyed by the integer handles the gfx package deals in.
type Context struct {
	gl     js.Value
	consts glConsts

	next     uint32
	objects  map[uint32]js.Value
	uniforms []js.Value
}

var _ gfx.Context = (*Context)(nil)

type glConsts struct {
	vertexShader   int
	fragmentShader int
	compileStatus  int
	linkStatus     int
	arrayBuffer    int
	bufferSize     int
	staticDraw     int
	dynamicDraw    int
	floatType      int
	colorBufferBit int
	depthBufferBit int
	depthTest      int
	less           int
	lequal         int
	triangles      int
	triangleStrip  int
}

// New wraps a WebGL2 context obtained from canvas.getContext("webgl2").
func New(glctx js.Value) (*Context, error) {
	if glctx.IsUndefined() || glctx.IsNull() {
		return nil, fmt.Errorf("%w: webgl2 context is required", gfx.ErrContextUnavailable)
	}
	c := &Context{
		gl:      glctx,
		objects: make(map[uint32]js.Value),
	}
	c.initConsts()
	return c, nil
}

func (c *Context) initConsts() {
	c.consts = glConsts{
		vertexShader:   c.gl.Get("VERTEX_SHADER").Int(),
		fragmentShader: c.gl.Get("FRAGMENT_SHADER").Int(),
		compileStatus:  c.gl.Get("COMPILE_STATUS").Int(),
		linkStatus:     c.gl.Get("LINK_STATUS").Int(),
		arrayBuffer:    c.gl.Get("ARRAY_BUFFER").Int(),
		bufferSize:     c.gl.Get("BUFFER_SIZE").Int(),
		staticDraw:     c.gl.Get("STATIC_DRAW").Int(),
		dynamicDraw:    c.gl.Get("DYNAMIC_DRAW").Int(),
		floatType:      c.gl.Get("FLOAT").Int(),
		colorBufferBit: c.gl.Get("COLOR_BUFFER_BIT").Int(),
		depthBufferBit: c.gl.Get("DEPTH_BUFFER_BIT").Int(),
		depthTest:      c.gl.Get("DEPTH_TEST").Int(),
		less:           c.gl.Get("LESS").Int(),
		lequal:         c.gl.Get("LEQUAL").Int(),
		triangles:      c.gl.Get("TRIANGLES").Int(),
		triangleStrip:  c.gl.Get("TRIANGLE_STRIP").Int(),
	}
}

// store records a JS object and returns its handle, or zero if the object is
// null (WebGL signals allocation failure that way).
func (c *Context) store(v js.Value) uint32 {
	if v.IsNull() || v.IsUndefined() {
		return 0
	}
	c.next++
	c.objects[c.next] = v
	return c.next
}

func (c *Context) object(id uint32) js.Value {
	if v, ok := c.objects[id]; ok {
		return v
	}
	return js.Null()
}

func (c *Context) release(id uint32) js.Value {
	v := c.object(id)
	delete(c.objects, id)
	return v
}

func (c *Context) Dialect() gfx.Dialect { return gfx.GLSL300ES }

func (c *Context) CreateShader(kind gfx.StageKind) gfx.Shader {
	var typ int
	switch kind {
	case gfx.VertexStage:
		typ = c.consts.vertexShader
	case gfx.FragmentStage:
		typ = c.consts.fragmentShader
	default:
		return 0
	}
	return gfx.Shader(c.store(c.gl.Call("createShader", typ)))
}

func (c *Context) ShaderSource(s gfx.Shader, source string) {
	c.gl.Call("shaderSource", c.object(uint32(s)), source)
}

func (c *Context) CompileShader(s gfx.Shader) {
	c.gl.Call("compileShader", c.object(uint32(s)))
}

func (c *Context) ShaderCompiled(s gfx.Shader) bool {
	v := c.gl.Call("getShaderParameter", c.object(uint32(s)), c.consts.compileStatus)
	return v.Type() == js.TypeBoolean && v.Bool()
}

func (c *Context) ShaderInfoLog(s gfx.Shader) string {
	v := c.gl.Call("getShaderInfoLog", c.object(uint32(s)))
	if v.IsNull() || v.IsUndefined() {
		return ""
	}
	return v.String()
}

func (c *Context) DeleteShader(s gfx.Shader) {
	c.gl.Call("deleteShader", c.release(uint32(s)))
}

func (c *Context) CreateProgram() gfx.Program {
	return gfx.Program(c.store(c.gl.Call("createProgram")))
}

func (c *Context) AttachShader(p gfx.Program, s gfx.Shader) {
	c.gl.Call("attachShader", c.object(uint32(p)), c.object(uint32(s)))
}

func (c *Context) LinkProgram(p gfx.Program) {
	c.gl.Call("linkProgram", c.object(uint32(p)))
}

func (c *Context) ProgramLinked(p gfx.Program) bool {
	v := c.gl.Call("getProgramParameter", c.object(uint32(p)), c.consts.linkStatus)
	return v.Type() == js.TypeBoolean && v.Bool()
}

func (c *Context) ProgramInfoLog(p gfx.Program) string {
	v := c.gl.Call("getProgramInfoLog", c.object(uint32(p)))
	if v.IsNull() || v.IsUndefined() {
		return ""
	}
	return v.String()
}

func (c *Context) DeleteProgram(p gfx.Program) {
	c.gl.Call("deleteProgram", c.release(uint32(p)))
}

func (c *Context) UseProgram(p gfx.Program) {
	c.gl.Call("useProgram", c.object(uint32(p)))
}

func (c *Context) AttribLocation(p gfx.Program, name string) int {
	return c.gl.Call("getAttribLocation", c.object(uint32(p)), name).Int()
}

// UniformLocation hands out indexes into c.uniforms, since WebGL locations
// are opaque objects rather than integers.
func (c *Context) UniformLocation(p gfx.Program, name string) (gfx.Uniform, bool) {
	loc := c.gl.Call("getUniformLocation", c.object(uint32(p)), name)
	if loc.IsNull() || loc.IsUndefined() {
		return -1, false
	}
	c.uniforms = append(c.uniforms, loc)
	return gfx.Uniform(len(c.uniforms) - 1), true
}

func (c *Context) UniformMatrix4(u gfx.Uniform, m [16]float32) {
	if u < 0 || int(u) >= len(c.uniforms) {
		return
	}
	c.gl.Call("uniformMatrix4fv", c.uniforms[u], false, float32Array(m[:]))
}

func (c *Context) CreateBuffer() gfx.Buffer {
	return gfx.Buffer(c.store(c.gl.Call("createBuffer")))
}

func (c *Context) BindArrayBuffer(b gfx.Buffer) {
	c.gl.Call("bindBuffer", c.consts.arrayBuffer, c.object(uint32(b)))
}

func (c *Context) ArrayBufferData(data []float32, usage gfx.Usage) {
	hint := c.consts.staticDraw
	if usage == gfx.DynamicDraw {
		hint = c.consts.dynamicDraw
	}
	c.gl.Call("bufferData", c.consts.arrayBuffer, float32Array(data), hint)
}

func (c *Context) ArrayBufferSize() int {
	return c.gl.Call("getBufferParameter", c.consts.arrayBuffer, c.consts.bufferSize).Int()
}

func (c *Context) DeleteBuffer(b gfx.Buffer) {
	c.gl.Call("deleteBuffer", c.release(uint32(b)))
}

func (c *Context) VertexAttribPointer(slot, components int, _ gfx.ComponentType, normalized bool, stride, offset int) {
	c.gl.Call("vertexAttribPointer", slot, components, c.consts.floatType, normalized, stride, offset)
}

func (c *Context) EnableVertexAttribArray(slot int) {
	c.gl.Call("enableVertexAttribArray", slot)
}

func (c *Context) Viewport(x, y, width, height int) {
	c.gl.Call("viewport", x, y, width, height)
}

func (c *Context) ClearColor(r, g, b, a float32) { c.gl.Call("clearColor", r, g, b, a) }

func (c *Context) ClearDepth(d float32) { c.gl.Call("clearDepth", d) }

func (c *Context) Clear(mask gfx.ClearMask) {
	bits := 0
	if mask&gfx.ColorBufferBit != 0 {
		bits |= c.consts.colorBufferBit
	}
	if mask&gfx.DepthBufferBit != 0 {
		bits |= c.consts.depthBufferBit
	}
	c.gl.Call("clear", bits)
}

func (c *Context) Enable(capability gfx.Capability) {
	if capability == gfx.DepthTest {
		c.gl.Call("enable", c.consts.depthTest)
	}
}

func (c *Context) DepthFunc(f gfx.DepthFunc) {
	switch f {
	case gfx.Less:
		c.gl.Call("depthFunc", c.consts.less)
	case gfx.LessOrEqual:
		c.gl.Call("depthFunc", c.consts.lequal)
	}
}

func (c *Context) DrawArrays(t gfx.Topology, first, count int) {
	mode := c.consts.triangles
	if t == gfx.TriangleStrip {
		mode = c.consts.triangleStrip
	}
	c.gl.Call("drawArrays", mode, first, count)
}

// float32Array copies data into a fresh JS Float32Array. The byte view over
// data is only used for the duration of the copy.
func float32Array(data []float32) js.Value {
	arr := js.Global().Get("Float32Array").New(len(data))
	if len(data) == 0 {
		return arr
	}
	raw := unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*4)
	js.CopyBytesToJS(js.Global().Get("Uint8Array").New(arr.Get("buffer")), raw)
	return arr
}
