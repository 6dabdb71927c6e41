// Package gfxtest provides an in-memory gfx.Context for tests. It records
// every call in order and simulates just enough of a GLSL toolchain to make
// compile, link and location lookup behave like a driver:
//   - sources without a main function, or with unbalanced brackets, fail to
//     compile with a non-empty log.
//   - linking fails if a fragment input is not written by the vertex stage.
//   - attributes and uniforms that do not contribute to an output are
//     eliminated, so looking them up reports them as missing.
package gfxtest

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/irfansharif/quadgl/internal/gfx"
)

// Call is one recorded invocation.
type Call struct {
	Op   string
	Args []any
}

func (c Call) String() string {
	if len(c.Args) == 0 {
		return c.Op
	}
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = fmt.Sprint(a)
	}
	return fmt.Sprintf("%s(%s)", c.Op, strings.Join(args, ", "))
}

// Draw is a recorded DrawArrays call.
type Draw struct {
	Topology gfx.Topology
	First    int
	Count    int
}

// Pointer is the recorded vertex attribute configuration of a slot.
type Pointer struct {
	Buffer     gfx.Buffer
	Components int
	Type       gfx.ComponentType
	Normalized bool
	Stride     int
	Offset     int
}

type shader struct {
	kind     gfx.StageKind
	source   string
	compiled bool
	log      string
}

type program struct {
	attached   []gfx.Shader
	linked     bool
	log        string
	attributes map[string]int
	uniforms   map[string]gfx.Uniform
}

// Context is a recording gfx.Context. The zero value is not usable; use New.
type Context struct {
	// ExhaustShaders, ExhaustPrograms and ExhaustBuffers make the matching
	// Create call return a zero handle.
	ExhaustShaders  bool
	ExhaustPrograms bool
	ExhaustBuffers  bool

	// Permissive makes location lookups on linked programs succeed for any
	// name, handing out fresh locations on first use, as a backend without
	// shader reflection would.
	Permissive bool

	Calls []Call
	Draws []Draw

	// Uniforms holds the last matrix uploaded to each uniform location.
	Uniforms map[gfx.Uniform][16]float32
	// Pointers holds the attribute configuration of each enabled slot.
	Pointers map[int]Pointer
	Enabled  map[int]bool

	ClearColorValue [4]float32
	ClearDepthValue float32
	DepthTest       bool
	DepthFuncValue  gfx.DepthFunc
	Current         gfx.Program
	ViewportValue   [4]int

	dialect  gfx.Dialect
	next     uint32
	shaders  map[gfx.Shader]*shader
	programs map[gfx.Program]*program
	buffers  map[gfx.Buffer][]float32
	bound    gfx.Buffer
}

var _ gfx.Context = (*Context)(nil)

// New returns an empty recording context that claims the desktop dialect.
func New() *Context {
	return &Context{
		Uniforms: make(map[gfx.Uniform][16]float32),
		Pointers: make(map[int]Pointer),
		Enabled:  make(map[int]bool),
		dialect:  gfx.GLSL410Core,
		shaders:  make(map[gfx.Shader]*shader),
		programs: make(map[gfx.Program]*program),
		buffers:  make(map[gfx.Buffer][]float32),
	}
}

// WithDialect overrides the dialect reported by the context.
func (c *Context) WithDialect(d gfx.Dialect) *Context {
	c.dialect = d
	return c
}

func (c *Context) record(op string, args ...any) {
	c.Calls = append(c.Calls, Call{Op: op, Args: args})
}

// Ops returns the recorded operation names in call order.
func (c *Context) Ops() []string {
	ops := make([]string, len(c.Calls))
	for i, call := range c.Calls {
		ops[i] = call.Op
	}
	return ops
}

// Count returns how many times op was called.
func (c *Context) Count(op string) int {
	n := 0
	for _, call := range c.Calls {
		if call.Op == op {
			n++
		}
	}
	return n
}

// Reset forgets recorded calls and draws, keeping objects alive.
func (c *Context) Reset() {
	c.Calls = nil
	c.Draws = nil
}

// LiveShaders returns the number of shader objects not yet deleted.
func (c *Context) LiveShaders() int { return len(c.shaders) }

// LivePrograms returns the number of program objects not yet deleted.
func (c *Context) LivePrograms() int { return len(c.programs) }

// BufferContents returns the data store of b.
func (c *Context) BufferContents(b gfx.Buffer) []float32 { return c.buffers[b] }

func (c *Context) handle() uint32 {
	c.next++
	return c.next
}

func (c *Context) Dialect() gfx.Dialect { return c.dialect }

func (c *Context) CreateShader(kind gfx.StageKind) gfx.Shader {
	c.record("CreateShader", kind)
	if c.ExhaustShaders || !kind.Valid() {
		return 0
	}
	s := gfx.Shader(c.handle())
	c.shaders[s] = &shader{kind: kind}
	return s
}

func (c *Context) ShaderSource(s gfx.Shader, source string) {
	c.record("ShaderSource", s)
	if sh, ok := c.shaders[s]; ok {
		sh.source = source
	}
}

func (c *Context) CompileShader(s gfx.Shader) {
	c.record("CompileShader", s)
	sh, ok := c.shaders[s]
	if !ok {
		return
	}
	sh.log = check(sh.source)
	sh.compiled = sh.log == ""
}

func (c *Context) ShaderCompiled(s gfx.Shader) bool {
	sh, ok := c.shaders[s]
	return ok && sh.compiled
}

func (c *Context) ShaderInfoLog(s gfx.Shader) string {
	if sh, ok := c.shaders[s]; ok {
		return sh.log
	}
	return ""
}

func (c *Context) DeleteShader(s gfx.Shader) {
	c.record("DeleteShader", s)
	delete(c.shaders, s)
}

func (c *Context) CreateProgram() gfx.Program {
	c.record("CreateProgram")
	if c.ExhaustPrograms {
		return 0
	}
	p := gfx.Program(c.handle())
	c.programs[p] = &program{}
	return p
}

func (c *Context) AttachShader(p gfx.Program, s gfx.Shader) {
	c.record("AttachShader", p, s)
	if prog, ok := c.programs[p]; ok {
		prog.attached = append(prog.attached, s)
	}
}

func (c *Context) LinkProgram(p gfx.Program) {
	c.record("LinkProgram", p)
	prog, ok := c.programs[p]
	if !ok {
		return
	}
	var vs, fs *shader
	for _, s := range prog.attached {
		sh, ok := c.shaders[s]
		if !ok {
			continue
		}
		switch sh.kind {
		case gfx.VertexStage:
			vs = sh
		case gfx.FragmentStage:
			fs = sh
		}
	}
	prog.attributes, prog.uniforms, prog.log = link(vs, fs)
	prog.linked = prog.log == ""
}

func (c *Context) ProgramLinked(p gfx.Program) bool {
	prog, ok := c.programs[p]
	return ok && prog.linked
}

func (c *Context) ProgramInfoLog(p gfx.Program) string {
	if prog, ok := c.programs[p]; ok {
		return prog.log
	}
	return ""
}

func (c *Context) DeleteProgram(p gfx.Program) {
	c.record("DeleteProgram", p)
	delete(c.programs, p)
}

func (c *Context) UseProgram(p gfx.Program) {
	c.record("UseProgram", p)
	c.Current = p
}

func (c *Context) AttribLocation(p gfx.Program, name string) int {
	c.record("AttribLocation", p, name)
	prog, ok := c.programs[p]
	if !ok || !prog.linked {
		return -1
	}
	if slot, ok := prog.attributes[name]; ok {
		return slot
	}
	if c.Permissive {
		taken := make(map[int]bool, len(prog.attributes))
		for _, slot := range prog.attributes {
			taken[slot] = true
		}
		slot := 0
		for taken[slot] {
			slot++
		}
		prog.attributes[name] = slot
		return slot
	}
	return -1
}

func (c *Context) UniformLocation(p gfx.Program, name string) (gfx.Uniform, bool) {
	c.record("UniformLocation", p, name)
	prog, ok := c.programs[p]
	if !ok || !prog.linked {
		return -1, false
	}
	u, ok := prog.uniforms[name]
	if !ok {
		if !c.Permissive {
			return -1, false
		}
		for _, existing := range prog.uniforms {
			if existing >= u {
				u = existing + 1
			}
		}
		prog.uniforms[name] = u
	}
	return u, true
}

func (c *Context) UniformMatrix4(u gfx.Uniform, m [16]float32) {
	c.record("UniformMatrix4", u)
	c.Uniforms[u] = m
}

func (c *Context) CreateBuffer() gfx.Buffer {
	c.record("CreateBuffer")
	if c.ExhaustBuffers {
		return 0
	}
	b := gfx.Buffer(c.handle())
	c.buffers[b] = nil
	return b
}

func (c *Context) BindArrayBuffer(b gfx.Buffer) {
	c.record("BindArrayBuffer", b)
	c.bound = b
}

func (c *Context) ArrayBufferData(data []float32, usage gfx.Usage) {
	c.record("ArrayBufferData", len(data), usage)
	if _, ok := c.buffers[c.bound]; !ok {
		return
	}
	c.buffers[c.bound] = append([]float32(nil), data...)
}

func (c *Context) ArrayBufferSize() int {
	c.record("ArrayBufferSize")
	return len(c.buffers[c.bound]) * 4
}

func (c *Context) DeleteBuffer(b gfx.Buffer) {
	c.record("DeleteBuffer", b)
	delete(c.buffers, b)
	if c.bound == b {
		c.bound = 0
	}
}

func (c *Context) VertexAttribPointer(slot, components int, typ gfx.ComponentType, normalized bool, stride, offset int) {
	c.record("VertexAttribPointer", slot, components, typ, normalized, stride, offset)
	c.Pointers[slot] = Pointer{
		Buffer:     c.bound,
		Components: components,
		Type:       typ,
		Normalized: normalized,
		Stride:     stride,
		Offset:     offset,
	}
}

func (c *Context) EnableVertexAttribArray(slot int) {
	c.record("EnableVertexAttribArray", slot)
	c.Enabled[slot] = true
}

func (c *Context) Viewport(x, y, width, height int) {
	c.record("Viewport", x, y, width, height)
	c.ViewportValue = [4]int{x, y, width, height}
}

func (c *Context) ClearColor(r, g, b, a float32) {
	c.record("ClearColor", r, g, b, a)
	c.ClearColorValue = [4]float32{r, g, b, a}
}

func (c *Context) ClearDepth(d float32) {
	c.record("ClearDepth", d)
	c.ClearDepthValue = d
}

func (c *Context) Clear(mask gfx.ClearMask) { c.record("Clear", mask) }

func (c *Context) Enable(capability gfx.Capability) {
	c.record("Enable", capability)
	if capability == gfx.DepthTest {
		c.DepthTest = true
	}
}

func (c *Context) DepthFunc(f gfx.DepthFunc) {
	c.record("DepthFunc", f)
	c.DepthFuncValue = f
}

func (c *Context) DrawArrays(t gfx.Topology, first, count int) {
	c.record("DrawArrays", t, first, count)
	c.Draws = append(c.Draws, Draw{Topology: t, First: first, Count: count})
}

var (
	declRe  = regexp.MustCompile(`^(?:layout\s*\(\s*location\s*=\s*(\d+)\s*\)\s*)?(in|out|attribute|varying|uniform)\s+(?:(?:highp|mediump|lowp)\s+)?\w+\s+(\w+)$`)
	lhsRe   = regexp.MustCompile(`^(?:\w+\s+)?(\w+)(?:\.\w+)?\s*=[^=]`)
	identRe = regexp.MustCompile(`[A-Za-z_]\w*`)
	mainRe  = regexp.MustCompile(`\bvoid\s+main\s*\(\s*(?:void)?\s*\)`)
)

// check returns a compiler log for source, empty if it compiles.
func check(source string) string {
	if strings.TrimSpace(source) == "" {
		return "ERROR: 0:0: '' : empty shader source"
	}
	depth := map[rune]int{}
	pairs := map[rune]rune{')': '(', '}': '{', ']': '['}
	for line, text := range strings.Split(source, "\n") {
		for _, r := range text {
			switch r {
			case '(', '{', '[':
				depth[r]++
			case ')', '}', ']':
				depth[pairs[r]]--
				if depth[pairs[r]] < 0 {
					return fmt.Sprintf("ERROR: 0:%d: '%c' : syntax error", line+1, r)
				}
			}
		}
	}
	for _, open := range []rune{'(', '{', '['} {
		if depth[open] != 0 {
			return fmt.Sprintf("ERROR: 0:%d: '%c' : unbalanced bracket", strings.Count(source, "\n")+1, open)
		}
	}
	if !mainRe.MatchString(source) {
		return "ERROR: 0:1: 'main' : function not defined"
	}
	return ""
}

type decl struct {
	qualifier string
	name      string
	location  int // -1 unless given by a layout qualifier
}

type unit struct {
	decls      []decl
	statements []string
}

// parse splits source into top-level declarations and the remaining
// statements. Preprocessor lines are dropped.
func parse(source string) unit {
	var lines []string
	for _, line := range strings.Split(source, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		lines = append(lines, line)
	}
	body := strings.Join(lines, "\n")
	parts := strings.FieldsFunc(body, func(r rune) bool { return r == ';' || r == '{' || r == '}' })

	var u unit
	for _, part := range parts {
		stmt := strings.Join(strings.Fields(part), " ")
		if stmt == "" {
			continue
		}
		if m := declRe.FindStringSubmatch(stmt); m != nil {
			d := decl{qualifier: m[2], name: m[3], location: -1}
			if loc, err := strconv.Atoi(m[1]); err == nil {
				d.location = loc
			}
			u.decls = append(u.decls, d)
			continue
		}
		u.statements = append(u.statements, stmt)
	}
	return u
}

func (u unit) declared(qualifiers ...string) map[string]bool {
	out := make(map[string]bool)
	for _, d := range u.decls {
		for _, q := range qualifiers {
			if d.qualifier == q {
				out[d.name] = true
			}
		}
	}
	return out
}

func identifiers(stmt string) map[string]bool {
	out := make(map[string]bool)
	for _, id := range identRe.FindAllString(stmt, -1) {
		out[id] = true
	}
	return out
}

// live returns the statements of u that contribute to its outputs. A
// statement is dead only if it assigns to an output in dead.
func (u unit) live(dead map[string]bool) []string {
	var out []string
	for _, stmt := range u.statements {
		if m := lhsRe.FindStringSubmatch(stmt); m != nil && dead[m[1]] {
			continue
		}
		out = append(out, stmt)
	}
	return out
}

func uses(statements []string, name string) bool {
	for _, stmt := range statements {
		if identifiers(stmt)[name] {
			return true
		}
	}
	return false
}

// link resolves the active interface of a vertex/fragment pair. It returns a
// non-empty log on failure.
func link(vs, fs *shader) (map[string]int, map[string]gfx.Uniform, string) {
	switch {
	case vs == nil || fs == nil:
		return nil, nil, "ERROR: Linking: program requires a vertex and a fragment shader"
	case !vs.compiled || !fs.compiled:
		return nil, nil, "ERROR: Linking: attached shader not compiled"
	}

	v, f := parse(vs.source), parse(fs.source)
	fragLive := f.live(nil)

	// Fragment inputs must be written by the vertex stage.
	vOut := v.declared("out", "varying")
	for _, d := range f.decls {
		if (d.qualifier == "in" || d.qualifier == "varying") && uses(fragLive, d.name) && !vOut[d.name] {
			return nil, nil, fmt.Sprintf("ERROR: Linking: fragment input '%s' is not written by the vertex shader", d.name)
		}
	}

	// Vertex outputs the fragment stage never reads are dead.
	dead := make(map[string]bool)
	for name := range vOut {
		if !uses(fragLive, name) {
			dead[name] = true
		}
	}
	vertLive := v.live(dead)

	attributes := make(map[string]int)
	taken := make(map[int]bool)
	var pending []string
	for _, d := range v.decls {
		if d.qualifier != "in" && d.qualifier != "attribute" {
			continue
		}
		if !uses(vertLive, d.name) {
			continue
		}
		if d.location >= 0 {
			attributes[d.name] = d.location
			taken[d.location] = true
			continue
		}
		pending = append(pending, d.name)
	}
	slot := 0
	for _, name := range pending {
		for taken[slot] {
			slot++
		}
		attributes[name] = slot
		taken[slot] = true
	}

	uniforms := make(map[string]gfx.Uniform)
	var names []string
	for _, u := range []unit{v, f} {
		for _, d := range u.decls {
			if d.qualifier != "uniform" {
				continue
			}
			if _, ok := uniforms[d.name]; ok {
				continue
			}
			if uses(vertLive, d.name) || uses(fragLive, d.name) {
				uniforms[d.name] = 0
				names = append(names, d.name)
			}
		}
	}
	sort.Strings(names)
	for i, name := range names {
		uniforms[name] = gfx.Uniform(i)
	}
	return attributes, uniforms, ""
}
