// Package surface acquires a rendering context bound to a named display
// surface: a glfw window on desktop platforms, a canvas element in the
// browser. The returned Surface owns the context and must be driven from a
// single goroutine.
package surface

// Hints are requests for a newly created surface. Backends that attach to an
// existing surface ignore the size.
type Hints struct {
	Width, Height int
	VSync         bool
}
