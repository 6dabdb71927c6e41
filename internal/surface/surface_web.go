//go:build js && wasm

package surface

import (
	"fmt"
	"syscall/js"

	"github.com/irfansharif/quadgl/internal/gfx"
	"github.com/irfansharif/quadgl/internal/gfx/webgl"
)

// Surface is a canvas element with a WebGL2 context.
type Surface struct {
	Context gfx.Context
	// Width and Height are the canvas client dimensions at acquisition time.
	Width, Height float32

	canvas js.Value
	frame  chan struct{}
	onRAF  js.Func
}

// Acquire looks up the canvas element with the given id and obtains a WebGL2
// context from it.
func Acquire(id string, _ Hints) (*Surface, error) {
	document := js.Global().Get("document")
	if document.IsUndefined() {
		return nil, fmt.Errorf("%w: no document", gfx.ErrSurfaceNotFound)
	}
	canvas := document.Call("getElementById", id)
	if canvas.IsNull() || canvas.IsUndefined() {
		return nil, fmt.Errorf("%w: no element with id %q", gfx.ErrSurfaceNotFound, id)
	}
	if canvas.Get("getContext").IsUndefined() {
		return nil, fmt.Errorf("%w: element %q is not a canvas", gfx.ErrSurfaceNotFound, id)
	}
	glctx := canvas.Call("getContext", "webgl2")
	ctx, err := webgl.New(glctx)
	if err != nil {
		return nil, err
	}

	s := &Surface{
		Context: ctx,
		Width:   float32(canvas.Get("clientWidth").Int()),
		Height:  float32(canvas.Get("clientHeight").Int()),
		canvas:  canvas,
		frame:   make(chan struct{}, 1),
	}
	s.onRAF = js.FuncOf(func(js.Value, []js.Value) any {
		select {
		case s.frame <- struct{}{}:
		default:
		}
		return nil
	})
	return s, nil
}

// GraphicsContext returns the context bound to the surface.
func (s *Surface) GraphicsContext() gfx.Context { return s.Context }

// Describe returns a human-readable description of the context.
func (s *Surface) Describe() string {
	return fmt.Sprintf("WebGL2 (%s)", s.Context.Dialect())
}

// Size returns the canvas drawing-buffer size, resized to match its client
// size.
func (s *Surface) Size() (int, int) {
	w, h := s.canvas.Get("clientWidth").Int(), s.canvas.Get("clientHeight").Int()
	if s.canvas.Get("width").Int() != w || s.canvas.Get("height").Int() != h {
		s.canvas.Set("width", w)
		s.canvas.Set("height", h)
	}
	return w, h
}

// ShouldClose always reports false; a page is closed by the browser.
func (s *Surface) ShouldClose() bool { return false }

// Present yields to the browser until the next animation frame.
func (s *Surface) Present() {
	js.Global().Call("requestAnimationFrame", s.onRAF)
	<-s.frame
}

// SetTitle sets the document title.
func (s *Surface) SetTitle(title string) {
	js.Global().Get("document").Set("title", title)
}

// Release frees the animation-frame callback.
func (s *Surface) Release() {
	s.onRAF.Release()
}
