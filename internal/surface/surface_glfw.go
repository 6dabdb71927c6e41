//go:build !js

package surface

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/irfansharif/quadgl/internal/gfx"
	"github.com/irfansharif/quadgl/internal/gfx/glbackend"
)

// Surface is a glfw window with a current OpenGL 4.1 core context.
type Surface struct {
	Context gfx.Context
	// Width and Height are the framebuffer dimensions at acquisition time.
	Width, Height float32

	window  *glfw.Window
	backend *glbackend.Context
}

// Acquire opens a window titled id and makes its GL context current on the
// calling thread, which must be the main thread.
func Acquire(id string, hints Hints) (*Surface, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty surface id", gfx.ErrSurfaceNotFound)
	}
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("%w: initializing glfw: %v", gfx.ErrContextUnavailable, err)
	}

	// Configure GLFW window hints - use OpenGL 4.1.
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.DepthBits, 24)

	window, err := glfw.CreateWindow(hints.Width, hints.Height, id, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("%w: creating window: %v", gfx.ErrContextUnavailable, err)
	}
	window.MakeContextCurrent()
	if hints.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	backend, err := glbackend.New()
	if err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, err
	}

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	fw, fh := window.GetFramebufferSize()
	return &Surface{
		Context: backend,
		Width:   float32(fw),
		Height:  float32(fh),
		window:  window,
		backend: backend,
	}, nil
}

// GraphicsContext returns the context bound to the surface.
func (s *Surface) GraphicsContext() gfx.Context { return s.Context }

// Describe returns a human-readable description of the context.
func (s *Surface) Describe() string {
	return fmt.Sprintf("OpenGL %s (%s)", s.backend.Version(), s.Context.Dialect())
}

// Size returns the current framebuffer size in pixels.
func (s *Surface) Size() (int, int) {
	return s.window.GetFramebufferSize()
}

// ShouldClose reports whether the user asked to close the surface.
func (s *Surface) ShouldClose() bool {
	return s.window.ShouldClose()
}

// Present swaps buffers, waiting for vsync if requested, and processes
// pending window events.
func (s *Surface) Present() {
	s.window.SwapBuffers()
	glfw.PollEvents()
}

// SetTitle sets the window title.
func (s *Surface) SetTitle(title string) {
	s.window.SetTitle(title)
}

// Release destroys the window and terminates glfw.
func (s *Surface) Release() {
	s.backend.Release()
	s.window.Destroy()
	glfw.Terminate()
}
