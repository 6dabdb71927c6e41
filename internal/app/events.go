package app

import (
	"log"

	"github.com/irfansharif/quadgl/internal/shaders"
)

// EventHandlers reacts to changes observed between frames. It is polled by
// the render loop rather than driven by callbacks, so every reaction runs on
// the render goroutine.
type EventHandlers struct {
	application *App
}

// NewEventHandlers creates a new event handlers manager.
func NewEventHandlers(application *App) *EventHandlers {
	return &EventHandlers{application: application}
}

// handleFramebufferSize picks up window or canvas resizes.
func (eh *EventHandlers) handleFramebufferSize() {
	w, h := eh.application.Surface.Size()
	if eh.application.View.SetViewport(w, h) {
		runtimeLogger.Printf("framebuffer resized to %s", eh.application.View)
	}
}

// handleShaderChanges rebuilds the program if a watched shader file changed.
// A source that fails to build is reported and the previous program kept.
func (eh *EventHandlers) handleShaderChanges() {
	w := eh.application.watcher
	if w == nil || !w.Changed() {
		return
	}
	cfg := eh.application.Config
	src, err := shaders.Load(cfg.Shaders.Vertex, cfg.Shaders.Fragment)
	if err != nil {
		log.Printf("WARNING: cannot reload shaders: %v", err)
		return
	}
	if err := eh.application.Pipeline.Reload(src); err != nil {
		log.Printf("WARNING: keeping previous program: %v", err)
		return
	}
	runtimeLogger.Printf("reloaded %s, %s", cfg.Shaders.Vertex, cfg.Shaders.Fragment)
}
