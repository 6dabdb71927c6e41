// Package app drives a pipeline on a surface: one frame per iteration,
// presented to the display before the next one starts. All graphics calls
// happen on the goroutine calling Run.
package app

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/irfansharif/quadgl/internal/config"
	"github.com/irfansharif/quadgl/internal/gfx"
	"github.com/irfansharif/quadgl/internal/render"
	"github.com/irfansharif/quadgl/internal/shaders"
)

var runtimeLogger *log.Logger = log.New(io.Discard, "", 0)

func init() {
	if os.Getenv("QUADGL_DEBUG_RUNTIME") == "1" {
		runtimeLogger = log.New(os.Stdout, "[runtime] ", log.Ltime|log.Lmsgprefix)
	}
}

// Surface is what the app needs from a display surface.
type Surface interface {
	GraphicsContext() gfx.Context
	Size() (int, int)
	ShouldClose() bool
	Present()
	SetTitle(title string)
}

// App encapsulates the main application state and logic.
type App struct {
	Surface  Surface
	Config   config.Config
	Pipeline *render.Pipeline
	View     *View

	watcher *shaders.Watcher
	events  *EventHandlers
}

// NewApp builds the pipeline described by cfg on s.
func NewApp(s Surface, cfg config.Config) (*App, error) {
	ctx := s.GraphicsContext()
	opts, err := cfg.Options(ctx.Dialect())
	if err != nil {
		return nil, err
	}
	pipeline, err := render.NewPipeline(ctx, opts)
	if err != nil {
		return nil, err
	}

	w, h := s.Size()
	app := &App{
		Surface:  s,
		Config:   cfg,
		Pipeline: pipeline,
		View:     NewView(w, h),
	}
	if cfg.Shaders.Watch {
		app.watcher, err = shaders.Watch(cfg.Shaders.Vertex, cfg.Shaders.Fragment)
		if err != nil {
			pipeline.Release()
			return nil, err
		}
	}
	app.events = NewEventHandlers(app)
	return app, nil
}

// Frame renders and presents a single frame.
func (app *App) Frame() error {
	app.events.handleFramebufferSize()
	app.events.handleShaderChanges()

	if err := app.Pipeline.Frame(app.View.Width, app.View.Height); err != nil {
		return fmt.Errorf("rendering frame: %w", err)
	}
	app.Surface.Present()
	return nil
}

// Run renders frames until the surface is closed or, if frames is positive,
// that many frames were rendered.
func (app *App) Run(frames int) error {
	frameCount, frameTimeSum := 0, 0.0
	rendered := 0
	lastFPSUpdate := time.Now()

	for !app.Surface.ShouldClose() {
		if frames > 0 && rendered >= frames {
			break
		}
		frameStart := time.Now()
		if err := app.Frame(); err != nil {
			return err
		}
		rendered++

		frameTimeSum += time.Since(frameStart).Seconds() * 1000.0 // ms
		frameCount++
		now := time.Now()
		if now.Sub(lastFPSUpdate) >= time.Second {
			fps := float64(frameCount) / now.Sub(lastFPSUpdate).Seconds()
			avgFrameTime := frameTimeSum / float64(frameCount)
			frameCount, frameTimeSum = 0, 0.0
			lastFPSUpdate = now

			stats := app.Pipeline.Stats()
			app.Surface.SetTitle(makeTitle(app.Config.Surface, fps, avgFrameTime, stats))
			runtimeLogger.Printf("Frame rate:     %.1f FPS (%.2f ms/frame)", fps, avgFrameTime)
			runtimeLogger.Printf("Render time:    %.2f µs (last frame), %d frames, %d draw calls", stats.LastRenderTime, stats.Frames, stats.DrawCalls)
		}
	}
	return nil
}

// Close releases the pipeline and stops watching shader files.
func (app *App) Close() {
	if app.watcher != nil {
		if err := app.watcher.Close(); err != nil {
			log.Printf("closing shader watcher: %v", err)
		}
	}
	app.Pipeline.Release()
}

func makeTitle(name string, fps, avgFrameTime float64, stats render.Stats) string {
	return fmt.Sprintf("%s (%.1f FPS, %.2fms/frame, %.2fµs/render, %d frames)",
		name, fps, avgFrameTime, stats.LastRenderTime, stats.Frames)
}
