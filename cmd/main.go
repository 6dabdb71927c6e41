package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/irfansharif/quadgl/internal/app"
	"github.com/irfansharif/quadgl/internal/config"
	"github.com/irfansharif/quadgl/internal/surface"
)

const logFlags = log.Ltime | log.Lshortfile

func init() {
	// OpenGL contexts are tied to specific OS threads - let's pin to just one.
	runtime.LockOSThread()
	log.SetFlags(logFlags)
}

var (
	configPath  = flag.String("config", os.Getenv("QUADGL_CONFIG"), "path to a YAML config file")
	printConfig = flag.Bool("print-config", false, "print the effective configuration and exit")

	surfaceID = flag.String("surface", "", "window title (desktop) or canvas element id (web)")
	width     = flag.Int("width", 0, "window width")
	height    = flag.Int("height", 0, "window height")
	vertex    = flag.String("vertex", "", "vertex shader file")
	fragment  = flag.String("fragment", "", "fragment shader file")
	watch     = flag.Bool("watch", false, "reload shader files when they change")
	meshKind  = flag.String("mesh", "", "mesh: quad, quad-triangles or polygon")
	topology  = flag.String("topology", "", "draw topology: triangle-strip or triangles")
	count     = flag.Int("count", 0, "vertices to draw (0 = whole mesh)")
	fov       = flag.Float64("fov", 0, "vertical field of view in degrees")
	frames    = flag.Int("frames", 0, "frames to render before exiting (0 = until closed)")
	noColor   = flag.Bool("no-color", false, "draw without a per-vertex color stream")
)

// loadConfig layers explicitly set flags over the config file over defaults.
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return config.Config{}, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "surface":
			cfg.Surface = *surfaceID
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "vertex":
			cfg.Shaders.Vertex = *vertex
		case "fragment":
			cfg.Shaders.Fragment = *fragment
		case "watch":
			cfg.Shaders.Watch = *watch
		case "mesh":
			cfg.Mesh.Kind = *meshKind
		case "topology":
			cfg.Draw.Topology = *topology
		case "count":
			cfg.Draw.Count = *count
		case "fov":
			cfg.FieldOfView = float32(*fov)
		case "frames":
			cfg.Frames = *frames
		case "no-color":
			if *noColor {
				cfg.Colors = nil
			}
		}
	})
	return cfg, cfg.Validate()
}

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if *printConfig {
		out, err := cfg.Marshal()
		if err != nil {
			log.Fatalf("Cannot print configuration: %v", err)
		}
		fmt.Print(string(out))
		return
	}

	s, err := surface.Acquire(cfg.Surface, surface.Hints{
		Width:  cfg.Width,
		Height: cfg.Height,
		VSync:  cfg.VSync,
	})
	if err != nil {
		log.Fatalf("Failed to acquire surface %q: %v", cfg.Surface, err)
	}
	defer s.Release()
	log.Printf("Rendering to %q with %s", cfg.Surface, s.Describe())

	application, err := app.NewApp(s, cfg)
	if err != nil {
		log.Fatalf("Failed to build pipeline: %v", err)
	}
	defer application.Close()

	if err := application.Run(cfg.Frames); err != nil {
		log.Fatalf("Render loop failed: %v", err)
	}
}
