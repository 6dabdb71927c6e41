// Package shaders supplies the shader source the pipeline compiles: the
// built-in programs embedded for each backend dialect, or user files.
// Sources are passed through untouched; no preprocessing happens here.
package shaders

import (
	"embed"
	"fmt"
	"os"

	"github.com/irfansharif/quadgl/internal/gfx"
)

//go:embed glsl
var files embed.FS

// Source is a vertex/fragment source pair.
type Source struct {
	Vertex   string
	Fragment string
}

// Preset selects one of the built-in programs.
type Preset string

const (
	// Plain reads positions only and paints fragments white.
	Plain Preset = "plain"
	// Colored forwards a per-vertex color attribute to the fragment stage.
	Colored Preset = "colored"
)

func suffix(d gfx.Dialect) (string, error) {
	switch d {
	case gfx.GLSL410Core:
		return "410", nil
	case gfx.GLSL300ES:
		return "300es", nil
	default:
		return "", fmt.Errorf("no built-in shaders for dialect %s", d)
	}
}

// Default returns the built-in program p written in dialect d.
func Default(d gfx.Dialect, p Preset) (Source, error) {
	sfx, err := suffix(d)
	if err != nil {
		return Source{}, err
	}
	if p != Plain && p != Colored {
		return Source{}, fmt.Errorf("unknown shader preset %q", p)
	}
	vs, err := files.ReadFile(fmt.Sprintf("glsl/%s_%s.vert", p, sfx))
	if err != nil {
		return Source{}, err
	}
	fs, err := files.ReadFile(fmt.Sprintf("glsl/%s_%s.frag", p, sfx))
	if err != nil {
		return Source{}, err
	}
	return Source{Vertex: string(vs), Fragment: string(fs)}, nil
}

// Load reads a source pair from disk.
func Load(vertexPath, fragmentPath string) (Source, error) {
	vs, err := os.ReadFile(vertexPath)
	if err != nil {
		return Source{}, fmt.Errorf("reading vertex shader: %w", err)
	}
	fs, err := os.ReadFile(fragmentPath)
	if err != nil {
		return Source{}, fmt.Errorf("reading fragment shader: %w", err)
	}
	return Source{Vertex: string(vs), Fragment: string(fs)}, nil
}
