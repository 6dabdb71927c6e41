// Package config holds every tunable of a quadgl run. Values come from
// Default, optionally overlaid by a YAML file, then by command-line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full set of draw parameters.
type Config struct {
	Surface string `yaml:"surface"` // window title, or canvas element id on the web
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`

	Shaders    Shaders    `yaml:"shaders"`
	Mesh       Mesh       `yaml:"mesh"`
	Attributes Attributes `yaml:"attributes"`
	Uniforms   Uniforms   `yaml:"uniforms"`

	// Colors are cycled over the vertices and fed to the color attribute.
	// When empty, no color stream is uploaded.
	Colors     []string `yaml:"colors"`
	ClearColor string   `yaml:"clear_color"`
	ClearDepth float32  `yaml:"clear_depth"`

	FieldOfView  float32    `yaml:"fov"` // degrees
	ZNear        float32    `yaml:"z_near"`
	ZFar         float32    `yaml:"z_far"`
	CameraOffset [3]float32 `yaml:"camera_offset"`

	Draw Draw `yaml:"draw"`

	Frames int  `yaml:"frames"` // frames to render before exiting, 0 = until closed
	VSync  bool `yaml:"vsync"`
}

// Shaders selects the shader source.
type Shaders struct {
	// Preset is a built-in program ("plain" or "colored"). Empty picks
	// "colored" when colors are configured and "plain" otherwise.
	Preset   string `yaml:"preset"`
	Vertex   string `yaml:"vertex"` // file path, overrides the preset
	Fragment string `yaml:"fragment"`
	Watch    bool   `yaml:"watch"` // reload on file changes
}

// Mesh selects the vertex positions.
type Mesh struct {
	Kind   string       `yaml:"kind"`             // quad, quad-triangles or polygon
	Points [][2]float64 `yaml:"points,omitempty"` // polygon outline
}

// Attributes names the vertex inputs.
type Attributes struct {
	Position string `yaml:"position"`
	Color    string `yaml:"color"`
}

// Uniforms names the transform uniforms.
type Uniforms struct {
	Projection string `yaml:"projection"`
	ModelView  string `yaml:"model_view"`
}

// Draw describes the draw call. A zero Count or empty Topology is taken
// from the mesh.
type Draw struct {
	Topology string `yaml:"topology"`
	First    int    `yaml:"first"`
	Count    int    `yaml:"count"`
}

// Default returns the configuration of the classic colored-quad demo: a 45°
// perspective with clip planes at 0.1 and 100, the camera 6 units back and a
// 4-vertex triangle strip.
func Default() Config {
	return Config{
		Surface: "quadgl",
		Width:   640,
		Height:  480,
		Mesh:    Mesh{Kind: "quad"},
		Attributes: Attributes{
			Position: "aVertexPosition",
			Color:    "aVertexColor",
		},
		Uniforms: Uniforms{
			Projection: "uProjectionMatrix",
			ModelView:  "uModelViewMatrix",
		},
		Colors:       []string{"white", "red", "green", "blue"},
		ClearColor:   "black",
		ClearDepth:   1.0,
		FieldOfView:  45,
		ZNear:        0.1,
		ZFar:         100,
		CameraOffset: [3]float32{0, 0, -6},
		VSync:        true,
	}
}

// Load overlays the YAML file at path onto Default. Unknown keys are
// rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse overlays YAML data onto Default.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Marshal renders cfg as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks ranges that do not depend on the graphics backend.
func (c Config) Validate() error {
	var errs []error
	if c.Surface == "" {
		errs = append(errs, errors.New("surface id must not be empty"))
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("invalid surface size %dx%d", c.Width, c.Height))
	}
	if c.FieldOfView <= 0 || c.FieldOfView >= 180 {
		errs = append(errs, fmt.Errorf("fov must be in (0, 180) degrees, got %v", c.FieldOfView))
	}
	if c.ZNear <= 0 || c.ZFar <= c.ZNear {
		errs = append(errs, fmt.Errorf("clip planes must satisfy 0 < z_near < z_far, got %v, %v", c.ZNear, c.ZFar))
	}
	if (c.Shaders.Vertex == "") != (c.Shaders.Fragment == "") {
		errs = append(errs, errors.New("shader files must be given as a vertex/fragment pair"))
	}
	if c.Shaders.Watch && c.Shaders.Vertex == "" {
		errs = append(errs, errors.New("shader watching requires shader files"))
	}
	if c.Draw.First < 0 || c.Draw.Count < 0 {
		errs = append(errs, fmt.Errorf("invalid draw range first=%d count=%d", c.Draw.First, c.Draw.Count))
	}
	if c.Frames < 0 {
		errs = append(errs, fmt.Errorf("frames must not be negative, got %d", c.Frames))
	}
	if c.Attributes.Position == "" || c.Uniforms.Projection == "" || c.Uniforms.ModelView == "" {
		errs = append(errs, errors.New("attribute and uniform names must not be empty"))
	}
	if len(c.Colors) > 0 && c.Attributes.Color == "" {
		errs = append(errs, errors.New("colors require a color attribute name"))
	}
	return errors.Join(errs...)
}
