// Package mesh provides the vertex streams the pipeline can draw: a unit
// quad as a triangle strip or as a triangle list, and arbitrary simple
// polygons triangulated into a triangle list.
package mesh

import (
	"fmt"
	"math"

	"github.com/irfansharif/quadgl/internal/geom"
	"github.com/irfansharif/quadgl/internal/gfx"
)

// Kind names a built-in mesh.
type Kind string

const (
	KindQuad          Kind = "quad"
	KindQuadTriangles Kind = "quad-triangles"
	KindPolygon       Kind = "polygon"
)

// Mesh is a flat position stream plus how it must be drawn.
type Mesh struct {
	Positions  []float32
	Components int // per-vertex position components
	Topology   gfx.Topology
}

// VertexCount returns the number of vertices in the position stream.
func (m Mesh) VertexCount() int {
	if m.Components == 0 {
		return 0
	}
	return len(m.Positions) / m.Components
}

// Quad returns the 2x2 square centered on the origin as a 4-vertex strip.
func Quad() Mesh {
	return Mesh{
		Positions: []float32{
			1.0, 1.0,
			-1.0, 1.0,
			1.0, -1.0,
			-1.0, -1.0,
		},
		Components: 2,
		Topology:   gfx.TriangleStrip,
	}
}

// QuadTriangles returns the same square as Quad as two independent
// triangles.
func QuadTriangles() Mesh {
	return Mesh{
		Positions: []float32{
			1.0, 1.0,
			-1.0, 1.0,
			1.0, -1.0,
			-1.0, 1.0,
			1.0, -1.0,
			-1.0, -1.0,
		},
		Components: 2,
		Topology:   gfx.Triangles,
	}
}

// Polygon triangulates a simple polygon into a triangle list.
func Polygon(points []geom.Point) (Mesh, error) {
	triangles, err := earClip(points)
	if err != nil {
		return Mesh{}, err
	}
	positions := make([]float32, 0, len(triangles)*6)
	for _, tri := range triangles {
		for v := 0; v < 3; v++ {
			positions = append(positions, float32(tri[v].X), float32(tri[v].Y))
		}
	}
	return Mesh{Positions: positions, Components: 2, Topology: gfx.Triangles}, nil
}

// RegularPolygon returns the vertices of a regular polygon with the given
// number of sides, inscribed in a circle of the given radius.
func RegularPolygon(sides int, radius float64) []geom.Point {
	points := make([]geom.Point, sides)
	for i := range points {
		theta := 2 * math.Pi * float64(i) / float64(sides)
		points[i] = geom.MakePoint(radius*math.Cos(theta), radius*math.Sin(theta))
	}
	return points
}

// Build returns the mesh of the given kind. Points are only consulted for
// KindPolygon; if empty, a hexagon is used.
func Build(kind Kind, points []geom.Point) (Mesh, error) {
	switch kind {
	case KindQuad:
		return Quad(), nil
	case KindQuadTriangles:
		return QuadTriangles(), nil
	case KindPolygon:
		if len(points) == 0 {
			points = RegularPolygon(6, 1.0)
		}
		return Polygon(points)
	default:
		return Mesh{}, fmt.Errorf("unknown mesh kind %q", kind)
	}
}
