// Package geom computes the per-frame transforms handed to the vertex stage:
//   - a perspective projection from field of view, aspect and clip planes
//   - a model-view matrix translating the identity by a camera offset
//
// Matrices are column-major [16]float32, the layout glUniformMatrix4fv
// expects with transpose disabled. Both are derived from scalar inputs every
// frame and never mutated in place.
package geom

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Point represents a 2D point in model coordinates.
type Point struct {
	X float64
	Y float64
}

func MakePoint(x, y float64) Point { return Point{X: x, Y: y} }

// TransformInputs are the scalar parameters the transforms are built from.
type TransformInputs struct {
	FieldOfView  float32 // vertical, radians
	Aspect       float32 // width / height
	ZNear, ZFar  float32
	CameraOffset mgl32.Vec3
}

// Validate checks that the inputs describe a non-degenerate frustum.
func (in TransformInputs) Validate() error {
	if in.FieldOfView <= 0 || in.FieldOfView >= math32.Pi {
		return fmt.Errorf("field of view must be in (0, π) radians, got %v", in.FieldOfView)
	}
	if in.Aspect <= 0 || math32.IsInf(in.Aspect, 0) || math32.IsNaN(in.Aspect) {
		return fmt.Errorf("aspect ratio must be positive and finite, got %v", in.Aspect)
	}
	if in.ZNear <= 0 || in.ZFar <= in.ZNear {
		return fmt.Errorf("clip planes must satisfy 0 < near < far, got near=%v far=%v", in.ZNear, in.ZFar)
	}
	return nil
}

// Projection returns the right-handed perspective projection mapping eye
// space onto OpenGL clip space (depth in [-1, 1]).
func Projection(in TransformInputs) [16]float32 {
	return [16]float32(mgl32.Perspective(in.FieldOfView, in.Aspect, in.ZNear, in.ZFar))
}

// ModelView returns the identity translated by the camera offset.
func ModelView(in TransformInputs) [16]float32 {
	return [16]float32(mgl32.Ident4().Mul4(mgl32.Translate3D(in.CameraOffset.X(), in.CameraOffset.Y(), in.CameraOffset.Z())))
}

// FocalLength returns 1/tan(fov/2), the [1][1] element of the projection.
func FocalLength(fov float32) float32 {
	return 1 / math32.Tan(fov/2)
}

// DegToRad converts degrees to radians.
func DegToRad(deg float32) float32 { return mgl32.DegToRad(deg) }

// Element returns the (row, col) element of a column-major matrix.
func Element(m [16]float32, row, col int) float32 {
	return m[col*4+row]
}
