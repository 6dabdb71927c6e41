package geom

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func defaults() TransformInputs {
	return TransformInputs{
		FieldOfView:  DegToRad(45),
		Aspect:       640.0 / 480.0,
		ZNear:        0.1,
		ZFar:         100,
		CameraOffset: mgl32.Vec3{0, 0, -6},
	}
}

func TestProjection(t *testing.T) {
	in := defaults()
	p := Projection(in)

	f := FocalLength(in.FieldOfView)
	assert.InDelta(t, 1/math32.Tan(math32.Pi/8), f, 1e-6)
	assert.InDelta(t, f/in.Aspect, Element(p, 0, 0), 1e-6)
	assert.InDelta(t, f, Element(p, 1, 1), 1e-6)
	assert.InDelta(t, (in.ZFar+in.ZNear)/(in.ZNear-in.ZFar), Element(p, 2, 2), 1e-6)
	assert.InDelta(t, 2*in.ZFar*in.ZNear/(in.ZNear-in.ZFar), Element(p, 2, 3), 1e-5)
	assert.Equal(t, float32(-1), Element(p, 3, 2))
	assert.Equal(t, float32(0), Element(p, 3, 3))

	// Column-major: the -1 sits in the third column's last row.
	assert.Equal(t, float32(-1), p[11])
}

func TestProjectionMapsClipPlanes(t *testing.T) {
	in := defaults()
	p := mgl32.Mat4(Projection(in))
	for _, tc := range []struct {
		z     float32
		depth float32
	}{
		{-in.ZNear, -1},
		{-in.ZFar, 1},
	} {
		clip := p.Mul4x1(mgl32.Vec4{0, 0, tc.z, 1})
		assert.InDelta(t, tc.depth, clip.Z()/clip.W(), 1e-4)
	}
}

func TestModelView(t *testing.T) {
	mv := ModelView(defaults())
	for i := 0; i < 3; i++ {
		assert.Equal(t, float32(1), Element(mv, i, i))
	}
	assert.Equal(t, float32(0), Element(mv, 0, 3))
	assert.Equal(t, float32(0), Element(mv, 1, 3))
	assert.Equal(t, float32(-6), Element(mv, 2, 3))
	assert.Equal(t, float32(-6), mv[14])

	assert.Equal(t, [16]float32(mgl32.Ident4()), ModelView(TransformInputs{}))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, defaults().Validate())

	for name, mutate := range map[string]func(*TransformInputs){
		"zero fov":        func(in *TransformInputs) { in.FieldOfView = 0 },
		"fov of pi":       func(in *TransformInputs) { in.FieldOfView = math32.Pi },
		"zero aspect":     func(in *TransformInputs) { in.Aspect = 0 },
		"inf aspect":      func(in *TransformInputs) { in.Aspect = math32.Inf(1) },
		"nan aspect":      func(in *TransformInputs) { in.Aspect = math32.NaN() },
		"zero near":       func(in *TransformInputs) { in.ZNear = 0 },
		"far before near": func(in *TransformInputs) { in.ZFar = 0.05 },
	} {
		t.Run(name, func(t *testing.T) {
			in := defaults()
			mutate(&in)
			assert.Error(t, in.Validate())
		})
	}
}
