package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irfansharif/quadgl/internal/gfx"
	"github.com/irfansharif/quadgl/internal/gfx/gfxtest"
)

func TestUploadByteLength(t *testing.T) {
	for _, n := range []int{1, 2, 8, 16, 1000, 65536} {
		ctx := gfxtest.New()
		data := make([]float32, n)
		for i := range data {
			data[i] = float32(i) * 0.5
		}

		buf, err := Upload(ctx, data)
		require.NoError(t, err)
		assert.Equal(t, n, buf.ElementCount)
		assert.Equal(t, gfx.StaticDraw, buf.Usage)
		assert.Equal(t, n*4, buf.ByteLength(), "n=%d", n)
	}
}

func TestUploadCopies(t *testing.T) {
	ctx := gfxtest.New()
	data := []float32{1, 2, 3, 4}
	buf, err := Upload(ctx, data)
	require.NoError(t, err)

	data[0] = 42
	assert.Equal(t, []float32{1, 2, 3, 4}, ctx.BufferContents(buf.handle))
}

func TestUploadErrors(t *testing.T) {
	ctx := gfxtest.New()
	_, err := Upload(ctx, nil)
	assert.ErrorIs(t, err, gfx.ErrInvalidInput)
	assert.Zero(t, ctx.Count("CreateBuffer"))

	ctx.ExhaustBuffers = true
	_, err = Upload(ctx, []float32{1, 2})
	assert.ErrorIs(t, err, gfx.ErrResourceExhausted)
}

func TestUploadRelease(t *testing.T) {
	ctx := gfxtest.New()
	buf, err := Upload(ctx, []float32{1, 2})
	require.NoError(t, err)
	buf.Release()
	buf.Release()
	assert.Equal(t, 1, ctx.Count("DeleteBuffer"))
}
