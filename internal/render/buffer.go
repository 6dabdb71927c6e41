package render

import (
	"fmt"

	"github.com/irfansharif/quadgl/internal/gfx"
)

// VertexBuffer is GPU memory holding a flat sequence of 32-bit floats. Its
// contents never change after Upload.
type VertexBuffer struct {
	ElementCount int
	Usage        gfx.Usage

	ctx    gfx.Context
	handle gfx.Buffer
}

// Upload copies data into a new static buffer. The caller keeps ownership of
// data; the buffer does not alias it after Upload returns.
func Upload(ctx gfx.Context, data []float32) (*VertexBuffer, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty vertex data", gfx.ErrInvalidInput)
	}
	vbo := ctx.CreateBuffer()
	if vbo == 0 {
		return nil, fmt.Errorf("%w: unable to create buffer (%d floats)", gfx.ErrResourceExhausted, len(data))
	}
	ctx.BindArrayBuffer(vbo)
	ctx.ArrayBufferData(data, gfx.StaticDraw)
	ctx.BindArrayBuffer(0)

	return &VertexBuffer{
		ElementCount: len(data),
		Usage:        gfx.StaticDraw,
		ctx:          ctx,
		handle:       vbo,
	}, nil
}

// ByteLength re-reads the size of the buffer's data store from the backend.
func (b *VertexBuffer) ByteLength() int {
	b.ctx.BindArrayBuffer(b.handle)
	defer b.ctx.BindArrayBuffer(0)
	return b.ctx.ArrayBufferSize()
}

// Release deletes the buffer.
func (b *VertexBuffer) Release() {
	if b == nil || b.handle == 0 {
		return
	}
	b.ctx.DeleteBuffer(b.handle)
	b.handle = 0
}
