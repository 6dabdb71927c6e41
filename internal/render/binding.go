package render

import (
	"fmt"

	"github.com/irfansharif/quadgl/internal/gfx"
)

// AttributeBinding describes how a buffer's bytes map onto one vertex
// attribute.
type AttributeBinding struct {
	Components  int // 2, 3 or 4
	Type        gfx.ComponentType
	Normalized  bool
	StrideBytes int // 0 means tightly packed
	OffsetBytes int
}

// Floats returns a tightly packed, non-normalized float binding.
func Floats(components int) AttributeBinding {
	return AttributeBinding{Components: components, Type: gfx.Float}
}

// Validate checks the binding's invariants.
func (b AttributeBinding) Validate() error {
	if b.Components < 2 || b.Components > 4 {
		return fmt.Errorf("%w: component count must be 2, 3 or 4, got %d", gfx.ErrInvalidInput, b.Components)
	}
	if b.Type != gfx.Float {
		return fmt.Errorf("%w: unsupported component type %d", gfx.ErrInvalidInput, b.Type)
	}
	if b.StrideBytes < 0 || b.OffsetBytes < 0 {
		return fmt.Errorf("%w: negative stride or offset", gfx.ErrInvalidInput)
	}
	if b.StrideBytes != 0 && b.Components*b.Type.Size() > b.StrideBytes {
		return fmt.Errorf("%w: stride %d is smaller than one %d-component element", gfx.ErrInvalidInput, b.StrideBytes, b.Components)
	}
	return nil
}

// Attribute pairs a named program input with the buffer feeding it.
type Attribute struct {
	Name    string
	Buffer  *VertexBuffer
	Binding AttributeBinding
}

// Bind makes buf the active array buffer, points slot at it per binding and
// enables the slot for the next draw. No vertex-array state is cached, so
// every attribute must be bound again before each draw.
func Bind(ctx gfx.Context, slot int, buf *VertexBuffer, binding AttributeBinding) error {
	if err := binding.Validate(); err != nil {
		return err
	}
	if buf == nil || buf.handle == 0 {
		return fmt.Errorf("%w: attribute slot %d has no buffer", gfx.ErrInvalidInput, slot)
	}
	ctx.BindArrayBuffer(buf.handle)
	ctx.VertexAttribPointer(slot, binding.Components, binding.Type, binding.Normalized, binding.StrideBytes, binding.OffsetBytes)
	ctx.EnableVertexAttribArray(slot)
	return nil
}
