package app

import "fmt"

// View tracks the framebuffer the pipeline renders into.
type View struct {
	Width, Height int
}

// NewView creates a view of the given size.
func NewView(width, height int) *View {
	return &View{Width: width, Height: height}
}

// SetViewport updates the viewport dimensions, reporting whether they
// changed.
func (vs *View) SetViewport(width, height int) bool {
	if vs.Width == width && vs.Height == height {
		return false
	}
	vs.Width = width
	vs.Height = height
	return true
}

// Aspect returns width/height, or 1 for an empty viewport.
func (vs *View) Aspect() float32 {
	if vs.Width <= 0 || vs.Height <= 0 {
		return 1
	}
	return float32(vs.Width) / float32(vs.Height)
}

func (vs *View) String() string {
	return fmt.Sprintf("%dx%d (aspect %.3f)", vs.Width, vs.Height, vs.Aspect())
}
