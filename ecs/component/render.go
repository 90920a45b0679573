package component

import (
	"image/color"

	"github.com/jakecoffman/cp"
)

// Appearance is how the renderer draws an entity: a rotated box when Width and
// Height are set, otherwise a circle of Radius.
type Appearance struct {
	Color  color.Color
	Width  float64
	Height float64
	Radius float64
	Layer  int
}

var AppearanceComponent = NewComponent[Appearance]()

// Camera maps world units to screen pixels. World +Y is up on screen.
type Camera struct {
	PixelsPerUnit float64
	OffsetX       float64
	OffsetY       float64
	ScreenHeight  float64
}

var CameraComponent = NewComponent[Camera]()

// ToScreen maps a world point to pixels.
func (c Camera) ToScreen(p cp.Vector) (float32, float32) {
	x := (p.X - c.OffsetX) * c.PixelsPerUnit
	y := c.ScreenHeight - (p.Y-c.OffsetY)*c.PixelsPerUnit
	return float32(x), float32(y)
}
