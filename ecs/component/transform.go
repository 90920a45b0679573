package component

import "github.com/jakecoffman/cp"

// Transform is a world pose. Rotation is in radians, counter-clockwise from
// +X, and is the car's heading.
type Transform struct {
	X        float64
	Y        float64
	Rotation float64
}

func (t *Transform) Position() cp.Vector {
	return cp.Vector{X: t.X, Y: t.Y}
}

func (t *Transform) SetPosition(p cp.Vector) {
	t.X, t.Y = p.X, p.Y
}

func (t *Transform) Forward() cp.Vector {
	return cp.ForAngle(t.Rotation)
}

var TransformComponent = NewComponent[Transform]()
