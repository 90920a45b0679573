package system

import (
	"math"

	"github.com/milk9111/racer/common"
	"github.com/milk9111/racer/ecs"
	"github.com/milk9111/racer/ecs/component"
)

// PlayerControllerSystem drives the player's car kinematically: it turns at a
// fixed rate and only moves forward.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach3(w, component.PlayerControlComponent.Kind(), component.InputComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, ctrl *component.PlayerControl, input *component.Input, t *component.Transform) {
			t.Rotation += common.Deg2Rad(-input.Turn * ctrl.TurnSpeed * dt)
			step := math.Max(0, input.Forward) * ctrl.MoveSpeed * dt
			t.SetPosition(t.Position().Add(t.Forward().Mult(step)))
		})
}
