package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/racer/ai"
	"github.com/milk9111/racer/ecs"
	"github.com/milk9111/racer/ecs/component"
)

type RespawnSystem struct{}

func NewRespawnSystem() *RespawnSystem { return &RespawnSystem{} }

// Update moves entities with a RespawnRequest back to their Spawn and clears
// their per-lap state. It should run before the physics system so the body
// starts the step at rest.
func (s *RespawnSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, e := range ecs.Query(w, component.RespawnRequestComponent.Kind()) {
		_ = ecs.Remove(w, e, component.RespawnRequestComponent.Kind())

		spawn, ok := ecs.Get(w, e, component.SpawnComponent.Kind())
		if !ok {
			continue
		}
		pos := cp.Vector{X: spawn.X, Y: spawn.Y}

		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			t.SetPosition(pos)
			t.Rotation = spawn.Angle
		}
		if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && pb.Body != nil {
			pb.Body.SetPosition(pos)
			pb.Body.SetAngle(spawn.Angle)
			pb.Body.SetVelocityVector(cp.Vector{})
			pb.Body.SetAngularVelocity(0)
		}
		if cm, ok := ecs.Get(w, e, component.CarMotorComponent.Kind()); ok && cm.Motor != nil {
			cm.Motor.SetInputs(0, 0)
		}
		if driver, ok := ecs.Get(w, e, component.AIDriverComponent.Kind()); ok && driver.Steering != nil {
			driver.Steering.Reset(pos)
			driver.Last = ai.Command{}
		}
		if rr, ok := ecs.Get(w, e, component.RouteRunnerComponent.Kind()); ok && rr.Controller != nil {
			rr.Controller.Restart(pos)
		}
		if r, ok := ecs.Get(w, e, component.RacerComponent.Kind()); ok {
			r.InFinish = false
			r.Speedometer.Reset()
		}
	}
}
