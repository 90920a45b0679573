package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/racer/ai"
	"github.com/milk9111/racer/ecs"
	"github.com/milk9111/racer/ecs/component"
)

// AIDriverSystem turns each AI car's pose into motor inputs.
type AIDriverSystem struct{}

func NewAIDriverSystem() *AIDriverSystem {
	return &AIDriverSystem{}
}

func (a *AIDriverSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach3(w, component.AIDriverComponent.Kind(), component.CarMotorComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, driver *component.AIDriver, cm *component.CarMotor, t *component.Transform) {
			if driver.Steering == nil || cm.Motor == nil {
				return
			}
			pose := ai.Pose{Position: t.Position(), Forward: t.Forward()}
			if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && pb.Body != nil {
				pose = poseFromBody(pb.Body)
			}
			driver.Last = driver.Steering.Tick(pose)
			cm.Motor.SetInputs(driver.Last.Steer, driver.Last.Throttle)
		})
}

func poseFromBody(b *cp.Body) ai.Pose {
	return ai.Pose{
		Position: b.Position(),
		Forward:  cp.ForAngle(b.Angle()),
		Velocity: b.Velocity(),
	}
}
