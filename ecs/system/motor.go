package system

import (
	"github.com/milk9111/racer/ecs"
	"github.com/milk9111/racer/ecs/component"
)

// MotorSystem applies each car's motor to its body ahead of the physics step.
type MotorSystem struct{}

func NewMotorSystem() *MotorSystem {
	return &MotorSystem{}
}

func (m *MotorSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.CarMotorComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, cm *component.CarMotor, pb *component.PhysicsBody) {
		if cm.Motor == nil || pb.Body == nil {
			return
		}
		cm.Motor.Apply(pb.Body)
	})
}
