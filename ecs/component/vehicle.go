package component

import "github.com/milk9111/racer/vehicle"

// CarMotor drives a PhysicsBody from steer/throttle inputs.
type CarMotor struct {
	Motor *vehicle.Motor
	// BaseMaxSpeed is the tuned max speed before lap bonuses.
	BaseMaxSpeed float64
}

var CarMotorComponent = NewComponent[CarMotor]()
