package component

// Input stores per-tick control state. Turn is positive to the right and
// Forward is positive ahead, both in [-1, 1].
type Input struct {
	Turn    float64
	Forward float64
}

var InputComponent = NewComponent[Input]()

// PlayerControl moves a car kinematically from Input.
type PlayerControl struct {
	MoveSpeed float64
	// TurnSpeed is in degrees per second.
	TurnSpeed float64
}

var PlayerControlComponent = NewComponent[PlayerControl]()
