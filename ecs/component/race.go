package component

import (
	"github.com/milk9111/racer/levels"
	"github.com/milk9111/racer/race"
)

// Racer takes part in the lap count.
type Racer struct {
	ID   race.RacerID
	Name string
	// InFinish is true while the racer overlaps the finish line.
	InFinish    bool
	Speedometer race.Speedometer
}

var RacerComponent = NewComponent[Racer]()

type FinishLine struct {
	Rect levels.Rect
}

var FinishLineComponent = NewComponent[FinishLine]()

// Spawn is where a racer returns to when the race restarts. Angle is in
// radians.
type Spawn struct {
	X     float64
	Y     float64
	Angle float64
}

var SpawnComponent = NewComponent[Spawn]()

// RespawnRequest asks the respawn system to put an entity back on its Spawn.
type RespawnRequest struct{}

var RespawnRequestComponent = NewComponent[RespawnRequest]()
