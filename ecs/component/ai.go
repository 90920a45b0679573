package component

import (
	"github.com/milk9111/racer/ai"
	"github.com/milk9111/racer/nav"
)

// AIDriver follows the track's waypoint circuit.
type AIDriver struct {
	Steering *ai.Steering
	Bonus    *ai.LapSpeedBonus
	// Last is the command issued this tick.
	Last ai.Command
}

var AIDriverComponent = NewComponent[AIDriver]()

// RouteRunner shuttles between two goals along A* paths.
type RouteRunner struct {
	Controller *ai.RouteController
	Planner    *nav.Planner
	Radius     float64
	// Replans is the controller's replan count seen by the route system.
	Replans int
}

var RouteRunnerComponent = NewComponent[RouteRunner]()
