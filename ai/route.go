package ai

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/racer/common"
)

// RouteState names the goal the route controller is currently heading to.
type RouteState int

const (
	HeadingToGoalA RouteState = iota
	HeadingToGoalB
)

func (s RouteState) String() string {
	switch s {
	case HeadingToGoalA:
		return "goal_a"
	case HeadingToGoalB:
		return "goal_b"
	default:
		return "unknown"
	}
}

// PathPlanner produces world waypoints between two positions.
type PathPlanner interface {
	Plan(start, goal cp.Vector) ([]cp.Vector, bool)
}

type RouteConfig struct {
	Speed          float64 // world units per second
	ArrivalEpsilon float64
	RetryTicks     int // ticks between plan attempts while no path exists; 0 never retries
}

func DefaultRouteConfig() RouteConfig {
	return RouteConfig{
		Speed:          100,
		ArrivalEpsilon: 0.05,
		RetryTicks:     30,
	}
}

// RouteController moves an agent kinematically along planned paths, bouncing
// between goal A and goal B and replanning each time a path is finished.
type RouteController struct {
	cfg     RouteConfig
	planner PathPlanner
	goalA   cp.Vector
	goalB   cp.Vector

	state    RouteState
	position cp.Vector
	path     []cp.Vector
	cursor   int
	idle     int
	warned   bool
	replans  int
}

// NewRouteController starts heading to goal A and plans immediately.
func NewRouteController(cfg RouteConfig, planner PathPlanner, position, goalA, goalB cp.Vector) *RouteController {
	r := &RouteController{
		cfg:      cfg,
		planner:  planner,
		goalA:    goalA,
		goalB:    goalB,
		state:    HeadingToGoalA,
		position: position,
	}
	r.replan()
	return r
}

// Tick advances the agent by at most Speed*dt and returns its new position.
// Without a path the agent holds position.
func (r *RouteController) Tick(dt float64) cp.Vector {
	if len(r.path) == 0 {
		if r.cfg.RetryTicks > 0 {
			r.idle++
			if r.idle >= r.cfg.RetryTicks {
				r.replan()
			}
		}
		return r.position
	}

	target := r.path[r.cursor]
	r.position = common.MoveTowards(r.position, target, r.cfg.Speed*dt)
	if r.position.Distance(target) >= r.cfg.ArrivalEpsilon {
		return r.position
	}

	r.cursor++
	if r.cursor >= len(r.path) {
		if r.state == HeadingToGoalA {
			r.state = HeadingToGoalB
		} else {
			r.state = HeadingToGoalA
		}
		r.replan()
	}
	return r.position
}

func (r *RouteController) replan() {
	r.idle = 0
	r.cursor = 0
	r.path = nil
	r.replans++
	if r.planner == nil {
		return
	}
	path, ok := r.planner.Plan(r.position, r.Goal())
	if !ok {
		if !r.warned {
			log.Printf("route: no path from %v to %s %v", r.position, r.state, r.Goal())
			r.warned = true
		}
		return
	}
	r.warned = false
	r.path = path
}

// Restart puts the agent at p heading to goal A with a fresh plan.
func (r *RouteController) Restart(p cp.Vector) {
	r.position = p
	r.state = HeadingToGoalA
	r.replan()
}

func (r *RouteController) Goal() cp.Vector {
	if r.state == HeadingToGoalB {
		return r.goalB
	}
	return r.goalA
}

func (r *RouteController) State() RouteState {
	return r.state
}

func (r *RouteController) Position() cp.Vector {
	return r.position
}

// SetPosition moves the agent without replanning.
func (r *RouteController) SetPosition(p cp.Vector) {
	r.position = p
}

func (r *RouteController) Config() RouteConfig {
	return r.cfg
}

func (r *RouteController) SetConfig(cfg RouteConfig) {
	r.cfg = cfg
}

// Path returns the current plan. The slice must not be modified.
func (r *RouteController) Path() []cp.Vector {
	return r.path
}

func (r *RouteController) Cursor() int {
	return r.cursor
}

// Replans counts plan requests, including failed ones.
func (r *RouteController) Replans() int {
	return r.replans
}
