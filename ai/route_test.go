package ai

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/racer/nav"
)

type planCall struct {
	start cp.Vector
	goal  cp.Vector
}

type fakePlanner struct {
	calls []planCall
	fail  bool
}

func (f *fakePlanner) Plan(start, goal cp.Vector) ([]cp.Vector, bool) {
	f.calls = append(f.calls, planCall{start: start, goal: goal})
	if f.fail {
		return nil, false
	}
	return []cp.Vector{start, goal}, true
}

var (
	goalA = cp.Vector{X: 10, Y: 0}
	goalB = cp.Vector{X: 0, Y: 0}
)

func TestRouteControllerPlansTowardGoalAOnStart(t *testing.T) {
	planner := &fakePlanner{}
	r := NewRouteController(RouteConfig{Speed: 1, ArrivalEpsilon: 0.05}, planner, cp.Vector{}, goalA, goalB)

	if r.State() != HeadingToGoalA {
		t.Fatalf("expected initial state %s, got %s", HeadingToGoalA, r.State())
	}
	if len(planner.calls) != 1 || planner.calls[0].goal != goalA {
		t.Fatalf("expected one plan toward goal A, got %+v", planner.calls)
	}
}

func TestRouteControllerStepIsBounded(t *testing.T) {
	planner := &fakePlanner{}
	r := NewRouteController(RouteConfig{Speed: 2, ArrivalEpsilon: 0.05}, planner, cp.Vector{}, goalA, goalB)

	// first waypoint is the start itself
	r.Tick(0.5)
	prev := r.Position()
	for i := 0; i < 5; i++ {
		pos := r.Tick(0.5)
		if step := pos.Distance(prev); step > 1+eps {
			t.Fatalf("tick %d moved %v, more than speed*dt", i, step)
		}
		prev = pos
	}
	if math.Abs(prev.X-5) > eps {
		t.Fatalf("expected x=5 after five unit steps, got %v", prev)
	}
}

func TestRouteControllerFlipsGoalAndReplans(t *testing.T) {
	planner := &fakePlanner{}
	r := NewRouteController(RouteConfig{Speed: 100, ArrivalEpsilon: 0.05}, planner, cp.Vector{}, goalA, goalB)

	r.Tick(1) // reach path[0] (start)
	pos := r.Tick(1)
	if pos != goalA {
		t.Fatalf("expected to clamp at goal A, got %v", pos)
	}
	if r.State() != HeadingToGoalB {
		t.Fatalf("expected state %s, got %s", HeadingToGoalB, r.State())
	}
	if r.Cursor() != 0 {
		t.Fatalf("expected cursor reset to 0, got %d", r.Cursor())
	}
	last := planner.calls[len(planner.calls)-1]
	if last.start != goalA || last.goal != goalB {
		t.Fatalf("expected replan from goal A to goal B, got %+v", last)
	}

	r.Tick(1)
	r.Tick(1)
	if r.State() != HeadingToGoalA {
		t.Fatalf("expected to head back to goal A, got %s", r.State())
	}
}

func TestRouteControllerHoldsWithoutPath(t *testing.T) {
	planner := &fakePlanner{fail: true}
	start := cp.Vector{X: 3, Y: 4}
	r := NewRouteController(RouteConfig{Speed: 10, ArrivalEpsilon: 0.05, RetryTicks: 3}, planner, start, goalA, goalB)

	for i := 0; i < 2; i++ {
		if pos := r.Tick(1); pos != start {
			t.Fatalf("expected to hold at %v, got %v", start, pos)
		}
	}
	if len(planner.calls) != 1 {
		t.Fatalf("expected no retry yet, got %d calls", len(planner.calls))
	}

	planner.fail = false
	r.Tick(1)
	if len(planner.calls) != 2 {
		t.Fatalf("expected retry on third idle tick, got %d calls", len(planner.calls))
	}
	if len(r.Path()) == 0 {
		t.Fatal("expected a path after a successful retry")
	}
	if r.State() != HeadingToGoalA {
		t.Fatalf("retry must keep the current goal, got %s", r.State())
	}
}

func TestRouteControllerNoRetryWhenDisabled(t *testing.T) {
	planner := &fakePlanner{fail: true}
	r := NewRouteController(RouteConfig{Speed: 10, ArrivalEpsilon: 0.05}, planner, cp.Vector{}, goalA, goalB)
	for i := 0; i < 100; i++ {
		r.Tick(1)
	}
	if len(planner.calls) != 1 {
		t.Fatalf("expected a single plan attempt, got %d", len(planner.calls))
	}
}

func TestRouteControllerWithGridPlanner(t *testing.T) {
	road := nav.TileSetFunc(func(c nav.Cell) bool { return c.X >= 0 && c.Y >= 0 && c.X < 5 && c.Y < 5 })
	walls := nav.TileSetFunc(func(c nav.Cell) bool { return c.X == 2 && c.Y < 4 })
	grid := nav.NewGrid(1, cp.Vector{}, road, walls)
	planner := nav.NewPlanner(grid)

	a := grid.ToWorld(nav.Cell{X: 4, Y: 0})
	b := grid.ToWorld(nav.Cell{X: 0, Y: 0})
	r := NewRouteController(RouteConfig{Speed: 1, ArrivalEpsilon: 0.05}, planner, b, a, b)

	// around the wall: 0,0 -> up to row 4 -> across -> down to 4,0 = 12 steps
	if got := len(r.Path()); got != 13 {
		t.Fatalf("expected 13 waypoints around the wall, got %d", got)
	}

	for i := 0; i < 200 && r.State() == HeadingToGoalA; i++ {
		r.Tick(0.5)
	}
	if r.State() != HeadingToGoalB {
		t.Fatal("expected to reach goal A and turn back")
	}
	if r.Position().Distance(a) > 0.05 {
		t.Fatalf("expected to be at goal A, got %v", r.Position())
	}
}

func TestRouteControllerRestart(t *testing.T) {
	planner := &fakePlanner{}
	r := NewRouteController(RouteConfig{Speed: 100, ArrivalEpsilon: 0.05}, planner, cp.Vector{}, goalA, goalB)
	r.Tick(1)
	r.Tick(1)
	if r.State() != HeadingToGoalB {
		t.Fatalf("expected to be heading to B, got %s", r.State())
	}

	start := cp.Vector{X: 2, Y: 2}
	r.Restart(start)
	if r.State() != HeadingToGoalA || r.Position() != start || r.Cursor() != 0 {
		t.Fatalf("restart left state=%s pos=%v cursor=%d", r.State(), r.Position(), r.Cursor())
	}
	last := planner.calls[len(planner.calls)-1]
	if last.start != start || last.goal != goalA {
		t.Fatalf("expected a plan from %v to goal A, got %+v", start, last)
	}
}
