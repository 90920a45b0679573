package ai

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

const eps = 1e-9

func TestSignedAngle(t *testing.T) {
	tests := []struct {
		name string
		from cp.Vector
		to   cp.Vector
		want float64
	}{
		{"aligned", cp.Vector{X: 1}, cp.Vector{X: 5}, 0},
		{"left_quarter", cp.Vector{X: 1}, cp.Vector{Y: 1}, 90},
		{"right_quarter", cp.Vector{X: 1}, cp.Vector{Y: -1}, -90},
		{"behind_is_positive", cp.Vector{X: 1}, cp.Vector{X: -1}, 180},
		{"zero_target", cp.Vector{X: 1}, cp.Vector{}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SignedAngle(tc.from, tc.to); math.Abs(got-tc.want) > eps {
				t.Fatalf("SignedAngle = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSteerForClampAndDeadZone(t *testing.T) {
	tests := []struct {
		name     string
		angle    float64
		deadZone float64
		invert   bool
		want     float64
	}{
		{"full_left", 179, 3, false, 1},
		{"full_right", -179, 3, false, -1},
		{"zero", 0, 3, false, 0},
		{"proportional", 22.5, 3, false, 0.5},
		{"inside_dead_zone", 2.99, 3, false, 0},
		{"inside_dead_zone_negative", -2.5, 3, false, 0},
		{"at_dead_zone_edge", 3, 3, false, 3.0 / 45.0},
		{"inverted", 90, 3, true, -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SteerFor(tc.angle, tc.deadZone, tc.invert)
			if math.Abs(got-tc.want) > eps {
				t.Fatalf("SteerFor(%v) = %v, want %v", tc.angle, got, tc.want)
			}
			if math.Abs(got) > 1 {
				t.Fatalf("steer %v exceeds unit range", got)
			}
		})
	}
}

func TestThrottleFor(t *testing.T) {
	const floor = 0.6
	tests := []struct {
		name  string
		angle float64
		want  float64
	}{
		{"aligned", 0, 1},
		{"half_turn", 45, 0.8},
		{"right_angle", 90, floor},
		{"beyond_right_angle", -150, floor},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ThrottleFor(tc.angle, floor); math.Abs(got-tc.want) > eps {
				t.Fatalf("ThrottleFor(%v) = %v, want %v", tc.angle, got, tc.want)
			}
		})
	}
}

func TestSteeringEmptyPathIsNeutral(t *testing.T) {
	for _, path := range []Waypoints{nil, NewWaypointPath(nil, true)} {
		s := NewSteering(DefaultSteeringConfig(), path)
		cmd := s.Tick(Pose{Forward: cp.Vector{X: 1}})
		if cmd != (Command{}) {
			t.Fatalf("expected neutral command, got %+v", cmd)
		}
	}
}

func TestSteeringAdvancesCursorWithinPassRadius(t *testing.T) {
	s := NewSteering(DefaultSteeringConfig(), squarePath(true))
	s.Tick(Pose{Position: cp.Vector{X: 0, Y: 0}, Forward: cp.Vector{X: 1}})
	if got := s.Cursor().Index; got != 1 {
		t.Fatalf("expected cursor 1, got %d", got)
	}
}

func TestSteeringCursorWrapsOnLoop(t *testing.T) {
	path := squarePath(true)
	s := NewSteering(DefaultSteeringConfig(), path)
	for i := 0; i < path.Count(); i++ {
		s.Tick(Pose{Position: path.Get(s.Cursor().Index), Forward: cp.Vector{X: 1}})
	}
	if got := s.Cursor().Index; got != 0 {
		t.Fatalf("expected cursor to wrap to 0, got %d", got)
	}
}

func TestSteeringDoesNotAdvanceOutsidePassRadius(t *testing.T) {
	s := NewSteering(DefaultSteeringConfig(), squarePath(true))
	s.Tick(Pose{Position: cp.Vector{X: -5, Y: 0}, Forward: cp.Vector{X: 1}})
	if got := s.Cursor().Index; got != 0 {
		t.Fatalf("expected cursor to stay at 0, got %d", got)
	}
}

func TestSteeringCommandsTowardAimPoint(t *testing.T) {
	cfg := DefaultSteeringConfig()
	path := squarePath(true)

	tests := []struct {
		name      string
		forward   cp.Vector
		wantSteer float64
		wantThr   float64
	}{
		// Aim point is waypoint 0 at (0,0), agent at (-5,0).
		{"aligned", cp.Vector{X: 1}, 0, 1},
		{"facing_up_turns_right", cp.Vector{Y: 1}, -1, cfg.CornerSlowdown},
		{"facing_down_turns_left", cp.Vector{Y: -1}, 1, cfg.CornerSlowdown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSteering(cfg, path)
			cmd := s.Tick(Pose{Position: cp.Vector{X: -5}, Forward: tc.forward})
			if math.Abs(cmd.Steer-tc.wantSteer) > eps || math.Abs(cmd.Throttle-tc.wantThr) > eps {
				t.Fatalf("got %+v, want steer %v throttle %v", cmd, tc.wantSteer, tc.wantThr)
			}
		})
	}
}

func TestSteeringLookAhead(t *testing.T) {
	tests := []struct {
		name      string
		lookAhead float64
		want      cp.Vector
	}{
		{"zero_aims_at_current", 0, cp.Vector{X: 0, Y: 0}},
		{"one_segment", 10, cp.Vector{X: 10, Y: 0}},
		{"partial_segment_rounds_up", 11, cp.Vector{X: 10, Y: 10}},
		{"two_segments", 20, cp.Vector{X: 10, Y: 10}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultSteeringConfig()
			cfg.LookAhead = tc.lookAhead
			s := NewSteering(cfg, squarePath(true))
			s.Tick(Pose{Position: cp.Vector{X: -50}, Forward: cp.Vector{X: 1}})
			if got := s.AimPoint(); got != tc.want {
				t.Fatalf("aim point %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSteeringLookAheadTerminatesOnShortPath(t *testing.T) {
	cfg := DefaultSteeringConfig()
	cfg.LookAhead = 1e9

	for _, loop := range []bool{true, false} {
		s := NewSteering(cfg, squarePath(loop))
		cmd := s.Tick(Pose{Position: cp.Vector{X: -50}, Forward: cp.Vector{X: 1}})
		if math.Abs(cmd.Steer) > 1 || cmd.Throttle > 1 {
			t.Fatalf("loop=%v: command out of range %+v", loop, cmd)
		}
	}

	single := NewSteering(cfg, NewWaypointPath([]cp.Vector{{X: 3, Y: 3}}, true))
	single.Tick(Pose{Position: cp.Vector{}, Forward: cp.Vector{X: 1}})
	if single.AimPoint() != (cp.Vector{X: 3, Y: 3}) {
		t.Fatalf("single waypoint path should aim at it, got %v", single.AimPoint())
	}
}

func TestSteeringResetUsesNearestWaypoint(t *testing.T) {
	s := NewSteering(DefaultSteeringConfig(), squarePath(true))
	s.Reset(cp.Vector{X: 1, Y: 9})
	if got := s.Cursor().Index; got != 3 {
		t.Fatalf("expected nearest index 3, got %d", got)
	}
}
