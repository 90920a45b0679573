package ai

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/racer/common"
)

const (
	// steerFullLockDeg is the heading error that maps to full steering lock.
	steerFullLockDeg = 45.0
	// throttleFloorDeg is the heading error at which throttle bottoms out.
	throttleFloorDeg = 90.0
	// lookAheadSlack bounds the lookahead walk beyond one full lap of the path.
	lookAheadSlack = 5
)

// Pose is the per-tick vehicle snapshot read from physics.
type Pose struct {
	Position cp.Vector
	Forward  cp.Vector
	Velocity cp.Vector
}

// Command is a normalized motor input. Positive steer turns counter-clockwise.
type Command struct {
	Steer    float64
	Throttle float64
}

type SteeringConfig struct {
	LookAhead      float64
	PassRadius     float64
	CornerSlowdown float64
	AngleDeadZone  float64 // degrees
	InvertSteer    bool
}

func DefaultSteeringConfig() SteeringConfig {
	return SteeringConfig{
		LookAhead:      0,
		PassRadius:     1.2,
		CornerSlowdown: 0.6,
		AngleDeadZone:  3,
	}
}

// RouteCursor is the index of the waypoint a driver is heading to.
type RouteCursor struct {
	Index      int
	PassRadius float64
}

// Advance steps the cursor to the next waypoint once pos is within PassRadius
// of the current one.
func (c *RouteCursor) Advance(path Waypoints, pos cp.Vector) bool {
	if path == nil || path.Count() == 0 {
		return false
	}
	if pos.Distance(path.Get(c.Index)) > c.PassRadius {
		return false
	}
	c.Index = path.Next(c.Index)
	return true
}

// Steering turns a waypoint sequence and the vehicle pose into steer and
// throttle commands, aiming at a point LookAhead along the path.
type Steering struct {
	cfg    SteeringConfig
	path   Waypoints
	cursor RouteCursor

	aim   cp.Vector
	angle float64
}

func NewSteering(cfg SteeringConfig, path Waypoints) *Steering {
	return &Steering{
		cfg:    cfg,
		path:   path,
		cursor: RouteCursor{PassRadius: cfg.PassRadius},
	}
}

func (s *Steering) Config() SteeringConfig {
	return s.cfg
}

func (s *Steering) SetConfig(cfg SteeringConfig) {
	s.cfg = cfg
	s.cursor.PassRadius = cfg.PassRadius
}

// SetPath swaps the followed path and restarts at its first waypoint.
func (s *Steering) SetPath(path Waypoints) {
	s.path = path
	s.cursor.Index = 0
}

func (s *Steering) Path() Waypoints {
	return s.path
}

// Reset points the cursor at the waypoint nearest to pos.
func (s *Steering) Reset(pos cp.Vector) {
	s.cursor.Index = 0
	if wp, ok := s.path.(interface{ NearestIndex(cp.Vector) int }); ok && s.path.Count() > 0 {
		s.cursor.Index = wp.NearestIndex(pos)
	}
}

func (s *Steering) Cursor() RouteCursor {
	return s.cursor
}

// AimPoint is the lookahead target chosen on the last tick.
func (s *Steering) AimPoint() cp.Vector {
	return s.aim
}

// HeadingError is the signed angle in degrees computed on the last tick.
func (s *Steering) HeadingError() float64 {
	return s.angle
}

// Tick computes this tick's command and advances the cursor when the current
// waypoint has been reached. An empty path yields a neutral command.
func (s *Steering) Tick(pose Pose) Command {
	if s.path == nil || s.path.Count() == 0 {
		s.angle = 0
		return Command{}
	}

	s.aim = s.lookAheadTarget()
	s.angle = SignedAngle(pose.Forward, s.aim.Sub(pose.Position))
	cmd := Command{
		Steer:    SteerFor(s.angle, s.cfg.AngleDeadZone, s.cfg.InvertSteer),
		Throttle: ThrottleFor(s.angle, s.cfg.CornerSlowdown),
	}

	s.cursor.Advance(s.path, pose.Position)
	return cmd
}

func (s *Steering) lookAheadTarget() cp.Vector {
	idx := s.cursor.Index
	target := s.path.Get(idx)
	limit := s.path.Count() + lookAheadSlack
	walked := 0.0
	for i := 0; walked < s.cfg.LookAhead && i < limit; i++ {
		idx = s.path.Next(idx)
		next := s.path.Get(idx)
		walked += target.Distance(next)
		target = next
	}
	return target
}

// SignedAngle returns the angle in degrees from from to to, in (-180, 180].
// Positive is counter-clockwise. Zero vectors yield 0.
func SignedAngle(from, to cp.Vector) float64 {
	if from.LengthSq() == 0 || to.LengthSq() == 0 {
		return 0
	}
	deg := common.Rad2Deg(math.Atan2(from.Cross(to), from.Dot(to)))
	if deg <= -180 {
		deg = 180
	}
	return deg
}

// SteerFor maps a heading error to a steering command in [-1, 1].
func SteerFor(angle, deadZone float64, invert bool) float64 {
	steer := common.Clamp(angle/steerFullLockDeg, -1, 1)
	if math.Abs(angle) < deadZone {
		steer = 0
	}
	if invert {
		steer = -steer
	}
	return steer
}

// ThrottleFor is full throttle when aligned and falls to floor as the heading
// error approaches 90 degrees.
func ThrottleFor(angle, floor float64) float64 {
	return common.Lerp(floor, 1, 1-common.Clamp01(math.Abs(angle)/throttleFloorDeg))
}
