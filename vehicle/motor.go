package vehicle

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/racer/common"
)

// minSteerSpeed keeps the steering strength defined for very low max speeds.
const minSteerSpeed = 0.1

type Config struct {
	MaxSpeed     float64
	Acceleration float64
	Braking      float64
	// TurnRate is in degrees per second at full steer and speed.
	TurnRate float64
	Grip     float64
}

func DefaultConfig() Config {
	return Config{
		MaxSpeed:     5,
		Acceleration: 15,
		Braking:      40,
		TurnRate:     200,
		Grip:         6,
	}
}

// Motor turns steer/throttle commands into forces on a rigid body. The body's
// heading is its angle; forward is cp.ForAngle(angle).
type Motor struct {
	cfg      Config
	steer    float64
	throttle float64
}

func New(cfg Config) *Motor {
	return &Motor{cfg: cfg}
}

func (m *Motor) Config() Config { return m.cfg }

// SetConfig replaces the tuning. Inputs are kept.
func (m *Motor) SetConfig(cfg Config) { m.cfg = cfg }

func (m *Motor) SetInputs(steer, throttle float64) {
	m.steer = common.Clamp(steer, -1, 1)
	m.throttle = common.Clamp(throttle, -1, 1)
}

func (m *Motor) Inputs() (steer, throttle float64) {
	return m.steer, m.throttle
}

func (m *Motor) MaxSpeed() float64 { return m.cfg.MaxSpeed }

func (m *Motor) AddMaxSpeed(delta float64) { m.cfg.MaxSpeed += delta }

// Apply runs one physics tick worth of motor work on body. It must be called
// before the space is stepped.
func (m *Motor) Apply(body *cp.Body) {
	if body == nil {
		return
	}

	fwd := cp.ForAngle(body.Angle())
	acc := m.cfg.Acceleration
	if m.throttle < 0 {
		acc = m.cfg.Braking
	}
	body.ApplyForceAtWorldPoint(fwd.Mult(acc*m.throttle), body.Position())

	vel := body.Velocity()
	if vel.Length() > m.cfg.MaxSpeed {
		vel = vel.Normalize().Mult(math.Max(0, m.cfg.MaxSpeed))
		body.SetVelocityVector(vel)
	}

	body.SetAngularVelocity(common.Deg2Rad(m.steer * m.cfg.TurnRate * m.SteerStrength(vel, fwd)))

	right := cp.Vector{X: fwd.Y, Y: -fwd.X}
	side := vel.Dot(right)
	body.ApplyForceAtWorldPoint(right.Mult(-side*m.cfg.Grip), body.Position())
}

// SteerStrength scales steering by forward speed so a parked car can't spin.
func (m *Motor) SteerStrength(vel, fwd cp.Vector) float64 {
	return common.Clamp01(math.Abs(vel.Dot(fwd)) / math.Max(minSteerSpeed, m.cfg.MaxSpeed*0.5))
}
