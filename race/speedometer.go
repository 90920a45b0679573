package race

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/racer/common"
)

const (
	minSampleDt   = 0.0001
	minGaugeSpeed = 0.01
)

// Speedometer derives speed from successive positions so it works the same
// for physics cars and kinematic ones.
type Speedometer struct {
	last   cp.Vector
	primed bool
	speed  float64
}

// Sample records pos and returns the speed since the previous sample. The
// first sample reads 0.
func (s *Speedometer) Sample(pos cp.Vector, dt float64) float64 {
	if s.primed {
		s.speed = pos.Distance(s.last) / math.Max(minSampleDt, dt)
	}
	s.last = pos
	s.primed = true
	return s.speed
}

func (s *Speedometer) Speed() float64 { return s.speed }

// Fill is the gauge fraction for maxSpeed, in [0, 1].
func (s *Speedometer) Fill(maxSpeed float64) float64 {
	return common.Clamp01(s.speed / math.Max(minGaugeSpeed, maxSpeed))
}

func (s *Speedometer) Reset() {
	*s = Speedometer{}
}
