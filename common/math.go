package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

const (
	BaseWidth  = 1280
	BaseHeight = 720
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// MoveTowards steps from toward target by at most maxDelta and never overshoots.
func MoveTowards(from, target cp.Vector, maxDelta float64) cp.Vector {
	delta := target.Sub(from)
	dist := delta.Length()
	if dist == 0 || dist <= maxDelta {
		return target
	}
	if maxDelta <= 0 {
		return from
	}
	return from.Add(delta.Mult(maxDelta / dist))
}

func Deg2Rad(deg float64) float64 {
	return deg * math.Pi / 180
}

func Rad2Deg(rad float64) float64 {
	return rad * 180 / math.Pi
}
