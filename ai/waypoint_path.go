package ai

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Waypoints is an indexable sequence of world positions a driver can follow.
type Waypoints interface {
	Count() int
	Get(index int) cp.Vector
	Next(index int) int
}

// WaypointPath is an ordered list of fixed points. When Loop is set, indices
// wrap modulo the length; otherwise they clamp to the ends.
type WaypointPath struct {
	points []cp.Vector
	Loop   bool
}

func NewWaypointPath(points []cp.Vector, loop bool) *WaypointPath {
	return &WaypointPath{points: append([]cp.Vector(nil), points...), Loop: loop}
}

func (p *WaypointPath) Count() int {
	if p == nil {
		return 0
	}
	return len(p.points)
}

// Get returns the waypoint at index after wrapping or clamping it.
func (p *WaypointPath) Get(index int) cp.Vector {
	n := p.Count()
	if n == 0 {
		return cp.Vector{}
	}
	return p.points[p.normalize(index)]
}

func (p *WaypointPath) Next(index int) int {
	n := p.Count()
	if n == 0 {
		return 0
	}
	if p.Loop {
		return p.normalize(index + 1)
	}
	return min(index+1, n-1)
}

// NearestIndex returns the index of the closest waypoint to pos. The first of
// several equally close waypoints wins.
func (p *WaypointPath) NearestIndex(pos cp.Vector) int {
	best := 0
	bestD := math.Inf(1)
	for i := 0; i < p.Count(); i++ {
		if d := p.points[i].DistanceSq(pos); d < bestD {
			bestD = d
			best = i
		}
	}
	return best
}

// Points returns a copy of the waypoint list.
func (p *WaypointPath) Points() []cp.Vector {
	if p == nil {
		return nil
	}
	return append([]cp.Vector(nil), p.points...)
}

func (p *WaypointPath) normalize(index int) int {
	n := len(p.points)
	if p.Loop {
		return (index%n + n) % n
	}
	return max(0, min(index, n-1))
}
