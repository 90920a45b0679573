package nav

import "github.com/jakecoffman/cp"

// Map is the view of the world the planner searches over.
type Map interface {
	ToGrid(p cp.Vector) Cell
	ToWorld(c Cell) cp.Vector
	IsWalkable(c Cell) bool
}

// Node is a search node as it appears on a reconstructed path.
type Node struct {
	Cell Cell
	G    int
	H    int
}

func (n Node) F() int {
	return n.G + n.H
}

type searchNode struct {
	Node
	parent *searchNode
	inOpen bool
}

// neighbourOffsets is the expansion order: E, W, N, S. No diagonals.
var neighbourOffsets = [4]Cell{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}}

// Planner runs A* over a Map. One planner keeps its node arena between calls
// to reuse allocations, so it must not be shared across goroutines.
type Planner struct {
	grid Map

	// MaxExpansions bounds the number of closed nodes per call. Zero means no bound.
	MaxExpansions int

	nodes   map[Cell]*searchNode
	closed  map[Cell]struct{}
	open    []*searchNode
	visited []Cell
}

func NewPlanner(grid Map) *Planner {
	return &Planner{
		grid:   grid,
		nodes:  make(map[Cell]*searchNode, 128),
		closed: make(map[Cell]struct{}, 128),
		open:   make([]*searchNode, 0, 64),
	}
}

// Plan returns world-space waypoints (cell centers) from start to goal, start
// inclusive. ok is false when the goal cannot be reached.
func (p *Planner) Plan(startWorld, goalWorld cp.Vector) ([]cp.Vector, bool) {
	if p == nil || p.grid == nil {
		return nil, false
	}
	nodes, ok := p.PlanCells(p.grid.ToGrid(startWorld), p.grid.ToGrid(goalWorld))
	if !ok {
		return nil, false
	}
	out := make([]cp.Vector, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, p.grid.ToWorld(n.Cell))
	}
	return out, true
}

// PlanCells searches from start to goal and returns the reconstructed nodes in
// start-to-goal order.
func (p *Planner) PlanCells(start, goal Cell) ([]Node, bool) {
	if p == nil || p.grid == nil {
		return nil, false
	}
	p.reset()

	first := &searchNode{Node: Node{Cell: start, H: Manhattan(start, goal)}, inOpen: true}
	p.nodes[start] = first
	p.open = append(p.open, first)

	expansions := 0
	for len(p.open) > 0 {
		bestIdx := 0
		for i := 1; i < len(p.open); i++ {
			if better(p.open[i], p.open[bestIdx]) {
				bestIdx = i
			}
		}
		current := p.open[bestIdx]
		p.open = append(p.open[:bestIdx], p.open[bestIdx+1:]...)
		current.inOpen = false
		p.closed[current.Cell] = struct{}{}
		p.visited = append(p.visited, current.Cell)

		if current.Cell == goal {
			return retrace(current), true
		}

		expansions++
		if p.MaxExpansions > 0 && expansions >= p.MaxExpansions {
			return nil, false
		}

		for _, d := range neighbourOffsets {
			next := Cell{X: current.Cell.X + d.X, Y: current.Cell.Y + d.Y}
			if _, done := p.closed[next]; done || !p.grid.IsWalkable(next) {
				continue
			}
			g := current.G + 1
			n, seen := p.nodes[next]
			if seen && g >= n.G {
				continue
			}
			if !seen {
				n = &searchNode{Node: Node{Cell: next}}
				p.nodes[next] = n
			}
			n.G = g
			n.H = Manhattan(next, goal)
			n.parent = current
			if !n.inOpen {
				n.inOpen = true
				p.open = append(p.open, n)
			}
		}
	}

	return nil, false
}

// Map returns the grid the planner searches.
func (p *Planner) Map() Map {
	if p == nil {
		return nil
	}
	return p.grid
}

// Visited returns the cells closed by the last call, in expansion order.
func (p *Planner) Visited() []Cell {
	if p == nil {
		return nil
	}
	return append([]Cell(nil), p.visited...)
}

func (p *Planner) reset() {
	if p.nodes == nil {
		p.nodes = make(map[Cell]*searchNode, 128)
	}
	if p.closed == nil {
		p.closed = make(map[Cell]struct{}, 128)
	}
	clear(p.nodes)
	clear(p.closed)
	for i := range p.open {
		p.open[i] = nil
	}
	p.open = p.open[:0]
	p.visited = p.visited[:0]
}

// better reports whether a should be expanded before b: lower F, then lower H.
// Exact ties keep b, the node found first in scan order.
func better(a, b *searchNode) bool {
	if a.F() != b.F() {
		return a.F() < b.F()
	}
	return a.H < b.H
}

func retrace(end *searchNode) []Node {
	path := make([]Node, 0, end.G+1)
	for n := end; n != nil; n = n.parent {
		path = append(path, n.Node)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Manhattan is |dx| + |dy|, admissible for unit-cost 4-connected moves.
func Manhattan(a, b Cell) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
