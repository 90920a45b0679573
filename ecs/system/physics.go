package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/racer/ecs"
	"github.com/milk9111/racer/ecs/component"
	"github.com/milk9111/racer/levels"
	"github.com/milk9111/racer/nav"
)

const (
	collisionTypeCar cp.CollisionType = iota + 1
	collisionTypeWall
)

const (
	defaultCarWidth  = 0.8
	defaultCarHeight = 0.45
	defaultCarMass   = 1.0
	wallFriction     = 0.4
	wallElasticity   = 0.3
	// linearDamping is the per-second velocity retention of the space.
	linearDamping = 0.6
)

// PhysicsSystem owns the Chipmunk2D space. Cars with a motor get dynamic
// bodies; everything else with a PhysicsBody is kinematic and follows its
// Transform. Walls are static boxes built once from the track.
type PhysicsSystem struct {
	space      *cp.Space
	wallsBuilt bool
	bodies     map[ecs.Entity]*cp.Body
	walls      int
}

func NewPhysicsSystem() *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})
	space.SetDamping(linearDamping)
	return &PhysicsSystem{
		space:  space,
		bodies: make(map[ecs.Entity]*cp.Body),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// WallCount is the number of static wall boxes in the space.
func (ps *PhysicsSystem) WallCount() int {
	return ps.walls
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	dt := w.DeltaTime()
	if dt <= 0 {
		return
	}

	if !ps.wallsBuilt {
		if te, ok := ecs.First(w, component.TrackComponent.Kind()); ok {
			track, _ := ecs.Get(w, te, component.TrackComponent.Kind())
			ps.buildWalls(track.Level)
			ps.wallsBuilt = true
		}
	}

	ps.pruneDead(w)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		if pb.Body == nil {
			ps.createBody(w, e, pb, t)
		}
		if pb.Body.GetType() != cp.BODY_KINEMATIC {
			return
		}
		// The step integrates the body onto the transform's pose, which also
		// gives dynamic bodies the right velocity to react to.
		pb.Body.SetVelocityVector(t.Position().Sub(pb.Body.Position()).Mult(1 / dt))
		pb.Body.SetAngularVelocity((t.Rotation - pb.Body.Angle()) / dt)
	})

	ps.space.Step(dt)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		if pb.Body == nil || pb.Body.GetType() != cp.BODY_DYNAMIC {
			return
		}
		t.SetPosition(pb.Body.Position())
		t.Rotation = clampAngle(pb.Body.Angle())
	})
}

func (ps *PhysicsSystem) createBody(w *ecs.World, e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
	width, height, mass := pb.Width, pb.Height, pb.Mass
	if width <= 0 {
		width = defaultCarWidth
	}
	if height <= 0 {
		height = defaultCarHeight
	}
	if mass <= 0 {
		mass = defaultCarMass
	}

	var body *cp.Body
	if ecs.Has(w, e, component.CarMotorComponent.Kind()) {
		body = cp.NewBody(mass, cp.MomentForBox(mass, width, height))
	} else {
		body = cp.NewKinematicBody()
	}
	body.SetPosition(t.Position())
	body.SetAngle(t.Rotation)
	ps.space.AddBody(body)

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(pb.Friction)
	shape.SetElasticity(pb.Elasticity)
	shape.SetCollisionType(collisionTypeCar)
	ps.space.AddShape(shape)

	pb.Body = body
	pb.Shape = shape
	ps.bodies[e] = body
}

func (ps *PhysicsSystem) pruneDead(w *ecs.World) {
	for e, body := range ps.bodies {
		if ecs.IsAlive(w, e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		body.EachShape(func(s *cp.Shape) {
			ps.space.RemoveShape(s)
		})
		ps.space.RemoveBody(body)
		delete(ps.bodies, e)
	}
}

func (ps *PhysicsSystem) buildWalls(lvl *levels.Level) {
	if lvl == nil {
		return
	}
	grid, err := lvl.Grid()
	if err != nil {
		return
	}
	walls, hasWalls := lvl.Layer(levels.WallsLayer)

	static := ps.space.StaticBody
	for _, c := range WallCells(lvl.Width, lvl.Height, grid, walls, hasWalls) {
		center := grid.ToWorld(c)
		half := grid.CellSize / 2
		shape := cp.NewBox2(static, cp.BB{L: center.X - half, B: center.Y - half, R: center.X + half, T: center.Y + half}, 0)
		shape.SetFriction(wallFriction)
		shape.SetElasticity(wallElasticity)
		shape.SetCollisionType(collisionTypeWall)
		ps.space.AddShape(shape)
		ps.walls++
	}
}

// WallCells returns the blocked cells that touch a walkable cell. Cells with
// no road around them can't be reached, so they need no collider. Without a
// walls layer every non-road cell bordering the road counts as a wall.
func WallCells(width, height int, grid *nav.Grid, walls *levels.TileLayer, hasWalls bool) []nav.Cell {
	var out []nav.Cell
	for y := -1; y <= height; y++ {
		for x := -1; x <= width; x++ {
			c := nav.Cell{X: x, Y: y}
			if grid.IsWalkable(c) {
				continue
			}
			if hasWalls && !walls.HasTile(c) && inBounds(c, width, height) {
				continue
			}
			if touchesWalkable(grid, c) {
				out = append(out, c)
			}
		}
	}
	return out
}

func inBounds(c nav.Cell, width, height int) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < width && c.Y < height
}

func touchesWalkable(grid *nav.Grid, c nav.Cell) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if grid.IsWalkable(nav.Cell{X: c.X + dx, Y: c.Y + dy}) {
				return true
			}
		}
	}
	return false
}

// clampAngle keeps body angles bounded over long races.
func clampAngle(a float64) float64 {
	return math.Remainder(a, 2*math.Pi)
}
