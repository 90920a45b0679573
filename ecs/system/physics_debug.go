package system

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/racer/ecs"
	"github.com/milk9111/racer/ecs/component"
	"golang.org/x/image/colornames"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 0.15
)

// DebugDrawSystem overlays collision shapes, the waypoint circuit, each AI
// car's aim point and each runner's current path and visited cells.
type DebugDrawSystem struct {
	physics *PhysicsSystem
	Enabled bool
}

func NewDebugDrawSystem(physics *PhysicsSystem, enabled bool) *DebugDrawSystem {
	return &DebugDrawSystem{physics: physics, Enabled: enabled}
}

func (d *DebugDrawSystem) Update(w *ecs.World) {}

func (d *DebugDrawSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if d == nil || !d.Enabled || w == nil || screen == nil {
		return
	}
	cam := cameraOf(w)
	drawer := &physicsDebugDrawer{screen: screen, cam: cam}

	if d.physics != nil {
		cp.DrawSpace(d.physics.Space(), drawer)
	}

	if te, ok := ecs.First(w, component.TrackComponent.Kind()); ok {
		track, _ := ecs.Get(w, te, component.TrackComponent.Kind())
		if track.Path != nil {
			pts := track.Path.Points()
			for i, p := range pts {
				if i+1 < len(pts) || track.Path.Loop {
					drawer.drawLine(p, pts[(i+1)%len(pts)], colornames.Yellow)
				}
				drawer.drawDot(p, colornames.Yellow)
			}
		}
	}

	ecs.ForEach2(w, component.AIDriverComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, driver *component.AIDriver, t *component.Transform) {
		if driver.Steering == nil {
			return
		}
		drawer.drawLine(t.Position(), driver.Steering.AimPoint(), colornames.Orange)
	})

	ecs.ForEach(w, component.RouteRunnerComponent.Kind(), func(e ecs.Entity, rr *component.RouteRunner) {
		if rr.Planner != nil && rr.Planner.Map() != nil {
			for _, c := range rr.Planner.Visited() {
				drawer.drawDot(rr.Planner.Map().ToWorld(c), colornames.Cyan)
			}
		}
		if rr.Controller == nil {
			return
		}
		path := rr.Controller.Path()
		for i := 0; i+1 < len(path); i++ {
			drawer.drawLine(path[i], path[i+1], colornames.Magenta)
		}
	})
}

type physicsDebugDrawer struct {
	screen *ebiten.Image
	cam    component.Camera
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	d.drawCircle(pos, radius, toNRGBA(outline))
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, toNRGBA(outline))
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, toNRGBA(fill))
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, toNRGBA(outline))
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], toNRGBA(outline))
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	d.drawDot(pos, toNRGBA(fill))
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, col color.Color) {
	x1, y1 := d.cam.ToScreen(a)
	x2, y2 := d.cam.ToScreen(b)
	vector.StrokeLine(d.screen, x1, y1, x2, y2, 1, col, true)
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, col color.Color) {
	for i := range verts {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], col)
	}
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, col color.Color) {
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, col)
}

func (d *physicsDebugDrawer) drawDot(pos cp.Vector, col color.Color) {
	x, y := d.cam.ToScreen(pos)
	vector.FillCircle(d.screen, x, y, float32(debugDotSize*d.cam.PixelsPerUnit), col, true)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
