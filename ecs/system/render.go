package system

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/racer/ecs"
	"github.com/milk9111/racer/ecs/component"
	"github.com/milk9111/racer/levels"
	"github.com/milk9111/racer/nav"
	"golang.org/x/image/colornames"
)

var (
	grassColor  = color.RGBA{R: 46, G: 92, B: 52, A: 255}
	roadColor   = color.RGBA{R: 70, G: 70, B: 78, A: 255}
	wallColor   = color.RGBA{R: 150, G: 60, B: 50, A: 255}
	finishColor = color.RGBA{R: 240, G: 240, B: 240, A: 140}
)

// RenderSystem draws the track and every entity with an Appearance. It does
// nothing on Update.
type RenderSystem struct {
	pixel *ebiten.Image
}

func NewRenderSystem() *RenderSystem {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	return &RenderSystem{pixel: pixel}
}

func (r *RenderSystem) Update(w *ecs.World) {}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	cam := cameraOf(w)
	screen.Fill(grassColor)

	if te, ok := ecs.First(w, component.TrackComponent.Kind()); ok {
		track, _ := ecs.Get(w, te, component.TrackComponent.Kind())
		drawTrack(screen, cam, track.Level)
	}
	if fe, ok := ecs.First(w, component.FinishLineComponent.Kind()); ok {
		finish, _ := ecs.Get(w, fe, component.FinishLineComponent.Kind())
		drawRect(screen, cam, finish.Rect, finishColor)
	}

	entities := ecs.Query(w, component.AppearanceComponent.Kind())
	sort.SliceStable(entities, func(i, j int) bool {
		ai, _ := ecs.Get(w, entities[i], component.AppearanceComponent.Kind())
		aj, _ := ecs.Get(w, entities[j], component.AppearanceComponent.Kind())
		return ai.Layer < aj.Layer
	})

	for _, e := range entities {
		look, _ := ecs.Get(w, e, component.AppearanceComponent.Kind())
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		col := look.Color
		if col == nil {
			col = colornames.White
		}
		if look.Width > 0 && look.Height > 0 {
			r.drawBox(screen, cam, t, look.Width, look.Height, col)
			continue
		}
		x, y := cam.ToScreen(t.Position())
		vector.FillCircle(screen, x, y, float32(look.Radius*cam.PixelsPerUnit), col, true)
	}
}

// drawBox draws a rotated rectangle centered on t with a heading tick.
func (r *RenderSystem) drawBox(screen *ebiten.Image, cam component.Camera, t *component.Transform, width, height float64, col color.Color) {
	ppu := cam.PixelsPerUnit
	x, y := cam.ToScreen(t.Position())

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(width*ppu, height*ppu)
	op.GeoM.Translate(-width*ppu/2, -height*ppu/2)
	// Screen Y points down, so world rotation flips sign.
	op.GeoM.Rotate(-t.Rotation)
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(r.pixel, op)

	nose := t.Position().Add(t.Forward().Mult(width / 2))
	nx, ny := cam.ToScreen(nose)
	vector.StrokeLine(screen, x, y, nx, ny, 2, colornames.Black, true)
}

func drawTrack(screen *ebiten.Image, cam component.Camera, lvl *levels.Level) {
	if lvl == nil {
		return
	}
	road, hasRoad := lvl.Layer(levels.RoadLayer)
	walls, hasWalls := lvl.Layer(levels.WallsLayer)
	size := lvl.CellSize

	for y := 0; y < lvl.Height; y++ {
		for x := 0; x < lvl.Width; x++ {
			c := nav.Cell{X: x, Y: y}
			var col color.Color
			switch {
			case hasWalls && walls.HasTile(c):
				col = wallColor
			case hasRoad && road.HasTile(c):
				col = roadColor
			default:
				continue
			}
			rect := levels.Rect{X: lvl.OriginX + float64(x)*size, Y: lvl.OriginY + float64(y)*size, W: size, H: size}
			drawRect(screen, cam, rect, col)
		}
	}
}

func drawRect(screen *ebiten.Image, cam component.Camera, r levels.Rect, col color.Color) {
	// top-left on screen is the world min X, max Y corner
	x, y := cam.ToScreen(cp.Vector{X: r.X, Y: r.Y + r.H})
	ppu := float32(cam.PixelsPerUnit)
	vector.FillRect(screen, x, y, float32(r.W)*ppu, float32(r.H)*ppu, col, false)
}

func cameraOf(w *ecs.World) component.Camera {
	cam := component.Camera{PixelsPerUnit: 32}
	if ce, ok := ecs.First(w, component.CameraComponent.Kind()); ok {
		if c, ok := ecs.Get(w, ce, component.CameraComponent.Kind()); ok && c.PixelsPerUnit > 0 {
			cam = *c
		}
	}
	return cam
}
