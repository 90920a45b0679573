package system

import (
	"math"

	"github.com/milk9111/racer/ecs"
	"github.com/milk9111/racer/ecs/component"
)

// CameraSystem fits the track into the screen and centers it.
type CameraSystem struct {
	// FixedScale overrides the fitted pixels per unit when positive.
	FixedScale float64
	screenW    float64
	screenH    float64
}

func NewCameraSystem(screenW, screenH int, fixedScale float64) *CameraSystem {
	return &CameraSystem{FixedScale: fixedScale, screenW: float64(screenW), screenH: float64(screenH)}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}
	ce, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return
	}
	cam, _ := ecs.Get(w, ce, component.CameraComponent.Kind())
	te, ok := ecs.First(w, component.TrackComponent.Kind())
	if !ok {
		return
	}
	track, _ := ecs.Get(w, te, component.TrackComponent.Kind())
	if track.Level == nil {
		return
	}

	*cam = FitCamera(cs.screenW, cs.screenH, trackWidth(track), trackHeight(track), track.Level.OriginX, track.Level.OriginY, cs.FixedScale)
}

// FitCamera returns a camera that shows a worldW x worldH area starting at
// (originX, originY) centered on a screenW x screenH screen.
func FitCamera(screenW, screenH, worldW, worldH, originX, originY, fixedScale float64) component.Camera {
	ppu := fixedScale
	if ppu <= 0 && worldW > 0 && worldH > 0 {
		ppu = math.Min(screenW/worldW, screenH/worldH)
	}
	if ppu <= 0 {
		ppu = 1
	}
	marginX := (screenW - worldW*ppu) / 2 / ppu
	marginY := (screenH - worldH*ppu) / 2 / ppu
	return component.Camera{
		PixelsPerUnit: ppu,
		OffsetX:       originX - marginX,
		OffsetY:       originY - marginY,
		ScreenHeight:  screenH,
	}
}

func trackWidth(t *component.Track) float64 {
	return float64(t.Level.Width) * t.Level.CellSize
}

func trackHeight(t *component.Track) float64 {
	return float64(t.Level.Height) * t.Level.CellSize
}
