package entity

import (
	"fmt"

	"github.com/milk9111/racer/ai"
	"github.com/milk9111/racer/ecs"
	"github.com/milk9111/racer/ecs/component"
	"github.com/milk9111/racer/levels"
)

// NewTrack adds the track singleton and the finish line for lvl.
func NewTrack(w *ecs.World, lvl *levels.Level) (*component.Track, error) {
	grid, err := lvl.Grid()
	if err != nil {
		return nil, fmt.Errorf("track: %w", err)
	}
	track := &component.Track{
		Level: lvl,
		Grid:  grid,
		Path:  ai.NewWaypointPath(lvl.WaypointVectors(), lvl.Loop),
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TrackComponent.Kind(), track); err != nil {
		return nil, fmt.Errorf("track: add track: %w", err)
	}

	finish := ecs.CreateEntity(w)
	if err := ecs.Add(w, finish, component.FinishLineComponent.Kind(), &component.FinishLine{Rect: lvl.FinishLine}); err != nil {
		return nil, fmt.Errorf("track: add finish line: %w", err)
	}
	return track, nil
}

func NewCamera(w *ecs.World) (ecs.Entity, error) {
	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), &component.Camera{PixelsPerUnit: 32}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}
	return camera, nil
}
