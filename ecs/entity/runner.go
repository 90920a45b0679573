package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/racer/ai"
	"github.com/milk9111/racer/ecs"
	"github.com/milk9111/racer/ecs/component"
	"github.com/milk9111/racer/nav"
	"github.com/milk9111/racer/prefabs"
	"golang.org/x/image/colornames"
)

// NewRouteRunner spawns an agent that shuttles between goalA and goalB on A*
// paths over grid. It has a kinematic body so cars bump into it.
func NewRouteRunner(w *ecs.World, grid nav.Map, start, goalA, goalB cp.Vector, spec *prefabs.RouteRunnerSpec) (ecs.Entity, error) {
	if spec == nil {
		spec = &prefabs.RouteRunnerSpec{}
	}
	planner := nav.NewPlanner(grid)
	planner.MaxExpansions = spec.MaxExpansions
	ctrl := ai.NewRouteController(RouteConfig(*spec), planner, start, goalA, goalB)

	radius := spec.Radius
	if radius <= 0 {
		radius = 0.3
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: start.X, Y: start.Y}); err != nil {
		return 0, fmt.Errorf("runner: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.SpawnComponent.Kind(), &component.Spawn{X: start.X, Y: start.Y}); err != nil {
		return 0, fmt.Errorf("runner: add spawn: %w", err)
	}
	rr := &component.RouteRunner{Controller: ctrl, Planner: planner, Radius: radius, Replans: ctrl.Replans()}
	if err := ecs.Add(w, e, component.RouteRunnerComponent.Kind(), rr); err != nil {
		return 0, fmt.Errorf("runner: add route runner: %w", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: radius * 2, Height: radius * 2}); err != nil {
		return 0, fmt.Errorf("runner: add physics body: %w", err)
	}
	look := &component.Appearance{Color: spec.Color.Or(colornames.Gold), Radius: radius, Layer: runnerLayer}
	if err := ecs.Add(w, e, component.AppearanceComponent.Kind(), look); err != nil {
		return 0, fmt.Errorf("runner: add appearance: %w", err)
	}
	return e, nil
}
