package system

import (
	"github.com/milk9111/racer/ecs"
	"github.com/milk9111/racer/ecs/component"
)

// RouteSystem advances goal-switching runners and reports replans.
type RouteSystem struct{}

func NewRouteSystem() *RouteSystem {
	return &RouteSystem{}
}

func (r *RouteSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach2(w, component.RouteRunnerComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, rr *component.RouteRunner, t *component.Transform) {
			if rr.Controller == nil {
				return
			}
			before := rr.Controller.Position()
			pos := rr.Controller.Tick(dt)
			t.SetPosition(pos)
			if d := pos.Sub(before); d.LengthSq() > 0 {
				t.Rotation = d.ToAngle()
			}

			if n := rr.Controller.Replans(); n != rr.Replans {
				rr.Replans = n
				kind := ecs.EventRouteReplanned
				if len(rr.Controller.Path()) == 0 {
					kind = ecs.EventRouteBlocked
				}
				w.Events().Push(ecs.Event{Kind: kind, Entity: e, Data: rr.Controller.State()})
			}
		})
}
