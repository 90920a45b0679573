package system

import (
	"log"

	"github.com/milk9111/racer/ecs"
	"github.com/milk9111/racer/ecs/component"
	"github.com/milk9111/racer/race"
)

// LapSystem counts a lap each time a racer enters the finish line.
type LapSystem struct {
	race      *race.Race
	announced bool
}

func NewLapSystem(r *race.Race) *LapSystem {
	return &LapSystem{race: r}
}

func (l *LapSystem) Update(w *ecs.World) {
	if l == nil || l.race == nil || w == nil {
		return
	}
	fe, ok := ecs.First(w, component.FinishLineComponent.Kind())
	if !ok {
		return
	}
	finish, _ := ecs.Get(w, fe, component.FinishLineComponent.Kind())

	ecs.ForEach2(w, component.RacerComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, r *component.Racer, t *component.Transform) {
		inside := finish.Rect.Contains(t.Position())
		entered := inside && !r.InFinish
		r.InFinish = inside
		if !entered {
			return
		}

		if err := l.race.CompleteLap(r.ID); err != nil {
			log.Printf("lap: %s: %v", r.Name, err)
			return
		}
		w.Events().Push(ecs.Event{Kind: ecs.EventLapCompleted, Entity: e, Data: l.race.Laps(r.ID)})

		if winner, ok := l.race.Winner(); ok && !l.announced {
			l.announced = true
			w.Events().Push(ecs.Event{Kind: ecs.EventRaceWon, Entity: e, Data: winner})
			log.Printf("lap: %s wins after %d laps", l.race.Name(winner), l.race.Laps(winner))
		}
	})
}

// Reset forgets the announced winner so a restarted race can finish again.
func (l *LapSystem) Reset() {
	l.announced = false
}
