package system

import (
	"fmt"

	"github.com/milk9111/racer/ai"
	"github.com/milk9111/racer/ecs"
	"github.com/milk9111/racer/ecs/component"
	"github.com/milk9111/racer/race"
)

// HUDState is what the player's dashboard shows.
type HUDState struct {
	Speed      float64
	MaxSpeed   float64
	Fill       float64
	Laps       int
	TargetLaps int
	Place      int
	Racers     int
	Winner     string
	Standings  []race.Standing
}

func (h HUDState) LapText() string {
	if h.TargetLaps > 0 {
		return fmt.Sprintf("Lap %d/%d", h.Laps, h.TargetLaps)
	}
	return fmt.Sprintf("Laps: %d", h.Laps)
}

func (h HUDState) PlaceText() string {
	if h.Place == 0 {
		return ""
	}
	return fmt.Sprintf("%s of %d", race.Ordinal(h.Place), h.Racers)
}

// HUDSystem samples racer speeds every tick and builds the dashboard state
// for player.
type HUDSystem struct {
	race   *race.Race
	player ecs.Entity
	state  HUDState
}

func NewHUDSystem(r *race.Race, player ecs.Entity) *HUDSystem {
	return &HUDSystem{race: r, player: player}
}

func (h *HUDSystem) State() HUDState {
	return h.state
}

func (h *HUDSystem) Update(w *ecs.World) {
	if h == nil || h.race == nil || w == nil {
		return
	}
	dt := w.DeltaTime()

	var path *ai.WaypointPath
	if te, ok := ecs.First(w, component.TrackComponent.Kind()); ok {
		if track, ok := ecs.Get(w, te, component.TrackComponent.Kind()); ok {
			path = track.Path
		}
	}

	progress := map[race.RacerID]float64{}
	ecs.ForEach2(w, component.RacerComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, r *component.Racer, t *component.Transform) {
		r.Speedometer.Sample(t.Position(), dt)
		progress[r.ID] = lapProgress(path, t)
	})
	standings := h.race.Standings(func(id race.RacerID) float64 { return progress[id] })

	state := HUDState{TargetLaps: h.race.TargetLaps, Racers: len(standings), Standings: standings}
	if winner, ok := h.race.Winner(); ok {
		state.Winner = h.race.Name(winner)
	}

	if r, ok := ecs.Get(w, h.player, component.RacerComponent.Kind()); ok {
		state.Speed = r.Speedometer.Speed()
		state.MaxSpeed = playerMaxSpeed(w, h.player)
		state.Fill = r.Speedometer.Fill(state.MaxSpeed)
		state.Laps = h.race.Laps(r.ID)
		for _, s := range standings {
			if s.ID == r.ID {
				state.Place = s.Place
			}
		}
	}
	h.state = state
}

func playerMaxSpeed(w *ecs.World, e ecs.Entity) float64 {
	if cm, ok := ecs.Get(w, e, component.CarMotorComponent.Kind()); ok && cm.Motor != nil {
		return cm.Motor.MaxSpeed()
	}
	if pc, ok := ecs.Get(w, e, component.PlayerControlComponent.Kind()); ok {
		return pc.MoveSpeed
	}
	return 0
}

// lapProgress is how far around the circuit t is, in [0, 1).
func lapProgress(path *ai.WaypointPath, t *component.Transform) float64 {
	if path == nil || path.Count() == 0 {
		return 0
	}
	return float64(path.NearestIndex(t.Position())) / float64(path.Count())
}
