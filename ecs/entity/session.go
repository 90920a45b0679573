package entity

import (
	"fmt"
	"log"

	"github.com/milk9111/racer/ecs"
	"github.com/milk9111/racer/ecs/component"
	"github.com/milk9111/racer/levels"
	"github.com/milk9111/racer/race"
)

// Session is one race on one level: the track, the cars and the runner.
type Session struct {
	World  *ecs.World
	Race   *race.Race
	Level  *levels.Level
	Track  *component.Track
	Player ecs.Entity
	AI     []ecs.Entity
	Runner ecs.Entity

	specs *Specs
}

// SpawnRace fills w from lvl and specs. aiCount caps the number of AI cars
// spawned; a negative count uses every AI spawn of the level.
func SpawnRace(w *ecs.World, lvl *levels.Level, specs *Specs, aiCount int) (*Session, error) {
	if lvl == nil {
		return nil, fmt.Errorf("spawn race: nil level")
	}
	if specs == nil {
		specs = &Specs{}
	}

	laps := lvl.TargetLaps
	if specs.Race != nil && specs.Race.TargetLaps > 0 {
		laps = specs.Race.TargetLaps
	}
	s := &Session{World: w, Race: race.New(laps), Level: lvl, specs: specs}

	if _, err := NewCamera(w); err != nil {
		return nil, err
	}
	track, err := NewTrack(w, lvl)
	if err != nil {
		return nil, err
	}
	s.Track = track

	playerSpawn := levels.Spawn{}
	if lvl.Spawns.Player != nil {
		playerSpawn = *lvl.Spawns.Player
	} else if len(lvl.Waypoints) > 0 {
		playerSpawn = levels.Spawn{X: lvl.Waypoints[0].X, Y: lvl.Waypoints[0].Y}
	}
	s.Player, err = NewPlayerCar(w, s.Race, playerSpawn, specs.Player)
	if err != nil {
		return nil, err
	}

	rules, err := LapRules(specs.AI)
	if err != nil {
		return nil, err
	}
	spawns := lvl.Spawns.AI
	if aiCount >= 0 && aiCount < len(spawns) {
		spawns = spawns[:aiCount]
	}
	for i, spawn := range spawns {
		e, err := NewAICar(w, s.Race, spawn, i, specs.Car, specs.AI, track.Path, rules)
		if err != nil {
			return nil, err
		}
		s.AI = append(s.AI, e)
	}

	if lvl.Spawns.Runner != nil {
		s.Runner, err = NewRouteRunner(w, track.Grid, lvl.Spawns.Runner.Vector(), lvl.GoalA.Vector(), lvl.GoalB.Vector(), specs.Runner)
		if err != nil {
			return nil, err
		}
	}

	log.Printf("race: %d laps on %dx%d track, %d ai", laps, lvl.Width, lvl.Height, len(s.AI))
	return s, nil
}

// ApplySpecs swaps in reloaded prefabs. Lap bonuses already earned are kept
// on top of the new base max speed. Specs that fail to load are nil and
// leave their entities as they were.
func (s *Session) ApplySpecs(specs *Specs) error {
	if s == nil || specs == nil {
		return nil
	}
	w := s.World

	if specs.Player != nil {
		if ctrl, ok := ecs.Get(w, s.Player, component.PlayerControlComponent.Kind()); ok {
			if specs.Player.MoveSpeed > 0 {
				ctrl.MoveSpeed = specs.Player.MoveSpeed
			}
			if specs.Player.TurnSpeed > 0 {
				ctrl.TurnSpeed = specs.Player.TurnSpeed
			}
		}
	}

	var rules *race.LapRules
	if specs.AI != nil {
		var err error
		if rules, err = LapRules(specs.AI); err != nil {
			return err
		}
	}
	for _, e := range s.AI {
		if specs.Car != nil {
			if cm, ok := ecs.Get(w, e, component.CarMotorComponent.Kind()); ok && cm.Motor != nil {
				earned := cm.Motor.MaxSpeed() - cm.BaseMaxSpeed
				cfg := MotorConfig(specs.Car.Motor)
				cm.BaseMaxSpeed = cfg.MaxSpeed
				cfg.MaxSpeed += earned
				cm.Motor.SetConfig(cfg)
			}
		}
		if specs.AI != nil {
			if driver, ok := ecs.Get(w, e, component.AIDriverComponent.Kind()); ok {
				driver.Steering.SetConfig(SteeringConfig(specs.AI.Steering))
				driver.Bonus.Increment = specs.AI.SpeedIncreasePerLap
				driver.Bonus.Rule = nil
				if rules != nil {
					driver.Bonus.Rule = rules.Bonus
				}
			}
		}
	}

	if specs.Runner != nil {
		if rr, ok := ecs.Get(w, s.Runner, component.RouteRunnerComponent.Kind()); ok {
			rr.Controller.SetConfig(RouteConfig(*specs.Runner))
			rr.Planner.MaxExpansions = specs.Runner.MaxExpansions
		}
	}
	s.specs = specs
	return nil
}

// Restart clears lap counts and sends every racer and the runner back to
// their spawns. AI cars lose their lap bonuses.
func (s *Session) Restart() {
	if s == nil {
		return
	}
	w := s.World
	s.Race.Reset()

	ecs.ForEach(w, component.SpawnComponent.Kind(), func(e ecs.Entity, _ *component.Spawn) {
		_ = ecs.Add(w, e, component.RespawnRequestComponent.Kind(), &component.RespawnRequest{})
	})
	for _, e := range s.AI {
		if cm, ok := ecs.Get(w, e, component.CarMotorComponent.Kind()); ok && cm.Motor != nil {
			cfg := cm.Motor.Config()
			cfg.MaxSpeed = cm.BaseMaxSpeed
			cm.Motor.SetConfig(cfg)
		}
		if driver, ok := ecs.Get(w, e, component.AIDriverComponent.Kind()); ok && driver.Bonus != nil {
			driver.Bonus.Reset()
		}
	}
}
