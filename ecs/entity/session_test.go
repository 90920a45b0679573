package entity

import (
	"math"
	"testing"

	"github.com/milk9111/racer/ecs"
	"github.com/milk9111/racer/ecs/component"
	"github.com/milk9111/racer/levels"
	"github.com/milk9111/racer/prefabs"
)

func spawnOval(t *testing.T, aiCount int) *Session {
	t.Helper()
	lvl, err := levels.Load("oval")
	if err != nil {
		t.Fatalf("load level: %v", err)
	}
	specs, err := LoadSpecs()
	if err != nil {
		t.Fatalf("load specs: %v", err)
	}
	s, err := SpawnRace(ecs.NewWorld(), lvl, specs, aiCount)
	if err != nil {
		t.Fatalf("spawn race: %v", err)
	}
	return s
}

func TestSpawnRace(t *testing.T) {
	tests := []struct {
		name    string
		aiCount int
		wantAI  int
	}{
		{name: "all_spawns", aiCount: -1, wantAI: 2},
		{name: "capped", aiCount: 1, wantAI: 1},
		{name: "none", aiCount: 0, wantAI: 0},
		{name: "more_than_spawns", aiCount: 5, wantAI: 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := spawnOval(t, tc.aiCount)
			w := s.World

			if len(s.AI) != tc.wantAI {
				t.Fatalf("ai cars %d, want %d", len(s.AI), tc.wantAI)
			}
			if got := len(s.Race.Racers()); got != tc.wantAI+1 {
				t.Fatalf("racers %d, want %d", got, tc.wantAI+1)
			}
			if s.Race.TargetLaps != 3 {
				t.Fatalf("target laps %d", s.Race.TargetLaps)
			}
			if ecs.Count(w, component.TrackComponent.Kind()) != 1 || ecs.Count(w, component.FinishLineComponent.Kind()) != 1 {
				t.Fatalf("expected one track and one finish line")
			}
			if ecs.Count(w, component.CameraComponent.Kind()) != 1 {
				t.Fatalf("expected a camera")
			}
			if !ecs.Has(w, s.Player, component.PlayerControlComponent.Kind()) || ecs.Has(w, s.Player, component.CarMotorComponent.Kind()) {
				t.Fatalf("player should be kinematic with no motor")
			}
			if !ecs.Has(w, s.Runner, component.RouteRunnerComponent.Kind()) {
				t.Fatalf("runner missing")
			}
		})
	}
}

func TestSpawnRaceNilLevel(t *testing.T) {
	if _, err := SpawnRace(ecs.NewWorld(), nil, nil, 0); err == nil {
		t.Fatalf("expected error for nil level")
	}
}

func TestAICarSetup(t *testing.T) {
	s := spawnOval(t, 2)
	w := s.World

	for i, e := range s.AI {
		t.Run(s.Race.Name(mustRacer(t, w, e).ID), func(t *testing.T) {
			spawn := s.Level.Spawns.AI[i]
			tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
			if tr.X != spawn.X || tr.Y != spawn.Y {
				t.Fatalf("transform (%v,%v), want spawn (%v,%v)", tr.X, tr.Y, spawn.X, spawn.Y)
			}
			cm, _ := ecs.Get(w, e, component.CarMotorComponent.Kind())
			if cm.BaseMaxSpeed != 5 || cm.Motor.MaxSpeed() != 5 {
				t.Fatalf("max speed %v base %v", cm.Motor.MaxSpeed(), cm.BaseMaxSpeed)
			}
			driver, _ := ecs.Get(w, e, component.AIDriverComponent.Kind())
			if driver.Steering.Path() == nil || driver.Bonus.Rule == nil {
				t.Fatalf("driver not fully wired")
			}
			look, _ := ecs.Get(w, e, component.AppearanceComponent.Kind())
			if look.Color == nil {
				t.Fatalf("no color")
			}
		})
	}
}

func mustRacer(t *testing.T, w *ecs.World, e ecs.Entity) *component.Racer {
	t.Helper()
	r, ok := ecs.Get(w, e, component.RacerComponent.Kind())
	if !ok {
		t.Fatalf("entity %v is not a racer", e)
	}
	return r
}

func TestLapBonusFollowsRace(t *testing.T) {
	s := spawnOval(t, 1)
	w := s.World
	e := s.AI[0]
	cm, _ := ecs.Get(w, e, component.CarMotorComponent.Kind())

	if err := s.Race.CompleteLap(mustRacer(t, w, e).ID); err != nil {
		t.Fatal(err)
	}
	if math.Abs(cm.Motor.MaxSpeed()-5.5) > 1e-9 {
		t.Fatalf("max speed after one lap %v, want 5.5", cm.Motor.MaxSpeed())
	}

	// The player's laps must not touch the AI motor.
	if err := s.Race.CompleteLap(mustRacer(t, w, s.Player).ID); err != nil {
		t.Fatal(err)
	}
	if math.Abs(cm.Motor.MaxSpeed()-5.5) > 1e-9 {
		t.Fatalf("player lap changed ai max speed to %v", cm.Motor.MaxSpeed())
	}
}

func TestRestart(t *testing.T) {
	s := spawnOval(t, 1)
	w := s.World
	e := s.AI[0]
	id := mustRacer(t, w, e).ID
	_ = s.Race.CompleteLap(id)
	_ = s.Race.CompleteLap(id)

	s.Restart()

	if s.Race.Laps(id) != 0 {
		t.Fatalf("laps not reset")
	}
	cm, _ := ecs.Get(w, e, component.CarMotorComponent.Kind())
	if cm.Motor.MaxSpeed() != cm.BaseMaxSpeed {
		t.Fatalf("max speed %v, want base %v", cm.Motor.MaxSpeed(), cm.BaseMaxSpeed)
	}
	driver, _ := ecs.Get(w, e, component.AIDriverComponent.Kind())
	if driver.Bonus.Laps() != 0 {
		t.Fatalf("bonus laps not reset")
	}
	for _, want := range []ecs.Entity{s.Player, e, s.Runner} {
		if !ecs.Has(w, want, component.RespawnRequestComponent.Kind()) {
			t.Fatalf("entity %v has no respawn request", want)
		}
	}
}

func TestApplySpecsKeepsEarnedSpeed(t *testing.T) {
	s := spawnOval(t, 1)
	w := s.World
	e := s.AI[0]
	_ = s.Race.CompleteLap(mustRacer(t, w, e).ID)

	specs := &Specs{
		Car:    &prefabs.CarSpec{Motor: prefabs.MotorSpec{MaxSpeed: 7}},
		AI:     &prefabs.AIDriverSpec{SpeedIncreasePerLap: 1, Steering: prefabs.SteeringSpec{LookAhead: 2}},
		Runner: &prefabs.RouteRunnerSpec{Speed: 8, RetryTicks: 10},
		Player: &prefabs.PlayerSpec{MoveSpeed: 9},
	}
	if err := s.ApplySpecs(specs); err != nil {
		t.Fatal(err)
	}

	cm, _ := ecs.Get(w, e, component.CarMotorComponent.Kind())
	if cm.BaseMaxSpeed != 7 || math.Abs(cm.Motor.MaxSpeed()-7.5) > 1e-9 {
		t.Fatalf("base %v max %v, want 7 and 7.5", cm.BaseMaxSpeed, cm.Motor.MaxSpeed())
	}
	driver, _ := ecs.Get(w, e, component.AIDriverComponent.Kind())
	if driver.Bonus.Rule != nil || driver.Bonus.Increment != 1 {
		t.Fatalf("bonus not replaced: %+v", driver.Bonus)
	}
	if driver.Steering.Config().LookAhead != 2 {
		t.Fatalf("steering config not applied")
	}
	rr, _ := ecs.Get(w, s.Runner, component.RouteRunnerComponent.Kind())
	if cfg := rr.Controller.Config(); cfg.Speed != 8 || cfg.RetryTicks != 10 {
		t.Fatalf("route config %+v", cfg)
	}
	ctrl, _ := ecs.Get(w, s.Player, component.PlayerControlComponent.Kind())
	if ctrl.MoveSpeed != 9 || ctrl.TurnSpeed != 180 {
		t.Fatalf("player control %+v", ctrl)
	}
}
