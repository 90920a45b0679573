package entity

import (
	"fmt"

	"github.com/milk9111/racer/ai"
	"github.com/milk9111/racer/prefabs"
	"github.com/milk9111/racer/race"
	"github.com/milk9111/racer/vehicle"
)

// Specs bundles every prefab a race session is built from.
type Specs struct {
	Car    *prefabs.CarSpec
	AI     *prefabs.AIDriverSpec
	Runner *prefabs.RouteRunnerSpec
	Player *prefabs.PlayerSpec
	Race   *prefabs.RaceSpec
}

func LoadSpecs() (*Specs, error) {
	car, err := prefabs.LoadCarSpec()
	if err != nil {
		return nil, err
	}
	aiSpec, err := prefabs.LoadAIDriverSpec()
	if err != nil {
		return nil, err
	}
	runner, err := prefabs.LoadRouteRunnerSpec()
	if err != nil {
		return nil, err
	}
	player, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, err
	}
	raceSpec, err := prefabs.LoadRaceSpec()
	if err != nil {
		return nil, err
	}
	return &Specs{Car: car, AI: aiSpec, Runner: runner, Player: player, Race: raceSpec}, nil
}

// MotorConfig starts from the motor defaults and takes every positive field
// from the prefab.
func MotorConfig(s prefabs.MotorSpec) vehicle.Config {
	cfg := vehicle.DefaultConfig()
	setPositive(&cfg.MaxSpeed, s.MaxSpeed)
	setPositive(&cfg.Acceleration, s.Acceleration)
	setPositive(&cfg.Braking, s.Braking)
	setPositive(&cfg.TurnRate, s.TurnRate)
	setPositive(&cfg.Grip, s.Grip)
	return cfg
}

// SteeringConfig works like MotorConfig for PassRadius. The other fields are
// taken as is: a zero look-ahead, dead zone or throttle floor is a valid tune,
// so their defaults live in ai_driver.yaml.
func SteeringConfig(s prefabs.SteeringSpec) ai.SteeringConfig {
	cfg := ai.DefaultSteeringConfig()
	cfg.LookAhead = s.LookAhead
	cfg.InvertSteer = s.InvertSteer
	cfg.CornerSlowdown = s.CornerSlowdown
	cfg.AngleDeadZone = s.AngleDeadZone
	setPositive(&cfg.PassRadius, s.PassRadius)
	return cfg
}

// RouteConfig works like MotorConfig. RetryTicks is taken as is; zero turns
// retries off.
func RouteConfig(s prefabs.RouteRunnerSpec) ai.RouteConfig {
	cfg := ai.DefaultRouteConfig()
	setPositive(&cfg.Speed, s.Speed)
	setPositive(&cfg.ArrivalEpsilon, s.ArrivalEpsilon)
	cfg.RetryTicks = s.RetryTicks
	return cfg
}

// LapRules compiles the AI driver's lap bonus script. No script means the
// fixed increment applies, reported as a nil rule set.
func LapRules(s *prefabs.AIDriverSpec) (*race.LapRules, error) {
	if s == nil || s.LapRules == "" {
		return nil, nil
	}
	src, err := prefabs.LoadScript(s.LapRules)
	if err != nil {
		return nil, fmt.Errorf("lap rules: load %s: %w", s.LapRules, err)
	}
	rules, err := race.NewLapRules(src)
	if err != nil {
		return nil, fmt.Errorf("lap rules: %s: %w", s.LapRules, err)
	}
	return rules, nil
}

func setPositive(dst *float64, v float64) {
	if v > 0 {
		*dst = v
	}
}
