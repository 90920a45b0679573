package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/racer/ai"
	"github.com/milk9111/racer/common"
	"github.com/milk9111/racer/ecs"
	"github.com/milk9111/racer/ecs/component"
	"github.com/milk9111/racer/levels"
	"github.com/milk9111/racer/prefabs"
	"github.com/milk9111/racer/race"
	"github.com/milk9111/racer/vehicle"
	"golang.org/x/image/colornames"
)

const (
	carLayer    = 1
	runnerLayer = 2
)

var aiFallbackColor = color.RGBA{R: 220, G: 60, B: 60, A: 255}

// NewPlayerCar spawns the keyboard-driven car and registers it with r.
func NewPlayerCar(w *ecs.World, r *race.Race, spawn levels.Spawn, spec *prefabs.PlayerSpec) (ecs.Entity, error) {
	if spec == nil {
		spec = &prefabs.PlayerSpec{}
	}
	e := ecs.CreateEntity(w)
	name := spec.Name
	if name == "" {
		name = "player"
	}

	if err := addCarBase(w, e, r, name, spawn, spec.Width, spec.Height, 0, spec.Color.Or(colornames.White)); err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}
	ctrl := &component.PlayerControl{MoveSpeed: spec.MoveSpeed, TurnSpeed: spec.TurnSpeed}
	if ctrl.MoveSpeed <= 0 {
		ctrl.MoveSpeed = 5
	}
	if ctrl.TurnSpeed <= 0 {
		ctrl.TurnSpeed = 180
	}
	if err := ecs.Add(w, e, component.PlayerControlComponent.Kind(), ctrl); err != nil {
		return 0, fmt.Errorf("player: add control: %w", err)
	}
	return e, nil
}

// NewAICar spawns a physics car that follows path. Each completed lap raises
// its max speed by the driver's increment, or by rules when given.
func NewAICar(w *ecs.World, r *race.Race, spawn levels.Spawn, index int, car *prefabs.CarSpec, driver *prefabs.AIDriverSpec, path ai.Waypoints, rules *race.LapRules) (ecs.Entity, error) {
	if car == nil {
		car = &prefabs.CarSpec{}
	}
	if driver == nil {
		driver = &prefabs.AIDriverSpec{}
	}
	e := ecs.CreateEntity(w)
	base := driver.Name
	if base == "" {
		base = "cpu"
	}
	name := fmt.Sprintf("%s %d", base, index+1)

	col := car.Color.Or(aiFallbackColor)
	if len(driver.Colors) > 0 {
		col = driver.Colors[index%len(driver.Colors)].Or(col)
	}
	if err := addCarBase(w, e, r, name, spawn, car.Body.Width, car.Body.Height, car.Body.Mass, col); err != nil {
		return 0, fmt.Errorf("ai car: %w", err)
	}
	if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		pb.Friction = car.Body.Friction
		pb.Elasticity = car.Body.Elasticity
	}

	motor := vehicle.New(MotorConfig(car.Motor))
	if err := ecs.Add(w, e, component.CarMotorComponent.Kind(), &component.CarMotor{Motor: motor, BaseMaxSpeed: motor.MaxSpeed()}); err != nil {
		return 0, fmt.Errorf("ai car: add motor: %w", err)
	}

	steering := ai.NewSteering(SteeringConfig(driver.Steering), path)
	steering.Reset(spawn.Vector())
	bonus := &ai.LapSpeedBonus{Motor: motor, Increment: driver.SpeedIncreasePerLap}
	if rules != nil {
		bonus.Rule = rules.Bonus
	}
	if err := ecs.Add(w, e, component.AIDriverComponent.Kind(), &component.AIDriver{Steering: steering, Bonus: bonus}); err != nil {
		return 0, fmt.Errorf("ai car: add driver: %w", err)
	}

	racer, _ := ecs.Get(w, e, component.RacerComponent.Kind())
	if _, err := r.Subscribe(racer.ID, bonus); err != nil {
		return 0, fmt.Errorf("ai car: subscribe lap bonus: %w", err)
	}
	return e, nil
}

func addCarBase(w *ecs.World, e ecs.Entity, r *race.Race, name string, spawn levels.Spawn, width, height, mass float64, col color.Color) error {
	angle := common.Deg2Rad(spawn.Angle)
	if width <= 0 {
		width = 0.8
	}
	if height <= 0 {
		height = 0.45
	}

	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: spawn.X, Y: spawn.Y, Rotation: angle}); err != nil {
		return fmt.Errorf("add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.SpawnComponent.Kind(), &component.Spawn{X: spawn.X, Y: spawn.Y, Angle: angle}); err != nil {
		return fmt.Errorf("add spawn: %w", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: width, Height: height, Mass: mass}); err != nil {
		return fmt.Errorf("add physics body: %w", err)
	}
	look := &component.Appearance{Color: col, Width: width, Height: height, Layer: carLayer}
	if err := ecs.Add(w, e, component.AppearanceComponent.Kind(), look); err != nil {
		return fmt.Errorf("add appearance: %w", err)
	}
	if err := ecs.Add(w, e, component.RacerComponent.Kind(), &component.Racer{ID: r.Register(name), Name: name}); err != nil {
		return fmt.Errorf("add racer: %w", err)
	}
	return nil
}
