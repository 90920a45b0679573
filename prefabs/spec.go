package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type MotorSpec struct {
	MaxSpeed     float64 `yaml:"max_speed"`
	Acceleration float64 `yaml:"acceleration"`
	Braking      float64 `yaml:"braking"`
	TurnRate     float64 `yaml:"turn_rate"`
	Grip         float64 `yaml:"grip"`
}

type BodySpec struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Mass       float64 `yaml:"mass"`
	Elasticity float64 `yaml:"elasticity"`
	Friction   float64 `yaml:"friction"`
}

type CarSpec struct {
	Name  string    `yaml:"name"`
	Motor MotorSpec `yaml:"motor"`
	Body  BodySpec  `yaml:"body"`
	Color YAMLColor `yaml:"color"`
}

func LoadCarSpec() (*CarSpec, error) {
	spec, err := LoadSpec[CarSpec]("car.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type SteeringSpec struct {
	LookAhead      float64 `yaml:"look_ahead"`
	PassRadius     float64 `yaml:"pass_radius"`
	CornerSlowdown float64 `yaml:"corner_slowdown"`
	AngleDeadZone  float64 `yaml:"angle_dead_zone"`
	InvertSteer    bool    `yaml:"invert_steer"`
}

type AIDriverSpec struct {
	Name                string       `yaml:"name"`
	Steering            SteeringSpec `yaml:"steering"`
	SpeedIncreasePerLap float64      `yaml:"speed_increase_per_lap"`
	// LapRules is an optional tengo script under scripts/.
	LapRules string      `yaml:"lap_rules"`
	Colors   []YAMLColor `yaml:"colors"`
}

func LoadAIDriverSpec() (*AIDriverSpec, error) {
	spec, err := LoadSpec[AIDriverSpec]("ai_driver.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type RouteRunnerSpec struct {
	Name           string    `yaml:"name"`
	Speed          float64   `yaml:"speed"`
	ArrivalEpsilon float64   `yaml:"arrival_epsilon"`
	RetryTicks     int       `yaml:"retry_ticks"`
	MaxExpansions  int       `yaml:"max_expansions"`
	Radius         float64   `yaml:"radius"`
	Color          YAMLColor `yaml:"color"`
}

func LoadRouteRunnerSpec() (*RouteRunnerSpec, error) {
	spec, err := LoadSpec[RouteRunnerSpec]("route_runner.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type PlayerSpec struct {
	Name      string    `yaml:"name"`
	MoveSpeed float64   `yaml:"move_speed"`
	TurnSpeed float64   `yaml:"turn_speed"`
	Width     float64   `yaml:"width"`
	Height    float64   `yaml:"height"`
	Color     YAMLColor `yaml:"color"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type RaceSpec struct {
	Level      string  `yaml:"level"`
	TargetLaps int     `yaml:"target_laps"`
	PixelsPer  float64 `yaml:"pixels_per_unit"`
	Countdown  int     `yaml:"countdown_ticks"`
}

func LoadRaceSpec() (*RaceSpec, error) {
	spec, err := LoadSpec[RaceSpec]("race.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

// Or returns c, or fallback when no color was set.
func (c YAMLColor) Or(fallback color.Color) color.Color {
	if c.Color == nil {
		return fallback
	}
	return c.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	col, err := ParseHexColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = col
	return nil
}

// ParseHexColor accepts "#rrggbb" or "#rrggbbaa", with or without the '#'.
func ParseHexColor(v string) (color.NRGBA, error) {
	s := strings.TrimPrefix(strings.TrimSpace(v), "#")
	if len(s) != 6 && len(s) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color format: %s", v)
	}

	var ch [4]uint8
	ch[3] = 255
	for i := 0; i < len(s)/2; i++ {
		n, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid color format: %s", v)
		}
		ch[i] = uint8(n)
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}
