package race

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

const bonusDispatchScript = `
__result = bonus(__laps, __max_speed, __increment)
`

// LapRules runs a tengo script that decides how much max speed a racer gains
// per lap. The script must define
//
//	bonus := func(laps, max_speed, increment) { ... }
//
// and return a number.
type LapRules struct {
	compiled *tengo.Compiled
	failed   bool
}

func NewLapRules(src []byte) (*LapRules, error) {
	script := tengo.NewScript(append(append([]byte(nil), src...), []byte("\n"+bonusDispatchScript)...))
	_ = script.Add("__laps", 0)
	_ = script.Add("__max_speed", 0.0)
	_ = script.Add("__increment", 0.0)
	_ = script.Add("__result", 0.0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("race: compile lap rules: %w", err)
	}
	return &LapRules{compiled: compiled}, nil
}

// Eval runs the script once and reports script errors.
func (r *LapRules) Eval(laps int, maxSpeed, increment float64) (float64, error) {
	if r == nil || r.compiled == nil {
		return increment, nil
	}
	if err := r.compiled.Set("__laps", laps); err != nil {
		return 0, err
	}
	if err := r.compiled.Set("__max_speed", maxSpeed); err != nil {
		return 0, err
	}
	if err := r.compiled.Set("__increment", increment); err != nil {
		return 0, err
	}
	if err := r.compiled.Run(); err != nil {
		return 0, fmt.Errorf("race: run lap rules: %w", err)
	}

	v := r.compiled.Get("__result")
	switch v.Value().(type) {
	case int64, float64:
		return v.Float(), nil
	}
	return 0, fmt.Errorf("race: lap rules returned %s, want number", v.ValueType())
}

// Bonus is Eval with the fixed increment as fallback. Errors are logged once.
func (r *LapRules) Bonus(laps int, maxSpeed, increment float64) float64 {
	delta, err := r.Eval(laps, maxSpeed, increment)
	if err != nil {
		if !r.failed {
			log.Printf("race: lap rules: %v; using increment %v", err, increment)
			r.failed = true
		}
		return increment
	}
	return delta
}
