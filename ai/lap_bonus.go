package ai

// SpeedBooster is the part of a motor a lap bonus can raise.
type SpeedBooster interface {
	MaxSpeed() float64
	AddMaxSpeed(delta float64)
}

// BonusRule decides the max speed increase for a completed lap.
type BonusRule func(laps int, maxSpeed, increment float64) float64

// LapSpeedBonus raises a motor's max speed every time its racer completes a
// lap. It is registered as a race lap listener.
type LapSpeedBonus struct {
	Motor     SpeedBooster
	Increment float64
	Rule      BonusRule

	laps int
}

func (b *LapSpeedBonus) LapCompleted() {
	b.laps++
	if b.Motor == nil {
		return
	}
	delta := b.Increment
	if b.Rule != nil {
		delta = b.Rule(b.laps, b.Motor.MaxSpeed(), b.Increment)
	}
	if delta != 0 {
		b.Motor.AddMaxSpeed(delta)
	}
}

// Laps is the number of laps seen since the last Reset.
func (b *LapSpeedBonus) Laps() int { return b.laps }

// Reset forgets counted laps. The motor's max speed is left alone.
func (b *LapSpeedBonus) Reset() { b.laps = 0 }
