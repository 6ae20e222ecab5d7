package game

import (
	"math"
	"math/rand"
)

// Wind holds the horizontal push applied to every projectile for one round.
// Positive values blow toward +X.
type Wind struct {
	Value float64 // human-readable strength shown on the HUD
}

// maxWindForRound grows the possible wind strength with the round number.
func maxWindForRound(round int) float64 {
	return math.Min(baseWind+float64(round-1)*windPerRound, windHardCap)
}

// rollWind draws a fresh wind value for the given round.
func rollWind(round int, rng *rand.Rand) Wind {
	m := maxWindForRound(round)
	return Wind{Value: (rng.Float64()*2 - 1) * m}
}

// Force returns the per-step horizontal acceleration for projectiles.
func (w Wind) Force() float64 {
	return w.Value * windForceMul
}
