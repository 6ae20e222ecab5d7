package game

// --- Design space ---
//
// All simulation coordinates live in a fixed design space. Y grows downward;
// angles are in degrees with 0° pointing +X and 90° pointing straight up.

const (
	designWidth  = 1200 // px, playfield width
	designHeight = 800  // px, playfield height
)

// --- Ballistics ---

const (
	gravity       = 0.2  // px/step², added to vy every step
	maxVelocity   = 10.0 // px/step, hard cap on projectile speed
	windForceMul  = 0.004
	trailMaxLen   = 30  // positions kept per projectile trail
	projStepLimit = 900 // steps before an in-flight projectile is abandoned
)

// --- Aim limits ---

const (
	minAngle = 0.0   // degrees, firing flat right
	maxAngle = 180.0 // degrees, firing flat left
	minPower = 10.0
	maxPower = 100.0

	// Held-key repeat rates, per tick at 60 ticks/s.
	angleRatePerTick = 1.5  // 90°/s
	powerRatePerTick = 0.85 // ~50 power/s
)

// --- Tanks ---

const (
	tankWidth       = 40.0
	tankBodyHeight  = 18.0
	tankHeight      = 30.0 // body + dome, used for hit bounds
	turretLength    = 26.0
	turretWidth     = 4.0
	tankMaxHP       = 100
	tankFallSlack   = 3.0  // px the ground may drop before a tank starts falling
	fallDamagePerPx = 0.25 // HP per px of fall beyond the grace distance
	fallGraceDist   = 40.0 // px of free fall before damage accrues
)

// --- Damage ---

const (
	defaultBlastRadius = 40
	defaultMaxDamage   = 25
	directHitDist      = 5.0 // px from tank bounds for the direct-hit bonus
	directHitMul       = 1.5

	// A projectile may not hit its own tank until it has moved this far
	// from its spawn point.
	ownerClearDist = 50.0
)

// --- Terrain ---

const (
	terrainRoughness     = 0.55 // midpoint displacement falloff per level
	terrainMinHeightFrac = 0.15 // of screen height
	terrainMaxHeightFrac = 0.70
	settleSlope          = 12.0 // px a column may stand above its neighbours
	settleMargin         = 12   // columns scanned beyond the crater rim
	settleMaxPasses      = 400
)

// --- Rounds ---

const (
	baseWind       = 2.0 // max |wind| at round 1
	windPerRound   = 0.4 // max |wind| growth per round
	windHardCap    = 10.0
	roundStartCash = 100 // money issued at the start of every round
	cashPerRound   = 25  // extra issue per round number
	hitCashPerHP   = 2   // money per point of damage dealt
	victoryBonus   = 150
)

// --- AI ---

const (
	aiThinkTicksEasy   = 36 // ticks of turret-swing animation before commit
	aiThinkTicksMedium = 24
	aiThinkTicksHard   = 14
)

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampI(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
