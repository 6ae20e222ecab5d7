package game

import (
	"math"
	"math/rand"
)

// Difficulty selects the enemy solver tier.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	default:
		return "unknown"
	}
}

// Aim is a committed firing solution.
type Aim struct {
	Angle  float64
	Power  float64
	Weapon string
}

// enemyLoadoutTable is the ammo issued to the enemy tank at every round
// start, per difficulty. The basic shell is always unlimited.
var enemyLoadoutTable = map[Difficulty]map[string]int{
	DifficultyEasy: {
		"missile": 2,
	},
	DifficultyMedium: {
		"missile": 4,
		"heavy":   2,
		"roller":  1,
	},
	DifficultyHard: {
		"missile": 6,
		"heavy":   4,
		"roller":  2,
		"digger":  2,
		"mirv":    2,
		"nuke":    1,
	},
}

// aiInaccuracy is the Gaussian noise scale applied to the solved aim.
var aiInaccuracy = map[Difficulty]float64{
	DifficultyEasy:   1.0,
	DifficultyMedium: 0.35,
	DifficultyHard:   0.0,
}

// AISolver produces the enemy tank's aim. StartTurn begins a "thinking"
// phase during which the solver animates the turret toward the solution;
// UpdateTurn returns the committed aim exactly once, when thinking ends.
type AISolver struct {
	Difficulty Difficulty

	active     bool
	ticks      int
	thinkTicks int
	solution   Aim
	fromAngle  float64
	fromPower  float64

	// Live animation values, read by the render layer while thinking.
	AnimAngle float64
	AnimPower float64

	rng *rand.Rand
}

// NewAISolver builds a solver with its own seeded noise source.
func NewAISolver(d Difficulty, seed int64) *AISolver {
	return &AISolver{
		Difficulty: d,
		rng:        rand.New(rand.NewSource(seed)), // #nosec G404 -- game AI noise
	}
}

// IssueLoadout re-issues the enemy's per-round ammo for this difficulty.
func (ai *AISolver) IssueLoadout(t *Tank) {
	t.Inventory = map[string]int{}
	for id, n := range enemyLoadoutTable[ai.Difficulty] {
		t.AddAmmo(id, n)
	}
	t.CurrentWeapon = BasicWeaponID
}

// StartTurn computes a firing solution and begins the thinking animation.
func (ai *AISolver) StartTurn(self, target *Tank, wind Wind, terrain *Terrain) {
	sol := ai.solve(self, target, wind, terrain)
	sol.Weapon = ai.pickWeapon(self, target)
	ai.solution = sol
	ai.active = true
	ai.ticks = 0
	ai.fromAngle = self.Angle
	ai.fromPower = self.Power
	ai.AnimAngle = self.Angle
	ai.AnimPower = self.Power
	switch ai.Difficulty {
	case DifficultyEasy:
		ai.thinkTicks = aiThinkTicksEasy
	case DifficultyMedium:
		ai.thinkTicks = aiThinkTicksMedium
	default:
		ai.thinkTicks = aiThinkTicksHard
	}
}

// Thinking reports whether a turn is in progress.
func (ai *AISolver) Thinking() bool { return ai.active }

// UpdateTurn advances the thinking animation one tick. It returns nil until
// the solver commits, then the final Aim exactly once. The solution is
// already computed; the think duration is purely presentational.
func (ai *AISolver) UpdateTurn() *Aim {
	if !ai.active {
		return nil
	}
	ai.ticks++
	frac := clampF(float64(ai.ticks)/float64(ai.thinkTicks), 0, 1)
	ai.AnimAngle = ai.fromAngle + (ai.solution.Angle-ai.fromAngle)*frac
	ai.AnimPower = ai.fromPower + (ai.solution.Power-ai.fromPower)*frac
	if ai.ticks >= ai.thinkTicks {
		ai.active = false
		sol := ai.solution
		return &sol
	}
	return nil
}

// CancelTurn aborts an in-progress turn without firing. Idempotent.
func (ai *AISolver) CancelTurn() {
	ai.active = false
	ai.ticks = 0
}

// --- Solvers ---

func (ai *AISolver) solve(self, target *Tank, wind Wind, terrain *Terrain) Aim {
	switch ai.Difficulty {
	case DifficultyEasy:
		return ai.solveEasy(self, target)
	case DifficultyMedium:
		return ai.solveMedium(self, target, wind)
	default:
		return ai.solveHard(self, target, wind, terrain)
	}
}

// solveEasy samples candidate aims around the direct line to the target and
// keeps the best by straight-line closest approach, then smears the result
// with Gaussian noise.
func (ai *AISolver) solveEasy(self, target *Tank) Aim {
	tx, ty := target.Center()
	sx, sy := self.Center()

	best := Aim{Angle: 45, Power: 60}
	bestMiss := math.Inf(1)
	for _, da := range []float64{-20, -10, 0, 10, 20} {
		for _, power := range []float64{40, 55, 70, 85, 100} {
			angle := lobAngleToward(sx, tx) + da
			miss := straightLineMiss(sx, sy, angle, power, tx, ty)
			if miss < bestMiss {
				bestMiss = miss
				best = Aim{Angle: angle, Power: power}
			}
		}
	}
	noise := aiInaccuracy[DifficultyEasy]
	best.Angle += ai.rng.NormFloat64() * 9 * noise
	best.Power += ai.rng.NormFloat64() * 12 * noise
	return clampAim(best)
}

// solveMedium inverts the ballistic arc analytically under gravity alone,
// then nudges angle and power against the wind.
func (ai *AISolver) solveMedium(self, target *Tank, wind Wind) Aim {
	tx, ty := target.Center()
	sx, sy := self.Center()
	dx := tx - sx
	dy := sy - ty // positive when the target sits higher

	// Fix a 55° lob (mirrored for leftward shots) and solve for speed:
	// with x = v·cosθ·t and y = v·sinθ·t − g·t²/2,
	// v² = g·x² / (2·cos²θ·(x·tanθ − y)).
	theta := 55.0
	if dx < 0 {
		theta = 180 - theta
	}
	rad := theta * math.Pi / 180
	adx := math.Abs(dx)
	denom := 2 * math.Cos(rad) * math.Cos(rad) * (adx*math.Tan(rad) - dy)
	var power float64
	if denom <= 0 {
		power = maxPower
	} else {
		v := math.Sqrt(gravity * adx * adx / denom)
		power = v / maxVelocity * maxPower
	}

	// Wind compensation: push the aim upwind proportionally to the crossing
	// distance.
	comp := wind.Force() * adx * 1.6
	angle := theta + comp*signOf(-dx)
	power += math.Abs(comp) * 4

	noise := aiInaccuracy[DifficultyMedium]
	angle += ai.rng.NormFloat64() * 6 * noise
	power += ai.rng.NormFloat64() * 8 * noise
	return clampAim(Aim{Angle: angle, Power: power})
}

// solveHard runs the real integrator over a coarse angle grid and
// binary-searches power for each angle. The first candidate that lands
// within half a tank width wins; otherwise the global best is used.
// Tie-breaks prefer the angle nearest 45° from vertical symmetry, then the
// smaller power, so results are deterministic.
func (ai *AISolver) solveHard(self, target *Tank, wind Wind, terrain *Terrain) Aim {
	tx, ty := target.Center()

	angles := hardCandidateAngles(self, target)
	best := Aim{Angle: angles[0], Power: 60}
	bestMiss := math.Inf(1)

	for _, angle := range angles {
		lo, hi := minPower, maxPower
		var power, miss float64
		for iter := 0; iter < 18; iter++ {
			power = (lo + hi) / 2
			land := simulateShot(self, angle, power, wind, terrain, target)
			miss = math.Hypot(land.x-tx, land.y-ty)
			if land.overshoot(self, tx) {
				hi = power
			} else {
				lo = power
			}
		}
		if miss < bestMiss || (miss == bestMiss && power < best.Power) {
			bestMiss = miss
			best = Aim{Angle: angle, Power: power}
		}
		if bestMiss < tankWidth/2 {
			break
		}
	}
	return clampAim(best)
}

// hardCandidateAngles is the coarse search grid, ordered so that ties fall
// to the lob closest to 45° above the target direction.
func hardCandidateAngles(self, target *Tank) []float64 {
	leftward := target.X < self.X
	base := []float64{45, 40, 50, 35, 55, 30, 60, 25, 65, 70, 75}
	out := make([]float64, len(base))
	for i, a := range base {
		if leftward {
			out[i] = 180 - a
		} else {
			out[i] = a
		}
	}
	return out
}

// landing is where a simulated shot ended up.
type landing struct {
	x, y float64
}

// overshoot reports whether the landing is beyond the target as seen from
// the shooter, which steers the power binary search.
func (l landing) overshoot(self *Tank, targetX float64) bool {
	if targetX >= self.X {
		return l.x > targetX
	}
	return l.x < targetX
}

// simulateShot mirrors Projectile.Update (gravity, wind, velocity cap) and
// returns the impact point against the terrain or the target's hit box.
func simulateShot(self *Tank, angle, power float64, wind Wind, terrain *Terrain, target *Tank) landing {
	tip := *self
	tip.Angle = clampF(angle, minAngle, maxAngle)
	tip.Power = clampF(power, minPower, maxPower)
	x, y := tip.TurretTip()
	rad := tip.Angle * math.Pi / 180
	speed := tip.Power / maxPower * maxVelocity
	vx := math.Cos(rad) * speed
	vy := -math.Sin(rad) * speed

	tb := target.Bounds()
	for step := 0; step < projStepLimit; step++ {
		vy += gravity
		vx += wind.Force()
		if v := math.Hypot(vx, vy); v > maxVelocity {
			vx *= maxVelocity / v
			vy *= maxVelocity / v
		}
		x += vx
		y += vy
		if x >= tb.x && x <= tb.x+tb.w && y >= tb.y && y <= tb.y+tb.h {
			return landing{x, y}
		}
		if y >= terrain.SurfaceY(int(x)) {
			return landing{x, y}
		}
		if x < 0 || x > float64(terrain.Width()-1) || y > float64(terrain.ScreenHeight()) {
			return landing{x, y}
		}
	}
	return landing{x, y}
}

// pickWeapon chooses what the enemy fires this turn. Specials come out when
// the scoring heuristic (expected damage vs the health gap, discounted by
// scarcity) favours them over the basic shell.
func (ai *AISolver) pickWeapon(self, target *Tank) string {
	bestID := BasicWeaponID
	bestScore := float64(weaponOrDefault(BasicWeaponID).Damage)

	healthGap := float64(target.Health - self.Health)
	for id, ammo := range self.Inventory {
		if ammo <= 0 {
			continue
		}
		w := WeaponByID(id)
		if w == nil {
			continue
		}
		score := float64(w.Damage) * (1 + float64(w.BlastRadius)/200)
		// Losing badly makes the big swings worth spending.
		if healthGap > 25 {
			score *= 1.4
		}
		// Hoard the last rounds of scarce weapons unless desperate.
		if ammo == 1 && healthGap <= 25 {
			score *= 0.6
		}
		if score > bestScore {
			bestScore = score
			bestID = id
		}
	}
	return bestID
}

// --- helpers ---

// lobAngleToward is a crude firing direction: 45° up toward the target.
func lobAngleToward(fromX, toX float64) float64 {
	if toX < fromX {
		return 135
	}
	return 45
}

// straightLineMiss scores a candidate by the closest approach of the
// unperturbed launch ray to the target point. Ignores gravity entirely,
// so the easy tier aims like a beginner.
func straightLineMiss(sx, sy, angle, power, tx, ty float64) float64 {
	rad := angle * math.Pi / 180
	dirX := math.Cos(rad)
	dirY := -math.Sin(rad)
	reach := power / maxPower * maxVelocity * 60 // nominal flight distance
	px := tx - sx
	py := ty - sy
	t := clampF(px*dirX+py*dirY, 0, reach)
	return math.Hypot(px-dirX*t, py-dirY*t)
}

func clampAim(a Aim) Aim {
	a.Angle = clampF(a.Angle, minAngle, maxAngle)
	a.Power = clampF(a.Power, minPower, maxPower)
	return a
}

func signOf(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
