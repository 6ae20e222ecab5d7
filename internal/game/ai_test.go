package game

import (
	"math"
	"testing"
)

func TestIssueLoadout_PerDifficulty(t *testing.T) {
	terr := NewFlatTerrain(1200, 800, 200)
	for d, want := range enemyLoadoutTable {
		ai := NewAISolver(d, 1)
		tk := NewTank(TeamEnemy, 900, terr)
		tk.CurrentWeapon = "heavy"
		ai.IssueLoadout(tk)

		if tk.CurrentWeapon != BasicWeaponID {
			t.Errorf("%v: selection not reset, got %q", d, tk.CurrentWeapon)
		}
		for id, n := range want {
			if tk.Inventory[id] != n {
				t.Errorf("%v: %s ammo = %d, want %d", d, id, tk.Inventory[id], n)
			}
		}
		if len(tk.Inventory) != len(want) {
			t.Errorf("%v: inventory has %d entries, want %d", d, len(tk.Inventory), len(want))
		}
	}
}

func TestHardSolver_HitsOnFlatTerrain(t *testing.T) {
	terr := NewFlatTerrain(1200, 800, 200)
	self := NewTank(TeamEnemy, 300, terr)
	target := NewTank(TeamPlayer, 700, terr)

	ai := NewAISolver(DifficultyHard, 7)
	aim := ai.solveHard(self, target, Wind{}, terr)

	land := simulateShot(self, aim.Angle, aim.Power, Wind{}, terr, target)
	tx, ty := target.Center()
	if miss := math.Hypot(land.x-tx, land.y-ty); miss > tankWidth {
		t.Fatalf("hard solver missed by %.1f px (aim %.1f°/%.1f)", miss, aim.Angle, aim.Power)
	}
}

func TestHardSolver_CompensatesWind(t *testing.T) {
	terr := NewFlatTerrain(1200, 800, 200)
	self := NewTank(TeamEnemy, 300, terr)
	target := NewTank(TeamPlayer, 600, terr)
	wind := Wind{Value: -10} // headwind for a rightward shot

	ai := NewAISolver(DifficultyHard, 7)
	aim := ai.solveHard(self, target, wind, terr)
	land := simulateShot(self, aim.Angle, aim.Power, wind, terr, target)
	tx, ty := target.Center()
	if miss := math.Hypot(land.x-tx, land.y-ty); miss > tankWidth {
		t.Fatalf("hard solver missed by %.1f px into the wind", miss)
	}
}

func TestHardSolver_Deterministic(t *testing.T) {
	terr := NewFlatTerrain(1200, 800, 200)
	self := NewTank(TeamEnemy, 850, terr)
	target := NewTank(TeamPlayer, 250, terr)

	a := NewAISolver(DifficultyHard, 1).solveHard(self, target, Wind{Value: 20}, terr)
	b := NewAISolver(DifficultyHard, 99).solveHard(self, target, Wind{Value: 20}, terr)
	if a != b {
		t.Fatalf("hard tier should not depend on the noise seed: %+v vs %+v", a, b)
	}
}

func TestHardCandidateAngles_MirroredForLeftwardShots(t *testing.T) {
	terr := NewFlatTerrain(1200, 800, 200)
	self := NewTank(TeamEnemy, 900, terr)
	target := NewTank(TeamPlayer, 300, terr)

	for _, a := range hardCandidateAngles(self, target) {
		if a <= 90 {
			t.Fatalf("leftward candidate %.1f° points right", a)
		}
	}
	for _, a := range hardCandidateAngles(target, self) {
		if a >= 90 {
			t.Fatalf("rightward candidate %.1f° points left", a)
		}
	}
}

func TestEasySolver_SeedReproducible(t *testing.T) {
	terr := NewFlatTerrain(1200, 800, 200)
	self := NewTank(TeamEnemy, 900, terr)
	target := NewTank(TeamPlayer, 300, terr)

	a := NewAISolver(DifficultyEasy, 42).solveEasy(self, target)
	b := NewAISolver(DifficultyEasy, 42).solveEasy(self, target)
	if a != b {
		t.Fatalf("same seed gave different aims: %+v vs %+v", a, b)
	}

	if a.Angle < minAngle || a.Angle > maxAngle || a.Power < minPower || a.Power > maxPower {
		t.Fatalf("easy aim out of bounds: %+v", a)
	}
}

func TestMediumSolver_AimsInBounds(t *testing.T) {
	terr := NewFlatTerrain(1200, 800, 200)
	self := NewTank(TeamEnemy, 900, terr)
	target := NewTank(TeamPlayer, 300, terr)

	ai := NewAISolver(DifficultyMedium, 3)
	aim := ai.solveMedium(self, target, Wind{Value: 40})
	if aim.Angle < minAngle || aim.Angle > maxAngle || aim.Power < minPower || aim.Power > maxPower {
		t.Fatalf("medium aim out of bounds: %+v", aim)
	}
	// Leftward shot lobs left of vertical.
	if aim.Angle <= 90 {
		t.Fatalf("leftward lob angle = %.1f°, want > 90", aim.Angle)
	}
}

func TestSimulateShot_LandsOnSurface(t *testing.T) {
	terr := NewFlatTerrain(1200, 800, 200)
	self := NewTank(TeamEnemy, 300, terr)
	target := NewTank(TeamPlayer, 1100, terr) // far away, out of this arc

	land := simulateShot(self, 60, 50, Wind{}, terr, target)
	if math.Abs(land.y-terr.SurfaceY(int(land.x))) > maxVelocity+1 {
		t.Fatalf("shot did not land on the surface: (%.1f, %.1f)", land.x, land.y)
	}
	if land.x <= 300 {
		t.Fatalf("rightward shot landed behind the shooter at x=%.1f", land.x)
	}
}

func TestUpdateTurn_CommitsExactlyOnce(t *testing.T) {
	terr := NewFlatTerrain(1200, 800, 200)
	self := NewTank(TeamEnemy, 900, terr)
	target := NewTank(TeamPlayer, 300, terr)

	ai := NewAISolver(DifficultyMedium, 5)
	ai.IssueLoadout(self)
	ai.StartTurn(self, target, Wind{}, terr)
	if !ai.Thinking() {
		t.Fatal("solver should be thinking after StartTurn")
	}

	var aim *Aim
	ticks := 0
	for i := 0; i < aiThinkTicksEasy*3; i++ {
		if got := ai.UpdateTurn(); got != nil {
			aim = got
			ticks = i
			break
		}
	}
	if aim == nil {
		t.Fatal("solver never committed an aim")
	}
	if ticks == 0 {
		t.Fatal("solver committed with no thinking delay")
	}
	if ai.Thinking() {
		t.Fatal("solver still thinking after commit")
	}
	if got := ai.UpdateTurn(); got != nil {
		t.Fatal("aim committed twice")
	}
	if aim.Weapon == "" {
		t.Fatal("committed aim has no weapon")
	}
}

func TestUpdateTurn_CommitTickMatchesThinkDuration(t *testing.T) {
	cases := []struct {
		diff Difficulty
		want int
	}{
		{DifficultyEasy, aiThinkTicksEasy},
		{DifficultyMedium, aiThinkTicksMedium},
		{DifficultyHard, aiThinkTicksHard},
	}
	for _, tc := range cases {
		terr := NewFlatTerrain(1200, 800, 200)
		self := NewTank(TeamEnemy, 900, terr)
		target := NewTank(TeamPlayer, 300, terr)

		ai := NewAISolver(tc.diff, 5)
		ai.IssueLoadout(self)
		ai.StartTurn(self, target, Wind{}, terr)

		for tick := 1; tick <= tc.want; tick++ {
			aim := ai.UpdateTurn()
			if tick < tc.want && aim != nil {
				t.Fatalf("difficulty %v committed early at tick %d", tc.diff, tick)
			}
			if tick == tc.want && aim == nil {
				t.Fatalf("difficulty %v did not commit at tick %d", tc.diff, tick)
			}
		}
	}
}

func TestUpdateTurn_AnimatesTowardSolution(t *testing.T) {
	terr := NewFlatTerrain(1200, 800, 200)
	self := NewTank(TeamEnemy, 900, terr)
	self.Angle = 10
	target := NewTank(TeamPlayer, 300, terr)

	ai := NewAISolver(DifficultyHard, 5)
	ai.StartTurn(self, target, Wind{}, terr)
	ai.UpdateTurn()
	mid := ai.AnimAngle

	var final float64
	for ai.Thinking() {
		ai.UpdateTurn()
		final = ai.AnimAngle
	}
	if math.Abs(final-ai.solution.Angle) > 1e-9 {
		t.Fatalf("animation ended at %.2f°, solution is %.2f°", final, ai.solution.Angle)
	}
	if math.Abs(mid-10) >= math.Abs(final-10) && mid != final {
		t.Fatal("animation should move from the current angle toward the solution")
	}
}

func TestCancelTurn_Idempotent(t *testing.T) {
	terr := NewFlatTerrain(1200, 800, 200)
	self := NewTank(TeamEnemy, 900, terr)
	target := NewTank(TeamPlayer, 300, terr)

	ai := NewAISolver(DifficultyEasy, 5)
	ai.StartTurn(self, target, Wind{}, terr)
	ai.CancelTurn()
	ai.CancelTurn()
	if ai.Thinking() {
		t.Fatal("cancelled solver still thinking")
	}
	if got := ai.UpdateTurn(); got != nil {
		t.Fatal("cancelled solver committed an aim")
	}
}

func TestPickWeapon_HoardsLastScarceRound(t *testing.T) {
	self := tankAt(TeamEnemy, 900, 600)
	target := tankAt(TeamPlayer, 300, 600)
	ai := NewAISolver(DifficultyMedium, 1)

	if got := ai.pickWeapon(self, target); got != BasicWeaponID {
		t.Fatalf("empty inventory picked %q", got)
	}

	// One missile, even fight: not worth spending.
	self.Inventory["missile"] = 1
	if got := ai.pickWeapon(self, target); got != BasicWeaponID {
		t.Fatalf("hoarding failed, picked %q", got)
	}

	// Same missile when losing badly: spend it.
	self.Health = 50
	if got := ai.pickWeapon(self, target); got != "missile" {
		t.Fatalf("desperate pick = %q, want missile", got)
	}
}

func TestPickWeapon_PrefersBiggerShell(t *testing.T) {
	self := tankAt(TeamEnemy, 900, 600)
	target := tankAt(TeamPlayer, 300, 600)
	self.Inventory["heavy"] = 3
	self.Inventory["missile"] = 3

	ai := NewAISolver(DifficultyHard, 1)
	if got := ai.pickWeapon(self, target); got != "heavy" {
		t.Fatalf("picked %q, want heavy", got)
	}
}
