package main

import (
	"flag"
	"fmt"

	"github.com/calebwray/mudslinger/internal/game"
)

// runStats summarises one headless autopilot run.
type runStats struct {
	runIndex int
	seed     int64

	rounds      int
	shotsFired  int
	shotsHit    int
	damageDealt int
	damageTaken int
	biggestHit  int
	outcome     string
	ticks       int
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var difficulty string
	var pilot string

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 36000, "tick budget per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&difficulty, "difficulty", "hard", "enemy difficulty: easy, medium, hard")
	flag.StringVar(&pilot, "pilot", "hard", "autopilot tier playing the player's side")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	enemyTier, ok := parseDifficulty(difficulty)
	if !ok {
		fmt.Printf("error: unknown difficulty %q\n", difficulty)
		return
	}
	pilotTier, ok := parseDifficulty(pilot)
	if !ok {
		fmt.Printf("error: unknown pilot tier %q\n", pilot)
		return
	}

	fmt.Printf("=== Headless Artillery Report ===\n")
	fmt.Printf("enemy=%s pilot=%s runs=%d ticks=%d seed_base=%d seed_step=%d\n\n",
		difficulty, pilot, runs, ticks, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runOne(i+1, seed, ticks, enemyTier, pilotTier)
		all = append(all, stats)
		printRun(stats)
	}
	printAggregate(all)
}

func runOne(runIndex int, seed int64, tickBudget int, enemy, pilot game.Difficulty) runStats {
	ts := game.NewTestSim(
		game.WithSeed(seed),
		game.WithDifficulty(enemy),
		game.WithAutopilot(pilot),
	)
	ts.StepUntil(func(s *game.Simulation) bool { return s.Over }, tickBudget)

	s := ts.Sim
	return runStats{
		runIndex:    runIndex,
		seed:        seed,
		rounds:      s.Run.Round,
		shotsFired:  s.Run.ShotsFired,
		shotsHit:    s.Run.ShotsHit,
		damageDealt: s.Run.DamageDealt,
		damageTaken: s.Run.DamageTaken,
		biggestHit:  s.Run.BiggestHit,
		outcome:     s.Turn.Outcome.String(),
		ticks:       s.Tick(),
	}
}

func printRun(st runStats) {
	fmt.Printf("--- run %d (seed=%d) ---\n", st.runIndex, st.seed)
	fmt.Printf("outcome=%s rounds=%d ticks=%d\n", st.outcome, st.rounds, st.ticks)
	hitRate := 0.0
	if st.shotsFired > 0 {
		hitRate = float64(st.shotsHit) / float64(st.shotsFired) * 100
	}
	fmt.Printf("shots=%d hits=%d (%.0f%%) dealt=%d taken=%d biggest=%d\n\n",
		st.shotsFired, st.shotsHit, hitRate, st.damageDealt, st.damageTaken, st.biggestHit)
}

func printAggregate(all []runStats) {
	if len(all) == 0 {
		return
	}
	var rounds, fired, hit, dealt, taken int
	for _, st := range all {
		rounds += st.rounds
		fired += st.shotsFired
		hit += st.shotsHit
		dealt += st.damageDealt
		taken += st.damageTaken
	}
	n := float64(len(all))
	hitRate := 0.0
	if fired > 0 {
		hitRate = float64(hit) / float64(fired) * 100
	}
	fmt.Printf("=== aggregate over %d runs ===\n", len(all))
	fmt.Printf("avg_rounds=%.1f avg_shots=%.1f hit_rate=%.0f%% avg_dealt=%.0f avg_taken=%.0f\n",
		float64(rounds)/n, float64(fired)/n, hitRate, float64(dealt)/n, float64(taken)/n)
}

func parseDifficulty(s string) (game.Difficulty, bool) {
	switch s {
	case "easy":
		return game.DifficultyEasy, true
	case "medium":
		return game.DifficultyMedium, true
	case "hard":
		return game.DifficultyHard, true
	}
	return 0, false
}
