package game

// TestSim is a headless simulation harness used by tests and the batch
// runner. It wraps Simulation with deterministic seeding, scripted input
// and an optional autopilot that plays the player's side with an AI solver.
type TestSim struct {
	Sim    *Simulation
	SimLog *SimLog
	Sink   *RecordingSink

	autopilot *AISolver
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptConfig simOptionKind = iota // size, seed, difficulty, logging
	simOptWorld                       // terrain/tank adjustments, applied after construction
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind   simOptionKind
	config func(*SimConfig)
	world  func(*TestSim)
}

// WithSize sets the playfield dimensions.
func WithSize(w, h int) SimOption {
	return SimOption{kind: simOptConfig, config: func(c *SimConfig) {
		c.Width = w
		c.Height = h
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{kind: simOptConfig, config: func(c *SimConfig) {
		c.Seed = seed
	}}
}

// WithDifficulty selects the enemy solver tier.
func WithDifficulty(d Difficulty) SimOption {
	return SimOption{kind: simOptConfig, config: func(c *SimConfig) {
		c.Difficulty = d
	}}
}

// WithVerboseLog records per-tick projectile positions too.
func WithVerboseLog() SimOption {
	return SimOption{kind: simOptConfig, config: func(c *SimConfig) {
		c.Log = NewSimLog(true)
	}}
}

// WithGodMode wires the debug god-mode hook.
func WithGodMode(enabled func() bool) SimOption {
	return SimOption{kind: simOptConfig, config: func(c *SimConfig) {
		c.GodMode = enabled
	}}
}

// WithFlatTerrain replaces the generated terrain with a uniform height,
// re-seating both tanks on the new surface.
func WithFlatTerrain(height float64) SimOption {
	return SimOption{kind: simOptWorld, world: func(ts *TestSim) {
		s := ts.Sim
		s.Terrain = NewFlatTerrain(s.Width, s.Height, height)
		for _, t := range s.Tanks() {
			t.Y = s.Terrain.SurfaceY(int(t.X))
			t.Falling = false
		}
	}}
}

// WithTankAt moves the given team's tank to column x on the current
// terrain.
func WithTankAt(team Team, x float64) SimOption {
	return SimOption{kind: simOptWorld, world: func(ts *TestSim) {
		t := ts.Sim.Player
		if team == TeamEnemy {
			t = ts.Sim.Enemy
		}
		t.X = x
		t.Y = ts.Sim.Terrain.SurfaceY(int(x))
	}}
}

// WithAutopilot plays the player's turns with a solver of the given tier,
// for AI-vs-AI batch runs.
func WithAutopilot(d Difficulty) SimOption {
	return SimOption{kind: simOptWorld, world: func(ts *TestSim) {
		ts.autopilot = NewAISolver(d, 977)
	}}
}

// NewTestSim builds a headless simulation with the given options. Config
// options apply before construction, world options after.
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{Sink: &RecordingSink{}}
	cfg := SimConfig{
		Seed: 42,
		Log:  NewSimLog(false),
	}
	for _, o := range opts {
		if o.kind == simOptConfig {
			o.config(&cfg)
		}
	}
	cfg.Sink = ts.Sink
	ts.Sim = NewSimulation(cfg)
	ts.SimLog = cfg.Log
	for _, o := range opts {
		if o.kind == simOptWorld {
			o.world(ts)
		}
	}
	return ts
}

// Step advances n frames, driving the autopilot when one is installed.
func (ts *TestSim) Step(n int) {
	for i := 0; i < n; i++ {
		if ts.Sim.Over {
			return
		}
		ts.driveAutopilot()
		ts.Sim.Update()
	}
}

// driveAutopilot solves and fires for the player when it is their turn.
func (ts *TestSim) driveAutopilot() {
	if ts.autopilot == nil || ts.Sim.Turn.Phase != PhasePlayerAim {
		return
	}
	s := ts.Sim
	if !ts.autopilot.Thinking() {
		ts.autopilot.StartTurn(s.Player, s.Enemy, s.Wind, s.Terrain)
	}
	aim := ts.autopilot.UpdateTurn()
	if aim == nil {
		return
	}
	s.Player.SetAngle(aim.Angle)
	s.Player.SetPower(aim.Power)
	if !s.Player.SetWeapon(aim.Weapon) {
		s.Player.CurrentWeapon = BasicWeaponID
	}
	s.Input.Push(InputEvent{Kind: InputFire})
}

// FirePlayer aims the player tank and fires, then returns immediately; the
// caller steps the sim to watch the shot.
func (ts *TestSim) FirePlayer(angle, power float64, weaponID string) {
	s := ts.Sim
	s.Player.SetAngle(angle)
	s.Player.SetPower(power)
	if weaponID != "" {
		if !s.Player.SetWeapon(weaponID) {
			s.Player.CurrentWeapon = BasicWeaponID
		}
	}
	s.Input.Push(InputEvent{Kind: InputFire})
	s.Update()
}

// StepUntil advances frames until pred holds or maxTicks frames pass.
// It reports whether the predicate was satisfied.
func (ts *TestSim) StepUntil(pred func(*Simulation) bool, maxTicks int) bool {
	for i := 0; i < maxTicks; i++ {
		if pred(ts.Sim) {
			return true
		}
		if ts.Sim.Over {
			return pred(ts.Sim)
		}
		ts.driveAutopilot()
		ts.Sim.Update()
	}
	return pred(ts.Sim)
}
