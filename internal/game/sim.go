package game

import (
	"fmt"
	"math/rand"
)

// SimConfig configures a new simulation run.
type SimConfig struct {
	Width      int
	Height     int
	Difficulty Difficulty
	Seed       int64
	Sink       EventSink // nil = NopSink
	Log        *SimLog   // nil = no logging
	GodMode    func() bool
}

// Simulation owns everything alive during a run: one terrain, two tanks,
// one wind, one run state and the active projectile set. It is strictly
// single-threaded; Update runs one frame to completion.
type Simulation struct {
	Width  int
	Height int

	Terrain     *Terrain
	Player      *Tank
	Enemy       *Tank
	Wind        Wind
	Projectiles []*Projectile

	Run    *RunStats
	Wallet *Wallet
	Turn   *TurnMachine
	AI     *AISolver
	Input  *InputQueue
	FX     *Effects
	Sink   EventSink
	Log    *SimLog

	Difficulty Difficulty
	Over       bool // run finished (defeat or draw)

	godMode func() bool
	rng     *rand.Rand
	tick    int

	// Split children spawned during a projectile pass are appended after
	// the pass completes, never during it.
	pending []*Projectile
}

// NewSimulation builds a run at round 1 and arms the turn machine with the
// player shooting first.
func NewSimulation(cfg SimConfig) *Simulation {
	if cfg.Width == 0 {
		cfg.Width = designWidth
	}
	if cfg.Height == 0 {
		cfg.Height = designHeight
	}
	if cfg.Sink == nil {
		cfg.Sink = NopSink{}
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = 1
	}
	s := &Simulation{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Difficulty: cfg.Difficulty,
		Sink:       cfg.Sink,
		Log:        cfg.Log,
		godMode:    cfg.GodMode,
		rng:        rand.New(rand.NewSource(seed)), // #nosec G404 -- gameplay RNG, seedable for tests
		Input:      &InputQueue{},
		Turn:       NewTurnMachine(),
		FX:         NewEffects(seed + 1),
		AI:         NewAISolver(cfg.Difficulty, seed+2),
	}
	s.Run = NewRunStats()
	s.Wallet = NewWallet(s.Run)
	s.setupRound()
	return s
}

// setupRound regenerates terrain, wind and tank placement for the current
// round number. Player inventory carries over; the enemy's is re-issued.
func (s *Simulation) setupRound() {
	s.Terrain = NewTerrain(s.Width, s.Height, DefaultTerrainParams(), s.rng)

	playerX := float64(s.Width) * (0.15 + s.rng.Float64()*0.10)
	enemyX := float64(s.Width) * (0.75 + s.rng.Float64()*0.10)

	if s.Player == nil {
		s.Player = NewTank(TeamPlayer, playerX, s.Terrain)
	} else {
		s.Player.X = playerX
		s.Player.Y = s.Terrain.SurfaceY(int(playerX))
		s.Player.Health = s.Player.MaxHealth
		s.Player.Falling = false
	}
	s.Enemy = NewTank(TeamEnemy, enemyX, s.Terrain)
	s.Enemy.MaxHealth = tankMaxHP + (s.Run.Round-1)*5 // rounds get harder
	s.Enemy.Health = s.Enemy.MaxHealth
	s.AI.IssueLoadout(s.Enemy)
	s.AI.CancelTurn()

	s.Wind = rollWind(s.Run.Round, s.rng)
	s.Projectiles = s.Projectiles[:0]
	s.pending = s.pending[:0]
	s.Turn.BeginRound(TeamPlayer)

	s.Log.Add(s.tick, "--", "round", "begin",
		fmt.Sprintf("round=%d wind=%.2f", s.Run.Round, s.Wind.Value), float64(s.Run.Round))
}

// Tick returns the number of frames simulated so far.
func (s *Simulation) Tick() int { return s.tick }

// Tanks returns both tanks in a fixed order: player first.
func (s *Simulation) Tanks() []*Tank {
	return []*Tank{s.Player, s.Enemy}
}

// Update advances one frame. The step order is fixed: input, AI, wind,
// projectiles, falling tanks, turn transitions, input clear.
func (s *Simulation) Update() {
	if s.Over {
		return
	}
	s.tick++

	// 1. Input.
	s.applyInput()
	if s.Input.Paused() {
		return
	}

	// 2. AI turn.
	s.updateAI()

	// 3. Wind is constant within a round; nothing to do here.

	// 4. Projectiles.
	if s.Turn.Phase == PhaseProjectileFlight {
		s.updateProjectiles()
	}

	// 5. Falling tanks. Explosion damage was applied above, so the
	// explosion-then-fall ordering is observable and stable.
	s.updateFallingTanks()

	// 6. Turn transitions, one per frame.
	s.updateTurn()

	// Transient effects last; they read, never write, sim state.
	s.FX.Update()
}

// applyInput drains the queue. Aim and fire events are honoured only while
// the player is the active shooter; everything else is silently dropped.
func (s *Simulation) applyInput() {
	for _, e := range s.Input.Drain() {
		switch e.Kind {
		case InputPause:
			s.Input.setPaused(true)
		case InputResume, InputEscape:
			s.Input.setPaused(false)
		case InputAngleDelta:
			if s.Turn.PlayerInputEnabled() {
				s.Player.AdjustAngle(e.Amount)
			}
		case InputPowerDelta:
			if s.Turn.PlayerInputEnabled() {
				s.Player.AdjustPower(e.Amount)
			}
		case InputWeaponNext:
			if s.Turn.PlayerInputEnabled() {
				s.Player.CycleWeapon(1)
			}
		case InputWeaponPrev:
			if s.Turn.PlayerInputEnabled() {
				s.Player.CycleWeapon(-1)
			}
		case InputFire:
			if s.Turn.CanPlayerFire() {
				s.Turn.Phase = PhasePlayerFire
				s.fire(s.Player)
			}
		}
	}
}

// updateAI drives the enemy solver during its aim phase and mirrors the
// thinking animation onto the enemy tank for the renderer.
func (s *Simulation) updateAI() {
	if s.Turn.Phase != PhaseAIAim {
		return
	}
	if !s.AI.Thinking() {
		s.AI.StartTurn(s.Enemy, s.Player, s.Wind, s.Terrain)
		s.Log.Add(s.tick, "enemy", "ai", "think_start", s.Difficulty.String(), 0)
	}
	aim := s.AI.UpdateTurn()
	if aim == nil {
		s.Enemy.SetAngle(s.AI.AnimAngle)
		s.Enemy.SetPower(s.AI.AnimPower)
		return
	}
	s.Enemy.SetAngle(aim.Angle)
	s.Enemy.SetPower(aim.Power)
	if !s.Enemy.SetWeapon(aim.Weapon) {
		s.Enemy.CurrentWeapon = BasicWeaponID
	}
	s.Turn.Phase = PhaseAIFire
	s.fire(s.Enemy)
}

// fire spawns a projectile from the tank's barrel and advances the turn
// machine. Ammo is spent afterwards so the projectile carries the weapon
// that was actually selected, stale selections fall back to the basic
// shell first.
func (s *Simulation) fire(t *Tank) {
	if t.CurrentWeapon != BasicWeaponID && t.Inventory[t.CurrentWeapon] <= 0 {
		t.CurrentWeapon = BasicWeaponID
	}
	p := NewProjectileFromTank(t)
	t.ConsumeAmmo()
	s.Projectiles = append(s.Projectiles, p)

	if t.Team == TeamPlayer {
		s.Run.NoteShotFired(p.WeaponID)
	}
	s.Turn.NoteShotFired(t.Team)
	s.Sink.Emit(Event{Kind: EventFire, X: p.X, Y: p.Y})
	s.Log.Add(s.tick, t.Team.String(), "shot", "fired",
		fmt.Sprintf("%s a=%.1f p=%.1f", p.WeaponID, t.Angle, t.Power), t.Power)
}

// updateProjectiles runs one step for every active projectile in insertion
// order. Split children spawned during the pass are appended afterwards.
func (s *Simulation) updateProjectiles() {
	tanks := s.Tanks()
	for _, p := range s.Projectiles {
		switch p.Mode {
		case ModeFlight:
			s.updateFlight(p, tanks)
		case ModeRolling:
			if explode, reason := p.UpdateRolling(s.Terrain); explode {
				s.Log.Add(s.tick, p.Owner.String(), "shot", "roll_end", reason, p.rollDist)
				s.explode(p, p.X, p.Y)
			} else if t := CheckTankCollision(p.X, p.Y-1, tanks, p.Owner, p.CanHitOwner()); t != nil {
				s.explode(p, p.X, p.Y)
			}
		case ModeDigging:
			if explode, reason, _ := p.UpdateDigging(s.Terrain, tanks); explode {
				s.Log.Add(s.tick, p.Owner.String(), "shot", "dig_end", reason, p.digDist)
				s.explode(p, p.X, p.Y)
			}
		}
	}

	// Compact the set and append children after the pass.
	kept := s.Projectiles[:0]
	for _, p := range s.Projectiles {
		if p.Mode != ModeDead {
			kept = append(kept, p)
		}
	}
	s.Projectiles = append(kept, s.pending...)
	s.pending = s.pending[:0]
}

// updateFlight advances a ballistic projectile: split check, integration,
// then collision. A step that would enter both terrain and a tank resolves
// as the tank hit.
func (s *Simulation) updateFlight(p *Projectile, tanks []*Tank) {
	if p.ShouldSplit() {
		children := CreateSplitProjectiles(p)
		s.pending = append(s.pending, children...)
		s.Log.Add(s.tick, p.Owner.String(), "shot", "split",
			fmt.Sprintf("%s children=%d", p.WeaponID, len(children)), float64(len(children)))
		return
	}
	if !p.Update(s.Wind.Force(), s.Width, s.Height) {
		// Left the playfield or ran out its step budget: no explosion.
		s.Log.Add(s.tick, p.Owner.String(), "shot", "expired", p.WeaponID, 0)
		return
	}
	s.Log.AddVerbose(s.tick, p.Owner.String(), "shot", "position",
		fmt.Sprintf("(%.1f,%.1f)", p.X, p.Y), 0)

	if t := CheckTankCollision(p.X, p.Y, tanks, p.Owner, p.CanHitOwner()); t != nil {
		s.explode(p, p.X, p.Y)
		return
	}
	if hit, hx, hy := s.Terrain.CollisionAt(p.X, p.Y); hit {
		switch {
		case p.ShouldRoll():
			p.StartRolling(s.Terrain.SurfaceY(int(p.X)))
			s.Log.Add(s.tick, p.Owner.String(), "shot", "roll_start", "", p.X)
		case p.ShouldDig():
			p.StartDigging(hx, hy)
			s.Log.Add(s.tick, p.Owner.String(), "shot", "dig_start", "", p.X)
		default:
			s.explode(p, hx, hy)
		}
	}
}

// explode runs the full impact pipeline in a fixed order: damage, then
// crater carving, then dirt settling, then support checks on both tanks.
// A projectile explodes at most once.
func (s *Simulation) explode(p *Projectile, x, y float64) {
	if p.Mode == ModeDead {
		return
	}
	w := p.Weapon()
	e := Explosion{
		X: x, Y: y,
		BlastRadius: w.blastRadiusOrDefault(),
		Nuclear:     w.Kind == WeaponNuclear,
	}

	s.Sink.Emit(Event{Kind: EventImpact, X: x, Y: y, Magnitude: float64(e.BlastRadius)})
	if e.Nuclear {
		s.Sink.Emit(Event{Kind: EventNuclearFlash, X: x, Y: y, Magnitude: float64(e.BlastRadius)})
	}

	for _, t := range s.Tanks() {
		absorbed := ApplyExplosionDamage(e, t, w, s.protectedTank)
		if absorbed <= 0 {
			continue
		}
		s.Log.Add(s.tick, t.Team.String(), "damage", "explosion",
			fmt.Sprintf("%s dmg=%d hp=%d", p.WeaponID, absorbed, t.Health), float64(absorbed))
		if p.Owner == TeamPlayer && t.Team == TeamEnemy {
			s.Run.NoteShotHit()
			s.Run.NoteDamageDealt(absorbed)
			s.Wallet.AwardHit(absorbed)
		}
		if t.Team == TeamPlayer {
			s.Run.NoteDamageTaken(absorbed)
		}
	}

	radius := float64(e.BlastRadius)
	if s.Terrain.Carve(x, y, radius) {
		s.Terrain.Settle(x, radius)
		s.Log.Add(s.tick, "--", "terrain", "crater",
			fmt.Sprintf("(%.0f,%.0f) r=%.0f", x, y, radius), radius)
	}
	for _, t := range s.Tanks() {
		t.CheckSupport(s.Terrain)
	}

	s.FX.AddExplosion(e)
	p.Deactivate()
	p.ClearTrail()
}

// protectedTank is the god-mode hook: the debug layer can null all damage
// to the player tank.
func (s *Simulation) protectedTank(t *Tank) bool {
	return t.Team == TeamPlayer && s.godMode != nil && s.godMode()
}

// updateFallingTanks drops tanks whose support was carved away and applies
// fall damage on landing.
func (s *Simulation) updateFallingTanks() {
	for _, t := range s.Tanks() {
		landed, dist := t.UpdateFalling(s.Terrain)
		if !landed {
			continue
		}
		s.Sink.Emit(Event{Kind: EventLanding, X: t.X, Y: t.Y, Magnitude: dist})
		dmg := FallDamage(dist)
		if dmg <= 0 {
			continue
		}
		if s.protectedTank(t) {
			continue
		}
		absorbed := t.TakeDamage(dmg)
		s.Log.Add(s.tick, t.Team.String(), "damage", "fall",
			fmt.Sprintf("dist=%.0f dmg=%d hp=%d", dist, absorbed, t.Health), float64(absorbed))
		if t.Team == TeamPlayer {
			s.Run.NoteDamageTaken(absorbed)
		}
	}
}

// updateTurn performs at most one turn-machine transition per frame.
func (s *Simulation) updateTurn() {
	switch s.Turn.Phase {
	case PhasePlayerAim, PhaseAIAim:
		// A tank may die from fall damage after the resolution that set up
		// this turn; route straight back into resolution.
		if s.Player.Destroyed() || s.Enemy.Destroyed() {
			s.AI.CancelTurn()
			s.Turn.EnterResolution()
		}
	case PhaseProjectileFlight:
		if len(s.Projectiles) == 0 && !s.Player.Falling && !s.Enemy.Falling {
			s.Turn.EnterResolution()
		}
	case PhaseResolution:
		outcome := s.Turn.Resolve(s.Player, s.Enemy)
		switch outcome {
		case OutcomeNone:
			// Turn handed to the other shooter.
		case OutcomeVictory:
			s.Run.NoteEnemyDestroyed()
			s.Wallet.AwardVictoryBonus()
			s.Sink.Emit(Event{Kind: EventWin})
			s.Log.Add(s.tick, "--", "round", "victory", "", float64(s.Run.Round))
			s.Run.NextRound()
			s.Wallet.StartRound(s.Run.Round)
			s.setupRound()
		case OutcomeDefeat, OutcomeDraw:
			// Permadeath: a draw ends the run as a defeat too.
			if s.Run.EndRun(true) {
				s.Sink.Emit(Event{Kind: EventLoss})
				s.Log.Add(s.tick, "--", "run", "end", outcome.String(), float64(s.Run.Round))
			}
			s.Over = true
		}
	}
}

// BuyWeapon is the shop operation surface: one purchase debits the wallet
// and grants the catalogue lot to the player tank.
func (s *Simulation) BuyWeapon(id string) bool {
	return s.Wallet.BuyWeapon(id, s.Player)
}
