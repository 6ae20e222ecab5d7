package game

// Phase is one authoritative state of the turn machine. Menus, round
// transitions and game-over dialogs are overlay concerns outside the sim.
type Phase int

const (
	PhaseMenuReady Phase = iota
	PhasePlayerAim
	PhasePlayerFire
	PhaseProjectileFlight
	PhaseAIAim
	PhaseAIFire
	PhaseResolution
)

func (p Phase) String() string {
	switch p {
	case PhaseMenuReady:
		return "menu_ready"
	case PhasePlayerAim:
		return "player_aim"
	case PhasePlayerFire:
		return "player_fire"
	case PhaseProjectileFlight:
		return "projectile_flight"
	case PhaseAIAim:
		return "ai_aim"
	case PhaseAIFire:
		return "ai_fire"
	case PhaseResolution:
		return "resolution"
	default:
		return "unknown"
	}
}

// Outcome is the terminal result of a round resolution.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeVictory
	OutcomeDefeat
	OutcomeDraw // mutual destruction; counts as defeat for the run
)

func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	case OutcomeDraw:
		return "draw"
	case OutcomeNone:
		return "none"
	default:
		return "unknown"
	}
}

// TurnMachine schedules which agent acts. Exactly one shooter is active at
// a time; the other agent's inputs are ignored.
type TurnMachine struct {
	Phase       Phase
	LastShooter Team
	Outcome     Outcome
}

// NewTurnMachine starts in the menu-ready phase.
func NewTurnMachine() *TurnMachine {
	return &TurnMachine{Phase: PhaseMenuReady}
}

// BeginRound arms the machine for a fresh round with the given first
// shooter.
func (tm *TurnMachine) BeginRound(first Team) {
	tm.Outcome = OutcomeNone
	tm.LastShooter = otherTeam(first)
	if first == TeamPlayer {
		tm.Phase = PhasePlayerAim
	} else {
		tm.Phase = PhaseAIAim
	}
}

// PlayerInputEnabled gates aim/fire input: only during the player's aim
// phase.
func (tm *TurnMachine) PlayerInputEnabled() bool {
	return tm.Phase == PhasePlayerAim
}

// CanPlayerFire reports whether a FIRE event is honoured right now.
// Fire during any other phase is user error and silently dropped.
func (tm *TurnMachine) CanPlayerFire() bool {
	return tm.Phase == PhasePlayerAim
}

// NoteShotFired moves to projectile flight after a shot by the given team.
func (tm *TurnMachine) NoteShotFired(shooter Team) {
	tm.LastShooter = shooter
	tm.Phase = PhaseProjectileFlight
}

// EnterResolution is called when the active projectile set drains.
func (tm *TurnMachine) EnterResolution() {
	tm.Phase = PhaseResolution
}

// Resolve inspects the two tanks and either ends the round with an outcome
// or hands the turn to the other shooter. It returns the outcome decided in
// this resolution (OutcomeNone when the round continues).
func (tm *TurnMachine) Resolve(player, enemy *Tank) Outcome {
	playerDown := player.Destroyed()
	enemyDown := enemy.Destroyed()

	switch {
	case playerDown && enemyDown:
		tm.Outcome = OutcomeDraw
	case playerDown:
		tm.Outcome = OutcomeDefeat
	case enemyDown:
		tm.Outcome = OutcomeVictory
	default:
		if tm.LastShooter == TeamPlayer {
			tm.Phase = PhaseAIAim
		} else {
			tm.Phase = PhasePlayerAim
		}
		return OutcomeNone
	}
	return tm.Outcome
}

func otherTeam(t Team) Team {
	if t == TeamPlayer {
		return TeamEnemy
	}
	return TeamPlayer
}
