package ws

import "github.com/calebwray/mudslinger/internal/game"

// InputMessage is one client input event. Kind mirrors the sim's input
// taxonomy; Amount is used by the delta kinds.
type InputMessage struct {
	Type   string  `json:"type"` // always "input"
	Kind   string  `json:"kind"`
	Amount float64 `json:"amount,omitempty"`
}

// TankState is the per-tank slice of a state frame.
type TankState struct {
	Team    string  `json:"team"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Health  int     `json:"health"`
	MaxHP   int     `json:"maxHealth"`
	Angle   float64 `json:"angle"`
	Power   float64 `json:"power"`
	Weapon  string  `json:"weapon"`
	Falling bool    `json:"falling"`
}

// ProjectileState is the per-projectile slice of a state frame.
type ProjectileState struct {
	X      float64      `json:"x"`
	Y      float64      `json:"y"`
	Weapon string       `json:"weapon"`
	Mode   string       `json:"mode"`
	Trail  [][2]float64 `json:"trail,omitempty"`
}

// StateFrame is the periodic broadcast the browser canvas renders from.
type StateFrame struct {
	Type        string            `json:"type"` // always "state"
	Tick        int               `json:"tick"`
	Phase       string            `json:"phase"`
	Round       int               `json:"round"`
	Wind        float64           `json:"wind"`
	Money       int               `json:"money"`
	Outcome     string            `json:"outcome"`
	Over        bool              `json:"over"`
	Tanks       []TankState       `json:"tanks"`
	Projectiles []ProjectileState `json:"projectiles"`
}

// TerrainFrame carries the full heightfield. Sent on connect and whenever
// the terrain changed since the last broadcast.
type TerrainFrame struct {
	Type    string `json:"type"` // always "terrain"
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Heights []int  `json:"heights"`
}

// snapshotState builds a state frame from the live sim. Must be called
// from the sim goroutine.
func snapshotState(s *game.Simulation) StateFrame {
	f := StateFrame{
		Type:    "state",
		Tick:    s.Tick(),
		Phase:   s.Turn.Phase.String(),
		Round:   s.Run.Round,
		Wind:    s.Wind.Value,
		Money:   s.Wallet.Money(),
		Outcome: s.Turn.Outcome.String(),
		Over:    s.Over,
	}
	for _, t := range s.Tanks() {
		f.Tanks = append(f.Tanks, TankState{
			Team:    t.Team.String(),
			X:       t.X,
			Y:       t.Y,
			Health:  t.Health,
			MaxHP:   t.MaxHealth,
			Angle:   t.Angle,
			Power:   t.Power,
			Weapon:  t.CurrentWeapon,
			Falling: t.Falling,
		})
	}
	for _, p := range s.Projectiles {
		f.Projectiles = append(f.Projectiles, ProjectileState{
			X:      p.X,
			Y:      p.Y,
			Weapon: p.WeaponID,
			Mode:   p.Mode.String(),
			Trail:  append([][2]float64(nil), p.Trail...),
		})
	}
	return f
}

// snapshotTerrain builds a terrain frame from the live sim. Must be called
// from the sim goroutine.
func snapshotTerrain(s *game.Simulation) TerrainFrame {
	f := TerrainFrame{
		Type:    "terrain",
		Width:   s.Width,
		Height:  s.Height,
		Heights: make([]int, s.Width),
	}
	for x := 0; x < s.Width; x++ {
		f.Heights[x] = s.Terrain.Height(x)
	}
	return f
}

// parseInput maps a client input message onto a sim input event.
// Unknown kinds are dropped, mirroring the sim's own user-error policy.
func parseInput(m InputMessage) (game.InputEvent, bool) {
	switch m.Kind {
	case "angle_delta":
		return game.InputEvent{Kind: game.InputAngleDelta, Amount: m.Amount}, true
	case "power_delta":
		return game.InputEvent{Kind: game.InputPowerDelta, Amount: m.Amount}, true
	case "fire":
		return game.InputEvent{Kind: game.InputFire}, true
	case "weapon_next":
		return game.InputEvent{Kind: game.InputWeaponNext}, true
	case "weapon_prev":
		return game.InputEvent{Kind: game.InputWeaponPrev}, true
	case "pause":
		return game.InputEvent{Kind: game.InputPause}, true
	case "resume":
		return game.InputEvent{Kind: game.InputResume}, true
	case "escape":
		return game.InputEvent{Kind: game.InputEscape}, true
	}
	return game.InputEvent{}, false
}
