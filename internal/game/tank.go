package game

import "math"

// Team distinguishes the player's tank from the AI tank.
type Team int

const (
	TeamPlayer Team = iota
	TeamEnemy
)

func (tm Team) String() string {
	switch tm {
	case TeamPlayer:
		return "player"
	case TeamEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// rect is an axis-aligned box in screen coordinates.
type rect struct {
	x, y float64 // top-left corner
	w, h float64
}

// distanceTo returns the shortest distance from (px, py) to the rect,
// 0 when the point lies inside it.
func (r rect) distanceTo(px, py float64) float64 {
	dx := math.Max(math.Max(r.x-px, 0), px-(r.x+r.w))
	dy := math.Max(math.Max(r.y-py, 0), py-(r.y+r.h))
	return math.Hypot(dx, dy)
}

// Tank is one artillery piece sitting on the terrain.
type Tank struct {
	X, Y float64 // Y is the ground contact point under the hull centre
	Team Team

	Health    int
	MaxHealth int
	Shield    int // absorbed before health

	Angle float64 // degrees, clamped to [minAngle, maxAngle]
	Power float64 // clamped to [minPower, maxPower]

	// Inventory maps weapon id to remaining rounds. The basic shell is not
	// tracked here; it never runs out.
	Inventory     map[string]int
	CurrentWeapon string

	// Turret anchor, offset from the hull reference point. Per-skin data;
	// the sim only uses it to place the barrel tip.
	AnchorX float64
	AnchorY float64

	Falling    bool
	fallStartY float64
	fallVY     float64
}

// NewTank places a tank of the given team on the terrain at column x.
func NewTank(team Team, x float64, terrain *Terrain) *Tank {
	t := &Tank{
		X:             x,
		Team:          team,
		Health:        tankMaxHP,
		MaxHealth:     tankMaxHP,
		Angle:         60,
		Power:         70,
		Inventory:     map[string]int{},
		CurrentWeapon: BasicWeaponID,
		AnchorY:       -tankBodyHeight,
	}
	if team == TeamEnemy {
		t.Angle = 120 // face the player
	}
	t.Y = terrain.SurfaceY(int(x))
	return t
}

// SetAngle writes the aim angle, clamped to the legal range.
func (t *Tank) SetAngle(deg float64) { t.Angle = clampF(deg, minAngle, maxAngle) }

// SetPower writes the launch power, clamped to the legal range.
func (t *Tank) SetPower(p float64) { t.Power = clampF(p, minPower, maxPower) }

// AdjustAngle applies a delta to the aim angle with clamping.
func (t *Tank) AdjustAngle(d float64) { t.SetAngle(t.Angle + d) }

// AdjustPower applies a delta to the launch power with clamping.
func (t *Tank) AdjustPower(d float64) { t.SetPower(t.Power + d) }

// TakeDamage subtracts n from the shield first, then from health.
// Returns the damage actually absorbed, which feeds the run stats.
func (t *Tank) TakeDamage(n int) int {
	if n <= 0 || t.Health <= 0 {
		return 0
	}
	absorbed := 0
	if t.Shield > 0 {
		s := min(t.Shield, n)
		t.Shield -= s
		n -= s
		absorbed += s
	}
	h := min(t.Health, n)
	t.Health -= h
	absorbed += h
	return absorbed
}

// Destroyed reports whether the tank has been knocked out.
func (t *Tank) Destroyed() bool { return t.Health <= 0 }

// Bounds returns the hit box used by the damage model and tank collision.
func (t *Tank) Bounds() rect {
	return rect{
		x: t.X - tankWidth/2,
		y: t.Y - tankHeight,
		w: tankWidth,
		h: tankHeight,
	}
}

// Center returns the aim point used by the AI solver.
func (t *Tank) Center() (float64, float64) {
	return t.X, t.Y - tankHeight/2
}

// TurretTip returns the barrel muzzle position for the current aim angle.
// Projectiles spawn here.
func (t *Tank) TurretTip() (float64, float64) {
	rad := t.Angle * math.Pi / 180
	bx := t.X + t.AnchorX
	by := t.Y + t.AnchorY
	return bx + math.Cos(rad)*turretLength, by - math.Sin(rad)*turretLength
}

// Ammo returns the rounds remaining for the given weapon id.
// The basic shell reports -1, meaning unlimited.
func (t *Tank) Ammo(id string) int {
	if id == BasicWeaponID {
		return -1
	}
	return t.Inventory[id]
}

// AddAmmo grants rounds for a weapon. Unknown ids are ignored.
func (t *Tank) AddAmmo(id string, n int) {
	if WeaponByID(id) == nil || id == BasicWeaponID || n <= 0 {
		return
	}
	t.Inventory[id] += n
}

// SetWeapon selects a weapon; it refuses ids with no remaining ammo.
func (t *Tank) SetWeapon(id string) bool {
	if WeaponByID(id) == nil {
		return false
	}
	if id != BasicWeaponID && t.Inventory[id] <= 0 {
		return false
	}
	t.CurrentWeapon = id
	return true
}

// CycleWeapon moves the selection forward or backward through the catalogue
// order, skipping weapons with no ammo.
func (t *Tank) CycleWeapon(dir int) {
	cur := 0
	for i, id := range weaponOrder {
		if id == t.CurrentWeapon {
			cur = i
			break
		}
	}
	n := len(weaponOrder)
	for step := 1; step <= n; step++ {
		i := ((cur+dir*step)%n + n) % n
		id := weaponOrder[i]
		if id == BasicWeaponID || t.Inventory[id] > 0 {
			t.CurrentWeapon = id
			return
		}
	}
}

// ConsumeAmmo spends one round of the current weapon. When the last round
// of a limited weapon is spent the selection falls back to the basic shell.
// The fired shot is still valid, so the call reports true.
func (t *Tank) ConsumeAmmo() bool {
	if t.CurrentWeapon == BasicWeaponID {
		return true
	}
	if t.Inventory[t.CurrentWeapon] <= 0 {
		// Stale selection; fire the basic shell instead.
		t.CurrentWeapon = BasicWeaponID
		return true
	}
	t.Inventory[t.CurrentWeapon]--
	if t.Inventory[t.CurrentWeapon] <= 0 {
		t.CurrentWeapon = BasicWeaponID
	}
	return true
}

// CheckSupport starts the falling state when the ground under the tank has
// dropped more than the slack distance below its resting point.
func (t *Tank) CheckSupport(terrain *Terrain) {
	if t.Falling || t.Destroyed() {
		return
	}
	surf := terrain.SurfaceY(int(t.X))
	if surf > t.Y+tankFallSlack {
		t.Falling = true
		t.fallStartY = t.Y
		t.fallVY = 0
	}
}

// UpdateFalling advances one step of gravity fall. When the tank reaches the
// terrain it lands and the total fall distance is reported.
func (t *Tank) UpdateFalling(terrain *Terrain) (landed bool, fallDist float64) {
	if !t.Falling {
		return false, 0
	}
	t.fallVY += gravity
	t.Y += t.fallVY
	surf := terrain.SurfaceY(int(t.X))
	if t.Y >= surf {
		t.Y = surf
		t.Falling = false
		dist := t.Y - t.fallStartY
		t.fallVY = 0
		return true, dist
	}
	return false, 0
}

// FallDamage converts a landing fall distance into hit points. Short hops
// within the grace distance are free.
func FallDamage(fallDist float64) int {
	if fallDist <= fallGraceDist {
		return 0
	}
	return int(math.Round((fallDist - fallGraceDist) * fallDamagePerPx))
}
