package game

import "math"

// ProjMode is the behaviour state of a projectile. A projectile is in
// exactly one mode at a time.
type ProjMode int

const (
	ModeFlight  ProjMode = iota // ballistic flight
	ModeRolling                 // sliding along the terrain surface
	ModeDigging                 // tunnelling below the surface
	ModeDead                    // spent, awaiting removal
)

func (m ProjMode) String() string {
	switch m {
	case ModeFlight:
		return "flight"
	case ModeRolling:
		return "rolling"
	case ModeDigging:
		return "digging"
	case ModeDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Projectile is one shell in the air (or on, or under, the ground).
type Projectile struct {
	X, Y     float64
	VX, VY   float64
	Owner    Team
	WeaponID string
	Mode     ProjMode

	Trail [][2]float64

	// Spawn point, for owner-clear suppression.
	startX, startY float64
	steps          int

	// MIRV lineage: children carry generation >= 1 and never split again.
	Generation int
	didSplit   bool

	// Rolling state.
	rollDist float64
	RollRot  float64 // cosmetic spin, read by the render layer

	// Digging state.
	digDist        float64
	digDirX        float64
	digDirY        float64
	digSpeed       float64
	surfacedEscape bool // re-emerged above the surface
}

// NewProjectileFromTank spawns a projectile at the tank's barrel tip with
// speed proportional to the tank's power setting.
func NewProjectileFromTank(t *Tank) *Projectile {
	x, y := t.TurretTip()
	rad := t.Angle * math.Pi / 180
	speed := t.Power / maxPower * maxVelocity
	return &Projectile{
		X: x, Y: y,
		VX:       math.Cos(rad) * speed,
		VY:       -math.Sin(rad) * speed,
		Owner:    t.Team,
		WeaponID: t.CurrentWeapon,
		Mode:     ModeFlight,
		startX:   x,
		startY:   y,
	}
}

// Weapon resolves the projectile's catalogue entry.
func (p *Projectile) Weapon() *Weapon { return weaponOrDefault(p.WeaponID) }

// Deactivate retires the projectile without an explosion.
func (p *Projectile) Deactivate() {
	p.Mode = ModeDead
}

// ClearTrail drops the recorded trail, used together with Deactivate when a
// projectile is removed mid-frame.
func (p *Projectile) ClearTrail() {
	p.Trail = p.Trail[:0]
}

// Update integrates one flight step under gravity and wind. It reports
// false once the projectile has left the playfield or exceeded its step
// budget, in which case it is deactivated without exploding.
func (p *Projectile) Update(windForce float64, width, height int) bool {
	if p.Mode != ModeFlight {
		return p.Mode != ModeDead
	}
	p.VY += gravity
	p.VX += windForce
	p.capVelocity()
	p.X += p.VX
	p.Y += p.VY
	p.steps++
	p.pushTrail()

	if p.X < -tankWidth || p.X > float64(width)+tankWidth || p.Y > float64(height) {
		p.Deactivate()
		return false
	}
	if p.steps > projStepLimit {
		p.Deactivate()
		return false
	}
	return true
}

// capVelocity scales the velocity down uniformly when it exceeds the cap.
func (p *Projectile) capVelocity() {
	v := math.Hypot(p.VX, p.VY)
	if v > maxVelocity {
		s := maxVelocity / v
		p.VX *= s
		p.VY *= s
	}
}

func (p *Projectile) pushTrail() {
	p.Trail = append(p.Trail, [2]float64{p.X, p.Y})
	if len(p.Trail) > trailMaxLen {
		p.Trail = p.Trail[1:]
	}
}

// distanceFromStart is how far the projectile has travelled from its spawn
// point, used for owner-clear suppression.
func (p *Projectile) distanceFromStart() float64 {
	return math.Hypot(p.X-p.startX, p.Y-p.startY)
}

// CanHitOwner reports whether the projectile has cleared its own tank.
func (p *Projectile) CanHitOwner() bool {
	return p.distanceFromStart() >= ownerClearDist
}

// --- MIRV ---

// ShouldSplit reports whether a MIRV parent has passed apex and is due to
// fan out. Children (generation >= 1) never split.
func (p *Projectile) ShouldSplit() bool {
	return p.Weapon().Kind == WeaponMIRV &&
		p.Mode == ModeFlight &&
		p.Generation == 0 &&
		!p.didSplit &&
		p.VY >= 0
}

// CreateSplitProjectiles fans a MIRV parent into its children. The children
// share the parent's position and speed; their headings fan out at equal
// offsets symmetric about the parent's heading, so the lateral spread of
// the fan cancels in pairs. The parent is marked split and dead.
func CreateSplitProjectiles(parent *Projectile) []*Projectile {
	w := parent.Weapon()
	n := w.SplitCount
	if n <= 1 {
		n = 2
	}
	parent.didSplit = true

	speed := math.Hypot(parent.VX, parent.VY)
	base := math.Atan2(parent.VY, parent.VX)
	spread := w.SplitSpreadDeg * math.Pi / 180

	children := make([]*Projectile, 0, n)
	for i := 0; i < n; i++ {
		// Fan angles are symmetric about the parent heading.
		frac := 0.0
		if n > 1 {
			frac = float64(i)/float64(n-1) - 0.5
		}
		a := base + frac*spread
		c := &Projectile{
			X: parent.X, Y: parent.Y,
			VX:         math.Cos(a) * speed,
			VY:         math.Sin(a) * speed,
			Owner:      parent.Owner,
			WeaponID:   parent.WeaponID,
			Mode:       ModeFlight,
			startX:     parent.startX,
			startY:     parent.startY,
			steps:      parent.steps,
			Generation: parent.Generation + 1,
		}
		children = append(children, c)
	}
	parent.Deactivate()
	return children
}

// --- Roller ---

// ShouldRoll reports whether this projectile converts to rolling on terrain
// contact.
func (p *Projectile) ShouldRoll() bool {
	return p.Weapon().Kind == WeaponRoller && p.Mode == ModeFlight
}

// StartRolling snaps the projectile onto the surface and switches mode.
// Vertical velocity is discarded; the shell keeps its horizontal momentum.
func (p *Projectile) StartRolling(surfaceY float64) {
	p.Mode = ModeRolling
	p.Y = surfaceY
	p.VY = 0
	if p.VX == 0 {
		p.VX = 0.5 // a dead-vertical drop still rolls off somewhere
	}
}

// UpdateRolling slides the shell along the local surface tangent with
// friction. It reports explode=true when momentum runs out, the roll budget
// is spent, or the shell leaves the playfield.
func (p *Projectile) UpdateRolling(terrain *Terrain) (explode bool, reason string) {
	if p.Mode != ModeRolling {
		return false, ""
	}
	w := p.Weapon()

	// Local slope: surface height one column ahead vs behind.
	hBehind := terrain.SurfaceY(int(p.X) - 1)
	hAhead := terrain.SurfaceY(int(p.X) + 1)
	slope := (hAhead - hBehind) / 2

	// Downhill pull along the tangent plus rolling friction. Surface y
	// grows downward, so a positive slope pushes the shell to the right.
	p.VX += slope * 0.08
	p.VX *= w.RollFriction

	step := p.VX
	p.X += step
	p.Y = terrain.SurfaceY(int(p.X))
	p.rollDist += math.Abs(step)
	p.RollRot += step * 0.4
	p.pushTrail()

	if p.X < 0 || p.X > float64(terrain.Width()-1) {
		return true, "edge"
	}
	if math.Abs(p.VX) < 0.15 {
		return true, "stalled"
	}
	if p.rollDist >= w.RollBudgetPx {
		return true, "budget"
	}
	return false, ""
}

// --- Digger ---

// ShouldDig reports whether this projectile converts to tunnelling on
// terrain contact.
func (p *Projectile) ShouldDig() bool {
	return p.Weapon().Kind == WeaponDigger && p.Mode == ModeFlight
}

// StartDigging records the entry point and locks the dig direction to the
// incoming velocity.
func (p *Projectile) StartDigging(x, y float64) {
	p.Mode = ModeDigging
	p.X = x
	p.Y = y
	v := math.Hypot(p.VX, p.VY)
	if v == 0 {
		p.digDirX, p.digDirY = 0, 1
		v = 1
	} else {
		p.digDirX = p.VX / v
		p.digDirY = p.VY / v
	}
	p.digSpeed = clampF(v*0.45, 1.2, 3.5) // ground resistance
}

// UpdateDigging advances the bore tip, carves a corridor, and spends the
// dig budget. It reports explode=true when a tank is struck, the budget is
// exhausted, or the bore re-emerges above the surface.
func (p *Projectile) UpdateDigging(terrain *Terrain, tanks []*Tank) (explode bool, reason string, hit *Tank) {
	if p.Mode != ModeDigging {
		return false, "", nil
	}
	w := p.Weapon()

	p.X += p.digDirX * p.digSpeed
	p.Y += p.digDirY * p.digSpeed
	p.digDist += p.digSpeed
	terrain.CarveCorridor(p.X, p.Y, w.DigRadiusPx)
	p.pushTrail()

	if t := CheckTankCollision(p.X, p.Y, tanks, p.Owner, p.CanHitOwner()); t != nil {
		return true, "tank", t
	}
	if p.digDist >= w.DigBudgetPx {
		return true, "budget", nil
	}
	// The carve above drags the local surface down to the bore, so the bore
	// only counts as surfaced once the air gap above it exceeds its own
	// radius, as when it exits the far side of a hill.
	if p.Y < terrain.SurfaceY(int(p.X))-w.DigRadiusPx-1 {
		p.surfacedEscape = true
		return true, "surfaced", nil
	}
	if p.X < 0 || p.X > float64(terrain.Width()-1) || p.Y > float64(terrain.ScreenHeight()) {
		return true, "edge", nil
	}
	return false, "", nil
}

// --- Collision ---

// CheckTankCollision returns the first live tank whose hit box contains
// (x, y). The owner's tank is skipped until the projectile has cleared it.
func CheckTankCollision(x, y float64, tanks []*Tank, owner Team, canHitOwner bool) *Tank {
	for _, t := range tanks {
		if t == nil || t.Destroyed() {
			continue
		}
		if t.Team == owner && !canHitOwner {
			continue
		}
		b := t.Bounds()
		if x >= b.x && x <= b.x+b.w && y >= b.y && y <= b.y+b.h {
			return t
		}
	}
	return nil
}
