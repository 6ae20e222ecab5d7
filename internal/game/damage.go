package game

import "math"

// Explosion parameterises one detonation: damage, crater carving, shake and
// particles all read from it.
type Explosion struct {
	X, Y        float64
	BlastRadius int  // 0 = use the weapon's, then the catalogue default
	Nuclear     bool // presentation hint for the render layer
}

// CalculateDamage maps an explosion and a tank to integer damage.
// Damage falls off linearly from the blast centre to the blast radius,
// measured to the nearest point of the tank's hit box, with a bonus
// multiplier for near-contact detonations.
func CalculateDamage(e Explosion, t *Tank, w *Weapon) int {
	d := t.Bounds().distanceTo(e.X, e.Y)

	radius := float64(e.BlastRadius)
	if radius <= 0 {
		radius = float64(w.blastRadiusOrDefault())
	}
	maxDamage := float64(w.damageOrDefault())

	if d >= radius {
		return 0
	}
	falloff := 1.0 - d/radius
	damage := maxDamage * falloff
	if d < directHitDist {
		damage *= w.directHitMul()
	}
	return int(math.Round(damage))
}

// ApplyExplosionDamage deals explosion damage to a tank and returns the
// amount actually absorbed. The protect hook nulls damage to the player
// tank when the debug layer has god mode on.
func ApplyExplosionDamage(e Explosion, t *Tank, w *Weapon, protected func(*Tank) bool) int {
	dmg := CalculateDamage(e, t, w)
	if dmg == 0 {
		return 0
	}
	if protected != nil && protected(t) {
		return 0
	}
	return t.TakeDamage(dmg)
}
