package game

import "image/color"

// WeaponKind selects the projectile behaviour variant for a weapon.
type WeaponKind int

const (
	WeaponStandard WeaponKind = iota // plain ballistic shell
	WeaponMissile                    // faster shell, slightly bigger blast
	WeaponBig                        // heavy shell, large blast
	WeaponMIRV                       // splits into children at apex
	WeaponNuclear                    // huge blast, flash + mushroom cloud
	WeaponRoller                     // rolls along the surface on contact
	WeaponDigger                     // tunnels through terrain on contact
)

func (k WeaponKind) String() string {
	switch k {
	case WeaponStandard:
		return "standard"
	case WeaponMissile:
		return "missile"
	case WeaponBig:
		return "big"
	case WeaponMIRV:
		return "mirv"
	case WeaponNuclear:
		return "nuclear"
	case WeaponRoller:
		return "roller"
	case WeaponDigger:
		return "digger"
	default:
		return "unknown"
	}
}

// Weapon is one catalogue entry. Kind-specific fields are zero for kinds
// that do not use them.
type Weapon struct {
	ID             string
	Name           string
	Cost           int // shop price
	AmmoOnPurchase int
	Damage         int // max damage at distance 0
	BlastRadius    int
	Kind           WeaponKind
	DirectHitMul   float64 // 0 = use the global default

	// MIRV
	SplitCount     int
	SplitSpreadDeg float64

	// Roller
	RollFriction float64 // velocity retained per rolling step
	RollBudgetPx float64

	// Digger
	DigBudgetPx float64
	DigRadiusPx float64

	// Nuclear presentation hints, read by the render layer only.
	MushroomCloud bool
	ScreenFlash   bool

	TrailColor      color.RGBA
	ProjectileColor color.RGBA
}

// BasicWeaponID is the fallback weapon with infinite ammo.
const BasicWeaponID = "shell"

// weaponTable is the closed weapon catalogue, keyed by id.
var weaponTable = map[string]*Weapon{
	"shell": {
		ID: "shell", Name: "Shell", Cost: 0, AmmoOnPurchase: 0,
		Damage: 25, BlastRadius: 40, Kind: WeaponStandard,
		TrailColor:      color.RGBA{R: 255, G: 240, B: 200, A: 200},
		ProjectileColor: color.RGBA{R: 255, G: 255, B: 255, A: 255},
	},
	"missile": {
		ID: "missile", Name: "Missile", Cost: 120, AmmoOnPurchase: 5,
		Damage: 32, BlastRadius: 45, Kind: WeaponMissile,
		TrailColor:      color.RGBA{R: 255, G: 170, B: 80, A: 220},
		ProjectileColor: color.RGBA{R: 255, G: 200, B: 120, A: 255},
	},
	"heavy": {
		ID: "heavy", Name: "Heavy Shell", Cost: 200, AmmoOnPurchase: 3,
		Damage: 45, BlastRadius: 60, Kind: WeaponBig,
		TrailColor:      color.RGBA{R: 200, G: 200, B: 220, A: 220},
		ProjectileColor: color.RGBA{R: 170, G: 170, B: 190, A: 255},
	},
	"mirv": {
		ID: "mirv", Name: "MIRV", Cost: 350, AmmoOnPurchase: 2,
		Damage: 18, BlastRadius: 32, Kind: WeaponMIRV,
		SplitCount: 5, SplitSpreadDeg: 40,
		TrailColor:      color.RGBA{R: 120, G: 220, B: 255, A: 220},
		ProjectileColor: color.RGBA{R: 160, G: 230, B: 255, A: 255},
	},
	"roller": {
		ID: "roller", Name: "Roller", Cost: 250, AmmoOnPurchase: 3,
		Damage: 35, BlastRadius: 48, Kind: WeaponRoller,
		RollFriction: 0.985, RollBudgetPx: 450,
		TrailColor:      color.RGBA{R: 170, G: 255, B: 140, A: 220},
		ProjectileColor: color.RGBA{R: 140, G: 235, B: 110, A: 255},
	},
	"digger": {
		ID: "digger", Name: "Digger", Cost: 300, AmmoOnPurchase: 3,
		Damage: 40, BlastRadius: 44, Kind: WeaponDigger,
		DigBudgetPx: 220, DigRadiusPx: 6,
		TrailColor:      color.RGBA{R: 220, G: 180, B: 120, A: 220},
		ProjectileColor: color.RGBA{R: 200, G: 150, B: 90, A: 255},
	},
	"nuke": {
		ID: "nuke", Name: "Tactical Nuke", Cost: 900, AmmoOnPurchase: 1,
		Damage: 90, BlastRadius: 130, Kind: WeaponNuclear,
		MushroomCloud: true, ScreenFlash: true,
		TrailColor:      color.RGBA{R: 255, G: 255, B: 140, A: 240},
		ProjectileColor: color.RGBA{R: 255, G: 255, B: 180, A: 255},
	},
}

// weaponOrder is the display/cycle order for inventory selection.
var weaponOrder = []string{"shell", "missile", "heavy", "roller", "digger", "mirv", "nuke"}

// WeaponByID resolves a catalogue id. Returns nil for unknown ids;
// callers fall back to the basic weapon rather than failing.
func WeaponByID(id string) *Weapon {
	return weaponTable[id]
}

// weaponOrDefault resolves id, substituting the basic shell for unknown ids.
func weaponOrDefault(id string) *Weapon {
	if w := weaponTable[id]; w != nil {
		return w
	}
	return weaponTable[BasicWeaponID]
}

// directHitMul returns the weapon's direct-hit multiplier, or the global
// default when the weapon leaves it unset.
func (w *Weapon) directHitMul() float64 {
	if w != nil && w.DirectHitMul > 0 {
		return w.DirectHitMul
	}
	return directHitMul
}

// blastRadiusOrDefault returns the weapon blast radius with the catalogue
// default applied.
func (w *Weapon) blastRadiusOrDefault() int {
	if w != nil && w.BlastRadius > 0 {
		return w.BlastRadius
	}
	return defaultBlastRadius
}

// damageOrDefault returns the weapon max damage with the catalogue default
// applied.
func (w *Weapon) damageOrDefault() int {
	if w != nil && w.Damage > 0 {
		return w.Damage
	}
	return defaultMaxDamage
}

// IsNuclear reports whether the weapon id belongs to a nuclear weapon.
func IsNuclear(id string) bool {
	w := weaponTable[id]
	return w != nil && w.Kind == WeaponNuclear
}
