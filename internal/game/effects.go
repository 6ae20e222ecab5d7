package game

import (
	"image/color"
	"math"
	"math/rand"
)

// particle is one debris/spark mote spawned by an explosion. Cosmetic only;
// the render layer draws them, the headless harness never looks.
type particle struct {
	x, y   float64
	vx, vy float64
	life   int
	col    color.RGBA
}

// Effects is the render-queryable transient state: screen shake, explosion
// flashes, debris particles and the nuclear flash timer. It has no effect
// on the simulation outcome.
type Effects struct {
	shakeMag   float64
	flashTicks int // white-out frames remaining (nuclear)
	mushrooms  []mushroom
	particles  []particle
	rng        *rand.Rand
}

// mushroom is the rising nuclear cloud animation state.
type mushroom struct {
	x, y  float64
	ticks int
}

// NewEffects builds the effect state with its own cosmetic RNG.
func NewEffects(seed int64) *Effects {
	return &Effects{
		rng: rand.New(rand.NewSource(seed)), // #nosec G404 -- cosmetic only
	}
}

// AddExplosion shakes the screen and spawns debris scaled to the blast.
func (fx *Effects) AddExplosion(e Explosion) {
	fx.shakeMag = math.Max(fx.shakeMag, float64(e.BlastRadius)*0.12)
	n := e.BlastRadius / 2
	for i := 0; i < n; i++ {
		a := fx.rng.Float64() * 2 * math.Pi
		sp := 1 + fx.rng.Float64()*3
		fx.particles = append(fx.particles, particle{
			x: e.X, y: e.Y,
			vx:   math.Cos(a) * sp,
			vy:   math.Sin(a)*sp - 2,
			life: 20 + fx.rng.Intn(25),
			col:  color.RGBA{R: 255, G: uint8(120 + fx.rng.Intn(100)), B: 40, A: 255},
		})
	}
	if e.Nuclear {
		fx.flashTicks = 12
		fx.mushrooms = append(fx.mushrooms, mushroom{x: e.X, y: e.Y, ticks: 120})
	}
}

// Update advances shake decay and particle motion one tick.
func (fx *Effects) Update() {
	fx.shakeMag *= 0.88
	if fx.shakeMag < 0.1 {
		fx.shakeMag = 0
	}
	if fx.flashTicks > 0 {
		fx.flashTicks--
	}
	kept := fx.particles[:0]
	for _, p := range fx.particles {
		p.vy += gravity
		p.x += p.vx
		p.y += p.vy
		p.life--
		if p.life > 0 {
			kept = append(kept, p)
		}
	}
	fx.particles = kept

	keptM := fx.mushrooms[:0]
	for _, m := range fx.mushrooms {
		m.ticks--
		if m.ticks > 0 {
			keptM = append(keptM, m)
		}
	}
	fx.mushrooms = keptM
}

// ShakeOffset returns the current camera jitter.
func (fx *Effects) ShakeOffset() (float64, float64) {
	if fx.shakeMag == 0 {
		return 0, 0
	}
	return (fx.rng.Float64()*2 - 1) * fx.shakeMag, (fx.rng.Float64()*2 - 1) * fx.shakeMag
}

// FlashAlpha returns the white-out strength in [0,1].
func (fx *Effects) FlashAlpha() float64 {
	return float64(fx.flashTicks) / 12
}
