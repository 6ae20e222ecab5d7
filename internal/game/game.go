package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Game is the ebiten shell around the simulation: it samples the keyboard
// into the input queue, steps the sim once per frame and draws it.
type Game struct {
	sim      *Simulation
	prevKeys map[ebiten.Key]bool
	godMode  bool
	paused   bool

	// Set once the run ends and the report has been copied, to show the
	// "copied" HUD note.
	reportCopied bool

	// Offscreen battlefield buffer; shake is applied when it is blitted.
	worldBuf *ebiten.Image
}

// New creates an interactive game at the given difficulty.
func New(d Difficulty) *Game {
	g := &Game{prevKeys: make(map[ebiten.Key]bool)}
	g.sim = NewSimulation(SimConfig{
		Difficulty: d,
		Seed:       time.Now().UnixNano(),
		GodMode:    func() bool { return g.godMode },
	})
	return g
}

// Sim exposes the underlying simulation (used by cmd wiring).
func (g *Game) Sim() *Simulation { return g.sim }

// Layout reports the fixed design-space resolution.
func (g *Game) Layout(int, int) (int, int) {
	return g.sim.Width, g.sim.Height
}

// Update samples input and advances the simulation one frame.
func (g *Game) Update() error {
	g.sampleInput()
	g.sim.Update()
	return nil
}

// keyPressed is an edge-triggered key check.
func (g *Game) keyPressed(k ebiten.Key) bool {
	down := ebiten.IsKeyPressed(k)
	was := g.prevKeys[k]
	g.prevKeys[k] = down
	return down && !was
}

// sampleInput converts the keyboard state into queued input events.
// Held aim keys enqueue rate-limited deltas every tick.
func (g *Game) sampleInput() {
	q := g.sim.Input

	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		q.PushAngleHeld(1) // angle grows toward the left half-plane
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		q.PushAngleHeld(-1)
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) {
		q.PushPowerHeld(1)
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) {
		q.PushPowerHeld(-1)
	}
	if g.keyPressed(ebiten.KeySpace) {
		q.Push(InputEvent{Kind: InputFire})
	}
	if g.keyPressed(ebiten.KeyTab) {
		q.Push(InputEvent{Kind: InputWeaponNext})
	}
	if g.keyPressed(ebiten.KeyQ) {
		q.Push(InputEvent{Kind: InputWeaponPrev})
	}
	if g.keyPressed(ebiten.KeyP) {
		if g.paused {
			q.Push(InputEvent{Kind: InputResume})
		} else {
			q.Push(InputEvent{Kind: InputPause})
		}
		g.paused = !g.paused
	}
	if g.keyPressed(ebiten.KeyEscape) {
		q.Push(InputEvent{Kind: InputEscape})
		g.paused = false
	}
	if g.keyPressed(ebiten.KeyG) {
		g.godMode = !g.godMode
	}
	if g.sim.Over {
		if g.keyPressed(ebiten.KeyC) {
			if err := g.sim.CopyRunReport(); err == nil {
				g.reportCopied = true
			}
		}
		if g.keyPressed(ebiten.KeyN) {
			d := g.sim.Difficulty
			g.sim = NewSimulation(SimConfig{
				Difficulty: d,
				Seed:       time.Now().UnixNano(),
				GodMode:    func() bool { return g.godMode },
			})
			g.reportCopied = false
		}
	}
}
