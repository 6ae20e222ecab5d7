package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	skyColor    = color.RGBA{R: 18, G: 24, B: 46, A: 255}
	dirtColor   = color.RGBA{R: 96, G: 72, B: 48, A: 255}
	grassColor  = color.RGBA{R: 70, G: 120, B: 60, A: 255}
	playerColor = color.RGBA{R: 80, G: 170, B: 90, A: 255}
	enemyColor  = color.RGBA{R: 190, G: 80, B: 70, A: 255}
	barrelColor = color.RGBA{R: 220, G: 220, B: 220, A: 255}
	hudColor    = color.RGBA{R: 235, G: 235, B: 225, A: 255}
)

// Draw renders the whole frame. The battlefield is drawn into an offscreen
// buffer so screen shake is applied on the final blit and HUD text stays
// still.
func (g *Game) Draw(screen *ebiten.Image) {
	s := g.sim
	if g.worldBuf == nil || g.worldBuf.Bounds().Dx() != s.Width || g.worldBuf.Bounds().Dy() != s.Height {
		g.worldBuf = ebiten.NewImage(s.Width, s.Height)
	}
	g.worldBuf.Fill(skyColor)

	g.drawTerrain(g.worldBuf)
	g.drawTank(g.worldBuf, s.Player, playerColor)
	g.drawTank(g.worldBuf, s.Enemy, enemyColor)
	g.drawProjectiles(g.worldBuf)
	g.drawEffects(g.worldBuf)

	op := &ebiten.DrawImageOptions{}
	sx, sy := s.FX.ShakeOffset()
	op.GeoM.Translate(sx, sy)
	screen.DrawImage(g.worldBuf, op)

	if a := s.FX.FlashAlpha(); a > 0 {
		vector.DrawFilledRect(screen, 0, 0, float32(s.Width), float32(s.Height),
			color.RGBA{R: 255, G: 255, B: 255, A: uint8(a * 230)}, false)
	}

	g.drawHUD(screen)
}

func (g *Game) drawTerrain(dst *ebiten.Image) {
	s := g.sim
	h := float32(s.Height)
	for x := 0; x < s.Width; x++ {
		top := float32(s.Terrain.SurfaceY(x))
		if top >= h {
			continue
		}
		vector.DrawFilledRect(dst, float32(x), top, 1, h-top, dirtColor, false)
		vector.DrawFilledRect(dst, float32(x), top, 1, 3, grassColor, false)
	}
}

func (g *Game) drawTank(dst *ebiten.Image, t *Tank, col color.RGBA) {
	if t.Destroyed() {
		return
	}
	b := t.Bounds()
	// Hull.
	vector.DrawFilledRect(dst, float32(b.x), float32(t.Y-tankBodyHeight),
		float32(b.w), float32(tankBodyHeight), col, false)
	// Dome.
	vector.DrawFilledCircle(dst, float32(t.X), float32(t.Y-tankBodyHeight),
		float32(tankWidth/4), col, false)
	// Barrel.
	tx, ty := t.TurretTip()
	vector.StrokeLine(dst, float32(t.X+t.AnchorX), float32(t.Y+t.AnchorY),
		float32(tx), float32(ty), float32(turretWidth), barrelColor, false)
	// Health bar.
	frac := float32(t.Health) / float32(t.MaxHealth)
	vector.DrawFilledRect(dst, float32(b.x), float32(b.y-8), float32(b.w), 4,
		color.RGBA{R: 40, G: 40, B: 40, A: 200}, false)
	vector.DrawFilledRect(dst, float32(b.x), float32(b.y-8), float32(b.w)*frac, 4,
		color.RGBA{R: uint8(220 * (1 - frac)), G: uint8(200 * frac), B: 40, A: 255}, false)
}

func (g *Game) drawProjectiles(dst *ebiten.Image) {
	for _, p := range g.sim.Projectiles {
		w := p.Weapon()
		for i := 1; i < len(p.Trail); i++ {
			a := p.Trail[i-1]
			b := p.Trail[i]
			vector.StrokeLine(dst, float32(a[0]), float32(a[1]),
				float32(b[0]), float32(b[1]), 1, w.TrailColor, false)
		}
		vector.DrawFilledCircle(dst, float32(p.X), float32(p.Y), 3, w.ProjectileColor, false)
	}
}

func (g *Game) drawEffects(dst *ebiten.Image) {
	fx := g.sim.FX
	for _, p := range fx.particles {
		vector.DrawFilledRect(dst, float32(p.x), float32(p.y), 2, 2, p.col, false)
	}
	for _, m := range fx.mushrooms {
		// Rising cap and stem, fading with the timer.
		rise := float32(120-m.ticks) * 0.8
		alpha := uint8(120 * m.ticks / 120)
		smoke := color.RGBA{R: 120, G: 110, B: 105, A: alpha}
		vector.DrawFilledRect(dst, float32(m.x)-6, float32(m.y)-rise, 12, rise, smoke, false)
		vector.DrawFilledCircle(dst, float32(m.x), float32(m.y)-rise, 26, smoke, false)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	s := g.sim
	face := basicfont.Face7x13

	p := s.Player
	ammo := "inf"
	if n := p.Ammo(p.CurrentWeapon); n >= 0 {
		ammo = fmt.Sprintf("%d", n)
	}
	line1 := fmt.Sprintf("round %d  $%d  hp %d/%d", s.Run.Round, s.Wallet.Money(), p.Health, p.MaxHealth)
	line2 := fmt.Sprintf("angle %5.1f  power %5.1f  %s x%s", p.Angle, p.Power,
		weaponOrDefault(p.CurrentWeapon).Name, ammo)
	line3 := fmt.Sprintf("wind %+.1f  phase %s", s.Wind.Value, s.Turn.Phase)

	text.Draw(screen, line1, face, 12, 20, hudColor)
	text.Draw(screen, line2, face, 12, 36, hudColor)
	text.Draw(screen, line3, face, 12, 52, hudColor)

	if g.godMode {
		text.Draw(screen, "GOD", face, s.Width-50, 20, color.RGBA{R: 255, G: 210, B: 60, A: 255})
	}
	if g.paused {
		text.Draw(screen, "PAUSED", face, s.Width/2-24, s.Height/2, hudColor)
	}
	if s.Over {
		msg := fmt.Sprintf("run over: %s  (N new run, C copy report)", s.Turn.Outcome)
		if g.reportCopied {
			msg += "  [copied]"
		}
		text.Draw(screen, msg, face, s.Width/2-170, s.Height/2-20, hudColor)
	}
}
