package game

import (
	"math"
	"testing"
)

func TestTank_AngleAndPowerClamped(t *testing.T) {
	terr := NewFlatTerrain(1000, 800, 200)
	tk := NewTank(TeamPlayer, 300, terr)

	tk.SetAngle(250)
	if tk.Angle != maxAngle {
		t.Fatalf("angle not clamped high: %.1f", tk.Angle)
	}
	tk.SetAngle(-40)
	if tk.Angle != minAngle {
		t.Fatalf("angle not clamped low: %.1f", tk.Angle)
	}
	tk.SetPower(500)
	if tk.Power != maxPower {
		t.Fatalf("power not clamped high: %.1f", tk.Power)
	}
	tk.AdjustPower(-1000)
	if tk.Power != minPower {
		t.Fatalf("power not clamped low: %.1f", tk.Power)
	}
}

func TestTakeDamage_ShieldFirst(t *testing.T) {
	tk := tankAt(TeamPlayer, 100, 110)
	tk.Shield = 20

	if got := tk.TakeDamage(15); got != 15 {
		t.Fatalf("absorbed = %d, want 15", got)
	}
	if tk.Shield != 5 || tk.Health != tankMaxHP {
		t.Fatalf("shield should absorb first: shield=%d health=%d", tk.Shield, tk.Health)
	}

	if got := tk.TakeDamage(15); got != 15 {
		t.Fatalf("absorbed = %d, want 15", got)
	}
	if tk.Shield != 0 || tk.Health != tankMaxHP-10 {
		t.Fatalf("overflow should hit health: shield=%d health=%d", tk.Shield, tk.Health)
	}
}

func TestTakeDamage_DeadTankIgnored(t *testing.T) {
	tk := tankAt(TeamEnemy, 100, 110)
	tk.Health = 0
	if got := tk.TakeDamage(50); got != 0 {
		t.Fatalf("dead tank absorbed %d", got)
	}
}

func TestAmmo_BasicIsUnlimited(t *testing.T) {
	tk := tankAt(TeamPlayer, 100, 110)
	if tk.Ammo(BasicWeaponID) != -1 {
		t.Fatal("basic shell should report unlimited ammo")
	}
	for i := 0; i < 10; i++ {
		if !tk.ConsumeAmmo() {
			t.Fatal("basic shell fire refused")
		}
	}
	if tk.CurrentWeapon != BasicWeaponID {
		t.Fatalf("selection drifted to %q", tk.CurrentWeapon)
	}
}

func TestSetWeapon_RefusesEmpty(t *testing.T) {
	tk := tankAt(TeamPlayer, 100, 110)
	if tk.SetWeapon("mirv") {
		t.Fatal("selected a weapon with no ammo")
	}
	if tk.SetWeapon("no-such-weapon") {
		t.Fatal("selected an unknown weapon")
	}
	tk.AddAmmo("mirv", 2)
	if !tk.SetWeapon("mirv") {
		t.Fatal("refused a stocked weapon")
	}
}

func TestConsumeAmmo_FallsBackToBasic(t *testing.T) {
	tk := tankAt(TeamPlayer, 100, 110)
	tk.AddAmmo("missile", 1)
	tk.SetWeapon("missile")

	if !tk.ConsumeAmmo() {
		t.Fatal("fire with last round refused")
	}
	if tk.Ammo("missile") != 0 {
		t.Fatalf("missile ammo = %d, want 0", tk.Ammo("missile"))
	}
	if tk.CurrentWeapon != BasicWeaponID {
		t.Fatalf("selection should fall back to shell, got %q", tk.CurrentWeapon)
	}
}

func TestConsumeAmmo_StaleSelection(t *testing.T) {
	tk := tankAt(TeamPlayer, 100, 110)
	tk.CurrentWeapon = "nuke" // never stocked
	if !tk.ConsumeAmmo() {
		t.Fatal("stale selection should fire the basic shell")
	}
	if tk.CurrentWeapon != BasicWeaponID {
		t.Fatalf("stale selection not reset: %q", tk.CurrentWeapon)
	}
}

func TestCycleWeapon_SkipsEmpty(t *testing.T) {
	tk := tankAt(TeamPlayer, 100, 110)
	tk.AddAmmo("digger", 1)

	tk.CycleWeapon(1)
	if tk.CurrentWeapon != "digger" {
		t.Fatalf("forward cycle landed on %q, want digger", tk.CurrentWeapon)
	}
	tk.CycleWeapon(1)
	if tk.CurrentWeapon != BasicWeaponID {
		t.Fatalf("cycle should wrap to shell, got %q", tk.CurrentWeapon)
	}
	tk.CycleWeapon(-1)
	if tk.CurrentWeapon != "digger" {
		t.Fatalf("backward cycle landed on %q, want digger", tk.CurrentWeapon)
	}
}

func TestTurretTip_TracksAngle(t *testing.T) {
	tk := tankAt(TeamPlayer, 100, 110)
	tk.Angle = 90
	x, y := tk.TurretTip()
	if math.Abs(x-100) > 1e-9 {
		t.Fatalf("straight-up tip x = %.3f, want 100", x)
	}
	wantY := 110 - tankBodyHeight - turretLength
	if math.Abs(y-wantY) > 1e-9 {
		t.Fatalf("straight-up tip y = %.3f, want %.3f", y, wantY)
	}

	tk.Angle = 0
	x, _ = tk.TurretTip()
	if x <= 100 {
		t.Fatalf("rightward tip should be right of the hull, got x=%.3f", x)
	}
}

func TestFalling_StartAndLand(t *testing.T) {
	terr := NewFlatTerrain(1000, 800, 200) // surface at y=600
	tk := NewTank(TeamPlayer, 300, terr)
	if tk.Y != 600 {
		t.Fatalf("tank not seated on surface: y=%.1f", tk.Y)
	}

	// Blow the ground out from under the tank.
	for x := 280; x <= 320; x++ {
		terr.LowerColumn(x, 120)
	}
	tk.CheckSupport(terr)
	if !tk.Falling {
		t.Fatal("tank should start falling over a 120px drop")
	}

	var dist float64
	for i := 0; i < 1000; i++ {
		landed, d := tk.UpdateFalling(terr)
		if landed {
			dist = d
			break
		}
	}
	if tk.Falling {
		t.Fatal("tank never landed")
	}
	if math.Abs(tk.Y-720) > 1e-9 {
		t.Fatalf("landed at y=%.2f, want 720", tk.Y)
	}
	if dist < 120 || dist > 130 {
		t.Fatalf("fall distance = %.2f, want about 120", dist)
	}
}

func TestCheckSupport_SlackTolerated(t *testing.T) {
	terr := NewFlatTerrain(1000, 800, 200)
	tk := NewTank(TeamPlayer, 300, terr)
	for x := 280; x <= 320; x++ {
		terr.LowerColumn(x, tankFallSlack-1)
	}
	tk.CheckSupport(terr)
	if tk.Falling {
		t.Fatal("small surface drop should not trigger falling")
	}
}

func TestFallDamage(t *testing.T) {
	if got := FallDamage(fallGraceDist); got != 0 {
		t.Fatalf("grace-distance fall dealt %d damage", got)
	}
	if got := FallDamage(fallGraceDist + 100); got != int(math.Round(100*fallDamagePerPx)) {
		t.Fatalf("fall damage = %d", got)
	}
	if FallDamage(fallGraceDist+200) <= FallDamage(fallGraceDist+100) {
		t.Fatal("fall damage should grow with distance")
	}
}
