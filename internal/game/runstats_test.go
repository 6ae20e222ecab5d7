package game

import (
	"math"
	"testing"
)

func TestRunStats_HitRate(t *testing.T) {
	rs := NewRunStats()
	if rs.HitRate() != 0 {
		t.Fatal("hit rate with no shots should be 0")
	}
	rs.NoteShotFired("shell")
	rs.NoteShotFired("shell")
	rs.NoteShotFired("missile")
	rs.NoteShotFired("missile")
	rs.NoteShotHit()
	if got := rs.HitRate(); math.Abs(got-0.25) > 1e-9 {
		t.Fatalf("hit rate = %.3f, want 0.25", got)
	}
}

func TestRunStats_NukeCounterAndWeaponsUsed(t *testing.T) {
	rs := NewRunStats()
	rs.NoteShotFired("shell")
	rs.NoteShotFired("nuke")
	rs.NoteShotFired("nuke")
	if rs.NukesLaunched != 2 {
		t.Fatalf("nukes launched = %d, want 2", rs.NukesLaunched)
	}
	if !rs.WeaponsUsed["shell"] || !rs.WeaponsUsed["nuke"] {
		t.Fatal("weapons-used set incomplete")
	}
}

func TestRunStats_BiggestHit(t *testing.T) {
	rs := NewRunStats()
	rs.NoteDamageDealt(12)
	rs.NoteDamageDealt(38)
	rs.NoteDamageDealt(20)
	rs.NoteDamageDealt(-5)
	if rs.BiggestHit != 38 {
		t.Fatalf("biggest hit = %d, want 38", rs.BiggestHit)
	}
	if rs.DamageDealt != 70 {
		t.Fatalf("damage dealt = %d, want 70", rs.DamageDealt)
	}
}

func TestRunStats_EndRunOnce(t *testing.T) {
	rs := NewRunStats()
	if !rs.EndRun(true) {
		t.Fatal("first EndRun refused")
	}
	if rs.EndRun(false) {
		t.Fatal("second EndRun should be a no-op")
	}
	if !rs.Defeat || rs.Active || !rs.Finalized {
		t.Fatalf("finalized state wrong: %+v", rs)
	}
}

func TestRecord_DefeatDropsFatalRound(t *testing.T) {
	rs := NewRunStats()
	rs.NextRound()
	rs.NextRound() // died in round 3
	rs.EndRun(true)

	rec := rs.Record("p1", "Tester", "test")
	if rec.RoundsSurvived != 2 {
		t.Fatalf("rounds survived = %d, want 2", rec.RoundsSurvived)
	}
	if rec.Validated {
		t.Fatal("fresh records must not be pre-validated")
	}
}
