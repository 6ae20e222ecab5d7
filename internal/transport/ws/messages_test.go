package ws

import (
	"testing"

	"github.com/calebwray/mudslinger/internal/game"
)

func TestParseInput_KnownKinds(t *testing.T) {
	cases := []struct {
		kind string
		want game.InputKind
	}{
		{"angle_delta", game.InputAngleDelta},
		{"power_delta", game.InputPowerDelta},
		{"fire", game.InputFire},
		{"weapon_next", game.InputWeaponNext},
		{"weapon_prev", game.InputWeaponPrev},
		{"pause", game.InputPause},
		{"resume", game.InputResume},
		{"escape", game.InputEscape},
	}
	for _, tc := range cases {
		ev, ok := parseInput(InputMessage{Type: "input", Kind: tc.kind, Amount: 1.5})
		if !ok {
			t.Fatalf("%q not accepted", tc.kind)
		}
		if ev.Kind != tc.want {
			t.Fatalf("%q mapped to %v", tc.kind, ev.Kind)
		}
	}

	ev, ok := parseInput(InputMessage{Kind: "angle_delta", Amount: -2})
	if !ok || ev.Amount != -2 {
		t.Fatalf("amount not carried: %+v", ev)
	}
}

func TestParseInput_DropsUnknown(t *testing.T) {
	if _, ok := parseInput(InputMessage{Kind: "self_destruct"}); ok {
		t.Fatal("unknown input kind accepted")
	}
	if _, ok := parseInput(InputMessage{}); ok {
		t.Fatal("empty input kind accepted")
	}
}

func TestSnapshotState(t *testing.T) {
	ts := game.NewTestSim(game.WithSeed(5))
	ts.Step(3)

	f := snapshotState(ts.Sim)
	if f.Type != "state" {
		t.Fatalf("frame type = %q", f.Type)
	}
	if f.Tick != ts.Sim.Tick() {
		t.Fatalf("tick = %d, want %d", f.Tick, ts.Sim.Tick())
	}
	if len(f.Tanks) != 2 {
		t.Fatalf("tank count = %d", len(f.Tanks))
	}
	if f.Tanks[0].Team != "player" || f.Tanks[1].Team != "enemy" {
		t.Fatalf("tank order = %s, %s", f.Tanks[0].Team, f.Tanks[1].Team)
	}
	if f.Round != 1 || f.Over {
		t.Fatalf("fresh run frame: round=%d over=%v", f.Round, f.Over)
	}
}

func TestSnapshotTerrain(t *testing.T) {
	ts := game.NewTestSim(game.WithSeed(5))
	f := snapshotTerrain(ts.Sim)

	if f.Type != "terrain" {
		t.Fatalf("frame type = %q", f.Type)
	}
	if f.Width != ts.Sim.Width || len(f.Heights) != ts.Sim.Width {
		t.Fatalf("width %d, %d heights", f.Width, len(f.Heights))
	}
	for x, h := range f.Heights {
		if h != ts.Sim.Terrain.Height(x) {
			t.Fatalf("height mismatch at column %d", x)
		}
	}
}
