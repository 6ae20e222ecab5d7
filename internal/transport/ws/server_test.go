package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/calebwray/mudslinger/internal/game"
)

func newTestServer(t *testing.T) (*Server, *websocket.Conn) {
	t.Helper()
	sim := game.NewSimulation(game.SimConfig{
		Difficulty: game.DifficultyEasy,
		Seed:       7,
	})
	srv := NewServer(sim)

	hs := httptest.NewServer(http.HandlerFunc(srv.Handler))
	t.Cleanup(hs.Close)

	url := "ws" + strings.TrimPrefix(hs.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	// The handler registers the connection before spawning its read loop;
	// wait for registration so broadcastState sees it.
	deadline := time.Now().Add(2 * time.Second)
	for {
		srv.mu.Lock()
		n := len(srv.conns)
		srv.mu.Unlock()
		if n == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("connection never registered")
		}
		time.Sleep(time.Millisecond)
	}
	return srv, conn
}

// Handler must not read sim state on the HTTP goroutine; the new
// connection's first terrain frame arrives with the next broadcast pass,
// which runs where the sim lives.
func TestHandler_FirstTerrainFrameComesFromBroadcast(t *testing.T) {
	srv, conn := newTestServer(t)

	srv.broadcastState()

	var terrain TerrainFrame
	if err := conn.ReadJSON(&terrain); err != nil {
		t.Fatalf("reading first frame: %v", err)
	}
	if terrain.Type != "terrain" {
		t.Fatalf("first frame type %q, want terrain", terrain.Type)
	}
	if len(terrain.Heights) != srv.sim.Width {
		t.Fatalf("terrain frame has %d columns, want %d", len(terrain.Heights), srv.sim.Width)
	}

	var state StateFrame
	if err := conn.ReadJSON(&state); err != nil {
		t.Fatalf("reading state frame: %v", err)
	}
	if state.Type != "state" {
		t.Fatalf("second frame type %q, want state", state.Type)
	}
}

func TestBroadcast_TerrainNotResentWhenUnchanged(t *testing.T) {
	srv, conn := newTestServer(t)

	srv.broadcastState()
	var terrain TerrainFrame
	if err := conn.ReadJSON(&terrain); err != nil {
		t.Fatalf("reading terrain frame: %v", err)
	}
	var state StateFrame
	if err := conn.ReadJSON(&state); err != nil {
		t.Fatalf("reading state frame: %v", err)
	}

	// Terrain is unchanged, so the second pass carries state only.
	srv.broadcastState()
	var next StateFrame
	if err := conn.ReadJSON(&next); err != nil {
		t.Fatalf("reading second pass: %v", err)
	}
	if next.Type != "state" {
		t.Fatalf("second pass frame type %q, want state", next.Type)
	}
}

func TestBroadcast_TerrainResentAfterCarve(t *testing.T) {
	srv, conn := newTestServer(t)

	srv.broadcastState()
	var terrain TerrainFrame
	if err := conn.ReadJSON(&terrain); err != nil {
		t.Fatalf("reading terrain frame: %v", err)
	}
	var state StateFrame
	if err := conn.ReadJSON(&state); err != nil {
		t.Fatalf("reading state frame: %v", err)
	}

	cx := srv.sim.Width / 2
	srv.sim.Terrain.Carve(float64(cx), srv.sim.Terrain.SurfaceY(cx), 30)

	srv.broadcastState()
	var after TerrainFrame
	if err := conn.ReadJSON(&after); err != nil {
		t.Fatalf("reading post-carve frame: %v", err)
	}
	if after.Type != "terrain" {
		t.Fatalf("post-carve frame type %q, want terrain", after.Type)
	}
	if after.Heights[cx] >= terrain.Heights[cx] {
		t.Fatalf("column %d did not drop: %d -> %d", cx, terrain.Heights[cx], after.Heights[cx])
	}
}
