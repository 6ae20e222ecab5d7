package ws

import (
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/calebwray/mudslinger/internal/game"
)

const (
	tickInterval      = time.Second / 60
	broadcastInterval = 50 * time.Millisecond
	inputQueueDepth   = 64
)

// Server runs one simulation and exposes it over a websocket endpoint.
// The sim stays single-threaded: one goroutine owns it, stepping at 60 Hz
// and broadcasting state frames; connection readers only feed a channel.
type Server struct {
	upgrader websocket.Upgrader
	sim      *game.Simulation

	inputs chan game.InputEvent

	// conns maps each connection to whether it still needs its first
	// terrain frame. Guarded by mu; the sim itself is never touched
	// off the Run goroutine.
	mu    sync.Mutex
	conns map[*safeWriter]bool

	lastHeights []int
	done        chan struct{}
}

// NewServer wraps a simulation for websocket play.
func NewServer(sim *game.Simulation) *Server {
	return &Server{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		sim:    sim,
		inputs: make(chan game.InputEvent, inputQueueDepth),
		conns:  make(map[*safeWriter]bool),
		done:   make(chan struct{}),
	}
}

// Run steps the simulation and broadcasts until Stop is called. It blocks;
// callers start it in a goroutine of their own.
func (srv *Server) Run() {
	ticker := time.NewTicker(tickInterval)
	broadcast := time.NewTicker(broadcastInterval)
	defer ticker.Stop()
	defer broadcast.Stop()

	for {
		select {
		case <-srv.done:
			return
		case <-ticker.C:
			srv.drainInputs()
			srv.sim.Update()
		case <-broadcast.C:
			srv.broadcastState()
		}
	}
}

// Stop shuts the loop down and closes all connections.
func (srv *Server) Stop() {
	close(srv.done)
	srv.mu.Lock()
	defer srv.mu.Unlock()
	for c := range srv.conns {
		_ = c.Close()
	}
}

// drainInputs moves queued client inputs into the sim's input queue.
// Runs on the sim goroutine.
func (srv *Server) drainInputs() {
	for {
		select {
		case e := <-srv.inputs:
			srv.sim.Input.Push(e)
		default:
			return
		}
	}
}

// broadcastState sends the current frame to every connection, preceded by
// a terrain frame whenever the heightfield changed or the connection has
// not seen one yet. Runs on the sim goroutine.
func (srv *Server) broadcastState() {
	state := snapshotState(srv.sim)

	t := snapshotTerrain(srv.sim)
	changed := !slices.Equal(t.Heights, srv.lastHeights)
	if changed {
		srv.lastHeights = t.Heights
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()
	for c, needsTerrain := range srv.conns {
		if changed || needsTerrain {
			if err := c.WriteJSON(&t); err != nil {
				delete(srv.conns, c)
				_ = c.Close()
				continue
			}
			srv.conns[c] = false
		}
		if err := c.WriteJSON(state); err != nil {
			delete(srv.conns, c)
			_ = c.Close()
		}
	}
}

// Handler upgrades an HTTP request and services the connection until it
// closes.
func (srv *Server) Handler(w http.ResponseWriter, r *http.Request) {
	conn, err := srv.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("websocket upgrade failed", "err", err)
		return
	}
	sw := newSafeWriter(conn)

	// Reading the sim here would race with the Run goroutine; register
	// the connection as terrain-pending and let the next broadcast tick
	// send its first terrain frame.
	srv.mu.Lock()
	srv.conns[sw] = true
	srv.mu.Unlock()
	log.Info("client connected", "remote", conn.RemoteAddr())

	go srv.readLoop(sw, conn)
}

// readLoop pumps client input messages into the input channel. A full
// channel drops the event, which is the same policy the sim applies to
// inputs arriving in the wrong phase.
func (srv *Server) readLoop(sw *safeWriter, conn *websocket.Conn) {
	defer func() {
		srv.mu.Lock()
		delete(srv.conns, sw)
		srv.mu.Unlock()
		_ = sw.Close()
		log.Info("client disconnected", "remote", conn.RemoteAddr())
	}()

	for {
		var msg InputMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if msg.Type != "input" {
			continue
		}
		e, ok := parseInput(msg)
		if !ok {
			continue
		}
		select {
		case srv.inputs <- e:
		default:
		}
	}
}
