package ws

import (
	"sync"

	"github.com/gorilla/websocket"
)

// safeWriter serialises writes to one websocket connection. The broadcast
// ticker and the per-connection reader both send, so writes need a lock.
type safeWriter struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func newSafeWriter(conn *websocket.Conn) *safeWriter {
	return &safeWriter{conn: conn}
}

func (w *safeWriter) WriteJSON(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteJSON(v)
}

func (w *safeWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.Close()
}
