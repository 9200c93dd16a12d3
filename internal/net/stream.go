package net

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// SnapshotServer pushes JSON session snapshots to websocket
// subscribers. New subscribers immediately receive the latest snapshot
// so a renderer never starts from a blank view.
type SnapshotServer struct {
	mu       sync.Mutex
	upgrader websocket.Upgrader
	conns    map[*websocket.Conn]bool
	latest   []byte

	// writeMu serializes writes: websocket connections allow a single
	// concurrent writer, and broadcasts come from recognition
	// goroutines as well as the UI thread.
	writeMu sync.Mutex
}

func NewSnapshotServer() *SnapshotServer {
	return &SnapshotServer{
		upgrader: websocket.Upgrader{
			// Local-network tool: any origin on the LAN may subscribe.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]bool),
	}
}

// ServeHTTP upgrades the request and registers the subscriber. The
// read loop exists only to notice the peer going away.
func (s *SnapshotServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[STREAM] upgrade failed: %v", err)
		return
	}

	s.mu.Lock()
	s.conns[conn] = true
	latest := s.latest
	s.mu.Unlock()
	log.Printf("[STREAM] subscriber connected from %s", conn.RemoteAddr())

	if latest != nil {
		s.writeMu.Lock()
		err = conn.WriteMessage(websocket.TextMessage, latest)
		s.writeMu.Unlock()
		if err != nil {
			s.drop(conn)
			return
		}
	}

	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.drop(conn)
				return
			}
		}
	}()
}

// Broadcast serializes v once and sends it to every subscriber.
// Subscribers that fail to accept the write are dropped.
func (s *SnapshotServer) Broadcast(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("[STREAM] marshal failed: %v", err)
		return
	}

	s.mu.Lock()
	s.latest = data
	conns := make([]*websocket.Conn, 0, len(s.conns))
	for c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	s.writeMu.Lock()
	var failed []*websocket.Conn
	for _, c := range conns {
		if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
			failed = append(failed, c)
		}
	}
	s.writeMu.Unlock()
	for _, c := range failed {
		s.drop(c)
	}
}

// Close disconnects every subscriber.
func (s *SnapshotServer) Close() {
	s.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.conns))
	for c := range s.conns {
		conns = append(conns, c)
	}
	s.conns = make(map[*websocket.Conn]bool)
	s.mu.Unlock()

	for _, c := range conns {
		c.Close()
	}
}

func (s *SnapshotServer) drop(conn *websocket.Conn) {
	s.mu.Lock()
	_, present := s.conns[conn]
	delete(s.conns, conn)
	s.mu.Unlock()
	if present {
		log.Printf("[STREAM] subscriber %s disconnected", conn.RemoteAddr())
	}
	conn.Close()
}
