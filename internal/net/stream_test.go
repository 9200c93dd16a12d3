package net

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

type testPayload struct {
	Seq int `json:"seq"`
}

func dialStream(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func readPayload(t *testing.T, conn *websocket.Conn) testPayload {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var p testPayload
	if err := json.Unmarshal(data, &p); err != nil {
		t.Fatalf("unmarshal %q: %v", data, err)
	}
	return p
}

func TestBroadcastReachesSubscribers(t *testing.T) {
	s := NewSnapshotServer()
	srv := httptest.NewServer(s)
	defer srv.Close()
	defer s.Close()

	a := dialStream(t, srv)
	defer a.Close()
	b := dialStream(t, srv)
	defer b.Close()

	// Subscription registration races the broadcast; give the server a
	// beat to upgrade both connections.
	time.Sleep(50 * time.Millisecond)
	s.Broadcast(testPayload{Seq: 1})

	if got := readPayload(t, a); got.Seq != 1 {
		t.Fatalf("a got seq %d", got.Seq)
	}
	if got := readPayload(t, b); got.Seq != 1 {
		t.Fatalf("b got seq %d", got.Seq)
	}
}

func TestLateSubscriberGetsLatestSnapshot(t *testing.T) {
	s := NewSnapshotServer()
	srv := httptest.NewServer(s)
	defer srv.Close()
	defer s.Close()

	s.Broadcast(testPayload{Seq: 7})

	conn := dialStream(t, srv)
	defer conn.Close()

	if got := readPayload(t, conn); got.Seq != 7 {
		t.Fatalf("late subscriber got seq %d, want 7", got.Seq)
	}
}
