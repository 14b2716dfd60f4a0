package hub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func startHub(t *testing.T, onMessage func([]byte)) (*Hub, *httptest.Server) {
	t.Helper()
	h := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)

	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		c := NewClient(h, conn, onMessage)
		if h.RegisterClient(c) {
			c.Start()
		}
	}))
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return h, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) string {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return string(msg)
}

func TestBroadcastReachesClients(t *testing.T) {
	h, srv := startHub(t, nil)
	h.Broadcast([]byte(`{"seq":1}`))

	// Each client is registered once it has received the latest frame.
	a := dial(t, srv)
	b := dial(t, srv)
	for _, conn := range []*websocket.Conn{a, b} {
		if got := read(t, conn); got != `{"seq":1}` {
			t.Fatalf("first message = %s", got)
		}
	}

	h.Broadcast([]byte(`{"seq":2}`))
	for _, conn := range []*websocket.Conn{a, b} {
		if got := read(t, conn); got != `{"seq":2}` {
			t.Errorf("broadcast = %s", got)
		}
	}
}

func TestLateClientGetsLastFrame(t *testing.T) {
	h, srv := startHub(t, nil)
	h.Broadcast([]byte(`{"seq":1}`))
	h.Broadcast([]byte(`{"seq":2}`))

	// Once an early client has seen seq 2 the hub has handled both.
	early := dial(t, srv)
	for {
		if read(t, early) == `{"seq":2}` {
			break
		}
	}

	conn := dial(t, srv)
	if got := read(t, conn); got != `{"seq":2}` {
		t.Errorf("first message = %s, want the latest frame", got)
	}
}

func TestClientMessagesReachHandler(t *testing.T) {
	got := make(chan string, 1)
	_, srv := startHub(t, func(b []byte) { got <- string(b) })

	conn := dial(t, srv)
	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"hello"}`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case msg := <-got:
		if msg != `{"type":"hello"}` {
			t.Errorf("handler got %s", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("handler not called")
	}
}

func TestStoppedHubRejectsClients(t *testing.T) {
	h := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	if h.RegisterClient(&Client{hub: h, send: make(chan []byte, 1)}) {
		t.Error("RegisterClient succeeded on a stopped hub")
	}
	// Must not block.
	h.Broadcast([]byte("late"))
}
