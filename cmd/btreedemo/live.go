package main

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/brensch/behaviortree/internal/visualize"
)

// liveHub fans a tick's trace out to every connected dashboard client over
// a websocket. The demo is the origin of events, so it runs the server side
// of the connection rather than dialing out to one.
type liveHub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]chan visualize.Trace
}

func newLiveHub() *liveHub {
	return &liveHub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]chan visualize.Trace),
	}
}

// ServeHTTP upgrades the request to a websocket and streams every
// subsequently broadcast trace to it until the client disconnects.
func (h *liveHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("live websocket upgrade failed", "error", err.Error())
		return
	}

	feed := make(chan visualize.Trace, 8)
	h.mu.Lock()
	h.clients[conn] = feed
	h.mu.Unlock()

	slog.Info("live client connected", "remote", r.RemoteAddr)

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		conn.Close()
	}()

	for trace := range feed {
		if err := conn.WriteJSON(trace); err != nil {
			slog.Warn("live client write failed, dropping", "error", err.Error())
			return
		}
	}
}

// Broadcast sends trace to every connected client's feed, dropping it for
// any client whose feed is currently full rather than blocking the ticker.
func (h *liveHub) Broadcast(trace visualize.Trace) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, feed := range h.clients {
		select {
		case feed <- trace:
		default:
			slog.Warn("live client feed full, dropping trace", "tick", trace.Tick)
			_ = conn
		}
	}
}
