package feed

import (
	"net"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Any origin may watch.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Handler upgrades requests to spectator connections.
func (h *Hub) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Warn("upgrade failed", "err", err)
			return
		}

		client := NewClient(h, conn, remoteIP(r))
		if !h.join(client) {
			conn.Close()
			return
		}

		go client.WritePump()
		go client.ReadPump()
	})
}

// NewMux serves the feed at /ws.
func NewMux(h *Hub) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/ws", h.Handler())
	return mux
}

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
