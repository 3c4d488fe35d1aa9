// Package feed streams match frames to WebSocket spectators.
//
// The runner goroutine hands every step to Hub.Consume; each connected
// client gets a msgpack-encoded FrameMsg over its own buffered channel.
// Clients that fall behind are dropped rather than slowing the match.
package feed

import (
	"context"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/moonlander/internal/games/lander"
	"github.com/vovakirdan/moonlander/internal/runner"
)

// Hub tracks spectators and fans frames out to them.
type Hub struct {
	mu         sync.Mutex
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	done       chan struct{} // Closed when Run returns
	stopOnce   sync.Once
	logger     *log.Logger
}

var _ runner.Sink = (*Hub)(nil)

// NewHub creates a hub. Call Run before serving clients.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run processes registrations until ctx is done, then closes every client.
// Later joins are refused and later leaves return at once.
func (h *Hub) Run(ctx context.Context) {
	defer h.stopOnce.Do(func() { close(h.done) })
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			n := len(h.clients)
			h.mu.Unlock()
			h.logger.Debug("spectator joined", "addr", client.remoteAddr, "clients", n)

		case client := <-h.unregister:
			h.mu.Lock()
			h.drop(client)
			h.mu.Unlock()

		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				h.drop(client)
			}
			h.mu.Unlock()
			return
		}
	}
}

// join hands a client to Run. It reports false once the hub has stopped.
func (h *Hub) join(client *Client) bool {
	select {
	case <-h.done:
		return false
	default:
	}
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// leave asks Run to drop a client. It never blocks after the hub stops.
func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// drop removes a client and closes its send channel. Caller holds mu.
func (h *Hub) drop(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)
	h.logger.Debug("spectator left", "addr", client.remoteAddr)
}

// Len returns the number of connected spectators.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Consume broadcasts one step. Terrain heights are attached only for
// clients that have not seen the current terrain version.
func (h *Hub) Consume(step lander.StepResult, frame lander.Frame) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.clients) == 0 {
		return
	}

	version := frame.Terrain.Version()
	var delta, full []byte
	for client := range h.clients {
		withTerrain := !client.synced || client.terrainVersion != version

		var data []byte
		var err error
		if withTerrain {
			if full == nil {
				full, err = Encode(NewFrameMsg(step, frame, true))
			}
			data = full
		} else {
			if delta == nil {
				delta, err = Encode(NewFrameMsg(step, frame, false))
			}
			data = delta
		}
		if err != nil {
			h.logger.Error("frame encoding failed", "err", err)
			return
		}

		select {
		case client.send <- data:
			client.synced = true
			client.terrainVersion = version
		default:
			h.logger.Warn("dropping slow spectator", "addr", client.remoteAddr)
			h.drop(client)
		}
	}
}
