package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// TypeDatasetUpdated is the only frame the hub pushes: a new dataset
// snapshot replaced the previous one.
const TypeDatasetUpdated = "dataset_updated"

// Message is the wire frame sent to every connected client.
type Message struct {
	Type       string    `json:"type"`
	SnapshotID string    `json:"snapshot_id"`
	Years      []int     `json:"years"`
	Rows       int       `json:"rows"`
	At         time.Time `json:"at"`
}

// Settings tunes the upgrade buffers and the keepalive cycle. Zero fields
// keep the package defaults.
type Settings struct {
	ReadBufferSize  int
	WriteBufferSize int
	PingPeriod      time.Duration
	PongWait        time.Duration
}

func (s Settings) withDefaults() Settings {
	if s.ReadBufferSize <= 0 {
		s.ReadBufferSize = defaultBufferSize
	}
	if s.WriteBufferSize <= 0 {
		s.WriteBufferSize = defaultBufferSize
	}
	if s.PongWait <= 0 {
		s.PongWait = defaultPongWait
	}
	if s.PingPeriod <= 0 || s.PingPeriod >= s.PongWait {
		// Pings must arrive before the pong deadline expires.
		s.PingPeriod = s.PongWait * 9 / 10
	}
	return s
}

// Hub fans dataset reload announcements out to the connected clients.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	mu      sync.RWMutex
	running bool
	quit    chan struct{}

	settings Settings
	logger   *slog.Logger
}

// NewHub creates a hub with default connection settings. Start must be
// called before clients connect.
func NewHub(logger *slog.Logger) *Hub {
	return NewHubWithSettings(Settings{}, logger)
}

// NewHubWithSettings creates a hub with explicit connection settings.
func NewHubWithSettings(settings Settings, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		quit:       make(chan struct{}),
		settings:   settings.withDefaults(),
		logger:     logger.With(slog.String("component", "websocket.hub")),
	}
}

// Start launches the hub loop once.
func (h *Hub) Start() {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		return
	}
	h.running = true
	h.mu.Unlock()

	go h.run()
}

func (h *Hub) run() {
	for {
		select {
		case <-h.quit:
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.logger.Info("hub stopped")
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("client registered",
				slog.String("client_id", client.id),
				slog.String("remote_addr", client.remoteAddr),
				slog.Int("total_clients", count))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("client unregistered",
				slog.String("client_id", client.id),
				slog.Int("total_clients", count))

		case frame := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- frame:
				default:
					// Slow consumer, drop it.
					delete(h.clients, client)
					close(client.send)
				}
			}
			h.mu.Unlock()
		}
	}
}

// AnnounceDatasetUpdated broadcasts a snapshot-replaced frame.
func (h *Hub) AnnounceDatasetUpdated(ctx context.Context, snapshotID string, years []int, rows int) {
	frame, err := json.Marshal(Message{
		Type:       TypeDatasetUpdated,
		SnapshotID: snapshotID,
		Years:      years,
		Rows:       rows,
		At:         time.Now().UTC(),
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "marshal announcement failed", slog.String("error", err.Error()))
		return
	}

	select {
	case h.broadcast <- frame:
		h.logger.InfoContext(ctx, "dataset update announced",
			slog.String("snapshot_id", snapshotID),
			slog.Int("rows", rows))
	case <-h.quit:
	}
}

// ClientCount reports the connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Shutdown stops the loop and disconnects every client.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	if !h.running {
		h.mu.Unlock()
		return
	}
	h.running = false
	h.mu.Unlock()
	close(h.quit)
}
