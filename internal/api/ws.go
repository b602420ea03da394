package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/quantive/marketcore/internal/model"
	"github.com/quantive/marketcore/pkg/logger"
)

const writeTimeout = 5 * time.Second

// Hub pushes each refreshed market snapshot to connected websocket
// clients. This is push-on-refresh, not a streaming feed: clients see a
// new message only when a scheduled refresh lands.
type Hub struct {
	logger   *logger.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*wsClient]struct{}
}

// wsClient wraps a connection with a write mutex. gorilla/websocket
// allows at most one concurrent writer per connection, and refresh
// jobs can overlap when the provider limiter is contended.
type wsClient struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *wsClient) write(payload []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

// NewHub creates a new websocket hub.
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		logger: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		clients: make(map[*wsClient]struct{}),
	}
}

// ServeWS upgrades the connection and registers the client.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("Websocket upgrade failed")
		return
	}

	client := &wsClient{conn: conn}

	h.mu.Lock()
	h.clients[client] = struct{}{}
	count := len(h.clients)
	h.mu.Unlock()

	h.logger.WithField("clients", count).Debug("Websocket client connected")

	// Drain reads so close frames are processed; when the read loop ends
	// the client is gone.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.drop(client)
				return
			}
		}
	}()
}

// BroadcastMarketData sends the snapshot to every connected client.
// Slow or dead clients are dropped rather than blocking the refresh.
func (h *Hub) BroadcastMarketData(data model.MarketData) {
	payload, err := json.Marshal(data)
	if err != nil {
		h.logger.WithError(err).Error("Failed to marshal market snapshot")
		return
	}

	h.mu.Lock()
	clients := make([]*wsClient, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.Unlock()

	for _, client := range clients {
		if err := client.write(payload); err != nil {
			h.drop(client)
		}
	}
}

// drop unregisters and closes a client connection.
func (h *Hub) drop(client *wsClient) {
	h.mu.Lock()
	_, ok := h.clients[client]
	delete(h.clients, client)
	h.mu.Unlock()

	if ok {
		client.conn.Close()
		h.logger.Debug("Websocket client disconnected")
	}
}
