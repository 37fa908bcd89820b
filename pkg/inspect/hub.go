package inspect

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/routeshell/pkg/render"
)

// MessageType identifies a websocket message.
type MessageType string

const (
	MessageFrame MessageType = "frame"
)

// Message is sent to websocket clients.
type Message struct {
	Type  MessageType   `json:"type"`
	Frame *render.Frame `json:"frame,omitempty"`
}

const writeWait = 10 * time.Second

// Hub streams presented frames to websocket clients. Each client gets its own
// surface subscription, so a slow client only ever misses intermediate frames.
type Hub struct {
	surface  *render.MemorySurface
	clients  map[*websocket.Conn]func()
	mu       sync.RWMutex
	upgrader websocket.Upgrader
	logger   *slog.Logger

	onConnect    func()
	onDisconnect func()
}

// NewHub creates a hub streaming frames presented to surface.
func NewHub(surface *render.MemorySurface, logger *slog.Logger) *Hub {
	return &Hub{
		surface: surface,
		clients: make(map[*websocket.Conn]func()),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Local inspector
			},
		},
		logger: logger,
	}
}

// HandleWebSocket upgrades the connection and streams frames until the
// client disconnects or the hub is closed. The current frame is sent first.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	frames, cancel := h.surface.Subscribe()

	h.mu.Lock()
	h.clients[conn] = cancel
	h.mu.Unlock()
	if h.onConnect != nil {
		h.onConnect()
	}
	h.logger.Debug("inspector client connected", "remote", req.RemoteAddr)

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		cancel()
		conn.Close()
		if h.onDisconnect != nil {
			h.onDisconnect()
		}
		h.logger.Debug("inspector client disconnected", "remote", req.RemoteAddr)
	}()

	// Reads only detect the close; clients send nothing meaningful.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	if current := h.surface.Frame(); current.Seq > 0 {
		if err := h.send(conn, current); err != nil {
			return
		}
	}
	for f := range frames {
		if err := h.send(conn, f); err != nil {
			return
		}
	}
}

func (h *Hub) send(conn *websocket.Conn, f render.Frame) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
	if err := conn.WriteJSON(Message{Type: MessageFrame, Frame: &f}); err != nil {
		h.logger.Debug("websocket write failed", "error", err)
		return err
	}
	return nil
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close ends every client stream.
func (h *Hub) Close() {
	h.mu.RLock()
	cancels := make([]func(), 0, len(h.clients))
	for _, cancel := range h.clients {
		cancels = append(cancels, cancel)
	}
	h.mu.RUnlock()

	for _, cancel := range cancels {
		cancel()
	}
}
