package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"commons-backend/internal/checkin"
	"commons-backend/internal/events"
	"commons-backend/internal/logger"
	"commons-backend/internal/middleware"
	"commons-backend/internal/models"
)

const (
	writeWait   = 10 * time.Second
	sendBufSize = 32
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type tokenParser interface {
	ParseToken(tokenStr string) (middleware.Identity, error)
}

type client struct {
	userID uuid.UUID
	conn   *websocket.Conn
	send   chan []byte
}

type room struct {
	clients map[*client]struct{}
	cancel  func()
}

// Hub fans tenant check-in events out to connected residents. Each tenant with
// at least one connection holds a single bus subscription.
type Hub struct {
	mu    sync.RWMutex
	rooms map[uuid.UUID]*room
	bus   events.Subscriber
	auth  tokenParser
}

func NewHub(bus events.Subscriber, auth tokenParser) *Hub {
	return &Hub{
		rooms: make(map[uuid.UUID]*room),
		bus:   bus,
		auth:  auth,
	}
}

func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	// Authenticate via token query param
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	identity, err := h.auth.ParseToken(tokenStr)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{userID: identity.UserID, conn: conn, send: make(chan []byte, sendBufSize)}
	if err := h.register(identity.TenantID, c); err != nil {
		logger.Logger.Error("Failed to subscribe tenant", zap.String("tenant_id", identity.TenantID.String()), zap.Error(err))
		conn.Close()
		return
	}

	go h.writePump(c)

	// Keep connection alive and handle disconnect
	go func() {
		defer h.unregister(identity.TenantID, c)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// register adds c to the tenant's room, subscribing the tenant on first use.
// The bus call happens outside h.mu so other tenants keep receiving events.
func (h *Hub) register(tenantID uuid.UUID, c *client) error {
	h.mu.Lock()
	if rm, ok := h.rooms[tenantID]; ok {
		h.join(tenantID, rm, c)
		h.mu.Unlock()
		return nil
	}
	h.mu.Unlock()

	ch, cancel, err := h.bus.Subscribe(events.TenantTopic(tenantID))
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	// Another connection may have opened the room while we subscribed.
	if rm, ok := h.rooms[tenantID]; ok {
		cancel()
		h.join(tenantID, rm, c)
		return nil
	}

	rm := &room{clients: make(map[*client]struct{}), cancel: cancel}
	h.rooms[tenantID] = rm
	go h.pump(tenantID, ch)
	h.join(tenantID, rm, c)
	return nil
}

// join must be called with h.mu held.
func (h *Hub) join(tenantID uuid.UUID, rm *room, c *client) {
	rm.clients[c] = struct{}{}

	logger.Logger.Info("WebSocket connected",
		zap.String("tenant_id", tenantID.String()),
		zap.String("user_id", c.userID.String()),
		zap.Int("tenant_connections", len(rm.clients)),
	)
}

func (h *Hub) unregister(tenantID uuid.UUID, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	rm, ok := h.rooms[tenantID]
	if !ok {
		return
	}
	if _, ok := rm.clients[c]; !ok {
		return
	}
	delete(rm.clients, c)
	close(c.send)

	// Last connection for the tenant drops the subscription.
	if len(rm.clients) == 0 {
		delete(h.rooms, tenantID)
		rm.cancel()
	}

	logger.Logger.Info("WebSocket disconnected",
		zap.String("tenant_id", tenantID.String()),
		zap.String("user_id", c.userID.String()),
	)
}

func (h *Hub) pump(tenantID uuid.UUID, ch <-chan []byte) {
	for payload := range ch {
		h.deliver(tenantID, payload)
	}
}

// deliver forwards a bus payload to every client in the tenant allowed to see
// the check-in it describes.
func (h *Hub) deliver(tenantID uuid.UUID, payload []byte) {
	var event models.CheckInEvent
	if err := json.Unmarshal(payload, &event); err != nil || event.CheckIn == nil {
		logger.Logger.Warn("Dropping malformed check-in event", zap.String("tenant_id", tenantID.String()), zap.Error(err))
		return
	}

	data, err := json.Marshal(models.WSMessage{Type: event.Type, Payload: event.CheckIn})
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	rm, ok := h.rooms[tenantID]
	if !ok {
		return
	}
	for c := range rm.clients {
		if !checkin.CanView(event.CheckIn, c.userID) {
			continue
		}
		select {
		case c.send <- data:
		default:
			logger.Logger.Warn("WebSocket send buffer full, dropping event", zap.String("user_id", c.userID.String()))
		}
	}
}

func (h *Hub) writePump(c *client) {
	defer c.conn.Close()
	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

func (h *Hub) connectionCount(tenantID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if rm, ok := h.rooms[tenantID]; ok {
		return len(rm.clients)
	}
	return 0
}

// Close drops every tenant subscription. Connected sockets are closed as their
// send channels drain.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for tenantID, rm := range h.rooms {
		for c := range rm.clients {
			close(c.send)
		}
		rm.cancel()
		delete(h.rooms, tenantID)
	}
}
