package main

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"office-dashboard/dashboard"
	"office-dashboard/seating"
	"office-dashboard/shared"
)

const (
	// Maximum message size allowed from peer
	maxMessageSize = 64 * 1024

	// Outbound messages buffered per client
	sendBufferSize = 256
)

// Client is a middleman between the websocket connection and the hub. Each
// client owns its zone view so tab selection is per browser.
type Client struct {
	hub *Hub

	// The websocket connection
	conn *websocket.Conn

	// Buffered channel of outbound messages, closed by the hub
	send   chan []byte
	sendMu sync.Mutex
	closed bool

	// Client ID
	id string

	logger *zap.Logger

	// Connection timestamp
	connectedAt time.Time

	// mu guards the fields below. Never call into the hub while holding it.
	mu           sync.Mutex
	userID       string
	lastActivity time.Time
	view         *seating.ZoneView
	seq          int64
}

func newClient(hub *Hub, conn *websocket.Conn) *Client {
	id := uuid.NewString()
	now := time.Now()
	return &Client{
		hub:          hub,
		conn:         conn,
		send:         make(chan []byte, sendBufferSize),
		id:           id,
		logger:       hub.logger.With(zap.String("client_id", id)),
		connectedAt:  now,
		lastActivity: now,
	}
}

// readPump pumps messages from the websocket connection to the hub
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
		c.logger.Info("client disconnected", zap.Duration("connected_for", time.Since(c.connectedAt)))
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(shared.WebSocketPongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(shared.WebSocketPongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("websocket error", zap.Error(err))
			}
			break
		}

		c.touch()

		var clientMsg shared.ClientMessage
		if err := json.Unmarshal(message, &clientMsg); err != nil {
			c.logger.Debug("invalid client message", zap.Error(err))
			c.sendError("Invalid message format")
			continue
		}

		c.handleMessage(&clientMsg)
	}
}

// writePump pumps messages from the hub to the websocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(shared.WebSocketPingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(shared.WebSocketWriteTimeout))
			if !ok {
				// The hub closed the channel
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(shared.WebSocketWriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(msg *shared.ClientMessage) {
	c.logger.Debug("client message", zap.String("type", msg.Type))

	switch msg.Type {
	case shared.MessageTypeSubscribe:
		c.handleSubscribe(msg.Data)
	case shared.MessageTypeSelectZone:
		c.handleSelectZone(msg.Data)
	case shared.MessageTypeRequestChart:
		c.handleRequestChart(msg.Data)
	default:
		c.sendError("Unknown message type: " + msg.Type)
	}
}

// sendMessage queues a message without blocking. It reports false when the
// client is gone or its buffer is full.
func (c *Client) sendMessage(msgType string, data any) bool {
	jsonData, err := json.Marshal(shared.ServerMessage{Type: msgType, Data: data})
	if err != nil {
		c.logger.Error("failed to marshal message", zap.String("type", msgType), zap.Error(err))
		return true
	}

	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- jsonData:
		return true
	default:
		c.logger.Warn("send buffer full", zap.String("type", msgType))
		return false
	}
}

func (c *Client) sendError(errorMsg string) {
	c.sendMessage(shared.MessageTypeError, shared.ErrorResponse{Error: errorMsg})
}

// closeSend closes the outbound channel once.
func (c *Client) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func (c *Client) touch() {
	c.mu.Lock()
	c.lastActivity = time.Now()
	c.mu.Unlock()
}

// applySeating swaps a new seating view into the client's zone view, keeping
// the selected tab when it still exists, and pushes the result. A view older
// than the one already applied is ignored.
func (c *Client) applySeating(view dashboard.SeatingView) bool {
	c.mu.Lock()
	if c.view != nil && view.Seq < c.seq {
		c.mu.Unlock()
		return true
	}
	if c.view == nil {
		c.view = seating.NewZoneView(view.Zones, view.Annotations)
	} else {
		c.view.Refresh(view.Zones, view.Annotations)
	}
	c.seq = view.Seq
	payload := c.zoneViewPayloadLocked()
	c.mu.Unlock()

	return c.sendMessage(shared.MessageTypeZoneView, payload)
}
