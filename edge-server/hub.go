package main

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"office-dashboard/dashboard"
	"office-dashboard/logging"
	"office-dashboard/shared"
)

// HubStats tracks statistics for the hub
type HubStats struct {
	TotalClients      int       `json:"total_clients"`
	TotalMessages     int64     `json:"total_messages"`
	SnapshotsApplied  int64     `json:"snapshots_applied"`
	LatestSeq         int64     `json:"latest_seq"`
	ConnectedAt       time.Time `json:"connected_at"`
	LastBroadcastTime time.Time `json:"last_broadcast_time"`
}

// Hub maintains the set of active clients and the latest seating view, and
// pushes every newer view to all of them.
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Seating views waiting to be pushed to every client
	updates chan dashboard.SeatingView

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Closed when run returns
	done chan struct{}

	source DashboardSource
	logger *zap.Logger

	// Latest applied seating view, nil until the first fetch
	latest *dashboard.SeatingView

	stats HubStats

	mu sync.RWMutex
}

func newHub(source DashboardSource, logger *zap.Logger) *Hub {
	return &Hub{
		updates:    make(chan dashboard.SeatingView, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[*Client]bool),
		source:     source,
		logger:     logging.OrNop(logger),
		stats: HubStats{
			ConnectedAt: time.Now(),
		},
	}
}

func (h *Hub) run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				client.closeSend()
			}
			h.stats.TotalClients = 0
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.stats.TotalClients = len(h.clients)
			total := h.stats.TotalClients
			h.mu.Unlock()

			h.logger.Info("client registered", zap.String("client_id", client.id), zap.Int("total_clients", total))
			h.sendWelcomeMessage(client, total)

		case client := <-h.unregister:
			h.removeClient(client)

		case view := <-h.updates:
			h.mu.Lock()
			h.stats.TotalMessages++
			h.stats.LastBroadcastTime = time.Now()
			h.mu.Unlock()

			h.pushToClients(view)
		}
	}
}

// Register adds client, reporting false once the hub has stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes client. It is a no-op once the hub has stopped.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		client.closeSend()
		h.stats.TotalClients = len(h.clients)
	}
	total := h.stats.TotalClients
	h.mu.Unlock()

	h.logger.Info("client unregistered", zap.String("client_id", client.id), zap.Int("total_clients", total))
}

// pushToClients announces view and refreshes every client's zone view.
// Clients whose send buffer is full are disconnected.
func (h *Hub) pushToClients(view dashboard.SeatingView) {
	announcement := snapshotUpdatedPayload{
		Seq:       view.Seq,
		FetchedAt: view.FetchedAt,
		Message:   view.Message,
		Summary:   view.Summary,
	}

	var slow []*Client
	h.mu.RLock()
	for client := range h.clients {
		if !client.sendMessage(shared.MessageTypeSnapshotUpdated, announcement) || !client.applySeating(view) {
			slow = append(slow, client)
		}
	}
	count := len(h.clients)
	h.mu.RUnlock()

	for _, client := range slow {
		h.logger.Warn("client send buffer full, disconnecting", zap.String("client_id", client.id))
		h.removeClient(client)
	}
	h.logger.Debug("pushed seating view", zap.Int64("seq", view.Seq), zap.Int("clients", count))
}

// sendWelcomeMessage sends a welcome message to a newly connected client
func (h *Hub) sendWelcomeMessage(client *Client, totalClients int) {
	client.sendMessage(shared.MessageTypeWelcome, map[string]any{
		"client_id":     client.id,
		"total_clients": totalClients,
		"server_time":   time.Now().Unix(),
	})
}

// remember stores view as the latest one unless a view with an equal or
// higher seq is already held. It reports whether view was stored.
func (h *Hub) remember(view dashboard.SeatingView) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.latest != nil && view.Seq <= h.latest.Seq {
		return false
	}
	h.latest = &view
	h.stats.LatestSeq = view.Seq
	h.stats.SnapshotsApplied++
	return true
}

// Latest returns the most recent seating view, if any.
func (h *Hub) Latest() (dashboard.SeatingView, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.latest == nil {
		return dashboard.SeatingView{}, false
	}
	return *h.latest, true
}

// seating returns the latest view, fetching it once when none is held yet.
func (h *Hub) seating(ctx context.Context) (dashboard.SeatingView, error) {
	if view, ok := h.Latest(); ok {
		return view, nil
	}
	view, err := h.source.FetchSeating(ctx)
	if err != nil {
		return dashboard.SeatingView{}, err
	}
	h.remember(view)
	logging.Diagnostics(h.logger, "seating", view.Diagnostics)
	if latest, ok := h.Latest(); ok {
		return latest, nil
	}
	return view, nil
}

// handleSnapshotEvent fetches the seating view announced by event, once for
// all clients, and queues it for every client when it is newer than the one
// already held.
func (h *Hub) handleSnapshotEvent(ctx context.Context, event shared.SnapshotEvent) {
	if event.Type != shared.SnapshotEventUpdated {
		h.logger.Debug("ignoring event", zap.String("type", event.Type))
		return
	}
	if latest, ok := h.Latest(); ok && event.Seq <= latest.Seq {
		h.logger.Debug("ignoring stale snapshot event", zap.Int64("seq", event.Seq), zap.Int64("latest_seq", latest.Seq))
		return
	}

	view, err := h.source.FetchSeating(ctx)
	if err != nil {
		h.logger.Error("failed to fetch seating after snapshot event", zap.Int64("seq", event.Seq), zap.Error(err))
		return
	}
	if !h.remember(view) {
		h.logger.Debug("fetched seating view already superseded", zap.Int64("seq", view.Seq))
		return
	}
	logging.Diagnostics(h.logger, "seating", view.Diagnostics)

	select {
	case h.updates <- view:
	default:
		h.logger.Warn("update channel full, dropping seating push", zap.Int64("seq", view.Seq))
	}
}

// GetStats returns current hub statistics
func (h *Hub) GetStats() HubStats {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.stats
}

// GetClientCount returns the current number of connected clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// decodeSnapshotEvent parses a NATS payload.
func decodeSnapshotEvent(data []byte) (shared.SnapshotEvent, error) {
	var event shared.SnapshotEvent
	err := json.Unmarshal(data, &event)
	return event, err
}
