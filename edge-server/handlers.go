package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"office-dashboard/seating"
	"office-dashboard/shared"
)

const requestTimeout = 10 * time.Second

// OperationResponse is the reply to a client request
type OperationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ZoneTab describes one zone in the tab bar.
type ZoneTab struct {
	ID       string `json:"id"`
	Rows     int    `json:"rows"`
	Cols     int    `json:"cols"`
	Seats    int    `json:"seats"`
	Occupied int    `json:"occupied"`
}

// ZoneViewPayload is the body of a ZONE_VIEW message.
type ZoneViewPayload struct {
	Seq          int64                   `json:"seq"`
	Zones        []ZoneTab               `json:"zones"`
	ActiveZoneID string                  `json:"active_zone_id,omitempty"`
	Seats        []seating.AnnotatedSeat `json:"seats"`
}

type snapshotUpdatedPayload struct {
	Seq       int64                   `json:"seq"`
	FetchedAt time.Time               `json:"fetched_at"`
	Message   string                  `json:"message"`
	Summary   shared.OccupancySummary `json:"summary"`
}

func (c *Client) handleSubscribe(data map[string]any) {
	c.mu.Lock()
	if userID, ok := data["user_id"].(string); ok && userID != "" {
		c.userID = userID
	}
	userID := c.userID
	c.mu.Unlock()

	c.logger.Info("client subscribed", zap.String("user_id", userID))
	c.sendMessage(shared.MessageTypeSubscribeAck, OperationResponse{
		Success: true,
		Message: "Subscribed successfully",
		Data: map[string]any{
			"client_id": c.id,
			"user_id":   userID,
		},
	})

	c.sendZoneView()
}

func (c *Client) handleSelectZone(data map[string]any) {
	zoneID, ok := data["zone_id"].(string)
	if !ok || zoneID == "" {
		c.sendOperationResponse(shared.MessageTypeSelectZoneResp, false, "zone_id is required", nil)
		return
	}

	c.mu.Lock()
	if c.view == nil {
		c.mu.Unlock()
		c.sendOperationResponse(shared.MessageTypeSelectZoneResp, false, "no seating loaded yet", nil)
		return
	}
	selected := c.view.SelectZone(zoneID)
	activeID, _ := c.view.ActiveZoneID()
	payload := c.zoneViewPayloadLocked()
	c.mu.Unlock()

	if !selected {
		c.sendOperationResponse(shared.MessageTypeSelectZoneResp, false,
			fmt.Sprintf("unknown zone %s", zoneID),
			map[string]string{"zone_id": zoneID, "active_zone_id": activeID})
		return
	}

	c.sendOperationResponse(shared.MessageTypeSelectZoneResp, true,
		fmt.Sprintf("Zone %s selected", zoneID),
		map[string]string{"zone_id": zoneID, "active_zone_id": activeID})
	c.sendMessage(shared.MessageTypeZoneView, payload)
}

func (c *Client) handleRequestChart(data map[string]any) {
	name, ok := data["name"].(string)
	if !ok || name == "" {
		c.sendError("name is required")
		return
	}
	kind, _ := data["kind"].(string)
	title, _ := data["title"].(string)

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	chart, err := c.hub.source.FetchChart(ctx, name, kind, title)
	if errors.Is(err, ErrNotFound) {
		c.sendError("Unknown chart: " + name)
		return
	}
	if err != nil {
		c.logger.Error("failed to fetch chart", zap.String("chart", name), zap.Error(err))
		c.sendError("Failed to load chart " + name)
		return
	}
	c.sendMessage(shared.MessageTypeChart, chart)
}

// sendZoneView pushes the client's current zone view, loading the hub's
// latest seating first when the client has none.
func (c *Client) sendZoneView() {
	c.mu.Lock()
	if c.view != nil {
		payload := c.zoneViewPayloadLocked()
		c.mu.Unlock()
		c.sendMessage(shared.MessageTypeZoneView, payload)
		return
	}
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	view, err := c.hub.seating(ctx)
	if err != nil {
		c.logger.Error("failed to load seating", zap.Error(err))
		c.sendError("Failed to load seating")
		return
	}
	c.applySeating(view)
}

// zoneViewPayloadLocked must be called with c.mu held and c.view set.
func (c *Client) zoneViewPayloadLocked() ZoneViewPayload {
	zones := c.view.Zones()
	tabs := make([]ZoneTab, 0, len(zones))
	for _, zone := range zones {
		summary := seating.Summarize([]seating.Zone{zone})
		tabs = append(tabs, ZoneTab{
			ID:       zone.ID,
			Rows:     zone.Rows,
			Cols:     zone.Cols,
			Seats:    summary.TotalSeats,
			Occupied: summary.OccupiedSeats,
		})
	}

	activeID, _ := c.view.ActiveZoneID()
	seats := c.view.ActiveSeats()
	if seats == nil {
		seats = []seating.AnnotatedSeat{}
	}
	return ZoneViewPayload{
		Seq:          c.seq,
		Zones:        tabs,
		ActiveZoneID: activeID,
		Seats:        seats,
	}
}

// sendOperationResponse sends a structured response to the client
func (c *Client) sendOperationResponse(msgType string, success bool, message string, data any) {
	c.sendMessage(msgType, OperationResponse{
		Success: success,
		Message: message,
		Data:    data,
	})
}
