package shared

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Seat statuses reported by the energy backend
const (
	SeatOccupied   = "occupied"
	SeatUnoccupied = "unoccupied"
	SeatReserved   = "reserved"
	SeatDisabled   = "disabled"
)

// Device states reported by the energy backend
const (
	LaptopModeLight = "Light Mode"
	LaptopModeDark  = "Dark Mode"

	LightOn  = "ON"
	LightOff = "OFF"

	HVACOn  = "ON"
	HVACEco = "ECO"
	HVACOff = "OFF"
)

// Seat is a single seat as delivered by getSeatingArrangement.
type Seat struct {
	SeatID     string `json:"seat_id"`
	Status     string `json:"status"`
	EmployeeID string `json:"employee_id,omitempty"`
}

// SeatingZone is a named grid of seats.
type SeatingZone struct {
	ZoneID      string `json:"zone_id"`
	Description string `json:"description,omitempty"`
	GridRows    int    `json:"grid_rows"`
	GridCols    int    `json:"grid_cols"`
	Seats       []Seat `json:"seats"`
}

// SeatingArrangement is the full seating snapshot with occupancy totals.
type SeatingArrangement struct {
	Zones           []SeatingZone `json:"zones"`
	TotalSeats      int           `json:"total_seats"`
	OccupiedSeats   int           `json:"occupied_seats"`
	UnoccupiedSeats int           `json:"unoccupied_seats"`
}

// SeatingSuggestion carries the upstream relocation recommendations.
type SeatingSuggestion struct {
	Message                  string          `json:"message"`
	SuggestedMoves           []SuggestedMove `json:"suggested_moves"`
	EstimatedEnergySavingKWh *float64        `json:"estimated_energy_saving_kwh,omitempty"`
	VacatedZonesLightsOff    []string        `json:"vacated_zones_lights_off,omitempty"`
	VacatedZonesACOff        []string        `json:"vacated_zones_ac_off,omitempty"`
}

// SuggestedMove is encoded on the wire as a positional triple
// [employee_id, seat_id, estimated_savings_kwh]. Older backends send
// the pair form without savings.
type SuggestedMove struct {
	EmployeeID string
	SeatID     string
	SavingsKWh float64
}

// MarshalJSON encodes the move as a positional triple.
func (m SuggestedMove) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{m.EmployeeID, m.SeatID, m.SavingsKWh})
}

// UnmarshalJSON decodes the positional pair or triple form.
func (m *SuggestedMove) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("suggested move: %w", err)
	}
	if len(parts) < 2 || len(parts) > 3 {
		return fmt.Errorf("suggested move: expected 2 or 3 elements, got %d", len(parts))
	}

	var decoded SuggestedMove
	if err := json.Unmarshal(parts[0], &decoded.EmployeeID); err != nil {
		return fmt.Errorf("suggested move employee_id: %w", err)
	}
	if err := json.Unmarshal(parts[1], &decoded.SeatID); err != nil {
		return fmt.Errorf("suggested move seat_id: %w", err)
	}
	if len(parts) == 3 && !bytes.Equal(bytes.TrimSpace(parts[2]), []byte("null")) {
		if err := json.Unmarshal(parts[2], &decoded.SavingsKWh); err != nil {
			return fmt.Errorf("suggested move savings: %w", err)
		}
	}

	*m = decoded
	return nil
}

// LaptopUsage is one per-employee laptop record.
type LaptopUsage struct {
	EmployeeID string  `json:"employee_id"`
	HoursOn    float64 `json:"hours_on"`
	Mode       string  `json:"mode"`
}

// LightingZone is the lighting state of one office zone.
type LightingZone struct {
	ZoneID string `json:"zone_id"`
	Status string `json:"status"`
}

// HVACZone is the HVAC state of one office zone.
type HVACZone struct {
	ZoneID             string   `json:"zone_id"`
	Status             string   `json:"status"`
	CurrentTempCelsius *float64 `json:"current_temp_celsius,omitempty"`
	SetPointCelsius    *float64 `json:"set_point_celsius,omitempty"`
}

// Snapshot is one complete, immutable fetch of every backend resource.
// Seq orders snapshots; a snapshot is only applied when its Seq is newer
// than the one already stored.
type Snapshot struct {
	Seq         int64              `json:"seq"`
	FetchedAt   time.Time          `json:"fetched_at"`
	Arrangement SeatingArrangement `json:"arrangement"`
	Suggestions SeatingSuggestion  `json:"suggestions"`
	Laptops     []LaptopUsage      `json:"laptops"`
	Lighting    []LightingZone     `json:"lighting"`
	HVAC        []HVACZone         `json:"hvac"`
}

// SnapshotEvent is published on NATS after a snapshot has been applied.
type SnapshotEvent struct {
	Type      string    `json:"type"`
	Seq       int64     `json:"seq"`
	FetchedAt time.Time `json:"fetched_at"`
}

// SnapshotEventUpdated is the only event type emitted today.
const SnapshotEventUpdated = "snapshot_updated"

// OccupancySummary holds seat totals recomputed from the zones.
type OccupancySummary struct {
	TotalSeats      int `json:"total_seats"`
	OccupiedSeats   int `json:"occupied_seats"`
	UnoccupiedSeats int `json:"unoccupied_seats"`
}

// Message types for WebSocket communication
const (
	MessageTypeWelcome         = "WELCOME"
	MessageTypeSubscribe       = "SUBSCRIBE"
	MessageTypeSubscribeAck    = "SUBSCRIBE_ACK"
	MessageTypeSelectZone      = "SELECT_ZONE"
	MessageTypeSelectZoneResp  = "SELECT_ZONE_RESPONSE"
	MessageTypeRequestChart    = "REQUEST_CHART"
	MessageTypeChart           = "CHART"
	MessageTypeZoneView        = "ZONE_VIEW"
	MessageTypeSnapshotUpdated = "SNAPSHOT_UPDATED"
	MessageTypeError           = "ERROR"
)

// ClientMessage represents a message from the browser to the server
type ClientMessage struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

// ServerMessage represents a message from the server to the browser
type ServerMessage struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// ErrorResponse represents an error message
type ErrorResponse struct {
	Error string `json:"error"`
}
