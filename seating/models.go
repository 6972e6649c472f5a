// Package seating derives per-seat display annotations from a seating snapshot
// and the upstream list of suggested moves.
//
// Everything here is a pure function of its inputs. Annotations are never
// patched in place: a new snapshot means a new call to Reconcile.
package seating

// Status is the occupancy of a seat.
type Status string

const (
	// StatusOccupied marks a seat with an occupant.
	StatusOccupied Status = "occupied"
	// StatusUnoccupied marks an empty seat.
	StatusUnoccupied Status = "unoccupied"
)

// Seat is an addressable unit within a zone. OccupantID is set iff the seat
// is occupied.
type Seat struct {
	ID         string `json:"id"`
	ZoneID     string `json:"zone_id"`
	Status     Status `json:"status"`
	OccupantID string `json:"occupant_id,omitempty"`
}

// Occupied reports whether someone currently sits here.
func (s Seat) Occupied() bool {
	return s.Status == StatusOccupied && s.OccupantID != ""
}

// Zone is a named grid of seats.
type Zone struct {
	ID    string `json:"id"`
	Rows  int    `json:"rows"`
	Cols  int    `json:"cols"`
	Seats []Seat `json:"seats"`
}

// Move recommends that EmployeeID relocate to ToSeatID. The origin seat is
// not part of the move; it is whichever seat the employee currently occupies.
type Move struct {
	EmployeeID string  `json:"employee_id"`
	ToSeatID   string  `json:"to_seat_id"`
	SavingsKWh float64 `json:"estimated_savings_kwh"`
}

// HighlightKind tells the grid renderer how to draw a seat.
type HighlightKind string

const (
	// HighlightNone leaves the seat undecorated.
	HighlightNone HighlightKind = "none"
	// HighlightDestination marks a seat someone is suggested to move into.
	HighlightDestination HighlightKind = "destination"
	// HighlightOrigin marks a seat someone is suggested to vacate.
	HighlightOrigin HighlightKind = "origin"
)

// Annotation is derived display metadata for one seat.
type Annotation struct {
	SeatID        string        `json:"seat_id"`
	HighlightKind HighlightKind `json:"highlight_kind"`
	Tooltip       string        `json:"tooltip,omitempty"`
}

// Annotations maps seat id to its annotation.
type Annotations map[string]Annotation

// For returns the annotation for seatID, defaulting to HighlightNone.
func (a Annotations) For(seatID string) Annotation {
	if ann, ok := a[seatID]; ok {
		return ann
	}
	return Annotation{SeatID: seatID, HighlightKind: HighlightNone}
}
