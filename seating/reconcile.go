package seating

import (
	"fmt"
	"strconv"

	"office-dashboard/shared"
)

// Result is the output of one reconciliation pass.
type Result struct {
	Annotations Annotations         `json:"annotations"`
	Diagnostics []shared.Diagnostic `json:"diagnostics,omitempty"`
}

// DestinationTooltip is the tooltip of a seat suggested as a new location.
func DestinationTooltip(savingsKWh float64) string {
	return fmt.Sprintf("suggested new seat; saves %s kWh", formatKWh(savingsKWh))
}

// OriginTooltip is the tooltip of a seat its occupant is suggested to leave.
func OriginTooltip(employeeID, toSeatID string) string {
	return fmt.Sprintf("recommended to vacate; %s moving to %s", employeeID, toSeatID)
}

// Reconcile annotates every seat in zones against moves, processed in order.
//
// A move whose destination is unknown, or was already claimed by an earlier
// move, is skipped with a diagnostic. An honoured move marks its destination;
// the employee's current seat, when found, is marked as the origin. A seat
// that is both a destination and an origin keeps the destination highlight
// and carries both tooltips. Seats untouched by any move map to HighlightNone.
func Reconcile(zones []Zone, moves []Move) Result {
	seats, occupants, diags := index(zones)

	annotations := make(Annotations, len(seats))
	for _, zone := range zones {
		for _, seat := range zone.Seats {
			if _, done := annotations[seat.ID]; !done {
				annotations[seat.ID] = Annotation{SeatID: seat.ID, HighlightKind: HighlightNone}
			}
		}
	}

	claimed := make(map[string]string, len(moves))
	vacated := make(map[string]string, len(moves))

	for _, move := range moves {
		if _, ok := seats[move.ToSeatID]; !ok {
			diags = append(diags, shared.Diagnostic{
				Class:      shared.ValidationWarning,
				Message:    fmt.Sprintf("move for %s targets unknown seat %q", move.EmployeeID, move.ToSeatID),
				SeatID:     move.ToSeatID,
				EmployeeID: move.EmployeeID,
			})
			continue
		}
		if first, taken := claimed[move.ToSeatID]; taken {
			diags = append(diags, shared.Diagnostic{
				Class:      shared.ValidationWarning,
				Message:    fmt.Sprintf("seat %s already claimed by %s, ignoring move for %s", move.ToSeatID, first, move.EmployeeID),
				SeatID:     move.ToSeatID,
				EmployeeID: move.EmployeeID,
			})
			continue
		}
		claimed[move.ToSeatID] = move.EmployeeID

		destination := DestinationTooltip(move.SavingsKWh)
		if existing := annotations[move.ToSeatID]; existing.HighlightKind == HighlightOrigin {
			destination = destination + "\n" + existing.Tooltip
		}
		annotations[move.ToSeatID] = Annotation{
			SeatID:        move.ToSeatID,
			HighlightKind: HighlightDestination,
			Tooltip:       destination,
		}

		from, ok := occupants[move.EmployeeID]
		if !ok {
			diags = append(diags, shared.Diagnostic{
				Class:      shared.UnresolvedReference,
				Message:    fmt.Sprintf("employee %q is not seated, origin not marked", move.EmployeeID),
				SeatID:     move.ToSeatID,
				EmployeeID: move.EmployeeID,
			})
			continue
		}
		if previous, marked := vacated[from]; marked {
			diags = append(diags, shared.Diagnostic{
				Class:      shared.ValidationWarning,
				Message:    fmt.Sprintf("seat %s already marked for vacating towards %s", from, previous),
				SeatID:     from,
				EmployeeID: move.EmployeeID,
			})
			continue
		}
		vacated[from] = move.ToSeatID

		origin := OriginTooltip(move.EmployeeID, move.ToSeatID)
		current := annotations[from]
		if current.HighlightKind == HighlightDestination {
			current.Tooltip = current.Tooltip + "\n" + origin
			annotations[from] = current
			continue
		}
		annotations[from] = Annotation{
			SeatID:        from,
			HighlightKind: HighlightOrigin,
			Tooltip:       origin,
		}
	}

	return Result{Annotations: annotations, Diagnostics: diags}
}

// index flattens zones into a seat lookup and an employee -> seat lookup.
// The first occurrence of a duplicated seat id or occupant wins.
func index(zones []Zone) (map[string]Seat, map[string]string, []shared.Diagnostic) {
	var diags []shared.Diagnostic
	seats := make(map[string]Seat)
	occupants := make(map[string]string)

	for _, zone := range zones {
		for _, seat := range zone.Seats {
			if _, dup := seats[seat.ID]; dup {
				diags = append(diags, shared.Diagnostic{
					Class:   shared.ValidationWarning,
					Message: fmt.Sprintf("duplicate seat id %q in zone %s", seat.ID, zone.ID),
					SeatID:  seat.ID,
				})
				continue
			}
			seats[seat.ID] = seat

			if !seat.Occupied() {
				continue
			}
			if other, dup := occupants[seat.OccupantID]; dup {
				diags = append(diags, shared.Diagnostic{
					Class:      shared.ValidationWarning,
					Message:    fmt.Sprintf("employee %s seated twice, keeping %s", seat.OccupantID, other),
					SeatID:     seat.ID,
					EmployeeID: seat.OccupantID,
				})
				continue
			}
			occupants[seat.OccupantID] = seat.ID
		}
	}
	return seats, occupants, diags
}

func formatKWh(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
