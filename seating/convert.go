package seating

import "office-dashboard/shared"

// FromArrangement converts the backend seating snapshot into zones. A seat is
// occupied exactly when the backend names an employee on it, whatever status
// string it reports.
func FromArrangement(arrangement shared.SeatingArrangement) []Zone {
	zones := make([]Zone, 0, len(arrangement.Zones))
	for _, wz := range arrangement.Zones {
		zone := Zone{
			ID:    wz.ZoneID,
			Rows:  wz.GridRows,
			Cols:  wz.GridCols,
			Seats: make([]Seat, 0, len(wz.Seats)),
		}
		for _, ws := range wz.Seats {
			seat := Seat{ID: ws.SeatID, ZoneID: wz.ZoneID, Status: StatusUnoccupied}
			if ws.EmployeeID != "" {
				seat.Status = StatusOccupied
				seat.OccupantID = ws.EmployeeID
			}
			zone.Seats = append(zone.Seats, seat)
		}
		zones = append(zones, zone)
	}
	return zones
}

// MovesFrom decodes the positional move triples into named moves, keeping order.
func MovesFrom(suggestion shared.SeatingSuggestion) []Move {
	moves := make([]Move, 0, len(suggestion.SuggestedMoves))
	for _, m := range suggestion.SuggestedMoves {
		moves = append(moves, Move{
			EmployeeID: m.EmployeeID,
			ToSeatID:   m.SeatID,
			SavingsKWh: m.SavingsKWh,
		})
	}
	return moves
}

// Summarize counts seats across zones.
func Summarize(zones []Zone) shared.OccupancySummary {
	var summary shared.OccupancySummary
	for _, zone := range zones {
		for _, seat := range zone.Seats {
			summary.TotalSeats++
			if seat.Occupied() {
				summary.OccupiedSeats++
			}
		}
	}
	summary.UnoccupiedSeats = summary.TotalSeats - summary.OccupiedSeats
	return summary
}
