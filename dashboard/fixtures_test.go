package dashboard

import (
	"time"

	"office-dashboard/shared"
)

func fixtureSnapshot(seq int64) shared.Snapshot {
	saving := 1.5
	return shared.Snapshot{
		Seq:       seq,
		FetchedAt: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		Arrangement: shared.SeatingArrangement{
			Zones: []shared.SeatingZone{
				{
					ZoneID: "ZoneA", GridRows: 1, GridCols: 2,
					Seats: []shared.Seat{
						{SeatID: "ZoneA-R1C1", Status: shared.SeatOccupied, EmployeeID: "emp001"},
						{SeatID: "ZoneA-R1C2", Status: shared.SeatUnoccupied},
					},
				},
				{
					ZoneID: "ZoneB", GridRows: 1, GridCols: 2,
					Seats: []shared.Seat{
						{SeatID: "ZoneB-R1C1", Status: shared.SeatOccupied, EmployeeID: "emp002"},
						// Stale status string; no employee means the seat is free.
						{SeatID: "ZoneB-R1C2", Status: shared.SeatOccupied},
					},
				},
			},
		},
		Suggestions: shared.SeatingSuggestion{
			Message:                  "Consolidate ZoneB into ZoneA",
			SuggestedMoves:           []shared.SuggestedMove{{EmployeeID: "emp002", SeatID: "ZoneA-R1C2", SavingsKWh: 1.5}},
			EstimatedEnergySavingKWh: &saving,
			VacatedZonesLightsOff:    []string{"ZoneB"},
		},
		Laptops: []shared.LaptopUsage{
			{EmployeeID: "emp001", HoursOn: 6, Mode: shared.LaptopModeDark},
			{EmployeeID: "emp002", HoursOn: 8, Mode: shared.LaptopModeLight},
			{EmployeeID: "emp003", HoursOn: 4, Mode: shared.LaptopModeDark},
		},
		Lighting: []shared.LightingZone{
			{ZoneID: "ZoneA", Status: shared.LightOn},
			{ZoneID: "ZoneB", Status: shared.LightOff},
		},
		HVAC: []shared.HVACZone{
			{ZoneID: "ZoneA", Status: shared.HVACOn},
			{ZoneID: "ZoneB", Status: shared.HVACEco},
			{ZoneID: "ZoneC", Status: shared.HVACOff},
		},
	}
}
