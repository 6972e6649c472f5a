package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"office-dashboard/charttheme"
	"office-dashboard/seating"
	"office-dashboard/shared"
)

func TestBuildSeatingViewReportsBadMoves(t *testing.T) {
	t.Parallel()

	snap := fixtureSnapshot(3)
	snap.Suggestions.SuggestedMoves = append(snap.Suggestions.SuggestedMoves,
		shared.SuggestedMove{EmployeeID: "emp001", SeatID: "ZoneQ-R9C9", SavingsKWh: 0.2},
		shared.SuggestedMove{EmployeeID: "emp404", SeatID: "ZoneB-R1C2", SavingsKWh: 0.7},
	)

	view := BuildSeatingView(snap)
	require.Len(t, view.Diagnostics, 2)
	assert.Equal(t, shared.ValidationWarning, view.Diagnostics[0].Class)
	assert.Equal(t, "ZoneQ-R9C9", view.Diagnostics[0].SeatID)
	assert.Equal(t, shared.UnresolvedReference, view.Diagnostics[1].Class)
	assert.Equal(t, "emp404", view.Diagnostics[1].EmployeeID)

	// The unseated employee's destination is still highlighted.
	assert.Equal(t, seating.HighlightDestination, view.Annotations["ZoneB-R1C2"].HighlightKind)
	assert.Equal(t, []string{"ZoneB"}, view.VacatedZonesLightsOff)
}

func TestBuildSeatingViewEmptySnapshot(t *testing.T) {
	t.Parallel()

	view := BuildSeatingView(shared.Snapshot{Seq: 1})
	assert.Empty(t, view.Zones)
	assert.Empty(t, view.Annotations)
	assert.NotNil(t, view.Diagnostics)
	assert.Equal(t, shared.OccupancySummary{}, view.Summary)
}

func TestBuildChartRegistry(t *testing.T) {
	t.Parallel()

	snap := fixtureSnapshot(1)
	for _, name := range chartNames {
		view, ok := BuildChart(snap, name, "", "")
		require.True(t, ok, name)
		assert.Equal(t, charts[name].kind, view.Kind, name)
		assert.Empty(t, view.Diagnostics, name)

		title, found := view.Options.Lookup("plugins", "title", "text")
		require.True(t, found, name)
		assert.Equal(t, charts[name].title, title, name)
	}

	_, ok := BuildChart(snap, "nope", "", "")
	assert.False(t, ok)
}

func TestBuildChartKindOverride(t *testing.T) {
	t.Parallel()

	view, ok := BuildChart(fixtureSnapshot(1), "laptop-modes", " Doughnut ", "")
	require.True(t, ok)
	assert.Equal(t, charttheme.KindDoughnut, view.Kind)
	assert.Equal(t, []float64{1, 2}, view.Data.Series[0].Values)
	assert.Equal(t, charttheme.Colors{charttheme.PaletteColor(0), charttheme.PaletteColor(1)}, view.Data.Series[0].BackgroundColor)
}

func TestBuildZoneDetail(t *testing.T) {
	t.Parallel()

	detail, ok := BuildZoneDetail(fixtureSnapshot(2), "ZoneB")
	require.True(t, ok)
	assert.Equal(t, int64(2), detail.Seq)
	require.Len(t, detail.Seats, 2)
	assert.Equal(t, seating.HighlightOrigin, detail.Seats[0].Annotation.HighlightKind)
	assert.Equal(t, seating.StatusUnoccupied, detail.Seats[1].Status)
	assert.Equal(t, seating.HighlightNone, detail.Seats[1].Annotation.HighlightKind)

	_, ok = BuildZoneDetail(fixtureSnapshot(2), "ZoneZ")
	assert.False(t, ok)
}

func TestBuildSnapshotSummaryRecountsSeats(t *testing.T) {
	t.Parallel()

	snap := fixtureSnapshot(4)
	snap.Arrangement.OccupiedSeats = 99

	summary := BuildSnapshotSummary(snap)
	assert.Equal(t, shared.OccupancySummary{TotalSeats: 4, OccupiedSeats: 2, UnoccupiedSeats: 2}, summary.Occupancy)
	assert.InDelta(t, 6.0, summary.AverageLaptopHours, 1e-9)
	assert.Equal(t, 2, summary.ActiveHVACZones)
	assert.Equal(t, 1, summary.SuggestedMovesCount)
}

func TestChartNamesIsACopy(t *testing.T) {
	t.Parallel()

	names := ChartNames()
	names[0] = "mutated"
	assert.Equal(t, "laptop-modes", ChartNames()[0])
	assert.True(t, HasChart("hvac-status"))
	assert.False(t, HasChart("mutated"))
}
