// Package dashboard derives the render-ready views served to browsers from a
// stored backend snapshot. Every view is recomputed from the snapshot; nothing
// here is cached.
package dashboard

import (
	"slices"
	"time"

	"office-dashboard/charttheme"
	"office-dashboard/energy"
	"office-dashboard/seating"
	"office-dashboard/shared"
)

// SeatingView is everything the seating grid needs, derived from one snapshot.
type SeatingView struct {
	Seq                      int64                   `json:"seq"`
	FetchedAt                time.Time               `json:"fetched_at"`
	Zones                    []seating.Zone          `json:"zones"`
	Annotations              seating.Annotations     `json:"annotations"`
	Summary                  shared.OccupancySummary `json:"summary"`
	Message                  string                  `json:"message"`
	EstimatedEnergySavingKWh *float64                `json:"estimated_energy_saving_kwh,omitempty"`
	VacatedZonesLightsOff    []string                `json:"vacated_zones_lights_off,omitempty"`
	VacatedZonesACOff        []string                `json:"vacated_zones_ac_off,omitempty"`
	Moves                    []seating.Move          `json:"moves"`
	Diagnostics              []shared.Diagnostic     `json:"diagnostics"`
}

// ZoneDetail is one zone's seats with their annotations.
type ZoneDetail struct {
	Seq    int64                   `json:"seq"`
	ZoneID string                  `json:"zone_id"`
	Seats  []seating.AnnotatedSeat `json:"seats"`
}

// SnapshotSummary is the headline data shown above the charts.
type SnapshotSummary struct {
	Seq                 int64                   `json:"seq"`
	FetchedAt           time.Time               `json:"fetched_at"`
	Occupancy           shared.OccupancySummary `json:"occupancy"`
	Message             string                  `json:"message"`
	AverageLaptopHours  float64                 `json:"average_laptop_hours_on"`
	ActiveHVACZones     int                     `json:"active_hvac_zones"`
	LightingZones       int                     `json:"lighting_zones"`
	SuggestedMovesCount int                     `json:"suggested_moves"`
}

// ChartView is a named, render-ready chart.
type ChartView struct {
	Name string `json:"name"`
	charttheme.Chart
}

type chartDef struct {
	kind      charttheme.Kind
	title     string
	dataset   func(shared.Snapshot) charttheme.Dataset
	overrides charttheme.Options
}

var chartNames = []string{"laptop-modes", "lighting-status", "hvac-status"}

// ChartNames lists the available charts in display order.
func ChartNames() []string {
	return slices.Clone(chartNames)
}

// HasChart reports whether name is a registered chart.
func HasChart(name string) bool {
	_, ok := charts[name]
	return ok
}

var charts = map[string]chartDef{
	"laptop-modes": {
		kind:    charttheme.KindPie,
		title:   "Laptop Mode Distribution",
		dataset: func(s shared.Snapshot) charttheme.Dataset { return energy.LaptopModes(s.Laptops) },
	},
	"lighting-status": {
		kind:    charttheme.KindDoughnut,
		title:   "Lighting Status Overview",
		dataset: func(s shared.Snapshot) charttheme.Dataset { return energy.LightingStatus(s.Lighting) },
	},
	"hvac-status": {
		kind:    charttheme.KindBar,
		title:   "HVAC System Status Overview",
		dataset: func(s shared.Snapshot) charttheme.Dataset { return energy.HVACStatus(s.HVAC) },
		overrides: charttheme.Options{
			"indexAxis": "y",
			"plugins": map[string]any{
				"legend": map[string]any{"display": false},
			},
			"scales": map[string]any{
				"x": map[string]any{
					"title": map[string]any{"display": true, "text": "Number of Zones"},
				},
				"y": map[string]any{
					"title": map[string]any{"display": true, "text": "Status"},
				},
			},
		},
	},
}

func BuildSeatingView(snap shared.Snapshot) SeatingView {
	zones := seating.FromArrangement(snap.Arrangement)
	moves := seating.MovesFrom(snap.Suggestions)
	result := seating.Reconcile(zones, moves)

	diags := result.Diagnostics
	if diags == nil {
		diags = []shared.Diagnostic{}
	}
	return SeatingView{
		Seq:                      snap.Seq,
		FetchedAt:                snap.FetchedAt,
		Zones:                    zones,
		Annotations:              result.Annotations,
		Summary:                  seating.Summarize(zones),
		Message:                  snap.Suggestions.Message,
		EstimatedEnergySavingKWh: snap.Suggestions.EstimatedEnergySavingKWh,
		VacatedZonesLightsOff:    snap.Suggestions.VacatedZonesLightsOff,
		VacatedZonesACOff:        snap.Suggestions.VacatedZonesACOff,
		Moves:                    moves,
		Diagnostics:              diags,
	}
}

// BuildZoneDetail reports false when zoneID is not in the snapshot.
func BuildZoneDetail(snap shared.Snapshot, zoneID string) (ZoneDetail, bool) {
	view := BuildSeatingView(snap)
	zv := seating.NewZoneView(view.Zones, view.Annotations)
	if !zv.SelectZone(zoneID) {
		return ZoneDetail{}, false
	}
	return ZoneDetail{Seq: snap.Seq, ZoneID: zoneID, Seats: zv.ActiveSeats()}, true
}

func BuildSnapshotSummary(snap shared.Snapshot) SnapshotSummary {
	return SnapshotSummary{
		Seq:                 snap.Seq,
		FetchedAt:           snap.FetchedAt,
		Occupancy:           seating.Summarize(seating.FromArrangement(snap.Arrangement)),
		Message:             snap.Suggestions.Message,
		AverageLaptopHours:  energy.AverageHoursOn(snap.Laptops),
		ActiveHVACZones:     energy.ActiveHVACZones(snap.HVAC),
		LightingZones:       len(snap.Lighting),
		SuggestedMovesCount: len(snap.Suggestions.SuggestedMoves),
	}
}

// BuildChart renders the named chart. An empty kind or title keeps the
// chart's default; an unsupported kind falls back to bar with a diagnostic.
func BuildChart(snap shared.Snapshot, name, kind, title string) (ChartView, bool) {
	def, ok := charts[name]
	if !ok {
		return ChartView{}, false
	}

	k := def.kind
	if kind != "" {
		k, _ = charttheme.ParseKind(kind)
	}
	if title == "" {
		title = def.title
	}

	chart := charttheme.Build(def.dataset(snap), k, title, def.overrides, nil)
	return ChartView{Name: name, Chart: chart}, true
}
