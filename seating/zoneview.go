package seating

// AnnotatedSeat pairs a seat with its current annotation.
type AnnotatedSeat struct {
	Seat
	Annotation Annotation `json:"annotation"`
}

// ZoneView tracks which zone is on screen. It has two states, with and
// without an active zone, and SelectZone is the only transition. A ZoneView
// is not safe for concurrent use.
type ZoneView struct {
	zones       []Zone
	annotations Annotations
	activeID    string
	hasActive   bool
}

// NewZoneView activates the first zone, or none when zones is empty.
func NewZoneView(zones []Zone, annotations Annotations) *ZoneView {
	v := &ZoneView{}
	v.Refresh(zones, annotations)
	return v
}

// Refresh swaps in a new snapshot. The active zone survives when it is still
// present; otherwise the first zone becomes active.
func (v *ZoneView) Refresh(zones []Zone, annotations Annotations) {
	previous, had := v.activeID, v.hasActive
	v.zones = zones
	v.annotations = annotations
	v.activeID, v.hasActive = "", false

	if had && v.SelectZone(previous) {
		return
	}
	if len(zones) > 0 {
		v.activeID, v.hasActive = zones[0].ID, true
	}
}

// SelectZone makes id active when it names a known zone and reports whether
// it did. Unknown ids leave the state unchanged.
func (v *ZoneView) SelectZone(id string) bool {
	for _, zone := range v.zones {
		if zone.ID == id {
			v.activeID, v.hasActive = id, true
			return true
		}
	}
	return false
}

// ActiveZoneID returns the active zone id, if any.
func (v *ZoneView) ActiveZoneID() (string, bool) {
	return v.activeID, v.hasActive
}

// Zones returns the zones of the current snapshot.
func (v *ZoneView) Zones() []Zone {
	return v.zones
}

// ActiveZone returns the active zone, if any.
func (v *ZoneView) ActiveZone() (Zone, bool) {
	if !v.hasActive {
		return Zone{}, false
	}
	for _, zone := range v.zones {
		if zone.ID == v.activeID {
			return zone, true
		}
	}
	return Zone{}, false
}

// ActiveSeats returns the active zone's seats with their annotations. Seats
// without an entry in the annotation map are reported as HighlightNone.
func (v *ZoneView) ActiveSeats() []AnnotatedSeat {
	zone, ok := v.ActiveZone()
	if !ok {
		return nil
	}
	out := make([]AnnotatedSeat, 0, len(zone.Seats))
	for _, seat := range zone.Seats {
		out = append(out, AnnotatedSeat{Seat: seat, Annotation: v.annotations.For(seat.ID)})
	}
	return out
}
