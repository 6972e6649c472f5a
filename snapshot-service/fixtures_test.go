package main

import (
	"context"
	"errors"
	"sync"
	"time"

	"office-dashboard/shared"
)

var errBackendDown = errors.New("backend down")

func fixtureArrangement() shared.SeatingArrangement {
	return shared.SeatingArrangement{
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
					{SeatID: "ZoneB-R1C2", Status: shared.SeatUnoccupied},
				},
			},
		},
		TotalSeats: 4, OccupiedSeats: 2, UnoccupiedSeats: 2,
	}
}

func fixtureSuggestions() shared.SeatingSuggestion {
	saving := 1.5
	return shared.SeatingSuggestion{
		Message:                  "Consolidate ZoneB into ZoneA",
		SuggestedMoves:           []shared.SuggestedMove{{EmployeeID: "emp002", SeatID: "ZoneA-R1C2", SavingsKWh: 1.5}},
		EstimatedEnergySavingKWh: &saving,
		VacatedZonesLightsOff:    []string{"ZoneB"},
	}
}

func fixtureSnapshot(seq int64) shared.Snapshot {
	return shared.Snapshot{
		Seq:         seq,
		FetchedAt:   time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		Arrangement: fixtureArrangement(),
		Suggestions: fixtureSuggestions(),
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

// fakeBackend serves the fixture snapshot. When gate is set, the seating
// arrangement call blocks until gate is closed.
type fakeBackend struct {
	gate    chan struct{}
	failing bool
}

func (b *fakeBackend) SeatingArrangement(ctx context.Context) (shared.SeatingArrangement, error) {
	if b.gate != nil {
		select {
		case <-b.gate:
		case <-ctx.Done():
			return shared.SeatingArrangement{}, ctx.Err()
		}
	}
	return fixtureArrangement(), nil
}

func (b *fakeBackend) SeatingSuggestions(context.Context) (shared.SeatingSuggestion, error) {
	return fixtureSuggestions(), nil
}

func (b *fakeBackend) LaptopUsage(context.Context) ([]shared.LaptopUsage, error) {
	return fixtureSnapshot(0).Laptops, nil
}

func (b *fakeBackend) Lighting(context.Context) ([]shared.LightingZone, error) {
	return fixtureSnapshot(0).Lighting, nil
}

func (b *fakeBackend) HVAC(context.Context) ([]shared.HVACZone, error) {
	if b.failing {
		return nil, errBackendDown
	}
	return fixtureSnapshot(0).HVAC, nil
}

// memoryStore is an in-process Store with the same compare-and-set rule as
// RedisStore.
type memoryStore struct {
	mu    sync.Mutex
	seq   int64
	saved *shared.Snapshot
	saves int
}

func (s *memoryStore) NextSeq(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq, nil
}

func (s *memoryStore) Save(_ context.Context, snap shared.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saved != nil && snap.Seq <= s.saved.Seq {
		return ErrStaleSnapshot
	}
	s.saved = &snap
	s.saves++
	return nil
}

func (s *memoryStore) Load(context.Context) (shared.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saved == nil {
		return shared.Snapshot{}, ErrNoSnapshot
	}
	return *s.saved, nil
}

func (s *memoryStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// recordingPublisher fails the first failures calls, then records payloads.
type recordingPublisher struct {
	mu       sync.Mutex
	failures int
	calls    int
	subjects []string
	payloads [][]byte
}

func (p *recordingPublisher) Publish(subject string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.calls <= p.failures {
		return errors.New("nats: connection closed")
	}
	p.subjects = append(p.subjects, subject)
	p.payloads = append(p.payloads, data)
	return nil
}

func (p *recordingPublisher) published() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.payloads)
}
