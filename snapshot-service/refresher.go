package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"office-dashboard/dashboard"
	"office-dashboard/logging"
	"office-dashboard/shared"
)

// Publisher is the part of *nats.Conn the refresher needs.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Refresher pulls a full snapshot from the backend on a fixed interval and
// applies it only when no newer snapshot has landed in the meantime.
type Refresher struct {
	backend      Backend
	store        Store
	publisher    Publisher
	logger       *zap.Logger
	interval     time.Duration
	fetchTimeout time.Duration
	retryWait    time.Duration
	now          func() time.Time
}

// NewRefresher wires a refresher. publisher may be nil, in which case no
// events are sent.
func NewRefresher(backend Backend, store Store, publisher Publisher, logger *zap.Logger, interval, fetchTimeout time.Duration) *Refresher {
	return &Refresher{
		backend:      backend,
		store:        store,
		publisher:    publisher,
		logger:       logging.OrNop(logger),
		interval:     interval,
		fetchTimeout: fetchTimeout,
		retryWait:    shared.PublishRetryWait,
		now:          time.Now,
	}
}

// Run refreshes once immediately and then every interval until ctx is done.
func (r *Refresher) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("refresher started", zap.Duration("interval", r.interval))
	r.refreshAndLog(ctx)
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("refresher stopped")
			return
		case <-ticker.C:
			r.refreshAndLog(ctx)
		}
	}
}

func (r *Refresher) refreshAndLog(ctx context.Context) {
	if _, err := r.Refresh(ctx); err != nil {
		switch {
		case errors.Is(err, ErrStaleSnapshot):
			r.logger.Info("discarded stale snapshot", zap.Error(err))
		case ctx.Err() != nil:
		default:
			r.logger.Error("snapshot refresh failed", zap.Error(err))
		}
	}
}

// Refresh reserves a sequence number, fetches every backend resource and
// stores the result. A result overtaken by a later refresh is dropped with
// ErrStaleSnapshot and nothing is published.
func (r *Refresher) Refresh(ctx context.Context) (shared.Snapshot, error) {
	seq, err := r.store.NextSeq(ctx)
	if err != nil {
		return shared.Snapshot{}, err
	}

	snap, err := r.fetch(ctx, seq)
	if err != nil {
		return shared.Snapshot{}, err
	}

	if err := r.store.Save(ctx, snap); err != nil {
		return shared.Snapshot{}, err
	}

	view := dashboard.BuildSeatingView(snap)
	logging.Diagnostics(r.logger, "seating", view.Diagnostics)
	r.logger.Info("snapshot applied",
		zap.Int64("seq", snap.Seq),
		zap.Int("zones", len(view.Zones)),
		zap.Int("moves", len(view.Moves)),
	)

	r.publish(ctx, snap)
	return snap, nil
}

func (r *Refresher) fetch(ctx context.Context, seq int64) (shared.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, r.fetchTimeout)
	defer cancel()

	snap := shared.Snapshot{Seq: seq}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.Arrangement, err = r.backend.SeatingArrangement(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Suggestions, err = r.backend.SeatingSuggestions(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Laptops, err = r.backend.LaptopUsage(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Lighting, err = r.backend.Lighting(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.HVAC, err = r.backend.HVAC(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return shared.Snapshot{}, fmt.Errorf("fetch snapshot %d: %w", seq, err)
	}

	snap.FetchedAt = r.now().UTC()
	return snap, nil
}

// publish announces snap, retrying a few times. Failure is logged only; the
// snapshot is already stored and edges will catch up on the next event.
func (r *Refresher) publish(ctx context.Context, snap shared.Snapshot) {
	if r.publisher == nil {
		return
	}

	event := shared.SnapshotEvent{
		Type:      shared.SnapshotEventUpdated,
		Seq:       snap.Seq,
		FetchedAt: snap.FetchedAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		r.logger.Error("failed to marshal snapshot event", zap.Error(err))
		return
	}

	for attempt := 1; attempt <= shared.PublishMaxRetries; attempt++ {
		err = r.publisher.Publish(shared.NATSTopicSnapshotUpdated, payload)
		if err == nil {
			r.logger.Debug("published snapshot event", zap.Int64("seq", snap.Seq))
			return
		}
		if attempt == shared.PublishMaxRetries {
			break
		}
		r.logger.Warn("retrying snapshot event publish",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", shared.PublishMaxRetries),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return
		case <-time.After(r.retryWait):
		}
	}
	r.logger.Error("snapshot stored but event publish failed",
		zap.Int64("seq", snap.Seq),
		zap.Int("attempts", shared.PublishMaxRetries),
		zap.Error(err),
	)
}
