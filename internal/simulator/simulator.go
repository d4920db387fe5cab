// Package simulator produces a simulated real-time DWLR telemetry feed: a
// bounded random walk on each station's water level, published as immutable
// snapshots on a fixed interval.
package simulator

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/dwlr-monitor/internal/domain"
	"github.com/couchcryptid/dwlr-monitor/internal/observability"
)

// SnapshotPublisher forwards snapshots to an external sink.
type SnapshotPublisher interface {
	Publish(ctx context.Context, snap domain.Snapshot) error
}

// Config tunes the random walk. Zero Clock and Rand fall back to the real
// clock and a time-seeded generator.
type Config struct {
	Interval time.Duration
	MaxDelta float64
	Clock    clockwork.Clock
	Rand     *rand.Rand
}

// Simulator owns the working copy of the station list and the tick loop.
type Simulator struct {
	interval  time.Duration
	maxDelta  float64
	clock     clockwork.Clock
	rng       *rand.Rand
	publisher SnapshotPublisher
	logger    *slog.Logger
	metrics   *observability.Metrics

	current atomic.Pointer[domain.Snapshot]
	running atomic.Bool

	// lifecycle is held for the whole of Start and Stop, including the wait
	// for the old loop to exit, so at most one loop ever runs.
	lifecycle sync.Mutex
	cancel    context.CancelFunc
	done      chan struct{}

	mu      sync.Mutex // guards subs, nextSub
	subs    map[uint64]chan domain.Snapshot
	nextSub uint64
}

// New creates a stopped simulator seeded with a clone of stations. Pass a nil
// publisher to keep snapshots in-process.
func New(stations []domain.Station, cfg Config, publisher SnapshotPublisher, logger *slog.Logger, metrics *observability.Metrics) *Simulator {
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	rng := cfg.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}

	s := &Simulator{
		interval:  cfg.Interval,
		maxDelta:  cfg.MaxDelta,
		clock:     clock,
		rng:       rng,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		subs:      make(map[uint64]chan domain.Snapshot),
	}
	s.current.Store(&domain.Snapshot{
		Seq:      0,
		TakenAt:  clock.Now(),
		Stations: domain.CloneStations(stations),
	})
	return s
}

// Start launches the tick loop. It returns false if the loop was already running.
func (s *Simulator) Start(ctx context.Context) bool {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	if s.cancel != nil {
		return false
	}

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done

	// Arm the ticker before returning so a caller advancing a fake clock
	// right after Start observes the first tick.
	ticker := s.clock.NewTicker(s.interval)
	s.running.Store(true)
	go s.run(loopCtx, ticker, done)

	s.logger.Info("simulator started", "interval", s.interval, "max_delta", s.maxDelta)
	return true
}

// Stop cancels the tick loop and waits for it to exit. It returns false if
// the loop was not running.
func (s *Simulator) Stop() bool {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	if s.cancel == nil {
		return false
	}
	s.cancel()
	<-s.done
	s.cancel, s.done = nil, nil
	s.running.Store(false)

	s.logger.Info("simulator stopped", "seq", s.Current().Seq)
	return true
}

// Running reports whether the tick loop is enabled.
func (s *Simulator) Running() bool {
	return s.running.Load()
}

// Current returns the latest snapshot.
func (s *Simulator) Current() domain.Snapshot {
	return *s.current.Load()
}

// CheckReadiness returns nil once a snapshot is available.
func (s *Simulator) CheckReadiness(_ context.Context) error {
	if s.current.Load() == nil {
		return errors.New("simulator has no snapshot yet")
	}
	return nil
}

// Subscribe returns a channel that receives every new snapshot, starting with
// the current one. A slow reader only ever sees the latest snapshot; the tick
// loop never blocks on it. Call the returned func to unsubscribe.
func (s *Simulator) Subscribe() (<-chan domain.Snapshot, func()) {
	ch := make(chan domain.Snapshot, 1)
	ch <- s.Current()

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.metrics.SimulatorSubscribers.Set(float64(len(s.subs)))
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
			s.metrics.SimulatorSubscribers.Set(float64(len(s.subs)))
		})
	}
}

func (s *Simulator) run(ctx context.Context, ticker clockwork.Ticker, done chan struct{}) {
	defer close(done)
	defer ticker.Stop()

	s.metrics.SimulatorRunning.Set(1)
	defer s.metrics.SimulatorRunning.Set(0)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			s.tick(ctx)
		}
	}
}

// tick advances the walk by one step and fans the snapshot out.
func (s *Simulator) tick(ctx context.Context) {
	start := time.Now()

	prev := s.current.Load()
	now := s.clock.Now()
	next := &domain.Snapshot{
		Seq:      prev.Seq + 1,
		TakenAt:  now,
		Stations: Step(prev.Stations, s.rng, s.maxDelta, now),
	}
	s.current.Store(next)
	s.metrics.SimulatorTicks.Inc()

	s.broadcast(*next)
	s.publish(ctx, *next)

	s.metrics.TickDuration.Observe(time.Since(start).Seconds())
	s.logger.Debug("simulator tick", "seq", next.Seq, "stations", len(next.Stations))
}

func (s *Simulator) broadcast(snap domain.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ch := range s.subs {
		select {
		case ch <- snap:
			continue
		default:
		}
		// Replace the unread snapshot with the newer one.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

func (s *Simulator) publish(ctx context.Context, snap domain.Snapshot) {
	if s.publisher == nil {
		return
	}

	pubCtx, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	if err := s.publisher.Publish(pubCtx, snap); err != nil {
		if ctx.Err() != nil {
			return
		}
		s.metrics.SnapshotPublishErrors.Inc()
		s.logger.Warn("snapshot publish failed, continuing", "seq", snap.Seq, "error", err)
		return
	}
	s.metrics.SnapshotsPublished.Inc()
}
