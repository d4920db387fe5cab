package monitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/couchcryptid/dwlr-monitor/internal/domain"
)

// ErrStationNotFound is returned by View.Station for an unknown id.
var ErrStationNotFound = errors.New("station not found")

// View holds the latest snapshot and answers filtered queries against it.
type View struct {
	current atomic.Pointer[domain.Snapshot]
	logger  *slog.Logger
}

// NewView creates a View seeded with an initial snapshot.
func NewView(initial domain.Snapshot, logger *slog.Logger) *View {
	v := &View{logger: logger}
	v.current.Store(&initial)
	return v
}

// Update replaces the current snapshot unless s is older than it.
func (v *View) Update(s domain.Snapshot) {
	for {
		cur := v.current.Load()
		if cur != nil && s.Seq < cur.Seq {
			return
		}
		if v.current.CompareAndSwap(cur, &s) {
			return
		}
	}
}

// Follow applies snapshots from ch until ctx is done or ch is closed.
func (v *View) Follow(ctx context.Context, ch <-chan domain.Snapshot) {
	for {
		select {
		case <-ctx.Done():
			return
		case s, ok := <-ch:
			if !ok {
				v.logger.Debug("snapshot feed closed")
				return
			}
			v.Update(s)
		}
	}
}

// Snapshot returns the current snapshot.
func (v *View) Snapshot() domain.Snapshot {
	return *v.current.Load()
}

// Stations returns the stations in the current snapshot matching f.
func (v *View) Stations(f Filter) []domain.Station {
	return Apply(v.Snapshot().Stations, f)
}

// Station looks up a single station by id.
func (v *View) Station(id string) (domain.Station, error) {
	for _, s := range v.Snapshot().Stations {
		if s.ID == id {
			return s, nil
		}
	}
	return domain.Station{}, fmt.Errorf("%w: %s", ErrStationNotFound, id)
}

// Summary aggregates the stations matching f.
func (v *View) Summary(f Filter) Summary {
	return Summarize(v.Stations(f))
}
