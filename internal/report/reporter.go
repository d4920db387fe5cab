// Package report logs a periodic fleet summary and mirrors it into gauges.
package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"
	"github.com/robfig/cron/v3"

	"github.com/couchcryptid/dwlr-monitor/internal/domain"
	"github.com/couchcryptid/dwlr-monitor/internal/monitor"
	"github.com/couchcryptid/dwlr-monitor/internal/observability"
)

// Source supplies the snapshot to summarise.
type Source interface {
	Snapshot() domain.Snapshot
}

// Reporter runs RunOnce on a cron schedule.
type Reporter struct {
	source  Source
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics
	cron    *cron.Cron
}

// NewReporter parses schedule (standard five-field cron or a descriptor such
// as "@every 1m") and registers the summary job. The scheduler is not started.
func NewReporter(source Source, schedule string, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) (*Reporter, error) {
	r := &Reporter{
		source:  source,
		clock:   clock,
		logger:  logger,
		metrics: metrics,
		cron:    cron.New(),
	}
	if _, err := r.cron.AddFunc(schedule, func() { r.RunOnce() }); err != nil {
		return nil, fmt.Errorf("schedule summary report %q: %w", schedule, err)
	}
	return r, nil
}

// Start runs the scheduler in its own goroutine.
func (r *Reporter) Start() {
	r.cron.Start()
	r.logger.Info("summary reporter scheduled", "entries", len(r.cron.Entries()))
}

// Stop halts the scheduler and waits for a running report to finish or ctx
// to expire.
func (r *Reporter) Stop(ctx context.Context) {
	select {
	case <-r.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// RunOnce summarises the current snapshot, updates the fleet gauges and
// logs the result.
func (r *Reporter) RunOnce() monitor.Summary {
	snap := r.source.Snapshot()
	sum := monitor.Summarize(snap.Stations)

	for _, l := range domain.Levels {
		r.metrics.StationsByLevel.WithLabelValues(string(l)).Set(float64(sum.WaterLevelHistogram[l]))
	}

	attrs := []any{
		"seq", snap.Seq,
		"snapshot_age", r.clock.Since(snap.TakenAt),
		"stations", sum.Count,
		"low", sum.WaterLevelHistogram[domain.LevelLow],
		"moderate", sum.WaterLevelHistogram[domain.LevelModerate],
		"high", sum.WaterLevelHistogram[domain.LevelHigh],
	}
	if sum.WaterLevel.Avg != nil {
		r.metrics.AvgWaterLevel.Set(*sum.WaterLevel.Avg)
		attrs = append(attrs,
			"avg_water_level", *sum.WaterLevel.Avg,
			"min_water_level", *sum.WaterLevel.Min,
			"max_water_level", *sum.WaterLevel.Max,
		)
	}
	r.logger.Info("fleet summary", attrs...)
	return sum
}
