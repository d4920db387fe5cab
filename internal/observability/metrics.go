package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "dwlr"

// Metrics holds the Prometheus collectors for the monitor service.
type Metrics struct {
	// Simulator metrics.
	SimulatorTicks        prometheus.Counter
	SimulatorRunning      prometheus.Gauge
	SimulatorSubscribers  prometheus.Gauge
	SnapshotsPublished    prometheus.Counter
	SnapshotPublishErrors prometheus.Counter
	TickDuration          prometheus.Histogram

	// Fleet gauges, refreshed by the summary reporter.
	StationsByLevel *prometheus.GaugeVec // labels: level={low,moderate,high}
	AvgWaterLevel   prometheus.Gauge

	// API metrics.
	APIRequests        *prometheus.CounterVec   // labels: route, method, status
	APIRequestDuration *prometheus.HistogramVec // labels: route

	// Preference store metrics.
	PreferenceErrors *prometheus.CounterVec // labels: op={read,write}

	// Geocoding metrics.
	GeocodeRequests    *prometheus.CounterVec // labels: outcome={success,error,empty}
	GeocodeCache       *prometheus.CounterVec // labels: result={hit,miss}
	GeocodeAPIDuration prometheus.Histogram
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		SimulatorTicks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "simulator_ticks_total",
			Help:      "Total simulated telemetry ticks.",
		}),
		SimulatorRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "simulator_running",
			Help:      "1 when the real-time simulator is enabled, 0 otherwise.",
		}),
		SimulatorSubscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "simulator_subscribers",
			Help:      "Number of active snapshot subscribers.",
		}),
		SnapshotsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshots_published_total",
			Help:      "Snapshots forwarded to the external publisher.",
		}),
		SnapshotPublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_publish_errors_total",
			Help:      "Snapshots the external publisher failed to accept.",
		}),
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "simulator_tick_duration_seconds",
			Help:      "Duration of one simulation step including fan-out.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		StationsByLevel: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stations_by_water_level",
			Help:      "Stations per water level category in the latest snapshot.",
		}, []string{"level"}),
		AvgWaterLevel: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "avg_water_level_meters",
			Help:      "Mean depth to water across all stations in the latest snapshot.",
		}),
		APIRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "API requests by route, method, and status.",
		}, []string{"route", "method", "status"}),
		APIRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "API request duration in seconds.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1.0},
		}, []string{"route"}),
		PreferenceErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "preference_errors_total",
			Help:      "Preference store failures by operation.",
		}, []string{"op"}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_requests_total",
			Help:      "Reverse geocoding requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
		GeocodeAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "geocode_api_duration_seconds",
			Help:      "Mapbox API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.SimulatorTicks,
		m.SimulatorRunning,
		m.SimulatorSubscribers,
		m.SnapshotsPublished,
		m.SnapshotPublishErrors,
		m.TickDuration,
		m.StationsByLevel,
		m.AvgWaterLevel,
		m.APIRequests,
		m.APIRequestDuration,
		m.PreferenceErrors,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeAPIDuration,
	}
}
