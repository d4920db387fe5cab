package simulator

import (
	"math/rand/v2"
	"time"

	"github.com/couchcryptid/dwlr-monitor/internal/domain"
)

// Step applies one random-walk move to every station. Each water level moves
// by an independent uniform delta in [-maxDelta, +maxDelta] and is clamped at
// zero. The input is never modified.
func Step(stations []domain.Station, rng *rand.Rand, maxDelta float64, now time.Time) []domain.Station {
	next := make([]domain.Station, len(stations))
	for i, s := range stations {
		delta := (rng.Float64()*2 - 1) * maxDelta
		s.WaterLevel = max(0, s.WaterLevel+delta)
		s.LastUpdated = now
		next[i] = s
	}
	return next
}
