package dataset

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/couchcryptid/dwlr-monitor/internal/domain"
)

// Generate builds n synthetic stations scattered around India's bounding box.
// The same rng seed always yields the same dataset.
func Generate(n int, rng *rand.Rand) []domain.Station {
	stations := make([]domain.Station, 0, n)
	availability := []domain.Availability{
		domain.AvailabilityPoor,
		domain.AvailabilityModerate,
		domain.AvailabilityGood,
		domain.AvailabilityExcellent,
	}

	for i := range n {
		level := round2(0.5 + rng.Float64()*15)
		qualityIndex := round2(20 + rng.Float64()*78)
		tds := math.Round(150 + rng.Float64()*1800)
		stations = append(stations, domain.Station{
			ID:   fmt.Sprintf("SYN-%04d", i+1),
			Name: fmt.Sprintf("Synthetic Station %d", i+1),
			Coordinates: domain.Coordinates{
				Lat:  round4(8 + rng.Float64()*27),
				Long: round4(68 + rng.Float64()*29),
			},
			WaterLevel:  level,
			Depth:       round2(level + 10 + rng.Float64()*110),
			AquiferType: domain.AquiferTypes[rng.IntN(len(domain.AquiferTypes))],
			Quality: domain.Quality{
				PH:       round2(6.5 + rng.Float64()*2),
				TDS:      tds,
				Salinity: round2(tds / 1000),
			},
			// Availability tracks the quality index band.
			GWAvailability: availability[min(int(qualityIndex)/25, 3)],
			Rainfall:       round2(rng.Float64() * 350),
			QualityIndex:   qualityIndex,
		})
	}
	return stations
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
