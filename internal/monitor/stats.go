package monitor

import (
	"github.com/couchcryptid/dwlr-monitor/internal/domain"
)

// LevelStats summarises water level readings. Fields are nil when there is
// nothing to aggregate.
type LevelStats struct {
	Avg *float64 `json:"avg"`
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

// Summary is the aggregate view over a filtered station list.
type Summary struct {
	Count               int                         `json:"count"`
	WaterLevel          LevelStats                  `json:"water_level"`
	AvgRainfall         *float64                    `json:"avg_rainfall"`
	AvgDepth            *float64                    `json:"avg_depth"`
	QualityHistogram    map[domain.QualityGrade]int `json:"quality_histogram"`
	WaterLevelHistogram map[domain.Level]int        `json:"water_level_histogram"`
	AquiferHistogram    map[domain.AquiferType]int  `json:"aquifer_histogram"`
	// AvailabilityHistogram grades each station's groundwater availability
	// rating on the quality scale.
	AvailabilityHistogram map[domain.QualityGrade]int `json:"availability_histogram"`
}

// Summarize aggregates stations. An empty input yields Count 0, nil averages
// and zero-filled histograms rather than NaN.
func Summarize(stations []domain.Station) Summary {
	sum := Summary{
		Count:               len(stations),
		QualityHistogram:    make(map[domain.QualityGrade]int, len(domain.QualityGrades)),
		WaterLevelHistogram: make(map[domain.Level]int, len(domain.Levels)),
		AquiferHistogram:    make(map[domain.AquiferType]int),

		AvailabilityHistogram: make(map[domain.QualityGrade]int, len(domain.QualityGrades)),
	}
	for _, g := range domain.QualityGrades {
		sum.QualityHistogram[g] = 0
		sum.AvailabilityHistogram[g] = 0
	}
	for _, l := range domain.Levels {
		sum.WaterLevelHistogram[l] = 0
	}

	if len(stations) == 0 {
		return sum
	}

	var levelTotal, rainTotal, depthTotal float64
	minLevel := stations[0].WaterLevel
	maxLevel := stations[0].WaterLevel

	for _, s := range stations {
		levelTotal += s.WaterLevel
		rainTotal += s.Rainfall
		depthTotal += s.Depth
		minLevel = min(minLevel, s.WaterLevel)
		maxLevel = max(maxLevel, s.WaterLevel)

		sum.QualityHistogram[domain.QualityCategory(s.QualityIndex)]++
		sum.WaterLevelHistogram[domain.WaterLevelCategory(s.WaterLevel)]++
		sum.AquiferHistogram[s.AquiferType]++
		sum.AvailabilityHistogram[domain.AvailabilityCategory(s.GWAvailability)]++
	}

	n := float64(len(stations))
	sum.WaterLevel = LevelStats{
		Avg: ptr(levelTotal / n),
		Min: ptr(minLevel),
		Max: ptr(maxLevel),
	}
	sum.AvgRainfall = ptr(rainTotal / n)
	sum.AvgDepth = ptr(depthTotal / n)
	return sum
}

func ptr(v float64) *float64 { return &v }
