package monitor

import (
	"strings"

	"github.com/couchcryptid/dwlr-monitor/internal/domain"
)

// Filter selects stations. A zero-valued dimension matches everything.
type Filter struct {
	WaterLevel domain.Level
	Rainfall   domain.Level
	Quality    domain.QualityGrade
	Search     string
}

// ParseFilter builds a Filter from raw query values. "all" and "" disable a
// dimension; unknown category names yield domain.ErrUnknownCategory.
func ParseFilter(waterLevel, rainfall, quality, search string) (Filter, error) {
	var f Filter

	wl, _, err := domain.ParseLevel(waterLevel)
	if err != nil {
		return Filter{}, err
	}
	rf, _, err := domain.ParseLevel(rainfall)
	if err != nil {
		return Filter{}, err
	}
	q, _, err := domain.ParseQualityGrade(quality)
	if err != nil {
		return Filter{}, err
	}

	f.WaterLevel = wl
	f.Rainfall = rf
	f.Quality = q
	f.Search = strings.TrimSpace(search)
	return f, nil
}

// IsIdentity reports whether the filter matches every station.
func (f Filter) IsIdentity() bool {
	return f.WaterLevel == "" && f.Rainfall == "" && f.Quality == "" && strings.TrimSpace(f.Search) == ""
}

// Match reports whether a station satisfies every active dimension.
func (f Filter) Match(s domain.Station) bool {
	if f.WaterLevel != "" && domain.WaterLevelCategory(s.WaterLevel) != f.WaterLevel {
		return false
	}
	if f.Rainfall != "" && domain.RainfallCategory(s.Rainfall) != f.Rainfall {
		return false
	}
	if f.Quality != "" && domain.QualityCategory(s.QualityIndex) != f.Quality {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(s.Name), q) && !strings.Contains(strings.ToLower(s.ID), q) {
			return false
		}
	}
	return true
}

// Apply returns the stations matching f in input order. The result never
// aliases the input and is non-nil even for a nil input.
func Apply(stations []domain.Station, f Filter) []domain.Station {
	if f.IsIdentity() {
		return domain.CloneStations(stations)
	}
	out := make([]domain.Station, 0, len(stations))
	for _, s := range stations {
		if f.Match(s) {
			out = append(out, s)
		}
	}
	return out
}
