// Package dataset loads and validates station fixtures. The default dataset
// is embedded in the binary; a YAML file with the same shape can replace it.
package dataset

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/dwlr-monitor/internal/domain"
)

//go:embed stations.yaml
var fixture []byte

var (
	// ErrDuplicateStationID is returned when two records share an id.
	ErrDuplicateStationID = errors.New("duplicate station id")
	// ErrInvalidStation is returned when a record breaks a field invariant.
	ErrInvalidStation = errors.New("invalid station")
)

type document struct {
	Stations []domain.Station `yaml:"stations"`
}

var defaultStations = sync.OnceValues(func() ([]domain.Station, error) {
	return Parse(fixture)
})

// Default returns a fresh copy of the embedded dataset.
func Default() ([]domain.Station, error) {
	stations, err := defaultStations()
	if err != nil {
		return nil, fmt.Errorf("embedded dataset: %w", err)
	}
	return domain.CloneStations(stations), nil
}

// Load returns the dataset at path, or the embedded dataset when path is empty.
func Load(path string) ([]domain.Station, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

// LoadFile reads and validates a YAML dataset file.
func LoadFile(path string) ([]domain.Station, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	stations, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	return stations, nil
}

// Parse decodes YAML and validates every record.
func Parse(data []byte) ([]domain.Station, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	if err := Validate(doc.Stations); err != nil {
		return nil, err
	}
	if doc.Stations == nil {
		doc.Stations = []domain.Station{}
	}
	return doc.Stations, nil
}

// Encode renders stations in the same YAML shape Parse accepts.
func Encode(stations []domain.Station) ([]byte, error) {
	data, err := yaml.Marshal(document{Stations: stations})
	if err != nil {
		return nil, fmt.Errorf("encode dataset: %w", err)
	}
	return data, nil
}

// Validate checks ids are present and unique and that numeric fields are in
// range. All problems are reported together.
func Validate(stations []domain.Station) error {
	var errs []error
	seen := make(map[string]int, len(stations))

	for i, s := range stations {
		if s.ID == "" {
			errs = append(errs, fmt.Errorf("%w: record %d has no id", ErrInvalidStation, i))
			continue
		}
		if prev, ok := seen[s.ID]; ok {
			errs = append(errs, fmt.Errorf("%w: %q at records %d and %d", ErrDuplicateStationID, s.ID, prev, i))
			continue
		}
		seen[s.ID] = i

		if err := validateStation(s); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func validateStation(s domain.Station) error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s: "+format, append([]any{ErrInvalidStation, s.ID}, args...)...))
	}

	if s.Name == "" {
		fail("name is required")
	}
	if !finite(s.WaterLevel) || s.WaterLevel < 0 {
		fail("water_level %v must be a non-negative number", s.WaterLevel)
	}
	if !finite(s.Depth) || s.Depth < 0 {
		fail("depth %v must be a non-negative number", s.Depth)
	}
	if !finite(s.Rainfall) || s.Rainfall < 0 {
		fail("rainfall %v must be a non-negative number", s.Rainfall)
	}
	if !finite(s.QualityIndex) || s.QualityIndex < 0 || s.QualityIndex > 100 {
		fail("quality_index %v must be within 0-100", s.QualityIndex)
	}
	if !finite(s.Coordinates.Lat) || s.Coordinates.Lat < -90 || s.Coordinates.Lat > 90 {
		fail("latitude %v out of range", s.Coordinates.Lat)
	}
	if !finite(s.Coordinates.Long) || s.Coordinates.Long < -180 || s.Coordinates.Long > 180 {
		fail("longitude %v out of range", s.Coordinates.Long)
	}
	if _, err := domain.ParseAquiferType(string(s.AquiferType)); err != nil {
		fail("%v", err)
	}
	if _, err := domain.ParseAvailability(string(s.GWAvailability)); err != nil {
		fail("%v", err)
	}

	return errors.Join(errs...)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
