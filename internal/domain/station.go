package domain

import (
	"fmt"
	"time"
)

// AquiferType is the geological formation a station draws from.
type AquiferType string

const (
	AquiferAlluvial    AquiferType = "Alluvial"
	AquiferCrystalline AquiferType = "Crystalline"
	AquiferBasaltic    AquiferType = "Basaltic"
	AquiferSedimentary AquiferType = "Sedimentary"
	AquiferLaterite    AquiferType = "Laterite"
	AquiferCoastal     AquiferType = "Coastal"
)

// AquiferTypes lists every known aquifer type in display order.
var AquiferTypes = []AquiferType{
	AquiferAlluvial,
	AquiferCrystalline,
	AquiferBasaltic,
	AquiferSedimentary,
	AquiferLaterite,
	AquiferCoastal,
}

// ParseAquiferType accepts exact aquifer names only.
func ParseAquiferType(s string) (AquiferType, error) {
	for _, a := range AquiferTypes {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown aquifer type %q", s)
}

// Availability is the qualitative groundwater availability rating of a station.
type Availability string

const (
	AvailabilityExcellent Availability = "Excellent"
	AvailabilityGood      Availability = "Good"
	AvailabilityModerate  Availability = "Moderate"
	AvailabilityPoor      Availability = "Poor"
)

// ParseAvailability accepts exact availability names only.
func ParseAvailability(s string) (Availability, error) {
	switch Availability(s) {
	case AvailabilityExcellent, AvailabilityGood, AvailabilityModerate, AvailabilityPoor:
		return Availability(s), nil
	default:
		return "", fmt.Errorf("unknown groundwater availability %q", s)
	}
}

// Coordinates is a WGS-84 latitude/longitude pair.
type Coordinates struct {
	Lat  float64 `json:"lat" yaml:"lat"`
	Long float64 `json:"long" yaml:"long"`
}

// Quality holds the static water quality parameters measured at a station.
type Quality struct {
	PH       float64 `json:"ph" yaml:"ph"`
	TDS      float64 `json:"tds" yaml:"tds"`           // total dissolved solids, mg/L
	Salinity float64 `json:"salinity" yaml:"salinity"` // ppt
}

// Station is a DWLR monitoring station. Records in the dataset are never
// mutated; the simulator works on clones.
type Station struct {
	ID             string       `json:"id" yaml:"id"`
	Name           string       `json:"name" yaml:"name"`
	State          string       `json:"state,omitempty" yaml:"state"`
	District       string       `json:"district,omitempty" yaml:"district"`
	Coordinates    Coordinates  `json:"coordinates" yaml:"coordinates"`
	WaterLevel     float64      `json:"water_level" yaml:"water_level"` // metres below ground
	Depth          float64      `json:"depth" yaml:"depth"`             // metres
	AquiferType    AquiferType  `json:"aquifer_type" yaml:"aquifer_type"`
	Quality        Quality      `json:"quality" yaml:"quality"`
	GWAvailability Availability `json:"gw_availability" yaml:"gw_availability"`
	Rainfall       float64      `json:"rainfall" yaml:"rainfall"`           // mm
	QualityIndex   float64      `json:"quality_index" yaml:"quality_index"` // 0-100

	PlaceName   string    `json:"place_name,omitempty" yaml:"-"`
	LastUpdated time.Time `json:"last_updated,omitempty" yaml:"-"`
}

// Clone returns a copy of the station. Station holds no reference types, so a
// value copy is already deep.
func (s Station) Clone() Station {
	return s
}

// CloneStations copies a station slice. A nil input yields an empty, non-nil slice.
func CloneStations(stations []Station) []Station {
	out := make([]Station, len(stations))
	for i, s := range stations {
		out[i] = s.Clone()
	}
	return out
}
