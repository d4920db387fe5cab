package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownCategory is returned when a filter value names no known category.
var ErrUnknownCategory = errors.New("unknown category")

// Level is the three-step label used for water level and rainfall.
type Level string

const (
	LevelLow      Level = "low"
	LevelModerate Level = "moderate"
	LevelHigh     Level = "high"
)

// Levels lists the level labels from lowest to highest.
var Levels = []Level{LevelLow, LevelModerate, LevelHigh}

// QualityGrade is the four-step label used for aquifer quality.
type QualityGrade string

const (
	GradeExcellent QualityGrade = "excellent"
	GradeGood      QualityGrade = "good"
	GradeModerate  QualityGrade = "moderate"
	GradePoor      QualityGrade = "poor"
)

// QualityGrades lists the quality labels from best to worst.
var QualityGrades = []QualityGrade{GradeExcellent, GradeGood, GradeModerate, GradePoor}

// CategoryAll disables filtering on a dimension.
const CategoryAll = "all"

// Water level thresholds, metres below ground.
const (
	waterLevelLowMax      = 2.0
	waterLevelModerateMax = 5.0
)

// Rainfall thresholds, mm.
const (
	rainfallLowMax      = 50.0
	rainfallModerateMax = 150.0
)

// Quality index thresholds, 0-100.
const (
	qualityPoorMax     = 40.0
	qualityModerateMax = 60.0
	qualityGoodMax     = 80.0
)

// WaterLevelCategory maps a water level in metres to low (<2), moderate (<5)
// or high. Boundary values resolve to the upper category.
func WaterLevelCategory(level float64) Level {
	switch {
	case level < waterLevelLowMax:
		return LevelLow
	case level < waterLevelModerateMax:
		return LevelModerate
	default:
		return LevelHigh
	}
}

// RainfallCategory maps rainfall in mm to low (<50), moderate (<150) or high.
func RainfallCategory(mm float64) Level {
	switch {
	case mm < rainfallLowMax:
		return LevelLow
	case mm < rainfallModerateMax:
		return LevelModerate
	default:
		return LevelHigh
	}
}

// QualityCategory maps a 0-100 quality index to poor (<40), moderate (<60),
// good (<80) or excellent.
func QualityCategory(index float64) QualityGrade {
	switch {
	case index < qualityPoorMax:
		return GradePoor
	case index < qualityModerateMax:
		return GradeModerate
	case index < qualityGoodMax:
		return GradeGood
	default:
		return GradeExcellent
	}
}

// AvailabilityCategory maps the station availability rating onto the quality
// grade scale. Unknown ratings grade as poor.
func AvailabilityCategory(a Availability) QualityGrade {
	switch a {
	case AvailabilityExcellent:
		return GradeExcellent
	case AvailabilityGood:
		return GradeGood
	case AvailabilityModerate:
		return GradeModerate
	default:
		return GradePoor
	}
}

// ParseLevel parses a level filter value. Empty and "all" return ok=false.
func ParseLevel(s string) (Level, bool, error) {
	if s == "" || s == CategoryAll {
		return "", false, nil
	}
	for _, l := range Levels {
		if string(l) == s {
			return l, true, nil
		}
	}
	return "", false, fmt.Errorf("%w: level %q", ErrUnknownCategory, s)
}

// ParseQualityGrade parses a quality filter value. Empty and "all" return ok=false.
func ParseQualityGrade(s string) (QualityGrade, bool, error) {
	if s == "" || s == CategoryAll {
		return "", false, nil
	}
	for _, g := range QualityGrades {
		if string(g) == s {
			return g, true, nil
		}
	}
	return "", false, fmt.Errorf("%w: quality %q", ErrUnknownCategory, s)
}
