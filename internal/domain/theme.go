package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidTheme is returned for a theme preference outside light/dark/system.
var ErrInvalidTheme = errors.New("invalid theme preference")

// ThemePreference is the user's stored appearance choice.
type ThemePreference string

const (
	ThemeLight  ThemePreference = "light"
	ThemeDark   ThemePreference = "dark"
	ThemeSystem ThemePreference = "system"
)

// DefaultTheme is used when nothing is stored or the stored value is unreadable.
const DefaultTheme = ThemeSystem

// ParseThemePreference accepts "light", "dark" or "system".
func ParseThemePreference(s string) (ThemePreference, error) {
	switch ThemePreference(s) {
	case ThemeLight, ThemeDark, ThemeSystem:
		return ThemePreference(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTheme, s)
	}
}

// Scheme is the concrete colour scheme a preference resolves to.
type Scheme int

const (
	SchemeLight Scheme = iota
	SchemeDark
)

func (s Scheme) String() string {
	if s == SchemeDark {
		return "dark"
	}
	return "light"
}

// ParseScheme parses "light" or "dark". Anything else is light.
func ParseScheme(s string) Scheme {
	if s == "dark" {
		return SchemeDark
	}
	return SchemeLight
}

// Flip returns the opposite scheme.
func (s Scheme) Flip() Scheme {
	if s == SchemeDark {
		return SchemeLight
	}
	return SchemeDark
}

// Resolve picks the scheme for a preference; system defers to the device scheme.
func Resolve(pref ThemePreference, system Scheme) Scheme {
	switch pref {
	case ThemeLight:
		return SchemeLight
	case ThemeDark:
		return SchemeDark
	default:
		return system
	}
}

// Palette is the set of colours a client renders with. Values are hex RGB.
type Palette struct {
	Background    string                  `json:"background"`
	Surface       string                  `json:"surface"`
	Text          string                  `json:"text"`
	TextSecondary string                  `json:"text_secondary"`
	Accent        string                  `json:"accent"`
	Border        string                  `json:"border"`
	Levels        map[Level]string        `json:"levels"`
	Grades        map[QualityGrade]string `json:"grades"`
}

var palettes = [...]Palette{
	SchemeLight: {
		Background:    "#F5F7FA",
		Surface:       "#FFFFFF",
		Text:          "#1A202C",
		TextSecondary: "#4A5568",
		Accent:        "#2B6CB0",
		Border:        "#E2E8F0",
		Levels: map[Level]string{
			LevelLow:      "#38A169",
			LevelModerate: "#D69E2E",
			LevelHigh:     "#E53E3E",
		},
		Grades: map[QualityGrade]string{
			GradeExcellent: "#2F855A",
			GradeGood:      "#3182CE",
			GradeModerate:  "#DD6B20",
			GradePoor:      "#C53030",
		},
	},
	SchemeDark: {
		Background:    "#0F1419",
		Surface:       "#1A202C",
		Text:          "#F7FAFC",
		TextSecondary: "#A0AEC0",
		Accent:        "#63B3ED",
		Border:        "#2D3748",
		Levels: map[Level]string{
			LevelLow:      "#68D391",
			LevelModerate: "#F6E05E",
			LevelHigh:     "#FC8181",
		},
		Grades: map[QualityGrade]string{
			GradeExcellent: "#68D391",
			GradeGood:      "#63B3ED",
			GradeModerate:  "#F6AD55",
			GradePoor:      "#FC8181",
		},
	},
}

// PaletteFor returns the palette for a scheme. The maps in the returned value
// are shared and must not be modified.
func PaletteFor(s Scheme) Palette {
	if s == SchemeDark {
		return palettes[SchemeDark]
	}
	return palettes[SchemeLight]
}
