package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaterLevelCategory(t *testing.T) {
	tests := []struct {
		name     string
		level    float64
		expected Level
	}{
		{"zero", 0, LevelLow},
		{"shallow", 1.5, LevelLow},
		{"just below low boundary", 1.9999, LevelLow},
		{"low boundary", 2, LevelModerate},
		{"mid", 3.0, LevelModerate},
		{"just below high boundary", 4.9999, LevelModerate},
		{"high boundary", 5, LevelHigh},
		{"deep", 42.7, LevelHigh},
		{"NaN falls through", math.NaN(), LevelHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, WaterLevelCategory(tt.level))
		})
	}
}

func TestRainfallCategory(t *testing.T) {
	tests := []struct {
		mm       float64
		expected Level
	}{
		{0, LevelLow},
		{49.9, LevelLow},
		{50, LevelModerate},
		{149.9, LevelModerate},
		{150, LevelHigh},
		{2400, LevelHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, RainfallCategory(tt.mm), "rainfall %v", tt.mm)
	}
}

func TestQualityCategory(t *testing.T) {
	tests := []struct {
		index    float64
		expected QualityGrade
	}{
		{0, GradePoor},
		{39.99, GradePoor},
		{40, GradeModerate},
		{59.99, GradeModerate},
		{60, GradeGood},
		{79.99, GradeGood},
		{80, GradeExcellent},
		{100, GradeExcellent},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, QualityCategory(tt.index), "index %v", tt.index)
	}
}

func TestAvailabilityCategory(t *testing.T) {
	assert.Equal(t, GradeExcellent, AvailabilityCategory(AvailabilityExcellent))
	assert.Equal(t, GradeGood, AvailabilityCategory(AvailabilityGood))
	assert.Equal(t, GradeModerate, AvailabilityCategory(AvailabilityModerate))
	assert.Equal(t, GradePoor, AvailabilityCategory(AvailabilityPoor))
	assert.Equal(t, GradePoor, AvailabilityCategory("Unknown"))
}

func TestParseLevel(t *testing.T) {
	t.Run("all is inactive", func(t *testing.T) {
		_, ok, err := ParseLevel(CategoryAll)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("empty is inactive", func(t *testing.T) {
		_, ok, err := ParseLevel("")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("known level", func(t *testing.T) {
		l, ok, err := ParseLevel("moderate")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, LevelModerate, l)
	})

	t.Run("unknown level", func(t *testing.T) {
		_, _, err := ParseLevel("extreme")
		require.ErrorIs(t, err, ErrUnknownCategory)
		assert.Contains(t, err.Error(), "extreme")
	})
}

func TestParseQualityGrade(t *testing.T) {
	g, ok, err := ParseQualityGrade("good")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, GradeGood, g)

	_, ok, err = ParseQualityGrade(CategoryAll)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = ParseQualityGrade("Good")
	require.ErrorIs(t, err, ErrUnknownCategory)
}

func TestParseAquiferType(t *testing.T) {
	a, err := ParseAquiferType("Basaltic")
	require.NoError(t, err)
	assert.Equal(t, AquiferBasaltic, a)

	_, err = ParseAquiferType("basaltic")
	assert.Error(t, err)
}

func TestParseAvailability(t *testing.T) {
	a, err := ParseAvailability("Moderate")
	require.NoError(t, err)
	assert.Equal(t, AvailabilityModerate, a)

	_, err = ParseAvailability("")
	assert.Error(t, err)
}

func TestCloneStations(t *testing.T) {
	t.Run("nil input", func(t *testing.T) {
		out := CloneStations(nil)
		assert.NotNil(t, out)
		assert.Empty(t, out)
	})

	t.Run("copy is independent", func(t *testing.T) {
		in := []Station{{ID: "A", WaterLevel: 1.5}}
		out := CloneStations(in)
		out[0].WaterLevel = 9
		assert.Equal(t, 1.5, in[0].WaterLevel)
	})
}
