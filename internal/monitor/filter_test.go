package monitor_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/dwlr-monitor/internal/dataset"
	"github.com/couchcryptid/dwlr-monitor/internal/domain"
	"github.com/couchcryptid/dwlr-monitor/internal/monitor"
)

func sampleStations() []domain.Station {
	return []domain.Station{
		{ID: "A", Name: "Alpha Well", WaterLevel: 1.5, Rainfall: 30, QualityIndex: 85, Depth: 20, AquiferType: domain.AquiferAlluvial, GWAvailability: domain.AvailabilityExcellent},
		{ID: "B", Name: "Bravo Well", WaterLevel: 3.0, Rainfall: 100, QualityIndex: 65, Depth: 40, AquiferType: domain.AquiferBasaltic, GWAvailability: domain.AvailabilityGood},
		{ID: "C", Name: "Charlie Well", WaterLevel: 6.0, Rainfall: 200, QualityIndex: 30, Depth: 60, AquiferType: domain.AquiferBasaltic},
	}
}

func ids(stations []domain.Station) []string {
	out := make([]string, len(stations))
	for i, s := range stations {
		out[i] = s.ID
	}
	return out
}

func TestApply_IdentityReturnsCopy(t *testing.T) {
	in := sampleStations()
	out := monitor.Apply(in, monitor.Filter{})
	require.Len(t, out, len(in))
	out[1].Name = "changed"
	assert.Equal(t, "Bravo Well", in[1].Name)

	got := monitor.Apply(nil, monitor.Filter{})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestApply_ByWaterLevel(t *testing.T) {
	got := monitor.Apply(sampleStations(), monitor.Filter{WaterLevel: domain.LevelModerate})
	assert.Equal(t, []string{"B"}, ids(got))
}

func TestApply_Identity(t *testing.T) {
	f, err := monitor.ParseFilter("all", "all", "all", "")
	require.NoError(t, err)
	assert.True(t, f.IsIdentity())

	in := sampleStations()
	if diff := cmp.Diff(in, monitor.Apply(in, f)); diff != "" {
		t.Fatalf("identity filter changed the list (-want +got):\n%s", diff)
	}
}

func TestApply_Idempotent(t *testing.T) {
	stations, err := dataset.Default()
	require.NoError(t, err)

	filters := []monitor.Filter{
		{WaterLevel: domain.LevelLow},
		{Rainfall: domain.LevelHigh, Quality: domain.GradeGood},
		{Search: "maharashtra"},
		{Search: "MH-", WaterLevel: domain.LevelHigh},
		{},
	}

	for _, f := range filters {
		once := monitor.Apply(stations, f)
		twice := monitor.Apply(once, f)
		assert.Equal(t, once, twice, "filter %+v", f)
	}
}

func TestApply_OrderIndependent(t *testing.T) {
	stations, err := dataset.Default()
	require.NoError(t, err)

	combined := monitor.Apply(stations, monitor.Filter{WaterLevel: domain.LevelModerate, Rainfall: domain.LevelHigh})
	levelFirst := monitor.Apply(monitor.Apply(stations, monitor.Filter{WaterLevel: domain.LevelModerate}), monitor.Filter{Rainfall: domain.LevelHigh})
	rainFirst := monitor.Apply(monitor.Apply(stations, monitor.Filter{Rainfall: domain.LevelHigh}), monitor.Filter{WaterLevel: domain.LevelModerate})

	assert.Equal(t, combined, levelFirst)
	assert.Equal(t, combined, rainFirst)
}

func TestApply_Search(t *testing.T) {
	stations := []domain.Station{
		{ID: "S1", Name: "Pune Central Station"},
		{ID: "S2", Name: "Mumbai Suburban"},
	}

	t.Run("case-insensitive name match", func(t *testing.T) {
		got := monitor.Apply(stations, monitor.Filter{Search: "central"})
		assert.Equal(t, []string{"S1"}, ids(got))
	})

	t.Run("matches id", func(t *testing.T) {
		got := monitor.Apply(stations, monitor.Filter{Search: "s2"})
		assert.Equal(t, []string{"S2"}, ids(got))
	})

	t.Run("no match", func(t *testing.T) {
		got := monitor.Apply(stations, monitor.Filter{Search: "chennai"})
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestApply_CombinesDimensions(t *testing.T) {
	got := monitor.Apply(sampleStations(), monitor.Filter{Rainfall: domain.LevelHigh, Quality: domain.GradePoor, Search: "charlie"})
	assert.Equal(t, []string{"C"}, ids(got))

	got = monitor.Apply(sampleStations(), monitor.Filter{Rainfall: domain.LevelHigh, Quality: domain.GradeExcellent})
	assert.Empty(t, got)
}

func TestApply_NilInput(t *testing.T) {
	got := monitor.Apply(nil, monitor.Filter{WaterLevel: domain.LevelLow})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestApply_DoesNotAliasInput(t *testing.T) {
	in := sampleStations()
	out := monitor.Apply(in, monitor.Filter{})
	out[0].WaterLevel = 99
	assert.Equal(t, 1.5, in[0].WaterLevel)
}

func TestParseFilter(t *testing.T) {
	f, err := monitor.ParseFilter("low", "", "excellent", "  pune ")
	require.NoError(t, err)
	assert.Equal(t, domain.LevelLow, f.WaterLevel)
	assert.Empty(t, f.Rainfall)
	assert.Equal(t, domain.GradeExcellent, f.Quality)
	assert.Equal(t, "pune", f.Search)

	_, err = monitor.ParseFilter("deep", "", "", "")
	require.ErrorIs(t, err, domain.ErrUnknownCategory)

	_, err = monitor.ParseFilter("", "heavy", "", "")
	require.ErrorIs(t, err, domain.ErrUnknownCategory)

	_, err = monitor.ParseFilter("", "", "great", "")
	require.ErrorIs(t, err, domain.ErrUnknownCategory)
}
