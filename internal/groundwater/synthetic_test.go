package groundwater

import (
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

func TestSoilColor_CoversEveryType(t *testing.T) {
	for _, st := range SoilTypes {
		color := SoilColor(st)
		assert.Regexp(t, hexColor, color, "soil type %s", st)
	}
}

func TestSoilColor_UnknownTypeFallsBack(t *testing.T) {
	assert.Equal(t, DefaultSoilColor, SoilColor(SoilType("Peat")))
	assert.Equal(t, DefaultSoilColor, SoilColor(SoilType("")))
}

func TestSynthesize_Deterministic(t *testing.T) {
	SetClock(clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)))
	defer SetClock(nil)

	c := Coordinate{Lat: 28.6139, Lon: 77.2090}

	a := Synthesize(c)
	b := Synthesize(c)

	assert.Equal(t, a.Soil.Type, b.Soil.Type)
	assert.Equal(t, a.Aquifer.Type, b.Aquifer.Type)
	assert.Equal(t, a.Aquifer.Material, b.Aquifer.Material)
	assert.Equal(t, a.Groundwater.DepthToWaterM, b.Groundwater.DepthToWaterM)
	assert.Equal(t, a.Aquifer.Porosity, b.Aquifer.Porosity)
	assert.Equal(t, a.Soil.DepthM, b.Soil.DepthM)
	// With frozen time even the jittered level must match.
	assert.Equal(t, a.Groundwater.LevelM, b.Groundwater.LevelM)
}

func TestSynthesize_JitterOnlyMovesLevel(t *testing.T) {
	fake := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	SetClock(fake)
	defer SetClock(nil)

	c := Coordinate{Lat: 12.9716, Lon: 77.5946}

	a := Synthesize(c)
	fake.Advance(7 * time.Minute)
	b := Synthesize(c)

	assert.NotEqual(t, a.Groundwater.LevelM, b.Groundwater.LevelM)

	// Everything else stays put.
	assert.Equal(t, a.Soil, b.Soil)
	assert.Equal(t, a.Aquifer, b.Aquifer)
	assert.Equal(t, a.Groundwater.DepthToWaterM, b.Groundwater.DepthToWaterM)
	assert.Equal(t, a.Groundwater.Quality, b.Groundwater.Quality)
}

func TestSynthesize_Bounds(t *testing.T) {
	for lat := -90.0; lat <= 90; lat += 7.3 {
		for lon := -180.0; lon <= 180; lon += 11.7 {
			rec := Synthesize(Coordinate{Lat: lat, Lon: lon})

			assert.GreaterOrEqual(t, rec.Groundwater.LevelM, 2.0, "level at %v,%v", lat, lon)
			assert.LessOrEqual(t, rec.Groundwater.LevelM, 50.0, "level at %v,%v", lat, lon)
			assert.GreaterOrEqual(t, rec.Groundwater.DepthToWaterM, 2.0)
			assert.LessOrEqual(t, rec.Groundwater.DepthToWaterM, 50.0)
			assert.GreaterOrEqual(t, rec.Aquifer.Porosity, 0.0)
			assert.LessOrEqual(t, rec.Aquifer.Porosity, 1.0)
			assert.GreaterOrEqual(t, rec.Soil.WaterHoldingCapacity, 0.0)
			assert.LessOrEqual(t, rec.Soil.WaterHoldingCapacity, 1.0)
			assert.Greater(t, rec.Aquifer.PermeabilityMS, 0.0)
			assert.GreaterOrEqual(t, rec.Soil.DepthM, 0.0)
			assert.Regexp(t, hexColor, rec.Soil.Color)
		}
	}
}

// Derivations must be total over the reals: garbage coordinates still yield
// a bounded record instead of NaN or a panic.
func TestSynthesize_TotalOverReals(t *testing.T) {
	for _, c := range []Coordinate{
		{Lat: 1e9, Lon: -1e9},
		{Lat: math.MaxFloat64, Lon: 0},
		{Lat: math.NaN(), Lon: math.Inf(1)},
	} {
		rec := Synthesize(c)
		require.False(t, math.IsNaN(rec.Groundwater.LevelM), "coord %v", c)
		assert.GreaterOrEqual(t, rec.Groundwater.LevelM, 2.0)
		assert.LessOrEqual(t, rec.Groundwater.LevelM, 50.0)
		assert.NotEmpty(t, rec.Soil.Type)
		assert.NotEmpty(t, rec.Aquifer.Type)
	}
}

func TestBackfill_PreservesProviderValues(t *testing.T) {
	c := Coordinate{Lat: 19.0760, Lon: 72.8777}

	rec := Record{}
	rec.Groundwater.LevelM = 14.2
	rec.Soil.Type = SoilClay
	Backfill(&rec, c, TierCGWB)

	assert.Equal(t, 14.2, rec.Groundwater.LevelM)
	assert.Equal(t, SoilClay, rec.Soil.Type)
	assert.Equal(t, SoilColor(SoilClay), rec.Soil.Color)
	// Omitted fields got derived.
	assert.NotZero(t, rec.Aquifer.ThicknessM)
	assert.NotEmpty(t, rec.Aquifer.Material)
	assert.NotZero(t, rec.Soil.WaterHoldingCapacity)
}

func TestDerive_DifferentTiersDisagree(t *testing.T) {
	// Not guaranteed for every coordinate, but must hold for this one; the
	// multipliers exist precisely so tiers look like distinct sources.
	c := Coordinate{Lat: 22.5726, Lon: 88.3639}

	seen := map[SoilType]bool{}
	for _, tier := range []float64{TierIndiaWRIS, TierDataGovIn, TierCGWB, TierIGRAC, TierOpenWeather, TierSynthetic} {
		seen[DeriveSoilType(c, tier)] = true
	}
	assert.Greater(t, len(seen), 1)
}
