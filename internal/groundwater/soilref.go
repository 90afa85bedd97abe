package groundwater

// RateRange is a min/max/typical triple for a soil reference table.
type RateRange struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Typical float64 `json:"typical"`
}

// SoilReference bundles the reference tables the UI renders next to a soil
// record. Values follow the USDA Soil Survey Manual typical ranges.
type SoilReference struct {
	InfiltrationMMHour   map[SoilType]RateRange `json:"infiltration_rates_mm_per_hour"`
	PermeabilityCMHour   map[SoilType]RateRange `json:"permeability_rates_cm_per_hour"`
	WaterHoldingCapacity map[SoilType]RateRange `json:"water_holding_capacity"`
	Source               string                 `json:"source"`
}

// Reference returns the static soil reference tables.
func Reference() SoilReference {
	return SoilReference{
		InfiltrationMMHour: map[SoilType]RateRange{
			SoilSandy:     {20.0, 50.0, 35.0},
			SoilSandyLoam: {10.0, 25.0, 17.5},
			SoilLoam:      {5.0, 15.0, 10.0},
			SoilSiltLoam:  {2.5, 8.0, 5.25},
			SoilSilt:      {1.5, 5.0, 3.25},
			SoilClayLoam:  {1.0, 4.0, 2.5},
			SoilClay:      {0.1, 1.0, 0.55},
		},
		PermeabilityCMHour: map[SoilType]RateRange{
			SoilSandy:     {10.0, 100.0, 55.0},
			SoilSandyLoam: {5.0, 20.0, 12.5},
			SoilLoam:      {1.0, 10.0, 5.5},
			SoilSiltLoam:  {0.5, 5.0, 2.75},
			SoilSilt:      {0.2, 1.0, 0.5},
			SoilClayLoam:  {0.1, 2.0, 1.05},
			SoilClay:      {0.01, 0.5, 0.26},
		},
		// Fractions of soil volume; the per-type typical values match the
		// constants Backfill stamps onto records.
		WaterHoldingCapacity: map[SoilType]RateRange{
			SoilSandy:     {0.10, 0.20, 0.15},
			SoilSandyLoam: {0.18, 0.30, 0.25},
			SoilLoam:      {0.28, 0.40, 0.35},
			SoilSiltLoam:  {0.32, 0.44, 0.38},
			SoilSilt:      {0.36, 0.48, 0.42},
			SoilClayLoam:  {0.34, 0.46, 0.40},
			SoilClay:      {0.38, 0.52, 0.45},
		},
		Source: "USDA Soil Survey Manual",
	}
}
