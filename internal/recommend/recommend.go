// Package recommend sizes rainwater recharge structures from site parameters
// and the groundwater record resolved for the site.
package recommend

import (
	"math"

	"github.com/jalrakshak/groundwater-data-aggregation/internal/groundwater"
)

// StructureType identifies a recharge structure class.
type StructureType string

const (
	StructurePit          StructureType = "pit"
	StructureTrench       StructureType = "trench"
	StructureShaft        StructureType = "shaft"
	StructureRechargeWell StructureType = "recharge_well"
)

// Request carries the site parameters for a recommendation.
type Request struct {
	RoofAreaM2       float64              `json:"roof_area_m2" validate:"required,gt=0"`
	OpenSpaceM2      float64              `json:"open_space_m2" validate:"gte=0"`
	AnnualRainfallMM float64              `json:"annual_rainfall_mm" validate:"required,gt=0"`
	GWDepthM         float64              `json:"gw_depth_m" validate:"required,gt=0"`
	SoilType         groundwater.SoilType `json:"soil_type"`
}

// Plan is the full sizing and costing result for a site.
type Plan struct {
	Structure         StructureType      `json:"structure"`
	Dimensions        map[string]float64 `json:"dimensions"`
	EffectiveStorageL float64            `json:"effective_storage_liters"`
	AnnualRunoffL     float64            `json:"annual_runoff_liters"`
	RunoffCoefficient float64            `json:"runoff_coefficient"`
	EstimatedCapex    float64            `json:"estimated_capex"`
	EstimatedOpexYear float64            `json:"estimated_opex_per_year"`
	Notes             string             `json:"notes"`
}

// RunoffCoefficient returns the rooftop runoff coefficient for a soil type.
// Permeable soils lose more to splash and surroundings before collection.
func RunoffCoefficient(t groundwater.SoilType) float64 {
	switch t {
	case groundwater.SoilSandy, groundwater.SoilSandyLoam, groundwater.SoilLoam:
		return 0.8
	default:
		return 0.6
	}
}

// EstimateRunoffLiters converts annual rainfall depth over a roof area into
// collectable volume. 1 mm over 1 m² is 1 liter; the coefficient accounts for
// evaporation, first-flush and leakage losses.
func EstimateRunoffLiters(rainfallMM, roofAreaM2, coefficient float64) float64 {
	return rainfallMM * roofAreaM2 * coefficient
}

// RecommendStructure applies the product's rule set:
//   - shallow water table with open space: trench, to spread recharge
//   - small roof: pit
//   - large roof over a deep water table: recharge well
//   - otherwise: shaft
func RecommendStructure(roofAreaM2, openSpaceM2, gwDepthM float64) StructureType {
	if gwDepthM < 5 && openSpaceM2 >= 20 {
		return StructureTrench
	}
	if roofAreaM2 < 120 {
		return StructurePit
	}
	if roofAreaM2 >= 300 && gwDepthM >= 10 {
		return StructureRechargeWell
	}
	return StructureShaft
}

// SuggestDimensions returns parametric dimensions approximating the target
// storage, the effective storage those dimensions give, and a note on the
// void-ratio assumption. Effective storage discounts for fill media: pits
// hold 40% of the dug volume, trenches 35%, gravel-packed shafts 30%, and an
// open recharge well its full volume.
func SuggestDimensions(st StructureType, targetLiters float64) (map[string]float64, float64, string) {
	switch st {
	case StructurePit:
		length, breadth := 1.5, 1.5
		depth := math.Max(1.2, targetLiters/(0.4*length*breadth*1000))
		vol := 0.4 * length * breadth * depth * 1000
		return map[string]float64{
			"length_m":  length,
			"breadth_m": breadth,
			"depth_m":   round2(depth),
		}, vol, "40% void ratio assumed for pebble media"

	case StructureTrench:
		length, breadth := 6.0, 0.6
		depth := math.Max(1.2, targetLiters/(0.35*length*breadth*1000))
		vol := 0.35 * length * breadth * depth * 1000
		return map[string]float64{
			"length_m":  length,
			"breadth_m": breadth,
			"depth_m":   round2(depth),
		}, vol, "35% void ratio assumed for brickbats"

	case StructureShaft:
		dia := 0.9
		depth := math.Max(6.0, targetLiters/(0.3*math.Pi*(dia/2)*(dia/2)*1000))
		vol := 0.3 * math.Pi * (dia / 2) * (dia / 2) * depth * 1000
		return map[string]float64{
			"diameter_m": dia,
			"depth_m":    round1(depth),
		}, vol, "30% effective storage with gravel pack"

	default: // recharge well
		dia := 1.0
		depth := math.Max(8.0, targetLiters/(math.Pi*(dia/2)*(dia/2)*1000))
		vol := math.Pi * (dia / 2) * (dia / 2) * depth * 1000
		return map[string]float64{
			"diameter_m": dia,
			"depth_m":    round1(depth),
		}, vol, "full well volume assumed as storage"
	}
}

// EstimateCosts returns rough CAPEX and yearly OPEX for a structure sized to
// the given effective storage. The curve is base cost plus a per-kiloliter
// component; OPEX is 2% of CAPEX per year for maintenance.
func EstimateCosts(st StructureType, effectiveLiters float64) (capex, opexPerYear float64) {
	baseCost := map[StructureType]float64{
		StructurePit:          20000,
		StructureTrench:       35000,
		StructureShaft:        60000,
		StructureRechargeWell: 120000,
	}
	perKL := map[StructureType]float64{
		StructurePit:          3.0,
		StructureTrench:       2.5,
		StructureShaft:        4.0,
		StructureRechargeWell: 4.5,
	}

	base, ok := baseCost[st]
	if !ok {
		base = 30000
	}
	rate, ok := perKL[st]
	if !ok {
		rate = 3.0
	}

	capex = base + rate*(effectiveLiters/1000)
	opexPerYear = 0.02 * capex
	return capex, opexPerYear
}

// BuildPlan runs the whole recommendation pipeline for a site.
func BuildPlan(req Request) Plan {
	coeff := RunoffCoefficient(req.SoilType)
	runoff := EstimateRunoffLiters(req.AnnualRainfallMM, req.RoofAreaM2, coeff)

	st := RecommendStructure(req.RoofAreaM2, req.OpenSpaceM2, req.GWDepthM)

	// Size for a month of peak runoff rather than the full year; recharge is
	// continuous, storage only buffers bursts.
	target := runoff / 12
	dims, effective, notes := SuggestDimensions(st, target)
	capex, opex := EstimateCosts(st, effective)

	return Plan{
		Structure:         st,
		Dimensions:        dims,
		EffectiveStorageL: round2(effective),
		AnnualRunoffL:     round2(runoff),
		RunoffCoefficient: coeff,
		EstimatedCapex:    round2(capex),
		EstimatedOpexYear: round2(opex),
		Notes:             notes,
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round1(v float64) float64 { return math.Round(v*10) / 10 }
