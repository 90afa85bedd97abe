package groundwater

import (
	"fmt"
	"time"
)

// Coordinate is a geographic point in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

// Valid reports whether the coordinate lies within the WGS84 bounds.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Key returns a canonical string key for indexing this coordinate in stores.
// Coordinates are rounded to four decimals (~11 m), matching the resolution
// the upstream registries publish at.
func (c Coordinate) Key() string {
	return fmt.Sprintf("%.4f:%.4f", c.Lat, c.Lon)
}

// SoilType is one of the fixed soil classification labels used across the app.
type SoilType string

const (
	SoilClay      SoilType = "Clay"
	SoilClayLoam  SoilType = "Clay Loam"
	SoilLoam      SoilType = "Loam"
	SoilSandyLoam SoilType = "Sandy Loam"
	SoilSandy     SoilType = "Sandy"
	SoilSilt      SoilType = "Silt"
	SoilSiltLoam  SoilType = "Silt Loam"
)

// SoilTypes lists every recognized soil type in a fixed order. Derivation
// functions index into this slice, so the order must not change.
var SoilTypes = []SoilType{
	SoilClay,
	SoilClayLoam,
	SoilLoam,
	SoilSandyLoam,
	SoilSandy,
	SoilSilt,
	SoilSiltLoam,
}

// AquiferType classifies how an aquifer is confined.
type AquiferType string

const (
	AquiferUnconfined   AquiferType = "unconfined"
	AquiferConfined     AquiferType = "confined"
	AquiferSemiConfined AquiferType = "semi-confined"
	AquiferLeaky        AquiferType = "leaky"
)

// AquiferTypes lists every aquifer type in a fixed order.
var AquiferTypes = []AquiferType{
	AquiferUnconfined,
	AquiferConfined,
	AquiferSemiConfined,
	AquiferLeaky,
}

// AquiferMaterial is the dominant geological material of an aquifer.
type AquiferMaterial string

const (
	MaterialAlluvial  AquiferMaterial = "alluvial"
	MaterialSandstone AquiferMaterial = "sandstone"
	MaterialLimestone AquiferMaterial = "limestone"
	MaterialGranite   AquiferMaterial = "granite"
	MaterialBasalt    AquiferMaterial = "basalt"
	MaterialClay      AquiferMaterial = "clay"
)

// AquiferMaterials lists every aquifer material in a fixed order.
var AquiferMaterials = []AquiferMaterial{
	MaterialAlluvial,
	MaterialSandstone,
	MaterialLimestone,
	MaterialGranite,
	MaterialBasalt,
	MaterialClay,
}

// LocationInfo describes the resolved place for a queried coordinate.
type LocationInfo struct {
	Name     string  `json:"name"`
	Lat      float64 `json:"latitude"`
	Lon      float64 `json:"longitude"`
	District string  `json:"district,omitempty"`
	State    string  `json:"state,omitempty"`
	Country  string  `json:"country"`
}

// GroundwaterInfo holds water-table measurements for a location.
type GroundwaterInfo struct {
	LevelM        float64   `json:"level_m"`
	DepthToWaterM float64   `json:"depth_to_water_m"`
	Quality       string    `json:"quality"`
	LastUpdated   time.Time `json:"last_updated"`
	Station       string    `json:"station"`
}

// AquiferInfo describes the aquifer underlying a location.
type AquiferInfo struct {
	Type           AquiferType     `json:"type"`
	Material       AquiferMaterial `json:"material"`
	ThicknessM     float64         `json:"thickness_m"`
	PermeabilityMS float64         `json:"permeability_m_per_s"`
	Porosity       float64         `json:"porosity"`
	RechargeMMYear float64         `json:"recharge_rate_mm_per_year"`
}

// SoilInfo describes the surface soil at a location. WaterHoldingCapacity is a
// fraction in [0,1]; Color is a 6-digit hex string used directly by the UI.
type SoilInfo struct {
	Type                 SoilType `json:"type"`
	Texture              string   `json:"texture"`
	DepthM               float64  `json:"depth_m"`
	PermeabilityCMHour   float64  `json:"permeability_cm_per_hour"`
	WaterHoldingCapacity float64  `json:"water_holding_capacity"`
	Color                string   `json:"color"`
}

// Metadata records provenance for a fetched record. Confidence always reflects
// the provider that actually produced the record.
type Metadata struct {
	FetchID    string    `json:"fetch_id"`
	DataSource string    `json:"data_source"`
	Endpoint   string    `json:"endpoint"`
	Confidence float64   `json:"confidence"`
	FetchedAt  time.Time `json:"fetched_at"`
}

// Record is the normalized groundwater view returned for one query. A record
// is built fresh per call and never mutated after the aggregator hands it out.
type Record struct {
	Location    LocationInfo    `json:"location"`
	Groundwater GroundwaterInfo `json:"groundwater"`
	Aquifer     AquiferInfo     `json:"aquifer"`
	Soil        SoilInfo        `json:"soil"`
	Metadata    Metadata        `json:"metadata"`
}

// Result is the envelope every aggregation call resolves to. Success is true
// whenever any tier, including the synthetic one, produced a record.
type Result struct {
	Success bool    `json:"success"`
	Data    *Record `json:"data,omitempty"`
	Error   string  `json:"error,omitempty"`
	Source  string  `json:"source"`
}
