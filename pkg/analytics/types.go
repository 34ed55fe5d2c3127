package analytics

import "github.com/ChicagoDave/towngen/pkg/layout"

// DistrictStats holds per-district building totals.
type DistrictStats struct {
	District  layout.District `json:"district"`
	Patches   int             `json:"patches,omitempty"`
	Buildings int             `json:"buildings"`
	BuiltArea float64         `json:"built_area"`
}

// ArchetypeCount is how many footprints carry one archetype.
type ArchetypeCount struct {
	Description string `json:"description"`
	Count       int    `json:"count"`
}

// Summary holds the computed statistics of one generated town.
type Summary struct {
	Seed                int64   `json:"seed"`
	Buildings           int     `json:"buildings"`
	BuiltArea           float64 `json:"built_area"`
	AvgBuildingArea     float64 `json:"avg_building_area"`
	EstimatedPopulation int     `json:"estimated_population"`

	WallLength   float64 `json:"wall_length"`
	Towers       int     `json:"towers"`
	Gates        int     `json:"gates"`
	RoadLength   float64 `json:"road_length"`
	StreetLength float64 `json:"street_length"`
	WaterArea    float64 `json:"water_area"`

	Districts  []DistrictStats  `json:"districts"`
	Archetypes []ArchetypeCount `json:"archetypes"`
}
