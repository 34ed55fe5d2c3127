package validation

import (
	"fmt"

	"github.com/ChicagoDave/towngen/pkg/town"
)

// Recommended patch range.
const (
	minRecommendedPatches = 10
	maxRecommendedPatches = 50
)

// ValidateOptions checks generation options before a run.
func ValidateOptions(o town.Options) *Report {
	r := NewReport()

	switch {
	case o.Patches != 0 && o.Patches < town.MinPatches:
		r.AddError(Result{
			Level:       LevelOptions,
			Message:     fmt.Sprintf("patches must be at least %d", town.MinPatches),
			Path:        Option("patches"),
			ActualValue: o.Patches,
			Expected:    fmt.Sprintf(">= %d", town.MinPatches),
		})
	case o.Patches == 0:
		r.AddInfo(Result{
			Level:   LevelOptions,
			Message: fmt.Sprintf("patches not set, using %d", town.DefaultPatches),
			Path:    Option("patches"),
		})
	case o.Patches < minRecommendedPatches || o.Patches > maxRecommendedPatches:
		r.AddWarning(Result{
			Level:       LevelOptions,
			Message:     "patch count outside the recommended range",
			Path:        Option("patches"),
			ActualValue: o.Patches,
			Expected:    fmt.Sprintf("%d-%d", minRecommendedPatches, maxRecommendedPatches),
			Suggestions: []string{"Small towns often fail to route a road; large ones are slow to build"},
		})
	}

	if o.MaxAttempts < 0 {
		r.AddError(Result{
			Level:       LevelOptions,
			Message:     "max_attempts must not be negative",
			Path:        Option("max_attempts"),
			ActualValue: o.MaxAttempts,
			Expected:    ">= 0",
		})
	}

	if o.Water && !o.Walls {
		r.AddInfo(Result{
			Level:        LevelOptions,
			Message:      "the lake is generated but the city wall is not drawn",
			Path:         Option("water"),
			ConflictWith: Option("walls"),
		})
	}

	return r
}
