package analytics

import (
	"fmt"

	"github.com/ChicagoDave/towngen/pkg/validation"
)

// minSettlement is the building count below which a town reads as a hamlet.
const minSettlement = 20

func validateSummary(s *Summary, report *validation.Report) {
	validateSettlement(s, report)
	validateFortifications(s, report)
	validateCoverage(s, report)
}

func validateSettlement(s *Summary, report *validation.Report) {
	if s.Buildings == 0 {
		report.AddError(validation.Result{
			Level:       validation.LevelAnalytics,
			Message:     "town has no buildings",
			Path:        validation.Buildings,
			ActualValue: 0,
			Expected:    "> 0",
			Suggestions: []string{"Increase patches", "Regenerate with another seed"},
		})
		return
	}
	if s.Buildings < minSettlement {
		report.AddWarning(validation.Result{
			Level:       validation.LevelAnalytics,
			Message:     fmt.Sprintf("only %d buildings, estimated population %d", s.Buildings, s.EstimatedPopulation),
			Path:        validation.Buildings,
			ActualValue: s.Buildings,
			Expected:    fmt.Sprintf(">= %d", minSettlement),
			Suggestions: []string{"Increase patches"},
		})
	}
}

func validateFortifications(s *Summary, report *validation.Report) {
	if s.WallLength > 0 && s.Gates == 0 {
		report.AddError(validation.Result{
			Level:        validation.LevelAnalytics,
			Message:      fmt.Sprintf("%.0f units of wall without a gate", s.WallLength),
			Path:         validation.Gates,
			ActualValue:  0,
			ConflictWith: validation.Walls,
		})
	}
}

func validateCoverage(s *Summary, report *validation.Report) {
	for _, ds := range s.Districts {
		if ds.Patches > 0 && ds.Buildings == 0 && ds.District.HasBuildings() {
			report.AddInfo(validation.Result{
				Level:       validation.LevelAnalytics,
				Message:     fmt.Sprintf("%s: %d patches but no buildings", ds.District, ds.Patches),
				Path:        validation.Districts.Field(string(ds.District)),
				ActualValue: ds.Patches,
			})
		}
	}
}
