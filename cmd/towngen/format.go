package main

import (
	"fmt"

	"github.com/ChicagoDave/towngen/pkg/analytics"
	"github.com/ChicagoDave/towngen/pkg/validation"
)

func printValidationReport(r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Printf("ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Printf("  %s\n", e)
			if e.Subject != "" {
				fmt.Printf("    subject: %s\n", e.Subject)
			}
			if e.ActualValue != nil {
				fmt.Printf("    actual: %v\n", e.ActualValue)
			}
			if e.Expected != "" {
				fmt.Printf("    expected: %s\n", e.Expected)
			}
			if e.ConflictWith != "" {
				fmt.Printf("    conflicts with: %s\n", e.ConflictWith)
			}
			for _, s := range e.Suggestions {
				fmt.Printf("    * %s\n", s)
			}
		}
		fmt.Println()
	}

	if len(r.Warnings) > 0 {
		fmt.Printf("WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Printf("  %s\n", w)
			if w.Subject != "" {
				fmt.Printf("    subject: %s\n", w.Subject)
			}
			if w.ActualValue != nil {
				fmt.Printf("    actual: %v\n", w.ActualValue)
			}
			if w.Expected != "" {
				fmt.Printf("    expected: %s\n", w.Expected)
			}
			for _, s := range w.Suggestions {
				fmt.Printf("    * %s\n", s)
			}
		}
		fmt.Println()
	}

	if len(r.Info) > 0 {
		fmt.Printf("INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Printf("  %s\n", i)
		}
		fmt.Println()
	}

	if r.Valid {
		fmt.Printf("Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Printf("Result: INVALID (%s)\n", r.Summary)
	}
}

func printSummary(s *analytics.Summary) {
	fmt.Printf("Town (seed %d)\n", s.Seed)
	fmt.Println("==============")
	fmt.Println()

	printDistrictTable(s.Districts)

	fmt.Println()
	fmt.Println("Totals")
	fmt.Println("------")
	fmt.Printf("  Buildings:            %d\n", s.Buildings)
	fmt.Printf("  Built area:           %s\n", formatArea(s.BuiltArea))
	fmt.Printf("  Avg building area:    %s\n", formatArea(s.AvgBuildingArea))
	fmt.Printf("  Est. population:      %d\n", s.EstimatedPopulation)
	fmt.Printf("  Wall length:          %.0f\n", s.WallLength)
	fmt.Printf("  Towers / gates:       %d / %d\n", s.Towers, s.Gates)
	fmt.Printf("  Roads / streets:      %.0f / %.0f\n", s.RoadLength, s.StreetLength)
	if s.WaterArea > 0 {
		fmt.Printf("  Water area:           %s\n", formatArea(s.WaterArea))
	}

	if len(s.Archetypes) > 0 {
		fmt.Println()
		fmt.Println("Buildings by use")
		fmt.Println("----------------")
		for _, a := range s.Archetypes {
			fmt.Printf("  %-24s %6d\n", a.Description, a.Count)
		}
	}
}

func printDistrictTable(rows []analytics.DistrictStats) {
	fmt.Printf("%-14s %8s %10s %12s\n", "District", "Patches", "Buildings", "Built area")
	fmt.Printf("%-14s %8s %10s %12s\n", "--------------", "--------", "----------", "------------")
	for _, r := range rows {
		patches := "-"
		if r.Patches > 0 {
			patches = fmt.Sprintf("%d", r.Patches)
		}
		fmt.Printf("%-14s %8s %10d %12s\n", r.District, patches, r.Buildings, formatArea(r.BuiltArea))
	}
}

func formatArea(v float64) string {
	if v >= 1_000_000 {
		return fmt.Sprintf("%.2fM", v/1_000_000)
	}
	if v >= 1_000 {
		return fmt.Sprintf("%.1fK", v/1_000)
	}
	return fmt.Sprintf("%.0f", v)
}
