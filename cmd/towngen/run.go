package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pkg/profile"

	"github.com/ChicagoDave/towngen/pkg/analytics"
	"github.com/ChicagoDave/towngen/pkg/config"
	"github.com/ChicagoDave/towngen/pkg/scene"
	"github.com/ChicagoDave/towngen/pkg/town"
	"github.com/ChicagoDave/towngen/pkg/validation"
)

// generate checks the options and builds a town from them.
func generate(c *config.Config) (*town.Town, *validation.Report, error) {
	opts := c.Options()
	report := validation.ValidateOptions(opts)
	if !report.Valid {
		return nil, report, fmt.Errorf("invalid options: %w", report.Err())
	}

	opts.Logger = generatorLogger()
	logVerbose("generating %d patches from seed %d (walls=%t water=%t)", opts.Patches, opts.Seed, opts.Walls, opts.Water)
	t, err := town.Generate(opts)
	if err != nil {
		return nil, report, fmt.Errorf("generating town: %w", err)
	}
	logVerbose("generated %d buildings", len(t.Buildings))
	return t, report, nil
}

func runGenerate(c *config.Config, out, cpuProfile string) error {
	if cpuProfile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(cpuProfile), profile.Quiet).Stop()
	}

	t, report, err := generate(c)
	if err != nil {
		if !report.Valid {
			printValidationReport(report)
		}
		return err
	}

	var w io.Writer = os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := writeGeometry(w, t.Geometry(), c.Output); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if out != "" {
		logVerbose("wrote %s", out)
	}
	return nil
}

func writeGeometry(w io.Writer, g *town.Geometry, o config.OutputConfig) error {
	switch o.Format {
	case config.FormatGeoJSON:
		return scene.Encode(w, g, o.Indent)
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		if o.Indent {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(g)
	}
	return fmt.Errorf("unknown output format %q", o.Format)
}

func runValidate(c *config.Config) error {
	t, report, err := generate(c)
	if err != nil {
		if report.Valid {
			report.AddError(validation.Result{
				Level:   validation.LevelGeometry,
				Message: err.Error(),
			})
		}
		printValidationReport(report)
		os.Exit(1)
	}

	g := t.Geometry()
	report.Merge(scene.Validate(g))
	_, statsReport := analytics.Summarize(g)
	report.Merge(statsReport)

	printValidationReport(report)

	if !report.Valid {
		os.Exit(1)
	}
	return nil
}

func runStats(c *config.Config) error {
	t, report, err := generate(c)
	if err != nil {
		if !report.Valid {
			printValidationReport(report)
		}
		return err
	}

	summary, statsReport := analytics.Summarize(t.Geometry())
	printSummary(summary)

	if len(statsReport.Warnings) > 0 || !statsReport.Valid {
		fmt.Println()
		printValidationReport(statsReport)
	}
	return nil
}
