package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/ChicagoDave/towngen/pkg/config"
)

var (
	verbose    bool
	configPath string
	cfg        *config.Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "towngen",
		Short: "Procedural medieval town generator",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			logVerbose("config: %s", configPath)
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "towngen.yaml", "Path to configuration file (.yaml, .yml or .toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(statsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// townFlags are the generator settings every subcommand accepts.
type townFlags struct {
	seed    int64
	patches int
	walls   bool
	water   bool
	overlay bool
}

func (f *townFlags) register(cmd *cobra.Command) {
	cmd.Flags().Int64VarP(&f.seed, "seed", "s", 0, "Random seed")
	cmd.Flags().IntVarP(&f.patches, "patches", "n", 0, "Number of city patches")
	cmd.Flags().BoolVar(&f.walls, "walls", true, "Surround the city with a wall")
	cmd.Flags().BoolVar(&f.water, "water", false, "Place the town on a shore")
	cmd.Flags().BoolVar(&f.overlay, "overlay", false, "Include patch outlines in the output")
}

// apply overrides config values with flags given on the command line.
func (f *townFlags) apply(cmd *cobra.Command, c *config.Config) {
	if cmd.Flags().Changed("seed") {
		c.Town.Seed = f.seed
	}
	if cmd.Flags().Changed("patches") {
		c.Town.Patches = f.patches
	}
	if cmd.Flags().Changed("walls") {
		c.Town.Walls = f.walls
	}
	if cmd.Flags().Changed("water") {
		c.Town.Water = f.water
	}
	if cmd.Flags().Changed("overlay") {
		c.Town.Overlay = f.overlay
	}
}

func generateCmd() *cobra.Command {
	var (
		flags      townFlags
		format     string
		out        string
		cpuProfile string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a town and write its geometry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags.apply(cmd, cfg)
			if cmd.Flags().Changed("format") {
				cfg.Output.Format = format
			}
			return runGenerate(cfg, out, cpuProfile)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", config.FormatGeoJSON, "Output format: json or geojson")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&cpuProfile, "cpuprofile", "", "Write a CPU profile into this directory")
	return cmd
}

func validateCmd() *cobra.Command {
	var flags townFlags

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check options, generate a town and validate the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags.apply(cmd, cfg)
			return runValidate(cfg)
		},
	}

	flags.register(cmd)
	return cmd
}

func statsCmd() *cobra.Command {
	var flags townFlags

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Generate a town and print summary statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags.apply(cmd, cfg)
			return runStats(cfg)
		},
	}

	flags.register(cmd)
	return cmd
}

func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

// generatorLogger reports failed attempts only in verbose mode.
func generatorLogger() *log.Logger {
	if verbose {
		return log.New(os.Stderr, "towngen: ", log.LstdFlags)
	}
	return log.New(io.Discard, "", 0)
}
