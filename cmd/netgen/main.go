package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/shindong96/atdd-subway-path/internal/generator"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		lines          = flag.Int("lines", cfg.NumLines, "number of lines to generate")
		perLine        = flag.Int("stations-per-line", cfg.StationsPerLine, "stations on each line")
		transferChance = flag.Float64("transfer-chance", cfg.TransferChance, "probability that a station is shared with an earlier line")
		maxDistance    = flag.Int("max-distance", cfg.MaxDistance, "largest section distance in km")
		seed           = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		outputDir      = flag.String("output-dir", "seed-data", "directory to write network.json")
		writeStdout    = flag.Bool("stdout", false, "write the dataset to stdout instead of a file")
	)
	flag.Parse()

	genCfg := generator.Config{
		NumLines:        *lines,
		StationsPerLine: *perLine,
		TransferChance:  clampProbability(*transferChance),
		MaxDistance:     *maxDistance,
		Seed:            *seed,
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	dataset, err := generator.New(genCfg).Generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	if *writeStdout {
		if err := json.NewEncoder(os.Stdout).Encode(dataset); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write dataset to stdout: %v\n", err)
			os.Exit(1)
		}
		return
	}

	path, err := generator.WriteDataset(dataset, *outputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to write dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "Generated %d stations and %d sections into %s\n", len(dataset.Stations), len(dataset.Sections), path)
}

func clampProbability(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
