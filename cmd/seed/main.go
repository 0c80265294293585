package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/shindong96/atdd-subway-path/internal/config"
	"github.com/shindong96/atdd-subway-path/internal/generator"
	"github.com/shindong96/atdd-subway-path/internal/graph"
	"github.com/shindong96/atdd-subway-path/internal/logging"
	"github.com/shindong96/atdd-subway-path/internal/repository"
	"github.com/shindong96/atdd-subway-path/internal/route"
	"github.com/shindong96/atdd-subway-path/internal/service"
)

var errMissingDataset = errors.New("dataset not found")

func main() {
	var (
		datasetDir = flag.String("dataset-dir", "./seed-data", "Directory containing network.json")
		dataset    = flag.String("dataset", "", "Path to a network dataset (overrides dataset-dir)")
		workers    = flag.Int("workers", 4, "Number of concurrent workers for loading")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging).With("component", "seed")

	path, err := resolveDatasetPath(*datasetDir, *dataset)
	if err != nil {
		logger.Error("dataset resolution failed", "error", err)
		os.Exit(1)
	}

	ds, err := generator.ReadDataset(path)
	if err != nil {
		logger.Error("failed to load dataset", "error", err, "path", path)
		os.Exit(1)
	}
	if len(ds.Stations) == 0 || len(ds.Sections) == 0 {
		logger.Error("dataset empty", "path", path)
		os.Exit(1)
	}

	stations, sections := ds.DomainStations(), ds.DomainSections()
	if _, err := route.Build(sections); err != nil {
		logger.Error("dataset contains an invalid section", "error", err, "path", path)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	graphClient, err := buildGraphClient(ctx, logger, cfg)
	if err != nil {
		logger.Error("failed to create graph client", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := graphClient.Close(context.Background()); err != nil {
			logger.Warn("closing graph client failed", "error", err)
		}
	}()

	loader := service.NewBulkLoader(repository.New(graphClient), *workers)

	start := time.Now()
	logger.Info("loading network", "stations", len(stations), "sections", len(sections), "workers", *workers)
	if err := loader.LoadNetwork(ctx, stations, sections); err != nil {
		logger.Error("network load failed", "error", err)
		os.Exit(1)
	}

	logger.Info("seed complete", "duration", time.Since(start).String(), "stations", len(stations), "sections", len(sections))
}

func resolveDatasetPath(baseDir, explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("stat %s: %w", explicitPath, err)
		}
		return explicitPath, nil
	}
	path := filepath.Join(baseDir, generator.DatasetFile)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %s", errMissingDataset, path)
	}
	return path, nil
}

func buildGraphClient(ctx context.Context, logger *slog.Logger, cfg config.Config) (graph.Client, error) {
	if cfg.Graph.URI == "" {
		return nil, fmt.Errorf("GRAPH_URI is required for seeding")
	}
	opts := graph.Options{
		URI:            cfg.Graph.URI,
		Database:       cfg.Graph.Database,
		Username:       cfg.Graph.Username,
		Password:       cfg.Graph.Password,
		MaxConnections: cfg.Graph.MaxConnections,
		MaxRetryTime:   cfg.Graph.MaxRetryTime,
	}
	client, err := graph.NewNeo4jClient(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger.Info("connected to graph", "uri", cfg.Graph.URI, "database", cfg.Graph.Database)
	return client, nil
}
