package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/shindong96/atdd-subway-path/internal/config"
	"github.com/shindong96/atdd-subway-path/internal/fare"
	"github.com/shindong96/atdd-subway-path/internal/graph"
	"github.com/shindong96/atdd-subway-path/internal/logging"
	"github.com/shindong96/atdd-subway-path/internal/repository"
	"github.com/shindong96/atdd-subway-path/internal/server"
	"github.com/shindong96/atdd-subway-path/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)

	calculator, err := buildFareCalculator(cfg.Fare)
	if err != nil {
		logger.Error("failed to load fare policy", "error", err, "path", cfg.Fare.PolicyFile)
		os.Exit(1)
	}

	graphClient, err := buildGraphClient(ctx, cfg)
	if err != nil {
		logger.Error("failed to create graph client", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := graphClient.Close(context.Background()); err != nil {
			logger.Warn("closing graph client failed", "error", err)
		}
	}()

	opts := []service.Option{service.WithLogger(logger.With("component", "path"))}
	if cfg.Route.CacheEnabled {
		opts = append(opts, service.WithGraphCache(service.NewGraphCache(cfg.Route.CacheTTL, cfg.Route.CacheCleanupInterval)))
	}

	repo := repository.New(graphClient)
	pathService := service.NewPathService(repo, calculator, opts...)
	apiHandlers := server.NewAPIHandlers(logger, pathService)

	router := server.NewRouter(logger, server.RouterDependencies{
		Health:           server.NetworkHealth{Client: graphClient, Sections: repo},
		API:              apiHandlers,
		AllowedOrigins:   parseAllowedOrigins(cfg.HTTP.AllowedOriginsCSV),
		AllowCredentials: true,
	})

	srv := server.New(logger, cfg.HTTP, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("server stopped unexpectedly", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

func buildFareCalculator(cfg config.FareConfig) (*fare.Calculator, error) {
	if cfg.PolicyFile == "" {
		return fare.Default(), nil
	}
	policy, err := fare.LoadPolicyFile(cfg.PolicyFile)
	if err != nil {
		return nil, err
	}
	return fare.New(policy)
}

func buildGraphClient(ctx context.Context, cfg config.Config) (graph.Client, error) {
	if cfg.Graph.URI == "" {
		return nil, graph.ErrMissingURI
	}

	opts := graph.Options{
		URI:            cfg.Graph.URI,
		Database:       cfg.Graph.Database,
		Username:       cfg.Graph.Username,
		Password:       cfg.Graph.Password,
		MaxConnections: cfg.Graph.MaxConnections,
		MaxRetryTime:   cfg.Graph.MaxRetryTime,
	}
	return graph.NewNeo4jClient(ctx, opts)
}

func parseAllowedOrigins(csv string) []string {
	if csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	var origins []string
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		origins = append(origins, origin)
	}
	return origins
}

