package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shindong96/atdd-subway-path/internal/domain"
	"github.com/shindong96/atdd-subway-path/internal/route"
)

// NetworkRepository supplies the current topology and station names.
type NetworkRepository interface {
	ListSections(ctx context.Context) ([]domain.Section, error)
	FindStations(ctx context.Context, ids []int64) (map[int64]domain.Station, error)
}

// FareCalculator prices a trip by distance and optional rider age.
type FareCalculator interface {
	Calculate(distance int, age *int) (int, error)
}

// PathQuery is a single route request. Age is nil when the rider gave none.
type PathQuery struct {
	Source int64
	Target int64
	Age    *int
}

// PathService answers route queries: it builds the routing graph from the
// stored sections, searches it and prices the result.
type PathService struct {
	repo   NetworkRepository
	fares  FareCalculator
	graphs *GraphCache
	logger *slog.Logger
	nowFn  func() time.Time
}

// Option customises a PathService.
type Option func(*PathService)

// WithGraphCache reuses graphs built from an identical section set.
func WithGraphCache(c *GraphCache) Option {
	return func(s *PathService) { s.graphs = c }
}

// WithLogger sets the logger used for query diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *PathService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewPathService constructs a PathService. Without WithGraphCache a fresh
// graph is built for every query.
func NewPathService(repo NetworkRepository, fares FareCalculator, opts ...Option) *PathService {
	s := &PathService{
		repo:   repo,
		fares:  fares,
		logger: slog.Default(),
		nowFn:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindPath returns the shortest route between the queried stations together
// with its fare. Failures are *domain.Error values for bad input and wrapped
// store errors otherwise.
func (s *PathService) FindPath(ctx context.Context, q PathQuery) (domain.Route, error) {
	if q.Age != nil && *q.Age < 0 {
		return domain.Route{}, &domain.Error{Kind: domain.KindInvalidAge, Value: *q.Age}
	}
	start := s.nowFn()

	sections, err := s.repo.ListSections(ctx)
	if err != nil {
		return domain.Route{}, fmt.Errorf("load sections: %w", err)
	}

	g, err := s.graph(sections)
	if err != nil {
		return domain.Route{}, err
	}

	path, err := route.ShortestPath(ctx, g, q.Source, q.Target)
	if err != nil {
		return domain.Route{}, err
	}

	fare, err := s.fares.Calculate(path.Distance, q.Age)
	if err != nil {
		return domain.Route{}, err
	}

	stations, err := s.resolve(ctx, path.Stations)
	if err != nil {
		return domain.Route{}, err
	}

	s.logger.Debug("path resolved",
		"source", q.Source,
		"target", q.Target,
		"stations", len(stations),
		"distance", path.Distance,
		"fare", fare,
		"duration_ms", s.nowFn().Sub(start).Milliseconds(),
	)

	return domain.Route{
		Stations: stations,
		Distance: path.Distance,
		Fare:     fare,
	}, nil
}

func (s *PathService) graph(sections []domain.Section) (*route.Graph, error) {
	if s.graphs != nil {
		return s.graphs.Get(sections)
	}
	return route.Build(sections)
}

func (s *PathService) resolve(ctx context.Context, ids []int64) ([]domain.Station, error) {
	found, err := s.repo.FindStations(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve stations: %w", err)
	}

	stations := make([]domain.Station, 0, len(ids))
	for _, id := range ids {
		st, ok := found[id]
		if !ok {
			return nil, &domain.Error{Kind: domain.KindStationNotFound, StationID: id}
		}
		stations = append(stations, st)
	}
	return stations, nil
}
