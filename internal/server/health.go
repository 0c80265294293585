package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/shindong96/atdd-subway-path/internal/domain"
	"github.com/shindong96/atdd-subway-path/internal/graph"
)

// ErrEmptyNetwork is reported when the store is reachable but holds no sections.
var ErrEmptyNetwork = errors.New("network has no sections")

// HealthService defines behaviour for readiness probes.
type HealthService interface {
	Probe(ctx context.Context) error
}

// SectionLister is the part of the repository the probe reads from.
type SectionLister interface {
	ListSections(ctx context.Context) ([]domain.Section, error)
}

// NetworkHealth checks that the graph store answers and, when Sections is
// set, that there is a network to route over.
type NetworkHealth struct {
	Client   graph.Client
	Sections SectionLister
}

// Probe implements HealthService.
func (h NetworkHealth) Probe(ctx context.Context) error {
	if h.Client != nil {
		if err := h.Client.VerifyConnectivity(ctx); err != nil {
			return fmt.Errorf("graph connectivity: %w", err)
		}
	}
	if h.Sections == nil {
		return nil
	}
	sections, err := h.Sections.ListSections(ctx)
	if err != nil {
		return fmt.Errorf("list sections: %w", err)
	}
	if len(sections) == 0 {
		return ErrEmptyNetwork
	}
	return nil
}
