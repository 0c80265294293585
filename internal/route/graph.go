// Package route builds the routing graph of a subway network and finds the
// shortest path between two stations on it.
package route

import (
	"errors"
	"sort"

	"github.com/shindong96/atdd-subway-path/internal/domain"
)

// Edge is one direction of a section as seen from a station.
type Edge struct {
	To       int64
	Distance int
}

// Graph is an undirected weighted graph keyed by station ID. A Graph is never
// modified after Build returns, so it may be shared between goroutines.
type Graph struct {
	adjacency map[int64][]Edge
	edges     int
}

// Build merges the sections of every line into a single routing graph. Each
// section contributes one edge in both directions; parallel sections between
// the same pair are all kept.
func Build(sections []domain.Section) (*Graph, error) {
	g := &Graph{adjacency: make(map[int64][]Edge)}
	for i, s := range sections {
		if err := s.Validate(); err != nil {
			var e *domain.Error
			if errors.As(err, &e) {
				e.Index = i
			}
			return nil, err
		}
		g.adjacency[s.UpStationID] = append(g.adjacency[s.UpStationID], Edge{To: s.DownStationID, Distance: s.Distance})
		g.adjacency[s.DownStationID] = append(g.adjacency[s.DownStationID], Edge{To: s.UpStationID, Distance: s.Distance})
		g.edges++
	}

	for _, edges := range g.adjacency {
		sort.Slice(edges, func(a, b int) bool {
			if edges[a].To != edges[b].To {
				return edges[a].To < edges[b].To
			}
			return edges[a].Distance < edges[b].Distance
		})
	}
	return g, nil
}

// HasStation reports whether id is a vertex of the graph.
func (g *Graph) HasStation(id int64) bool {
	_, ok := g.adjacency[id]
	return ok
}

// Neighbors returns the edges leaving id, ordered by neighbor ID then distance.
// The returned slice must not be modified.
func (g *Graph) Neighbors(id int64) []Edge {
	return g.adjacency[id]
}

// Stations returns every vertex in ascending ID order.
func (g *Graph) Stations() []int64 {
	ids := make([]int64, 0, len(g.adjacency))
	for id := range g.adjacency {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
	return ids
}

// Order is the number of stations.
func (g *Graph) Order() int { return len(g.adjacency) }

// Size is the number of undirected edges.
func (g *Graph) Size() int { return g.edges }

// EdgeDistance returns the lightest edge between a and b.
func (g *Graph) EdgeDistance(a, b int64) (int, bool) {
	for _, e := range g.adjacency[a] {
		if e.To == b {
			// neighbors are sorted by distance within the same target
			return e.Distance, true
		}
	}
	return 0, false
}
