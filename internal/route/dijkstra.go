package route

import (
	"container/heap"
	"context"

	"github.com/shindong96/atdd-subway-path/internal/domain"
)

// ShortestPath returns the minimum-distance path from source to target.
//
// Both stations must be vertices of g and must differ. The search pops
// stations in (distance, id) order and only replaces a predecessor on a
// strictly shorter distance, which fixes the choice among equally short
// paths. ctx is checked before every expansion.
func ShortestPath(ctx context.Context, g *Graph, source, target int64) (domain.Path, error) {
	if !g.HasStation(source) {
		return domain.Path{}, &domain.Error{Kind: domain.KindStationNotFound, StationID: source}
	}
	if !g.HasStation(target) {
		return domain.Path{}, &domain.Error{Kind: domain.KindStationNotFound, StationID: target}
	}
	if source == target {
		return domain.Path{}, &domain.Error{Kind: domain.KindSameStation, StationID: source}
	}

	dist := map[int64]int{source: 0}
	prev := make(map[int64]int64, g.Order())
	settled := make(map[int64]struct{}, g.Order())

	q := &distanceQueue{{station: source}}
	for q.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return domain.Path{}, err
		}

		cur := heap.Pop(q).(queueItem)
		if _, done := settled[cur.station]; done {
			continue
		}
		settled[cur.station] = struct{}{}
		if cur.station == target {
			break
		}

		for _, e := range g.Neighbors(cur.station) {
			if _, done := settled[e.To]; done {
				continue
			}
			next := cur.distance + e.Distance
			if known, ok := dist[e.To]; ok && next >= known {
				continue
			}
			dist[e.To] = next
			prev[e.To] = cur.station
			heap.Push(q, queueItem{station: e.To, distance: next})
		}
	}

	total, ok := dist[target]
	if !ok {
		return domain.Path{}, &domain.Error{Kind: domain.KindNoPathExists, StationID: source, TargetID: target}
	}

	return domain.Path{
		Stations: walkBack(prev, source, target),
		Distance: total,
	}, nil
}

func walkBack(prev map[int64]int64, source, target int64) []int64 {
	var reversed []int64
	for at := target; ; at = prev[at] {
		reversed = append(reversed, at)
		if at == source {
			break
		}
	}
	stations := make([]int64, len(reversed))
	for i, id := range reversed {
		stations[len(reversed)-1-i] = id
	}
	return stations
}
