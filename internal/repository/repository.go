package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/shindong96/atdd-subway-path/internal/domain"
	"github.com/shindong96/atdd-subway-path/internal/graph"
)

// ErrMalformedRecord is returned when the store hands back a record missing
// one of the fields a station or section needs.
var ErrMalformedRecord = errors.New("malformed graph record")

// Repository reads and seeds the subway network stored in the graph database.
type Repository struct {
	client graph.Client
}

// New instantiates a Repository backed by the supplied graph client.
func New(client graph.Client) *Repository {
	return &Repository{client: client}
}

// ListSections returns every section of every line.
func (r *Repository) ListSections(ctx context.Context) ([]domain.Section, error) {
	res, err := r.client.ExecuteRead(ctx, listSectionsCypher, nil)
	if err != nil {
		return nil, fmt.Errorf("list sections query: %w", err)
	}

	sections := make([]domain.Section, 0, len(res.Records))
	for i, rec := range res.Records {
		up, okUp := toInt64(rec["upStationId"])
		down, okDown := toInt64(rec["downStationId"])
		distance, okDist := toInt64(rec["distance"])
		if !okUp || !okDown || !okDist {
			return nil, fmt.Errorf("section record %d: %w", i, ErrMalformedRecord)
		}
		lineID, _ := toInt64(rec["lineId"])
		sections = append(sections, domain.Section{
			LineID:        lineID,
			UpStationID:   up,
			DownStationID: down,
			Distance:      int(distance),
		})
	}
	return sections, nil
}

// FindStations resolves ids to stations. Unknown ids are absent from the
// returned map.
func (r *Repository) FindStations(ctx context.Context, ids []int64) (map[int64]domain.Station, error) {
	if len(ids) == 0 {
		return map[int64]domain.Station{}, nil
	}

	res, err := r.client.ExecuteRead(ctx, findStationsCypher, map[string]any{"ids": uniqueIDs(ids)})
	if err != nil {
		return nil, fmt.Errorf("find stations query: %w", err)
	}

	stations := make(map[int64]domain.Station, len(res.Records))
	for i, rec := range res.Records {
		id, ok := toInt64(rec["id"])
		if !ok {
			return nil, fmt.Errorf("station record %d: %w", i, ErrMalformedRecord)
		}
		stations[id] = domain.Station{ID: id, Name: toString(rec["name"])}
	}
	return stations, nil
}

// UpsertStation creates the station or renames an existing one.
func (r *Repository) UpsertStation(ctx context.Context, station domain.Station) error {
	if station.ID <= 0 {
		return errors.New("station id must be positive")
	}
	params := map[string]any{
		"id":   station.ID,
		"name": station.Name,
	}
	if _, err := r.client.ExecuteWrite(ctx, upsertStationCypher, params); err != nil {
		return fmt.Errorf("upsert station %d: %w", station.ID, err)
	}
	return nil
}

// UpsertSection links two existing stations on a line. Both stations must
// already be stored.
func (r *Repository) UpsertSection(ctx context.Context, section domain.Section) error {
	if err := section.Validate(); err != nil {
		return err
	}
	params := map[string]any{
		"lineId":        section.LineID,
		"upStationId":   section.UpStationID,
		"downStationId": section.DownStationID,
		"distance":      int64(section.Distance),
	}
	res, err := r.client.ExecuteWrite(ctx, upsertSectionCypher, params)
	if err != nil {
		return fmt.Errorf("upsert section %d-%d: %w", section.UpStationID, section.DownStationID, err)
	}
	if len(res.Records) == 0 {
		return fmt.Errorf("upsert section %d-%d: %w", section.UpStationID, section.DownStationID, domain.ErrStationNotFound)
	}
	return nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(a, b int) bool { return out[a] < out[b] })
	return out
}

func toInt64(val any) (int64, bool) {
	switch v := val.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

func toString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case []byte:
		return string(v)
	default:
		return ""
	}
}
