package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/shindong96/atdd-subway-path/internal/domain"
	"github.com/shindong96/atdd-subway-path/internal/graph"
)

func TestRepository_ListSections(t *testing.T) {
	mem := graph.NewMemoryClient()
	mem.Respond(listSectionsCypher, graph.Result{Records: []graph.Record{
		{"lineId": int64(1), "upStationId": int64(1), "downStationId": int64(2), "distance": int64(10)},
		{"lineId": int64(3), "upStationId": int64(3), "downStationId": int64(4), "distance": int64(3)},
	}})
	repo := New(mem)

	sections, err := repo.ListSections(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}

	want := domain.Section{LineID: 3, UpStationID: 3, DownStationID: 4, Distance: 3}
	if sections[1] != want {
		t.Fatalf("section mismatch: want %+v got %+v", want, sections[1])
	}

	calls := mem.ReadCalls()
	if len(calls) != 1 || calls[0].Query != listSectionsCypher {
		t.Fatalf("expected a single list sections query, got %+v", calls)
	}
}

func TestRepository_ListSectionsMalformed(t *testing.T) {
	mem := graph.NewMemoryClient()
	mem.Respond(listSectionsCypher, graph.Result{Records: []graph.Record{
		{"lineId": int64(1), "upStationId": int64(1), "distance": int64(10)},
	}})

	_, err := New(mem).ListSections(context.Background())
	if !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("expected ErrMalformedRecord, got %v", err)
	}
}

func TestRepository_ListSectionsQueryError(t *testing.T) {
	boom := errors.New("bolt down")
	_, err := New(graph.NewMemoryClient().WithError(boom)).ListSections(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped bolt error, got %v", err)
	}
}

func TestRepository_FindStations(t *testing.T) {
	mem := graph.NewMemoryClient()
	mem.Respond(findStationsCypher, graph.Result{Records: []graph.Record{
		{"id": int64(2), "name": "양재역"},
		{"id": int64(3), "name": "교대역"},
	}})
	repo := New(mem)

	stations, err := repo.FindStations(context.Background(), []int64{3, 2, 3})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if stations[3].Name != "교대역" || stations[2].Name != "양재역" {
		t.Fatalf("unexpected stations: %+v", stations)
	}

	calls := mem.ReadCalls()
	ids, ok := calls[0].Params["ids"].([]int64)
	if !ok {
		t.Fatalf("expected ids param of []int64, got %T", calls[0].Params["ids"])
	}
	if len(ids) != 2 || ids[0] != 2 || ids[1] != 3 {
		t.Fatalf("expected deduplicated sorted ids [2 3], got %v", ids)
	}
}

func TestRepository_FindStationsEmpty(t *testing.T) {
	mem := graph.NewMemoryClient()
	stations, err := New(mem).FindStations(context.Background(), nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(stations) != 0 {
		t.Fatalf("expected empty map, got %+v", stations)
	}
	if len(mem.ReadCalls()) != 0 {
		t.Fatalf("expected no query for empty ids")
	}
}

func TestRepository_UpsertStation(t *testing.T) {
	mem := graph.NewMemoryClient()
	repo := New(mem)

	if err := repo.UpsertStation(context.Background(), domain.Station{ID: 1, Name: "강남역"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	calls := mem.WriteCalls()
	if len(calls) != 1 || calls[0].Query != upsertStationCypher {
		t.Fatalf("unexpected write calls: %+v", calls)
	}
	if calls[0].Params["name"] != "강남역" {
		t.Errorf("name mismatch: got %v", calls[0].Params["name"])
	}

	if err := repo.UpsertStation(context.Background(), domain.Station{Name: "nowhere"}); err == nil {
		t.Fatalf("expected error for missing id")
	}
}

func TestRepository_UpsertSection(t *testing.T) {
	mem := graph.NewMemoryClient()
	mem.Respond(upsertSectionCypher, graph.Result{Records: []graph.Record{{"lineId": int64(3)}}})
	repo := New(mem)

	section := domain.Section{LineID: 3, UpStationID: 3, DownStationID: 4, Distance: 3}
	if err := repo.UpsertSection(context.Background(), section); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	params := mem.WriteCalls()[0].Params
	if params["distance"] != int64(3) || params["lineId"] != int64(3) {
		t.Fatalf("unexpected params: %+v", params)
	}
}

func TestRepository_UpsertSectionRejects(t *testing.T) {
	repo := New(graph.NewMemoryClient())

	err := repo.UpsertSection(context.Background(), domain.Section{UpStationID: 1, DownStationID: 1, Distance: 2})
	if !errors.Is(err, domain.ErrInvalidSection) {
		t.Fatalf("expected ErrInvalidSection, got %v", err)
	}

	// no records back means one of the endpoint stations is missing
	err = repo.UpsertSection(context.Background(), domain.Section{UpStationID: 1, DownStationID: 2, Distance: 2})
	if !errors.Is(err, domain.ErrStationNotFound) {
		t.Fatalf("expected ErrStationNotFound, got %v", err)
	}
}
