package generator

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestGenerateIsDeterministicForSeed(t *testing.T) {
	cfg := Config{NumLines: 3, StationsPerLine: 6, TransferChance: 0.4, MaxDistance: 5, Seed: 7}

	first, err := New(cfg).Generate(context.Background())
	require.NoError(t, err)
	second, err := New(cfg).Generate(context.Background())
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("datasets differ for the same seed (-first +second):\n%s", diff)
	}
}

func TestGenerateProducesValidSections(t *testing.T) {
	ds, err := New(Config{NumLines: 4, StationsPerLine: 8, TransferChance: 0.5, MaxDistance: 9, Seed: 3}).Generate(context.Background())
	require.NoError(t, err)

	require.Len(t, ds.Sections, 4*7)
	known := make(map[int64]bool, len(ds.Stations))
	for _, s := range ds.Stations {
		known[s.ID] = true
	}
	for _, s := range ds.DomainSections() {
		require.NoError(t, s.Validate())
		require.True(t, known[s.UpStationID], "unknown up station %d", s.UpStationID)
		require.True(t, known[s.DownStationID], "unknown down station %d", s.DownStationID)
		require.LessOrEqual(t, s.Distance, 9)
	}
}

func TestGenerateRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Config{Seed: 1}).Generate(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestWriteAndReadDataset(t *testing.T) {
	ds := Dataset{
		Stations: []StationRecord{{ID: 1, Name: "강남역"}, {ID: 2, Name: "양재역"}},
		Sections: []SectionRecord{{LineID: 1, UpStationID: 1, DownStationID: 2, Distance: 10}},
	}

	path, err := WriteDataset(ds, t.TempDir())
	require.NoError(t, err)
	require.Equal(t, DatasetFile, filepath.Base(path))

	loaded, err := ReadDataset(path)
	require.NoError(t, err)
	require.Equal(t, ds, loaded)
}
