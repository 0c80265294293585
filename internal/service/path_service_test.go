package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shindong96/atdd-subway-path/internal/domain"
	"github.com/shindong96/atdd-subway-path/internal/fare"
)

type stubNetwork struct {
	sections     []domain.Section
	stations     map[int64]domain.Station
	sectionsErr  error
	stationsErr  error
	sectionCalls int
}

func (s *stubNetwork) ListSections(ctx context.Context) ([]domain.Section, error) {
	s.sectionCalls++
	if s.sectionsErr != nil {
		return nil, s.sectionsErr
	}
	return s.sections, nil
}

func (s *stubNetwork) FindStations(ctx context.Context, ids []int64) (map[int64]domain.Station, error) {
	if s.stationsErr != nil {
		return nil, s.stationsErr
	}
	out := make(map[int64]domain.Station, len(ids))
	for _, id := range ids {
		if st, ok := s.stations[id]; ok {
			out[id] = st
		}
	}
	return out, nil
}

func fixtureNetwork() *stubNetwork {
	return &stubNetwork{
		sections: []domain.Section{
			{LineID: 1, UpStationID: 1, DownStationID: 2, Distance: 10},
			{LineID: 2, UpStationID: 3, DownStationID: 1, Distance: 10},
			{LineID: 3, UpStationID: 3, DownStationID: 4, Distance: 3},
			{LineID: 3, UpStationID: 4, DownStationID: 2, Distance: 2},
		},
		stations: map[int64]domain.Station{
			1: {ID: 1, Name: "강남역"},
			2: {ID: 2, Name: "양재역"},
			3: {ID: 3, Name: "교대역"},
			4: {ID: 4, Name: "남부터미널역"},
		},
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func intPtr(v int) *int { return &v }

func TestFindPathFixture(t *testing.T) {
	svc := NewPathService(fixtureNetwork(), fare.Default(), WithLogger(quietLogger()))

	got, err := svc.FindPath(context.Background(), PathQuery{Source: 3, Target: 2})
	require.NoError(t, err)

	require.Equal(t, []domain.Station{
		{ID: 3, Name: "교대역"},
		{ID: 4, Name: "남부터미널역"},
		{ID: 2, Name: "양재역"},
	}, got.Stations)
	require.Equal(t, 5, got.Distance)
	require.Equal(t, 1250, got.Fare)
}

func TestFindPathWithTeenAge(t *testing.T) {
	svc := NewPathService(fixtureNetwork(), fare.Default(), WithLogger(quietLogger()))

	got, err := svc.FindPath(context.Background(), PathQuery{Source: 3, Target: 2, Age: intPtr(16)})
	require.NoError(t, err)
	require.Equal(t, []int64{3, 4, 2}, stationIDs(got.Stations))
	require.Equal(t, 5, got.Distance)
	require.Equal(t, 1250, got.Fare)
}

func TestFindPathAppliesAgeDiscount(t *testing.T) {
	policy := fare.DefaultPolicy()
	policy.Deduction = 350
	calc, err := fare.New(policy)
	require.NoError(t, err)
	svc := NewPathService(fixtureNetwork(), calc, WithLogger(quietLogger()))

	got, err := svc.FindPath(context.Background(), PathQuery{Source: 3, Target: 2, Age: intPtr(16)})
	require.NoError(t, err)
	require.Equal(t, 5, got.Distance)
	// (1250 - 350) * 20% = 180 off
	require.Equal(t, 1070, got.Fare)
}

func stationIDs(stations []domain.Station) []int64 {
	ids := make([]int64, 0, len(stations))
	for _, st := range stations {
		ids = append(ids, st.ID)
	}
	return ids
}

func TestFindPathErrors(t *testing.T) {
	cases := []struct {
		name  string
		query PathQuery
		want  error
	}{
		{name: "same station", query: PathQuery{Source: 3, Target: 3}, want: domain.ErrSameStation},
		{name: "unknown station", query: PathQuery{Source: 3, Target: 42}, want: domain.ErrStationNotFound},
		{name: "negative age", query: PathQuery{Source: 3, Target: 2, Age: intPtr(-1)}, want: domain.ErrInvalidAge},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewPathService(fixtureNetwork(), fare.Default(), WithLogger(quietLogger()))
			_, err := svc.FindPath(context.Background(), tc.query)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestFindPathNegativeAgeSkipsStore(t *testing.T) {
	network := fixtureNetwork()
	svc := NewPathService(network, fare.Default())

	_, err := svc.FindPath(context.Background(), PathQuery{Source: 3, Target: 2, Age: intPtr(-5)})
	require.ErrorIs(t, err, domain.ErrInvalidAge)
	require.Zero(t, network.sectionCalls)
}

func TestFindPathNoPath(t *testing.T) {
	network := fixtureNetwork()
	network.sections = append(network.sections, domain.Section{LineID: 9, UpStationID: 5, DownStationID: 6, Distance: 1})
	network.stations[5] = domain.Station{ID: 5, Name: "섬역"}

	svc := NewPathService(network, fare.Default())
	_, err := svc.FindPath(context.Background(), PathQuery{Source: 3, Target: 5})
	require.ErrorIs(t, err, domain.ErrNoPath)
}

func TestFindPathUnregisteredStationOnRoute(t *testing.T) {
	network := fixtureNetwork()
	delete(network.stations, 4)

	svc := NewPathService(network, fare.Default())
	_, err := svc.FindPath(context.Background(), PathQuery{Source: 3, Target: 2})

	var detail *domain.Error
	require.ErrorAs(t, err, &detail)
	require.Equal(t, domain.KindStationNotFound, detail.Kind)
	require.Equal(t, int64(4), detail.StationID)
}

func TestFindPathInvalidTopology(t *testing.T) {
	network := fixtureNetwork()
	network.sections = append(network.sections, domain.Section{UpStationID: 1, DownStationID: 2, Distance: 0})

	svc := NewPathService(network, fare.Default())
	_, err := svc.FindPath(context.Background(), PathQuery{Source: 3, Target: 2})
	require.ErrorIs(t, err, domain.ErrInvalidSection)
}

func TestFindPathStoreErrors(t *testing.T) {
	boom := errors.New("store unavailable")

	network := fixtureNetwork()
	network.sectionsErr = boom
	_, err := NewPathService(network, fare.Default()).FindPath(context.Background(), PathQuery{Source: 3, Target: 2})
	require.ErrorIs(t, err, boom)
	require.Equal(t, domain.KindUnknown, domain.KindOf(err))

	network = fixtureNetwork()
	network.stationsErr = boom
	_, err = NewPathService(network, fare.Default()).FindPath(context.Background(), PathQuery{Source: 3, Target: 2})
	require.ErrorIs(t, err, boom)
}

func TestFindPathUsesGraphCache(t *testing.T) {
	cache := NewGraphCache(time.Minute, time.Minute)
	network := fixtureNetwork()
	svc := NewPathService(network, fare.Default(), WithGraphCache(cache))

	for i := 0; i < 3; i++ {
		_, err := svc.FindPath(context.Background(), PathQuery{Source: 3, Target: 2})
		require.NoError(t, err)
	}
	require.Equal(t, 1, cache.Len())

	network.sections = append(network.sections, domain.Section{LineID: 4, UpStationID: 3, DownStationID: 2, Distance: 1})
	got, err := svc.FindPath(context.Background(), PathQuery{Source: 3, Target: 2})
	require.NoError(t, err)
	require.Equal(t, 1, got.Distance)
	require.Equal(t, 2, cache.Len())
}
