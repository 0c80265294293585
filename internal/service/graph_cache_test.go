package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shindong96/atdd-subway-path/internal/domain"
)

func TestFingerprintIgnoresOrder(t *testing.T) {
	a := []domain.Section{
		{LineID: 1, UpStationID: 1, DownStationID: 2, Distance: 10},
		{LineID: 3, UpStationID: 3, DownStationID: 4, Distance: 3},
	}
	b := []domain.Section{a[1], a[0]}

	require.Equal(t, Fingerprint(a), Fingerprint(b))

	c := []domain.Section{a[0], {LineID: 3, UpStationID: 3, DownStationID: 4, Distance: 4}}
	require.NotEqual(t, Fingerprint(a), Fingerprint(c))
}

func TestGraphCacheReturnsSameGraph(t *testing.T) {
	cache := NewGraphCache(time.Minute, time.Minute)
	sections := []domain.Section{{UpStationID: 1, DownStationID: 2, Distance: 3}}

	first, err := cache.Get(sections)
	require.NoError(t, err)
	second, err := cache.Get([]domain.Section{sections[0]})
	require.NoError(t, err)
	require.Same(t, first, second)

	cache.Flush()
	require.Zero(t, cache.Len())
}

func TestGraphCacheDoesNotStoreFailures(t *testing.T) {
	cache := NewGraphCache(time.Minute, time.Minute)

	_, err := cache.Get([]domain.Section{{UpStationID: 1, DownStationID: 1, Distance: 3}})
	require.ErrorIs(t, err, domain.ErrInvalidSection)
	require.Zero(t, cache.Len())
}
