package service

import (
	"encoding/binary"
	"encoding/hex"
	"hash/fnv"
	"sort"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/shindong96/atdd-subway-path/internal/domain"
	"github.com/shindong96/atdd-subway-path/internal/route"
)

// GraphCache keeps built routing graphs keyed by a fingerprint of the section
// set they were built from. Any change to the sections yields a new key, so
// stale graphs are never served; old entries simply expire.
type GraphCache struct {
	cache *cache.Cache
}

// NewGraphCache creates a cache whose entries live for ttl and are swept every
// cleanup interval.
func NewGraphCache(ttl, cleanup time.Duration) *GraphCache {
	return &GraphCache{cache: cache.New(ttl, cleanup)}
}

// Get returns the graph for sections, building and storing it on a miss.
// Build errors are not cached.
func (c *GraphCache) Get(sections []domain.Section) (*route.Graph, error) {
	key := Fingerprint(sections)
	if cached, found := c.cache.Get(key); found {
		return cached.(*route.Graph), nil
	}

	g, err := route.Build(sections)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, g)
	return g, nil
}

// Len is the number of cached graphs, expired ones included until swept.
func (c *GraphCache) Len() int {
	return c.cache.ItemCount()
}

// Flush drops every cached graph.
func (c *GraphCache) Flush() {
	c.cache.Flush()
}

// Fingerprint identifies a section multiset independently of its order.
func Fingerprint(sections []domain.Section) string {
	sorted := append([]domain.Section(nil), sections...)
	sort.Slice(sorted, func(a, b int) bool {
		x, y := sorted[a], sorted[b]
		if x.UpStationID != y.UpStationID {
			return x.UpStationID < y.UpStationID
		}
		if x.DownStationID != y.DownStationID {
			return x.DownStationID < y.DownStationID
		}
		if x.LineID != y.LineID {
			return x.LineID < y.LineID
		}
		return x.Distance < y.Distance
	})

	h := fnv.New64a()
	var buf [32]byte
	for _, s := range sorted {
		binary.BigEndian.PutUint64(buf[0:8], uint64(s.LineID))
		binary.BigEndian.PutUint64(buf[8:16], uint64(s.UpStationID))
		binary.BigEndian.PutUint64(buf[16:24], uint64(s.DownStationID))
		binary.BigEndian.PutUint64(buf[24:32], uint64(int64(s.Distance)))
		_, _ = h.Write(buf[:])
	}
	return hex.EncodeToString(h.Sum(nil))
}
