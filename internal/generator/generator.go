package generator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/shindong96/atdd-subway-path/internal/domain"
)

// StationRecord is the serialized form of a station.
type StationRecord struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SectionRecord is the serialized form of a section.
type SectionRecord struct {
	LineID        int64 `json:"lineId"`
	UpStationID   int64 `json:"upStationId"`
	DownStationID int64 `json:"downStationId"`
	Distance      int   `json:"distance"`
}

// Dataset is a complete network: every station and every section of every line.
type Dataset struct {
	Stations []StationRecord `json:"stations"`
	Sections []SectionRecord `json:"sections"`
}

// DomainStations converts the station records.
func (d Dataset) DomainStations() []domain.Station {
	out := make([]domain.Station, len(d.Stations))
	for i, s := range d.Stations {
		out[i] = domain.Station{ID: s.ID, Name: s.Name}
	}
	return out
}

// DomainSections converts the section records.
func (d Dataset) DomainSections() []domain.Section {
	out := make([]domain.Section, len(d.Sections))
	for i, s := range d.Sections {
		out[i] = domain.Section{
			LineID:        s.LineID,
			UpStationID:   s.UpStationID,
			DownStationID: s.DownStationID,
			Distance:      s.Distance,
		}
	}
	return out
}

// Generator produces synthetic subway networks. Each line is a chain of
// stations; a station may be shared with an earlier line to form a transfer.
type Generator struct {
	cfg  Config
	rand *rand.Rand
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	if cfg.NumLines <= 0 {
		cfg.NumLines = DefaultConfig().NumLines
	}
	if cfg.StationsPerLine < 2 {
		cfg.StationsPerLine = DefaultConfig().StationsPerLine
	}
	if cfg.TransferChance < 0 {
		cfg.TransferChance = 0
	}
	if cfg.MaxDistance <= 0 {
		cfg.MaxDistance = DefaultConfig().MaxDistance
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:  cfg,
		rand: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Generate synthesises stations and sections. It respects context cancellation.
func (g *Generator) Generate(ctx context.Context) (Dataset, error) {
	var ds Dataset
	var nextID int64 = 1

	newStation := func() int64 {
		id := nextID
		nextID++
		ds.Stations = append(ds.Stations, StationRecord{ID: id, Name: g.stationName(id)})
		return id
	}

	for line := 1; line <= g.cfg.NumLines; line++ {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}

		onLine := make(map[int64]struct{}, g.cfg.StationsPerLine)
		var prev int64
		for i := 0; i < g.cfg.StationsPerLine; i++ {
			id := g.pickStation(ds.Stations, onLine, line)
			if id == 0 {
				id = newStation()
			}
			onLine[id] = struct{}{}

			if prev != 0 {
				ds.Sections = append(ds.Sections, SectionRecord{
					LineID:        int64(line),
					UpStationID:   prev,
					DownStationID: id,
					Distance:      1 + g.rand.Intn(g.cfg.MaxDistance),
				})
			}
			prev = id
		}
	}
	return ds, nil
}

// pickStation returns an existing station to reuse as a transfer, or 0.
func (g *Generator) pickStation(existing []StationRecord, onLine map[int64]struct{}, line int) int64 {
	if line == 1 || len(existing) == 0 || g.rand.Float64() >= g.cfg.TransferChance {
		return 0
	}
	for attempt := 0; attempt < 4; attempt++ {
		candidate := existing[g.rand.Intn(len(existing))].ID
		if _, used := onLine[candidate]; !used {
			return candidate
		}
	}
	return 0
}

var nameFragments = []string{
	"강남", "양재", "교대", "남부터미널", "역삼", "선릉", "삼성", "잠실",
	"신림", "사당", "이수", "동작", "용산", "서울", "시청", "종각",
	"을지로", "신촌", "홍대입구", "합정", "당산", "여의도", "노량진", "대림",
}

func (g *Generator) stationName(id int64) string {
	base := nameFragments[int(id-1)%len(nameFragments)]
	if round := int(id-1) / len(nameFragments); round > 0 {
		return fmt.Sprintf("%s%d역", base, round+1)
	}
	return base + "역"
}
