package generator

// Config drives the synthetic network generator.
type Config struct {
	NumLines        int
	StationsPerLine int
	TransferChance  float64
	MaxDistance     int
	Seed            int64
}

// DefaultConfig returns settings roughly the size of a metropolitan network.
func DefaultConfig() Config {
	return Config{
		NumLines:        9,
		StationsPerLine: 30,
		TransferChance:  0.15,
		MaxDistance:     12,
		Seed:            42,
	}
}
