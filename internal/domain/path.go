package domain

// Path is an ordered walk from a source to a target station, both inclusive.
type Path struct {
	Stations []int64
	Distance int
}

// Source returns the first station of the path, or 0 when empty.
func (p Path) Source() int64 {
	if len(p.Stations) == 0 {
		return 0
	}
	return p.Stations[0]
}

// Target returns the last station of the path, or 0 when empty.
func (p Path) Target() int64 {
	if len(p.Stations) == 0 {
		return 0
	}
	return p.Stations[len(p.Stations)-1]
}

// Route is a resolved path with station names and the fare charged for it.
type Route struct {
	Stations []Station
	Distance int
	Fare     int
}
