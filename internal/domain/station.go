package domain

// Station is a node of the subway network. Stations are owned by the store and
// referenced by ID everywhere else.
type Station struct {
	ID   int64
	Name string
}

// Section is one physical track segment between two adjacent stations of a
// line. Routing ignores LineID and treats every section as an undirected edge.
type Section struct {
	LineID        int64
	UpStationID   int64
	DownStationID int64
	Distance      int
}

// Validate reports whether the section can be used as a routing edge.
func (s Section) Validate() error {
	if s.Distance <= 0 {
		return &Error{Kind: KindInvalidSection, StationID: s.UpStationID, Value: s.Distance}
	}
	if s.UpStationID == s.DownStationID {
		return &Error{Kind: KindInvalidSection, StationID: s.UpStationID, Value: s.Distance}
	}
	return nil
}
