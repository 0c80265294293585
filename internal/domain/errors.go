package domain

import (
	"errors"
	"fmt"
)

// ErrorKind enumerates the failures a routing or fare query can produce.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindInvalidSection
	KindStationNotFound
	KindSameStation
	KindNoPathExists
	KindInvalidAge
	KindInvalidDistance
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidSection:
		return "InvalidSection"
	case KindStationNotFound:
		return "StationNotFound"
	case KindSameStation:
		return "SameStation"
	case KindNoPathExists:
		return "NoPathExists"
	case KindInvalidAge:
		return "InvalidAge"
	case KindInvalidDistance:
		return "InvalidDistance"
	default:
		return "Unknown"
	}
}

// Error is the single error type returned by the routing core. Kind selects the
// case; the remaining fields carry whatever detail that case has.
type Error struct {
	Kind      ErrorKind
	StationID int64
	TargetID  int64
	Index     int
	Value     int
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindInvalidSection:
		return fmt.Sprintf("invalid section at index %d: station %d, distance %d", e.Index, e.StationID, e.Value)
	case KindStationNotFound:
		return fmt.Sprintf("station %d not found", e.StationID)
	case KindSameStation:
		return fmt.Sprintf("source and target are the same station %d", e.StationID)
	case KindNoPathExists:
		return fmt.Sprintf("no path from station %d to station %d", e.StationID, e.TargetID)
	case KindInvalidAge:
		return fmt.Sprintf("invalid age %d", e.Value)
	case KindInvalidDistance:
		return fmt.Sprintf("invalid distance %d", e.Value)
	default:
		return "routing error"
	}
}

// Is matches any *Error of the same kind, so the sentinels below work with
// errors.Is regardless of the detail fields.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrInvalidSection  = &Error{Kind: KindInvalidSection}
	ErrStationNotFound = &Error{Kind: KindStationNotFound}
	ErrSameStation     = &Error{Kind: KindSameStation}
	ErrNoPath          = &Error{Kind: KindNoPathExists}
	ErrInvalidAge      = &Error{Kind: KindInvalidAge}
	ErrInvalidDistance = &Error{Kind: KindInvalidDistance}
)

// KindOf extracts the error kind from err, or KindUnknown when err is not a
// routing error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
