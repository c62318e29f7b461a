package avl

import "fmt"

// MalformedInputError signals that raw point data cannot be turned into a
// valid station sequence.
type MalformedInputError struct {
	Reason string
}

func (e MalformedInputError) Error() string {
	return fmt.Sprintf("malformed point input: %s", e.Reason)
}

// StationMismatchError signals that the LE and TE sequences of a surface do
// not describe the same spanwise cuts.
type StationMismatchError struct {
	LEStations, TEStations int
}

func (e StationMismatchError) Error() string {
	return fmt.Sprintf("station mismatch: %d leading edge points vs %d trailing edge points", e.LEStations, e.TEStations)
}

// DegenerateGeometryError signals a geometric quantity too small to feed a
// division. It is returned instead of letting NaN propagate into the
// aerodynamic results.
type DegenerateGeometryError struct {
	Quantity string
	Value    float64
}

func (e DegenerateGeometryError) Error() string {
	return fmt.Sprintf("degenerate geometry: %s = %g", e.Quantity, e.Value)
}
