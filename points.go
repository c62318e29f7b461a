// Package avl turns CAD-exported wing and tail point clouds into input files
// for the AVL vortex-lattice solver, drives the solver as a black-box
// process, and scrapes its text reports back into numbers.
//
// All geometry is carried in feet internally, matching the unit system of
// the solver input files.
package avl

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/gonum/floats"
)

// Unit is a linear unit of incoming CAD data.
type Unit uint8

// Supported input units.
const (
	Feet Unit = iota
	Inches
	Millimeters
	Meters
)

// toFeet returns the factor converting this unit to feet.
func (u Unit) toFeet() float64 {
	switch u {
	case Feet:
		return 1
	case Inches:
		return 1 / 12.0
	case Millimeters:
		return 1 / 304.8
	case Meters:
		return 3.28084
	default:
		panic(fmt.Errorf("unknown unit %d", u))
	}
}

func (u Unit) String() string {
	switch u {
	case Feet:
		return "feet"
	case Inches:
		return "inches"
	case Millimeters:
		return "millimeters"
	case Meters:
		return "meters"
	default:
		return fmt.Sprintf("unit(%d)", u)
	}
}

// UnitFromString parses a unit name as found in scenario files.
func UnitFromString(name string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ft", "feet", "foot":
		return Feet, nil
	case "in", "inch", "inches":
		return Inches, nil
	case "mm", "millimeter", "millimeters":
		return Millimeters, nil
	case "m", "meter", "meters":
		return Meters, nil
	default:
		return Feet, fmt.Errorf("unknown unit `%s`", name)
	}
}

// SpanAxis designates which coordinate runs along the span of a surface.
type SpanAxis uint8

const (
	// SpanY is the span axis of horizontal surfaces (wing, horizontal tail).
	SpanY SpanAxis = iota
	// SpanZ is the span axis of vertical surfaces (fin, rudder).
	SpanZ
)

// Point3D is a single edge sample in feet. The chordwise axis is x; whether
// the point belongs to a leading or trailing edge is carried by the sequence
// it is part of, not by the point itself.
type Point3D struct {
	X, Y, Z float64
}

// Span returns the spanwise coordinate of the point for the given axis.
func (p Point3D) Span(axis SpanAxis) float64 {
	if axis == SpanZ {
		return p.Z
	}
	return p.Y
}

// Rise returns the coordinate normal to both chord and span, which feeds the
// dihedral computation.
func (p Point3D) Rise(axis SpanAxis) float64 {
	if axis == SpanZ {
		return p.Y
	}
	return p.Z
}

func (p Point3D) String() string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", p.X, p.Y, p.Z)
}

func (p Point3D) finite() bool {
	for _, c := range []float64{p.X, p.Y, p.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// stationTol is the spanwise distance under which two stations are
// considered coincident, in feet.
const stationTol = 1e-6

// PointSequence is an ordered set of edge samples, one per spanwise station,
// sorted by increasing spanwise coordinate.
type PointSequence struct {
	Points []Point3D
	Axis   SpanAxis
}

// Len returns the number of stations.
func (s PointSequence) Len() int { return len(s.Points) }

// spans returns the spanwise coordinate of every station, in order.
func (s PointSequence) spans() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Span(s.Axis)
	}
	return out
}

// LoadPoints validates raw edge samples, converts them to feet and orders
// them by spanwise station. Coincident stations are collapsed onto the first
// occurrence. The transformation is pure: the input slice is not modified.
func LoadPoints(points []Point3D, unit Unit, axis SpanAxis) (PointSequence, error) {
	if len(points) < 2 {
		return PointSequence{}, MalformedInputError{Reason: fmt.Sprintf("need at least a root and a tip station, got %d point(s)", len(points))}
	}
	scale := unit.toFeet()
	converted := make([]Point3D, 0, len(points))
	for i, p := range points {
		if !p.finite() {
			return PointSequence{}, MalformedInputError{Reason: fmt.Sprintf("non-finite coordinate at point %d", i)}
		}
		converted = append(converted, Point3D{X: p.X * scale, Y: p.Y * scale, Z: p.Z * scale})
	}
	// Stable sort so that the first of two coincident stations in input
	// order is the one kept by the dedup below.
	sort.SliceStable(converted, func(i, j int) bool {
		return converted[i].Span(axis) < converted[j].Span(axis)
	})
	deduped := converted[:1]
	for _, p := range converted[1:] {
		if floats.EqualWithinAbs(p.Span(axis), deduped[len(deduped)-1].Span(axis), stationTol) {
			continue
		}
		deduped = append(deduped, p)
	}
	if len(deduped) < 2 {
		return PointSequence{}, MalformedInputError{Reason: "all points collapse onto a single spanwise station"}
	}
	return PointSequence{Points: deduped, Axis: axis}, nil
}

// ReadPointsCSV reads an edge point export with x,y,z columns (a header row
// and `#` comment lines are skipped) and loads it as a PointSequence.
func ReadPointsCSV(r io.Reader, unit Unit, axis SpanAxis) (PointSequence, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return PointSequence{}, MalformedInputError{Reason: err.Error()}
	}
	var points []Point3D
	for i, record := range records {
		if len(record) < 3 {
			return PointSequence{}, MalformedInputError{Reason: fmt.Sprintf("row %d: need x,y,z columns, got %d", i+1, len(record))}
		}
		if i == 0 && !numericRecord(record) {
			continue // header row
		}
		var c [3]float64
		for j := 0; j < 3; j++ {
			val, err := strconv.ParseFloat(strings.TrimSpace(record[j]), 64)
			if err != nil {
				return PointSequence{}, MalformedInputError{Reason: fmt.Sprintf("row %d: %s", i+1, err)}
			}
			c[j] = val
		}
		points = append(points, Point3D{X: c[0], Y: c[1], Z: c[2]})
	}
	return LoadPoints(points, unit, axis)
}

func numericRecord(record []string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(record[0]), 64)
	return err == nil
}
