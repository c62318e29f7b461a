package avl

import (
	"fmt"
	"math"

	"github.com/gonum/floats"
)

// chordFloor is the smallest root chord considered physically meaningful, in
// feet. Anything at or below it would blow up the taper ratio.
const chordFloor = 1e-9

// Section is one spanwise cut of a surface: the LE and TE samples and the
// local planform chord.
type Section struct {
	LE, TE Point3D
	Chord  float64
}

// SurfaceGeometry is the derived planform description of a lifting surface.
// All lengths are in feet, all angles in degrees. It is built once by
// ResolveSurface (or EstimateTail) and never mutated; a change in geometry
// requires reconstruction from new points.
type SurfaceGeometry struct {
	Axis        SpanAxis
	Span        float64 // tip-to-tip span
	Semispan    float64
	Area        float64 // reference planform area, ft^2
	RootChord   float64
	TipChord    float64
	TaperRatio  float64 // tip chord / root chord
	AspectRatio float64 // span^2 / area
	MAC         float64 // mean aerodynamic chord
	MACSpan     float64 // spanwise location of the MAC
	MACLEX      float64 // chordwise location of the leading edge at the MAC station
	SweepLE     float64 // leading-edge sweep
	SweepC4     float64 // quarter-chord sweep
	Dihedral    float64
	Sections    []Section // stations in spanwise order, as loaded
	Mirrored    bool      // input was a half-span cloud mirrored about the symmetry plane
	IsEstimated bool      // derived analytically rather than from measured points
}

func (g SurfaceGeometry) String() string {
	return fmt.Sprintf("b=%.3f ft, S=%.3f ft^2, AR=%.3f, taper=%.4f, MAC=%.3f ft, sweepLE=%.2f deg, dihedral=%.2f deg",
		g.Span, g.Area, g.AspectRatio, g.TaperRatio, g.MAC, g.SweepLE, g.Dihedral)
}

// rootSection returns the section nearest the symmetry plane.
func (g SurfaceGeometry) rootSection() Section {
	root := g.Sections[0]
	for _, sec := range g.Sections[1:] {
		if math.Abs(sec.LE.Span(g.Axis)) < math.Abs(root.LE.Span(g.Axis)) {
			root = sec
		}
	}
	return root
}

// ResolveSurface derives the planform description of a lifting surface from
// matched LE/TE station sequences. Both sequences must be loaded (feet,
// sorted by span); the i-th LE and i-th TE points are taken as the same
// physical spanwise cut.
//
// A cloud whose spanwise coordinates all share one sign is a half-span
// export and is mirrored about the symmetry plane; mixed signs mean the
// cloud already covers both sides. A cloud sitting entirely on the symmetry
// plane cannot be classified and is rejected.
func ResolveSurface(le, te PointSequence) (SurfaceGeometry, error) {
	if le.Len() != te.Len() {
		return SurfaceGeometry{}, StationMismatchError{LEStations: le.Len(), TEStations: te.Len()}
	}
	if le.Axis != te.Axis {
		return SurfaceGeometry{}, MalformedInputError{Reason: "LE and TE sequences use different span axes"}
	}
	n := le.Len()
	if n < 2 {
		return SurfaceGeometry{}, MalformedInputError{Reason: fmt.Sprintf("need at least two stations, got %d", n)}
	}
	axis := le.Axis

	spans := le.spans()
	chords := make([]float64, n)
	chords2 := make([]float64, n)
	absSpans := make([]float64, n)
	sections := make([]Section, n)
	for i := range le.Points {
		lp, tp := le.Points[i], te.Points[i]
		// Chordwise projection only: spanwise and vertical offsets between
		// the LE and TE samples feed sweep and dihedral, not chord length.
		chords[i] = tp.X - lp.X
		chords2[i] = chords[i] * chords[i]
		absSpans[i] = math.Abs(spans[i])
		sections[i] = Section{LE: lp, TE: tp, Chord: chords[i]}
	}

	var neg, pos int
	for _, s := range spans {
		switch {
		case s < -stationTol:
			neg++
		case s > stationTol:
			pos++
		}
	}
	if neg == 0 && pos == 0 {
		return SurfaceGeometry{}, MalformedInputError{Reason: "all stations sit on the symmetry plane, cannot tell a half-span cloud from a full-span one"}
	}
	mirrored := neg == 0 || pos == 0

	rootChord := chords[floats.MinIdx(absSpans)]
	tipChord := chords[floats.MaxIdx(absSpans)]
	if rootChord <= chordFloor {
		return SurfaceGeometry{}, DegenerateGeometryError{Quantity: "root chord", Value: rootChord}
	}

	var span, area float64
	if mirrored {
		span = 2 * floats.Max(absSpans)
		area = 2 * trapezoid(spans, chords)
	} else {
		span = spans[n-1] - spans[0]
		area = trapezoid(spans, chords)
	}
	if area <= 0 {
		return SurfaceGeometry{}, DegenerateGeometryError{Quantity: "reference area", Value: area}
	}

	// The MAC integral shares the panel boundaries of the area integral so
	// that area- and MAC-weighted quantities stay numerically consistent.
	// The ratio form equals (2/S) * integral of c^2 over the half-span for
	// both half and full clouds.
	chordInt := trapezoid(spans, chords)
	mac := trapezoid(spans, chords2) / chordInt
	cTimesS := make([]float64, n)
	for i := range chords {
		cTimesS[i] = chords[i] * absSpans[i]
	}
	macSpan := trapezoid(spans, cTimesS) / chordInt

	// Sweep and dihedral come from least-squares fits against the spanwise
	// magnitude. A full-span cloud only feeds its y >= 0 half to the fits,
	// as both halves of a symmetric surface carry the same information.
	fs, fleX, fc4, frise := fitArrays(le, chords, spans, !mirrored)
	if len(fs) < 2 {
		fs, fleX, fc4, frise = fitArrays(le, chords, spans, false)
	}
	leSlope, _ := linearFit(fs, fleX)
	c4Slope, _ := linearFit(fs, fc4)
	riseSlope, _ := linearFit(fs, frise)

	if fs[0] > fs[len(fs)-1] {
		reverse(fs)
		reverse(fleX)
	}
	macLEX := interpolate(fs, fleX, macSpan)

	return SurfaceGeometry{
		Axis:        axis,
		Span:        span,
		Semispan:    span / 2,
		Area:        area,
		RootChord:   rootChord,
		TipChord:    tipChord,
		TaperRatio:  tipChord / rootChord,
		AspectRatio: span * span / area,
		MAC:         mac,
		MACSpan:     macSpan,
		MACLEX:      macLEX,
		SweepLE:     math.Atan(leSlope) * rad2deg,
		SweepC4:     math.Atan(c4Slope) * rad2deg,
		Dihedral:    math.Atan(riseSlope) * rad2deg,
		Sections:    sections,
		Mirrored:    mirrored,
	}, nil
}

// fitArrays gathers spanwise magnitude against LE x, quarter-chord x and
// rise for the sweep and dihedral fits. With positiveOnly set, stations on
// the negative side of the symmetry plane are skipped.
func fitArrays(le PointSequence, chords, spans []float64, positiveOnly bool) (s, leX, c4X, rise []float64) {
	for i, p := range le.Points {
		if positiveOnly && spans[i] < -stationTol {
			continue
		}
		s = append(s, math.Abs(spans[i]))
		leX = append(leX, p.X)
		c4X = append(c4X, p.X+0.25*chords[i])
		rise = append(rise, p.Rise(le.Axis))
	}
	return
}

func reverse(v []float64) {
	for i, j := 0, len(v)-1; i < j; i, j = i+1, j-1 {
		v[i], v[j] = v[j], v[i]
	}
}
