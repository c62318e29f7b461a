package avl

import (
	"errors"
	"math"
	"testing"

	"github.com/gonum/floats"
)

// referenceWing matches the documented reference configuration.
func referenceWing() SurfaceGeometry {
	return SurfaceGeometry{
		Axis:        SpanY,
		Span:        19.89,
		Semispan:    9.945,
		Area:        199.94,
		RootChord:   22.40,
		TipChord:    0.20,
		TaperRatio:  0.0089,
		AspectRatio: 19.89 * 19.89 / 199.94,
		MAC:         26.69,
		Sections: []Section{
			{LE: Point3D{X: 0, Y: 0}, TE: Point3D{X: 22.40, Y: 0}, Chord: 22.40},
			{LE: Point3D{X: 8.0, Y: 9.945}, TE: Point3D{X: 8.20, Y: 9.945}, Chord: 0.20},
		},
		Mirrored: true,
	}
}

func TestEstimateHorizontalTailDocumented(t *testing.T) {
	wing := referenceWing()
	tail, err := EstimateTail(wing, DefaultHorizontalSizing(), Horizontal)
	if err != nil {
		t.Fatal(err)
	}
	// Arm = 2.5 x 26.69 = 66.725 ft, documented as ~66.7.
	if !floats.EqualWithinAbs(tail.MomentArm, 66.725, 1e-9) {
		t.Fatalf("moment arm: got %f", tail.MomentArm)
	}
	if !floats.EqualWithinAbs(tail.MomentArm, 66.7, 0.1) {
		t.Fatalf("moment arm %f is not near the documented 66.7 ft", tail.MomentArm)
	}
	// S_h = V_H S MAC / arm = 0.6 x 199.94 / 2.5 = 47.9856 ft^2, within 5%
	// of the documented ~48.
	if !floats.EqualWithinAbs(tail.Area, 47.9856, 1e-9) {
		t.Fatalf("area: got %f", tail.Area)
	}
	if math.Abs(tail.Area-48)/48 > 0.05 {
		t.Fatalf("area %f is not within 5%% of 48 ft^2", tail.Area)
	}
	if !tail.IsEstimated {
		t.Fatal("estimated tail must carry the provenance flag")
	}
	if tail.Kind != Horizontal {
		t.Fatalf("kind: got %s", tail.Kind)
	}
}

// Re-deriving the volume coefficient from the sized tail must recover the
// input exactly.
func TestEstimateTailVolumeRoundTrip(t *testing.T) {
	wing := referenceWing()
	h, err := EstimateTail(wing, DefaultHorizontalSizing(), Horizontal)
	if err != nil {
		t.Fatal(err)
	}
	implied := h.Area * h.MomentArm / (wing.Area * wing.MAC)
	if !floats.EqualWithinAbs(implied, 0.60, 1e-9) {
		t.Fatalf("implied V_H: got %f, want 0.60", implied)
	}
	v, err := EstimateTail(wing, DefaultVerticalSizing(), Vertical)
	if err != nil {
		t.Fatal(err)
	}
	implied = v.Area * v.MomentArm / (wing.Area * wing.Span)
	if !floats.EqualWithinAbs(implied, 0.05, 1e-9) {
		t.Fatalf("implied V_V: got %f, want 0.05", implied)
	}
}

// Span and chords must reproduce the target area exactly through the
// trapezoid identity S = b c_root (1+taper)/2.
func TestEstimateTailAreaIdentity(t *testing.T) {
	wing := referenceWing()
	for _, kind := range []TailKind{Horizontal, Vertical} {
		sizing := DefaultHorizontalSizing()
		if kind == Vertical {
			sizing = DefaultVerticalSizing()
		}
		tail, err := EstimateTail(wing, sizing, kind)
		if err != nil {
			t.Fatalf("%s: %s", kind, err)
		}
		rebuilt := tail.Span * tail.RootChord * (1 + tail.TaperRatio) / 2
		if !floats.EqualWithinRel(rebuilt, tail.Area, 1e-9) {
			t.Fatalf("%s: b c (1+taper)/2 = %f != S = %f", kind, rebuilt, tail.Area)
		}
		if !floats.EqualWithinRel(tail.AspectRatio, tail.Span*tail.Span/tail.Area, 1e-9) {
			t.Fatalf("%s: AR %f != b^2/S", kind, tail.AspectRatio)
		}
		if !floats.EqualWithinAbs(tail.TipChord/tail.RootChord, sizing.TaperRatio, 1e-12) {
			t.Fatalf("%s: taper %f != %f", kind, tail.TipChord/tail.RootChord, sizing.TaperRatio)
		}
		if tail.MAC <= tail.TipChord || tail.MAC >= tail.RootChord {
			t.Fatalf("%s: MAC %f outside (%f, %f)", kind, tail.MAC, tail.TipChord, tail.RootChord)
		}
		if len(tail.Sections) != 2 {
			t.Fatalf("%s: expected root and tip sections, got %d", kind, len(tail.Sections))
		}
	}
}

func TestEstimateTailDefaultsAndOverrides(t *testing.T) {
	wing := referenceWing()
	// Zero AspectRatio on the horizontal sizing scales the wing AR by 0.8.
	h, err := EstimateTail(wing, DefaultHorizontalSizing(), Horizontal)
	if err != nil {
		t.Fatal(err)
	}
	wantSpan := math.Sqrt(h.Area * 0.8 * wing.AspectRatio)
	if !floats.EqualWithinRel(h.Span, wantSpan, 1e-12) {
		t.Fatalf("default AR span: got %f, want %f", h.Span, wantSpan)
	}
	// The vertical default is a fixed AR of 1.5 and a one-sided surface.
	v, err := EstimateTail(wing, DefaultVerticalSizing(), Vertical)
	if err != nil {
		t.Fatal(err)
	}
	if !floats.EqualWithinRel(v.Span, math.Sqrt(v.Area*1.5), 1e-12) {
		t.Fatalf("vertical span: got %f", v.Span)
	}
	if v.Mirrored || v.Axis != SpanZ {
		t.Fatal("vertical tail must be a one-sided z-axis surface")
	}
	// Explicit overrides win.
	sizing := DefaultHorizontalSizing()
	sizing.AspectRatio = 4
	sizing.MomentArmFactor = 3
	h2, err := EstimateTail(wing, sizing, Horizontal)
	if err != nil {
		t.Fatal(err)
	}
	if !floats.EqualWithinRel(h2.Span, math.Sqrt(h2.Area*4), 1e-12) {
		t.Fatalf("override AR span: got %f", h2.Span)
	}
	if !floats.EqualWithinAbs(h2.MomentArm, 3*wing.MAC, 1e-12) {
		t.Fatalf("override arm: got %f", h2.MomentArm)
	}
}

func TestEstimateTailSitsAtRootTrailingEdge(t *testing.T) {
	wing := referenceWing()
	h, err := EstimateTail(wing, DefaultHorizontalSizing(), Horizontal)
	if err != nil {
		t.Fatal(err)
	}
	if !floats.EqualWithinAbs(h.Sections[0].LE.X, 22.40, 1e-12) {
		t.Fatalf("tail root LE should sit at the wing root TE, got x=%f", h.Sections[0].LE.X)
	}
}

func TestEstimateTailDegenerateWing(t *testing.T) {
	var degenerate DegenerateGeometryError
	wing := referenceWing()
	wing.Area = 0
	if _, err := EstimateTail(wing, DefaultHorizontalSizing(), Horizontal); !errors.As(err, &degenerate) {
		t.Fatalf("zero-area wing must fail, got %v", err)
	}
	wing = referenceWing()
	wing.MAC = -1
	if _, err := EstimateTail(wing, DefaultHorizontalSizing(), Horizontal); !errors.As(err, &degenerate) {
		t.Fatalf("negative-MAC wing must fail, got %v", err)
	}
	wing = referenceWing()
	wing.Span = 0
	if _, err := EstimateTail(wing, DefaultVerticalSizing(), Vertical); !errors.As(err, &degenerate) {
		t.Fatalf("zero-span wing must fail vertical sizing, got %v", err)
	}
}

func TestEstimateTailBadSizing(t *testing.T) {
	var malformed MalformedInputError
	sizing := DefaultHorizontalSizing()
	sizing.MomentArmFactor = 0
	if _, err := EstimateTail(referenceWing(), sizing, Horizontal); !errors.As(err, &malformed) {
		t.Fatalf("zero arm factor must be rejected, got %v", err)
	}
}
