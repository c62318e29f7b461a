package avl

import (
	"fmt"
	"math"
)

// TailKind distinguishes the two estimated tail surfaces.
type TailKind uint8

const (
	// Horizontal tail, sized from the wing area and MAC.
	Horizontal TailKind = iota
	// Vertical tail, sized from the wing area and span.
	Vertical
)

func (k TailKind) String() string {
	if k == Vertical {
		return "vertical tail"
	}
	return "horizontal tail"
}

// TailSizing gathers the volume-coefficient sizing parameters of one tail
// surface. Start from DefaultHorizontalSizing or DefaultVerticalSizing and
// override fields as needed; sizing is always passed explicitly so that
// EstimateTail stays a pure function of its arguments.
type TailSizing struct {
	VolumeCoeff     float64 // V_H or V_V
	MomentArmFactor float64 // tail moment arm as a multiple of the wing MAC
	AspectRatio     float64 // target tail aspect ratio; zero scales the wing's by 0.8
	TaperRatio      float64 // fixed tail taper ratio
}

// DefaultHorizontalSizing returns the horizontal tail sizing of the
// reference configuration: V_H = 0.60, arm = 2.5 MAC, AR = 0.8 x wing AR.
func DefaultHorizontalSizing() TailSizing {
	return TailSizing{VolumeCoeff: 0.60, MomentArmFactor: 2.5, TaperRatio: 0.5}
}

// DefaultVerticalSizing returns the vertical tail sizing of the reference
// configuration: V_V = 0.05, arm = 2.5 MAC, AR = 1.5.
func DefaultVerticalSizing() TailSizing {
	return TailSizing{VolumeCoeff: 0.05, MomentArmFactor: 2.5, AspectRatio: 1.5, TaperRatio: 0.5}
}

// EstimatedTailGeometry is a tail surface sized analytically from a measured
// wing by tail-volume coefficient. It carries the same planform shape as a
// measured SurfaceGeometry (with IsEstimated set) so downstream consumers
// never need to care about provenance.
type EstimatedTailGeometry struct {
	SurfaceGeometry
	Kind        TailKind
	VolumeCoeff float64
	MomentArm   float64 // ft
}

func (t EstimatedTailGeometry) String() string {
	return fmt.Sprintf("%s: %s, arm=%.3f ft (V=%.3f)", t.Kind, t.SurfaceGeometry, t.MomentArm, t.VolumeCoeff)
}

// EstimateTail sizes a tail surface from a resolved wing planform. The
// horizontal tail area follows S_h = V_H S c / l with l the moment arm; the
// vertical formula substitutes the wing span for the MAC. Chords assume the
// fixed taper of the sizing, chosen so span and chords reproduce the target
// area exactly.
func EstimateTail(wing SurfaceGeometry, sizing TailSizing, kind TailKind) (EstimatedTailGeometry, error) {
	if wing.Area <= 0 {
		return EstimatedTailGeometry{}, DegenerateGeometryError{Quantity: "wing reference area", Value: wing.Area}
	}
	if wing.MAC <= 0 {
		return EstimatedTailGeometry{}, DegenerateGeometryError{Quantity: "wing MAC", Value: wing.MAC}
	}
	if kind == Vertical && wing.Span <= 0 {
		return EstimatedTailGeometry{}, DegenerateGeometryError{Quantity: "wing span", Value: wing.Span}
	}
	if sizing.VolumeCoeff <= 0 || sizing.MomentArmFactor <= 0 || sizing.TaperRatio <= 0 {
		return EstimatedTailGeometry{}, MalformedInputError{Reason: fmt.Sprintf("tail sizing needs positive volume coefficient, arm factor and taper, got %+v", sizing)}
	}

	arm := sizing.MomentArmFactor * wing.MAC
	var area float64
	if kind == Vertical {
		area = sizing.VolumeCoeff * wing.Area * wing.Span / arm
	} else {
		area = sizing.VolumeCoeff * wing.Area * wing.MAC / arm
	}

	ar := sizing.AspectRatio
	if ar == 0 {
		ar = 0.8 * wing.AspectRatio
	}
	if ar <= 0 {
		return EstimatedTailGeometry{}, DegenerateGeometryError{Quantity: "tail aspect ratio", Value: ar}
	}

	span := math.Sqrt(area * ar)
	λ := sizing.TaperRatio
	root := 2 * area / (span * (1 + λ))
	tip := λ * root
	mac := (2.0 / 3.0) * root * (1 + λ + λ*λ) / (1 + λ)
	macSpan := (span / 6) * (1 + 2*λ) / (1 + λ)

	// The tail root sits at the wing root trailing edge, on the centerline.
	var x0 float64
	if len(wing.Sections) > 0 {
		x0 = wing.rootSection().TE.X
	}

	axis := SpanY
	tipLE := Point3D{X: x0, Y: span / 2}
	mirrored := true
	if kind == Vertical {
		// A fin is a one-sided surface: its "span" is its height above the
		// fuselage, not a tip-to-tip extent.
		axis = SpanZ
		tipLE = Point3D{X: x0, Z: span}
		mirrored = false
	}
	sections := []Section{
		{LE: Point3D{X: x0}, TE: Point3D{X: x0 + root}, Chord: root},
		{LE: tipLE, TE: Point3D{X: tipLE.X + tip, Y: tipLE.Y, Z: tipLE.Z}, Chord: tip},
	}

	return EstimatedTailGeometry{
		SurfaceGeometry: SurfaceGeometry{
			Axis:        axis,
			Span:        span,
			Semispan:    span / 2,
			Area:        area,
			RootChord:   root,
			TipChord:    tip,
			TaperRatio:  λ,
			AspectRatio: ar,
			MAC:         mac,
			MACSpan:     macSpan,
			MACLEX:      x0,
			Sections:    sections,
			Mirrored:    mirrored,
			IsEstimated: true,
		},
		Kind:        kind,
		VolumeCoeff: sizing.VolumeCoeff,
		MomentArm:   arm,
	}, nil
}
