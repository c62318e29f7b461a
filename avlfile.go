package avl

import (
	"fmt"
	"io"
)

// Vortex lattice discretization written into every surface block.
const (
	nChordwise = 8
	nSpanwise  = 12
	cSpace     = 1.0 // cosine chordwise spacing
	sSpace     = 1.0 // cosine spanwise spacing
)

// ControlSurface is an optional trailing-edge control attached to an emitted
// surface.
type ControlSurface struct {
	Name          string
	HingeFraction float64 // hinge location as a chord fraction
	SignDup       float64 // deflection sign on the mirrored half: +1 elevator, -1 aileron/rudder
}

// NamedSurface pairs a resolved surface with its emission attributes. The
// geometry may come from measured points or from tail estimation; the
// emitter does not distinguish the two.
type NamedSurface struct {
	Name     string
	Geometry SurfaceGeometry
	Airfoil  string // NACA camber-line digits, e.g. "2412"; empty emits a flat plate
	Control  *ControlSurface
}

// Aircraft bundles the surfaces and reference quantities serialized into one
// AVL geometry file. The first surface must be the wing: its area, MAC and
// span become Sref, Cref and Bref.
type Aircraft struct {
	Name     string
	Mach     float64
	CG       [3]float64
	Surfaces []NamedSurface
}

type geomWriter struct {
	w   io.Writer
	err error
}

func (g *geomWriter) printf(format string, args ...interface{}) {
	if g.err != nil {
		return
	}
	_, g.err = fmt.Fprintf(g.w, format, args...)
}

// WriteGeometryFile serializes the aircraft into AVL's section-based
// geometry description.
func WriteGeometryFile(w io.Writer, ac Aircraft) error {
	if len(ac.Surfaces) == 0 {
		return MalformedInputError{Reason: "aircraft has no surfaces"}
	}
	wing := ac.Surfaces[0].Geometry
	if wing.Area <= 0 || wing.MAC <= 0 || wing.Span <= 0 {
		return DegenerateGeometryError{Quantity: "wing reference quantities", Value: wing.Area}
	}

	g := &geomWriter{w: w}
	g.printf("%s\n", ac.Name)
	g.printf("#Mach\n%.3f\n", ac.Mach)
	g.printf("#IYsym  IZsym  Zsym\n0  0  0.0\n")
	g.printf("#Sref    Cref    Bref\n%.4f  %.4f  %.4f\n", wing.Area, wing.MAC, wing.Span)
	g.printf("#Xref   Yref   Zref\n%.4f  %.4f  %.4f\n", ac.CG[0], ac.CG[1], ac.CG[2])

	for _, surf := range ac.Surfaces {
		writeSurface(g, surf)
	}
	return g.err
}

func writeSurface(g *geomWriter, surf NamedSurface) {
	geom := surf.Geometry
	g.printf("#%s\nSURFACE\n%s\n", divider, surf.Name)
	g.printf("#Nchordwise  Cspace  Nspanwise  Sspace\n%d  %.1f  %d  %.1f\n", nChordwise, cSpace, nSpanwise, sSpace)
	if geom.Mirrored {
		g.printf("YDUPLICATE\n0.0\n")
	}
	g.printf("ANGLE\n0.0\n")
	for _, sec := range geom.Sections {
		g.printf("#\nSECTION\n")
		g.printf("#Xle      Yle      Zle      Chord    Ainc\n")
		g.printf("%9.4f %9.4f %9.4f %9.4f  0.000\n", sec.LE.X, sec.LE.Y, sec.LE.Z, sec.Chord)
		if surf.Airfoil != "" {
			g.printf("NACA\n%s\n", surf.Airfoil)
		}
		if surf.Control != nil {
			writeControl(g, geom, *surf.Control)
		}
	}
}

func writeControl(g *geomWriter, geom SurfaceGeometry, ctl ControlSurface) {
	hinge := "0. 1. 0."
	if geom.Axis == SpanZ {
		hinge = "0. 0. 1."
	}
	g.printf("CONTROL\n#name  gain  Xhinge  XYZhvec  SgnDup\n")
	g.printf("%s  1.0  %.3f  %s  %.1f\n", ctl.Name, ctl.HingeFraction, hinge, ctl.SignDup)
}

const divider = "=============================================="
