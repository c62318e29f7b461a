package avl

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gonum/matrix/mat64"
)

// Conversion factors for mass properties. CAD exports lbm and inches, AVL
// wants slugs and feet, the 6-DOF model wants kg and meters.
const (
	lbmToKg         = 0.45359237
	lbmToSlug       = 1 / 32.174
	inToM           = 0.0254
	lbmIn2ToSlugFt2 = 1 / 4633.056
	lbmIn2ToKgM2    = 0.0002926397
)

// Indexes into the six-component inertia vectors.
const (
	Ixx = iota
	Iyy
	Izz
	Ixy
	Ixz
	Iyz
)

// MassProperties carries the aircraft mass, CG and inertia tensor in the
// three unit systems the toolchain needs. Built once by NewMassProperties.
type MassProperties struct {
	MassLbm, MassSlug, MassKg float64
	CGIn, CGFt, CGM           [3]float64
	// Inertia components in Ixx, Iyy, Izz, Ixy, Ixz, Iyz order.
	InertiaLbmIn2, InertiaSlugFt2, InertiaKgM2 [6]float64
}

// NewMassProperties builds mass properties from CAD units (lbm, inches,
// lbm in^2). The inertia argument takes either the three moments of inertia
// or all six components; the products of inertia default to zero.
func NewMassProperties(massLbm float64, cgIn [3]float64, inertiaLbmIn2 []float64) (MassProperties, error) {
	var full [6]float64
	switch len(inertiaLbmIn2) {
	case 3:
		copy(full[:3], inertiaLbmIn2)
	case 6:
		copy(full[:], inertiaLbmIn2)
	default:
		return MassProperties{}, MalformedInputError{Reason: fmt.Sprintf("inertia needs 3 or 6 components, got %d", len(inertiaLbmIn2))}
	}
	m := MassProperties{MassLbm: massLbm, CGIn: cgIn, InertiaLbmIn2: full}
	m.MassKg = massLbm * lbmToKg
	m.MassSlug = massLbm * lbmToSlug
	for i := 0; i < 3; i++ {
		m.CGFt[i] = cgIn[i] / 12
		m.CGM[i] = cgIn[i] * inToM
	}
	for i := 0; i < 6; i++ {
		m.InertiaSlugFt2[i] = full[i] * lbmIn2ToSlugFt2
		m.InertiaKgM2[i] = full[i] * lbmIn2ToKgM2
	}
	return m, nil
}

// InertiaMatrixSlugFt2 returns the full 3x3 inertia tensor in slug ft^2.
func (m MassProperties) InertiaMatrixSlugFt2() *mat64.SymDense {
	return inertiaMatrix(m.InertiaSlugFt2)
}

// InertiaMatrixKgM2 returns the full 3x3 inertia tensor in kg m^2.
func (m MassProperties) InertiaMatrixKgM2() *mat64.SymDense {
	return inertiaMatrix(m.InertiaKgM2)
}

func inertiaMatrix(i [6]float64) *mat64.SymDense {
	return mat64.NewSymDense(3, []float64{
		i[Ixx], -i[Ixy], -i[Ixz],
		-i[Ixy], i[Iyy], -i[Iyz],
		-i[Ixz], -i[Iyz], i[Izz],
	})
}

func (m MassProperties) String() string {
	return fmt.Sprintf("m=%.6f slug, CG=(%.4f, %.4f, %.4f) ft, Ixx=%.4f Iyy=%.4f Izz=%.4f slug ft^2",
		m.MassSlug, m.CGFt[0], m.CGFt[1], m.CGFt[2], m.InertiaSlugFt2[Ixx], m.InertiaSlugFt2[Iyy], m.InertiaSlugFt2[Izz])
}

// WriteMassFile writes the AVL .mass file (slugs, feet).
func (m MassProperties) WriteMassFile(w io.Writer, name string) error {
	_, err := fmt.Fprintf(w, `#  %s Mass File
#  Units: slugs, feet
#
#  mass    x       y       z       Ixx     Iyy     Izz     Ixy     Ixz     Iyz
   %12.6f  %8.4f  %8.4f  %8.4f  %12.4f  %12.4f  %12.4f  %12.4f  %12.4f  %12.4f
`, name, m.MassSlug, m.CGFt[0], m.CGFt[1], m.CGFt[2],
		m.InertiaSlugFt2[Ixx], m.InertiaSlugFt2[Iyy], m.InertiaSlugFt2[Izz],
		m.InertiaSlugFt2[Ixy], m.InertiaSlugFt2[Ixz], m.InertiaSlugFt2[Iyz])
	return err
}

// ReadMassCSV reads the one-row CAD mass export with columns
// avl_mass, avl_CGx, avl_CGy, avl_CGz, avl_Ixx, avl_Iyy, avl_Izz.
func ReadMassCSV(r io.Reader) (MassProperties, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return MassProperties{}, MalformedInputError{Reason: err.Error()}
	}
	if len(records) < 2 {
		return MassProperties{}, MalformedInputError{Reason: "mass CSV needs a header and one data row"}
	}
	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		cols[strings.TrimSpace(name)] = i
	}
	row := records[1]
	get := func(col string) (float64, error) {
		i, ok := cols[col]
		if !ok || i >= len(row) {
			return 0, MalformedInputError{Reason: fmt.Sprintf("mass CSV is missing column `%s`", col)}
		}
		val, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
		if err != nil {
			return 0, MalformedInputError{Reason: fmt.Sprintf("column `%s`: %s", col, err)}
		}
		return val, nil
	}
	mass, err := get("avl_mass")
	if err != nil {
		return MassProperties{}, err
	}
	var cg [3]float64
	for i, col := range []string{"avl_CGx", "avl_CGy", "avl_CGz"} {
		if cg[i], err = get(col); err != nil {
			return MassProperties{}, err
		}
	}
	inertia := make([]float64, 3)
	for i, col := range []string{"avl_Ixx", "avl_Iyy", "avl_Izz"} {
		if inertia[i], err = get(col); err != nil {
			return MassProperties{}, err
		}
	}
	return NewMassProperties(mass, cg, inertia)
}
