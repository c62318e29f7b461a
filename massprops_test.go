package avl

import (
	"errors"
	"strings"
	"testing"

	"github.com/gonum/floats"
)

func TestNewMassPropertiesConversions(t *testing.T) {
	m, err := NewMassProperties(100, [3]float64{24, 0, -6}, []float64{4633.056, 9266.112, 2316.528})
	if err != nil {
		t.Fatal(err)
	}
	if !floats.EqualWithinAbs(m.MassKg, 45.359237, 1e-9) {
		t.Fatalf("mass kg: got %f", m.MassKg)
	}
	if !floats.EqualWithinAbs(m.MassSlug, 100/32.174, 1e-9) {
		t.Fatalf("mass slug: got %f", m.MassSlug)
	}
	if !floats.EqualWithinAbs(m.CGFt[0], 2, 1e-12) || !floats.EqualWithinAbs(m.CGFt[2], -0.5, 1e-12) {
		t.Fatalf("cg ft: got %v", m.CGFt)
	}
	if !floats.EqualWithinAbs(m.CGM[0], 0.6096, 1e-9) {
		t.Fatalf("cg m: got %v", m.CGM)
	}
	if !floats.EqualWithinAbs(m.InertiaSlugFt2[Ixx], 1, 1e-9) ||
		!floats.EqualWithinAbs(m.InertiaSlugFt2[Iyy], 2, 1e-9) ||
		!floats.EqualWithinAbs(m.InertiaSlugFt2[Izz], 0.5, 1e-9) {
		t.Fatalf("inertia slug ft^2: got %v", m.InertiaSlugFt2)
	}
	// Three-component input zeroes the products of inertia.
	for _, i := range []int{Ixy, Ixz, Iyz} {
		if m.InertiaLbmIn2[i] != 0 {
			t.Fatal("products of inertia should default to zero")
		}
	}
}

func TestNewMassPropertiesBadInertia(t *testing.T) {
	var malformed MalformedInputError
	if _, err := NewMassProperties(1, [3]float64{}, []float64{1, 2}); !errors.As(err, &malformed) {
		t.Fatalf("2-component inertia must be rejected, got %v", err)
	}
}

func TestInertiaMatrix(t *testing.T) {
	m, err := NewMassProperties(10, [3]float64{}, []float64{4633.056, 4633.056, 4633.056, 463.3056, 926.6112, 231.6528})
	if err != nil {
		t.Fatal(err)
	}
	mat := m.InertiaMatrixSlugFt2()
	if r, c := mat.Dims(); r != 3 || c != 3 {
		t.Fatalf("tensor dims: %dx%d", r, c)
	}
	if !floats.EqualWithinAbs(mat.At(0, 0), 1, 1e-9) {
		t.Fatalf("Ixx: got %f", mat.At(0, 0))
	}
	// Products of inertia sit negated off-diagonal, symmetrically.
	if !floats.EqualWithinAbs(mat.At(0, 1), -0.1, 1e-9) || !floats.EqualWithinAbs(mat.At(1, 0), -0.1, 1e-9) {
		t.Fatalf("Ixy: got %f / %f", mat.At(0, 1), mat.At(1, 0))
	}
	if !floats.EqualWithinAbs(mat.At(0, 2), -0.2, 1e-9) || !floats.EqualWithinAbs(mat.At(1, 2), -0.05, 1e-9) {
		t.Fatalf("Ixz/Iyz: got %f / %f", mat.At(0, 2), mat.At(1, 2))
	}
}

func TestReadMassCSV(t *testing.T) {
	data := `avl_mass,avl_CGx,avl_CGy,avl_CGz,avl_Ixx,avl_Iyy,avl_Izz
321.74,12.0,0.0,-3.0,4633.056,9266.112,2316.528
`
	m, err := ReadMassCSV(strings.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if !floats.EqualWithinAbs(m.MassSlug, 10, 1e-9) {
		t.Fatalf("mass slug: got %f", m.MassSlug)
	}
	if !floats.EqualWithinAbs(m.CGFt[0], 1, 1e-12) {
		t.Fatalf("cg: got %v", m.CGFt)
	}
	if !floats.EqualWithinAbs(m.InertiaSlugFt2[Iyy], 2, 1e-9) {
		t.Fatalf("Iyy: got %f", m.InertiaSlugFt2[Iyy])
	}
}

func TestReadMassCSVErrors(t *testing.T) {
	var malformed MalformedInputError
	if _, err := ReadMassCSV(strings.NewReader("avl_mass\n1.0\n")); !errors.As(err, &malformed) {
		t.Fatalf("missing columns must be rejected, got %v", err)
	}
	if _, err := ReadMassCSV(strings.NewReader("avl_mass,avl_CGx,avl_CGy,avl_CGz,avl_Ixx,avl_Iyy,avl_Izz\n")); !errors.As(err, &malformed) {
		t.Fatalf("header-only input must be rejected, got %v", err)
	}
}

func TestWriteMassFile(t *testing.T) {
	m, err := NewMassProperties(321.74, [3]float64{12, 0, -3}, []float64{4633.056, 9266.112, 2316.528})
	if err != nil {
		t.Fatal(err)
	}
	var b strings.Builder
	if err := m.WriteMassFile(&b, "RefUAV"); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	for _, want := range []string{"RefUAV Mass File", "Units: slugs, feet", "10.000000", "1.0000", "2.0000"} {
		if !strings.Contains(out, want) {
			t.Fatalf("mass file is missing %q:\n%s", want, out)
		}
	}
}
