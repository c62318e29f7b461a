package avl

import (
	"fmt"
	"math"

	"github.com/gonum/matrix/mat64"
)

const rad2deg = 180 / math.Pi

// trapezoid integrates y over x with the trapezoid rule. The x values must be
// sorted ascending; the panel boundaries are the stations themselves.
func trapezoid(x, y []float64) float64 {
	var sum float64
	for i := 1; i < len(x); i++ {
		sum += (x[i] - x[i-1]) * (y[i] + y[i-1]) / 2
	}
	return sum
}

// linearFit returns the least-squares slope and intercept of y against x.
func linearFit(x, y []float64) (slope, intercept float64) {
	if len(x) == 2 {
		// Exactly determined, no need for the solver.
		slope = (y[1] - y[0]) / (x[1] - x[0])
		return slope, y[0] - slope*x[0]
	}
	A := mat64.NewDense(len(x), 2, nil)
	for i, xi := range x {
		A.Set(i, 0, xi)
		A.Set(i, 1, 1)
	}
	coef := mat64.NewVector(2, nil)
	if err := coef.SolveVec(A, mat64.NewVector(len(y), y)); err != nil {
		panic(fmt.Errorf("linear fit failed: %s", err))
	}
	return coef.At(0, 0), coef.At(1, 0)
}

// interpolate evaluates the piecewise-linear curve (xs, ys) at x, clamping to
// the end values outside the range. The xs must be sorted ascending.
func interpolate(xs, ys []float64, x float64) float64 {
	if x <= xs[0] {
		return ys[0]
	}
	for i := 1; i < len(xs); i++ {
		if x <= xs[i] {
			t := (x - xs[i-1]) / (xs[i] - xs[i-1])
			return ys[i-1] + t*(ys[i]-ys[i-1])
		}
	}
	return ys[len(ys)-1]
}
