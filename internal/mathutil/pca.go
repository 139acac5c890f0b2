package mathutil

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Eigen2x2Sym computes eigenvalues and eigenvectors of a 2×2 symmetric matrix:
//
//	| a  b |
//	| b  d |
//
// Returns (eval1, eval2, evec1, evec2) where eval1 >= eval2.
// evec1 is the principal eigenvector (largest eigenvalue).
func Eigen2x2Sym(a, b, d float64) (float64, float64, [2]float64, [2]float64) {
	trace := a + d
	det := a*d - b*b
	disc := trace*trace/4 - det
	if disc < 0 {
		disc = 0
	}
	sqrtDisc := math.Sqrt(disc)

	eval1 := trace/2 + sqrtDisc
	eval2 := trace/2 - sqrtDisc

	var evec1, evec2 [2]float64

	switch {
	case math.Abs(b) > 1e-12:
		evec1 = normalize2(eval1-d, b)
		evec2 = normalize2(eval2-d, b)
	case a >= d:
		evec1 = [2]float64{1, 0}
		evec2 = [2]float64{0, 1}
	default:
		evec1 = [2]float64{0, 1}
		evec2 = [2]float64{1, 0}
	}

	return eval1, eval2, evec1, evec2
}

// PrincipalAxis returns the centroid of the point cloud and the angle in
// radians (image coordinates, y down) of its major axis, in (-π/2, π/2].
// Fewer than two points yield angle 0.
func PrincipalAxis(xs, ys []float64) (cx, cy, angle float64) {
	if len(xs) == 0 {
		return 0, 0, 0
	}
	cx = stat.Mean(xs, nil)
	cy = stat.Mean(ys, nil)
	if len(xs) < 2 {
		return cx, cy, 0
	}

	covXX := stat.PopVariance(xs, nil)
	covYY := stat.PopVariance(ys, nil)
	var covXY float64
	for i := range xs {
		covXY += (xs[i] - cx) * (ys[i] - cy)
	}
	covXY /= float64(len(xs))

	_, _, evec1, _ := Eigen2x2Sym(covXX, covXY, covYY)
	angle = math.Atan2(evec1[1], evec1[0])
	// eigenvector sign is arbitrary
	if angle > math.Pi/2 {
		angle -= math.Pi
	} else if angle <= -math.Pi/2 {
		angle += math.Pi
	}
	return cx, cy, angle
}

func normalize2(x, y float64) [2]float64 {
	l := math.Sqrt(x*x + y*y)
	if l < 1e-12 {
		return [2]float64{1, 0}
	}
	return [2]float64{x / l, y / l}
}
