// Package kernel defines coefficient tables shared by the convolution and
// morphology engines, and the named presets built from them.
//
// A Kernel with R rows and C columns is addressed as k(i, j), i in [0,R),
// j in [0,C). The row index i selects the horizontal sample offset
// i-⌊R/2⌋ and the column index j the vertical offset j-⌊C/2⌋, so a 3×1
// kernel is a horizontal operator and a 1×3 kernel a vertical one.
package kernel

import "fmt"

// Kernel is an immutable R×C coefficient table.
type Kernel struct {
	rows int
	cols int
	coef []float64
}

// New builds a kernel from row-major coefficients: coef[i*cols+j] = k(i, j).
// len(coef) must equal rows*cols.
func New(rows, cols int, coef ...float64) (Kernel, error) {
	if rows < 0 || cols < 0 {
		return Kernel{}, fmt.Errorf("kernel: negative size %dx%d", rows, cols)
	}
	if len(coef) != rows*cols {
		return Kernel{}, fmt.Errorf("kernel: %d coefficients for %dx%d", len(coef), rows, cols)
	}
	c := make([]float64, len(coef))
	copy(c, coef)
	return Kernel{rows: rows, cols: cols, coef: c}, nil
}

// must is used for the preset tables, whose sizes are fixed at compile time.
func must(k Kernel, err error) Kernel {
	if err != nil {
		panic(err)
	}
	return k
}

// Rows returns R.
func (k Kernel) Rows() int { return k.rows }

// Cols returns C.
func (k Kernel) Cols() int { return k.cols }

// Len returns R*C.
func (k Kernel) Len() int { return len(k.coef) }

// Valid reports R>0 and C>0. Operators given an invalid kernel pass their
// input through unchanged.
func (k Kernel) Valid() bool {
	return k.rows > 0 && k.cols > 0
}

// At returns k(i, j).
func (k Kernel) At(i, j int) float64 {
	return k.coef[i*k.cols+j]
}

// CenterRow returns ⌊R/2⌋.
func (k Kernel) CenterRow() int { return k.rows / 2 }

// CenterCol returns ⌊C/2⌋.
func (k Kernel) CenterCol() int { return k.cols / 2 }

// Scale returns a copy with every coefficient multiplied by s.
func (k Kernel) Scale(s float64) Kernel {
	c := make([]float64, len(k.coef))
	for i, v := range k.coef {
		c[i] = v * s
	}
	return Kernel{rows: k.rows, cols: k.cols, coef: c}
}

// Transpose returns the C×R kernel with k'(j, i) = k(i, j).
func (k Kernel) Transpose() Kernel {
	c := make([]float64, len(k.coef))
	for i := 0; i < k.rows; i++ {
		for j := 0; j < k.cols; j++ {
			c[j*k.rows+i] = k.coef[i*k.cols+j]
		}
	}
	return Kernel{rows: k.cols, cols: k.rows, coef: c}
}

// Sum returns the sum of all coefficients.
func (k Kernel) Sum() float64 {
	var s float64
	for _, v := range k.coef {
		s += v
	}
	return s
}

// Coefficients returns a copy of the row-major table.
func (k Kernel) Coefficients() []float64 {
	c := make([]float64, len(k.coef))
	copy(c, k.coef)
	return c
}
