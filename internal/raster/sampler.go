package raster

import (
	"math"

	"image-analysis/internal/mathutil"
)

// At returns channel c of pixel (x, y) with clamp-to-edge borders: any
// coordinate outside the raster reads the nearest edge pixel. This is the
// border policy of every convolution and morphology operator.
func (r *Raster) At(x, y, c int) float64 {
	x = mathutil.ClampInt(x, 0, r.Width-1)
	y = mathutil.ClampInt(y, 0, r.Height-1)
	return r.Pix[(y*r.Width+x)*r.Channels+c]
}

// Bilinear samples channel c at the continuous position (fx, fy), where
// integer coordinates are pixel centers. Borders clamp to the edge.
func (r *Raster) Bilinear(fx, fy float64, c int) float64 {
	x0f := math.Floor(fx)
	y0f := math.Floor(fy)
	dx := fx - x0f
	dy := fy - y0f
	x0, y0 := int(x0f), int(y0f)

	v00 := r.At(x0, y0, c)
	v10 := r.At(x0+1, y0, c)
	v01 := r.At(x0, y0+1, c)
	v11 := r.At(x0+1, y0+1, c)

	return v00*(1-dx)*(1-dy) + v10*dx*(1-dy) + v01*(1-dx)*dy + v11*dx*dy
}
