// Package filter is the convolution engine: it applies kernel tables to
// rasters, channel by channel, with clamp-to-edge borders.
//
// Blur, sharpen, edge and gradient filters are not separate code paths;
// they are presets from package kernel passed to Convolve.
package filter

import (
	"math"

	"image-analysis/internal/kernel"
	"image-analysis/internal/mathutil"
	"image-analysis/internal/raster"
)

// Engine applies kernels to rasters. The zero value is ready to use and
// spreads rows over GOMAXPROCS goroutines.
type Engine struct {
	// Workers bounds the goroutines used per call; <= 0 means GOMAXPROCS.
	Workers int
}

// Convolve computes, for every pixel (x, y) and channel c,
//
//	Σ k(i, j) * src(x + i - ⌊R/2⌋, y + j - ⌊C/2⌋, c)
//
// and returns a new raster of the same size and channel count. An invalid
// kernel returns a copy of src.
func (e Engine) Convolve(src *raster.Raster, k kernel.Kernel) *raster.Raster {
	if !k.Valid() || src.Empty() {
		return src.Clone()
	}

	dst := raster.Like(src, src.Channels)
	cr, cc := k.CenterRow(), k.CenterCol()
	rows, cols := k.Rows(), k.Cols()

	raster.ParallelRows(src.Height, e.Workers, func(y0, y1 int) {
		acc := make([]float64, src.Channels)
		for y := y0; y < y1; y++ {
			for x := 0; x < src.Width; x++ {
				clear(acc)
				for i := 0; i < rows; i++ {
					for j := 0; j < cols; j++ {
						w := k.At(i, j)
						if w == 0 {
							continue
						}
						sx, sy := x+i-cr, y+j-cc
						for c := range acc {
							acc[c] += w * src.At(sx, sy, c)
						}
					}
				}
				copy(dst.Pix[dst.Offset(x, y):], acc)
			}
		}
	})

	return dst
}

// Gradients returns the signed horizontal and vertical responses of channel 0
// of src as two single-channel rasters. gx is the convolution with k and gy
// the convolution with k transposed, so a square table is read row-major for
// gx and column-major for gy. A 1×n line kernel is first turned horizontal,
// so Gradient3x1 and Gradient1x3 give the same result.
func (e Engine) Gradients(src *raster.Raster, k kernel.Kernel) (gx, gy *raster.Raster) {
	if k.Rows() == 1 && k.Cols() > 1 {
		k = k.Transpose()
	}
	intensity := src
	if src.Channels != 1 {
		intensity = src.Channel(0)
	}
	if !k.Valid() {
		return raster.Like(intensity, 1), raster.Like(intensity, 1)
	}
	return e.Convolve(intensity, k), e.Convolve(intensity, k.Transpose())
}

// Sobel returns the clamped gradient magnitude sqrt(gx²+gy²) of channel 0 as
// a single-channel raster. An invalid kernel returns a copy of src.
func (e Engine) Sobel(src *raster.Raster, k kernel.Kernel) *raster.Raster {
	if !k.Valid() {
		return src.Clone()
	}
	gx, gy := e.Gradients(src, k)
	return Magnitude(gx, gy)
}

// Magnitude combines two equally sized gradient rasters into
// clamp(sqrt(gx²+gy²), 0, 1).
func Magnitude(gx, gy *raster.Raster) *raster.Raster {
	dst := raster.Like(gx, 1)
	for i := range dst.Pix {
		dst.Pix[i] = mathutil.Clamp01(math.Hypot(gx.Pix[i], gy.Pix[i]))
	}
	return dst
}

// Convolve runs a zero Engine.
func Convolve(src *raster.Raster, k kernel.Kernel) *raster.Raster {
	return Engine{}.Convolve(src, k)
}

// Sobel runs a zero Engine.
func Sobel(src *raster.Raster, k kernel.Kernel) *raster.Raster {
	return Engine{}.Sobel(src, k)
}
