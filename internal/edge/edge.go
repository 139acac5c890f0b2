// Package edge implements the Canny-style edge stages: gradient map,
// non-maximum suppression along the gradient direction, and double
// threshold classification. Edge linking is left to package blob.
package edge

import (
	"errors"
	"fmt"
	"math"

	"image-analysis/internal/filter"
	"image-analysis/internal/kernel"
	"image-analysis/internal/mathutil"
	"image-analysis/internal/raster"
)

// Classification levels written by Threshold.
const (
	Off    = 0.0
	Weak   = 0.5
	Strong = 1.0
)

var (
	// ErrNotGradientMap is returned when Suppress receives a raster without
	// an orientation channel.
	ErrNotGradientMap = errors.New("edge: raster is not a gradient map")

	// ErrThresholdOrder is returned when minor > major.
	ErrThresholdOrder = errors.New("edge: minor threshold above major threshold")
)

// Gradient map channels.
const (
	ChanMagnitude   = 0
	ChanOrientation = 1
)

// Gradients builds a 3-channel gradient map from channel 0 of src using a
// 3×1, 1×3 or 3×3 kernel (see filter.Engine.Gradients). Channel 0 holds
// clamp(sqrt(gx²+gy²), 0, 1), channel 1 the orientation
// (atan2(gy, gx)+π)/(2π) and channel 2 is zero.
func Gradients(src *raster.Raster, k kernel.Kernel, workers int) *raster.Raster {
	gx, gy := filter.Engine{Workers: workers}.Gradients(src, k)

	dst := raster.Like(gx, 3)
	for i := range gx.Pix {
		x, y := gx.Pix[i], gy.Pix[i]
		dst.Pix[i*3+ChanMagnitude] = mathutil.Clamp01(math.Sqrt(x*x + y*y))
		dst.Pix[i*3+ChanOrientation] = EncodeOrientation(x, y)
	}
	return dst
}

// EncodeOrientation maps the gradient direction to [0,1]. A zero gx is
// special-cased to ±π/2 by the sign of gy, with gy == 0 counting as
// negative.
func EncodeOrientation(gx, gy float64) float64 {
	var theta float64
	switch {
	case gx == 0 && gy > 0:
		theta = math.Pi / 2
	case gx == 0:
		theta = -math.Pi / 2
	default:
		theta = math.Atan2(gy, gx)
	}
	return (theta + math.Pi) / (2 * math.Pi)
}

// DecodeOrientation is the inverse of EncodeOrientation, returning a unit
// direction vector. Components within 1e-12 of zero are snapped to zero so
// axis-aligned directions sample exactly on pixel centers.
func DecodeOrientation(n float64) (dx, dy float64) {
	theta := n*2*math.Pi - math.Pi
	dx, dy = math.Cos(theta), math.Sin(theta)
	if math.Abs(dx) < 1e-12 {
		dx = 0
	}
	if math.Abs(dy) < 1e-12 {
		dy = 0
	}
	return dx, dy
}

// Suppress zeroes every magnitude that is exceeded by the magnitude one
// pixel forward or one pixel backward along its gradient direction. The
// neighbors are sampled bilinearly with clamp-to-edge borders. The result
// is a single-channel magnitude raster.
func Suppress(grad *raster.Raster) (*raster.Raster, error) {
	if grad.Channels < 2 {
		return nil, fmt.Errorf("edge: suppress %d-channel raster: %w", grad.Channels, ErrNotGradientMap)
	}

	dst := raster.Like(grad, 1)
	for y := 0; y < grad.Height; y++ {
		for x := 0; x < grad.Width; x++ {
			i := grad.Offset(x, y)
			m := grad.Pix[i+ChanMagnitude]
			dx, dy := DecodeOrientation(grad.Pix[i+ChanOrientation])

			back := grad.Bilinear(float64(x)-dx, float64(y)-dy, ChanMagnitude)
			fwd := grad.Bilinear(float64(x)+dx, float64(y)+dy, ChanMagnitude)
			if back > m || fwd > m {
				m = 0
			}
			dst.Pix[y*grad.Width+x] = m
		}
	}
	return dst, nil
}

// Classify maps one magnitude to Off, Weak or Strong: v < minor is Off,
// minor <= v <= major is Weak, v > major is Strong.
func Classify(v, major, minor float64) float64 {
	switch {
	case v > major:
		return Strong
	case v >= minor:
		return Weak
	}
	return Off
}

// Threshold classifies channel 0 of src into a single-channel raster of
// Off/Weak/Strong levels.
func Threshold(src *raster.Raster, major, minor float64) (*raster.Raster, error) {
	if minor > major {
		return nil, fmt.Errorf("edge: threshold major=%g minor=%g: %w", major, minor, ErrThresholdOrder)
	}
	dst := raster.Like(src, 1)
	for i := range dst.Pix {
		dst.Pix[i] = Classify(src.Pix[i*src.Channels], major, minor)
	}
	return dst, nil
}
