package edge

import (
	"fmt"

	"image-analysis/internal/filter"
	"image-analysis/internal/kernel"
	"image-analysis/internal/raster"
)

// Params configures Detect. Thresholds are caller supplied; nothing is
// derived from the image.
type Params struct {
	Blur     kernel.Kernel // invalid kernel skips blurring
	Gradient kernel.Kernel
	Major    float64
	Minor    float64
	Workers  int
}

// DefaultParams is the standard analysis setup: 5×5 Gaussian, central
// difference gradients, thresholds 0.04/0.03.
func DefaultParams() Params {
	return Params{
		Blur:     kernel.Gaussian5x5,
		Gradient: kernel.Gradient3x1,
		Major:    0.04,
		Minor:    0.03,
	}
}

// Stages holds every intermediate raster of Detect.
type Stages struct {
	Blurred    *raster.Raster
	Gradients  *raster.Raster // magnitude, orientation, 0
	Suppressed *raster.Raster
	Classified *raster.Raster // Off/Weak/Strong
}

// Detect runs blur, gradients, suppression and double threshold on src.
func Detect(src *raster.Raster, p Params) (*Stages, error) {
	if !p.Gradient.Valid() {
		return nil, fmt.Errorf("edge: detect: invalid gradient kernel %dx%d", p.Gradient.Rows(), p.Gradient.Cols())
	}

	s := &Stages{}
	s.Blurred = filter.Engine{Workers: p.Workers}.Convolve(src, p.Blur)
	s.Gradients = Gradients(s.Blurred, p.Gradient, p.Workers)

	var err error
	if s.Suppressed, err = Suppress(s.Gradients); err != nil {
		return nil, err
	}
	if s.Classified, err = Threshold(s.Suppressed, p.Major, p.Minor); err != nil {
		return nil, err
	}
	return s, nil
}
