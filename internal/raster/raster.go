// Package raster holds the in-memory grid shared by every analysis stage.
//
// A Raster stores normalized [0,1] samples as a flat float64 slice, row-major
// with channels interleaved. Coordinates are image coordinates: origin at the
// top-left pixel, x to the right, y downward. Rasters are treated as
// immutable once produced; every operator allocates a new one.
package raster

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrSizeMismatch is returned when two rasters that must share
	// dimensions do not.
	ErrSizeMismatch = errors.New("raster: size mismatch")

	// ErrChannels is returned for channel counts other than 1 or 3.
	ErrChannels = errors.New("raster: channel count must be 1 or 3")
)

// Raster is a width×height grid of 1 or 3 channel samples.
type Raster struct {
	Width    int
	Height   int
	Channels int
	Pix      []float64 // len = Width*Height*Channels
}

// New allocates a zeroed raster.
func New(w, h, channels int) (*Raster, error) {
	if channels != 1 && channels != 3 {
		return nil, fmt.Errorf("raster: new %dx%d with %d channels: %w", w, h, channels, ErrChannels)
	}
	if w < 0 || h < 0 {
		return nil, fmt.Errorf("raster: new %dx%d: negative dimension", w, h)
	}
	return &Raster{
		Width:    w,
		Height:   h,
		Channels: channels,
		Pix:      make([]float64, w*h*channels),
	}, nil
}

// Like allocates a zeroed raster with the dimensions of src.
// channels must be 1 or 3.
func Like(src *Raster, channels int) *Raster {
	return &Raster{
		Width:    src.Width,
		Height:   src.Height,
		Channels: channels,
		Pix:      make([]float64, src.Width*src.Height*channels),
	}
}

// FromValues builds a raster over a copy of pix. len(pix) must equal
// w*h*channels.
func FromValues(w, h, channels int, pix []float64) (*Raster, error) {
	r, err := New(w, h, channels)
	if err != nil {
		return nil, err
	}
	if len(pix) != len(r.Pix) {
		return nil, fmt.Errorf("raster: %d values for %dx%dx%d: %w", len(pix), w, h, channels, ErrSizeMismatch)
	}
	copy(r.Pix, pix)
	return r, nil
}

// Offset returns the index of channel 0 of pixel (x, y) in Pix.
func (r *Raster) Offset(x, y int) int {
	return (y*r.Width + x) * r.Channels
}

// In reports whether (x, y) lies inside the raster.
func (r *Raster) In(x, y int) bool {
	return x >= 0 && x < r.Width && y >= 0 && y < r.Height
}

// Empty reports whether the raster has no pixels.
func (r *Raster) Empty() bool {
	return r.Width == 0 || r.Height == 0
}

// Value returns channel c of pixel (x, y) without bounds handling.
func (r *Raster) Value(x, y, c int) float64 {
	return r.Pix[r.Offset(x, y)+c]
}

// Set writes channel c of pixel (x, y).
func (r *Raster) Set(x, y, c int, v float64) {
	r.Pix[r.Offset(x, y)+c] = v
}

// SetAll writes v to every channel of pixel (x, y).
func (r *Raster) SetAll(x, y int, v float64) {
	i := r.Offset(x, y)
	for c := 0; c < r.Channels; c++ {
		r.Pix[i+c] = v
	}
}

// Clone returns a deep copy.
func (r *Raster) Clone() *Raster {
	dst := Like(r, r.Channels)
	copy(dst.Pix, r.Pix)
	return dst
}

// SameSize reports whether both rasters have equal width and height.
func (r *Raster) SameSize(o *Raster) bool {
	return r.Width == o.Width && r.Height == o.Height
}

// CheckSameSize returns ErrSizeMismatch when a and b differ in dimensions.
func CheckSameSize(a, b *Raster) error {
	if !a.SameSize(b) {
		return fmt.Errorf("raster: %dx%d vs %dx%d: %w", a.Width, a.Height, b.Width, b.Height, ErrSizeMismatch)
	}
	return nil
}

// Combine applies fn per pixel and channel to two equally sized rasters.
// Channel counts may differ; the result takes the larger count and a
// single-channel operand is broadcast.
func Combine(a, b *Raster, fn func(va, vb float64) float64) (*Raster, error) {
	if err := CheckSameSize(a, b); err != nil {
		return nil, err
	}
	ch := max(a.Channels, b.Channels)
	dst := Like(a, ch)
	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			ia, ib, id := a.Offset(x, y), b.Offset(x, y), dst.Offset(x, y)
			for c := 0; c < ch; c++ {
				va := a.Pix[ia+min(c, a.Channels-1)]
				vb := b.Pix[ib+min(c, b.Channels-1)]
				dst.Pix[id+c] = fn(va, vb)
			}
		}
	}
	return dst, nil
}

// Channel extracts channel c as a single-channel raster.
func (r *Raster) Channel(c int) *Raster {
	dst := Like(r, 1)
	for i := range dst.Pix {
		dst.Pix[i] = r.Pix[i*r.Channels+c]
	}
	return dst
}

// Expand returns a 3-channel raster, triplicating a single channel.
// A 3-channel raster is returned as a copy.
func (r *Raster) Expand() *Raster {
	if r.Channels == 3 {
		return r.Clone()
	}
	dst := Like(r, 3)
	for i, v := range r.Pix {
		dst.Pix[i*3] = v
		dst.Pix[i*3+1] = v
		dst.Pix[i*3+2] = v
	}
	return dst
}

// Mean returns the average over all samples of all channels.
func (r *Raster) Mean() float64 {
	if len(r.Pix) == 0 {
		return 0
	}
	return floats.Sum(r.Pix) / float64(len(r.Pix))
}

// Equal reports whether two rasters have the same shape and identical samples.
func (r *Raster) Equal(o *Raster) bool {
	return r.Width == o.Width && r.Height == o.Height && r.Channels == o.Channels &&
		floats.Equal(r.Pix, o.Pix)
}
