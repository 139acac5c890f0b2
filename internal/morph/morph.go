// Package morph is the morphology engine: per-channel min/max over the
// non-zero cells of a structuring element, with clamp-to-edge borders.
package morph

import (
	"fmt"

	"image-analysis/internal/kernel"
	"image-analysis/internal/raster"
)

// Op selects the primitive morphology operation.
type Op int

const (
	Dilation Op = iota
	Erosion
)

func (o Op) String() string {
	switch o {
	case Dilation:
		return "dilation"
	case Erosion:
		return "erosion"
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// ParseOp maps "dilation"/"erosion" to an Op.
func ParseOp(s string) (Op, error) {
	switch s {
	case "dilation", "dilate":
		return Dilation, nil
	case "erosion", "erode":
		return Erosion, nil
	}
	return 0, fmt.Errorf("morph: unknown operation %q", s)
}

// Engine applies structuring elements. The zero value is ready to use.
type Engine struct {
	// Workers bounds the goroutines used per call; <= 0 means GOMAXPROCS.
	Workers int
}

// Apply computes, per output pixel and channel, the minimum (Erosion,
// starting from 1) or maximum (Dilation, starting from 0) of coef*sample
// over the cells of se with a non-zero coefficient. An invalid element
// returns a copy of src.
func (e Engine) Apply(src *raster.Raster, se kernel.Kernel, op Op) *raster.Raster {
	if !se.Valid() || src.Empty() {
		return src.Clone()
	}

	init := 0.0
	if op == Erosion {
		init = 1.0
	}

	type cell struct {
		dx, dy int
		coef   float64
	}
	var cells []cell
	for i := 0; i < se.Rows(); i++ {
		for j := 0; j < se.Cols(); j++ {
			if c := se.At(i, j); c != 0 {
				cells = append(cells, cell{i - se.CenterRow(), j - se.CenterCol(), c})
			}
		}
	}

	dst := raster.Like(src, src.Channels)
	raster.ParallelRows(src.Height, e.Workers, func(y0, y1 int) {
		acc := make([]float64, src.Channels)
		for y := y0; y < y1; y++ {
			for x := 0; x < src.Width; x++ {
				for c := range acc {
					acc[c] = init
				}
				for _, cl := range cells {
					for c := range acc {
						v := cl.coef * src.At(x+cl.dx, y+cl.dy, c)
						if op == Erosion {
							acc[c] = min(acc[c], v)
						} else {
							acc[c] = max(acc[c], v)
						}
					}
				}
				copy(dst.Pix[dst.Offset(x, y):], acc)
			}
		}
	})

	return dst
}

// Erode is Apply with Erosion.
func (e Engine) Erode(src *raster.Raster, se kernel.Kernel) *raster.Raster {
	return e.Apply(src, se, Erosion)
}

// Dilate is Apply with Dilation.
func (e Engine) Dilate(src *raster.Raster, se kernel.Kernel) *raster.Raster {
	return e.Apply(src, se, Dilation)
}

// Open erodes then dilates. The result never exceeds src for a symmetric
// element containing its center.
func (e Engine) Open(src *raster.Raster, se kernel.Kernel) *raster.Raster {
	return e.Dilate(e.Erode(src, se), se)
}

// Close dilates then erodes. The result is never below src for a symmetric
// element containing its center.
func (e Engine) Close(src *raster.Raster, se kernel.Kernel) *raster.Raster {
	return e.Erode(e.Dilate(src, se), se)
}
