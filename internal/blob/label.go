// Package blob labels connected components of a double-thresholded raster.
//
// Strong pixels seed components; weak pixels only extend them. Growth is a
// FIFO flood fill over the 8-connected neighborhood. Coordinates use the
// raster convention (origin top-left, y down) both in the label grid and in
// each Component's point list.
package blob

import "image-analysis/internal/raster"

// Cutoffs are compared against channel 0 with a strict greater-than.
type Cutoffs struct {
	Strong float64 // seeds a new component
	Weak   float64 // joins an adjacent component
}

// DefaultCutoffs sit between the Off/Weak/Strong levels of package edge:
// 200/255 and 50/255 of full scale.
func DefaultCutoffs() Cutoffs {
	return Cutoffs{Strong: 200.0 / 255.0, Weak: 50.0 / 255.0}
}

// Point is a pixel coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Component is one connected blob. Points are in discovery order, the seed
// first.
type Component struct {
	Label  int     `json:"label"`
	Points []Point `json:"points"`
}

// Result is the output of Label.
type Result struct {
	Width      int
	Height     int
	Labels     []int // Labels[y*Width+x]; 0 means unlabeled
	Components []Component

	// Visual holds label/maxLabel per pixel, all zero without components.
	Visual *raster.Raster
}

// LabelAt returns the label of (x, y), or 0 outside the grid.
func (r *Result) LabelAt(x, y int) int {
	if x < 0 || x >= r.Width || y < 0 || y >= r.Height {
		return 0
	}
	return r.Labels[y*r.Width+x]
}

// 8-connected neighborhood offsets.
var (
	nbrDX = [8]int{-1, 0, 1, -1, 1, -1, 0, 1}
	nbrDY = [8]int{-1, -1, -1, 0, 0, 1, 1, 1}
)

// Label scans classified column by column (x ascending, then y ascending).
// An unlabeled pixel above c.Strong starts the next label (1, 2, ...), which
// then grows into every unlabeled 8-neighbor above c.Weak. Label numbers
// follow the scan order; only membership is meaningful to callers.
func Label(classified *raster.Raster, c Cutoffs) *Result {
	w, h := classified.Width, classified.Height
	res := &Result{
		Width:  w,
		Height: h,
		Labels: make([]int, w*h),
	}

	value := func(x, y int) float64 {
		return classified.Pix[classified.Offset(x, y)]
	}

	queue := make([]Point, 0, 1024)
	label := 0

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			if res.Labels[y*w+x] != 0 || value(x, y) <= c.Strong {
				continue
			}

			label++
			res.Labels[y*w+x] = label
			comp := Component{Label: label, Points: []Point{{x, y}}}

			queue = append(queue[:0], Point{x, y})
			for head := 0; head < len(queue); head++ {
				p := queue[head]
				for d := 0; d < 8; d++ {
					nx, ny := p.X+nbrDX[d], p.Y+nbrDY[d]
					if nx < 0 || nx >= w || ny < 0 || ny >= h {
						continue
					}
					ni := ny*w + nx
					if res.Labels[ni] != 0 || value(nx, ny) <= c.Weak {
						continue
					}
					res.Labels[ni] = label
					queue = append(queue, Point{nx, ny})
					comp.Points = append(comp.Points, Point{nx, ny})
				}
			}

			res.Components = append(res.Components, comp)
		}
	}

	res.Visual = visualize(w, h, res.Labels, label)
	return res
}

// visualize maps each label to label/maxLabel. With no labels the raster
// stays zero and no division happens.
func visualize(w, h int, labels []int, maxLabel int) *raster.Raster {
	vis := &raster.Raster{Width: w, Height: h, Channels: 1, Pix: make([]float64, w*h)}
	if maxLabel == 0 {
		return vis
	}
	for i, l := range labels {
		vis.Pix[i] = float64(l) / float64(maxLabel)
	}
	return vis
}
