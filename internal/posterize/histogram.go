package posterize

import (
	"sort"

	"image-analysis/internal/mathutil"
	"image-analysis/internal/raster"
)

// Bins is the number of intensity levels.
const Bins = 256

// smoothRadius is the half-width of the moving average in Smooth.
const smoothRadius = 3

// Histogram counts pixels per 0..255 level of one channel.
type Histogram [Bins]int

// NewHistogram tallies channel 0 of src.
func NewHistogram(src *raster.Raster) Histogram {
	var h Histogram
	for i := 0; i < len(src.Pix); i += src.Channels {
		h[mathutil.Level(src.Pix[i])]++
	}
	return h
}

// Total returns the number of counted pixels.
func (h *Histogram) Total() int {
	n := 0
	for _, c := range h {
		n += c
	}
	return n
}

// Occupied returns the levels with a non-zero count, highest count first
// and ascending level among equal counts.
func (h *Histogram) Occupied() []int {
	var levels []int
	for l, c := range h {
		if c > 0 {
			levels = append(levels, l)
		}
	}
	sort.SliceStable(levels, func(a, b int) bool {
		return h[levels[a]] > h[levels[b]]
	})
	return levels
}

// Smooth returns the centered moving average over [i-3, i+3], with the
// window clipped at both ends of the histogram.
func (h *Histogram) Smooth() [Bins]float64 {
	var s [Bins]float64
	for i := range s {
		lo := max(i-smoothRadius, 0)
		hi := min(i+smoothRadius, Bins-1)
		sum := 0
		for j := lo; j <= hi; j++ {
			sum += h[j]
		}
		s[i] = float64(sum) / float64(hi-lo+1)
	}
	return s
}

// Peak is a local maximum of the smoothed histogram.
type Peak struct {
	Level  int `json:"level"`
	Height int `json:"height"` // raw count at Level
}

// Maxima returns the local maxima of the smoothed histogram sorted by
// descending raw height. Level i is a maximum when smoothed(i) is strictly
// greater than both smoothed(i-1) and smoothed(i+1); neighbors outside the
// histogram count as 0. A flat run that rises on the left and falls on the
// right counts once, at its middle level. Each maximum is then moved to the
// tallest raw bin within the smoothing radius, so a spike near either end
// of the range is reported at the spike and not at the clipped window's
// edge.
func (h *Histogram) Maxima() []Peak {
	s := h.Smooth()
	at := func(i int) float64 {
		if i < 0 || i >= Bins {
			return 0
		}
		return s[i]
	}

	var peaks []Peak
	var seen [Bins]bool
	for i := 0; i < Bins; {
		m1 := s[i]
		if m1 <= at(i-1) {
			i++
			continue
		}
		j := i
		for j+1 < Bins && s[j+1] == m1 {
			j++
		}
		if m1 > at(j+1) {
			l := h.tallestNear((i + j) / 2)
			if !seen[l] {
				seen[l] = true
				peaks = append(peaks, Peak{Level: l, Height: h[l]})
			}
		}
		i = j + 1
	}

	sort.SliceStable(peaks, func(a, b int) bool {
		return peaks[a].Height > peaks[b].Height
	})
	return peaks
}

// tallestNear returns the level with the largest raw count within
// smoothRadius of l. Ties go to the level closest to l, the lower one first.
func (h *Histogram) tallestNear(l int) int {
	best := l
	for d := 1; d <= smoothRadius; d++ {
		for _, c := range [2]int{l - d, l + d} {
			if c >= 0 && c < Bins && h[c] > h[best] {
				best = c
			}
		}
	}
	return best
}
