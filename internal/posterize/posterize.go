// Package posterize reduces an intensity raster to K levels with K-means
// seeded from the peaks of its smoothed histogram.
package posterize

import (
	"image-analysis/internal/mathutil"
	"image-analysis/internal/raster"
)

// Options tunes Posterize.
type Options struct {
	MaxIterations int // <= 0 means DefaultMaxIterations
}

// Result holds the posterized raster and the clustering behind it.
type Result struct {
	Raster   *raster.Raster
	Clusters ClusterSet
	Peaks    []Peak // all histogram maxima, highest first

	// K is the cluster count actually used: k clamped to len(Peaks), or the
	// number of occupied levels when that is at most k.
	K int
}

// Posterize clusters channel 0 of src into at most k levels. The initial
// centers are the k highest histogram peaks; k is clamped to the number of
// peaks. When at most k levels are occupied, each occupied level seeds its
// own cluster instead, tallest first; levels closer than the smoothing
// window then stay apart and reposterizing with the same k is the
// identity. With k <= 0 or an empty raster, a
// copy of src is returned and K is 0. The output has three identical
// channels holding center/255.
func Posterize(src *raster.Raster, k int, opts Options) *Result {
	h := NewHistogram(src)
	peaks := h.Maxima()

	res := &Result{Peaks: peaks}
	var init []int
	if k > 0 {
		if occupied := h.Occupied(); len(occupied) <= k {
			init = occupied
		} else {
			init = make([]int, min(k, len(peaks)))
			for i := range init {
				init[i] = peaks[i].Level
			}
		}
	}

	res.K = len(init)
	if res.K == 0 {
		res.Raster = src.Clone()
		res.Clusters = ClusterSet{Converged: true}
		return res
	}

	levels := make([]int, src.Width*src.Height)
	for i := range levels {
		levels[i] = mathutil.Level(src.Pix[i*src.Channels])
	}

	res.Clusters = KMeans(levels, init, opts.MaxIterations)

	out := raster.Like(src, 3)
	for i, l := range levels {
		v := float64(res.Clusters.Clusters[res.Clusters.Nearest(l)].Center) / 255
		out.Pix[i*3] = v
		out.Pix[i*3+1] = v
		out.Pix[i*3+2] = v
	}
	res.Raster = out
	return res
}
