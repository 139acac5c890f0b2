package posterize

import (
	"math/rand"
	"testing"

	"image-analysis/internal/mathutil"
	"image-analysis/internal/raster"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func levelsRaster(t *testing.T, w, h int, level func(x, y int) int) *raster.Raster {
	t.Helper()
	r, err := raster.New(w, h, 1)
	require.NoError(t, err)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r.Set(x, y, 0, float64(level(x, y))/255)
		}
	}
	return r
}

func TestHistogramCountsChannelZero(t *testing.T) {
	src, err := raster.FromValues(3, 1, 3, []float64{
		0, 1, 1,
		1, 0, 0,
		1, 0.5, 0.5,
	})
	require.NoError(t, err)

	h := NewHistogram(src)
	assert.Equal(t, 1, h[0])
	assert.Equal(t, 2, h[255])
	assert.Equal(t, 3, h.Total())
}

func TestSmoothClipsWindow(t *testing.T) {
	var h Histogram
	h[0] = 8
	s := h.Smooth()
	assert.InDelta(t, 2.0, s[0], 1e-12) // window [0,3]
	assert.InDelta(t, 8.0/7, s[3], 1e-12)
	assert.Equal(t, 0.0, s[4])
}

func TestSingleSpikeHasOneMaximum(t *testing.T) {
	for _, floor := range []int{0, 5} {
		var h Histogram
		for i := range h {
			h[i] = floor
		}
		h[100] = 500

		peaks := h.Maxima()
		require.Len(t, peaks, 1, "floor=%d", floor)
		assert.Equal(t, Peak{Level: 100, Height: 500}, peaks[0])
	}
}

func TestSpikeNearRangeEndsHasOneMaximum(t *testing.T) {
	for _, level := range []int{0, 1, 2, 3, 4, 250, 251, 252, 253, 254, 255} {
		var h Histogram
		h[level] = 500

		peaks := h.Maxima()
		require.Len(t, peaks, 1, "level=%d", level)
		assert.Equal(t, Peak{Level: level, Height: 500}, peaks[0], "level=%d", level)
	}
}

func TestDarkModeRanksFirst(t *testing.T) {
	src := levelsRaster(t, 100, 10, func(x, y int) int {
		switch i := y*100 + x; {
		case i < 800:
			return 3
		case i < 900:
			return 120
		}
		return 200
	})

	h := NewHistogram(src)
	assert.Equal(t, []Peak{{3, 800}, {120, 100}, {200, 100}}, h.Maxima())

	res := Posterize(src, 2, Options{})
	assert.Equal(t, 3, res.Clusters.Clusters[0].Center)
}

func TestOccupiedOrder(t *testing.T) {
	var h Histogram
	h[9], h[4], h[200] = 2, 5, 2
	assert.Equal(t, []int{4, 9, 200}, h.Occupied())
}

func TestStrictMaximaSortedByHeight(t *testing.T) {
	var h Histogram
	// two smooth bumps, the right one taller
	for i := -6; i <= 6; i++ {
		h[60+i] = 40 - 3*abs(i)
		h[180+i] = 90 - 7*abs(i)
	}

	peaks := h.Maxima()
	require.Len(t, peaks, 2)
	assert.Equal(t, 180, peaks[0].Level)
	assert.Equal(t, 90, peaks[0].Height)
	assert.Equal(t, 60, peaks[1].Level)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestKMeansNearestTieGoesToLowestIndex(t *testing.T) {
	cs := ClusterSet{Clusters: []Cluster{{Center: 0}, {Center: 10}}}
	assert.Equal(t, 0, cs.Nearest(5))
	assert.Equal(t, 1, cs.Nearest(6))
}

func TestKMeansEmptyClusterResets(t *testing.T) {
	cs := KMeans([]int{200, 200}, []int{200, 50}, 0)
	assert.True(t, cs.Converged)
	assert.Equal(t, []int{200, 0}, cs.Centers())
	assert.Equal(t, 2, cs.Clusters[0].Count)
}

func TestKMeansIterationCap(t *testing.T) {
	cs := KMeans([]int{0, 10, 20, 100}, []int{0, 10}, 1)
	assert.False(t, cs.Converged)
	assert.Equal(t, 1, cs.Iterations)
	assert.Equal(t, []int{0, 43}, cs.Centers())

	full := KMeans([]int{0, 10, 20, 100}, []int{0, 10}, 0)
	assert.True(t, full.Converged)
	assert.Equal(t, []int{10, 100}, full.Centers())
}

func TestPosterizeSingleClusterIsMean(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	src := levelsRaster(t, 23, 17, func(x, y int) int { return 60 + rng.Intn(120) })

	res := Posterize(src, 1, Options{})
	require.Equal(t, 1, res.K)
	require.True(t, res.Clusters.Converged)

	sum := 0
	for i := 0; i < len(src.Pix); i++ {
		sum += mathutil.Level(src.Pix[i])
	}
	want := sum / len(src.Pix)
	assert.Equal(t, want, res.Clusters.Clusters[0].Center)
	assert.InDelta(t, src.Mean()*255, float64(want), 1)

	for _, v := range res.Raster.Pix {
		assert.Equal(t, float64(want)/255, v)
	}
}

func TestPosterizeIsIdempotent(t *testing.T) {
	modes := []int{40, 128, 210}
	src := levelsRaster(t, 48, 32, func(x, y int) int {
		return modes[(x/16)%3] + (x+y)%5 - 2
	})

	first := Posterize(src, 3, Options{})
	require.Equal(t, 3, first.K)
	require.Equal(t, 3, first.Raster.Channels)

	second := Posterize(first.Raster, 3, Options{})
	assert.True(t, second.Raster.Equal(first.Raster))
	assert.Equal(t, 1, second.Clusters.Iterations)
}

func TestPosterizeKeepsCloseLevels(t *testing.T) {
	levels := []int{155, 34, 38, 96}
	src := levelsRaster(t, 8, 8, func(x, y int) int { return levels[(x+y)%4] })

	res := Posterize(src, 4, Options{})
	require.Equal(t, 4, res.K)
	assert.ElementsMatch(t, levels, res.Clusters.Centers())
	for i, v := range res.Raster.Pix {
		assert.Equal(t, src.Pix[i/3], v)
	}
}

func TestPosterizeIsIdempotentOnNoise(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for _, k := range []int{2, 3, 5, 8} {
		src := levelsRaster(t, 40, 30, func(x, y int) int { return rng.Intn(256) })

		first := Posterize(src, k, Options{})
		second := Posterize(first.Raster, k, Options{})
		assert.True(t, second.Raster.Equal(first.Raster), "k=%d", k)
		assert.True(t, second.Clusters.Converged, "k=%d", k)
	}
}

func TestPosterizeClampsK(t *testing.T) {
	src := levelsRaster(t, 10, 10, func(x, y int) int {
		if x < 5 {
			return 30
		}
		return 200
	})

	res := Posterize(src, 8, Options{})
	assert.Equal(t, 2, res.K)
	assert.ElementsMatch(t, []int{30, 200}, res.Clusters.Centers())
	assert.InDelta(t, 30.0/255, res.Raster.Value(0, 0, 1), 1e-12)
	assert.InDelta(t, 200.0/255, res.Raster.Value(9, 9, 2), 1e-12)
}

func TestPosterizeDegenerateRequests(t *testing.T) {
	src := levelsRaster(t, 4, 4, func(x, y int) int { return 10 * x })

	res := Posterize(src, 0, Options{})
	assert.Equal(t, 0, res.K)
	assert.True(t, res.Raster.Equal(src))

	empty, err := raster.New(0, 0, 1)
	require.NoError(t, err)
	res = Posterize(empty, 3, Options{})
	assert.Empty(t, res.Peaks)
	assert.Equal(t, 0, res.K)
}
