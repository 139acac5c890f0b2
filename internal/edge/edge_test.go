package edge

import (
	"math"
	"math/rand"
	"testing"

	"image-analysis/internal/kernel"
	"image-analysis/internal/raster"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeOrientation(t *testing.T) {
	tests := []struct {
		name   string
		gx, gy float64
		want   float64
	}{
		{"right", 1, 0, 0.5},
		{"down", 0, 1, 0.75},
		{"up", 0, -1, 0.25},
		{"flat", 0, 0, 0.25},
		{"left", -1, 0, 1.0},
		{"diagonal", 1, 1, 0.625},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, EncodeOrientation(tt.gx, tt.gy), 1e-12)
		})
	}
}

func TestDecodeOrientationRoundTrip(t *testing.T) {
	for _, a := range []float64{-3, -1.2, 0, 0.4, 2.9} {
		dx, dy := DecodeOrientation(EncodeOrientation(math.Cos(a), math.Sin(a)))
		assert.InDelta(t, math.Cos(a), dx, 1e-9)
		assert.InDelta(t, math.Sin(a), dy, 1e-9)
	}
}

func TestGradientsMap(t *testing.T) {
	src, err := raster.New(5, 5, 1)
	require.NoError(t, err)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			src.Set(x, y, 0, float64(y)*0.1)
		}
	}

	g := Gradients(src, kernel.Gradient3x1, 0)
	require.Equal(t, 3, g.Channels)
	assert.InDelta(t, 0.2, g.Value(2, 2, ChanMagnitude), 1e-12)
	assert.InDelta(t, 0.75, g.Value(2, 2, ChanOrientation), 1e-12)
	assert.Equal(t, 0.0, g.Value(2, 2, 2))
}

func TestSuppressKeepsRidge(t *testing.T) {
	mags := []float64{0.1, 0.3, 0.5, 0.3, 0.1}
	pix := make([]float64, 0, 5*3*3)
	for y := 0; y < 3; y++ {
		for _, m := range mags {
			pix = append(pix, m, 0.5, 0) // direction +x
		}
	}
	grad, err := raster.FromValues(5, 3, 3, pix)
	require.NoError(t, err)

	out, err := Suppress(grad)
	require.NoError(t, err)
	require.Equal(t, 1, out.Channels)
	for y := 0; y < 3; y++ {
		assert.Equal(t, []float64{0, 0, 0.5, 0, 0}, out.Pix[y*5:y*5+5])
	}
}

func TestSuppressDiagonalRidge(t *testing.T) {
	// gradient along +x+y; magnitude peaks on the anti-diagonal x+y == 4
	dir := EncodeOrientation(1, 1)
	grad, err := raster.New(5, 5, 3)
	require.NoError(t, err)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			d := x + y - 4
			if d < 0 {
				d = -d
			}
			grad.Set(x, y, ChanMagnitude, 0.5-0.1*float64(d))
			grad.Set(x, y, ChanOrientation, dir)
		}
	}

	out, err := Suppress(grad)
	require.NoError(t, err)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if x+y == 4 {
				assert.InDelta(t, 0.5, out.Value(x, y, 0), 1e-12, "(%d,%d)", x, y)
			} else {
				assert.Zero(t, out.Value(x, y, 0), "(%d,%d)", x, y)
			}
		}
	}
}

func TestSuppressEqualNeighborsSurvive(t *testing.T) {
	pix := make([]float64, 0, 9*3)
	for i := 0; i < 9; i++ {
		pix = append(pix, 0.4, 0.75, 0)
	}
	grad, err := raster.FromValues(3, 3, 3, pix)
	require.NoError(t, err)

	out, err := Suppress(grad)
	require.NoError(t, err)
	for _, v := range out.Pix {
		assert.InDelta(t, 0.4, v, 1e-12)
	}
}

func TestSuppressRejectsSingleChannel(t *testing.T) {
	r, err := raster.New(2, 2, 1)
	require.NoError(t, err)
	_, err = Suppress(r)
	assert.ErrorIs(t, err, ErrNotGradientMap)
}

func TestThresholdLevels(t *testing.T) {
	const major, minor = 0.6, 0.2
	tests := []struct {
		name string
		v    float64
		want float64
	}{
		{"zero", 0, Off},
		{"below minor", 0.19999, Off},
		{"at minor is weak", minor, Weak},
		{"between", 0.4, Weak},
		{"at major is weak", major, Weak},
		{"above major", 0.60001, Strong},
		{"one", 1, Strong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.v, major, minor))
		})
	}
}

func TestThresholdOutputIsThreeValued(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	src, err := raster.New(40, 40, 3)
	require.NoError(t, err)
	for i := range src.Pix {
		src.Pix[i] = rng.Float64()
	}

	out, err := Threshold(src, 0.7, 0.3)
	require.NoError(t, err)
	for _, v := range out.Pix {
		assert.Contains(t, []float64{Off, Weak, Strong}, v)
	}

	_, err = Threshold(src, 0.3, 0.7)
	assert.ErrorIs(t, err, ErrThresholdOrder)
}

func TestDetectStepEdge(t *testing.T) {
	src, err := raster.New(20, 12, 1)
	require.NoError(t, err)
	for y := 0; y < 12; y++ {
		for x := 10; x < 20; x++ {
			src.Set(x, y, 0, 1)
		}
	}

	p := DefaultParams()
	p.Major, p.Minor = 0.3, 0.1
	st, err := Detect(src, p)
	require.NoError(t, err)
	require.NotNil(t, st.Classified)

	// the edge column pair straddling the step is detected on every row
	for y := 0; y < 12; y++ {
		row := st.Classified.Pix[y*20 : y*20+20]
		assert.Equal(t, Strong, max(row[9], row[10]), "row %d", y)
		assert.Equal(t, Off, row[2])
		assert.Equal(t, Off, row[17])
	}
}

func TestDetectRejectsInvalidGradient(t *testing.T) {
	src, err := raster.New(4, 4, 1)
	require.NoError(t, err)
	p := DefaultParams()
	p.Gradient = kernel.Kernel{}
	_, err = Detect(src, p)
	assert.Error(t, err)
}
