// Package convert turns decoded color rasters into the single-channel
// intensity rasters the analysis stages consume, and rescales rasters.
package convert

import (
	"fmt"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"image-analysis/internal/mathutil"
	"image-analysis/internal/raster"
)

// Method selects how three color channels collapse into one intensity.
type Method int

const (
	// Luma709 weights linear-light RGB with the Rec.709 coefficients and
	// re-encodes the result to sRGB.
	Luma709 Method = iota
	// Length is the Euclidean norm of the RGB vector, clamped to 1.
	Length
	// QuadraticMean is sqrt((r²+g²+b²)/3).
	QuadraticMean
)

var methodNames = map[Method]string{
	Luma709:       "luma709",
	Length:        "length",
	QuadraticMean: "quadratic",
}

func (m Method) String() string {
	if s, ok := methodNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod resolves a method name, case-insensitively. An empty name
// yields Luma709.
func ParseMethod(s string) (Method, error) {
	if s == "" {
		return Luma709, nil
	}
	for m, name := range methodNames {
		if strings.EqualFold(s, name) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("convert: unknown grayscale method %q", s)
}

// Grayscale reduces a 3-channel raster to one channel. A single-channel
// raster is returned as a copy.
func Grayscale(src *raster.Raster, m Method) *raster.Raster {
	if src.Channels == 1 {
		return src.Clone()
	}

	dst := raster.Like(src, 1)
	for i := range dst.Pix {
		p := src.Pix[i*3 : i*3+3]
		dst.Pix[i] = intensity(p[0], p[1], p[2], m)
	}
	return dst
}

func intensity(r, g, b float64, m Method) float64 {
	switch m {
	case Length:
		return mathutil.Clamp01(math.Sqrt(r*r + g*g + b*b))
	case QuadraticMean:
		return math.Sqrt((r*r + g*g + b*b) / 3)
	}

	lr, lg, lb := colorful.Color{R: r, G: g, B: b}.LinearRgb()
	l := 0.2126*lr + 0.7152*lg + 0.0722*lb
	return mathutil.Clamp01(colorful.LinearRgb(l, l, l).R)
}
