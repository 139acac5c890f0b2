package blob

import (
	"fmt"
	"math"

	"image-analysis/internal/raster"

	"github.com/lucasb-eyer/go-colorful"
)

// goldenAngle spreads consecutive labels around the hue circle.
const goldenAngle = 137.50776405003785

// LabelColor returns a distinct, fully saturated color for a label.
func LabelColor(label int) colorful.Color {
	h := math.Mod(float64(label)*goldenAngle, 360)
	return colorful.Hsv(h, 0.85, 1).Clamped()
}

// unpainted marks pixels of the paint layer that keep the base value.
const unpainted = -1

// Overlay paints every labeled pixel over base with its label color and
// returns a 3-channel raster. base must match the labeled grid's size.
func (r *Result) Overlay(base *raster.Raster) (*raster.Raster, error) {
	paint, err := raster.New(r.Width, r.Height, 3)
	if err != nil {
		return nil, err
	}
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			i := paint.Offset(x, y)
			l := r.Labels[y*r.Width+x]
			if l == 0 {
				paint.Pix[i], paint.Pix[i+1], paint.Pix[i+2] = unpainted, unpainted, unpainted
				continue
			}
			c := LabelColor(l)
			paint.Pix[i], paint.Pix[i+1], paint.Pix[i+2] = c.R, c.G, c.B
		}
	}

	out, err := raster.Combine(base, paint, func(b, p float64) float64 {
		if p == unpainted {
			return b
		}
		return p
	})
	if err != nil {
		return nil, fmt.Errorf("blob: overlay: %w", err)
	}
	return out, nil
}
