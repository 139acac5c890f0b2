package blob

import (
	"image"

	"image-analysis/internal/mathutil"
)

// Stats summarizes a component's geometry.
type Stats struct {
	Label  int             `json:"label"`
	Area   int             `json:"area"`
	Bounds image.Rectangle `json:"bounds"` // Max is exclusive

	CentroidX float64 `json:"centroid_x"`
	CentroidY float64 `json:"centroid_y"`

	// Orientation is the angle of the principal axis in radians, measured
	// from +x towards +y, in (-π/2, π/2].
	Orientation float64 `json:"orientation"`
}

// Stats computes area, bounding box, centroid and principal axis.
func (c Component) Stats() Stats {
	s := Stats{Label: c.Label, Area: len(c.Points)}
	if s.Area == 0 {
		return s
	}

	xs := make([]float64, len(c.Points))
	ys := make([]float64, len(c.Points))
	b := image.Rect(c.Points[0].X, c.Points[0].Y, c.Points[0].X+1, c.Points[0].Y+1)
	for i, p := range c.Points {
		xs[i] = float64(p.X)
		ys[i] = float64(p.Y)
		b = b.Union(image.Rect(p.X, p.Y, p.X+1, p.Y+1))
	}
	s.Bounds = b
	s.CentroidX, s.CentroidY, s.Orientation = mathutil.PrincipalAxis(xs, ys)
	return s
}

// AllStats returns Stats for every component, in label order.
func (r *Result) AllStats() []Stats {
	out := make([]Stats, len(r.Components))
	for i, c := range r.Components {
		out[i] = c.Stats()
	}
	return out
}
