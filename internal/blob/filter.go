package blob

// Filter drops components smaller than minRatio of all labeled pixels and
// renumbers the survivors 1..n in their original order. A result with at
// most one component is returned as is.
func Filter(res *Result, minRatio float64) *Result {
	if len(res.Components) <= 1 || minRatio <= 0 {
		return res
	}

	total := 0
	for _, c := range res.Components {
		total += len(c.Points)
	}
	minSize := int(float64(total) * minRatio)

	out := &Result{
		Width:  res.Width,
		Height: res.Height,
		Labels: make([]int, len(res.Labels)),
	}
	for _, c := range res.Components {
		if len(c.Points) < minSize {
			continue
		}
		label := len(out.Components) + 1
		pts := make([]Point, len(c.Points))
		copy(pts, c.Points)
		for _, p := range pts {
			out.Labels[p.Y*out.Width+p.X] = label
		}
		out.Components = append(out.Components, Component{Label: label, Points: pts})
	}

	out.Visual = visualize(out.Width, out.Height, out.Labels, len(out.Components))
	return out
}
