package main

import (
	"flag"
	"fmt"
	"os"

	"image-analysis/internal/blob"
	"image-analysis/internal/convert"
	"image-analysis/internal/edge"
	"image-analysis/internal/posterize"
	"image-analysis/internal/source"
)

func main() {
	k := flag.Int("k", 3, "Posterize cluster count")
	major := flag.Float64("major", 0.04, "Strong edge threshold")
	minor := flag.Float64("minor", 0.03, "Weak edge threshold")
	top := flag.Int("top", 10, "Show at most N histogram peaks and components")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: inspect [flags] <image>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	src, err := source.Load(path)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	gray := convert.Grayscale(src, convert.Luma709)
	fmt.Printf("Image: %s (%dx%d), mean intensity %.3f\n", path, src.Width, src.Height, gray.Mean())

	// Histogram and clustering
	res := posterize.Posterize(gray, *k, posterize.Options{})
	fmt.Printf("Histogram peaks: %d\n", len(res.Peaks))
	for i, p := range res.Peaks {
		if i == *top {
			fmt.Printf("  ... %d more\n", len(res.Peaks)-i)
			break
		}
		fmt.Printf("  level=%3d height=%d\n", p.Level, p.Height)
	}
	fmt.Printf("K-means: k=%d iterations=%d converged=%v\n", res.K, res.Clusters.Iterations, res.Clusters.Converged)
	for i, c := range res.Clusters.Clusters {
		fmt.Printf("  cluster[%d]: center=%3d pixels=%d\n", i, c.Center, c.Count)
	}

	// Edges and components
	p := edge.DefaultParams()
	p.Major, p.Minor = *major, *minor
	stages, err := edge.Detect(gray, p)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	strong, weak := 0, 0
	for _, v := range stages.Classified.Pix {
		switch v {
		case edge.Strong:
			strong++
		case edge.Weak:
			weak++
		}
	}
	fmt.Printf("Edges: strong=%d weak=%d\n", strong, weak)

	labels := blob.Label(stages.Classified, blob.DefaultCutoffs())
	fmt.Printf("Components: %d\n", len(labels.Components))
	for i, s := range labels.AllStats() {
		if i == *top {
			fmt.Printf("  ... %d more\n", len(labels.Components)-i)
			break
		}
		fmt.Printf("  [%d] area=%d bounds=%v centroid=(%.1f, %.1f) orientation=%.2f rad\n",
			s.Label, s.Area, s.Bounds, s.CentroidX, s.CentroidY, s.Orientation)
	}
}
