// Package pipeline runs the full analysis over image files and writes every
// intermediate stage to disk.
package pipeline

import (
	"fmt"
	"runtime"

	"image-analysis/internal/blob"
	"image-analysis/internal/config"
	"image-analysis/internal/convert"
	"image-analysis/internal/edge"
	"image-analysis/internal/kernel"
	"image-analysis/internal/sink"
)

// Options holds the resolved settings shared by every item of a run.
type Options struct {
	OutputDir   string
	Format      sink.Format
	WritePoints bool

	Grayscale convert.Method
	MaxWidth  int // 0 leaves the width unconstrained
	MaxHeight int

	K             int
	MaxIterations int

	Edge     edge.Params
	Sharpen  kernel.Kernel
	Sobel    kernel.Kernel
	Element  kernel.Kernel
	Cutoffs  blob.Cutoffs
	MinRatio float64

	// Workers is the number of images processed concurrently. Each image
	// gets Edge.Workers goroutines for its row-parallel operators.
	Workers int
}

// FromConfig turns a resolved and validated config into Options.
func FromConfig(cfg config.Config) (Options, error) {
	opts := Options{
		OutputDir:     cfg.OutputDir,
		WritePoints:   cfg.WritePoints,
		MaxWidth:      cfg.MaxWidth,
		MaxHeight:     cfg.MaxHeight,
		K:             cfg.Posterize.K,
		MaxIterations: cfg.Posterize.MaxIterations,
		Cutoffs:       blob.Cutoffs{Strong: cfg.Blob.Strong, Weak: cfg.Blob.Weak},
		MinRatio:      cfg.Blob.MinRatio,
		Workers:       max(1, cfg.Workers),
	}

	var err error
	if opts.Format, err = sink.ParseFormat(cfg.Format); err != nil {
		return Options{}, err
	}
	if opts.Grayscale, err = convert.ParseMethod(cfg.Grayscale); err != nil {
		return Options{}, err
	}

	kernels := []struct {
		name string
		dst  *kernel.Kernel
	}{
		{cfg.Edge.Blur, &opts.Edge.Blur},
		{cfg.Edge.Gradient, &opts.Edge.Gradient},
		{cfg.Edge.Sharpen, &opts.Sharpen},
		{cfg.Edge.Sobel, &opts.Sobel},
		{cfg.Morph.Element, &opts.Element},
	}
	for _, k := range kernels {
		if *k.dst, err = kernel.Named(k.name); err != nil {
			return Options{}, fmt.Errorf("pipeline: %w", err)
		}
	}

	opts.Edge.Major = cfg.Edge.Major
	opts.Edge.Minor = cfg.Edge.Minor
	opts.Edge.Workers = max(1, runtime.GOMAXPROCS(0)/opts.Workers)
	return opts, nil
}
