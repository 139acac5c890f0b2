package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"image-analysis/internal/blob"
	"image-analysis/internal/convert"
	"image-analysis/internal/edge"
	"image-analysis/internal/filter"
	"image-analysis/internal/morph"
	"image-analysis/internal/posterize"
	"image-analysis/internal/raster"
	"image-analysis/internal/sink"
	"image-analysis/internal/source"
)

// Stage names, in the order they are written.
const (
	StageSource     = "source"
	StageGrayscale  = "grayscale"
	StagePosterized = "posterized"
	StageBlurred    = "blurred"
	StageGradients  = "gradients"
	StageSuppressed = "suppressed"
	StageClassified = "classified"
	StageBlobs      = "blobs"
	StageOverlay    = "overlay"
	StageSharpened  = "sharpened"
	StageSobel      = "sobel"
	StageDilated    = "dilated"
	StageEroded     = "eroded"
)

// ComponentsFile is written next to the stage images.
const ComponentsFile = "components.json"

// Result holds the outcome of processing one item.
type Result struct {
	Name    string
	Path    string
	Success bool
	Error   string

	Width  int
	Height int

	// Stages lists the written images in stage order, relative to OutputDir.
	Stages []StageFile

	Components int
	Centers    []int // posterized levels on the 0..255 scale
	Iterations int
	Converged  bool
}

// StageFile is one written stage image.
type StageFile struct {
	Stage string `json:"stage"`
	Image string `json:"image"`
}

type step struct {
	name string
	run  func() (*raster.Raster, error)
}

// Process runs every stage on one input and writes the stage images under
// OutputDir/<item name>/. The context is checked between stages.
func Process(ctx context.Context, opts Options, item source.Item) Result {
	res := Result{Name: item.Name, Path: item.Path}
	fail := func(err error) Result {
		res.Success = false
		res.Error = err.Error()
		return res
	}

	src, err := source.Load(item.Path)
	if err != nil {
		return fail(err)
	}
	if opts.MaxWidth > 0 || opts.MaxHeight > 0 {
		w, h := convert.FitWithin(src.Width, src.Height, opts.MaxWidth, opts.MaxHeight)
		if src, err = convert.Resize(src, w, h); err != nil {
			return fail(err)
		}
	}
	res.Width, res.Height = src.Width, src.Height

	conv := filter.Engine{Workers: opts.Edge.Workers}
	mo := morph.Engine{Workers: opts.Edge.Workers}

	var (
		gray   *raster.Raster
		poster *posterize.Result
		stages *edge.Stages
		blobs  *blob.Result
	)

	steps := []step{
		{StageSource, func() (*raster.Raster, error) { return src, nil }},
		{StageGrayscale, func() (*raster.Raster, error) {
			gray = convert.Grayscale(src, opts.Grayscale)
			return gray, nil
		}},
		{StagePosterized, func() (*raster.Raster, error) {
			poster = posterize.Posterize(gray, opts.K, posterize.Options{MaxIterations: opts.MaxIterations})
			return poster.Raster, nil
		}},
		{StageBlurred, func() (*raster.Raster, error) {
			var err error
			if stages, err = edge.Detect(gray, opts.Edge); err != nil {
				return nil, err
			}
			return stages.Blurred, nil
		}},
		{StageGradients, func() (*raster.Raster, error) { return stages.Gradients, nil }},
		{StageSuppressed, func() (*raster.Raster, error) { return stages.Suppressed, nil }},
		{StageClassified, func() (*raster.Raster, error) { return stages.Classified, nil }},
		{StageBlobs, func() (*raster.Raster, error) {
			blobs = blob.Filter(blob.Label(stages.Classified, opts.Cutoffs), opts.MinRatio)
			return blobs.Visual, nil
		}},
		{StageOverlay, func() (*raster.Raster, error) { return blobs.Overlay(poster.Raster) }},
		{StageSharpened, func() (*raster.Raster, error) { return conv.Convolve(src, opts.Sharpen), nil }},
		{StageSobel, func() (*raster.Raster, error) { return conv.Sobel(gray, opts.Sobel), nil }},
		{StageDilated, func() (*raster.Raster, error) { return mo.Dilate(poster.Raster, opts.Element), nil }},
		{StageEroded, func() (*raster.Raster, error) { return mo.Erode(poster.Raster, opts.Element), nil }},
	}

	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return fail(fmt.Errorf("pipeline: %s before %s: %w", item.Name, s.name, err))
		}
		r, err := s.run()
		if err != nil {
			return fail(fmt.Errorf("pipeline: %s %s: %w", item.Name, s.name, err))
		}
		rel := filepath.Join(item.Name, s.name+opts.Format.Ext())
		if err := sink.Save(filepath.Join(opts.OutputDir, rel), r); err != nil {
			return fail(err)
		}
		res.Stages = append(res.Stages, StageFile{Stage: s.name, Image: filepath.ToSlash(rel)})
	}

	if err := sink.WriteComponents(filepath.Join(opts.OutputDir, item.Name, ComponentsFile), blobs, opts.WritePoints); err != nil {
		return fail(err)
	}

	res.Components = len(blobs.Components)
	res.Centers = poster.Clusters.Centers()
	res.Iterations = poster.Clusters.Iterations
	res.Converged = poster.Clusters.Converged
	res.Success = true
	return res
}
