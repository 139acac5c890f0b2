package pipeline

import (
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"image-analysis/internal/config"
	"image-analysis/internal/logger"
	"image-analysis/internal/source"
)

// writeSquare writes a 32×32 dark image with a bright 16×16 square.
func writeSquare(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			c := color.NRGBA{25, 25, 25, 255}
			if x >= 8 && x < 24 && y >= 8 && y < 24 {
				c = color.NRGBA{230, 230, 230, 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func testOptions(t *testing.T, out string) Options {
	t.Helper()
	var cfg config.Config
	cfg.Resolve(config.Flags{Input: "unused", OutputDir: out, Format: "png", Workers: 2})
	require.NoError(t, cfg.Validate())
	opts, err := FromConfig(cfg)
	require.NoError(t, err)
	return opts
}

func TestFromConfig(t *testing.T) {
	opts := testOptions(t, "out")
	assert.Equal(t, ".png", opts.Format.Ext())
	assert.Equal(t, 3, opts.K)
	assert.Equal(t, 5, opts.Edge.Blur.Rows())
	assert.Equal(t, 3, opts.Edge.Gradient.Rows())
	assert.Equal(t, 1, opts.Edge.Gradient.Cols())
	assert.Equal(t, 2, opts.Workers)
	assert.GreaterOrEqual(t, opts.Edge.Workers, 1)
}

func TestProcessWritesStages(t *testing.T) {
	in := filepath.Join(t.TempDir(), "square.png")
	writeSquare(t, in)
	out := t.TempDir()
	opts := testOptions(t, out)

	res := Process(context.Background(), opts, source.Item{Name: "square", Path: in})
	require.True(t, res.Success, res.Error)
	assert.Equal(t, 32, res.Width)
	assert.Equal(t, 32, res.Height)
	assert.Positive(t, res.Components)
	assert.Equal(t, []int{25, 230}, res.Centers)
	assert.True(t, res.Converged)

	want := []string{
		StageSource, StageGrayscale, StagePosterized, StageBlurred, StageGradients,
		StageSuppressed, StageClassified, StageBlobs, StageOverlay, StageSharpened,
		StageSobel, StageDilated, StageEroded,
	}
	require.Len(t, res.Stages, len(want))
	for i, s := range res.Stages {
		assert.Equal(t, want[i], s.Stage)
		assert.Equal(t, "square/"+want[i]+".png", s.Image)
		assert.FileExists(t, filepath.Join(out, filepath.FromSlash(s.Image)))
	}
	assert.FileExists(t, filepath.Join(out, "square", ComponentsFile))

	eroded, err := source.Load(filepath.Join(out, "square", StageEroded+".png"))
	require.NoError(t, err)
	assert.Equal(t, 32, eroded.Width)
}

func TestProcessResizes(t *testing.T) {
	in := filepath.Join(t.TempDir(), "square.png")
	writeSquare(t, in)
	opts := testOptions(t, t.TempDir())
	opts.MaxWidth = 16

	res := Process(context.Background(), opts, source.Item{Name: "small", Path: in})
	require.True(t, res.Success, res.Error)
	assert.Equal(t, 16, res.Width)
	assert.Equal(t, 16, res.Height)
}

func TestProcessHonorsCancellation(t *testing.T) {
	in := filepath.Join(t.TempDir(), "square.png")
	writeSquare(t, in)
	out := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := Process(ctx, testOptions(t, out), source.Item{Name: "square", Path: in})
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, context.Canceled.Error())
	assert.NoFileExists(t, filepath.Join(out, "square", StageSource+".png"))
}

func TestRunCollectsFailures(t *testing.T) {
	dir := t.TempDir()
	writeSquare(t, filepath.Join(dir, "a.png"))
	writeSquare(t, filepath.Join(dir, "c.png"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.png"), []byte("broken"), 0o644))

	items, err := source.Scan(dir)
	require.NoError(t, err)
	require.Len(t, items, 3)

	out := t.TempDir()
	results := Run(context.Background(), testOptions(t, out), items, logger.Nop())
	require.Len(t, results, 3)

	assert.True(t, results[0].Success, results[0].Error)
	assert.False(t, results[1].Success)
	assert.NotEmpty(t, results[1].Error)
	assert.True(t, results[2].Success, results[2].Error)

	success, failed := Summary(results)
	assert.Equal(t, 2, success)
	assert.Equal(t, 1, failed)

	path := filepath.Join(out, "manifest.json")
	require.NoError(t, WriteManifest(path, results))
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entries []ManifestEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 3)
	assert.Equal(t, "a", entries[0].Name)
	assert.Len(t, entries[0].Stages, 13)
	assert.NotEmpty(t, entries[1].Error)
}

func TestRunCancelledBeforeStart(t *testing.T) {
	dir := t.TempDir()
	writeSquare(t, filepath.Join(dir, "a.png"))
	items, err := source.Scan(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := Run(ctx, testOptions(t, t.TempDir()), items, nil)
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Equal(t, "a", results[0].Name)
}
