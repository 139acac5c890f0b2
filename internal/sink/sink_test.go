package sink

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"image-analysis/internal/blob"
	"image-analysis/internal/raster"
	"image-analysis/internal/source"
)

func gradient(t *testing.T, channels int) *raster.Raster {
	t.Helper()
	r, err := raster.New(6, 4, channels)
	require.NoError(t, err)
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			r.SetAll(x, y, float64(x*40+y*10)/255)
		}
	}
	return r
}

func TestSaveRoundTrip(t *testing.T) {
	for _, name := range []string{"stage.webp", "stage.png"} {
		t.Run(name, func(t *testing.T) {
			src := gradient(t, 1)
			path := filepath.Join(t.TempDir(), "nested", name)
			require.NoError(t, Save(path, src))

			got, err := source.Load(path)
			require.NoError(t, err)
			require.True(t, got.SameSize(src))
			for y := 0; y < src.Height; y++ {
				for x := 0; x < src.Width; x++ {
					for c := 0; c < 3; c++ {
						assert.InDelta(t, src.Value(x, y, 0), got.Value(x, y, c), 1e-9)
					}
				}
			}
		})
	}
}

func TestSaveRejectsUnknownExtension(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "out.gif"), gradient(t, 3))
	assert.ErrorIs(t, err, ErrFormat)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(".PNG")
	require.NoError(t, err)
	assert.Equal(t, PNG, f)
	assert.Equal(t, ".png", f.Ext())

	f, err = ParseFormat("webp")
	require.NoError(t, err)
	assert.Equal(t, WebP, f)

	_, err = ParseFormat("jpeg")
	assert.ErrorIs(t, err, ErrFormat)
}

func TestEncodeWebPHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, gradient(t, 3), WebP))
	assert.Equal(t, "RIFF", buf.String()[:4])
	assert.Equal(t, "WEBP", buf.String()[8:12])
}

func TestWriteComponents(t *testing.T) {
	classified, err := raster.FromValues(4, 1, 1, []float64{1, 1, 0, 1})
	require.NoError(t, err)
	res := blob.Label(classified, blob.DefaultCutoffs())
	require.Len(t, res.Components, 2)

	path := filepath.Join(t.TempDir(), "components.json")
	require.NoError(t, WriteComponents(path, res, true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var records []struct {
		Label  int          `json:"label"`
		Area   int          `json:"area"`
		Points []blob.Point `json:"points"`
	}
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 2)
	assert.Equal(t, 2, records[0].Area)
	assert.Equal(t, []blob.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}, records[0].Points)
	assert.Equal(t, 1, records[1].Area)
}
