// Package sink encodes rasters and analysis results to files.
package sink

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"

	"image-analysis/internal/blob"
	"image-analysis/internal/raster"
)

// Format is an output image encoding.
type Format string

const (
	WebP Format = "webp"
	PNG  Format = "png"
)

// ErrFormat is returned for unknown output formats.
var ErrFormat = errors.New("sink: unknown output format")

// ParseFormat accepts "webp" or "png", with or without a leading dot.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case WebP, PNG:
		return f, nil
	}
	return "", fmt.Errorf("sink: format %q: %w", s, ErrFormat)
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string { return "." + string(f) }

// Encode writes r to w. Single-channel rasters are written as gray.
// WebP output is lossless.
func Encode(w io.Writer, r *raster.Raster, f Format) error {
	img := r.ToNRGBA()
	switch f {
	case WebP:
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("sink: webp encode: %w", err)
		}
	case PNG:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("sink: png encode: %w", err)
		}
	default:
		return fmt.Errorf("sink: encode %q: %w", f, ErrFormat)
	}
	return nil
}

// Save encodes r to path, choosing the format from the extension and
// creating parent directories.
func Save(path string, r *raster.Raster) error {
	f, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("sink: mkdir %s: %w", filepath.Dir(path), err)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sink: create %s: %w", path, err)
	}
	if err := Encode(out, r, f); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// ComponentRecord is the JSON form of one labeled component.
type ComponentRecord struct {
	blob.Stats
	Points []blob.Point `json:"points,omitempty"`
}

// WriteComponents writes the components of res with their statistics to
// path as indented JSON. Pixel lists are included when withPoints is set.
func WriteComponents(path string, res *blob.Result, withPoints bool) error {
	records := make([]ComponentRecord, len(res.Components))
	for i, c := range res.Components {
		records[i].Stats = c.Stats()
		if withPoints {
			records[i].Points = c.Points
		}
	}
	return WriteJSON(path, records)
}

// WriteJSON marshals v with two-space indentation to path.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("sink: marshal %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("sink: mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("sink: write %s: %w", path, err)
	}
	return nil
}
