// Package config loads analysis settings from JSON and CLI flags.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"

	"image-analysis/internal/blob"
	"image-analysis/internal/convert"
	"image-analysis/internal/kernel"
	"image-analysis/internal/posterize"
	"image-analysis/internal/sink"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid")

// Config holds all configurable paths and analysis settings.
type Config struct {
	// Paths
	Input     string `json:"input"`
	OutputDir string `json:"output_dir"`

	// Output settings
	Format      string `json:"format"`       // webp or png
	WritePoints bool   `json:"write_points"` // include pixel lists in components.json
	Workers     int    `json:"workers"`
	LogLevel    string `json:"log_level"`

	// Input conditioning
	Grayscale string `json:"grayscale"` // luma709, length, quadratic
	MaxWidth  int    `json:"max_width"`
	MaxHeight int    `json:"max_height"`

	Posterize PosterizeConfig `json:"posterize"`
	Edge      EdgeConfig      `json:"edge"`
	Blob      BlobConfig      `json:"blob"`
	Morph     MorphConfig     `json:"morph"`
}

// PosterizeConfig configures the K-means posterizer.
type PosterizeConfig struct {
	K             int `json:"k"`
	MaxIterations int `json:"max_iterations"`
}

// EdgeConfig configures the edge stages. Kernel fields name presets.
type EdgeConfig struct {
	Blur     string  `json:"blur"`
	Gradient string  `json:"gradient"`
	Sharpen  string  `json:"sharpen"`
	Sobel    string  `json:"sobel"`
	Major    float64 `json:"major"`
	Minor    float64 `json:"minor"`
}

// BlobConfig configures component labeling.
type BlobConfig struct {
	Strong   float64 `json:"strong"`
	Weak     float64 `json:"weak"`
	MinRatio float64 `json:"min_ratio"` // 0 keeps every component
}

// MorphConfig names the structuring element for dilation and erosion.
type MorphConfig struct {
	Element string `json:"element"`
}

// Default values applied by Resolve.
const (
	DefaultK        = 3
	DefaultMajor    = 0.04
	DefaultMinor    = 0.03
	DefaultBlur     = "gaussian5x5"
	DefaultGradient = "gradient3x1"
	DefaultSharpen  = "sharpen3x3"
	DefaultSobel    = "sobel3x3"
	DefaultElement  = "square3x3"
	DefaultFormat   = "webp"
	DefaultOutput   = "out"
)

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Input     string
	OutputDir string
	Format    string
	Workers   int
	K         int
	Major     float64
	Minor     float64
	LogLevel  string
}

// Resolve applies non-zero flags over the file values, then fills every
// remaining zero field with its default.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Input != "" {
		c.Input = flags.Input
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.K > 0 {
		c.Posterize.K = flags.K
	}
	if flags.Major > 0 {
		c.Edge.Major = flags.Major
	}
	if flags.Minor > 0 {
		c.Edge.Minor = flags.Minor
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}

	if c.OutputDir == "" {
		c.OutputDir = DefaultOutput
	}
	if c.Format == "" {
		c.Format = DefaultFormat
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	if c.Posterize.K <= 0 {
		c.Posterize.K = DefaultK
	}
	if c.Posterize.MaxIterations <= 0 {
		c.Posterize.MaxIterations = posterize.DefaultMaxIterations
	}

	if c.Edge.Blur == "" {
		c.Edge.Blur = DefaultBlur
	}
	if c.Edge.Gradient == "" {
		c.Edge.Gradient = DefaultGradient
	}
	if c.Edge.Sharpen == "" {
		c.Edge.Sharpen = DefaultSharpen
	}
	if c.Edge.Sobel == "" {
		c.Edge.Sobel = DefaultSobel
	}
	if c.Edge.Major <= 0 {
		c.Edge.Major = DefaultMajor
	}
	if c.Edge.Minor <= 0 {
		c.Edge.Minor = DefaultMinor
	}

	cut := blob.DefaultCutoffs()
	if c.Blob.Strong <= 0 {
		c.Blob.Strong = cut.Strong
	}
	if c.Blob.Weak <= 0 {
		c.Blob.Weak = cut.Weak
	}

	if c.Morph.Element == "" {
		c.Morph.Element = DefaultElement
	}
}

// Validate checks a resolved config.
func (c *Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("%w: no input path", ErrInvalid)
	}
	if _, err := sink.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := convert.ParseMethod(c.Grayscale); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	for _, name := range []string{c.Edge.Blur, c.Edge.Gradient, c.Edge.Sharpen, c.Edge.Sobel, c.Morph.Element} {
		if _, err := kernel.Named(name); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	}
	if c.Edge.Minor > c.Edge.Major {
		return fmt.Errorf("%w: edge minor %g above major %g", ErrInvalid, c.Edge.Minor, c.Edge.Major)
	}
	if c.Edge.Major > 1 {
		return fmt.Errorf("%w: edge major %g above 1", ErrInvalid, c.Edge.Major)
	}
	if c.Blob.Weak > c.Blob.Strong || c.Blob.Strong > 1 {
		return fmt.Errorf("%w: blob cutoffs strong=%g weak=%g", ErrInvalid, c.Blob.Strong, c.Blob.Weak)
	}
	if c.Blob.MinRatio < 0 || c.Blob.MinRatio >= 1 {
		return fmt.Errorf("%w: blob min_ratio %g outside [0,1)", ErrInvalid, c.Blob.MinRatio)
	}
	if c.MaxWidth < 0 || c.MaxHeight < 0 {
		return fmt.Errorf("%w: negative max size %dx%d", ErrInvalid, c.MaxWidth, c.MaxHeight)
	}
	return nil
}
