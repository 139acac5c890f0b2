package kernel

import (
	"fmt"
	"sort"
	"strings"
)

// Convolution presets. Tables are written as k(i, j) rows, i.e. each
// source line below is one horizontal offset.
var (
	// Identity leaves a raster unchanged.
	Identity = must(New(1, 1, 1))

	// Box3x3 averages the 3×3 neighborhood.
	Box3x3 = must(New(3, 3,
		1, 1, 1,
		1, 1, 1,
		1, 1, 1,
	)).Scale(1.0 / 9.0)

	// Gaussian5x5 is the classic σ≈1.4 approximation normalized by 159.
	Gaussian5x5 = must(New(5, 5,
		2, 4, 5, 4, 2,
		4, 9, 12, 9, 4,
		5, 12, 15, 12, 5,
		4, 9, 12, 9, 4,
		2, 4, 5, 4, 2,
	)).Scale(1.0 / 159.0)

	Sharpen3x3 = must(New(3, 3,
		0, -1, 0,
		-1, 5, -1,
		0, -1, 0,
	))

	// Edge3x3 is a Laplacian-style 8-neighbor edge detector.
	Edge3x3 = must(New(3, 3,
		-1, -1, -1,
		-1, 8, -1,
		-1, -1, -1,
	))

	// Gradient3x1 is a horizontal central difference.
	Gradient3x1 = must(New(3, 1, -1, 0, 1))

	// Gradient1x3 is a vertical central difference.
	Gradient1x3 = must(New(1, 3, -1, 0, 1))

	// Sobel3x3 is read row-major for gx and column-major for gy.
	Sobel3x3 = must(New(3, 3,
		1, 2, 1,
		0, 0, 0,
		-1, -2, -1,
	))
)

// Structuring elements for morphology. Only non-zero cells participate.
var (
	Cross3x3 = must(New(3, 3,
		0, 1, 0,
		1, 1, 1,
		0, 1, 0,
	))

	Square3x3 = must(New(3, 3,
		1, 1, 1,
		1, 1, 1,
		1, 1, 1,
	))
)

var presets = map[string]Kernel{
	"identity":    Identity,
	"box3x3":      Box3x3,
	"gaussian5x5": Gaussian5x5,
	"sharpen3x3":  Sharpen3x3,
	"edge3x3":     Edge3x3,
	"gradient3x1": Gradient3x1,
	"gradient1x3": Gradient1x3,
	"sobel3x3":    Sobel3x3,
	"cross3x3":    Cross3x3,
	"square3x3":   Square3x3,
}

// Named looks up a preset by case-insensitive name.
func Named(name string) (Kernel, error) {
	k, ok := presets[strings.ToLower(name)]
	if !ok {
		return Kernel{}, fmt.Errorf("kernel: unknown preset %q (have %s)", name, strings.Join(Names(), ", "))
	}
	return k, nil
}

// Names lists preset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
