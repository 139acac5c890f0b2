// Package source decodes image files into rasters.
package source

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"image-analysis/internal/raster"
)

// ErrUnsupported is returned for files whose extension has no decoder.
var ErrUnsupported = errors.New("source: unsupported image format")

type decodeFunc func(io.Reader) (image.Image, error)

// decoders is keyed by lowercase extension. Decoding goes by extension
// rather than sniffing because TGA has no magic number.
var decoders = map[string]decodeFunc{
	".png":  png.Decode,
	".webp": nativewebp.Decode,
	".tga":  tga.Decode,
	".bmp":  bmp.Decode,
	".tif":  tiff.Decode,
	".tiff": tiff.Decode,
	".gif":  gif.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
}

// priority orders extensions for stem collisions in Scan: lossless first.
var priority = []string{".png", ".webp", ".tga", ".bmp", ".tif", ".tiff", ".gif", ".jpg", ".jpeg"}

// Supported reports whether path has a decodable extension.
func Supported(path string) bool {
	_, ok := decoders[strings.ToLower(filepath.Ext(path))]
	return ok
}

func rank(path string) int {
	ext := strings.ToLower(filepath.Ext(path))
	for i, e := range priority {
		if e == ext {
			return i
		}
	}
	return len(priority)
}

// Load reads and decodes an image file into a 3-channel raster.
func Load(path string) (*raster.Raster, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := decoders[ext]; !ok {
		return nil, fmt.Errorf("source: load %s: %w", path, ErrUnsupported)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: open %s: %w", path, err)
	}
	defer f.Close()

	r, err := Decode(bufio.NewReader(f), ext)
	if err != nil {
		return nil, fmt.Errorf("source: %s: %w", path, err)
	}
	return r, nil
}

// Decode decodes r with the decoder registered for ext (".png", ".tga", …).
func Decode(r io.Reader, ext string) (*raster.Raster, error) {
	dec, ok := decoders[strings.ToLower(ext)]
	if !ok {
		return nil, fmt.Errorf("decode %s: %w", ext, ErrUnsupported)
	}
	img, err := dec(r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", ext, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("decode %s: empty %v image", ext, img.Bounds())
	}
	return raster.FromImage(img), nil
}
