package convert

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"image-analysis/internal/raster"
)

// Resize scales src to w×h with Catmull-Rom filtering. Samples pass through
// 16-bit intermediates. Equal dimensions return a copy.
func Resize(src *raster.Raster, w, h int) (*raster.Raster, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("convert: resize to %dx%d: non-positive dimension", w, h)
	}
	if src.Width == w && src.Height == h {
		return src.Clone(), nil
	}
	if src.Empty() {
		return nil, fmt.Errorf("convert: resize empty %dx%d raster", src.Width, src.Height)
	}

	if src.Channels == 1 {
		in := image.NewGray16(image.Rect(0, 0, src.Width, src.Height))
		for y := 0; y < src.Height; y++ {
			for x := 0; x < src.Width; x++ {
				in.SetGray16(x, y, color.Gray16{Y: to16(src.Value(x, y, 0))})
			}
		}
		out := image.NewGray16(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(out, out.Bounds(), in, in.Bounds(), draw.Src, nil)

		dst, err := raster.New(w, h, 1)
		if err != nil {
			return nil, err
		}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				dst.Set(x, y, 0, float64(out.Gray16At(x, y).Y)/0xffff)
			}
		}
		return dst, nil
	}

	in := image.NewRGBA64(image.Rect(0, 0, src.Width, src.Height))
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			i := src.Offset(x, y)
			in.SetRGBA64(x, y, color.RGBA64{
				R: to16(src.Pix[i]),
				G: to16(src.Pix[i+1]),
				B: to16(src.Pix[i+2]),
				A: 0xffff,
			})
		}
	}
	out := image.NewRGBA64(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(out, out.Bounds(), in, in.Bounds(), draw.Src, nil)

	dst, err := raster.New(w, h, 3)
	if err != nil {
		return nil, err
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := out.RGBA64At(x, y)
			i := dst.Offset(x, y)
			dst.Pix[i] = float64(c.R) / 0xffff
			dst.Pix[i+1] = float64(c.G) / 0xffff
			dst.Pix[i+2] = float64(c.B) / 0xffff
		}
	}
	return dst, nil
}

// FitWithin returns the largest dimensions no bigger than maxW×maxH that
// keep the aspect ratio of w×h. A zero bound leaves that axis unconstrained.
func FitWithin(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return w, h
	}
	scale := 1.0
	if maxW > 0 && w > maxW {
		scale = float64(maxW) / float64(w)
	}
	if maxH > 0 && float64(h)*scale > float64(maxH) {
		scale = float64(maxH) / float64(h)
	}
	nw := max(1, int(float64(w)*scale+0.5))
	nh := max(1, int(float64(h)*scale+0.5))
	return nw, nh
}

func to16(v float64) uint16 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xffff
	}
	return uint16(v*0xffff + 0.5)
}
