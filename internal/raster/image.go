package raster

import (
	"image"
	"image/color"
	"image/draw"

	"image-analysis/internal/mathutil"
)

// FromImage converts any image into a 3-channel raster. Alpha is dropped.
func FromImage(src image.Image) *Raster {
	b := src.Bounds()
	nrgba, ok := src.(*image.NRGBA)
	if !ok {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), src, b.Min, draw.Src)
	}
	nb := nrgba.Bounds()

	r := &Raster{
		Width:    nb.Dx(),
		Height:   nb.Dy(),
		Channels: 3,
		Pix:      make([]float64, nb.Dx()*nb.Dy()*3),
	}
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			si := nrgba.PixOffset(nb.Min.X+x, nb.Min.Y+y)
			di := r.Offset(x, y)
			r.Pix[di] = float64(nrgba.Pix[si]) / 255
			r.Pix[di+1] = float64(nrgba.Pix[si+1]) / 255
			r.Pix[di+2] = float64(nrgba.Pix[si+2]) / 255
		}
	}
	return r
}

// ToNRGBA converts the raster to an opaque 8-bit image. Single-channel
// rasters become gray.
func (r *Raster) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			si := r.Offset(x, y)
			var c color.NRGBA
			if r.Channels == 1 {
				v := mathutil.ToByte(r.Pix[si])
				c = color.NRGBA{v, v, v, 255}
			} else {
				c = color.NRGBA{
					mathutil.ToByte(r.Pix[si]),
					mathutil.ToByte(r.Pix[si+1]),
					mathutil.ToByte(r.Pix[si+2]),
					255,
				}
			}
			di := img.PixOffset(x, y)
			img.Pix[di] = c.R
			img.Pix[di+1] = c.G
			img.Pix[di+2] = c.B
			img.Pix[di+3] = c.A
		}
	}
	return img
}
