package raster

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// Luma returns the perceptual brightness of a color, 0 (black) to 255
// (white), using the BT.601 weights.
func Luma(c color.Color) int {
	r, g, b, _ := c.RGBA()
	return (299*int(r>>8) + 587*int(g>>8) + 114*int(b>>8)) / 1000
}

// Dark reports whether the pixel at (x, y), offsets from the image
// origin, is darker than threshold.
func Dark(img image.Image, x, y int, threshold uint8) bool {
	b := img.Bounds()
	return Luma(img.At(b.Min.X+x, b.Min.Y+y)) < int(threshold)
}

// Scale resamples img to w by h pixels with Catmull-Rom interpolation,
// so one pixel of the result corresponds to one sampling grid point.
func Scale(img image.Image, w, h int) image.Image {
	b := img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
