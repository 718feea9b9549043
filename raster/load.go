// Package raster loads input images and provides the pixel sampling
// helpers used to choose cutting depth per grid point.
package raster

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Load reads and decodes an image file. PNG and JPEG are decoded
// directly; SVG input is rasterized at its view box size. A missing
// file surfaces as fs.ErrNotExist via errors.Is.
func Load(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".svg":
		return rasterizeSVG(data)
	case ".png":
		return png.Decode(bytes.NewReader(data))
	case ".jpg", ".jpeg":
		return jpeg.Decode(bytes.NewReader(data))
	}

	return nil, errors.New("unsupported image format: " + ext)
}

func rasterizeSVG(data []byte) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	w := int(icon.ViewBox.W)
	h := int(icon.ViewBox.H)
	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	scanner.SetClip(img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)

	return img, nil
}
