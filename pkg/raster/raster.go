// Package raster loads logo images into 8-bit grayscale grids.
//
// Raster formats are decoded through the standard image registry: PNG, JPEG
// and GIF from the standard library, BMP, TIFF and WebP from
// golang.org/x/image. SVG files are rasterised at their viewBox size onto a
// white canvas with oksvg and rasterx.
//
// Conversion to gray ignores alpha and uses the ITU-R 601-2 luma weights
//
//	L = (299·R + 587·G + 114·B) / 1000
//
// on the straight (non-premultiplied) 8-bit channels, so a transparent pixel
// keeps whatever colour it stores.
package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/matzehuels/logogds/pkg/bitmap"
	errs "github.com/matzehuels/logogds/pkg/errors"
)

// Image is a decoded input image.
type Image struct {
	Gray   *bitmap.Gray
	Format string // decoder name, e.g. "png" or "svg"
}

// Load reads and decodes the image at path. Files with an .svg extension are
// rasterised; everything else goes through the image registry.
func Load(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInput, err, "cannot read image %s", path)
	}

	if strings.EqualFold(filepath.Ext(path), ".svg") {
		img, err := rasterizeSVG(bytes.NewReader(data))
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInput, err, "cannot decode SVG %s", path)
		}
		return &Image{Gray: ToGray(img), Format: "svg"}, nil
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInput, err, "cannot decode image %s", path)
	}
	return &Image{Gray: ToGray(img), Format: format}, nil
}

// ToGray converts img to a grayscale grid with its top-left corner at (0, 0).
func ToGray(img image.Image) *bitmap.Gray {
	b := img.Bounds()
	g := bitmap.NewGray(b.Dx(), b.Dy())
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			g.Set(x, y, luma(img.At(b.Min.X+x, b.Min.Y+y)))
		}
	}
	return g
}

func luma(c color.Color) uint8 {
	switch c := c.(type) {
	case color.Gray:
		return c.Y
	case color.Gray16:
		return uint8(c.Y >> 8)
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return uint8((299*uint32(n.R) + 587*uint32(n.G) + 114*uint32(n.B) + 500) / 1000)
}

func rasterizeSVG(r io.Reader) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(r)
	if err != nil {
		return nil, err
	}

	w, h := int(icon.ViewBox.W), int(icon.ViewBox.H)
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rectangle{}), nil
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return img, nil
}
