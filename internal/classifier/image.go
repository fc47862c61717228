package classifier

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/nfnt/resize"
)

// Decode reads a PNG or JPEG, shrinks it to the canvas bounds and returns its raster.
func Decode(r io.Reader, maxWidth, maxHeight int) (Raster, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return Raster{}, fmt.Errorf("%w: %v", ErrInvalidRaster, err)
	}
	return FromImage(Fit(img, maxWidth, maxHeight)), nil
}

// FromImage flattens img onto a white canvas, so transparent areas read as blank paper.
func FromImage(img image.Image) Raster {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)

	return Raster{Width: b.Dx(), Height: b.Dy(), Pix: dst.Pix}
}

// Fit shrinks img to fit within maxWidth x maxHeight, keeping aspect ratio. Nearest-neighbour
// sampling keeps the original colours intact; smaller images are returned unchanged.
func Fit(img image.Image, maxWidth, maxHeight int) image.Image {
	b := img.Bounds()
	if b.Dx() <= maxWidth && b.Dy() <= maxHeight {
		return img
	}
	return resize.Thumbnail(uint(maxWidth), uint(maxHeight), img, resize.NearestNeighbor)
}
