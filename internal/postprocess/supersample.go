package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample scales img so its longer edge is targetSize, filtering in
// premultiplied alpha so transparent edges do not pick up dark halos.
func Downsample(img *image.NRGBA, targetSize int) *image.NRGBA {
	b := img.Bounds()
	if targetSize <= 0 || (b.Dx() <= targetSize && b.Dy() <= targetSize) {
		return img
	}

	w, h := targetSize, targetSize
	if b.Dx() > b.Dy() {
		h = max(1, b.Dy()*targetSize/b.Dx())
	} else if b.Dy() > b.Dx() {
		w = max(1, b.Dx()*targetSize/b.Dy())
	}

	// RGBA is premultiplied; drawing NRGBA into it converts.
	premul := image.NewRGBA(b)
	draw.Draw(premul, b, img, b.Min, draw.Src)

	// CatmullRom approximates Lanczos.
	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), premul, b, draw.Src, nil)

	result := image.NewNRGBA(scaled.Bounds())
	draw.Draw(result, result.Bounds(), scaled, image.Point{}, draw.Src)
	return result
}
