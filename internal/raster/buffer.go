package raster

import (
	"image"
	"image/color"
	"math"

	"skelpose/internal/mathutil"
)

// Canvas is the render target plus the orthographic projection from view
// space to pixel coordinates. Pixel y grows downward, view y grows upward.
type Canvas struct {
	Img *image.NRGBA

	center [2]float64
	scale  float64
}

// NewCanvas allocates a size×size image filled with bg.
func NewCanvas(size int, bg color.NRGBA) *Canvas {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = bg.R
		img.Pix[i+1] = bg.G
		img.Pix[i+2] = bg.B
		img.Pix[i+3] = bg.A
	}
	return &Canvas{Img: img, scale: 1}
}

// Fit centers the view-space points on the canvas, keeping margin pixels free
// on every side.
func (c *Canvas) Fit(points []mathutil.Vec3, margin int) {
	if len(points) == 0 {
		return
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX = math.Min(minX, p[0])
		maxX = math.Max(maxX, p[0])
		minY = math.Min(minY, p[1])
		maxY = math.Max(maxY, p[1])
	}

	c.center = [2]float64{(minX + maxX) / 2, (minY + maxY) / 2}
	span := math.Max(maxX-minX, maxY-minY)
	if span < 0.001 {
		span = 0.001
	}

	usable := float64(c.Img.Bounds().Dx() - 2*margin)
	if usable < 1 {
		usable = 1
	}
	c.scale = usable / span
}

// Project maps a view-space point to pixel coordinates.
func (c *Canvas) Project(p mathutil.Vec3) (x, y float64) {
	half := float64(c.Img.Bounds().Dx()) / 2
	x = (p[0]-c.center[0])*c.scale + half
	y = half - (p[1]-c.center[1])*c.scale
	return x, y
}
