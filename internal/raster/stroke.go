package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

const discSegments = 32

// Brush fills anti-aliased shapes. Its rasterizer is reused between shapes
// and sized to each shape's clipped bounding box, so a primitive costs
// only the pixels it can touch. The zero value is ready to use.
type Brush struct {
	z   vector.Rasterizer
	pts [][2]float64
}

// Segment strokes the line from (x0,y0) to (x1,y1) with round caps,
// composited over dst.
func (br *Brush) Segment(dst draw.Image, x0, y0, x1, y1, width float64, c color.Color) {
	r := width / 2
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)

	if l > 1e-9 {
		nx, ny := -dy/l*r, dx/l*r
		br.pts = append(br.pts[:0],
			[2]float64{x0 + nx, y0 + ny},
			[2]float64{x1 + nx, y1 + ny},
			[2]float64{x1 - nx, y1 - ny},
			[2]float64{x0 - nx, y0 - ny},
		)
		br.fill(dst, c)
	}

	br.Disc(dst, x0, y0, r, c)
	br.Disc(dst, x1, y1, r, c)
}

// Disc fills a circle of radius r centered at (cx,cy).
func (br *Brush) Disc(dst draw.Image, cx, cy, r float64, c color.Color) {
	if r <= 0 {
		return
	}
	br.pts = br.pts[:0]
	for i := 0; i < discSegments; i++ {
		a := 2 * math.Pi * float64(i) / discSegments
		br.pts = append(br.pts, [2]float64{cx + r*math.Cos(a), cy + r*math.Sin(a)})
	}
	br.fill(dst, c)
}

// fill rasterizes the closed polygon br.pts within its bounding box.
func (br *Brush) fill(dst draw.Image, c color.Color) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range br.pts {
		minX, maxX = math.Min(minX, p[0]), math.Max(maxX, p[0])
		minY, maxY = math.Min(minY, p[1]), math.Max(maxY, p[1])
	}
	box := image.Rect(
		int(math.Floor(minX))-1, int(math.Floor(minY))-1,
		int(math.Ceil(maxX))+1, int(math.Ceil(maxY))+1,
	).Intersect(dst.Bounds())
	if box.Empty() {
		return
	}

	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	br.z.Reset(box.Dx(), box.Dy())
	br.z.MoveTo(float32(br.pts[0][0]-ox), float32(br.pts[0][1]-oy))
	for _, p := range br.pts[1:] {
		br.z.LineTo(float32(p[0]-ox), float32(p[1]-oy))
	}
	br.z.ClosePath()
	br.z.Draw(dst, box, image.NewUniform(c), image.Point{})
}

// DrawSegment strokes one segment with a fresh Brush.
func DrawSegment(dst draw.Image, x0, y0, x1, y1, width float64, c color.Color) {
	var br Brush
	br.Segment(dst, x0, y0, x1, y1, width, c)
}

// DrawDisc fills one circle with a fresh Brush.
func DrawDisc(dst draw.Image, cx, cy, r float64, c color.Color) {
	var br Brush
	br.Disc(dst, cx, cy, r, c)
}
