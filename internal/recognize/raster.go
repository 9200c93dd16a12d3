package recognize

import (
	"image"
	"image/color"
	"math"

	"github.com/jhaanurag/AI-Math-Notes/internal/geom"
	"github.com/jhaanurag/AI-Math-Notes/internal/ink"
)

const (
	rasterTarget = 128 // longest glyph dimension after scaling, px
	rasterMargin = 16
	rasterPen    = 2 // half-width of the drawn line
)

// Rasterize renders a glyph cluster as black ink on a white grayscale
// image, scaled so its longest side is rasterTarget with a margin
// around it. The OCR backend was trained on images of this shape.
func Rasterize(c *ink.GlyphCluster) *image.Gray {
	box := c.Box
	longest := math.Max(box.Width(), box.Height())
	scale := 1.0
	if longest > 0 {
		scale = rasterTarget / longest
	}

	w := int(box.Width()*scale) + 2*rasterMargin
	h := int(box.Height()*scale) + 2*rasterMargin
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}

	toPixel := func(p geom.Point) (int, int) {
		return rasterMargin + int((p.X-box.MinX)*scale),
			rasterMargin + int((p.Y-box.MinY)*scale)
	}
	for _, s := range c.Strokes {
		if len(s.Points) == 1 {
			x, y := toPixel(s.Points[0])
			stamp(img, x, y)
			continue
		}
		for i := 1; i < len(s.Points); i++ {
			x0, y0 := toPixel(s.Points[i-1])
			x1, y1 := toPixel(s.Points[i])
			drawLine(img, x0, y0, x1, y1)
		}
	}
	return img
}

// drawLine plots a thick segment with the integer Bresenham walk.
func drawLine(img *image.Gray, x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		stamp(img, x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func stamp(img *image.Gray, x, y int) {
	for oy := -rasterPen; oy <= rasterPen; oy++ {
		for ox := -rasterPen; ox <= rasterPen; ox++ {
			if image.Pt(x+ox, y+oy).In(img.Rect) {
				img.SetGray(x+ox, y+oy, color.Gray{Y: 0})
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
