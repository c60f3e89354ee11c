package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// blend composites c over the pixel at x, y.
func blend(img *image.RGBA, x, y int, c color.NRGBA) {
	if !(image.Point{x, y}.In(img.Rect)) || c.A == 0 {
		return
	}
	i := img.PixOffset(x, y)
	p := img.Pix[i : i+4 : i+4]
	if c.A == 0xff {
		p[0], p[1], p[2], p[3] = c.R, c.G, c.B, 0xff
		return
	}
	a := uint32(c.A)
	na := 0xff - a
	p[0] = uint8((uint32(c.R)*a + uint32(p[0])*na) / 0xff)
	p[1] = uint8((uint32(c.G)*a + uint32(p[1])*na) / 0xff)
	p[2] = uint8((uint32(c.B)*a + uint32(p[2])*na) / 0xff)
	p[3] = uint8(a + uint32(p[3])*na/0xff)
}

// stamp fills a width sized square centred on x, y.
func stamp(img *image.RGBA, x, y, width int, c color.NRGBA) {
	if width <= 1 {
		blend(img, x, y, c)
		return
	}
	lo := -(width - 1) / 2
	hi := lo + width
	for dy := lo; dy < hi; dy++ {
		for dx := lo; dx < hi; dx++ {
			blend(img, x+dx, y+dy, c)
		}
	}
}

// drawBresenhamLine strokes from (x0,y0) to (x1,y1), interpolating from
// color1 to color2.
func drawBresenhamLine(img *image.RGBA, x0, y0, x1, y1, width int, color1, color2 color.NRGBA) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	pad := width
	if (x0 < -pad && x1 < -pad) || (x0 >= w+pad && x1 >= w+pad) ||
		(y0 < -pad && y1 < -pad) || (y0 >= h+pad && y1 >= h+pad) {
		return
	}

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

	total := max(dx, -dy)
	step := 0
	for {
		t := 0.0
		if total > 0 {
			t = float64(step) / float64(total)
		}
		stamp(img, x0, y0, width, interpolateColor(color1, color2, t))

		if x0 == x1 && y0 == y1 {
			break
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
		step++
	}
}

func interpolateColor(c1, c2 color.NRGBA, t float64) color.NRGBA {
	if c1 == c2 {
		return c1
	}
	return color.NRGBA{
		R: uint8(float64(c1.R)*(1-t) + float64(c2.R)*t),
		G: uint8(float64(c1.G)*(1-t) + float64(c2.G)*t),
		B: uint8(float64(c1.B)*(1-t) + float64(c2.B)*t),
		A: uint8(float64(c1.A)*(1-t) + float64(c2.A)*t),
	}
}

// shade darkens c by factor and adds a faint blue haze to distant colours.
func shade(c color.NRGBA, factor float64) color.NRGBA {
	haze := (1 - factor) * 40
	return color.NRGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(min(255, float64(c.B)*factor+haze)),
		A: c.A,
	}
}

// fillTriangle fills the triangle covering pixel centres, blending c.
func fillTriangle(img *image.RGBA, p [3][2]float64, c color.NRGBA) {
	b := img.Bounds()
	minX := max(b.Min.X, int(math.Floor(min(p[0][0], p[1][0], p[2][0]))))
	maxX := min(b.Max.X-1, int(math.Ceil(max(p[0][0], p[1][0], p[2][0]))))
	minY := max(b.Min.Y, int(math.Floor(min(p[0][1], p[1][1], p[2][1]))))
	maxY := min(b.Max.Y-1, int(math.Ceil(max(p[0][1], p[1][1], p[2][1]))))

	area := edge(p[0], p[1], p[2])
	if area == 0 {
		return
	}
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			q := [2]float64{float64(x) + 0.5, float64(y) + 0.5}
			w0 := edge(p[1], p[2], q) / area
			w1 := edge(p[2], p[0], q) / area
			w2 := edge(p[0], p[1], q) / area
			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				blend(img, x, y, c)
			}
		}
	}
}

func edge(a, b, c [2]float64) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

// drawText writes s with its baseline at y, centred on x when center is set.
func drawText(img *image.RGBA, s string, x, y int, center bool, col color.NRGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
	}
	if center {
		x -= d.MeasureString(s).Round() / 2
		y += basicfont.Face7x13.Ascent / 2
	}
	d.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	d.DrawString(s)
}

// drawSprite composites src centred on x, y.
func drawSprite(img *image.RGBA, src image.Image, x, y int) {
	sb := src.Bounds()
	r := image.Rect(x-sb.Dx()/2, y-sb.Dy()/2, x-sb.Dx()/2+sb.Dx(), y-sb.Dy()/2+sb.Dy())
	draw.Draw(img, r, src, sb.Min, draw.Over)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
