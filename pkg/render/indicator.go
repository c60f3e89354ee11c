package render

import (
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var indicatorAxes = [3]struct {
	dir   mgl64.Vec3
	label string
	col   color.NRGBA
}{
	{mgl64.Vec3{1, 0, 0}, "x", color.NRGBA{R: 255, A: 255}},
	{mgl64.Vec3{0, 1, 0}, "y", color.NRGBA{G: 255, A: 255}},
	{mgl64.Vec3{0, 0, 1}, "z", color.NRGBA{B: 255, A: 255}},
}

const (
	indicatorOffset = 50.0
	indicatorScale  = 35.0
)

// drawIndicator shows the Basis axes as seen from the camera, anchored in the
// lower left corner.
func (r *Renderer) drawIndicator(img *image.RGBA, cam Camera) {
	ox := indicatorOffset
	oy := float64(img.Bounds().Dy()) - indicatorOffset
	if oy < 0 {
		return
	}
	view := cam.View().Mul4(r.Basis)
	for _, a := range indicatorAxes {
		d := view.Mul4x1(a.dir.Vec4(0)).Vec3()
		ex := ox + d[0]*indicatorScale
		ey := oy - d[1]*indicatorScale
		drawBresenhamLine(img,
			int(ox), int(oy),
			int(math.Round(ex)), int(math.Round(ey)),
			2, a.col, a.col)
		drawText(img, a.label, int(ex)+5, int(ey), false, a.col)
	}
}

// IndicatorEnd returns the screen end point of one indicator axis for a
// viewport of height h.
func (r *Renderer) IndicatorEnd(cam Camera, h int, axis int) (x, y float64) {
	d := cam.View().Mul4(r.Basis).Mul4x1(indicatorAxes[axis].dir.Vec4(0)).Vec3()
	return indicatorOffset + d[0]*indicatorScale, float64(h) - indicatorOffset - d[1]*indicatorScale
}
