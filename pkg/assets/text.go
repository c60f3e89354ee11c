package assets

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// TextPrefix marks a reference that is rendered from text instead of read
// from disk, e.g. "text:E = A cos(ωt)".
const TextPrefix = "text:"

const supersample = 4

var (
	fontOnce sync.Once
	fontData *opentype.Font
	fontErr  error
)

func goRegular() (*opentype.Font, error) {
	fontOnce.Do(func() {
		fontData, fontErr = opentype.Parse(goregular.TTF)
	})
	return fontData, fontErr
}

// RenderText draws s in Go Regular on a transparent background. The result
// is px pixels tall, rendered at 4x and scaled down.
func RenderText(s string, px int, col color.Color) (*image.RGBA, error) {
	if px <= 0 {
		return nil, fmt.Errorf("text size %d must be positive", px)
	}
	fnt, err := goRegular()
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    float64(px * supersample),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	defer face.Close()

	m := face.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	width := font.MeasureString(face, s).Ceil()
	if width == 0 {
		width = 1
	}
	pad := supersample * 2
	large := image.NewRGBA(image.Rect(0, 0, width+2*pad, ascent+descent+2*pad))
	d := &font.Drawer{
		Dst:  large,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(pad), Y: fixed.I(pad + ascent)},
	}
	d.DrawString(s)

	b := large.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, max(1, b.Dx()/supersample), max(1, b.Dy()/supersample)))
	draw.CatmullRom.Scale(out, out.Bounds(), large, b, draw.Over, nil)
	return out, nil
}
