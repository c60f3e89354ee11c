// Package layout has the fixed width and ratio layouts of the control rows.
package layout

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// NewFixedWidth wraps obj so it always takes width, used for value labels
// that change length while a slider moves.
func NewFixedWidth(width float32, obj fyne.CanvasObject) *fyne.Container {
	return container.New(&FixedWidth{Width: width}, obj)
}

type FixedWidth struct {
	Width float32
}

func (d *FixedWidth) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var h float32
	for _, o := range objects {
		h = max(h, o.MinSize().Height)
	}
	return fyne.NewSize(d.Width, h)
}

func (d *FixedWidth) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	for _, o := range objects {
		o.Move(fyne.NewPos(0, (size.Height-o.MinSize().Height)/2))
		o.Resize(fyne.NewSize(d.Width, o.MinSize().Height))
	}
}

// Ratio lays objects out left to right, each taking its share of the
// width. Space left over by shares summing below one is spread between them.
type Ratio struct {
	Widths []float32
}

func NewRatio(widths []float32, objects ...fyne.CanvasObject) *fyne.Container {
	return container.New(&Ratio{Widths: widths}, objects...)
}

func (d *Ratio) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var w, h float32
	for _, o := range objects {
		min := o.MinSize()
		w += min.Width
		h = max(h, min.Height)
	}
	return fyne.NewSize(w, h)
}

func (d *Ratio) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	n := min(len(objects), len(d.Widths))
	if n == 0 {
		return
	}
	var x float32
	gap := size.Width * (1 - sumFloat32(d.Widths[:n])) / float32(n)
	for i, o := range objects[:n] {
		width := size.Width * d.Widths[i]
		o.Resize(fyne.NewSize(width, size.Height))
		o.Move(fyne.NewPos(x, 0))
		x += width + gap
	}
}

func sumFloat32(a []float32) float32 {
	var sum float32
	for _, v := range a {
		sum += v
	}
	return sum
}
