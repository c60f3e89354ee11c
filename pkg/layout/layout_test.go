package layout_test

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/test"
	"github.com/roffe/empol/pkg/layout"
)

func rect(w, h float32) *canvas.Rectangle {
	r := canvas.NewRectangle(nil)
	r.SetMinSize(fyne.NewSize(w, h))
	return r
}

func near(a, b float32) bool {
	d := a - b
	return d > -0.01 && d < 0.01
}

func TestFixedWidth(t *testing.T) {
	test.NewTempApp(t)
	c := layout.NewFixedWidth(80, rect(200, 20))
	if got := c.MinSize(); got != fyne.NewSize(80, 20) {
		t.Errorf("MinSize() = %v", got)
	}
	c.Resize(fyne.NewSize(80, 40))
	o := c.Objects[0]
	if o.Size().Width != 80 || o.Position().Y != 10 {
		t.Errorf("child at %v size %v", o.Position(), o.Size())
	}
}

func TestRatio(t *testing.T) {
	test.NewTempApp(t)
	a, b := rect(10, 10), rect(10, 30)
	c := layout.NewRatio([]float32{0.2, 0.6}, a, b)
	if got := c.MinSize(); got != fyne.NewSize(20, 30) {
		t.Errorf("MinSize() = %v", got)
	}
	c.Resize(fyne.NewSize(100, 30))
	if !near(a.Size().Width, 20) || !near(b.Size().Width, 60) {
		t.Errorf("widths = %g %g", a.Size().Width, b.Size().Width)
	}
	// 20 spare pixels split over two objects
	if !near(b.Position().X, 30) {
		t.Errorf("second object at x=%g, want 30", b.Position().X)
	}
}
