package viewer

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

var _ desktop.Hoverable = (*Viewer)(nil)

const (
	rotationScale = 0.5
	zoomStep      = 0.9
)

func (v *Viewer) MouseIn(ev *desktop.MouseEvent) {
	v.lastMouseX, v.lastMouseY = ev.Position.X, ev.Position.Y
}

func (v *Viewer) MouseOut() {}

// MouseMoved orbits the camera while the primary button is held. Dragging
// right turns the scene right, dragging up raises the camera.
func (v *Viewer) MouseMoved(ev *desktop.MouseEvent) {
	dx := float64(ev.Position.X - v.lastMouseX)
	dy := float64(ev.Position.Y - v.lastMouseY)
	v.lastMouseX, v.lastMouseY = ev.Position.X, ev.Position.Y

	if ev.Button&desktop.MouseButtonPrimary == 0 {
		return
	}
	v.Orbit(-dx*rotationScale, dy*rotationScale)
}

func (v *Viewer) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		v.Zoom(zoomStep)
	} else if ev.Scrolled.DY < 0 {
		v.Zoom(1 / zoomStep)
	}
}

// Orbit turns the camera by the given degrees.
func (v *Viewer) Orbit(dAzimuth, dElevation float64) {
	cam := v.rig.Target()
	cam.Orbit(dAzimuth, dElevation)
	v.JumpCamera(cam)
}

// Zoom scales the camera distance.
func (v *Viewer) Zoom(factor float64) {
	cam := v.rig.Target()
	cam.Zoom(factor)
	v.JumpCamera(cam)
}
