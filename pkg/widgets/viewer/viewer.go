package viewer

import (
	"image"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/roffe/empol/pkg/lesson"
	"github.com/roffe/empol/pkg/render"
	"github.com/roffe/empol/pkg/scene"
)

var (
	_ fyne.Widget = (*Viewer)(nil)
	_ lesson.View = (*Viewer)(nil)
)

const fov = 60

// Viewer shows a scene graph through an orbiting camera. Camera moves
// requested by the lesson are eased, mouse input applies immediately.
type Viewer struct {
	widget.BaseWidget

	graph    *scene.Graph
	renderer *render.Renderer
	rig      *render.Rig
	easing   *fyne.Animation

	image *canvas.Image
	size  fyne.Size
	last  *image.RGBA

	lastMouseX, lastMouseY float32

	refreshPending bool

	// OnTitle receives part titles.
	OnTitle func(string)
	// OnControl is told when a part switches a control on or off.
	OnControl func(c lesson.Control, enabled bool)
}

func New(g *scene.Graph) *Viewer {
	v := &Viewer{
		graph:    g,
		renderer: render.NewRenderer(),
		rig:      render.NewRig(60, render.DefaultCamera()),
		size:     fyne.NewSize(200, 200),
	}
	v.ExtendBaseWidget(v)
	v.image = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 0, 0)))
	v.image.FillMode = canvas.ImageFillOriginal
	v.image.ScaleMode = canvas.ImageScaleFastest
	v.easing = fyne.NewAnimation(2*time.Second, v.ease)
	v.easing.Curve = fyne.AnimationLinear
	return v
}

// Renderer exposes the software renderer for style changes.
func (v *Viewer) Renderer() *render.Renderer { return v.renderer }

// SetBasis makes the orientation indicator show the frame m.
func (v *Viewer) SetBasis(m mgl64.Mat4) { v.renderer.Basis = m }

func (v *Viewer) SetCamera(distance, elevation, azimuth float64) {
	v.rig.SetTarget(render.Camera{Distance: distance, Elevation: elevation, Azimuth: azimuth, FOV: fov})
	v.easing.Stop()
	v.easing.Start()
}

// JumpCamera places the camera without easing.
func (v *Viewer) JumpCamera(cam render.Camera) {
	v.easing.Stop()
	v.rig.Jump(cam)
	v.refresh()
}

func (v *Viewer) Camera() render.Camera { return v.rig.Camera() }

func (v *Viewer) Target() render.Camera { return v.rig.Target() }

func (v *Viewer) SetTitle(title string) {
	if v.OnTitle != nil {
		v.OnTitle(title)
	}
}

func (v *Viewer) SetControlEnabled(c lesson.Control, enabled bool) {
	if v.OnControl != nil {
		v.OnControl(c, enabled)
	}
}

func (v *Viewer) Redraw() { v.refresh() }

// Capture returns the last rendered frame. Every render allocates a new
// image, so the result stays valid after the next redraw.
func (v *Viewer) Capture() image.Image {
	if v.last == nil {
		return image.NewRGBA(image.Rectangle{})
	}
	return v.last
}

func (v *Viewer) ease(_ float32) {
	v.rig.Step()
	if v.rig.Settled(1e-3) {
		v.easing.Stop()
	}
	v.refresh()
}

func (v *Viewer) Refresh() {
	v.refresh()
}

func (v *Viewer) refresh() {
	img := v.renderer.Render(v.graph, v.rig.Camera(), int(v.size.Width), int(v.size.Height))
	v.last = img
	v.image.Image = img
	v.image.Resize(v.size)
	v.image.Refresh()
}

func (v *Viewer) throttledRefresh() {
	if v.refreshPending {
		return
	}
	v.refreshPending = true
	time.AfterFunc(10*time.Millisecond, func() {
		fyne.Do(func() {
			v.refresh()
			v.refreshPending = false
		})
	})
}

func (v *Viewer) CreateRenderer() fyne.WidgetRenderer {
	return &viewerRenderer{v}
}

type viewerRenderer struct {
	*Viewer
}

func (r *viewerRenderer) Layout(size fyne.Size) {
	if size == r.size {
		return
	}
	r.size = size
	r.throttledRefresh()
}

func (r *viewerRenderer) MinSize() fyne.Size {
	return fyne.NewSize(320, 240)
}

func (r *viewerRenderer) Refresh() {
	r.Viewer.refresh()
}

func (r *viewerRenderer) Destroy() {
	r.easing.Stop()
}

func (r *viewerRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.image}
}
