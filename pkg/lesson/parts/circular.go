package parts

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/roffe/empol/pkg/assets"
	"github.com/roffe/empol/pkg/items"
	"github.com/roffe/empol/pkg/lesson"
	"github.com/roffe/empol/pkg/params"
)

// Equation is the billboard shown while the phase difference is explained.
const Equation = assets.TextPrefix + "E_y = A cos(ωt - z + Δφ)"

// phaseDifference shows both components next to the E_y equation and a
// live readout of the phase slider.
type phaseDifference struct {
	components
	eq      *items.BillboardImage
	readout *items.TextLabel
}

func (d *phaseDifference) Setup(st *lesson.Stage) error {
	AlongZ.apply(st)
	if err := d.setup(st); err != nil {
		return err
	}
	a := params.DefaultAmplitude
	var err error
	if d.eq, err = st.Image(mgl64.Vec3{a + 1.5, 0, 0}, Equation, 320, 48); err != nil {
		return err
	}
	d.readout, err = st.Label(mgl64.Vec3{-a - 1, 0, 0}, "", items.White)
	return err
}

func (d *phaseDifference) Update(_ *lesson.Stage, p params.Params, t float64) {
	d.set(p.Ex(t, 0), p.Ey(t, 0))
	d.readout.SetText(p.PhaseString())
}

func (d *phaseDifference) Teardown(*lesson.Stage) {
	dispose(d.readout, d.eq)
	d.teardown()
}

// circular rotates the summed vector with a fixed quarter period lag on y.
type circular struct {
	sum  *items.Vector
	path *items.Curve
}

func (c *circular) Setup(st *lesson.Stage) error {
	AlongZ.apply(st)
	st.HideAxis(items.Z)
	st.DisableControl(lesson.ControlPhase)
	var err error
	if c.sum, err = st.Arrow(mgl64.Vec3{0, 0, lift}, mgl64.Vec3{1, 0, lift}, ColorSum); err != nil {
		return err
	}
	c.sum.SetDepth(5)
	c.path, err = st.Curve(items.White, 2)
	return err
}

func (c *circular) Update(_ *lesson.Stage, p params.Params, t float64) {
	q := polarized(p, params.RightCircular)
	tip := mgl64.Vec3{q.Ex(t, 0), q.Ey(t, 0), lift}
	c.sum.SetPosition(mgl64.Vec3{0, 0, lift}, tip)
	if t == 0 {
		c.path.SetPoints(nil)
	}
	c.path.Append(tip, traceLimit)
}

func (c *circular) Teardown(*lesson.Stage) { dispose(c.path, c.sum) }

// helix shows the circularly polarized field along z at one instant, the
// vector tips tracing a screw.
type helix struct {
	zs    []float64
	vecs  *items.Pool[*items.Vector]
	curve *items.Curve
	pts   []mgl64.Vec3
}

func (h *helix) Setup(st *lesson.Stage) error {
	Oblique.apply(st)
	st.DisableControl(lesson.ControlPhase)
	h.zs = samples(0.5)
	h.vecs = vectorPool(st, ColorSum)
	if err := h.vecs.Use(len(h.zs)); err != nil {
		return err
	}
	var err error
	h.curve, err = st.Curve(ColorSum, 2)
	return err
}

func (h *helix) Update(_ *lesson.Stage, p params.Params, t float64) {
	q := polarized(p, params.RightCircular)
	for i, z := range h.zs {
		h.vecs.At(i).SetPosition(mgl64.Vec3{0, 0, z}, field(q, t, z))
	}
	h.pts = h.pts[:0]
	for _, z := range samples(0.1) {
		h.pts = append(h.pts, field(q, t, z))
	}
	h.curve.SetPoints(h.pts)
}

func (h *helix) Teardown(*lesson.Stage) {
	dispose(h.vecs, h.curve)
}

// EllipticalPhase is used when the phase slider sits at linear polarization,
// which would collapse the ellipse onto a line.
const EllipticalPhase = math.Pi / 4

// EllipseTip is the summed field at z=0 with the y component at half
// amplitude.
func EllipseTip(p params.Params, t float64) (x, y float64) {
	if math.Abs(p.Phase) < 1e-9 {
		p.Phase = EllipticalPhase
	}
	return p.Ex(t, 0), 0.5 * p.Ey(t, 0)
}

type elliptical struct {
	components
	path *items.Curve
}

func (e *elliptical) Setup(st *lesson.Stage) error {
	AlongZ.apply(st)
	st.HideAxis(items.Z)
	if err := e.setup(st); err != nil {
		return err
	}
	var err error
	e.path, err = st.Curve(items.White, 2)
	return err
}

func (e *elliptical) Update(_ *lesson.Stage, p params.Params, t float64) {
	tip := e.set(EllipseTip(p, t))
	if t == 0 {
		e.path.SetPoints(nil)
	}
	e.path.Append(tip, traceLimit)
}

func (e *elliptical) Teardown(*lesson.Stage) {
	dispose(e.path)
	e.teardown()
}
