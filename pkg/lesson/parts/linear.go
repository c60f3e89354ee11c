package parts

import (
	"image/color"
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/roffe/empol/pkg/geometry"
	"github.com/roffe/empol/pkg/items"
	"github.com/roffe/empol/pkg/lesson"
	"github.com/roffe/empol/pkg/params"
)

// oscillation is a single E_x vector at the origin.
type oscillation struct {
	e     *items.Vector
	label *items.TextLabel
}

func (o *oscillation) Setup(st *lesson.Stage) error {
	AlongZ.apply(st)
	a := params.DefaultAmplitude
	var err error
	if o.e, err = st.Arrow(mgl64.Vec3{0, 0, lift}, mgl64.Vec3{a, 0, lift}, ColorEx); err != nil {
		return err
	}
	o.e.SetDepth(5)
	o.label, err = st.Label(mgl64.Vec3{a + 0.5, 0, lift}, "E", ColorEx)
	return err
}

func (o *oscillation) Update(_ *lesson.Stage, p params.Params, t float64) {
	end := mgl64.Vec3{p.Ex(t, 0), 0, lift}
	o.e.SetPosition(mgl64.Vec3{0, 0, lift}, end)
	o.label.SetPos(end.Add(mgl64.Vec3{math.Copysign(0.5, end[0]), 0, 0}))
}

func (o *oscillation) Teardown(*lesson.Stage) { dispose(o.e, o.label) }

// Timing of the travelling wave part, in seconds.
const (
	revealStep = 0.1
	holdCurve  = 1.0
	animateFor = 6.0
)

// travelling builds the wave up vector by vector, shows the envelope and
// then lets it move. It starts over once the animation has run.
type travelling struct {
	zs    []float64
	vecs  *items.Pool[*items.Vector]
	curve *items.Curve
	pts   []mgl64.Vec3
}

func (w *travelling) Setup(st *lesson.Stage) error {
	Oblique.apply(st)
	w.zs = samples(0.5)
	w.vecs = vectorPool(st, ColorEx)
	if err := w.vecs.EnsureCapacity(len(w.zs)); err != nil {
		return err
	}
	w.vecs.HideBeyond(0)
	var err error
	if w.curve, err = st.Curve(ColorEx, 2); err != nil {
		return err
	}
	w.curve.SetVisible(false)
	return nil
}

func (w *travelling) Update(st *lesson.Stage, p params.Params, t float64) {
	reveal := float64(len(w.zs)) * revealStep
	switch {
	case t < reveal:
		n := int(math.Round(t/revealStep)) + 1
		w.place(p, 0)
		w.vecs.HideBeyond(n)
		w.curve.SetVisible(false)
	case t < reveal+holdCurve:
		w.place(p, 0)
		w.vecs.HideBeyond(len(w.zs))
		w.curve.SetVisible(true)
	case t < reveal+holdCurve+animateFor:
		w.place(p, t-reveal-holdCurve)
		w.curve.SetVisible(true)
	default:
		st.RequestRestart()
	}
}

func (w *travelling) place(p params.Params, t float64) {
	for i, z := range w.zs {
		w.vecs.At(i).SetPosition(mgl64.Vec3{0, 0, z}, mgl64.Vec3{p.Ex(t, z), 0, z})
	}
	w.pts = w.pts[:0]
	for _, z := range samples(0.1) {
		w.pts = append(w.pts, mgl64.Vec3{p.Ex(t, z), 0, z})
	}
	w.curve.SetPoints(w.pts)
}

func (w *travelling) Teardown(*lesson.Stage) {
	dispose(w.vecs, w.curve)
}

// yComponent is the E_y vector with its phase offset.
type yComponent struct {
	e     *items.Vector
	label *items.TextLabel
}

func (y *yComponent) Setup(st *lesson.Stage) error {
	AlongZ.apply(st)
	a := params.DefaultAmplitude
	var err error
	if y.e, err = st.Arrow(mgl64.Vec3{0, 0, lift}, mgl64.Vec3{0, a, lift}, ColorEy); err != nil {
		return err
	}
	y.e.SetDepth(5)
	y.label, err = st.Label(mgl64.Vec3{a + 1, 0, lift}, "", ColorEy)
	return err
}

func (y *yComponent) Update(_ *lesson.Stage, p params.Params, t float64) {
	y.e.SetPosition(mgl64.Vec3{0, 0, lift}, mgl64.Vec3{0, p.Ey(t, 0), lift})
	y.label.SetText(p.PhaseString())
}

func (y *yComponent) Teardown(*lesson.Stage) { dispose(y.e, y.label) }

// components renders E_x, E_y and their sum at z=0 with dashed lines from
// the sum tip back to each component.
type components struct {
	ex, ey, sum *items.Vector
	toX, toY    *items.DashedLine
}

func (c *components) setup(st *lesson.Stage) error {
	o := mgl64.Vec3{0, 0, lift}
	var err error
	if c.ex, err = st.Arrow(o, mgl64.Vec3{1, 0, lift}, ColorEx); err != nil {
		return err
	}
	if c.ey, err = st.Arrow(o, mgl64.Vec3{0, 1, lift}, ColorEy); err != nil {
		return err
	}
	if c.sum, err = st.Arrow(o, mgl64.Vec3{1, 1, lift}, ColorSum); err != nil {
		return err
	}
	c.sum.SetDepth(6)
	if c.toX, err = st.Dashed(mgl64.Vec3{1, 1, lift}, mgl64.Vec3{1, 0, lift}, items.White); err != nil {
		return err
	}
	c.toY, err = st.Dashed(mgl64.Vec3{1, 1, lift}, mgl64.Vec3{0, 1, lift}, items.White)
	return err
}

// set moves the vectors to the components x and y and returns the sum tip.
func (c *components) set(x, y float64) mgl64.Vec3 {
	o := mgl64.Vec3{0, 0, lift}
	ex, ey := mgl64.Vec3{x, 0, lift}, mgl64.Vec3{0, y, lift}
	tip := mgl64.Vec3{x, y, lift}
	c.ex.SetPosition(o, ex)
	c.ey.SetPosition(o, ey)
	c.sum.SetPosition(o, tip)
	if err := c.toX.SetEnds(tip, ex); err != nil {
		log.Printf("projection to x: %v", err)
	}
	if err := c.toY.SetEnds(tip, ey); err != nil {
		log.Printf("projection to y: %v", err)
	}
	return tip
}

func (c *components) teardown() { dispose(c.toY, c.toX, c.sum, c.ey, c.ex) }

type superposition struct {
	components
}

func (s *superposition) Setup(st *lesson.Stage) error {
	AlongZ.apply(st)
	return s.setup(st)
}

func (s *superposition) Update(_ *lesson.Stage, p params.Params, t float64) {
	s.set(p.Ex(t, 0), p.Ey(t, 0))
}

func (s *superposition) Teardown(*lesson.Stage) { s.teardown() }

// Extremum is a crest or trough of E_x along z.
type Extremum struct {
	Z    float64
	Sign float64
}

// Extrema lists the points in [ZMin, ZMax] where ωt - z is a multiple of π,
// ordered by that multiple.
func Extrema(p params.Params, t float64) []Extremum {
	wt := p.Frequency * t
	lo := int(math.Ceil((wt - ZMax) / math.Pi))
	hi := int(math.Floor((wt - ZMin) / math.Pi))
	var out []Extremum
	for k := lo; k <= hi; k++ {
		sign := 1.0
		if k%2 != 0 {
			sign = -1
		}
		out = append(out, Extremum{Z: wt - float64(k)*math.Pi, Sign: sign})
	}
	return out
}

var (
	crestPlane  = color.NRGBA{R: 0xff, G: 0x60, B: 0x60, A: 0x50}
	troughPlane = color.NRGBA{R: 0x60, G: 0x60, B: 0xff, A: 0x50}
)

// extrema marks each crest and trough with a vector and a wavefront plane
// as the wave moves. Items are pooled since the count changes over time.
type extrema struct {
	curve  *items.Curve
	vecs   *items.Pool[*items.Vector]
	planes *items.Pool[*items.Plane]
	pts    []mgl64.Vec3
}

func (e *extrema) Setup(st *lesson.Stage) error {
	Oblique.apply(st)
	var err error
	if e.curve, err = st.Curve(ColorEx, 2); err != nil {
		return err
	}
	e.vecs = vectorPool(st, ColorEx)
	e.planes = items.NewPool(func(int) (*items.Plane, error) {
		return st.Plane(2*params.DefaultAmplitude, crestPlane)
	})
	return nil
}

func (e *extrema) Update(_ *lesson.Stage, p params.Params, t float64) {
	e.pts = e.pts[:0]
	for _, z := range samples(0.1) {
		e.pts = append(e.pts, mgl64.Vec3{p.Ex(t, z), 0, z})
	}
	e.curve.SetPoints(e.pts)

	ext := Extrema(p, t)
	if err := e.vecs.Use(len(ext)); err != nil {
		log.Printf("extrema vectors: %v", err)
		return
	}
	if err := e.planes.Use(len(ext)); err != nil {
		log.Printf("extrema planes: %v", err)
		return
	}
	for i, x := range ext {
		v, pl := e.vecs.At(i), e.planes.At(i)
		v.SetPosition(mgl64.Vec3{0, 0, x.Z}, mgl64.Vec3{x.Sign * p.Amplitude, 0, x.Z})
		pl.Place(mgl64.Vec3{0, 0, x.Z}, geometry.AxisZ)
		if x.Sign > 0 {
			v.SetColor(ColorEx)
			pl.SetColor(crestPlane)
		} else {
			v.SetColor(ColorSum)
			pl.SetColor(troughPlane)
		}
	}
}

func (e *extrema) Teardown(*lesson.Stage) {
	dispose(e.planes, e.vecs, e.curve)
}

// traceLimit bounds the number of points kept in a trace.
const traceLimit = 160

// trace follows the tip of the summed vector in the transverse plane.
type trace struct {
	components
	path *items.Curve
}

func (tr *trace) Setup(st *lesson.Stage) error {
	AlongZ.apply(st)
	st.HideAxis(items.Z)
	if err := tr.setup(st); err != nil {
		return err
	}
	var err error
	tr.path, err = st.Curve(items.White, 2)
	return err
}

func (tr *trace) Update(_ *lesson.Stage, p params.Params, t float64) {
	tip := tr.set(p.Ex(t, 0), p.Ey(t, 0))
	if t == 0 {
		tr.path.SetPoints(nil)
	}
	tr.path.Append(tip, traceLimit)
}

func (tr *trace) Teardown(*lesson.Stage) {
	dispose(tr.path)
	tr.teardown()
}
