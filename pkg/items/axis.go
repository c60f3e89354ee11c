package items

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/roffe/empol/pkg/scene"
)

type Axis int

const (
	X Axis = iota
	Y
	Z
)

func (a Axis) String() string {
	return [...]string{"x", "y", "z"}[a]
}

// tickTolerance absorbs rounding when max or min is an exact multiple of the
// step, relative to the step.
const tickTolerance = 1e-9

const LabelPadding = 0.25

type AxisSpec struct {
	Min, Max, Step float64
	// TickPlane is the index of the axis tick marks extend into.
	TickPlane int
	Color     color.NRGBA
	Visible   bool
	Label     string
}

// AxisPatch changes the fields that are non nil.
type AxisPatch struct {
	Min, Max, Step *float64
	TickPlane      *int
	Color          *color.NRGBA
	Visible        *bool
	Label          *string
}

type AxisData struct {
	X, Y, Z     AxisPatch
	MajorHeight *float64
	Width       *float64
}

// AxisTriad draws three axes through the origin with major tick marks and a
// text caption past the end of each axis.
type AxisTriad struct {
	base
	specs       [3]AxisSpec
	majorHeight float64
	width       float64

	lines  [3]*Line
	ticks  [3]*Line
	labels [3]*Text

	lineNodes  [3]scene.NodeID
	tickNodes  [3]scene.NodeID
	labelNodes [3]scene.NodeID
}

func DefaultAxisSpecs() [3]AxisSpec {
	return [3]AxisSpec{
		{Min: -5, Max: 5, Step: 1, TickPlane: 1, Color: White, Visible: true, Label: "x"},
		{Min: -5, Max: 5, Step: 1, TickPlane: 0, Color: White, Visible: true, Label: "y"},
		{Min: -5, Max: 5, Step: 1, TickPlane: 0, Color: White, Visible: true, Label: "z"},
	}
}

func NewAxisTriad(g *scene.Graph, parent scene.NodeID, data AxisData) (*AxisTriad, error) {
	a := &AxisTriad{
		specs:       DefaultAxisSpecs(),
		majorHeight: 0.25,
		width:       3,
	}
	specs, mh, w, err := a.apply(data)
	if err != nil {
		return nil, err
	}
	b, err := newBase(g, parent, nil)
	if err != nil {
		return nil, err
	}
	a.base = b
	for i := range 3 {
		a.lines[i] = &Line{Mode: LineSegments}
		a.ticks[i] = &Line{Mode: LineSegments}
		a.labels[i] = &Text{}
		for _, c := range []struct {
			id   *scene.NodeID
			item scene.Drawable
		}{
			{&a.lineNodes[i], a.lines[i]},
			{&a.tickNodes[i], a.ticks[i]},
			{&a.labelNodes[i], a.labels[i]},
		} {
			if *c.id, err = g.Add(a.node, c.item); err != nil {
				g.FreeTree(a.node)
				return nil, fmt.Errorf("axis %s: %w", Axis(i), err)
			}
		}
	}
	a.specs, a.majorHeight, a.width = specs, mh, w
	a.regenerate()
	return a, nil
}

// SetData validates every supplied field first, then rebuilds all three
// axes in one pass. On error nothing changes.
func (a *AxisTriad) SetData(data AxisData) error {
	specs, mh, w, err := a.apply(data)
	if err != nil {
		return err
	}
	a.specs, a.majorHeight, a.width = specs, mh, w
	a.regenerate()
	return nil
}

func (a *AxisTriad) apply(data AxisData) ([3]AxisSpec, float64, float64, error) {
	specs := a.specs
	mh, w := a.majorHeight, a.width
	for i, p := range [3]AxisPatch{data.X, data.Y, data.Z} {
		s := &specs[i]
		name := Axis(i).String()
		if p.Min != nil {
			s.Min = *p.Min
		}
		if p.Max != nil {
			s.Max = *p.Max
		}
		if p.Step != nil {
			s.Step = *p.Step
		}
		if p.TickPlane != nil {
			s.TickPlane = *p.TickPlane
		}
		if p.Color != nil {
			s.Color = *p.Color
		}
		if p.Visible != nil {
			s.Visible = *p.Visible
		}
		if p.Label != nil {
			s.Label = *p.Label
		}
		if !finite(s.Min) || !finite(s.Max) || s.Min > 0 || s.Max < 0 {
			return specs, mh, w, invalid(name+"_min/"+name+"_max", "range [%g,%g] must contain 0", s.Min, s.Max)
		}
		if !finite(s.Step) || s.Step <= 0 {
			return specs, mh, w, invalid(name+"_step", "%g must be positive", s.Step)
		}
		if s.TickPlane < 0 || s.TickPlane > 2 || s.TickPlane == i {
			return specs, mh, w, invalid(name+"_tick_plane", "%d must name another axis", s.TickPlane)
		}
	}
	if data.MajorHeight != nil {
		if !finite(*data.MajorHeight) || *data.MajorHeight < 0 {
			return specs, mh, w, invalid("major_height", "%g must not be negative", *data.MajorHeight)
		}
		mh = *data.MajorHeight
	}
	if data.Width != nil {
		if !finite(*data.Width) || *data.Width <= 0 {
			return specs, mh, w, invalid("width", "%g must be positive", *data.Width)
		}
		w = *data.Width
	}
	return specs, mh, w, nil
}

func (a *AxisTriad) regenerate() {
	for i, s := range a.specs {
		line := a.lines[i]
		line.Color, line.Width = s.Color, a.width
		line.Points = line.Points[:0]
		line.Points = append(line.Points,
			unit(i, 0), unit(i, s.Min),
			unit(i, 0), unit(i, s.Max),
		)

		tick := a.ticks[i]
		tick.Color, tick.Width = s.Color, a.width
		tick.Points = tickSegments(tick.Points[:0], i, s, a.majorHeight)

		label := a.labels[i]
		label.Pos = unit(i, s.Max+LabelPadding)
		label.Text = s.Label
		label.Color = s.Color

		a.g.SetVisible(a.lineNodes[i], s.Visible)
		a.g.SetVisible(a.tickNodes[i], s.Visible)
		a.g.SetVisible(a.labelNodes[i], s.Visible && s.Label != "")
	}
}

// Ticks returns the tick positions along axis, negative ticks first, zero
// excluded.
func Ticks(min, max, step float64) []float64 {
	neg := int(math.Ceil(-min/step - tickTolerance))
	pos := int(math.Ceil(max/step - tickTolerance))
	out := make([]float64, 0, max0(neg)+max0(pos))
	for k := neg; k >= 1; k-- {
		out = append(out, -float64(k)*step)
	}
	for k := 1; k <= pos; k++ {
		out = append(out, float64(k)*step)
	}
	return out
}

func tickSegments(dst []mgl64.Vec3, axis int, s AxisSpec, height float64) []mgl64.Vec3 {
	half := height / 2
	for _, t := range Ticks(s.Min, s.Max, s.Step) {
		p := unit(axis, t)
		a, b := p, p
		a[s.TickPlane] = -half
		b[s.TickPlane] = half
		dst = append(dst, a, b)
	}
	return dst
}

func (a *AxisTriad) Spec(axis Axis) AxisSpec { return a.specs[axis] }

func (a *AxisTriad) MajorHeight() float64 { return a.majorHeight }

// Ticks returns the current tick positions of axis.
func (a *AxisTriad) Ticks(axis Axis) []float64 {
	s := a.specs[axis]
	return Ticks(s.Min, s.Max, s.Step)
}

// TickSegments returns the endpoint pairs of the tick marks of axis.
func (a *AxisTriad) TickSegments(axis Axis) []mgl64.Vec3 { return a.ticks[axis].Points }

// AxisSegments returns the two segments 0..min and 0..max of axis.
func (a *AxisTriad) AxisSegments(axis Axis) []mgl64.Vec3 { return a.lines[axis].Points }

func (a *AxisTriad) LabelPosition(axis Axis) mgl64.Vec3 { return a.labels[axis].Pos }

func (a *AxisTriad) LabelVisible(axis Axis) bool { return a.g.Visible(a.labelNodes[axis]) }

func (a *AxisTriad) AxisVisible(axis Axis) bool { return a.specs[axis].Visible }

// SetAxisVisible is a shorthand for a SetData with only a visibility flag.
func (a *AxisTriad) SetAxisVisible(axis Axis, v bool) error {
	var d AxisData
	p := AxisPatch{Visible: &v}
	switch axis {
	case X:
		d.X = p
	case Y:
		d.Y = p
	case Z:
		d.Z = p
	}
	return a.SetData(d)
}

func unit(axis int, v float64) mgl64.Vec3 {
	var p mgl64.Vec3
	p[axis] = v
	return p
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
