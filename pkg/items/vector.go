package items

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/roffe/empol/pkg/geometry"
	"github.com/roffe/empol/pkg/scene"
)

type VectorOptions struct {
	Start, End  mgl64.Vec3
	Color       color.NRGBA
	Width       float64
	TipRadius   float64
	TipHeight   float64
	TipSegments int
}

func DefaultVectorOptions() VectorOptions {
	return VectorOptions{
		End:         mgl64.Vec3{1, 1, 1},
		Color:       White,
		Width:       5,
		TipRadius:   0.5,
		TipHeight:   1,
		TipSegments: 8,
	}
}

// Vector is an arrow: a shaft line from start to end and a cone tip whose
// apex sits on the end point.
type Vector struct {
	base
	shaft, tip scene.NodeID
	line       *Line
	cone       *Mesh

	start, end mgl64.Vec3
	tipHeight  float64

	length     float64
	dir        mgl64.Vec3
	tipVisible bool
}

func NewVector(g *scene.Graph, parent scene.NodeID, opts VectorOptions) (*Vector, error) {
	cone, err := geometry.Cone(opts.TipRadius, opts.TipHeight, opts.TipSegments)
	if err != nil {
		return nil, err
	}
	b, err := newBase(g, parent, nil)
	if err != nil {
		return nil, err
	}
	v := &Vector{
		base:      b,
		line:      &Line{Color: opts.Color, Width: opts.Width, Mode: LineSegments},
		cone:      &Mesh{Mesh: cone, Color: opts.Color},
		tipHeight: opts.TipHeight,
	}
	if v.shaft, err = g.Add(v.node, v.line); err == nil {
		v.tip, err = g.Add(v.node, v.cone)
	}
	if err != nil {
		g.FreeTree(v.node)
		return nil, err
	}
	v.SetPosition(opts.Start, opts.End)
	return v, nil
}

// SetPosition moves both end points and rebuilds the shaft and tip.
func (v *Vector) SetPosition(start, end mgl64.Vec3) {
	v.start, v.end = start, end
	v.update()
}

func (v *Vector) update() {
	v.line.Points = append(v.line.Points[:0], v.start, v.end)

	d := v.end.Sub(v.start)
	v.length = d.Len()
	angle, axis, ok := geometry.AlignZ(d)
	if !ok {
		v.length = 0
		v.dir = mgl64.Vec3{}
		v.tipVisible = false
		v.g.ResetTransform(v.tip)
		v.g.SetVisible(v.tip, false)
		return
	}
	v.dir = d.Mul(1 / v.length)

	tr := geometry.Translation(mgl64.Vec3{0, 0, -v.tipHeight})
	tr = geometry.Rotation(angle, axis).Mul4(tr)
	tr = geometry.Translation(v.end).Mul4(tr)
	v.g.SetLocal(v.tip, tr)

	// a tip longer than the vector would poke out behind the start
	v.tipVisible = v.length >= v.tipHeight
	v.g.SetVisible(v.tip, v.tipVisible)
}

func (v *Vector) Start() mgl64.Vec3 { return v.start }

func (v *Vector) End() mgl64.Vec3 { return v.end }

func (v *Vector) Length() float64 { return v.length }

// Direction is the unit vector from start to end, zero for a degenerate vector.
func (v *Vector) Direction() mgl64.Vec3 { return v.dir }

func (v *Vector) TipVisible() bool { return v.tipVisible }

// TipTransform is the local transform of the cone relative to the vector.
func (v *Vector) TipTransform() mgl64.Mat4 { return v.g.Local(v.tip) }

func (v *Vector) SetColor(c color.NRGBA) {
	v.line.Color = c
	v.cone.Color = c
}

func (v *Vector) Color() color.NRGBA { return v.line.Color }

func (v *Vector) SetWidth(w float64) { v.line.Width = w }
