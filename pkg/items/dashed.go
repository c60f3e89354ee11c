package items

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/roffe/empol/pkg/scene"
)

// DashData changes the fields that are non nil.
type DashData struct {
	Start, End *mgl64.Vec3
	Dash       *float64
	Space      *float64
	Color      *color.NRGBA
	Width      *float64
}

type DashedLine struct {
	base
	line       *Line
	start, end mgl64.Vec3
	dash       float64
	space      float64
}

func NewDashedLine(g *scene.Graph, parent scene.NodeID, data DashData) (*DashedLine, error) {
	d := &DashedLine{
		line:  &Line{Color: White, Width: 2, Mode: LineSegments},
		dash:  0.25,
		space: 0.15,
	}
	if err := d.apply(data); err != nil {
		return nil, err
	}
	b, err := newBase(g, parent, d.line)
	if err != nil {
		return nil, err
	}
	d.base = b
	d.regenerate()
	return d, nil
}

func (d *DashedLine) SetData(data DashData) error {
	if err := d.apply(data); err != nil {
		return err
	}
	d.regenerate()
	return nil
}

func (d *DashedLine) apply(data DashData) error {
	if data.Start != nil && !finiteVec(*data.Start) {
		return invalid("start", "%v is not a finite point", *data.Start)
	}
	if data.End != nil && !finiteVec(*data.End) {
		return invalid("end", "%v is not a finite point", *data.End)
	}
	if data.Dash != nil && !(*data.Dash > 0 && finite(*data.Dash)) {
		return invalid("dash", "%g must be positive", *data.Dash)
	}
	if data.Space != nil && !(*data.Space >= 0 && finite(*data.Space)) {
		return invalid("space", "%g must not be negative", *data.Space)
	}
	if data.Width != nil && !(*data.Width > 0) {
		return invalid("width", "%g must be positive", *data.Width)
	}
	if data.Start != nil {
		d.start = *data.Start
	}
	if data.End != nil {
		d.end = *data.End
	}
	if data.Dash != nil {
		d.dash = *data.Dash
	}
	if data.Space != nil {
		d.space = *data.Space
	}
	if data.Color != nil {
		d.line.Color = *data.Color
	}
	if data.Width != nil {
		d.line.Width = *data.Width
	}
	return nil
}

// SetEnds is a shorthand for moving both end points.
func (d *DashedLine) SetEnds(start, end mgl64.Vec3) error {
	return d.SetData(DashData{Start: &start, End: &end})
}

func (d *DashedLine) regenerate() {
	pts := d.line.Points[:0]
	delta := d.end.Sub(d.start)
	dist := delta.Len()
	if dist == 0 {
		d.line.Points = pts
		return
	}
	dir := delta.Mul(1 / dist)
	period := d.dash + d.space
	n := int(math.Ceil(dist / period))
	for i := range n {
		from := float64(i) * period
		to := math.Min(from+d.dash, dist)
		pts = append(pts, d.start.Add(dir.Mul(from)), d.start.Add(dir.Mul(to)))
	}
	d.line.Points = pts
}

// Segments returns the endpoint pairs of the visible dashes.
func (d *DashedLine) Segments() []mgl64.Vec3 { return d.line.Points }

func (d *DashedLine) Count() int { return len(d.line.Points) / 2 }
