package items

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/roffe/empol/pkg/geometry"
	"github.com/roffe/empol/pkg/scene"
)

// Curve is a line strip, used for wave shapes and polarization traces.
type Curve struct {
	base
	line *Line
}

func NewCurve(g *scene.Graph, parent scene.NodeID, c color.NRGBA, width float64) (*Curve, error) {
	l := &Line{Color: c, Width: width, Mode: LineStrip}
	b, err := newBase(g, parent, l)
	if err != nil {
		return nil, err
	}
	return &Curve{base: b, line: l}, nil
}

// SetPoints replaces the strip, the slice is copied.
func (c *Curve) SetPoints(pts []mgl64.Vec3) {
	c.line.Points = append(c.line.Points[:0], pts...)
}

// Append adds a point to the end of the strip and drops the oldest points
// beyond limit, limit <= 0 keeps everything.
func (c *Curve) Append(p mgl64.Vec3, limit int) {
	c.line.Points = append(c.line.Points, p)
	if limit > 0 && len(c.line.Points) > limit {
		c.line.Points = append(c.line.Points[:0], c.line.Points[len(c.line.Points)-limit:]...)
	}
}

func (c *Curve) Points() []mgl64.Vec3 { return c.line.Points }

func (c *Curve) SetColor(col color.NRGBA) { c.line.Color = col }

// Plane is a translucent square marker centred on its node origin, lying in
// the node's xy plane.
type Plane struct {
	base
	mesh *Mesh
}

func NewPlane(g *scene.Graph, parent scene.NodeID, size float64, c color.NRGBA) (*Plane, error) {
	m := &Mesh{Mesh: geometry.Square(size), Color: c}
	b, err := newBase(g, parent, m)
	if err != nil {
		return nil, err
	}
	return &Plane{base: b, mesh: m}, nil
}

// Place sets the plane transform from a centre and the normal of the plane.
func (p *Plane) Place(center, normal mgl64.Vec3) {
	tr := mgl64.Ident4()
	if angle, axis, ok := geometry.AlignZ(normal); ok {
		tr = geometry.Rotation(angle, axis)
	}
	p.g.SetLocal(p.node, geometry.Translation(center).Mul4(tr))
}

func (p *Plane) SetColor(c color.NRGBA) { p.mesh.Color = c }

// TextLabel is a camera facing caption.
type TextLabel struct {
	base
	text *Text
}

func NewTextLabel(g *scene.Graph, parent scene.NodeID, pos mgl64.Vec3, s string, c color.NRGBA) (*TextLabel, error) {
	t := &Text{Pos: pos, Text: s, Color: c}
	b, err := newBase(g, parent, t)
	if err != nil {
		return nil, err
	}
	return &TextLabel{base: b, text: t}, nil
}

func (t *TextLabel) SetText(s string) { t.text.Text = s }

func (t *TextLabel) Text() string { return t.text.Text }

func (t *TextLabel) SetPos(p mgl64.Vec3) { t.text.Pos = p }
