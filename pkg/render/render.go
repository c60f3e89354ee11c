// Package render rasterizes a scene graph in software.
package render

import (
	"cmp"
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/roffe/empol/pkg/geometry"
	"github.com/roffe/empol/pkg/items"
	"github.com/roffe/empol/pkg/scene"
	"golang.org/x/image/draw"
)

type kind int

const (
	kindLine kind = iota
	kindTriangle
	kindText
	kindSprite
)

// primitive is one projected draw call.
type primitive struct {
	kind  kind
	bias  int
	z     float64 // view depth, larger is further away
	z0    float64 // endpoint depths of a line
	z1    float64
	pts   [3][2]float64
	width int
	col   color.NRGBA
	text  string
	img   image.Image
}

type Renderer struct {
	Background color.NRGBA
	// DepthCue darkens primitives with distance.
	DepthCue bool
	// Indicator draws the orientation gizmo in the lower left corner.
	Indicator bool
	// Basis is the frame the indicator shows, the shared axes node.
	Basis mgl64.Mat4

	prims []primitive
}

func NewRenderer() *Renderer {
	return &Renderer{
		Background: color.NRGBA{A: 0xff},
		DepthCue:   true,
		Indicator:  true,
		Basis:      mgl64.Ident4(),
	}
}

// Projector maps world space points to pixels.
type Projector struct {
	view, proj mgl64.Mat4
	w, h       float64
}

func NewProjector(cam Camera, w, h int) Projector {
	aspect := 1.0
	if h > 0 {
		aspect = float64(w) / float64(h)
	}
	return Projector{
		view: cam.View(),
		proj: cam.Projection(aspect),
		w:    float64(w),
		h:    float64(h),
	}
}

// Project returns the pixel position and view depth of p. ok is false for
// points behind the near plane.
func (p Projector) Project(world mgl64.Vec3) (x, y, depth float64, ok bool) {
	v := p.view.Mul4x1(world.Vec4(1))
	depth = -v[2]
	if depth < Near {
		return 0, 0, depth, false
	}
	x, y = p.toScreen(v)
	return x, y, depth, true
}

// ProjectSegment projects the segment a-b, cutting it at the near plane
// when one end lies behind it. ok is false when the whole segment does.
func (p Projector) ProjectSegment(a, b mgl64.Vec3) (p0, p1 [2]float64, z0, z1 float64, ok bool) {
	va := p.view.Mul4x1(a.Vec4(1))
	vb := p.view.Mul4x1(b.Vec4(1))
	z0, z1 = -va[2], -vb[2]
	if z0 < Near && z1 < Near {
		return p0, p1, z0, z1, false
	}
	if z0 < Near {
		va = va.Add(vb.Sub(va).Mul((Near - z0) / (z1 - z0)))
		z0 = Near
	} else if z1 < Near {
		vb = vb.Add(va.Sub(vb).Mul((Near - z1) / (z0 - z1)))
		z1 = Near
	}
	p0[0], p0[1] = p.toScreen(va)
	p1[0], p1[1] = p.toScreen(vb)
	return p0, p1, z0, z1, true
}

func (p Projector) toScreen(v mgl64.Vec4) (x, y float64) {
	c := p.proj.Mul4x1(v)
	x = (c[0]/c[3] + 1) * 0.5 * p.w
	y = (1 - c[1]/c[3]) * 0.5 * p.h
	return x, y
}

// Render draws every visible node of g as seen by cam.
func (r *Renderer) Render(g *scene.Graph, cam Camera, w, h int) *image.RGBA {
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rectangle{})
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(r.Background), image.Point{}, draw.Src)
	pj := NewProjector(cam, w, h)
	r.prims = r.prims[:0]
	g.Walk(func(_ scene.NodeID, world mgl64.Mat4, depth int, item scene.Drawable) {
		r.collect(pj, world, depth, item)
	})

	slices.SortStableFunc(r.prims, func(a, b primitive) int {
		if c := cmp.Compare(a.bias, b.bias); c != 0 {
			return c
		}
		return cmp.Compare(b.z, a.z)
	})

	minZ, maxZ := math.Inf(1), math.Inf(-1)
	for _, p := range r.prims {
		minZ, maxZ = min(minZ, p.z0, p.z1), max(maxZ, p.z0, p.z1)
	}
	zRange := maxZ - minZ
	if zRange <= 0 {
		zRange = 1
	}
	factor := func(z float64) float64 {
		if !r.DepthCue {
			return 1
		}
		return 1 - 0.35*mgl64.Clamp((z-minZ)/zRange, 0, 1)
	}

	for _, p := range r.prims {
		switch p.kind {
		case kindLine:
			drawBresenhamLine(img,
				int(math.Round(p.pts[0][0])), int(math.Round(p.pts[0][1])),
				int(math.Round(p.pts[1][0])), int(math.Round(p.pts[1][1])),
				p.width, shade(p.col, factor(p.z0)), shade(p.col, factor(p.z1)))
		case kindTriangle:
			fillTriangle(img, p.pts, shade(p.col, factor(p.z)))
		case kindText:
			drawText(img, p.text, int(math.Round(p.pts[0][0])), int(math.Round(p.pts[0][1])), true, p.col)
		case kindSprite:
			drawSprite(img, p.img, int(math.Round(p.pts[0][0])), int(math.Round(p.pts[0][1])))
		}
	}

	if r.Indicator {
		r.drawIndicator(img, cam)
	}
	return img
}

func (r *Renderer) collect(pj Projector, world mgl64.Mat4, bias int, item scene.Drawable) {
	switch it := item.(type) {
	case *items.Line:
		r.collectLine(pj, world, bias, it)
	case *items.Mesh:
		r.collectMesh(pj, world, bias, it)
	case *items.Text:
		if it.Text == "" {
			return
		}
		x, y, z, ok := pj.Project(geometry.TransformPoint(world, it.Pos))
		if !ok {
			return
		}
		r.prims = append(r.prims, primitive{kind: kindText, bias: bias, z: z, z0: z, z1: z, pts: [3][2]float64{{x, y}}, col: it.Color, text: it.Text})
	case items.Billboard:
		src, ok := it.Raster()
		if !ok {
			return
		}
		x, y, z, ok := pj.Project(geometry.TransformPoint(world, it.Anchor()))
		if !ok {
			return
		}
		r.prims = append(r.prims, primitive{kind: kindSprite, bias: bias, z: z, z0: z, z1: z, pts: [3][2]float64{{x, y}}, img: src})
	}
}

func (r *Renderer) collectLine(pj Projector, world mgl64.Mat4, bias int, l *items.Line) {
	width := max(1, int(math.Round(l.Width)))
	seg := func(a, b mgl64.Vec3) {
		p0, p1, z0, z1, ok := pj.ProjectSegment(geometry.TransformPoint(world, a), geometry.TransformPoint(world, b))
		if !ok {
			return
		}
		r.prims = append(r.prims, primitive{
			kind:  kindLine,
			bias:  bias,
			z:     (z0 + z1) / 2,
			z0:    z0,
			z1:    z1,
			pts:   [3][2]float64{p0, p1},
			width: width,
			col:   l.Color,
		})
	}
	switch l.Mode {
	case items.LineStrip:
		for i := 1; i < len(l.Points); i++ {
			seg(l.Points[i-1], l.Points[i])
		}
	default:
		for i := 1; i < len(l.Points); i += 2 {
			seg(l.Points[i-1], l.Points[i])
		}
	}
}

func (r *Renderer) collectMesh(pj Projector, world mgl64.Mat4, bias int, m *items.Mesh) {
faces:
	for _, f := range m.Mesh.Faces {
		p := primitive{kind: kindTriangle, bias: bias, col: m.Color}
		for i, vi := range f {
			x, y, z, ok := pj.Project(geometry.TransformPoint(world, m.Mesh.Vertices[vi]))
			if !ok {
				continue faces
			}
			p.pts[i] = [2]float64{x, y}
			p.z += z / 3
		}
		p.z0, p.z1 = p.z, p.z
		r.prims = append(r.prims, p)
	}
}
