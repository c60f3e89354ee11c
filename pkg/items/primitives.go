package items

import (
	"fmt"
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/roffe/empol/pkg/geometry"
	"github.com/roffe/empol/pkg/scene"
)

// Node payloads understood by the renderer.

type LineMode int

const (
	// LineSegments draws every pair of points as its own segment.
	LineSegments LineMode = iota
	// LineStrip connects consecutive points.
	LineStrip
)

type Line struct {
	Points []mgl64.Vec3
	Color  color.NRGBA
	Width  float64
	Mode   LineMode
}

type Mesh struct {
	Mesh  geometry.Mesh
	Color color.NRGBA
}

// Text is a camera facing caption anchored at Pos.
type Text struct {
	Pos   mgl64.Vec3
	Text  string
	Color color.NRGBA
}

// Billboard is a camera facing raster anchored at a point in node space.
type Billboard interface {
	Anchor() mgl64.Vec3
	Raster() (image.Image, bool)
}

var (
	White = color.NRGBA{255, 255, 255, 255}
	Red   = color.NRGBA{247, 10, 10, 255}
	Green = color.NRGBA{6, 245, 34, 255}
	Blue  = color.NRGBA{26, 160, 253, 255}
)

// ValidationError reports a rejected field of a partial update. The item is
// left unchanged.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Item is anything that owns a subtree in the graph.
type Item interface {
	Node() scene.NodeID
}

// base holds the graph handle and root node every item shares.
type base struct {
	g    *scene.Graph
	node scene.NodeID
}

func newBase(g *scene.Graph, parent scene.NodeID, d scene.Drawable) (base, error) {
	id, err := g.Add(parent, d)
	if err != nil {
		return base{}, err
	}
	return base{g: g, node: id}, nil
}

func (b *base) Node() scene.NodeID { return b.node }

func (b *base) SetVisible(v bool) { b.g.SetVisible(b.node, v) }

func (b *base) Visible() bool { return b.g.Visible(b.node) }

// SetDepth sets the render order hint, larger values draw later.
func (b *base) SetDepth(d int) { b.g.SetDepth(b.node, d) }

// Dispose detaches and frees the item and everything below it.
func (b *base) Dispose() error {
	if !b.g.Alive(b.node) {
		return nil
	}
	return b.g.FreeTree(b.node)
}
