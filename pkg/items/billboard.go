package items

import (
	"image"
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/roffe/empol/pkg/assets"
	"github.com/roffe/empol/pkg/scene"
)

// ImageData changes the fields that are non nil.
type ImageData struct {
	Pos    *mgl64.Vec3
	Image  *string
	Width  *int
	Height *int
}

// BillboardImage paints an image centred on the screen projection of its
// anchor, so it always faces the camera. The image is decoded on the first
// paint and kept until image, width or height change.
type BillboardImage struct {
	base
	loader assets.Loader

	pos           mgl64.Vec3
	ref           string
	width, height int

	cached image.Image
	failed bool
}

func NewBillboardImage(g *scene.Graph, parent scene.NodeID, loader assets.Loader, data ImageData) (*BillboardImage, error) {
	b := &BillboardImage{
		loader: loader,
		width:  100,
		height: 100,
	}
	if err := b.apply(data); err != nil {
		return nil, err
	}
	nb, err := newBase(g, parent, b)
	if err != nil {
		return nil, err
	}
	b.base = nb
	return b, nil
}

func (b *BillboardImage) SetData(data ImageData) error {
	return b.apply(data)
}

func (b *BillboardImage) apply(data ImageData) error {
	if data.Pos != nil && !finiteVec(*data.Pos) {
		return invalid("pos", "%v is not a finite point", *data.Pos)
	}
	if data.Width != nil && *data.Width <= 0 {
		return invalid("width", "%d must be positive", *data.Width)
	}
	if data.Height != nil && *data.Height <= 0 {
		return invalid("height", "%d must be positive", *data.Height)
	}
	if data.Pos != nil {
		b.pos = *data.Pos
	}
	invalidate := false
	if data.Image != nil && *data.Image != b.ref {
		b.ref = *data.Image
		invalidate = true
	}
	if data.Width != nil && *data.Width != b.width {
		b.width = *data.Width
		invalidate = true
	}
	if data.Height != nil && *data.Height != b.height {
		b.height = *data.Height
		invalidate = true
	}
	if invalidate {
		b.cached = nil
		b.failed = false
	}
	return nil
}

func (b *BillboardImage) Anchor() mgl64.Vec3 { return b.pos }

func (b *BillboardImage) Image() string { return b.ref }

func (b *BillboardImage) Size() (int, int) { return b.width, b.height }

// Cached reports whether a decoded raster is held.
func (b *BillboardImage) Cached() bool { return b.cached != nil }

// Failed reports whether the current reference could not be loaded.
func (b *BillboardImage) Failed() bool { return b.failed }

// Raster returns the decoded image, loading it on first use. A failed load
// is logged once and not retried until the reference changes.
func (b *BillboardImage) Raster() (image.Image, bool) {
	if b.cached != nil {
		return b.cached, true
	}
	if b.failed || b.ref == "" || b.loader == nil {
		return nil, false
	}
	img, err := b.loader.Load(b.ref, b.width, b.height)
	if err != nil {
		log.Printf("billboard %s: %v", b.ref, err)
		b.failed = true
		return nil, false
	}
	b.cached = img
	return img, true
}

func finiteVec(v mgl64.Vec3) bool {
	return finite(v[0]) && finite(v[1]) && finite(v[2])
}
