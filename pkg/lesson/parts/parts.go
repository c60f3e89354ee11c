// Package parts holds the lesson content: two chapters of scenes built from
// the primitive items.
package parts

import (
	"image/color"
	"log"
	"math"
	"reflect"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/roffe/empol/pkg/items"
	"github.com/roffe/empol/pkg/lesson"
	"github.com/roffe/empol/pkg/params"
)

// Extent of the wave along z.
const (
	ZMin = -5.0
	ZMax = 5.0
)

// Camera poses shared by several parts: looking down the propagation axis,
// and an oblique view of the whole wave.
var (
	AlongZ  = Pose{Distance: 10, Elevation: 0, Azimuth: 180}
	Oblique = Pose{Distance: 20, Elevation: 20, Azimuth: 135}
)

type Pose struct {
	Distance, Elevation, Azimuth float64
}

func (p Pose) apply(st *lesson.Stage) { st.SetCamera(p.Distance, p.Elevation, p.Azimuth) }

// Field colours, changed by the settings dialog.
var (
	ColorEx  = items.Red
	ColorEy  = items.Green
	ColorSum = color.NRGBA{R: 0x40, G: 0x90, B: 0xff, A: 0xff}
)

// lift keeps vectors off the axis lines so both stay visible.
const lift = 0.05

// Catalog returns the lesson outline.
func Catalog() *lesson.Catalog {
	return lesson.NewCatalog(
		lesson.Chapter{
			Title: "Linear polarization",
			Parts: []lesson.Entry{
				{Title: "Oscillating electric field", New: func() lesson.Part { return &oscillation{} }},
				{Title: "Wave along z", New: func() lesson.Part { return &travelling{} }},
				{Title: "The y component", New: func() lesson.Part { return &yComponent{} }},
				{Title: "Superposition", New: func() lesson.Part { return &superposition{} }},
				{Title: "Wave extrema", New: func() lesson.Part { return &extrema{} }},
				{Title: "Polarization trace", New: func() lesson.Part { return &trace{} }},
			},
		},
		lesson.Chapter{
			Title: "Circular and elliptical polarization",
			Parts: []lesson.Entry{
				{Title: "Phase difference", New: func() lesson.Part { return &phaseDifference{} }},
				{Title: "Circular polarization", New: func() lesson.Part { return &circular{} }},
				{Title: "Helix", New: func() lesson.Part { return &helix{} }},
				{Title: "Elliptical polarization", New: func() lesson.Part { return &elliptical{} }},
			},
		},
	)
}

// samples returns z positions from ZMin to ZMax inclusive.
func samples(step float64) []float64 {
	n := int(math.Round((ZMax-ZMin)/step)) + 1
	zs := make([]float64, n)
	for i := range zs {
		zs[i] = ZMin + float64(i)*step
	}
	return zs
}

// polarized returns p with the y phase replaced.
func polarized(p params.Params, phase float64) params.Params {
	p.Phase = phase
	return p
}

// field is the tip of the E vector at (t, z).
func field(p params.Params, t, z float64) mgl64.Vec3 {
	return mgl64.Vec3{p.Ex(t, z), p.Ey(t, z), z}
}

func smallArrow(c color.NRGBA) items.VectorOptions {
	o := items.DefaultVectorOptions()
	o.Color = c
	o.Width = 3
	o.TipRadius = 0.2
	o.TipHeight = 0.4
	return o
}

// vectorPool builds a pool of small arrows below the stage's axes.
func vectorPool(st *lesson.Stage, c color.NRGBA) *items.Pool[*items.Vector] {
	return items.NewPool(func(int) (*items.Vector, error) {
		return st.Vector(smallArrow(c))
	})
}

type disposer interface {
	Dispose() error
}

// dispose frees every item that was created, nil pointers from a setup that
// stopped early are skipped.
func dispose(its ...disposer) {
	for _, it := range its {
		if it == nil || reflect.ValueOf(it).IsNil() {
			continue
		}
		if err := it.Dispose(); err != nil {
			log.Printf("dispose: %v", err)
		}
	}
}
