package lesson

import (
	"image/color"
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/roffe/empol/pkg/assets"
	"github.com/roffe/empol/pkg/items"
	"github.com/roffe/empol/pkg/params"
	"github.com/roffe/empol/pkg/scene"
)

// Control names a UI affordance a part can switch off while it is active.
type Control string

const (
	ControlAmplitude Control = "amplitude"
	ControlFrequency Control = "frequency"
	ControlPhase     Control = "phase"
)

// View is the window side of the stage.
type View interface {
	SetCamera(distance, elevation, azimuth float64)
	SetTitle(title string)
	SetControlEnabled(c Control, enabled bool)
	Redraw()
}

type nopView struct{}

func (nopView) SetCamera(_, _, _ float64)       {}
func (nopView) SetTitle(string)                 {}
func (nopView) SetControlEnabled(Control, bool) {}
func (nopView) Redraw()                         {}

// Part is one stage of the lesson.
type Part interface {
	// Setup builds the part's items below the shared axes.
	Setup(st *Stage) error
	// Update moves the part's items to simulation time t.
	Update(st *Stage, p params.Params, t float64)
	// Teardown disposes everything Setup created.
	Teardown(st *Stage)
}

// Stage is the shared scene a part builds into. Items created through it are
// tracked so a sloppy teardown can not leave nodes behind, and shared state
// changed through it is restored when the part goes away.
type Stage struct {
	Graph  *scene.Graph
	Axes   *items.AxisTriad
	Assets assets.Loader

	view    View
	scope   *scene.Scope
	restart bool

	hidden   []items.Axis
	disabled []Control
}

// NewStage creates the graph root layout: a shared axis triad rotated so
// that the wave travels towards the viewer.
func NewStage(loader assets.Loader, view View) (*Stage, error) {
	if view == nil {
		view = nopView{}
	}
	g := scene.New()
	axes, err := items.NewAxisTriad(g, g.Root(), items.AxisData{})
	if err != nil {
		return nil, err
	}
	g.Rotate(axes.Node(), -90, mgl64.Vec3{0, 1, 0})
	return &Stage{
		Graph:  g,
		Axes:   axes,
		Assets: loader,
		view:   view,
		scope:  scene.NewScope(g),
	}, nil
}

// SetView swaps the window side, nil detaches it.
func (s *Stage) SetView(v View) {
	if v == nil {
		v = nopView{}
	}
	s.view = v
}

// Parent is the node parts attach their items to.
func (s *Stage) Parent() scene.NodeID { return s.Axes.Node() }

// Track records an item created outside the helpers below.
func (s *Stage) Track(it items.Item) {
	s.scope.Track(it.Node())
}

// Owned counts live nodes tracked for the active part.
func (s *Stage) Owned() int { return s.scope.Len() }

func (s *Stage) Vector(opts items.VectorOptions) (*items.Vector, error) {
	v, err := items.NewVector(s.Graph, s.Parent(), opts)
	if err != nil {
		return nil, err
	}
	s.Track(v)
	return v, nil
}

// Arrow is a Vector with default options and the given colour.
func (s *Stage) Arrow(start, end mgl64.Vec3, c color.NRGBA) (*items.Vector, error) {
	opts := items.DefaultVectorOptions()
	opts.Start, opts.End, opts.Color = start, end, c
	return s.Vector(opts)
}

func (s *Stage) Curve(c color.NRGBA, width float64) (*items.Curve, error) {
	cv, err := items.NewCurve(s.Graph, s.Parent(), c, width)
	if err != nil {
		return nil, err
	}
	s.Track(cv)
	return cv, nil
}

func (s *Stage) Dashed(start, end mgl64.Vec3, c color.NRGBA) (*items.DashedLine, error) {
	d, err := items.NewDashedLine(s.Graph, s.Parent(), items.DashData{Start: &start, End: &end, Color: &c})
	if err != nil {
		return nil, err
	}
	s.Track(d)
	return d, nil
}

func (s *Stage) Plane(size float64, c color.NRGBA) (*items.Plane, error) {
	p, err := items.NewPlane(s.Graph, s.Parent(), size, c)
	if err != nil {
		return nil, err
	}
	s.Track(p)
	return p, nil
}

func (s *Stage) Label(pos mgl64.Vec3, text string, c color.NRGBA) (*items.TextLabel, error) {
	l, err := items.NewTextLabel(s.Graph, s.Parent(), pos, text, c)
	if err != nil {
		return nil, err
	}
	s.Track(l)
	return l, nil
}

func (s *Stage) Image(pos mgl64.Vec3, ref string, width, height int) (*items.BillboardImage, error) {
	b, err := items.NewBillboardImage(s.Graph, s.Parent(), s.Assets, items.ImageData{
		Pos: &pos, Image: &ref, Width: &width, Height: &height,
	})
	if err != nil {
		return nil, err
	}
	s.Track(b)
	return b, nil
}

func (s *Stage) SetCamera(distance, elevation, azimuth float64) {
	s.view.SetCamera(distance, elevation, azimuth)
}

func (s *Stage) SetTitle(title string) { s.view.SetTitle(title) }

// HideAxis hides one of the shared axes until the part is torn down.
func (s *Stage) HideAxis(a items.Axis) {
	if !s.Axes.AxisVisible(a) {
		return
	}
	if err := s.Axes.SetAxisVisible(a, false); err != nil {
		log.Printf("hide axis %s: %v", a, err)
		return
	}
	s.hidden = append(s.hidden, a)
}

// DisableControl switches off a UI control until the part is torn down.
func (s *Stage) DisableControl(c Control) {
	s.view.SetControlEnabled(c, false)
	s.disabled = append(s.disabled, c)
}

// RequestRestart asks the machine to restart the clock after this update.
func (s *Stage) RequestRestart() { s.restart = true }

// release frees whatever the part left behind and undoes shared state
// changes. It returns the number of leaked subtrees.
func (s *Stage) release() int {
	leaked := s.scope.Dispose()
	for _, a := range s.hidden {
		if err := s.Axes.SetAxisVisible(a, true); err != nil {
			log.Printf("restore axis %s: %v", a, err)
		}
	}
	s.hidden = s.hidden[:0]
	for _, c := range s.disabled {
		s.view.SetControlEnabled(c, true)
	}
	s.disabled = s.disabled[:0]
	s.restart = false
	return leaked
}
