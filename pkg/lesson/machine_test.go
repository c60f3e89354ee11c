package lesson_test

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/roffe/empol/pkg/clock"
	"github.com/roffe/empol/pkg/items"
	"github.com/roffe/empol/pkg/lesson"
	"github.com/roffe/empol/pkg/params"
)

func idleTicker(time.Duration) (<-chan time.Time, func()) {
	return nil, func() {}
}

type recorder struct {
	events []string
}

func (r *recorder) add(format string, args ...any) {
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

type fakePart struct {
	key     lesson.Key
	rec     *recorder
	leak    bool
	hide    bool
	fail    bool
	restart float64
	vec     *items.Vector
}

func (f *fakePart) Setup(st *lesson.Stage) error {
	f.rec.add("setup %s", f.key)
	if f.fail {
		return errors.New("boom")
	}
	v, err := st.Arrow(mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, items.Red)
	if err != nil {
		return err
	}
	f.vec = v
	if f.hide {
		st.HideAxis(items.Z)
	}
	return nil
}

func (f *fakePart) Update(st *lesson.Stage, p params.Params, t float64) {
	f.rec.add("update %s %.1f", f.key, t)
	if f.restart > 0 && t >= f.restart {
		st.RequestRestart()
	}
}

func (f *fakePart) Teardown(st *lesson.Stage) {
	f.rec.add("teardown %s", f.key)
	if !f.leak {
		f.vec.Dispose()
	}
}

type fixture struct {
	rec   *recorder
	parts map[lesson.Key]*fakePart
	m     *lesson.Machine
	store *params.Store
}

func newFixture(t *testing.T, tweak func(*fakePart)) *fixture {
	t.Helper()
	fx := &fixture{rec: &recorder{}, parts: map[lesson.Key]*fakePart{}}
	chapter := func(ch, n int) lesson.Chapter {
		c := lesson.Chapter{Title: fmt.Sprintf("chapter %d", ch)}
		for p := 1; p <= n; p++ {
			k := lesson.Key{Chapter: ch, Part: p}
			c.Parts = append(c.Parts, lesson.Entry{
				Title: fmt.Sprintf("part %s", k),
				New: func() lesson.Part {
					fp := &fakePart{key: k, rec: fx.rec}
					if tweak != nil {
						tweak(fp)
					}
					fx.parts[k] = fp
					return fp
				},
			})
		}
		return c
	}
	st, err := lesson.NewStage(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	fx.store = params.NewStore(params.Default())
	fx.m = lesson.NewMachine(lesson.NewCatalog(chapter(1, 6), chapter(2, 4)), st, fx.store, lesson.Config{
		ClockOptions: []clock.Option{clock.WithTicker(idleTicker)},
	})
	t.Cleanup(fx.m.Stop)
	return fx
}

func (fx *fixture) reset() { fx.rec.events = nil }

func TestTransition(t *testing.T) {
	fx := newFixture(t, nil)
	if err := fx.m.TransitionTo(lesson.Key{Chapter: 1, Part: 1}); err != nil {
		t.Fatal(err)
	}
	fx.reset()
	if err := fx.m.Next(); err != nil {
		t.Fatal(err)
	}
	want := []string{"teardown 1.1", "setup 1.2"}
	if !reflect.DeepEqual(fx.rec.events, want) {
		t.Errorf("events = %v, want %v", fx.rec.events, want)
	}
	p := fx.store.Snapshot()
	if p.Chapter != 1 || p.Part != 2 {
		t.Errorf("params position = %d.%d, want 1.2", p.Chapter, p.Part)
	}
	if got := fx.m.Clock().State(); got != clock.Running {
		t.Errorf("clock state = %s, want running", got)
	}
}

func TestNavigationBounds(t *testing.T) {
	tests := []struct {
		name  string
		from  lesson.Key
		nav   func(*lesson.Machine) error
		want  lesson.Key
		err   error
		moved bool
	}{
		{"prev at start", lesson.Key{Chapter: 1, Part: 1}, (*lesson.Machine).Prev, lesson.Key{Chapter: 1, Part: 1}, lesson.ErrNavigationDisabled, false},
		{"next across chapter", lesson.Key{Chapter: 1, Part: 6}, (*lesson.Machine).Next, lesson.Key{Chapter: 2, Part: 1}, nil, true},
		{"prev across chapter", lesson.Key{Chapter: 2, Part: 1}, (*lesson.Machine).Prev, lesson.Key{Chapter: 1, Part: 6}, nil, true},
		{"next at end", lesson.Key{Chapter: 2, Part: 4}, (*lesson.Machine).Next, lesson.Key{Chapter: 2, Part: 4}, lesson.ErrNavigationDisabled, false},
		{"next chapter", lesson.Key{Chapter: 1, Part: 3}, (*lesson.Machine).NextChapter, lesson.Key{Chapter: 2, Part: 1}, nil, true},
		{"prev chapter at first", lesson.Key{Chapter: 1, Part: 3}, (*lesson.Machine).PrevChapter, lesson.Key{Chapter: 1, Part: 3}, lesson.ErrNavigationDisabled, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t, nil)
			if err := fx.m.TransitionTo(tt.from); err != nil {
				t.Fatal(err)
			}
			fx.reset()
			err := tt.nav(fx.m)
			if !errors.Is(err, tt.err) {
				t.Fatalf("err = %v, want %v", err, tt.err)
			}
			if fx.m.Key() != tt.want {
				t.Errorf("key = %s, want %s", fx.m.Key(), tt.want)
			}
			if moved := len(fx.rec.events) > 0; moved != tt.moved {
				t.Errorf("events = %v, moved want %v", fx.rec.events, tt.moved)
			}
		})
	}
}

func TestNoActivePart(t *testing.T) {
	fx := newFixture(t, nil)
	if err := fx.m.Next(); !errors.Is(err, lesson.ErrNoActivePart) {
		t.Errorf("err = %v, want ErrNoActivePart", err)
	}
	if fx.m.CanNext() || fx.m.CanPrev() {
		t.Error("navigation enabled without an active part")
	}
}

func TestUnknownPart(t *testing.T) {
	fx := newFixture(t, nil)
	if err := fx.m.TransitionTo(lesson.Key{Chapter: 1, Part: 2}); err != nil {
		t.Fatal(err)
	}
	fx.reset()
	clk := fx.m.Clock()
	for _, k := range []lesson.Key{{Chapter: 1, Part: 7}, {Chapter: 3, Part: 1}, {}} {
		if err := fx.m.TransitionTo(k); !errors.Is(err, lesson.ErrUnknownPart) {
			t.Errorf("TransitionTo(%s) err = %v, want ErrUnknownPart", k, err)
		}
	}
	if len(fx.rec.events) != 0 {
		t.Errorf("events = %v, want none", fx.rec.events)
	}
	if fx.m.Key() != (lesson.Key{Chapter: 1, Part: 2}) {
		t.Errorf("key = %s, want 1.2", fx.m.Key())
	}
	if fx.m.Clock() != clk || clk.State() != clock.Running {
		t.Error("clock was replaced or stopped")
	}
}

func TestLeakedItemsReleased(t *testing.T) {
	fx := newFixture(t, func(p *fakePart) { p.leak = true })
	st := fx.m.Stage()
	base := st.Graph.Len()
	if err := fx.m.TransitionTo(lesson.Key{Chapter: 1, Part: 1}); err != nil {
		t.Fatal(err)
	}
	if st.Graph.Len() <= base {
		t.Fatal("setup created no nodes")
	}
	v := fx.parts[lesson.Key{Chapter: 1, Part: 1}].vec
	fx.m.Stop()
	if got := st.Graph.Len(); got != base {
		t.Errorf("graph len = %d after teardown, want %d", got, base)
	}
	if st.Graph.Alive(v.Node()) {
		t.Error("leaked vector still alive")
	}
	if st.Owned() != 0 {
		t.Errorf("owned = %d, want 0", st.Owned())
	}
}

func TestHiddenAxisRestored(t *testing.T) {
	fx := newFixture(t, func(p *fakePart) { p.hide = p.key.Part == 1 })
	axes := fx.m.Stage().Axes
	if err := fx.m.TransitionTo(lesson.Key{Chapter: 1, Part: 1}); err != nil {
		t.Fatal(err)
	}
	if axes.AxisVisible(items.Z) {
		t.Fatal("z axis visible in hiding part")
	}
	if err := fx.m.Next(); err != nil {
		t.Fatal(err)
	}
	if !axes.AxisVisible(items.Z) {
		t.Error("z axis not restored")
	}
}

func TestSetupFailureRestoresPrevious(t *testing.T) {
	fx := newFixture(t, func(p *fakePart) { p.fail = p.key == lesson.Key{Chapter: 1, Part: 3} })
	if err := fx.m.TransitionTo(lesson.Key{Chapter: 1, Part: 2}); err != nil {
		t.Fatal(err)
	}
	fx.reset()
	if err := fx.m.Next(); err == nil {
		t.Fatal("expected setup error")
	}
	want := []string{"teardown 1.2", "setup 1.3", "setup 1.2"}
	if !reflect.DeepEqual(fx.rec.events, want) {
		t.Errorf("events = %v, want %v", fx.rec.events, want)
	}
	if fx.m.Key() != (lesson.Key{Chapter: 1, Part: 2}) {
		t.Errorf("key = %s, want 1.2", fx.m.Key())
	}
}

func TestTicksAndRestart(t *testing.T) {
	fx := newFixture(t, func(p *fakePart) { p.restart = 0.2 })
	if err := fx.m.TransitionTo(lesson.Key{Chapter: 1, Part: 1}); err != nil {
		t.Fatal(err)
	}
	fx.reset()
	for range 5 {
		fx.m.Clock().Step()
	}
	want := []string{
		"update 1.1 0.0",
		"update 1.1 0.1",
		"update 1.1 0.2",
		"update 1.1 0.0",
		"update 1.1 0.1",
	}
	if !reflect.DeepEqual(fx.rec.events, want) {
		t.Errorf("events = %v, want %v", fx.rec.events, want)
	}
}

func TestPauseResume(t *testing.T) {
	fx := newFixture(t, nil)
	if err := fx.m.TransitionTo(lesson.Key{Chapter: 1, Part: 1}); err != nil {
		t.Fatal(err)
	}
	fx.m.Clock().Step()
	fx.m.Clock().Step()
	if !fx.m.TogglePause() {
		t.Fatal("TogglePause did not pause")
	}
	if fx.m.Clock().Step() {
		t.Error("paused clock delivered a tick")
	}
	if fx.m.TogglePause() {
		t.Fatal("TogglePause did not resume")
	}
	fx.reset()
	fx.m.Clock().Step()
	if want := []string{"update 1.1 0.2"}; !reflect.DeepEqual(fx.rec.events, want) {
		t.Errorf("events = %v, want %v", fx.rec.events, want)
	}
}

func TestTitle(t *testing.T) {
	fx := newFixture(t, nil)
	got := fx.m.Title(lesson.Key{Chapter: 2, Part: 3})
	if want := "EM Polarization - Chapter 2, Part 3: part 2.3"; got != want {
		t.Errorf("Title = %q, want %q", got, want)
	}
}

func TestParameterChangeRestartsClock(t *testing.T) {
	tests := []struct {
		name    string
		change  func(*params.Store) error
		restart bool
	}{
		{"frequency", func(s *params.Store) error { return s.SetFrequency(2) }, true},
		{"phase", func(s *params.Store) error { return s.SetPhase(params.RightCircular) }, true},
		{"amplitude", func(s *params.Store) error { return s.SetAmplitude(1.5) }, true},
		{"same frequency", func(s *params.Store) error { return s.SetFrequency(params.DefaultFrequency) }, false},
		{"position", func(s *params.Store) error { s.SetPosition(2, 1); return nil }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t, nil)
			if err := fx.m.TransitionTo(lesson.Key{Chapter: 1, Part: 1}); err != nil {
				t.Fatal(err)
			}
			clk := fx.m.Clock()
			for range 3 {
				clk.Step()
			}
			if err := tt.change(fx.store); err != nil {
				t.Fatal(err)
			}
			got := fx.m.Clock()
			if restarted := got != clk; restarted != tt.restart {
				t.Fatalf("restarted = %v, want %v", restarted, tt.restart)
			}
			if !tt.restart {
				return
			}
			if clk.State() != clock.Idle {
				t.Errorf("old clock state = %s, want idle", clk.State())
			}
			if got.State() != clock.Running || got.Elapsed() != 0 {
				t.Errorf("new clock %s at %.1f, want running at 0", got.State(), got.Elapsed())
			}
			fx.reset()
			got.Step()
			if want := []string{"update 1.1 0.0"}; !reflect.DeepEqual(fx.rec.events, want) {
				t.Errorf("events = %v, want %v", fx.rec.events, want)
			}
		})
	}
}

func TestTickSeesRedrawnView(t *testing.T) {
	var order []string
	st, err := lesson.NewStage(nil, viewFunc(func() { order = append(order, "redraw") }))
	if err != nil {
		t.Fatal(err)
	}
	catalog := lesson.NewCatalog(lesson.Chapter{Parts: []lesson.Entry{{
		Title: "only",
		New:   func() lesson.Part { return &fakePart{key: lesson.Key{Chapter: 1, Part: 1}, rec: &recorder{}} },
	}}})
	m := lesson.NewMachine(catalog, st, params.NewStore(params.Default()), lesson.Config{
		ClockOptions: []clock.Option{clock.WithTicker(idleTicker)},
		OnTick:       func(lesson.Key, float64) { order = append(order, "tick") },
	})
	t.Cleanup(m.Stop)
	if err := m.TransitionTo(catalog.First()); err != nil {
		t.Fatal(err)
	}
	order = nil
	m.Clock().Step()
	if want := []string{"redraw", "tick"}; !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

type viewFunc func()

func (viewFunc) SetCamera(_, _, _ float64)              {}
func (viewFunc) SetTitle(string)                        {}
func (viewFunc) SetControlEnabled(lesson.Control, bool) {}
func (f viewFunc) Redraw()                              { f() }
