package parts_test

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/roffe/empol/pkg/clock"
	"github.com/roffe/empol/pkg/items"
	"github.com/roffe/empol/pkg/lesson"
	"github.com/roffe/empol/pkg/lesson/parts"
	"github.com/roffe/empol/pkg/params"
)

func idleTicker(time.Duration) (<-chan time.Time, func()) {
	return nil, func() {}
}

type view struct {
	cameras  int
	disabled map[lesson.Control]bool
}

func (v *view) SetCamera(_, _, _ float64) { v.cameras++ }
func (v *view) SetTitle(string)           {}
func (v *view) Redraw()                   {}
func (v *view) SetControlEnabled(c lesson.Control, enabled bool) {
	if v.disabled == nil {
		v.disabled = map[lesson.Control]bool{}
	}
	v.disabled[c] = !enabled
}

func TestCatalogShape(t *testing.T) {
	c := parts.Catalog()
	if got := c.Chapters(); got != 2 {
		t.Fatalf("chapters = %d, want 2", got)
	}
	for ch, want := range map[int]int{1: 6, 2: 4} {
		if got := c.Parts(ch); got != want {
			t.Errorf("chapter %d parts = %d, want %d", ch, got, want)
		}
	}
}

func TestEveryPartCleansUp(t *testing.T) {
	c := parts.Catalog()
	for _, k := range c.Keys() {
		t.Run(k.String(), func(t *testing.T) {
			v := &view{}
			st, err := lesson.NewStage(nil, v)
			if err != nil {
				t.Fatal(err)
			}
			base := st.Graph.Len()
			entry, err := c.Lookup(k)
			if err != nil {
				t.Fatal(err)
			}
			part := entry.New()
			if err := part.Setup(st); err != nil {
				t.Fatal(err)
			}
			if v.cameras == 0 {
				t.Error("setup did not place the camera")
			}
			p := params.Default()
			for i := range 50 {
				part.Update(st, p, float64(i)*0.1)
			}
			part.Teardown(st)
			if got := st.Graph.Len(); got != base {
				t.Errorf("graph len = %d after teardown, want %d", got, base)
			}
			if st.Owned() != 0 {
				t.Errorf("owned = %d after teardown", st.Owned())
			}
		})
	}
}

func TestMachineRunsLesson(t *testing.T) {
	v := &view{}
	st, err := lesson.NewStage(nil, v)
	if err != nil {
		t.Fatal(err)
	}
	base := st.Graph.Len()
	m := lesson.NewMachine(parts.Catalog(), st, params.NewStore(params.Default()), lesson.Config{
		ClockOptions: []clock.Option{clock.WithTicker(idleTicker)},
	})
	if err := m.TransitionTo(lesson.Key{Chapter: 1, Part: 1}); err != nil {
		t.Fatal(err)
	}
	for {
		for range 20 {
			m.Clock().Step()
		}
		if !m.CanNext() {
			break
		}
		if err := m.Next(); err != nil {
			t.Fatal(err)
		}
	}
	if m.Key() != (lesson.Key{Chapter: 2, Part: 4}) {
		t.Errorf("ended at %s, want 2.4", m.Key())
	}
	m.Stop()
	if got := st.Graph.Len(); got != base {
		t.Errorf("graph len = %d after stop, want %d", got, base)
	}
	for _, a := range []items.Axis{items.X, items.Y, items.Z} {
		if !st.Axes.AxisVisible(a) {
			t.Errorf("axis %s left hidden", a)
		}
	}
	for c, off := range v.disabled {
		if off {
			t.Errorf("control %s left disabled", c)
		}
	}
}

func TestTravellingWaveRestarts(t *testing.T) {
	st, err := lesson.NewStage(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	var times []float64
	m := lesson.NewMachine(parts.Catalog(), st, params.NewStore(params.Default()), lesson.Config{
		ClockOptions: []clock.Option{clock.WithTicker(idleTicker)},
		OnTick:       func(_ lesson.Key, t float64) { times = append(times, t) },
	})
	if err := m.TransitionTo(lesson.Key{Chapter: 1, Part: 2}); err != nil {
		t.Fatal(err)
	}
	defer m.Stop()
	for range 150 {
		m.Clock().Step()
	}
	restarts := 0
	for i := 1; i < len(times); i++ {
		if times[i] < times[i-1] {
			restarts++
		}
	}
	if restarts == 0 {
		t.Errorf("no restart in %d ticks, last t=%.1f", len(times), times[len(times)-1])
	}
}

func TestExtrema(t *testing.T) {
	p := params.Default()
	got := parts.Extrema(p, 0)
	want := []parts.Extremum{{Z: math.Pi, Sign: -1}, {Z: 0, Sign: 1}, {Z: -math.Pi, Sign: -1}}
	if len(got) != len(want) {
		t.Fatalf("Extrema = %v, want %v", got, want)
	}
	for i := range want {
		if !mgl64.FloatEqual(got[i].Z, want[i].Z) || got[i].Sign != want[i].Sign {
			t.Errorf("extremum %d = %+v, want %+v", i, got[i], want[i])
		}
		if e := p.Ex(0, got[i].Z); !mgl64.FloatEqualThreshold(e, got[i].Sign*p.Amplitude, 1e-9) {
			t.Errorf("E_x at z=%.3f = %.3f, want %.3f", got[i].Z, e, got[i].Sign*p.Amplitude)
		}
	}
	for _, tt := range []float64{0.3, 1.7, 4.2} {
		for _, x := range parts.Extrema(p, tt) {
			if x.Z < parts.ZMin || x.Z > parts.ZMax {
				t.Errorf("t=%.1f extremum z=%.3f out of range", tt, x.Z)
			}
		}
	}
}

func TestEllipseTip(t *testing.T) {
	p := params.Default()
	tests := []struct {
		phase float64
		t     float64
		x, y  float64
	}{
		{params.RightCircular, 0, 3, 0},
		{params.LeftCircular, 0, 3, 0},
		{params.Linear, 0, 3, 1.5 * math.Cos(parts.EllipticalPhase)},
		{params.RightCircular, math.Pi / 2, 0, 1.5},
	}
	for _, tt := range tests {
		p.Phase = tt.phase
		x, y := parts.EllipseTip(p, tt.t)
		if !mgl64.FloatEqualThreshold(x, tt.x, 1e-9) || !mgl64.FloatEqualThreshold(y, tt.y, 1e-9) {
			t.Errorf("phase %.2f t %.2f: tip = (%.3f, %.3f), want (%.3f, %.3f)", tt.phase, tt.t, x, y, tt.x, tt.y)
		}
	}
}
