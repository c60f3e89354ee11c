package lesson

import (
	"fmt"
	"log"
	"time"

	"github.com/roffe/empol/pkg/clock"
	"github.com/roffe/empol/pkg/debug"
	"github.com/roffe/empol/pkg/params"
)

const TitlePrefix = "EM Polarization"

type Config struct {
	// Interval between animation ticks, clock.DefaultInterval when zero.
	Interval time.Duration
	// ClockOptions are passed to every clock the machine creates.
	ClockOptions []clock.Option
	// OnTick runs after the active part has been updated for t and the view
	// redrawn.
	OnTick func(k Key, t float64)
	// OnTransition runs after a part has been set up.
	OnTransition func(k Key)
}

// Machine runs one part at a time. All methods must be called on the UI
// thread.
type Machine struct {
	catalog *Catalog
	stage   *Stage
	store   *params.Store
	cfg     Config

	key    Key
	active Part
	clk    *clock.Clock

	// wave is the last amplitude, frequency and phase the clock ran with.
	wave params.Params
}

func NewMachine(catalog *Catalog, stage *Stage, store *params.Store, cfg Config) *Machine {
	if cfg.Interval <= 0 {
		cfg.Interval = clock.DefaultInterval
	}
	m := &Machine{
		catalog: catalog,
		stage:   stage,
		store:   store,
		cfg:     cfg,
		wave:    waveOf(store.Snapshot()),
	}
	store.OnChange(m.paramsChanged)
	return m
}

func waveOf(p params.Params) params.Params {
	return params.Params{Amplitude: p.Amplitude, Frequency: p.Frequency, Phase: p.Phase}
}

// paramsChanged restarts the clock when the wave changes, so no tick mixes
// the old parameters with the new ones. Position updates are ignored.
func (m *Machine) paramsChanged(p params.Params) {
	w := waveOf(p)
	if w == m.wave {
		return
	}
	m.wave = w
	debug.Logf("parameters changed, restarting %s", m.key)
	m.Restart()
}

func (m *Machine) Catalog() *Catalog { return m.catalog }

func (m *Machine) Stage() *Stage { return m.stage }

// Key returns the active part, zero when nothing is active.
func (m *Machine) Key() Key { return m.key }

func (m *Machine) Active() Part { return m.active }

// Clock returns the clock bound to the active part.
func (m *Machine) Clock() *clock.Clock { return m.clk }

func (m *Machine) Title(k Key) string {
	e, err := m.catalog.Lookup(k)
	if err != nil {
		return TitlePrefix
	}
	return fmt.Sprintf("%s - Chapter %d, Part %d: %s", TitlePrefix, k.Chapter, k.Part, e.Title)
}

// TransitionTo tears down the active part and sets up k. An unknown k is
// reported before anything is touched.
func (m *Machine) TransitionTo(k Key) error {
	entry, err := m.catalog.Lookup(k)
	if err != nil {
		log.Printf("transition to %s: %v", k, err)
		return err
	}
	debug.Logf("transition %s -> %s", m.key, k)

	prev, hadPrev := m.key, m.active != nil
	m.stopClock()
	m.teardown()

	part := entry.New()
	if err := m.setup(k, part); err != nil {
		log.Printf("setup %s: %v", k, err)
		if hadPrev {
			if pe, lerr := m.catalog.Lookup(prev); lerr == nil {
				if rerr := m.setup(prev, pe.New()); rerr != nil {
					log.Printf("restore %s: %v", prev, rerr)
				}
			}
		}
		return fmt.Errorf("setup %s: %w", k, err)
	}
	return nil
}

func (m *Machine) setup(k Key, part Part) error {
	m.stage.SetTitle(m.Title(k))
	if err := part.Setup(m.stage); err != nil {
		m.stage.release()
		return err
	}
	m.key = k
	m.active = part
	m.store.SetPosition(k.Chapter, k.Part)
	if f := m.cfg.OnTransition; f != nil {
		f(k)
	}
	m.startClock()
	m.stage.view.Redraw()
	return nil
}

func (m *Machine) teardown() {
	if m.active == nil {
		return
	}
	m.active.Teardown(m.stage)
	if n := m.stage.release(); n > 0 {
		log.Printf("part %s left %d subtrees attached, released", m.key, n)
	}
	m.active = nil
	m.key = Key{}
}

// Stop halts the clock and tears down the active part.
func (m *Machine) Stop() {
	m.stopClock()
	m.teardown()
}

func (m *Machine) CanNext() bool {
	_, ok := m.catalog.Next(m.key)
	return m.active != nil && ok
}

func (m *Machine) CanPrev() bool {
	_, ok := m.catalog.Prev(m.key)
	return m.active != nil && ok
}

func (m *Machine) Next() error {
	return m.navigate(m.catalog.Next)
}

func (m *Machine) Prev() error {
	return m.navigate(m.catalog.Prev)
}

func (m *Machine) NextChapter() error {
	return m.navigate(m.catalog.NextChapter)
}

func (m *Machine) PrevChapter() error {
	return m.navigate(m.catalog.PrevChapter)
}

func (m *Machine) navigate(step func(Key) (Key, bool)) error {
	if m.active == nil {
		return ErrNoActivePart
	}
	k, ok := step(m.key)
	if !ok {
		return fmt.Errorf("from %s: %w", m.key, ErrNavigationDisabled)
	}
	return m.TransitionTo(k)
}

// Restart replaces the clock with a fresh one, the part stays set up.
func (m *Machine) Restart() {
	if m.active == nil {
		return
	}
	m.stopClock()
	m.startClock()
}

func (m *Machine) Pause() {
	if m.clk != nil {
		m.clk.Pause()
	}
}

func (m *Machine) Resume() {
	if m.clk != nil {
		m.clk.Resume()
	}
}

// TogglePause flips between running and paused and reports whether the
// clock is paused afterwards.
func (m *Machine) TogglePause() bool {
	if m.Paused() {
		m.Resume()
	} else {
		m.Pause()
	}
	return m.Paused()
}

func (m *Machine) Paused() bool {
	return m.clk != nil && m.clk.State() == clock.Paused
}

// Update hands simulation time t to the active part.
func (m *Machine) Update(t float64) {
	if m.active == nil {
		return
	}
	m.active.Update(m.stage, m.store.Snapshot(), t)
	m.stage.view.Redraw()
	if f := m.cfg.OnTick; f != nil {
		f(m.key, t)
	}
	if m.stage.restart {
		m.stage.restart = false
		m.Restart()
	}
}

func (m *Machine) startClock() {
	m.clk = clock.New(m.cfg.Interval, m.Update, m.cfg.ClockOptions...)
	m.clk.Start()
}

func (m *Machine) stopClock() {
	if m.clk != nil {
		m.clk.Stop()
		m.clk = nil
	}
}
