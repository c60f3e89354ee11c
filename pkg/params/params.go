package params

import (
	"fmt"
	"math"
)

// Phase presets for the relative phase of the y component.
const (
	Linear        = 0.0
	RightCircular = -math.Pi / 2
	LeftCircular  = math.Pi / 2
)

// Event bus topics carrying parameter changes.
const (
	TopicAmplitude = "param.amplitude"
	TopicFrequency = "param.frequency"
	TopicPhase     = "param.phase"
)

const (
	DefaultAmplitude = 3.0
	DefaultFrequency = 1.0
)

// Params is a snapshot handed to a part on every update.
type Params struct {
	Amplitude float64
	Frequency float64 // angular, rad/s
	Phase     float64 // relative phase of E_y, rad
	Chapter   int
	Part      int
}

func Default() Params {
	return Params{
		Amplitude: DefaultAmplitude,
		Frequency: DefaultFrequency,
		Phase:     Linear,
		Chapter:   1,
		Part:      1,
	}
}

// Ex is the x component at time t and position z along the wave.
func (p Params) Ex(t, z float64) float64 {
	return p.Amplitude * math.Cos(p.Frequency*t-z)
}

// Ey is the y component at time t and position z along the wave.
func (p Params) Ey(t, z float64) float64 {
	return p.Amplitude * math.Cos(p.Frequency*t-z+p.Phase)
}

func (p Params) FrequencyString() string { return FormatFrequency(p.Frequency) }

func (p Params) PhaseString() string { return FormatPhase(p.Phase) }

// Store holds the live parameters. It is owned by the UI thread.
type Store struct {
	p         Params
	listeners []func(Params)
}

func NewStore(p Params) *Store {
	return &Store{p: p}
}

func (s *Store) Snapshot() Params { return s.p }

// OnChange registers fn to be called after every change.
func (s *Store) OnChange(fn func(Params)) {
	s.listeners = append(s.listeners, fn)
}

func (s *Store) SetAmplitude(a float64) error {
	if math.IsNaN(a) || math.IsInf(a, 0) || a < 0 {
		return fmt.Errorf("amplitude %g must be a non negative number", a)
	}
	return s.set(func(p *Params) { p.Amplitude = a })
}

func (s *Store) SetFrequency(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("frequency %g is not a number", f)
	}
	return s.set(func(p *Params) { p.Frequency = f })
}

func (s *Store) SetPhase(ph float64) error {
	if math.IsNaN(ph) || math.IsInf(ph, 0) {
		return fmt.Errorf("phase %g is not a number", ph)
	}
	return s.set(func(p *Params) { p.Phase = ph })
}

// SetPosition records the active chapter and part.
func (s *Store) SetPosition(chapter, part int) {
	s.set(func(p *Params) { p.Chapter, p.Part = chapter, part })
}

func (s *Store) set(fn func(*Params)) error {
	old := s.p
	fn(&s.p)
	if s.p == old {
		return nil
	}
	for _, l := range s.listeners {
		l(s.p)
	}
	return nil
}
