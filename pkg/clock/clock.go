package clock

import (
	"time"
)

type State int

const (
	Idle State = iota
	Running
	Paused
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	}
	return "unknown"
}

const DefaultInterval = 100 * time.Millisecond

// Dispatcher runs f on the thread that owns the scene, e.g. fyne.Do.
type Dispatcher func(f func())

// TickerFunc starts a source of ticks and returns its channel and a stop
// function.
type TickerFunc func(d time.Duration) (<-chan time.Time, func())

func timeTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

type Option func(*Clock)

// WithDuration stops the clock on the first tick whose elapsed time reaches d.
// That tick is still delivered.
func WithDuration(d time.Duration) Option {
	return func(c *Clock) {
		c.duration = d
		c.hasDuration = true
	}
}

func WithDispatcher(d Dispatcher) Option {
	return func(c *Clock) {
		c.dispatch = d
	}
}

func WithTicker(f TickerFunc) Option {
	return func(c *Clock) {
		c.ticker = f
	}
}

// Clock calls block once per interval with the elapsed simulation time in
// seconds. All methods and the callback must run on the dispatcher's thread,
// the ticker goroutine only posts work to it. Without WithDispatcher ticks run
// on the ticker goroutine, which is only safe when nothing else touches the
// clock.
type Clock struct {
	interval    time.Duration
	duration    time.Duration
	hasDuration bool
	block       func(t float64)

	dispatch Dispatcher
	ticker   TickerFunc

	state   State
	counter time.Duration
	ticks   int

	// gen identifies the current run of the ticker goroutine, ticks posted
	// by an older run are dropped.
	gen  uint64
	quit chan struct{}
}

func New(interval time.Duration, block func(t float64), opts ...Option) *Clock {
	if interval <= 0 {
		interval = DefaultInterval
	}
	c := &Clock{
		interval: interval,
		block:    block,
		dispatch: func(f func()) { f() },
		ticker:   timeTicker,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Clock) State() State { return c.state }

func (c *Clock) Interval() time.Duration { return c.interval }

// Elapsed is the simulation time the next tick will report.
func (c *Clock) Elapsed() float64 { return c.counter.Seconds() }

// Ticks counts delivered callbacks since the last Start from idle.
func (c *Clock) Ticks() int { return c.ticks }

// Start begins ticking from t=0. It is a no-op unless the clock is idle.
func (c *Clock) Start() {
	if c.state != Idle {
		return
	}
	c.counter = 0
	c.ticks = 0
	c.state = Running
	c.spawn()
}

// Stop cancels all future ticks and discards the counter. No callback runs
// after Stop returns, including ticks already posted to the dispatcher.
func (c *Clock) Stop() {
	c.halt()
	c.state = Idle
	c.counter = 0
}

// Pause suspends delivery and keeps the counter.
func (c *Clock) Pause() {
	if c.state != Running {
		return
	}
	c.halt()
	c.state = Paused
}

// Resume continues a paused clock from where it stopped counting.
func (c *Clock) Resume() {
	if c.state != Paused {
		return
	}
	c.state = Running
	c.spawn()
}

// Step delivers one tick synchronously regardless of the ticker. It returns
// false when the clock is not running. Offline rendering drives the clock
// this way.
func (c *Clock) Step() bool {
	if c.state != Running {
		return false
	}
	final := c.hasDuration && c.counter >= c.duration
	if final {
		c.halt()
		c.state = Idle
	}
	t := c.counter.Seconds()
	c.ticks++
	if c.block != nil {
		c.block(t)
	}
	// the callback may have stopped the clock, which already reset the counter
	if c.state != Idle {
		c.counter += c.interval
	}
	return true
}

func (c *Clock) spawn() {
	c.gen++
	gen := c.gen
	quit := make(chan struct{})
	c.quit = quit
	ch, stop := c.ticker(c.interval)
	go func() {
		defer stop()
		for {
			select {
			case <-quit:
				return
			case <-ch:
				c.dispatch(func() { c.deliver(gen) })
			}
		}
	}()
}

func (c *Clock) deliver(gen uint64) {
	if gen != c.gen || c.state != Running {
		return
	}
	c.Step()
}

func (c *Clock) halt() {
	if c.quit != nil {
		close(c.quit)
		c.quit = nil
	}
	c.gen++
}
