package windows

import (
	"fmt"

	"fyne.io/fyne/v2/widget"
)

type mainWindowCounters struct {
	tickLabel     *widget.Label
	capturedLabel *widget.Label
	captured      int
	dropped       int
}

func (mw *MainWindow) createCounters() {
	mw.counters.tickLabel = widget.NewLabel("")
	mw.counters.capturedLabel = widget.NewLabel("")
	mw.counters.setTime(0)
	mw.counters.showCaptured()
}

func (c *mainWindowCounters) setTime(t float64) {
	c.tickLabel.SetText(fmt.Sprintf("t = %.1f s", t))
}

func (c *mainWindowCounters) addCaptured() {
	c.captured++
	c.showCaptured()
}

func (c *mainWindowCounters) addDropped() {
	c.dropped++
	c.showCaptured()
}

func (c *mainWindowCounters) showCaptured() {
	if c.dropped > 0 {
		c.capturedLabel.SetText(fmt.Sprintf("Captured: %d (%d dropped)", c.captured, c.dropped))
		return
	}
	c.capturedLabel.SetText(fmt.Sprintf("Captured: %d", c.captured))
}
