package windows

import (
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/roffe/empol/pkg/colors"
	"github.com/roffe/empol/pkg/layout"
	"github.com/roffe/empol/pkg/lesson"
	"github.com/roffe/empol/pkg/lesson/parts"
	"github.com/roffe/empol/pkg/params"
	"github.com/roffe/empol/pkg/widgets/settings"
)

const (
	minFrequency  = 0.1
	maxFrequency  = 5
	frequencyStep = 0.1
	phaseStep     = math.Pi / 12
	minAmplitude  = 0.5
	amplitudeStep = 0.25
)

type mainWindowControls struct {
	amplitudeSlider *widget.Slider
	frequencySlider *widget.Slider
	phaseSlider     *widget.Slider

	amplitudeValue *widget.Label
	frequencyValue *widget.Label
	phaseValue     *widget.Label

	presets []*widget.Button

	parameters *fyne.Container
}

func (mw *MainWindow) createControls() {
	c := mw.controls
	p := mw.store.Snapshot()

	c.amplitudeSlider = newSlider(minAmplitude, params.DefaultAmplitude, amplitudeStep, p.Amplitude, func(v float64) {
		mw.publish(params.TopicAmplitude, v)
	})
	c.frequencySlider = newSlider(minFrequency, maxFrequency, frequencyStep, p.Frequency, func(v float64) {
		mw.publish(params.TopicFrequency, v)
	})
	c.phaseSlider = newSlider(-math.Pi, math.Pi, phaseStep, p.Phase, func(v float64) {
		mw.publish(params.TopicPhase, v)
	})

	c.amplitudeValue = widget.NewLabel("")
	c.frequencyValue = widget.NewLabel("")
	c.phaseValue = widget.NewLabel("")
	c.showParams(p)

	preset := func(name string, phase float64) *widget.Button {
		return widget.NewButton(name, func() {
			c.phaseSlider.SetValue(phase)
		})
	}
	c.presets = []*widget.Button{
		preset("Linear", params.Linear),
		preset("Right circular", params.RightCircular),
		preset("Left circular", params.LeftCircular),
	}

	mw.store.OnChange(c.showParams)
	// a wave change restarts the clock running
	mw.store.OnChange(func(params.Params) { mw.buttons.setPaused(mw.machine.Paused()) })
}

func newSlider(min, max, step, value float64, onChanged func(float64)) *widget.Slider {
	s := widget.NewSlider(min, max)
	s.Step = step
	s.SetValue(value)
	s.OnChanged = onChanged
	return s
}

func (c *mainWindowControls) showParams(p params.Params) {
	c.amplitudeValue.SetText(params.FormatAmplitude(p.Amplitude))
	c.frequencyValue.SetText(p.FrequencyString())
	c.phaseValue.SetText(p.PhaseString())
}

func (mw *MainWindow) publish(topic string, v float64) {
	if err := mw.bus.Publish(topic, v); err != nil {
		mw.Error(err)
	}
}

// subscribe applies bus updates on the UI thread.
func (mw *MainWindow) subscribe() {
	sub := func(topic string, fn func(float64)) {
		mw.cancels = append(mw.cancels, mw.bus.SubscribeFunc(topic, fn))
	}
	sub(params.TopicAmplitude, func(v float64) {
		if err := mw.store.SetAmplitude(v); err != nil {
			mw.Error(err)
		}
	})
	sub(params.TopicFrequency, func(v float64) {
		if err := mw.store.SetFrequency(v); err != nil {
			mw.Error(err)
			return
		}
		settings.SaveFrequency(v)
	})
	sub(params.TopicPhase, func(v float64) {
		if err := mw.store.SetPhase(v); err != nil {
			mw.Error(err)
			return
		}
		settings.SavePhase(v)
	})
	sub(settings.FieldEx.Topic(), func(v float64) { parts.ColorEx = colors.Unpack(v) })
	sub(settings.FieldEy.Topic(), func(v float64) { parts.ColorEy = colors.Unpack(v) })
	sub(settings.FieldSum.Topic(), func(v float64) { parts.ColorSum = colors.Unpack(v) })
}

// setControlEnabled is called by the stage when a part takes a control
// away and when it gives it back.
func (mw *MainWindow) setControlEnabled(ctrl lesson.Control, enabled bool) {
	c := mw.controls
	switch ctrl {
	case lesson.ControlAmplitude:
		setEnabled(c.amplitudeSlider, enabled)
	case lesson.ControlFrequency:
		setEnabled(c.frequencySlider, enabled)
	case lesson.ControlPhase:
		setEnabled(c.phaseSlider, enabled)
		for _, b := range c.presets {
			setEnabled(b, enabled)
		}
	}
}

func (mw *MainWindow) parameterBar() fyne.CanvasObject {
	c := mw.controls
	row := func(name string, value *widget.Label, s *widget.Slider) fyne.CanvasObject {
		return container.NewBorder(nil, nil,
			layout.NewFixedWidth(90, widget.NewLabel(name)),
			layout.NewFixedWidth(150, value),
			s,
		)
	}
	presets := make([]fyne.CanvasObject, len(c.presets))
	for i, b := range c.presets {
		presets[i] = b
	}
	c.parameters = container.NewVBox(
		row("Amplitude", c.amplitudeValue, c.amplitudeSlider),
		row("Frequency", c.frequencyValue, c.frequencySlider),
		row("Phase", c.phaseValue, c.phaseSlider),
		layout.NewRatio([]float32{0.3, 0.3, 0.3}, presets...),
	)
	return c.parameters
}
