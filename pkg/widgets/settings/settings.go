package settings

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/roffe/empol/pkg/colors"
	"github.com/roffe/empol/pkg/eventbus"
)

const (
	prefsColorEx        = "colorEx"
	prefsColorEy        = "colorEy"
	prefsColorSum       = "colorSum"
	prefsColorBlindMode = "colorBlindMode"
	prefsFrameDir       = "frameDir"
	prefsFrequency      = "frequency"
	prefsPhase          = "phase"
)

// Field names one of the drawn fields.
type Field int

const (
	FieldEx Field = iota
	FieldEy
	FieldSum
)

var fields = [...]Field{FieldEx, FieldEy, FieldSum}

func (f Field) String() string {
	switch f {
	case FieldEx:
		return "E_x"
	case FieldEy:
		return "E_y"
	case FieldSum:
		return "E"
	}
	return "?"
}

// Topic is the event bus topic carrying the packed colour of f.
func (f Field) Topic() string {
	switch f {
	case FieldEx:
		return "color.ex"
	case FieldEy:
		return "color.ey"
	}
	return "color.sum"
}

func (f Field) prefsKey() string {
	switch f {
	case FieldEx:
		return prefsColorEx
	case FieldEy:
		return prefsColorEy
	}
	return prefsColorSum
}

type Config struct {
	// Bus receives every colour change, may be nil.
	Bus *eventbus.Controller
	// FrameDir is used until a folder has been chosen.
	FrameDir string
}

type Widget struct {
	widget.BaseWidget

	cfg *Config

	palette  colors.Palette
	swatches [len(fields)]*canvas.Rectangle
	hex      [len(fields)]*widget.Label

	colorBlindMode *widget.Select
	frameDir       *widget.Label

	loading bool

	container *container.AppTabs
}

func New(cfg *Config) *Widget {
	if cfg == nil {
		cfg = &Config{}
	}
	sw := &Widget{
		cfg: cfg,
	}
	sw.ExtendBaseWidget(sw)

	for i := range fields {
		sw.swatches[i] = canvas.NewRectangle(color.Transparent)
		sw.swatches[i].SetMinSize(fyne.NewSize(48, 20))
		sw.swatches[i].CornerRadius = 3
		sw.hex[i] = widget.NewLabel("")
	}
	sw.colorBlindMode = sw.newColorBlindMode()

	sw.frameDir = widget.NewLabel("")
	sw.frameDir.Truncation = fyne.TextTruncateEllipsis

	tabs := container.NewAppTabs()
	tabs.Append(sw.colorsTab())
	tabs.Append(sw.outputTab())
	sw.container = tabs

	sw.loadPreferences()
	return sw
}

func (sw *Widget) loadPreferences() {
	sw.loading = true
	defer func() { sw.loading = false }()

	prefs := fyne.CurrentApp().Preferences()
	mode := colors.StringToColorBlindMode(prefs.StringWithFallback(prefsColorBlindMode, colors.Normal))
	sw.colorBlindMode.SetSelectedIndex(int(mode))

	base := colors.PaletteFor(mode)
	defaults := [...]color.NRGBA{base.Ex, base.Ey, base.Sum}
	for i, f := range fields {
		c, err := colors.ParseHex(prefs.StringWithFallback(f.prefsKey(), colors.Hex(defaults[i])))
		if err != nil {
			c = defaults[i]
		}
		sw.applyColor(f, c)
	}

	sw.frameDir.SetText(prefs.StringWithFallback(prefsFrameDir, sw.cfg.FrameDir))
}

// Palette returns the current field colours.
func (sw *Widget) Palette() colors.Palette { return sw.palette }

// SetColor stores and publishes the colour of f.
func (sw *Widget) SetColor(f Field, c color.NRGBA) {
	fyne.CurrentApp().Preferences().SetString(f.prefsKey(), colors.Hex(c))
	sw.applyColor(f, c)
	sw.publish(f)
}

// SetPalette replaces every colour with the palette of mode.
func (sw *Widget) SetPalette(mode colors.ColorBlindMode) {
	fyne.CurrentApp().Preferences().SetString(prefsColorBlindMode, mode.String())
	p := colors.PaletteFor(mode)
	sw.SetColor(FieldEx, p.Ex)
	sw.SetColor(FieldEy, p.Ey)
	sw.SetColor(FieldSum, p.Sum)
}

// Publish sends every colour on the bus.
func (sw *Widget) Publish() {
	for _, f := range fields {
		sw.publish(f)
	}
}

func (sw *Widget) publish(f Field) {
	if sw.cfg.Bus == nil {
		return
	}
	if err := sw.cfg.Bus.Publish(f.Topic(), colors.Pack(sw.color(f))); err != nil {
		fyne.LogError("publish "+f.Topic(), err)
	}
}

func (sw *Widget) color(f Field) color.NRGBA {
	switch f {
	case FieldEx:
		return sw.palette.Ex
	case FieldEy:
		return sw.palette.Ey
	}
	return sw.palette.Sum
}

func (sw *Widget) applyColor(f Field, c color.NRGBA) {
	switch f {
	case FieldEx:
		sw.palette.Ex = c
	case FieldEy:
		sw.palette.Ey = c
	default:
		sw.palette.Sum = c
	}
	sw.swatches[f].FillColor = c
	sw.swatches[f].Refresh()
	sw.hex[f].SetText(colors.Hex(c))
}

// FrameDir is the folder captured frames and screenshots are written to.
func (sw *Widget) FrameDir() string {
	return sw.frameDir.Text
}

func (sw *Widget) SetFrameDir(dir string) {
	fyne.CurrentApp().Preferences().SetString(prefsFrameDir, dir)
	sw.frameDir.SetText(dir)
}

func (sw *Widget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(sw.container)
}
