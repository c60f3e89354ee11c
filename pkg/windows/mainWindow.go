package windows

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/roffe/empol/pkg/assets"
	"github.com/roffe/empol/pkg/capture"
	"github.com/roffe/empol/pkg/clock"
	"github.com/roffe/empol/pkg/config"
	"github.com/roffe/empol/pkg/debug"
	"github.com/roffe/empol/pkg/eventbus"
	"github.com/roffe/empol/pkg/lesson"
	"github.com/roffe/empol/pkg/lesson/parts"
	"github.com/roffe/empol/pkg/mainmenu"
	"github.com/roffe/empol/pkg/params"
	"github.com/roffe/empol/pkg/widgets/settings"
	"github.com/roffe/empol/pkg/widgets/viewer"
)

type MainWindow struct {
	fyne.Window
	app fyne.App
	cfg config.Config

	bus      *eventbus.Controller
	store    *params.Store
	stage    *lesson.Stage
	machine  *lesson.Machine
	viewer   *viewer.Viewer
	settings *settings.Widget
	menu     *mainmenu.MainMenu
	recorder *capture.Recorder

	buttons  *mainWindowButtons
	controls *mainWindowControls
	counters *mainWindowCounters

	statusText *widget.Label
	content    *fyne.Container

	recording bool
	cancels   []func()
}

// NewMainWindow builds the window and starts the part named by cfg.
func NewMainWindow(app fyne.App, cfg config.Config) (*MainWindow, error) {
	mw := &MainWindow{
		Window:     app.NewWindow(lesson.TitlePrefix),
		app:        app,
		cfg:        cfg,
		statusText: widget.NewLabel(""),
		buttons:    &mainWindowButtons{},
		controls:   &mainWindowControls{},
		counters:   &mainWindowCounters{},
	}
	mw.statusText.Truncation = fyne.TextTruncateEllipsis

	busCfg := *eventbus.DefaultConfig
	busCfg.Dispatch = fyne.Do
	mw.bus = eventbus.New(&busCfg)

	mw.settings = settings.New(&settings.Config{
		Bus:      mw.bus,
		FrameDir: cfg.FrameDir,
	})

	mw.store = params.NewStore(mw.initialParams())

	loader := assets.NewStore(assets.Options{Dir: cfg.AssetDir})
	stage, err := lesson.NewStage(loader, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create stage: %w", err)
	}
	mw.stage = stage

	mw.viewer = viewer.New(stage.Graph)
	mw.viewer.SetBasis(stage.Graph.World(stage.Axes.Node()))
	mw.viewer.OnTitle = mw.SetTitle
	mw.viewer.OnControl = mw.setControlEnabled
	stage.SetView(mw.viewer)

	mw.machine = lesson.NewMachine(parts.Catalog(), stage, mw.store, lesson.Config{
		Interval:     cfg.Interval,
		ClockOptions: []clock.Option{clock.WithDispatcher(fyne.Do)},
		OnTick:       mw.onTick,
		OnTransition: mw.onTransition,
	})

	mw.createButtons()
	mw.createControls()
	mw.createCounters()
	mw.subscribe()
	mw.setupMenu()

	mw.render()
	mw.applyMode()

	mw.SetCloseIntercept(mw.closeIntercept)
	mw.SetPadded(true)
	mw.SetContent(mw.content)
	mw.Resize(fyne.NewSize(float32(cfg.Width), float32(cfg.Height)))
	mw.CenterOnScreen()
	mw.SetMaster()
	mw.setupShortcuts()

	mw.settings.Publish()
	if cfg.Record {
		mw.buttons.recordCheck.SetChecked(true)
	}

	start := lesson.Key{Chapter: cfg.Chapter, Part: cfg.Part}
	if err := mw.machine.TransitionTo(start); err != nil {
		mw.Log(fmt.Sprintf("can not start at %s: %v", start, err))
		if err := mw.machine.TransitionTo(mw.machine.Catalog().First()); err != nil {
			return nil, err
		}
	}
	return mw, nil
}

// initialParams prefers explicit settings from the command line or config
// file and falls back to what was used last time.
func (mw *MainWindow) initialParams() params.Params {
	p := params.Default()
	def := config.Default()
	p.Frequency = mw.cfg.Frequency
	if p.Frequency == def.Frequency {
		p.Frequency = settings.Frequency(p.Frequency)
	}
	p.Phase = mw.cfg.Phase
	if p.Phase == def.Phase {
		p.Phase = settings.Phase(p.Phase)
	}
	return p
}

func (mw *MainWindow) setupShortcuts() {
	space := &desktop.CustomShortcut{KeyName: fyne.KeySpace, Modifier: fyne.KeyModifierControl}
	right := &desktop.CustomShortcut{KeyName: fyne.KeyRight, Modifier: fyne.KeyModifierControl}
	left := &desktop.CustomShortcut{KeyName: fyne.KeyLeft, Modifier: fyne.KeyModifierControl}
	altEnter := &desktop.CustomShortcut{KeyName: fyne.KeyReturn, Modifier: fyne.KeyModifierAlt}

	mw.Canvas().AddShortcut(space, func(fyne.Shortcut) {
		mw.buttons.pauseBtn.OnTapped()
	})
	mw.Canvas().AddShortcut(right, func(fyne.Shortcut) {
		if mw.cfg.Mode.Navigation() {
			mw.navigate(mw.machine.Next)
		}
	})
	mw.Canvas().AddShortcut(left, func(fyne.Shortcut) {
		if mw.cfg.Mode.Navigation() {
			mw.navigate(mw.machine.Prev)
		}
	})
	mw.Canvas().AddShortcut(altEnter, func(fyne.Shortcut) {
		mw.SetFullScreen(!mw.FullScreen())
	})
}

func (mw *MainWindow) render() {
	mw.content = container.NewBorder(
		container.NewVBox(
			mw.navigationBar(),
			widget.NewSeparator(),
		),
		container.NewVBox(
			widget.NewSeparator(),
			mw.parameterBar(),
			container.NewBorder(nil, nil, nil,
				container.NewHBox(
					mw.counters.tickLabel,
					mw.counters.capturedLabel,
				),
				mw.statusText,
			),
		),
		nil,
		nil,
		mw.viewer,
	)
}

// applyMode hides what the user mode does not offer.
func (mw *MainWindow) applyMode() {
	nav := mw.cfg.Mode.Navigation()
	for _, b := range mw.buttons.navigation() {
		if nav {
			b.Show()
		} else {
			b.Hide()
		}
	}
	if mw.cfg.Mode.Parameters() {
		mw.controls.parameters.Show()
	} else {
		mw.controls.parameters.Hide()
	}
}

func (mw *MainWindow) onTransition(k lesson.Key) {
	mw.SetMainMenu(mw.menu.GetMenu(k, mw.cfg.Mode.Navigation()))
	mw.buttons.updateNavigation(mw.machine)
	mw.buttons.setPaused(false)
	mw.Log(mw.machine.Title(k))
}

func (mw *MainWindow) onTick(_ lesson.Key, t float64) {
	mw.counters.setTime(t)
	mw.captureFrame()
}

func (mw *MainWindow) navigate(step func() error) {
	if err := step(); err != nil {
		mw.Error(err)
	}
}

func (mw *MainWindow) transition(k lesson.Key) {
	if k == mw.machine.Key() {
		return
	}
	mw.navigate(func() error { return mw.machine.TransitionTo(k) })
}

func (mw *MainWindow) Log(s string) {
	debug.Log(s)
	mw.statusText.SetText(s)
}

func (mw *MainWindow) Error(err error) {
	debug.Log("error:" + err.Error())
	log.Println(err)
	mw.statusText.SetText(err.Error())
	dialog.ShowError(err, mw.Window)
}

func (mw *MainWindow) closeIntercept() {
	mw.machine.Stop()
	for _, cancel := range mw.cancels {
		cancel()
	}
	if mw.recorder != nil {
		if err := mw.recorder.Wait(); err != nil {
			log.Println(err)
		}
	}
	mw.bus.Close()
	debug.Close()
	mw.Close()
}
