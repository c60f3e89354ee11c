package windows

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/roffe/empol/pkg/config"
	"github.com/roffe/empol/pkg/lesson"
	"github.com/roffe/empol/pkg/mainmenu"
	"github.com/roffe/empol/pkg/render"
	"github.com/roffe/empol/pkg/widgets"
)

func (mw *MainWindow) setupMenu() {
	leading := []*fyne.Menu{
		fyne.NewMenu("File",
			fyne.NewMenuItem("Open configuration", mw.loadConfig),
			fyne.NewMenuItemSeparator(),
			fyne.NewMenuItem("Save screenshot", mw.saveScreenshot),
			fyne.NewMenuItem("Save frame as", mw.saveFrameAs),
			fyne.NewMenuItem("Copy frame", mw.copyFrame),
			fyne.NewMenuItem("Open output folder", mw.openFrameDir),
			fyne.NewMenuItemSeparator(),
			fyne.NewMenuItem("Settings", mw.openSettings),
			fyne.NewMenuItem("About", mw.about),
		),
		fyne.NewMenu("View",
			fyne.NewMenuItem("Reset camera", func() {
				mw.viewer.JumpCamera(render.DefaultCamera())
			}),
			fyne.NewMenuItem("Full screen", func() {
				mw.SetFullScreen(!mw.FullScreen())
			}),
		),
	}
	mw.menu = mainmenu.New(leading, mw.machine.Catalog(), mw.transition)
	mw.SetMainMenu(mw.menu.GetMenu(lesson.Key{}, mw.cfg.Mode.Navigation()))
}

func (mw *MainWindow) openSettings() {
	d := dialog.NewCustom("Settings", "Close", mw.settings, mw.Window)
	d.Resize(fyne.NewSize(480, 320))
	d.Show()
}

func (mw *MainWindow) about() {
	dialog.ShowCustom("About", "Close", container.NewVBox(
		widget.NewLabelWithStyle(lesson.TitlePrefix, fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		widget.NewLabel("E_x = A cos(ωt - z)"),
		widget.NewLabel("E_y = A cos(ωt - z + Δφ)"),
		widget.NewLabel("Drag to orbit, scroll to zoom."),
	), mw.Window)
}

// loadConfig applies a YAML file to the running window: mode, wave
// parameters and the part to show.
func (mw *MainWindow) loadConfig() {
	widgets.SelectFile(func(filename string) {
		cfg, err := config.Load(filename)
		if err == nil {
			err = cfg.Validate()
		}
		if err != nil {
			mw.Error(err)
			return
		}
		mw.cfg.Mode = cfg.Mode
		mw.applyMode()
		mw.controls.frequencySlider.SetValue(cfg.Frequency)
		mw.controls.phaseSlider.SetValue(cfg.Phase)
		if cfg.FrameDir != config.Default().FrameDir {
			mw.settings.SetFrameDir(cfg.FrameDir)
		}
		k := lesson.Key{Chapter: cfg.Chapter, Part: cfg.Part}
		if k == mw.machine.Key() {
			mw.onTransition(k)
			return
		}
		if err := mw.machine.TransitionTo(k); err != nil {
			mw.Error(fmt.Errorf("%s: %w", filename, err))
		}
	}, "YAML configuration", "yaml", "yml")
}
