package windows

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/roffe/empol/pkg/lesson"
)

type mainWindowButtons struct {
	prevChapterBtn *widget.Button
	prevBtn        *widget.Button
	restartBtn     *widget.Button
	pauseBtn       *widget.Button
	nextBtn        *widget.Button
	nextChapterBtn *widget.Button

	recordCheck *widget.Check
	saveBtn     *widget.Button
	copyBtn     *widget.Button
	settingsBtn *widget.Button
}

func (mw *MainWindow) createButtons() {
	mw.buttons.prevChapterBtn = widget.NewButtonWithIcon("Chapter", theme.MediaSkipPreviousIcon(), func() {
		mw.navigate(mw.machine.PrevChapter)
	})
	mw.buttons.prevBtn = widget.NewButtonWithIcon("Previous", theme.NavigateBackIcon(), func() {
		mw.navigate(mw.machine.Prev)
	})
	mw.buttons.nextBtn = widget.NewButtonWithIcon("Next", theme.NavigateNextIcon(), func() {
		mw.navigate(mw.machine.Next)
	})
	mw.buttons.nextBtn.IconPlacement = widget.ButtonIconTrailingText
	mw.buttons.nextChapterBtn = widget.NewButtonWithIcon("Chapter", theme.MediaSkipNextIcon(), func() {
		mw.navigate(mw.machine.NextChapter)
	})
	mw.buttons.nextChapterBtn.IconPlacement = widget.ButtonIconTrailingText

	mw.buttons.restartBtn = widget.NewButtonWithIcon("Restart", theme.MediaReplayIcon(), func() {
		mw.machine.Restart()
		mw.buttons.setPaused(false)
	})
	mw.buttons.pauseBtn = widget.NewButtonWithIcon("Pause", theme.MediaPauseIcon(), func() {
		mw.buttons.setPaused(mw.machine.TogglePause())
	})

	mw.buttons.recordCheck = widget.NewCheck("Record frames", mw.setRecording)
	mw.buttons.saveBtn = widget.NewButtonWithIcon("", theme.DocumentSaveIcon(), mw.saveScreenshot)
	mw.buttons.copyBtn = widget.NewButtonWithIcon("", theme.ContentCopyIcon(), mw.copyFrame)
	mw.buttons.settingsBtn = widget.NewButtonWithIcon("", theme.SettingsIcon(), mw.openSettings)
}

func (b *mainWindowButtons) setPaused(paused bool) {
	if paused {
		b.pauseBtn.SetText("Resume")
		b.pauseBtn.SetIcon(theme.MediaPlayIcon())
		return
	}
	b.pauseBtn.SetText("Pause")
	b.pauseBtn.SetIcon(theme.MediaPauseIcon())
}

// navigation returns the controls only offered when the mode allows part
// navigation.
func (b *mainWindowButtons) navigation() []fyne.CanvasObject {
	return []fyne.CanvasObject{b.prevChapterBtn, b.prevBtn, b.nextBtn, b.nextChapterBtn}
}

func (b *mainWindowButtons) updateNavigation(m *lesson.Machine) {
	setEnabled(b.prevBtn, m.CanPrev())
	setEnabled(b.nextBtn, m.CanNext())
	_, ok := m.Catalog().PrevChapter(m.Key())
	setEnabled(b.prevChapterBtn, ok)
	_, ok = m.Catalog().NextChapter(m.Key())
	setEnabled(b.nextChapterBtn, ok)
}

type disableable interface {
	Enable()
	Disable()
}

func setEnabled(w disableable, enabled bool) {
	if enabled {
		w.Enable()
	} else {
		w.Disable()
	}
}

func (mw *MainWindow) navigationBar() fyne.CanvasObject {
	return container.NewBorder(nil, nil,
		container.NewHBox(
			mw.buttons.prevChapterBtn,
			mw.buttons.prevBtn,
		),
		container.NewHBox(
			mw.buttons.nextBtn,
			mw.buttons.nextChapterBtn,
		),
		container.NewCenter(container.NewHBox(
			mw.buttons.restartBtn,
			mw.buttons.pauseBtn,
			widget.NewSeparator(),
			mw.buttons.recordCheck,
			mw.buttons.saveBtn,
			mw.buttons.copyBtn,
			mw.buttons.settingsBtn,
		)),
	)
}
