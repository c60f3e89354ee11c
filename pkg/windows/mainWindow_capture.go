package windows

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"os"
	"sync"

	"fyne.io/fyne/v2"
	"github.com/roffe/empol/pkg/capture"
	"github.com/roffe/empol/pkg/widgets"
	"github.com/skratchdot/open-golang/open"
	"golang.design/x/clipboard"
)

var (
	clipboardOnce sync.Once
	clipboardErr  error
)

func (mw *MainWindow) setRecording(on bool) {
	if !on {
		mw.recording = false
		mw.flushRecorder()
		return
	}
	dir := mw.settings.FrameDir()
	if mw.recorder == nil || mw.recorder.Dir != dir {
		rec, err := capture.NewRecorder(dir)
		if err != nil {
			mw.buttons.recordCheck.SetChecked(false)
			mw.Error(err)
			return
		}
		mw.recorder = rec
	}
	mw.recording = true
	mw.Log("recording frames to " + dir)
}

// flushRecorder waits for queued frames off the UI thread.
func (mw *MainWindow) flushRecorder() {
	rec := mw.recorder
	if rec == nil {
		return
	}
	go func() {
		err := rec.Wait()
		fyne.Do(func() {
			if err != nil {
				mw.Error(fmt.Errorf("failed to write frames: %w", err))
				return
			}
			mw.Log(fmt.Sprintf("%d frames written to %s", mw.counters.captured, rec.Dir))
		})
	}()
}

// captureFrame queues the frame the tick just drew. With the writers
// behind the frame is skipped rather than stalling the animation.
func (mw *MainWindow) captureFrame() {
	if !mw.recording {
		return
	}
	img := mw.viewer.Capture()
	if img.Bounds().Empty() {
		return
	}
	_, err := mw.recorder.TryCapture(img)
	switch {
	case errors.Is(err, capture.ErrBusy):
		mw.counters.addDropped()
	case err != nil:
		mw.Error(err)
	default:
		mw.counters.addCaptured()
	}
}

func (mw *MainWindow) saveScreenshot() {
	dir := mw.settings.FrameDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		mw.Error(fmt.Errorf("failed to create %s: %w", dir, err))
		return
	}
	filename, err := capture.Screenshot(mw.Canvas(), dir)
	if err != nil {
		mw.Error(fmt.Errorf("failed to save screenshot: %w", err))
		return
	}
	mw.Log("saved " + filename)
}

func (mw *MainWindow) saveFrameAs() {
	img := mw.viewer.Capture()
	widgets.SaveFile(func(filename string) {
		if err := capture.WritePNG(filename, img); err != nil {
			mw.Error(fmt.Errorf("failed to save frame: %w", err))
			return
		}
		mw.Log("saved " + filename)
	}, "PNG image", "png")
}

func (mw *MainWindow) copyFrame() {
	clipboardOnce.Do(func() {
		clipboardErr = clipboard.Init()
	})
	if clipboardErr != nil {
		mw.Error(fmt.Errorf("clipboard unavailable: %w", clipboardErr))
		return
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, mw.viewer.Capture()); err != nil {
		mw.Error(fmt.Errorf("failed to encode frame: %w", err))
		return
	}
	clipboard.Write(clipboard.FmtImage, buf.Bytes())
	mw.Log("frame copied to clipboard")
}

func (mw *MainWindow) openFrameDir() {
	dir := mw.settings.FrameDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		mw.Error(err)
		return
	}
	if err := open.Run(dir); err != nil {
		mw.Error(err)
	}
}
