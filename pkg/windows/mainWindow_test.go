package windows

import (
	"os"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/roffe/empol/pkg/config"
	"github.com/roffe/empol/pkg/lesson"
)

func newTestWindow(t *testing.T, mode config.Mode) *MainWindow {
	t.Helper()
	cfg := config.Default()
	cfg.Mode = mode
	// no ticks during the test, the machine is driven by hand
	cfg.Interval = time.Hour
	cfg.FrameDir = t.TempDir()
	mw, err := NewMainWindow(test.NewTempApp(t), cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(mw.closeIntercept)
	return mw
}

func TestNavigationButtons(t *testing.T) {
	mw := newTestWindow(t, config.ModeSuper)
	if got := mw.machine.Key(); got != (lesson.Key{Chapter: 1, Part: 1}) {
		t.Fatalf("started at %s", got)
	}
	if !mw.buttons.prevBtn.Disabled() || !mw.buttons.prevChapterBtn.Disabled() {
		t.Error("previous buttons enabled on the first part")
	}

	test.Tap(mw.buttons.nextBtn)
	if got := mw.machine.Key(); got != (lesson.Key{Chapter: 1, Part: 2}) {
		t.Errorf("after next at %s, want 1.2", got)
	}
	if mw.buttons.prevBtn.Disabled() {
		t.Error("previous disabled after next")
	}

	test.Tap(mw.buttons.nextChapterBtn)
	if got := mw.machine.Key(); got != (lesson.Key{Chapter: 2, Part: 1}) {
		t.Errorf("after next chapter at %s, want 2.1", got)
	}
	if !mw.buttons.nextChapterBtn.Disabled() {
		t.Error("next chapter enabled in the last chapter")
	}
	if mw.Title() != mw.machine.Title(mw.machine.Key()) {
		t.Errorf("title = %q", mw.Title())
	}
}

func TestPauseButton(t *testing.T) {
	mw := newTestWindow(t, config.ModeSuper)
	test.Tap(mw.buttons.pauseBtn)
	if !mw.machine.Paused() || mw.buttons.pauseBtn.Text != "Resume" {
		t.Errorf("paused=%v text=%q", mw.machine.Paused(), mw.buttons.pauseBtn.Text)
	}
	test.Tap(mw.buttons.restartBtn)
	if mw.machine.Paused() || mw.buttons.pauseBtn.Text != "Pause" {
		t.Errorf("after restart paused=%v text=%q", mw.machine.Paused(), mw.buttons.pauseBtn.Text)
	}
}

func TestModes(t *testing.T) {
	tests := []struct {
		mode       config.Mode
		nav, param bool
	}{
		{config.ModeSuper, true, true},
		{config.ModeSimulation, false, true},
		{config.ModeExplainer, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			mw := newTestWindow(t, tt.mode)
			if got := mw.buttons.nextBtn.Visible(); got != tt.nav {
				t.Errorf("navigation visible = %v", got)
			}
			if got := mw.controls.parameters.Visible(); got != tt.param {
				t.Errorf("parameters visible = %v", got)
			}
		})
	}
}

func TestPartDisablesPhase(t *testing.T) {
	mw := newTestWindow(t, config.ModeSuper)
	if err := mw.machine.TransitionTo(lesson.Key{Chapter: 2, Part: 2}); err != nil {
		t.Fatal(err)
	}
	if !mw.controls.phaseSlider.Disabled() {
		t.Error("phase slider enabled during circular polarization")
	}
	for _, b := range mw.controls.presets {
		if !b.Disabled() {
			t.Errorf("preset %q enabled", b.Text)
		}
	}
	if err := mw.machine.Prev(); err != nil {
		t.Fatal(err)
	}
	if mw.controls.phaseSlider.Disabled() {
		t.Error("phase slider not restored")
	}
}

func TestRecordOneFramePerTick(t *testing.T) {
	mw := newTestWindow(t, config.ModeSuper)
	mw.buttons.recordCheck.SetChecked(true)
	if !mw.recording || mw.recorder == nil {
		t.Fatal("recording not started")
	}
	// redraws outside a tick are not recorded
	mw.viewer.Resize(mw.viewer.MinSize())
	mw.viewer.Redraw()
	mw.viewer.JumpCamera(mw.viewer.Target())
	if mw.counters.captured != 0 {
		t.Fatalf("captured %d frames without a tick", mw.counters.captured)
	}

	const ticks = 4
	for range ticks {
		if !mw.machine.Clock().Step() {
			t.Fatal("clock not running")
		}
	}
	if got := mw.counters.captured + mw.counters.dropped; got != ticks {
		t.Errorf("captured %d + dropped %d, want %d ticks", mw.counters.captured, mw.counters.dropped, ticks)
	}
	if err := mw.recorder.Wait(); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(mw.settings.FrameDir())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != mw.counters.captured {
		t.Errorf("%d files for %d captured frames", len(entries), mw.counters.captured)
	}
	mw.buttons.recordCheck.SetChecked(false)
	if mw.recording {
		t.Error("still recording after uncheck")
	}
}

func TestParameterChangeRestarts(t *testing.T) {
	mw := newTestWindow(t, config.ModeSuper)
	clk := mw.machine.Clock()
	clk.Step()
	clk.Step()
	test.Tap(mw.buttons.pauseBtn)

	if err := mw.store.SetFrequency(2.5); err != nil {
		t.Fatal(err)
	}
	got := mw.machine.Clock()
	if got == clk || got.Elapsed() != 0 {
		t.Fatalf("clock not restarted: same=%v elapsed=%.1f", got == clk, got.Elapsed())
	}
	if mw.machine.Paused() || mw.buttons.pauseBtn.Text != "Pause" {
		t.Errorf("after change paused=%v text=%q", mw.machine.Paused(), mw.buttons.pauseBtn.Text)
	}
}
