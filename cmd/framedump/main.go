// Command framedump renders one lesson part offline and writes every tick
// as a numbered PNG.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/roffe/empol/pkg/assets"
	"github.com/roffe/empol/pkg/capture"
	"github.com/roffe/empol/pkg/clock"
	"github.com/roffe/empol/pkg/config"
	"github.com/roffe/empol/pkg/debug"
	"github.com/roffe/empol/pkg/lesson"
	"github.com/roffe/empol/pkg/lesson/parts"
	"github.com/roffe/empol/pkg/params"
	"github.com/roffe/empol/pkg/render"
)

// maxFrames bounds a run without -count for parts that never restart.
const maxFrames = 600

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile | log.Lmicroseconds)
}

func main() {
	cfg, err := config.Parse("framedump", os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}
	if cfg.Debug {
		if err := debug.Enable("debug.log"); err != nil {
			log.Println(err)
		}
		defer debug.Close()
	}
	n, err := run(cfg)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %d frames to %s", n, cfg.FrameDir)
}

// view places the camera directly, there is nothing to ease towards offline.
type view struct {
	cam render.Camera
}

func (v *view) SetCamera(distance, elevation, azimuth float64) {
	v.cam.Distance, v.cam.Elevation, v.cam.Azimuth = distance, elevation, azimuth
}

func (v *view) SetTitle(title string) { log.Println(title) }

func (v *view) SetControlEnabled(lesson.Control, bool) {}

func (v *view) Redraw() {}

// idle never ticks, the loop below steps the clock by hand.
func idle(time.Duration) (<-chan time.Time, func()) {
	return nil, func() {}
}

func run(cfg config.Config) (int, error) {
	rec, err := capture.NewRecorder(cfg.FrameDir)
	if err != nil {
		return 0, err
	}

	v := &view{cam: render.DefaultCamera()}
	stage, err := lesson.NewStage(assets.NewStore(assets.Options{Dir: cfg.AssetDir}), v)
	if err != nil {
		return 0, err
	}
	renderer := render.NewRenderer()
	renderer.Basis = stage.Graph.World(stage.Axes.Node())

	p := params.Default()
	p.Frequency, p.Phase = cfg.Frequency, cfg.Phase
	store := params.NewStore(p)

	var written int
	var captureErr error
	m := lesson.NewMachine(parts.Catalog(), stage, store, lesson.Config{
		Interval:     cfg.Interval,
		ClockOptions: []clock.Option{clock.WithTicker(idle)},
		OnTick: func(_ lesson.Key, _ float64) {
			img := renderer.Render(stage.Graph, v.cam, cfg.Width, cfg.Height)
			if _, err := rec.Capture(img); err != nil && captureErr == nil {
				captureErr = err
			}
			written++
		},
	})
	defer m.Stop()

	if err := m.TransitionTo(lesson.Key{Chapter: cfg.Chapter, Part: cfg.Part}); err != nil {
		return 0, err
	}

	limit := cfg.Frames
	if limit == 0 {
		limit = maxFrames
	}
	for written < limit && captureErr == nil {
		clk := m.Clock()
		if clk == nil || !clk.Step() {
			break
		}
		// a part that restarts itself has shown everything once
		if cfg.Frames == 0 && m.Clock() != clk {
			break
		}
	}
	if err := rec.Wait(); err != nil {
		return written, fmt.Errorf("failed to write frames: %w", err)
	}
	return written, captureErr
}
