package capture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"github.com/avast/retry-go/v4"
	"golang.org/x/sync/errgroup"
)

// frames numbers every frame written by any Recorder in the process, it is
// never reset so consecutive parts keep extending one sequence.
var frames atomic.Uint64

// NextFrame reserves the next frame number.
func NextFrame() uint64 { return frames.Add(1) - 1 }

// FrameName is the file name of frame n.
func FrameName(n uint64) string { return fmt.Sprintf("frame_%d.png", n) }

// ErrBusy is returned by TryCapture while the write queue is full.
var ErrBusy = errors.New("capture: write queue full")

// Recorder writes numbered PNG frames to Dir in the background. Frames are
// queued by a single caller, normally the UI thread.
type Recorder struct {
	Dir string

	mu    sync.Mutex
	queue chan frame
	errg  *errgroup.Group

	errMu sync.Mutex
	first error
}

type frame struct {
	path string
	img  image.Image
}

const (
	maxEncoders = 2
	queueSize   = 32
)

func NewRecorder(dir string) (*Recorder, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("frame dir: %w", err)
	}
	return &Recorder{Dir: dir}, nil
}

// start returns the queue, spawning the encoders on first use. r.mu must be
// held.
func (r *Recorder) start() chan frame {
	if r.queue != nil {
		return r.queue
	}
	q := make(chan frame, queueSize)
	g := new(errgroup.Group)
	for range maxEncoders {
		g.Go(func() error {
			var failed error
			for f := range q {
				if err := WritePNG(f.path, f.img); err != nil {
					log.Printf("capture %s: %v", f.path, err)
					r.fail(err)
					failed = err
				}
			}
			return failed
		})
	}
	r.queue, r.errg = q, g
	return q
}

func (r *Recorder) fail(err error) {
	r.errMu.Lock()
	defer r.errMu.Unlock()
	if r.first == nil {
		r.first = err
	}
}

// Capture queues img for writing and returns the path it will land at. The
// image must not be modified afterwards. Capture blocks while the queue is
// full.
func (r *Recorder) Capture(img image.Image) (string, error) {
	return r.enqueue(img, true)
}

// TryCapture is Capture without blocking. With a full queue the frame is
// not numbered and ErrBusy is returned.
func (r *Recorder) TryCapture(img image.Image) (string, error) {
	return r.enqueue(img, false)
}

func (r *Recorder) enqueue(img image.Image, block bool) (string, error) {
	if img == nil {
		return "", errors.New("capture: nil image")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	q := r.start()
	if !block && len(q) == cap(q) {
		return "", ErrBusy
	}
	path := filepath.Join(r.Dir, FrameName(NextFrame()))
	q <- frame{path: path, img: img}
	return path, nil
}

// Pending is the number of queued frames not yet picked up by an encoder.
func (r *Recorder) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queue)
}

// Wait blocks until all queued frames are written and returns the first
// error. The recorder can be used again afterwards.
func (r *Recorder) Wait() error {
	r.mu.Lock()
	q, g := r.queue, r.errg
	r.queue, r.errg = nil, nil
	r.mu.Unlock()
	if q != nil {
		close(q)
		g.Wait()
	}
	r.errMu.Lock()
	defer r.errMu.Unlock()
	err := r.first
	r.first = nil
	return err
}

// WritePNG encodes img and writes it to path, retrying transient write
// failures.
func WritePNG(path string, img image.Image) error {
	buff := bytes.NewBuffer(nil)
	if err := png.Encode(buff, img); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return retry.Do(func() error {
		return os.WriteFile(path, buff.Bytes(), 0o644)
	},
		retry.Attempts(3),
		retry.Delay(50*time.Millisecond),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, os.ErrNotExist) && !errors.Is(err, os.ErrPermission)
		}),
	)
}

// Screenshot saves the whole window to dir and returns the file path.
func Screenshot(c fyne.Canvas, dir string) (string, error) {
	img := c.Capture()
	filename := filepath.Join(dir, fmt.Sprintf("capture-%s.png", time.Now().Format("2006-01-02-15-04-05")))
	if err := WritePNG(filename, img); err != nil {
		return "", err
	}
	return filename, nil
}
