package assets

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jellydator/ttlcache/v3"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Loader turns an image reference into a decoded raster that fits inside
// width x height with its aspect ratio kept.
type Loader interface {
	Load(ref string, width, height int) (image.Image, error)
}

type Options struct {
	// Dir is searched for relative references, empty means the working
	// directory.
	Dir string
	// TTL of decoded images, zero keeps them for the process lifetime.
	TTL      time.Duration
	Capacity uint64
	// TextColor is used for text references.
	TextColor color.Color
}

type sizeKey struct {
	ref  string
	w, h int
}

// Store is the default Loader. Decoded sources and scaled results are cached
// separately so a resize only pays for the scale.
type Store struct {
	dir       string
	textColor color.Color
	sources   *ttlcache.Cache[string, image.Image]
	scaled    *ttlcache.Cache[sizeKey, image.Image]
}

func NewStore(opts Options) *Store {
	ttl := opts.TTL
	if ttl == 0 {
		ttl = ttlcache.NoTTL
	}
	capacity := opts.Capacity
	if capacity == 0 {
		capacity = 128
	}
	textColor := opts.TextColor
	if textColor == nil {
		textColor = color.White
	}
	return &Store{
		dir:       opts.Dir,
		textColor: textColor,
		sources: ttlcache.New[string, image.Image](
			ttlcache.WithTTL[string, image.Image](ttl),
			ttlcache.WithCapacity[string, image.Image](capacity),
		),
		scaled: ttlcache.New[sizeKey, image.Image](
			ttlcache.WithTTL[sizeKey, image.Image](ttl),
			ttlcache.WithCapacity[sizeKey, image.Image](capacity),
		),
	}
}

func (s *Store) Load(ref string, width, height int) (image.Image, error) {
	if ref == "" {
		return nil, errors.New("empty image reference")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%s: invalid target size %dx%d", ref, width, height)
	}
	key := sizeKey{ref, width, height}
	if item := s.scaled.Get(key); item != nil {
		return item.Value(), nil
	}
	src, err := s.source(ref, height)
	if err != nil {
		return nil, err
	}
	img := Fit(src, width, height)
	s.scaled.Set(key, img, ttlcache.DefaultTTL)
	return img, nil
}

// Purge drops every cached image.
func (s *Store) Purge() {
	s.sources.DeleteAll()
	s.scaled.DeleteAll()
}

func (s *Store) source(ref string, height int) (image.Image, error) {
	if text, ok := strings.CutPrefix(ref, TextPrefix); ok {
		// text is rasterised at the requested height, no need to cache the source
		return RenderText(text, height, s.textColor)
	}
	if item := s.sources.Get(ref); item != nil {
		return item.Value(), nil
	}
	img, err := s.decode(ref)
	if err != nil {
		return nil, err
	}
	s.sources.Set(ref, img, ttlcache.DefaultTTL)
	return img, nil
}

func (s *Store) decode(ref string) (image.Image, error) {
	path := ref
	if !filepath.IsAbs(path) && s.dir != "" {
		path = filepath.Join(s.dir, path)
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("image %q: %w", ref, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("image %q: %w", ref, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", ref, err)
	}
	return img, nil
}

// Fit scales src to the largest size inside width x height that keeps the
// aspect ratio.
func Fit(src image.Image, width, height int) image.Image {
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	scale := math.Min(float64(width)/float64(b.Dx()), float64(height)/float64(b.Dy()))
	w := max(1, int(math.Round(float64(b.Dx())*scale)))
	h := max(1, int(math.Round(float64(b.Dy())*scale)))
	if w == b.Dx() && h == b.Dy() {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
