package lesson

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownPart        = errors.New("unknown part")
	ErrNavigationDisabled = errors.New("navigation disabled")
	ErrNoActivePart       = errors.New("no active part")
)

// Key identifies a part, both indices start at 1.
type Key struct {
	Chapter int
	Part    int
}

func (k Key) String() string { return fmt.Sprintf("%d.%d", k.Chapter, k.Part) }

type Factory func() Part

type Entry struct {
	Title string
	New   Factory
}

type Chapter struct {
	Title string
	Parts []Entry
}

// Catalog is the fixed outline of the lesson.
type Catalog struct {
	chapters []Chapter
}

func NewCatalog(chapters ...Chapter) *Catalog {
	return &Catalog{chapters: chapters}
}

func (c *Catalog) Lookup(k Key) (Entry, error) {
	if k.Chapter < 1 || k.Chapter > len(c.chapters) {
		return Entry{}, fmt.Errorf("chapter %d: %w", k.Chapter, ErrUnknownPart)
	}
	parts := c.chapters[k.Chapter-1].Parts
	if k.Part < 1 || k.Part > len(parts) || parts[k.Part-1].New == nil {
		return Entry{}, fmt.Errorf("part %s: %w", k, ErrUnknownPart)
	}
	return parts[k.Part-1], nil
}

func (c *Catalog) Has(k Key) bool {
	_, err := c.Lookup(k)
	return err == nil
}

func (c *Catalog) Chapters() int { return len(c.chapters) }

// Parts returns the number of parts in chapter, 0 for unknown chapters.
func (c *Catalog) Parts(chapter int) int {
	if chapter < 1 || chapter > len(c.chapters) {
		return 0
	}
	return len(c.chapters[chapter-1].Parts)
}

func (c *Catalog) ChapterTitle(chapter int) string {
	if chapter < 1 || chapter > len(c.chapters) {
		return ""
	}
	return c.chapters[chapter-1].Title
}

func (c *Catalog) First() Key { return Key{Chapter: 1, Part: 1} }

// Keys lists every part in lesson order.
func (c *Catalog) Keys() []Key {
	var keys []Key
	for ch, chapter := range c.chapters {
		for p := range chapter.Parts {
			keys = append(keys, Key{Chapter: ch + 1, Part: p + 1})
		}
	}
	return keys
}

// Next returns the part after k, moving on to the first part of the next
// chapter after the last part. ok is false at the end of the lesson.
func (c *Catalog) Next(k Key) (Key, bool) {
	if !c.Has(k) {
		return k, false
	}
	if k.Part < c.Parts(k.Chapter) {
		return Key{k.Chapter, k.Part + 1}, true
	}
	for ch := k.Chapter + 1; ch <= len(c.chapters); ch++ {
		if c.Parts(ch) > 0 {
			return Key{ch, 1}, true
		}
	}
	return k, false
}

// Prev returns the part before k, moving back to the last part of the
// previous chapter before the first part. ok is false at the start.
func (c *Catalog) Prev(k Key) (Key, bool) {
	if !c.Has(k) {
		return k, false
	}
	if k.Part > 1 {
		return Key{k.Chapter, k.Part - 1}, true
	}
	for ch := k.Chapter - 1; ch >= 1; ch-- {
		if n := c.Parts(ch); n > 0 {
			return Key{ch, n}, true
		}
	}
	return k, false
}

// NextChapter returns the first part of the following chapter.
func (c *Catalog) NextChapter(k Key) (Key, bool) {
	for ch := k.Chapter + 1; ch <= len(c.chapters); ch++ {
		if c.Parts(ch) > 0 {
			return Key{ch, 1}, true
		}
	}
	return k, false
}

// PrevChapter returns the first part of the preceding chapter.
func (c *Catalog) PrevChapter(k Key) (Key, bool) {
	for ch := k.Chapter - 1; ch >= 1; ch-- {
		if c.Parts(ch) > 0 {
			return Key{ch, 1}, true
		}
	}
	return k, false
}
