// Package colors holds the field palettes and the colour encodings used to
// persist them and pass them over the event bus.
package colors

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
)

type ColorBlindMode int

var SupportedColorBlindModes = [...]string{
	Normal,
	Universal,
	Protanopia,
	Tritanopia,
	Deuteranomaly,
}

const (
	Normal        = "Normal"
	Universal     = "Universal"
	Protanopia    = "Protanopia"
	Tritanopia    = "Tritanopia"
	Deuteranomaly = "Deuteranomaly"
	Unknown       = "Unknown"
)

const (
	ModeNormal        ColorBlindMode = iota // red, green, blue
	ModeUniversal                           // orange, sky blue, bluish green
	ModeProtanopia                          // blue, yellow, white
	ModeTritanopia                          // red, teal, grey
	ModeDeuteranomaly                       // blue, orange, beige
)

func (m ColorBlindMode) String() string {
	switch m {
	case ModeNormal:
		return Normal
	case ModeUniversal:
		return Universal
	case ModeProtanopia:
		return Protanopia
	case ModeTritanopia:
		return Tritanopia
	case ModeDeuteranomaly:
		return Deuteranomaly
	default:
		return Unknown
	}
}

func StringToColorBlindMode(s string) ColorBlindMode {
	for i, name := range SupportedColorBlindModes {
		if strings.EqualFold(s, name) {
			return ColorBlindMode(i)
		}
	}
	return ModeNormal
}

// Palette is the colour of each drawn field.
type Palette struct {
	Ex, Ey, Sum color.NRGBA
}

var palettes = map[ColorBlindMode]Palette{
	ModeNormal: {
		Ex:  color.NRGBA{247, 10, 10, 255},
		Ey:  color.NRGBA{6, 245, 34, 255},
		Sum: color.NRGBA{0x40, 0x90, 0xff, 0xff},
	},
	ModeUniversal: {
		Ex:  color.NRGBA{0xe6, 0x9f, 0x00, 0xff}, // #E69F00
		Ey:  color.NRGBA{0x56, 0xb4, 0xe9, 0xff}, // #56B4E9
		Sum: color.NRGBA{0x00, 0x9e, 0x73, 0xff}, // #009E73
	},
	ModeProtanopia: {
		Ex:  color.NRGBA{0x05, 0x71, 0xb0, 0xff},
		Ey:  color.NRGBA{0xf0, 0xe4, 0x42, 0xff},
		Sum: color.NRGBA{0xf7, 0xf7, 0xf7, 0xff},
	},
	ModeTritanopia: {
		Ex:  color.NRGBA{0xd7, 0x30, 0x27, 0xff},
		Ey:  color.NRGBA{0x00, 0x80, 0x80, 0xff},
		Sum: color.NRGBA{0xc0, 0xc0, 0xc0, 0xff},
	},
	ModeDeuteranomaly: {
		Ex:  color.NRGBA{0x4a, 0x90, 0xe2, 0xff},
		Ey:  color.NRGBA{0xff, 0xa5, 0x00, 0xff},
		Sum: color.NRGBA{0xf5, 0xe6, 0xb3, 0xff},
	},
}

// PaletteFor returns the palette of mode, unknown modes get the normal one.
func PaletteFor(mode ColorBlindMode) Palette {
	if p, ok := palettes[mode]; ok {
		return p
	}
	return palettes[ModeNormal]
}

// Pack encodes c as 0xRRGGBBAA in a float64, exact for every colour, so it
// can travel on the event bus.
func Pack(c color.Color) float64 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return float64(uint32(n.R)<<24 | uint32(n.G)<<16 | uint32(n.B)<<8 | uint32(n.A))
}

func Unpack(v float64) color.NRGBA {
	u := uint32(v)
	return color.NRGBA{R: uint8(u >> 24), G: uint8(u >> 16), B: uint8(u >> 8), A: uint8(u)}
}

// Hex formats c as #rrggbb, or #rrggbbaa when it is translucent.
func Hex(c color.NRGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

var ErrBadHex = errors.New("invalid hex colour")

func ParseHex(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	c := color.NRGBA{A: 0xff}
	var err error
	switch len(s) {
	case 6:
		_, err = fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B)
	case 8:
		_, err = fmt.Sscanf(s, "%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	default:
		return c, fmt.Errorf("%q: %w", s, ErrBadHex)
	}
	if err != nil {
		return c, fmt.Errorf("%q: %w", s, ErrBadHex)
	}
	return c, nil
}
