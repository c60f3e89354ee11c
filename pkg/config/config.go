package config

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Mode decides which controls the window offers.
type Mode int

const (
	// ModeSuper shows navigation and parameter controls.
	ModeSuper Mode = iota
	// ModeSimulation shows the parameter controls only.
	ModeSimulation
	// ModeExplainer shows the navigation only.
	ModeExplainer
)

var ErrUnknownMode = errors.New("unknown user mode")

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "super", "superuser", "super-user", "all":
		return ModeSuper, nil
	case "simulation", "simulation-only", "sim":
		return ModeSimulation, nil
	case "explainer", "explain", "lesson":
		return ModeExplainer, nil
	}
	return ModeSuper, fmt.Errorf("%q: %w", s, ErrUnknownMode)
}

func (m Mode) String() string {
	switch m {
	case ModeSuper:
		return "super"
	case ModeSimulation:
		return "simulation"
	case ModeExplainer:
		return "explainer"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Navigation reports whether part navigation is available.
func (m Mode) Navigation() bool { return m != ModeSimulation }

// Parameters reports whether the wave parameters can be changed.
func (m Mode) Parameters() bool { return m != ModeExplainer }

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func (m *Mode) UnmarshalYAML(n *yaml.Node) error {
	return m.UnmarshalText([]byte(n.Value))
}

type Config struct {
	Chapter   int           `yaml:"chapter"`
	Part      int           `yaml:"part"`
	Mode      Mode          `yaml:"mode"`
	Interval  time.Duration `yaml:"interval"`
	Frequency float64       `yaml:"frequency"`
	Phase     float64       `yaml:"phase"`
	FrameDir  string        `yaml:"frame_dir"`
	Record    bool          `yaml:"record"`
	AssetDir  string        `yaml:"asset_dir"`
	Debug     bool          `yaml:"debug"`
	Width     int           `yaml:"width"`
	Height    int           `yaml:"height"`
	// Frames is the number of ticks framedump renders, 0 renders a part
	// until it ends or restarts.
	Frames int `yaml:"frames"`
}

func Default() Config {
	return Config{
		Chapter:   1,
		Part:      1,
		Mode:      ModeSuper,
		Interval:  100 * time.Millisecond,
		Frequency: 1,
		FrameDir:  "frames",
		AssetDir:  "assets",
		Width:     1024,
		Height:    768,
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("error parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// RegisterFlags binds every field to fs, using the current values as the
// flag defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.Chapter, "chapter", c.Chapter, "chapter to start in")
	fs.IntVar(&c.Part, "part", c.Part, "part to start in")
	fs.TextVar(&c.Mode, "mode", c.Mode, "user mode: super, simulation or explainer")
	fs.DurationVar(&c.Interval, "interval", c.Interval, "animation tick interval")
	fs.Float64Var(&c.Frequency, "frequency", c.Frequency, "initial angular frequency in rad/s")
	fs.Float64Var(&c.Phase, "phase", c.Phase, "initial phase of E_y in rad")
	fs.StringVar(&c.FrameDir, "frames", c.FrameDir, "directory for captured frames")
	fs.BoolVar(&c.Record, "record", c.Record, "capture every rendered frame")
	fs.StringVar(&c.AssetDir, "assets", c.AssetDir, "directory holding image assets")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "write a debug.log")
	fs.IntVar(&c.Width, "width", c.Width, "viewport width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "viewport height in pixels")
	fs.IntVar(&c.Frames, "count", c.Frames, "number of frames framedump renders")
}

// Parse applies defaults, the file named by -config and then the remaining
// flags, in that order.
func Parse(name string, args []string) (Config, error) {
	cfg := Default()
	path := configArg(args)
	if path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return cfg, err
		}
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.String("config", path, "YAML configuration file")
	cfg.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// configArg finds the value of -config or --config without parsing the rest.
func configArg(args []string) string {
	for i, a := range args {
		if a == "--" {
			break
		}
		name, value, hasValue := strings.Cut(strings.TrimLeft(a, "-"), "=")
		if !strings.HasPrefix(a, "-") || name != "config" {
			continue
		}
		if hasValue {
			return value
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func (c Config) Validate() error {
	switch {
	case c.Chapter < 1 || c.Part < 1:
		return fmt.Errorf("invalid start position %d.%d", c.Chapter, c.Part)
	case c.Interval <= 0:
		return fmt.Errorf("interval %s must be positive", c.Interval)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("invalid viewport %dx%d", c.Width, c.Height)
	case math.IsNaN(c.Frequency) || math.IsInf(c.Frequency, 0):
		return fmt.Errorf("frequency %g is not a number", c.Frequency)
	case math.IsNaN(c.Phase) || math.IsInf(c.Phase, 0):
		return fmt.Errorf("phase %g is not a number", c.Phase)
	case c.Frames < 0:
		return fmt.Errorf("frame count %d is negative", c.Frames)
	}
	return nil
}
