package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/roffe/empol/pkg/config"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want config.Mode
		err  bool
	}{
		{"super", config.ModeSuper, false},
		{"Super-User", config.ModeSuper, false},
		{"simulation", config.ModeSimulation, false},
		{"sim", config.ModeSimulation, false},
		{" explainer ", config.ModeExplainer, false},
		{"lesson", config.ModeExplainer, false},
		{"admin", config.ModeSuper, true},
		{"", config.ModeSuper, true},
	}
	for _, tt := range tests {
		got, err := config.ParseMode(tt.in)
		if (err != nil) != tt.err {
			t.Errorf("ParseMode(%q) err = %v", tt.in, err)
			continue
		}
		if err != nil && !errors.Is(err, config.ErrUnknownMode) {
			t.Errorf("ParseMode(%q) err = %v, want ErrUnknownMode", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestModeGates(t *testing.T) {
	tests := []struct {
		mode       config.Mode
		nav, param bool
	}{
		{config.ModeSuper, true, true},
		{config.ModeSimulation, false, true},
		{config.ModeExplainer, true, false},
	}
	for _, tt := range tests {
		if tt.mode.Navigation() != tt.nav || tt.mode.Parameters() != tt.param {
			t.Errorf("%s: navigation=%v parameters=%v", tt.mode, tt.mode.Navigation(), tt.mode.Parameters())
		}
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "empol.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `
chapter: 2
part: 3
mode: explainer
interval: 50ms
frequency: 2.5
frame_dir: out
`)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Chapter != 2 || cfg.Part != 3 {
		t.Errorf("position = %d.%d, want 2.3", cfg.Chapter, cfg.Part)
	}
	if cfg.Mode != config.ModeExplainer {
		t.Errorf("mode = %s", cfg.Mode)
	}
	if cfg.Interval != 50*time.Millisecond {
		t.Errorf("interval = %s", cfg.Interval)
	}
	if cfg.Frequency != 2.5 || cfg.FrameDir != "out" {
		t.Errorf("frequency = %g frame dir = %q", cfg.Frequency, cfg.FrameDir)
	}
	// untouched fields keep their defaults
	if cfg.Width != 1024 || cfg.AssetDir != "assets" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadBadMode(t *testing.T) {
	if _, err := config.Load(writeFile(t, "mode: admin\n")); !errors.Is(err, config.ErrUnknownMode) {
		t.Errorf("err = %v, want ErrUnknownMode", err)
	}
}

func TestParseOrder(t *testing.T) {
	path := writeFile(t, "chapter: 2\npart: 2\nmode: simulation\n")
	tests := []struct {
		name string
		args []string
		want config.Config
	}{
		{"defaults", nil, config.Default()},
		{"file", []string{"-config", path}, func() config.Config {
			c := config.Default()
			c.Chapter, c.Part, c.Mode = 2, 2, config.ModeSimulation
			return c
		}()},
		{"flags override file", []string{"--config=" + path, "-part", "4", "-mode", "explainer"}, func() config.Config {
			c := config.Default()
			c.Chapter, c.Part, c.Mode = 2, 4, config.ModeExplainer
			return c
		}()},
		{"flag before config", []string{"-record", "-config", path}, func() config.Config {
			c := config.Default()
			c.Chapter, c.Part, c.Mode, c.Record = 2, 2, config.ModeSimulation, true
			return c
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := config.Parse("empol", tt.args)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %+v\nwant %+v", got, tt.want)
			}
		})
	}
}

func TestParseRejects(t *testing.T) {
	for _, args := range [][]string{
		{"-mode", "root"},
		{"-chapter", "0"},
		{"-interval", "0s"},
		{"-width", "-1"},
	} {
		if _, err := config.Parse("empol", args); err == nil {
			t.Errorf("Parse(%v) accepted", args)
		}
	}
}
