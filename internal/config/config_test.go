package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/swipekbd/internal/app"
	"github.com/atomicstack/swipekbd/internal/layout"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "swipekbd.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Layers != layout.DefaultLayers {
		t.Fatalf("expected default layers %q, got %q", layout.DefaultLayers, cfg.App.Layers)
	}
	if cfg.App.SuggestHeight != app.DefaultSuggestHeight {
		t.Fatalf("expected suggest height %d, got %d", app.DefaultSuggestHeight, cfg.App.SuggestHeight)
	}
	if cfg.App.SwipeThreshold != app.DefaultSwipeThreshold {
		t.Fatalf("expected swipe threshold %d, got %d", app.DefaultSwipeThreshold, cfg.App.SwipeThreshold)
	}
	if !cfg.App.Trail || cfg.App.TrailFadeMS != 800 {
		t.Fatalf("expected trail enabled with 800ms fade, got %v/%d", cfg.App.Trail, cfg.App.TrailFadeMS)
	}
	if cfg.App.Suggestions != 3 || cfg.App.ContextWords != 5 {
		t.Fatalf("expected 3 suggestions and 5 context words, got %d/%d", cfg.App.Suggestions, cfg.App.ContextWords)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestLoadArgsFlagsOverrideEnv(t *testing.T) {
	env := []string{
		"SWIPEKBD_LAYERS=dialer",
		"SWIPEKBD_SUGGESTIONS=5",
		"SWIPEKBD_TRACE=1",
		"SWIPEKBD_LOG_FILE=/tmp/env.log",
	}
	cfg, err := LoadArgs([]string{"-layers", "full,dialer", "-shift-space-tab"}, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Layers != "full,dialer" {
		t.Fatalf("expected flag layers, got %q", cfg.App.Layers)
	}
	if cfg.App.Suggestions != 5 {
		t.Fatalf("expected env suggestions 5, got %d", cfg.App.Suggestions)
	}
	if !cfg.App.ShiftSpaceTab {
		t.Fatalf("expected shift-space-tab enabled")
	}
	if !cfg.Logging.Trace || cfg.Logging.FilePath != "/tmp/env.log" {
		t.Fatalf("expected env logging settings, got %#v", cfg.Logging)
	}
	if cfg.Flags["layers"] != "full,dialer" || cfg.Flags["suggestions"] != "5" {
		t.Fatalf("unexpected flags map %#v", cfg.Flags)
	}
	if len(cfg.Args) != 3 {
		t.Fatalf("expected args to be recorded, got %#v", cfg.Args)
	}
}

func TestLoadArgsInvalidEnvFallsBack(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{"SWIPEKBD_SUGGESTIONS=lots", "SWIPEKBD_TRAIL=maybe"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Suggestions != 3 {
		t.Fatalf("expected fallback suggestions 3, got %d", cfg.App.Suggestions)
	}
	if !cfg.App.Trail {
		t.Fatalf("expected fallback trail enabled")
	}
}

func TestLoadArgsConfigFileLayering(t *testing.T) {
	path := writeConfig(t, `
layers = "full,special,dialer"
suggestions = 4
swipe_threshold = 3
dictionary = "/usr/share/dict/words"
print_intersect = true

[trail]
enabled = false

[logging]
trace = true
`)
	cfg, err := LoadArgs([]string{"--config", path, "-suggestions", "2"}, []string{"SWIPEKBD_SWIPE_THRESHOLD=6"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.File != path {
		t.Fatalf("expected file %q, got %q", path, cfg.File)
	}
	if cfg.App.Layers != "full,special,dialer" {
		t.Fatalf("expected file layers, got %q", cfg.App.Layers)
	}
	if cfg.App.Suggestions != 2 {
		t.Fatalf("expected flag to beat file, got %d", cfg.App.Suggestions)
	}
	if cfg.App.SwipeThreshold != 6 {
		t.Fatalf("expected env to beat file, got %d", cfg.App.SwipeThreshold)
	}
	if cfg.App.Trail {
		t.Fatalf("expected file to disable trail")
	}
	if cfg.App.TrailFadeMS != 800 {
		t.Fatalf("expected unset key to keep default fade, got %d", cfg.App.TrailFadeMS)
	}
	if !cfg.App.PrintIntersect || cfg.Flags["printIntersect"] != "true" {
		t.Fatalf("expected print-intersect from file, got %#v", cfg.App)
	}
	if cfg.App.DictionaryPath != "/usr/share/dict/words" || !cfg.Logging.Trace {
		t.Fatalf("expected dictionary and trace from file, got %#v / %#v", cfg.App, cfg.Logging)
	}
}

func TestLoadArgsConfigFromEnv(t *testing.T) {
	path := writeConfig(t, "context_words = 9\n")
	cfg, err := LoadArgs([]string{"-config=" + path}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.ContextWords != 9 {
		t.Fatalf("expected context words 9, got %d", cfg.App.ContextWords)
	}

	cfg, err = LoadArgs(nil, []string{"SWIPEKBD_CONFIG=" + path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.ContextWords != 9 || cfg.File != path {
		t.Fatalf("expected env-selected file, got %d from %q", cfg.App.ContextWords, cfg.File)
	}
}

func TestLoadArgsRejectsUnknownFileKeys(t *testing.T) {
	path := writeConfig(t, "layer = \"full\"\n")
	_, err := LoadArgs([]string{"-config", path}, nil)
	if err == nil || !strings.Contains(err.Error(), "unknown keys layer") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestLoadArgsRejectsBrokenFile(t *testing.T) {
	path := writeConfig(t, "layers = [\n")
	if _, err := LoadArgs([]string{"-config", path}, nil); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := LoadArgs([]string{"-config", filepath.Join(t.TempDir(), "missing.toml")}, nil); err == nil {
		t.Fatalf("expected missing file error")
	}
}

func TestLoadArgsRejectsUnknownFlag(t *testing.T) {
	if _, err := LoadArgs([]string{"-socket", "x"}, nil); err == nil {
		t.Fatalf("expected unknown flag error")
	}
}

func TestValidate(t *testing.T) {
	base, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative suggest height", func(c *Config) { c.App.SuggestHeight = -1 }},
		{"no suggestions", func(c *Config) { c.App.Suggestions = 0 }},
		{"context words too large", func(c *Config) { c.App.ContextWords = 65 }},
		{"context words zero", func(c *Config) { c.App.ContextWords = 0 }},
		{"zero swipe threshold", func(c *Config) { c.App.SwipeThreshold = 0 }},
		{"negative fade", func(c *Config) { c.App.TrailFadeMS = -5 }},
	}
	for _, tc := range cases {
		cfg := base
		tc.mutate(&cfg)
		if err := Validate(cfg); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
	cfg := base
	cfg.App.SuggestHeight = 0
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected zero suggest height to be allowed, got %v", err)
	}
}

func TestLoadArgsListLayouts(t *testing.T) {
	cfg, err := LoadArgs([]string{"-list-layouts"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Features.ListLayouts {
		t.Fatalf("expected list-layouts feature")
	}
}

func TestLoadArgsPrintIntersect(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{"SWIPEKBD_PRINT_INTERSECT=1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.App.PrintIntersect {
		t.Fatalf("expected print-intersect from env")
	}
	cfg, err = LoadArgs([]string{"-print-intersect=false"}, []string{"SWIPEKBD_PRINT_INTERSECT=1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.PrintIntersect {
		t.Fatalf("expected flag to disable print-intersect")
	}
}
