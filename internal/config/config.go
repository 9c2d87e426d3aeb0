package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/atomicstack/swipekbd/internal/app"
	"github.com/atomicstack/swipekbd/internal/keyboard"
	"github.com/atomicstack/swipekbd/internal/layout"
	"github.com/atomicstack/swipekbd/internal/state"
	"github.com/atomicstack/swipekbd/internal/suggest"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	// File is the TOML file the configuration was layered on, if any.
	File  string
	Flags map[string]string
	Args  []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	// ListLayouts prints the built-in layouts and exits.
	ListLayouts bool
}

const (
	envConfig          = "SWIPEKBD_CONFIG"
	envLayers          = "SWIPEKBD_LAYERS"
	envLandscapeLayers = "SWIPEKBD_LANDSCAPE_LAYERS"
	envLandscape       = "SWIPEKBD_LANDSCAPE"
	envSuggestHeight   = "SWIPEKBD_SUGGEST_HEIGHT"
	envSuggestions     = "SWIPEKBD_SUGGESTIONS"
	envContextWords    = "SWIPEKBD_CONTEXT_WORDS"
	envSwipeThreshold  = "SWIPEKBD_SWIPE_THRESHOLD"
	envDictionary      = "SWIPEKBD_DICTIONARY"
	envAsyncPredict    = "SWIPEKBD_ASYNC_PREDICT"
	envShiftSpaceTab   = "SWIPEKBD_SHIFT_SPACE_TAB"
	envTrail           = "SWIPEKBD_TRAIL"
	envTrailFade       = "SWIPEKBD_TRAIL_FADE_MS"
	envPrint           = "SWIPEKBD_PRINT"
	envPrintIntersect  = "SWIPEKBD_PRINT_INTERSECT"
	envTrace           = "SWIPEKBD_TRACE"
	envLogFile         = "SWIPEKBD_LOG_FILE"
)

// fileConfig mirrors the TOML configuration file. Keys absent from the file
// keep their built-in defaults.
type fileConfig struct {
	Layers          string      `toml:"layers"`
	LandscapeLayers string      `toml:"landscape_layers"`
	Landscape       bool        `toml:"landscape"`
	SuggestHeight   int         `toml:"suggest_height"`
	Suggestions     int         `toml:"suggestions"`
	ContextWords    int         `toml:"context_words"`
	SwipeThreshold  int         `toml:"swipe_threshold"`
	Dictionary      string      `toml:"dictionary"`
	AsyncPredict    bool        `toml:"async_predict"`
	ShiftSpaceTab   bool        `toml:"shift_space_tab"`
	Trail           trailConfig `toml:"trail"`
	Print           string      `toml:"print"`
	PrintIntersect  bool        `toml:"print_intersect"`
	Logging         fileLogging `toml:"logging"`
}

type trailConfig struct {
	Enabled bool `toml:"enabled"`
	FadeMS  int  `toml:"fade_ms"`
}

type fileLogging struct {
	File  string `toml:"file"`
	Trace bool   `toml:"trace"`
}

func defaults() fileConfig {
	return fileConfig{
		Layers:         layout.DefaultLayers,
		SuggestHeight:  app.DefaultSuggestHeight,
		Suggestions:    suggest.DefaultVisible,
		ContextWords:   state.DefaultContextWords,
		SwipeThreshold: app.DefaultSwipeThreshold,
		Trail: trailConfig{
			Enabled: true,
			FadeMS:  keyboard.DefaultTrailFade,
		},
	}
}

// Load parses configuration from CLI arguments, environment variables and
// the optional configuration file.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	file := defaults()
	path := configPath(args, env)
	if path != "" {
		if err := decodeFile(path, &file); err != nil {
			return Config{}, err
		}
	}

	fs := flag.NewFlagSet("swipekbd", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	fs.String("config", path, "path to a TOML configuration file")
	layers := fs.String("layers", envOrDefault(env, envLayers, file.Layers), "comma separated list of layers")
	landscapeLayers := fs.String("landscape-layers", envOrDefault(env, envLandscapeLayers, file.LandscapeLayers), "comma separated list of layers used in landscape mode")
	landscape := fs.Bool("landscape", envOrBool(env, envLandscape, file.Landscape), "start in landscape mode")
	suggestHeight := fs.Int("suggest-height", envOrInt(env, envSuggestHeight, file.SuggestHeight), "suggestion bar height in rows (0 disables the bar)")
	suggestions := fs.Int("suggestions", envOrInt(env, envSuggestions, file.Suggestions), "number of word suggestions to show")
	contextWords := fs.Int("context-words", envOrInt(env, envContextWords, file.ContextWords), "number of committed words remembered for next-word prediction")
	swipeThreshold := fs.Int("swipe-threshold", envOrInt(env, envSwipeThreshold, file.SwipeThreshold), "movement in cells before a tap becomes a swipe")
	dictionary := fs.String("dictionary", envOrDefault(env, envDictionary, file.Dictionary), "word list to load and watch for changes (built-in list when empty)")
	asyncPredict := fs.Bool("async-predict", envOrBool(env, envAsyncPredict, file.AsyncPredict), "run predictions on a background worker")
	shiftSpaceTab := fs.Bool("shift-space-tab", envOrBool(env, envShiftSpaceTab, file.ShiftSpaceTab), "type tab for shift+space")
	trail := fs.Bool("trail", envOrBool(env, envTrail, file.Trail.Enabled), "draw a trail along swipes")
	trailFade := fs.Int("trail-fade-ms", envOrInt(env, envTrailFade, file.Trail.FadeMS), "swipe trail fade time in milliseconds (0 disables fading)")
	printPath := fs.String("print", envOrDefault(env, envPrint, file.Print), "write pressed key labels to this file (- for stderr)")
	printIntersect := fs.Bool("print-intersect", envOrBool(env, envPrintIntersect, file.PrintIntersect), "highlight and print every key a drag crosses, one line per drag")
	trace := fs.Bool("trace", envOrBool(env, envTrace, file.Logging.Trace), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, file.Logging.File), "path to the log file")
	listLayouts := fs.Bool("list-layouts", false, "print the built-in layouts and keymaps, then exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			Layers:          *layers,
			LandscapeLayers: *landscapeLayers,
			Landscape:       *landscape,
			SuggestHeight:   *suggestHeight,
			Suggestions:     *suggestions,
			ContextWords:    *contextWords,
			SwipeThreshold:  *swipeThreshold,
			DictionaryPath:  *dictionary,
			AsyncPredict:    *asyncPredict,
			ShiftSpaceTab:   *shiftSpaceTab,
			Trail:           *trail,
			TrailFadeMS:     *trailFade,
			PrintPath:       *printPath,
			PrintIntersect:  *printIntersect,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			ListLayouts: *listLayouts,
		},
		File: path,
		Flags: map[string]string{
			"layers":          *layers,
			"landscapeLayers": *landscapeLayers,
			"landscape":       strconv.FormatBool(*landscape),
			"suggestHeight":   strconv.Itoa(*suggestHeight),
			"suggestions":     strconv.Itoa(*suggestions),
			"contextWords":    strconv.Itoa(*contextWords),
			"swipeThreshold":  strconv.Itoa(*swipeThreshold),
			"dictionary":      *dictionary,
			"asyncPredict":    strconv.FormatBool(*asyncPredict),
			"shiftSpaceTab":   strconv.FormatBool(*shiftSpaceTab),
			"trail":           strconv.FormatBool(*trail),
			"trailFadeMS":     strconv.Itoa(*trailFade),
			"print":           *printPath,
			"printIntersect":  strconv.FormatBool(*printIntersect),
			"trace":           strconv.FormatBool(*trace),
			"logFile":         *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func decodeFile(path string, file *fileConfig) error {
	md, err := toml.DecodeFile(path, file)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("read config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// configPath finds the configuration file before the flag set is built, so
// the file can supply the flag defaults.
func configPath(args []string, env map[string]string) string {
	path := envOrDefault(env, envConfig, "")
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		name := strings.TrimLeft(arg, "-")
		if name == arg {
			continue
		}
		if value, ok := strings.CutPrefix(name, "config="); ok {
			path = value
			continue
		}
		if name == "config" && i+1 < len(args) {
			path = args[i+1]
			i++
		}
	}
	return path
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate range-checks numeric options. Layer and keymap names are checked
// later against the layout registry, which owns their exit statuses.
func Validate(cfg Config) error {
	a := cfg.App
	if a.SuggestHeight < 0 {
		return fmt.Errorf("suggest-height must be >= 0 (got %d)", a.SuggestHeight)
	}
	if a.Suggestions < 1 {
		return fmt.Errorf("suggestions must be >= 1 (got %d)", a.Suggestions)
	}
	if a.ContextWords < 1 || a.ContextWords > state.MaxContextWords {
		return fmt.Errorf("context-words must be between 1 and %d (got %d)", state.MaxContextWords, a.ContextWords)
	}
	if a.SwipeThreshold < 1 {
		return fmt.Errorf("swipe-threshold must be >= 1 (got %d)", a.SwipeThreshold)
	}
	if a.TrailFadeMS < 0 {
		return fmt.Errorf("trail-fade-ms must be >= 0 (got %d)", a.TrailFadeMS)
	}
	return nil
}
