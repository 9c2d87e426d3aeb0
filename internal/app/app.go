package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/swipekbd/internal/backend"
	"github.com/atomicstack/swipekbd/internal/data/dispatcher"
	"github.com/atomicstack/swipekbd/internal/keyboard"
	"github.com/atomicstack/swipekbd/internal/layout"
	"github.com/atomicstack/swipekbd/internal/logging"
	"github.com/atomicstack/swipekbd/internal/logging/events"
	"github.com/atomicstack/swipekbd/internal/predict"
	"github.com/atomicstack/swipekbd/internal/suggest"
	"github.com/atomicstack/swipekbd/internal/ui"
	"github.com/atomicstack/swipekbd/internal/vkbd"
)

// Terminal defaults, in cells.
const (
	DefaultSuggestHeight  = 3
	DefaultSwipeThreshold = 2

	dictionaryReloadInterval = 500 * time.Millisecond
	trailTick                = 33 * time.Millisecond
)

// Config describes user-provided application options.
type Config struct {
	Layers          string
	LandscapeLayers string
	Landscape       bool
	SuggestHeight   int
	Suggestions     int
	ContextWords    int
	SwipeThreshold  int
	DictionaryPath  string
	AsyncPredict    bool
	ShiftSpaceTab   bool
	Trail           bool
	TrailFadeMS     int
	PrintPath       string
	PrintIntersect  bool
}

// KeyboardOptions maps the configuration onto keyboard options for a
// character-cell canvas.
func (c Config) KeyboardOptions() keyboard.Options {
	opts := keyboard.DefaultOptions()
	opts.Layers = c.Layers
	opts.LandscapeLayers = c.LandscapeLayers
	opts.Landscape = c.Landscape
	opts.SuggestHeight = c.SuggestHeight
	opts.Visible = c.Suggestions
	opts.ContextWords = c.ContextWords
	opts.SwipeThreshold = c.SwipeThreshold
	opts.ShiftSpaceIsTab = c.ShiftSpaceTab
	opts.PrintIntersect = c.PrintIntersect
	opts.KeyBorder = 0
	opts.Bar = suggest.CellMetrics()
	opts.Trail = keyboard.Trail{
		Enabled: c.Trail,
		FadeMS:  uint32(max(c.TrailFadeMS, 0)),
		Width:   1,
	}
	return opts
}

// Run bootstraps and executes the Bubble Tea program. Layer and keymap
// misconfiguration is returned as *layout.ConfigError.
func Run(cfg Config) error {
	reg, err := layout.NewRegistry(layout.Builtin())
	if err != nil {
		return fmt.Errorf("build layouts: %w", err)
	}

	dict := predict.Builtin()
	var (
		pred  predict.Predictor = dict
		cache dispatcher.Cache
		ready chan struct{}
	)
	if cfg.AsyncPredict {
		ready = make(chan struct{}, 1)
		async := predict.NewAsync(dict, func() {
			select {
			case ready <- struct{}{}:
			default:
			}
		})
		defer async.Stop()
		pred, cache = async, async
	}

	var watcher *backend.Watcher
	if cfg.DictionaryPath != "" {
		watcher, err = backend.NewWatcher(cfg.DictionaryPath, dictionaryReloadInterval)
		if err != nil {
			return fmt.Errorf("watch dictionary: %w", err)
		}
		defer watcher.Stop()
	}

	printTo, closePrint, err := openPrint(cfg.PrintPath)
	if err != nil {
		return err
	}
	defer closePrint()

	var (
		program  *tea.Program
		fatalMu  sync.Mutex
		fatalErr error
	)
	opts := cfg.KeyboardOptions()
	opts.Print = printTo
	opts.Fatal = func(err error) {
		logging.Error(err)
		events.App.Fatal(err)
		fatalMu.Lock()
		if fatalErr == nil {
			fatalErr = err
		}
		fatalMu.Unlock()
		// Fatal runs inside Update; Quit must not block the event loop.
		go program.Quit()
	}

	canvas := ui.NewCanvas(0, 0)
	transcript := vkbd.NewTranscript()
	kb, err := keyboard.New(reg, transcript, canvas, pred, opts)
	if err != nil {
		return err
	}

	tick := time.Duration(0)
	if cfg.Trail && cfg.TrailFadeMS > 0 {
		tick = trailTick
	}
	model := ui.NewModel(ui.Config{
		Keyboard:    kb,
		Canvas:      canvas,
		Transcript:  transcript,
		Watcher:     watcher,
		Dispatcher:  dispatcher.New(dict, cache),
		Predictions: ready,
		TrailTick:   tick,
	})
	program = tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = program.Run()

	fatalMu.Lock()
	defer fatalMu.Unlock()
	if fatalErr != nil {
		return fatalErr
	}
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// openPrint opens the destination for printed key labels. "-" selects
// stderr, since stdout belongs to the terminal UI.
func openPrint(path string) (io.Writer, func(), error) {
	switch path {
	case "":
		return nil, func() {}, nil
	case "-":
		return os.Stderr, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open print file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
