package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/swipekbd/internal/data/dispatcher"
	"github.com/atomicstack/swipekbd/internal/keyboard"
	"github.com/atomicstack/swipekbd/internal/layout"
	"github.com/atomicstack/swipekbd/internal/predict"
	"github.com/atomicstack/swipekbd/internal/suggest"
	"github.com/atomicstack/swipekbd/internal/vkbd"
)

const (
	testWidth  = 60
	testHeight = 20
)

type testSetup struct {
	pred        predict.Predictor
	dispatcher  *dispatcher.Dispatcher
	predictions <-chan struct{}
	fixed       bool
}

func newTestHarness(t *testing.T, setup testSetup) *Harness {
	t.Helper()
	reg, err := layout.NewRegistry(layout.Builtin())
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	opts := keyboard.DefaultOptions()
	opts.SuggestHeight = 3
	opts.Bar = suggest.CellMetrics()
	opts.KeyBorder = 0
	opts.SwipeThreshold = 2
	opts.Trail.Width = 1
	opts.Fatal = func(err error) { t.Fatalf("unexpected fatal error: %v", err) }

	canvas := NewCanvas(0, 0)
	transcript := vkbd.NewTranscript()
	kb, err := keyboard.New(reg, transcript, canvas, setup.pred, opts)
	if err != nil {
		t.Fatalf("keyboard: %v", err)
	}
	cfg := Config{
		Keyboard:    kb,
		Canvas:      canvas,
		Transcript:  transcript,
		Dispatcher:  setup.dispatcher,
		Predictions: setup.predictions,
	}
	if setup.fixed {
		cfg.Width, cfg.Height = testWidth, testHeight
	}
	h := NewHarness(NewModel(cfg))
	if !setup.fixed {
		h.Send(tea.WindowSizeMsg{Width: testWidth, Height: testHeight})
	}
	return h
}

// keyCell returns the screen cell at the centre of the key labelled label in
// the active layout.
func keyCell(t *testing.T, h *Harness, label string) (int, int) {
	t.Helper()
	l := h.Model().Keyboard().Layout()
	for i := range l.Keys {
		k := &l.Keys[i]
		if k.Label == label && k.Pressable() {
			x, y := k.Rect.Center()
			return int(x), int(y) + h.Model().canvasTop()
		}
	}
	t.Fatalf("no key %q in layout %s", label, l.Name)
	return 0, 0
}

func tapKeys(t *testing.T, h *Harness, labels ...string) {
	t.Helper()
	for _, label := range labels {
		x, y := keyCell(t, h, label)
		h.Tap(x, y)
	}
}
