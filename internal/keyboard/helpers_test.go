package keyboard

import (
	"testing"

	"github.com/atomicstack/swipekbd/internal/layout"
	"github.com/atomicstack/swipekbd/internal/predict"
	"github.com/atomicstack/swipekbd/internal/theme"
	"github.com/atomicstack/swipekbd/internal/vkbd"
)

const (
	testWidth   = 400
	testHeight  = 240
	testBarSize = 40
)

type fakePredictor struct {
	prefix     map[string][]string
	next       []string
	swipe      []string
	learned    map[string]bool
	swipeCalls int
}

func newFakePredictor() *fakePredictor {
	return &fakePredictor{prefix: map[string][]string{}, learned: map[string]bool{}}
}

func toCandidates(words []string) []predict.Candidate {
	out := make([]predict.Candidate, len(words))
	for i, w := range words {
		out[i] = predict.Candidate{Word: w, Score: float64(len(words) - i)}
	}
	return out
}

func (f *fakePredictor) PredictPrefix(token string, max int) []predict.Candidate {
	return toCandidates(f.prefix[token])
}

func (f *fakePredictor) PredictNextWord(last string, max int) []predict.Candidate {
	return toCandidates(f.next)
}

func (f *fakePredictor) PredictSwipe(pos predict.KeyPosMap, points []predict.Point, token, last string, max int) []predict.Candidate {
	f.swipeCalls++
	return toCandidates(f.swipe)
}

func (f *fakePredictor) UserHasWord(word string) bool { return f.learned[word] }

func (f *fakePredictor) AddUserWord(word string) { f.learned[word] = true }

func (f *fakePredictor) RemoveUserWord(word string) bool {
	if !f.learned[word] {
		return false
	}
	delete(f.learned, word)
	return true
}

// teeDevice records calls and interprets them as typed text.
type teeDevice struct {
	rec *vkbd.Recorder
	tr  *vkbd.Transcript
}

func newTeeDevice() *teeDevice {
	return &teeDevice{rec: &vkbd.Recorder{}, tr: vkbd.NewTranscript()}
}

func (d *teeDevice) UploadKeymap(name string, comp, compShift uint32) error {
	if err := d.rec.UploadKeymap(name, comp, compShift); err != nil {
		return err
	}
	return d.tr.UploadKeymap(name, comp, compShift)
}

func (d *teeDevice) SetModifiers(mods layout.Modifier) {
	d.rec.SetModifiers(mods)
	d.tr.SetModifiers(mods)
}

func (d *teeDevice) SendKey(time, code uint32, pressed bool) {
	d.rec.SendKey(time, code, pressed)
	d.tr.SendKey(time, code, pressed)
}

type polyline struct {
	xs, ys []float64
	alphas []uint8
}

type recordingSurface struct {
	nopSurface
	texts     []string
	polylines []polyline
	overlays  int
}

func (s *recordingSurface) OverlayRect(theme.Color, int, int, int, int, int) {
	s.overlays++
}

func (s *recordingSurface) DrawText(_ theme.Color, _, _, _, _, _ int, text, _ string) {
	s.texts = append(s.texts, text)
}

func (s *recordingSurface) DrawFadedPolyline(_ theme.Color, _ int, xs, ys []float64, alphas []uint8) {
	s.polylines = append(s.polylines, polyline{xs: xs, ys: ys, alphas: alphas})
}

func newTestKeyboard(t *testing.T, pred predict.Predictor, mutate func(*Options)) (*Keyboard, *teeDevice) {
	t.Helper()
	kb, dev, err := buildTestKeyboard(t, pred, nil, mutate)
	if err != nil {
		t.Fatalf("expected keyboard, got error %v", err)
	}
	return kb, dev
}

func buildTestKeyboard(t *testing.T, pred predict.Predictor, surf Surface, mutate func(*Options)) (*Keyboard, *teeDevice, error) {
	t.Helper()
	reg, err := layout.NewRegistry(layout.Builtin())
	if err != nil {
		t.Fatalf("expected registry, got error %v", err)
	}
	opts := DefaultOptions()
	opts.SuggestHeight = testBarSize
	opts.Fatal = func(err error) { t.Fatalf("unexpected fatal error: %v", err) }
	if mutate != nil {
		mutate(&opts)
	}
	dev := newTeeDevice()
	kb, err := New(reg, dev, surf, pred, opts)
	if err != nil {
		return nil, dev, err
	}
	kb.Resize(testWidth, testHeight)
	return kb, dev, nil
}

func keyCenter(t *testing.T, kb *Keyboard, label string) (int, int) {
	t.Helper()
	l := kb.Layout()
	for i := range l.Keys {
		key := &l.Keys[i]
		if key.Label == label && key.Pressable() {
			x, y := key.Rect.Center()
			return int(x), int(y)
		}
	}
	t.Fatalf("expected key %q on layout %s", label, l.Name)
	return 0, 0
}

func tap(t *testing.T, kb *Keyboard, ts uint32, labels ...string) {
	t.Helper()
	for _, label := range labels {
		x, y := keyCenter(t, kb, label)
		kb.Down(ts, x, y)
		kb.Up(ts, x, y)
	}
}

// swipe drags from the first key through the others, one sample per key
// spaced step milliseconds apart, and returns the time of the last sample.
func swipe(t *testing.T, kb *Keyboard, start, step uint32, labels ...string) uint32 {
	t.Helper()
	ts := start
	x, y := keyCenter(t, kb, labels[0])
	kb.Down(ts, x, y)
	for _, label := range labels[1:] {
		ts += step
		x, y = keyCenter(t, kb, label)
		kb.Motion(ts, x, y)
	}
	kb.Up(ts, x, y)
	return ts
}

func tapBar(kb *Keyboard, ts uint32, x, y int) {
	kb.Down(ts, x, y)
	kb.Up(ts, x, y)
}
