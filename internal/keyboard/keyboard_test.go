package keyboard

import (
	"bytes"
	"errors"
	"testing"

	"github.com/atomicstack/swipekbd/internal/layout"
	"github.com/atomicstack/swipekbd/internal/vkbd"
)

func TestNewRejectsBadLayers(t *testing.T) {
	_, _, err := buildTestKeyboard(t, nil, nil, func(o *Options) { o.Layers = "full,nope" })
	if err == nil {
		t.Fatalf("expected error for unknown layer")
	}
	if code := layout.ExitCode(err, 1); code != layout.ExitLayers {
		t.Fatalf("expected exit code %d, got %d", layout.ExitLayers, code)
	}
}

func TestNewUploadsFirstKeymap(t *testing.T) {
	kb, dev := newTestKeyboard(t, nil, nil)
	if kb.Layout().Name != layout.NameFull {
		t.Fatalf("expected full layout, got %s", kb.Layout().Name)
	}
	uploads := dev.rec.Uploads()
	if len(uploads) != 1 || uploads[0].Keymap != "latin" {
		t.Fatalf("expected one latin upload, got %v", uploads)
	}
}

func TestNextLayerCycles(t *testing.T) {
	cases := []struct {
		layers string
		n      int
	}{
		{"full", 1},
		{"full,special", 2},
		{"full,special,dialer", 3},
	}
	for _, tc := range cases {
		kb, _ := newTestKeyboard(t, nil, func(o *Options) { o.Layers = tc.layers })
		for step := 1; step <= tc.n; step++ {
			kb.NextLayer(nil, false)
			if got := kb.LayerIndex(); got != step%tc.n {
				t.Fatalf("%s: expected layer %d after %d steps, got %d", tc.layers, step%tc.n, step, got)
			}
		}
		kb.NextLayer(nil, true)
		if got := kb.LayerIndex(); got != tc.n-1 {
			t.Fatalf("%s: expected inverted step to wrap to %d, got %d", tc.layers, tc.n-1, got)
		}
	}
}

func TestNextLayerWithShiftStepsBack(t *testing.T) {
	kb, _ := newTestKeyboard(t, nil, nil)
	tap(t, kb, 0, "⇧")
	if kb.Mods() != layout.Shift {
		t.Fatalf("expected shift latched, got %d", kb.Mods())
	}
	kb.NextLayer(nil, false)
	if kb.LayerIndex() != 1 {
		t.Fatalf("expected wrap to last layer, got %d", kb.LayerIndex())
	}
	if kb.Mods() != layout.NoMod {
		t.Fatalf("expected shift cleared, got %d", kb.Mods())
	}
}

func TestNextLayerWithCapsLockKeepsCapsLock(t *testing.T) {
	kb, _ := newTestKeyboard(t, nil, nil)
	tap(t, kb, 0, "Cps")
	tap(t, kb, 1, "Sym")
	if kb.LayerIndex() != 1 {
		t.Fatalf("expected previous (wrapped) layer, got %d", kb.LayerIndex())
	}
	if kb.Mods() != layout.CapsLock {
		t.Fatalf("expected only capslock latched, got %d", kb.Mods())
	}
}

func TestNextLayerWithCtrlReturnsToFirst(t *testing.T) {
	kb, _ := newTestKeyboard(t, nil, nil)
	tap(t, kb, 0, "Ctr")
	tap(t, kb, 1, "Sym")
	if kb.LayerIndex() != 0 || kb.Layout().Name != layout.NameFull {
		t.Fatalf("expected first layer, got %d (%s)", kb.LayerIndex(), kb.Layout().Name)
	}
	if kb.Mods() != layout.NoMod {
		t.Fatalf("expected modifiers cleared, got %d", kb.Mods())
	}
}

func TestKeymapUploadOnlyOnChange(t *testing.T) {
	kb, dev := newTestKeyboard(t, nil, nil)
	kb.NextLayer(nil, false)
	if kb.Layout().Name != layout.NameSpecial {
		t.Fatalf("expected special layout, got %s", kb.Layout().Name)
	}
	if n := len(dev.rec.Uploads()); n != 1 {
		t.Fatalf("expected no upload for shared keymap, got %d uploads", n)
	}

	id, ok := kb.reg.Lookup(layout.NameDialer)
	if !ok {
		t.Fatalf("expected dialer layout")
	}
	kb.SwitchLayout(id, 0)
	uploads := dev.rec.Uploads()
	if len(uploads) != 2 || uploads[1].Keymap != "dialer" {
		t.Fatalf("expected exactly one dialer upload, got %v", uploads)
	}
}

func TestCapsLockAndShiftTypeUpperCase(t *testing.T) {
	kb, dev := newTestKeyboard(t, nil, nil)
	tap(t, kb, 0, "Cps", "a")
	tap(t, kb, 1, "Cps", "⇧", "a")
	tap(t, kb, 2, "Cps", "⇧", "a")
	if got := dev.tr.Text(); got != "AAA" {
		t.Fatalf("expected AAA, got %q", got)
	}
	if kb.Token() != "AAA" {
		t.Fatalf("expected token AAA, got %q", kb.Token())
	}
	if kb.Mods() != layout.CapsLock {
		t.Fatalf("expected capslock to stay latched, got %d", kb.Mods())
	}
}

func TestShiftIsOneShot(t *testing.T) {
	kb, dev := newTestKeyboard(t, nil, nil)
	tap(t, kb, 0, "⇧", "h", "i")
	if got := dev.tr.Text(); got != "Hi" {
		t.Fatalf("expected Hi, got %q", got)
	}
}

func TestBackspaceEditsToken(t *testing.T) {
	kb, dev := newTestKeyboard(t, nil, nil)
	tap(t, kb, 0, "t", "h", "⌫")
	if kb.Token() != "t" {
		t.Fatalf("expected token t, got %q", kb.Token())
	}
	if dev.tr.Text() != "t" {
		t.Fatalf("expected text t, got %q", dev.tr.Text())
	}
}

func TestSpaceCommitsToken(t *testing.T) {
	pred := newFakePredictor()
	pred.next = []string{"is", "was"}
	kb, _ := newTestKeyboard(t, pred, nil)
	tap(t, kb, 0, "i", "t", " ")
	if kb.Token() != "" {
		t.Fatalf("expected empty token, got %q", kb.Token())
	}
	words := kb.ContextWords()
	if len(words) != 1 || words[0] != "it" {
		t.Fatalf("expected context [it], got %v", words)
	}
	if kb.Mode().String() != "next-word" || len(kb.Suggestions()) != 2 {
		t.Fatalf("expected next-word suggestions, got %s %v", kb.Mode(), kb.Suggestions())
	}
}

func TestComposeSwitchesToTargetAndBack(t *testing.T) {
	kb, dev := newTestKeyboard(t, nil, nil)
	tap(t, kb, 0, "Cmp")
	if kb.Compose() != 1 {
		t.Fatalf("expected compose 1, got %d", kb.Compose())
	}
	tap(t, kb, 1, "q")
	if kb.Compose() != 1 || dev.tr.Text() != "" {
		t.Fatalf("expected key without target to be ignored, got compose %d text %q", kb.Compose(), dev.tr.Text())
	}
	tap(t, kb, 2, "a")
	if kb.Layout().Name != layout.NameAccentsA || kb.Compose() != 2 {
		t.Fatalf("expected accents-a with compose 2, got %s %d", kb.Layout().Name, kb.Compose())
	}
	if kb.Token() != "" {
		t.Fatalf("expected compose target not to reach the token, got %q", kb.Token())
	}
	tap(t, kb, 3, "à")
	if got := dev.tr.Text(); got != "à" {
		t.Fatalf("expected à, got %q", got)
	}
	if kb.Layout().Name != layout.NameFull || kb.Compose() != 0 {
		t.Fatalf("expected return to full, got %s %d", kb.Layout().Name, kb.Compose())
	}
}

func TestComposeNextLayerShowsIndex(t *testing.T) {
	kb, _ := newTestKeyboard(t, nil, nil)
	tap(t, kb, 0, "Cmp", "Sym")
	if kb.Layout().Name != layout.NameIndex {
		t.Fatalf("expected index layout, got %s", kb.Layout().Name)
	}
	if kb.Compose() != 0 {
		t.Fatalf("expected compose cleared, got %d", kb.Compose())
	}
	tap(t, kb, 1, "Dial")
	if kb.Layout().Name != layout.NameDialer {
		t.Fatalf("expected dialer, got %s", kb.Layout().Name)
	}
	tap(t, kb, 2, "Abc")
	if kb.Layout().Name != layout.NameFull {
		t.Fatalf("expected back to full, got %s", kb.Layout().Name)
	}
}

func TestShiftSpaceIsTab(t *testing.T) {
	kb, dev := newTestKeyboard(t, nil, func(o *Options) { o.ShiftSpaceIsTab = true })
	tap(t, kb, 0, "⇧", " ")
	keys := dev.rec.Keys()
	if len(keys) != 2 {
		t.Fatalf("expected press and release, got %v", keys)
	}
	for _, k := range keys {
		if k.Code != layout.KeyTab {
			t.Fatalf("expected tab keycode, got %v", keys)
		}
	}
	if dev.tr.Text() != "\t" {
		t.Fatalf("expected a tab, got %q", dev.tr.Text())
	}
}

func TestPrintWritesLabels(t *testing.T) {
	var buf bytes.Buffer
	kb, _ := newTestKeyboard(t, nil, func(o *Options) { o.Print = &buf })
	tap(t, kb, 0, "h", "⇧", "i", " ", "⌫")
	if got := buf.String(); got != "hI \b" {
		t.Fatalf("expected %q, got %q", "hI \b", got)
	}
}

func TestUploadFailureIsFatal(t *testing.T) {
	var fatal error
	kb, dev := newTestKeyboard(t, nil, func(o *Options) { o.Fatal = func(err error) { fatal = err } })
	boom := errors.New("boom")
	dev.rec.FailUpload = boom
	id, _ := kb.reg.Lookup(layout.NameDialer)
	kb.SwitchLayout(id, 0)
	if !errors.Is(fatal, boom) {
		t.Fatalf("expected fatal wrapping boom, got %v", fatal)
	}
}

func TestUnknownKeymapFailsValidation(t *testing.T) {
	layouts := layout.Builtin()
	layouts[2].Keymap = "nope"
	reg, err := layout.NewRegistry(layouts)
	if err != nil {
		t.Fatalf("expected registry, got %v", err)
	}
	_, err = New(reg, &vkbd.Recorder{}, nil, nil, DefaultOptions())
	if code := layout.ExitCode(err, 1); code != layout.ExitKeymap {
		t.Fatalf("expected exit code %d, got %d (%v)", layout.ExitKeymap, code, err)
	}
}

func TestLastAbcOnlyRecordedAtNewIndex(t *testing.T) {
	kb, _ := newTestKeyboard(t, nil, nil)
	kb.NextLayer(nil, false)
	if kb.Layout().Name != layout.NameSpecial {
		t.Fatalf("expected special, got %s", kb.Layout().Name)
	}
	if kb.LastAbc().Name != layout.NameFull || kb.lastAbcIndex != 0 {
		t.Fatalf("expected last abc full at 0, got %s at %d", kb.LastAbc().Name, kb.lastAbcIndex)
	}

	kb, _ = newTestKeyboard(t, nil, func(o *Options) { o.Layers = "special,full" })
	if kb.LastAbc().Name != layout.NameSpecial {
		t.Fatalf("expected first layer as initial last abc, got %s", kb.LastAbc().Name)
	}
	kb.NextLayer(nil, false)
	if kb.LastAbc().Name != layout.NameSpecial {
		t.Fatalf("expected leaving a non-abc layer to keep last abc, got %s", kb.LastAbc().Name)
	}
	kb.NextLayer(nil, false)
	if kb.LastAbc().Name != layout.NameFull || kb.lastAbcIndex != 1 {
		t.Fatalf("expected last abc full at 1, got %s at %d", kb.LastAbc().Name, kb.lastAbcIndex)
	}
}

func TestBackLayerReturnsToLastAbc(t *testing.T) {
	kb, _ := newTestKeyboard(t, nil, func(o *Options) { o.Layers = "special,full" })
	kb.NextLayer(nil, false)
	kb.NextLayer(nil, false)
	if kb.Layout().Name != layout.NameSpecial || kb.LayerIndex() != 0 {
		t.Fatalf("expected special at 0, got %s at %d", kb.Layout().Name, kb.LayerIndex())
	}
	tap(t, kb, 0, "Abc")
	if kb.Layout().Name != layout.NameFull || kb.LayerIndex() != 1 {
		t.Fatalf("expected full at 1, got %s at %d", kb.Layout().Name, kb.LayerIndex())
	}
	if kb.LastAbc().Name != layout.NameSpecial || kb.lastAbcIndex != 0 {
		t.Fatalf("expected last abc reset to the first layer, got %s at %d", kb.LastAbc().Name, kb.lastAbcIndex)
	}
}

func TestSwitchKeyResetsLastAbc(t *testing.T) {
	kb, _ := newTestKeyboard(t, nil, func(o *Options) { o.Layers = "special,full" })
	kb.NextLayer(nil, false)
	kb.NextLayer(nil, false)
	if kb.LastAbc().Name != layout.NameFull {
		t.Fatalf("expected last abc full, got %s", kb.LastAbc().Name)
	}
	tap(t, kb, 0, "Cmp", "Nxt")
	if kb.Layout().Name != layout.NameIndex {
		t.Fatalf("expected index layout, got %s", kb.Layout().Name)
	}
	if kb.LastAbc().Name != layout.NameFull {
		t.Fatalf("expected compose navigation to keep last abc, got %s", kb.LastAbc().Name)
	}
	tap(t, kb, 1, "Dial")
	if kb.Layout().Name != layout.NameDialer || kb.LayerIndex() != 0 {
		t.Fatalf("expected dialer at 0, got %s at %d", kb.Layout().Name, kb.LayerIndex())
	}
	if kb.LastAbc().Name != layout.NameSpecial || kb.lastAbcIndex != 0 {
		t.Fatalf("expected switch key to reset last abc, got %s at %d", kb.LastAbc().Name, kb.lastAbcIndex)
	}
	tap(t, kb, 2, "Abc")
	if kb.Layout().Name != layout.NameSpecial {
		t.Fatalf("expected back layer to return to special, got %s", kb.Layout().Name)
	}
}

func TestCopyKeyTypesThroughComposeKeycode(t *testing.T) {
	kb, dev := newTestKeyboard(t, nil, nil)
	tap(t, kb, 0, "h", "Cmp", "a")
	dev.rec.Reset()
	tap(t, kb, 5, "à")

	uploads := dev.rec.Uploads()
	if len(uploads) != 1 || uploads[0].Keymap != "latin" || uploads[0].Comp != 0x00e0 || uploads[0].CompShift != 0x00c0 {
		t.Fatalf("expected latin upload binding à/À, got %v", uploads)
	}
	keys := dev.rec.Keys()
	if len(keys) != 2 || keys[0].Code != layout.KeyCompose || !keys[0].Pressed ||
		keys[1].Code != layout.KeyCompose || keys[1].Pressed {
		t.Fatalf("expected compose keycode press and release, got %v", keys)
	}
	if got := dev.tr.Text(); got != "hà" {
		t.Fatalf("expected hà, got %q", got)
	}
	// non-ASCII labels neither extend nor end the word
	if kb.Token() != "h" || len(kb.ContextWords()) != 0 {
		t.Fatalf("expected token h and no context, got %q %v", kb.Token(), kb.ContextWords())
	}
	if kb.Layout().Name != layout.NameFull {
		t.Fatalf("expected return to full, got %s", kb.Layout().Name)
	}
}
