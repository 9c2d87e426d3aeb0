package vkbd

import (
	"errors"
	"strings"
	"testing"

	"github.com/atomicstack/swipekbd/internal/layout"
)

func tap(d Device, code uint32) {
	d.SendKey(0, code, true)
	d.SendKey(0, code, false)
}

func TestTranscriptResolvesModifiers(t *testing.T) {
	tr := NewTranscript()
	if err := tr.UploadKeymap("latin", 0, 0); err != nil {
		t.Fatalf("unexpected upload error: %v", err)
	}
	tap(tr, layout.KeyH)
	tr.SetModifiers(layout.Shift)
	tap(tr, layout.KeyI)
	tr.SetModifiers(layout.CapsLock)
	tap(tr, layout.KeyA)
	tap(tr, layout.Key1)
	tr.SetModifiers(layout.CapsLock | layout.Shift)
	tap(tr, layout.KeyB)
	tr.SetModifiers(layout.Ctrl)
	tap(tr, layout.KeyC)
	tr.SetModifiers(0)
	tap(tr, layout.KeySpace)
	if got := tr.Text(); got != "hIA1B " {
		t.Fatalf("expected %q, got %q", "hIA1B ", got)
	}
}

func TestTranscriptComposeAndBackspace(t *testing.T) {
	tr := NewTranscript()
	if err := tr.UploadKeymap("latin", 0xe9, 0xc9); err != nil {
		t.Fatalf("unexpected upload error: %v", err)
	}
	tap(tr, layout.KeyCompose)
	tr.SetModifiers(layout.Shift)
	tap(tr, layout.KeyCompose)
	if got := tr.Text(); got != "éÉ" {
		t.Fatalf("expected éÉ, got %q", got)
	}
	tap(tr, layout.KeyBackspace)
	if got := tr.Text(); got != "é" {
		t.Fatalf("expected backspace to remove one character, got %q", got)
	}
	if tr.Uploads() != 1 || tr.Keymap() != "latin" {
		t.Fatalf("expected one latin upload, got %d %q", tr.Uploads(), tr.Keymap())
	}
}

func TestUnknownKeymap(t *testing.T) {
	tr := NewTranscript()
	if err := tr.UploadKeymap("klingon", 0, 0); !errors.Is(err, ErrUnknownKeymap) {
		t.Fatalf("expected unknown keymap error, got %v", err)
	}
	var rec Recorder
	if err := rec.UploadKeymap("klingon", 0, 0); !errors.Is(err, ErrUnknownKeymap) {
		t.Fatalf("expected unknown keymap error, got %v", err)
	}
	if !Known("latin") || !Known("dialer") || Known("klingon") {
		t.Fatalf("unexpected keymap registry: %v", Names())
	}
}

func TestRenderBindsComposeKey(t *testing.T) {
	km, _ := Lookup("dialer")
	out := km.Render(0xe9, 0xc9)
	if !strings.Contains(out, "key <I135> { [ U00E9, U00C9 ] };") {
		t.Fatalf("expected compose binding in keymap, got:\n%s", out)
	}
	if !strings.HasPrefix(out, "xkb_symbols \"dialer\"") {
		t.Fatalf("expected named symbols section, got:\n%s", out)
	}
}

func TestRecorder(t *testing.T) {
	var rec Recorder
	rec.UploadKeymap("latin", 0, 0)
	rec.SetModifiers(layout.Shift)
	tap(&rec, layout.KeyA)
	if len(rec.Uploads()) != 1 || len(rec.Keys()) != 2 {
		t.Fatalf("unexpected calls: %v", rec.Calls)
	}
	if got := rec.Keys()[0].String(); got != "key 30 down @0" {
		t.Fatalf("unexpected call rendering %q", got)
	}
	rec.FailUpload = errors.New("no shm")
	if err := rec.UploadKeymap("latin", 0, 0); err == nil {
		t.Fatal("expected forced upload failure")
	}
}
