package vkbd

import (
	"fmt"

	"github.com/atomicstack/swipekbd/internal/layout"
)

// Transcript is a Device that interprets key events against the uploaded
// keymap and accumulates the resulting text, the way a focused text field
// would.
type Transcript struct {
	keymap    *Keymap
	comp      uint32
	compShift uint32
	mods      layout.Modifier
	text      []rune
	uploads   int
}

// NewTranscript returns an empty transcript with no keymap loaded.
func NewTranscript() *Transcript {
	return &Transcript{}
}

func (t *Transcript) UploadKeymap(name string, comp, compShift uint32) error {
	km, ok := Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKeymap, name)
	}
	t.keymap = km
	t.comp, t.compShift = comp, compShift
	t.uploads++
	return nil
}

func (t *Transcript) SetModifiers(mods layout.Modifier) {
	t.mods = mods
}

func (t *Transcript) SendKey(time, code uint32, pressed bool) {
	if !pressed || t.keymap == nil {
		return
	}
	if code == layout.KeyBackspace {
		if n := len(t.text); n > 0 {
			t.text = t.text[:n-1]
		}
		return
	}
	if t.mods&(layout.Ctrl|layout.Alt|layout.Super) != 0 {
		return
	}
	if r, ok := t.keymap.Resolve(code, t.mods, t.comp, t.compShift); ok {
		t.text = append(t.text, r)
	}
}

// Text returns everything typed so far.
func (t *Transcript) Text() string {
	return string(t.text)
}

// Keymap returns the name of the loaded keymap.
func (t *Transcript) Keymap() string {
	if t.keymap == nil {
		return ""
	}
	return t.keymap.Name
}

// Uploads counts keymap uploads.
func (t *Transcript) Uploads() int {
	return t.uploads
}

// Clear empties the text.
func (t *Transcript) Clear() {
	t.text = t.text[:0]
}
