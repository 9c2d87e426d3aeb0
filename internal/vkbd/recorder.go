package vkbd

import (
	"fmt"

	"github.com/atomicstack/swipekbd/internal/layout"
)

// CallKind tags a recorded device call.
type CallKind int

const (
	CallUpload CallKind = iota
	CallModifiers
	CallKey
)

// Call is one recorded device interaction.
type Call struct {
	Kind      CallKind
	Keymap    string
	Comp      uint32
	CompShift uint32
	Mods      layout.Modifier
	Time      uint32
	Code      uint32
	Pressed   bool
}

func (c Call) String() string {
	switch c.Kind {
	case CallUpload:
		return fmt.Sprintf("keymap %s %#x/%#x", c.Keymap, c.Comp, c.CompShift)
	case CallModifiers:
		return fmt.Sprintf("mods %d", c.Mods)
	default:
		state := "up"
		if c.Pressed {
			state = "down"
		}
		return fmt.Sprintf("key %d %s @%d", c.Code, state, c.Time)
	}
}

// Recorder is a Device that records every call. FailUpload makes keymap
// uploads fail.
type Recorder struct {
	Calls      []Call
	FailUpload error
}

func (r *Recorder) UploadKeymap(name string, comp, compShift uint32) error {
	if r.FailUpload != nil {
		return r.FailUpload
	}
	if !Known(name) {
		return fmt.Errorf("%w: %s", ErrUnknownKeymap, name)
	}
	r.Calls = append(r.Calls, Call{Kind: CallUpload, Keymap: name, Comp: comp, CompShift: compShift})
	return nil
}

func (r *Recorder) SetModifiers(mods layout.Modifier) {
	r.Calls = append(r.Calls, Call{Kind: CallModifiers, Mods: mods})
}

func (r *Recorder) SendKey(time, code uint32, pressed bool) {
	r.Calls = append(r.Calls, Call{Kind: CallKey, Time: time, Code: code, Pressed: pressed})
}

// Uploads returns the recorded keymap uploads.
func (r *Recorder) Uploads() []Call {
	return r.filter(CallUpload)
}

// Keys returns the recorded key events.
func (r *Recorder) Keys() []Call {
	return r.filter(CallKey)
}

func (r *Recorder) filter(kind CallKind) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// Reset drops the recorded calls.
func (r *Recorder) Reset() {
	r.Calls = nil
}
