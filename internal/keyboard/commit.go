package keyboard

import (
	"strings"

	"github.com/atomicstack/swipekbd/internal/layout"
	"github.com/atomicstack/swipekbd/internal/logging/events"
	"github.com/atomicstack/swipekbd/internal/state"
)

// CommitSuggestion types word as if it had been picked from the bar. The part
// already typed as the current token is not retyped; a word that does not
// continue the token is dropped.
func (k *Keyboard) CommitSuggestion(t uint32, word string) {
	k.commitSuggestion(t, word, false)
}

func (k *Keyboard) commitSuggestion(t uint32, word string, auto bool) {
	if word == "" {
		return
	}
	k.clearPending()

	token := k.token.String()
	if token != "" && !strings.HasPrefix(state.ASCIILower(word), state.ASCIILower(token)) {
		events.Commit.Drop(word, token)
		return
	}

	adjusted := k.adjustCase(word)
	typed := adjusted
	if len(token) <= len(adjusted) {
		typed = adjusted[len(token):]
	}
	if typed != "" && !k.typeMapped(t, typed) {
		k.typeUTF8(t, typed)
	}
	events.Commit.Word(adjusted, typed, auto)

	k.token.Set(adjusted)
	k.updatePrefix()
}

// adjustCase lowercases word and reapplies the capitalisation of the typed
// token: all caps when every token letter is upper case, a leading capital
// when the token starts with one. Without a token the latched CapsLock or
// Shift decide.
func (k *Keyboard) adjustCase(word string) string {
	out := state.ASCIILower(state.Truncate(word, state.MaxTokenBytes-1))
	token := k.token.String()

	firstUpper, sawAlpha, allUpper := false, false, true
	for i := 0; i < len(token); i++ {
		c := token[i]
		if !isAlphaByte(c) {
			continue
		}
		sawAlpha = true
		upper := c >= 'A' && c <= 'Z'
		if i == 0 && upper {
			firstUpper = true
		}
		if !upper {
			allUpper = false
		}
	}
	if !sawAlpha {
		allUpper = false
	}
	if token == "" {
		switch {
		case k.mods&layout.CapsLock != 0:
			allUpper, firstUpper = true, false
		case k.mods&layout.Shift != 0:
			firstUpper = true
		}
	}

	switch {
	case allUpper:
		return state.ASCIIUpper(out)
	case firstUpper && out != "":
		return state.ASCIIUpper(out[:1]) + out[1:]
	}
	return out
}

func isAlphaByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

type charKey struct {
	code uint32
	mods layout.Modifier
}

// charKeys maps the ASCII characters of the last alphabetic layout to the key
// and modifiers producing them. Earlier keys win; a plain label only loses to
// an earlier key's shift label.
func (k *Keyboard) charKeys() map[byte]charKey {
	out := make(map[byte]charKey)
	if k.lastAbc == nil {
		return out
	}
	add := func(label string, code uint32, mods layout.Modifier) {
		if len(label) != 1 || label[0] >= 0x80 {
			return
		}
		if _, ok := out[label[0]]; !ok {
			out[label[0]] = charKey{code: code, mods: mods}
		}
	}
	for i := range k.lastAbc.Keys {
		key := &k.lastAbc.Keys[i]
		if key.Kind == layout.Last {
			break
		}
		if key.Kind != layout.Code {
			continue
		}
		add(key.Label, key.Code, layout.NoMod)
		add(key.ShiftLabel, key.Code, layout.Shift)
	}
	return out
}

// typeMapped types text through ordinary key presses. Nothing is sent and
// false is returned unless every character has a key.
func (k *Keyboard) typeMapped(t uint32, text string) bool {
	keys := k.charKeys()
	for i := 0; i < len(text); i++ {
		if _, ok := keys[text[i]]; !ok {
			return false
		}
	}
	for i := 0; i < len(text); i++ {
		ck := keys[text[i]]
		k.dev.SetModifiers(ck.mods)
		k.dev.SendKey(t, ck.code, true)
		k.dev.SendKey(t, ck.code, false)
		t++
	}
	k.dev.SetModifiers(k.mods)
	return true
}

// typeUTF8 types each code point of text through the compose keycode, then
// restores the plain keymap.
func (k *Keyboard) typeUTF8(t uint32, text string) {
	events.Commit.Fallback(text)
	for _, r := range text {
		if !k.typeCodepoint(t, uint32(r)) {
			return
		}
		t++
	}
	k.uploadKeymap(0, 0)
}

func (k *Keyboard) typeCodepoint(t, cp uint32) bool {
	if !k.uploadKeymap(cp, cp) {
		return false
	}
	k.dev.SetModifiers(layout.NoMod)
	k.dev.SendKey(t, layout.KeyCompose, true)
	k.dev.SendKey(t, layout.KeyCompose, false)
	return true
}
