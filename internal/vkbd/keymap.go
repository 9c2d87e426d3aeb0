package vkbd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/atomicstack/swipekbd/internal/layout"
)

// Sym is the pair of characters a keycode produces without and with Shift.
// Zero means the level produces no text.
type Sym struct {
	Plain rune
	Shift rune
}

// Keymap binds evdev keycodes to symbols. The compose keycode is left free
// and bound per upload.
type Keymap struct {
	Name string
	Syms map[uint32]Sym
}

var keymaps = map[string]*Keymap{
	"latin":  latinKeymap(),
	"dialer": dialerKeymap(),
}

// Lookup returns the keymap registered under name.
func Lookup(name string) (*Keymap, bool) {
	km, ok := keymaps[name]
	return km, ok
}

// Known reports whether name has a keymap table.
func Known(name string) bool {
	_, ok := keymaps[name]
	return ok
}

// Names lists the registered keymaps.
func Names() []string {
	names := make([]string, 0, len(keymaps))
	for name := range keymaps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the symbol for code under the given modifiers, with the
// compose keycode yielding the uploaded code points. The shifted level is
// chosen when Shift is held or CapsLock is latched on a letter; both together
// still give the shifted level, matching the labels the keyboard shows.
func (km *Keymap) Resolve(code uint32, mods layout.Modifier, comp, compShift uint32) (rune, bool) {
	var sym Sym
	if code == layout.KeyCompose {
		sym = Sym{Plain: rune(comp), Shift: rune(compShift)}
	} else {
		var ok bool
		if sym, ok = km.Syms[code]; !ok {
			return 0, false
		}
	}
	shift := mods&layout.Shift != 0 || (mods&layout.CapsLock != 0 && isLetter(sym.Plain))
	r := sym.Plain
	if shift && sym.Shift != 0 {
		r = sym.Shift
	}
	return r, r != 0
}

func isLetter(r rune) bool {
	return r >= 'a' && r <= 'z'
}

// Render produces the XKB symbols section uploaded to the compositor, with
// comp and compShift bound to the compose keycode.
func (km *Keymap) Render(comp, compShift uint32) string {
	codes := make([]int, 0, len(km.Syms))
	for code := range km.Syms {
		codes = append(codes, int(code))
	}
	sort.Ints(codes)

	var b strings.Builder
	fmt.Fprintf(&b, "xkb_symbols \"%s\" {\n", km.Name)
	for _, code := range codes {
		sym := km.Syms[uint32(code)]
		fmt.Fprintf(&b, "    key <I%d> { [ U%04X, U%04X ] };\n", code+8, sym.Plain, sym.Shift)
	}
	fmt.Fprintf(&b, "    key <I%d> { [ U%04X, U%04X ] };\n", layout.KeyCompose+8, comp, compShift)
	b.WriteString("};\n")
	return b.String()
}

func latinKeymap() *Keymap {
	syms := map[uint32]Sym{
		layout.KeySpace:      {' ', ' '},
		layout.KeyTab:        {'\t', '\t'},
		layout.KeyEnter:      {'\n', '\n'},
		layout.KeyMinus:      {'-', '_'},
		layout.KeyEqual:      {'=', '+'},
		layout.KeyLeftBrace:  {'[', '{'},
		layout.KeyRightBrace: {']', '}'},
		layout.KeySemicolon:  {';', ':'},
		layout.KeyApostrophe: {'\'', '"'},
		layout.KeyGrave:      {'`', '~'},
		layout.KeyBackslash:  {'\\', '|'},
		layout.KeyComma:      {',', '<'},
		layout.KeyDot:        {'.', '>'},
		layout.KeySlash:      {'/', '?'},
	}
	digits := []uint32{layout.Key1, layout.Key2, layout.Key3, layout.Key4, layout.Key5,
		layout.Key6, layout.Key7, layout.Key8, layout.Key9, layout.Key0}
	for i, shifted := range "!@#$%^&*()" {
		plain := rune('1' + i)
		if i == 9 {
			plain = '0'
		}
		syms[digits[i]] = Sym{plain, shifted}
	}
	letters := map[rune]uint32{
		'q': layout.KeyQ, 'w': layout.KeyW, 'e': layout.KeyE, 'r': layout.KeyR,
		't': layout.KeyT, 'y': layout.KeyY, 'u': layout.KeyU, 'i': layout.KeyI,
		'o': layout.KeyO, 'p': layout.KeyP, 'a': layout.KeyA, 's': layout.KeyS,
		'd': layout.KeyD, 'f': layout.KeyF, 'g': layout.KeyG, 'h': layout.KeyH,
		'j': layout.KeyJ, 'k': layout.KeyK, 'l': layout.KeyL, 'z': layout.KeyZ,
		'x': layout.KeyX, 'c': layout.KeyC, 'v': layout.KeyV, 'b': layout.KeyB,
		'n': layout.KeyN, 'm': layout.KeyM,
	}
	for r, code := range letters {
		syms[code] = Sym{r, r - 'a' + 'A'}
	}
	return &Keymap{Name: "latin", Syms: syms}
}

func dialerKeymap() *Keymap {
	syms := map[uint32]Sym{
		layout.KeyEnter: {'\n', '\n'},
		layout.KeyDot:   {'.', '.'},
	}
	digits := []uint32{layout.Key0, layout.Key1, layout.Key2, layout.Key3, layout.Key4,
		layout.Key5, layout.Key6, layout.Key7, layout.Key8, layout.Key9}
	for i, code := range digits {
		r := rune('0' + i)
		syms[code] = Sym{r, r}
	}
	return &Keymap{Name: "dialer", Syms: syms}
}
