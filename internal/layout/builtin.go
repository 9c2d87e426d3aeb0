package layout

import "strings"

// Names of the built-in layouts.
const (
	NameFull     = "full"
	NameSpecial  = "special"
	NameDialer   = "dialer"
	NameAccentsA = "accents-a"
	NameIndex    = "index"
)

// DefaultLayers is the portrait layer sequence used when none is configured.
const DefaultLayers = NameFull + "," + NameSpecial

func key(label, shiftLabel string, code uint32) Key {
	return Key{Label: label, ShiftLabel: shiftLabel, Width: 1, Kind: Code, Code: code}
}

func letter(c string, code uint32) Key {
	return key(c, strings.ToUpper(c), code)
}

func wide(k Key, width float64) Key {
	k.Width = width
	return k
}

func target(k Key, name string) Key {
	k.TargetName = name
	return k
}

func special(k Key) Key {
	k.Scheme = 1
	return k
}

func pad(width float64) Key {
	return Key{Kind: Pad, Width: width}
}

func mod(label string, m Modifier, width float64) Key {
	return special(Key{Label: label, ShiftLabel: label, Width: width, Kind: Mod, Code: uint32(m)})
}

func action(label string, kind Kind, width float64) Key {
	return special(Key{Label: label, ShiftLabel: label, Width: width, Kind: kind})
}

func copyKey(label, shiftLabel string, cp, shiftCp uint32) Key {
	return Key{Label: label, ShiftLabel: shiftLabel, Width: 1, Kind: Copy, Code: cp, CodeMod: shiftCp}
}

func switchKey(label, name string, width float64) Key {
	return special(Key{Label: label, ShiftLabel: label, Width: width, Kind: Switch, TargetName: name})
}

// build inserts the row markers and the sentinel.
func build(name, keymap string, abc bool, rows ...[]Key) Layout {
	var keys []Key
	for i, r := range rows {
		if i > 0 {
			keys = append(keys, Key{Kind: EndRow})
		}
		keys = append(keys, r...)
	}
	keys = append(keys, Key{Kind: Last})
	return Layout{Name: name, Keymap: keymap, Abc: abc, Keys: keys}
}

// Builtin returns fresh copies of the compiled-in layouts.
func Builtin() []Layout {
	space := wide(key(" ", " ", KeySpace), 4)
	backspace := special(wide(key("⌫", "⌫", KeyBackspace), 1.5))
	enter := special(wide(key("Enter", "Enter", KeyEnter), 1.5))
	back := action("Abc", BackLayer, 1.5)

	full := build(NameFull, "latin", true,
		[]Key{
			letter("q", KeyQ), letter("w", KeyW), letter("e", KeyE), letter("r", KeyR),
			letter("t", KeyT), letter("y", KeyY), letter("u", KeyU), letter("i", KeyI),
			letter("o", KeyO), letter("p", KeyP),
		},
		[]Key{
			pad(0.5),
			target(letter("a", KeyA), NameAccentsA), letter("s", KeyS), letter("d", KeyD),
			letter("f", KeyF), letter("g", KeyG), letter("h", KeyH), letter("j", KeyJ),
			letter("k", KeyK), letter("l", KeyL),
			pad(0.5),
		},
		[]Key{
			mod("⇧", Shift, 1.5),
			letter("z", KeyZ), letter("x", KeyX), letter("c", KeyC), letter("v", KeyV),
			letter("b", KeyB), letter("n", KeyN), letter("m", KeyM),
			backspace,
		},
		[]Key{
			mod("Ctr", Ctrl, 1), mod("Cps", CapsLock, 1), action("Cmp", Compose, 1),
			action("Sym", NextLayer, 1.5),
			key(",", "<", KeyComma), space, key(".", ">", KeyDot),
			enter,
		},
	)

	symbols := build(NameSpecial, "latin", false,
		[]Key{
			key("1", "!", Key1), key("2", "@", Key2), key("3", "#", Key3), key("4", "$", Key4),
			key("5", "%", Key5), key("6", "^", Key6), key("7", "&", Key7), key("8", "*", Key8),
			key("9", "(", Key9), key("0", ")", Key0),
		},
		[]Key{
			key("-", "_", KeyMinus), key("=", "+", KeyEqual), key("[", "{", KeyLeftBrace),
			key("]", "}", KeyRightBrace), key(";", ":", KeySemicolon), key("'", "\"", KeyApostrophe),
			key("/", "?", KeySlash), key("\\", "|", KeyBackslash), key("`", "~", KeyGrave),
		},
		[]Key{
			mod("⇧", Shift, 1.5),
			special(key("Tab", "Tab", KeyTab)), special(key("Esc", "Esc", KeyEsc)),
			special(key("←", "←", KeyLeft)), special(key("↑", "↑", KeyUp)),
			special(key("↓", "↓", KeyDown)), special(key("→", "→", KeyRight)),
			backspace,
		},
		[]Key{
			back, action("Cmp", Compose, 1), action("Nxt", NextLayer, 1.5),
			key(",", "<", KeyComma), space, key(".", ">", KeyDot),
			enter,
		},
	)

	dialer := build(NameDialer, "dialer", false,
		[]Key{key("1", "1", Key1), key("2", "2", Key2), key("3", "3", Key3)},
		[]Key{key("4", "4", Key4), key("5", "5", Key5), key("6", "6", Key6)},
		[]Key{key("7", "7", Key7), key("8", "8", Key8), key("9", "9", Key9)},
		[]Key{action("Abc", BackLayer, 1), key("0", "0", Key0), special(key("⌫", "⌫", KeyBackspace))},
	)

	accents := build(NameAccentsA, "latin", false,
		[]Key{
			copyKey("à", "À", 0x00e0, 0x00c0), copyKey("á", "Á", 0x00e1, 0x00c1),
			copyKey("â", "Â", 0x00e2, 0x00c2), copyKey("ä", "Ä", 0x00e4, 0x00c4),
			copyKey("ã", "Ã", 0x00e3, 0x00c3), copyKey("å", "Å", 0x00e5, 0x00c5),
			copyKey("æ", "Æ", 0x00e6, 0x00c6),
		},
		[]Key{back, action("Cmp", Compose, 1), space, backspace},
	)

	index := build(NameIndex, "latin", false,
		[]Key{
			switchKey("Abc", NameFull, 1), switchKey("Sym", NameSpecial, 1),
			switchKey("Dial", NameDialer, 1), switchKey("àáâ", NameAccentsA, 1),
		},
		[]Key{back},
	)

	return []Layout{full, symbols, dialer, accents, index}
}
