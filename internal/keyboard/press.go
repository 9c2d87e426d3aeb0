package keyboard

import (
	"io"

	"github.com/atomicstack/swipekbd/internal/layout"
	"github.com/atomicstack/swipekbd/internal/logging/events"
)

// oneShot are the modifiers released together with the next key.
const oneShot = layout.Shift | layout.Ctrl | layout.Alt | layout.Super | layout.AltGr

func isAlphaLabel(label string) bool {
	if len(label) != 1 {
		return false
	}
	c := label[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// shifted reports whether key shows its shift label under mods.
func shifted(key *layout.Key, mods layout.Modifier) bool {
	return mods&layout.Shift != 0 || (mods&layout.CapsLock != 0 && isAlphaLabel(key.Label))
}

func labelFor(key *layout.Key, mods layout.Modifier) string {
	if shifted(key, mods) {
		return key.ShiftLabel
	}
	return key.Label
}

// pressKey activates key. It reports whether the key emitted a keycode, as
// opposed to only changing keyboard state.
func (k *Keyboard) pressKey(key *layout.Key, t uint32) bool {
	if k.compose == 1 && key.Kind != layout.Compose && key.Kind != layout.Mod {
		k.pressComposed(key)
		return false
	}

	switch key.Kind {
	case layout.Code:
		switch {
		case key.CodeMod != 0 && key.ResetMod:
			k.dev.SetModifiers(layout.Modifier(key.CodeMod))
		case key.CodeMod != 0:
			k.dev.SetModifiers(k.mods ^ layout.Modifier(key.CodeMod))
		default:
			k.dev.SetModifiers(k.mods)
		}
		k.lastPress = key
		k.drawKey(key, drawPress)
		if k.shiftSpaceTab(key) && k.mods&layout.Shift != 0 {
			k.dev.SetModifiers(layout.NoMod)
			k.dev.SendKey(t, layout.KeyTab, true)
		} else {
			k.dev.SendKey(t, key.Code, true)
		}
		k.printKey(key)
		if k.compose != 0 {
			k.compose++
			events.Layout.Compose(k.compose)
		}
		return true

	case layout.Mod:
		m := layout.Modifier(key.Code)
		k.mods ^= m
		switch {
		case m == layout.Shift || m == layout.CapsLock:
			k.drawLayout()
		case k.mods&m != 0:
			k.drawKey(key, drawPress)
		default:
			k.drawKey(key, drawUnpress)
		}
		k.dev.SetModifiers(k.mods)

	case layout.Switch:
		target := k.reg.Layout(key.Target)
		if target == nil {
			return false
		}
		k.switchLayout(target, k.layerIndexOf(target))
		k.resetLastAbc()

	case layout.Compose:
		if k.compose == 0 {
			k.compose = 1
			k.drawKey(key, drawPress)
		} else {
			k.compose = 0
			k.drawKey(key, drawUnpress)
		}
		events.Layout.Compose(k.compose)

	case layout.NextLayer:
		k.nextLayer(key, false)

	case layout.BackLayer:
		if k.lastAbc != nil {
			k.compose = 0
			k.switchLayout(k.lastAbc, k.lastAbcIndex)
			k.resetLastAbc()
		}

	case layout.Copy:
		k.lastPress = key
		k.drawKey(key, drawPress)
		if !k.uploadKeymap(key.Code, key.CodeMod) {
			return false
		}
		k.dev.SetModifiers(k.mods)
		k.dev.SendKey(t, layout.KeyCompose, true)
		k.printKey(key)
		return true
	}
	return false
}

// pressComposed handles the key pressed right after Compose.
func (k *Keyboard) pressComposed(key *layout.Key) {
	switch {
	case key.Kind == layout.NextLayer || key.Kind == layout.BackLayer ||
		(key.Kind == layout.Code && key.Code == layout.KeySpace):
		k.compose = 0
		events.Layout.Compose(k.compose)
		if id, ok := k.reg.Lookup(layout.NameIndex); ok {
			k.switchLayout(k.reg.Layout(id), 0)
		} else {
			k.drawLayout()
		}
	case key.Target != layout.NoLayout:
		target := k.reg.Layout(key.Target)
		if target == nil {
			return
		}
		k.compose++
		events.Layout.Compose(k.compose)
		k.switchLayout(target, k.layerIndexOf(target))
	}
}

func (k *Keyboard) shiftSpaceTab(key *layout.Key) bool {
	return k.opts.ShiftSpaceIsTab && key.Kind == layout.Code && key.Code == layout.KeySpace
}

// releaseKey releases the last pressed key, dropping one-shot modifiers.
func (k *Keyboard) releaseKey(t uint32) {
	key := k.lastPress
	if key == nil {
		return
	}
	k.lastPress = nil

	unlatched := k.mods & oneShot
	k.mods &^= unlatched
	if unlatched != 0 {
		k.dev.SetModifiers(k.mods)
	}

	switch {
	case key.Kind == layout.Copy:
		k.dev.SendKey(t, layout.KeyCompose, false)
	case k.shiftSpaceTab(key) && unlatched&layout.Shift != 0:
		k.dev.SendKey(t, layout.KeyTab, false)
	default:
		k.dev.SendKey(t, key.Code, false)
	}

	switch {
	case k.compose >= 2:
		k.compose = 0
		events.Layout.Compose(k.compose)
		k.switchLayout(k.lastAbc, k.lastAbcIndex)
	case unlatched != 0:
		k.drawLayout()
	default:
		k.drawKey(key, drawUnpress)
	}
}

// printKey writes what an emitted key would type. Ctrl, Alt and Super
// suppress plain labels.
func (k *Keyboard) printKey(key *layout.Key) {
	if k.opts.Print == nil {
		return
	}
	var out string
	switch {
	case key.Kind == layout.Code && key.Code == layout.KeySpace:
		out = " "
	case key.Kind == layout.Code && key.Code == layout.KeyEnter:
		out = "\n"
	case key.Kind == layout.Code && key.Code == layout.KeyBackspace:
		out = "\b"
	case key.Kind == layout.Code && key.Code == layout.KeyTab:
		out = "\t"
	case key.Kind != layout.Code && key.Kind != layout.Copy:
		return
	case shifted(key, k.mods):
		out = key.ShiftLabel
	case k.mods&(layout.Ctrl|layout.Alt|layout.Super) == 0:
		out = key.Label
	}
	if out != "" {
		io.WriteString(k.opts.Print, out)
	}
}
