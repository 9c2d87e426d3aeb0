package keyboard

import (
	"fmt"

	"github.com/atomicstack/swipekbd/internal/layout"
	"github.com/atomicstack/swipekbd/internal/logging/events"
)

func (k *Keyboard) activeLayers() []layout.ID {
	if k.landscape {
		return k.landscapeLayers
	}
	return k.layers
}

// layerIndexOf returns the position of l in the active sequence, or 0 when
// l is not part of it.
func (k *Keyboard) layerIndexOf(l *layout.Layout) int {
	for i, id := range k.activeLayers() {
		if k.reg.Layout(id) == l {
			return i
		}
	}
	return 0
}

func (k *Keyboard) resetLastAbc() {
	k.lastAbcIndex = 0
	k.lastAbc = k.reg.Layout(k.activeLayers()[0])
}

// SwitchLayout makes the registry layout id active at the given position of
// the layer sequence.
func (k *Keyboard) SwitchLayout(id layout.ID, layerIndex int) {
	l := k.reg.Layout(id)
	if l == nil {
		return
	}
	k.switchLayout(l, layerIndex)
}

func (k *Keyboard) switchLayout(l *layout.Layout, layerIndex int) {
	k.prevLayout = k.layout
	if k.layout != nil && k.layout.Abc && k.layerIndex != k.lastAbcIndex {
		k.lastAbc = k.layout
		k.lastAbcIndex = k.layerIndex
	}
	k.layerIndex = layerIndex
	k.layout = l

	from := ""
	if k.prevLayout != nil {
		from = k.prevLayout.Name
	}
	events.Layout.Switch(from, l.Name, layerIndex)

	if k.prevLayout == nil || k.prevLayout.Keymap != l.Keymap {
		k.uploadKeymap(0, 0)
	}
	k.drawLayout()
}

// uploadKeymap sends the active layout's keymap with comp and compShift bound
// to the compose keycode. A failed upload is fatal.
func (k *Keyboard) uploadKeymap(comp, compShift uint32) bool {
	name := k.layout.Keymap
	if err := k.dev.UploadKeymap(name, comp, compShift); err != nil {
		k.fatal(fmt.Errorf("upload keymap %s: %w", name, err))
		return false
	}
	events.Layout.Keymap(name, comp, compShift)
	return true
}

// NextLayer advances through the layer sequence. Ctrl, Alt, AltGr or an
// active compose jump back to the first layer; Shift, CapsLock or invert step
// backwards. key is the NextLayer key that triggered the move, if any.
func (k *Keyboard) NextLayer(key *layout.Key, invert bool) {
	k.nextLayer(key, invert)
}

func (k *Keyboard) nextLayer(key *layout.Key, invert bool) {
	layers := k.activeLayers()
	idx := k.layerIndex
	switch {
	case k.mods&(layout.Ctrl|layout.Alt|layout.AltGr) != 0 || k.compose != 0:
		idx = 0
		k.mods = layout.NoMod
	case k.mods&(layout.Shift|layout.CapsLock) != 0 || invert:
		if idx > 0 {
			idx--
		} else {
			idx = len(layers) - 1
		}
		if !invert {
			k.mods &^= layout.Shift
		}
	default:
		idx++
	}
	if idx >= len(layers) {
		idx = 0
	}

	if k.compose != 0 && key != nil {
		k.compose = 0
		k.drawKey(key, drawUnpress)
	}
	k.switchLayout(k.reg.Layout(layers[idx]), idx)
}
