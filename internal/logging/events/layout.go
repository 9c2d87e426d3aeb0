package events

import "github.com/atomicstack/swipekbd/internal/logging"

type LayoutTracer struct{}

var Layout = LayoutTracer{}

func (LayoutTracer) Switch(from, to string, layerIndex int) {
	logging.Trace("layout.switch", map[string]interface{}{"from": from, "to": to, "layer": layerIndex})
}

func (LayoutTracer) Keymap(name string, comp, compShift uint32) {
	logging.Trace("layout.keymap", map[string]interface{}{"keymap": name, "comp": comp, "comp_shift": compShift})
}

func (LayoutTracer) Compose(step int) {
	logging.Trace("layout.compose", map[string]interface{}{"step": step})
}
