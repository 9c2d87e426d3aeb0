package events

import "github.com/atomicstack/swipekbd/internal/logging"

type GestureTracer struct{}

var Gesture = GestureTracer{}

func (GestureTracer) Down(mode string, x, y int) {
	logging.Trace("gesture.down", map[string]interface{}{"mode": mode, "x": x, "y": y})
}

func (GestureTracer) Promote(x, y int) {
	logging.Trace("gesture.promote", map[string]interface{}{"x": x, "y": y})
}

func (GestureTracer) Up(mode, key string, points int) {
	payload := map[string]interface{}{"mode": mode}
	if key != "" {
		payload["key"] = key
	}
	if points > 0 {
		payload["points"] = points
	}
	logging.Trace("gesture.up", payload)
}
