package events

import "github.com/atomicstack/swipekbd/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Fatal(err error) {
	if err == nil {
		return
	}
	logging.Trace("app.fatal", map[string]interface{}{"error": err.Error()})
}
