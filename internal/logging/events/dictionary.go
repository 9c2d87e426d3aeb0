package events

import "github.com/atomicstack/swipekbd/internal/logging"

type DictionaryTracer struct{}

var Dictionary = DictionaryTracer{}

func (DictionaryTracer) Reload(path string, words int) {
	logging.Trace("dictionary.reload", map[string]interface{}{"path": path, "words": words})
}

func (DictionaryTracer) Error(path string, err error) {
	if err == nil {
		return
	}
	logging.Trace("dictionary.error", map[string]interface{}{"path": path, "error": err.Error()})
}
