package events

import "github.com/atomicstack/swipekbd/internal/logging"

type SuggestTracer struct{}

type dismissReason string

const (
	DismissRemoved dismissReason = "removed"
	DismissSession dismissReason = "session"
)

var Suggest = SuggestTracer{}

func (SuggestTracer) Refresh(mode string, token string, words []string) {
	logging.Trace("suggest.refresh", map[string]interface{}{"mode": mode, "token": token, "words": words})
}

func (SuggestTracer) Dismiss(word string, reason dismissReason) {
	logging.Trace("suggest.dismiss", map[string]interface{}{"word": word, "reason": string(reason)})
}

func (SuggestTracer) AddWord(word string) {
	logging.Trace("suggest.add-word", map[string]interface{}{"word": word})
}

func (SuggestTracer) Cancel(token string) {
	logging.Trace("suggest.cancel", map[string]interface{}{"token": token})
}
