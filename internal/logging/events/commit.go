package events

import "github.com/atomicstack/swipekbd/internal/logging"

type CommitTracer struct{}

var Commit = CommitTracer{}

func (CommitTracer) Word(word, typed string, auto bool) {
	logging.Trace("commit.word", map[string]interface{}{"word": word, "typed": typed, "auto": auto})
}

func (CommitTracer) Drop(word, token string) {
	logging.Trace("commit.drop", map[string]interface{}{"word": word, "token": token})
}

func (CommitTracer) Fallback(text string) {
	logging.Trace("commit.fallback", map[string]interface{}{"text": text})
}
