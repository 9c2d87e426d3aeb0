package keyboard

import (
	"github.com/atomicstack/swipekbd/internal/layout"
	"github.com/atomicstack/swipekbd/internal/logging/events"
	"github.com/atomicstack/swipekbd/internal/predict"
	"github.com/atomicstack/swipekbd/internal/state"
	"github.com/atomicstack/swipekbd/internal/suggest"
)

func (k *Keyboard) setSuggestions(cands []predict.Candidate, mode suggest.Mode) {
	k.suggestions = suggest.Build(cands, suggest.Params{
		Token:       k.token.String(),
		Max:         k.opts.Visible,
		Dismissed:   &k.dismissed,
		UserHasWord: k.pred.UserHasWord,
	})
	k.scroll = 0
	k.mode = mode

	words := make([]string, len(k.suggestions))
	for i, s := range k.suggestions {
		words[i] = s.Label()
	}
	events.Suggest.Refresh(mode.String(), k.token.String(), words)
}

func (k *Keyboard) clearSuggestions() {
	k.suggestions = nil
	k.mode = suggest.ModeNone
	k.scroll = 0
	k.layoutBar()
}

func (k *Keyboard) updatePrefix() {
	if k.pred == nil {
		k.clearSuggestions()
		return
	}
	k.setSuggestions(k.pred.PredictPrefix(k.token.String(), k.opts.Visible), suggest.ModePrefix)
	k.drawLayout()
}

func (k *Keyboard) updateNextWord() {
	if k.pred == nil {
		k.clearSuggestions()
		return
	}
	last, _ := k.context.Last()
	k.setSuggestions(k.pred.PredictNextWord(last, k.opts.Visible), suggest.ModeNextWord)
	k.drawLayout()
}

func (k *Keyboard) updateSwipe() {
	if k.pred == nil || len(k.points) < 2 {
		return
	}
	last, _ := k.context.Last()
	cands := k.pred.PredictSwipe(k.keyPositions(), k.points, k.token.String(), last, k.opts.Visible)
	k.setSuggestions(cands, suggest.ModeSwipe)
	k.setPendingFromSuggestions()
	k.drawLayout()
}

// RefreshSuggestions re-runs the query that produced the current list.
func (k *Keyboard) RefreshSuggestions() {
	switch k.mode {
	case suggest.ModeSwipe:
		k.updateSwipe()
	case suggest.ModeNextWord:
		k.updateNextWord()
	default:
		k.updatePrefix()
	}
}

func (k *Keyboard) setPendingFromSuggestions() {
	k.clearPending()
	if w, ok := suggest.Top(k.suggestions); ok {
		k.pendingWord = w
		k.pending = true
	}
}

// keyPositions maps the lowercase label of every single character Code key
// of the last alphabetic layout to its centre.
func (k *Keyboard) keyPositions() predict.KeyPosMap {
	pos := make(predict.KeyPosMap)
	if k.lastAbc == nil {
		return pos
	}
	for i := range k.lastAbc.Keys {
		key := &k.lastAbc.Keys[i]
		if key.Kind == layout.Last {
			break
		}
		if key.Kind != layout.Code || len(key.Label) != 1 {
			continue
		}
		x, y := key.Rect.Center()
		pos[rune(state.ASCIILower(key.Label)[0])] = predict.KeyPos{X: x, Y: y}
	}
	return pos
}

// cancelSwipe abandons the swipe result and falls back to typed context.
func (k *Keyboard) cancelSwipe() {
	events.Suggest.Cancel(k.token.String())
	k.clearPending()
	k.points = k.points[:0]
	if !k.token.Empty() {
		k.updatePrefix()
	} else {
		k.updateNextWord()
	}
}

// dismissWord forgets a learned word, or hides it for the session when the
// predictor does not own it.
func (k *Keyboard) dismissWord(word string) {
	if word == "" {
		return
	}
	if k.pred != nil && k.pred.RemoveUserWord(word) {
		events.Suggest.Dismiss(word, events.DismissRemoved)
		return
	}
	k.dismissed.Add(word)
	events.Suggest.Dismiss(word, events.DismissSession)
}

func (k *Keyboard) addWord() {
	if k.pred != nil {
		k.pred.AddUserWord(k.token.String())
		events.Suggest.AddWord(k.token.String())
	}
	k.updatePrefix()
}
