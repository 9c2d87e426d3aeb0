// Package suggest turns predictor candidates into the suggestion list shown
// above the keys and lays that list out as a scrollable row of pills.
package suggest

import (
	"github.com/atomicstack/swipekbd/internal/predict"
	"github.com/atomicstack/swipekbd/internal/state"
)

// Kind tags a suggestion.
type Kind int

const (
	// Word is a predicted word typed verbatim when selected.
	Word Kind = iota
	// AddWord asks the predictor to learn the current token.
	AddWord
)

// Suggestion is one entry of the bar. For AddWord, Word holds the token
// being offered for learning.
type Suggestion struct {
	Kind  Kind
	Word  string
	Score float64
}

// Label is the text rendered on the pill.
func (s Suggestion) Label() string {
	if s.Kind == AddWord {
		if s.Word == "" {
			return ""
		}
		return "+ " + s.Word
	}
	return s.Word
}

// Mode records which query produced the current list.
type Mode int

const (
	ModeNone Mode = iota
	ModePrefix
	ModeNextWord
	ModeSwipe
)

func (m Mode) String() string {
	switch m {
	case ModePrefix:
		return "prefix"
	case ModeNextWord:
		return "next-word"
	case ModeSwipe:
		return "swipe"
	default:
		return "none"
	}
}

// DefaultVisible is the number of Word suggestions shown when unconfigured.
const DefaultVisible = 3

// Params carries the session context consulted while filtering.
type Params struct {
	Token string
	// Max bounds the number of Word suggestions. Non-positive means
	// DefaultVisible.
	Max       int
	Dismissed *state.DismissedWords
	// UserHasWord reports whether the predictor already learned a word. Nil
	// means nothing was learned.
	UserHasWord func(word string) bool
}

// Build filters candidates into a fresh suggestion list: empty, dismissed
// and duplicate words are dropped, the rest truncated to Max, and an AddWord
// entry is appended when the token is neither learned nor already offered.
func Build(cands []predict.Candidate, p Params) []Suggestion {
	max := p.Max
	if max <= 0 {
		max = DefaultVisible
	}
	out := make([]Suggestion, 0, max+1)
	seen := make(map[string]struct{}, len(cands))
	for _, c := range cands {
		if len(out) == max {
			break
		}
		if c.Word == "" {
			continue
		}
		lower := state.ASCIILower(c.Word)
		if p.Dismissed != nil && p.Dismissed.Contains(lower) {
			continue
		}
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		out = append(out, Suggestion{Kind: Word, Word: c.Word, Score: c.Score})
	}

	if p.Token == "" {
		return out
	}
	if p.UserHasWord != nil && p.UserHasWord(p.Token) {
		return out
	}
	if _, present := seen[state.ASCIILower(p.Token)]; present {
		return out
	}
	return append(out, Suggestion{Kind: AddWord, Word: p.Token})
}

// Top returns the first non-empty Word suggestion.
func Top(list []Suggestion) (string, bool) {
	for _, s := range list {
		if s.Kind == Word && s.Word != "" {
			return s.Word, true
		}
	}
	return "", false
}

// HasWord reports whether list holds at least one non-empty Word.
func HasWord(list []Suggestion) bool {
	_, ok := Top(list)
	return ok
}
