// Package predict defines the predictor boundary queried by the keyboard and
// ships a dictionary backed implementation plus an asynchronous wrapper.
package predict

// Candidate is a raw predictor result.
type Candidate struct {
	Word  string
	Score float64
}

// Point is one sample of a swipe path in surface coordinates.
type Point struct {
	X, Y float64
	Time uint32
}

// KeyPos is the centre of a key.
type KeyPos struct {
	X, Y float64
}

// KeyPosMap maps lowercase characters to the centre of their key in the
// alphabetic layout.
type KeyPosMap map[rune]KeyPos

// Predictor is queried synchronously from inside input handling, so every
// method must return promptly. Zero candidates is always a valid answer.
type Predictor interface {
	PredictPrefix(token string, max int) []Candidate
	PredictNextWord(last string, max int) []Candidate
	PredictSwipe(pos KeyPosMap, points []Point, token, last string, max int) []Candidate
	UserHasWord(word string) bool
	AddUserWord(word string)
	RemoveUserWord(word string) bool
}
