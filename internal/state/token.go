package state

import "unicode/utf8"

// MaxTokenBytes bounds the in-progress word, terminator slot included.
const MaxTokenBytes = 128

// Token is the bounded buffer holding the word currently being typed.
type Token struct {
	buf []byte
}

func (t *Token) String() string {
	return string(t.buf)
}

// Len returns the length in bytes.
func (t *Token) Len() int {
	return len(t.buf)
}

// Empty reports whether nothing has been typed.
func (t *Token) Empty() bool {
	return len(t.buf) == 0
}

// Lower returns the token with A-Z lowercased.
func (t *Token) Lower() string {
	return ASCIILower(string(t.buf))
}

// Append adds s when it fits, keeping one byte of headroom for the
// terminator slot. It reports whether s was added.
func (t *Token) Append(s string) bool {
	if s == "" || len(t.buf)+len(s)+1 >= MaxTokenBytes {
		return false
	}
	t.buf = append(t.buf, s...)
	return true
}

// Pop removes the last code point.
func (t *Token) Pop() bool {
	if len(t.buf) == 0 {
		return false
	}
	_, size := utf8.DecodeLastRune(t.buf)
	t.buf = t.buf[:len(t.buf)-size]
	return true
}

// Set replaces the token, truncating to capacity.
func (t *Token) Set(s string) {
	s = Truncate(s, MaxTokenBytes-1)
	t.buf = append(t.buf[:0], s...)
}

// Clear empties the token.
func (t *Token) Clear() {
	t.buf = t.buf[:0]
}
