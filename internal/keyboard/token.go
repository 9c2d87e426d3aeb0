package keyboard

import "github.com/atomicstack/swipekbd/internal/layout"

// isSeparatorLabel reports whether typing label ends the current word.
func isSeparatorLabel(label string) bool {
	switch {
	case label == " " || label == "\n":
		return true
	case len(label) != 1:
		return false
	}
	return !isWordByte(label[0])
}

// isTokenLabel reports whether label extends the current word.
func isTokenLabel(label string) bool {
	return len(label) == 1 && isWordByte(label[0])
}

func isWordByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '\'' || c == '_':
		return true
	}
	return false
}

// committedLabel is the label a key types under the modifiers held when it
// was pressed.
func committedLabel(key *layout.Key, mods layout.Modifier) string {
	if key.Kind == layout.Copy {
		return key.Label
	}
	return labelFor(key, mods)
}

// keyIsSeparator reports whether pressing key would end the current word.
func keyIsSeparator(key *layout.Key, mods layout.Modifier) bool {
	switch key.Kind {
	case layout.Code:
		if key.Code == layout.KeySpace || key.Code == layout.KeyEnter {
			return true
		}
	case layout.Copy:
	default:
		return false
	}
	return isSeparatorLabel(committedLabel(key, mods))
}

func (k *Keyboard) clearPending() {
	k.pending = false
	k.pendingWord = ""
}

// commitToken moves a non-empty token onto the context ring.
func (k *Keyboard) commitToken() {
	if k.token.Empty() {
		return
	}
	k.context.Push(k.token.String())
	k.token.Clear()
}

// handleCommittedKey feeds an emitted key to the token tracker.
func (k *Keyboard) handleCommittedKey(key *layout.Key, modsBefore layout.Modifier) {
	switch key.Kind {
	case layout.Code:
		switch key.Code {
		case layout.KeyBackspace:
			k.clearPending()
			k.token.Pop()
			k.updatePrefix()
			return
		case layout.KeySpace, layout.KeyEnter:
			k.endWord()
			return
		}
	case layout.Copy:
	default:
		return
	}

	label := committedLabel(key, modsBefore)
	switch {
	case isSeparatorLabel(label):
		k.endWord()
	case isTokenLabel(label):
		k.clearPending()
		if k.token.Append(label) {
			k.updatePrefix()
		}
	}
}

func (k *Keyboard) endWord() {
	k.clearPending()
	k.commitToken()
	k.updateNextWord()
}
