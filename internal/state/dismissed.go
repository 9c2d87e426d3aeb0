package state

// MaxDismissedWords bounds the session dismissal list.
const MaxDismissedWords = 256

// DismissedWords holds lowercase words the user rejected this session.
// Once full, adding a new word evicts the oldest one.
type DismissedWords struct {
	words [MaxDismissedWords]string
	head  int
	n     int
}

// Len returns the number of dismissed words.
func (d *DismissedWords) Len() int {
	return d.n
}

// Add records word. Empty words and words already present are ignored; the
// return value reports whether the list changed.
func (d *DismissedWords) Add(word string) bool {
	if word == "" {
		return false
	}
	w := ASCIILower(Truncate(word, MaxTokenBytes-1))
	if d.contains(w) {
		return false
	}
	if d.n == MaxDismissedWords {
		d.words[d.head] = w
		d.head = (d.head + 1) % MaxDismissedWords
		return true
	}
	d.words[(d.head+d.n)%MaxDismissedWords] = w
	d.n++
	return true
}

// Contains reports whether word was dismissed, ignoring ASCII case.
func (d *DismissedWords) Contains(word string) bool {
	if word == "" || d.n == 0 {
		return false
	}
	return d.contains(ASCIILower(Truncate(word, MaxTokenBytes-1)))
}

func (d *DismissedWords) contains(lower string) bool {
	for i := 0; i < d.n; i++ {
		if d.words[(d.head+i)%MaxDismissedWords] == lower {
			return true
		}
	}
	return false
}

// Words returns the dismissed words, oldest first.
func (d *DismissedWords) Words() []string {
	out := make([]string, 0, d.n)
	for i := 0; i < d.n; i++ {
		out = append(out, d.words[(d.head+i)%MaxDismissedWords])
	}
	return out
}
