package state

const (
	// MaxContextWords is the hard capacity of the context ring.
	MaxContextWords = 64
	// DefaultContextWords is the configured capacity when none is given.
	DefaultContextWords = 5
)

// ContextWords is a fixed ring of recently committed lowercase words, used
// to condition next-word prediction. Pushing onto a full ring evicts the
// oldest word.
type ContextWords struct {
	words [MaxContextWords]string
	pos   int
	n     int
	max   int
}

// NewContextWords returns a ring holding up to max words, clamped to
// [1, MaxContextWords]. Non-positive values select DefaultContextWords.
func NewContextWords(max int) *ContextWords {
	if max <= 0 {
		max = DefaultContextWords
	}
	if max > MaxContextWords {
		max = MaxContextWords
	}
	return &ContextWords{max: max}
}

// Cap returns the configured capacity.
func (c *ContextWords) Cap() int {
	return c.max
}

// Len returns the number of stored words.
func (c *ContextWords) Len() int {
	return c.n
}

// Push records a committed word.
func (c *ContextWords) Push(word string) {
	if word == "" || c.max <= 0 {
		return
	}
	c.words[c.pos] = ASCIILower(Truncate(word, MaxTokenBytes-1))
	c.pos = (c.pos + 1) % c.max
	if c.n < c.max {
		c.n++
	}
}

// Last returns the most recently pushed word.
func (c *ContextWords) Last() (string, bool) {
	if c.n == 0 {
		return "", false
	}
	idx := c.pos - 1
	if idx < 0 {
		idx = c.max - 1
	}
	return c.words[idx], true
}

// Words returns the stored words, oldest first.
func (c *ContextWords) Words() []string {
	out := make([]string, 0, c.n)
	start := (c.pos - c.n + c.max) % c.max
	for i := 0; i < c.n; i++ {
		out = append(out, c.words[(start+i)%c.max])
	}
	return out
}
