package predict

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

//go:embed words.txt
var builtinWords []byte

// userFrequency is the weight assigned to learned words.
const userFrequency = 50

type entry struct {
	word string
	freq float64
	user bool
	// base marks words that came from the loaded dictionary; baseFreq is
	// their frequency before learning raised it.
	base     bool
	baseFreq float64
}

// Dictionary is a frequency dictionary with bigram context. It is safe for
// concurrent use; Load may run on a watcher goroutine while the keyboard
// queries it.
type Dictionary struct {
	mu      sync.RWMutex
	entries map[string]*entry
	sorted  []string
	bigrams map[string]map[string]float64
}

// NewDictionary returns an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{
		entries: make(map[string]*entry),
		bigrams: make(map[string]map[string]float64),
	}
}

// Builtin returns a dictionary seeded with the compiled-in word list.
func Builtin() *Dictionary {
	d := NewDictionary()
	if err := d.Load(bytes.NewReader(builtinWords)); err != nil {
		panic(fmt.Sprintf("builtin word list: %v", err))
	}
	return d
}

// LoadFile replaces the dictionary contents with the file at path.
func (d *Dictionary) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open dictionary: %w", err)
	}
	defer f.Close()
	if err := d.Load(f); err != nil {
		return fmt.Errorf("load dictionary %s: %w", path, err)
	}
	return nil
}

// Load replaces the base vocabulary and bigrams with the contents of r.
// Learned words survive a reload. Each non-comment line is one of
//
//	word
//	word count
//	previous word count
func (d *Dictionary) Load(r io.Reader) error {
	entries := make(map[string]*entry)
	bigrams := make(map[string]map[string]float64)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch len(fields) {
		case 1:
			addEntry(entries, fields[0], 1)
		case 2:
			if n, err := strconv.ParseFloat(fields[1], 64); err == nil {
				addEntry(entries, fields[0], n)
				continue
			}
			addBigram(bigrams, fields[0], fields[1], 1)
		case 3:
			n, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return fmt.Errorf("line %d: bad count %q", lineNo, fields[2])
			}
			addBigram(bigrams, fields[0], fields[1], n)
		default:
			return fmt.Errorf("line %d: expected at most 3 fields, got %d", lineNo, len(fields))
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for key, e := range d.entries {
		if !e.user {
			continue
		}
		if existing, ok := entries[key]; ok {
			existing.learn()
			continue
		}
		entries[key] = &entry{word: e.word, freq: userFrequency, user: true}
	}
	d.entries = entries
	d.bigrams = bigrams
	d.reindex()
	return nil
}

func addEntry(entries map[string]*entry, word string, freq float64) {
	key := strings.ToLower(word)
	if e, ok := entries[key]; ok {
		e.freq += freq
		return
	}
	entries[key] = &entry{word: word, freq: freq, base: true}
}

// learn marks a loaded word as learned, boosting it to at least
// userFrequency.
func (e *entry) learn() {
	if e.user {
		return
	}
	e.user = true
	e.baseFreq = e.freq
	if e.freq < userFrequency {
		e.freq = userFrequency
	}
}

func addBigram(bigrams map[string]map[string]float64, prev, next string, n float64) {
	prev = strings.ToLower(prev)
	m, ok := bigrams[prev]
	if !ok {
		m = make(map[string]float64)
		bigrams[prev] = m
	}
	m[strings.ToLower(next)] += n
}

func (d *Dictionary) reindex() {
	d.sorted = d.sorted[:0]
	for key := range d.entries {
		d.sorted = append(d.sorted, key)
	}
	sort.Strings(d.sorted)
}

// Len returns the vocabulary size.
func (d *Dictionary) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entries)
}

func rank(cands []Candidate, max int) []Candidate {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Score != cands[j].Score {
			return cands[i].Score > cands[j].Score
		}
		return cands[i].Word < cands[j].Word
	})
	if max > 0 && len(cands) > max {
		cands = cands[:max]
	}
	return cands
}

// PredictPrefix returns the most frequent words starting with token,
// ignoring case.
func (d *Dictionary) PredictPrefix(token string, max int) []Candidate {
	if token == "" || max <= 0 {
		return nil
	}
	prefix := strings.ToLower(token)
	d.mu.RLock()
	defer d.mu.RUnlock()

	var cands []Candidate
	start := sort.SearchStrings(d.sorted, prefix)
	for _, key := range d.sorted[start:] {
		if !strings.HasPrefix(key, prefix) {
			break
		}
		e := d.entries[key]
		cands = append(cands, Candidate{Word: e.word, Score: e.freq})
	}
	return rank(cands, max)
}

// PredictNextWord returns the words most often seen after last, falling back
// to the most frequent words overall.
func (d *Dictionary) PredictNextWord(last string, max int) []Candidate {
	if max <= 0 {
		return nil
	}
	d.mu.RLock()
	defer d.mu.RUnlock()

	var cands []Candidate
	if next, ok := d.bigrams[strings.ToLower(last)]; ok && last != "" {
		for key, n := range next {
			word := key
			if e, ok := d.entries[key]; ok {
				word = e.word
			}
			cands = append(cands, Candidate{Word: word, Score: n})
		}
		return rank(cands, max)
	}
	for _, e := range d.entries {
		cands = append(cands, Candidate{Word: e.word, Score: e.freq})
	}
	return rank(cands, max)
}

// PredictSwipe decodes a swipe path. The path is reduced to the sequence of
// keys it passes nearest to; a word qualifies when it starts and ends on the
// path's first and last keys and its letters appear along the path in order.
// Words are ranked by frequency, penalised by their edit distance to the
// path and boosted by bigram context. A non-empty token means the swipe
// continues a word already typed, so only the remainder is matched.
func (d *Dictionary) PredictSwipe(pos KeyPosMap, points []Point, token, last string, max int) []Candidate {
	if max <= 0 || len(points) < 2 || len(pos) == 0 {
		return nil
	}
	path := TracePath(pos, points)
	if path == "" {
		return nil
	}
	first, _ := utf8.DecodeRuneInString(path)
	final, _ := utf8.DecodeLastRuneInString(path)
	prefix := strings.ToLower(token)

	d.mu.RLock()
	defer d.mu.RUnlock()
	follows := d.bigrams[strings.ToLower(last)]

	var cands []Candidate
	for key, e := range d.entries {
		if !strings.HasPrefix(key, prefix) || len(key) == len(prefix) {
			continue
		}
		rest := squeeze(key[len(prefix):])
		r0, _ := utf8.DecodeRuneInString(rest)
		rn, _ := utf8.DecodeLastRuneInString(rest)
		if r0 != first || rn != final {
			continue
		}
		if !fuzzy.MatchFold(rest, path) {
			continue
		}
		score := math.Log1p(e.freq) - 0.5*float64(fuzzy.LevenshteinDistance(rest, path))
		if follows != nil {
			score += math.Log1p(follows[key])
		}
		cands = append(cands, Candidate{Word: e.word, Score: score})
	}
	return rank(cands, max)
}

// TracePath maps each sample to its nearest key and collapses repeats.
func TracePath(pos KeyPosMap, points []Point) string {
	var b strings.Builder
	prev := rune(-1)
	for _, p := range points {
		best := rune(-1)
		bestDist := math.MaxFloat64
		for r, k := range pos {
			dx, dy := p.X-k.X, p.Y-k.Y
			dist := dx*dx + dy*dy
			if dist < bestDist || (dist == bestDist && r < best) {
				best, bestDist = r, dist
			}
		}
		if best >= 0 && best != prev {
			b.WriteRune(best)
			prev = best
		}
	}
	return b.String()
}

func squeeze(s string) string {
	var b strings.Builder
	prev := rune(-1)
	for _, r := range s {
		if r != prev {
			b.WriteRune(r)
			prev = r
		}
	}
	return b.String()
}

// UserHasWord reports whether word was learned.
func (d *Dictionary) UserHasWord(word string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	e, ok := d.entries[strings.ToLower(word)]
	return ok && e.user
}

// AddUserWord learns word.
func (d *Dictionary) AddUserWord(word string) {
	word = strings.TrimSpace(word)
	if word == "" {
		return
	}
	key := strings.ToLower(word)
	d.mu.Lock()
	defer d.mu.Unlock()
	if e, ok := d.entries[key]; ok {
		e.learn()
		return
	}
	d.entries[key] = &entry{word: word, freq: userFrequency, user: true}
	i := sort.SearchStrings(d.sorted, key)
	d.sorted = append(d.sorted, "")
	copy(d.sorted[i+1:], d.sorted[i:])
	d.sorted[i] = key
}

// RemoveUserWord forgets a learned word. Words that only exist in the loaded
// dictionary cannot be removed and report false.
func (d *Dictionary) RemoveUserWord(word string) bool {
	key := strings.ToLower(word)
	d.mu.Lock()
	defer d.mu.Unlock()
	e, ok := d.entries[key]
	if !ok || !e.user {
		return false
	}
	if e.base {
		e.user = false
		e.freq = e.baseFreq
		return true
	}
	delete(d.entries, key)
	i := sort.SearchStrings(d.sorted, key)
	if i < len(d.sorted) && d.sorted[i] == key {
		d.sorted = append(d.sorted[:i], d.sorted[i+1:]...)
	}
	return true
}
