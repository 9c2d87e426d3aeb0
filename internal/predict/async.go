package predict

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// maxCachedResults bounds the result cache; it is flushed when exceeded.
const maxCachedResults = 256

type query struct {
	key string
	gen uint64
	run func() []Candidate
}

// Async hides a slow Predictor behind a worker goroutine. A query whose
// answer is not cached yet returns no candidates and is scheduled; once the
// worker finishes it calls notify so the caller can refresh and pick the
// cached answer up. Learning calls pass straight through and invalidate the
// cache. Answers computed across an invalidation are discarded.
type Async struct {
	inner  Predictor
	notify func()

	ctx    context.Context
	cancel context.CancelFunc
	reqs   chan query
	wg     sync.WaitGroup

	mu       sync.Mutex
	results  map[string][]Candidate
	inflight map[string]struct{}
	gen      uint64
}

// NewAsync starts the worker. notify may be nil and is called from the
// worker goroutine.
func NewAsync(inner Predictor, notify func()) *Async {
	ctx, cancel := context.WithCancel(context.Background())
	a := &Async{
		inner:    inner,
		notify:   notify,
		ctx:      ctx,
		cancel:   cancel,
		reqs:     make(chan query, 16),
		results:  make(map[string][]Candidate),
		inflight: make(map[string]struct{}),
	}
	a.wg.Add(1)
	go a.loop()
	return a
}

// Stop cancels the worker; queued queries are discarded.
func (a *Async) Stop() {
	a.cancel()
}

// Wait blocks until the worker has exited.
func (a *Async) Wait() {
	a.wg.Wait()
}

func (a *Async) loop() {
	defer a.wg.Done()
	for {
		select {
		case <-a.ctx.Done():
			return
		case q := <-a.reqs:
			res := q.run()
			a.mu.Lock()
			delete(a.inflight, q.key)
			if q.gen == a.gen {
				if len(a.results) >= maxCachedResults {
					a.results = make(map[string][]Candidate)
				}
				a.results[q.key] = res
			}
			a.mu.Unlock()
			if a.notify != nil {
				a.notify()
			}
		}
	}
}

func (a *Async) lookup(key string, run func() []Candidate) []Candidate {
	a.mu.Lock()
	if res, ok := a.results[key]; ok {
		a.mu.Unlock()
		return append([]Candidate(nil), res...)
	}
	if _, ok := a.inflight[key]; ok {
		a.mu.Unlock()
		return nil
	}
	a.inflight[key] = struct{}{}
	gen := a.gen
	a.mu.Unlock()

	select {
	case a.reqs <- query{key: key, gen: gen, run: run}:
	default:
		// worker saturated; let a later refresh retry
		a.mu.Lock()
		delete(a.inflight, key)
		a.mu.Unlock()
	}
	return nil
}

func (a *Async) invalidate() {
	a.mu.Lock()
	a.gen++
	a.results = make(map[string][]Candidate)
	a.mu.Unlock()
}

// Invalidate drops every cached answer, e.g. after the dictionary reloads.
func (a *Async) Invalidate() {
	a.invalidate()
}

func (a *Async) PredictPrefix(token string, max int) []Candidate {
	key := fmt.Sprintf("prefix\x00%s\x00%d", strings.ToLower(token), max)
	return a.lookup(key, func() []Candidate {
		return a.inner.PredictPrefix(token, max)
	})
}

func (a *Async) PredictNextWord(last string, max int) []Candidate {
	key := fmt.Sprintf("next\x00%s\x00%d", strings.ToLower(last), max)
	return a.lookup(key, func() []Candidate {
		return a.inner.PredictNextWord(last, max)
	})
}

func (a *Async) PredictSwipe(pos KeyPosMap, points []Point, token, last string, max int) []Candidate {
	if len(points) == 0 {
		return nil
	}
	end := points[len(points)-1]
	key := fmt.Sprintf("swipe\x00%d\x00%.0f,%.0f,%d\x00%s\x00%s\x00%d",
		len(points), end.X, end.Y, end.Time, strings.ToLower(token), strings.ToLower(last), max)
	posCopy := make(KeyPosMap, len(pos))
	for r, p := range pos {
		posCopy[r] = p
	}
	pointsCopy := append([]Point(nil), points...)
	return a.lookup(key, func() []Candidate {
		return a.inner.PredictSwipe(posCopy, pointsCopy, token, last, max)
	})
}

func (a *Async) UserHasWord(word string) bool {
	return a.inner.UserHasWord(word)
}

func (a *Async) AddUserWord(word string) {
	a.inner.AddUserWord(word)
	a.invalidate()
}

func (a *Async) RemoveUserWord(word string) bool {
	removed := a.inner.RemoveUserWord(word)
	if removed {
		a.invalidate()
	}
	return removed
}
