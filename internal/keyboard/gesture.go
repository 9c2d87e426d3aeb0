package keyboard

import (
	"io"

	"github.com/atomicstack/swipekbd/internal/layout"
	"github.com/atomicstack/swipekbd/internal/logging/events"
	"github.com/atomicstack/swipekbd/internal/predict"
	"github.com/atomicstack/swipekbd/internal/suggest"
)

// keyAt hit tests the key area; the suggestion bar never yields a key.
func (k *Keyboard) keyAt(x, y int) *layout.Key {
	if k.layout == nil || x < 0 || y < 0 || y < k.opts.SuggestHeight {
		return nil
	}
	return k.layout.KeyAt(uint32(x), uint32(y))
}

func (k *Keyboard) setPreview(key *layout.Key) {
	if k.previewKey == key {
		return
	}
	k.previewKey = key
	k.drawLayout()
}

// Down starts a gesture. Touching the suggestion bar starts a scroll,
// anything else a tap that may later become a swipe.
func (k *Keyboard) Down(t uint32, x, y int) {
	k.down = true
	if y < k.opts.SuggestHeight {
		k.input = inputSuggestScroll
	} else {
		k.input = inputTap
	}
	k.downX, k.downY = x, y
	k.lastX, k.lastY = x, y
	k.moved = false
	k.dragStartX = float64(x)
	k.dragStartScroll = k.scroll
	k.points = k.points[:0]
	k.lastSwipe = nil
	k.swiped = k.swiped[:0]
	k.refresh.reset()
	k.trailNow = 0
	events.Gesture.Down(k.input.String(), x, y)

	if k.input == inputTap {
		k.setPreview(k.keyAt(x, y))
	}
}

// Motion tracks the pointer while it is down.
func (k *Keyboard) Motion(t uint32, x, y int) {
	if !k.down {
		return
	}
	dx, dy := x-k.downX, y-k.downY
	th := k.opts.SwipeThreshold
	if dx*dx+dy*dy > th*th {
		k.moved = true
	}
	k.lastX, k.lastY = x, y
	if k.opts.PrintIntersect && k.moved && k.input != inputSuggestScroll {
		k.traceIntersect(x, y)
	}

	switch k.input {
	case inputSuggestScroll:
		k.scroll = k.dragStartScroll + (k.dragStartX - float64(x))
		k.drawLayout()

	case inputTap:
		if k.pred != nil && k.moved && y >= k.opts.SuggestHeight {
			k.input = inputSwipe
			k.previewKey = nil
			k.points = append(k.points[:0],
				predict.Point{X: float64(k.downX), Y: float64(k.downY), Time: t},
				predict.Point{X: float64(x), Y: float64(y), Time: t},
			)
			events.Gesture.Promote(x, y)
			k.updateSwipe()
			return
		}
		k.setPreview(k.keyAt(x, y))

	case inputSwipe:
		if len(k.points) < MaxSwipePoints {
			k.points = append(k.points, predict.Point{X: float64(x), Y: float64(y), Time: t})
		}
		if k.refresh.allow(t) {
			k.updateSwipe()
		}
	}
}

// Up ends the gesture and performs its action.
func (k *Keyboard) Up(t uint32, x, y int) {
	k.down = false
	mode := k.input
	k.input = inputNone

	switch mode {
	case inputSuggestScroll:
		if !k.moved {
			k.tapBar(t, x, y)
		}
		events.Gesture.Up(mode.String(), "", 0)

	case inputTap:
		if k.endTrace() {
			// the drag was a traced path, not a tap
			k.previewKey = nil
			k.drawLayout()
			events.Gesture.Up(mode.String(), "", 0)
			return
		}
		key := k.tapKey(t, x, y)
		name := ""
		if key != nil {
			name = key.Label
		}
		events.Gesture.Up(mode.String(), name, 0)

	case inputSwipe:
		if k.endTrace() {
			k.drawLayout()
		}
		k.updateSwipe()
		k.setPendingFromSuggestions()
		events.Gesture.Up(mode.String(), k.pendingWord, len(k.points))
	}
}

func (k *Keyboard) tapBar(t uint32, x, y int) {
	hit := k.bar.HitTest(x, y)
	switch hit.Kind {
	case suggest.HitCancel:
		k.cancelSwipe()
	case suggest.HitPill:
		if hit.Index >= len(k.suggestions) {
			return
		}
		s := k.suggestions[hit.Index]
		switch {
		case hit.Trash && s.Kind == suggest.Word:
			k.dismissWord(s.Word)
			k.RefreshSuggestions()
		case s.Kind == suggest.AddWord:
			k.addWord()
		default:
			k.commitSuggestion(t, s.Word, false)
		}
	}
}

// tapKey presses and releases the key under the pointer, falling back to the
// previewed key when the pointer slid off. A pending swipe word is committed
// first when the key ends a word, and abandoned otherwise.
func (k *Keyboard) tapKey(t uint32, x, y int) *layout.Key {
	key := k.keyAt(x, y)
	if key == nil {
		key = k.previewKey
	}
	k.previewKey = nil

	if key != nil {
		modsBefore := k.mods
		sep := keyIsSeparator(key, modsBefore)
		swiped := k.pending || k.mode == suggest.ModeSwipe
		auto := false
		if swiped && !sep {
			k.clearPending()
			k.points = k.points[:0]
			k.suggestions = nil
			k.mode = suggest.ModeNone
			k.scroll = 0
		}
		if swiped && sep {
			w := k.pendingWord
			if !k.pending {
				w, _ = suggest.Top(k.suggestions)
			}
			if w != "" {
				k.commitSuggestion(t, w, true)
				auto = true
			}
		}

		keyTime := t
		if auto {
			keyTime += autoCommitDelay
		}
		emitted := k.pressKey(key, keyTime)
		k.releaseKey(keyTime)
		if emitted {
			k.handleCommittedKey(key, modsBefore)
		}
	}
	k.drawLayout()
	return key
}

// traceIntersect prints and highlights the key under the pointer when it
// differs from the last traced one. The key the gesture started on opens the
// trace.
func (k *Keyboard) traceIntersect(x, y int) {
	if k.lastSwipe == nil {
		k.markSwiped(k.keyAt(k.downX, k.downY))
	}
	k.markSwiped(k.keyAt(x, y))
}

func (k *Keyboard) markSwiped(key *layout.Key) {
	if key == nil || (k.lastSwipe != nil && k.lastSwipe.Label == key.Label) {
		return
	}
	k.lastSwipe = key
	k.printKey(key)
	seen := false
	for _, s := range k.swiped {
		if s == key {
			seen = true
			break
		}
	}
	if !seen {
		k.swiped = append(k.swiped, key)
	}
	k.drawKey(key, drawSwipe)
}

// endTrace closes a traced path with a newline. It reports whether a trace
// was open.
func (k *Keyboard) endTrace() bool {
	if k.lastSwipe == nil {
		return false
	}
	if k.opts.Print != nil {
		io.WriteString(k.opts.Print, "\n")
	}
	k.lastSwipe = nil
	k.swiped = k.swiped[:0]
	return true
}
