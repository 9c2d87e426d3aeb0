package keyboard

import (
	"math"

	"github.com/atomicstack/swipekbd/internal/layout"
	"github.com/atomicstack/swipekbd/internal/suggest"
	"github.com/atomicstack/swipekbd/internal/theme"
)

type drawType int

const (
	drawNone drawType = iota
	drawUnpress
	drawPress
	drawSwipe
)

func (k *Keyboard) scheme(i uint8) theme.Scheme {
	if int(i) < len(k.opts.Schemes) {
		return k.opts.Schemes[i]
	}
	return k.opts.Schemes[0]
}

// Draw repaints the whole surface.
func (k *Keyboard) Draw() {
	k.drawLayout()
}

// Tick advances the trail clock to now and repaints while a trail is
// visible. It reports whether a repaint happened.
func (k *Keyboard) Tick(now uint32) bool {
	k.trailNow = now
	if !k.opts.Trail.Enabled || len(k.points) < 2 {
		return false
	}
	k.drawLayout()
	return true
}

func (k *Keyboard) drawKey(key *layout.Key, typ drawType) {
	if key == nil {
		return
	}
	s := k.scheme(key.Scheme)
	r := key.Rect
	x, y, w, h := int(r.X), int(r.Y), int(r.W), int(r.H)
	border := k.opts.KeyBorder

	switch typ {
	case drawPress:
		fillInset(k.surf, s.High, x, y, w, h, border, s.Rounding)
	case drawSwipe:
		overlayInset(k.surf, s.Swipe, x, y, w, h, border, s.Rounding)
	default:
		fillInset(k.surf, s.Fg, x, y, w, h, border, s.Rounding)
	}
	k.surf.DrawText(s.Text, x, y, w, h, border, labelFor(key, k.mods), s.Font)
}

func (k *Keyboard) drawLayout() {
	if k.layout == nil {
		return
	}
	k.surf.FillRect(k.opts.Schemes[0].Bg, 0, 0, k.width, k.height, 0)
	k.drawSuggestions()

	for i := range k.layout.Keys {
		key := &k.layout.Keys[i]
		if key.Kind == layout.Last {
			break
		}
		if !key.Pressable() {
			continue
		}
		pressed := (key.Kind == layout.Mod && k.mods&layout.Modifier(key.Code) != 0) ||
			(key.Kind == layout.Compose && k.compose != 0) ||
			key == k.previewKey
		if pressed {
			k.drawKey(key, drawPress)
		} else {
			k.drawKey(key, drawNone)
		}
	}
	for _, key := range k.swiped {
		k.drawKey(key, drawSwipe)
	}

	k.drawTrail()
}

// barLabel is the pill text for s: Word suggestions follow the case the user
// is typing in.
func (k *Keyboard) barLabel(s suggest.Suggestion) string {
	if s.Kind == suggest.Word && s.Word != "" {
		if adjusted := k.adjustCase(s.Word); adjusted != "" {
			return adjusted
		}
	}
	return s.Label()
}

// layoutBar recomputes the bar geometry for the current suggestions and
// clamps the scroll offset to it.
func (k *Keyboard) layoutBar() {
	font := k.scheme(1).Font
	entries := make([]suggest.Entry, len(k.suggestions))
	for i, s := range k.suggestions {
		label := k.barLabel(s)
		w, _ := k.surf.MeasureText(label, font)
		entries[i] = suggest.Entry{Label: label, TextWidth: w, Trash: s.Kind == suggest.Word}
	}
	cancel := k.mode == suggest.ModeSwipe && suggest.HasWord(k.suggestions)
	k.bar = suggest.Layout(entries, k.opts.Bar, k.width, k.opts.SuggestHeight, cancel, k.scroll)
	k.scroll = k.bar.Scroll
}

func (k *Keyboard) drawSuggestions() {
	k.layoutBar()
	if k.opts.SuggestHeight <= 0 {
		return
	}
	s := k.scheme(1)
	m := k.opts.Bar
	k.surf.FillRect(s.Bg, 0, 0, k.width, k.opts.SuggestHeight, 0)

	if k.bar.CancelVisible {
		c := k.bar.Cancel
		fillInset(k.surf, s.Fg, c.X, c.Y, c.W, c.H, m.Border, s.Rounding)
		k.surf.DrawText(s.Text, c.X, c.Y, c.W, c.H, 0, "⊗", s.Font)
	}

	for i, p := range k.bar.Pills {
		if p.W == 0 || p.Hidden || i >= len(k.suggestions) {
			continue
		}
		y, h := k.bar.PillY, k.bar.PillH
		fillInset(k.surf, s.Fg, p.X, y, p.W, h, m.Border, s.Rounding)
		textW := p.W
		if p.Trash {
			textW -= m.Trash
		}
		k.surf.DrawText(s.Text, p.X, y, textW, h, m.TextPad, k.barLabel(k.suggestions[i]), s.Font)
		if p.Trash {
			k.surf.DrawText(s.Text, p.X+p.W-m.Trash, y, m.Trash, h, m.TrashPad, "×", s.Font)
		}
	}
}

// drawTrail paints the swipe path with each point faded by age and by path
// distance from the newest point. Under time-only fading an expired trail is
// discarded once the swipe has ended.
func (k *Keyboard) drawTrail() {
	tr := k.opts.Trail
	n := len(k.points)
	if !tr.Enabled || n < 2 || (tr.FadeMS == 0 && tr.FadeDistance <= 0) {
		return
	}

	last := k.points[n-1].Time
	now := k.trailNow
	if now == 0 {
		now = last
	}
	if tr.FadeMS > 0 && now > last && now-last > tr.FadeMS && tr.FadeDistance <= 0 {
		if k.input != inputSwipe {
			k.points = k.points[:0]
		}
		return
	}

	dist := make([]float64, n)
	if tr.FadeDistance > 0 {
		for i := n - 2; i >= 0; i-- {
			dx := k.points[i+1].X - k.points[i].X
			dy := k.points[i+1].Y - k.points[i].Y
			dist[i] = dist[i+1] + math.Hypot(dx, dy)
		}
	}

	xs := make([]float64, n)
	ys := make([]float64, n)
	alphas := make([]uint8, n)
	for i, p := range k.points {
		xs[i], ys[i] = p.X, p.Y

		byTime := 1.0
		if tr.FadeMS > 0 {
			var dt uint32
			if now >= p.Time {
				dt = now - p.Time
			}
			byTime = 1 - float64(dt)/float64(tr.FadeMS)
		}
		byDist := 1.0
		if tr.FadeDistance > 0 {
			byDist = 1 - dist[i]/tr.FadeDistance
		}
		a := math.Max(0, math.Min(1, math.Min(byTime, byDist)))
		alphas[i] = uint8(math.RoundToEven(a * 255))
	}
	k.surf.DrawFadedPolyline(tr.Color, tr.Width, xs, ys, alphas)
}
