package suggest

import "math"

// Metrics sizes the suggestion bar. Units are whatever the surface measures
// text in: pixels for a raster surface, cells for a terminal.
type Metrics struct {
	PadX      int
	PadY      int
	Gap       int
	Trash     int
	MinPill   int
	MaxPill   int
	MinCancel int
	MaxCancel int
	// Slack is how far beyond either edge a pill may sit and still be drawn.
	Slack int
	// TextPad and TrashPad are the text insets inside a pill and its trash
	// affordance. Border insets the pill background.
	TextPad  int
	TrashPad int
	Border   int
}

// DefaultMetrics returns pixel metrics for a raster surface.
func DefaultMetrics() Metrics {
	return Metrics{
		PadX:      8,
		PadY:      6,
		Gap:       8,
		Trash:     26,
		MinPill:   90,
		MaxPill:   260,
		MinCancel: 32,
		MaxCancel: 52,
		Slack:     64,
		TextPad:   4,
		TrashPad:  2,
		Border:    1,
	}
}

// CellMetrics returns metrics for a character-cell surface.
func CellMetrics() Metrics {
	return Metrics{
		PadX:      1,
		PadY:      0,
		Gap:       1,
		Trash:     3,
		MinPill:   8,
		MaxPill:   24,
		MinCancel: 3,
		MaxCancel: 3,
		Slack:     8,
	}
}

// Entry is the measured input for one pill.
type Entry struct {
	Label     string
	TextWidth int
	// Trash marks entries carrying a trash affordance (Word suggestions).
	Trash bool
}

// Rect is a bar-local rectangle.
type Rect struct {
	X, Y, W, H int
}

// Pill is the placement of one entry. W is zero for entries that were
// skipped because their label is empty.
type Pill struct {
	X      int
	W      int
	Trash  bool
	Hidden bool
}

// Bar is the computed layout of the suggestion bar.
type Bar struct {
	Width         int
	Height        int
	PillY         int
	PillH         int
	CancelVisible bool
	Cancel        Rect
	Pills         []Pill
	ContentWidth  float64
	MaxScroll     float64
	// Scroll is the clamped horizontal offset.
	Scroll  float64
	metrics Metrics
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Layout places entries left to right. When the content overflows the space
// left of the cancel box, pills are left anchored and scrollable; otherwise
// they are centred and scroll is forced to zero.
func Layout(entries []Entry, m Metrics, width, barHeight int, showCancel bool, scroll float64) Bar {
	b := Bar{
		Width:   width,
		Height:  barHeight,
		PillY:   m.PadY,
		PillH:   barHeight - 2*m.PadY,
		Pills:   make([]Pill, len(entries)),
		metrics: m,
	}
	if b.PillH < 0 {
		b.PillH = 0
	}

	reserved := 0
	if showCancel && b.PillH > 0 {
		w := clamp(b.PillH, m.MinCancel, m.MaxCancel)
		b.CancelVisible = true
		b.Cancel = Rect{X: m.PadX, Y: m.PadY, W: w, H: b.PillH}
		reserved = m.PadX + w + m.Gap
	}

	pills := 0
	pillsW := 0.0
	for i, e := range entries {
		if e.Label == "" {
			continue
		}
		afford := 0
		if e.Trash {
			afford = m.Trash
		}
		w := clamp(e.TextWidth+2*m.PadX+afford, m.MinPill, m.MaxPill)
		b.Pills[i] = Pill{W: w, Trash: e.Trash}
		pills++
		pillsW += float64(w)
	}
	if pills > 1 {
		pillsW += float64(m.Gap * (pills - 1))
	}

	avail := 0.0
	if reserved < width {
		avail = float64(width - reserved)
	}
	b.ContentWidth = pillsW + float64(2*m.PadX)
	b.MaxScroll = math.Max(0, b.ContentWidth-avail)
	b.Scroll = math.Min(math.Max(scroll, 0), b.MaxScroll)

	var x float64
	if b.MaxScroll <= 0 {
		b.Scroll = 0
		x = float64(reserved) + (avail-pillsW)/2
	} else {
		x = float64(reserved+m.PadX) - b.Scroll
	}

	for i := range b.Pills {
		p := &b.Pills[i]
		if p.W == 0 {
			continue
		}
		p.X = int(math.Round(x))
		if p.X+p.W < -m.Slack || p.X > width+m.Slack {
			p.Hidden = true
		}
		x += float64(p.W + m.Gap)
	}
	return b
}

// HitKind classifies a bar hit.
type HitKind int

const (
	HitNone HitKind = iota
	HitCancel
	HitPill
)

// Hit is the result of hit testing the bar.
type Hit struct {
	Kind  HitKind
	Index int
	Trash bool
}

// HitTest resolves a point in bar coordinates. Bounds are inclusive on both
// edges and the cancel box is checked before any pill.
func (b *Bar) HitTest(x, y int) Hit {
	if b.Height <= 0 || y < 0 || y >= b.Height {
		return Hit{Kind: HitNone}
	}
	if b.CancelVisible && b.Cancel.W > 0 && b.Cancel.H > 0 {
		c := b.Cancel
		if x >= c.X && x <= c.X+c.W && y >= c.Y && y <= c.Y+c.H {
			return Hit{Kind: HitCancel}
		}
	}
	for i, p := range b.Pills {
		if p.W == 0 {
			continue
		}
		if x >= p.X && x <= p.X+p.W {
			return Hit{
				Kind:  HitPill,
				Index: i,
				Trash: p.Trash && x >= p.X+p.W-b.metrics.Trash,
			}
		}
	}
	return Hit{Kind: HitNone}
}
