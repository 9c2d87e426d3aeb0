package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/swipekbd/internal/theme"
)

// Canvas is a character-cell drawing surface for the keyboard. One surface
// unit is one terminal cell.
type Canvas struct {
	width  int
	height int
	cells  []cell
}

type cell struct {
	// ch is 0 for the trailing half of a double-width rune.
	ch rune
	fg theme.Color
	bg theme.Color
}

// NewCanvas allocates a blank canvas.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Resize reallocates the canvas, discarding its contents.
func (c *Canvas) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c.width, c.height = width, height
	c.cells = make([]cell, width*height)
	for i := range c.cells {
		c.cells[i] = cell{ch: ' '}
	}
}

// Size returns the canvas dimensions in cells.
func (c *Canvas) Size() (int, int) {
	return c.width, c.height
}

func (c *Canvas) at(x, y int) *cell {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return nil
	}
	return &c.cells[y*c.width+x]
}

func (c *Canvas) clip(x, y, w, h int) (x0, y0, x1, y1 int) {
	x0, y0 = max(x, 0), max(y, 0)
	x1, y1 = min(x+w, c.width), min(y+h, c.height)
	return
}

// FillRect paints an opaque rectangle, erasing any text under it. Rounded
// rectangles give up their last column so neighbouring keys stay distinct.
func (c *Canvas) FillRect(col theme.Color, x, y, w, h, rounding int) {
	if rounding > 0 && w > 2 {
		w--
	}
	x0, y0, x1, y1 := c.clip(x, y, w, h)
	for cy := y0; cy < y1; cy++ {
		for cx := x0; cx < x1; cx++ {
			c.cells[cy*c.width+cx] = cell{ch: ' ', fg: col, bg: col}
		}
	}
}

// OverlayRect blends col over the background of each covered cell.
func (c *Canvas) OverlayRect(col theme.Color, x, y, w, h, rounding int) {
	if rounding > 0 && w > 2 {
		w--
	}
	x0, y0, x1, y1 := c.clip(x, y, w, h)
	for cy := y0; cy < y1; cy++ {
		for cx := x0; cx < x1; cx++ {
			p := &c.cells[cy*c.width+cx]
			p.bg = col.Blend(p.bg)
		}
	}
}

// DrawText centres text in the rect, truncating it to the width left after
// padding on both sides.
func (c *Canvas) DrawText(col theme.Color, x, y, w, h, padding int, text, font string) {
	avail := w - 2*padding
	if avail <= 0 || h <= 0 || text == "" {
		return
	}
	if ansi.StringWidth(text) > avail {
		text = truncate.String(text, uint(avail))
	}
	cx := x + padding + (avail-ansi.StringWidth(text))/2
	cy := y + (h-1)/2
	for _, r := range text {
		rw := ansi.StringWidth(string(r))
		if rw == 0 {
			continue
		}
		c.put(cx, cy, r, col)
		if rw == 2 {
			c.put(cx+1, cy, 0, col)
		}
		cx += rw
	}
}

func (c *Canvas) put(x, y int, r rune, fg theme.Color) {
	p := c.at(x, y)
	if p == nil {
		return
	}
	p.ch = r
	p.fg = fg
}

// MeasureText reports the display width of text in cells; text is always
// one row tall.
func (c *Canvas) MeasureText(text, font string) (int, int) {
	return ansi.StringWidth(text), 1
}

// DrawFadedPolyline blends col over every cell the path crosses. Each
// segment takes the alpha of its newer end; a cell crossed twice keeps the
// stronger alpha.
func (c *Canvas) DrawFadedPolyline(col theme.Color, width int, xs, ys []float64, alphas []uint8) {
	n := min(len(xs), len(ys), len(alphas))
	if n < 2 {
		return
	}
	radius := 0
	if width > 1 {
		radius = (width - 1) / 2
	}
	strength := make(map[int]uint8)
	mark := func(x, y int, a uint8) {
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				px, py := x+dx, y+dy
				if c.at(px, py) == nil {
					continue
				}
				idx := py*c.width + px
				if a > strength[idx] {
					strength[idx] = a
				}
			}
		}
	}
	for i := 1; i < n; i++ {
		a := alphas[i]
		if a == 0 {
			continue
		}
		x0, y0 := xs[i-1], ys[i-1]
		dx, dy := xs[i]-x0, ys[i]-y0
		steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
		if steps < 1 {
			steps = 1
		}
		for s := 0; s <= steps; s++ {
			f := float64(s) / float64(steps)
			mark(int(math.Floor(x0+dx*f)), int(math.Floor(y0+dy*f)), a)
		}
	}
	for idx, a := range strength {
		p := &c.cells[idx]
		p.bg = col.WithAlpha(a).Blend(p.bg)
	}
}

// Text returns the canvas characters without colour, one line per row.
func (c *Canvas) Text() string {
	var b strings.Builder
	for y := 0; y < c.height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < c.width; x++ {
			if ch := c.cells[y*c.width+x].ch; ch != 0 {
				b.WriteRune(ch)
			}
		}
	}
	return b.String()
}

// Background returns the background colour of a cell, or 0 outside the
// canvas.
func (c *Canvas) Background(x, y int) theme.Color {
	if p := c.at(x, y); p != nil {
		return p.bg
	}
	return 0
}

// Render returns the canvas as styled terminal lines. Runs of cells sharing
// colours are rendered through a single style.
func (c *Canvas) Render() string {
	lines := make([]string, c.height)
	for y := 0; y < c.height; y++ {
		var line strings.Builder
		var run strings.Builder
		var cur cell
		flush := func() {
			if run.Len() == 0 {
				return
			}
			style := lipgloss.NewStyle().
				Foreground(cur.fg.Lipgloss()).
				Background(cur.bg.Lipgloss())
			line.WriteString(style.Render(run.String()))
			run.Reset()
		}
		for x := 0; x < c.width; x++ {
			p := c.cells[y*c.width+x]
			if p.ch == 0 {
				continue
			}
			if run.Len() > 0 && (p.fg != cur.fg || p.bg != cur.bg) {
				flush()
			}
			cur = p
			run.WriteRune(p.ch)
		}
		flush()
		lines[y] = line.String()
	}
	return strings.Join(lines, "\n")
}
