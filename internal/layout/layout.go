package layout

import "math"

// Layout is one keyboard face. Keys are terminated by a single Last sentinel
// and partitioned into rows by EndRow markers.
type Layout struct {
	Name   string
	Keymap string
	// Abc marks a primary alphabetic input layout.
	Abc  bool
	Keys []Key

	// KeyHeight is the absolute row height computed by Arrange.
	KeyHeight uint32
}

// Rows counts the rows of the layout.
func (l *Layout) Rows() int {
	rows := 0
	for i := range l.Keys {
		if l.Keys[i].Kind == Last {
			break
		}
		if l.Keys[i].Kind == EndRow {
			rows++
		}
	}
	return rows + 1
}

// rowLength sums the relative widths from start up to the next row boundary.
func (l *Layout) rowLength(start int) float64 {
	length := 0.0
	for i := start; i < len(l.Keys); i++ {
		k := &l.Keys[i]
		if k.Kind == Last || k.Kind == EndRow {
			break
		}
		length += k.Width
	}
	return length
}

// Arrange computes the absolute rect of every key so each row spans exactly
// width pixels. Each key ends on the ceiling of its ideal right edge, so
// truncation losses are handed out one pixel at a time; the last key of a
// row absorbs whatever float rounding leaves over.
func (l *Layout) Arrange(width, height, yOffset uint32) {
	rows := uint32(l.Rows())
	l.KeyHeight = height / rows

	var x uint32
	y := yOffset
	rowLength := l.rowLength(0)
	rowUnits := 0.0
	for i := range l.Keys {
		k := &l.Keys[i]
		if k.Kind == Last {
			k.Rect = Rect{X: x, Y: y, H: l.KeyHeight}
			break
		}
		switch {
		case k.Kind == EndRow:
			k.Rect = Rect{X: x, Y: y, H: l.KeyHeight}
			y += l.KeyHeight
			x = 0
			rowUnits = 0
			rowLength = l.rowLength(i + 1)
			continue
		case k.Width > 0:
			rowUnits += k.Width
			end := uint32(math.Ceil(rowUnits/rowLength*float64(width) - 1e-6))
			if end > width || l.lastInRow(i) {
				end = width
			}
			if end < x {
				end = x
			}
			k.Rect = Rect{X: x, Y: y, W: end - x}
			x = end
		default:
			k.Rect = Rect{X: x, Y: y}
		}
		k.Rect.H = l.KeyHeight
	}
}

// lastInRow reports whether no key with width follows i in its row.
func (l *Layout) lastInRow(i int) bool {
	for j := i + 1; j < len(l.Keys); j++ {
		k := &l.Keys[j]
		if k.Kind == Last || k.Kind == EndRow {
			return true
		}
		if k.Width > 0 {
			return false
		}
	}
	return true
}

// KeyAt returns the first pressable key whose rect contains the point, or
// nil. Callers filter out the suggestion bar region themselves.
func (l *Layout) KeyAt(x, y uint32) *Key {
	for i := range l.Keys {
		k := &l.Keys[i]
		if k.Kind == Last {
			return nil
		}
		if !k.Pressable() {
			continue
		}
		if k.Rect.Contains(x, y) {
			return k
		}
	}
	return nil
}
