package suggest

import "testing"

func TestLayoutCentresWhenContentFits(t *testing.T) {
	m := DefaultMetrics()
	entries := []Entry{{Label: "the", TextWidth: 20, Trash: true}, {Label: "then", TextWidth: 30, Trash: true}}
	b := Layout(entries, m, 800, 48, false, 120)
	if b.Scroll != 0 {
		t.Fatalf("expected scroll forced to zero, got %v", b.Scroll)
	}
	// both pills clamp up to the minimum width
	if b.Pills[0].W != 90 || b.Pills[1].W != 90 {
		t.Fatalf("expected min pill widths, got %+v", b.Pills)
	}
	pillsW := 90 + 90 + 8
	wantX := (800 - pillsW) / 2
	if b.Pills[0].X != wantX {
		t.Fatalf("expected first pill at %d, got %d", wantX, b.Pills[0].X)
	}
	if b.Pills[1].X != wantX+98 {
		t.Fatalf("expected second pill at %d, got %d", wantX+98, b.Pills[1].X)
	}
	if b.PillH != 36 || b.PillY != 6 {
		t.Fatalf("expected pill rect y=6 h=36, got y=%d h=%d", b.PillY, b.PillH)
	}
}

func TestLayoutClampsPillWidth(t *testing.T) {
	b := Layout([]Entry{{Label: "x", TextWidth: 1000}}, DefaultMetrics(), 400, 48, false, 0)
	if b.Pills[0].W != 260 {
		t.Fatalf("expected pill clamped to 260, got %d", b.Pills[0].W)
	}
}

func TestLayoutScrollsWhenOverflowing(t *testing.T) {
	m := DefaultMetrics()
	entries := make([]Entry, 6)
	for i := range entries {
		entries[i] = Entry{Label: "word", TextWidth: 300, Trash: true}
	}
	b := Layout(entries, m, 400, 48, true, 10000)
	if !b.CancelVisible || b.Cancel.W != 36 {
		t.Fatalf("expected cancel box of width 36, got %+v", b.Cancel)
	}
	reserved := 8 + 36 + 8
	content := float64(6*260+5*8) + 16
	if b.ContentWidth != content {
		t.Fatalf("expected content width %v, got %v", content, b.ContentWidth)
	}
	maxScroll := content - float64(400-reserved)
	if b.Scroll != maxScroll {
		t.Fatalf("expected scroll clamped to %v, got %v", maxScroll, b.Scroll)
	}
	if !b.Pills[0].Hidden {
		t.Fatal("expected the first pill to be hidden when scrolled to the end")
	}
	if b.Pills[5].Hidden {
		t.Fatal("expected the last pill to be visible when scrolled to the end")
	}

	b = Layout(entries, m, 400, 48, true, -50)
	if b.Scroll != 0 {
		t.Fatalf("expected negative scroll clamped to 0, got %v", b.Scroll)
	}
	if b.Pills[0].X != reserved+8 {
		t.Fatalf("expected first pill left anchored at %d, got %d", reserved+8, b.Pills[0].X)
	}
}

func TestLayoutSkipsEmptyLabels(t *testing.T) {
	b := Layout([]Entry{{Label: ""}, {Label: "ok", TextWidth: 10}}, DefaultMetrics(), 400, 48, false, 0)
	if b.Pills[0].W != 0 {
		t.Fatalf("expected empty entry skipped, got %+v", b.Pills[0])
	}
	if hit := b.HitTest(b.Pills[1].X+1, 10); hit.Kind != HitPill || hit.Index != 1 {
		t.Fatalf("expected hit on pill 1, got %+v", hit)
	}
}

func TestHitTest(t *testing.T) {
	m := DefaultMetrics()
	entries := []Entry{{Label: "+ zz", TextWidth: 20}, {Label: "zzz", TextWidth: 20, Trash: true}}
	b := Layout(entries, m, 400, 48, true, 0)

	if hit := b.HitTest(b.Cancel.X+b.Cancel.W, b.Cancel.Y+b.Cancel.H); hit.Kind != HitCancel {
		t.Fatalf("expected inclusive cancel hit, got %+v", hit)
	}
	p := b.Pills[1]
	if hit := b.HitTest(p.X, 20); hit.Kind != HitPill || hit.Index != 1 || hit.Trash {
		t.Fatalf("expected plain hit on word pill, got %+v", hit)
	}
	if hit := b.HitTest(p.X+p.W, 20); hit.Kind != HitPill || !hit.Trash {
		t.Fatalf("expected trash hit on right edge, got %+v", hit)
	}
	add := b.Pills[0]
	if hit := b.HitTest(add.X+add.W, 20); hit.Kind != HitPill || hit.Trash {
		t.Fatalf("expected add-word pill without trash, got %+v", hit)
	}
	if hit := b.HitTest(p.X+2, 48); hit.Kind != HitNone {
		t.Fatalf("expected no hit below the bar, got %+v", hit)
	}
}
