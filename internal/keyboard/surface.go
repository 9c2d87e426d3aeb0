package keyboard

import "github.com/atomicstack/swipekbd/internal/theme"

// Surface is the rendering collaborator. Coordinates are in surface units
// (pixels for a raster surface, cells for a terminal); the keyboard never
// touches pixels directly.
type Surface interface {
	FillRect(c theme.Color, x, y, w, h, rounding int)
	// OverlayRect blends c over what is already drawn.
	OverlayRect(c theme.Color, x, y, w, h, rounding int)
	DrawText(c theme.Color, x, y, w, h, padding int, text, font string)
	MeasureText(text, font string) (w, h int)
	DrawFadedPolyline(c theme.Color, width int, xs, ys []float64, alphas []uint8)
}

type nopSurface struct{}

func (nopSurface) FillRect(theme.Color, int, int, int, int, int) {}
func (nopSurface) OverlayRect(theme.Color, int, int, int, int, int) {}
func (nopSurface) DrawText(theme.Color, int, int, int, int, int, string, string) {}
func (nopSurface) MeasureText(text, font string) (int, int) { return len(text), 1 }
func (nopSurface) DrawFadedPolyline(theme.Color, int, []float64, []float64, []uint8) {}

func fillInset(s Surface, c theme.Color, x, y, w, h, border, rounding int) {
	w, h = w-2*border, h-2*border
	if w <= 0 || h <= 0 {
		return
	}
	s.FillRect(c, x+border, y+border, w, h, rounding)
}

func overlayInset(s Surface, c theme.Color, x, y, w, h, border, rounding int) {
	w, h = w-2*border, h-2*border
	if w <= 0 || h <= 0 {
		return
	}
	s.OverlayRect(c, x+border, y+border, w, h, rounding)
}
