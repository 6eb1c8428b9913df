// Package terminal is the tcell frontend: it projects simulation snapshots
// onto the cell grid, maps keys to movement intent and commands, and shows
// the post-run summary with tview
package terminal

import (
	"math"

	"github.com/lixenwraith/oncoarena/vmath"
)

// Projection maps arena coordinates to screen cells
// The arena is stretched to fill Cols x Rows below Top rows of HUD
type Projection struct {
	Arena vmath.Rect
	Cols  int
	Rows  int
	Top   int
}

// NewProjection fits arena into a screen of width x height cells
func NewProjection(arena vmath.Rect, width, height, hudRows int) Projection {
	return Projection{
		Arena: arena,
		Cols:  max(width-2, 1),
		Rows:  max(height-hudRows-2, 1),
		Top:   hudRows + 1,
	}
}

// Cell returns the screen cell for p; ok is false outside the arena
func (pr Projection) Cell(p vmath.Vec2) (x, y int, ok bool) {
	w, h := pr.Arena.Width(), pr.Arena.Height()
	if w <= 0 || h <= 0 || !p.Finite() {
		return 0, 0, false
	}
	fx := (p.X - pr.Arena.Min.X) / w
	fy := (p.Y - pr.Arena.Min.Y) / h
	if fx < 0 || fx > 1 || fy < 0 || fy > 1 {
		return 0, 0, false
	}
	cx := min(int(fx*float64(pr.Cols)), pr.Cols-1)
	cy := min(int(fy*float64(pr.Rows)), pr.Rows-1)
	return cx + 1, cy + pr.Top, true
}

// Span returns the cell radius of an arena distance along each axis
func (pr Projection) Span(r float64) (cols, rows int) {
	w, h := pr.Arena.Width(), pr.Arena.Height()
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	return int(math.Round(r / w * float64(pr.Cols))), int(math.Round(r / h * float64(pr.Rows)))
}
