// Package viewport tracks which rows of a session are on screen and
// scrolls them on the editor's behalf.
package viewport

import (
	"math"
	"sync"

	"github.com/dshills/caret/internal/editor"
	"github.com/dshills/caret/internal/engine/buffer"
)

var _ editor.Renderer = (*Viewport)(nil)

// Viewport represents the visible portion of the document.
type Viewport struct {
	mu sync.RWMutex

	// Position in the document (first visible row)
	topRow     int
	leftColumn int

	// Size in screen cells
	width  int
	height int

	// Scroll margins (keep cursor this far from edges)
	marginTop    int
	marginBottom int
	marginLeft   int
	marginRight  int

	// Scroll animation state
	targetTopRow int
	animating    bool
	smoothScroll bool

	// Number of document rows; 0 means unknown
	rowCount int
}

// New creates a viewport with the given size.
// Width and height are clamped to a minimum of 1.
func New(width, height int) *Viewport {
	m := DefaultMargins()
	return &Viewport{
		width:        max(width, 1),
		height:       max(height, 1),
		marginTop:    m.Top,
		marginBottom: m.Bottom,
		marginLeft:   m.Left,
		marginRight:  m.Right,
		smoothScroll: true,
	}
}

// Width returns the viewport width.
func (v *Viewport) Width() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.width
}

// Height returns the viewport height.
func (v *Viewport) Height() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.height
}

// ScrollTop returns the first visible row.
func (v *Viewport) ScrollTop() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.topRow
}

// FirstRow returns the first visible row.
func (v *Viewport) FirstRow() int {
	return v.ScrollTop()
}

// LastRow returns the last visible row.
func (v *Viewport) LastRow() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.bottomRow()
}

func (v *Viewport) bottomRow() int {
	bottom := v.topRow + v.height - 1
	if v.rowCount > 0 {
		bottom = min(bottom, v.rowCount-1)
	}
	return bottom
}

// LeftColumn returns the first visible column.
func (v *Viewport) LeftColumn() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.leftColumn
}

// Resize updates the viewport size.
func (v *Viewport) Resize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.width = max(width, 1)
	v.height = max(height, 1)
}

// SetRowCount records the document length so scrolling stays in range.
func (v *Viewport) SetRowCount(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rowCount = max(n, 0)
	v.topRow = v.clampTop(v.topRow)
	v.targetTopRow = v.clampTop(v.targetTopRow)
}

// SetMargins sets the scroll margins.
func (v *Viewport) SetMargins(m MarginConfig) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.marginTop = m.Top
	v.marginBottom = m.Bottom
	v.marginLeft = m.Left
	v.marginRight = m.Right
}

// SetSmoothScroll enables or disables animated scrolling.
func (v *Viewport) SetSmoothScroll(enabled bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.smoothScroll = enabled
	if !enabled {
		v.stopAnimationLocked()
	}
}

// IsRowVisible reports whether row is on screen.
func (v *Viewport) IsRowVisible(row int) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return row >= v.topRow && row <= v.bottomRow()
}

// ToScreen converts a document row and display column to screen
// coordinates. It returns (-1, -1) when the position is off screen.
func (v *Viewport) ToScreen(row, col int) (screenRow, screenCol int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if row < v.topRow || row > v.bottomRow() || col < v.leftColumn || col >= v.leftColumn+v.width {
		return -1, -1
	}
	return row - v.topRow, col - v.leftColumn
}

// ScrollTo puts row at the top of the view.
func (v *Viewport) ScrollTo(row int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.jumpLocked(v.clampTop(row))
}

// ScrollBy scrolls by delta rows.
func (v *Viewport) ScrollBy(delta int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.jumpLocked(v.clampTop(v.topRow + delta))
}

// PageDown scrolls down by one page, keeping two rows of overlap.
func (v *Viewport) PageDown() { v.ScrollBy(max(v.Height()-2, 1)) }

// PageUp scrolls up by one page, keeping two rows of overlap.
func (v *Viewport) PageUp() { v.ScrollBy(-max(v.Height()-2, 1)) }

// ScrollCursorIntoView scrolls until cursor is clear of the margins. With
// a non-zero offset a scroll places the cursor that fraction of the
// height from the top instead of at the nearest margin.
func (v *Viewport) ScrollCursorIntoView(cursor buffer.Point, offset float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.revealLocked(cursor, offset)
}

// ScrollSelectionIntoView reveals anchor, then lead, so the lead wins
// when both cannot fit.
func (v *Viewport) ScrollSelectionIntoView(anchor, lead buffer.Point) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.revealLocked(anchor, 0)
	v.revealLocked(lead, 0)
}

// AnimateScrolling turns the jump from fromScrollTop to the current
// top row into an animation advanced by Update.
func (v *Viewport) AnimateScrolling(fromScrollTop int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.smoothScroll || fromScrollTop == v.topRow {
		return
	}
	v.targetTopRow = v.topRow
	v.topRow = v.clampTop(fromScrollTop)
	v.animating = v.topRow != v.targetTopRow
}

// IsAnimating reports whether a scroll animation is in progress.
func (v *Viewport) IsAnimating() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.animating
}

// Update advances the scroll animation by dt seconds and reports
// whether the view moved.
func (v *Viewport) Update(dt float64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.animating {
		return false
	}

	diff := float64(v.targetTopRow - v.topRow)
	// Exponential decay: about 20% of the distance per frame at 60fps.
	move := diff * (1.0 - math.Pow(0.1, dt*10))
	if math.Abs(move) < 1.0 {
		move = math.Copysign(1.0, diff)
	}
	if math.Abs(move) >= math.Abs(diff) {
		v.topRow = v.targetTopRow
	} else {
		v.topRow += int(move)
	}
	if v.topRow == v.targetTopRow {
		v.animating = false
	}
	return true
}

// StopAnimation jumps to the end of any animation in progress.
func (v *Viewport) StopAnimation() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.stopAnimationLocked()
}

func (v *Viewport) stopAnimationLocked() {
	if v.animating {
		v.topRow = v.targetTopRow
		v.animating = false
	}
}

// jumpLocked moves without animation.
func (v *Viewport) jumpLocked(top int) {
	v.topRow = top
	v.targetTopRow = top
	v.animating = false
}

func (v *Viewport) revealLocked(p buffer.Point, offset float64) {
	// Reveal against where an animation is heading.
	v.stopAnimationLocked()
	m := v.clampMargins(MarginConfig{Top: v.marginTop, Bottom: v.marginBottom, Left: v.marginLeft, Right: v.marginRight})

	top := v.topRow
	switch {
	case p.Row < top+m.Top, p.Row > top+v.height-1-m.Bottom:
		if offset != 0 {
			top = p.Row - int(offset*float64(v.height))
		} else if p.Row < top+m.Top {
			top = p.Row - m.Top
		} else {
			top = p.Row - v.height + 1 + m.Bottom
		}
	}
	v.jumpLocked(v.clampTop(top))

	switch col := p.Column - v.leftColumn; {
	case col < m.Left:
		v.leftColumn = max(p.Column-m.Left, 0)
	case col >= v.width-m.Right:
		v.leftColumn = p.Column - v.width + m.Right + 1
	}
}

func (v *Viewport) clampTop(top int) int {
	if v.rowCount > 0 {
		top = min(top, v.rowCount-1)
	}
	return max(top, 0)
}
