package viewport

// MarginConfig holds scroll margin configuration.
type MarginConfig struct {
	Top    int // Rows to keep above cursor
	Bottom int // Rows to keep below cursor
	Left   int // Columns to keep left of cursor
	Right  int // Columns to keep right of cursor
}

// DefaultMargins returns the margins a new viewport starts with.
func DefaultMargins() MarginConfig {
	return MarginConfig{Top: 2, Bottom: 2, Left: 4, Right: 4}
}

// NoMargins lets the cursor reach the edges.
func NoMargins() MarginConfig {
	return MarginConfig{}
}

// maxMarginRatio limits margins to 1/3 of the viewport dimension.
const maxMarginRatio = 3

// EffectiveMargins returns the margins adjusted for the viewport size.
func (v *Viewport) EffectiveMargins() MarginConfig {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.clampMargins(MarginConfig{
		Top:    v.marginTop,
		Bottom: v.marginBottom,
		Left:   v.marginLeft,
		Right:  v.marginRight,
	})
}

// clampMargins applies viewport size constraints to margins (internal, no lock).
func (v *Viewport) clampMargins(config MarginConfig) MarginConfig {
	maxVertical := v.height / maxMarginRatio
	config.Top = min(max(config.Top, 0), maxVertical)
	config.Bottom = min(max(config.Bottom, 0), maxVertical)

	maxHorizontal := v.width / maxMarginRatio
	config.Left = min(max(config.Left, 0), maxHorizontal)
	config.Right = min(max(config.Right, 0), maxHorizontal)
	return config
}
