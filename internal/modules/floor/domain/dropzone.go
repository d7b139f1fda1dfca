package domain

// Bounds is a table view's hit region in absolute screen coordinates,
// measured after layout. Hit-testing during a drag uses global pointer
// coordinates, so parent-relative bounds would miss.
type Bounds struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains reports whether the point falls inside the bounds.
// Zero-sized bounds (not yet measured) match nothing.
func (b Bounds) Contains(x, y float64) bool {
	if b.Width <= 0 || b.Height <= 0 {
		return false
	}
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}

// DropZone is a candidate drop target: one currently visible table, its
// screen bounds and the capacity/availability metadata drops are validated
// against. Zones are snapshots of current layout, never persisted.
type DropZone struct {
	TableID     int    `json:"tableId"`
	Bounds      Bounds `json:"bounds"`
	MinCapacity int    `json:"minCapacity"`
	MaxCapacity int    `json:"maxCapacity"`
	Available   bool   `json:"available"`
}
