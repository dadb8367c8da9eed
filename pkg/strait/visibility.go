package strait

// VisibilityTracker maintains a single shared tile-indexed visibility
// layer: the union of every active unit's vision circle. Like supply
// connectivity it is derived data, rebuilt whole on each recompute.
type VisibilityTracker struct {
	tiles   *TileMap
	visible map[int]bool
}

// NewVisibilityTracker tracks visibility over the given map.
func NewVisibilityTracker(tiles *TileMap) *VisibilityTracker {
	return &VisibilityTracker{
		tiles:   tiles,
		visible: make(map[int]bool),
	}
}

// Recompute rebuilds the layer from every active unit's attenuated
// vision circle.
func (v *VisibilityTracker) Recompute(store *EntityStore, weather Weather, tod TimeOfDay) {
	fresh := make(map[int]bool)
	atten := weather.VisionAttenuation() * tod.VisionAttenuation()
	for _, u := range store.ActiveUnits() {
		radius := u.BaseVision() * atten
		for _, idx := range v.tiles.TilesInRange(u.Pos.X, u.Pos.Y, radius) {
			fresh[idx] = true
		}
	}
	v.visible = fresh
}

// Visible reports whether the tile at the given index is seen.
func (v *VisibilityTracker) Visible(tileIndex int) bool {
	return v.visible[tileIndex]
}

// VisibleAt reports whether the position falls on a seen tile.
// Positions off the map are never visible.
func (v *VisibilityTracker) VisibleAt(x, y float64) bool {
	idx := v.tiles.TileIndex(x, y)
	if idx < 0 {
		return false
	}
	return v.visible[idx]
}

// VisibleCount returns how many tiles are currently seen.
func (v *VisibilityTracker) VisibleCount() int {
	return len(v.visible)
}
