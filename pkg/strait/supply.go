package strait

import "sort"

// Default operating limits, in kilometers, for supply throw and
// interdiction.
const (
	DefaultMaxSupplyRange = 50.0
	supplyLineBuffer      = 50.0
)

// SupplyNetwork maps each supply-capable source to the units it can
// sustain. Connectivity is derived data: Recompute rebuilds it from
// scratch, it is never patched incrementally.
type SupplyNetwork struct {
	maxRange  float64
	buffer    float64
	connected map[string][]int
}

// NewSupplyNetwork creates an empty network with the given maximum
// supply throw distance.
func NewSupplyNetwork(maxRange float64) *SupplyNetwork {
	if maxRange <= 0 {
		maxRange = DefaultMaxSupplyRange
	}
	return &SupplyNetwork{
		maxRange:  maxRange,
		buffer:    supplyLineBuffer,
		connected: make(map[string][]int),
	}
}

// Recompute rebuilds the full connectivity map. It must run at end of
// turn and after any action that damages or mines a road, because a
// road crossing below the passability threshold invalidates previously
// valid routes.
func (n *SupplyNetwork) Recompute(store *EntityStore) {
	fresh := make(map[string][]int)
	roads := store.Roads()
	for _, faction := range store.Factions() {
		for _, src := range store.SupplySources(faction) {
			if !src.CanSupply() {
				continue
			}
			sx, sy := src.Location()
			ids := make([]int, 0)
			for _, u := range store.FactionUnits(faction) {
				if n.lineClear(store, roads, sx, sy, faction, u) {
					ids = append(ids, u.ID)
				}
			}
			sort.Ints(ids)
			fresh[src.SourceID()] = ids
		}
	}
	n.connected = fresh
}

// Connected returns the unit IDs a source currently sustains.
func (n *SupplyNetwork) Connected(sourceID string) []int {
	return n.connected[sourceID]
}

// IsSupplied reports whether any source sustains the unit.
func (n *SupplyNetwork) IsSupplied(unitID int) bool {
	for _, ids := range n.connected {
		for _, id := range ids {
			if id == unitID {
				return true
			}
		}
	}
	return false
}

// Sources returns the IDs of every source that sustains the unit,
// sorted for stable iteration.
func (n *SupplyNetwork) Sources(unitID int) []string {
	out := make([]string, 0)
	for srcID, ids := range n.connected {
		for _, id := range ids {
			if id == unitID {
				out = append(out, srcID)
				break
			}
		}
	}
	sort.Strings(out)
	return out
}

// NearestSource picks the closest connected source for the unit.
func (n *SupplyNetwork) NearestSource(store *EntityStore, u *Unit) (SupplySource, float64, error) {
	var best SupplySource
	bestDist := 0.0
	for _, src := range store.SupplySources(u.Faction) {
		ids, ok := n.connected[src.SourceID()]
		if !ok {
			continue
		}
		linked := false
		for _, id := range ids {
			if id == u.ID {
				linked = true
				break
			}
		}
		if !linked {
			continue
		}
		sx, sy := src.Location()
		d := Distance(sx, sy, u.Pos.X, u.Pos.Y)
		if best == nil || d < bestDist {
			best, bestDist = src, d
		}
	}
	if best == nil {
		return nil, 0, ErrNoSupplySource
	}
	return best, bestDist, nil
}

// SupplyAmount computes how much a source can deliver to a unit at the
// given distance under the current weather, floored at zero.
func (n *SupplyNetwork) SupplyAmount(src SupplySource, dist float64, weather Weather) float64 {
	amount := src.StorageLevel() * 0.01 * (1000 - dist) / 1000 * weather.SupplyModifier()
	if amount < 0 {
		return 0
	}
	return amount
}

// lineClear reports whether the straight line from the source to the
// unit is a usable supply route: within throw range, every road whose
// bounding box the segment touches is passable, and no enemy combat
// unit sits astride the line.
func (n *SupplyNetwork) lineClear(store *EntityStore, roads []*Road, sx, sy float64, faction string, u *Unit) bool {
	dist := Distance(sx, sy, u.Pos.X, u.Pos.Y)
	if dist > n.maxRange {
		return false
	}
	segBox := BoxFromPoints(sx, sy, u.Pos.X, u.Pos.Y)
	for _, r := range roads {
		if segBox.Intersects(BoxFromPoints(r.X1, r.Y1, r.X2, r.Y2)) && !r.Passable() {
			return false
		}
	}
	for _, other := range store.Units() {
		if other.Faction == faction || !other.IsActive() {
			continue
		}
		if segmentPointDistance(sx, sy, u.Pos.X, u.Pos.Y, other.Pos.X, other.Pos.Y) <= n.buffer {
			return false
		}
	}
	return true
}
