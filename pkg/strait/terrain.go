package strait

// TerrainKind classifies a map tile.
type TerrainKind int

const (
	Water TerrainKind = iota
	Coast
	Plains
	Forest
	Mountain
	Urban
)

func (k TerrainKind) String() string {
	switch k {
	case Water:
		return "water"
	case Coast:
		return "coast"
	case Plains:
		return "plains"
	case Forest:
		return "forest"
	case Mountain:
		return "mountain"
	case Urban:
		return "urban"
	default:
		return "unknown"
	}
}

// TerrainBonus holds the combat and movement multipliers a terrain kind
// grants to units fighting or moving on it.
type TerrainBonus struct {
	Offense     float64
	Defense     float64
	Speed       float64
	Concealment float64
}

// Bonus returns the base multipliers for the terrain kind.
func (k TerrainKind) Bonus() TerrainBonus {
	switch k {
	case Water:
		return TerrainBonus{Offense: 1.0, Defense: 1.0, Speed: 1.0, Concealment: 0.0}
	case Coast:
		return TerrainBonus{Offense: 0.8, Defense: 1.2, Speed: 0.7, Concealment: 0.1}
	case Forest:
		return TerrainBonus{Offense: 0.8, Defense: 1.4, Speed: 0.7, Concealment: 0.5}
	case Mountain:
		return TerrainBonus{Offense: 0.6, Defense: 1.6, Speed: 0.4, Concealment: 0.3}
	case Urban:
		return TerrainBonus{Offense: 0.7, Defense: 1.5, Speed: 0.9, Concealment: 0.4}
	default:
		return TerrainBonus{Offense: 1.0, Defense: 1.0, Speed: 1.0, Concealment: 0.0}
	}
}

// TerrainRules maps terrain, unit class, weather and time of day to the
// movement-cost and combat multipliers used by the facade and the combat
// resolver.
type TerrainRules struct{}

// NewTerrainRules returns the standard rule set.
func NewTerrainRules() *TerrainRules {
	return &TerrainRules{}
}

// MovementCost returns the cost multiplier for one distance unit of
// movement across the given terrain. Higher is slower. Air units ignore
// terrain; naval units only traverse water.
func (r *TerrainRules) MovementCost(k TerrainKind, kind UnitKind, w Weather, t TimeOfDay) float64 {
	if kind == KindAir {
		return 1.0
	}
	if kind == KindShip {
		if k != Water && k != Coast {
			return 0 // impassable
		}
		return 1.0
	}

	if k == Water {
		return 0 // impassable
	}
	bonus := k.Bonus()
	if bonus.Speed <= 0 {
		return 0
	}
	cost := 1.0 / bonus.Speed

	// Bad weather and darkness slow ground movement.
	switch w {
	case Rain:
		cost *= 1.25
	case Storm:
		cost *= 1.5
	}
	if t == Night {
		cost *= 1.25
	}
	return cost
}

// DefenseMultiplier returns the defensive terrain multiplier for a
// defender of the given kind. Ships and aircraft take no cover from
// ground terrain.
func (r *TerrainRules) DefenseMultiplier(k TerrainKind, kind UnitKind) float64 {
	if kind != KindLand {
		return 1.0
	}
	return k.Bonus().Defense
}

// AttackMultiplier returns the offensive terrain multiplier for an
// attacker of the given kind.
func (r *TerrainRules) AttackMultiplier(k TerrainKind, kind UnitKind) float64 {
	if kind != KindLand {
		return 1.0
	}
	return k.Bonus().Offense
}

// Tile is one cell of the generated map grid.
type Tile struct {
	Kind     TerrainKind
	CenterX  float64
	CenterY  float64
	Size     float64
	Row, Col int
}

// Contains reports whether a point falls within the tile's square extent.
func (t *Tile) Contains(x, y float64) bool {
	half := t.Size / 2
	return x >= t.CenterX-half && x < t.CenterX+half &&
		y >= t.CenterY-half && y < t.CenterY+half
}

// MapParams controls map generation.
type MapParams struct {
	Width    int     `json:"width"`    // columns
	Height   int     `json:"height"`   // rows
	TileSize float64 `json:"tileSize"` // world units per tile edge
	// SeaCols is the number of westernmost columns generated as open
	// water (the strait itself).
	SeaCols int `json:"seaCols"`
}

// DefaultMapParams returns the standard strait map: open water to the
// west, a coastal strip, then mixed inland terrain.
func DefaultMapParams() MapParams {
	return MapParams{Width: 16, Height: 12, TileSize: 50, SeaCols: 5}
}

// TileMap is the generated grid of tiles.
type TileMap struct {
	Params MapParams
	Tiles  []Tile
}

// GenerateMap builds a deterministic tile grid from the parameters.
// Terrain east of the sea columns alternates by a fixed pattern so that
// scenarios are reproducible without a map file.
func GenerateMap(p MapParams) *TileMap {
	tiles := make([]Tile, 0, p.Width*p.Height)
	for row := 0; row < p.Height; row++ {
		for col := 0; col < p.Width; col++ {
			kind := terrainFor(p, row, col)
			tiles = append(tiles, Tile{
				Kind:    kind,
				CenterX: (float64(col) + 0.5) * p.TileSize,
				CenterY: (float64(row) + 0.5) * p.TileSize,
				Size:    p.TileSize,
				Row:     row,
				Col:     col,
			})
		}
	}
	return &TileMap{Params: p, Tiles: tiles}
}

func terrainFor(p MapParams, row, col int) TerrainKind {
	switch {
	case col < p.SeaCols:
		return Water
	case col == p.SeaCols:
		return Coast
	case (row+col)%7 == 0:
		return Urban
	case (row+col)%5 == 0:
		return Mountain
	case (row+col)%3 == 0:
		return Forest
	default:
		return Plains
	}
}

// TileAt returns the tile containing the point, or nil if the point is
// off the map.
func (m *TileMap) TileAt(x, y float64) *Tile {
	if x < 0 || y < 0 {
		return nil
	}
	col := int(x / m.Params.TileSize)
	row := int(y / m.Params.TileSize)
	if col >= m.Params.Width || row >= m.Params.Height {
		return nil
	}
	return &m.Tiles[row*m.Params.Width+col]
}

// TileIndex returns the slice index of the tile containing the point,
// or -1 if off-map.
func (m *TileMap) TileIndex(x, y float64) int {
	t := m.TileAt(x, y)
	if t == nil {
		return -1
	}
	return t.Row*m.Params.Width + t.Col
}

// TilesInRange returns the indices of all tiles whose center is within
// the given range of the point.
func (m *TileMap) TilesInRange(x, y, rng float64) []int {
	var out []int
	for i := range m.Tiles {
		if Distance(x, y, m.Tiles[i].CenterX, m.Tiles[i].CenterY) <= rng {
			out = append(out, i)
		}
	}
	return out
}
