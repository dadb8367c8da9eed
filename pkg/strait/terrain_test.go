package strait

import (
	"reflect"
	"testing"
)

func TestTerrainRules_MovementCost(t *testing.T) {
	rules := NewTerrainRules()

	cases := []struct {
		name    string
		terrain TerrainKind
		kind    UnitKind
		want    float64
	}{
		{"land on plains", Plains, KindLand, 1.0},
		{"land on water impassable", Water, KindLand, 0},
		{"ship on water", Water, KindShip, 1.0},
		{"ship on plains impassable", Plains, KindShip, 0},
		{"air ignores terrain", Mountain, KindAir, 1.0},
	}
	for _, tc := range cases {
		if got := rules.MovementCost(tc.terrain, tc.kind, Clear, Day); got != tc.want {
			t.Errorf("%s: expected cost %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestTerrainRules_MovementCost_WeatherAndNight(t *testing.T) {
	rules := NewTerrainRules()
	base := rules.MovementCost(Plains, KindLand, Clear, Day)
	storm := rules.MovementCost(Plains, KindLand, Storm, Day)
	night := rules.MovementCost(Plains, KindLand, Clear, Night)

	if storm <= base {
		t.Errorf("storm should slow ground movement: base %v, storm %v", base, storm)
	}
	if night <= base {
		t.Errorf("night should slow ground movement: base %v, night %v", base, night)
	}
	// Weather never slows a ship's open-water transit here.
	if got := rules.MovementCost(Water, KindShip, Storm, Night); got != 1.0 {
		t.Errorf("expected ship cost 1.0 in storm, got %v", got)
	}
}

func TestTerrainRules_DefenseMultiplier(t *testing.T) {
	rules := NewTerrainRules()
	if got := rules.DefenseMultiplier(Mountain, KindLand); got != 1.6 {
		t.Errorf("expected mountain defense 1.6, got %v", got)
	}
	if got := rules.DefenseMultiplier(Mountain, KindAir); got != 1.0 {
		t.Errorf("aircraft take no cover from terrain, got %v", got)
	}
}

func TestGenerateMap_Deterministic(t *testing.T) {
	p := DefaultMapParams()
	a := GenerateMap(p)
	b := GenerateMap(p)
	if !reflect.DeepEqual(a.Tiles, b.Tiles) {
		t.Fatal("map generation should be deterministic for equal params")
	}
	if len(a.Tiles) != p.Width*p.Height {
		t.Fatalf("expected %d tiles, got %d", p.Width*p.Height, len(a.Tiles))
	}
}

func TestTileMap_TileAt(t *testing.T) {
	m := GenerateMap(DefaultMapParams())

	tile := m.TileAt(10, 10)
	if tile == nil {
		t.Fatal("expected a tile inside the map")
	}
	if tile.Kind != Water {
		t.Errorf("western columns are sea, got %s", tile.Kind)
	}
	if m.TileAt(-1, 10) != nil || m.TileAt(10, -1) != nil {
		t.Error("negative coordinates are off map")
	}
	if m.TileAt(10000, 10) != nil {
		t.Error("coordinates past the edge are off map")
	}
	if idx := m.TileIndex(-5, -5); idx != -1 {
		t.Errorf("expected -1 for off-map index, got %d", idx)
	}
}

func TestTileMap_TilesInRange(t *testing.T) {
	m := GenerateMap(DefaultMapParams())
	near := m.TilesInRange(400, 300, 60)
	far := m.TilesInRange(400, 300, 200)
	if len(near) == 0 {
		t.Fatal("expected tiles within 60 of map interior")
	}
	if len(far) <= len(near) {
		t.Errorf("larger radius should cover more tiles: %d vs %d", len(far), len(near))
	}
}
