package strait

// Faction names used by the standard scenario.
const (
	FactionPRC = "China"
	FactionROC = "Taiwan"
)

// LoadDefaultScenario populates a fresh game with the standard strait
// campaign: Taiwanese cities, ports and air bases on the island side of
// the map, an invasion force staged in the western sea columns, and the
// road net linking the cities. Networks are rebuilt once everything is
// placed.
func LoadDefaultScenario(g *Game) {
	store := g.Store()

	taipei := &City{
		Name: "Taipei", Faction: FactionROC,
		X: 320, Y: 380,
		Population: 2600000, Industry: 1.0,
		Morale: 1.0, Defenses: 0.5,
		Storage: 100000, Key: true,
	}
	kaohsiung := &City{
		Name: "Kaohsiung", Faction: FactionROC,
		X: 540, Y: 100,
		Population: 2700000, Industry: 0.8,
		Morale: 1.0, Defenses: 0.5,
		Storage: 100000, Key: true,
	}
	tainan := &City{
		Name: "Tainan", Faction: FactionROC,
		X: 480, Y: 150,
		Population: 1900000, Industry: 0.6,
		Morale: 1.0, Defenses: 0.4,
		Storage: 100000,
	}
	store.AddCity(taipei)
	store.AddCity(kaohsiung)
	store.AddCity(tainan)

	store.AddPort(&Port{
		Name: "Port of Kaohsiung", Faction: FactionROC,
		X: 530, Y: 90, Capacity: 6, Storage: 50000,
	})
	store.AddAirBase(&AirBase{
		Name: "Chiayi AB", Faction: FactionROC,
		X: 450, Y: 200, RunwayLength: 3000, Hangars: 24, Storage: 30000,
	})

	store.AddRoad(&Road{
		Name: "Freeway 1", Class: Highway,
		X1: taipei.X, Y1: taipei.Y, X2: kaohsiung.X, Y2: kaohsiung.Y,
		Condition: 1.0,
	})
	store.AddRoad(&Road{
		Name: "Route 17", Class: MainRoad,
		X1: kaohsiung.X, Y1: kaohsiung.Y, X2: tainan.X, Y2: tainan.Y,
		Condition: 1.0,
	})

	// Defenders.
	g.AddUnit(NewLandUnit("6th Army Corps", FactionROC, Infantry, 330, 370, 5000))
	g.AddUnit(NewLandUnit("542nd Armor Brigade", FactionROC, Armor, 350, 340, 3000))
	g.AddUnit(NewLandUnit("21st Artillery Command", FactionROC, Artillery, 400, 300, 2000))
	g.AddUnit(NewShipUnit("ROCS Ma Kong", FactionROC, Destroyer, 500, 60))
	g.AddUnit(NewAirUnit("3rd TFW", FactionROC, FighterGen4, 440, 210))

	// Invasion force: lead brigades already ashore on the west coast,
	// escorts and air cover still over the strait.
	g.AddUnit(NewLandUnit("1st Amphibious Brigade", FactionPRC, Mechanized, 270, 300, 4000))
	g.AddUnit(NewLandUnit("73rd Group Army Lead", FactionPRC, Armor, 280, 260, 3500))
	g.AddUnit(NewShipUnit("CNS Nanchang", FactionPRC, Cruiser, 150, 280))
	g.AddUnit(NewShipUnit("CNS Yushu", FactionPRC, Transport, 130, 320))
	g.AddUnit(NewAirUnit("9th Fighter Brigade", FactionPRC, FighterGen5, 110, 350))

	g.RebuildNetworks()
}

// NewDefaultGame builds a game with the default config and scenario.
func NewDefaultGame() (*Game, error) {
	g, err := NewGame(DefaultConfig())
	if err != nil {
		return nil, err
	}
	LoadDefaultScenario(g)
	return g, nil
}
