package strait

import (
	"errors"
	"testing"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g, err := NewGame(DefaultConfig())
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	return g
}

func advanceTo(t *testing.T, g *Game, p PhaseKind) {
	t.Helper()
	for g.Phase() != p {
		if err := g.AdvancePhase(); err != nil {
			t.Fatalf("advance to %s: %v", p, err)
		}
	}
}

func TestGame_MoveUnit_PhaseGate(t *testing.T) {
	g := newTestGame(t)
	id := g.AddUnit(NewLandUnit("inf", FactionROC, Infantry, 310, 310, 1000))

	// Planning phase: every move is rejected, even a valid destination.
	err := g.MoveUnit(id, 360, 310)
	var pe *PhaseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected PhaseError outside Movement, got %v", err)
	}
	u, _ := g.Unit(id)
	if u.Pos.X != 310 || u.Pos.Y != 310 {
		t.Error("rejected move must not mutate position")
	}
}

func TestGame_MoveUnit(t *testing.T) {
	g := newTestGame(t)
	id := g.AddUnit(NewLandUnit("inf", FactionROC, Infantry, 310, 310, 1000))
	advanceTo(t, g, PhaseMovement)

	if err := g.MoveUnit(id, 360, 310); err != nil {
		t.Fatalf("move failed: %v", err)
	}
	u, _ := g.Unit(id)
	if u.Pos.X != 360 || u.Pos.Y != 310 {
		t.Errorf("expected position (360,310), got (%v,%v)", u.Pos.X, u.Pos.Y)
	}
	if u.Stats.SupplyLevel >= 1.0 {
		t.Error("movement must consume supply")
	}

	// One unit means a movement budget of one.
	err := g.MoveUnit(id, 365, 310)
	var pe *PhaseError
	if !errors.As(err, &pe) {
		t.Errorf("expected PhaseError after budget exhaustion, got %v", err)
	}
}

func TestGame_MoveUnit_Invalid(t *testing.T) {
	g := newTestGame(t)
	id := g.AddUnit(NewLandUnit("inf", FactionROC, Infantry, 310, 310, 1000))
	advanceTo(t, g, PhaseMovement)

	if err := g.MoveUnit(id, 100, 100); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("land unit into open water: expected ErrInvalidMove, got %v", err)
	}
	if err := g.MoveUnit(id, -5, -5); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("off-map destination: expected ErrInvalidMove, got %v", err)
	}
	if err := g.MoveUnit(9999, 360, 310); !errors.Is(err, ErrUnitNotFound) {
		t.Errorf("unknown unit: expected ErrUnitNotFound, got %v", err)
	}

	u, _ := g.Unit(id)
	u.Stats.SupplyLevel = 0.01
	if err := g.MoveUnit(id, 360, 310); !errors.Is(err, ErrInsufficientSupplies) {
		t.Errorf("expected ErrInsufficientSupplies, got %v", err)
	}
	if u.Pos.X != 310 {
		t.Error("failed move must not mutate position")
	}
}

func TestGame_AttackUnit(t *testing.T) {
	g := newTestGame(t)
	attID := g.AddUnit(NewLandUnit("armor", FactionPRC, Armor, 300, 300, 1000))
	defID := g.AddUnit(NewLandUnit("inf", FactionROC, Infantry, 303, 300, 5000))
	def, _ := g.Unit(defID)
	def.Stats.Strength = 50 // one good hit finishes it

	// Combat actions are phase gated.
	var pe *PhaseError
	if _, err := g.AttackUnit(attID, defID); !errors.As(err, &pe) {
		t.Fatalf("expected PhaseError outside Combat, got %v", err)
	}

	advanceTo(t, g, PhaseCombat)
	res, err := g.AttackUnit(attID, defID)
	if err != nil {
		t.Fatalf("attack failed: %v", err)
	}
	if res.AttackerID != attID || res.DefenderID != defID {
		t.Error("result must carry both combatant IDs")
	}

	// With the default seed the opening strike lands and the return
	// fire misses; the crippled defender is wiped out.
	if !res.AttackerHit {
		t.Fatal("expected the opening strike to land")
	}
	if def.Status != StatusDestroyed {
		t.Fatalf("expected destroyed defender, got %s", def.Status)
	}
	if g.Casualties(FactionROC) != 1 {
		t.Errorf("expected 1 casualty recorded, got %d", g.Casualties(FactionROC))
	}

	events := g.DrainEvents()
	var sawHit, sawDestroyed bool
	for _, e := range events {
		switch e.Kind {
		case EventHit:
			sawHit = true
		case EventUnitDestroyed:
			sawDestroyed = true
		}
	}
	if !sawHit || !sawDestroyed {
		t.Errorf("expected Hit and UnitDestroyed events, got %v", events)
	}
	if len(g.DrainEvents()) != 0 {
		t.Error("drain must clear the queue")
	}
}

func TestGame_AttackUnit_OutOfRange(t *testing.T) {
	g := newTestGame(t)
	attID := g.AddUnit(NewLandUnit("armor", FactionPRC, Armor, 300, 300, 1000))
	defID := g.AddUnit(NewLandUnit("inf", FactionROC, Infantry, 500, 300, 1000))
	advanceTo(t, g, PhaseCombat)

	if _, err := g.AttackUnit(attID, defID); !errors.Is(err, ErrInvalidAttack) {
		t.Errorf("expected ErrInvalidAttack, got %v", err)
	}
}

func TestGame_ResupplyUnit(t *testing.T) {
	g := newTestGame(t)
	city := &City{Name: "Depot", Faction: FactionROC, X: 310, Y: 300, Storage: 1000}
	g.Store().AddCity(city)
	id := g.AddUnit(NewLandUnit("inf", FactionROC, Infantry, 315, 300, 1000))
	u, _ := g.Unit(id)
	u.Stats.SupplyLevel = 0.2
	g.RebuildNetworks()

	var pe *PhaseError
	if err := g.ResupplyUnit(id); !errors.As(err, &pe) {
		t.Fatalf("expected PhaseError outside Supply, got %v", err)
	}

	advanceTo(t, g, PhaseSupply)
	if err := g.ResupplyUnit(id); err != nil {
		t.Fatalf("resupply failed: %v", err)
	}
	if u.Stats.SupplyLevel != 1.0 {
		t.Errorf("expected topped-up supply, got %v", u.Stats.SupplyLevel)
	}
	if city.Storage >= 1000 {
		t.Error("delivery must draw down depot storage")
	}
	if g.SupplyConsumed() <= 0 {
		t.Error("global supply-consumed statistic must accumulate")
	}
}

func TestGame_ResupplyUnit_NoSource(t *testing.T) {
	g := newTestGame(t)
	id := g.AddUnit(NewLandUnit("inf", FactionROC, Infantry, 500, 300, 1000))
	g.RebuildNetworks()
	advanceTo(t, g, PhaseSupply)

	if err := g.ResupplyUnit(id); !errors.Is(err, ErrNoSupplySource) {
		t.Errorf("expected ErrNoSupplySource, got %v", err)
	}
}

func TestGame_RoadInterdiction(t *testing.T) {
	g := newTestGame(t)
	city := &City{Name: "Depot", Faction: FactionROC, X: 310, Y: 300, Storage: 1000}
	g.Store().AddCity(city)
	id := g.AddUnit(NewLandUnit("inf", FactionROC, Infantry, 340, 300, 1000))
	roadID := g.Store().AddRoad(&Road{
		Name: "crossing", Class: MainRoad,
		X1: 325, Y1: 290, X2: 325, Y2: 310, Condition: 1.0,
	})
	g.RebuildNetworks()

	if !g.Supply().IsSupplied(id) {
		t.Fatal("unit should start supplied")
	}
	if err := g.MineRoad(roadID); err != nil {
		t.Fatalf("mine road: %v", err)
	}
	if g.Supply().IsSupplied(id) {
		t.Error("mining the sole crossing must sever the unit")
	}
	if err := g.ClearRoad(roadID); err != nil {
		t.Fatalf("clear road: %v", err)
	}
	if !g.Supply().IsSupplied(id) {
		t.Error("clearing mines must restore the route")
	}
	if err := g.BombRoad(roadID, 0.9); err != nil {
		t.Fatalf("bomb road: %v", err)
	}
	if g.Supply().IsSupplied(id) {
		t.Error("a cratered crossing must sever the unit")
	}
	if err := g.BombRoad(9999, 0.5); !errors.Is(err, ErrRoadNotFound) {
		t.Errorf("expected ErrRoadNotFound, got %v", err)
	}
}

// A unit beyond every source's reach bleeds supply at end of turn and
// eventually becomes too starved to repair.
func TestGame_SupplyAttrition(t *testing.T) {
	g := newTestGame(t)
	city := &City{Name: "Ruin", Faction: FactionROC, X: 310, Y: 300, Storage: 1000, Damage: 0.8}
	g.Store().AddCity(city)
	id := g.AddUnit(NewLandUnit("inf", FactionROC, Infantry, 305, 300, 1000))
	u, _ := g.Unit(id)
	g.RebuildNetworks()

	prev := u.Stats.SupplyLevel
	for i := 0; i < 6; i++ {
		if err := g.EndTurn(); err != nil {
			t.Fatalf("end turn %d: %v", i+1, err)
		}
		if u.Stats.SupplyLevel > prev {
			t.Fatalf("turn %d: supply level rose from %v to %v without resupply",
				i+1, prev, u.Stats.SupplyLevel)
		}
		prev = u.Stats.SupplyLevel
	}
	if u.Stats.SupplyLevel >= 0.5 {
		t.Fatalf("expected starvation below 0.5, got %v", u.Stats.SupplyLevel)
	}
	u.Stats.Strength = 500
	if err := g.RepairUnit(id); !errors.Is(err, ErrInsufficientSupplies) {
		t.Errorf("starved unit must be ineligible for repair, got %v", err)
	}
}

func TestGame_RepairUnit(t *testing.T) {
	g := newTestGame(t)
	city := &City{Name: "Depot", Faction: FactionROC, X: 310, Y: 300, Storage: 1000}
	g.Store().AddCity(city)
	id := g.AddUnit(NewLandUnit("inf", FactionROC, Infantry, 305, 300, 1000))
	u, _ := g.Unit(id)
	u.Stats.Strength = 500

	if err := g.RepairUnit(id); err != nil {
		t.Fatalf("repair failed: %v", err)
	}
	if u.Stats.Strength != 520 { // 20 x supply level 1.0
		t.Errorf("expected 520 strength after repair, got %v", u.Stats.Strength)
	}

	lone := g.AddUnit(NewLandUnit("lost", FactionROC, Infantry, 600, 500, 1000))
	var ue *UnitError
	if err := g.RepairUnit(lone); !errors.As(err, &ue) {
		t.Errorf("no facility in range: expected UnitError, got %v", err)
	}
}

func TestGame_EntrenchUnit(t *testing.T) {
	g := newTestGame(t)
	id := g.AddUnit(NewLandUnit("inf", FactionROC, Infantry, 310, 310, 1000))

	// Digging in is ordered during Planning and spends a planning point.
	if err := g.EntrenchUnit(id); err != nil {
		t.Fatalf("entrench during planning: %v", err)
	}
	u, _ := g.Unit(id)
	if u.Status != StatusEntrenched {
		t.Errorf("expected entrenched status, got %s", u.Status)
	}
	if got := g.turns.Budget(); got != 9 {
		t.Errorf("expected planning budget 9 after one order, got %d", got)
	}

	advanceTo(t, g, PhaseMovement)
	var pe *PhaseError
	if err := g.EntrenchUnit(id); !errors.As(err, &pe) {
		t.Errorf("expected PhaseError outside Planning, got %v", err)
	}
}

func TestGame_TurnLimit(t *testing.T) {
	g := newTestGame(t)

	g.turns.turn = 29
	if g.IsOver() {
		t.Fatal("turn 29 of 30 must not end the game")
	}
	g.turns.turn = 30
	out := g.Outcome()
	if !out.Over {
		t.Fatal("turn 30 of 30 must end the game")
	}
	if out.Reason != VictoryTurnLimit {
		t.Errorf("expected turn-limit reason, got %s", out.Reason)
	}
	if out.Winner != "" {
		t.Errorf("time expiry alone is a draw, got winner %q", out.Winner)
	}
	if err := g.AdvancePhase(); !errors.Is(err, ErrGameOver) {
		t.Errorf("expected ErrGameOver, got %v", err)
	}
}

func TestGame_VictoryByCityControl(t *testing.T) {
	g := newTestGame(t)
	g.Store().AddCity(&City{Name: "Alpha", Faction: FactionROC, X: 310, Y: 310, Storage: 100, Key: true})
	g.Store().AddCity(&City{Name: "Bravo", Faction: FactionROC, X: 360, Y: 360, Storage: 100, Key: true})
	invader := g.AddUnit(NewLandUnit("armor", FactionPRC, Armor, 312, 312, 1000))
	g.AddUnit(NewLandUnit("garrison", FactionROC, Infantry, 500, 100, 1000))
	g.RebuildNetworks()

	// Starting ownership alone never ends the game.
	if g.IsOver() {
		t.Fatal("defender's starting ownership must not trigger victory")
	}

	if err := g.EndTurn(); err != nil {
		t.Fatalf("turn 1: %v", err)
	}
	cityA, _ := g.Store().CityByName("Alpha")
	if cityA.Faction != FactionPRC {
		t.Fatalf("unopposed occupier should capture Alpha, holder is %s", cityA.Faction)
	}
	if g.IsOver() {
		t.Fatal("half the key cities is below the control fraction")
	}

	advanceTo(t, g, PhaseMovement)
	if err := g.MoveUnit(invader, 358, 358); err != nil {
		t.Fatalf("advance on Bravo: %v", err)
	}
	if err := g.EndTurn(); err != nil {
		t.Fatalf("turn 2: %v", err)
	}

	out := g.Outcome()
	if !out.Over || out.Winner != FactionPRC || out.Reason != VictoryCityControl {
		t.Fatalf("expected city-control victory for %s, got %+v", FactionPRC, out)
	}
}

func TestGame_VictoryByCasualties(t *testing.T) {
	g := newTestGame(t)
	g.AddUnit(NewLandUnit("a1", FactionPRC, Infantry, 310, 310, 100))
	g.AddUnit(NewLandUnit("a2", FactionPRC, Infantry, 320, 310, 100))
	g.AddUnit(NewLandUnit("d1", FactionROC, Infantry, 400, 310, 100))
	g.AddUnit(NewLandUnit("d2", FactionROC, Infantry, 410, 310, 100))

	g.casualties[FactionROC] = 1 // half the fielded pool
	out := g.Outcome()
	if !out.Over || out.Winner != FactionPRC || out.Reason != VictoryCasualties {
		t.Fatalf("expected casualty victory for %s, got %+v", FactionPRC, out)
	}
}

func TestGame_VictoryByCasualties_MutualBreak(t *testing.T) {
	g := newTestGame(t)
	g.AddUnit(NewLandUnit("a1", FactionPRC, Infantry, 310, 310, 100))
	g.AddUnit(NewLandUnit("a2", FactionPRC, Infantry, 320, 310, 100))
	g.AddUnit(NewLandUnit("d1", FactionROC, Infantry, 400, 310, 100))
	g.AddUnit(NewLandUnit("d2", FactionROC, Infantry, 410, 310, 100))

	// Both sides past the threshold: the game ends at once, nobody wins.
	g.casualties[FactionPRC] = 1
	g.casualties[FactionROC] = 1
	out := g.Outcome()
	if !out.Over {
		t.Fatal("mutual collapse must end the game, not run to the turn limit")
	}
	if out.Reason != VictoryCasualties {
		t.Errorf("expected casualty reason, got %s", out.Reason)
	}
	if out.Winner != "" {
		t.Errorf("mutual collapse is a draw, got winner %q", out.Winner)
	}
}

func TestGame_Queries(t *testing.T) {
	g, err := NewDefaultGame()
	if err != nil {
		t.Fatalf("default game: %v", err)
	}

	if g.Weather() != Clear || g.TimeOfDay() != Dawn {
		t.Error("default campaign opens on a clear dawn")
	}
	if k := g.TerrainAt(100, 100); k != Water {
		t.Errorf("the strait is water, got %s", k)
	}
	if k := g.TerrainAt(-50, -50); k != Water {
		t.Errorf("off-map reads as water, got %s", k)
	}
	units := g.UnitsInRange(320, 380, 60)
	if len(units) == 0 {
		t.Error("expected defenders around Taipei")
	}
	if lvl, err := g.SupplyLevel(units[0].ID); err != nil || lvl <= 0 {
		t.Errorf("expected positive supply level, got %v err %v", lvl, err)
	}
	if !g.IsPositionVisible(330, 370) {
		t.Error("a garrison's own position should be visible")
	}
}
