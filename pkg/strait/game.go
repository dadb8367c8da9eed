package strait

import (
	"fmt"
	"math/rand"
	"sort"
)

// Capture range, in kilometers, within which land units contest a city.
const cityCaptureRange = 10.0

// Game is the facade over the whole rules engine. Every mutation goes
// through its action methods, which validate phase and preconditions
// before writing any state. The game is single threaded: each action
// runs to completion before the next is accepted.
type Game struct {
	cfg    GameConfig
	store  *EntityStore
	rules  *TerrainRules
	tiles  *TileMap
	turns  *TurnController
	combat *CombatResolver
	supply *SupplyNetwork
	vision *VisibilityTracker
	rng    *rand.Rand
	events eventQueue

	casualties     map[string]int
	pool           map[string]int
	captured       map[string]int
	supplyConsumed float64
}

// NewGame builds an empty game from configuration. All randomness flows
// from the config seed, so identical configs and action sequences
// replay identically.
func NewGame(cfg GameConfig) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("game config: %w", err)
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	rules := NewTerrainRules()
	tiles := GenerateMap(cfg.Map)
	g := &Game{
		cfg:        cfg,
		store:      NewEntityStore(),
		rules:      rules,
		tiles:      tiles,
		turns:      NewTurnController(cfg.InitialWeather, cfg.PlanningBudget, rng),
		combat:     NewCombatResolver(rules, rng),
		supply:     NewSupplyNetwork(cfg.MaxSupplyRange),
		vision:     NewVisibilityTracker(tiles),
		rng:        rng,
		casualties: make(map[string]int),
		pool:       make(map[string]int),
		captured:   make(map[string]int),
	}
	return g, nil
}

// Config returns the immutable run parameters.
func (g *Game) Config() GameConfig { return g.cfg }

// Store exposes the entity store for scenario setup and read-only
// consumers. Gameplay mutations must go through the action methods.
func (g *Game) Store() *EntityStore { return g.store }

// AddUnit registers a unit and counts it toward its faction's fielded
// pool for casualty-rate bookkeeping.
func (g *Game) AddUnit(u *Unit) int {
	id := g.store.AddUnit(u)
	g.pool[u.Faction]++
	return id
}

// RebuildNetworks recomputes supply connectivity and the visibility
// layer from current state. Scenario setup calls this once after
// placing entities.
func (g *Game) RebuildNetworks() {
	g.supply.Recompute(g.store)
	g.vision.Recompute(g.store, g.turns.Weather(), g.turns.TimeOfDay())
}

// MoveUnit relocates a unit during the Movement phase. The destination
// must be on the map, passable for the unit's kind, and within its
// movement range; the move consumes supply proportional to the distance
// and the terrain's difficulty.
func (g *Game) MoveUnit(id int, x, y float64) error {
	if err := g.turns.RequirePhase(PhaseMovement, "move_unit"); err != nil {
		return err
	}
	u, err := g.store.Unit(id)
	if err != nil {
		return err
	}
	if !u.IsActive() {
		return fmt.Errorf("%w: unit %d cannot act", ErrInvalidMove, id)
	}
	tile := g.tiles.TileAt(x, y)
	if tile == nil {
		return fmt.Errorf("%w: destination off map", ErrInvalidMove)
	}
	cost := g.rules.MovementCost(tile.Kind, u.Kind, g.turns.Weather(), g.turns.TimeOfDay())
	if cost <= 0 {
		return fmt.Errorf("%w: %s impassable for %s unit", ErrInvalidMove, tile.Kind, u.Kind)
	}
	dist := Distance(u.Pos.X, u.Pos.Y, x, y)
	if dist > u.MovementRange() {
		return fmt.Errorf("%w: destination beyond movement range", ErrInvalidMove)
	}
	supplyCost := dist * 0.001 * cost
	if supplyCost > u.Stats.SupplyLevel {
		return fmt.Errorf("%w: move needs %.3f supply", ErrInsufficientSupplies, supplyCost)
	}
	if err := g.turns.ConsumeAction(); err != nil {
		return err
	}
	u.MoveTo(x, y)
	u.ConsumeSupply(supplyCost)
	return nil
}

// CanMoveTo reports whether MoveUnit would accept the destination,
// ignoring the current phase.
func (g *Game) CanMoveTo(id int, x, y float64) bool {
	u, err := g.store.Unit(id)
	if err != nil || !u.IsActive() {
		return false
	}
	tile := g.tiles.TileAt(x, y)
	if tile == nil {
		return false
	}
	cost := g.rules.MovementCost(tile.Kind, u.Kind, g.turns.Weather(), g.turns.TimeOfDay())
	if cost <= 0 {
		return false
	}
	dist := Distance(u.Pos.X, u.Pos.Y, x, y)
	return dist <= u.MovementRange() && dist*0.001*cost <= u.Stats.SupplyLevel
}

// AttackUnit resolves an engagement during the Combat phase and updates
// casualty statistics for any destroyed unit.
func (g *Game) AttackUnit(attackerID, defenderID int) (*CombatResult, error) {
	if err := g.turns.RequirePhase(PhaseCombat, "attack_unit"); err != nil {
		return nil, err
	}
	attacker, err := g.store.Unit(attackerID)
	if err != nil {
		return nil, err
	}
	defender, err := g.store.Unit(defenderID)
	if err != nil {
		return nil, err
	}
	if !attacker.CanAttack(defender) {
		return nil, fmt.Errorf("%w: unit %d cannot engage unit %d", ErrInvalidAttack, attackerID, defenderID)
	}
	if err := g.turns.ConsumeAction(); err != nil {
		return nil, err
	}

	terrain := Plains
	if tile := g.tiles.TileAt(defender.Pos.X, defender.Pos.Y); tile != nil {
		terrain = tile.Kind
	}
	res, err := g.combat.Resolve(attacker, defender, terrain, g.turns.Weather(), g.turns.TimeOfDay(), g.turns.Turn())
	if err != nil {
		return nil, err
	}

	disrupted := false
	for _, e := range res.Events {
		g.events.push(e)
		switch e.Kind {
		case EventUnitDestroyed:
			if u, uErr := g.store.Unit(e.UnitID); uErr == nil {
				g.casualties[u.Faction]++
			}
		case EventSupplyDisrupted:
			disrupted = true
		}
	}
	if disrupted {
		g.supply.Recompute(g.store)
	}
	return res, nil
}

// CanAttack reports whether the attacker could currently engage the
// defender, ignoring the phase.
func (g *Game) CanAttack(attackerID, defenderID int) bool {
	attacker, err := g.store.Unit(attackerID)
	if err != nil {
		return false
	}
	defender, err := g.store.Unit(defenderID)
	if err != nil {
		return false
	}
	return attacker.CanAttack(defender)
}

// BombardCity strikes a city with a unit during the Combat phase,
// degrading its defenses and infrastructure.
func (g *Game) BombardCity(unitID, cityID int) error {
	if err := g.turns.RequirePhase(PhaseCombat, "bombard_city"); err != nil {
		return err
	}
	u, err := g.store.Unit(unitID)
	if err != nil {
		return err
	}
	c, err := g.store.City(cityID)
	if err != nil {
		return err
	}
	if !u.IsActive() || u.Arsenal.Ammunition <= 0 {
		return fmt.Errorf("%w: unit %d cannot fire", ErrInvalidAttack, unitID)
	}
	if Distance(u.Pos.X, u.Pos.Y, c.X, c.Y) > u.AttackRange() {
		return fmt.Errorf("%w: city out of range", ErrInvalidAttack)
	}
	if err := g.turns.ConsumeAction(); err != nil {
		return err
	}
	u.Arsenal.Ammunition--
	severity := 0.1 * g.turns.Weather().CombatModifier() * (1 - c.Defenses*0.5)
	c.ApplyBombardment(severity)
	return nil
}

// RepairUnit restores strength to a unit sitting near a friendly
// facility. Repair takes supplies: a unit below half supply cannot be
// repaired. Repair amount is 20 points scaled by supply level.
func (g *Game) RepairUnit(id int) error {
	u, err := g.store.Unit(id)
	if err != nil {
		return err
	}
	if u.Status == StatusDestroyed {
		return &UnitError{UnitID: id, Reason: "destroyed units cannot be repaired"}
	}
	if !g.nearFriendlyFacility(u) {
		return &UnitError{UnitID: id, Reason: "no friendly facility in range"}
	}
	if u.Stats.SupplyLevel < 0.5 {
		return fmt.Errorf("%w: repair needs supply level 0.5", ErrInsufficientSupplies)
	}
	u.Repair(20 * u.Stats.SupplyLevel)
	return nil
}

func (g *Game) nearFriendlyFacility(u *Unit) bool {
	for _, src := range g.store.SupplySources(u.Faction) {
		sx, sy := src.Location()
		if Distance(u.Pos.X, u.Pos.Y, sx, sy) <= cityCaptureRange {
			return true
		}
	}
	return false
}

// ResupplyUnit delivers supplies from the nearest connected source
// during the Supply phase.
func (g *Game) ResupplyUnit(id int) error {
	if err := g.turns.RequirePhase(PhaseSupply, "resupply_unit"); err != nil {
		return err
	}
	u, err := g.store.Unit(id)
	if err != nil {
		return err
	}
	if u.Status == StatusDestroyed {
		return &UnitError{UnitID: id, Reason: "destroyed units cannot be resupplied"}
	}
	src, dist, err := g.supply.NearestSource(g.store, u)
	if err != nil {
		return err
	}
	amount := g.supply.SupplyAmount(src, dist, g.turns.Weather())
	if amount <= 0 {
		return ErrInsufficientSupplies
	}
	if err := g.turns.ConsumeAction(); err != nil {
		return err
	}
	drawn := src.DrawStorage(amount)
	u.ApplyResupply(Arsenal{
		Ammunition: int(drawn * 100),
		Fuel:       drawn * 50,
		Supplies:   int(drawn * 75),
	}, drawn)
	g.supplyConsumed += drawn
	return nil
}

// EntrenchUnit digs a land unit in. Entrenchment is ordered during
// Planning and spends a point of the planning budget.
func (g *Game) EntrenchUnit(id int) error {
	if err := g.turns.RequirePhase(PhasePlanning, "entrench_unit"); err != nil {
		return err
	}
	u, err := g.store.Unit(id)
	if err != nil {
		return err
	}
	if err := g.turns.ConsumeAction(); err != nil {
		return err
	}
	return u.Entrench()
}

// BombRoad degrades a road's condition and forces a supply rebuild,
// since a crossing below the passability threshold invalidates routes.
func (g *Game) BombRoad(id int, damage float64) error {
	r, err := g.store.Road(id)
	if err != nil {
		return err
	}
	r.Degrade(damage)
	g.supply.Recompute(g.store)
	return nil
}

// MineRoad mines a road and forces a supply rebuild.
func (g *Game) MineRoad(id int) error {
	r, err := g.store.Road(id)
	if err != nil {
		return err
	}
	r.Mined = true
	g.supply.Recompute(g.store)
	return nil
}

// ClearRoad removes mines from a road and forces a supply rebuild.
func (g *Game) ClearRoad(id int) error {
	r, err := g.store.Road(id)
	if err != nil {
		return err
	}
	r.Mined = false
	g.supply.Recompute(g.store)
	return nil
}

// AdvancePhase steps the turn state machine. Crossing from EndTurn into
// the next turn's Planning runs end-of-turn processing: attrition for
// cut-off units, city capture, environment rotation, and unconditional
// supply and visibility rebuilds.
func (g *Game) AdvancePhase() error {
	if g.Outcome().Over {
		return ErrGameOver
	}
	weatherBefore := g.turns.Weather()
	turnEnded := g.turns.Advance(len(g.store.ActiveUnits()))
	if !turnEnded {
		return nil
	}

	g.endOfTurnAttrition()
	g.captureCities()
	g.RebuildNetworks()

	g.events.push(Event{Kind: EventTurnEnded, Turn: g.turns.Turn() - 1})
	if w := g.turns.Weather(); w != weatherBefore {
		g.events.push(Event{Kind: EventWeatherChanged, Turn: g.turns.Turn(), Detail: w.String()})
	}
	return nil
}

// EndTurn advances through every remaining phase of the current turn.
func (g *Game) EndTurn() error {
	for {
		if err := g.AdvancePhase(); err != nil {
			return err
		}
		if g.turns.Phase() == PhasePlanning {
			return nil
		}
	}
}

// endOfTurnAttrition drains supply from units no source can reach and
// lets fatigue recover slightly for everyone else.
func (g *Game) endOfTurnAttrition() {
	for _, u := range g.store.Units() {
		if u.Status == StatusDestroyed {
			continue
		}
		if g.supply.IsSupplied(u.ID) {
			u.Stats.Fatigue = clamp(u.Stats.Fatigue-0.05, 0, 1)
		} else {
			u.ConsumeSupply(0.1)
		}
	}
}

// captureCities flips a city to an attacking faction when its land
// units hold the city unopposed.
func (g *Game) captureCities() {
	for _, c := range g.store.Cities() {
		var contender string
		contested := false
		for _, u := range g.store.ActiveUnits() {
			if u.Kind != KindLand {
				continue
			}
			if Distance(u.Pos.X, u.Pos.Y, c.X, c.Y) > cityCaptureRange {
				continue
			}
			if u.Faction == c.Faction {
				contested = true
				break
			}
			if contender == "" {
				contender = u.Faction
			} else if contender != u.Faction {
				contested = true
				break
			}
		}
		if contested || contender == "" {
			continue
		}
		c.Faction = contender
		g.captured[contender]++
		g.events.push(Event{Kind: EventCityCaptured, Turn: g.turns.Turn(), Detail: c.Name})
	}
}

// Outcome runs the canonical victory predicate against current state.
func (g *Game) Outcome() Outcome {
	return evaluateVictory(g.cfg, g.store, g.turns.Turn(), g.casualties, g.pool, g.captured)
}

// IsOver reports whether any victory predicate has fired.
func (g *Game) IsOver() bool { return g.Outcome().Over }

// Winner returns the winning faction, or empty while the game runs or
// on a draw.
func (g *Game) Winner() string { return g.Outcome().Winner }

// DrainEvents returns and clears the queued events. The caller drains
// once per turn; the engine never invokes callbacks.
func (g *Game) DrainEvents() []Event { return g.events.drain() }

// Queries.

// Unit returns the unit with the given ID.
func (g *Game) Unit(id int) (*Unit, error) { return g.store.Unit(id) }

// City returns the city with the given ID.
func (g *Game) City(id int) (*City, error) { return g.store.City(id) }

// Road returns the road with the given ID.
func (g *Game) Road(id int) (*Road, error) { return g.store.Road(id) }

// UnitsInRange returns units within radius of a point.
func (g *Game) UnitsInRange(x, y, radius float64) []*Unit {
	return g.store.UnitsInRange(x, y, radius)
}

// SupplyLevel returns a unit's current supply level.
func (g *Game) SupplyLevel(id int) (float64, error) {
	u, err := g.store.Unit(id)
	if err != nil {
		return 0, err
	}
	return u.Stats.SupplyLevel, nil
}

// Supply exposes the supply network for read-only inspection.
func (g *Game) Supply() *SupplyNetwork { return g.supply }

// Turn returns the current turn number.
func (g *Game) Turn() int { return g.turns.Turn() }

// Phase returns the current phase.
func (g *Game) Phase() PhaseKind { return g.turns.Phase() }

// PhaseBudget returns the remaining action budget of the current phase.
func (g *Game) PhaseBudget() int { return g.turns.Budget() }

// Weather returns the current weather.
func (g *Game) Weather() Weather { return g.turns.Weather() }

// TimeOfDay returns the current time of day.
func (g *Game) TimeOfDay() TimeOfDay { return g.turns.TimeOfDay() }

// TerrainAt returns the terrain kind at a position. Off-map positions
// read as water.
func (g *Game) TerrainAt(x, y float64) TerrainKind {
	tile := g.tiles.TileAt(x, y)
	if tile == nil {
		return Water
	}
	return tile.Kind
}

// IsPositionVisible reports whether the shared visibility layer covers
// the position.
func (g *Game) IsPositionVisible(x, y float64) bool {
	return g.vision.VisibleAt(x, y)
}

// Casualties returns how many of a faction's units have been destroyed.
func (g *Game) Casualties(faction string) int { return g.casualties[faction] }

// FieldedUnits returns how many units a faction has fielded in total.
func (g *Game) FieldedUnits(faction string) int { return g.pool[faction] }

// Participants returns every faction that has fielded at least one
// unit, sorted, including factions with no surviving units.
func (g *Game) Participants() []string {
	out := make([]string, 0, len(g.pool))
	for f := range g.pool {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// SupplyConsumed returns the cumulative supplies delivered this game.
func (g *Game) SupplyConsumed() float64 { return g.supplyConsumed }
