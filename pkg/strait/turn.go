package strait

import (
	"math"
	"math/rand"
)

// PhaseKind enumerates the phases of one turn. The sequence is strictly
// linear: Planning, Movement, Combat, Supply, EndTurn, then the next
// turn's Planning.
type PhaseKind int

const (
	PhasePlanning PhaseKind = iota
	PhaseMovement
	PhaseCombat
	PhaseSupply
	PhaseEndTurn
)

func (p PhaseKind) String() string {
	switch p {
	case PhasePlanning:
		return "planning"
	case PhaseMovement:
		return "movement"
	case PhaseCombat:
		return "combat"
	case PhaseSupply:
		return "supply"
	case PhaseEndTurn:
		return "end_turn"
	default:
		return "unknown"
	}
}

// next returns the following phase in the fixed sequence.
func (p PhaseKind) next() PhaseKind {
	if p == PhaseEndTurn {
		return PhasePlanning
	}
	return p + 1
}

// weatherShiftChance is the per-turn probability that the weather
// transitions to a uniformly drawn state.
const weatherShiftChance = 0.3

// TurnController is the phase and turn state machine. It gates which
// action classes are legal, meters them with per-phase budgets, and
// rotates the environment at end of turn.
type TurnController struct {
	turn      int
	phase     PhaseKind
	budget    int
	weather   Weather
	timeOfDay TimeOfDay
	planning  int
	rng       *rand.Rand
}

// NewTurnController starts at turn 1 in the Planning phase.
// The generator drives weather transitions and must be the same one the
// combat resolver uses for reproducible runs.
func NewTurnController(initial Weather, planningBudget int, rng *rand.Rand) *TurnController {
	return &TurnController{
		turn:      1,
		phase:     PhasePlanning,
		budget:    planningBudget,
		weather:   initial,
		timeOfDay: Dawn,
		planning:  planningBudget,
		rng:       rng,
	}
}

func (t *TurnController) Turn() int            { return t.turn }
func (t *TurnController) Phase() PhaseKind     { return t.phase }
func (t *TurnController) Budget() int          { return t.budget }
func (t *TurnController) Weather() Weather     { return t.weather }
func (t *TurnController) TimeOfDay() TimeOfDay { return t.timeOfDay }

// RequirePhase fails with a PhaseError unless the controller is in the
// given phase. Action names the attempted operation for the error.
func (t *TurnController) RequirePhase(p PhaseKind, action string) error {
	if t.phase != p {
		return &PhaseError{Phase: t.phase, Action: action}
	}
	return nil
}

// ConsumeAction spends one point of the active phase's budget. It fails
// with a PhaseError when the budget is exhausted or the phase has no
// budget concept.
func (t *TurnController) ConsumeAction() error {
	if t.phase == PhaseEndTurn {
		return &PhaseError{Phase: t.phase, Action: "consume_action"}
	}
	if t.budget <= 0 {
		return &PhaseError{Phase: t.phase, Action: "consume_action"}
	}
	t.budget--
	return nil
}

// SupplyBudget returns the supply-points budget for the given live unit
// count. Larger armies get economies of scale.
func SupplyBudget(unitCount int) int {
	return 2*unitCount + int(math.Floor(math.Sqrt(float64(unitCount))))
}

// Advance moves to the next phase, computing the new phase's budget
// from the live unit count. Advancing out of EndTurn increments the
// turn, rotates time of day and rolls the weather; it returns true in
// that case so the caller can rebuild derived state.
func (t *TurnController) Advance(liveUnits int) (turnEnded bool) {
	t.phase = t.phase.next()
	switch t.phase {
	case PhasePlanning:
		t.budget = t.planning
		t.turn++
		t.rotateEnvironment()
		return true
	case PhaseMovement, PhaseCombat:
		t.budget = liveUnits
	case PhaseSupply:
		t.budget = SupplyBudget(liveUnits)
	case PhaseEndTurn:
		t.budget = 0
	}
	return false
}

func (t *TurnController) rotateEnvironment() {
	t.timeOfDay = t.timeOfDay.Next()
	if t.rng.Float64() < weatherShiftChance {
		t.weather = Weather(t.rng.Intn(4))
	}
}

// restore rewinds the controller to a snapshotted state.
func (t *TurnController) restore(turn int, phase PhaseKind, budget int, w Weather, tod TimeOfDay) {
	t.turn = turn
	t.phase = phase
	t.budget = budget
	t.weather = w
	t.timeOfDay = tod
}
