package strait

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by facade actions. All are recoverable: the
// action is rejected before any state is written.
var (
	ErrInvalidMove          = errors.New("invalid move")
	ErrInvalidAttack        = errors.New("invalid attack")
	ErrInsufficientSupplies = errors.New("insufficient supplies")
	ErrUnitNotFound         = errors.New("unit not found")
	ErrCityNotFound         = errors.New("city not found")
	ErrRoadNotFound         = errors.New("road not found")
	ErrHubNotFound          = errors.New("hub not found")
	ErrNoSupplySource       = errors.New("no viable supply source")
	ErrGameOver             = errors.New("game is over")
)

// PhaseError reports an action attempted in the wrong phase or with an
// exhausted phase budget.
type PhaseError struct {
	Phase  PhaseKind
	Action string
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("action %q not legal in %s phase", e.Action, e.Phase)
}

// ValidationError reports a configuration or scenario field the engine
// cannot run with.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// UnitError reports an action rejected because of the target unit's state.
type UnitError struct {
	UnitID int
	Reason string
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("unit %d: %s", e.UnitID, e.Reason)
}
