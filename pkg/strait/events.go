package strait

// EventKind classifies the structured events the engine emits.
type EventKind int

const (
	EventHit EventKind = iota
	EventUnitDestroyed
	EventUnitRetreated
	EventMissileIntercepted
	EventSupplyDisrupted
	EventCityCaptured
	EventTurnEnded
	EventWeatherChanged
)

func (k EventKind) String() string {
	switch k {
	case EventHit:
		return "hit"
	case EventUnitDestroyed:
		return "unit_destroyed"
	case EventUnitRetreated:
		return "unit_retreated"
	case EventMissileIntercepted:
		return "missile_intercepted"
	case EventSupplyDisrupted:
		return "supply_disrupted"
	case EventCityCaptured:
		return "city_captured"
	case EventTurnEnded:
		return "turn_ended"
	case EventWeatherChanged:
		return "weather_changed"
	default:
		return "unknown"
	}
}

// Event records one observable engine occurrence. Meaning of the ID and
// Damage fields depends on the kind; Detail carries a human-readable
// qualifier such as a city or weather name.
type Event struct {
	Kind     EventKind `json:"kind"`
	Turn     int       `json:"turn"`
	UnitID   int       `json:"unitId,omitempty"`
	TargetID int       `json:"targetId,omitempty"`
	Damage   float64   `json:"damage,omitempty"`
	Detail   string    `json:"detail,omitempty"`
}

// eventQueue accumulates events between drains. The facade appends,
// the caller drains once per turn; there are no registered listeners.
type eventQueue struct {
	pending []Event
}

func (q *eventQueue) push(e Event) {
	q.pending = append(q.pending, e)
}

// drain returns the queued events and clears the queue.
func (q *eventQueue) drain() []Event {
	out := q.pending
	q.pending = nil
	return out
}
