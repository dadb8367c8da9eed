package strait

// Weather represents the current battlefield weather.
type Weather int

const (
	Clear Weather = iota
	Rain
	Storm
	Fog
)

func (w Weather) String() string {
	switch w {
	case Clear:
		return "clear"
	case Rain:
		return "rain"
	case Storm:
		return "storm"
	case Fog:
		return "fog"
	default:
		return "unknown"
	}
}

// CombatModifier returns the multiplier weather applies to attack power.
func (w Weather) CombatModifier() float64 {
	switch w {
	case Rain:
		return 0.8
	case Storm:
		return 0.6
	case Fog:
		return 0.7
	default:
		return 1.0
	}
}

// VisionAttenuation returns the multiplier weather applies to vision range.
func (w Weather) VisionAttenuation() float64 {
	switch w {
	case Rain:
		return 0.7
	case Storm:
		return 0.4
	case Fog:
		return 0.3
	default:
		return 1.0
	}
}

// SupplyModifier returns the multiplier weather applies to delivered
// supply amounts.
func (w Weather) SupplyModifier() float64 {
	switch w {
	case Rain:
		return 0.8
	case Storm:
		return 0.5
	case Fog:
		return 0.7
	default:
		return 1.0
	}
}

// TimeOfDay represents the battlefield time of day. It rotates once per
// turn: Dawn -> Day -> Dusk -> Night -> Dawn.
type TimeOfDay int

const (
	Dawn TimeOfDay = iota
	Day
	Dusk
	Night
)

func (t TimeOfDay) String() string {
	switch t {
	case Dawn:
		return "dawn"
	case Day:
		return "day"
	case Dusk:
		return "dusk"
	case Night:
		return "night"
	default:
		return "unknown"
	}
}

// Next returns the following time of day in the daily rotation.
func (t TimeOfDay) Next() TimeOfDay {
	switch t {
	case Dawn:
		return Day
	case Day:
		return Dusk
	case Dusk:
		return Night
	default:
		return Dawn
	}
}

// CombatModifier returns the multiplier time of day applies to attack power.
func (t TimeOfDay) CombatModifier() float64 {
	switch t {
	case Day:
		return 1.0
	case Dawn, Dusk:
		return 0.7
	default:
		return 0.4
	}
}

// VisionAttenuation returns the multiplier time of day applies to vision range.
func (t TimeOfDay) VisionAttenuation() float64 {
	switch t {
	case Day:
		return 1.0
	case Dawn, Dusk:
		return 0.7
	default:
		return 0.4
	}
}
