package strait

// UnitKind is the closed set of unit variants. Kind-specific behavior is
// dispatched by switching on the kind rather than via open inheritance.
type UnitKind int

const (
	KindLand UnitKind = iota
	KindShip
	KindAir
)

func (k UnitKind) String() string {
	switch k {
	case KindLand:
		return "land"
	case KindShip:
		return "ship"
	case KindAir:
		return "air"
	default:
		return "unknown"
	}
}

// UnitStatus tracks a unit's operational state. Only Active and
// Entrenched units may move or attack. Destroyed units are immutable and
// excluded from active queries but retained for statistics.
type UnitStatus int

const (
	StatusActive UnitStatus = iota
	StatusEntrenched
	StatusDisabled
	StatusRetreating
	StatusDestroyed
)

func (s UnitStatus) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusEntrenched:
		return "entrenched"
	case StatusDisabled:
		return "disabled"
	case StatusRetreating:
		return "retreating"
	case StatusDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// LandClass sub-classifies land units.
type LandClass int

const (
	Infantry LandClass = iota
	Mechanized
	Armor
	Artillery
	SpecialForces
	AntiAir
)

func (c LandClass) String() string {
	switch c {
	case Infantry:
		return "infantry"
	case Mechanized:
		return "mechanized"
	case Armor:
		return "armor"
	case Artillery:
		return "artillery"
	case SpecialForces:
		return "special_forces"
	case AntiAir:
		return "anti_air"
	default:
		return "unknown"
	}
}

// ShipClass sub-classifies naval units.
type ShipClass int

const (
	Destroyer ShipClass = iota
	Cruiser
	Carrier
	Submarine
	Transport
)

func (c ShipClass) String() string {
	switch c {
	case Destroyer:
		return "destroyer"
	case Cruiser:
		return "cruiser"
	case Carrier:
		return "carrier"
	case Submarine:
		return "submarine"
	case Transport:
		return "transport"
	default:
		return "unknown"
	}
}

// AirClass sub-classifies air units.
type AirClass int

const (
	FighterGen4 AirClass = iota
	FighterGen45
	FighterGen5
	Bomber
	StealthBomber
)

func (c AirClass) String() string {
	switch c {
	case FighterGen4:
		return "fighter_gen4"
	case FighterGen45:
		return "fighter_gen4.5"
	case FighterGen5:
		return "fighter_gen5"
	case Bomber:
		return "bomber"
	case StealthBomber:
		return "stealth_bomber"
	default:
		return "unknown"
	}
}

// Position locates a unit in world coordinates. Altitude is set for
// airborne units, Depth for submerged ones.
type Position struct {
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Altitude *float64 `json:"altitude,omitempty"`
	Depth    *float64 `json:"depth,omitempty"`
}

// Airborne reports whether the position is above ground level.
func (p Position) Airborne() bool {
	return p.Altitude != nil && *p.Altitude > 0
}

// Submerged reports whether the position is below the surface.
func (p Position) Submerged() bool {
	return p.Depth != nil && *p.Depth > 0
}

// UnitStats holds the bounded condition values of a unit.
// Morale lives in [0,2]; training, fatigue and supply level in [0,1].
type UnitStats struct {
	Strength    float64 `json:"strength"`
	Morale      float64 `json:"morale"`
	Training    float64 `json:"training"`
	Fatigue     float64 `json:"fatigue"`
	SupplyLevel float64 `json:"supplyLevel"`
}

// Arsenal holds a unit's consumables.
type Arsenal struct {
	Ammunition int            `json:"ammunition"`
	Fuel       float64        `json:"fuel"`
	Supplies   int            `json:"supplies"`
	Missiles   map[string]int `json:"missiles,omitempty"`
}

// Unit is a single military unit. The Kind tag selects which class field
// and which kind-specific fields are meaningful.
type Unit struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Faction string   `json:"faction"`
	Kind    UnitKind `json:"kind"`

	Land LandClass `json:"landClass,omitempty"`
	Ship ShipClass `json:"shipClass,omitempty"`
	Air  AirClass  `json:"airClass,omitempty"`

	Pos         Position   `json:"pos"`
	Stats       UnitStats  `json:"stats"`
	Arsenal     Arsenal    `json:"arsenal"`
	Status      UnitStatus `json:"status"`
	MaxStrength float64    `json:"maxStrength"`

	// Land only: accumulated defensive works, reset on movement.
	Entrenchment float64 `json:"entrenchment,omitempty"`
	// Ship only: point-defense effectiveness against incoming fire.
	MissileDefense float64 `json:"missileDefense,omitempty"`
}

// NewLandUnit creates a land unit with class-standard stats.
func NewLandUnit(name, faction string, class LandClass, x, y, strength float64) *Unit {
	u := &Unit{
		Name:        name,
		Faction:     faction,
		Kind:        KindLand,
		Land:        class,
		Pos:         Position{X: x, Y: y},
		MaxStrength: strength,
		Stats: UnitStats{
			Strength:    strength,
			Morale:      1.0,
			Training:    0.7,
			Fatigue:     0.0,
			SupplyLevel: 1.0,
		},
		Arsenal: Arsenal{Ammunition: 100, Fuel: 50, Supplies: 75},
		Status:  StatusActive,
	}
	if class == SpecialForces {
		u.Stats.Morale = 2.0
		u.Stats.Training = 0.9
	}
	return u
}

// NewShipUnit creates a naval unit with class-standard stats.
func NewShipUnit(name, faction string, class ShipClass, x, y float64) *Unit {
	depth := 0.0
	u := &Unit{
		Name:        name,
		Faction:     faction,
		Kind:        KindShip,
		Ship:        class,
		Pos:         Position{X: x, Y: y, Depth: &depth},
		MaxStrength: 100,
		Stats: UnitStats{
			Strength:    100,
			Morale:      1.0,
			Training:    0.8,
			SupplyLevel: 1.0,
		},
		Arsenal:        Arsenal{Ammunition: 200, Fuel: 500, Supplies: 150},
		Status:         StatusActive,
		MissileDefense: 0.7,
	}
	switch class {
	case Cruiser:
		u.MaxStrength, u.Stats.Strength = 150, 150
		u.MissileDefense = 0.8
	case Carrier:
		u.MaxStrength, u.Stats.Strength = 200, 200
		u.MissileDefense = 0.6
	case Submarine:
		u.MissileDefense = 0.2
	case Transport:
		u.Arsenal.Ammunition = 20
		u.MissileDefense = 0.1
	}
	return u
}

// NewAirUnit creates an air unit with class-standard stats. The unit
// starts airborne at its class cruise altitude.
func NewAirUnit(name, faction string, class AirClass, x, y float64) *Unit {
	alt := 8000.0
	u := &Unit{
		Name:        name,
		Faction:     faction,
		Kind:        KindAir,
		Air:         class,
		Pos:         Position{X: x, Y: y, Altitude: &alt},
		MaxStrength: 24,
		Stats: UnitStats{
			Strength:    24,
			Morale:      1.0,
			Training:    0.8,
			SupplyLevel: 1.0,
		},
		Arsenal: Arsenal{Ammunition: 60, Fuel: 120, Supplies: 30},
		Status:  StatusActive,
	}
	if class == Bomber || class == StealthBomber {
		u.MaxStrength, u.Stats.Strength = 12, 12
	}
	return u
}

// IsActive reports whether the unit may act. Only Active and Entrenched
// units move or attack.
func (u *Unit) IsActive() bool {
	return u.Status == StatusActive || u.Status == StatusEntrenched
}

// AttackRange returns the unit's maximum engagement distance.
func (u *Unit) AttackRange() float64 {
	switch u.Kind {
	case KindLand:
		switch u.Land {
		case Artillery:
			return 30
		case SpecialForces:
			return 10
		case AntiAir:
			return 15
		default:
			return 5
		}
	case KindShip:
		switch u.Ship {
		case Cruiser:
			return 25
		case Carrier:
			return 40
		case Submarine:
			return 15
		case Transport:
			return 2
		default:
			return 20
		}
	default:
		switch u.Air {
		case Bomber, StealthBomber:
			return 60
		default:
			return 40
		}
	}
}

// AntiAirRange returns how far the unit can engage airborne targets;
// zero means no anti-air capability.
func (u *Unit) AntiAirRange() float64 {
	switch u.Kind {
	case KindLand:
		if u.Land == AntiAir {
			return 15
		}
		return 1
	case KindShip:
		if u.Ship == Transport {
			return 0
		}
		return 10
	default:
		switch u.Air {
		case Bomber, StealthBomber:
			return 0
		default:
			return 40
		}
	}
}

// AirToAirSkill returns the air-combat effectiveness in [0,1] used by
// the hit-chance model for strikes on airborne targets.
func (u *Unit) AirToAirSkill() float64 {
	if u.Kind != KindAir {
		return 0
	}
	switch u.Air {
	case FighterGen5:
		return 1.0
	case FighterGen45:
		return 0.9
	case FighterGen4:
		return 0.7
	default:
		return 0.1
	}
}

// BaseVision returns the unit's unattenuated vision range.
func (u *Unit) BaseVision() float64 {
	switch u.Kind {
	case KindLand:
		if u.Land == SpecialForces {
			return 40
		}
		return 30
	case KindShip:
		if u.Ship == Submarine {
			return 25
		}
		return 100
	default:
		return 120
	}
}

// Speed returns the unit's per-turn movement allowance, degraded when
// supplies run low.
func (u *Unit) Speed() float64 {
	var base float64
	switch u.Kind {
	case KindLand:
		switch u.Land {
		case Infantry:
			base = 6.44
		case Mechanized:
			base = 32
		case Armor:
			base = 25
		case Artillery:
			base = 20
		case SpecialForces:
			base = 10
		case AntiAir:
			base = 22
		}
	case KindShip:
		base = 30
		if u.Ship == Transport {
			base = 18
		}
	default:
		base = 300
	}
	if u.Stats.SupplyLevel < 0.5 {
		base *= 0.7
	}
	return base
}

// MovementRange returns the maximum move distance for one action.
func (u *Unit) MovementRange() float64 {
	return u.Speed() * 24 // one turn is a day of operations
}

// maxEntrenchment caps defensive works per land class.
func (u *Unit) maxEntrenchment() float64 {
	if u.Kind != KindLand {
		return 0
	}
	switch u.Land {
	case Infantry:
		return 1.0
	case SpecialForces:
		return 0.9
	case Artillery:
		return 0.8
	case Mechanized, AntiAir:
		return 0.7
	default:
		return 0.6
	}
}

// Entrench digs the unit in, raising entrenchment by one turn's worth of
// work up to the class cap, and marks the unit Entrenched.
func (u *Unit) Entrench() error {
	if u.Kind != KindLand {
		return &UnitError{UnitID: u.ID, Reason: "only land units entrench"}
	}
	if !u.IsActive() {
		return &UnitError{UnitID: u.ID, Reason: "unit cannot act"}
	}
	u.Entrenchment = clamp(u.Entrenchment+0.1, 0, u.maxEntrenchment())
	u.Status = StatusEntrenched
	return nil
}

// MoveTo relocates the unit, resetting entrenchment and restoring the
// Active status for entrenched units.
func (u *Unit) MoveTo(x, y float64) {
	u.Pos.X = x
	u.Pos.Y = y
	u.Entrenchment = 0
	if u.Status == StatusEntrenched {
		u.Status = StatusActive
	}
}

// CanAttack reports whether the unit can currently engage the target:
// it must be able to act, have ammunition and minimal supply, cover the
// distance, and match the target's domain.
func (u *Unit) CanAttack(target *Unit) bool {
	if u == nil || target == nil || u == target {
		return false
	}
	if !u.IsActive() || target.Status == StatusDestroyed {
		return false
	}
	if u.Arsenal.Ammunition <= 0 || u.Stats.SupplyLevel < 0.1 {
		return false
	}

	dist := Distance(u.Pos.X, u.Pos.Y, target.Pos.X, target.Pos.Y)
	if target.Pos.Airborne() {
		aa := u.AntiAirRange()
		return aa > 0 && dist <= aa
	}
	if target.Pos.Submerged() {
		// Only destroyers prosecute submerged contacts.
		return u.Kind == KindShip && u.Ship == Destroyer && dist <= u.AttackRange()
	}
	return dist <= u.AttackRange()
}

// BaseDamage returns the unit's raw damage potential against the target,
// before environmental and morale modifiers.
func (u *Unit) BaseDamage(target *Unit) float64 {
	dist := Distance(u.Pos.X, u.Pos.Y, target.Pos.X, target.Pos.Y)
	switch u.Kind {
	case KindLand:
		caps := u.landCapabilities()
		switch {
		case dist <= 5:
			return caps.close
		case dist <= 20:
			return caps.medium
		default:
			return caps.long
		}
	case KindShip:
		hull := u.HullIntegrity()
		switch {
		case target.Pos.Airborne():
			return 0.5 * hull * u.Stats.Training
		case target.Pos.Submerged():
			return 0.8 * hull * u.Stats.Training
		default:
			return 0.6 * hull * u.Stats.Training
		}
	default:
		if target.Pos.Airborne() {
			return 0.3 + u.AirToAirSkill()*0.4
		}
		switch u.Air {
		case Bomber:
			return 0.9
		case StealthBomber:
			return 1.0
		default:
			return 0.5
		}
	}
}

type landCaps struct {
	close, medium, long float64
}

func (u *Unit) landCapabilities() landCaps {
	switch u.Land {
	case Infantry:
		return landCaps{0.4, 0.2, 0.1}
	case Mechanized:
		return landCaps{0.6, 0.3, 0.1}
	case Armor:
		return landCaps{0.8, 0.4, 0.1}
	case Artillery:
		return landCaps{0.3, 0.7, 0.5}
	case SpecialForces:
		return landCaps{0.7, 0.4, 0.2}
	default:
		return landCaps{0.3, 0.4, 0.2}
	}
}

// HullIntegrity returns remaining structural integrity in [0,1]. For
// non-ship units it mirrors the strength fraction.
func (u *Unit) HullIntegrity() float64 {
	if u.MaxStrength <= 0 {
		return 0
	}
	return clamp(u.Stats.Strength/u.MaxStrength, 0, 1)
}

// ApplyDamage subtracts strength points, erodes morale in proportion to
// the blow, and applies status transitions. The returned value is the
// strength actually lost (never more than was left). Destroyed units are
// immutable.
func (u *Unit) ApplyDamage(points float64) float64 {
	if u.Status == StatusDestroyed || points <= 0 {
		return 0
	}
	applied := points
	if applied > u.Stats.Strength {
		applied = u.Stats.Strength
	}
	u.Stats.Strength -= applied

	ratio := 0.0
	if u.MaxStrength > 0 {
		ratio = applied / u.MaxStrength
	}
	u.Stats.Morale = clamp(u.Stats.Morale*(1-ratio*0.5), 0, 2)
	u.Stats.Fatigue = clamp(u.Stats.Fatigue+ratio*0.25, 0, 1)

	switch {
	case u.Stats.Strength <= 0:
		u.Stats.Strength = 0
		u.Status = StatusDestroyed
	case u.Stats.Strength < u.MaxStrength/4:
		if u.Kind == KindLand {
			u.Status = StatusRetreating
		} else {
			u.Status = StatusDisabled
		}
	}
	return applied
}

// Repair restores strength up to the unit's maximum and clears a
// degraded status once the unit is back above quarter strength.
func (u *Unit) Repair(points float64) {
	if u.Status == StatusDestroyed || points <= 0 {
		return
	}
	u.Stats.Strength = clamp(u.Stats.Strength+points, 0, u.MaxStrength)
	if (u.Status == StatusDisabled || u.Status == StatusRetreating) &&
		u.Stats.Strength >= u.MaxStrength/4 {
		u.Status = StatusActive
	}
}

// ApplyResupply adds the delivered package to the arsenal and raises the
// supply level, clamped to its bound.
func (u *Unit) ApplyResupply(pkg Arsenal, level float64) {
	if u.Status == StatusDestroyed {
		return
	}
	u.Arsenal.Ammunition += pkg.Ammunition
	u.Arsenal.Fuel += pkg.Fuel
	u.Arsenal.Supplies += pkg.Supplies
	for k, v := range pkg.Missiles {
		if u.Arsenal.Missiles == nil {
			u.Arsenal.Missiles = make(map[string]int)
		}
		u.Arsenal.Missiles[k] += v
	}
	u.Stats.SupplyLevel = clamp(u.Stats.SupplyLevel+level, 0, 1)
}

// ConsumeSupply lowers the supply level, floored at zero.
func (u *Unit) ConsumeSupply(amount float64) {
	u.Stats.SupplyLevel = clamp(u.Stats.SupplyLevel-amount, 0, 1)
}
