package strait

import "math/rand"

// CombatResult reports one resolved engagement. Damage values are the
// strength points actually removed from each side.
type CombatResult struct {
	AttackerID       int     `json:"attackerId"`
	DefenderID       int     `json:"defenderId"`
	AttackPower      float64 `json:"attackPower"`
	DefensePower     float64 `json:"defensePower"`
	AttackerHit      bool    `json:"attackerHit"`
	DefenderHit      bool    `json:"defenderHit"`
	DamageToDefender float64 `json:"damageToDefender"`
	DamageToAttacker float64 `json:"damageToAttacker"`
	Events           []Event `json:"events"`
}

// CombatResolver computes engagement outcomes. All randomness comes
// from the injected generator so runs replay deterministically.
type CombatResolver struct {
	rules *TerrainRules
	rng   *rand.Rand
}

// NewCombatResolver binds the resolver to the terrain rules and the
// simulation's generator.
func NewCombatResolver(rules *TerrainRules, rng *rand.Rand) *CombatResolver {
	return &CombatResolver{rules: rules, rng: rng}
}

// Resolve runs one simultaneous exchange between attacker and defender
// on the given terrain. Both sides' hit rolls and damage are computed
// from pre-damage stats before either side's damage is applied, so the
// order of application cannot bias the outcome.
func (r *CombatResolver) Resolve(attacker, defender *Unit, terrain TerrainKind, weather Weather, tod TimeOfDay, turn int) (*CombatResult, error) {
	if attacker == nil || defender == nil {
		return nil, ErrInvalidAttack
	}
	if !attacker.IsActive() || defender.Status == StatusDestroyed {
		return nil, ErrInvalidAttack
	}
	if attacker.Arsenal.Ammunition <= 0 {
		return nil, ErrInvalidAttack
	}
	if !attacker.CanAttack(defender) {
		return nil, ErrInvalidAttack
	}

	attackPower := r.attackPower(attacker, defender, weather, tod)
	defensePower := r.defensePower(defender, terrain)

	attChance := r.hitChance(attacker, defender, weather, tod)
	defChance := r.hitChance(defender, attacker, weather, tod)

	// Pre-damage snapshot: every input to both sides' outcomes is fixed
	// before any mutation below.
	rawToDefender := attackPower * (1 - minf(defensePower, 0.8))
	rawToAttacker := defensePower * 0.5 * (1 - minf(attackPower, 0.8))
	attackerHit := r.rng.Float64() < attChance
	defenderHit := defender.IsActive() && r.rng.Float64() < defChance

	res := &CombatResult{
		AttackerID:   attacker.ID,
		DefenderID:   defender.ID,
		AttackPower:  attackPower,
		DefensePower: defensePower,
		AttackerHit:  attackerHit,
		DefenderHit:  defenderHit,
	}

	attackerStatus := attacker.Status
	defenderStatus := defender.Status

	attacker.Arsenal.Ammunition--
	attacker.Stats.Fatigue = clamp(attacker.Stats.Fatigue+0.05, 0, 1)

	if attacker.AntiAirRange() > 0 && defender.Pos.Airborne() {
		res.Events = append(res.Events, Event{
			Kind: EventMissileIntercepted, Turn: turn,
			UnitID: defender.ID, TargetID: attacker.ID,
		})
	}

	if attackerHit {
		res.DamageToDefender = defender.ApplyDamage(rawToDefender * defender.MaxStrength)
		res.Events = append(res.Events, Event{
			Kind: EventHit, Turn: turn,
			UnitID: attacker.ID, TargetID: defender.ID,
			Damage: res.DamageToDefender,
		})
	}
	if defenderHit {
		res.DamageToAttacker = attacker.ApplyDamage(rawToAttacker * attacker.MaxStrength)
		res.Events = append(res.Events, Event{
			Kind: EventHit, Turn: turn,
			UnitID: defender.ID, TargetID: attacker.ID,
			Damage: res.DamageToAttacker,
		})
	}

	res.Events = append(res.Events, statusEvents(defender, defenderStatus, turn)...)
	res.Events = append(res.Events, statusEvents(attacker, attackerStatus, turn)...)

	if rawToDefender > 0.5 || rawToAttacker > 0.5 {
		res.Events = append(res.Events, Event{
			Kind: EventSupplyDisrupted, Turn: turn,
			UnitID: attacker.ID, TargetID: defender.ID,
		})
	}
	return res, nil
}

// attackPower multiplies the raw damage potential by environment,
// supply, morale, training and fatigue.
func (r *CombatResolver) attackPower(attacker, defender *Unit, weather Weather, tod TimeOfDay) float64 {
	supplyMod := 1.0
	if attacker.Stats.SupplyLevel < 0.5 {
		supplyMod = 0.7
	}
	return attacker.BaseDamage(defender) *
		weather.CombatModifier() *
		tod.CombatModifier() *
		supplyMod *
		attacker.Stats.Morale *
		attacker.Stats.Training *
		(1 - attacker.Stats.Fatigue)
}

// defensePower combines posture, terrain and entrenchment.
func (r *CombatResolver) defensePower(defender *Unit, terrain TerrainKind) float64 {
	statusFactor := 0.7
	switch defender.Status {
	case StatusEntrenched:
		statusFactor = 1.5
	case StatusActive:
		statusFactor = 1.0
	}
	terrainDefense := r.rules.DefenseMultiplier(terrain, defender.Kind)
	terrainMod := 1.0
	if defender.Kind == KindLand {
		terrainMod = 1 + terrain.Bonus().Concealment*0.5
	}
	entrenchMod := 1 + defender.Entrenchment*0.5
	return statusFactor * terrainDefense * terrainMod * entrenchMod *
		defender.Stats.Training *
		(1 - defender.Stats.Fatigue)
}

// hitChance gives the probability the shooter's strike lands on the
// target, before the roll. Domain base minus weather and time-of-day
// penalties, clamped to [0.10, 0.95].
func (r *CombatResolver) hitChance(shooter, target *Unit, weather Weather, tod TimeOfDay) float64 {
	var base float64
	switch {
	case target.Pos.Airborne():
		base = 0.7 + shooter.AirToAirSkill()*0.3
	case shooter.Kind == KindShip:
		base = 0.6 + shooter.MissileDefense*0.2
	default:
		base = 0.8
	}

	switch wm := weather.CombatModifier(); {
	case wm < 0.5:
		base -= 0.3
	case wm < 0.8:
		base -= 0.1
	}
	switch tm := tod.CombatModifier(); {
	case tm < 0.5:
		base -= 0.2
	case tm < 0.8:
		base -= 0.1
	}
	return clamp(base, 0.10, 0.95)
}

// statusEvents reports status transitions that happened during this
// exchange. A unit already degraded before the exchange emits nothing.
func statusEvents(u *Unit, before UnitStatus, turn int) []Event {
	if u.Status == before {
		return nil
	}
	switch u.Status {
	case StatusDestroyed:
		return []Event{{Kind: EventUnitDestroyed, Turn: turn, UnitID: u.ID}}
	case StatusRetreating:
		return []Event{{Kind: EventUnitRetreated, Turn: turn, UnitID: u.ID}}
	default:
		return nil
	}
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
