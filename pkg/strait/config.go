package strait

// GameConfig carries the immutable-for-the-run parameters of one
// simulation. A zero value is not usable; start from DefaultConfig and
// override fields.
type GameConfig struct {
	Map             MapParams `json:"map"`
	InitialWeather  Weather   `json:"initialWeather"`
	TurnLimit       int       `json:"turnLimit"`
	KeyCities       []string  `json:"keyCities"`
	ControlFraction float64   `json:"controlFraction"`
	CasualtyRate    float64   `json:"casualtyRate"`
	MaxSupplyRange  float64   `json:"maxSupplyRange"`
	PlanningBudget  int       `json:"planningBudget"`
	Seed            int64     `json:"seed"`
}

// DefaultConfig returns the standard campaign parameters.
func DefaultConfig() GameConfig {
	return GameConfig{
		Map:             DefaultMapParams(),
		InitialWeather:  Clear,
		TurnLimit:       30,
		KeyCities:       []string{"Taipei", "Kaohsiung"},
		ControlFraction: 0.7,
		CasualtyRate:    0.5,
		MaxSupplyRange:  DefaultMaxSupplyRange,
		PlanningBudget:  10,
		Seed:            1,
	}
}

// Validate checks the config for values the engine cannot run with.
func (c GameConfig) Validate() error {
	if c.TurnLimit <= 0 {
		return &ValidationError{Field: "turnLimit", Reason: "must be positive"}
	}
	if c.ControlFraction <= 0 || c.ControlFraction > 1 {
		return &ValidationError{Field: "controlFraction", Reason: "must be in (0,1]"}
	}
	if c.CasualtyRate <= 0 || c.CasualtyRate > 1 {
		return &ValidationError{Field: "casualtyRate", Reason: "must be in (0,1]"}
	}
	if c.MaxSupplyRange <= 0 {
		return &ValidationError{Field: "maxSupplyRange", Reason: "must be positive"}
	}
	if c.Map.Width <= 0 || c.Map.Height <= 0 || c.Map.TileSize <= 0 {
		return &ValidationError{Field: "map", Reason: "dimensions must be positive"}
	}
	return nil
}
