package strait

import (
	"encoding/json"
	"fmt"
)

// Snapshot is the serializable image of a running game: every entity
// field plus the turn, phase, phase budget and environment. It
// round-trips through JSON.
type Snapshot struct {
	Config      GameConfig `json:"config"`
	Turn        int        `json:"turn"`
	Phase       PhaseKind  `json:"phase"`
	PhaseBudget int        `json:"phaseBudget"`
	Weather     Weather    `json:"weather"`
	TimeOfDay   TimeOfDay  `json:"timeOfDay"`

	NextID   int        `json:"nextId"`
	Units    []*Unit    `json:"units"`
	Cities   []*City    `json:"cities"`
	Ports    []*Port    `json:"ports,omitempty"`
	AirBases []*AirBase `json:"airBases,omitempty"`
	Roads    []*Road    `json:"roads,omitempty"`

	Casualties     map[string]int `json:"casualties,omitempty"`
	Pool           map[string]int `json:"pool,omitempty"`
	Captured       map[string]int `json:"captured,omitempty"`
	SupplyConsumed float64        `json:"supplyConsumed,omitempty"`
}

// Snapshot captures the current game state.
func (g *Game) Snapshot() *Snapshot {
	s := &Snapshot{
		Config:         g.cfg,
		Turn:           g.turns.Turn(),
		Phase:          g.turns.Phase(),
		PhaseBudget:    g.turns.Budget(),
		Weather:        g.turns.Weather(),
		TimeOfDay:      g.turns.TimeOfDay(),
		NextID:         g.store.nextID,
		Units:          g.store.Units(),
		Cities:         g.store.Cities(),
		Ports:          g.store.Ports(),
		AirBases:       g.store.AirBases(),
		Roads:          g.store.Roads(),
		Casualties:     copyCounts(g.casualties),
		Pool:           copyCounts(g.pool),
		Captured:       copyCounts(g.captured),
		SupplyConsumed: g.supplyConsumed,
	}
	return s
}

// Encode serializes the snapshot to JSON.
func (s *Snapshot) Encode() ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a JSON snapshot.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return &s, nil
}

// RestoreGame reconstructs a game from a snapshot. The random stream
// restarts from the configured seed; entity state, turn position and
// derived networks match the captured game exactly.
func RestoreGame(s *Snapshot) (*Game, error) {
	g, err := NewGame(s.Config)
	if err != nil {
		return nil, err
	}
	for _, u := range s.Units {
		g.store.units[u.ID] = u
	}
	for _, c := range s.Cities {
		g.store.cities[c.ID] = c
	}
	for _, p := range s.Ports {
		g.store.ports[p.ID] = p
	}
	for _, b := range s.AirBases {
		g.store.airBases[b.ID] = b
	}
	for _, r := range s.Roads {
		g.store.roads[r.ID] = r
	}
	g.store.nextID = s.NextID
	g.turns.restore(s.Turn, s.Phase, s.PhaseBudget, s.Weather, s.TimeOfDay)
	if s.Casualties != nil {
		g.casualties = copyCounts(s.Casualties)
	}
	if s.Pool != nil {
		g.pool = copyCounts(s.Pool)
	}
	if s.Captured != nil {
		g.captured = copyCounts(s.Captured)
	}
	g.supplyConsumed = s.SupplyConsumed
	g.RebuildNetworks()
	return g, nil
}

func copyCounts(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
