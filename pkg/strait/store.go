package strait

import "sort"

// EntityStore owns every game entity and hands out identifiers. All
// lookups return the stored pointers; callers mutate entities in place.
// The store is not safe for concurrent use.
type EntityStore struct {
	units    map[int]*Unit
	cities   map[int]*City
	ports    map[int]*Port
	airBases map[int]*AirBase
	roads    map[int]*Road
	nextID   int
}

// NewEntityStore returns an empty store.
func NewEntityStore() *EntityStore {
	return &EntityStore{
		units:    make(map[int]*Unit),
		cities:   make(map[int]*City),
		ports:    make(map[int]*Port),
		airBases: make(map[int]*AirBase),
		roads:    make(map[int]*Road),
		nextID:   1,
	}
}

func (s *EntityStore) allocID() int {
	id := s.nextID
	s.nextID++
	return id
}

// AddUnit registers a unit and returns its assigned ID.
func (s *EntityStore) AddUnit(u *Unit) int {
	u.ID = s.allocID()
	s.units[u.ID] = u
	return u.ID
}

// Unit returns the unit with the given ID.
func (s *EntityStore) Unit(id int) (*Unit, error) {
	u, ok := s.units[id]
	if !ok {
		return nil, ErrUnitNotFound
	}
	return u, nil
}

// RemoveUnit deletes a unit from the store.
func (s *EntityStore) RemoveUnit(id int) error {
	if _, ok := s.units[id]; !ok {
		return ErrUnitNotFound
	}
	delete(s.units, id)
	return nil
}

// Units returns all units ordered by ID.
func (s *EntityStore) Units() []*Unit {
	out := make([]*Unit, 0, len(s.units))
	for _, u := range s.units {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ActiveUnits returns every unit that can still act, ordered by ID.
func (s *EntityStore) ActiveUnits() []*Unit {
	out := make([]*Unit, 0, len(s.units))
	for _, u := range s.units {
		if u.IsActive() {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// FactionUnits returns all non-destroyed units of a faction, ordered by ID.
func (s *EntityStore) FactionUnits(faction string) []*Unit {
	out := make([]*Unit, 0, len(s.units))
	for _, u := range s.units {
		if u.Faction == faction && u.Status != StatusDestroyed {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// UnitsInRange returns units within radius of (x,y), ordered by ID.
func (s *EntityStore) UnitsInRange(x, y, radius float64) []*Unit {
	out := make([]*Unit, 0)
	for _, u := range s.units {
		if Distance(x, y, u.Pos.X, u.Pos.Y) <= radius {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AddCity registers a city and returns its assigned ID.
func (s *EntityStore) AddCity(c *City) int {
	c.ID = s.allocID()
	s.cities[c.ID] = c
	return c.ID
}

// City returns the city with the given ID.
func (s *EntityStore) City(id int) (*City, error) {
	c, ok := s.cities[id]
	if !ok {
		return nil, ErrCityNotFound
	}
	return c, nil
}

// CityByName returns the city with the given name.
func (s *EntityStore) CityByName(name string) (*City, error) {
	for _, c := range s.cities {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, ErrCityNotFound
}

// Cities returns all cities ordered by ID.
func (s *EntityStore) Cities() []*City {
	out := make([]*City, 0, len(s.cities))
	for _, c := range s.cities {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AddPort registers a port and returns its assigned ID.
func (s *EntityStore) AddPort(p *Port) int {
	p.ID = s.allocID()
	s.ports[p.ID] = p
	return p.ID
}

// Port returns the port with the given ID.
func (s *EntityStore) Port(id int) (*Port, error) {
	p, ok := s.ports[id]
	if !ok {
		return nil, ErrHubNotFound
	}
	return p, nil
}

// Ports returns all ports ordered by ID.
func (s *EntityStore) Ports() []*Port {
	out := make([]*Port, 0, len(s.ports))
	for _, p := range s.ports {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AddAirBase registers an air base and returns its assigned ID.
func (s *EntityStore) AddAirBase(b *AirBase) int {
	b.ID = s.allocID()
	s.airBases[b.ID] = b
	return b.ID
}

// AirBase returns the air base with the given ID.
func (s *EntityStore) AirBase(id int) (*AirBase, error) {
	b, ok := s.airBases[id]
	if !ok {
		return nil, ErrHubNotFound
	}
	return b, nil
}

// AirBases returns all air bases ordered by ID.
func (s *EntityStore) AirBases() []*AirBase {
	out := make([]*AirBase, 0, len(s.airBases))
	for _, b := range s.airBases {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AddRoad registers a road and returns its assigned ID.
func (s *EntityStore) AddRoad(r *Road) int {
	r.ID = s.allocID()
	s.roads[r.ID] = r
	return r.ID
}

// Road returns the road with the given ID.
func (s *EntityStore) Road(id int) (*Road, error) {
	r, ok := s.roads[id]
	if !ok {
		return nil, ErrRoadNotFound
	}
	return r, nil
}

// Roads returns all roads ordered by ID.
func (s *EntityStore) Roads() []*Road {
	out := make([]*Road, 0, len(s.roads))
	for _, r := range s.roads {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SupplySources returns every source a faction controls, cities first,
// then ports, then air bases, each group ordered by ID.
func (s *EntityStore) SupplySources(faction string) []SupplySource {
	out := make([]SupplySource, 0)
	for _, c := range s.Cities() {
		if c.Faction == faction {
			out = append(out, c)
		}
	}
	for _, p := range s.Ports() {
		if p.Faction == faction {
			out = append(out, p)
		}
	}
	for _, b := range s.AirBases() {
		if b.Faction == faction {
			out = append(out, b)
		}
	}
	return out
}

// Factions returns the distinct factions owning live units, sorted.
func (s *EntityStore) Factions() []string {
	seen := make(map[string]bool)
	for _, u := range s.units {
		if u.Status != StatusDestroyed {
			seen[u.Faction] = true
		}
	}
	out := make([]string, 0, len(seen))
	for f := range seen {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
