package strait

// SupplySource is implemented by every installation that can push
// supplies into the network: cities, ports and air bases.
type SupplySource interface {
	SourceID() string
	SourceFaction() string
	Location() (x, y float64)
	StorageLevel() float64
	DrawStorage(amount float64) float64
	CanSupply() bool
}

// City is a population center. Key cities count toward victory; every
// controlled city contributes supply points each turn.
type City struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Faction    string  `json:"faction"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Population int     `json:"population"`
	Industry   float64 `json:"industry"`
	Morale     float64 `json:"morale"`
	Defenses   float64 `json:"defenses"`
	Damage     float64 `json:"damage"`
	Storage    float64 `json:"storage"`
	Key        bool    `json:"key,omitempty"`
}

func (c *City) SourceID() string         { return "city:" + c.Name }
func (c *City) SourceFaction() string    { return c.Faction }
func (c *City) Location() (x, y float64) { return c.X, c.Y }
func (c *City) StorageLevel() float64    { return c.Storage }

// CanSupply reports whether the city still functions as a depot. A city
// bombed past three quarters damage cannot push supplies.
func (c *City) CanSupply() bool {
	return c.Damage < 0.75 && c.Storage > 0
}

// DrawStorage removes up to amount from storage and returns what was
// actually taken.
func (c *City) DrawStorage(amount float64) float64 {
	taken := amount
	if taken > c.Storage {
		taken = c.Storage
	}
	c.Storage -= taken
	return taken
}

// ApplyBombardment damages the city, eroding defenses and civilian
// morale. Damage saturates at 1.
func (c *City) ApplyBombardment(severity float64) {
	if severity <= 0 {
		return
	}
	c.Damage = clamp(c.Damage+severity, 0, 1)
	c.Defenses = clamp(c.Defenses-severity*0.5, 0, 1)
	c.Morale = clamp(c.Morale-severity*0.3, 0, 1)
}

// Captured reports whether an occupying faction holds the city.
func (c *City) Captured(by string) bool {
	return c.Faction == by
}

// Port is a naval installation with limited berths. A blockaded port
// cannot push supplies or service ships.
type Port struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Faction   string  `json:"faction"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Capacity  int     `json:"capacity"`
	Docked    []int   `json:"docked,omitempty"`
	Blockaded bool    `json:"blockaded,omitempty"`
	Damage    float64 `json:"damage"`
	Storage   float64 `json:"storage"`
}

func (p *Port) SourceID() string         { return "port:" + p.Name }
func (p *Port) SourceFaction() string    { return p.Faction }
func (p *Port) Location() (x, y float64) { return p.X, p.Y }
func (p *Port) StorageLevel() float64    { return p.Storage }

func (p *Port) CanSupply() bool {
	return !p.Blockaded && p.Damage < 0.75 && p.Storage > 0
}

func (p *Port) DrawStorage(amount float64) float64 {
	taken := amount
	if taken > p.Storage {
		taken = p.Storage
	}
	p.Storage -= taken
	return taken
}

// Dock berths a ship if a slot is free and the port is usable.
func (p *Port) Dock(unitID int) bool {
	if p.Blockaded || p.Damage >= 0.75 || len(p.Docked) >= p.Capacity {
		return false
	}
	for _, id := range p.Docked {
		if id == unitID {
			return false
		}
	}
	p.Docked = append(p.Docked, unitID)
	return true
}

// Undock releases a berthed ship.
func (p *Port) Undock(unitID int) bool {
	for i, id := range p.Docked {
		if id == unitID {
			p.Docked = append(p.Docked[:i], p.Docked[i+1:]...)
			return true
		}
	}
	return false
}

// AirBase is an airfield with hangar space. Runway damage past half
// closes the field to operations.
type AirBase struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Faction      string  `json:"faction"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	RunwayLength float64 `json:"runwayLength"`
	Hangars      int     `json:"hangars"`
	Based        []int   `json:"based,omitempty"`
	Damage       float64 `json:"damage"`
	Storage      float64 `json:"storage"`
}

func (b *AirBase) SourceID() string         { return "airbase:" + b.Name }
func (b *AirBase) SourceFaction() string    { return b.Faction }
func (b *AirBase) Location() (x, y float64) { return b.X, b.Y }
func (b *AirBase) StorageLevel() float64    { return b.Storage }

func (b *AirBase) CanSupply() bool {
	return b.Damage < 0.5 && b.Storage > 0
}

func (b *AirBase) DrawStorage(amount float64) float64 {
	taken := amount
	if taken > b.Storage {
		taken = b.Storage
	}
	b.Storage -= taken
	return taken
}

// Operational reports whether aircraft can sortie from the base.
func (b *AirBase) Operational() bool {
	return b.Damage < 0.5
}

// Base parks an aircraft in a hangar slot.
func (b *AirBase) Base(unitID int) bool {
	if !b.Operational() || len(b.Based) >= b.Hangars {
		return false
	}
	for _, id := range b.Based {
		if id == unitID {
			return false
		}
	}
	b.Based = append(b.Based, unitID)
	return true
}

// Launch removes an aircraft from the base.
func (b *AirBase) Launch(unitID int) bool {
	for i, id := range b.Based {
		if id == unitID {
			b.Based = append(b.Based[:i], b.Based[i+1:]...)
			return true
		}
	}
	return false
}

// RoadClass grades a road's build quality.
type RoadClass int

const (
	Highway RoadClass = iota
	MainRoad
	SecondaryRoad
)

func (c RoadClass) String() string {
	switch c {
	case Highway:
		return "highway"
	case MainRoad:
		return "main"
	case SecondaryRoad:
		return "secondary"
	default:
		return "unknown"
	}
}

// Road is a ground line of communication between two points. Condition
// below 0.2, or mines, break any supply line crossing it.
type Road struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Class     RoadClass `json:"class"`
	X1        float64   `json:"x1"`
	Y1        float64   `json:"y1"`
	X2        float64   `json:"x2"`
	Y2        float64   `json:"y2"`
	Condition float64   `json:"condition"`
	Mined     bool      `json:"mined,omitempty"`
}

// Passable reports whether supply convoys can use the road.
func (r *Road) Passable() bool {
	return r.Condition >= 0.2 && !r.Mined
}

// Degrade wears the road down, floored at zero.
func (r *Road) Degrade(amount float64) {
	r.Condition = clamp(r.Condition-amount, 0, 1)
}

// RepairRoad restores condition up to full.
func (r *Road) RepairRoad(amount float64) {
	r.Condition = clamp(r.Condition+amount, 0, 1)
}

// TravelModifier scales movement speed on the road by class and wear.
func (r *Road) TravelModifier() float64 {
	var base float64
	switch r.Class {
	case Highway:
		base = 1.5
	case MainRoad:
		base = 1.2
	default:
		base = 1.0
	}
	return base * clamp(r.Condition, 0, 1)
}

// Crosses reports whether the straight segment from (ax,ay) to (bx,by)
// passes within buffer of the road.
func (r *Road) Crosses(ax, ay, bx, by, buffer float64) bool {
	rb := BoxFromPoints(r.X1, r.Y1, r.X2, r.Y2)
	sb := BoxFromPoints(ax, ay, bx, by)
	if !rb.Intersects(sb.Expand(buffer)) {
		return false
	}
	// Endpoint-to-segment distance closely approximates segment
	// intersection at supply-line scale.
	return segmentPointDistance(ax, ay, bx, by, r.X1, r.Y1) <= buffer ||
		segmentPointDistance(ax, ay, bx, by, r.X2, r.Y2) <= buffer ||
		segmentPointDistance(r.X1, r.Y1, r.X2, r.Y2, ax, ay) <= buffer ||
		segmentPointDistance(r.X1, r.Y1, r.X2, r.Y2, bx, by) <= buffer
}
