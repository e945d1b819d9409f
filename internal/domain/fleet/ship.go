package fleet

// Cargo is one stack of goods aboard a ship.
type Cargo struct {
	Good        string `json:"good"`
	Quantity    int    `json:"quantity"`
	TotalVolume int    `json:"totalVolume"`
}

// Ship is one autonomous trading agent. Ships are replaced wholesale on
// every fleet refresh; only the trade executor mutates one, and only within
// a single cycle.
type Ship struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Class        string `json:"class"`
	Manufacturer string `json:"manufacturer"`

	// Location is empty while the ship is in transit.
	Location     string `json:"location,omitempty"`
	FlightPlanID string `json:"flightPlanId,omitempty"`

	X float64 `json:"x"`
	Y float64 `json:"y"`

	MaxCargo       int `json:"maxCargo"`
	LoadingSpeed   int `json:"loadingSpeed"`
	Speed          int `json:"speed"`
	SpaceAvailable int `json:"spaceAvailable"`

	Cargo []Cargo `json:"cargo"`
}

// Stationed reports whether the ship is docked at a location and can be
// planned this cycle.
func (s *Ship) Stationed() bool {
	return s.Location != ""
}

// FuelAboard returns the quantity of the given fuel good currently held.
func (s *Ship) FuelAboard(fuelGood string) int {
	for _, c := range s.Cargo {
		if c.Good == fuelGood {
			return c.Quantity
		}
	}
	return 0
}

// FlightPlan is the remote service's confirmation of a submitted flight.
type FlightPlan struct {
	ID                     string `json:"id"`
	ShipID                 string `json:"shipId"`
	CreatedAt              string `json:"createdAt"`
	ArrivesAt              string `json:"arrivesAt"`
	Departure              string `json:"departure"`
	Destination            string `json:"destination"`
	Distance               int    `json:"distance"`
	FuelConsumed           int    `json:"fuelConsumed"`
	FuelRemaining          int    `json:"fuelRemaining"`
	TimeRemainingInSeconds int    `json:"timeRemainingInSeconds"`
}

// Account is the operator's account summary as reported by the remote
// service.
type Account struct {
	Username       string `json:"username"`
	Credits        int    `json:"credits"`
	JoinedAt       string `json:"joinedAt"`
	ShipCount      int    `json:"shipCount"`
	StructureCount int    `json:"structureCount"`
}

// Eligible filters the fleet down to ships that can trade this cycle:
// stationed (not in transit) and not of the scout class, which has no
// meaningful cargo hold.
func Eligible(ships []*Ship, scoutType string) []*Ship {
	var out []*Ship
	for _, s := range ships {
		if s.Stationed() && s.Type != scoutType {
			out = append(out, s)
		}
	}
	return out
}
