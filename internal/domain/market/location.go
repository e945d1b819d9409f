package market

import "math"

// Location is a fixed point in a system. Locations are immutable once
// fetched and cached for the lifetime of a run.
type Location struct {
	Symbol string  `json:"symbol"`
	Type   string  `json:"type"`
	Name   string  `json:"name"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// SystemSymbol derives the system a location belongs to. Location symbols
// are prefixed with their two-character system symbol (e.g. "OE-PM" is in
// system "OE").
func SystemSymbol(locationSymbol string) string {
	if len(locationSymbol) < 2 {
		return locationSymbol
	}
	return locationSymbol[:2]
}

// IsPlanet reports whether the location's body type incurs the planetary
// takeoff fuel penalty.
func (l *Location) IsPlanet() bool {
	return l.Type == "PLANET"
}

// Distance returns the rounded euclidean distance between two locations.
func Distance(a, b *Location) int {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return int(math.Round(math.Sqrt(dx*dx + dy*dy)))
}
