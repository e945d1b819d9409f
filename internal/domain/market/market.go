package market

// FuelGood is the commodity every flight burns. It is sold at (almost)
// every location and its availability gates route selection.
const FuelGood = "FUEL"

// Good is one commodity listing in a location's marketplace snapshot.
// Prices follow the market's perspective: PurchasePrice is what a ship pays
// to buy, SellPrice is what a ship receives when selling.
type Good struct {
	Symbol            string `json:"symbol"`
	VolumePerUnit     int    `json:"volumePerUnit"`
	PricePerUnit      int    `json:"pricePerUnit"`
	Spread            int    `json:"spread"`
	PurchasePrice     int    `json:"purchasePricePerUnit"`
	SellPrice         int    `json:"sellPricePerUnit"`
	QuantityAvailable int    `json:"quantityAvailable"`
}

// MarketLocation is a location together with its marketplace snapshot for
// the current planning cycle. Never persisted across cycles.
type MarketLocation struct {
	Location
	Marketplace []Good `json:"marketplace"`
}

// Listing returns the listing for a good symbol, or nil if the location
// does not trade it.
func (m *MarketLocation) Listing(symbol string) *Good {
	for i := range m.Marketplace {
		if m.Marketplace[i].Symbol == symbol {
			return &m.Marketplace[i]
		}
	}
	return nil
}

// FuelPrice returns the per-unit purchase price of fuel at this location,
// or 0 if fuel is not listed.
func (m *MarketLocation) FuelPrice() int {
	if fuel := m.Listing(FuelGood); fuel != nil {
		return fuel.PricePerUnit
	}
	return 0
}
