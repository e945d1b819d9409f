package trading

// OrderResult is the remote service's confirmation of a single buy or sell
// order. Credits is the authoritative post-order balance and must be
// recorded into the ledger verbatim.
type OrderResult struct {
	Good         string
	Quantity     int
	PricePerUnit int
	Total        int
	Credits      int
}
