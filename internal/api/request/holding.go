package request

// AddHoldingRequest is the payload for recording a purchase.
// Name and Sector are optional; when present they seed the position's display
// fields on first purchase of the symbol.
type AddHoldingRequest struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name,omitempty"`
	Sector        string  `json:"sector,omitempty"`
	Shares        float64 `json:"shares"`
	PricePerShare float64 `json:"pricePerShare"`
	Date          string  `json:"date"` // YYYY-MM-DD
}
