package request

// SetAPIKeyRequest is the payload for storing the market-data API key.
type SetAPIKeyRequest struct {
	APIKey string `json:"apiKey"`
}
