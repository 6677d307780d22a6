package polygon

// aggsResponse is the raw JSON shape of the previous-day aggregate endpoint
// (/v2/aggs/ticker/{symbol}/prev).
type aggsResponse struct {
	Ticker  string `json:"ticker"`
	Status  string `json:"status"`
	Results []struct {
		Open      float64 `json:"o"`
		Close     float64 `json:"c"`
		High      float64 `json:"h"`
		Low       float64 `json:"l"`
		Volume    float64 `json:"v"`
		Timestamp int64   `json:"t"`
	} `json:"results"`
}

// dividendsResponse is the raw JSON shape of the dividends reference endpoint
// (/v3/reference/dividends).
type dividendsResponse struct {
	Status  string `json:"status"`
	Results []struct {
		CashAmount     float64 `json:"cash_amount"`
		ExDividendDate string  `json:"ex_dividend_date"`
		PayDate        string  `json:"pay_date"`
		RecordDate     string  `json:"record_date"`
		Frequency      int     `json:"frequency"`
	} `json:"results"`
}

// tickerResponse is the raw JSON shape of the ticker details endpoint
// (/v3/reference/tickers/{symbol}).
type tickerResponse struct {
	Status  string `json:"status"`
	Results struct {
		Ticker string `json:"ticker"`
		Name   string `json:"name"`
		Market string `json:"market"`
		Type   string `json:"type"`
	} `json:"results"`
}

// Quote is a parsed previous-day closing quote.
type Quote struct {
	Symbol        string
	Price         float64
	Change        float64
	ChangePercent float64
	Volume        float64
}

// DividendRecord is one historical dividend payment.
type DividendRecord struct {
	CashAmount     float64
	ExDividendDate string
	PayDate        string
}
