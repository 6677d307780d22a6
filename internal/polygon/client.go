// Package polygon provides a rate-limited client for the Polygon.io market
// data API. The free tier allows five requests per minute and serves
// end-of-day data only, so the client leans on a sliding-window limiter and a
// short response cache to stay inside quota.
package polygon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/dividenddash/backend/internal/dates"
	"github.com/dividenddash/backend/internal/dividend"
	"github.com/dividenddash/backend/internal/model"
	"github.com/dividenddash/backend/internal/ratelimit"
)

const (
	defaultBaseURL = "https://api.polygon.io"

	// Free-tier request quota.
	requestsPerWindow = 5
	requestWindow     = time.Minute

	// Responses are end-of-day data; caching them briefly is harmless and
	// saves quota when several symbols resolve through the same endpoint.
	cacheTTL = 15 * time.Minute

	// dividendHistoryLimit is how many historical payments to request when
	// inferring a fund's payment frequency.
	dividendHistoryLimit = 12
)

// Client queries Polygon.io with rate limiting and response caching.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *ratelimit.Limiter

	mu    sync.Mutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	body    []byte
	fetched time.Time
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API base URL. Tests point this at an httptest
// server.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithLimiter overrides the request limiter.
func WithLimiter(l *ratelimit.Limiter) ClientOption {
	return func(c *Client) { c.limiter = l }
}

// NewClient creates a Polygon client for the given API key.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    ratelimit.New(requestsPerWindow, requestWindow),
		cache:      make(map[string]cacheEntry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get performs a rate-limited, cached GET against the API.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	cacheKey := path + "?" + params.Encode()

	c.mu.Lock()
	if entry, ok := c.cache[cacheKey]; ok && time.Since(entry.fetched) < cacheTTL {
		c.mu.Unlock()
		return entry.body, nil
	}
	c.mu.Unlock()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("invalid request URL: %w", err)
	}
	query := u.Query()
	for k, vs := range params {
		for _, v := range vs {
			query.Add(k, v)
		}
	}
	query.Set("apiKey", c.apiKey)
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("polygon request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return nil, fmt.Errorf("polygon rate limit exceeded")
	case http.StatusForbidden:
		return nil, fmt.Errorf("polygon access denied: endpoint not available on this plan")
	default:
		return nil, fmt.Errorf("polygon request failed: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read polygon response: %w", err)
	}

	c.mu.Lock()
	c.cache[cacheKey] = cacheEntry{body: body, fetched: time.Now()}
	c.mu.Unlock()

	return body, nil
}

// PreviousDay fetches the previous trading day's closing quote for a symbol.
func (c *Client) PreviousDay(ctx context.Context, symbol string) (Quote, error) {
	body, err := c.get(ctx, "/v2/aggs/ticker/"+url.PathEscape(symbol)+"/prev", url.Values{})
	if err != nil {
		return Quote{}, err
	}

	var parsed aggsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Quote{}, fmt.Errorf("failed to decode aggregates for %s: %w", symbol, err)
	}
	if len(parsed.Results) == 0 {
		return Quote{}, fmt.Errorf("no price data returned for %s", symbol)
	}

	r := parsed.Results[0]
	q := Quote{
		Symbol: symbol,
		Price:  r.Close,
		Change: r.Close - r.Open,
		Volume: r.Volume,
	}
	if r.Open != 0 {
		q.ChangePercent = (r.Close - r.Open) / r.Open * 100
	}
	return q, nil
}

// Dividends fetches recent dividend history for a symbol, most recent first.
func (c *Client) Dividends(ctx context.Context, symbol string) ([]DividendRecord, error) {
	params := url.Values{}
	params.Set("ticker", symbol)
	params.Set("limit", fmt.Sprintf("%d", dividendHistoryLimit))
	params.Set("sort", "ex_dividend_date")
	params.Set("order", "desc")

	body, err := c.get(ctx, "/v3/reference/dividends", params)
	if err != nil {
		return nil, err
	}

	var parsed dividendsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode dividends for %s: %w", symbol, err)
	}

	records := make([]DividendRecord, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		records = append(records, DividendRecord{
			CashAmount:     r.CashAmount,
			ExDividendDate: r.ExDividendDate,
			PayDate:        r.PayDate,
		})
	}
	return records, nil
}

// TickerName fetches the display name for a symbol.
func (c *Client) TickerName(ctx context.Context, symbol string) (string, error) {
	body, err := c.get(ctx, "/v3/reference/tickers/"+url.PathEscape(symbol), url.Values{})
	if err != nil {
		return "", err
	}

	var parsed tickerResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode ticker details for %s: %w", symbol, err)
	}
	return parsed.Results.Name, nil
}

// FundSnapshot builds a fund record for a symbol from the previous-day quote
// and recent dividend history. The payment frequency is inferred from the
// ex-date series; the per-share dividend is the most recent payment, and the
// annual dividend is the recent average scaled by the inferred cadence.
//
// Name and sector are not filled in here; callers merge the snapshot into an
// existing catalog row to preserve them.
func (c *Client) FundSnapshot(ctx context.Context, symbol string) (model.Fund, error) {
	quote, err := c.PreviousDay(ctx, symbol)
	if err != nil {
		return model.Fund{}, err
	}

	records, err := c.Dividends(ctx, symbol)
	if err != nil {
		return model.Fund{}, err
	}

	fund := model.Fund{
		Symbol:    symbol,
		Price:     quote.Price,
		Frequency: dates.Unknown,
		UpdatedAt: time.Now(),
	}

	if len(records) == 0 {
		return fund, nil
	}

	exDates := make([]dates.Date, 0, len(records))
	for _, r := range records {
		d, err := dates.Parse(r.ExDividendDate)
		if err != nil {
			continue // tolerate odd rows, frequency inference degrades gracefully
		}
		exDates = append(exDates, d)
	}

	fund.Frequency = dividend.InferFrequency(exDates)
	fund.DividendPerShare = records[0].CashAmount
	if len(exDates) > 0 {
		fund.ExDividendDate = exDates[0]
	}
	fund.AnnualDividend = annualDividend(records, fund.Frequency)

	return fund, nil
}

// annualDividend estimates the per-share dividend over a year from the last
// few payments scaled by the payment cadence.
func annualDividend(records []DividendRecord, freq dates.Frequency) float64 {
	n := len(records)
	if n == 0 {
		return 0
	}
	if n > 4 {
		n = 4
	}
	var sum float64
	for _, r := range records[:n] {
		sum += r.CashAmount
	}
	avg := sum / float64(n)
	return avg * float64(freq.PaymentsPerYear())
}
