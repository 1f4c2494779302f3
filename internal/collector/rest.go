package collector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	json "github.com/goccy/go-json"

	"EquityScope/internal/model"
)

// RESTFetcher implements Fetcher against a self-hosted JSON market data API.
type RESTFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewRESTFetcher creates a new fetcher with optional proxy support.
func NewRESTFetcher(baseURL, apiKey, proxyURL string) *RESTFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &RESTFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *RESTFetcher) Name() string { return "rest" }

// restBar is the expected JSON shape from the bars endpoint.
type restBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    int64   `json:"volume"`
}

// restFundamentals mirrors model.FundamentalSnapshot; null fields stay nil.
type restFundamentals struct {
	CompanyName          *string  `json:"company_name"`
	Sector               *string  `json:"sector"`
	Industry             *string  `json:"industry"`
	PERatio              *float64 `json:"pe_ratio"`
	PBRatio              *float64 `json:"pb_ratio"`
	EPS                  *float64 `json:"eps"`
	ROE                  *float64 `json:"roe_pct"`
	DebtToEquity         *float64 `json:"debt_to_equity"`
	ProfitMargin         *float64 `json:"profit_margin_pct"`
	RevenueGrowth        *float64 `json:"revenue_growth_pct"`
	FreeCashFlowPositive *bool    `json:"fcf_positive"`
	TargetPrice          *float64 `json:"target_price"`
	Recommendation       *string  `json:"recommendation"`
	MarketCap            *float64 `json:"market_cap"`
	CurrentPrice         *float64 `json:"current_price"`
	Beta                 *float64 `json:"beta"`
	DividendYield        *float64 `json:"dividend_yield_pct"`
	Week52High           *float64 `json:"week52_high"`
	Week52Low            *float64 `json:"week52_low"`
}

func (f *RESTFetcher) FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.Observation, error) {
	endpoint := fmt.Sprintf("%s/api/v1/bars/daily?symbol=%s&limit=%d", f.BaseURL, url.QueryEscape(symbol), days)

	var raw []restBar
	if err := f.getJSON(ctx, "bars", symbol, endpoint, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, &FetchError{Source: f.Name(), Symbol: symbol, Op: "bars", Err: ErrNoData}
	}

	bars := make([]model.Observation, len(raw))
	for i, rb := range raw {
		bars[i] = model.Observation{
			Date:   time.Unix(rb.Timestamp, 0).UTC(),
			Open:   rb.Open,
			High:   rb.High,
			Low:    rb.Low,
			Close:  rb.Close,
			Volume: rb.Volume,
		}
	}
	// Ensure chronological order
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}

func (f *RESTFetcher) FetchFundamentals(ctx context.Context, symbol string) (*model.FundamentalSnapshot, error) {
	endpoint := fmt.Sprintf("%s/api/v1/fundamentals?symbol=%s", f.BaseURL, url.QueryEscape(symbol))

	var r restFundamentals
	if err := f.getJSON(ctx, "fundamentals", symbol, endpoint, &r); err != nil {
		return nil, err
	}
	return &model.FundamentalSnapshot{
		CompanyName:          r.CompanyName,
		Sector:               r.Sector,
		Industry:             r.Industry,
		PERatio:              r.PERatio,
		PBRatio:              r.PBRatio,
		EPS:                  r.EPS,
		ROE:                  r.ROE,
		DebtToEquity:         r.DebtToEquity,
		ProfitMargin:         r.ProfitMargin,
		RevenueGrowth:        r.RevenueGrowth,
		FreeCashFlowPositive: r.FreeCashFlowPositive,
		TargetPrice:          r.TargetPrice,
		Recommendation:       r.Recommendation,
		MarketCap:            r.MarketCap,
		CurrentPrice:         r.CurrentPrice,
		Beta:                 r.Beta,
		DividendYield:        r.DividendYield,
		Week52High:           r.Week52High,
		Week52Low:            r.Week52Low,
	}, nil
}

func (f *RESTFetcher) getJSON(ctx context.Context, op, symbol, endpoint string, out interface{}) error {
	fail := func(status int, retriable bool, err error) error {
		return &FetchError{Source: f.Name(), Symbol: symbol, Op: op, StatusCode: status, Retriable: retriable, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fail(0, false, err)
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return fail(0, ctx.Err() == nil, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fail(resp.StatusCode, retriableStatus(resp.StatusCode), fmt.Errorf("body: %s", truncate(body, 200)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fail(0, false, fmt.Errorf("decode %s: %w", op, err))
	}
	return nil
}
