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
	"golang.org/x/time/rate"

	"EquityScope/internal/model"
)

const (
	defaultYahooChartURL   = "https://query1.finance.yahoo.com"
	defaultYahooSummaryURL = "https://query2.finance.yahoo.com"
	yahooSummaryModules    = "financialData,defaultKeyStatistics,summaryDetail,price,assetProfile"
)

// YahooFetcher implements Fetcher using Yahoo Finance public API.
type YahooFetcher struct {
	Client     *http.Client
	ChartURL   string
	SummaryURL string
	Limiter    *rate.Limiter
}

// NewYahooFetcher creates a new Yahoo Finance fetcher. requestsPerSecond <= 0
// disables pacing.
func NewYahooFetcher(proxyURL string, requestsPerSecond float64) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	f := &YahooFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		ChartURL:   defaultYahooChartURL,
		SummaryURL: defaultYahooSummaryURL,
	}
	if requestsPerSecond > 0 {
		f.Limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
	}
	return f
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *yahooError `json:"error"`
	} `json:"chart"`
}

type yahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// yahooValue is Yahoo's {"raw": 1.23, "fmt": "1.23"} wrapper; {} means absent.
type yahooValue struct {
	Raw *float64 `json:"raw"`
}

func (v *yahooValue) value() *float64 {
	if v == nil || v.Raw == nil {
		return nil
	}
	r := *v.Raw
	return &r
}

type yahooSummary struct {
	QuoteSummary struct {
		Result []struct {
			FinancialData *struct {
				CurrentPrice      *yahooValue `json:"currentPrice"`
				ReturnOnEquity    *yahooValue `json:"returnOnEquity"`
				DebtToEquity      *yahooValue `json:"debtToEquity"`
				ProfitMargins     *yahooValue `json:"profitMargins"`
				RevenueGrowth     *yahooValue `json:"revenueGrowth"`
				FreeCashflow      *yahooValue `json:"freeCashflow"`
				TargetMeanPrice   *yahooValue `json:"targetMeanPrice"`
				RecommendationKey string      `json:"recommendationKey"`
			} `json:"financialData"`
			DefaultKeyStatistics *struct {
				TrailingEps *yahooValue `json:"trailingEps"`
				PriceToBook *yahooValue `json:"priceToBook"`
				Beta        *yahooValue `json:"beta"`
			} `json:"defaultKeyStatistics"`
			SummaryDetail *struct {
				TrailingPE       *yahooValue `json:"trailingPE"`
				DividendYield    *yahooValue `json:"dividendYield"`
				FiftyTwoWeekHigh *yahooValue `json:"fiftyTwoWeekHigh"`
				FiftyTwoWeekLow  *yahooValue `json:"fiftyTwoWeekLow"`
				MarketCap        *yahooValue `json:"marketCap"`
			} `json:"summaryDetail"`
			Price *struct {
				LongName  string      `json:"longName"`
				ShortName string      `json:"shortName"`
				MarketCap *yahooValue `json:"marketCap"`
			} `json:"price"`
			AssetProfile *struct {
				Sector   string `json:"sector"`
				Industry string `json:"industry"`
			} `json:"assetProfile"`
		} `json:"result"`
		Error *yahooError `json:"error"`
	} `json:"quoteSummary"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

// get performs a paced GET and classifies failures into FetchError.
func (f *YahooFetcher) get(ctx context.Context, op, symbol, u string) ([]byte, error) {
	fail := func(status int, retriable bool, err error) error {
		return &FetchError{Source: f.Name(), Symbol: symbol, Op: op, StatusCode: status, Retriable: retriable, Err: err}
	}

	if f.Limiter != nil {
		if err := f.Limiter.Wait(ctx); err != nil {
			return nil, fail(0, false, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fail(0, false, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fail(0, ctx.Err() == nil, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fail(resp.StatusCode, true, fmt.Errorf("read body: %w", err))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fail(resp.StatusCode, retriableStatus(resp.StatusCode), fmt.Errorf("body: %s", truncate(body, 200)))
	}
	return body, nil
}

func (f *YahooFetcher) fetchChart(ctx context.Context, symbol, interval, rng string) ([]model.Observation, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s",
		f.ChartURL, url.PathEscape(symbol), interval, rng)

	body, err := f.get(ctx, "chart", symbol, u)
	if err != nil {
		return nil, err
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, &FetchError{Source: f.Name(), Symbol: symbol, Op: "chart", Err: fmt.Errorf("decode: %w", err)}
	}
	if chart.Chart.Error != nil {
		return nil, &FetchError{Source: f.Name(), Symbol: symbol, Op: "chart", Err: fmt.Errorf("api error: %s", chart.Chart.Error.Description)}
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 ||
		len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, &FetchError{Source: f.Name(), Symbol: symbol, Op: "chart", Err: ErrNoData}
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	bars := make([]model.Observation, 0, len(result.Timestamp))

	at := func(series []interface{}, i int) float64 {
		if i < len(series) {
			return toFloat(series[i])
		}
		return 0
	}

	for i, ts := range result.Timestamp {
		o := at(quote.Open, i)
		h := at(quote.High, i)
		l := at(quote.Low, i)
		c := at(quote.Close, i)
		if o == 0 || h == 0 || l == 0 || c == 0 {
			continue // null bars (holidays, suspensions)
		}
		bars = append(bars, model.Observation{
			Date:   time.Unix(ts, 0).UTC(),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: int64(at(quote.Volume, i)),
		})
	}
	if len(bars) == 0 {
		return nil, &FetchError{Source: f.Name(), Symbol: symbol, Op: "chart", Err: ErrNoData}
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return dedupeByDay(bars), nil
}

// FetchDailyBars returns up to days trading days, oldest first.
func (f *YahooFetcher) FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.Observation, error) {
	rng := "2y"
	switch {
	case days <= 5:
		rng = "5d"
	case days <= 22:
		rng = "1mo"
	case days <= 66:
		rng = "3mo"
	case days <= 130:
		rng = "6mo"
	case days <= 252:
		rng = "1y"
	}
	bars, err := f.fetchChart(ctx, symbol, "1d", rng)
	if err != nil {
		return nil, err
	}
	if days > 0 && len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}

// FetchFundamentals reads the quoteSummary modules and converts Yahoo's
// fractions to percentages and its percent-scaled D/E to a plain ratio.
func (f *YahooFetcher) FetchFundamentals(ctx context.Context, symbol string) (*model.FundamentalSnapshot, error) {
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s",
		f.SummaryURL, url.PathEscape(symbol), yahooSummaryModules)

	body, err := f.get(ctx, "fundamentals", symbol, u)
	if err != nil {
		return nil, err
	}

	var summary yahooSummary
	if err := json.Unmarshal(body, &summary); err != nil {
		return nil, &FetchError{Source: f.Name(), Symbol: symbol, Op: "fundamentals", Err: fmt.Errorf("decode: %w", err)}
	}
	if summary.QuoteSummary.Error != nil {
		return nil, &FetchError{Source: f.Name(), Symbol: symbol, Op: "fundamentals", Err: fmt.Errorf("api error: %s", summary.QuoteSummary.Error.Description)}
	}
	if len(summary.QuoteSummary.Result) == 0 {
		return nil, &FetchError{Source: f.Name(), Symbol: symbol, Op: "fundamentals", Err: ErrNoData}
	}

	r := summary.QuoteSummary.Result[0]
	snap := &model.FundamentalSnapshot{}

	if fd := r.FinancialData; fd != nil {
		snap.CurrentPrice = fd.CurrentPrice.value()
		snap.ROE = scale(fd.ReturnOnEquity.value(), 100)
		snap.DebtToEquity = scale(fd.DebtToEquity.value(), 0.01)
		snap.ProfitMargin = scale(fd.ProfitMargins.value(), 100)
		snap.RevenueGrowth = scale(fd.RevenueGrowth.value(), 100)
		snap.TargetPrice = fd.TargetMeanPrice.value()
		if fcf := fd.FreeCashflow.value(); fcf != nil {
			snap.FreeCashFlowPositive = model.Bool(*fcf > 0)
		}
		if fd.RecommendationKey != "" && fd.RecommendationKey != "none" {
			snap.Recommendation = model.String(fd.RecommendationKey)
		}
	}
	if ks := r.DefaultKeyStatistics; ks != nil {
		snap.EPS = ks.TrailingEps.value()
		snap.PBRatio = ks.PriceToBook.value()
		snap.Beta = ks.Beta.value()
	}
	if sd := r.SummaryDetail; sd != nil {
		snap.PERatio = sd.TrailingPE.value()
		snap.DividendYield = scale(sd.DividendYield.value(), 100)
		snap.Week52High = sd.FiftyTwoWeekHigh.value()
		snap.Week52Low = sd.FiftyTwoWeekLow.value()
		snap.MarketCap = sd.MarketCap.value()
	}
	if p := r.Price; p != nil {
		switch {
		case p.LongName != "":
			snap.CompanyName = model.String(p.LongName)
		case p.ShortName != "":
			snap.CompanyName = model.String(p.ShortName)
		}
		if snap.MarketCap == nil {
			snap.MarketCap = p.MarketCap.value()
		}
	}
	if ap := r.AssetProfile; ap != nil {
		if ap.Sector != "" {
			snap.Sector = model.String(ap.Sector)
		}
		if ap.Industry != "" {
			snap.Industry = model.String(ap.Industry)
		}
	}
	return snap, nil
}

func scale(v *float64, factor float64) *float64 {
	if v == nil {
		return nil
	}
	return model.Float(*v * factor)
}

// dedupeByDay keeps the last bar of each calendar day. Yahoo sometimes
// appends a live intraday bar that shares the date of the final daily bar.
func dedupeByDay(bars []model.Observation) []model.Observation {
	out := bars[:0]
	for _, b := range bars {
		if n := len(out); n > 0 && sameDay(out[n-1].Date, b.Date) {
			out[n-1] = b
			continue
		}
		out = append(out, b)
	}
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
