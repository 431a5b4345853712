package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"portfoliotracker/internal/httpx"
	"portfoliotracker/internal/provider"
)

var (
	// ErrNoResult is returned when the payload has no chart.result[0].
	ErrNoResult = errors.New("yahoo: missing chart result")
	// ErrNoPrice is returned when neither a close nor regularMarketPrice is usable.
	ErrNoPrice = errors.New("yahoo: no finite price")
)

func (c *Client) Name() string { return string(provider.SourceYahoo) }

// FetchEquity retrieves the intraday chart for symbol and reduces it to a Quote.
func (c *Client) FetchEquity(ctx context.Context, symbol string) (provider.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	query := url.Values{}
	query.Set("interval", c.interval)
	query.Set("range", c.rng)
	query.Set("includePrePost", strconv.FormatBool(c.includePrePost))

	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(symbol), query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return provider.Quote{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.header.Clone()
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return provider.Quote{}, fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	if err := httpx.CheckStatus(res); err != nil {
		return provider.Quote{}, fmt.Errorf("yahoo %s: %w", symbol, err)
	}

	var body chartResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return provider.Quote{}, fmt.Errorf("decoding chart response: %w", err)
	}
	return body.quote(symbol, time.Now().UTC())
}

type chartResponse struct {
	Chart struct {
		Result []*chartResult `json:"result"`
		Error  any            `json:"error"`
	} `json:"chart"`
}

// Values are kept loosely typed: closes contain null gaps and meta fields
// are not guaranteed to be numbers.
type chartResult struct {
	Meta       map[string]any `json:"meta"`
	Timestamp  []any          `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Close []any `json:"close"`
		} `json:"quote"`
	} `json:"indicators"`
}

func (r chartResponse) quote(symbol string, at time.Time) (provider.Quote, error) {
	if len(r.Chart.Result) == 0 || r.Chart.Result[0] == nil {
		return provider.Quote{}, fmt.Errorf("%s: %w", symbol, ErrNoResult)
	}
	res := r.Chart.Result[0]

	var closes []any
	if len(res.Indicators.Quote) > 0 {
		closes = res.Indicators.Quote[0].Close
	}

	price, havePrice := 0.0, false
	var epoch float64
	for i := len(closes) - 1; i >= 0; i-- {
		v, ok := number(closes[i])
		if !ok {
			continue
		}
		price, havePrice = v, true
		if i < len(res.Timestamp) {
			epoch, _ = number(res.Timestamp[i])
		}
		break
	}
	if !havePrice {
		price, havePrice = number(res.Meta["regularMarketPrice"])
	}
	if !havePrice {
		return provider.Quote{}, fmt.Errorf("%s: %w", symbol, ErrNoPrice)
	}

	var change *float64
	if prev, ok := number(res.Meta["previousClose"]); ok {
		change = provider.PercentChange(price, prev)
	}

	ts := at
	if epoch > 0 {
		ts = time.Unix(int64(epoch), 0)
	}

	return provider.Quote{
		Symbol:        symbol,
		Price:         provider.Round2(price),
		ChangePercent: change,
		Timestamp:     provider.ISO(ts),
		Source:        provider.SourceYahoo,
	}, nil
}

// number returns v as a finite float64 when it is a JSON number.
func number(v any) (float64, bool) {
	f, ok := v.(float64)
	if !ok || !provider.Finite(f) {
		return 0, false
	}
	return f, true
}
