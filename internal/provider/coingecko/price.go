package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"portfoliotracker/internal/httpx"
	"portfoliotracker/internal/provider"
	"portfoliotracker/internal/symbols"
)

// prices maps asset id -> field -> value, e.g. {"bitcoin": {"usd": 43250}}.
type prices map[string]map[string]any

func (c *Client) Name() string { return string(provider.SourceCoinGecko) }

// FetchCrypto prices all symbols with a single batched request. Every
// requested symbol gets a Result; symbols the API omits and symbols outside
// the asset table come back Unresolved. When the batch itself fails, every
// Result is Unresolved and the error is returned alongside them.
func (c *Client) FetchCrypto(ctx context.Context, syms []string) ([]provider.Result, error) {
	if len(syms) == 0 {
		return []provider.Result{}, nil
	}

	ids := make([]string, 0, len(syms))
	for _, s := range syms {
		if id, ok := symbols.AssetID(s); ok && !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}

	out := make([]provider.Result, 0, len(syms))
	var (
		data prices
		err  error
	)
	if len(ids) > 0 {
		slices.Sort(ids)
		key := strings.Join(ids, ",")
		// The shared request outlives any one caller; each caller only
		// stops waiting when its own ctx ends.
		ch := c.sf.DoChan(key, func() (any, error) {
			fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
			defer cancel()
			return c.fetch(fctx, key)
		})
		select {
		case r := <-ch:
			err = r.Err
			if err == nil {
				data = r.Val.(prices)
			}
		case <-ctx.Done():
			err = fmt.Errorf("coingecko batch: %w", ctx.Err())
		}
	}

	now := provider.ISO(time.Now())
	usdChange := c.vsCurrency + "_24h_change"
	for _, s := range syms {
		sym := strings.ToUpper(strings.TrimSpace(s))
		id, _ := symbols.AssetID(sym)
		row, ok := data[id]
		if !ok {
			out = append(out, provider.Unresolved(sym))
			continue
		}
		price, ok := row[c.vsCurrency].(float64)
		if !ok || !provider.Finite(price) {
			out = append(out, provider.Unresolved(sym))
			continue
		}
		var change *float64
		if v, ok := row[usdChange].(float64); ok {
			change = provider.Float(v)
		}
		out = append(out, provider.Resolved(provider.Quote{
			Symbol:        sym,
			Price:         price,
			ChangePercent: change,
			Timestamp:     now,
			Source:        provider.SourceCoinGecko,
		}))
	}
	return out, err
}

func (c *Client) fetch(ctx context.Context, ids string) (prices, error) {
	query := url.Values{}
	query.Set("ids", ids)
	query.Set("vs_currencies", c.vsCurrency)
	query.Set("include_24hr_change", "true")

	u := fmt.Sprintf("%s/api/v3/simple/price?%s", c.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.header.Clone()
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	if err := httpx.CheckStatus(res); err != nil {
		return nil, fmt.Errorf("coingecko: %w", err)
	}

	var body prices
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding simple price response: %w", err)
	}
	return body, nil
}
