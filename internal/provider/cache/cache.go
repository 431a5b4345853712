package cache

import (
	"context"
	"time"

	"portfoliotracker/internal/provider"
)

// Store keeps resolved quotes for a limited time. Implementations must be
// safe for concurrent use. Errors are the store's own business: a failing
// store behaves like an empty one.
type Store interface {
	Get(ctx context.Context, key string) (provider.Quote, bool)
	Set(ctx context.Context, key string, q provider.Quote, ttl time.Duration)
}

func key(fetcher, symbol string) string { return fetcher + ":" + symbol }

// Equity caches successful quotes of an equity fetcher per symbol for a TTL.
// Failures are never cached so the next call retries upstream.
type Equity struct {
	F     provider.EquityFetcher
	Store Store
	TTL   time.Duration
}

func (c *Equity) Name() string { return c.F.Name() }

func (c *Equity) FetchEquity(ctx context.Context, symbol string) (provider.Quote, error) {
	if c.Store == nil || c.TTL <= 0 {
		return c.F.FetchEquity(ctx, symbol)
	}
	k := key(c.F.Name(), symbol)
	if q, ok := c.Store.Get(ctx, k); ok {
		return q, nil
	}
	q, err := c.F.FetchEquity(ctx, symbol)
	if err != nil {
		return q, err
	}
	c.Store.Set(ctx, k, q, c.TTL)
	return q, nil
}

// Crypto caches resolved crypto quotes per symbol for a TTL.
// It requests only missing symbols from the underlying fetcher and
// combines cached + fresh results in request order.
type Crypto struct {
	F     provider.CryptoFetcher
	Store Store
	TTL   time.Duration
}

func (c *Crypto) Name() string { return c.F.Name() }

func (c *Crypto) FetchCrypto(ctx context.Context, symbols []string) ([]provider.Result, error) {
	if c.Store == nil || c.TTL <= 0 {
		return c.F.FetchCrypto(ctx, symbols)
	}

	// Split into cached and missing symbols
	cached := make(map[string]provider.Quote, len(symbols))
	missing := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if q, ok := c.Store.Get(ctx, key(c.F.Name(), s)); ok {
			cached[s] = q
			continue
		}
		missing = append(missing, s)
	}

	fresh := make(map[string]provider.Result, len(missing))
	var err error
	if len(missing) > 0 {
		var results []provider.Result
		results, err = c.F.FetchCrypto(ctx, missing)
		for _, r := range results {
			fresh[r.Symbol] = r
			if r.Resolved {
				c.Store.Set(ctx, key(c.F.Name(), r.Symbol), r.Quote, c.TTL)
			}
		}
	}

	out := make([]provider.Result, 0, len(symbols))
	for _, s := range symbols {
		if q, ok := cached[s]; ok {
			out = append(out, provider.Resolved(q))
			continue
		}
		if r, ok := fresh[s]; ok {
			out = append(out, r)
			continue
		}
		out = append(out, provider.Unresolved(s))
	}
	return out, err
}
