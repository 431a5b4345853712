package provider

import (
	"context"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Source names the upstream a Quote was resolved from.
type Source string

const (
	SourceYahoo     Source = "yahoo"     // primary equity feed
	SourceStooq     Source = "stooq"     // fallback equity feed
	SourceCoinGecko Source = "coingecko" // crypto feed
)

// ISOLayout matches the millisecond UTC form browsers produce for Date.toISOString.
const ISOLayout = "2006-01-02T15:04:05.000Z07:00"

// Quote is the normalized shape returned by all providers.
// Price is always finite; anything else never becomes a Quote.
type Quote struct {
	Symbol        string   `json:"symbol"`
	Price         float64  `json:"price"`
	ChangePercent *float64 `json:"changePercent,omitempty"`
	Timestamp     string   `json:"timestamp"`
	Source        Source   `json:"source"`
}

// Result is the outcome of pricing one symbol: either Resolved with a Quote
// or Unresolved.
type Result struct {
	Symbol   string
	Quote    Quote
	Resolved bool
}

func Resolved(q Quote) Result { return Result{Symbol: q.Symbol, Quote: q, Resolved: true} }

func Unresolved(symbol string) Result { return Result{Symbol: symbol} }

// EquityFetcher prices a single equity symbol. A non-nil error means the
// symbol could not be priced by this feed.
type EquityFetcher interface {
	Name() string
	FetchEquity(ctx context.Context, symbol string) (Quote, error)
}

// CryptoFetcher prices a batch of crypto symbols. It returns exactly one
// Result per requested symbol, in request order, even when err is non-nil.
type CryptoFetcher interface {
	Name() string
	FetchCrypto(ctx context.Context, symbols []string) ([]Result, error)
}

// Finite reports whether v is neither NaN nor an infinity.
func Finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Round2 rounds v to two decimal places. Non-finite input is returned as is.
func Round2(v float64) float64 {
	if !Finite(v) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// PercentChange returns (current-base)/base*100 rounded to two decimals, or
// nil when base is zero or either operand is not finite.
func PercentChange(current, base float64) *float64 {
	if base == 0 || !Finite(base) || !Finite(current) {
		return nil
	}
	pct := (current - base) / base * 100
	if !Finite(pct) {
		return nil
	}
	pct = Round2(pct)
	return &pct
}

// Float returns a pointer to a rounded copy of v, or nil when v is not finite.
func Float(v float64) *float64 {
	if !Finite(v) {
		return nil
	}
	r := Round2(v)
	return &r
}

// ISO formats t the way every Quote and response timestamp is rendered.
func ISO(t time.Time) string { return t.UTC().Format(ISOLayout) }
