// Package symbols classifies ticker symbols and normalizes request lists.
package symbols

import "strings"

// assetIDs maps crypto tickers to CoinGecko asset ids. It is never mutated.
var assetIDs = map[string]string{
	"BTC":  "bitcoin",
	"ETH":  "ethereum",
	"SOL":  "solana",
	"ADA":  "cardano",
	"DOT":  "polkadot",
	"LINK": "chainlink",
}

// AssetID returns the crypto asset id for symbol. ok is false when the
// symbol should be treated as an equity.
func AssetID(symbol string) (id string, ok bool) {
	id, ok = assetIDs[strings.ToUpper(strings.TrimSpace(symbol))]
	return id, ok
}

// IsCrypto reports whether symbol is in the crypto table.
func IsCrypto(symbol string) bool {
	_, ok := AssetID(symbol)
	return ok
}

// Partition splits symbols into crypto and equity subsets, preserving order.
func Partition(symbols []string) (crypto, equity []string) {
	for _, s := range symbols {
		if IsCrypto(s) {
			crypto = append(crypto, s)
		} else {
			equity = append(equity, s)
		}
	}
	return crypto, equity
}

// Normalize trims and uppercases every symbol, drops empty ones and removes
// duplicates, keeping first-seen order.
func Normalize(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// SplitParam turns one or more comma-separated query values into trimmed,
// uppercased tokens. Empty tokens are dropped; duplicates are kept.
func SplitParam(values ...string) []string {
	var out []string
	for _, v := range values {
		for _, p := range strings.Split(v, ",") {
			p = strings.ToUpper(strings.TrimSpace(p))
			if p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
