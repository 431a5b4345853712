package aggregate

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"portfoliotracker/internal/httpx"
	"portfoliotracker/internal/provider"
	"portfoliotracker/internal/symbols"
)

//go:generate mockgen -package=aggregate_test -destination=mock_fetchers_test.go portfoliotracker/internal/provider EquityFetcher,CryptoFetcher

// Response is the merged result of one aggregation call.
type Response struct {
	Quotes []provider.Quote `json:"quotes"`
	TS     string           `json:"ts"`
}

// Aggregator resolves symbols against the equity feeds (primary, then
// fallback) and the crypto feed. It holds no per-call state and is safe for
// concurrent use.
type Aggregator struct {
	primary  provider.EquityFetcher
	fallback provider.EquityFetcher
	crypto   provider.CryptoFetcher
	logger   *zap.Logger

	// feed names for logs, read once so late tasks never call back into
	// a fetcher after Aggregate returned
	primaryName, fallbackName, cryptoName string
}

func New(primary, fallback provider.EquityFetcher, crypto provider.CryptoFetcher, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Aggregator{primary: primary, fallback: fallback, crypto: crypto, logger: logger}
	if primary != nil {
		a.primaryName = primary.Name()
	}
	if fallback != nil {
		a.fallbackName = fallback.Name()
	}
	if crypto != nil {
		a.cryptoName = crypto.Name()
	}
	return a
}

// Aggregate normalizes and dedupes symbols, prices crypto symbols in one
// batch and every equity symbol independently, all concurrently, and returns
// the quotes that resolved to a finite price. Crypto quotes come first.
//
// Per-symbol failures are absorbed: a symbol nobody could price is omitted.
// When ctx ends before every task finished, the quotes resolved so far are
// returned and the unfinished symbols are omitted. An error is returned only
// when a task panicked.
func (a *Aggregator) Aggregate(ctx context.Context, in []string) (Response, error) {
	syms := symbols.Normalize(in)
	cryptoSyms, equitySyms := symbols.Partition(syms)

	var (
		g             errgroup.Group
		mu            sync.Mutex
		cryptoResults []provider.Result
		equityResults = make([]provider.Result, len(equitySyms))
	)
	if len(cryptoSyms) > 0 {
		g.Go(guard("crypto batch", func() {
			res, err := a.crypto.FetchCrypto(ctx, cryptoSyms)
			if err != nil {
				a.logFailure("crypto batch failed", a.cryptoName, cryptoSyms, err)
			}
			mu.Lock()
			cryptoResults = res
			mu.Unlock()
		}))
	}
	for i, s := range equitySyms {
		g.Go(guard(s, func() {
			r := a.resolveEquity(ctx, s)
			mu.Lock()
			equityResults[i] = r
			mu.Unlock()
		}))
	}

	joined := make(chan error, 1)
	go func() { joined <- g.Wait() }()
	select {
	case err := <-joined:
		if err != nil {
			return Response{}, err
		}
	case <-ctx.Done():
		// A panic that raced the deadline still wins.
		select {
		case err := <-joined:
			if err != nil {
				return Response{}, err
			}
		default:
			a.logger.Debug("aggregation cut short, returning resolved quotes",
				zap.Int("symbols", len(syms)),
				zap.Error(ctx.Err()),
			)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	quotes := make([]provider.Quote, 0, len(syms))
	for _, r := range append(slices.Clone(cryptoResults), equityResults...) {
		if r.Resolved && provider.Finite(r.Quote.Price) {
			quotes = append(quotes, r.Quote)
		}
	}
	return Response{Quotes: quotes, TS: provider.ISO(time.Now())}, nil
}

// resolveEquity tries the primary feed and, only if it fails, the fallback.
// Under a deadline the primary gets half of the remaining time so a hung
// primary still leaves the fallback a chance.
func (a *Aggregator) resolveEquity(ctx context.Context, symbol string) provider.Result {
	q, err := a.fetchPrimary(ctx, symbol)
	if err == nil && provider.Finite(q.Price) {
		return provider.Resolved(q)
	}
	a.logFailure("primary equity fetch failed", a.primaryName, []string{symbol}, err)

	if a.fallback == nil {
		return provider.Unresolved(symbol)
	}
	q, err = a.fallback.FetchEquity(ctx, symbol)
	if err == nil && provider.Finite(q.Price) {
		return provider.Resolved(q)
	}
	a.logFailure("fallback equity fetch failed", a.fallbackName, []string{symbol}, err)
	return provider.Unresolved(symbol)
}

func (a *Aggregator) fetchPrimary(ctx context.Context, symbol string) (provider.Quote, error) {
	deadline, ok := ctx.Deadline()
	if !ok || a.fallback == nil {
		return a.primary.FetchEquity(ctx, symbol)
	}
	pctx, cancel := context.WithDeadline(ctx, time.Now().Add(time.Until(deadline)/2))
	defer cancel()
	return a.primary.FetchEquity(pctx, symbol)
}

func (a *Aggregator) logFailure(msg, feed string, syms []string, err error) {
	if err == nil {
		err = errors.New("non-finite price")
	}
	kind := "response"
	var se *httpx.StatusError
	switch {
	case errors.As(err, &se):
		kind = "status"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		kind = "canceled"
	}
	a.logger.Debug(msg,
		zap.String("feed", feed),
		zap.Strings("symbols", syms),
		zap.String("kind", kind),
		zap.Error(err),
	)
}

// guard turns a panic inside a fan-out task into an error for the join.
func guard(task string, fn func()) func() error {
	return func() (err error) {
		defer func() {
			if rec := recover(); rec != nil {
				err = fmt.Errorf("aggregate %s: panic: %v", task, rec)
			}
		}()
		fn()
		return nil
	}
}
