package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"portfoliotracker/internal/aggregate"
	"portfoliotracker/internal/config"
	"portfoliotracker/internal/httpx"
	"portfoliotracker/internal/provider"
	"portfoliotracker/internal/provider/cache"
	"portfoliotracker/internal/provider/coingecko"
	"portfoliotracker/internal/provider/stooq"
	"portfoliotracker/internal/provider/yahoo"
)

// App holds the long-lived pieces shared by the server and the CLI.
type App struct {
	Aggregator *aggregate.Aggregator
	closers    []func() error
}

// New wires the upstream clients, the optional quote cache and the
// aggregator from cfg. Callers must Close the App.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	hc := httpx.New(cfg.Server.UpstreamTimeout())
	header := http.Header{"User-Agent": {cfg.Server.UserAgent}}

	var (
		primary provider.EquityFetcher = yahoo.NewClient(
			yahoo.WithBaseURL(cfg.Yahoo.BaseURL),
			yahoo.WithHTTPClient(hc),
			yahoo.WithHeader(header),
			yahoo.WithChartWindow(cfg.Yahoo.Interval, cfg.Yahoo.Range),
			yahoo.WithPrePost(cfg.Yahoo.IncludePrePost),
		)
		fallback provider.EquityFetcher = stooq.NewClient(
			stooq.WithBaseURL(cfg.Stooq.BaseURL),
			stooq.WithHTTPClient(hc),
			stooq.WithHeader(header),
			stooq.WithMarketSuffix(cfg.Stooq.MarketSuffix),
		)
		crypto provider.CryptoFetcher = coingecko.NewClient(
			coingecko.WithBaseURL(cfg.CoinGecko.BaseURL),
			coingecko.WithHTTPClient(hc),
			coingecko.WithHeader(header),
			coingecko.WithAPIKey(cfg.CoinGecko.APIKey),
			coingecko.WithTimeout(cfg.Server.UpstreamTimeout()),
		)
	)

	a := &App{}
	if ttl := cfg.Cache.TTL(); ttl > 0 {
		store, err := a.store(ctx, cfg.Cache, logger)
		if err != nil {
			return nil, err
		}
		primary = &cache.Equity{F: primary, Store: store, TTL: ttl}
		fallback = &cache.Equity{F: fallback, Store: store, TTL: ttl}
		crypto = &cache.Crypto{F: crypto, Store: store, TTL: ttl}
		logger.Info("quote cache enabled",
			zap.Duration("ttl", ttl),
			zap.Bool("redis", cfg.Cache.RedisAddr != ""),
		)
	}

	a.Aggregator = aggregate.New(primary, fallback, crypto, logger.Named("aggregate"))
	a.closers = append(a.closers, func() error {
		hc.HTTP.CloseIdleConnections()
		return nil
	})
	return a, nil
}

func (a *App) store(ctx context.Context, c config.Cache, logger *zap.Logger) (cache.Store, error) {
	if c.RedisAddr == "" {
		return cache.NewMemory(uint(max(c.MaxItems, 0))), nil
	}
	r := cache.NewRedis(redis.NewClient(&redis.Options{
		Addr:     c.RedisAddr,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	}), logger.Named("cache"))
	if err := r.Ping(ctx); err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("redis %s: %w", c.RedisAddr, err)
	}
	a.closers = append(a.closers, r.Close)
	return r, nil
}

// Close releases Redis connections and idle upstream connections.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
