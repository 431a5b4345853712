package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Server struct {
	Port               string `mapstructure:"port"`
	RequestTimeoutSec  int    `mapstructure:"request_timeout_sec"`
	UpstreamTimeoutSec int    `mapstructure:"upstream_timeout_sec"`
	MaxSymbols         int    `mapstructure:"max_symbols"`
	StaticDir          string `mapstructure:"static_dir"`
	UserAgent          string `mapstructure:"user_agent"`
}

type Yahoo struct {
	BaseURL        string `mapstructure:"base_url"`
	Interval       string `mapstructure:"interval"`
	Range          string `mapstructure:"range"`
	IncludePrePost bool   `mapstructure:"include_prepost"`
}

type Stooq struct {
	BaseURL      string `mapstructure:"base_url"`
	MarketSuffix string `mapstructure:"market_suffix"`
}

type CoinGecko struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

// Cache is disabled while TTLSeconds is 0. RedisAddr selects the shared
// Redis store instead of the in-process LRU.
type Cache struct {
	TTLSeconds    int    `mapstructure:"ttl_sec"`
	MaxItems      int    `mapstructure:"max_items"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
}

type Log struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

type Config struct {
	Server    Server    `mapstructure:"server"`
	Yahoo     Yahoo     `mapstructure:"yahoo"`
	Stooq     Stooq     `mapstructure:"stooq"`
	CoinGecko CoinGecko `mapstructure:"coingecko"`
	Cache     Cache     `mapstructure:"cache"`
	Log       Log       `mapstructure:"log"`
}

func (s Server) RequestTimeout() time.Duration {
	return time.Duration(s.RequestTimeoutSec) * time.Second
}

func (s Server) UpstreamTimeout() time.Duration {
	return time.Duration(s.UpstreamTimeoutSec) * time.Second
}

func (c Cache) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// envKeys maps config keys to the environment variables that override them.
var envKeys = map[string]string{
	"server.port":                 "PORT",
	"server.request_timeout_sec":  "REQUEST_TIMEOUT_SEC",
	"server.upstream_timeout_sec": "UPSTREAM_TIMEOUT_SEC",
	"server.max_symbols":          "MAX_SYMBOLS",
	"server.static_dir":           "STATIC_DIR",
	"server.user_agent":           "USER_AGENT",
	"yahoo.base_url":              "YAHOO_BASE_URL",
	"yahoo.interval":              "YAHOO_INTERVAL",
	"yahoo.range":                 "YAHOO_RANGE",
	"yahoo.include_prepost":       "YAHOO_INCLUDE_PREPOST",
	"stooq.base_url":              "STOOQ_BASE_URL",
	"stooq.market_suffix":         "STOOQ_MARKET_SUFFIX",
	"coingecko.base_url":          "COINGECKO_BASE_URL",
	"coingecko.api_key":           "COINGECKO_API_KEY",
	"cache.ttl_sec":               "CACHE_TTL_SEC",
	"cache.max_items":             "CACHE_MAX_ITEMS",
	"cache.redis_addr":            "REDIS_ADDR",
	"cache.redis_password":        "REDIS_PASSWORD",
	"cache.redis_db":              "REDIS_DB",
	"log.level":                   "LOG_LEVEL",
	"log.development":             "LOG_DEVELOPMENT",
}

func Default() Config {
	return Config{
		Server: Server{
			Port:               "4173",
			RequestTimeoutSec:  15,
			UpstreamTimeoutSec: 10,
			MaxSymbols:         1000,
			UserAgent:          "portfolio-tracker/1.0",
		},
		Yahoo: Yahoo{
			BaseURL:        "https://query1.finance.yahoo.com",
			Interval:       "5m",
			Range:          "1d",
			IncludePrePost: true,
		},
		Stooq:     Stooq{BaseURL: "https://stooq.com", MarketSuffix: ".us"},
		CoinGecko: CoinGecko{BaseURL: "https://api.coingecko.com"},
		Cache:     Cache{MaxItems: 10000},
		Log:       Log{Level: "info"},
	}
}

// Load builds the configuration from defaults, then the JSON file at path
// (or ./config.json when path is empty), then .env, then the environment.
// A missing config file is not an error.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v, Default())

	if path == "" {
		if _, err := os.Stat("config.json"); err == nil {
			path = "config.json"
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Server.Port == "" {
		errs = append(errs, errors.New("server.port is empty"))
	}
	if c.Server.RequestTimeoutSec <= 0 {
		errs = append(errs, errors.New("server.request_timeout_sec must be positive"))
	}
	if c.Server.UpstreamTimeoutSec <= 0 {
		errs = append(errs, errors.New("server.upstream_timeout_sec must be positive"))
	}
	if c.Server.MaxSymbols <= 0 {
		errs = append(errs, errors.New("server.max_symbols must be positive"))
	}
	if c.Cache.TTLSeconds < 0 {
		errs = append(errs, errors.New("cache.ttl_sec must not be negative"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.request_timeout_sec", d.Server.RequestTimeoutSec)
	v.SetDefault("server.upstream_timeout_sec", d.Server.UpstreamTimeoutSec)
	v.SetDefault("server.max_symbols", d.Server.MaxSymbols)
	v.SetDefault("server.static_dir", d.Server.StaticDir)
	v.SetDefault("server.user_agent", d.Server.UserAgent)

	v.SetDefault("yahoo.base_url", d.Yahoo.BaseURL)
	v.SetDefault("yahoo.interval", d.Yahoo.Interval)
	v.SetDefault("yahoo.range", d.Yahoo.Range)
	v.SetDefault("yahoo.include_prepost", d.Yahoo.IncludePrePost)

	v.SetDefault("stooq.base_url", d.Stooq.BaseURL)
	v.SetDefault("stooq.market_suffix", d.Stooq.MarketSuffix)

	v.SetDefault("coingecko.base_url", d.CoinGecko.BaseURL)
	v.SetDefault("coingecko.api_key", d.CoinGecko.APIKey)

	v.SetDefault("cache.ttl_sec", d.Cache.TTLSeconds)
	v.SetDefault("cache.max_items", d.Cache.MaxItems)
	v.SetDefault("cache.redis_addr", d.Cache.RedisAddr)
	v.SetDefault("cache.redis_password", d.Cache.RedisPassword)
	v.SetDefault("cache.redis_db", d.Cache.RedisDB)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.development", d.Log.Development)
}
