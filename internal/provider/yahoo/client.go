package yahoo

import (
	"net/http"
)

const baseURL = "https://query1.finance.yahoo.com"

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=yahoo_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a client for the Yahoo Finance chart API.
type Client struct {
	// baseURL is the base URL for the API.
	baseURL string
	// httpClient is the HTTP httpClient.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
	// interval and rng select the chart granularity and window.
	interval string
	rng      string
	// includePrePost asks for pre and post market candles.
	includePrePost bool
}

// ClientOption is a configuration option for the Yahoo client.
type ClientOption func(*Client)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) ClientOption {
	return func(c *Client) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// WithChartWindow overrides the candle interval and range (default 5m over 1d).
func WithChartWindow(interval, rng string) ClientOption {
	return func(c *Client) {
		if interval != "" {
			c.interval = interval
		}
		if rng != "" {
			c.rng = rng
		}
	}
}

// WithPrePost toggles pre and post market data (default on).
func WithPrePost(include bool) ClientOption {
	return func(c *Client) {
		c.includePrePost = include
	}
}

// NewClient creates a new Yahoo chart client.
func NewClient(options ...ClientOption) *Client {
	var client = &Client{
		baseURL:        baseURL,
		httpClient:     http.DefaultClient,
		header:         http.Header{},
		interval:       "5m",
		rng:            "1d",
		includePrePost: true,
	}
	for _, option := range options {
		option(client)
	}
	return client
}
