package coingecko

import (
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"
)

const baseURL = "https://api.coingecko.com"

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=coingecko_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a client for the CoinGecko simple price API.
type Client struct {
	baseURL    string
	httpClient HTTPClient
	header     http.Header
	// vsCurrency is the quote currency requested from the API.
	vsCurrency string
	// timeout bounds one shared batch request.
	timeout time.Duration

	// identical concurrent batches share one upstream request
	sf singleflight.Group
}

// ClientOption is a configuration option for the CoinGecko client.
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

// WithAPIKey sends a demo API key with each request.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		if key != "" {
			c.header.Set("x-cg-demo-api-key", key)
		}
	}
}

// WithTimeout bounds each batch request (default 10s).
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewClient creates a new CoinGecko client quoting in USD.
func NewClient(options ...ClientOption) *Client {
	var client = &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
		vsCurrency: "usd",
		timeout:    10 * time.Second,
	}
	for _, option := range options {
		option(client)
	}
	return client
}
