package stooq

import (
	"net/http"
)

const baseURL = "https://stooq.com"

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=stooq_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a client for the Stooq delayed quote CSV endpoint.
type Client struct {
	baseURL    string
	httpClient HTTPClient
	header     http.Header
	// suffix is appended to the lowercased ticker, e.g. "msft" + ".us".
	suffix string
}

// ClientOption is a configuration option for the Stooq client.
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

// WithMarketSuffix sets the market suffix appended to symbols.
func WithMarketSuffix(suffix string) ClientOption {
	return func(c *Client) {
		c.suffix = suffix
	}
}

// NewClient creates a new Stooq client for US listings.
func NewClient(options ...ClientOption) *Client {
	var client = &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
		suffix:     ".us",
	}
	for _, option := range options {
		option(client)
	}
	return client
}
