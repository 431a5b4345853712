package stooq

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"portfoliotracker/internal/httpx"
	"portfoliotracker/internal/provider"
)

var (
	// ErrEmpty is returned when the CSV has no data line below the header.
	ErrEmpty = errors.New("stooq empty")
	// ErrNoPrice is returned when the close column is missing or not a number.
	ErrNoPrice = errors.New("stooq: no finite close")
)

var lineBreak = regexp.MustCompile(`\r?\n`)

func (c *Client) Name() string { return string(provider.SourceStooq) }

// FetchEquity retrieves the delayed quote for symbol. The price keeps the
// feed's own precision and the timestamp is the time of the call.
func (c *Client) FetchEquity(ctx context.Context, symbol string) (provider.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	// f selects symbol,date,time,open,high,low,close,volume; h adds a header row.
	s := url.QueryEscape(strings.ToLower(symbol) + c.suffix)
	u := fmt.Sprintf("%s/q/l/?s=%s&f=sd2t2ohlcv&h&e=csv", c.baseURL, s)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return provider.Quote{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.header.Clone()

	res, err := c.httpClient.Do(req)
	if err != nil {
		return provider.Quote{}, fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	if err := httpx.CheckStatus(res); err != nil {
		return provider.Quote{}, fmt.Errorf("stooq %s: %w", symbol, err)
	}

	b, err := io.ReadAll(io.LimitReader(res.Body, 64<<10))
	if err != nil {
		return provider.Quote{}, fmt.Errorf("reading response: %w", err)
	}
	return parseQuote(symbol, string(b), time.Now())
}

func parseQuote(symbol, body string, at time.Time) (provider.Quote, error) {
	lines := lineBreak.Split(strings.TrimSpace(body), -1)
	if len(lines) < 2 {
		return provider.Quote{}, fmt.Errorf("%s: %w", symbol, ErrEmpty)
	}

	header := ParseLine(lines[0])
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	row := ParseLine(lines[1])

	closePrice, ok := column(row, idx, "close")
	if !ok {
		return provider.Quote{}, fmt.Errorf("%s: %w", symbol, ErrNoPrice)
	}
	var change *float64
	if open, ok := column(row, idx, "open"); ok {
		change = provider.PercentChange(closePrice, open)
	}

	return provider.Quote{
		Symbol:        symbol,
		Price:         closePrice,
		ChangePercent: change,
		Timestamp:     provider.ISO(at),
		Source:        provider.SourceStooq,
	}, nil
}

// column reads a finite number from the named column of row.
func column(row []string, idx map[string]int, name string) (float64, bool) {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
	if err != nil || !provider.Finite(v) {
		return 0, false
	}
	return v, true
}
