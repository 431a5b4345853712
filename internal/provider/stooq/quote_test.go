package stooq_test

import (
	"bytes"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"portfoliotracker/internal/provider"
	"portfoliotracker/internal/provider/stooq"
)

func respond(status int, body string) func(*http.Request) (*http.Response, error) {
	return func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: status,
			Body:       io.NopCloser(bytes.NewBufferString(body)),
			Request:    req,
		}, nil
	}
}

const csvMSFT = "Symbol,Date,Time,Open,High,Low,Close,Volume\r\n" +
	"MSFT.US,2024-01-02,22:00:07,373.86,375.9,366.77,370.877,25258633\r\n"

func TestFetchEquity(t *testing.T) {
	t.Parallel()

	// Arrange: create a mock controller
	ctrl := gomock.NewController(t)

	// Arrange: create a mock HTTP client
	httpClient := NewMockHTTPClient(ctrl)

	// Assert: stub the Do method
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, http.MethodGet, req.Method)
			require.Equal(t, "/q/l/", req.URL.Path)
			require.Equal(t, "msft.us", req.URL.Query().Get("s"))
			require.Equal(t, "sd2t2ohlcv", req.URL.Query().Get("f"))
			require.Equal(t, "csv", req.URL.Query().Get("e"))
			return respond(http.StatusOK, csvMSFT)(req)
		}).
		Times(1)

	client := stooq.NewClient(stooq.WithHTTPClient(httpClient))
	require.Equal(t, "stooq", client.Name())

	// Act
	before := time.Now().Add(-time.Second)
	q, err := client.FetchEquity(t.Context(), "msft")

	// Assert: close is kept unrounded, change is rounded, timestamp is now
	require.NoError(t, err)
	require.Equal(t, "MSFT", q.Symbol)
	require.Equal(t, 370.877, q.Price)
	require.NotNil(t, q.ChangePercent)
	require.InDelta(t, -0.8, *q.ChangePercent, 1e-9)
	require.Equal(t, provider.SourceStooq, q.Source)
	ts, err := time.Parse(time.RFC3339, q.Timestamp)
	require.NoError(t, err)
	require.True(t, ts.After(before))
}

func TestFetchEquity_HeaderCaseAndOrder(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	body := " CLOSE ,open,\"symbol\"\n10.5,0,X.US\n"
	httpClient.EXPECT().Do(gomock.Any()).DoAndReturn(respond(http.StatusOK, body)).Times(1)

	q, err := stooq.NewClient(stooq.WithHTTPClient(httpClient)).FetchEquity(t.Context(), "x")
	require.NoError(t, err)
	require.Equal(t, 10.5, q.Price)
	require.Nil(t, q.ChangePercent, "zero open must not produce a change")
}

func TestFetchEquity_MarketSuffix(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "vod.uk", req.URL.Query().Get("s"))
			require.Equal(t, "http://localhost:9999", "http://"+req.URL.Host)
			return respond(http.StatusOK, csvMSFT)(req)
		}).
		Times(1)

	client := stooq.NewClient(
		stooq.WithHTTPClient(httpClient),
		stooq.WithBaseURL("http://localhost:9999"),
		stooq.WithMarketSuffix(".uk"),
	)
	_, err := client.FetchEquity(t.Context(), "VOD")
	require.NoError(t, err)
}

func TestFetchEquity_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{name: "header only", status: http.StatusOK, body: "Symbol,Date,Time,Open,High,Low,Close,Volume\r\n", want: stooq.ErrEmpty},
		{name: "empty body", status: http.StatusOK, body: "", want: stooq.ErrEmpty},
		{name: "no data marker", status: http.StatusOK, body: "Symbol,Open,Close\nZZZZ_INVALID.US,N/D,N/D\n", want: stooq.ErrNoPrice},
		{name: "missing close column", status: http.StatusOK, body: "Symbol,Open\nX.US,1\n", want: stooq.ErrNoPrice},
		{name: "server error", status: http.StatusServiceUnavailable, body: "down"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			httpClient := NewMockHTTPClient(ctrl)
			httpClient.EXPECT().Do(gomock.Any()).DoAndReturn(respond(tt.status, tt.body)).Times(1)

			_, err := stooq.NewClient(stooq.WithHTTPClient(httpClient)).FetchEquity(t.Context(), "ZZZZ_INVALID")
			require.Error(t, err)
			if tt.want != nil {
				require.ErrorIs(t, err, tt.want)
			}
		})
	}
}
