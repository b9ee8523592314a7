package alphavantage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jira_dashboard/internal/feature/quotes/usecase"
)

func newTestQuotes(srv *httptest.Server) *AlphaVantageQuotes {
	return NewAlphaVantageQuotes(Config{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Symbol:  "EGHT",
		Timeout: 5 * time.Second,
	}, srv.Client())
}

func TestAlphaVantageQuotes_FetchIntraday_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/query", r.URL.Path)
		assert.Equal(t, "TIME_SERIES_INTRADAY", q.Get("function"))
		assert.Equal(t, "1min", q.Get("interval"))
		assert.Equal(t, "test-key", q.Get("apikey"))
		assert.Equal(t, "EGHT", q.Get("symbol"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"Meta Data": {"2. Symbol": "EGHT"},
			"Time Series (1min)": {
				"2024-05-01 09:02:00": {"1. open": "3.0", "4. close": "3.10"},
				"2024-05-01 09:01:00": {"1. open": "2.0", "4. close": "2.05"},
				"2024-05-01 09:00:00": {"1. open": "1.0", "4. close": "1.00"}
			}
		}`))
	}))
	defer srv.Close()

	points, err := newTestQuotes(srv).FetchIntraday(context.Background())
	require.NoError(t, err)
	require.Len(t, points, 3)

	assert.Equal(t, time.Date(2024, 5, 1, 9, 2, 0, 0, time.UTC), points[0].Time)
	assert.Equal(t, "3.1", points[0].Close.String())
	assert.Equal(t, "2.05", points[1].Close.String())
	assert.Equal(t, time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC), points[2].Time)
}

func TestAlphaVantageQuotes_FetchIntraday_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		body       string
		wantIs     error
		wantSubstr string
	}{
		{name: "http error", status: http.StatusBadGateway, body: `{}`, wantSubstr: "http 502"},
		{name: "invalid json", status: http.StatusOK, body: `{not json`, wantSubstr: "decode"},
		{name: "error message", status: http.StatusOK, body: `{"Error Message": "Invalid API call."}`, wantIs: usecase.ErrMissingTimeSeries, wantSubstr: "Invalid API call."},
		{name: "rate limit note", status: http.StatusOK, body: `{"Note": "Thank you for using Alpha Vantage!"}`, wantIs: usecase.ErrMissingTimeSeries, wantSubstr: "Thank you"},
		{name: "information", status: http.StatusOK, body: `{"Information": "premium endpoint"}`, wantIs: usecase.ErrMissingTimeSeries},
		{name: "missing series", status: http.StatusOK, body: `{"Meta Data": {}}`, wantIs: usecase.ErrMissingTimeSeries},
		{name: "bad timestamp", status: http.StatusOK, body: `{"Time Series (1min)": {"yesterday": {"4. close": "1"}}}`, wantSubstr: "parse time"},
		{name: "bad close", status: http.StatusOK, body: `{"Time Series (1min)": {"2024-05-01 09:00:00": {"4. close": "n/a"}}}`, wantSubstr: "parse close"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestQuotes(srv).FetchIntraday(context.Background())
			require.Error(t, err)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
			if tt.wantSubstr != "" {
				assert.Contains(t, err.Error(), tt.wantSubstr)
			}
		})
	}
}

func TestAlphaVantageQuotes_FetchIntraday_ContextCanceled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"Time Series (1min)": {}}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestQuotes(srv).FetchIntraday(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAlphaVantageQuotes_FetchIntraday_EmptySeries(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"Time Series (1min)": {}}`))
	}))
	defer srv.Close()

	points, err := newTestQuotes(srv).FetchIntraday(context.Background())
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("ALPHAVANTAGE_BASE_URL", "")
	t.Setenv("QUOTE_SYMBOL", "")
	t.Setenv("ALPHAVANTAGE_API_KEY", "k")

	cfg := LoadConfig()
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultSymbol, cfg.Symbol)
	assert.Equal(t, "k", cfg.APIKey)
}
