package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"jira_dashboard/internal/feature/quotes/adapters/alphavantage/dto"
	"jira_dashboard/internal/feature/quotes/domain/entity"
	"jira_dashboard/internal/feature/quotes/usecase"
)

// AlphaVantageQuotes はAlpha Vantage外部APIから1分足を取得するQuoteRepository実装です。
type AlphaVantageQuotes struct {
	cfg    Config
	client *http.Client
}

// AlphaVantageQuotesがQuoteRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.QuoteRepository = (*AlphaVantageQuotes)(nil)

// NewAlphaVantageQuotes は指定された設定とHTTPクライアントでAlphaVantageQuotesを生成します。
func NewAlphaVantageQuotes(cfg Config, client *http.Client) *AlphaVantageQuotes {
	return &AlphaVantageQuotes{cfg: cfg, client: client}
}

// FetchIntraday は TIME_SERIES_INTRADAY を呼び出し、レスポンスのキー順のまま価格を返します。
func (a *AlphaVantageQuotes) FetchIntraday(ctx context.Context) ([]entity.PricePoint, error) {
	q := url.Values{}
	q.Set("function", "TIME_SERIES_INTRADAY")
	q.Set("interval", "1min")
	q.Set("apikey", a.cfg.APIKey)
	q.Set("symbol", a.cfg.Symbol)

	u := fmt.Sprintf("%s/query?%s", strings.TrimRight(a.cfg.BaseURL, "/"), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close response body")
		}
	}()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("alphavantage http %d", res.StatusCode)
	}

	// JSONレスポンスをDTOにデコード
	var body dto.IntradayResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("alphavantage decode: %w", err)
	}
	if body.Series == nil {
		if msg := body.APIMessage(); msg != "" {
			return nil, fmt.Errorf("alphavantage: %w: %s", usecase.ErrMissingTimeSeries, msg)
		}
		return nil, fmt.Errorf("alphavantage: %w", usecase.ErrMissingTimeSeries)
	}

	points := make([]entity.PricePoint, 0, len(*body.Series))
	for _, e := range *body.Series {
		tm, err := time.Parse(entity.TimestampLayout, e.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("parse time %q: %w", e.Timestamp, err)
		}
		c, err := decimal.NewFromString(e.Bar.Close)
		if err != nil {
			return nil, fmt.Errorf("parse close %q: %w", e.Bar.Close, err)
		}
		points = append(points, entity.PricePoint{Time: tm, Close: c})
	}
	return points, nil
}
