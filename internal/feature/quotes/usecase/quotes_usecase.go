// Package usecase は株価フィーチャーの取得と導出を実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"jira_dashboard/internal/feature/quotes/domain/entity"
	"jira_dashboard/internal/shared/chart"
	"jira_dashboard/internal/shared/numfmt"
	"jira_dashboard/internal/shared/result"
)

// PriceChartTitle は株価折れ線グラフのタイトルです。
const PriceChartTitle = "StocksGraph"

// ErrMissingTimeSeries はAPIレスポンスに時系列が含まれない場合に返されます。
var ErrMissingTimeSeries = errors.New("quote response has no time series")

// QuoteRepository は1分足の価格系列をAPIの並び順のまま返します。
type QuoteRepository interface {
	FetchIntraday(ctx context.Context) ([]entity.PricePoint, error)
}

// Summary はページに描画される株価関連の導出値です。
type Summary struct {
	PriceText  string       `json:"price_text"`
	PriceChart chart.Figure `json:"price_chart"`
}

// PlaceholderSummary は取得失敗時に描画するプレースホルダーです。
func PlaceholderSummary() Summary {
	return Summary{PriceText: chart.LoadingText, PriceChart: chart.Loading()}
}

// QuoteAggregator は株価の取得と導出をまとめたユースケースです。
type QuoteAggregator struct {
	repo QuoteRepository
	log  zerolog.Logger
}

// NewQuoteAggregator はQuoteAggregatorの新しいインスタンスを生成します。
func NewQuoteAggregator(repo QuoteRepository, log zerolog.Logger) *QuoteAggregator {
	return &QuoteAggregator{repo: repo, log: log}
}

// Fetch はAPIから価格系列を1回取得し、昇順の時系列に整えて返します。
func (a *QuoteAggregator) Fetch(ctx context.Context) result.Result[entity.TimeSeries] {
	raw, err := a.repo.FetchIntraday(ctx)
	if err != nil {
		a.log.Error().Err(err).Msg("quotes: fetch failed")
		return result.Failed(entity.TimeSeries{}, fmt.Errorf("fetch quotes: %w", err))
	}
	series := TimeSeries(raw)
	a.log.Debug().Int("points", len(series)).Msg("quotes: fetched")
	return result.OK(series)
}

// Summary は取得から導出までを1サイクル分実行します。
func (a *QuoteAggregator) Summary(ctx context.Context) result.Result[Summary] {
	return Summarize(a.Fetch(ctx))
}

// Summarize は時系列から価格テキストと折れ線グラフを組み立てます。
func Summarize(r result.Result[entity.TimeSeries]) result.Result[Summary] {
	s := Summary{PriceText: LatestPriceText(r), PriceChart: BuildLineChart(r)}
	if r.Failed() {
		return result.Failed(s, r.Err)
	}
	return result.OK(s)
}

// TimeSeries はAPIの並び（新しい順）を時刻の昇順に並べ替えます。
// 同じ時刻が複数ある場合は最初の位置を残し、値は最後に現れたものを採用します。
func TimeSeries(raw []entity.PricePoint) entity.TimeSeries {
	pos := make(map[int64]int, len(raw))
	uniq := make([]entity.PricePoint, 0, len(raw))
	for _, p := range raw {
		key := p.Time.UnixNano()
		if i, ok := pos[key]; ok {
			uniq[i].Close = p.Close
			continue
		}
		pos[key] = len(uniq)
		uniq = append(uniq, p)
	}

	out := make(entity.TimeSeries, len(uniq))
	for i, p := range uniq {
		out[len(uniq)-1-i] = p
	}
	return out
}

// LatestPriceText は最新の終値を "$12.35" の形式で返します。
// 取得失敗や空の系列では "Loading..." を返します。
func LatestPriceText(r result.Result[entity.TimeSeries]) string {
	if r.Failed() {
		return chart.LoadingText
	}
	p, ok := r.Value.Latest()
	if !ok {
		return chart.LoadingText
	}
	return "$" + numfmt.Round2(p.Close)
}

// BuildLineChart は終値の折れ線グラフを生成します。
func BuildLineChart(r result.Result[entity.TimeSeries]) chart.Figure {
	if r.Failed() || len(r.Value) == 0 {
		return chart.Loading()
	}
	closes := r.Value.Closes()
	y := make([]float64, len(closes))
	for i, c := range closes {
		y[i] = c.InexactFloat64()
	}
	return chart.Line(PriceChartTitle, r.Value.Times(), y)
}
