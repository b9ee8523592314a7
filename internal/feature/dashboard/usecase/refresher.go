// Package usecase はページ領域の更新（取得→導出→保存）と読み出しを実装します。
//
// 更新失敗時の方針はトラッカー・株価の両経路で共通です:
//   - 成功: 導出値でスナップショットを置き換える
//   - 失敗: 既存のスナップショットを残し stale としてエラー文言を付ける
//   - 失敗かつ未描画: プレースホルダーを stale として保存する
package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"jira_dashboard/internal/feature/dashboard/domain/entity"
	issuesusecase "jira_dashboard/internal/feature/issues/usecase"
	quotesusecase "jira_dashboard/internal/feature/quotes/usecase"
	"jira_dashboard/internal/shared/result"
)

// ErrSnapshotNotFound は領域がまだ一度も描画されていない場合に返されます。
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotStore は領域ごとの現在のスナップショットを保持します。
type SnapshotStore interface {
	Get(ctx context.Context, region entity.Region) (entity.Snapshot, error)
	Put(ctx context.Context, snap entity.Snapshot) error
}

// IssueSummarizer は課題集計を1サイクル分実行します。
type IssueSummarizer interface {
	Summary(ctx context.Context) result.Result[issuesusecase.Summary]
}

// QuoteSummarizer は株価集計を1サイクル分実行します。
type QuoteSummarizer interface {
	Summary(ctx context.Context) result.Result[quotesusecase.Summary]
}

type regionValue struct {
	region entity.Region
	value  any
}

// Refresher は集計結果を領域スナップショットとして保存します。
type Refresher struct {
	issues IssueSummarizer
	quotes QuoteSummarizer
	store  SnapshotStore
	log    zerolog.Logger
	now    func() time.Time
}

// NewRefresher はRefresherの新しいインスタンスを生成します。
func NewRefresher(issues IssueSummarizer, quotes QuoteSummarizer, store SnapshotStore, log zerolog.Logger) *Refresher {
	return &Refresher{issues: issues, quotes: quotes, store: store, log: log, now: time.Now}
}

// RefreshTracker は担当者テーブルと2つの課題グラフを更新します。
func (r *Refresher) RefreshTracker(ctx context.Context) error {
	res := r.issues.Summary(ctx)
	return r.apply(ctx, "tracker", res.Err, []regionValue{
		{entity.RegionAssigneeTable, res.Value.AssigneeTable},
		{entity.RegionIssueTypeChart, res.Value.IssueTypeChart},
		{entity.RegionStatusChart, res.Value.StatusChart},
	})
}

// RefreshQuotes は価格テキストと株価グラフを更新します。
func (r *Refresher) RefreshQuotes(ctx context.Context) error {
	res := r.quotes.Summary(ctx)
	return r.apply(ctx, "quotes", res.Err, []regionValue{
		{entity.RegionPriceText, res.Value.PriceText},
		{entity.RegionPriceChart, res.Value.PriceChart},
	})
}

// RefreshAll runs both refresh paths once. Used to populate the page at startup.
func (r *Refresher) RefreshAll(ctx context.Context) error {
	return errors.Join(r.RefreshTracker(ctx), r.RefreshQuotes(ctx))
}

func (r *Refresher) apply(ctx context.Context, source string, fetchErr error, values []regionValue) error {
	now := r.now().UTC()
	var errs []error

	for _, v := range values {
		snap, err := r.next(ctx, v, fetchErr, now)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := r.store.Put(ctx, snap); err != nil {
			errs = append(errs, fmt.Errorf("store %s: %w", v.region, err))
		}
	}

	if fetchErr != nil {
		r.log.Warn().Err(fetchErr).Str("source", source).Msg("refresh failed; keeping previous view")
	} else if len(errs) == 0 {
		r.log.Info().Str("source", source).Msg("refreshed")
	}
	if len(errs) > 0 {
		r.log.Error().Err(errors.Join(errs...)).Str("source", source).Msg("snapshot write failed")
	}
	return errors.Join(append([]error{fetchErr}, errs...)...)
}

// next は1領域分の保存すべきスナップショットを決めます。
func (r *Refresher) next(ctx context.Context, v regionValue, fetchErr error, now time.Time) (entity.Snapshot, error) {
	if fetchErr != nil {
		prev, err := r.store.Get(ctx, v.region)
		switch {
		case err == nil:
			prev.Stale = true
			prev.Error = fetchErr.Error()
			return prev, nil
		case !errors.Is(err, ErrSnapshotNotFound):
			return entity.Snapshot{}, fmt.Errorf("load %s: %w", v.region, err)
		}
	}

	data, err := json.Marshal(v.value)
	if err != nil {
		return entity.Snapshot{}, fmt.Errorf("encode %s: %w", v.region, err)
	}
	snap := entity.Snapshot{Region: v.region, Data: data, UpdatedAt: now}
	if fetchErr != nil {
		snap.Stale = true
		snap.Error = fetchErr.Error()
	}
	return snap, nil
}
