// Package usecase はissuesフィーチャーの集計ロジックを実装します。
// 取得（Fetch）と導出（GroupBy / Build*）は分離されており、導出側はネットワークなしでテストできます。
package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"jira_dashboard/internal/feature/issues/domain/entity"
	"jira_dashboard/internal/shared/chart"
	"jira_dashboard/internal/shared/numfmt"
	"jira_dashboard/internal/shared/result"
)

const (
	// IssueTypeChartTitle は課題タイプ別棒グラフのタイトルです。
	IssueTypeChartTitle = "IssueTypeBarGraph"
	// StatusChartTitle はステータス別円グラフのタイトルです。
	StatusChartTitle = "ProgressPieChart"
)

var (
	// ErrUnknownField は集計できないフィールド名が指定された場合に返されます。
	ErrUnknownField = errors.New("unknown issue field")
	// ErrIssueCountMismatch は課題一覧の件数がtotalと一致しない場合に返されます。
	ErrIssueCountMismatch = errors.New("issue count does not match total")
)

// IssueRepository はトラッカーから全課題を取得するリポジトリです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type IssueRepository interface {
	FetchAll(ctx context.Context) (entity.IssueSet, error)
}

// Summary はページに描画される課題関連の導出値です。
type Summary struct {
	Total          int                  `json:"total"`
	IssueTypeChart chart.Figure         `json:"issuetype_chart"`
	StatusChart    chart.Figure         `json:"status_chart"`
	AssigneeTable  []entity.AssigneeRow `json:"assignee_table"`
}

// PlaceholderSummary は取得失敗時に描画するプレースホルダーです。
func PlaceholderSummary() Summary {
	return Summary{
		IssueTypeChart: chart.Loading(),
		StatusChart:    chart.Loading(),
		AssigneeTable:  []entity.AssigneeRow{},
	}
}

// IssueAggregator は課題の取得と集計をまとめたユースケースです。
type IssueAggregator struct {
	repo IssueRepository
	log  zerolog.Logger
}

// NewIssueAggregator はIssueAggregatorの新しいインスタンスを生成します。
func NewIssueAggregator(repo IssueRepository, log zerolog.Logger) *IssueAggregator {
	return &IssueAggregator{repo: repo, log: log}
}

// Fetch はトラッカーから課題を1回取得します。失敗はResultのErrとして返します。
func (a *IssueAggregator) Fetch(ctx context.Context) result.Result[entity.IssueSet] {
	set, err := a.repo.FetchAll(ctx)
	if err != nil {
		a.log.Error().Err(err).Msg("issues: fetch failed")
		return result.Failed(entity.IssueSet{}, fmt.Errorf("fetch issues: %w", err))
	}
	a.log.Debug().Int("total", set.Total).Msg("issues: fetched")
	return result.OK(set)
}

// Summary は取得から導出までを1サイクル分実行します。
func (a *IssueAggregator) Summary(ctx context.Context) result.Result[Summary] {
	return Summarize(a.Fetch(ctx))
}

// Summarize は取得結果からページ用の導出値を組み立てます。
// 取得失敗や不正な形状の場合はプレースホルダーとエラーを返します。
func Summarize(r result.Result[entity.IssueSet]) result.Result[Summary] {
	if r.Failed() {
		return result.Failed(PlaceholderSummary(), r.Err)
	}
	set := r.Value
	if len(set.Issues) != set.Total {
		return result.Failed(PlaceholderSummary(),
			fmt.Errorf("%w: total=%d issues=%d", ErrIssueCountMismatch, set.Total, len(set.Issues)))
	}

	types, err := GroupBy(set, entity.FieldIssueType)
	if err != nil {
		return result.Failed(PlaceholderSummary(), err)
	}
	statuses, err := GroupBy(set, entity.FieldStatus)
	if err != nil {
		return result.Failed(PlaceholderSummary(), err)
	}

	return result.OK(Summary{
		Total:          set.Total,
		IssueTypeChart: BuildBarChart(types),
		StatusChart:    BuildPieChart(statuses),
		AssigneeTable:  BuildAssigneeTable(set),
	})
}

// GroupBy は指定フィールドの値ごとに課題数を数えます。
// ラベルは最初に出現した順に並び、担当者なしは "unassigned" として数えます。
func GroupBy(set entity.IssueSet, field entity.Field) (*entity.CategoryCount, error) {
	label, err := labelFunc(field)
	if err != nil {
		return nil, err
	}
	cc := entity.NewCategoryCount()
	for _, is := range set.Issues {
		cc.Add(label(is))
	}
	return cc, nil
}

func labelFunc(field entity.Field) (func(entity.Issue) string, error) {
	switch field {
	case entity.FieldIssueType:
		return func(i entity.Issue) string { return i.Type }, nil
	case entity.FieldStatus:
		return func(i entity.Issue) string { return i.Status }, nil
	case entity.FieldAssignee:
		return entity.Issue.AssigneeLabel, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
}

// BuildBarChart は課題タイプ別の棒グラフを生成します。
func BuildBarChart(cc *entity.CategoryCount) chart.Figure {
	return chart.Bar(IssueTypeChartTitle, cc.Labels(), cc.Counts())
}

// BuildPieChart はステータス別の円グラフを生成します。
func BuildPieChart(cc *entity.CategoryCount) chart.Figure {
	return chart.Pie(StatusChartTitle, cc.Labels(), cc.Counts())
}

// BuildAssigneeTable は担当者ごとの件数と比率のテーブルを生成します。
func BuildAssigneeTable(set entity.IssueSet) []entity.AssigneeRow {
	cc, _ := GroupBy(set, entity.FieldAssignee)
	rows := make([]entity.AssigneeRow, 0, cc.Len())
	for _, name := range cc.Labels() {
		count := cc.Count(name)
		rows = append(rows, entity.AssigneeRow{
			Name:       name,
			Count:      count,
			Percentage: FormatRatio(count, set.Total),
		})
	}
	return rows
}

// FormatRatio は count/total を小数第2位で丸め、"%" を付けて返します。
// 値は100倍しない比率（0〜1）のままです: count=5, total=20 -> "0.25%"。
// ちょうど中間の値は偶数側に丸めます: count=1, total=8 -> "0.12%"。
func FormatRatio(count, total int) string {
	if total <= 0 {
		return numfmt.Round2(decimal.Zero) + "%"
	}
	ratio := decimal.NewFromInt(int64(count)).Div(decimal.NewFromInt(int64(total))).RoundBank(2)
	return numfmt.Round2(ratio) + "%"
}
