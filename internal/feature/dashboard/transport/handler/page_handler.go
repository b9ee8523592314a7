// Package handler はダッシュボードページと領域APIのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/rs/zerolog"

	"jira_dashboard/internal/feature/dashboard/domain/entity"
	"jira_dashboard/internal/shared/chart"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// PageTemplate は埋め込まれたページテンプレートを解析して返します。
func PageTemplate() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))
}

// PageReader はページ描画に必要なスナップショットを読み出します。
type PageReader interface {
	Page(ctx context.Context) (map[entity.Region]entity.Snapshot, error)
}

// PageHandler は GET / を処理します。
type PageHandler struct {
	view           PageReader
	tmpl           *template.Template
	trackerRefresh time.Duration
	quoteRefresh   time.Duration
	log            zerolog.Logger
}

// NewPageHandler はPageHandlerの新しいインスタンスを生成します。
// trackerRefresh / quoteRefresh はブラウザ側のタイマー間隔です。
func NewPageHandler(view PageReader, trackerRefresh, quoteRefresh time.Duration, log zerolog.Logger) *PageHandler {
	return &PageHandler{
		view:           view,
		tmpl:           PageTemplate(),
		trackerRefresh: trackerRefresh,
		quoteRefresh:   quoteRefresh,
		log:            log,
	}
}

type pageData struct {
	Initial          map[entity.Region]entity.Snapshot
	TrackerRegions   []entity.Region
	QuoteRegions     []entity.Region
	TrackerRefreshMs int64
	QuoteRefreshMs   int64
	LoadingText      string
}

// Show renders the page with the currently stored region values embedded.
func (h *PageHandler) Show(c *gin.Context) {
	initial, err := h.view.Page(c.Request.Context())
	if err != nil {
		// 読み出しに失敗しても、ページ自体はプレースホルダーで描画する
		h.log.Error().Err(err).Msg("page: load snapshots")
		initial = map[entity.Region]entity.Snapshot{}
	}

	c.Header("Cache-Control", "no-store")
	c.Render(http.StatusOK, render.HTML{
		Template: h.tmpl,
		Name:     "page",
		Data: pageData{
			Initial:          initial,
			TrackerRegions:   entity.TrackerRegions,
			QuoteRegions:     entity.QuoteRegions,
			TrackerRefreshMs: h.trackerRefresh.Milliseconds(),
			QuoteRefreshMs:   h.quoteRefresh.Milliseconds(),
			LoadingText:      chart.LoadingText,
		},
	})
}
