// Package router はGinのルーティングを組み立てます。
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	dashboardhandler "jira_dashboard/internal/feature/dashboard/transport/handler"
	"jira_dashboard/internal/platform/http/handler"
	"jira_dashboard/internal/platform/http/middleware"
)

// Handlers はルーターに登録するハンドラー群です。
type Handlers struct {
	Page    *dashboardhandler.PageHandler
	Regions *dashboardhandler.RegionHandler
	Health  handler.DetailsFunc
}

func NewRouter(appEnv string, log zerolog.Logger, cred middleware.Credentials, h Handlers) *gin.Engine {
	if appEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	// 認証不要
	// 導通確認用
	health := handler.Health(h.Health)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	r.OPTIONS("/healthz", health)

	// Basic認証必須のルート
	auth := r.Group("/")
	auth.Use(middleware.BasicAuth(cred))
	{
		auth.GET("/", h.Page.Show)
		auth.GET("/regions/:region", h.Regions.Get)
	}

	return r
}
