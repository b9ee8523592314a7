// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// DetailsFunc は /healthz のレスポンスに含める追加情報を返します。
type DetailsFunc func(ctx context.Context) any

// Health はサービスヘルスチェック用の /healthz エンドポイントを処理します。
// details が nil でなければ、その戻り値を "regions" として含めます。
// HTTPメソッドに応じて適切にレスポンスし、キャッシュを防止します。
func Health(details DetailsFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 明示的にキャッシュを防止
		c.Header("Cache-Control", "no-store")

		switch c.Request.Method {
		case http.MethodHead:
			c.Status(http.StatusOK)
		case http.MethodOptions:
			c.Status(http.StatusNoContent)
		default:
			body := gin.H{"status": "ok"}
			if details != nil {
				body["regions"] = details(c.Request.Context())
			}
			c.JSON(http.StatusOK, body)
		}
	}
}
