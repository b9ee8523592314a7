package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jira_dashboard/internal/feature/dashboard/domain/entity"
	"jira_dashboard/internal/feature/dashboard/usecase"
)

// RegionReader は1領域分のスナップショットを読み出します。
type RegionReader interface {
	Region(ctx context.Context, region entity.Region) (entity.Snapshot, error)
}

// RegionHandler は GET /regions/:region を処理します。
type RegionHandler struct {
	view RegionReader
}

// NewRegionHandler はRegionHandlerの新しいインスタンスを生成します。
func NewRegionHandler(view RegionReader) *RegionHandler {
	return &RegionHandler{view: view}
}

// Get returns the current snapshot of the region as JSON.
//   - 404: unknown region
//   - 503: region not populated yet
func (h *RegionHandler) Get(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	region, ok := entity.ParseRegion(c.Param("region"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown region"})
		return
	}

	snap, err := h.view.Region(c.Request.Context(), region)
	if err != nil {
		if errors.Is(err, usecase.ErrSnapshotNotFound) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "region not populated yet"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load region"})
		return
	}
	c.JSON(http.StatusOK, snap)
}
