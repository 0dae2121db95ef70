package api

import (
	"errors"

	"marketmap/internal/domain"

	"github.com/gin-gonic/gin"
)

type heatmapResponse struct {
	Hierarchy domain.HierarchyNode `json:"hierarchy"`
}

func (m ApiHandler) heatmap(c *gin.Context) {
	hierarchy, err := m.SnapshotHandler.BuildHeatmap(c)
	if err != nil {
		if errors.Is(err, domain.ErrDataSourceFailure) {
			returnErrorJsonCode(err, c, 502)
			return
		}
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, heatmapResponse{
		Hierarchy: *hierarchy,
	})
}
