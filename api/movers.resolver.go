package api

import (
	"errors"
	"fmt"

	"marketmap/internal/app"
	"marketmap/internal/domain"

	"github.com/gin-gonic/gin"
)

type moversResponse struct {
	Movers []app.DatasetMovers `json:"movers"`
}

func (m ApiHandler) movers(c *gin.Context) {
	var req snapshotRequest
	if err := c.BindJSON(&req); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to parse request: %w", err), c, 400)
		return
	}
	if err := req.validate(m); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	movers, err := m.SnapshotHandler.BuildMovers(c, req.toDomainRequest())
	if err != nil {
		if errors.Is(err, domain.ErrDataSourceFailure) {
			returnErrorJsonCode(err, c, 502)
			return
		}
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, moversResponse{
		Movers: movers,
	})
}
