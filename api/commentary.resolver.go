package api

import (
	"errors"
	"fmt"

	"marketmap/internal/app"
	"marketmap/internal/domain"

	"github.com/gin-gonic/gin"
)

type commentaryResponse struct {
	Commentary string `json:"commentary"`
}

// commentary generates a short natural-language summary of the current
// movers. Optional feature - without a gpt api key the endpoint reports
// itself unavailable rather than failing the rest of the api.
func (m ApiHandler) commentary(c *gin.Context) {
	if m.GptRepository == nil {
		returnErrorJsonCode(fmt.Errorf("commentary is not configured"), c, 503)
		return
	}

	movers, err := m.SnapshotHandler.BuildMovers(c, app.SnapshotRequest{})
	if err != nil {
		if errors.Is(err, domain.ErrDataSourceFailure) {
			returnErrorJsonCode(err, c, 502)
			return
		}
		returnErrorJson(err, c)
		return
	}

	gainers := []domain.Aggregate{}
	losers := []domain.Aggregate{}
	for _, datasetMovers := range movers {
		for _, a := range datasetMovers.Movers {
			if a.Mean > 0 {
				gainers = append(gainers, a)
			} else {
				losers = append(losers, a)
			}
		}
	}

	summary, err := m.GptRepository.SummarizeMovers(c, gainers, losers)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, commentaryResponse{
		Commentary: summary,
	})
}
