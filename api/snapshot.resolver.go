package api

import (
	"errors"
	"fmt"

	"marketmap/internal/app"
	"marketmap/internal/domain"
	"marketmap/internal/logger"

	"github.com/gin-gonic/gin"
)

type snapshotRequest struct {
	PosN           *int   `json:"posN"`
	NegN           *int   `json:"negN"`
	Screen         string `json:"screen"`
	IncludeProfile bool   `json:"includeProfile"`
}

func (r snapshotRequest) validate(m ApiHandler) error {
	if r.PosN != nil && *r.PosN < 0 {
		return fmt.Errorf("posN must be >= 0")
	}
	if r.NegN != nil && *r.NegN < 0 {
		return fmt.Errorf("negN must be >= 0")
	}
	if r.Screen != "" {
		if err := m.SnapshotHandler.ScreenService.Validate(r.Screen); err != nil {
			return fmt.Errorf("invalid screen expression: %w", err)
		}
	}
	return nil
}

func (r snapshotRequest) toDomainRequest() app.SnapshotRequest {
	return app.SnapshotRequest{
		PosN:   r.PosN,
		NegN:   r.NegN,
		Screen: r.Screen,
	}
}

func (m ApiHandler) snapshot(c *gin.Context) {
	var req snapshotRequest
	if err := c.BindJSON(&req); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to parse request: %w", err), c, 400)
		return
	}
	if err := req.validate(m); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	profile, endProfile := domain.NewProfile()
	c.Set(domain.ContextProfileKey, profile)

	response, err := m.SnapshotHandler.BuildSnapshot(c, req.toDomainRequest())
	if err != nil {
		if errors.Is(err, domain.ErrDataSourceFailure) {
			returnErrorJsonCode(err, c, 502)
			return
		}
		returnErrorJson(err, c)
		return
	}

	endProfile()
	if profileJson, err := profile.ToJsonBytes(); err == nil {
		logger.Debug("snapshot %s profile: %s", response.SnapshotID, string(profileJson))
	}
	if req.IncludeProfile {
		response.Profile = profile
	}

	c.JSON(200, response)
}
