package handlers

import (
	"context"
	"net/http"
	"time"

	"toyshop/internal/jobs/background"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// JobRunner is the part of the background scheduler exposed to admins.
type JobRunner interface {
	GetJobStatus() []background.JobStatus
	WarmNow(ctx context.Context) error
}

type JobHandlers struct {
	jobs    JobRunner
	logger  *zap.Logger
	timeout time.Duration
}

func NewJobHandlers(jobs JobRunner, logger *zap.Logger) *JobHandlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobHandlers{jobs: jobs, logger: logger, timeout: 30 * time.Second}
}

// ListJobs reports the scheduled background jobs.
//
//	@Summary	List background jobs
//	@Tags		jobs
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}	background.JobStatus
//	@Router		/api/admin/jobs [get]
func (h *JobHandlers) ListJobs(c echo.Context) error {
	return c.JSON(http.StatusOK, h.jobs.GetJobStatus())
}

// WarmCache reloads the cached category and product lists right away.
//
//	@Summary	Warm the catalog cache now
//	@Tags		jobs
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	map[string]string
//	@Router		/api/admin/jobs/warm [post]
func (h *JobHandlers) WarmCache(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.jobs.WarmNow(ctx); err != nil {
		h.logger.Error("manual catalog warm failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to warm catalog cache")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Catalog cache warmed"})
}
