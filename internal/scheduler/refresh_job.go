package scheduler

import (
	"context"
	"time"

	"github.com/dividenddash/backend/internal/apperrors"
	"github.com/dividenddash/backend/internal/service"
)

const refreshJobTimeout = 5 * time.Minute

// RefreshJob runs the gated catalog refresh on a schedule. The cooldown gate
// still applies; a run that lands inside the cooldown is a no-op, not a
// failure.
type RefreshJob struct {
	refreshService *service.RefreshService
}

// NewRefreshJob creates a RefreshJob around the given service.
func NewRefreshJob(refreshService *service.RefreshService) *RefreshJob {
	return &RefreshJob{refreshService: refreshService}
}

// Name implements Job.
func (j *RefreshJob) Name() string {
	return "fund-catalog-refresh"
}

// Run implements Job.
func (j *RefreshJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), refreshJobTimeout)
	defer cancel()

	_, err := j.refreshService.Refresh(ctx)
	if _, ok := apperrors.IsCooldown(err); ok {
		return nil
	}
	return err
}
