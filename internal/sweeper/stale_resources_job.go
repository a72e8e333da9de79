package sweeper

import (
	"context"
	"fmt"
	"time"

	"github.com/serpcat/serp-backend/pkg/logger"
	"github.com/serpcat/serp-backend/pkg/metrics"
)

type resourceStaler interface {
	MarkStaleUnknown(ctx context.Context, cutoff time.Time) (int64, error)
}

// StaleResourcesJobParams configures the stale-resource job.
type StaleResourcesJobParams struct {
	Logger     *logger.Logger
	Resources  resourceStaler
	Metrics    *metrics.SweepJobMetrics
	StaleAfter time.Duration
}

// NewStaleResourcesJob constructs the job that downgrades resources without
// recent updates to Unknown, so the dashboard never trusts dead telemetry.
func NewStaleResourcesJob(params StaleResourcesJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Resources == nil {
		return nil, fmt.Errorf("resource staler required")
	}
	if params.StaleAfter <= 0 {
		return nil, fmt.Errorf("stale window must be positive")
	}
	return &staleResourcesJob{
		logg:       params.Logger,
		resources:  params.Resources,
		metrics:    params.Metrics,
		staleAfter: params.StaleAfter,
		now:        time.Now,
	}, nil
}

type staleResourcesJob struct {
	logg       *logger.Logger
	resources  resourceStaler
	metrics    *metrics.SweepJobMetrics
	staleAfter time.Duration
	now        func() time.Time
}

func (j *staleResourcesJob) Name() string { return "stale-resources" }

func (j *staleResourcesJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-j.staleAfter)

	changed, err := j.resources.MarkStaleUnknown(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("marking stale resources: %w", err)
	}

	j.metrics.AddAffected(j.Name(), changed)
	if changed > 0 {
		ctx = j.logg.WithField(ctx, "downgraded", changed)
		j.logg.Info(ctx, "stale resources downgraded to Unknown")
	}
	return nil
}
