package sweeper

import (
	"context"
	"fmt"
	"time"

	"github.com/serpcat/serp-backend/pkg/logger"
	"github.com/serpcat/serp-backend/pkg/metrics"
)

type alertArchiver interface {
	ArchiveSolvedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// ArchiveSolvedJobParams configures the solved-alert archival job.
type ArchiveSolvedJobParams struct {
	Logger    *logger.Logger
	Alerts    alertArchiver
	Metrics   *metrics.SweepJobMetrics
	OlderThan time.Duration
}

// NewArchiveSolvedJob constructs the job that moves long-solved alerts to
// the archive so the working set stays small.
func NewArchiveSolvedJob(params ArchiveSolvedJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Alerts == nil {
		return nil, fmt.Errorf("alert archiver required")
	}
	if params.OlderThan <= 0 {
		return nil, fmt.Errorf("archive window must be positive")
	}
	return &archiveSolvedJob{
		logg:      params.Logger,
		alerts:    params.Alerts,
		metrics:   params.Metrics,
		olderThan: params.OlderThan,
		now:       time.Now,
	}, nil
}

type archiveSolvedJob struct {
	logg      *logger.Logger
	alerts    alertArchiver
	metrics   *metrics.SweepJobMetrics
	olderThan time.Duration
	now       func() time.Time
}

func (j *archiveSolvedJob) Name() string { return "archive-solved" }

func (j *archiveSolvedJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-j.olderThan)

	archived, err := j.alerts.ArchiveSolvedBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("archiving solved alerts: %w", err)
	}

	j.metrics.AddAffected(j.Name(), archived)
	if archived > 0 {
		ctx = j.logg.WithField(ctx, "archived", archived)
		j.logg.Info(ctx, "solved alerts archived")
	}
	return nil
}
