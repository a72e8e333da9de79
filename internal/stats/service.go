package stats

import (
	"context"
	"fmt"

	"github.com/serpcat/serp-backend/pkg/enums"
	pkgerrors "github.com/serpcat/serp-backend/pkg/errors"
)

// Service computes the dashboard summary.
type Service interface {
	GetStats(ctx context.Context) (*Stats, error)
}

type alertCounter interface {
	CountByStatus(ctx context.Context) (map[enums.AlertStatus]int64, error)
}

type resourceCounter interface {
	CountByStatus(ctx context.Context) (map[enums.ResourceStatus]int64, error)
}

type service struct {
	alerts    alertCounter
	resources resourceCounter
}

// NewService constructs a stats service instance.
func NewService(alerts alertCounter, resources resourceCounter) (Service, error) {
	if alerts == nil {
		return nil, fmt.Errorf("alert counter required")
	}
	if resources == nil {
		return nil, fmt.Errorf("resource counter required")
	}
	return &service{alerts: alerts, resources: resources}, nil
}

func (s *service) GetStats(ctx context.Context) (*Stats, error) {
	alertCounts, err := s.alerts.CountByStatus(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting alerts")
	}

	resourceCounts, err := s.resources.CountByStatus(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting resources")
	}

	var total int64
	for _, count := range resourceCounts {
		total += count
	}

	out := FromCounts(alertCounts, resourceCounts, total)
	return &out, nil
}
