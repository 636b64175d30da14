package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskflow/task-manager/internal/core/domain"
	"github.com/taskflow/task-manager/internal/core/insights"
	"github.com/taskflow/task-manager/internal/core/ports"
)

// InsightsService reads one snapshot of a user's tasks and reports on it.
type InsightsService struct {
	repo   ports.TaskRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewInsightsService(repo ports.TaskRepository, logger zerolog.Logger) *InsightsService {
	return &InsightsService{repo: repo, logger: logger, now: time.Now}
}

func (s *InsightsService) Insights(ctx context.Context, ownerID string) (*domain.Insights, error) {
	tasks, err := s.repo.Snapshot(ctx, ownerID)
	if err != nil {
		return nil, internal("task snapshot", err)
	}

	report := insights.Compute(tasks, s.now().UTC())
	s.logger.Debug().
		Str("owner_id", ownerID).
		Int("tasks", len(tasks)).
		Msg("insights computed")
	return &report, nil
}
