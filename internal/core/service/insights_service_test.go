package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/taskflow/task-manager/internal/core/domain"
)

func TestInsightsService_ScopesToOwner(t *testing.T) {
	repo := newStubTaskRepo()
	tasks := newTaskSvc(repo)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	tasks.now = func() time.Time { return now }

	soon := now.Add(72 * time.Hour)
	mustCreate(t, tasks, "alice", domain.TaskDraft{Title: "a1", Extras: domain.ExtrasDraft{DueDate: &soon}})
	mustCreate(t, tasks, "alice", domain.TaskDraft{Title: "a2", Status: domain.StatusDone})
	mustCreate(t, tasks, "bob", domain.TaskDraft{Title: "b1", Status: domain.StatusDone})

	svc := NewInsightsService(repo, discardLogger)
	svc.now = func() time.Time { return now.Add(2 * time.Hour) }

	report, err := svc.Insights(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Insights: %v", err)
	}

	if report.Metrics.TotalTasks != 2 {
		t.Fatalf("expected 2 tasks, got %d", report.Metrics.TotalTasks)
	}
	if report.StatusBreakdown.Done != 1 || report.StatusBreakdown.Pending != 1 {
		t.Fatalf("unexpected breakdown: %+v", report.StatusBreakdown)
	}
	if report.Metrics.CompletionRate != 50 {
		t.Fatalf("expected completion rate 50, got %d", report.Metrics.CompletionRate)
	}
	if len(report.UpcomingDeadlines) != 1 || report.UpcomingDeadlines[0].Title != "a1" {
		t.Fatalf("unexpected deadlines: %+v", report.UpcomingDeadlines)
	}
}

func TestInsightsService_StoreFailureIsInternal(t *testing.T) {
	repo := newStubTaskRepo()
	repo.err = errors.New("cursor killed")
	svc := NewInsightsService(repo, discardLogger)

	if _, err := svc.Insights(context.Background(), "alice"); !errors.Is(err, domain.ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}
