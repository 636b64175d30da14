package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow/task-manager/internal/core/domain"
	"github.com/taskflow/task-manager/internal/core/insights"
)

func TestDemoTasks_AreValidAndOwned(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	tasks := demoTasks("owner-1", now)
	require.Len(t, tasks, len(seedData))

	for i, task := range tasks {
		assert.Equal(t, "owner-1", task.OwnerID)
		assert.NoError(t, seedData[i].draft.Validate(), task.Title)
		assert.False(t, task.CreatedAt.After(now), task.Title)
		assert.False(t, task.UpdatedAt.Before(task.CreatedAt), task.Title)
		assert.NotEmpty(t, task.Extras.Priority, task.Title)
	}
}

func TestDemoTasks_FeedEveryInsight(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	tasks := demoTasks("owner-1", now)

	snapshot := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		snapshot = append(snapshot, *task)
	}
	report := insights.Compute(snapshot, now)

	assert.Positive(t, report.StatusBreakdown.Pending)
	assert.Positive(t, report.StatusBreakdown.InProgress)
	assert.Positive(t, report.StatusBreakdown.Done)
	assert.Positive(t, report.Metrics.OverdueTasks)
	assert.Positive(t, report.Metrics.CompletionRate)
	assert.Positive(t, report.Metrics.AvgCompletionHours)
	assert.NotEmpty(t, report.UpcomingDeadlines)
}
