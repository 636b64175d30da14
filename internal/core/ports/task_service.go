package ports

import (
	"context"

	"github.com/taskflow/task-manager/internal/core/domain"
)

// ListTasksInput carries the raw list parameters from the transport layer.
// Zero values select the defaults.
type ListTasksInput struct {
	OwnerID   string
	Status    string
	Priority  string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// ListTasksResult is returned by ListTasks.
type ListTasksResult struct {
	Items      []*domain.Task
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// TaskService defines owner-scoped task use cases.
type TaskService interface {
	ListTasks(ctx context.Context, input ListTasksInput) (*ListTasksResult, error)
	GetTask(ctx context.Context, ownerID, taskID string) (*domain.Task, error)
	CreateTask(ctx context.Context, ownerID string, draft domain.TaskDraft) (*domain.Task, error)
	UpdateTask(ctx context.Context, ownerID, taskID string, patch domain.TaskPatch) (*domain.Task, error)
	DeleteTask(ctx context.Context, ownerID, taskID string) error
}

// InsightsService builds the aggregate report over one user's tasks.
type InsightsService interface {
	Insights(ctx context.Context, ownerID string) (*domain.Insights, error)
}
