package ports

import (
	"context"
	"time"

	"github.com/taskflow/task-manager/internal/core/domain"
)

// SortField names a sortable task attribute.
type SortField string

const (
	SortByCreatedAt SortField = "createdAt"
	SortByUpdatedAt SortField = "updatedAt"
	SortByTitle     SortField = "title"
	SortByStatus    SortField = "status"
	SortByPriority  SortField = "extras.priority"
	SortByDueDate   SortField = "extras.dueDate"
)

// ListTasksFilter carries all query parameters for listing tasks.
// OwnerID is always set by the service layer.
type ListTasksFilter struct {
	OwnerID    string
	Status     domain.TaskStatus // optional
	Priority   domain.Priority   // optional
	SortBy     SortField
	Descending bool
	Page       int // 1-based
	Limit      int
}

// TaskRepository defines owner-scoped persistence for tasks. Every method
// that takes a taskID returns domain.ErrTaskNotFound when the task does not
// exist or belongs to someone else.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) error
	FindByID(ctx context.Context, ownerID, taskID string) (*domain.Task, error)
	// List returns a page of tasks matching filter and the total match count.
	List(ctx context.Context, filter ListTasksFilter) ([]*domain.Task, int64, error)
	// Update applies patch atomically and returns the stored result.
	Update(ctx context.Context, ownerID, taskID string, patch domain.TaskPatch, now time.Time) (*domain.Task, error)
	Delete(ctx context.Context, ownerID, taskID string) error
	// Snapshot returns every task the owner has, for reporting.
	Snapshot(ctx context.Context, ownerID string) ([]domain.Task, error)
}
