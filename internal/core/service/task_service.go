package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskflow/task-manager/internal/core/domain"
	"github.com/taskflow/task-manager/internal/core/ports"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// sortAliases maps accepted sortBy values to repository sort fields.
var sortAliases = map[string]ports.SortField{
	"createdAt":       ports.SortByCreatedAt,
	"updatedAt":       ports.SortByUpdatedAt,
	"title":           ports.SortByTitle,
	"status":          ports.SortByStatus,
	"priority":        ports.SortByPriority,
	"extras.priority": ports.SortByPriority,
	"dueDate":         ports.SortByDueDate,
	"extras.dueDate":  ports.SortByDueDate,
}

type TaskService struct {
	repo   ports.TaskRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewTaskService(repo ports.TaskRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, logger: logger, now: time.Now}
}

// ListTasks returns one page of the owner's tasks. A page past the end is an
// empty page, not an error.
func (s *TaskService) ListTasks(ctx context.Context, input ports.ListTasksInput) (*ports.ListTasksResult, error) {
	filter, err := buildListFilter(input)
	if err != nil {
		return nil, err
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, internal("list tasks", err)
	}
	if items == nil {
		items = []*domain.Task{}
	}

	return &ports.ListTasksResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// buildListFilter validates raw list parameters and applies defaults.
func buildListFilter(in ports.ListTasksInput) (ports.ListTasksFilter, error) {
	verr := &domain.ValidationError{}
	f := ports.ListTasksFilter{
		OwnerID:    in.OwnerID,
		SortBy:     ports.SortByCreatedAt,
		Descending: true,
		Page:       in.Page,
		Limit:      in.Limit,
	}

	switch st := domain.TaskStatus(in.Status); st {
	case "":
	case domain.StatusPending, domain.StatusInProgress, domain.StatusDone:
		f.Status = st
	default:
		verr.Add("status", "status must be one of: pending, in-progress, done")
	}

	switch p := domain.Priority(in.Priority); p {
	case "":
	case domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh:
		f.Priority = p
	default:
		verr.Add("priority", "priority must be one of: low, medium, high")
	}

	if in.SortBy != "" {
		field, ok := sortAliases[in.SortBy]
		if !ok {
			verr.Add("sortBy", "sortBy must be one of: createdAt, updatedAt, title, status, priority, dueDate")
		}
		f.SortBy = field
	}

	switch strings.ToLower(in.SortOrder) {
	case "", "desc":
	case "asc":
		f.Descending = false
	default:
		verr.Add("sortOrder", "sortOrder must be one of: asc, desc")
	}

	if f.Page == 0 {
		f.Page = defaultPage
	}
	if f.Page < 1 {
		verr.Add("page", "page must be at least 1")
	}
	if f.Limit == 0 {
		f.Limit = defaultLimit
	}
	if f.Limit < 1 {
		verr.Add("limit", "limit must be at least 1")
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}

	return f, verr.OrNil()
}

func totalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// GetTask returns the task when ownerID owns it.
func (s *TaskService) GetTask(ctx context.Context, ownerID, taskID string) (*domain.Task, error) {
	t, err := s.repo.FindByID(ctx, ownerID, taskID)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return nil, err
		}
		return nil, internal("get task", err)
	}
	return t, nil
}

// CreateTask validates the draft, fills defaults and stores it under ownerID.
func (s *TaskService) CreateTask(ctx context.Context, ownerID string, draft domain.TaskDraft) (*domain.Task, error) {
	draft.Normalize()
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	task := domain.NewTask(ownerID, draft, s.clock())
	if err := s.repo.Create(ctx, task); err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to create task")
		return nil, internal("create task", err)
	}

	s.logger.Info().Str("task_id", task.ID).Str("owner_id", ownerID).Msg("task created")
	return task, nil
}

// UpdateTask applies only the supplied fields. An empty patch returns the
// stored task untouched.
func (s *TaskService) UpdateTask(ctx context.Context, ownerID, taskID string, patch domain.TaskPatch) (*domain.Task, error) {
	patch.Normalize()
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return s.GetTask(ctx, ownerID, taskID)
	}

	t, err := s.repo.Update(ctx, ownerID, taskID, patch, s.clock())
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return nil, err
		}
		return nil, internal("update task", err)
	}

	s.logger.Info().Str("task_id", taskID).Str("owner_id", ownerID).Msg("task updated")
	return t, nil
}

// DeleteTask removes the task permanently.
func (s *TaskService) DeleteTask(ctx context.Context, ownerID, taskID string) error {
	if err := s.repo.Delete(ctx, ownerID, taskID); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return err
		}
		return internal("delete task", err)
	}

	s.logger.Info().Str("task_id", taskID).Str("owner_id", ownerID).Msg("task deleted")
	return nil
}

// clock returns the current time at the store's millisecond precision, so a
// task read back compares equal to the one returned on write.
func (s *TaskService) clock() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// internal tags a collaborator failure as domain.ErrInternal.
func internal(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrInternal, op, err)
}
