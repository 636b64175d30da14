package handler

import (
	"strings"
	"time"

	"github.com/taskflow/task-manager/internal/core/domain"
	"github.com/taskflow/task-manager/internal/core/ports"
)

const dateOnly = "2006-01-02"

// parseDueDate accepts RFC 3339 timestamps and bare dates (midnight UTC).
func parseDueDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse(dateOnly, s); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}

const dueDateField = "extras.dueDate"

func invalidDueDate() *domain.ValidationError {
	return domain.NewValidationError(dueDateField, dueDateField+" must be a valid date")
}

// --- Request → domain ---

// toDraft converts the request. A malformed due date is returned together
// with the draft's own violations so the caller sees every bad field.
func toDraft(req createTaskRequest) (domain.TaskDraft, error) {
	d := domain.TaskDraft{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
		Extras: domain.ExtrasDraft{
			Tags:           req.Extras.Tags,
			Priority:       domain.Priority(req.Extras.Priority),
			EstimatedHours: req.Extras.EstimatedHours,
			ActualHours:    req.Extras.ActualHours,
			Notes:          req.Extras.Notes,
		},
	}

	if req.Extras.DueDate == nil || strings.TrimSpace(*req.Extras.DueDate) == "" {
		return d, nil
	}
	due, ok := parseDueDate(*req.Extras.DueDate)
	if ok {
		d.Extras.DueDate = &due
		return d, nil
	}

	verr := invalidDueDate()
	d.Normalize()
	verr.Merge(d.Validate())
	return d, verr
}

func toPatch(req updateTaskRequest) (domain.TaskPatch, error) {
	p := domain.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      convertOptional(req.Status, func(s string) domain.TaskStatus { return domain.TaskStatus(s) }),
	}

	if !req.Extras.Set {
		return p, nil
	}
	if req.Extras.Null {
		return p, domain.NewValidationError("extras", "extras cannot be null")
	}

	e := req.Extras.Value
	p.Extras = domain.ExtrasPatch{
		Tags:           e.Tags,
		Priority:       convertOptional(e.Priority, func(s string) domain.Priority { return domain.Priority(s) }),
		EstimatedHours: e.EstimatedHours,
		ActualHours:    e.ActualHours,
		Notes:          e.Notes,
	}

	switch {
	case !e.DueDate.Set:
	case e.DueDate.Null || strings.TrimSpace(e.DueDate.Value) == "":
		p.Extras.DueDate = domain.Null[time.Time]()
	default:
		due, ok := parseDueDate(e.DueDate.Value)
		if !ok {
			verr := invalidDueDate()
			p.Normalize()
			verr.Merge(p.Validate())
			return p, verr
		}
		p.Extras.DueDate = domain.Some(due)
	}
	return p, nil
}

func convertOptional[A, B any](in domain.Optional[A], conv func(A) B) domain.Optional[B] {
	out := domain.Optional[B]{Set: in.Set, Null: in.Null}
	if in.HasValue() {
		out.Value = conv(in.Value)
	}
	return out
}

// --- Domain → response ---

func toTaskResponse(t *domain.Task) taskResponse {
	tags := t.Extras.Tags
	if tags == nil {
		tags = []string{}
	}
	return taskResponse{
		ID:          t.ID,
		UserID:      t.OwnerID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Extras: extrasResponse{
			Tags:           tags,
			DueDate:        t.Extras.DueDate,
			Priority:       string(t.Extras.Priority.OrDefault()),
			EstimatedHours: t.Extras.EstimatedHours,
			ActualHours:    t.Extras.ActualHours,
			Notes:          t.Extras.Notes,
		},
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func toTaskListData(r *ports.ListTasksResult) taskListData {
	tasks := make([]taskResponse, 0, len(r.Items))
	for _, t := range r.Items {
		tasks = append(tasks, toTaskResponse(t))
	}
	return taskListData{
		Tasks: tasks,
		Pagination: pagination{
			Page:  r.Page,
			Limit: r.Limit,
			Total: r.Total,
			Pages: r.TotalPages,
		},
	}
}

func toInsightsData(in *domain.Insights) insightsData {
	deadlines := make([]deadlineResponse, 0, len(in.UpcomingDeadlines))
	for _, d := range in.UpcomingDeadlines {
		deadlines = append(deadlines, deadlineResponse{
			ID:       d.ID,
			Title:    d.Title,
			DueDate:  d.DueDate,
			Priority: string(d.Priority.OrDefault()),
			Status:   string(d.Status),
		})
	}
	return insightsData{
		StatusBreakdown: statusBreakdownResponse{
			Pending:    in.StatusBreakdown.Pending,
			InProgress: in.StatusBreakdown.InProgress,
			Done:       in.StatusBreakdown.Done,
		},
		PriorityBreakdown: priorityBreakdownResponse{
			Low:    in.PriorityBreakdown.Low,
			Medium: in.PriorityBreakdown.Medium,
			High:   in.PriorityBreakdown.High,
		},
		Metrics: metricsResponse{
			TotalTasks:         in.Metrics.TotalTasks,
			OverdueTasks:       in.Metrics.OverdueTasks,
			CompletionRate:     in.Metrics.CompletionRate,
			AvgCompletionHours: in.Metrics.AvgCompletionHours,
		},
		UpcomingDeadlines: deadlines,
	}
}
