package handler

import (
	"time"

	"github.com/taskflow/task-manager/internal/core/domain"
)

// --- Requests ---

type extrasRequest struct {
	Tags           []string `json:"tags"           example:"work,urgent"`
	DueDate        *string  `json:"dueDate"        example:"2026-11-01T17:00:00Z"`
	Priority       string   `json:"priority"       example:"high"`
	EstimatedHours *float64 `json:"estimatedHours" example:"4"`
	ActualHours    *float64 `json:"actualHours"`
	Notes          string   `json:"notes"`
}

type createTaskRequest struct {
	Title       string        `json:"title"       example:"Prepare quarterly report"`
	Description string        `json:"description" example:"Numbers for Q3"`
	Status      string        `json:"status"      example:"pending"`
	Extras      extrasRequest `json:"extras"`
}

// Every field is optional; a key sent as null clears the stored value.
type updateExtrasRequest struct {
	Tags           domain.Optional[[]string] `json:"tags"           swaggertype:"array,string"`
	DueDate        domain.Optional[string]   `json:"dueDate"        swaggertype:"string"`
	Priority       domain.Optional[string]   `json:"priority"       swaggertype:"string"`
	EstimatedHours domain.Optional[float64]  `json:"estimatedHours" swaggertype:"number"`
	ActualHours    domain.Optional[float64]  `json:"actualHours"    swaggertype:"number"`
	Notes          domain.Optional[string]   `json:"notes"          swaggertype:"string"`
}

type updateTaskRequest struct {
	Title       domain.Optional[string]              `json:"title"       swaggertype:"string"`
	Description domain.Optional[string]              `json:"description" swaggertype:"string"`
	Status      domain.Optional[string]              `json:"status"      swaggertype:"string"`
	Extras      domain.Optional[updateExtrasRequest] `json:"extras"`
}

// --- Responses ---

type extrasResponse struct {
	Tags           []string   `json:"tags"`
	DueDate        *time.Time `json:"dueDate,omitempty"`
	Priority       string     `json:"priority"`
	EstimatedHours *float64   `json:"estimatedHours,omitempty"`
	ActualHours    *float64   `json:"actualHours,omitempty"`
	Notes          string     `json:"notes,omitempty"`
}

type taskResponse struct {
	ID          string         `json:"_id"`
	UserID      string         `json:"userId"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Status      string         `json:"status"`
	Extras      extrasResponse `json:"extras"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

type taskData struct {
	Task taskResponse `json:"task"`
}

type pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

type taskListData struct {
	Tasks      []taskResponse `json:"tasks"`
	Pagination pagination     `json:"pagination"`
}

type statusBreakdownResponse struct {
	Pending    int `json:"pending"`
	InProgress int `json:"in-progress"`
	Done       int `json:"done"`
}

type priorityBreakdownResponse struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

type metricsResponse struct {
	TotalTasks         int     `json:"totalTasks"`
	OverdueTasks       int     `json:"overdueTasks"`
	CompletionRate     int     `json:"completionRate"`
	AvgCompletionHours float64 `json:"avgCompletionHours"`
}

type deadlineResponse struct {
	ID       string    `json:"_id"`
	Title    string    `json:"title"`
	DueDate  time.Time `json:"dueDate"`
	Priority string    `json:"priority"`
	Status   string    `json:"status"`
}

type insightsData struct {
	StatusBreakdown   statusBreakdownResponse   `json:"statusBreakdown"`
	PriorityBreakdown priorityBreakdownResponse `json:"priorityBreakdown"`
	Metrics           metricsResponse           `json:"metrics"`
	UpcomingDeadlines []deadlineResponse        `json:"upcomingDeadlines"`
}
