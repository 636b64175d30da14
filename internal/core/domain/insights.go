package domain

import "time"

// StatusBreakdown counts tasks per status.
type StatusBreakdown struct {
	Pending    int
	InProgress int
	Done       int
}

// Total is the number of tasks counted.
func (b StatusBreakdown) Total() int {
	return b.Pending + b.InProgress + b.Done
}

// PriorityBreakdown counts tasks per priority.
type PriorityBreakdown struct {
	Low    int
	Medium int
	High   int
}

// InsightMetrics are the scalar figures of the report.
type InsightMetrics struct {
	TotalTasks         int
	OverdueTasks       int
	CompletionRate     int     // percent, 0..100
	AvgCompletionHours float64 // one decimal place
}

// Deadline is the slim projection of a task with an approaching due date.
type Deadline struct {
	ID       string
	Title    string
	DueDate  time.Time
	Priority Priority
	Status   TaskStatus
}

// Insights is the read-only report over one user's tasks.
type Insights struct {
	StatusBreakdown   StatusBreakdown
	PriorityBreakdown PriorityBreakdown
	Metrics           InsightMetrics
	UpcomingDeadlines []Deadline
}
