// Package insights computes the task report as independent pure functions
// over one snapshot of a user's tasks. Each function only reads its input,
// so the report is consistent with the snapshot it was given.
package insights

import (
	"math"
	"sort"
	"time"

	"github.com/taskflow/task-manager/internal/core/domain"
)

const (
	// RecentWindow bounds the completion-rate and completion-time metrics.
	RecentWindow = 30 * 24 * time.Hour
	// UpcomingWindow is how far ahead a due date counts as upcoming.
	UpcomingWindow = 7 * 24 * time.Hour
	// MaxUpcoming caps the upcoming-deadlines list.
	MaxUpcoming = 5
)

// Compute assembles the full report as of now.
func Compute(tasks []domain.Task, now time.Time) domain.Insights {
	status := StatusBreakdown(tasks)
	return domain.Insights{
		StatusBreakdown:   status,
		PriorityBreakdown: PriorityBreakdown(tasks),
		Metrics: domain.InsightMetrics{
			TotalTasks:         status.Total(),
			OverdueTasks:       OverdueCount(tasks, now),
			CompletionRate:     CompletionRate(tasks, now),
			AvgCompletionHours: AverageCompletionHours(tasks, now),
		},
		UpcomingDeadlines: UpcomingDeadlines(tasks, now),
	}
}

// StatusBreakdown counts tasks per status. Unknown statuses are ignored.
func StatusBreakdown(tasks []domain.Task) domain.StatusBreakdown {
	var b domain.StatusBreakdown
	for _, t := range tasks {
		switch t.Status {
		case domain.StatusPending:
			b.Pending++
		case domain.StatusInProgress:
			b.InProgress++
		case domain.StatusDone:
			b.Done++
		}
	}
	return b
}

// PriorityBreakdown counts tasks per priority, bucketing unset as medium.
func PriorityBreakdown(tasks []domain.Task) domain.PriorityBreakdown {
	var b domain.PriorityBreakdown
	for _, t := range tasks {
		switch t.Extras.Priority.OrDefault() {
		case domain.PriorityLow:
			b.Low++
		case domain.PriorityMedium:
			b.Medium++
		case domain.PriorityHigh:
			b.High++
		}
	}
	return b
}

// OverdueCount counts open tasks whose due date is strictly before now.
func OverdueCount(tasks []domain.Task, now time.Time) int {
	n := 0
	for _, t := range tasks {
		if t.Status == domain.StatusDone || t.Extras.DueDate == nil {
			continue
		}
		if t.Extras.DueDate.Before(now) {
			n++
		}
	}
	return n
}

// CompletionRate is the rounded percentage of tasks created in the recent
// window that are done. It is 0 when nothing was created in the window.
func CompletionRate(tasks []domain.Task, now time.Time) int {
	since := now.Add(-RecentWindow)
	created, done := 0, 0
	for _, t := range tasks {
		if t.CreatedAt.Before(since) {
			continue
		}
		created++
		if t.Status == domain.StatusDone {
			done++
		}
	}
	if created == 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(created) * 100))
}

// AverageCompletionHours is the mean created-to-last-modified span, in hours
// rounded to one decimal, of done tasks modified within the recent window.
func AverageCompletionHours(tasks []domain.Task, now time.Time) float64 {
	since := now.Add(-RecentWindow)
	var total time.Duration
	n := 0
	for _, t := range tasks {
		if t.Status != domain.StatusDone || t.UpdatedAt.Before(since) {
			continue
		}
		total += t.UpdatedAt.Sub(t.CreatedAt)
		n++
	}
	if n == 0 {
		return 0
	}
	avg := total.Hours() / float64(n)
	return math.Round(avg*10) / 10
}

// UpcomingDeadlines lists up to MaxUpcoming open tasks due within the
// upcoming window, soonest first.
func UpcomingDeadlines(tasks []domain.Task, now time.Time) []domain.Deadline {
	until := now.Add(UpcomingWindow)
	out := make([]domain.Deadline, 0, MaxUpcoming)
	for _, t := range tasks {
		due := t.Extras.DueDate
		if t.Status == domain.StatusDone || due == nil {
			continue
		}
		if due.Before(now) || due.After(until) {
			continue
		}
		out = append(out, domain.Deadline{
			ID:       t.ID,
			Title:    t.Title,
			DueDate:  *due,
			Priority: t.Extras.Priority.OrDefault(),
			Status:   t.Status,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate.Before(out[j].DueDate)
	})
	if len(out) > MaxUpcoming {
		out = out[:MaxUpcoming]
	}
	return out
}
