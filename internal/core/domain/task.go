package domain

import (
	"strings"
	"time"
)

// TaskStatus is the workflow state of a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusDone       TaskStatus = "done"
)

// Priority ranks a task. Tasks without one are treated as PriorityMedium.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// OrDefault returns p, or PriorityMedium when p is unset.
func (p Priority) OrDefault() Priority {
	if p == "" {
		return PriorityMedium
	}
	return p
}

// TaskExtras is the optional metadata attached to a task.
type TaskExtras struct {
	Tags           []string
	DueDate        *time.Time
	Priority       Priority
	EstimatedHours *float64
	ActualHours    *float64
	Notes          string
}

// Task is owned by exactly one user and only reachable through that owner.
type Task struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	Status      TaskStatus
	Extras      TaskExtras
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskDraft is the client-supplied content of a new task.
type TaskDraft struct {
	Title       string      `json:"title"       validate:"required,max=200"`
	Description string      `json:"description" validate:"max=1000"`
	Status      TaskStatus  `json:"status"      validate:"omitempty,oneof=pending in-progress done"`
	Extras      ExtrasDraft `json:"extras"`
}

// ExtrasDraft is the client-supplied extras of a new task.
type ExtrasDraft struct {
	Tags           []string   `json:"tags"           validate:"dive,max=30"`
	DueDate        *time.Time `json:"dueDate"`
	Priority       Priority   `json:"priority"       validate:"omitempty,oneof=low medium high"`
	EstimatedHours *float64   `json:"estimatedHours" validate:"omitnil,gte=0"`
	ActualHours    *float64   `json:"actualHours"    validate:"omitnil,gte=0"`
	Notes          string     `json:"notes"          validate:"max=500"`
}

// Normalize trims free-text fields in place.
func (d *TaskDraft) Normalize() {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	d.Extras.Notes = strings.TrimSpace(d.Extras.Notes)
	d.Extras.Tags = trimAll(d.Extras.Tags)
}

// Validate reports every violated constraint.
func (d TaskDraft) Validate() error {
	return ValidateStruct(d)
}

// NewTask builds a task from a validated draft, filling defaults.
func NewTask(ownerID string, d TaskDraft, now time.Time) *Task {
	status := d.Status
	if status == "" {
		status = StatusPending
	}
	var tags []string
	if d.Extras.Tags != nil {
		tags = append([]string{}, d.Extras.Tags...)
	}
	return &Task{
		OwnerID:     ownerID,
		Title:       d.Title,
		Description: d.Description,
		Status:      status,
		Extras: TaskExtras{
			Tags:           tags,
			DueDate:        d.Extras.DueDate,
			Priority:       d.Extras.Priority.OrDefault(),
			EstimatedHours: d.Extras.EstimatedHours,
			ActualHours:    d.Extras.ActualHours,
			Notes:          d.Extras.Notes,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TaskPatch is a partial update. Absent fields are never written.
type TaskPatch struct {
	Title       Optional[string]
	Description Optional[string]
	Status      Optional[TaskStatus]
	Extras      ExtrasPatch
}

// ExtrasPatch is merged field by field into the stored extras.
type ExtrasPatch struct {
	Tags           Optional[[]string]
	DueDate        Optional[time.Time]
	Priority       Optional[Priority]
	EstimatedHours Optional[float64]
	ActualHours    Optional[float64]
	Notes          Optional[string]
}

// IsEmpty reports whether the patch supplies no field at all.
func (p TaskPatch) IsEmpty() bool {
	e := p.Extras
	return !p.Title.Set && !p.Description.Set && !p.Status.Set &&
		!e.Tags.Set && !e.DueDate.Set && !e.Priority.Set &&
		!e.EstimatedHours.Set && !e.ActualHours.Set && !e.Notes.Set
}

// Normalize trims supplied free-text fields in place.
func (p *TaskPatch) Normalize() {
	if p.Title.HasValue() {
		p.Title.Value = strings.TrimSpace(p.Title.Value)
	}
	if p.Description.HasValue() {
		p.Description.Value = strings.TrimSpace(p.Description.Value)
	}
	if p.Extras.Notes.HasValue() {
		p.Extras.Notes.Value = strings.TrimSpace(p.Extras.Notes.Value)
	}
	if p.Extras.Tags.HasValue() {
		p.Extras.Tags.Value = trimAll(p.Extras.Tags.Value)
	}
}

// patchView exposes only the supplied fields to the validator. Nullable
// fields supplied as null are skipped; null on title, status or priority
// surfaces as the zero value and fails its rule.
type patchView struct {
	Title       *string         `json:"title"       validate:"omitnil,min=1,max=200"`
	Description *string         `json:"description" validate:"omitnil,max=1000"`
	Status      *TaskStatus     `json:"status"      validate:"omitnil,oneof=pending in-progress done"`
	Extras      extrasPatchView `json:"extras"`
}

type extrasPatchView struct {
	Tags           []string  `json:"tags"           validate:"dive,max=30"`
	Priority       *Priority `json:"priority"       validate:"omitnil,oneof=low medium high"`
	EstimatedHours *float64  `json:"estimatedHours" validate:"omitnil,gte=0"`
	ActualHours    *float64  `json:"actualHours"    validate:"omitnil,gte=0"`
	Notes          *string   `json:"notes"          validate:"omitnil,max=500"`
}

// Validate re-checks every supplied field against the same rules as create.
func (p TaskPatch) Validate() error {
	return ValidateStruct(patchView{
		Title:       p.Title.ptr(),
		Description: p.Description.valuePtr(),
		Status:      p.Status.ptr(),
		Extras: extrasPatchView{
			Tags:           p.Extras.Tags.Value,
			Priority:       p.Extras.Priority.ptr(),
			EstimatedHours: p.Extras.EstimatedHours.valuePtr(),
			ActualHours:    p.Extras.ActualHours.valuePtr(),
			Notes:          p.Extras.Notes.valuePtr(),
		},
	})
}

// ApplyTo writes the supplied fields onto t. Nulls clear optional fields.
func (p TaskPatch) ApplyTo(t *Task, now time.Time) {
	if p.IsEmpty() {
		return
	}
	if p.Title.Set {
		t.Title = p.Title.Value
	}
	if p.Description.Set {
		t.Description = p.Description.Value
	}
	if p.Status.Set {
		t.Status = p.Status.Value
	}

	e := p.Extras
	if e.Tags.Set {
		t.Extras.Tags = nil
		if e.Tags.HasValue() {
			t.Extras.Tags = append([]string{}, e.Tags.Value...)
		}
	}
	if e.DueDate.Set {
		t.Extras.DueDate = e.DueDate.valuePtr()
	}
	if e.Priority.Set {
		t.Extras.Priority = e.Priority.Value
	}
	if e.EstimatedHours.Set {
		t.Extras.EstimatedHours = e.EstimatedHours.valuePtr()
	}
	if e.ActualHours.Set {
		t.Extras.ActualHours = e.ActualHours.valuePtr()
	}
	if e.Notes.Set {
		t.Extras.Notes = e.Notes.Value
	}
	t.UpdatedAt = now
}

func trimAll(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.TrimSpace(s)
	}
	return out
}
