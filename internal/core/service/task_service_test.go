package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskflow/task-manager/internal/core/domain"
	"github.com/taskflow/task-manager/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubTaskRepo struct {
	tasks      map[string]*domain.Task
	nextID     int
	err        error // if set, every call returns this error
	lastFilter ports.ListTasksFilter
	updates    int
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task)}
}

func cloneTask(t *domain.Task) *domain.Task {
	clone := *t
	if t.Extras.Tags != nil {
		clone.Extras.Tags = append([]string{}, t.Extras.Tags...)
	}
	return &clone
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) error {
	if r.err != nil {
		return r.err
	}
	r.nextID++
	t.ID = fmt.Sprintf("task-%03d", r.nextID)
	r.tasks[t.ID] = cloneTask(t)
	return nil
}

// owned mirrors the {_id, userId} filter of the real store.
func (r *stubTaskRepo) owned(ownerID, taskID string) (*domain.Task, bool) {
	t, ok := r.tasks[taskID]
	if !ok || t.OwnerID != ownerID {
		return nil, false
	}
	return t, true
}

func (r *stubTaskRepo) FindByID(_ context.Context, ownerID, taskID string) (*domain.Task, error) {
	if r.err != nil {
		return nil, r.err
	}
	t, ok := r.owned(ownerID, taskID)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return cloneTask(t), nil
}

// List sorts by id as a stand-in for the requested sort field.
func (r *stubTaskRepo) List(_ context.Context, f ports.ListTasksFilter) ([]*domain.Task, int64, error) {
	r.lastFilter = f
	if r.err != nil {
		return nil, 0, r.err
	}

	var matched []*domain.Task
	for _, t := range r.tasks {
		if t.OwnerID != f.OwnerID {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.Priority != "" && t.Extras.Priority != f.Priority {
			continue
		}
		matched = append(matched, cloneTask(t))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	skip := (f.Page - 1) * f.Limit
	if skip > len(matched) {
		return []*domain.Task{}, total, nil
	}
	end := skip + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func (r *stubTaskRepo) Update(_ context.Context, ownerID, taskID string, patch domain.TaskPatch, now time.Time) (*domain.Task, error) {
	if r.err != nil {
		return nil, r.err
	}
	t, ok := r.owned(ownerID, taskID)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	r.updates++
	patch.ApplyTo(t, now)
	return cloneTask(t), nil
}

func (r *stubTaskRepo) Delete(_ context.Context, ownerID, taskID string) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.owned(ownerID, taskID); !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, taskID)
	return nil
}

func (r *stubTaskRepo) Snapshot(_ context.Context, ownerID string) ([]domain.Task, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []domain.Task
	for _, t := range r.tasks {
		if t.OwnerID == ownerID {
			out = append(out, *cloneTask(t))
		}
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

func newTaskSvc(repo *stubTaskRepo) *TaskService {
	return NewTaskService(repo, discardLogger)
}

func mustCreate(t *testing.T, svc *TaskService, owner string, draft domain.TaskDraft) *domain.Task {
	t.Helper()
	task, err := svc.CreateTask(context.Background(), owner, draft)
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	return task
}

// ---------------------------------------------------------------------------
// CreateTask / GetTask
// ---------------------------------------------------------------------------

func TestTaskService_Create_RoundTrip(t *testing.T) {
	svc := newTaskSvc(newStubTaskRepo())
	due := time.Date(2026, 11, 1, 9, 0, 0, 0, time.UTC)
	est := 4.5

	created := mustCreate(t, svc, "alice", domain.TaskDraft{
		Title:       "Write report",
		Description: "quarterly",
		Extras: domain.ExtrasDraft{
			Tags:           []string{"a", "b"},
			DueDate:        &due,
			EstimatedHours: &est,
		},
	})

	if created.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if created.Status != domain.StatusPending {
		t.Fatalf("expected default status pending, got %s", created.Status)
	}
	if created.Extras.Priority != domain.PriorityMedium {
		t.Fatalf("expected default priority medium, got %s", created.Extras.Priority)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.Before(created.CreatedAt) {
		t.Fatalf("bad timestamps: %v %v", created.CreatedAt, created.UpdatedAt)
	}

	got, err := svc.GetTask(context.Background(), "alice", created.ID)
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if !reflect.DeepEqual(got, created) {
		t.Fatalf("round trip mismatch:\n got  %+v\n want %+v", got, created)
	}
	if !reflect.DeepEqual(got.Extras.Tags, []string{"a", "b"}) {
		t.Fatalf("tags not preserved: %v", got.Extras.Tags)
	}
}

func TestTaskService_Create_ValidationListsEveryField(t *testing.T) {
	repo := newStubTaskRepo()
	svc := newTaskSvc(repo)

	_, err := svc.CreateTask(context.Background(), "alice", domain.TaskDraft{
		Title:  " ",
		Status: "blocked",
		Extras: domain.ExtrasDraft{Priority: "critical"},
	})

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Fields) != 3 {
		t.Fatalf("expected 3 field errors, got %+v", ve.Fields)
	}
	if len(repo.tasks) != 0 {
		t.Fatalf("invalid task was stored")
	}
}

func TestTaskService_Create_StoreFailureIsInternal(t *testing.T) {
	repo := newStubTaskRepo()
	repo.err = errors.New("write concern timeout")
	svc := newTaskSvc(repo)

	_, err := svc.CreateTask(context.Background(), "alice", domain.TaskDraft{Title: "t"})
	if !errors.Is(err, domain.ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestTaskService_Get_NotFound(t *testing.T) {
	svc := newTaskSvc(newStubTaskRepo())

	if _, err := svc.GetTask(context.Background(), "alice", "missing"); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Ownership
// ---------------------------------------------------------------------------

func TestTaskService_OtherOwnerSeesNotFound(t *testing.T) {
	repo := newStubTaskRepo()
	svc := newTaskSvc(repo)
	task := mustCreate(t, svc, "alice", domain.TaskDraft{Title: "private"})
	ctx := context.Background()

	if _, err := svc.GetTask(ctx, "bob", task.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("get: expected ErrTaskNotFound, got %v", err)
	}
	if _, err := svc.UpdateTask(ctx, "bob", task.ID, domain.TaskPatch{Title: domain.Some("hijacked")}); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("update: expected ErrTaskNotFound, got %v", err)
	}
	if err := svc.DeleteTask(ctx, "bob", task.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("delete: expected ErrTaskNotFound, got %v", err)
	}

	stored, err := svc.GetTask(ctx, "alice", task.ID)
	if err != nil {
		t.Fatalf("owner lost access: %v", err)
	}
	if stored.Title != "private" {
		t.Fatalf("task was modified by another user: %q", stored.Title)
	}
}

func TestTaskService_ListNeverLeaksOtherOwners(t *testing.T) {
	svc := newTaskSvc(newStubTaskRepo())
	mustCreate(t, svc, "alice", domain.TaskDraft{Title: "a"})
	mustCreate(t, svc, "bob", domain.TaskDraft{Title: "b", Status: domain.StatusDone})

	res, err := svc.ListTasks(context.Background(), ports.ListTasksInput{OwnerID: "alice", Status: "done"})
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if res.Total != 0 || len(res.Items) != 0 {
		t.Fatalf("expected no tasks, got %d", res.Total)
	}
}

// ---------------------------------------------------------------------------
// UpdateTask / DeleteTask
// ---------------------------------------------------------------------------

func TestTaskService_Update_OnlySuppliedFields(t *testing.T) {
	svc := newTaskSvc(newStubTaskRepo())
	task := mustCreate(t, svc, "alice", domain.TaskDraft{
		Title:       "draft",
		Description: "keep",
		Extras:      domain.ExtrasDraft{Tags: []string{"x"}, Priority: domain.PriorityLow},
	})

	updated, err := svc.UpdateTask(context.Background(), "alice", task.ID, domain.TaskPatch{
		Status: domain.Some(domain.StatusDone),
		Extras: domain.ExtrasPatch{Priority: domain.Some(domain.PriorityHigh)},
	})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}

	if updated.Status != domain.StatusDone || updated.Extras.Priority != domain.PriorityHigh {
		t.Fatalf("supplied fields not applied: %+v", updated)
	}
	if updated.Title != "draft" || updated.Description != "keep" {
		t.Fatalf("absent fields overwritten: %+v", updated)
	}
	if !reflect.DeepEqual(updated.Extras.Tags, []string{"x"}) {
		t.Fatalf("absent extras overwritten: %v", updated.Extras.Tags)
	}
	if updated.UpdatedAt.Before(updated.CreatedAt) {
		t.Fatalf("updatedAt went backwards")
	}
}

func TestTaskService_Update_EmptyPatchIsNoop(t *testing.T) {
	repo := newStubTaskRepo()
	svc := newTaskSvc(repo)
	task := mustCreate(t, svc, "alice", domain.TaskDraft{Title: "same", Extras: domain.ExtrasDraft{Tags: []string{"t"}}})

	got, err := svc.UpdateTask(context.Background(), "alice", task.ID, domain.TaskPatch{})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if !reflect.DeepEqual(got, task) {
		t.Fatalf("empty patch changed the task:\n got  %+v\n want %+v", got, task)
	}
	if repo.updates != 0 {
		t.Fatalf("empty patch reached the store")
	}
}

func TestTaskService_Update_EmptyPatchStillChecksOwnership(t *testing.T) {
	svc := newTaskSvc(newStubTaskRepo())
	task := mustCreate(t, svc, "alice", domain.TaskDraft{Title: "t"})

	if _, err := svc.UpdateTask(context.Background(), "bob", task.ID, domain.TaskPatch{}); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskService_Update_RevalidatesChangedFields(t *testing.T) {
	repo := newStubTaskRepo()
	svc := newTaskSvc(repo)
	task := mustCreate(t, svc, "alice", domain.TaskDraft{Title: "t"})

	_, err := svc.UpdateTask(context.Background(), "alice", task.ID, domain.TaskPatch{
		Title:  domain.Some("   "),
		Status: domain.Some(domain.TaskStatus("archived")),
	})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || len(ve.Fields) != 2 {
		t.Fatalf("expected 2 field errors, got %v", err)
	}
	if repo.updates != 0 {
		t.Fatalf("invalid patch reached the store")
	}
}

func TestTaskService_Delete_IsHard(t *testing.T) {
	svc := newTaskSvc(newStubTaskRepo())
	task := mustCreate(t, svc, "alice", domain.TaskDraft{Title: "bye"})

	if err := svc.DeleteTask(context.Background(), "alice", task.ID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if _, err := svc.GetTask(context.Background(), "alice", task.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected task to be gone, got %v", err)
	}
	if err := svc.DeleteTask(context.Background(), "alice", task.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("second delete: expected ErrTaskNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// ListTasks
// ---------------------------------------------------------------------------

func TestTaskService_List_Pagination(t *testing.T) {
	cases := []struct {
		n, limit, page int
		wantItems      int
		wantPages      int
	}{
		{n: 23, limit: 10, page: 1, wantItems: 10, wantPages: 3},
		{n: 23, limit: 10, page: 3, wantItems: 3, wantPages: 3},
		{n: 20, limit: 10, page: 2, wantItems: 10, wantPages: 2},
		{n: 20, limit: 10, page: 3, wantItems: 0, wantPages: 2},
		{n: 0, limit: 10, page: 1, wantItems: 0, wantPages: 0},
		{n: 7, limit: 3, page: 3, wantItems: 1, wantPages: 3},
	}

	for _, tc := range cases {
		svc := newTaskSvc(newStubTaskRepo())
		for i := 0; i < tc.n; i++ {
			mustCreate(t, svc, "alice", domain.TaskDraft{Title: fmt.Sprintf("t%d", i)})
		}

		res, err := svc.ListTasks(context.Background(), ports.ListTasksInput{OwnerID: "alice", Page: tc.page, Limit: tc.limit})
		if err != nil {
			t.Fatalf("n=%d page=%d: %v", tc.n, tc.page, err)
		}
		if len(res.Items) != tc.wantItems {
			t.Fatalf("n=%d limit=%d page=%d: expected %d items, got %d", tc.n, tc.limit, tc.page, tc.wantItems, len(res.Items))
		}
		if res.TotalPages != tc.wantPages {
			t.Fatalf("n=%d limit=%d: expected %d pages, got %d", tc.n, tc.limit, tc.wantPages, res.TotalPages)
		}
		if res.Total != int64(tc.n) {
			t.Fatalf("expected total %d, got %d", tc.n, res.Total)
		}
		if res.Items == nil {
			t.Fatalf("expected non-nil items slice")
		}
	}
}

func TestTaskService_List_Defaults(t *testing.T) {
	repo := newStubTaskRepo()
	svc := newTaskSvc(repo)

	res, err := svc.ListTasks(context.Background(), ports.ListTasksInput{OwnerID: "alice"})
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}

	want := ports.ListTasksFilter{
		OwnerID:    "alice",
		SortBy:     ports.SortByCreatedAt,
		Descending: true,
		Page:       1,
		Limit:      10,
	}
	if repo.lastFilter != want {
		t.Fatalf("unexpected filter: %+v", repo.lastFilter)
	}
	if res.Page != 1 || res.Limit != 10 {
		t.Fatalf("unexpected paging echo: %+v", res)
	}
}

func TestTaskService_List_FiltersAndSort(t *testing.T) {
	repo := newStubTaskRepo()
	svc := newTaskSvc(repo)
	mustCreate(t, svc, "alice", domain.TaskDraft{Title: "a", Status: domain.StatusDone, Extras: domain.ExtrasDraft{Priority: domain.PriorityHigh}})
	mustCreate(t, svc, "alice", domain.TaskDraft{Title: "b", Status: domain.StatusDone})
	mustCreate(t, svc, "alice", domain.TaskDraft{Title: "c", Extras: domain.ExtrasDraft{Priority: domain.PriorityHigh}})

	res, err := svc.ListTasks(context.Background(), ports.ListTasksInput{
		OwnerID:   "alice",
		Status:    "done",
		Priority:  "high",
		SortBy:    "dueDate",
		SortOrder: "asc",
		Limit:     500,
	})
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if res.Total != 1 || res.Items[0].Title != "a" {
		t.Fatalf("unexpected result: %+v", res.Items)
	}
	f := repo.lastFilter
	if f.SortBy != ports.SortByDueDate || f.Descending {
		t.Fatalf("unexpected sort: %+v", f)
	}
	if f.Limit != maxLimit {
		t.Fatalf("expected limit capped at %d, got %d", maxLimit, f.Limit)
	}
}

func TestTaskService_List_RejectsBadParameters(t *testing.T) {
	svc := newTaskSvc(newStubTaskRepo())

	_, err := svc.ListTasks(context.Background(), ports.ListTasksInput{
		OwnerID:   "alice",
		Status:    "archived",
		Priority:  "urgent",
		SortBy:    "password",
		SortOrder: "sideways",
		Page:      -1,
		Limit:     -5,
	})

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Fields) != 6 {
		t.Fatalf("expected 6 field errors, got %+v", ve.Fields)
	}
}
