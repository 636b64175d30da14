package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskflow/task-manager/internal/api/metrics"
	"github.com/taskflow/task-manager/internal/core/domain"
	"github.com/taskflow/task-manager/internal/core/ports"
)

// TaskHandler serves the caller's own tasks. Every operation is scoped to
// the user the Auth middleware resolved.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// List handles GET /tasks.
//
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        status     query     string  false  "pending | in-progress | done"
// @Param        priority   query     string  false  "low | medium | high"
// @Param        sortBy     query     string  false  "createdAt | updatedAt | title | status | priority | dueDate"
// @Param        sortOrder  query     string  false  "asc | desc"
// @Param        page       query     int     false  "1-indexed page (default 1)"
// @Param        limit      query     int     false  "page size (default 10, max 100)"
// @Success      200        {object}  envelope{data=taskListData}
// @Failure      400        {object}  map[string]any
// @Failure      401        {object}  map[string]any
// @Router       /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	verr := &domain.ValidationError{}
	page := queryInt(c, "page", verr)
	limit := queryInt(c, "limit", verr)
	if err := verr.OrNil(); err != nil {
		return err
	}

	res, err := h.service.ListTasks(c.Request().Context(), ports.ListTasksInput{
		OwnerID:   user.ID,
		Status:    strings.TrimSpace(c.QueryParam("status")),
		Priority:  strings.TrimSpace(c.QueryParam("priority")),
		SortBy:    strings.TrimSpace(c.QueryParam("sortBy")),
		SortOrder: strings.TrimSpace(c.QueryParam("sortOrder")),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "", toTaskListData(res))
}

// queryInt reads an optional positive integer query parameter. Absent
// parameters yield 0 so the service applies its default.
func queryInt(c echo.Context, name string, verr *domain.ValidationError) int {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		verr.Add(name, name+" must be a positive integer")
		return 0
	}
	return n
}

// Get handles GET /tasks/:id.
//
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  envelope{data=taskData}
// @Failure      401  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	task, err := h.service.GetTask(c.Request().Context(), user.ID, c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", taskData{Task: toTaskResponse(task)})
}

// Create handles POST /tasks.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task"
// @Success      201   {object}  envelope{data=taskData}
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Router       /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	draft, err := toDraft(req)
	if err != nil {
		return err
	}

	task, err := h.service.CreateTask(c.Request().Context(), user.ID, draft)
	if err != nil {
		return err
	}

	metrics.TaskMutationsTotal.WithLabelValues("create").Inc()
	return respond(c, http.StatusCreated, "Task created successfully", taskData{Task: toTaskResponse(task)})
}

// Update handles PUT /tasks/:id. Only the keys present in the body are
// written; extras are merged field by field.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task id"
// @Param        body  body      updateTaskRequest  true  "Fields to change"
// @Success      200   {object}  envelope{data=taskData}
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	patch, err := toPatch(req)
	if err != nil {
		return err
	}

	task, err := h.service.UpdateTask(c.Request().Context(), user.ID, c.Param("id"), patch)
	if err != nil {
		return err
	}

	metrics.TaskMutationsTotal.WithLabelValues("update").Inc()
	return respond(c, http.StatusOK, "Task updated successfully", taskData{Task: toTaskResponse(task)})
}

// Delete handles DELETE /tasks/:id.
//
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  envelope
// @Failure      401  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteTask(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		return err
	}

	metrics.TaskMutationsTotal.WithLabelValues("delete").Inc()
	return respond(c, http.StatusOK, "Task deleted successfully", nil)
}
